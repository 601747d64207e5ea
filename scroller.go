package driftwood

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// StateSink is the interface for optional ECS or UI-framework integration.
// When set on a Scroller or Field, every event the engine produces is
// forwarded to it in emission order.
type StateSink interface {
	EmitState(event StateEvent)
}

// StateEvent carries engine state for the StateSink bridge. Which fields are
// valid depends on Kind; the scroll fields are always populated for events
// emitted by a Scroller or its triggers.
type StateEvent struct {
	Kind      EventKind
	TriggerID string
	Scroll    float64
	Velocity  float64
	Progress  float64
	Direction Direction
	// Trigger fields (valid for EventToggle, EventPin, EventRefresh)
	Phase     TriggerPhase
	Action    ToggleAction
	Pinned    bool
	PinOffset float64
	// Snap fields (valid for EventSnap)
	SnapIndex int
	// Magnet fields (valid for EventHover)
	Hover bool
	// Layout fields (valid for EventResize)
	ViewportW float64
	ViewportH float64
	ContentH  float64
}

// Sample is one tick's scroll state. Immutable value type; a fresh one is
// produced every tick and delivered to all subscribers.
type Sample struct {
	// Scroll is the current offset in document space, in [0, limit].
	Scroll float64
	// Velocity is the offset change since the previous sample, in scroll
	// units per tick.
	Velocity float64
	// Direction is the sign of the most recent movement. Retained while the
	// position is stationary so consumers always see a definite sign.
	Direction Direction
	// Progress is Scroll normalized by the maximum offset, in [0, 1].
	Progress float64
}

// Viewport describes the scroller's current layout.
type Viewport struct {
	// Width and Height are the visible area's dimensions.
	Width, Height float64
	// ContentH is the total scrollable content height.
	ContentH float64
	// Limit is the maximum scroll offset: max(0, ContentH - Height).
	Limit float64
}

// NativeBinding connects the fallback engine to a host-owned scroll offset.
type NativeBinding struct {
	// Position returns the host's current scroll offset each tick.
	Position func() float64
	// Seek asks the host to move its offset; used by ScrollTo. Optional:
	// without it an animated scroll plays out on the emitted samples only,
	// and the host's own offset wins again once the animation ends.
	Seek func(offset float64)
}

// Options configure a Scroller. The zero value is usable: it reads input
// from a new Device and scrolls nothing until Resize provides a layout.
type Options struct {
	// Input supplies wheel, touch, and focus signals. When nil and no
	// Fallback is bound, a Device is constructed.
	Input InputSource

	// Fallback mirrors a host-owned offset instead of integrating input.
	// Selected when Input is absent or reports not ready.
	Fallback NativeBinding

	// Lerp is the per-second rate at which the virtual position approaches
	// its target; higher values track tighter. Default 10.
	Lerp float64

	// WheelMultiplier converts one wheel step into scroll units. Default 40.
	WheelMultiplier float64

	// TouchMultiplier scales touch panning into scroll units. Default 1.
	TouchMultiplier float64

	// ViewportW and ViewportH are the initial viewport dimensions.
	ViewportW, ViewportH float64

	// ContentH is the initial scrollable content height.
	ContentH float64

	// TPS is the host tick rate. Default 60, ebiten's default; set to
	// ebiten.TPS() if the host changed it.
	TPS int

	// Sink, when set, receives every state event the scroller and its
	// triggers emit.
	Sink StateSink
}

const (
	defaultTPS             = 60
	defaultLerp            = 10.0
	defaultWheelMultiplier = 40.0
	defaultTouchMultiplier = 1.0
)

// scrollAnim holds an active ScrollTo tween. The tween interpolates in
// float32; target keeps the exact float64 destination the scroll settles on.
type scrollAnim struct {
	tween      *gween.Tween
	target     float64
	lock       bool
	onComplete func()
}

// Scroller owns the authoritative scroll offset, velocity, and direction,
// decoupled from any single input mechanism. The host calls Update once per
// tick; each tick integrates input, advances animation, and delivers one
// Sample to every subscriber and attached trigger.
//
// A new Scroller is running; Stop pauses sampling and Start resumes it.
// All methods are no-ops after Destroy.
type Scroller struct {
	input    InputSource
	engine   scrollEngine
	enhanced bool
	sink     StateSink

	view Viewport
	tps  int
	dt   float64

	running   bool
	destroyed bool
	suspended bool
	resync    bool
	reduced   bool

	sample Sample
	anim   *scrollAnim

	handlers handlerRegistry
	triggers []*Trigger

	debug bool
}

// NewScroller constructs a Scroller from opts. The smooth engine is used
// whenever the input source is ready; otherwise the scroller degrades to
// mirroring the Fallback binding and logs a warning.
func NewScroller(opts Options) *Scroller {
	if opts.TPS <= 0 {
		opts.TPS = defaultTPS
	}
	if opts.Lerp <= 0 {
		opts.Lerp = defaultLerp
	}
	if opts.WheelMultiplier <= 0 {
		opts.WheelMultiplier = defaultWheelMultiplier
	}
	if opts.TouchMultiplier <= 0 {
		opts.TouchMultiplier = defaultTouchMultiplier
	}
	if opts.Input == nil && opts.Fallback.Position == nil {
		opts.Input = NewDevice()
	}

	s := &Scroller{
		sink:    opts.Sink,
		tps:     opts.TPS,
		dt:      1.0 / float64(opts.TPS),
		running: true,
	}
	s.view = Viewport{Width: opts.ViewportW, Height: opts.ViewportH, ContentH: opts.ContentH}
	s.view.Limit = math.Max(0, opts.ContentH-opts.ViewportH)

	s.engine, s.enhanced = newScrollEngine(opts, s.view.Limit)
	if s.enhanced {
		s.input = opts.Input
	}

	s.sample = Sample{
		Scroll:    s.engine.pos(),
		Direction: DirectionDown,
		Progress:  s.progressOf(s.engine.pos()),
	}
	return s
}

// Smooth reports whether the enhanced input-integrating engine is active
// (false in native fallback mode). Samples are identical in shape either
// way; this exists for diagnostics.
func (s *Scroller) Smooth() bool {
	return s.enhanced
}

// SetDebugMode enables or disables debug mode. When enabled, trigger
// transitions, fallback selection, and sheet parsing log trace lines to
// stderr.
func (s *Scroller) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// SetReducedMotion records the platform's reduced-motion preference. While
// set, animated ScrollTo calls jump straight to their target (OnComplete
// still fires) and MediaQuery.ReducedMotion constraints match accordingly.
func (s *Scroller) SetReducedMotion(enabled bool) {
	s.reduced = enabled
}

// --- Sampling loop ---

// Update advances the scroller by one tick: poll input, integrate or
// animate, then deliver the new sample to subscribers and triggers. Call it
// once per host tick, before reading any per-frame state.
func (s *Scroller) Update() {
	if s.destroyed || !s.running {
		return
	}

	// Hold while the window is unfocused so background throttling cannot
	// produce a velocity spike on return.
	if s.input != nil {
		if !s.input.Focused() {
			s.suspended = true
			return
		}
		if s.suspended {
			s.suspended = false
			s.resync = true
		}
		s.input.Poll()
	}

	var frame inputFrame
	frame.dt = s.dt
	if s.input != nil && !s.resync {
		_, frame.wheelY = s.input.Wheel()
		frame.touchY = s.input.TouchScroll()
	}
	prev := s.sample.Scroll
	if s.resync {
		s.resync = false
		prev = s.engine.pos()
	}

	// completed is deferred to the end of the tick so the callback observes
	// the settled sample and trigger state.
	var completed func()
	if s.anim != nil {
		userInput := frame.wheelY != 0 || frame.touchY != 0
		if userInput && !s.anim.lock {
			// User took over: drop the animation and its completion.
			s.anim = nil
			s.engine.step(frame)
		} else {
			val, done := s.anim.tween.Update(float32(s.dt))
			s.engine.write(float64(val))
			if done {
				s.engine.write(s.anim.target)
				completed = s.anim.onComplete
				s.anim = nil
			}
		}
	} else {
		s.engine.step(frame)
	}

	pos := s.engine.pos()
	vel := pos - prev
	dir := s.sample.Direction
	if vel > 0 {
		dir = DirectionDown
	} else if vel < 0 {
		dir = DirectionUp
	}
	s.sample = Sample{
		Scroll:    pos,
		Velocity:  vel,
		Direction: dir,
		Progress:  s.progressOf(pos),
	}

	s.fireScroll()
	s.emit(StateEvent{
		Kind:      EventScroll,
		Scroll:    s.sample.Scroll,
		Velocity:  s.sample.Velocity,
		Progress:  s.sample.Progress,
		Direction: s.sample.Direction,
	})

	for _, tr := range s.triggers {
		tr.update(s.sample, s.dt)
	}
	s.sweepTriggers()

	if completed != nil {
		safeCall("scrollTo onComplete", completed)
	}
}

func (s *Scroller) progressOf(pos float64) float64 {
	if s.view.Limit <= 0 {
		return 0
	}
	return clamp(pos/s.view.Limit, 0, 1)
}

// sweepTriggers drops killed triggers. Removal is deferred to after the
// dispatch loop so a trigger may kill itself (or another) from a callback.
func (s *Scroller) sweepTriggers() {
	alive := s.triggers[:0]
	for _, tr := range s.triggers {
		if !tr.killed {
			alive = append(alive, tr)
		}
	}
	for i := len(alive); i < len(s.triggers); i++ {
		s.triggers[i] = nil
	}
	s.triggers = alive
}

// --- Control methods ---

// Start resumes sampling after a Stop. Velocity is re-baselined so the gap
// does not read as a spike.
func (s *Scroller) Start() {
	if s.destroyed || s.running {
		return
	}
	s.running = true
	s.resync = true
}

// Stop pauses sampling. An active ScrollTo is cancelled; its completion
// callback is dropped silently.
func (s *Scroller) Stop() {
	if s.destroyed {
		return
	}
	s.running = false
	s.anim = nil
}

// Destroy permanently tears down the scroller: sampling stops, subscriptions
// are dropped, a pending ScrollTo completion is discarded, and every
// attached trigger becomes permanently inactive. All further method calls
// are no-ops.
func (s *Scroller) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.running = false
	s.anim = nil
	s.handlers = handlerRegistry{}
	for _, tr := range s.triggers {
		tr.killed = true
	}
	s.triggers = nil
	s.input = nil
}

// Destroyed reports whether Destroy has been called.
func (s *Scroller) Destroyed() bool {
	return s.destroyed
}

// Resize sets the viewport dimensions and content height, clamps the offset
// into the new range, re-resolves every attached trigger, and notifies
// resize subscribers.
func (s *Scroller) Resize(viewportW, viewportH, contentH float64) {
	if s.destroyed {
		return
	}
	s.view = Viewport{Width: viewportW, Height: viewportH, ContentH: contentH}
	s.view.Limit = math.Max(0, contentH-viewportH)
	s.engine.setLimit(s.view.Limit)

	pos := s.engine.pos()
	s.sample.Scroll = pos
	s.sample.Progress = s.progressOf(pos)

	s.fireResize()
	s.emit(StateEvent{
		Kind:      EventResize,
		Scroll:    s.sample.Scroll,
		Progress:  s.sample.Progress,
		Direction: s.sample.Direction,
		ViewportW: s.view.Width,
		ViewportH: s.view.Height,
		ContentH:  s.view.ContentH,
	})
	for _, tr := range s.triggers {
		tr.Refresh()
	}
	s.sweepTriggers()
}

// RefreshAll re-resolves every attached trigger's geometry against the
// current sample. Call it after content layout changes that move elements
// without changing the viewport.
func (s *Scroller) RefreshAll() {
	if s.destroyed {
		return
	}
	for _, tr := range s.triggers {
		tr.Refresh()
	}
	s.sweepTriggers()
}

// ScrollToOptions tune a ScrollTo call. The zero value jumps immediately.
type ScrollToOptions struct {
	// Offset is added to the resolved target.
	Offset float64
	// Duration is the animation length in seconds. Zero jumps immediately.
	Duration float32
	// Ease shapes the animation. Nil defaults to ease.OutQuad.
	Ease ease.TweenFunc
	// Immediate forces a jump regardless of Duration.
	Immediate bool
	// Lock suppresses user wheel and touch input until the animation
	// settles, so it cannot be interrupted by the user.
	Lock bool
	// OnComplete fires exactly once when the scroll settles on the target.
	// It is dropped silently if the animation is interrupted by a later
	// ScrollTo, Stop, Destroy, or user input.
	OnComplete func()
}

// ScrollTo moves the scroll offset to target+Offset, clamped to the valid
// range. With a Duration it animates there over multiple ticks; the final
// sample lands exactly on the clamped target. A ScrollTo issued while a
// previous one is still animating replaces it; the previous OnComplete
// never fires.
func (s *Scroller) ScrollTo(target float64, opts ScrollToOptions) {
	if s.destroyed {
		return
	}
	dest := clamp(target+opts.Offset, 0, s.view.Limit)
	s.anim = nil
	if opts.Immediate || opts.Duration <= 0 || s.reduced {
		s.engine.write(dest)
		s.sample.Scroll = s.engine.pos()
		s.sample.Progress = s.progressOf(s.sample.Scroll)
		if opts.OnComplete != nil {
			safeCall("scrollTo onComplete", opts.OnComplete)
		}
		return
	}
	easeFn := opts.Ease
	if easeFn == nil {
		easeFn = ease.OutQuad
	}
	s.anim = &scrollAnim{
		tween:      gween.New(float32(s.engine.pos()), float32(dest), opts.Duration, easeFn),
		target:     dest,
		lock:       opts.Lock,
		onComplete: opts.OnComplete,
	}
}

// ScrollToElement scrolls so the element's top edge reaches the top of the
// viewport, adjusted by opts.Offset.
func (s *Scroller) ScrollToElement(el Element, opts ScrollToOptions) {
	if s.destroyed || el == nil {
		return
	}
	s.ScrollTo(el.Bounds().Y, opts)
}

// --- State accessors ---

// Sample returns the most recent sample.
func (s *Scroller) Sample() Sample {
	return s.sample
}

// Scroll returns the current scroll offset.
func (s *Scroller) Scroll() float64 {
	return s.sample.Scroll
}

// Velocity returns the most recent per-tick scroll delta.
func (s *Scroller) Velocity() float64 {
	return s.sample.Velocity
}

// Direction returns the sign of the most recent movement.
func (s *Scroller) Direction() Direction {
	return s.sample.Direction
}

// Progress returns the scroll offset normalized by its maximum, in [0, 1].
func (s *Scroller) Progress() float64 {
	return s.sample.Progress
}

// View returns the current viewport layout.
func (s *Scroller) View() Viewport {
	return s.view
}

// Limit returns the maximum scroll offset.
func (s *Scroller) Limit() float64 {
	return s.view.Limit
}

// Visible reports whether any part of the element's rectangle lies inside
// the viewport at the current scroll offset. Useful for virtualization:
// consumers can skip laying out or drawing off-screen elements.
func (s *Scroller) Visible(el Element) bool {
	if el == nil {
		return false
	}
	viewRect := Rect{X: 0, Y: s.sample.Scroll, Width: s.view.Width, Height: s.view.Height}
	return el.Bounds().Intersects(viewRect)
}

// --- Handler registry ---

type scrollHandler struct {
	id uint32
	fn func(Sample)
}

type resizeHandler struct {
	id uint32
	fn func(Viewport)
}

type handlerRegistry struct {
	scroll []scrollHandler
	resize []resizeHandler
	nextID uint32
}

// CallbackHandle allows removing a registered scroller-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventKind
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventScroll:
		h.reg.scroll = removeScrollHandler(h.reg.scroll, h.id)
	case EventResize:
		h.reg.resize = removeResizeHandler(h.reg.resize, h.id)
	}
}

func removeScrollHandler(s []scrollHandler, id uint32) []scrollHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = scrollHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeResizeHandler(s []resizeHandler, id uint32) []resizeHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = resizeHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnScroll registers a callback fired once per tick with the latest sample.
// Subscribers run in registration order.
func (s *Scroller) OnScroll(fn func(Sample)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.scroll = append(s.handlers.scroll, scrollHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventScroll}
}

// OnResize registers a callback fired whenever Resize changes the layout.
func (s *Scroller) OnResize(fn func(Viewport)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.resize = append(s.handlers.resize, resizeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventResize}
}

// fireScroll delivers the current sample to every scroll subscriber. A
// panicking subscriber is logged and skipped; delivery continues.
func (s *Scroller) fireScroll() {
	for i := 0; i < len(s.handlers.scroll); i++ {
		h := s.handlers.scroll[i]
		safeCall("scroll", func() { h.fn(s.sample) })
	}
}

// fireResize delivers the current layout to every resize subscriber.
func (s *Scroller) fireResize() {
	for i := 0; i < len(s.handlers.resize); i++ {
		h := s.handlers.resize[i]
		safeCall("resize", func() { h.fn(s.view) })
	}
}

// emit forwards an event to the sink, if one is attached.
func (s *Scroller) emit(event StateEvent) {
	if s.sink == nil {
		return
	}
	s.sink.EmitState(event)
}
