package driftwood

import "fmt"

// Channel binds a named scrub property to a consumer-owned float64 field.
// While the trigger scrubs, the field receives From + (To-From)*progress
// every tick; in timeline mode it receives keyframe values directly. The
// engine never reads the field back, so consumers may reuse it freely
// between triggers.
type Channel struct {
	// Name identifies the channel in sheets and debug output.
	Name string
	// Target is the field written each tick. Channels with a nil target are
	// skipped.
	Target *float64
	// From and To are the channel's values at progress 0 and 1.
	From, To float64
}

// Keyframe is one breakpoint of a timeline. At progress At and beyond (until
// the next keyframe), Values are assigned to the trigger's channels in
// declaration order, with no interpolation between keyframes.
type Keyframe struct {
	At     float64
	Values []float64
}

// TriggerConfig declares a trigger's window, toggle actions, and continuous
// bindings. The config is copied at registration; later mutation has no
// effect until the trigger is re-created.
type TriggerConfig struct {
	// ID labels the trigger in state events and debug output.
	ID string

	// Start and End bound the trigger window. Zero values apply the
	// resolver defaults: start when the element's top meets the viewport's
	// bottom, end at start plus the element height.
	Start, End Bound

	// Actions binds a ToggleAction to each boundary transition. The zero
	// set delivers ActionNone for every transition.
	Actions ActionSet

	// Scrub drives the channels continuously from window progress.
	Scrub bool

	// ScrubSmooth, in seconds, low-passes the scrubbed progress through a
	// critically damped spring before interpolation. Zero applies progress
	// directly. Only linear scrub is smoothed; timelines switch on raw
	// progress.
	ScrubSmooth float64

	// Pin holds the element fixed in the viewport while the trigger is
	// active. See PinState for the values consumers apply.
	Pin bool

	// Snap drives a bound offset toward discrete progress points.
	Snap *SnapConfig

	// Once kills the trigger the first time scroll passes beyond its end,
	// after the crossing's callbacks have fired.
	Once bool

	// Channels are the consumer fields scrub and timeline write through.
	Channels []Channel

	// Timeline, when non-empty, replaces linear scrub interpolation with
	// floor-selected keyframes. Keyframes are assumed sorted ascending.
	Timeline []Keyframe

	// Lifecycle callbacks, each fired on its transition. A panicking
	// callback is logged and does not abort the tick.
	OnEnter     func(*Trigger) // before -> active
	OnLeave     func(*Trigger) // active -> after
	OnEnterBack func(*Trigger) // after -> active
	OnLeaveBack func(*Trigger) // active -> before

	// OnToggle receives the crossed transition's bound action verbatim,
	// including ActionNone: the engine dispatches, it does not interpret.
	OnToggle func(action ToggleAction)

	// OnUpdate fires every tick while the trigger is active, after
	// progress, channels, pin, and snap have updated.
	OnUpdate func(*Trigger)

	// OnRefresh fires once per Refresh call, after geometry re-resolves,
	// whether or not the boundaries moved.
	OnRefresh func(*Trigger)

	// OnPin fires when the pin state changes. Requires Pin.
	OnPin func(PinState)
}

// Trigger consumes its scroller's samples and derives window state: phase,
// progress, toggle actions, scrub channels, pinning, and snapping. Create
// one with NewTrigger; it updates automatically from Scroller.Update until
// killed.
type Trigger struct {
	scroller *Scroller
	element  Element
	cfg      TriggerConfig

	sp          span
	phase       TriggerPhase
	progress    float64
	smoothed    float64
	scrubSpring *axisSpring
	pin         PinState
	snapper     *Snapper

	killed       bool
	warnedWindow bool
}

// scrubRest is the progress-domain tolerance below which a scrub spring is
// considered settled on its target.
const scrubRest = 0.001

// NewTrigger registers a trigger on the scroller. The initial phase is taken
// from the scroll position at registration time; no callbacks fire for it.
// Registering on a destroyed scroller returns a permanently inactive
// trigger rather than an error.
func NewTrigger(s *Scroller, el Element, cfg TriggerConfig) (*Trigger, error) {
	if s == nil {
		return nil, fmt.Errorf("driftwood: new trigger %q: nil scroller", cfg.ID)
	}
	if el == nil {
		return nil, fmt.Errorf("driftwood: new trigger %q: nil element", cfg.ID)
	}

	t := &Trigger{scroller: s, element: el, cfg: cfg}
	if cfg.Scrub && cfg.ScrubSmooth > 0 {
		spr := newCriticalSpring(s.tps, cfg.ScrubSmooth)
		t.scrubSpring = &spr
	}
	if cfg.Snap != nil {
		t.snapper = NewSnapper(*cfg.Snap)
	}

	t.resolve()
	sample := s.sample
	t.phase = t.sp.phaseAt(sample.Scroll)
	t.progress = t.sp.progressAt(sample.Scroll)
	t.smoothed = t.progress
	if t.scrubSpring != nil {
		t.scrubSpring.settle(t.progress)
	}
	t.applyChannels()
	if !t.sp.degenerate && cfg.Pin {
		t.pin = computePin(t.sp, sample.Scroll, s.view.Height)
	}
	if t.snapper != nil {
		t.snapper.prime(t.progress)
	}

	if s.destroyed {
		t.killed = true
		return t, nil
	}
	s.triggers = append(s.triggers, t)
	debugf("trigger %q: registered [%.1f, %.1f] phase=%s", cfg.ID, t.sp.start, t.sp.end, t.phase)
	return t, nil
}

// resolve recomputes the absolute window from the element's current bounds
// and the scroller's viewport.
func (t *Trigger) resolve() {
	t.sp = resolveSpan(t.element.Bounds(), t.cfg.Start, t.cfg.End, t.scroller.view.Height)
	if t.sp.degenerate && !t.warnedWindow {
		t.warnedWindow = true
		warnf("trigger %q: degenerate window (end %.1f <= start %.1f); trigger will never activate",
			t.cfg.ID, t.sp.end, t.sp.start)
	}
}

// update advances the trigger against one sample. Called from the owning
// scroller's tick and from Refresh.
func (t *Trigger) update(sample Sample, dt float64) {
	if t.killed {
		return
	}

	t.progress = t.sp.progressAt(sample.Scroll)
	if t.scrubSpring != nil {
		t.smoothed = t.scrubSpring.step(t.progress)
		if t.scrubSpring.atRest(t.progress, scrubRest, scrubRest) {
			t.scrubSpring.settle(t.progress)
			t.smoothed = t.progress
		}
	} else {
		t.smoothed = t.progress
	}
	t.applyChannels()

	// Degenerate windows stay inert: state pegged by the progress rule
	// above, no transitions, pinning, snapping, or update callbacks.
	if t.sp.degenerate {
		return
	}

	prev := t.phase
	t.phase = t.sp.phaseAt(sample.Scroll)
	if t.phase != prev {
		t.replay(prev, t.phase)
	}
	if t.killed {
		return
	}

	if t.cfg.Pin {
		t.updatePin(sample.Scroll)
	}
	if t.snapper != nil {
		t.snapUpdate(dt)
	}
	if t.phase == PhaseActive && t.cfg.OnUpdate != nil {
		safeCall("trigger update", func() { t.cfg.OnUpdate(t) })
	}

	if t.cfg.Once && t.phase == PhaseAfter && prev != PhaseAfter {
		t.Kill()
	}
}

// transition identifies one boundary crossing.
type transition uint8

const (
	transEnter     transition = iota // before -> active
	transLeave                       // active -> after
	transEnterBack                   // after -> active
	transLeaveBack                   // active -> before
)

// replay fires every transition crossed between two phases, in scroll
// order. A jump across the whole window within one tick fires both boundary
// transitions sequentially rather than only the final state.
func (t *Trigger) replay(from, to TriggerPhase) {
	switch {
	case from == PhaseBefore && to == PhaseActive:
		t.fire(transEnter)
	case from == PhaseBefore && to == PhaseAfter:
		t.fire(transEnter)
		if !t.killed {
			t.fire(transLeave)
		}
	case from == PhaseActive && to == PhaseAfter:
		t.fire(transLeave)
	case from == PhaseAfter && to == PhaseActive:
		t.fire(transEnterBack)
	case from == PhaseAfter && to == PhaseBefore:
		t.fire(transEnterBack)
		if !t.killed {
			t.fire(transLeaveBack)
		}
	case from == PhaseActive && to == PhaseBefore:
		t.fire(transLeaveBack)
	}
}

// fire dispatches one crossing: the lifecycle callback, the verbatim toggle
// action, and the sink event, in that order.
func (t *Trigger) fire(tr transition) {
	var cb func(*Trigger)
	var action ToggleAction
	var name string
	switch tr {
	case transEnter:
		cb, action, name = t.cfg.OnEnter, t.cfg.Actions.OnEnter, "enter"
	case transLeave:
		cb, action, name = t.cfg.OnLeave, t.cfg.Actions.OnLeave, "leave"
	case transEnterBack:
		cb, action, name = t.cfg.OnEnterBack, t.cfg.Actions.OnEnterBack, "enterBack"
	case transLeaveBack:
		cb, action, name = t.cfg.OnLeaveBack, t.cfg.Actions.OnLeaveBack, "leaveBack"
	}
	debugf("trigger %q: %s (action %s)", t.cfg.ID, name, action)

	if cb != nil {
		safeCall("trigger "+name, func() { cb(t) })
	}
	if t.cfg.OnToggle != nil {
		safeCall("trigger toggle", func() { t.cfg.OnToggle(action) })
	}

	sample := t.scroller.sample
	t.scroller.emit(StateEvent{
		Kind:      EventToggle,
		TriggerID: t.cfg.ID,
		Scroll:    sample.Scroll,
		Velocity:  sample.Velocity,
		Progress:  t.progress,
		Direction: sample.Direction,
		Phase:     t.phase,
		Action:    action,
	})
}

// applyChannels writes the current interpolation through every bound channel
// target. Timeline keyframes switch on raw progress; linear scrub uses the
// smoothed value.
func (t *Trigger) applyChannels() {
	if len(t.cfg.Channels) == 0 {
		return
	}
	if len(t.cfg.Timeline) > 0 {
		t.applyTimeline(t.progress)
		return
	}
	if !t.cfg.Scrub {
		return
	}
	for i := range t.cfg.Channels {
		ch := &t.cfg.Channels[i]
		if ch.Target == nil {
			continue
		}
		*ch.Target = ch.From + (ch.To-ch.From)*t.smoothed
	}
}

// applyTimeline floor-selects the last keyframe at or below p and assigns
// its values to the channels in declaration order. Before the first
// keyframe the targets are left untouched.
func (t *Trigger) applyTimeline(p float64) {
	kf := -1
	for i := range t.cfg.Timeline {
		if t.cfg.Timeline[i].At <= p {
			kf = i
		} else {
			break
		}
	}
	if kf < 0 {
		return
	}
	vals := t.cfg.Timeline[kf].Values
	for i := range t.cfg.Channels {
		ch := &t.cfg.Channels[i]
		if ch.Target == nil || i >= len(vals) {
			continue
		}
		*ch.Target = vals[i]
	}
}

// Refresh re-resolves the trigger's geometry against the element's current
// bounds and re-evaluates state at the current scroll sample. Crossings
// caused by boundary movement replay exactly like scroll-driven ones.
// OnRefresh fires once per call, whether or not the boundaries moved.
func (t *Trigger) Refresh() {
	if t.killed {
		return
	}
	t.resolve()
	t.update(t.scroller.sample, t.scroller.dt)
	if t.killed {
		return
	}
	if t.cfg.OnRefresh != nil {
		safeCall("trigger refresh", func() { t.cfg.OnRefresh(t) })
	}
	sample := t.scroller.sample
	t.scroller.emit(StateEvent{
		Kind:      EventRefresh,
		TriggerID: t.cfg.ID,
		Scroll:    sample.Scroll,
		Velocity:  sample.Velocity,
		Progress:  t.progress,
		Direction: sample.Direction,
		Phase:     t.phase,
	})
}

// Kill permanently detaches the trigger: no further callbacks fire, its
// channels stop updating, and the scroller drops it on the next sweep. Safe
// to call from inside the trigger's own callbacks. All other methods are
// no-ops afterwards.
func (t *Trigger) Kill() {
	if t.killed {
		return
	}
	t.killed = true
	debugf("trigger %q: killed", t.cfg.ID)
}

// Killed reports whether Kill has been called (directly, via Once, or by the
// scroller's Destroy).
func (t *Trigger) Killed() bool {
	return t.killed
}

// --- State accessors ---

// ID returns the identifier the trigger was configured with.
func (t *Trigger) ID() string {
	return t.cfg.ID
}

// Element returns the element the trigger was registered for.
func (t *Trigger) Element() Element {
	return t.element
}

// Phase locates the current scroll relative to the window.
func (t *Trigger) Phase() TriggerPhase {
	return t.phase
}

// IsActive reports whether scroll is inside the window, boundaries included.
func (t *Trigger) IsActive() bool {
	return t.phase == PhaseActive
}

// Progress returns the normalized position within the window, in [0, 1].
func (t *Trigger) Progress() float64 {
	return t.progress
}

// ScrubProgress returns the smoothed progress the channels interpolate
// from. Equal to Progress when no scrub smoothing is configured.
func (t *Trigger) ScrubProgress() float64 {
	return t.smoothed
}

// Start returns the resolved absolute start offset.
func (t *Trigger) Start() float64 {
	return t.sp.start
}

// End returns the resolved absolute end offset.
func (t *Trigger) End() float64 {
	return t.sp.end
}

// Pin returns the current pin state. Zero unless Pin was configured.
func (t *Trigger) Pin() PinState {
	return t.pin
}

// Velocity returns the scroller's most recent per-tick scroll delta. Zero
// once the trigger is killed or its scroller destroyed.
func (t *Trigger) Velocity() float64 {
	if t.killed || t.scroller.destroyed {
		return 0
	}
	return t.scroller.sample.Velocity
}
