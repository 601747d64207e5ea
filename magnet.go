package driftwood

import "math"

// Behavior selects how a magnet transforms the raw pointer effect.
type Behavior uint8

const (
	Attract Behavior = iota // displace toward the pointer
	Repel                   // displace away from the pointer
	Follow                  // displace toward the pointer at double magnitude
)

// String returns the behavior name as used in sheets and debug output.
func (b Behavior) String() string {
	switch b {
	case Attract:
		return "attract"
	case Repel:
		return "repel"
	case Follow:
		return "follow"
	default:
		return "unknown"
	}
}

// ParseBehavior converts a behavior name to its Behavior value. Returns
// false for unrecognized names.
func ParseBehavior(s string) (Behavior, bool) {
	switch s {
	case "attract":
		return Attract, true
	case "repel":
		return Repel, true
	case "follow":
		return Follow, true
	default:
		return Attract, false
	}
}

// MagneticConfig controls one magnet's falloff and spring response.
type MagneticConfig struct {
	// ID labels the magnet in state events and debug output.
	ID string
	// Strength scales the displacement relative to the pointer delta.
	// Default 0.3.
	Strength float64
	// Range is the activation radius in pixels around the element's center.
	// Beyond it the magnet is idle and settles back to rest. Default 100.
	Range float64
	// Behavior transforms the raw effect: attract, repel, or follow.
	Behavior Behavior
	// Stiffness is the spring constant carrying the displacement toward its
	// target. Default 150.
	Stiffness float64
	// Damping is the spring's velocity drag. Default 15.
	Damping float64
	// Mass is the virtual mass on the spring. Default 1.
	Mass float64
	// RestDelta is the remaining distance below which an axis settles.
	// Default 0.01.
	RestDelta float64
	// RestSpeed is the speed below which an axis settles. Default 0.01.
	RestSpeed float64
}

// FieldOptions configure a Field.
type FieldOptions struct {
	// Pointer, when set, is read once per Update to drive every magnet.
	// Leave nil to feed PointerMove and PointerLeave manually. A Device's
	// Pointer method fits directly.
	Pointer func() (x, y float64, ok bool)
	// TPS is the host tick rate the springs integrate at. Default 60,
	// ebiten's default.
	TPS int
	// ReducedMotion starts the field with displacement suppressed; hover
	// callbacks still fire. Toggle later with SetReducedMotion.
	ReducedMotion bool
	// Sink, when set, receives every hover event the field's magnets emit.
	Sink StateSink
}

// Field owns a set of magnets sharing one pointer. The host calls Update
// once per tick; each magnet then computes its displacement from the shared
// pointer sample.
type Field struct {
	pointerFn func() (x, y float64, ok bool)
	tps       int
	reduced   bool
	sink      StateSink

	magnets   []*Magnet
	px, py    float64
	present   bool
	destroyed bool
}

// NewField constructs an empty Field.
func NewField(opts FieldOptions) *Field {
	if opts.TPS <= 0 {
		opts.TPS = defaultTPS
	}
	return &Field{
		pointerFn: opts.Pointer,
		tps:       opts.TPS,
		reduced:   opts.ReducedMotion,
		sink:      opts.Sink,
	}
}

// Add registers a magnet for the element. onHover, when non-nil, fires on
// every hover transition (even under reduced motion, for callers that gate
// non-visual behavior on it).
func (f *Field) Add(el Element, cfg MagneticConfig, onHover func(hovering bool)) *Magnet {
	if cfg.Strength == 0 {
		cfg.Strength = 0.3
	}
	if cfg.Range <= 0 {
		cfg.Range = 100
	}
	if cfg.Stiffness <= 0 {
		cfg.Stiffness = 150
	}
	if cfg.Damping <= 0 {
		cfg.Damping = 15
	}
	if cfg.Mass <= 0 {
		cfg.Mass = 1
	}
	if cfg.RestDelta <= 0 {
		cfg.RestDelta = 0.01
	}
	if cfg.RestSpeed <= 0 {
		cfg.RestSpeed = 0.01
	}

	m := &Magnet{
		field:   f,
		element: el,
		cfg:     cfg,
		onHover: onHover,
		sx:      newAxisSpring(f.tps, cfg.Stiffness, cfg.Damping, cfg.Mass),
		sy:      newAxisSpring(f.tps, cfg.Stiffness, cfg.Damping, cfg.Mass),
	}
	if f.destroyed {
		m.destroyed = true
		return m
	}
	f.magnets = append(f.magnets, m)
	return m
}

// PointerMove feeds a pointer sample in viewport coordinates. Takes effect
// on the next Update.
func (f *Field) PointerMove(x, y float64) {
	if f.destroyed {
		return
	}
	f.px, f.py = x, y
	f.present = true
}

// PointerLeave marks the pointer absent. Every magnet's spring settles back
// toward rest over the following ticks; nothing snaps.
func (f *Field) PointerLeave() {
	if f.destroyed {
		return
	}
	f.present = false
}

// SetReducedMotion suppresses or restores displacement output. Hover
// reporting is unaffected.
func (f *Field) SetReducedMotion(enabled bool) {
	f.reduced = enabled
}

// Update advances every magnet by one tick. With a Pointer func wired it is
// read first, feeding PointerMove or PointerLeave automatically.
func (f *Field) Update() {
	if f.destroyed {
		return
	}
	if f.pointerFn != nil {
		if x, y, ok := f.pointerFn(); ok {
			f.PointerMove(x, y)
		} else {
			f.PointerLeave()
		}
	}
	for _, m := range f.magnets {
		m.tick(f.px, f.py, f.present)
	}
	f.sweep()
}

// sweep drops destroyed magnets. Deferred to after the tick loop so a hover
// callback may destroy its own magnet.
func (f *Field) sweep() {
	alive := f.magnets[:0]
	for _, m := range f.magnets {
		if !m.destroyed {
			alive = append(alive, m)
		}
	}
	for i := len(alive); i < len(f.magnets); i++ {
		f.magnets[i] = nil
	}
	f.magnets = alive
}

// Destroy tears down the field and every magnet in it. All further method
// calls are no-ops.
func (f *Field) Destroy() {
	if f.destroyed {
		return
	}
	f.destroyed = true
	for _, m := range f.magnets {
		m.destroyed = true
	}
	f.magnets = nil
}

// emit forwards an event to the sink, if one is attached.
func (f *Field) emit(event StateEvent) {
	if f.sink == nil {
		return
	}
	f.sink.EmitState(event)
}

// Magnet computes the proximity displacement for one element. Read Offset
// each frame and apply it as a translation when rendering the element.
type Magnet struct {
	field   *Field
	element Element
	cfg     MagneticConfig
	onHover func(bool)

	sx, sy    axisSpring
	tx, ty    float64
	hover     bool
	destroyed bool
}

// tick advances the magnet against the shared pointer sample.
func (m *Magnet) tick(px, py float64, present bool) {
	if m.destroyed {
		return
	}

	var targetX, targetY float64
	hover := false
	if present {
		c := m.element.Bounds().Center()
		dx, dy := px-c.X, py-c.Y
		dist := math.Hypot(dx, dy)
		if dist <= m.cfg.Range {
			hover = true
			k := m.cfg.Strength * (1 - dist/m.cfg.Range)
			switch m.cfg.Behavior {
			case Repel:
				k = -k
			case Follow:
				k *= 2
			}
			targetX, targetY = dx*k, dy*k
		}
	}
	m.setHover(hover)

	if m.field.reduced {
		// Hover was reported above; displacement stays pinned at rest.
		m.tx, m.ty = 0, 0
		m.sx.settle(0)
		m.sy.settle(0)
		return
	}

	m.tx, m.ty = targetX, targetY
	m.sx.step(m.tx)
	if m.sx.atRest(m.tx, m.cfg.RestDelta, m.cfg.RestSpeed) {
		m.sx.settle(m.tx)
	}
	m.sy.step(m.ty)
	if m.sy.atRest(m.ty, m.cfg.RestDelta, m.cfg.RestSpeed) {
		m.sy.settle(m.ty)
	}
}

// setHover updates the hover latch, firing the callback and sink event on
// transitions only.
func (m *Magnet) setHover(h bool) {
	if h == m.hover {
		return
	}
	m.hover = h
	debugf("magnet %q: hover=%v", m.cfg.ID, h)
	if m.onHover != nil {
		safeCall("magnet hover", func() { m.onHover(h) })
	}
	m.field.emit(StateEvent{
		Kind:      EventHover,
		TriggerID: m.cfg.ID,
		Hover:     h,
	})
}

// Offset returns the current displacement to apply to the element.
func (m *Magnet) Offset() (dx, dy float64) {
	return m.sx.pos, m.sy.pos
}

// Hovered reports whether the pointer is currently within range.
func (m *Magnet) Hovered() bool {
	return m.hover
}

// Destroy detaches the magnet from its field. The last displacement is
// frozen; all further ticks skip it. Safe to call from its own hover
// callback.
func (m *Magnet) Destroy() {
	m.destroyed = true
}
