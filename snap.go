package driftwood

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SnapConfig declares discrete settle points in the progress domain and the
// animation that carries a bound offset toward the selected one.
type SnapConfig struct {
	// Points are the snap positions in the progress domain. Order does not
	// matter; ties select the earliest declared point.
	Points []float64
	// Stride converts a selected index into the offset written through
	// Target: offset = index * Stride. Typically the panel height or width
	// of a paged layout.
	Stride float64
	// Duration is the settle animation length in seconds. Default 0.5.
	Duration float32
	// Ease shapes the settle animation. Nil defaults to ease.OutCubic.
	Ease ease.TweenFunc
	// Target receives the animated offset every tick. Nil disables the
	// write-through; OnSnap still reports selection changes.
	Target *float64
	// OnSnap fires whenever the selection changes, with the new index.
	OnSnap func(index int)
}

const defaultSnapDuration = 0.5

// Snapper maps continuous progress onto the nearest snap point and animates
// an offset toward the point's implied position. A trigger with a SnapConfig
// drives its own snapper; standalone use is Observe then Update, once each
// per tick.
//
// Selection is continuous: every observed sample may retarget the animation
// mid-flight, so the element glides between stops while scrolling instead of
// waiting for scroll to end.
type Snapper struct {
	cfg    SnapConfig
	index  int
	offset float64
	target float64
	tween  *gween.Tween
}

// NewSnapper returns a Snapper with no selection yet; the first Observe
// selects and animates.
func NewSnapper(cfg SnapConfig) *Snapper {
	if cfg.Duration <= 0 {
		cfg.Duration = defaultSnapDuration
	}
	if cfg.Ease == nil {
		cfg.Ease = ease.OutCubic
	}
	return &Snapper{cfg: cfg, index: -1}
}

// nearestSnapIndex returns the index of the point closest to p. Ties go to
// the first occurrence.
func nearestSnapIndex(points []float64, p float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, pt := range points {
		if d := math.Abs(pt - p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Observe re-selects the nearest snap point for the given progress. On a
// selection change the settle animation retargets from the current animated
// offset and OnSnap fires.
func (sn *Snapper) Observe(progress float64) {
	if len(sn.cfg.Points) == 0 {
		return
	}
	idx := nearestSnapIndex(sn.cfg.Points, progress)
	if idx == sn.index {
		return
	}
	sn.index = idx
	sn.target = float64(idx) * sn.cfg.Stride
	sn.tween = gween.New(float32(sn.offset), float32(sn.target), sn.cfg.Duration, sn.cfg.Ease)
	if sn.cfg.OnSnap != nil {
		safeCall("snap", func() { sn.cfg.OnSnap(idx) })
	}
}

// Update advances the settle animation by one tick and writes the offset
// through the configured target. The final write lands exactly on the
// selected point's implied offset.
func (sn *Snapper) Update(dt float64) {
	if sn.tween == nil {
		return
	}
	val, done := sn.tween.Update(float32(dt))
	sn.offset = float64(val)
	if done {
		sn.offset = sn.target
		sn.tween = nil
	}
	if sn.cfg.Target != nil {
		*sn.cfg.Target = sn.offset
	}
}

// Index returns the currently selected snap point index, or -1 before the
// first selection.
func (sn *Snapper) Index() int {
	return sn.index
}

// Offset returns the current animated offset.
func (sn *Snapper) Offset() float64 {
	return sn.offset
}

// prime adopts the selection implied by the registration-time progress
// without animating or firing OnSnap.
func (sn *Snapper) prime(progress float64) {
	if len(sn.cfg.Points) == 0 {
		return
	}
	sn.index = nearestSnapIndex(sn.cfg.Points, progress)
	sn.offset = float64(sn.index) * sn.cfg.Stride
	sn.target = sn.offset
}

// snapUpdate drives the trigger's snapper from raw window progress and
// forwards selection changes to the sink.
func (t *Trigger) snapUpdate(dt float64) {
	before := t.snapper.index
	t.snapper.Observe(t.progress)
	t.snapper.Update(dt)
	if t.snapper.index == before {
		return
	}
	sample := t.scroller.sample
	t.scroller.emit(StateEvent{
		Kind:      EventSnap,
		TriggerID: t.cfg.ID,
		Scroll:    sample.Scroll,
		Velocity:  sample.Velocity,
		Progress:  t.progress,
		Direction: sample.Direction,
		Phase:     t.phase,
		SnapIndex: t.snapper.index,
	})
}
