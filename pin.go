package driftwood

// PinState describes how a pinned element should be rendered and how much
// layout space its slot reserves. While Pinned, the consumer renders the
// element held fixed in the viewport, translated by Offset from its normal
// position; outside the window it flows normally. Offset is continuous at
// both boundaries (0 at the window start, the full window length at and
// beyond the end), so engaging and releasing the pin never jumps.
type PinState struct {
	// Pinned reports whether the owning trigger is active.
	Pinned bool
	// Offset is the vertical translation holding the element in place:
	// clamp(scroll - start, 0, end - start).
	Offset float64
	// Spacer is the layout height the element's slot reserves: the window
	// length plus one viewport height. Constant between refreshes.
	Spacer float64
}

// computePin derives the pin state for a window at a scroll offset.
func computePin(sp span, scroll, viewportH float64) PinState {
	length := sp.end - sp.start
	return PinState{
		Pinned: scroll >= sp.start && scroll <= sp.end,
		Offset: clamp(scroll-sp.start, 0, length),
		Spacer: length + viewportH,
	}
}

// updatePin recomputes the trigger's pin state each tick. OnPin and the sink
// event fire on engage and release; the continuously changing Offset is read
// from Trigger.Pin by the renderer.
func (t *Trigger) updatePin(scroll float64) {
	next := computePin(t.sp, scroll, t.scroller.view.Height)
	flipped := next.Pinned != t.pin.Pinned
	t.pin = next
	if !flipped {
		return
	}
	debugf("trigger %q: pinned=%v offset=%.1f", t.cfg.ID, next.Pinned, next.Offset)
	if t.cfg.OnPin != nil {
		safeCall("trigger pin", func() { t.cfg.OnPin(next) })
	}
	sample := t.scroller.sample
	t.scroller.emit(StateEvent{
		Kind:      EventPin,
		TriggerID: t.cfg.ID,
		Scroll:    sample.Scroll,
		Velocity:  sample.Velocity,
		Progress:  t.progress,
		Direction: sample.Direction,
		Phase:     t.phase,
		Pinned:    next.Pinned,
		PinOffset: next.Offset,
	})
}
