package driftwood

// syntheticFrame represents one injected tick of input. Deltas are consumed
// by the next Poll; pointer and focus changes persist until a later frame
// overrides them.
type syntheticFrame struct {
	wheelX, wheelY float64
	touchY         float64
	px, py         float64
	setPointer     bool // move the pointer to (px, py)
	clearPointer   bool // pointer leaves the window
	blur           int  // suspend focus for this many ticks
}

// ScriptInput is an InputSource fed from a queue of synthetic frames instead
// of hardware. Each Poll consumes one queued frame; an empty queue reads as
// a quiet frame. Deltas follow the hardware conventions: wheel Y is positive
// when rolled away from the user, touch Y is positive when the finger moves
// down the screen.
//
// Feed it to a Scroller (and its Pointer method to a Field) to drive
// deterministic playback, either by calling the Inject methods directly or
// by attaching a Script.
type ScriptInput struct {
	queue  []syntheticFrame
	script *Script

	wheelX, wheelY float64
	touchY         float64
	px, py         float64
	present        bool
	blurFrames     int
}

// NewScriptInput returns an empty, focused input source.
func NewScriptInput() *ScriptInput {
	return &ScriptInput{}
}

// SetScript attaches a script. Each Poll advances it by one step once the
// frames queued by the previous step have drained.
func (si *ScriptInput) SetScript(sc *Script) {
	si.script = sc
}

// Pending returns the number of queued frames not yet consumed.
func (si *ScriptInput) Pending() int {
	return len(si.queue)
}

// InjectWheel queues one frame of wheel movement.
func (si *ScriptInput) InjectWheel(dx, dy float64) {
	si.queue = append(si.queue, syntheticFrame{wheelX: dx, wheelY: dy})
}

// InjectSwipe queues a touch scroll of deltaY pixels total, spread evenly
// over the given number of frames. Minimum frames is 1.
func (si *ScriptInput) InjectSwipe(deltaY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	per := deltaY / float64(frames)
	for i := 0; i < frames; i++ {
		si.queue = append(si.queue, syntheticFrame{touchY: per})
	}
}

// InjectPointerMove queues a frame placing the pointer at (x, y). The
// pointer stays there for subsequent frames until moved or cleared.
func (si *ScriptInput) InjectPointerMove(x, y float64) {
	si.queue = append(si.queue, syntheticFrame{px: x, py: y, setPointer: true})
}

// InjectPointerGlide queues a linear pointer sweep from (fromX, fromY) to
// (toX, toY) across the given number of frames. Minimum frames is 2.
func (si *ScriptInput) InjectPointerGlide(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		si.InjectPointerMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// InjectPointerLeave queues a frame reporting the pointer gone.
func (si *ScriptInput) InjectPointerLeave() {
	si.queue = append(si.queue, syntheticFrame{clearPointer: true})
}

// InjectBlur queues a focus loss lasting the given number of ticks. While
// unfocused the queue is frozen; the tick after focus returns re-baselines
// the scroller and discards that frame's deltas, matching a real window
// losing focus.
func (si *ScriptInput) InjectBlur(frames int) {
	if frames < 1 {
		frames = 1
	}
	si.queue = append(si.queue, syntheticFrame{blur: frames})
}

// InjectWait queues the given number of quiet frames.
func (si *ScriptInput) InjectWait(frames int) {
	for i := 0; i < frames; i++ {
		si.queue = append(si.queue, syntheticFrame{})
	}
}

// Ready always succeeds; a script source needs no window or device.
func (si *ScriptInput) Ready() error { return nil }

// Poll advances the attached script, then consumes the next queued frame.
func (si *ScriptInput) Poll() {
	if si.script != nil {
		si.script.step(si)
	}

	si.wheelX, si.wheelY, si.touchY = 0, 0, 0
	if len(si.queue) == 0 {
		return
	}
	f := si.queue[0]
	copy(si.queue, si.queue[1:])
	si.queue = si.queue[:len(si.queue)-1]

	si.wheelX, si.wheelY = f.wheelX, f.wheelY
	si.touchY = f.touchY
	if f.setPointer {
		si.px, si.py, si.present = f.px, f.py, true
	}
	if f.clearPointer {
		si.present = false
	}
	if f.blur > 0 {
		si.blurFrames = f.blur
	}
}

// Wheel returns the wheel delta latched by the last Poll.
func (si *ScriptInput) Wheel() (dx, dy float64) {
	return si.wheelX, si.wheelY
}

// TouchScroll returns the touch delta latched by the last Poll.
func (si *ScriptInput) TouchScroll() float64 {
	return si.touchY
}

// Pointer returns the current synthetic pointer position. Safe to call
// without Poll.
func (si *ScriptInput) Pointer() (x, y float64, ok bool) {
	return si.px, si.py, si.present
}

// Focused reports false while an injected blur is in effect. The scroller
// checks focus once per tick, so blur durations are measured in those
// checks.
func (si *ScriptInput) Focused() bool {
	if si.blurFrames > 0 {
		si.blurFrames--
		return false
	}
	return true
}
