package driftwood

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an interaction script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// interactionScript is the top-level JSON structure for a script.
type interactionScript struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected input across ticks for automated interaction
// testing. Attach to a ScriptInput via SetScript; each step runs once the
// frames queued by the previous one have drained.
//
// Supported actions:
//
//	{"action": "wheel", "deltaY": -3, "frames": 10}   wheel delta spread over frames
//	{"action": "swipe", "deltaY": 240, "frames": 12}  touch scroll of deltaY pixels
//	{"action": "pointer", "x": 420, "y": 310}         move the pointer
//	{"action": "glide", "fromX": 0, "fromY": 0, "toX": 420, "toY": 310, "frames": 20}
//	{"action": "leave"}                               pointer leaves the window
//	{"action": "blur", "frames": 30}                  drop focus for frames ticks
//	{"action": "wait", "frames": 60}                  idle
//
// Wheel and touch deltas follow the hardware conventions described on
// ScriptInput, so a negative wheel deltaY scrolls down.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON interaction script and returns a Script ready to
// be attached to a ScriptInput via SetScript.
func LoadScript(jsonData []byte) (*Script, error) {
	var script interactionScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse interaction script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse interaction script: no steps")
	}
	return &Script{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (sc *Script) Done() bool {
	return sc.done
}

// step advances the script by one tick. Called from ScriptInput.Poll.
func (sc *Script) step(si *ScriptInput) {
	if sc.done {
		return
	}
	// Wait for pending frames to drain before advancing.
	if si.Pending() > 0 {
		return
	}
	// Count down wait frames.
	if sc.waitCount > 0 {
		sc.waitCount--
		return
	}
	if sc.cursor >= len(sc.steps) {
		sc.done = true
		return
	}

	st := sc.steps[sc.cursor]
	sc.cursor++

	switch st.Action {
	case "wheel":
		frames := st.Frames
		if frames < 1 {
			frames = 1
		}
		per := st.DeltaY / float64(frames)
		for i := 0; i < frames; i++ {
			si.InjectWheel(0, per)
		}
	case "swipe":
		si.InjectSwipe(st.DeltaY, st.Frames)
	case "pointer":
		si.InjectPointerMove(st.X, st.Y)
	case "glide":
		si.InjectPointerGlide(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "leave":
		si.InjectPointerLeave()
	case "blur":
		si.InjectBlur(st.Frames)
	case "wait":
		if st.Frames > 0 {
			sc.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	// Check if we've reached the end after executing.
	if sc.cursor >= len(sc.steps) && sc.waitCount == 0 && si.Pending() == 0 {
		sc.done = true
	}
}
