package driftwood

import "testing"

func TestLoadScript(t *testing.T) {
	jsonData := `{
		"steps": [
			{"action": "wheel", "deltaY": -3, "frames": 10},
			{"action": "wait", "frames": 60},
			{"action": "glide", "fromX": 0, "fromY": 0, "toX": 420, "toY": 310, "frames": 20}
		]
	}`
	sc, err := LoadScript([]byte(jsonData))
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}
	if len(sc.steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(sc.steps))
	}
	if sc.steps[0].Action != "wheel" || sc.steps[0].DeltaY != -3 || sc.steps[0].Frames != 10 {
		t.Errorf("step 0 parsed wrong: %+v", sc.steps[0])
	}
	if sc.steps[2].ToX != 420 || sc.steps[2].ToY != 310 {
		t.Errorf("step 2 parsed wrong: %+v", sc.steps[2])
	}
	if sc.Done() {
		t.Error("script should not be done before stepping")
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	if _, err := LoadScript([]byte(`{invalid`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadScript_Empty(t *testing.T) {
	if _, err := LoadScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("expected error for script with no steps")
	}
}

func TestScriptStep_Wheel(t *testing.T) {
	sc, err := LoadScript([]byte(`{"steps": [{"action": "wheel", "deltaY": -8, "frames": 4}]}`))
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}
	si := NewScriptInput()

	sc.step(si)
	if si.Pending() != 4 {
		t.Fatalf("expected 4 queued frames, got %d", si.Pending())
	}
	if sc.Done() {
		t.Error("script should not be done while frames are pending")
	}

	// Each queued frame carries a quarter of the delta.
	si.Poll()
	if _, dy := si.Wheel(); dy != -2 {
		t.Errorf("expected wheel -2 per frame, got %v", dy)
	}
}

func TestScriptStep_Wait(t *testing.T) {
	sc, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 3}]}`))
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}
	si := NewScriptInput()

	// Frame 1: executes the wait step, waitCount 3→2.
	sc.step(si)
	if sc.waitCount != 2 {
		t.Fatalf("expected waitCount 2, got %d", sc.waitCount)
	}
	if sc.Done() {
		t.Error("should not be done during the wait")
	}

	// Frame 2: waitCount 2→1.
	sc.step(si)
	if sc.waitCount != 1 {
		t.Fatalf("expected waitCount 1, got %d", sc.waitCount)
	}

	// Frame 3: waitCount 1→0.
	sc.step(si)
	if sc.waitCount != 0 {
		t.Fatalf("expected waitCount 0, got %d", sc.waitCount)
	}

	// Frame 4: cursor past the end, script completes.
	sc.step(si)
	if !sc.Done() {
		t.Error("expected script done after the wait drained")
	}
}

func TestScriptWaitsForQueueToDrain(t *testing.T) {
	sc, err := LoadScript([]byte(`{
		"steps": [
			{"action": "swipe", "deltaY": 120, "frames": 3},
			{"action": "pointer", "x": 50, "y": 60}
		]
	}`))
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}
	si := NewScriptInput()

	sc.step(si)
	if sc.cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", sc.cursor)
	}
	if si.Pending() != 3 {
		t.Fatalf("expected 3 queued frames, got %d", si.Pending())
	}

	// The cursor holds while the swipe frames drain.
	sc.step(si)
	if sc.cursor != 1 {
		t.Errorf("cursor advanced to %d while frames were pending", sc.cursor)
	}

	// Poll advances the script and then consumes a frame, so the pointer
	// step runs on the Poll after the last swipe frame.
	for i := 0; i < 4; i++ {
		si.Poll()
	}
	if sc.cursor != 2 {
		t.Errorf("expected cursor 2 after the queue drained, got %d", sc.cursor)
	}
	if x, y, ok := si.Pointer(); !ok || x != 50 || y != 60 {
		t.Errorf("expected pointer at (50, 60), got (%v, %v, %v)", x, y, ok)
	}
}

func TestScriptDone(t *testing.T) {
	sc, err := LoadScript([]byte(`{"steps": [{"action": "leave"}]}`))
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}
	si := NewScriptInput()

	sc.step(si)
	if si.Pending() != 1 {
		t.Fatalf("expected 1 queued frame, got %d", si.Pending())
	}

	si.Poll()
	si.Poll()
	if !sc.Done() {
		t.Error("expected script done once its queue drained")
	}

	// Stepping a finished script is a no-op.
	sc.step(si)
	if si.Pending() != 0 {
		t.Errorf("finished script queued %d frames", si.Pending())
	}
}

func TestScriptDrivesScroller(t *testing.T) {
	sc, err := LoadScript([]byte(`{
		"steps": [
			{"action": "wheel", "deltaY": -3, "frames": 10},
			{"action": "wait", "frames": 120}
		]
	}`))
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}

	si := NewScriptInput()
	si.SetScript(sc)
	s := NewScroller(Options{Input: si, ViewportW: 800, ViewportH: 600, ContentH: 4000})

	// Playback is hands-free: the scroller's own ticks advance the script.
	for i := 0; i < 600 && !sc.Done(); i++ {
		s.Update()
	}
	if !sc.Done() {
		t.Fatal("script did not finish within 600 ticks")
	}
	if !approxEqual(s.Scroll(), 120, 1e-9) {
		t.Errorf("scroll = %v after playback, want 120", s.Scroll())
	}
}
