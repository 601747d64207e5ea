package driftwood

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside right", 115, 40, false},
		{"outside top", 50, 15, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Rect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	r := Rect{X: 0, Y: 100, Width: 200, Height: 100}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", Rect{X: 100, Y: 150, Width: 200, Height: 100}, true},
		{"contained", Rect{X: 50, Y: 120, Width: 20, Height: 20}, true},
		{"sharing an edge", Rect{X: 0, Y: 200, Width: 200, Height: 50}, true},
		{"above", Rect{X: 0, Y: 0, Width: 200, Height: 99}, false},
		{"below", Rect{X: 0, Y: 201, Width: 200, Height: 50}, false},
		{"beside", Rect{X: 300, Y: 100, Width: 50, Height: 100}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestRectCenter(t *testing.T) {
	c := Rect{X: 10, Y: 20, Width: 100, Height: 60}.Center()
	if c.X != 60 || c.Y != 50 {
		t.Errorf("Center = (%v, %v), want (60, 50)", c.X, c.Y)
	}
}

func TestBoxBounds(t *testing.T) {
	b := &Box{X: 1, Y: 2, Width: 3, Height: 4}
	if got := b.Bounds(); got != (Rect{1, 2, 3, 4}) {
		t.Errorf("Bounds = %+v", got)
	}
	b.Y = 20
	if got := b.Bounds(); got.Y != 20 {
		t.Errorf("Bounds after move = %+v, want Y=20", got)
	}
}

func TestTriggerPhaseString(t *testing.T) {
	tests := []struct {
		p    TriggerPhase
		want string
	}{
		{PhaseBefore, "before"},
		{PhaseActive, "active"},
		{PhaseAfter, "after"},
		{TriggerPhase(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("TriggerPhase(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestToggleActionRoundTrip(t *testing.T) {
	actions := []ToggleAction{
		ActionNone, ActionPlay, ActionPause, ActionResume,
		ActionReset, ActionRestart, ActionComplete, ActionReverse,
	}
	for _, a := range actions {
		got, ok := ParseToggleAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseToggleAction(%q) = %v, %v, want %v, true", a.String(), got, ok, a)
		}
	}
}

func TestParseToggleAction_Unknown(t *testing.T) {
	if _, ok := ParseToggleAction("bounce"); ok {
		t.Error("ParseToggleAction(\"bounce\") ok = true, want false")
	}
}

func TestDefaultActions(t *testing.T) {
	if DefaultActions.OnEnter != ActionPlay {
		t.Errorf("DefaultActions.OnEnter = %v, want play", DefaultActions.OnEnter)
	}
	if DefaultActions.OnLeave != ActionNone || DefaultActions.OnEnterBack != ActionNone || DefaultActions.OnLeaveBack != ActionNone {
		t.Errorf("DefaultActions = %+v, want none on the other transitions", DefaultActions)
	}
}
