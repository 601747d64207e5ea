package driftwood

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		in     string
		want   Anchor
		wantOK bool
	}{
		{"top", AnchorTop, true},
		{"center", AnchorCenter, true},
		{"bottom", AnchorBottom, true},
		{"middle", AnchorTop, false},
		{"", AnchorTop, false},
	}
	for _, tt := range tests {
		got, ok := ParseAnchor(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseAnchor(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestAnchorString(t *testing.T) {
	if AnchorTop.String() != "top" || AnchorCenter.String() != "center" || AnchorBottom.String() != "bottom" {
		t.Errorf("anchor names = %q, %q, %q", AnchorTop, AnchorCenter, AnchorBottom)
	}
}

func TestParseBound(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Bound
	}{
		{"pair", "top bottom", Anchored(AnchorTop, AnchorBottom)},
		{"pair reversed", "bottom top", Anchored(AnchorBottom, AnchorTop)},
		{"single applies to both", "center", Anchored(AnchorCenter, AnchorCenter)},
		{"extra whitespace", "  top   center  ", Anchored(AnchorTop, AnchorCenter)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBound(tt.in)
			if err != nil {
				t.Fatalf("ParseBound(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseBound(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseBound_Errors(t *testing.T) {
	for _, in := range []string{"", "sideways", "top sideways", "sideways top", "top bottom extra"} {
		if _, err := ParseBound(in); err == nil {
			t.Errorf("ParseBound(%q): expected error", in)
		}
	}
}

func TestBoundResolve(t *testing.T) {
	el := Rect{Y: 1000, Width: 800, Height: 300}
	viewportH := 600.0

	tests := []struct {
		name string
		b    Bound
		want float64
	}{
		{"absolute", At(120), 120},
		{"top meets bottom", Anchored(AnchorTop, AnchorBottom), 400},
		{"center meets center", Anchored(AnchorCenter, AnchorCenter), 850},
		{"bottom meets top", Anchored(AnchorBottom, AnchorTop), 1300},
		{"top meets top", Anchored(AnchorTop, AnchorTop), 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.resolve(el, viewportH); !approxEqual(got, tt.want, 1e-9) {
				t.Errorf("resolve = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveSpan_Defaults(t *testing.T) {
	el := Rect{Y: 1000, Width: 800, Height: 300}
	sp := resolveSpan(el, Bound{}, Bound{}, 600)

	// Default start: element top meets viewport bottom. Default end: start
	// plus element height.
	if !approxEqual(sp.start, 400, 1e-9) || !approxEqual(sp.end, 700, 1e-9) {
		t.Errorf("span = [%v, %v], want [400, 700]", sp.start, sp.end)
	}
	if sp.degenerate {
		t.Error("span.degenerate = true, want false")
	}
}

func TestResolveSpan_ExplicitStart(t *testing.T) {
	el := Rect{Y: 1000, Height: 300}
	sp := resolveSpan(el, At(500), Bound{}, 600)
	if !approxEqual(sp.start, 500, 1e-9) || !approxEqual(sp.end, 800, 1e-9) {
		t.Errorf("span = [%v, %v], want [500, 800]", sp.start, sp.end)
	}
}

func TestResolveSpan_ExplicitEnd(t *testing.T) {
	el := Rect{Y: 1000, Height: 300}
	sp := resolveSpan(el, Bound{}, At(500), 600)
	if !approxEqual(sp.start, 400, 1e-9) || !approxEqual(sp.end, 500, 1e-9) {
		t.Errorf("span = [%v, %v], want [400, 500]", sp.start, sp.end)
	}
}

func TestResolveSpan_Degenerate(t *testing.T) {
	el := Rect{Y: 1000, Height: 300}

	if sp := resolveSpan(el, At(300), At(100), 600); !sp.degenerate {
		t.Error("end < start should be degenerate")
	}
	if sp := resolveSpan(el, At(300), At(300), 600); !sp.degenerate {
		t.Error("end == start should be degenerate")
	}
	if sp := resolveSpan(el, At(300), At(301), 600); sp.degenerate {
		t.Error("end > start should not be degenerate")
	}
}

func TestSpanProgress(t *testing.T) {
	sp := span{start: 100, end: 300}

	tests := []struct {
		scroll, want float64
	}{
		{0, 0},
		{100, 0},
		{150, 0.25},
		{200, 0.5},
		{300, 1},
		{400, 1},
	}
	for _, tt := range tests {
		if got := sp.progressAt(tt.scroll); !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("progressAt(%v) = %v, want %v", tt.scroll, got, tt.want)
		}
	}
}

func TestSpanProgress_Degenerate(t *testing.T) {
	sp := span{start: 200, end: 100, degenerate: true}

	// Below start reads 0, at or past start reads 1; never NaN.
	if got := sp.progressAt(150); got != 0 {
		t.Errorf("progressAt(150) = %v, want 0", got)
	}
	if got := sp.progressAt(200); got != 1 {
		t.Errorf("progressAt(200) = %v, want 1", got)
	}
	if got := sp.progressAt(500); got != 1 {
		t.Errorf("progressAt(500) = %v, want 1", got)
	}
}

func TestSpanPhase(t *testing.T) {
	sp := span{start: 100, end: 300}

	tests := []struct {
		scroll float64
		want   TriggerPhase
	}{
		{99, PhaseBefore},
		{100, PhaseActive}, // boundary is inside
		{200, PhaseActive},
		{300, PhaseActive}, // boundary is inside
		{301, PhaseAfter},
	}
	for _, tt := range tests {
		if got := sp.phaseAt(tt.scroll); got != tt.want {
			t.Errorf("phaseAt(%v) = %v, want %v", tt.scroll, got, tt.want)
		}
	}
}

func TestSpanPhase_Degenerate(t *testing.T) {
	sp := span{start: 200, end: 100, degenerate: true}
	for _, scroll := range []float64{0, 100, 150, 200, 500} {
		if got := sp.phaseAt(scroll); got == PhaseActive {
			t.Errorf("phaseAt(%v) = active; degenerate spans never activate", scroll)
		}
	}
	if got := sp.phaseAt(150); got != PhaseBefore {
		t.Errorf("phaseAt(150) = %v, want before", got)
	}
	if got := sp.phaseAt(250); got != PhaseAfter {
		t.Errorf("phaseAt(250) = %v, want after", got)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(5, 0, 10); got != 5 {
		t.Errorf("clamp(5, 0, 10) = %v, want 5", got)
	}
	if got := clamp(-1, 0, 10); got != 0 {
		t.Errorf("clamp(-1, 0, 10) = %v, want 0", got)
	}
	if got := clamp(11, 0, 10); got != 10 {
		t.Errorf("clamp(11, 0, 10) = %v, want 10", got)
	}
}
