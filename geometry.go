package driftwood

import (
	"fmt"
	"strings"
)

// Anchor names a horizontal reference line on an element or on the viewport.
type Anchor uint8

const (
	AnchorTop    Anchor = iota // the top edge
	AnchorCenter               // the vertical midpoint
	AnchorBottom               // the bottom edge
)

// ParseAnchor converts an anchor name ("top", "center", "bottom") to its
// Anchor value. Returns false for unrecognized names.
func ParseAnchor(s string) (Anchor, bool) {
	switch s {
	case "top":
		return AnchorTop, true
	case "center":
		return AnchorCenter, true
	case "bottom":
		return AnchorBottom, true
	default:
		return AnchorTop, false
	}
}

// String returns the anchor name as used in sheets and bound strings.
func (a Anchor) String() string {
	switch a {
	case AnchorTop:
		return "top"
	case AnchorCenter:
		return "center"
	case AnchorBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// offsetIn returns the anchor line's distance from the top of a span of the
// given height.
func (a Anchor) offsetIn(height float64) float64 {
	switch a {
	case AnchorCenter:
		return height / 2
	case AnchorBottom:
		return height
	default:
		return 0
	}
}

// Bound describes one edge of a trigger window: either an absolute scroll
// offset or a symbolic pairing of an element anchor with a viewport anchor.
// The zero value is unset, which lets the resolver apply its default (start:
// element top meets viewport bottom; end: start plus the element height).
// Construct with At or Anchored, or parse the "<elementAnchor>
// <viewportAnchor>" form with ParseBound.
type Bound struct {
	kind     boundKind
	offset   float64
	element  Anchor
	viewport Anchor
}

type boundKind uint8

const (
	boundUnset    boundKind = iota // apply the resolver default
	boundAbsolute                  // fixed document-space offset
	boundAnchored                  // element anchor meets viewport anchor
)

// At returns an absolute Bound at a fixed document-space scroll offset.
func At(offset float64) Bound {
	return Bound{kind: boundAbsolute, offset: offset}
}

// Anchored returns a symbolic Bound that resolves to the scroll offset at
// which the element's anchor line meets the viewport's anchor line.
func Anchored(element, viewport Anchor) Bound {
	return Bound{kind: boundAnchored, element: element, viewport: viewport}
}

// ParseBound parses a symbolic bound string such as "top center": the
// element anchor followed by the viewport anchor, separated by whitespace.
// A single anchor name applies to both ("center" means "center center").
func ParseBound(s string) (Bound, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		a, ok := ParseAnchor(fields[0])
		if !ok {
			return Bound{}, fmt.Errorf("driftwood: parse bound %q: unknown anchor %q", s, fields[0])
		}
		return Anchored(a, a), nil
	case 2:
		el, ok := ParseAnchor(fields[0])
		if !ok {
			return Bound{}, fmt.Errorf("driftwood: parse bound %q: unknown element anchor %q", s, fields[0])
		}
		vp, ok := ParseAnchor(fields[1])
		if !ok {
			return Bound{}, fmt.Errorf("driftwood: parse bound %q: unknown viewport anchor %q", s, fields[1])
		}
		return Anchored(el, vp), nil
	default:
		return Bound{}, fmt.Errorf("driftwood: parse bound %q: want \"<elementAnchor> <viewportAnchor>\"", s)
	}
}

// resolve returns the absolute scroll offset for this bound against an
// element rectangle and viewport height. The caller substitutes defaults for
// unset bounds before calling.
func (b Bound) resolve(el Rect, viewportH float64) float64 {
	if b.kind == boundAbsolute {
		return b.offset
	}
	return el.Y + b.element.offsetIn(el.Height) - b.viewport.offsetIn(viewportH)
}

// span is a resolved trigger window in absolute document-space offsets.
// A degenerate span (end <= start after resolution) never activates; its
// progress is 0 below start and 1 at or after start.
type span struct {
	start, end float64
	degenerate bool
}

// resolveSpan computes the absolute window for an element. An unset start
// defaults to the element's top meeting the viewport's bottom (the moment the
// element begins to enter view); an unset end defaults to start plus the
// element height.
func resolveSpan(el Rect, start, end Bound, viewportH float64) span {
	if start.kind == boundUnset {
		start = Anchored(AnchorTop, AnchorBottom)
	}
	s := start.resolve(el, viewportH)
	var e float64
	if end.kind == boundUnset {
		e = s + el.Height
	} else {
		e = end.resolve(el, viewportH)
	}
	return span{start: s, end: e, degenerate: e <= s}
}

// progressAt returns the normalized position of scroll within the span,
// clamped to [0, 1].
func (sp span) progressAt(scroll float64) float64 {
	if sp.degenerate {
		if scroll < sp.start {
			return 0
		}
		return 1
	}
	return clamp((scroll-sp.start)/(sp.end-sp.start), 0, 1)
}

// phaseAt locates scroll relative to the span. Both boundary values are
// inside the active phase. A degenerate span is never active.
func (sp span) phaseAt(scroll float64) TriggerPhase {
	if sp.degenerate {
		if scroll < sp.start {
			return PhaseBefore
		}
		return PhaseAfter
	}
	switch {
	case scroll < sp.start:
		return PhaseBefore
	case scroll > sp.end:
		return PhaseAfter
	default:
		return PhaseActive
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
