package driftwood

import "fmt"

// MediaQuery is a viewport predicate for conditional trigger registration.
// Zero-valued dimension fields are unconstrained; ReducedMotion constrains
// only when non-nil.
type MediaQuery struct {
	// MinWidth and MaxWidth bound the viewport width, inclusive.
	MinWidth, MaxWidth float64
	// MinHeight and MaxHeight bound the viewport height, inclusive.
	MinHeight, MaxHeight float64
	// ReducedMotion, when non-nil, requires the scroller's reduced-motion
	// setting to equal it.
	ReducedMotion *bool
}

// Matches reports whether the query holds for the given layout and
// reduced-motion setting.
func (q MediaQuery) Matches(view Viewport, reducedMotion bool) bool {
	if q.MinWidth > 0 && view.Width < q.MinWidth {
		return false
	}
	if q.MaxWidth > 0 && view.Width > q.MaxWidth {
		return false
	}
	if q.MinHeight > 0 && view.Height < q.MinHeight {
		return false
	}
	if q.MaxHeight > 0 && view.Height > q.MaxHeight {
		return false
	}
	if q.ReducedMotion != nil && *q.ReducedMotion != reducedMotion {
		return false
	}
	return true
}

// MatchMedia returns cfg only when the query matches the scroller's current
// viewport and reduced-motion setting; ok reports the match. Use it to
// register breakpoint-specific triggers:
//
//	if cfg, ok := s.MatchMedia(driftwood.MediaQuery{MinWidth: 768}, wide); ok {
//		driftwood.NewTrigger(s, el, cfg)
//	}
//
// Queries are evaluated at call time; re-register after Resize to apply a
// different breakpoint's config.
func (s *Scroller) MatchMedia(q MediaQuery, cfg TriggerConfig) (TriggerConfig, bool) {
	if s.destroyed || !q.Matches(s.view, s.reduced) {
		return TriggerConfig{}, false
	}
	return cfg, true
}

// BatchItem pairs an element with its derived trigger config.
type BatchItem struct {
	Element Element
	Config  TriggerConfig
}

// Batch derives one config per element from a base config. Each copy gets a
// derived identifier ("<baseID>-<index>") so events from the resulting
// triggers stay distinguishable. Channel targets are shared across copies;
// rebind them per element if each trigger needs its own fields.
func Batch(base TriggerConfig, elements ...Element) []BatchItem {
	items := make([]BatchItem, len(elements))
	for i, el := range elements {
		cfg := base
		cfg.ID = fmt.Sprintf("%s-%d", base.ID, i)
		items[i] = BatchItem{Element: el, Config: cfg}
	}
	return items
}
