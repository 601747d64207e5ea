// Package driftwood is a viewport interaction engine for [Ebitengine].
//
// Driftwood provides smoothed virtual scrolling, scroll-window triggers with
// toggle actions and scrubbed property channels, element pinning, snap
// points, magnetic pointer effects, and declarative trigger sheets for
// scrolling interfaces built on a game loop.
//
// # Quick start
//
// Create a [Scroller], register triggers against elements, and call
// [Scroller.Update] once per tick from your [ebiten.Game]:
//
//	scroller := driftwood.NewScroller(driftwood.Options{
//		ViewportW: 800, ViewportH: 600, ContentH: 4000,
//	})
//
//	hero := &driftwood.Box{Y: 900, Width: 800, Height: 600}
//	driftwood.NewTrigger(scroller, hero, driftwood.TriggerConfig{
//		ID:      "hero",
//		Actions: driftwood.DefaultActions,
//		OnToggle: func(action driftwood.ToggleAction) {
//			heroTimeline.Apply(action)
//		},
//	})
//
//	func (g *Game) Update() error { g.scroller.Update(); return nil }
//
// With no input source configured, [NewScroller] reads the mouse wheel and
// touch drags through [NewDevice]. Pass a [NativeBinding] as
// [Options].Fallback to mirror a host-owned scroll position instead.
//
// # Triggers
//
// A trigger watches a window of the scroll range, resolved from its
// element's bounds and two anchor pairs:
//
//	var alpha float64
//	driftwood.NewTrigger(scroller, panel, driftwood.TriggerConfig{
//		ID:    "fade",
//		Start: driftwood.Anchored(driftwood.AnchorTop, driftwood.AnchorCenter),
//		End:   driftwood.Anchored(driftwood.AnchorBottom, driftwood.AnchorCenter),
//		Scrub: true,
//		Channels: []driftwood.Channel{
//			{Name: "alpha", Target: &alpha, From: 0, To: 1},
//		},
//	})
//
// Crossing a boundary delivers the bound [ToggleAction] for that transition;
// scrubbing writes window progress through the channels every tick. Triggers
// can also pin their element ([TriggerConfig].Pin) and snap progress to
// discrete points ([SnapConfig]).
//
// # Key features
//
// Driftwood includes animated scroll-to (via [gween]), pin spacer math,
// continuous snap selection, spring-damped magnetic hover fields (via
// [harmonica]), viewport media queries, JSON trigger sheets and interaction
// scripts, and ECS integration (via [Donburi] adapter in driftwood/ecs).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [harmonica]: https://github.com/charmbracelet/harmonica
// [Donburi]: https://github.com/yohamta/donburi
package driftwood
