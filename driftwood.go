package driftwood

// Vec2 is a 2D vector used for positions, offsets, and displacements
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in document space. The coordinate system
// has its origin at the top-left, with Y increasing downward. Scrolling moves
// the viewport down through increasing Y.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Element is anything with a resolvable rectangle in document space.
// Implementations report bounds relative to the top of the scrolled content,
// not the viewport; the engine subtracts the scroll offset itself.
type Element interface {
	Bounds() Rect
}

// Box is a trivial Element: a mutable rectangle. Useful for tests, demos,
// and consumers whose layout lives outside any scene graph.
type Box struct {
	X, Y, Width, Height float64
}

// Bounds returns the box's rectangle.
func (b *Box) Bounds() Rect {
	return Rect{b.X, b.Y, b.Width, b.Height}
}

// Direction is the sign of scroll movement: positive downward (increasing
// offset), negative upward. While the scroll position is stationary the
// previous direction is retained, so consumers always see a definite sign.
type Direction int8

const (
	DirectionDown Direction = 1  // scrolling toward larger offsets
	DirectionUp   Direction = -1 // scrolling toward smaller offsets
)

// TriggerPhase locates the scroll position relative to a trigger's span.
type TriggerPhase uint8

const (
	PhaseBefore TriggerPhase = iota // scroll < start
	PhaseActive                     // start <= scroll <= end
	PhaseAfter                      // scroll > end
)

// String returns the phase name as used in sheets and debug output.
func (p TriggerPhase) String() string {
	switch p {
	case PhaseBefore:
		return "before"
	case PhaseActive:
		return "active"
	case PhaseAfter:
		return "after"
	default:
		return "unknown"
	}
}

// ToggleAction is an animation command a trigger forwards to its consumer on
// a boundary crossing. The engine attaches no meaning to the value beyond
// delivering it verbatim; interpretation belongs to whatever animation layer
// sits on top.
type ToggleAction uint8

const (
	ActionNone     ToggleAction = iota // deliver nothing for this transition
	ActionPlay                         // start the consumer's animation
	ActionPause                        // pause in place
	ActionResume                       // resume from a pause
	ActionReset                        // jump to the start without playing
	ActionRestart                      // jump to the start and play
	ActionComplete                     // jump to the end state
	ActionReverse                      // play backward from the current position
)

// String returns the action name as used in sheets and debug output.
func (a ToggleAction) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionPlay:
		return "play"
	case ActionPause:
		return "pause"
	case ActionResume:
		return "resume"
	case ActionReset:
		return "reset"
	case ActionRestart:
		return "restart"
	case ActionComplete:
		return "complete"
	case ActionReverse:
		return "reverse"
	default:
		return "unknown"
	}
}

// ParseToggleAction converts an action name ("play", "none", ...) to its
// ToggleAction value. Returns false for unrecognized names.
func ParseToggleAction(s string) (ToggleAction, bool) {
	switch s {
	case "none":
		return ActionNone, true
	case "play":
		return ActionPlay, true
	case "pause":
		return ActionPause, true
	case "resume":
		return ActionResume, true
	case "reset":
		return ActionReset, true
	case "restart":
		return ActionRestart, true
	case "complete":
		return ActionComplete, true
	case "reverse":
		return ActionReverse, true
	default:
		return ActionNone, false
	}
}

// ActionSet binds one ToggleAction to each of the four boundary transitions.
// The zero value delivers nothing; DefaultActions plays on first entry only.
type ActionSet struct {
	OnEnter     ToggleAction // before -> active (scrolling down past start)
	OnLeave     ToggleAction // active -> after (scrolling down past end)
	OnEnterBack ToggleAction // after -> active (scrolling back up past end)
	OnLeaveBack ToggleAction // active -> before (scrolling back up past start)
}

// DefaultActions is the conventional one-shot set: play when the trigger is
// entered scrolling down, nothing on the other three transitions.
var DefaultActions = ActionSet{OnEnter: ActionPlay}

// EventKind identifies a kind of state event.
type EventKind uint8

const (
	EventScroll  EventKind = iota // fires once per tick with the latest sample
	EventToggle                   // fires on each trigger boundary crossing
	EventPin                      // fires when a trigger's pin state changes
	EventSnap                     // fires when a snap controller selects a new point
	EventHover                    // fires when a magnet's hover state changes
	EventRefresh                  // fires when a trigger's span is re-resolved
	EventResize                   // fires when the viewport or content size changes
)
