// Package ecs provides ECS adapters for driftwood.
package ecs

import (
	"github.com/phanxgames/driftwood"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// StateEventType is the Donburi event type for driftwood state events.
// Subscribe to this in your ECS systems to receive scroll, toggle, pin,
// snap, and hover events.
var StateEventType = events.NewEventType[driftwood.StateEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a StateSink backed by a Donburi world. State
// events are published to StateEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) driftwood.StateSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitState(event driftwood.StateEvent) {
	StateEventType.Publish(s.world, event)
}
