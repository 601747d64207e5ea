// Package ecs provides ECS adapters for driftwood's state event system.
//
// The primary adapter is [NewDonburiSink], which bridges driftwood state
// events (scroll, toggle, pin, snap, hover) into a [Donburi] world as typed
// events. Subscribe to [StateEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scroller := driftwood.NewScroller(driftwood.Options{Sink: sink})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
