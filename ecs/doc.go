// Package ecs provides ECS adapters for scene2d's dispatch results.
//
// The primary adapter is [NewDonburiSink], which forwards every dispatched
// event, with the id of the adaptor that accepted it, into a [Donburi]
// world as a typed event. Subscribe to [DispatchEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	render.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
