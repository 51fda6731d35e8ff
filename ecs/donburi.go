// Package ecs provides ECS adapters for scene2d.
package ecs

import (
	"github.com/phanxgames/scene2d"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DispatchEventType is the Donburi event type for scene2d dispatch records.
// Subscribe to this in your ECS systems to observe which adaptor handled
// each input event.
var DispatchEventType = events.NewEventType[scene2d.DispatchRecord]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Records are published to DispatchEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) scene2d.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitDispatch(rec scene2d.DispatchRecord) {
	DispatchEventType.Publish(s.world, rec)
}
