package ecs

import (
	"github.com/phanxgames/routemap"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EditorEventType is the Donburi event type for routemap editor events.
// Subscribe to this in your ECS systems to receive selection changes, entity
// deletions, route retirements and flight start and finish events.
var EditorEventType = events.NewEventType[routemap.EditorEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Editor events are published to EditorEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) routemap.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event routemap.EditorEvent) {
	EditorEventType.Publish(s.world, event)
}
