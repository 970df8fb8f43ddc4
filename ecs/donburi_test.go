package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/routemap"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	require.NotNil(t, store)
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []routemap.EditorEvent
	EditorEventType.Subscribe(world, func(w donburi.World, e routemap.EditorEvent) {
		received = append(received, e)
	})

	store.EmitEvent(routemap.EditorEvent{
		Type:      routemap.EventSelectionChanged,
		Selection: []routemap.EntityID{1, 2},
	})
	store.EmitEvent(routemap.EditorEvent{
		Type:    routemap.EventRouteRetired,
		RouteID: 3,
	})

	// Events are queued; process them.
	EditorEventType.ProcessEvents(world)

	require.Len(t, received, 2)
	assert.Equal(t, routemap.EventSelectionChanged, received[0].Type)
	assert.Equal(t, []routemap.EntityID{1, 2}, received[0].Selection)
	assert.Equal(t, routemap.EventRouteRetired, received[1].Type)
	assert.Equal(t, routemap.RouteID(3), received[1].RouteID)
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	EditorEventType.Subscribe(world, func(w donburi.World, e routemap.EditorEvent) {
		count1++
	})
	EditorEventType.Subscribe(world, func(w donburi.World, e routemap.EditorEvent) {
		count2++
	})

	store.EmitEvent(routemap.EditorEvent{Type: routemap.EventFlightStarted})
	events.ProcessAllEvents(world)

	assert.Equal(t, 1, count1)
	assert.Equal(t, 1, count2)
}

func TestDonburiStore_ReceivesEditorEvents(t *testing.T) {
	world := donburi.NewWorld()
	ed := routemap.NewEditor(routemap.DefaultConfig())
	ed.SetEventStore(NewDonburiStore(world))

	var got []routemap.EventType
	EditorEventType.Subscribe(world, func(w donburi.World, e routemap.EditorEvent) {
		got = append(got, e.Type)
	})

	a := ed.AddEntity(routemap.NewEntity("a.png"))
	b := ed.AddEntity(routemap.NewEntity("b.png"))
	_, err := ed.AddRoute(routemap.NewRoute(a, b))
	require.NoError(t, err)

	ed.Select(a)
	ed.DeleteEntity(b)
	ed.Update(1.0 / 60)
	EditorEventType.ProcessEvents(world)

	assert.Equal(t, []routemap.EventType{
		routemap.EventSelectionChanged,
		routemap.EventEntityDeleted,
		routemap.EventRouteRetired,
	}, got)
}
