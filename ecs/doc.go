// Package ecs provides ECS adapters for routemap's editor events.
//
// The primary adapter is [NewDonburiStore], which bridges editor events
// (selection changes, deletions, retired routes, flight start and finish)
// into a [Donburi] world as typed events. Subscribe to [EditorEventType] in
// your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	editor.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
