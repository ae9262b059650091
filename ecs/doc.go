// Package ecs provides ECS adapters for bongocat.
//
// [NewDonburiStore] forwards the mascot's key press and release events into
// a [Donburi] world as typed events. Subscribe to [KeyEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	mascot, err := bongocat.NewMascot(assets, watcher, bongocat.MascotOptions{
//		EntityStore: store,
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
