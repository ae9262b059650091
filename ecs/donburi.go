package ecs

import (
	"github.com/phanxgames/bongocat"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// KeyEventType is the Donburi event type for mascot key events.
var KeyEventType = events.NewEventType[bongocat.KeyEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Key events are published to KeyEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) bongocat.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitKeyEvent(event bongocat.KeyEvent) {
	KeyEventType.Publish(s.world, event)
}
