package systems

import (
	"github.com/automoto/slopecollide/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCollisions moves every collision object by its movement.
func (s *Systems) UpdateCollisions(ecs *ecs.ECS) {
	s.space(ecs.World).Update()
}

// RemoveCollected drops coins picked up during the last collision pass.
func (s *Systems) RemoveCollected(ecs *ecs.ECS) {
	var collected []*donburi.Entry
	s.coins.Each(ecs.World, func(e *donburi.Entry) {
		if components.Collectible.Get(e).Collected {
			collected = append(collected, e)
		}
	})

	space := s.space(ecs.World)
	for _, e := range collected {
		if obj := components.Object.GetValue(e); obj != nil {
			space.Remove(obj)
		}
		ecs.World.Remove(e.Entity())
	}
}

// UpdateLevel counts frames.
func (s *Systems) UpdateLevel(ecs *ecs.ECS) {
	if e, ok := s.levels.First(ecs.World); ok {
		components.Level.Get(e).Frame++
	}
}
