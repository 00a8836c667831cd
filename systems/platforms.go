package systems

import (
	"github.com/automoto/slopecollide/components"
	cfg "github.com/automoto/slopecollide/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePlatforms advances platform and tile layer paths and hands the
// displacement to whatever stands on them.
func (s *Systems) UpdatePlatforms(ecs *ecs.ECS) {
	dt := 1 / float32(cfg.Sim.TickRate)

	s.platforms.Each(ecs.World, func(e *donburi.Entry) {
		obj := components.Object.GetValue(e)
		if obj == nil {
			return
		}
		pos := advance(components.Platform.Get(e), dt)
		movement := pos.Sub(obj.Pos())
		obj.SetMovement(movement)
		obj.PropagateMovement(movement)
	})

	s.layers.Each(ecs.World, func(e *donburi.Entry) {
		layer := components.TileLayer.Get(e)
		if layer.Path == nil {
			return
		}
		movement := advance(layer.Path, dt).Sub(layer.Grid.Offset())
		layer.Grid.Translate(movement)
		layer.Map.SetMovement(movement)
		layer.Map.PropagateMovement(movement)
	})
}

// advance steps the path by dt and returns the new position.
func advance(p *components.PlatformData, dt float32) mgl64.Vec2 {
	progress, _, done := p.Path.Update(dt)
	if done {
		p.Path.Reset()
	}
	return p.Origin.Add(p.Travel.Mul(float64(progress)))
}
