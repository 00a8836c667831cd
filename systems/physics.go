package systems

import (
	"math"

	"github.com/automoto/slopecollide/components"
	cfg "github.com/automoto/slopecollide/config"
	"github.com/automoto/slopecollide/shared/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePhysics turns velocities into collision movement. Contact flags from
// the previous frame are read here and then cleared for the collision pass.
func (s *Systems) UpdatePhysics(ecs *ecs.ECS) {
	s.bodies.Each(ecs.World, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		obj := components.Object.GetValue(e)
		if obj == nil {
			return
		}

		if physics.OnGround {
			friction := physics.Friction
			if physics.OnIce {
				friction = cfg.Physics.IceFriction
			}
			// A zero walk speed brakes to a stop
			physics.Velocity[0] = gamemath.Approach(physics.Velocity.X(), physics.Walk, friction)
		}
		physics.Velocity[0] = gamemath.ClampSpeed(physics.Velocity.X(), physics.MaxSpeed)

		// Apply gravity
		physics.Velocity[1] = math.Min(physics.Velocity.Y()+physics.Gravity, cfg.Physics.MaxFallSpeed)

		obj.SetMovement(physics.Velocity)

		physics.OnGround = false
		physics.OnIce = false
		physics.Crushed = false
	})
}
