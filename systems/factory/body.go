package factory

import (
	"github.com/automoto/slopecollide/archetypes"
	"github.com/automoto/slopecollide/collision"
	"github.com/automoto/slopecollide/components"
	cfg "github.com/automoto/slopecollide/config"
	"github.com/automoto/slopecollide/shared/gamemath"
	"github.com/automoto/slopecollide/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateBody spawns a walking body with its top-left corner at (x, y).
func CreateBody(ecs *ecs.ECS, x, y, walk float64) *donburi.Entry {
	body := archetypes.Body.Spawn(ecs)
	components.Physics.SetValue(body, components.PhysicsData{
		Gravity:  cfg.Physics.Gravity,
		Friction: cfg.Physics.Friction,
		MaxSpeed: cfg.Physics.MaxSpeed,
		Walk:     walk,
	})

	bbox := gamemath.BoxFromSize(mgl64.Vec2{x, y}, cfg.Body.Width, cfg.Body.Height)
	components.GetSpace(ecs.World).Attach(body.Entity(), newListener(ecs.World, body), collision.Moving, bbox)
	return body
}

// CreateSpawn spawns a body at a level spawn point. Spawns without a walk
// speed walk at cfg.Body.WalkSpeed.
func CreateSpawn(ecs *ecs.ECS, s leveldata.SpawnPoint) *donburi.Entry {
	walk := cfg.Body.WalkSpeed
	if s.Walk != nil {
		walk = *s.Walk
	}
	return CreateBody(ecs, s.X, s.Y, walk)
}

// CreateCrate spawns a falling crate that bodies can stand on.
func CreateCrate(ecs *ecs.ECS, x, y float64) *donburi.Entry {
	crate := archetypes.Crate.Spawn(ecs)
	components.Physics.SetValue(crate, components.PhysicsData{
		Gravity:  cfg.Physics.Gravity,
		Friction: cfg.Crate.Friction,
		MaxSpeed: cfg.Physics.MaxSpeed,
	})

	bbox := gamemath.BoxFromSize(mgl64.Vec2{x, y}, cfg.Crate.Size, cfg.Crate.Size)
	components.GetSpace(ecs.World).Attach(crate.Entity(), newListener(ecs.World, crate), collision.MovingStatic, bbox)
	return crate
}

// CreateCoin spawns a collectible.
func CreateCoin(ecs *ecs.ECS, x, y float64) *donburi.Entry {
	coin := archetypes.Coin.Spawn(ecs)
	components.Collectible.SetValue(coin, components.CollectibleData{Value: cfg.Coin.Value})

	bbox := gamemath.BoxFromSize(mgl64.Vec2{x, y}, cfg.Coin.Size, cfg.Coin.Size)
	components.GetSpace(ecs.World).Attach(coin.Entity(), newListener(ecs.World, coin), collision.Touchable, bbox)
	return coin
}
