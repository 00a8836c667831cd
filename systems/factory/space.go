package factory

import (
	"github.com/automoto/slopecollide/archetypes"
	"github.com/automoto/slopecollide/collision"
	"github.com/automoto/slopecollide/components"
	cfg "github.com/automoto/slopecollide/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// CreateSpace creates the collision system of the world, tuned from
// cfg.Collision.
func CreateSpace(ecs *ecs.ECS, logger *zap.Logger) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	sys := collision.NewSystem(ecs.World,
		collision.WithLogger(logger.Named("collision")),
		collision.WithSettings(Settings()),
	)
	components.Space.SetValue(space, components.SpaceData{System: sys})
	return space
}

// Settings converts cfg.Collision into collision settings.
func Settings() collision.Settings {
	return collision.Settings{
		MaxSpeed:      cfg.Collision.MaxSpeed,
		Epsilon:       cfg.Collision.Epsilon,
		ShiftDelta:    cfg.Collision.ShiftDelta,
		Forgiveness:   cfg.Collision.Forgiveness,
		ResolvePasses: cfg.Collision.ResolvePasses,
	}
}
