package archetypes

import (
	"github.com/automoto/slopecollide/components"
	cfg "github.com/automoto/slopecollide/config"
	"github.com/automoto/slopecollide/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Body = newArchetype(
		tags.Body,
		components.Object,
		components.Physics,
	)
	Platform = newArchetype(
		tags.Platform,
		components.Object,
		components.Platform,
	)
	Crate = newArchetype(
		tags.Crate,
		components.Object,
		components.Physics,
	)
	Coin = newArchetype(
		tags.Coin,
		components.Object,
		components.Collectible,
	)
	TileLayer = newArchetype(
		components.TileLayer,
	)
	Space = newArchetype(
		components.Space,
	)
	Level = newArchetype(
		components.Level,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
