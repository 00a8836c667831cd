// Package systems holds the per-frame ECS systems of a level.
package systems

import (
	"github.com/automoto/slopecollide/components"
	"github.com/automoto/slopecollide/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Systems runs the frame of one world. donburi caches query results inside
// the query, so every world stepped on its own goroutine needs its own
// Systems.
type Systems struct {
	bodies    *donburi.Query
	platforms *donburi.Query
	layers    *donburi.Query
	coins     *donburi.Query
	levels    *donburi.Query
	spaces    *donburi.Query
}

func New() *Systems {
	return &Systems{
		bodies:    donburi.NewQuery(filter.Contains(components.Physics)),
		platforms: donburi.NewQuery(filter.Contains(components.Platform)),
		layers:    donburi.NewQuery(filter.Contains(components.TileLayer)),
		coins:     donburi.NewQuery(filter.Contains(tags.Coin, components.Collectible)),
		levels:    donburi.NewQuery(filter.Contains(components.Level)),
		spaces:    donburi.NewQuery(filter.Contains(components.Space)),
	}
}

func (s *Systems) space(w donburi.World) *components.SpaceData {
	e, ok := s.spaces.First(w)
	if !ok {
		panic("world has no collision space")
	}
	return components.Space.Get(e)
}
