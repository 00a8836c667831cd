package components

import (
	"github.com/automoto/slopecollide/collision"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

type SpaceData struct {
	*collision.System
}

var Space = donburi.NewComponentType[SpaceData]()

// GetSpace returns the collision system of the world. The lookup builds its
// own query: a component type's built-in query is shared by every world.
func GetSpace(w donburi.World) *collision.System {
	e, ok := donburi.NewQuery(filter.Contains(Space)).First(w)
	if !ok {
		panic("world has no collision space")
	}
	return Space.Get(e).System
}
