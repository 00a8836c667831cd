package components

import (
	"github.com/automoto/slopecollide/shared/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

type LevelData struct {
	Level *leveldata.Level
	Score int
	Frame int
}

var Level = donburi.NewComponentType[LevelData]()

// GetLevel returns the level entry of the world, if one was created.
func GetLevel(w donburi.World) (*donburi.Entry, bool) {
	return donburi.NewQuery(filter.Contains(Level)).First(w)
}
