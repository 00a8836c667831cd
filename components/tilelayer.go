package components

import (
	"github.com/automoto/slopecollide/collision"
	"github.com/automoto/slopecollide/tilegrid"
	"github.com/yohamta/donburi"
)

type TileLayerData struct {
	Name string
	Grid *tilegrid.Grid
	Map  *collision.TileMap

	// Moving layers only
	Path *PlatformData
}

var TileLayer = donburi.NewComponentType[TileLayerData]()
