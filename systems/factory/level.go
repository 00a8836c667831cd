package factory

import (
	"github.com/automoto/slopecollide/archetypes"
	"github.com/automoto/slopecollide/components"
	"github.com/automoto/slopecollide/shared/leveldata"
	"github.com/automoto/slopecollide/tilegrid"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateLevel spawns the tile layers and objects of a parsed level. The
// collision space must exist already.
func CreateLevel(ecs *ecs.ECS, level *leveldata.Level) (*donburi.Entry, error) {
	entry := archetypes.Level.Spawn(ecs)
	components.Level.SetValue(entry, components.LevelData{Level: level})

	for _, layer := range level.Layers {
		if _, err := CreateTileLayer(ecs, level, layer); err != nil {
			return nil, errors.Wrapf(err, "level %s", level.Name)
		}
	}
	for _, p := range level.Platforms {
		CreatePlatform(ecs, p.X, p.Y, p.W, p.H, mgl64.Vec2{p.ToX, p.ToY}, p.Duration)
	}
	for _, c := range level.Crates {
		CreateCrate(ecs, c.X, c.Y)
	}
	for _, c := range level.Coins {
		CreateCoin(ecs, c.X, c.Y)
	}
	for _, s := range level.Spawns {
		CreateSpawn(ecs, s)
	}

	return entry, nil
}

// CreateTileLayer registers one tile layer with the collision space.
func CreateTileLayer(ecs *ecs.ECS, level *leveldata.Level, layer leveldata.TileLayer) (*donburi.Entry, error) {
	grid, err := tilegrid.FromLayer(layer, level.MapWidth, level.MapHeight, level.TileSize)
	if err != nil {
		return nil, errors.Wrapf(err, "layer %s", layer.Name)
	}

	entry := archetypes.TileLayer.Spawn(ecs)
	data := components.TileLayerData{
		Name: layer.Name,
		Grid: grid,
		Map:  components.GetSpace(ecs.World).AddTileMap(grid),
	}
	if layer.Moves() {
		path := newPath(mgl64.Vec2{}, mgl64.Vec2{layer.PathX, layer.PathY}, layer.Duration)
		data.Path = &path
	}
	components.TileLayer.SetValue(entry, data)
	return entry, nil
}
