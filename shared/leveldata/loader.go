package leveldata

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"
	"github.com/pkg/errors"
)

// Object group names read from the map.
const (
	GroupSpawns    = "Spawns"
	GroupPlatforms = "Platforms"
	GroupCrates    = "Crates"
	GroupCoins     = "Coins"
)

// DefaultAttributes is used for tiles whose tileset entry names none.
var DefaultAttributes = []string{"solid"}

// Load parses a TMX file. It takes an fs.FS so callers can pass embed.FS or
// os.DirFS.
func Load(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, errors.Wrapf(err, "load TMX %s", tmxPath)
	}
	if levelMap.TileWidth != levelMap.TileHeight {
		return nil, errors.Errorf("%s: tiles must be square, got %dx%d",
			tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	level := &Level{
		Name:      strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		MapWidth:  levelMap.Width * levelMap.TileWidth,
		MapHeight: levelMap.Height * levelMap.TileHeight,
		TileSize:  float64(levelMap.TileWidth),
	}

	for _, layer := range levelMap.Layers {
		if layer.Properties.GetBool("decoration") {
			continue
		}
		tl, err := loadLayer(levelMap, layer)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: layer %q", tmxPath, layer.Name)
		}
		level.Layers = append(level.Layers, tl)
	}

	for _, og := range levelMap.ObjectGroups {
		for _, o := range og.Objects {
			rect := Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
			switch og.Name {
			case GroupSpawns:
				spawn := SpawnPoint{
					X:     o.X,
					Y:     o.Y,
					Index: o.Properties.GetInt("spawnIndex"),
				}
				if raw, ok := property(o.Properties, "walk"); ok {
					walk, err := strconv.ParseFloat(raw, 64)
					if err != nil {
						return nil, errors.Wrapf(err, "%s: spawn %d: walk", tmxPath, o.ID)
					}
					spawn.Walk = &walk
				}
				level.Spawns = append(level.Spawns, spawn)
			case GroupPlatforms:
				level.Platforms = append(level.Platforms, PlatformPath{
					Rect:     rect,
					ToX:      o.Properties.GetFloat("toX"),
					ToY:      o.Properties.GetFloat("toY"),
					Duration: float32(o.Properties.GetFloat("duration")),
				})
			case GroupCrates:
				level.Crates = append(level.Crates, rect)
			case GroupCoins:
				level.Coins = append(level.Coins, rect)
			}
		}
	}

	// Sort spawns by index, then left-to-right, for consistent assignment
	sort.SliceStable(level.Spawns, func(i, j int) bool {
		if level.Spawns[i].Index != level.Spawns[j].Index {
			return level.Spawns[i].Index < level.Spawns[j].Index
		}
		return level.Spawns[i].X < level.Spawns[j].X
	})

	return level, nil
}

func loadLayer(levelMap *tiled.Map, layer *tiled.Layer) (TileLayer, error) {
	tl := TileLayer{
		Name:     layer.Name,
		PathX:    layer.Properties.GetFloat("pathX"),
		PathY:    layer.Properties.GetFloat("pathY"),
		Duration: float32(layer.Properties.GetFloat("duration")),
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	for y := 0; y < levelMap.Height; y++ {
		for x := 0; x < levelMap.Width; x++ {
			i := y*levelMap.Width + x
			if i >= len(layer.Tiles) {
				return tl, errors.Errorf("tile data too short: %d of %d tiles",
					len(layer.Tiles), levelMap.Width*levelMap.Height)
			}
			lt := layer.Tiles[i]
			if lt.IsNil() {
				continue
			}

			tile := Tile{
				X:            float64(x) * tileW,
				Y:            float64(y) * tileH,
				W:            tileW,
				H:            tileH,
				Attributes:   DefaultAttributes,
				VerticalFlip: lt.VerticalFlip,
			}
			if tilesetTile, err := lt.Tileset.GetTilesetTile(lt.ID); err == nil {
				if names := tilesetTile.Properties.GetString("attributes"); names != "" {
					tile.Attributes = splitNames(names)
				}
				if raw, ok := property(tilesetTile.Properties, "slope"); ok {
					data, err := strconv.Atoi(raw)
					if err != nil {
						return tl, errors.Wrapf(err, "tile %d: slope data", lt.ID)
					}
					tile.Slope = data
					tile.HasSlope = true
				}
			}
			tl.Tiles = append(tl.Tiles, tile)
		}
	}
	return tl, nil
}

func property(props tiled.Properties, name string) (string, bool) {
	for _, p := range props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, strings.ToLower(name))
		}
	}
	return names
}

// LoadAll discovers all .tmx files in levelsDir within fsys, loads each, and
// returns them keyed by stem name plus a sorted list of names.
func LoadAll(fsys fs.FS, levelsDir string) (map[string]*Level, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "glob %s", pattern)
	}
	if len(matches) == 0 {
		return nil, nil, errors.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		level, err := Load(fsys, path)
		if err != nil {
			return nil, nil, err
		}
		levels[level.Name] = level
		names = append(names, level.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
