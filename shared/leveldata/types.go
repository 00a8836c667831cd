// Package leveldata parses TMX level files into plain collision data. It has
// no dependencies on the ECS or the collision engine.
package leveldata

// Level holds everything the simulator needs from a TMX level file.
type Level struct {
	Name      string
	MapWidth  int
	MapHeight int
	TileSize  float64

	Layers    []TileLayer
	Spawns    []SpawnPoint
	Platforms []PlatformPath
	Crates    []Rect
	Coins     []Rect
}

// TileLayer is one tile layer of the map. A layer with a non-zero path
// moves back and forth as a whole.
type TileLayer struct {
	Name     string
	Tiles    []Tile
	PathX    float64
	PathY    float64
	Duration float32
}

// Moves reports whether the layer has a path.
func (l TileLayer) Moves() bool {
	return l.Duration > 0 && (l.PathX != 0 || l.PathY != 0)
}

// Tile is one occupied cell of a tile layer.
type Tile struct {
	X, Y, W, H float64

	// Attributes lists the tile flags by name, e.g. "solid", "ice".
	Attributes []string

	// Slope holds the legacy slope tile data when HasSlope is set.
	Slope    int
	HasSlope bool

	// VerticalFlip is set when the tile is drawn upside down; slopes flip
	// with it.
	VerticalFlip bool
}

// SpawnPoint is where a body enters the level.
type SpawnPoint struct {
	X, Y  float64
	Index int
	Walk  *float64 // Walking speed; nil uses the configured default
}

// PlatformPath is a moving platform travelling from its rectangle to the
// rectangle offset by (ToX, ToY) and back.
type PlatformPath struct {
	Rect
	ToX, ToY float64
	Duration float32
}

// Rect is a plain rectangle in world coordinates.
type Rect struct {
	X, Y, W, H float64
}
