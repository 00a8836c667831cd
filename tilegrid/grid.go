// Package tilegrid stores the tiles of a level layer in a resolv space and
// hands them to the collision engine.
package tilegrid

import (
	"slices"

	"github.com/automoto/slopecollide/collision"
	"github.com/automoto/slopecollide/shared/gamemath"
	"github.com/automoto/slopecollide/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/solarlune/resolv"
)

// Resolv tags
const (
	tagTile  = "tile"
	tagProbe = "probe"
)

// Grid is a collision.TileSource backed by a resolv space. Tiles keep their
// cells when the layer moves; the grid only tracks the accumulated offset.
type Grid struct {
	space  *resolv.Space
	probe  *resolv.Object
	tiles  []collision.Tile
	offset mgl64.Vec2
}

var _ collision.TileSource = (*Grid)(nil)

// New creates an empty grid covering width x height world units.
func New(width, height, cellSize int) *Grid {
	space := resolv.NewSpace(width, height, cellSize, cellSize)
	probe := resolv.NewObject(0, 0, 1, 1, tagProbe)
	space.Add(probe)
	return &Grid{space: space, probe: probe}
}

// FromLayer builds a grid from a parsed tile layer.
func FromLayer(layer leveldata.TileLayer, width, height int, tileSize float64) (*Grid, error) {
	g := New(width, height, int(tileSize))
	for _, t := range layer.Tiles {
		tile, err := convert(t)
		if err != nil {
			return nil, errors.Wrapf(err, "tile at %v,%v", t.X, t.Y)
		}
		g.Add(tile)
	}
	return g, nil
}

func convert(t leveldata.Tile) (collision.Tile, error) {
	attributes, err := collision.ParseAttributes(t.Attributes)
	if err != nil {
		return collision.Tile{}, err
	}
	box := gamemath.BoxFromSize(mgl64.Vec2{t.X, t.Y}, t.W, t.H)
	if !t.HasSlope {
		return collision.Tile{Box: box, Attributes: attributes}, nil
	}

	slope, err := gamemath.SlopeFromTileData(box, t.Slope)
	if err != nil {
		return collision.Tile{}, err
	}
	if t.VerticalFlip {
		slope = slope.VerticalFlip()
	}
	return collision.NewSlopeTile(slope, attributes), nil
}

// Add stores a tile at its current position.
func (g *Grid) Add(tile collision.Tile) {
	base := tile.Box.Moved(g.offset.Mul(-1))
	obj := resolv.NewObject(base.Left(), base.Top(), base.Width(), base.Height(), tagTile)
	obj.SetShape(resolv.NewRectangle(0, 0, base.Width(), base.Height()))
	obj.Data = len(g.tiles)
	g.space.Add(obj)

	tile.Box = base
	tile.Slope.Box = tile.Slope.Box.Moved(g.offset.Mul(-1))
	g.tiles = append(g.tiles, tile)
}

// Len returns the number of stored tiles.
func (g *Grid) Len() int { return len(g.tiles) }

// Offset returns how far the layer moved since it was built.
func (g *Grid) Offset() mgl64.Vec2 { return g.offset }

// Translate moves every tile by v.
func (g *Grid) Translate(v mgl64.Vec2) {
	g.offset = g.offset.Add(v)
}

// TilesOverlapping returns the tiles touching area, edges included, in the
// order they were added.
func (g *Grid) TilesOverlapping(area gamemath.Box) []collision.Tile {
	base := area.Moved(g.offset.Mul(-1)).Grown(1)
	g.probe.X, g.probe.Y = base.Left(), base.Top()
	g.probe.W, g.probe.H = base.Width(), base.Height()
	g.probe.Update()

	check := g.probe.Check(0, 0, tagTile)
	if check == nil {
		return nil
	}

	var found []int
	for _, obj := range check.ObjectsByTags(tagTile) {
		found = append(found, obj.Data.(int))
	}
	slices.Sort(found)

	out := make([]collision.Tile, 0, len(found))
	for _, i := range slices.Compact(found) {
		tile := g.tiles[i]
		tile.Box = tile.Box.Moved(g.offset)
		tile.Slope.Box = tile.Slope.Box.Moved(g.offset)
		if collision.Intersects(area, tile.Box) {
			out = append(out, tile)
		}
	}
	return out
}
