package collision

import (
	"slices"

	"github.com/automoto/slopecollide/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Tile is one cell of a solid tile layer as handed over by the tile grid.
// Slope is only meaningful when Attributes carries TileSlope; its box is the
// tile box.
type Tile struct {
	Box        gamemath.Box
	Attributes uint32
	Slope      gamemath.Slope
}

// NewSlopeTile builds a slope tile from its shape.
func NewSlopeTile(slope gamemath.Slope, attributes uint32) Tile {
	return Tile{Box: slope.Box, Attributes: attributes | TileSlope, Slope: slope}
}

func (t Tile) IsSolid() bool    { return t.Attributes&TileSolid != 0 }
func (t Tile) IsUnisolid() bool { return t.Attributes&TileUnisolid != 0 }
func (t Tile) IsSlope() bool    { return t.Attributes&TileSlope != 0 }

// Sweep runs the matching sweep test for the tile shape.
func (t Tile) Sweep(moving gamemath.Box, movement mgl64.Vec2) (Hit, bool) {
	if t.IsSlope() {
		return BoxVsSlope(moving, movement, t.Slope)
	}
	return BoxVsBox(moving, movement, t.Box)
}

// Touches reports whether box touches the solid part of the tile.
func (t Tile) Touches(box gamemath.Box) bool {
	if !Intersects(box, t.Box) {
		return false
	}
	if t.IsSlope() {
		return t.Slope.Depth(t.Slope.Corner(box)) >= 0
	}
	return true
}

// TileSource supplies the tiles of a layer that overlap an area. Broad phase
// lookup is up to the implementation.
type TileSource interface {
	TilesOverlapping(area gamemath.Box) []Tile
}

// TileMap is a solid tile layer registered with a System. A tile map can move
// as a whole; the owner moves the tile geometry and reports the displacement
// through SetMovement.
type TileMap struct {
	entity   donburi.Entity
	sys      *System
	source   TileSource
	movement mgl64.Vec2
	riders   []donburi.Entity
}

func (t *TileMap) Entity() donburi.Entity { return t.entity }
func (t *TileMap) Source() TileSource     { return t.source }
func (t *TileMap) Movement() mgl64.Vec2   { return t.movement }

// SetMovement records how far the layer moved this frame.
func (t *TileMap) SetMovement(m mgl64.Vec2) { t.movement = m }

// HitsObjectBottom records that o landed on one of the layer's tiles.
func (t *TileMap) HitsObjectBottom(o *Object) {
	if !slices.Contains(t.riders, o.entity) {
		t.riders = append(t.riders, o.entity)
	}
}

// NotifyObjectRemoval forgets o as a rider.
func (t *TileMap) NotifyObjectRemoval(o *Object) {
	t.riders = slices.DeleteFunc(t.riders, func(e donburi.Entity) bool {
		return e == o.entity
	})
}

func (t *TileMap) clearBottomCollisionList() {
	t.riders = t.riders[:0]
}

// Riders returns the live objects resting on the layer.
func (t *TileMap) Riders() []*Object {
	riders := make([]*Object, 0, len(t.riders))
	for _, e := range t.riders {
		if r := t.sys.lookup(e); r != nil {
			riders = append(riders, r)
		}
	}
	return riders
}

// PropagateMovement hands movement to everything resting on the layer and,
// transitively, to their riders.
func (t *TileMap) PropagateMovement(movement mgl64.Vec2) {
	visited := make(map[donburi.Entity]struct{})
	for _, e := range t.riders {
		rider := t.sys.lookup(e)
		if rider == nil || rider.group == Static {
			continue
		}
		if _, seen := visited[e]; seen {
			continue
		}
		visited[e] = struct{}{}
		t.sys.ground.RegisterTileMovement(t, rider, movement)
		rider.propagate(movement, visited)
	}
}
