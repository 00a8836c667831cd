package collision

import (
	"encoding/binary"
	"math"

	"github.com/automoto/slopecollide/shared/gamemath"
	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// IsFreeOfTiles reports whether rect touches no solid tile.
func (s *System) IsFreeOfTiles(rect gamemath.Box, ignoreUnisolid bool) bool {
	return s.IsFreeOfTileType(rect, ignoreUnisolid, TileSolid)
}

// IsFreeOfTileType reports whether rect overlaps no tile carrying any of the
// attributes in tileType. Slopes only count where rect reaches past their
// sloped edge.
func (s *System) IsFreeOfTileType(rect gamemath.Box, ignoreUnisolid bool, tileType uint32) bool {
	for _, tm := range s.tilemaps {
		for _, tile := range tm.source.TilesOverlapping(rect) {
			if tile.Attributes&tileType == 0 {
				continue
			}
			if ignoreUnisolid && tile.IsUnisolid() {
				continue
			}
			if !rect.Overlaps(tile.Box) {
				continue
			}
			if tile.IsSlope() && tile.Slope.Depth(tile.Slope.Corner(rect)) <= 0 {
				continue
			}
			return false
		}
	}
	return true
}

// IsFreeOfStatics reports whether rect overlaps neither solid tiles nor
// Static objects other than ignore.
func (s *System) IsFreeOfStatics(rect gamemath.Box, ignore *Object, ignoreUnisolid bool) bool {
	if !s.IsFreeOfTiles(rect, ignoreUnisolid) {
		return false
	}
	return s.isFreeOf(rect, ignore, func(g Group) bool { return g == Static })
}

// IsFreeOfMovingStatics reports whether rect overlaps neither solid tiles nor
// Static, Moving or MovingStatic objects other than ignore.
func (s *System) IsFreeOfMovingStatics(rect gamemath.Box, ignore *Object) bool {
	if !s.IsFreeOfTiles(rect, false) {
		return false
	}
	return s.isFreeOf(rect, ignore, func(g Group) bool {
		return g == Static || g == Moving || g == MovingStatic
	})
}

// IsFreeOfSpecificallyMovingStatics only looks at MovingStatic objects.
func (s *System) IsFreeOfSpecificallyMovingStatics(rect gamemath.Box, ignore *Object) bool {
	return s.isFreeOf(rect, ignore, func(g Group) bool { return g == MovingStatic })
}

func (s *System) isFreeOf(rect gamemath.Box, ignore *Object, match func(Group) bool) bool {
	for _, o := range s.objects {
		if o == ignore || !o.IsValid() || !match(o.group) {
			continue
		}
		if rect.Overlaps(o.bbox) {
			return false
		}
	}
	return true
}

// RaycastResult is what a line first ran into. Exactly one of Tile and Object
// is set.
type RaycastResult struct {
	Box    gamemath.Box
	Tile   *Tile
	Object *Object
}

// FirstLineIntersection returns the first solid tile, and unless
// ignoreObjects is set the first Static, Moving or MovingStatic object,
// crossed by the segment from start to end. Tiles are checked before objects.
func (s *System) FirstLineIntersection(start, end mgl64.Vec2, ignoreObjects bool, ignore *Object) (RaycastResult, bool) {
	area := gamemath.Box{
		P1: mgl64.Vec2{math.Min(start.X(), end.X()), math.Min(start.Y(), end.Y())},
		P2: mgl64.Vec2{math.Max(start.X(), end.X()), math.Max(start.Y(), end.Y())},
	}
	for _, tm := range s.tilemaps {
		for _, tile := range tm.source.TilesOverlapping(area) {
			if !tile.IsSolid() || !lineHitsTile(tile, start, end) {
				continue
			}
			return RaycastResult{Box: tile.Box, Tile: &tile}, true
		}
	}
	if ignoreObjects {
		return RaycastResult{}, false
	}
	for _, o := range s.objects {
		if o == ignore || !o.IsValid() {
			continue
		}
		if o.group != Static && o.group != Moving && o.group != MovingStatic {
			continue
		}
		if BoxIntersectsLine(o.bbox, start, end) {
			return RaycastResult{Box: o.bbox, Object: o}, true
		}
	}
	return RaycastResult{}, false
}

func lineHitsTile(tile Tile, start, end mgl64.Vec2) bool {
	if !tile.IsSlope() {
		return BoxIntersectsLine(tile.Box, start, end) || tile.Box.Contains(start)
	}
	inside := func(p mgl64.Vec2) bool {
		return tile.Box.Contains(p) && tile.Slope.Depth(p) >= 0
	}
	if inside(start) || inside(end) {
		return true
	}
	a, b := tile.Slope.PlanePoints()
	return LineIntersectsLine(a, b, start, end)
}

// FreeLineOfSight reports whether nothing blocks the segment.
func (s *System) FreeLineOfSight(start, end mgl64.Vec2, ignoreObjects bool, ignore *Object) bool {
	_, hit := s.FirstLineIntersection(start, end, ignoreObjects, ignore)
	return !hit
}

// NearbyObjects returns the objects whose box lies within maxDistance of
// center.
func (s *System) NearbyObjects(center mgl64.Vec2, maxDistance float64) []*Object {
	var nearby []*Object
	for _, o := range s.objects {
		if o.bbox.Distance(center) <= maxDistance {
			nearby = append(nearby, o)
		}
	}
	return nearby
}

// Digest hashes the committed boxes of all objects in registration order.
// Two runs fed the same inputs produce the same digest every frame.
func (s *System) Digest() uint64 {
	h := xxhash.New()
	var buf [8]byte
	write := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	for _, o := range s.objects {
		binary.LittleEndian.PutUint64(buf[:], uint64(o.entity.Id()))
		_, _ = h.Write(buf[:])
		write(o.bbox.P1.X())
		write(o.bbox.P1.Y())
		write(o.bbox.P2.X())
		write(o.bbox.P2.Y())
	}
	return h.Sum64()
}
