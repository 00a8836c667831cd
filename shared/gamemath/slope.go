package gamemath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Orientation names the corner of the tile that is solid. A SouthWest slope
// fills the lower-left triangle; its sloped edge joins the top-left and
// bottom-right corners.
type Orientation uint8

const (
	SouthWest Orientation = iota
	NorthEast
	SouthEast
	NorthWest
)

func (o Orientation) String() string {
	switch o {
	case SouthWest:
		return "southwest"
	case NorthEast:
		return "northeast"
	case SouthEast:
		return "southeast"
	case NorthWest:
		return "northwest"
	default:
		return "unknown"
	}
}

// Deformation shrinks the sloped edge to half of the tile, producing the
// quarter-height slope variants.
type Deformation uint8

const (
	DeformNone   Deformation = iota
	DeformBottom             // plane spans the lower half of the tile
	DeformTop                // plane spans the upper half of the tile
	DeformLeft               // plane spans the left half of the tile
	DeformRight              // plane spans the right half of the tile
)

func (d Deformation) String() string {
	switch d {
	case DeformNone:
		return "none"
	case DeformBottom:
		return "bottom"
	case DeformTop:
		return "top"
	case DeformLeft:
		return "left"
	case DeformRight:
		return "right"
	default:
		return "unknown"
	}
}

// Legacy tile data layout: the low two bits hold the orientation, bits 4-6
// hold the deformation.
const (
	slopeDirectionMask = 0x0003
	slopeDeformMask    = 0x0070
	slopeDeformShift   = 4
)

// ErrInvalidSlopeData is returned when legacy tile data names an unknown
// deformation.
var ErrInvalidSlopeData = errors.New("invalid slope tile data")

// Slope is an axis-aligned right triangle described by its bounding box, the
// solid corner and an optional deformation.
type Slope struct {
	Box
	Orientation Orientation
	Deformation Deformation
}

// NewSlope builds a slope over box.
func NewSlope(box Box, o Orientation, d Deformation) Slope {
	return Slope{Box: box, Orientation: o, Deformation: d}
}

// SlopeFromTileData decodes the legacy bitmask used by tilesets.
func SlopeFromTileData(box Box, data int) (Slope, error) {
	d := Deformation((data & slopeDeformMask) >> slopeDeformShift)
	if d > DeformRight || data&^(slopeDirectionMask|slopeDeformMask) != 0 {
		return Slope{}, errors.Wrapf(ErrInvalidSlopeData, "data=%#x", data)
	}
	return NewSlope(box, Orientation(data&slopeDirectionMask), d), nil
}

// TileData encodes the slope shape into the legacy bitmask.
func (s Slope) TileData() int {
	return int(s.Orientation) | int(s.Deformation)<<slopeDeformShift
}

// VerticalFlip mirrors the slope top to bottom, as needed for vertically
// flipped tile layers.
func (s Slope) VerticalFlip() Slope {
	switch s.Orientation {
	case SouthWest:
		s.Orientation = NorthWest
	case NorthWest:
		s.Orientation = SouthWest
	case NorthEast:
		s.Orientation = SouthEast
	case SouthEast:
		s.Orientation = NorthEast
	}
	switch s.Deformation {
	case DeformTop:
		s.Deformation = DeformBottom
	case DeformBottom:
		s.Deformation = DeformTop
	}
	return s
}

// Area returns the part of the tile the sloped edge spans.
func (s Slope) Area() Box {
	b := s.Box
	switch s.Deformation {
	case DeformBottom:
		return Box{P1: mgl64.Vec2{b.Left(), b.Top() + b.Height()/2}, P2: b.P2}
	case DeformTop:
		return Box{P1: b.P1, P2: mgl64.Vec2{b.Right(), b.Top() + b.Height()/2}}
	case DeformLeft:
		return Box{P1: b.P1, P2: mgl64.Vec2{b.Left() + b.Width()/2, b.Bottom()}}
	case DeformRight:
		return Box{P1: mgl64.Vec2{b.Left() + b.Width()/2, b.Top()}, P2: b.P2}
	default:
		return b
	}
}

// PlanePoints returns the two points of the sloped edge. Their order fixes the
// winding so that the plane normal points away from the solid corner.
func (s Slope) PlanePoints() (a, b mgl64.Vec2) {
	area := s.Area()
	switch s.Orientation {
	case NorthEast:
		return area.P2, area.P1
	case SouthEast:
		return mgl64.Vec2{area.Left(), area.Bottom()}, mgl64.Vec2{area.Right(), area.Top()}
	case NorthWest:
		return mgl64.Vec2{area.Right(), area.Top()}, mgl64.Vec2{area.Left(), area.Bottom()}
	default:
		return area.P1, area.P2
	}
}

// Plane returns the unit normal and offset of the sloped edge. A point p lies
// on the solid side when -(p·normal) - offset >= 0.
func (s Slope) Plane() (normal mgl64.Vec2, offset float64) {
	a, b := s.PlanePoints()
	normal = Unit(Perp(b.Sub(a)))
	return normal, -b.Dot(normal)
}

// Corner returns the corner of box that reaches deepest into the solid side
// of the slope.
func (s Slope) Corner(box Box) mgl64.Vec2 {
	switch s.Orientation {
	case NorthEast:
		return mgl64.Vec2{box.Right(), box.Top()}
	case SouthEast:
		return box.P2
	case NorthWest:
		return box.P1
	default:
		return mgl64.Vec2{box.Left(), box.Bottom()}
	}
}

// Depth returns how far p reaches past the sloped edge into the solid side.
// Negative values mean p is on the free side.
func (s Slope) Depth(p mgl64.Vec2) float64 {
	normal, offset := s.Plane()
	return -p.Dot(normal) - offset
}

// SurfaceY returns the y coordinate of the sloped edge at x, clamped to the
// plane area. Vertical edges are not possible for axis-aligned slopes.
func (s Slope) SurfaceY(x float64) float64 {
	a, b := s.PlanePoints()
	if a.X() == b.X() {
		return a.Y()
	}
	lo, hi := a, b
	if lo.X() > hi.X() {
		lo, hi = hi, lo
	}
	x = ClampFloat(x, lo.X(), hi.X())
	t := (x - lo.X()) / (hi.X() - lo.X())
	return lo.Y() + t*(hi.Y()-lo.Y())
}
