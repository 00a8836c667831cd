package gamemath

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// ErrMalformedBox is returned when a box would be built with P1 below or to
// the right of P2.
var ErrMalformedBox = errors.New("malformed box: p1 must not exceed p2")

// Box is an axis-aligned rectangle. P1 is the top-left corner and P2 the
// bottom-right corner; y grows downward.
type Box struct {
	P1, P2 mgl64.Vec2
}

// NewBox builds a box from two corners, rejecting corners that violate
// P1 <= P2 on either axis.
func NewBox(p1, p2 mgl64.Vec2) (Box, error) {
	if p1.X() > p2.X() || p1.Y() > p2.Y() {
		return Box{}, errors.Wrapf(ErrMalformedBox, "p1=%v p2=%v", p1, p2)
	}
	return Box{P1: p1, P2: p2}, nil
}

// MustBox is like NewBox but panics on malformed corners.
func MustBox(p1, p2 mgl64.Vec2) Box {
	b, err := NewBox(p1, p2)
	if err != nil {
		panic(err)
	}
	return b
}

// BoxFromSize builds a box at pos with the given size. Negative sizes panic.
func BoxFromSize(pos mgl64.Vec2, w, h float64) Box {
	return MustBox(pos, pos.Add(mgl64.Vec2{w, h}))
}

func (b Box) Left() float64   { return b.P1.X() }
func (b Box) Right() float64  { return b.P2.X() }
func (b Box) Top() float64    { return b.P1.Y() }
func (b Box) Bottom() float64 { return b.P2.Y() }

func (b Box) Width() float64  { return b.P2.X() - b.P1.X() }
func (b Box) Height() float64 { return b.P2.Y() - b.P1.Y() }

// Size returns (width, height) as a vector.
func (b Box) Size() mgl64.Vec2 {
	return b.P2.Sub(b.P1)
}

// Area returns width * height.
func (b Box) Area() float64 {
	return b.Width() * b.Height()
}

// Center returns the midpoint of the box.
func (b Box) Center() mgl64.Vec2 {
	return b.P1.Add(b.P2).Mul(0.5)
}

// Overlaps reports whether the interiors of both boxes intersect. Boxes that
// only share an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	if b.P2.X() <= o.P1.X() || b.P1.X() >= o.P2.X() {
		return false
	}
	if b.P2.Y() <= o.P1.Y() || b.P1.Y() >= o.P2.Y() {
		return false
	}
	return true
}

// Contains reports whether p lies inside the box or on its border.
func (b Box) Contains(p mgl64.Vec2) bool {
	return p.X() >= b.P1.X() && p.X() <= b.P2.X() &&
		p.Y() >= b.P1.Y() && p.Y() <= b.P2.Y()
}

// Distance returns the distance from p to the closest point of the box.
func (b Box) Distance(p mgl64.Vec2) float64 {
	dx := math.Max(0, math.Max(b.P1.X()-p.X(), p.X()-b.P2.X()))
	dy := math.Max(0, math.Max(b.P1.Y()-p.Y(), p.Y()-b.P2.Y()))
	return math.Hypot(dx, dy)
}

// Move translates the box in place.
func (b *Box) Move(v mgl64.Vec2) {
	b.P1 = b.P1.Add(v)
	b.P2 = b.P2.Add(v)
}

// Moved returns a translated copy of the box.
func (b Box) Moved(v mgl64.Vec2) Box {
	b.Move(v)
	return b
}

// SetPos moves the top-left corner to pos, keeping the size.
func (b *Box) SetPos(pos mgl64.Vec2) {
	b.Move(pos.Sub(b.P1))
}

// SetSize resizes the box around its top-left corner.
func (b *Box) SetSize(w, h float64) {
	if w < 0 || h < 0 {
		panic(errors.Wrapf(ErrMalformedBox, "size %vx%v", w, h))
	}
	b.P2 = b.P1.Add(mgl64.Vec2{w, h})
}

// SetWidth resizes the box horizontally around its left edge.
func (b *Box) SetWidth(w float64) {
	b.SetSize(w, b.Height())
}

// SetHeight resizes the box vertically around its top edge.
func (b *Box) SetHeight(h float64) {
	b.SetSize(b.Width(), h)
}

// Grown returns the box extended by border on every side.
func (b Box) Grown(border float64) Box {
	d := mgl64.Vec2{border, border}
	return Box{P1: b.P1.Sub(d), P2: b.P2.Add(d)}
}

func (b Box) String() string {
	return fmt.Sprintf("Box(%g,%g %g,%g)", b.P1.X(), b.P1.Y(), b.P2.X(), b.P2.Y())
}
