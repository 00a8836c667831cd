package collision

import (
	"math"

	"github.com/automoto/slopecollide/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// MovementEpsilon is the magnitude below which a movement component does not
// constrain its axis.
const MovementEpsilon = 1e-4

// BoxVsBox resolves a moving box that already overlaps obstacle. For each axis
// the leading edge of the moving box (in its direction of travel) is measured
// against the obstacle's facing edge; the depth divided by the speed on that
// axis is the time needed to back out. The axis that backs out first wins, so
// the normal is always axis-aligned. Equal times resolve vertically.
//
// It reports false when the boxes do not overlap or when both movement
// components are within MovementEpsilon.
func BoxVsBox(moving gamemath.Box, movement mgl64.Vec2, obstacle gamemath.Box) (Hit, bool) {
	if !moving.Overlaps(obstacle) {
		return Hit{}, false
	}
	if math.Abs(movement.X()) <= MovementEpsilon && math.Abs(movement.Y()) <= MovementEpsilon {
		return Hit{}, false
	}

	tx, dx, nx := axisExit(moving.Left(), moving.Right(), obstacle.Left(), obstacle.Right(), movement.X())
	ty, dy, ny := axisExit(moving.Top(), moving.Bottom(), obstacle.Top(), obstacle.Bottom(), movement.Y())

	if ty <= tx {
		return Hit{Time: ty, Depth: dy, Normal: mgl64.Vec2{0, ny}}, true
	}
	return Hit{Time: tx, Depth: dx, Normal: mgl64.Vec2{nx, 0}}, true
}

// axisExit returns the exit time, penetration depth and normal sign along one
// axis. A near-zero speed leaves the axis unconstrained (infinite time).
func axisExit(lo, hi, obstacleLo, obstacleHi, speed float64) (time, depth, normal float64) {
	switch {
	case speed > MovementEpsilon:
		depth = hi - obstacleLo
		return depth / speed, depth, -1
	case speed < -MovementEpsilon:
		depth = obstacleHi - lo
		return depth / -speed, depth, 1
	default:
		return math.Inf(1), 0, 0
	}
}

// BoxVsSlope resolves a moving box against an axis-aligned slope. The slope's
// bounding box is tested first with BoxVsBox; that hit is kept unless the
// sloped edge resolves earlier. The box corner that reaches into the solid
// side (see gamemath.Slope.Corner) is measured against the slope plane; a
// corner still on the free side means no collision at all.
func BoxVsSlope(moving gamemath.Box, movement mgl64.Vec2, slope gamemath.Slope) (Hit, bool) {
	hit, ok := BoxVsBox(moving, movement, slope.Box)
	if !ok {
		return Hit{}, false
	}

	normal, offset := slope.Plane()
	depth := -slope.Corner(moving).Dot(normal) - offset
	if depth < 0 {
		return Hit{}, false
	}

	t := math.Inf(1)
	if approach := -normal.Dot(movement); approach > MovementEpsilon {
		t = depth / approach
	}
	if t < hit.Time || (t == hit.Time && depth <= hit.Depth) {
		hit = Hit{Time: t, Depth: depth, Normal: normal}
	}
	return hit, true
}

// Intersects reports whether two boxes overlap or touch.
func Intersects(a, b gamemath.Box) bool {
	if a.Right() < b.Left() || a.Left() > b.Right() {
		return false
	}
	if a.Bottom() < b.Top() || a.Top() > b.Bottom() {
		return false
	}
	return true
}

// LineIntersectsLine reports whether segment a1-a2 crosses segment b1-b2,
// including collinear overlap.
func LineIntersectsLine(a1, a2, b1, b2 mgl64.Vec2) bool {
	x1, y1, x2, y2 := a1.X(), a1.Y(), a2.X(), a2.Y()
	x3, y3, x4, y4 := b1.X(), b1.Y(), b2.X(), b2.Y()

	num := (y2-y1)*(x4-x3) - (x2-x1)*(y4-y3)
	den1 := (y4-y2)*(x3-x4) + (x2-x4)*(y3-y4)
	den2 := (y4-y2)*(x1-x2) + (x2-x4)*(y1-y2)

	if num < 0 {
		num, den1, den2 = -num, -den1, -den2
	}

	if num == 0 {
		// Parallel: only collinear segments can touch.
		if (y1-y2)*(x3-x2) != (x1-x2)*(y3-y2) {
			return false
		}
		if x1 == x2 {
			x1, y1 = y1, x1
			x2, y2 = y2, x2
			x3, y3 = y3, x3
			x4, y4 = y4, x4
		}
		if x1 > x2 {
			x1, x2 = x2, x1
		}
		if x3 > x4 {
			x3, x4 = x4, x3
		}
		return x1 <= x4 && x2 >= x3
	}

	return den1 >= 0 && den1 <= num && den2 >= 0 && den2 <= num
}

// BoxIntersectsLine reports whether the segment crosses any edge of the box.
// A segment fully inside the box does not count.
func BoxIntersectsLine(b gamemath.Box, start, end mgl64.Vec2) bool {
	p1 := b.P1
	p2 := mgl64.Vec2{b.Right(), b.Top()}
	p3 := b.P2
	p4 := mgl64.Vec2{b.Left(), b.Bottom()}
	return LineIntersectsLine(p1, p2, start, end) ||
		LineIntersectsLine(p2, p3, start, end) ||
		LineIntersectsLine(p3, p4, start, end) ||
		LineIntersectsLine(p4, p1, start, end)
}
