// Package gamemath holds the pure geometry shared by the collision core and
// its adapters: vectors, axis-aligned boxes and axis-aligned slopes. It has no
// dependencies on donburi or resolv.
package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec is a shorthand constructor for mgl64.Vec2.
func Vec(x, y float64) mgl64.Vec2 {
	return mgl64.Vec2{x, y}
}

// Perp returns v rotated a quarter turn: (v.y, -v.x).
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{v.Y(), -v.X()}
}

// Unit returns v scaled to length 1. The zero vector is returned unchanged.
func Unit(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// IsZero reports whether both components are exactly zero.
func IsZero(v mgl64.Vec2) bool {
	return v.X() == 0 && v.Y() == 0
}

// ClampLength scales v down so its length does not exceed max.
func ClampLength(v mgl64.Vec2, max float64) mgl64.Vec2 {
	if l := v.Len(); l > max {
		return v.Mul(max / l)
	}
	return v
}

// IsFinite reports whether both components are finite numbers.
func IsFinite(v mgl64.Vec2) bool {
	return !math.IsInf(v.X(), 0) && !math.IsNaN(v.X()) &&
		!math.IsInf(v.Y(), 0) && !math.IsNaN(v.Y())
}
