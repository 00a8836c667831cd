package gamemath

import "math"

// Approach moves speed toward target by at most step.
func Approach(speed, target, step float64) float64 {
	switch d := target - speed; {
	case d > step:
		return speed + step
	case d < -step:
		return speed - step
	}
	return target
}

// ClampSpeed limits the magnitude of speed to max.
func ClampSpeed(speed, max float64) float64 {
	return ClampFloat(speed, -max, max)
}

// ClampFloat constrains value to [lo, hi].
func ClampFloat(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(value, hi))
}
