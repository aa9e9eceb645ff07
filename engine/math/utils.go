package math

import (
	m "math"

	"golang.org/x/exp/constraints"
)

// Clamp returns the value `f` clamped to the range [low, high].
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// WrapAngle folds radians into [-PI, PI).
func WrapAngle(radians float32) float32 {
	r := float32(m.Mod(float64(radians+K_PI), float64(K_PI_2)))
	if r < 0 {
		r += K_PI_2
	}
	return r - K_PI
}
