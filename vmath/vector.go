package vmath

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Epsilon is the tolerance used by ApproxEqual and the zero-length guard in Normalize
const Epsilon = 1e-9

// FromInts builds a vector from integer grid components
func FromInts(x, y int) cp.Vector {
	return cp.Vector{X: float64(x), Y: float64(y)}
}

// Normalize returns the unit vector of v, zero-safe
// A zero (or sub-epsilon) vector stays the zero vector instead of producing NaN
func Normalize(v cp.Vector) cp.Vector {
	mag := v.Length()
	if mag < Epsilon {
		return cp.Vector{}
	}
	return cp.Vector{X: v.X / mag, Y: v.Y / mag}
}

// Lerp interpolates scalars a→b by t, t is not clamped
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVector interpolates vectors a→b by t, t is not clamped
func LerpVector(a, b cp.Vector, t float64) cp.Vector {
	return cp.Vector{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// QuadraticBezier evaluates the quadratic curve (p0, p1, p2) at t via nested lerps
func QuadraticBezier(p0, p1, p2 cp.Vector, t float64) cp.Vector {
	return LerpVector(LerpVector(p0, p1, t), LerpVector(p1, p2, t), t)
}

// Clamp01 limits t to [0,1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// ApproxEqual compares vectors component-wise within eps
func ApproxEqual(a, b cp.Vector, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// IsZero reports whether v is exactly the zero vector
func IsZero(v cp.Vector) bool {
	return v.X == 0 && v.Y == 0
}
