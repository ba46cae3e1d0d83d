package common

import "math"

// Gravity is the default world gravity magnitude in metres per second squared.
const Gravity = 9.81

// PhysicsRate is the fixed simulation rate in steps per second.
const PhysicsRate = 50

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MoveTowards steps current toward target by at most maxDelta and never
// overshoots the target.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// ClampMagnitude2 scales (x, y) down so its length does not exceed max.
func ClampMagnitude2(x, y, max float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l <= max || l == 0 {
		return x, y
	}
	s := max / l
	return x * s, y * s
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
