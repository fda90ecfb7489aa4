package orrery

import (
	"math"

	"git.c3pb.de/farhaven/solar/vector"
)

// Advance moves a body along its circular orbit in the XZ plane. The angle is
// not wrapped.
func Advance(angle, speed, multiplier, distance float64) (float64, vector.V3) {
	next := angle + speed*multiplier
	return next, OrbitPosition(next, distance)
}

func OrbitPosition(angle, distance float64) vector.V3 {
	return vector.V3{X: distance * math.Cos(angle), Z: distance * math.Sin(angle)}
}
