package vector

import "math"

// Spherical coordinates around the origin with Y up. Phi is the polar angle
// measured from +Y, Theta the azimuth measured from +Z towards +X.
type Spherical struct {
	Radius, Phi, Theta float64
}

func SphericalFrom(v V3) Spherical {
	r := v.Length()
	if r == 0 {
		return Spherical{}
	}

	return Spherical{
		Radius: r,
		Phi:    math.Acos(math.Max(-1, math.Min(1, v.Y/r))),
		Theta:  math.Atan2(v.X, v.Z),
	}
}

func (s Spherical) V3() V3 {
	sp := math.Sin(s.Phi) * s.Radius
	return V3{
		X: sp * math.Sin(s.Theta),
		Y: math.Cos(s.Phi) * s.Radius,
		Z: sp * math.Cos(s.Theta),
	}
}
