package camera

import (
	"log"
	"math"

	"git.c3pb.de/farhaven/solar/vector"
)

type FrustumCheckResult int

const (
	INSIDE FrustumCheckResult = iota
	OUTSIDE
	INTERSECT
)

func (r FrustumCheckResult) String() string {
	switch r {
	case INSIDE:
		return "INSIDE"
	case OUTSIDE:
		return "OUTSIDE"
	case INTERSECT:
		return "INTERSECT"
	default:
		log.Printf(`Can't get string for unknown frustum check result: %d`, r)
	}

	return ""
}

func (r *Rig) SphereInFrustum(p vector.V3, radius float64) FrustumCheckResult {
	rv := INSIDE

	for _, pl := range r.frustum.planes {
		d := pl.Distance(p)
		if d < -radius {
			return OUTSIDE
		} else if d < radius {
			rv = INTERSECT
		}
	}

	return rv
}

// update recomputes the frustum planes. Normals point into the frustum.
func (r *Rig) update() {
	t := math.Tan(FovY / 360.0 * math.Pi)
	r.frustum.nearH = t * Near
	r.frustum.nearW = r.frustum.nearH * r.aspect

	fw := r.Target.Sub(r.Pos).Normalized()
	side := fw.Cross(up).Normalized()
	u := side.Cross(fw).Normalized()

	nc := r.Pos.Add(fw.Scaled(Near))
	fc := r.Pos.Add(fw.Scaled(Far))

	planes := []vector.Plane{
		{fw, nc},            // NEARP
		{fw.Scaled(-1), fc}, // FARP
	}

	nh, nw := r.frustum.nearH, r.frustum.nearW

	// TOP
	aux := nc.Add(u.Scaled(nh)).Sub(r.Pos).Normalized()
	normal := aux.Cross(side)
	planes = append(planes, vector.Plane{normal, nc.Add(u.Scaled(nh))})

	// BOTTOM
	aux = nc.Sub(u.Scaled(nh)).Sub(r.Pos).Normalized()
	normal = side.Cross(aux)
	planes = append(planes, vector.Plane{normal, nc.Sub(u.Scaled(nh))})

	// LEFT
	aux = nc.Sub(side.Scaled(nw)).Sub(r.Pos).Normalized()
	normal = aux.Cross(u)
	planes = append(planes, vector.Plane{normal, nc.Sub(side.Scaled(nw))})

	// RIGHT
	aux = nc.Add(side.Scaled(nw)).Sub(r.Pos).Normalized()
	normal = u.Cross(aux)
	planes = append(planes, vector.Plane{normal, nc.Add(side.Scaled(nw))})

	r.frustum.planes = planes
}
