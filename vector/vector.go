package vector

import (
	"fmt"
	"math"
)

type V3 struct {
	X, Y, Z float64
}

func (v V3) String() string {
	return fmt.Sprintf(`(%.2f, %.2f, %.2f)`, v.X, v.Y, v.Z)
}

func (v V3) anyNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

func (v V3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v V3) Dot(o V3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v V3) Cross(o V3) V3 {
	return V3{
		v.Y*o.Z - o.Y*v.Z,
		o.X*v.Z - v.X*o.Z,
		v.X*o.Y - o.X*v.Y,
	}
}

func (v V3) Normalized() V3 {
	if v.anyNaN() {
		panic(`NaN v`)
	}
	if v.Length() == 0 {
		/* Not strictly mathematically correct */
		return v
	}
	return v.Scaled(1 / v.Length())
}

// WithLength keeps the direction of v and rescales it to l.
func (v V3) WithLength(l float64) V3 {
	return v.Normalized().Scaled(l)
}

func (v V3) Sub(o V3) V3 {
	return V3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v V3) Add(o V3) V3 {
	return V3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v V3) Scaled(n float64) V3 {
	return V3{v.X * n, v.Y * n, v.Z * n}
}

func (v V3) Distance(o V3) float64 {
	if v.anyNaN() {
		panic(`NaN v`)
	}
	if o.anyNaN() {
		panic(`NaN o`)
	}
	return v.Sub(o).Length()
}

type Plane [2]V3 // Normal, Point on plane

func (p *Plane) Distance(px V3) float64 {
	n := p[0]
	p0 := p[1]

	D := n.Scaled(-1).Dot(p0)

	return n.Dot(px) + D
}

// Ray is a half line starting at Origin. Dir is expected to be normalized.
type Ray struct {
	Origin, Dir V3
}

func (r Ray) At(t float64) V3 {
	return r.Origin.Add(r.Dir.Scaled(t))
}

// IntersectSphere returns the distance along the ray to the first point where
// it enters the sphere. ok is false if the ray misses or the sphere is
// entirely behind the origin.
func (r Ray) IntersectSphere(center V3, radius float64) (t float64, ok bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	t = -b - sq
	if t < 0 {
		// Origin inside the sphere
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}

	return t, true
}
