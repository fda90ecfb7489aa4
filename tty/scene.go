package tty

import (
	"math"

	"git.c3pb.de/farhaven/solar/camera"
	"git.c3pb.de/farhaven/solar/orrery"
	"git.c3pb.de/farhaven/solar/session"
	"git.c3pb.de/farhaven/solar/vector"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	ambient      = 0.08
	trailOpacity = 0.5
	ringSamples  = 4 // radial samples across a ring
)

var starColor = colorful.Color{R: 0.7, G: 0.7, B: 0.7}

// painter projects the scene of one frame into a raster.
type painter struct {
	r    *raster
	s    *session.Session
	view mgl64.Mat4
	vp   mgl64.Mat4

	// pixels per world unit at distance 1
	focal float64
}

func newPainter(r *raster, s *session.Session) *painter {
	return &painter{
		r:     r,
		s:     s,
		view:  s.Camera.View(),
		vp:    s.Camera.Projection().Mul4(s.Camera.View()),
		focal: float64(r.h) / 2 / math.Tan(camera.FovY/360.0*math.Pi),
	}
}

// project maps a world position to raster coordinates and its distance
// from the camera. It matches camera.Rig.Project.
func (p *painter) project(v vector.V3) (fx, fy, z float64, ok bool) {
	c := p.vp.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 1})
	if c.W() <= 0 {
		return 0, 0, 0, false
	}
	if z := c.Z() / c.W(); z < -1 || z > 1 {
		return 0, 0, 0, false
	}

	fx = (c.X()/c.W() + 1) / 2 * float64(p.r.w)
	fy = (1 - c.Y()/c.W()) / 2 * float64(p.r.h)
	return fx, fy, v.Distance(p.s.Camera.Pos), true
}

func (p *painter) pixel(v vector.V3) (x, y int, z float64, ok bool) {
	fx, fy, z, ok := p.project(v)
	return int(math.Floor(fx)), int(math.Floor(fy)), z, ok
}

func (p *painter) paint() {
	p.r.clear()

	p.backdrop()
	p.stars()
	p.guides()
	p.sun()
	p.planets()
	p.trails()
}

func (p *painter) backdrop() {
	since := p.s.Since()
	for _, t := range p.s.Orrery.Twinkles() {
		x := int(t.X * float64(p.r.w))
		y := int(t.Y * float64(p.r.h))
		a := t.Alpha(since)
		p.r.plot(x, y, math.Inf(1), colorful.Color{R: a * 0.5, G: a * 0.5, B: a * 0.6})
	}
}

func (p *painter) stars() {
	for _, st := range p.s.Orrery.Stars() {
		if x, y, z, ok := p.pixel(st); ok {
			p.r.plot(x, y, z, starColor)
		}
	}
}

func (p *painter) guides() {
	for _, g := range p.s.Orrery.Guides() {
		p.ring(vector.V3{}, 0, g.Ring)
	}
}

// ring scatters samples over an annulus in the XZ plane around center,
// turned by rot around Y.
func (p *painter) ring(center vector.V3, rot float64, r orrery.Ring) {
	segments := r.Segments * 4
	for i := 0; i < segments; i++ {
		a := 2*math.Pi*float64(i)/float64(segments) + rot
		for j := 0; j < ringSamples; j++ {
			d := r.Inner + (r.Outer-r.Inner)*float64(j)/float64(ringSamples-1)
			v := center.Add(vector.V3{X: d * math.Cos(a), Z: d * math.Sin(a)})
			if x, y, z, ok := p.pixel(v); ok {
				p.r.blend(x, y, z, r.Color, r.Opacity)
			}
		}
	}
}

func (p *painter) sun() {
	sun := p.s.Orrery.Sun()
	c := sun.Color.BlendRgb(sun.Emissive, sun.EmissiveIntensity).Clamped()
	p.sphere(vector.V3{}, sun.Radius, c, false)
}

func (p *painter) planets() {
	for id, st := range p.s.Orrery.States() {
		d, _ := p.s.Orrery.Descriptor(id)
		p.sphere(st.Pos, d.Radius, d.Color, true)
		if d.Ring != nil {
			p.ring(st.Pos, st.Rotation, *d.Ring)
		}
	}
}

// sphere fills the projected disk of a sphere. Lit spheres are shaded by
// the light at the origin.
func (p *painter) sphere(center vector.V3, radius float64, c colorful.Color, lit bool) {
	if p.s.Camera.SphereInFrustum(center, radius) == camera.OUTSIDE {
		return
	}

	fx, fy, dist, ok := p.project(center)
	if !ok || dist <= radius {
		return
	}

	rp := radius / dist * p.focal
	if rp < 0.5 {
		p.r.plot(int(math.Floor(fx)), int(math.Floor(fy)), dist, c)
		return
	}

	light := p.s.Orrery.Light()
	l := light.Pos.Sub(center)
	lv := p.view.Mul4x1(mgl64.Vec4{l.X, l.Y, l.Z, 0}).Vec3()
	if lv.Len() > 0 {
		lv = lv.Normalize()
	}
	intensity := light.Intensity * math.Max(0, 1-l.Length()/light.Range)

	for y := int(math.Floor(fy - rp)); y <= int(math.Ceil(fy+rp)); y++ {
		for x := int(math.Floor(fx - rp)); x <= int(math.Ceil(fx+rp)); x++ {
			nx := (float64(x) + 0.5 - fx) / rp
			ny := -(float64(y) + 0.5 - fy) / rp
			q := nx*nx + ny*ny
			if q > 1 {
				continue
			}
			nz := math.Sqrt(1 - q)

			col := c
			if lit {
				k := ambient + math.Max(0, nx*lv.X()+ny*lv.Y()+nz*lv.Z())*intensity
				col = colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}.Clamped()
			}
			p.r.plot(x, y, dist-radius*nz, col)
		}
	}
}

func (p *painter) trails() {
	p.s.Trails.Each(func(t *orrery.Trail) {
		d, _ := p.s.Orrery.Descriptor(t.Owner)
		for _, pt := range t.Points() {
			if x, y, z, ok := p.pixel(pt); ok {
				p.r.blend(x, y, z, d.Color, trailOpacity)
			}
		}
	})
}
