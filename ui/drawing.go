package ui

import (
	"math"

	"git.c3pb.de/farhaven/solar/camera"
	"git.c3pb.de/farhaven/solar/orrery"
	"git.c3pb.de/farhaven/solar/vector"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	trailOpacity = 0.5
	starSize     = 1.5
)

func (w *Window) draw() {
	gl.Viewport(0, 0, int32(w.fbW), int32(w.fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	w.drawBackdrop()

	proj := w.s.Camera.Projection()
	view := w.s.Camera.View()

	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixd(&proj[0])
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadMatrixd(&view[0])

	light := w.s.Orrery.Light()
	pos := []float32{float32(light.Pos.X), float32(light.Pos.Y), float32(light.Pos.Z), 1}
	gl.Lightfv(gl.LIGHT0, gl.POSITION, &pos[0])

	w.drawStars()
	w.drawSun()
	w.drawPlanets()
	w.drawGuides()
	w.drawTrails()

	w.drawHud()
}

func (w *Window) drawStars() {
	if w.nstars == 0 {
		return
	}

	gl.PointSize(starSize)
	gl.Color3f(1, 1, 1)

	gl.BindBuffer(gl.ARRAY_BUFFER, w.stars)
	gl.EnableClientState(gl.VERTEX_ARRAY)
	gl.VertexPointer(3, gl.FLOAT, 0, nil)
	gl.DrawArrays(gl.POINTS, 0, w.nstars)
	gl.DisableClientState(gl.VERTEX_ARRAY)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (w *Window) drawSun() {
	sun := w.s.Orrery.Sun()
	c := sun.Color.BlendRgb(sun.Emissive, sun.EmissiveIntensity).Clamped()

	gl.MatrixMode(gl.MODELVIEW)
	gl.PushMatrix()
	defer gl.PopMatrix()

	gl.Rotated(degrees(sun.Rotation), 0, 1, 0)
	drawSphere(vector.V3{}, sun.Radius, c, false)
}

func (w *Window) drawPlanets() {
	for id, st := range w.s.Orrery.States() {
		d, _ := w.s.Orrery.Descriptor(id)

		if w.s.Camera.SphereInFrustum(st.Pos, d.Radius+ringReach(d.Ring)) == camera.OUTSIDE {
			continue
		}

		gl.MatrixMode(gl.MODELVIEW)
		gl.PushMatrix()
		gl.Translated(st.Pos.X, st.Pos.Y, st.Pos.Z)
		gl.Rotated(degrees(st.Rotation), 0, 1, 0)

		drawSphere(vector.V3{}, d.Radius, d.Color, true)
		if d.Ring != nil {
			drawRing(*d.Ring)
		}

		gl.PopMatrix()
	}
}

func ringReach(r *orrery.Ring) float64 {
	if r == nil {
		return 0
	}
	return r.Outer
}

func (w *Window) drawGuides() {
	for _, g := range w.s.Orrery.Guides() {
		drawRing(g.Ring)
	}
}

// drawTrails keeps one vertex buffer per trail. Buffers of trails that are
// gone are deleted.
func (w *Window) drawTrails() {
	seen := map[int]bool{}

	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	gl.EnableClientState(gl.VERTEX_ARRAY)

	w.s.Trails.Each(func(t *orrery.Trail) {
		seen[t.Owner] = true

		vbo, ok := w.trails[t.Owner]
		if !ok {
			gl.GenBuffers(1, &vbo)
			w.trails[t.Owner] = vbo
		}

		verts := t.Vertices()
		if len(verts) < 6 {
			return
		}

		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)

		d, _ := w.s.Orrery.Descriptor(t.Owner)
		gl.Color4d(d.Color.R, d.Color.G, d.Color.B, trailOpacity)
		gl.VertexPointer(3, gl.FLOAT, 0, nil)
		gl.DrawArrays(gl.LINE_STRIP, 0, int32(t.Len()))
	})

	gl.DisableClientState(gl.VERTEX_ARRAY)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)

	for id, vbo := range w.trails {
		if !seen[id] {
			gl.DeleteBuffers(1, &vbo)
			delete(w.trails, id)
		}
	}
}

func drawSphere(p vector.V3, r float64, c colorful.Color, lit bool) {
	if lit {
		gl.Enable(gl.LIGHTING)
		gl.Enable(gl.LIGHT0)
		gl.Enable(gl.COLOR_MATERIAL)
		gl.Enable(gl.NORMALIZE)
		defer gl.Disable(gl.NORMALIZE)
		defer gl.Disable(gl.COLOR_MATERIAL)
		defer gl.Disable(gl.LIGHT0)
		defer gl.Disable(gl.LIGHTING)
	}

	gl.Color3d(c.R, c.G, c.B)

	gl.MatrixMode(gl.MODELVIEW)
	gl.PushMatrix()
	defer gl.PopMatrix()

	slices := int(math.Max(24, 5*math.Log(r+1)))

	gl.Translated(p.X, p.Y, p.Z)
	gl.Scaled(r, r, r)

	for i := 0; i < slices; i++ {
		lat0 := math.Pi * (-0.5 + float64(i)/float64(slices))
		y0 := math.Sin(lat0)
		yr0 := math.Cos(lat0)

		lat1 := math.Pi * (-0.5 + float64(i+1)/float64(slices))
		y1 := math.Sin(lat1)
		yr1 := math.Cos(lat1)

		gl.Begin(gl.QUAD_STRIP)
		for j := 0; j <= slices; j++ {
			lng := 2 * math.Pi * float64(j) / float64(slices)
			x := math.Cos(lng)
			z := math.Sin(lng)

			gl.Normal3d(x*yr1, y1, z*yr1)
			gl.Vertex3d(x*yr1, y1, z*yr1)
			gl.Normal3d(x*yr0, y0, z*yr0)
			gl.Vertex3d(x*yr0, y0, z*yr0)
		}
		gl.End()
	}
}

// drawRing draws a flat annulus in the XZ plane of the current transform.
func drawRing(r orrery.Ring) {
	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	defer gl.Disable(gl.BLEND)
	defer gl.DepthMask(true)

	gl.Color4d(r.Color.R, r.Color.G, r.Color.B, r.Opacity)

	gl.Begin(gl.QUAD_STRIP)
	for i := 0; i <= r.Segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(r.Segments)
		x, z := math.Cos(a), math.Sin(a)
		gl.Vertex3d(x*r.Outer, 0, z*r.Outer)
		gl.Vertex3d(x*r.Inner, 0, z*r.Inner)
	}
	gl.End()
}

func uploadPoints(pts []vector.V3) (uint32, int32) {
	if len(pts) == 0 {
		return 0, 0
	}

	verts := make([]float32, 0, 3*len(pts))
	for _, p := range pts {
		verts = append(verts, float32(p.X), float32(p.Y), float32(p.Z))
	}

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return vbo, int32(len(pts))
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
