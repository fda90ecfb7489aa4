package camera

import (
	"log"
	"math"

	"git.c3pb.de/farhaven/solar/vector"
	"github.com/go-gl/mathgl/mgl64"
)

type Mode int

const (
	FreeOrbit Mode = iota
	Locked
)

func (m Mode) String() string {
	switch m {
	case FreeOrbit:
		return "FreeOrbit"
	case Locked:
		return "Locked"
	default:
		return "UNKNOWN"
	}
}

const (
	FovY = 75 // degrees
	Near = 0.1
	Far  = 10000

	MinPhi = 0.1
	MaxPhi = math.Pi - 0.1

	MinRadius = 30
	MaxRadius = 500

	DragSpeed = 0.01 // radians per pixel
	ZoomSpeed = 0.1  // units per wheel delta
)

var (
	DefaultPosition = vector.V3{X: 0, Y: 50, Z: 200}
	LockOffset      = vector.V3{X: 0, Y: 10, Z: 20}

	up = vector.V3{Y: 1}
)

// DefaultRadius is the distance of DefaultPosition from the origin.
var DefaultRadius = DefaultPosition.Length()

// Rig is either orbiting the origin on a sphere (FreeOrbit) or trails a body
// at a fixed offset (Locked).
type Rig struct {
	Pos    vector.V3
	Target vector.V3

	orbit vector.Spherical
	mode  Mode
	body  int

	aspect float64

	frustum struct {
		nearH, nearW float64
		planes       []vector.Plane
	}
}

func NewRig(width, height int) *Rig {
	r := &Rig{aspect: 1}
	r.SetAspect(width, height)
	r.Reset()
	return r
}

func (r *Rig) Mode() Mode {
	return r.mode
}

// Body is the body the camera is locked to. ok is false in FreeOrbit.
func (r *Rig) Body() (id int, ok bool) {
	return r.body, r.mode == Locked
}

func (r *Rig) Radius() float64 {
	return r.orbit.Radius
}

func (r *Rig) Spherical() vector.Spherical {
	return r.orbit
}

func (r *Rig) Aspect() float64 {
	return r.aspect
}

func (r *Rig) Reset() {
	r.mode = FreeOrbit
	r.body = 0
	r.Pos = DefaultPosition
	r.Target = vector.V3{}
	r.orbit = vector.SphericalFrom(r.Pos)
	r.update()
}

func (r *Rig) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		log.Printf(`ignoring degenerate viewport %dx%d`, width, height)
		return
	}
	r.aspect = float64(width) / float64(height)
	r.update()
}

// Drag turns the camera around the origin. dx and dy are in pixels.
func (r *Rig) Drag(dx, dy float64) {
	if r.mode != FreeOrbit || !finite(dx) || !finite(dy) {
		return
	}

	r.orbit.Theta -= dx * DragSpeed
	r.orbit.Phi = clamp(r.orbit.Phi+dy*DragSpeed, MinPhi, MaxPhi)
	r.place()
}

// Zoom moves the camera towards or away from the origin and returns the new
// distance. It returns the unchanged distance while Locked.
func (r *Rig) Zoom(delta float64) float64 {
	r.SetRadius(r.orbit.Radius + delta*ZoomSpeed)
	return r.orbit.Radius
}

func (r *Rig) SetRadius(v float64) {
	if r.mode != FreeOrbit || !finite(v) {
		return
	}

	r.orbit.Radius = clamp(v, MinRadius, MaxRadius)
	r.place()
}

func (r *Rig) Lock(body int) {
	r.mode = Locked
	r.body = body
}

// Unlock returns to FreeOrbit from wherever the camera currently is.
func (r *Rig) Unlock() {
	if r.mode == FreeOrbit {
		return
	}

	r.mode = FreeOrbit
	r.orbit = vector.SphericalFrom(r.Pos)
	r.orbit.Phi = clamp(r.orbit.Phi, MinPhi, MaxPhi)
	r.orbit.Radius = clamp(r.orbit.Radius, MinRadius, MaxRadius)
	r.place()
}

// Follow puts a locked camera behind p, looking at it.
func (r *Rig) Follow(p vector.V3) {
	if r.mode != Locked {
		return
	}

	r.Pos = p.Add(LockOffset)
	r.Target = p
	r.update()
}

func (r *Rig) place() {
	r.Pos = r.orbit.V3()
	r.Target = vector.V3{}
	r.update()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func vec3(v vector.V3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func (r *Rig) View() mgl64.Mat4 {
	return mgl64.LookAtV(vec3(r.Pos), vec3(r.Target), vec3(up))
}

func (r *Rig) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(FovY), r.aspect, Near, Far)
}

// Ray returns the picking ray through a point in normalized device
// coordinates, x and y in [-1, 1] with y pointing up.
func (r *Rig) Ray(ndcX, ndcY float64) vector.Ray {
	inv := r.Projection().Mul4(r.View()).Inv()

	p := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, 0.5, 1})
	if p.W() == 0 {
		return vector.Ray{Origin: r.Pos, Dir: r.Target.Sub(r.Pos).Normalized()}
	}

	at := vector.V3{X: p.X() / p.W(), Y: p.Y() / p.W(), Z: p.Z() / p.W()}
	return vector.Ray{Origin: r.Pos, Dir: at.Sub(r.Pos).Normalized()}
}

// Project maps p to normalized device coordinates. ok is false for points
// behind the camera.
func (r *Rig) Project(p vector.V3) (ndc vector.V3, ok bool) {
	c := r.Projection().Mul4(r.View()).Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	if c.W() <= 0 {
		return vector.V3{}, false
	}
	return vector.V3{X: c.X() / c.W(), Y: c.Y() / c.W(), Z: c.Z() / c.W()}, true
}
