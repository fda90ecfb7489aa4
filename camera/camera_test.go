package camera

import (
	"math"
	"testing"

	"git.c3pb.de/farhaven/solar/vector"
)

func TestDefaults(t *testing.T) {
	r := NewRig(1440, 900)

	if r.Mode() != FreeOrbit {
		t.Errorf(`expected FreeOrbit, got %s`, r.Mode())
	}
	if r.Pos != DefaultPosition {
		t.Errorf(`expected %s, got %s`, DefaultPosition, r.Pos)
	}
	if math.Abs(r.Radius()-DefaultRadius) > 1e-9 {
		t.Errorf(`expected radius %f, got %f`, DefaultRadius, r.Radius())
	}
	if math.Abs(r.Aspect()-1.6) > 1e-9 {
		t.Errorf(`expected aspect 1.6, got %f`, r.Aspect())
	}
}

// The bounds are inclusive: a long drag parks phi exactly on MinPhi or
// MaxPhi.
func TestDragClampsPhi(t *testing.T) {
	r := NewRig(800, 600)

	for _, dy := range []float64{1e6, -1e6, 37, -5000, 1} {
		r.Drag(3, dy)
		phi := r.Spherical().Phi
		if phi < MinPhi || phi > MaxPhi {
			t.Errorf(`phi %f escaped [%f, %f] after dy=%f`, phi, MinPhi, MaxPhi, dy)
		}
		if math.Abs(r.Pos.Length()-r.Radius()) > 1e-9 {
			t.Errorf(`drag changed the distance: %f vs %f`, r.Pos.Length(), r.Radius())
		}
	}
}

func TestDragParksOnBounds(t *testing.T) {
	r := NewRig(800, 600)

	r.Drag(0, 1e9)
	if phi := r.Spherical().Phi; phi != MaxPhi {
		t.Errorf(`expected phi %f, got %f`, MaxPhi, phi)
	}
	r.Drag(0, -1e9)
	if phi := r.Spherical().Phi; phi != MinPhi {
		t.Errorf(`expected phi %f, got %f`, MinPhi, phi)
	}
}

func TestNonFiniteDeltasIgnored(t *testing.T) {
	r := NewRig(800, 600)
	before := r.Spherical()
	pos := r.Pos

	r.Drag(math.NaN(), 1)
	r.Drag(1, math.Inf(1))
	r.Zoom(math.NaN())
	r.Zoom(math.Inf(-1))
	r.SetRadius(math.NaN())

	if r.Spherical() != before {
		t.Errorf(`expected %+v, got %+v`, before, r.Spherical())
	}
	if r.Pos != pos {
		t.Errorf(`camera moved from %s to %s`, pos, r.Pos)
	}

	r.Drag(10, 0)
	if r.Spherical().Theta == before.Theta {
		t.Errorf(`rig stopped responding after non-finite input`)
	}
}

func TestDragTurns(t *testing.T) {
	r := NewRig(800, 600)
	before := r.Spherical()

	r.Drag(10, -5)

	after := r.Spherical()
	if math.Abs(after.Theta-(before.Theta-0.1)) > 1e-9 {
		t.Errorf(`expected theta %f, got %f`, before.Theta-0.1, after.Theta)
	}
	if math.Abs(after.Phi-(before.Phi-0.05)) > 1e-9 {
		t.Errorf(`expected phi %f, got %f`, before.Phi-0.05, after.Phi)
	}
	if r.Target != (vector.V3{}) {
		t.Errorf(`free orbit should look at the origin, looks at %s`, r.Target)
	}
}

func TestZoomClamps(t *testing.T) {
	r := NewRig(800, 600)

	for _, d := range []float64{1e9, -1e9, 50, -3, 0} {
		got := r.Zoom(d)
		if got < MinRadius || got > MaxRadius {
			t.Errorf(`radius %f escaped [%d, %d] after delta %f`, got, MinRadius, MaxRadius, d)
		}
		if math.Abs(r.Pos.Length()-got) > 1e-9 {
			t.Errorf(`camera at distance %f, reported %f`, r.Pos.Length(), got)
		}
	}

	r.Reset()
	if got := r.Zoom(100); math.Abs(got-(DefaultRadius+10)) > 1e-9 {
		t.Errorf(`expected %f, got %f`, DefaultRadius+10, got)
	}
}

func TestLockedIgnoresDragAndZoom(t *testing.T) {
	r := NewRig(800, 600)
	r.Lock(4)
	r.Follow(vector.V3{X: 70})

	pos := r.Pos
	r.Drag(100, 100)
	r.SetRadius(40)
	if got := r.Zoom(500); got != r.Radius() {
		t.Errorf(`zoom reported %f while locked`, got)
	}

	if r.Pos != pos {
		t.Errorf(`locked camera moved from %s to %s`, pos, r.Pos)
	}
	if want := (vector.V3{X: 70, Y: 10, Z: 20}); r.Pos != want {
		t.Errorf(`expected %s, got %s`, want, r.Pos)
	}
	if r.Target != (vector.V3{X: 70}) {
		t.Errorf(`expected to look at the body, looks at %s`, r.Target)
	}
	if id, ok := r.Body(); !ok || id != 4 {
		t.Errorf(`expected locked to 4, got %d %v`, id, ok)
	}
}

func TestUnlockRestoresResponsiveness(t *testing.T) {
	r := NewRig(800, 600)
	r.Lock(0)
	r.Follow(vector.V3{X: 20})
	r.Unlock()

	if r.Mode() != FreeOrbit {
		t.Fatalf(`expected FreeOrbit, got %s`, r.Mode())
	}
	if _, ok := r.Body(); ok {
		t.Errorf(`still reports a locked body`)
	}

	before := r.Pos
	r.Drag(20, 0)
	if r.Pos == before {
		t.Errorf(`drag had no effect after unlock`)
	}

	before = r.Pos
	r.Zoom(300)
	if r.Pos == before {
		t.Errorf(`zoom had no effect after unlock`)
	}
}

func TestFollowIgnoredInFreeOrbit(t *testing.T) {
	r := NewRig(800, 600)
	r.Follow(vector.V3{X: 1000})
	if r.Pos != DefaultPosition {
		t.Errorf(`free camera followed a body to %s`, r.Pos)
	}
}

func TestRayThroughCenterHitsTarget(t *testing.T) {
	r := NewRig(1024, 768)
	ray := r.Ray(0, 0)

	want := r.Target.Sub(r.Pos).Normalized()
	if ray.Dir.Distance(want) > 1e-6 {
		t.Errorf(`expected direction %s, got %s`, want, ray.Dir)
	}
	if ray.Origin != r.Pos {
		t.Errorf(`expected origin %s, got %s`, r.Pos, ray.Origin)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	r := NewRig(1024, 768)
	r.Drag(40, 20)

	p := vector.V3{X: 30, Y: 2, Z: -15}
	ndc, ok := r.Project(p)
	if !ok {
		t.Fatalf(`point behind the camera`)
	}

	ray := r.Ray(ndc.X, ndc.Y)
	if d, hit := ray.IntersectSphere(p, 0.01); !hit || d <= 0 {
		t.Errorf(`ray through projected point misses it`)
	}

	if _, ok := r.Project(r.Pos.Add(r.Pos.Sub(r.Target))); ok {
		t.Errorf(`point behind the camera projected`)
	}
}

func TestSphereInFrustum(t *testing.T) {
	r := NewRig(1440, 900)

	if f := r.SphereInFrustum(vector.V3{}, 8); f != INSIDE {
		t.Errorf(`expected INSIDE, got %s`, f)
	}

	if f := r.SphereInFrustum(vector.V3{Z: 400}, 1); f != OUTSIDE {
		t.Errorf(`expected OUTSIDE, got %s`, f)
	}

	if f := r.SphereInFrustum(DefaultPosition, 1); f != INTERSECT {
		t.Errorf(`expected INTERSECT, got %s`, f)
	}
}
