package session

import (
	"math"
	"testing"
	"time"

	"git.c3pb.de/farhaven/solar/camera"
	"git.c3pb.de/farhaven/solar/orrery"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	return New(Options{
		Orrery: orrery.Options{Seed: 11, Stars: -1},
		Width:  1024,
		Height: 768,
	})
}

func angles(s *Session) []float64 {
	var r []float64
	for _, st := range s.Orrery.States() {
		r = append(r, st.Angle)
	}
	return r
}

func TestMercuryAdvances(t *testing.T) {
	s := newSession(t)
	start := angles(s)[0]

	for i := 0; i < 10; i++ {
		s.Frame()
	}

	if got, want := angles(s)[0], start+10*0.048; math.Abs(got-want) > 1e-9 {
		t.Errorf(`expected Mercury at %f, got %f`, want, got)
	}
	if s.Frames != 10 {
		t.Errorf(`expected 10 frames, got %d`, s.Frames)
	}
}

func TestSpeedScalesAdvance(t *testing.T) {
	s := newSession(t)
	start := angles(s)

	s.Queue(SetSpeed{Value: 3.5})
	for i := 0; i < 4; i++ {
		s.Frame()
	}

	for id, a := range angles(s) {
		d, _ := s.Orrery.Descriptor(id)
		if want := start[id] + 4*d.Speed*3.5; math.Abs(a-want) > 1e-9 {
			t.Errorf(`%s: expected %f, got %f`, d.Name, want, a)
		}
	}

	s.Update(SetSpeed{Value: -1})
	if s.Playback.Speed != 3.5 {
		t.Errorf(`non-positive speed was accepted: %f`, s.Playback.Speed)
	}
}

func TestPauseHoldsAngles(t *testing.T) {
	s := newSession(t)
	s.Frame()

	s.Queue(TogglePause{})
	s.Frame()
	held := angles(s)
	if s.PauseLabel() != `Play` {
		t.Errorf(`expected label Play, got %s`, s.PauseLabel())
	}

	for i := 0; i < 20; i++ {
		s.Frame()
	}
	for id, a := range angles(s) {
		if a != held[id] {
			t.Errorf(`body %d moved while paused: %f -> %f`, id, held[id], a)
		}
	}

	s.Queue(TogglePause{})
	s.Frame()
	if s.PauseLabel() != `Pause` {
		t.Errorf(`expected label Pause, got %s`, s.PauseLabel())
	}
	for id, a := range angles(s) {
		d, _ := s.Orrery.Descriptor(id)
		if want := held[id] + d.Speed; math.Abs(a-want) > 1e-9 {
			t.Errorf(`%s: expected to resume at %f, got %f`, d.Name, want, a)
		}
	}
}

func TestTrailsFillAndReset(t *testing.T) {
	s := newSession(t)
	s.Update(ToggleTrails{})

	for i := 0; i < 150; i++ {
		s.Frame()
	}

	for id := 0; id < s.Orrery.Len(); id++ {
		tr, ok := s.Trails.Get(id)
		if !ok {
			t.Fatalf(`no trail for body %d`, id)
		}
		if tr.Len() != orrery.TrailCapacity {
			t.Errorf(`body %d: expected %d points, got %d`, id, orrery.TrailCapacity, tr.Len())
		}
	}

	last, _ := s.Trails.Get(0)
	pts := last.Points()
	if pts[len(pts)-1] != s.Orrery.Position(0) {
		t.Errorf(`newest trail point %s is not the current position %s`, pts[len(pts)-1], s.Orrery.Position(0))
	}

	s.Update(ToggleTrails{})
	if s.Trails.Len() != 0 {
		t.Errorf(`disabling trails kept %d trails`, s.Trails.Len())
	}

	s.Frame()
	if s.Trails.Len() != 0 {
		t.Errorf(`trails recorded while disabled`)
	}

	s.Update(ToggleTrails{})
	if s.Trails.Len() != 0 {
		t.Errorf(`re-enabling did not start empty`)
	}
	s.Frame()
	if tr, _ := s.Trails.Get(0); tr == nil || tr.Len() != 1 {
		t.Errorf(`expected a one point trail after re-enabling`)
	}
}

func TestTrailsNotRecordedWhilePaused(t *testing.T) {
	s := newSession(t)
	s.Update(ToggleTrails{})
	s.Update(TogglePause{})

	s.Frame()
	if s.Trails.Len() != 0 {
		t.Errorf(`trails recorded while paused`)
	}
}

func TestFocusLocksCamera(t *testing.T) {
	s := newSession(t)

	s.Queue(Focus{Body: 4})
	s.Frame()

	if s.Camera.Mode() != camera.Locked || s.Focus() != 4 {
		t.Fatalf(`expected camera locked to 4, got %s %d`, s.Camera.Mode(), s.Focus())
	}

	want := s.Orrery.Position(4).Add(camera.LockOffset)
	if s.Camera.Pos.Distance(want) > 1e-9 {
		t.Errorf(`expected camera at %s, got %s`, want, s.Camera.Pos)
	}

	zoom := s.Zoom
	s.Update(Wheel{DeltaY: 300})
	s.Update(SetZoom{Value: 40})
	s.Update(PointerDown{X: 10, Y: 10})
	s.Update(PointerMove{X: 200, Y: 200})
	s.Update(PointerUp{})
	s.Tick()

	if s.Zoom != zoom {
		t.Errorf(`zoom slider moved while locked: %f -> %f`, zoom, s.Zoom)
	}
	if s.Camera.Pos.Distance(s.Orrery.Position(4).Add(camera.LockOffset)) > 1e-9 {
		t.Errorf(`locked camera left its body`)
	}

	s.Update(Focus{Body: NoBody})
	if s.Camera.Mode() != camera.FreeOrbit || s.Focus() != NoBody {
		t.Fatalf(`expected FreeOrbit after clearing focus`)
	}

	before := s.Camera.Pos
	s.Update(PointerDown{X: 0, Y: 0})
	s.Update(PointerMove{X: 30, Y: 0})
	if s.Camera.Pos == before {
		t.Errorf(`drag ignored after clearing focus`)
	}

	r := s.Zoom
	s.Update(Wheel{DeltaY: 100})
	if s.Zoom == r && r < camera.MaxRadius {
		t.Errorf(`wheel ignored after clearing focus`)
	}
}

func TestFocusUnknownBody(t *testing.T) {
	s := newSession(t)
	s.Update(Focus{Body: 99})
	if s.Camera.Mode() != camera.FreeOrbit {
		t.Errorf(`locked to an unknown body`)
	}
}

func TestWheelMirrorsZoom(t *testing.T) {
	s := newSession(t)

	s.Update(Wheel{DeltaY: 1e6})
	if s.Zoom != camera.MaxRadius {
		t.Errorf(`expected zoom %d, got %f`, camera.MaxRadius, s.Zoom)
	}

	s.Update(Wheel{DeltaY: -1e6})
	if s.Zoom != camera.MinRadius {
		t.Errorf(`expected zoom %d, got %f`, camera.MinRadius, s.Zoom)
	}

	s.Update(SetZoom{Value: 120})
	if s.Zoom != 120 || math.Abs(s.Camera.Pos.Length()-120) > 1e-9 {
		t.Errorf(`zoom slider not applied: %f, camera at %f`, s.Zoom, s.Camera.Pos.Length())
	}
}

func TestDragNeedsPointerDown(t *testing.T) {
	s := newSession(t)
	before := s.Camera.Pos

	s.Update(PointerMove{X: 100, Y: 100})
	if s.Camera.Pos != before {
		t.Errorf(`camera moved without a pressed pointer`)
	}

	s.Update(PointerDown{X: 100, Y: 100})
	s.Update(PointerMove{X: 100, Y: 1e6})
	phi := s.Camera.Spherical().Phi
	if phi < camera.MinPhi || phi > camera.MaxPhi {
		t.Errorf(`phi %f escaped its bounds`, phi)
	}

	s.Update(PointerUp{})
	before = s.Camera.Pos
	s.Update(PointerMove{X: 0, Y: 0})
	if s.Camera.Pos != before {
		t.Errorf(`camera moved after release`)
	}
}

func TestReset(t *testing.T) {
	s := newSession(t)
	s.Update(ToggleTrails{})
	s.Update(Focus{Body: 2})
	s.Update(SetSpeed{Value: 2})
	s.Frame()
	s.Frame()

	s.Queue(Reset{})
	s.Frame()

	if s.Camera.Mode() != camera.FreeOrbit || s.Focus() != NoBody {
		t.Errorf(`reset kept the focus`)
	}
	if s.Camera.Pos != camera.DefaultPosition {
		t.Errorf(`expected camera at %s, got %s`, camera.DefaultPosition, s.Camera.Pos)
	}
	if s.Zoom != camera.DefaultRadius {
		t.Errorf(`expected zoom %f, got %f`, camera.DefaultRadius, s.Zoom)
	}

	// Trails stay on and start again on the same frame.
	if tr, ok := s.Trails.Get(0); !ok || tr.Len() != 1 {
		t.Errorf(`expected trails to restart after reset`)
	}
	if s.Playback.Speed != 2 {
		t.Errorf(`reset changed the speed`)
	}
}

func TestPickShowsInfo(t *testing.T) {
	var picks []int
	s := New(Options{
		Orrery: orrery.Options{Seed: 11, Stars: -1},
		Width:  1024,
		Height: 768,
		Hooks: Hooks{
			Pick: func(body int, hit bool) {
				if hit {
					picks = append(picks, body)
				}
			},
		},
	})

	if name, info := s.Info(); name != `` || info != InfoPlaceholder {
		t.Errorf(`unexpected initial info %q %q`, name, info)
	}

	s.Update(Focus{Body: 2})
	s.Update(Pick{X: 512, Y: 384})

	name, info := s.Info()
	if name != `Earth` || info != `Our home planet` {
		t.Errorf(`expected Earth, got %q %q`, name, info)
	}
	if len(picks) != 1 || picks[0] != 2 {
		t.Errorf(`pick hook saw %v`, picks)
	}

	s.Update(Focus{Body: NoBody})
	s.Update(Reset{})
	s.Update(Pick{X: 0, Y: 0})
	if name, _ := s.Info(); name != `Earth` {
		t.Errorf(`a miss changed the info panel to %q`, name)
	}
}

func TestPickProjectedBody(t *testing.T) {
	s := newSession(t)
	s.Update(Focus{Body: 5})

	ndc, ok := s.Camera.Project(s.Orrery.Position(5))
	if !ok {
		t.Fatalf(`Saturn is behind the camera`)
	}
	x := (ndc.X + 1) / 2 * float64(s.Width)
	y := (1 - ndc.Y) / 2 * float64(s.Height)

	s.Update(Pick{X: x, Y: y})
	if name, info := s.Info(); name != `Saturn` || info != `Famous for its rings` {
		t.Errorf(`expected Saturn, got %q %q`, name, info)
	}
}

func TestResize(t *testing.T) {
	s := newSession(t)
	s.Update(Resize{W: 1600, H: 800})

	if s.Width != 1600 || s.Height != 800 {
		t.Errorf(`viewport not updated: %dx%d`, s.Width, s.Height)
	}
	if s.Camera.Aspect() != 2 {
		t.Errorf(`expected aspect 2, got %f`, s.Camera.Aspect())
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	n := 0
	s := New(Options{
		Orrery: orrery.Options{Stars: -1},
		Width:  100,
		Height: 100,
		Hooks:  Hooks{Command: func(Command) { n++ }},
	})

	for i := 0; i < QueueLength+10; i++ {
		s.Queue(SetSpeed{Value: 1})
	}
	s.Frame()

	if n != QueueLength {
		t.Errorf(`expected %d commands applied, got %d`, QueueLength, n)
	}
}

func TestQuit(t *testing.T) {
	s := newSession(t)
	if s.Done() {
		t.Fatalf(`done before quit`)
	}
	s.Queue(Quit{})
	s.Frame()
	if !s.Done() {
		t.Errorf(`not done after quit`)
	}
}

func TestLoading(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(Options{
		Orrery: orrery.Options{Stars: -1},
		Width:  100,
		Height: 100,
		Now:    func() time.Time { return now },
	})

	if !s.Loading() {
		t.Errorf(`expected loading overlay at start`)
	}

	now = now.Add(LoadingDelay)
	if s.Loading() {
		t.Errorf(`loading overlay still shown after %s`, LoadingDelay)
	}
	if s.Since() != LoadingDelay {
		t.Errorf(`expected %s since start, got %s`, LoadingDelay, s.Since())
	}
}

func TestCommandName(t *testing.T) {
	if n := CommandName(TogglePause{}); n != `pause` {
		t.Errorf(`expected pause, got %s`, n)
	}
	if n := CommandName(42); n != `int` {
		t.Errorf(`expected int, got %s`, n)
	}
}

func TestStepSpeedStaysInBounds(t *testing.T) {
	s := newSession(t)

	for i := 0; i < 100; i++ {
		s.Update(StepSpeed{Delta: SpeedStep})
	}
	if s.Playback.Speed != SpeedMax {
		t.Errorf(`expected %v, got %v`, SpeedMax, s.Playback.Speed)
	}

	for i := 0; i < 100; i++ {
		s.Update(StepSpeed{Delta: -SpeedStep})
	}
	if s.Playback.Speed != SpeedMin {
		t.Errorf(`expected %v, got %v`, SpeedMin, s.Playback.Speed)
	}

	s.Update(StepSpeed{Delta: SpeedStep})
	if s.Playback.Speed != 0.2 {
		t.Errorf(`expected 0.2, got %v`, s.Playback.Speed)
	}
}
