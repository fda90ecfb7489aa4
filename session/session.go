package session

import (
	"log"
	"math"
	"time"

	"git.c3pb.de/farhaven/solar/camera"
	"git.c3pb.de/farhaven/solar/orrery"
)

const (
	SpeedMin     = 0.1
	SpeedMax     = 5
	SpeedStep    = 0.1
	DefaultSpeed = 1

	LoadingDelay = time.Second
	QueueLength  = 256

	InfoPlaceholder = `Click on a planet to learn more`
)

type Playback struct {
	Paused bool
	Speed  float64
}

// Hooks are called synchronously from Update and Frame. Any of them may be
// nil.
type Hooks struct {
	Command func(Command)
	Pick    func(body int, hit bool)
	Frame   func(running bool)
}

type Options struct {
	Orrery        orrery.Options
	Width, Height int
	Hooks         Hooks

	// Now defaults to time.Now.
	Now func() time.Time
}

// Session owns all mutable scene state. It is not safe for concurrent use;
// everything happens on the render goroutine, other goroutines talk to it
// through Queue.
type Session struct {
	Orrery *orrery.Orrery
	Camera *camera.Rig
	Trails *orrery.Trails

	Playback   Playback
	ShowTrails bool

	// Zoom mirrors the zoom slider.
	Zoom float64

	Selected int

	Width, Height int

	// Frames counts frames in which the scene advanced.
	Frames uint64

	cmds  chan Command
	hooks Hooks
	quit  bool

	now     func() time.Time
	started time.Time

	drag struct {
		active bool
		x, y   float64
	}
}

func New(opts Options) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Session{
		Orrery:   orrery.New(opts.Orrery),
		Camera:   camera.NewRig(opts.Width, opts.Height),
		Trails:   orrery.NewTrails(orrery.TrailCapacity),
		Playback: Playback{Speed: DefaultSpeed},
		Selected: NoBody,
		Width:    opts.Width,
		Height:   opts.Height,
		cmds:     make(chan Command, QueueLength),
		hooks:    opts.Hooks,
		now:      now,
		started:  now(),
	}
	s.Zoom = s.Camera.Radius()

	return s
}

// Queue schedules cmd for the next Frame. It never blocks; when the queue is
// full the command is dropped.
func (s *Session) Queue(cmd Command) {
	select {
	case s.cmds <- cmd:
	default:
		log.Printf(`command queue full, dropping %s`, CommandName(cmd))
	}
}

// Frame applies queued commands, advances the scene unless paused and moves
// a locked camera along with its body.
func (s *Session) Frame() {
	s.drain()
	s.Tick()
}

func (s *Session) drain() {
	for {
		select {
		case cmd := <-s.cmds:
			s.Update(cmd)
		default:
			return
		}
	}
}

func (s *Session) Tick() {
	running := !s.Playback.Paused

	if running {
		s.Orrery.Step(s.Playback.Speed)
		if s.ShowTrails {
			for id := 0; id < s.Orrery.Len(); id++ {
				s.Trails.Record(id, s.Orrery.Position(id))
			}
		}
		s.Frames++
	}

	if id, ok := s.Camera.Body(); ok {
		s.Camera.Follow(s.Orrery.Position(id))
	}

	if s.hooks.Frame != nil {
		s.hooks.Frame(running)
	}
}

func (s *Session) Update(cmd Command) {
	if s.hooks.Command != nil {
		s.hooks.Command(cmd)
	}

	switch cmd := cmd.(type) {
	case SetSpeed:
		if cmd.Value <= 0 {
			log.Printf(`ignoring non-positive speed %f`, cmd.Value)
			return
		}
		s.Playback.Speed = cmd.Value
	case StepSpeed:
		v := math.Round((s.Playback.Speed+cmd.Delta)*10) / 10
		s.Playback.Speed = math.Max(SpeedMin, math.Min(SpeedMax, v))
	case SetZoom:
		if s.Camera.Mode() != camera.FreeOrbit {
			return
		}
		s.Camera.SetRadius(cmd.Value)
		s.Zoom = s.Camera.Radius()
	case TogglePause:
		s.Playback.Paused = !s.Playback.Paused
	case Reset:
		s.Camera.Reset()
		s.Trails.Clear()
		s.Zoom = s.Camera.Radius()
	case ToggleTrails:
		s.ShowTrails = !s.ShowTrails
		if !s.ShowTrails {
			s.Trails.Clear()
		}
	case Focus:
		s.focus(cmd.Body)
	case Pick:
		s.pick(cmd.X, cmd.Y)
	case PointerDown:
		s.drag.active = true
		s.drag.x, s.drag.y = cmd.X, cmd.Y
	case PointerMove:
		if !s.drag.active {
			return
		}
		s.Camera.Drag(cmd.X-s.drag.x, cmd.Y-s.drag.y)
		s.drag.x, s.drag.y = cmd.X, cmd.Y
	case PointerUp:
		s.drag.active = false
	case Wheel:
		if s.Camera.Mode() != camera.FreeOrbit {
			return
		}
		s.Zoom = s.Camera.Zoom(cmd.DeltaY)
	case Resize:
		s.Width, s.Height = cmd.W, cmd.H
		s.Camera.SetAspect(cmd.W, cmd.H)
	case Quit:
		s.quit = true
	default:
		log.Printf(`unknown command %T`, cmd)
	}
}

func (s *Session) focus(id int) {
	if id == NoBody {
		s.Camera.Unlock()
		s.Zoom = s.Camera.Radius()
		return
	}

	if _, ok := s.Orrery.Descriptor(id); !ok {
		log.Printf(`can't focus unknown body %d`, id)
		return
	}

	s.Camera.Lock(id)
	s.Camera.Follow(s.Orrery.Position(id))
}

func (s *Session) pick(x, y float64) {
	if s.Width <= 0 || s.Height <= 0 {
		return
	}

	ndcX := x/float64(s.Width)*2 - 1
	ndcY := -(y/float64(s.Height))*2 + 1

	id, ok := s.Orrery.Pick(s.Camera.Ray(ndcX, ndcY))
	if ok {
		s.Selected = id
	}

	if s.hooks.Pick != nil {
		s.hooks.Pick(id, ok)
	}
}

// Focus is the body the camera is locked to, or NoBody.
func (s *Session) Focus() int {
	if id, ok := s.Camera.Body(); ok {
		return id
	}
	return NoBody
}

func (s *Session) Done() bool {
	return s.quit
}

// Info is the text of the info panel.
func (s *Session) Info() (name, info string) {
	d, ok := s.Orrery.Descriptor(s.Selected)
	if !ok {
		return ``, InfoPlaceholder
	}
	return d.Name, d.Info
}

func (s *Session) PauseLabel() string {
	if s.Playback.Paused {
		return `Play`
	}
	return `Pause`
}

// Loading is true while the startup overlay is shown.
func (s *Session) Loading() bool {
	return s.now().Before(s.started.Add(LoadingDelay))
}

// Since is the time since the session started.
func (s *Session) Since() time.Duration {
	return s.now().Sub(s.started)
}
