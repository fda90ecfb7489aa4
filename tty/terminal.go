package tty

import (
	"context"
	"fmt"
	"strings"
	"time"

	"git.c3pb.de/farhaven/solar/input"
	"git.c3pb.de/farhaven/solar/input/panel"
	"git.c3pb.de/farhaven/solar/session"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/time/rate"
)

// Panel rows are one cell tall. Vertical coordinates are in raster pixels,
// two per cell.
var panelGeometry = panel.Geometry{X: 1, Y: 2, Width: 26, Row: 2}

type Options struct {
	FPS     int
	Verbose bool

	OnFrameTime func(time.Duration)
}

type Terminal struct {
	screen tcell.Screen
	s      *session.Session
	router *input.Router
	opts   Options

	raster  *raster
	pressed bool
}

// Open starts a terminal session on the controlling TTY.
func Open(s *session.Session, opts Options) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("can't open terminal: %w", err)
	}
	return New(screen, s, opts)
}

// New initializes screen and sizes the session to it.
func New(screen tcell.Screen, s *session.Session, opts Options) (*Terminal, error) {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("can't init terminal: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	t := &Terminal{
		screen: screen,
		s:      s,
		router: input.New(s, panel.New(panelGeometry, s.Orrery.Names())),
		opts:   opts,
		raster: newRaster(screen.Size()),
	}
	t.router.Verbose = opts.Verbose
	t.resize()

	return t, nil
}

func (t *Terminal) resize() {
	cols, rows := t.screen.Size()
	t.raster.resize(cols, rows)
	t.router.Resize(cols, rows*2)
}

// Run draws frames until the session quits or ctx is done.
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go t.poll(events, done)

	limiter := rate.NewLimiter(rate.Limit(t.opts.FPS), 1)

	for !t.s.Done() {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("frame pacing: %w", err)
		}

		start := time.Now()

	drain:
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				t.handle(ev)
			default:
				break drain
			}
		}

		t.Frame()

		if t.opts.OnFrameTime != nil {
			t.opts.OnFrameTime(time.Since(start))
		}
	}

	return nil
}

// poll forwards screen events until the screen is finalized or done is
// closed.
func (t *Terminal) poll(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Frame advances the session and draws it.
func (t *Terminal) Frame() {
	t.s.Frame()
	t.draw()
	t.screen.Show()
}

func (t *Terminal) Close() {
	t.screen.Fini()
}

func (t *Terminal) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.resize()
		t.screen.Sync()
	case *tcell.EventKey:
		t.key(ev)
	case *tcell.EventMouse:
		t.mouse(ev)
	}
}

func (t *Terminal) key(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.router.Key(`escape`)
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			t.router.Key(`space`)
			return
		}
		t.router.Key(strings.ToLower(string(ev.Rune())))
	}
}

func (t *Terminal) mouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	x, y := float64(cx), float64(cy*2+1)

	btn := ev.Buttons()
	switch {
	case btn&tcell.WheelUp != 0:
		t.router.MouseMove(x, y)
		t.router.Scroll(-input.WheelNotch)
		return
	case btn&tcell.WheelDown != 0:
		t.router.MouseMove(x, y)
		t.router.Scroll(input.WheelNotch)
		return
	}

	down := btn&tcell.Button1 != 0
	switch {
	case down && !t.pressed:
		t.router.MouseDown(x, y)
	case !down && t.pressed:
		t.router.MouseUp(x, y)
	default:
		t.router.MouseMove(x, y)
	}
	t.pressed = down
}

func (t *Terminal) draw() {
	newPainter(t.raster, t.s).paint()
	t.raster.flush(t.screen)

	t.drawPanel()
	t.drawStatus()
	if t.s.Loading() {
		t.drawLoading()
	}
}
