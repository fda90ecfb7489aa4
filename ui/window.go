package ui

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"git.c3pb.de/farhaven/solar/input"
	"git.c3pb.de/farhaven/solar/input/panel"
	"git.c3pb.de/farhaven/solar/session"
	"git.c3pb.de/farhaven/solar/ui/text"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/time/rate"
)

func init() {
	/* GLFW and GL want to run on the main thread */
	runtime.LockOSThread()
}

var panelGeometry = panel.Geometry{X: 10, Y: 10, Width: 220, Row: 24, Gap: 4}

type Options struct {
	Title string
	FPS   int

	// Font is a TrueType file, empty for Go Regular.
	Font    string
	Verbose bool

	// OnFrameTime is called after every frame with the time it took to
	// produce, excluding the wait for the next frame.
	OnFrameTime func(time.Duration)
}

type Window struct {
	win    *glfw.Window
	s      *session.Session
	router *input.Router
	opts   Options

	fbW, fbH int

	text     *text.Context
	textures *textureCache

	stars  uint32
	nstars int32
	trails map[int]uint32

	frameTime time.Duration
}

// New opens a window sized like the session and wires its input into a
// router feeding s. It has to be called on the main goroutine.
func New(s *session.Session, opts Options) (*Window, error) {
	if opts.Title == `` {
		opts.Title = `solar`
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}

	fnt, err := text.NewContext(opts.Font)
	if err != nil {
		return nil, err
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("can't init GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Samples, 4)

	win, err := glfw.CreateWindow(s.Width, s.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("can't create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(0)

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("can't init GL: %w", err)
	}
	log.Printf(`OpenGL %s on %s`, gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	w := &Window{
		win:      win,
		s:        s,
		router:   input.New(s, panel.New(panelGeometry, s.Orrery.Names())),
		opts:     opts,
		text:     fnt,
		textures: newTextureCache(),
		trails:   map[int]uint32{},
	}
	w.router.Verbose = opts.Verbose

	w.fbW, w.fbH = win.GetFramebufferSize()
	if ww, wh := win.GetSize(); ww != s.Width || wh != s.Height {
		w.router.Resize(ww, wh)
	}

	w.setupGL()
	w.bindEvents()

	return w, nil
}

func (w *Window) setupGL() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.MULTISAMPLE)
	gl.Hint(gl.PERSPECTIVE_CORRECTION_HINT, gl.NICEST)
	gl.ShadeModel(gl.SMOOTH)

	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ColorMaterial(gl.FRONT_AND_BACK, gl.AMBIENT_AND_DIFFUSE)

	light := w.s.Orrery.Light()
	diffuse := []float32{
		float32(light.Color.R), float32(light.Color.G), float32(light.Color.B), 1,
	}
	ambient := []float32{0.05, 0.05, 0.05, 1}
	gl.Lightfv(gl.LIGHT0, gl.DIFFUSE, &diffuse[0])
	gl.Lightfv(gl.LIGHT0, gl.AMBIENT, &ambient[0])
	gl.Lightf(gl.LIGHT0, gl.CONSTANT_ATTENUATION, float32(1/light.Intensity))
	gl.Lightf(gl.LIGHT0, gl.LINEAR_ATTENUATION, float32(1/light.Range))

	w.stars, w.nstars = uploadPoints(w.s.Orrery.Stars())
}

// Run draws frames until the session quits, the window is closed or ctx is
// done.
func (w *Window) Run(ctx context.Context) error {
	limiter := rate.NewLimiter(rate.Limit(w.opts.FPS), 1)

	for !w.win.ShouldClose() && !w.s.Done() {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("frame pacing: %w", err)
		}

		start := time.Now()

		glfw.PollEvents()
		w.s.Frame()
		w.draw()
		w.win.SwapBuffers()

		w.frameTime = time.Since(start)
		if w.opts.OnFrameTime != nil {
			w.opts.OnFrameTime(w.frameTime)
		}
	}

	return nil
}

func (w *Window) Close() {
	for id, vbo := range w.trails {
		gl.DeleteBuffers(1, &vbo)
		delete(w.trails, id)
	}
	if w.stars != 0 {
		gl.DeleteBuffers(1, &w.stars)
	}
	w.textures.purge()

	w.win.Destroy()
	glfw.Terminate()
}
