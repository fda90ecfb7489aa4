package input

import (
	"log"

	"git.c3pb.de/farhaven/solar/input/panel"
	"git.c3pb.de/farhaven/solar/session"
)

type Queuer interface {
	Queue(session.Command)
}

// WheelNotch is how far one notch of a mouse wheel scrolls.
const WheelNotch = 100

// Router turns raw pointer and key events into session commands. It owns
// pointer capture: a press on a panel widget belongs to the panel until
// release, a press anywhere else drives the camera.
type Router struct {
	q     Queuer
	panel *panel.Panel

	slider  *panel.Widget
	surface bool

	x, y float64

	Verbose bool
}

func New(q Queuer, p *panel.Panel) *Router {
	return &Router{q: q, panel: p}
}

func (r *Router) Panel() *panel.Panel {
	return r.panel
}

func (r *Router) MouseDown(x, y float64) {
	r.x, r.y = x, y

	if r.panel != nil && r.panel.Contains(x, y) {
		w, ok := r.panel.At(x, y)
		if !ok {
			return
		}
		if w.Kind == panel.Slider {
			r.slider = w
		}
		if cmd, ok := w.Command(x); ok {
			r.q.Queue(cmd)
		}
		return
	}

	r.surface = true
	r.q.Queue(session.PointerDown{X: x, Y: y})
}

func (r *Router) MouseMove(x, y float64) {
	r.x, r.y = x, y

	if r.slider != nil {
		if cmd, ok := r.slider.Command(x); ok {
			r.q.Queue(cmd)
		}
		return
	}

	if r.surface {
		r.q.Queue(session.PointerMove{X: x, Y: y})
	}
}

// MouseUp ends a drag. Releasing a press that started on the render surface
// also counts as a click there.
func (r *Router) MouseUp(x, y float64) {
	r.x, r.y = x, y

	if r.slider != nil {
		r.slider = nil
		return
	}

	if !r.surface {
		return
	}
	r.surface = false

	r.q.Queue(session.PointerUp{})
	if r.panel == nil || !r.panel.Contains(x, y) {
		r.q.Queue(session.Pick{X: x, Y: y})
	}
}

// Scroll takes a wheel delta where positive values zoom out.
func (r *Router) Scroll(dy float64) {
	if r.panel != nil && r.panel.Contains(r.x, r.y) {
		return
	}
	r.q.Queue(session.Wheel{DeltaY: dy})
}

func (r *Router) Resize(w, h int) {
	r.q.Queue(session.Resize{W: w, H: h})
}

// Key handles a key press by name. Names are lower case, single characters
// for printable keys.
func (r *Router) Key(name string) {
	switch name {
	case `space`, `p`:
		r.q.Queue(session.TogglePause{})
	case `r`:
		r.q.Queue(session.Reset{})
	case `t`:
		r.q.Queue(session.ToggleTrails{})
	case `+`, `=`:
		r.q.Queue(session.StepSpeed{Delta: session.SpeedStep})
	case `-`:
		r.q.Queue(session.StepSpeed{Delta: -session.SpeedStep})
	case `0`:
		r.q.Queue(session.Focus{Body: session.NoBody})
	case `1`, `2`, `3`, `4`, `5`, `6`, `7`, `8`, `9`:
		r.q.Queue(session.Focus{Body: int(name[0] - '1')})
	case `escape`, `q`:
		r.q.Queue(session.Quit{})
	default:
		if r.Verbose {
			log.Printf(`key press: %s`, name)
		}
	}
}
