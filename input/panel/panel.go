// Package panel lays out the control panel and maps hits on it to session
// commands. It doesn't draw anything; backends ask it for rectangles and
// labels.
package panel

import (
	"fmt"
	"math"

	"git.c3pb.de/farhaven/solar/camera"
	"git.c3pb.de/farhaven/solar/session"
)

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

type Kind int

const (
	Label Kind = iota
	Button
	Slider
	Option
)

type ID int

const (
	SpeedSlider ID = iota
	ZoomSlider
	PauseButton
	ResetButton
	TrailsButton
	FocusHeader
	FocusOption
	InfoName
	InfoText
)

type Widget struct {
	ID   ID
	Kind Kind
	Rect

	// Sliders
	Min, Max, Step float64

	// Options
	Body int
	Name string
}

// Geometry is the size of one row of the panel, in whatever unit the backend
// uses (pixels for GL, cells for the terminal).
type Geometry struct {
	X, Y  float64
	Width float64
	Row   float64
	Gap   float64
}

type Panel struct {
	Bounds  Rect
	Widgets []Widget
}

const FreeCamera = `Free Camera`

// New lays out the panel top to bottom: sliders, buttons, the focus list with
// one entry per body name, and the info box.
func New(g Geometry, bodies []string) *Panel {
	p := &Panel{}
	y := g.Y

	row := func() Rect {
		r := Rect{X: g.X, Y: y, W: g.Width, H: g.Row}
		y += g.Row + g.Gap
		return r
	}

	p.add(Widget{ID: SpeedSlider, Kind: Slider, Rect: row(), Min: session.SpeedMin, Max: session.SpeedMax, Step: session.SpeedStep})
	p.add(Widget{ID: ZoomSlider, Kind: Slider, Rect: row(), Min: camera.MinRadius, Max: camera.MaxRadius, Step: 1})

	r := row()
	w := (r.W - 2*g.Gap) / 3
	for i, id := range []ID{PauseButton, ResetButton, TrailsButton} {
		br := Rect{X: r.X + float64(i)*(w+g.Gap), Y: r.Y, W: w, H: r.H}
		p.add(Widget{ID: id, Kind: Button, Rect: br})
	}

	p.add(Widget{ID: FocusHeader, Kind: Label, Rect: row()})
	p.add(Widget{ID: FocusOption, Kind: Option, Rect: row(), Body: session.NoBody, Name: FreeCamera})
	for id, name := range bodies {
		p.add(Widget{ID: FocusOption, Kind: Option, Rect: row(), Body: id, Name: name})
	}

	p.add(Widget{ID: InfoName, Kind: Label, Rect: row()})
	p.add(Widget{ID: InfoText, Kind: Label, Rect: row()})

	p.Bounds = Rect{X: g.X, Y: g.Y, W: g.Width, H: y - g.Y - g.Gap}
	return p
}

func (p *Panel) add(w Widget) {
	p.Widgets = append(p.Widgets, w)
}

func (p *Panel) Contains(x, y float64) bool {
	return p.Bounds.Contains(x, y)
}

// At returns the interactive widget under (x, y). Labels are never returned.
func (p *Panel) At(x, y float64) (*Widget, bool) {
	if !p.Contains(x, y) {
		return nil, false
	}

	for i := range p.Widgets {
		w := &p.Widgets[i]
		if w.Kind != Label && w.Contains(x, y) {
			return w, true
		}
	}
	return nil, false
}

// Value maps a pointer x coordinate on a slider to a slider value.
func (w *Widget) Value(x float64) float64 {
	f := 0.0
	if w.W > 0 {
		f = math.Max(0, math.Min(1, (x-w.X)/w.W))
	}

	v := w.Min + f*(w.Max-w.Min)
	if w.Step > 0 {
		v = math.Round(v/w.Step) * w.Step
	}
	return math.Max(w.Min, math.Min(w.Max, v))
}

// Fraction is where the knob of a slider sits for value v, in [0, 1].
func (w *Widget) Fraction(v float64) float64 {
	if w.Max <= w.Min {
		return 0
	}
	return math.Max(0, math.Min(1, (v-w.Min)/(w.Max-w.Min)))
}

// Command is what pressing the widget at pointer x does.
func (w *Widget) Command(x float64) (session.Command, bool) {
	switch w.ID {
	case SpeedSlider:
		return session.SetSpeed{Value: w.Value(x)}, true
	case ZoomSlider:
		return session.SetZoom{Value: w.Value(x)}, true
	case PauseButton:
		return session.TogglePause{}, true
	case ResetButton:
		return session.Reset{}, true
	case TrailsButton:
		return session.ToggleTrails{}, true
	case FocusOption:
		return session.Focus{Body: w.Body}, true
	}
	return nil, false
}

// State is what a backend needs to draw a widget.
type State struct {
	Label    string
	Active   bool
	Disabled bool
	Fraction float64 // knob position, sliders only
}

func (w *Widget) State(s *session.Session) State {
	switch w.ID {
	case SpeedSlider:
		return State{
			Label:    fmt.Sprintf(`Speed %.1fx`, s.Playback.Speed),
			Fraction: w.Fraction(s.Playback.Speed),
		}
	case ZoomSlider:
		return State{
			Label:    fmt.Sprintf(`Zoom %.0f`, s.Zoom),
			Fraction: w.Fraction(s.Zoom),
			Disabled: s.Camera.Mode() == camera.Locked,
		}
	case PauseButton:
		return State{Label: s.PauseLabel(), Active: s.Playback.Paused}
	case ResetButton:
		return State{Label: `Reset`}
	case TrailsButton:
		return State{Label: `Trails`, Active: s.ShowTrails}
	case FocusHeader:
		return State{Label: `Focus`}
	case FocusOption:
		return State{Label: w.Name, Active: s.Focus() == w.Body}
	case InfoName:
		name, _ := s.Info()
		return State{Label: name}
	case InfoText:
		_, info := s.Info()
		return State{Label: info}
	}
	return State{}
}
