package tty

import (
	"fmt"
	"math"

	"git.c3pb.de/farhaven/solar/input/panel"

	"github.com/gdamore/tcell/v2"
)

var (
	panelStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(16, 16, 16))
	activeStyle = panelStyle.Background(tcell.NewRGBColor(0x4b, 0x70, 0xdd))
	dimStyle    = panelStyle.Foreground(tcell.ColorGray)
	knobStyle   = panelStyle.Foreground(tcell.NewRGBColor(0xff, 0xd7, 0x00))
)

// text writes s at cell (x, y), clipped to w cells. It returns the number of
// cells written.
func (t *Terminal) text(x, y, w int, s string, st tcell.Style) int {
	n := 0
	for _, r := range s {
		if n >= w {
			break
		}
		t.screen.SetContent(x+n, y, r, nil, st)
		n++
	}
	return n
}

func (t *Terminal) fill(x, y, w int, st tcell.Style) {
	for i := 0; i < w; i++ {
		t.screen.SetContent(x+i, y, ' ', nil, st)
	}
}

func cell(r panel.Rect) (x, y, w int) {
	return int(r.X), int(r.Y) / 2, int(math.Max(1, r.W))
}

func (t *Terminal) drawPanel() {
	p := t.router.Panel()

	bx, by, bw := cell(p.Bounds)
	for y := by; y < by+int(p.Bounds.H)/2; y++ {
		t.fill(bx, y, bw, panelStyle)
	}

	for i := range p.Widgets {
		wd := &p.Widgets[i]
		st := wd.State(t.s)
		x, y, w := cell(wd.Rect)

		style := panelStyle
		if st.Disabled {
			style = dimStyle
		}

		switch wd.Kind {
		case panel.Slider:
			t.fill(x, y, w, style)
			n := t.text(x, y, w, st.Label+` `, style)
			track := w - n
			if track <= 1 {
				continue
			}
			knob := x + n + int(st.Fraction*float64(track-1)+0.5)
			for cx := x + n; cx < x+w; cx++ {
				t.screen.SetContent(cx, y, '─', nil, style)
			}
			t.screen.SetContent(knob, y, '●', nil, knobStyle)
		case panel.Button:
			if st.Active {
				style = activeStyle
			}
			t.fill(x, y, w, style)
			t.text(x+(w-len(st.Label))/2, y, w, st.Label, style)
		case panel.Option:
			prefix := `  `
			if st.Active {
				style = activeStyle
				prefix = `> `
			}
			t.fill(x, y, w, style)
			t.text(x, y, w, prefix+st.Label, style)
		case panel.Label:
			if wd.ID == panel.FocusHeader || wd.ID == panel.InfoName {
				style = style.Bold(true)
			}
			t.text(x, y, w, st.Label, style)
		}
	}
}

func (t *Terminal) drawStatus() {
	cols, rows := t.screen.Size()
	cam := t.s.Camera

	line := fmt.Sprintf(` %s r:%.0f frame:%d `, cam.Mode(), cam.Spherical().Radius, t.s.Frames)
	if id, ok := cam.Body(); ok {
		if d, ok := t.s.Orrery.Descriptor(id); ok {
			line = fmt.Sprintf(` %s %s frame:%d `, cam.Mode(), d.Name, t.s.Frames)
		}
	}
	t.text(0, rows-1, cols, line, dimStyle)
}

func (t *Terminal) drawLoading() {
	cols, rows := t.screen.Size()
	msg := `Loading…`
	t.text((cols-len([]rune(msg)))/2, rows/2, cols, msg, panelStyle.Bold(true))
}
