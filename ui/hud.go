package ui

import (
	"fmt"
	"image/color"
	"log"

	"git.c3pb.de/farhaven/solar/input/panel"
	"git.c3pb.de/farhaven/solar/orrery"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	textSize  = 13
	titleSize = 16
)

var (
	panelBackground = orrery.MustHex(`#000000`)
	widgetColor     = orrery.MustHex(`#333333`)
	activeColor     = orrery.MustHex(`#4b70dd`)
	knobColor       = orrery.MustHex(`#ffd700`)
)

type texture struct {
	id   uint32
	w, h int
	used bool
}

type textureKey struct {
	text  string
	size  float64
	color color.RGBA
}

// textureCache holds one texture per rendered string. Textures not drawn
// during a frame are deleted at the end of it.
type textureCache struct {
	byKey map[textureKey]*texture
}

func newTextureCache() *textureCache {
	return &textureCache{byKey: map[textureKey]*texture{}}
}

func (w *Window) textTexture(txt string, size float64, c color.RGBA) (*texture, bool) {
	k := textureKey{txt, size, c}
	if t, ok := w.textures.byKey[k]; ok {
		t.used = true
		return t, true
	}

	img, err := w.text.Render(txt, size, c)
	if err != nil {
		log.Printf(`can't render %q: %s`, txt, err)
		return nil, false
	}

	t := &texture{w: img.Bounds().Dx(), h: img.Bounds().Dy(), used: true}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(t.w), int32(t.h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	w.textures.byKey[k] = t
	return t, true
}

// sweep deletes textures that weren't used since the last sweep.
func (c *textureCache) sweep() {
	for k, t := range c.byKey {
		if !t.used {
			gl.DeleteTextures(1, &t.id)
			delete(c.byKey, k)
			continue
		}
		t.used = false
	}
}

func (c *textureCache) purge() {
	for k, t := range c.byKey {
		gl.DeleteTextures(1, &t.id)
		delete(c.byKey, k)
	}
}

func rgba(c colorful.Color, a float64) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

// ortho switches to window coordinates with the origin at the top left.
func (w *Window) ortho() {
	ww, wh := w.s.Width, w.s.Height

	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, float64(ww), float64(wh), 0, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
}

func endOrtho() {
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (w *Window) drawBackdrop() {
	w.ortho()
	defer endOrtho()

	since := w.s.Since()
	for _, t := range w.s.Orrery.Twinkles() {
		gl.PointSize(float32(t.Size))
		gl.Color4d(1, 1, 1, t.Alpha(since))
		gl.Begin(gl.POINTS)
		gl.Vertex2d(t.X*float64(w.s.Width), t.Y*float64(w.s.Height))
		gl.End()
	}
}

func fillRect(r panel.Rect, c colorful.Color, a float64) {
	gl.Color4d(c.R, c.G, c.B, a)
	gl.Begin(gl.QUADS)
	gl.Vertex2d(r.X, r.Y)
	gl.Vertex2d(r.X+r.W, r.Y)
	gl.Vertex2d(r.X+r.W, r.Y+r.H)
	gl.Vertex2d(r.X, r.Y+r.H)
	gl.End()
}

// drawText draws txt with its top left corner at (x, y).
func (w *Window) drawText(txt string, x, y, size float64, c colorful.Color, a float64) (float64, float64) {
	if txt == `` {
		return 0, 0
	}

	t, ok := w.textTexture(txt, size, rgba(c, 1))
	if !ok {
		return 0, 0
	}

	gl.Enable(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	defer gl.Disable(gl.TEXTURE_2D)
	defer gl.BindTexture(gl.TEXTURE_2D, 0)

	tw, th := float64(t.w), float64(t.h)

	gl.Color4d(1, 1, 1, a)
	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, 0)
	gl.Vertex2d(x, y)
	gl.TexCoord2f(1, 0)
	gl.Vertex2d(x+tw, y)
	gl.TexCoord2f(1, 1)
	gl.Vertex2d(x+tw, y+th)
	gl.TexCoord2f(0, 1)
	gl.Vertex2d(x, y+th)
	gl.End()

	return tw, th
}

func (w *Window) drawHud() {
	w.ortho()
	defer endOrtho()

	w.drawPanel()
	w.drawStatus()
	if w.s.Loading() {
		w.drawLoading()
	}

	w.textures.sweep()
}

func (w *Window) drawPanel() {
	p := w.router.Panel()

	b := p.Bounds
	fillRect(panel.Rect{X: b.X - 6, Y: b.Y - 6, W: b.W + 12, H: b.H + 12}, panelBackground, 0.7)

	white := colorful.Color{R: 1, G: 1, B: 1}
	row := panelGeometry.Row

	for i := range p.Widgets {
		wd := &p.Widgets[i]
		st := wd.State(w.s)

		alpha := 1.0
		if st.Disabled {
			alpha = 0.4
		}

		ty := wd.Y + (row-textSize)/2 - 2

		switch wd.Kind {
		case panel.Slider:
			fillRect(wd.Rect, widgetColor, alpha)
			fillRect(panel.Rect{X: wd.X, Y: wd.Y, W: wd.W * st.Fraction, H: wd.H}, activeColor, 0.6*alpha)
			kx := wd.X + wd.W*st.Fraction
			fillRect(panel.Rect{X: kx - 2, Y: wd.Y, W: 4, H: wd.H}, knobColor, alpha)
			w.drawText(st.Label, wd.X+6, ty, textSize, white, alpha)
		case panel.Button, panel.Option:
			bg := widgetColor
			if st.Active {
				bg = activeColor
			}
			if wd.Kind == panel.Button || st.Active {
				fillRect(wd.Rect, bg, alpha)
			}
			w.drawText(st.Label, wd.X+6, ty, textSize, white, alpha)
		case panel.Label:
			size := float64(textSize)
			if wd.ID == panel.InfoName || wd.ID == panel.FocusHeader {
				size = titleSize
			}
			w.drawText(st.Label, wd.X, ty, size, white, alpha)
		}
	}
}

func (w *Window) drawStatus() {
	cam := w.s.Camera
	line := fmt.Sprintf(`%s r:%.0f frame:%d %.1fms`, cam.Mode(), cam.Spherical().Radius, w.s.Frames, float64(w.frameTime.Microseconds())/1000)
	if id, ok := cam.Body(); ok {
		if d, ok := w.s.Orrery.Descriptor(id); ok {
			line = fmt.Sprintf(`%s %s frame:%d %.1fms`, cam.Mode(), d.Name, w.s.Frames, float64(w.frameTime.Microseconds())/1000)
		}
	}

	gray := colorful.Color{R: 0.6, G: 0.6, B: 0.6}
	w.drawText(line, 10, float64(w.s.Height)-textSize-10, textSize, gray, 1)
}

func (w *Window) drawLoading() {
	fillRect(panel.Rect{W: float64(w.s.Width), H: float64(w.s.Height)}, panelBackground, 0.9)

	t, ok := w.textTexture(`Loading…`, 2*titleSize, rgba(colorful.Color{R: 1, G: 1, B: 1}, 1))
	if !ok {
		return
	}
	x := (float64(w.s.Width) - float64(t.w)) / 2
	y := (float64(w.s.Height) - float64(t.h)) / 2
	w.drawText(`Loading…`, x, y, 2*titleSize, colorful.Color{R: 1, G: 1, B: 1}, 1)
}
