package tty

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// raster is a pixel buffer two pixels tall per terminal cell, drawn with
// upper half blocks.
type raster struct {
	w, h  int
	pix   []colorful.Color
	set   []bool
	depth []float64
}

func newRaster(cols, rows int) *raster {
	r := &raster{}
	r.resize(cols, rows)
	return r
}

func (r *raster) resize(cols, rows int) {
	r.w, r.h = cols, rows*2
	n := r.w * r.h
	r.pix = make([]colorful.Color, n)
	r.set = make([]bool, n)
	r.depth = make([]float64, n)
	r.clear()
}

func (r *raster) clear() {
	for i := range r.pix {
		r.pix[i] = colorful.Color{}
		r.set[i] = false
		r.depth[i] = math.Inf(1)
	}
}

// plot sets the pixel at (x, y) unless something nearer is already there.
func (r *raster) plot(x, y int, z float64, c colorful.Color) bool {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return false
	}
	i := y*r.w + x
	if z > r.depth[i] {
		return false
	}
	r.pix[i] = c
	r.set[i] = true
	r.depth[i] = z
	return true
}

// blend mixes c into the pixel at (x, y) with opacity a. It doesn't write
// depth.
func (r *raster) blend(x, y int, z float64, c colorful.Color, a float64) {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return
	}
	i := y*r.w + x
	if z > r.depth[i] {
		return
	}
	r.pix[i] = r.pix[i].BlendRgb(c, a)
	r.set[i] = true
}

func (r *raster) at(x, y int) (colorful.Color, bool) {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return colorful.Color{}, false
	}
	i := y*r.w + x
	return r.pix[i], r.set[i]
}

func tcellColor(c colorful.Color) tcell.Color {
	cr, cg, cb := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
}

// flush writes every cell of the raster to s.
func (r *raster) flush(s tcell.Screen) {
	for y := 0; y < r.h/2; y++ {
		for x := 0; x < r.w; x++ {
			top, _ := r.at(x, 2*y)
			bottom, _ := r.at(x, 2*y+1)
			st := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			s.SetContent(x, y, '▀', nil, st)
		}
	}
}
