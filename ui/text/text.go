package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

type Context struct {
	ft  *freetype.Context
	fnt *truetype.Font
}

// NewContext loads a TrueType font from path, or Go Regular if path is empty.
func NewContext(path string) (*Context, error) {
	if path == `` {
		return NewContextFromBytes(goregular.TTF)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read font: %w", err)
	}
	return NewContextFromBytes(data)
}

func NewContextFromBytes(data []byte) (*Context, error) {
	fnt, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("can't parse font: %w", err)
	}

	ctx := freetype.NewContext()
	ctx.SetFont(fnt)
	/* XXX: get appropriate DPI for current display */
	ctx.SetDPI(72)

	return &Context{ctx, fnt}, nil
}

func toFloat64(i fixed.Int26_6) float64 {
	return float64(i) / 64
}

type nullImage struct{}

func (i nullImage) ColorModel() color.Model {
	return color.RGBAModel
}
func (i nullImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, 1, 1)
}
func (i nullImage) At(x, y int) color.Color {
	return color.Transparent
}
func (i nullImage) Set(x, y int, c color.Color) {
}

// LineHeight is the height of one rendered line at size.
func (c *Context) LineHeight(size float64) int {
	scale := fixed.Int26_6(size * 64)
	bnd := c.fnt.Bounds(scale)
	return int(toFloat64(bnd.Max.Y-bnd.Min.Y) + 0.5)
}

// Render draws txt onto a transparent image just wide enough to hold it.
func (c *Context) Render(txt string, size float64, col color.Color) (*image.RGBA, error) {
	scale := fixed.Int26_6(size * 64)
	bnd := c.fnt.Bounds(scale)
	lh := c.LineHeight(size)
	baseline := int(toFloat64(bnd.Max.Y) + 0.5)

	c.ft.SetSrc(image.NewUniform(col))
	c.ft.SetFontSize(size)

	/* Render to a null image first to measure the width */
	tmp := nullImage{}
	c.ft.SetDst(tmp)
	c.ft.SetClip(tmp.Bounds())
	p, err := c.ft.DrawString(txt, fixed.P(0, baseline))
	if err != nil {
		return nil, err
	}

	w := int(toFloat64(p.X) + 0.5)
	if w < 1 {
		w = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, lh))
	c.ft.SetDst(dst)
	c.ft.SetClip(dst.Bounds())

	if _, err = c.ft.DrawString(txt, fixed.P(0, baseline)); err != nil {
		return nil, err
	}

	return dst, nil
}

func (c *Context) RenderMultiline(txt []string, size float64, bg, fg color.Color) (*image.RGBA, error) {
	w, h := 0, 0
	imgs := []*image.RGBA{}

	for _, l := range txt {
		i, err := c.Render(l, size, fg)
		if err != nil {
			return nil, err
		}
		if i.Bounds().Dx() > w {
			w = i.Bounds().Dx()
		}
		h += i.Bounds().Dy()
		imgs = append(imgs, i)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	y := 0
	for _, src := range imgs {
		sr := src.Bounds()
		dp := image.Point{0, y}
		r := image.Rectangle{dp, dp.Add(sr.Size())}
		draw.Draw(dst, r, src, sr.Min, draw.Over)
		y += sr.Dy()
	}

	return dst, nil
}
