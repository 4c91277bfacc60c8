// Package raster renders layouts offscreen through fogleman/gg, for PNG
// snapshot export without a window.
package raster

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/danilokhury/orbitmap/pkg/errors"
	"github.com/danilokhury/orbitmap/pkg/render"
)

// Canvas is a render.Canvas drawing into an in-memory RGBA image.
type Canvas struct {
	ctx   *gg.Context
	faces map[int]font.Face
	ttf   *opentype.Font
}

// New returns a raster canvas of the given pixel size.
func New(width, height int) (*Canvas, error) {
	ttf, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse embedded font")
	}
	return &Canvas{
		ctx:   gg.NewContext(width, height),
		faces: make(map[int]font.Face),
		ttf:   ttf,
	}, nil
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image { return c.ctx.Image() }

// EncodePNG writes the rendered image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := c.ctx.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return nil
}

// SavePNG writes the rendered image to a file.
func (c *Canvas) SavePNG(path string) error {
	if err := c.ctx.SavePNG(path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save png")
	}
	return nil
}

func (c *Canvas) Clear(col color.RGBA) {
	c.ctx.SetColor(col)
	c.ctx.Clear()
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.RGBA) {
	c.ctx.SetColor(col)
	c.ctx.DrawRectangle(x, y, w, h)
	c.ctx.Fill()
}

func (c *Canvas) StrokeRect(x, y, w, h, lineWidth float64, col color.RGBA) {
	c.ctx.SetColor(col)
	c.ctx.SetLineWidth(lineWidth)
	c.ctx.DrawRectangle(x, y, w, h)
	c.ctx.Stroke()
}

func (c *Canvas) FillCircle(cx, cy, r float64, col color.RGBA) {
	c.ctx.SetColor(col)
	c.ctx.DrawCircle(cx, cy, r)
	c.ctx.Fill()
}

func (c *Canvas) StrokeCircle(cx, cy, r, lineWidth float64, col color.RGBA) {
	c.ctx.SetColor(col)
	c.ctx.SetLineWidth(lineWidth)
	c.ctx.DrawCircle(cx, cy, r)
	c.ctx.Stroke()
}

func (c *Canvas) FillDots(centers []render.Point, radius float64, col color.RGBA) {
	c.ctx.SetColor(col)
	for _, p := range centers {
		c.ctx.DrawCircle(p.X, p.Y, radius)
	}
	c.ctx.Fill()
}

func (c *Canvas) StrokeSegments(segs []render.Segment, lineWidth float64, col color.RGBA) {
	c.ctx.SetColor(col)
	c.ctx.SetLineWidth(lineWidth)
	for _, s := range segs {
		c.ctx.MoveTo(s.X1, s.Y1)
		c.ctx.LineTo(s.X2, s.Y2)
	}
	c.ctx.Stroke()
}

func (c *Canvas) FillText(text string, x, y, size float64, col color.RGBA) {
	face, err := c.face(size)
	if err != nil {
		return
	}
	c.ctx.SetFontFace(face)
	c.ctx.SetColor(col)
	c.ctx.DrawString(text, x, y)
}

// face returns a cached font face for the given size, keyed by whole pixels.
func (c *Canvas) face(size float64) (font.Face, error) {
	key := int(math.Round(size))
	if key < 1 {
		key = 1
	}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(c.ttf, &opentype.FaceOptions{
		Size:    float64(key),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build font face")
	}
	c.faces[key] = f
	return f, nil
}
