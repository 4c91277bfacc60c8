package app

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	apperrors "github.com/danilokhury/orbitmap/pkg/errors"
	"github.com/danilokhury/orbitmap/pkg/render"
)

// canvas adapts an ebiten image to the render.Canvas interface. The target
// image is swapped in at the start of every Draw.
type canvas struct {
	dst  *ebiten.Image
	font *text.GoTextFaceSource
}

func newCanvas() (*canvas, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "load embedded font")
	}
	return &canvas{font: src}, nil
}

func (c *canvas) setTarget(dst *ebiten.Image) { c.dst = dst }

func (c *canvas) Clear(col color.RGBA) {
	c.dst.Fill(col)
}

func (c *canvas) FillRect(x, y, w, h float64, col color.RGBA) {
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), col, false)
}

func (c *canvas) StrokeRect(x, y, w, h, lineWidth float64, col color.RGBA) {
	vector.StrokeRect(c.dst, float32(x), float32(y), float32(w), float32(h), float32(lineWidth), col, false)
}

func (c *canvas) FillCircle(cx, cy, r float64, col color.RGBA) {
	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(r), col, true)
}

func (c *canvas) StrokeCircle(cx, cy, r, lineWidth float64, col color.RGBA) {
	vector.StrokeCircle(c.dst, float32(cx), float32(cy), float32(r), float32(lineWidth), col, true)
}

func (c *canvas) FillDots(centers []render.Point, radius float64, col color.RGBA) {
	for _, p := range centers {
		vector.DrawFilledCircle(c.dst, float32(p.X), float32(p.Y), float32(radius), col, false)
	}
}

func (c *canvas) StrokeSegments(segs []render.Segment, lineWidth float64, col color.RGBA) {
	for _, s := range segs {
		vector.StrokeLine(c.dst, float32(s.X1), float32(s.Y1), float32(s.X2), float32(s.Y2),
			float32(lineWidth), col, true)
	}
}

func (c *canvas) FillText(str string, x, y, size float64, col color.RGBA) {
	face := &text.GoTextFace{Source: c.font, Size: size}
	op := &text.DrawOptions{}
	// FillText takes a baseline position; text.Draw wants the top-left.
	op.GeoM.Translate(x, y-size)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(c.dst, str, face, op)
}
