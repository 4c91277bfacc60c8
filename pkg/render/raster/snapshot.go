package raster

import (
	"github.com/danilokhury/orbitmap/pkg/layout"
	"github.com/danilokhury/orbitmap/pkg/render"
)

// snapshotPadding is the world-unit border kept around the layout bounds.
const snapshotPadding = 120.0

// Snapshot renders the whole layout into a width x height image, fitted and
// centered. The frame carries link mode and links; selection and search are
// usually empty for exports.
func Snapshot(l *layout.Layout, frame render.Frame, width, height int) (*Canvas, error) {
	canvas, err := New(width, height)
	if err != nil {
		return nil, err
	}

	minX, minY, maxX, maxY := -1.0, -1.0, 1.0, 1.0
	if l != nil {
		minX, minY, maxX, maxY = l.Bounds()
	}
	minX -= snapshotPadding
	minY -= snapshotPadding
	maxX += snapshotPadding
	maxY += snapshotPadding

	w := maxX - minX
	h := maxY - minY
	scale := 1.0
	if w > 0 && h > 0 {
		sx := float64(width) / w
		sy := float64(height) / h
		scale = sx
		if sy < sx {
			scale = sy
		}
	}
	// World center lands on the image center.
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	t := render.NewTransform(scale, float64(width)/2-cx*scale, float64(height)/2-cy*scale)

	p := render.New(render.DefaultConfig())
	p.DrawWorld(canvas, t, l, frame, minX, minY, maxX, maxY)
	return canvas, nil
}
