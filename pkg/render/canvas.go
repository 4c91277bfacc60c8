// Package render draws the region/card set each tick with level-of-detail
// tiers, visibility culling, and batched link drawing.
//
// Drawing goes through the Canvas interface so the pipeline is independent
// of the host surface: the interactive viewer supplies an ebiten-backed
// canvas, offscreen snapshots use the gg raster canvas in render/raster.
// All Canvas coordinates are device pixels; the pipeline applies the
// viewport transform before issuing calls.
package render

import "image/color"

// Point is a device-pixel position.
type Point struct {
	X, Y float64
}

// Segment is one device-pixel line segment of a batched path.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Canvas is the drawing surface consumed by the pipeline.
type Canvas interface {
	// Clear fills the whole surface with c.
	Clear(c color.RGBA)

	FillRect(x, y, w, h float64, c color.RGBA)
	StrokeRect(x, y, w, h, lineWidth float64, c color.RGBA)

	FillCircle(cx, cy, r float64, c color.RGBA)
	StrokeCircle(cx, cy, r, lineWidth float64, c color.RGBA)

	// FillDots draws many same-colored dots in one batch. Used by the far
	// zoom tier, grouped by category color to minimize state changes.
	FillDots(centers []Point, radius float64, c color.RGBA)

	// StrokeSegments draws one batched polyline set. The pipeline issues a
	// single call per frame for all visible links.
	StrokeSegments(segs []Segment, lineWidth float64, c color.RGBA)

	// FillText draws a single line with its baseline-left corner at (x, y).
	FillText(text string, x, y, size float64, c color.RGBA)
}
