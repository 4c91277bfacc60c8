package layout

import "math"

// Label metrics mirror what the render pipeline draws, so the exclusion
// radius can be computed without a live font context. Sizes follow the
// character-width approximation used throughout the renderer.
const (
	parentLabelFontSize = 26.0
	childLabelFontSize  = 18.0
	labelCharWidth      = 0.55 // width of one glyph as a fraction of font size
	labelPadX           = 14.0
	labelPadY           = 8.0
	logoBoxSize         = 64.0
)

// LabelBox returns the rendered width and height of a region's label plate.
// Logo labels are a square image above the text line; plain labels are one
// text line inside padding. Parent labels use a larger font than child ones.
func LabelBox(name string, isParent, hasLogo bool) (w, h float64) {
	fontSize := childLabelFontSize
	if isParent {
		fontSize = parentLabelFontSize
	}
	textW := float64(len(name)) * fontSize * labelCharWidth
	w = textW + 2*labelPadX
	h = fontSize + 2*labelPadY
	if hasLogo {
		w = math.Max(w, logoBoxSize)
		h += logoBoxSize
	}
	return w, h
}

// ExclusionRadius computes the label-exclusion radius for a region label:
// the label box grown by the card half-extents plus a fixed margin (a
// Minkowski sum), converted to a radius via the diagonal of the grown box.
// A card centered anywhere at or beyond this distance cannot intersect the
// label at any ring angle, independent of zoom.
func ExclusionRadius(name string, isParent, hasLogo bool, p Params) float64 {
	labelW, labelH := LabelBox(name, isParent, hasLogo)
	halfW := labelW/2 + p.CardWidth/2 + p.LabelMargin
	halfH := labelH/2 + p.CardHeight/2 + p.LabelMargin
	return math.Hypot(halfW, halfH)
}
