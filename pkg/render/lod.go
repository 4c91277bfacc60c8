package render

// Level-of-detail tiers, chosen from the on-screen pixel width of a card.
const (
	// LOD0 draws full card chrome: background, border, color bar, label,
	// wrapped text, importance glyphs.
	LOD0 = iota
	// LOD1 draws a plain colored rectangle.
	LOD1
	// LOD2 draws cards as batched single-color dots; links are skipped.
	LOD2
)

// Default tier boundaries in on-screen card pixels.
const (
	DefaultLODFullPx = 25.0
	DefaultLODRectPx = 12.0
)

// TierFor returns the LOD tier for a card rendered cardPx pixels wide.
func TierFor(cardPx, fullPx, rectPx float64) int {
	switch {
	case cardPx >= fullPx:
		return LOD0
	case cardPx >= rectPx:
		return LOD1
	default:
		return LOD2
	}
}
