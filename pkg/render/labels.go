package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/danilokhury/orbitmap/pkg/layout"
)

// charWidthRatio approximates glyph width as a fraction of font size. It must
// stay consistent with the layout package's label metrics so the exclusion
// radius and hit boxes match what is drawn.
const charWidthRatio = 0.55

// maxLabelBoost caps the zoom compensation applied to category labels so
// they stay legible when zoomed out without growing unboundedly.
const maxLabelBoost = 3.0

// LabelBoost returns the font-size multiplier compensating the current zoom.
// At scale >= 1 labels render at their natural size; zooming out inflates
// them up to the cap.
func LabelBoost(scale float64) float64 {
	if scale >= 1 {
		return 1
	}
	return math.Min(1/scale, maxLabelBoost)
}

// LabelAlpha returns the category-label opacity for the given on-screen card
// width. Labels are fully opaque when cards are small (the label is the only
// readable cue) and fade toward a dim floor as the view crosses the
// LOD0/LOD1 boundary into full card chrome.
func LabelAlpha(cardPx, fullPx, rectPx float64) float64 {
	const floor = 0.35
	if cardPx <= rectPx {
		return 1
	}
	if cardPx >= fullPx {
		return floor
	}
	t := (cardPx - rectPx) / (fullPx - rectPx)
	// Smoothstep for a gentle fade.
	t = t * t * (3 - 2*t)
	return 1 - t*(1-floor)
}

// LabelHitBox returns the world-space half extents of a region label as
// currently rendered, for hit-testing. It reuses the layout metrics and the
// zoom boost so the clickable area matches the drawn plate.
func LabelHitBox(name string, isParent, hasLogo bool, scale float64) (halfW, halfH float64) {
	w, h := layout.LabelBox(name, isParent, hasLogo)
	boost := LabelBoost(scale)
	return w * boost / 2, h * boost / 2
}

// =============================================================================
// Text Wrapping
// =============================================================================

// wrapCache memoizes per-record wrapped lines. Keyed by content and width so
// a zoom change (different wrap width never happens at LOD0 in world units)
// stays a hit. The cache belongs to a Pipeline instance and is dropped on
// Reset, never global.
type wrapCache struct {
	lines map[string][]string
}

func newWrapCache() *wrapCache {
	return &wrapCache{lines: make(map[string][]string)}
}

func (c *wrapCache) get(text string, width float64, size float64, maxLines int) []string {
	key := fmt.Sprintf("%.0f|%.0f|%d|%s", width, size, maxLines, text)
	if lines, ok := c.lines[key]; ok {
		return lines
	}
	lines := WrapText(text, width, size, maxLines)
	c.lines[key] = lines
	return lines
}

// WrapText greedily wraps text to fit width at the given font size, returning
// at most maxLines lines; the last line is ellipsized if text remains. All
// measuring and splitting is in runes so multibyte content never breaks
// mid-character.
func WrapText(text string, width, size float64, maxLines int) []string {
	if maxLines <= 0 {
		return nil
	}
	maxChars := int(width / (size * charWidthRatio))
	if maxChars < 1 {
		maxChars = 1
	}

	words := strings.Fields(text)
	var lines []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, string(cur))
			cur = cur[:0]
		}
	}

	for _, word := range words {
		if len(lines) == maxLines {
			break
		}
		runes := []rune(word)
		for len(runes) > maxChars { // hard-break oversized words
			space := maxChars - len(cur)
			if len(cur) > 0 {
				space-- // separator
			}
			if space < 1 {
				flush()
				continue
			}
			if len(cur) > 0 {
				cur = append(cur, ' ')
			}
			cur = append(cur, runes[:space]...)
			runes = runes[space:]
			flush()
		}
		need := len(runes)
		if len(cur) > 0 {
			need += len(cur) + 1
		}
		if need > maxChars {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, runes...)
	}
	flush()

	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	// Ellipsize when content was cut.
	kept := 0
	for _, line := range lines {
		kept += len([]rune(line))
	}
	total := len(words) - 1
	for _, word := range words {
		total += len([]rune(word))
	}
	if kept+len(lines)-1 < total && len(lines) > 0 {
		last := []rune(lines[len(lines)-1])
		if len(last) > 2 {
			last = last[:len(last)-2]
		}
		lines[len(lines)-1] = string(last) + ".."
	}
	return lines
}
