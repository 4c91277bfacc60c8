package render

import (
	"github.com/danilokhury/orbitmap/pkg/layout"
	"github.com/danilokhury/orbitmap/pkg/model"
)

// linkVisible decides whether a single link is drawn given the link mode and
// the active search matches. With matches present a link survives only when at
// least one endpoint matched.
func linkVisible(link model.Link, mode string, matches map[string]bool) bool {
	switch mode {
	case model.LinkModeOff:
		return false
	case model.LinkModeIntra:
		if link.CrossCategory {
			return false
		}
	}
	if len(matches) == 0 {
		return true
	}
	return matches[link.Source] || matches[link.Target]
}

// buildLinkSegments converts the visible links into device-pixel segments.
// Both endpoints must exist in the layout; a segment is kept when either
// endpoint falls inside the culling rect, so links entering the view from
// off-screen cards still draw.
func buildLinkSegments(l *layout.Layout, links []model.Link, mode string, matches map[string]bool, t Transform, minX, minY, maxX, maxY float64) []Segment {
	if mode == model.LinkModeOff {
		return nil
	}
	segs := make([]Segment, 0, len(links))
	for _, link := range links {
		if !linkVisible(link, mode, matches) {
			continue
		}
		a := l.Card(link.Source)
		b := l.Card(link.Target)
		if a == nil || b == nil {
			continue
		}
		aIn := a.X >= minX && a.X <= maxX && a.Y >= minY && a.Y <= maxY
		bIn := b.X >= minX && b.X <= maxX && b.Y >= minY && b.Y <= maxY
		if !aIn && !bIn {
			continue
		}
		x1, y1 := t.apply(a.X, a.Y)
		x2, y2 := t.apply(b.X, b.Y)
		segs = append(segs, Segment{X1: x1, Y1: y1, X2: x2, Y2: y2})
	}
	return segs
}
