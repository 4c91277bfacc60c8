package render

import (
	"image/color"
	"sort"

	"github.com/danilokhury/orbitmap/pkg/layout"
	"github.com/danilokhury/orbitmap/pkg/model"
	"github.com/danilokhury/orbitmap/pkg/viewport"
)

// =============================================================================
// Pipeline Configuration
// =============================================================================

// Config holds the geometry and tier thresholds the pipeline renders with.
// Card dimensions must match the layout parameters the positions were
// computed with.
type Config struct {
	CardWidth  float64
	CardHeight float64
	// CullMargin is the extra world-unit band around the visible rect that
	// still renders, so cards slide in instead of popping.
	CullMargin float64
	// LODFullPx and LODRectPx are the tier boundaries in on-screen card
	// pixels.
	LODFullPx float64
	LODRectPx float64
}

// DefaultConfig returns thresholds matching the default layout parameters.
func DefaultConfig() Config {
	p := layout.DefaultParams()
	return Config{
		CardWidth:  p.CardWidth,
		CardHeight: p.CardHeight,
		CullMargin: 200,
		LODFullPx:  DefaultLODFullPx,
		LODRectPx:  DefaultLODRectPx,
	}
}

// Frame carries the per-tick inputs that change independently of the layout.
type Frame struct {
	// Selection holds the record ids drawn with a selection outline.
	Selection map[string]bool
	// Matches holds the record ids matching the active search. Empty means
	// no search: nothing is dimmed and all links pass the search filter.
	Matches map[string]bool
	// LinkMode is one of model.LinkModeAll, LinkModeIntra, LinkModeOff.
	LinkMode string
	// Links is the dataset's link list.
	Links []model.Link
}

// Transform maps world coordinates to device pixels: the world origin lands
// at (OffsetX, OffsetY) and distances scale by Scale.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

func (t Transform) apply(wx, wy float64) (float64, float64) {
	return wx*t.Scale + t.OffsetX, wy*t.Scale + t.OffsetY
}

// Pipeline renders a layout through a Canvas. It keeps a text wrap cache
// across frames; Reset drops it after a data reload.
type Pipeline struct {
	cfg  Config
	wrap *wrapCache
}

// New returns a render pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg, wrap: newWrapCache()}
}

// Reset drops cached per-record text layout. Call after the dataset changes.
func (p *Pipeline) Reset() {
	p.wrap = newWrapCache()
}

// =============================================================================
// Frame Drawing
// =============================================================================

// Draw renders one frame of the layout through the viewport onto the canvas.
func (p *Pipeline) Draw(c Canvas, vp *viewport.Viewport, l *layout.Layout, frame Frame) {
	ox, oy := vp.WorldToScreen(0, 0)
	t := Transform{Scale: vp.Scale(), OffsetX: ox, OffsetY: oy}
	minX, minY, maxX, maxY := vp.VisibleRect(p.cfg.CullMargin)
	p.DrawWorld(c, t, l, frame, minX, minY, maxX, maxY)
}

// DrawWorld renders with an explicit Transform and world-space cull rect.
// Offscreen snapshot rendering calls this directly without a viewport.
func (p *Pipeline) DrawWorld(c Canvas, t Transform, l *layout.Layout, frame Frame, minX, minY, maxX, maxY float64) {
	c.Clear(colorBackground)
	if l == nil {
		return
	}

	tier := TierFor(p.cfg.CardWidth*t.Scale, p.cfg.LODFullPx, p.cfg.LODRectPx)

	p.drawRegions(c, t, l, minX, minY, maxX, maxY)
	if tier != LOD2 {
		segs := buildLinkSegments(l, frame.Links, frame.LinkMode, frame.Matches, t, minX, minY, maxX, maxY)
		if len(segs) > 0 {
			c.StrokeSegments(segs, 1, colorLink)
		}
	}
	p.drawCards(c, t, l, frame, tier, minX, minY, maxX, maxY)
	p.drawLabels(c, t, l, minX, minY, maxX, maxY)
}

// NewTransform builds a world-to-device transform from a scale and the device
// position of the world origin.
func NewTransform(scale, originX, originY float64) Transform {
	return Transform{Scale: scale, OffsetX: originX, OffsetY: originY}
}

// drawRegions fills and outlines every visible region disc, parents first so
// child discs sit on top of the parent tint.
func (p *Pipeline) drawRegions(c Canvas, t Transform, l *layout.Layout, minX, minY, maxX, maxY float64) {
	for _, r := range l.Regions {
		if r.CX+r.Radius < minX || r.CX-r.Radius > maxX ||
			r.CY+r.Radius < minY || r.CY-r.Radius > maxY {
			continue
		}
		cx, cy := t.apply(r.CX, r.CY)
		radius := r.Radius * t.Scale
		c.FillCircle(cx, cy, radius, colorRegionFill)
		c.StrokeCircle(cx, cy, radius, 1.5, withAlpha(RegionColor(r.Name, r.Color), 0.5))
	}
}

// drawCards renders every visible card at the active tier. LOD2 batches dots
// by category color so each color is one canvas call.
func (p *Pipeline) drawCards(c Canvas, t Transform, l *layout.Layout, frame Frame, tier int, minX, minY, maxX, maxY float64) {
	hw, hh := p.cfg.CardWidth/2, p.cfg.CardHeight/2

	var dots map[color.RGBA][]Point
	if tier == LOD2 {
		dots = make(map[color.RGBA][]Point)
	}

	for _, card := range l.Cards {
		if card.X+hw < minX || card.X-hw > maxX || card.Y+hh < minY || card.Y-hh > maxY {
			continue
		}
		catColor := RegionColor(card.Record.Category, regionHex(l, card.Record.Category))
		dim := len(frame.Matches) > 0 && !frame.Matches[card.Record.ID]

		switch tier {
		case LOD2:
			sx, sy := t.apply(card.X, card.Y)
			key := catColor
			if dim {
				key = withAlpha(catColor, 0.25)
			}
			dots[key] = append(dots[key], Point{X: sx, Y: sy})
		case LOD1:
			p.drawCardRect(c, t, card, catColor, dim)
		default:
			p.drawCardFull(c, t, card, catColor, dim, frame.Selection[card.Record.ID])
		}
	}

	if tier == LOD2 {
		radius := p.cfg.CardWidth * t.Scale / 2
		if radius < 1.5 {
			radius = 1.5
		}
		// Stable draw order across frames.
		keys := make([]color.RGBA, 0, len(dots))
		for k := range dots {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			a, b := keys[i], keys[j]
			if a.R != b.R {
				return a.R < b.R
			}
			if a.G != b.G {
				return a.G < b.G
			}
			if a.B != b.B {
				return a.B < b.B
			}
			return a.A < b.A
		})
		for _, k := range keys {
			c.FillDots(dots[k], radius, k)
		}
	}
}

// drawCardRect is the LOD1 card: one flat rect in the category color.
func (p *Pipeline) drawCardRect(c Canvas, t Transform, card *model.CardPosition, catColor color.RGBA, dim bool) {
	x, y := t.apply(card.X-p.cfg.CardWidth/2, card.Y-p.cfg.CardHeight/2)
	w := p.cfg.CardWidth * t.Scale
	h := p.cfg.CardHeight * t.Scale
	fill := withAlpha(catColor, 0.85)
	if dim {
		fill = withAlpha(catColor, 0.2)
	}
	c.FillRect(x, y, w, h, fill)
}

// drawCardFull is the LOD0 card: background, category bar, border, wrapped
// content, importance pips, and the selection outline.
func (p *Pipeline) drawCardFull(c Canvas, t Transform, card *model.CardPosition, catColor color.RGBA, dim, selected bool) {
	const (
		barWidth   = 5.0
		padX       = 9.0
		padTop     = 8.0
		textSize   = 12.0
		lineHeight = 15.0
		maxLines   = 3
		pipRadius  = 2.0
		pipGap     = 6.0
	)

	x, y := t.apply(card.X-p.cfg.CardWidth/2, card.Y-p.cfg.CardHeight/2)
	w := p.cfg.CardWidth * t.Scale
	h := p.cfg.CardHeight * t.Scale
	s := t.Scale

	alpha := 1.0
	if dim {
		alpha = 0.25
	}

	c.FillRect(x, y, w, h, withAlpha(colorCardBG, alpha))
	c.FillRect(x, y, barWidth*s, h, withAlpha(catColor, alpha))
	border := withAlpha(colorCardBorder, alpha)
	borderWidth := 1.0
	if selected {
		border = colorSelection
		borderWidth = 2.0
	} else if card.Pinned {
		border = withAlpha(catColor, alpha)
	}
	c.StrokeRect(x, y, w, h, borderWidth, border)

	textWidth := p.cfg.CardWidth - barWidth - 2*padX
	lines := p.wrap.get(card.Record.Content, textWidth, textSize, maxLines)
	tx := x + (barWidth+padX)*s
	ty := y + (padTop+textSize)*s
	for _, line := range lines {
		c.FillText(line, tx, ty, textSize*s, withAlpha(colorText, alpha))
		ty += lineHeight * s
	}

	// Importance pips along the bottom edge.
	py := y + h - 7*s
	px := x + (barWidth+padX)*s
	pips := card.Record.Importance
	if pips > model.MaxImportance {
		pips = model.MaxImportance
	}
	for i := 0; i < pips; i++ {
		c.FillCircle(px+float64(i)*pipGap*s, py, pipRadius*s, withAlpha(colorTextDim, alpha))
	}
}

// drawLabels renders every visible region label plate with zoom boost and the
// tier-dependent fade. Labels draw last so they stay readable over cards.
func (p *Pipeline) drawLabels(c Canvas, t Transform, l *layout.Layout, minX, minY, maxX, maxY float64) {
	cardPx := p.cfg.CardWidth * t.Scale
	alpha := LabelAlpha(cardPx, p.cfg.LODFullPx, p.cfg.LODRectPx)
	boost := LabelBoost(t.Scale)

	for _, r := range l.Regions {
		w, h := layout.LabelBox(r.Name, r.IsParent(), r.Logo != "")
		w *= boost
		h *= boost
		// Cull on the boosted plate extents so a label straddling the view
		// edge keeps drawing until it is fully outside.
		if r.CX+w/2 < minX || r.CX-w/2 > maxX || r.CY+h/2 < minY || r.CY-h/2 > maxY {
			continue
		}
		size := labelFontChild
		if r.IsParent() {
			size = labelFontParent
		}
		size *= boost

		cx, cy := t.apply(r.CX, r.CY)
		x := cx - w*t.Scale/2
		y := cy - h*t.Scale/2

		c.FillRect(x, y, w*t.Scale, h*t.Scale, withAlpha(colorBackground, alpha*0.75))
		c.StrokeRect(x, y, w*t.Scale, h*t.Scale, 1, withAlpha(RegionColor(r.Name, r.Color), alpha*0.6))

		textW := float64(len(r.Name)) * size * charWidthRatio * t.Scale
		tx := cx - textW/2
		ty := cy + size*t.Scale*0.35
		c.FillText(r.Name, tx, ty, size*t.Scale, withAlpha(colorText, alpha))
	}
}

// Label font sizes, matching the layout package's label metrics.
const (
	labelFontParent = 26.0
	labelFontChild  = 18.0
)

// regionHex returns the metadata color of the card's region, or "" when the
// region carries none.
func regionHex(l *layout.Layout, category string) string {
	if r := l.Region(category); r != nil {
		return r.Color
	}
	return ""
}
