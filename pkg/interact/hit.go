package interact

import (
	"github.com/danilokhury/orbitmap/pkg/render"
)

// HitTest resolves a world position to the topmost interactive element.
// Cards test first, scanning the placement order back to front so the most
// recently placed card wins overlaps; region labels test after cards.
func (c *Controller) HitTest(wx, wy float64) Target {
	if c.layout == nil {
		return Target{Kind: TargetNone}
	}

	hw := c.cfg.CardWidth / 2
	hh := c.cfg.CardHeight / 2
	cards := c.layout.Cards
	for i := len(cards) - 1; i >= 0; i-- {
		card := cards[i]
		if wx >= card.X-hw && wx <= card.X+hw && wy >= card.Y-hh && wy <= card.Y+hh {
			return Target{Kind: TargetCard, ID: card.Record.ID}
		}
	}

	// Label hit boxes grow with the zoom boost, matching what is drawn.
	scale := 1.0
	if c.vp != nil {
		scale = c.vp.Scale()
	}
	for _, r := range c.layout.Regions {
		lhw, lhh := render.LabelHitBox(r.Name, r.IsParent(), r.Logo != "", scale)
		if wx >= r.CX-lhw && wx <= r.CX+lhw && wy >= r.CY-lhh && wy <= r.CY+lhh {
			return Target{Kind: TargetLabel, ID: r.Name}
		}
	}
	return Target{Kind: TargetNone}
}
