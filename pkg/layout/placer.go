package layout

import (
	"math"
	"sort"

	"github.com/danilokhury/orbitmap/pkg/model"
)

// =============================================================================
// Card Placement - Concentric Rings
// =============================================================================

// PlaceCards packs the region's member records into concentric rings around
// the region center and returns their positions.
//
// Members are sorted by importance descending, tie-broken by the stable
// lexical sort key (first 30 characters of content) and finally by id, so
// placement is deterministic across runs. Rings start at the region's
// label-exclusion radius; each ring holds floor(circumference/(cardWidth+gap))
// cards (at least one), spaced evenly by angle.
//
// Side effects on the region: LabelRadius, Rings, and Radius are set. The
// final radius is the outermost ring radius plus one card height, which keeps
// invariant "radius >= label-exclusion radius + ring extent".
func PlaceCards(region *model.CategoryRegion, p Params) []*model.CardPosition {
	region.LabelRadius = ExclusionRadius(region.Name, region.IsParent(), region.Logo != "", p)
	region.Rings = nil

	members := make([]*model.Record, len(region.Members))
	copy(members, region.Members)
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Importance != members[j].Importance {
			return members[i].Importance > members[j].Importance
		}
		ki, kj := members[i].SortKey(), members[j].SortKey()
		if ki != kj {
			return ki < kj
		}
		return members[i].ID < members[j].ID
	})

	cards := make([]*model.CardPosition, 0, len(members))
	radius := region.LabelRadius
	slot := p.CardWidth + p.CardGap

	for len(members) > 0 {
		capacity := int(2 * math.Pi * radius / slot)
		if capacity < 1 {
			capacity = 1
		}
		count := capacity
		if count > len(members) {
			count = len(members)
		}

		// Rotate each ring by half a slot so cards on consecutive rings do
		// not line up radially.
		offset := math.Pi / float64(capacity)
		step := 2 * math.Pi / float64(count)
		for i := 0; i < count; i++ {
			angle := offset + float64(i)*step
			cards = append(cards, &model.CardPosition{
				Record: members[i],
				X:      region.CX + radius*math.Cos(angle),
				Y:      region.CY + radius*math.Sin(angle),
			})
		}

		region.Rings = append(region.Rings, radius)
		members = members[count:]
		radius += p.RingHeight
	}

	if len(region.Rings) > 0 {
		region.Radius = region.Rings[len(region.Rings)-1] + p.CardHeight
	} else {
		// No members of its own (a pure grouping parent): the label still
		// needs visual extent.
		region.Radius = region.LabelRadius + p.CardHeight
	}
	return cards
}
