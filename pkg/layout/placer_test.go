package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/danilokhury/orbitmap/pkg/model"
)

func regionWithMembers(name string, n int) *model.CategoryRegion {
	r := &model.CategoryRegion{Name: name, Kind: model.KindParent}
	for i := 0; i < n; i++ {
		r.Members = append(r.Members, &model.Record{
			ID:         fmt.Sprintf("%s-%03d", name, i),
			Category:   name,
			Importance: 1 + i%10,
			Content:    fmt.Sprintf("content %03d", i),
		})
	}
	return r
}

func TestPlaceCardsAllOnRings(t *testing.T) {
	p := DefaultParams()
	region := regionWithMembers("cluster", 60)
	cards := PlaceCards(region, p)

	if len(cards) != 60 {
		t.Fatalf("placed %d cards, want 60", len(cards))
	}
	if len(region.Rings) < 2 {
		t.Fatalf("60 cards should overflow onto multiple rings, got %d", len(region.Rings))
	}

	for _, card := range cards {
		dist := math.Hypot(card.X-region.CX, card.Y-region.CY)
		onRing := false
		for _, r := range region.Rings {
			if math.Abs(dist-r) < 1e-6 {
				onRing = true
				break
			}
		}
		if !onRing {
			t.Errorf("card %s at distance %.4f sits on no ring %v", card.Record.ID, dist, region.Rings)
		}
	}
}

func TestPlaceCardsRingStartAndRadius(t *testing.T) {
	p := DefaultParams()
	region := regionWithMembers("cluster", 12)
	PlaceCards(region, p)

	if region.LabelRadius <= 0 {
		t.Fatal("label-exclusion radius must be positive")
	}
	if region.Rings[0] != region.LabelRadius {
		t.Errorf("first ring = %.2f, want label radius %.2f", region.Rings[0], region.LabelRadius)
	}
	wantRadius := region.Rings[len(region.Rings)-1] + p.CardHeight
	if region.Radius != wantRadius {
		t.Errorf("region radius = %.2f, want outermost ring + card height = %.2f", region.Radius, wantRadius)
	}
	if region.Radius < region.LabelRadius {
		t.Errorf("region radius %.2f < label radius %.2f", region.Radius, region.LabelRadius)
	}
}

func TestPlaceCardsImportanceOrdering(t *testing.T) {
	p := DefaultParams()
	region := &model.CategoryRegion{Name: "x", Kind: model.KindChild}
	for i, imp := range []int{2, 9, 5, 9, 1} {
		region.Members = append(region.Members, &model.Record{
			ID:         fmt.Sprintf("r%d", i),
			Importance: imp,
			Content:    fmt.Sprintf("c%d", i),
		})
	}
	cards := PlaceCards(region, p)

	for i := 1; i < len(cards); i++ {
		if cards[i].Record.Importance > cards[i-1].Record.Importance {
			t.Fatalf("cards not in importance-descending order: %d before %d",
				cards[i-1].Record.Importance, cards[i].Record.Importance)
		}
	}
	// Equal importance ties break on the lexical sort key.
	if cards[0].Record.Content > cards[1].Record.Content {
		t.Errorf("tie not broken lexically: %q before %q", cards[0].Record.Content, cards[1].Record.Content)
	}
}

func TestPlaceCardsDeterministic(t *testing.T) {
	p := DefaultParams()
	a := regionWithMembers("same", 25)
	b := regionWithMembers("same", 25)
	ca := PlaceCards(a, p)
	cb := PlaceCards(b, p)

	for i := range ca {
		if ca[i].Record.ID != cb[i].Record.ID || ca[i].X != cb[i].X || ca[i].Y != cb[i].Y {
			t.Fatalf("placement differs at %d: (%s %.4f %.4f) vs (%s %.4f %.4f)",
				i, ca[i].Record.ID, ca[i].X, ca[i].Y, cb[i].Record.ID, cb[i].X, cb[i].Y)
		}
	}
}

func TestPlaceCardsEmptyRegion(t *testing.T) {
	p := DefaultParams()
	region := &model.CategoryRegion{Name: "grouping", Kind: model.KindParent}
	cards := PlaceCards(region, p)

	if len(cards) != 0 {
		t.Fatalf("placed %d cards, want 0", len(cards))
	}
	if region.Radius < region.LabelRadius {
		t.Errorf("empty region still needs extent covering its label")
	}
}

func TestExclusionRadiusGrowsWithLabel(t *testing.T) {
	p := DefaultParams()
	short := ExclusionRadius("ab", false, false, p)
	long := ExclusionRadius("a-much-longer-category-name", false, false, p)
	if long <= short {
		t.Errorf("longer label should widen the exclusion radius: %.2f <= %.2f", long, short)
	}

	plain := ExclusionRadius("name", true, false, p)
	logo := ExclusionRadius("name", true, true, p)
	if logo <= plain {
		t.Errorf("logo label should widen the exclusion radius: %.2f <= %.2f", logo, plain)
	}

	child := ExclusionRadius("name", false, false, p)
	parent := ExclusionRadius("name", true, false, p)
	if parent <= child {
		t.Errorf("parent label should widen the exclusion radius: %.2f <= %.2f", parent, child)
	}
}
