package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/danilokhury/orbitmap/pkg/model"
)

// learningDataset is the two-level fixture used across engine tests: one
// parent "learning" with children "bug-fix" (5 records) and "pattern" (3).
func learningDataset() *model.Dataset {
	d := &model.Dataset{
		Categories: map[string]model.CategoryMetadata{
			"learning": {IsParent: true},
			"bug-fix":  {Parent: "learning"},
			"pattern":  {Parent: "learning"},
		},
	}
	for i := 0; i < 5; i++ {
		d.Records = append(d.Records, model.Record{
			ID: fmt.Sprintf("bf-%d", i), Category: "bug-fix",
			Importance: 9 - i, Content: fmt.Sprintf("bug fix %d", i),
		})
	}
	for i := 0; i < 3; i++ {
		d.Records = append(d.Records, model.Record{
			ID: fmt.Sprintf("pt-%d", i), Category: "pattern",
			Importance: 7 - i, Content: fmt.Sprintf("pattern %d", i),
		})
	}
	return d
}

func multiParentDataset(parents int) *model.Dataset {
	d := &model.Dataset{Categories: map[string]model.CategoryMetadata{}}
	for p := 0; p < parents; p++ {
		name := fmt.Sprintf("cat-%02d", p)
		d.Categories[name] = model.CategoryMetadata{}
		for i := 0; i < 4; i++ {
			d.Records = append(d.Records, model.Record{
				ID: fmt.Sprintf("%s-r%d", name, i), Category: name,
				Importance: 5, Content: fmt.Sprintf("%s record %d", name, i),
			})
		}
	}
	return d
}

func TestBuildSingleParentOrbit(t *testing.T) {
	e := NewEngine(DefaultParams(), nil)
	l := e.Build(learningDataset(), nil, nil)

	parent := l.Region("learning")
	if parent == nil {
		t.Fatal("missing parent region")
	}
	// n=1 parent ring case: the lone parent sits at the origin.
	if parent.CX != 0 || parent.CY != 0 {
		t.Errorf("single parent at (%.2f, %.2f), want origin", parent.CX, parent.CY)
	}

	maxChild := 0.0
	for _, child := range parent.Children {
		maxChild = math.Max(maxChild, child.Radius)
	}
	wantOrbit := parent.Radius + maxChild + e.Params().ChildOrbitGap

	for _, name := range []string{"bug-fix", "pattern"} {
		child := l.Region(name)
		if child == nil {
			t.Fatalf("missing child region %s", name)
		}
		got := math.Hypot(child.CX-parent.CX, child.CY-parent.CY)
		if math.Abs(got-wantOrbit) > 1e-6 {
			t.Errorf("%s orbit distance = %.4f, want %.4f", name, got, wantOrbit)
		}
	}

	if len(l.Cards) != 8 {
		t.Errorf("placed %d cards, want 8", len(l.Cards))
	}
	cards := l.CardsOf("bug-fix")
	for i := 1; i < len(cards); i++ {
		if cards[i].Record.Importance > cards[i-1].Record.Importance {
			t.Errorf("bug-fix cards not in importance-descending ring order")
		}
	}
}

func TestBuildRadiusCoversLabel(t *testing.T) {
	e := NewEngine(DefaultParams(), nil)
	l := e.Build(multiParentDataset(5), nil, nil)

	for _, region := range l.Regions {
		if region.Radius < region.LabelRadius {
			t.Errorf("region %s: radius %.2f < label-exclusion radius %.2f",
				region.Name, region.Radius, region.LabelRadius)
		}
	}
}

func TestBuildCardsOnRings(t *testing.T) {
	e := NewEngine(DefaultParams(), nil)
	l := e.Build(learningDataset(), nil, nil)

	for _, region := range l.Regions {
		for _, card := range l.CardsOf(region.Name) {
			if card.Pinned {
				continue
			}
			dist := math.Hypot(card.X-region.CX, card.Y-region.CY)
			onRing := false
			for _, r := range region.Rings {
				if math.Abs(dist-r) < 1e-6 {
					onRing = true
					break
				}
			}
			if !onRing {
				t.Errorf("card %s in %s: distance %.4f not on rings %v",
					card.Record.ID, region.Name, dist, region.Rings)
			}
		}
	}
}

func TestBuildPairwiseSeparation(t *testing.T) {
	p := DefaultParams()
	e := NewEngine(p, nil)
	l := e.Build(multiParentDataset(4), nil, nil)

	for i := 0; i < len(l.Regions); i++ {
		for j := i + 1; j < len(l.Regions); j++ {
			a, b := l.Regions[i], l.Regions[j]
			if a.Parent == b.Name || b.Parent == a.Name {
				continue
			}
			dist := math.Hypot(b.CX-a.CX, b.CY-a.CY)
			need := a.Radius + b.Radius + p.RegionPadding
			if dist < need-1e-6 {
				t.Errorf("%s and %s overlap: distance %.2f < %.2f", a.Name, b.Name, dist, need)
			}
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	e := NewEngine(DefaultParams(), nil)
	a := e.Build(learningDataset(), nil, nil)
	b := e.Build(learningDataset(), nil, nil)

	if len(a.Regions) != len(b.Regions) || len(a.Cards) != len(b.Cards) {
		t.Fatalf("rebuild changed shape: %d/%d regions, %d/%d cards",
			len(a.Regions), len(b.Regions), len(a.Cards), len(b.Cards))
	}
	for i := range a.Regions {
		ra, rb := a.Regions[i], b.Regions[i]
		if ra.Name != rb.Name || ra.CX != rb.CX || ra.CY != rb.CY || ra.Radius != rb.Radius {
			t.Errorf("region %s: (%.4f, %.4f, r=%.4f) vs (%.4f, %.4f, r=%.4f)",
				ra.Name, ra.CX, ra.CY, ra.Radius, rb.CX, rb.CY, rb.Radius)
		}
	}
	for i := range a.Cards {
		ca, cb := a.Cards[i], b.Cards[i]
		if ca.Record.ID != cb.Record.ID || ca.X != cb.X || ca.Y != cb.Y {
			t.Errorf("card %s: (%.4f, %.4f) vs (%.4f, %.4f)", ca.Record.ID, ca.X, ca.Y, cb.X, cb.Y)
		}
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	e := NewEngine(DefaultParams(), nil)
	l := e.Build(learningDataset(), nil, nil)

	if !l.MoveCard("bf-0", 33, -47) {
		t.Fatal("MoveCard failed")
	}
	if !l.MoveRegion("pattern", -120, 80) {
		t.Fatal("MoveRegion failed")
	}
	movedCard := *l.Card("bf-0")
	movedRegion := *l.Region("pattern")

	saved := l.Snapshot()
	if _, ok := saved["bf-0"]; !ok {
		t.Fatal("snapshot missing pinned card")
	}
	if _, ok := saved[model.RegionKey("pattern")]; !ok {
		t.Fatal("snapshot missing moved region")
	}
	if _, ok := saved["bf-1"]; ok {
		t.Fatal("snapshot should omit unpinned cards")
	}

	restored := e.Build(learningDataset(), nil, saved)
	card := restored.Card("bf-0")
	if card.X != movedCard.X || card.Y != movedCard.Y || !card.Pinned {
		t.Errorf("card restored to (%.4f, %.4f, pinned=%v), want (%.4f, %.4f, true)",
			card.X, card.Y, card.Pinned, movedCard.X, movedCard.Y)
	}
	region := restored.Region("pattern")
	if region.CX != movedRegion.CX || region.CY != movedRegion.CY {
		t.Errorf("region restored to (%.4f, %.4f), want (%.4f, %.4f)",
			region.CX, region.CY, movedRegion.CX, movedRegion.CY)
	}
	// Restored regions persist across the next save too.
	if _, ok := restored.Snapshot()[model.RegionKey("pattern")]; !ok {
		t.Error("restored region lost from next snapshot")
	}
}

func TestBuildEmptyDataset(t *testing.T) {
	e := NewEngine(DefaultParams(), nil)
	l := e.Build(&model.Dataset{}, nil, nil)

	if len(l.Regions) != 0 || len(l.Cards) != 0 {
		t.Errorf("empty input produced %d regions, %d cards", len(l.Regions), len(l.Cards))
	}
}

func TestBuildUnknownCategory(t *testing.T) {
	e := NewEngine(DefaultParams(), nil)
	d := &model.Dataset{Records: []model.Record{
		{ID: "r1", Category: "mystery", Importance: 5, Content: "x"},
	}}
	l := e.Build(d, nil, nil)

	region := l.Region("mystery")
	if region == nil || !region.IsParent() {
		t.Fatal("unknown category should synthesize a standalone parent region")
	}
	if len(l.CardsOf("mystery")) != 1 {
		t.Errorf("synthesized region should bear the record")
	}
}

func TestMoveRegionIsRigid(t *testing.T) {
	e := NewEngine(DefaultParams(), nil)
	l := e.Build(learningDataset(), nil, nil)

	type pos struct{ x, y float64 }
	before := make(map[string]pos)
	for _, card := range l.Cards {
		before[card.Record.ID] = pos{card.X, card.Y}
	}
	childBefore := pos{l.Region("bug-fix").CX, l.Region("bug-fix").CY}

	const dx, dy = 77.0, -31.0
	l.MoveRegion("learning", dx, dy)

	for _, card := range l.Cards {
		b := before[card.Record.ID]
		if card.X != b.x+dx || card.Y != b.y+dy {
			t.Errorf("card %s moved to (%.2f, %.2f), want (%.2f, %.2f)",
				card.Record.ID, card.X, card.Y, b.x+dx, b.y+dy)
		}
	}
	child := l.Region("bug-fix")
	if child.CX != childBefore.x+dx || child.CY != childBefore.y+dy {
		t.Errorf("child region did not follow the parent drag")
	}
}

func TestMoveCardMovesOnlyThatCard(t *testing.T) {
	e := NewEngine(DefaultParams(), nil)
	l := e.Build(learningDataset(), nil, nil)

	other := *l.Card("bf-1")
	l.MoveCard("bf-0", 10, 10)

	moved := l.Card("bf-0")
	if !moved.Pinned {
		t.Error("dragged card should be pinned")
	}
	after := l.Card("bf-1")
	if after.X != other.X || after.Y != other.Y || after.Pinned {
		t.Error("moving one card must not disturb others")
	}

	if l.MoveCard("gone", 1, 1) {
		t.Error("moving a vanished record should report failure")
	}
}
