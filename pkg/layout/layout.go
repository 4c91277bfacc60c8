package layout

import (
	"math"

	"github.com/danilokhury/orbitmap/pkg/model"
)

// =============================================================================
// Layout - Built Region/Card Set
// =============================================================================

// Layout is the output of one Engine.Build: the region tree plus the flat
// region and card arrays the render pipeline consumes every tick. It is
// owned exclusively by the layout/render side between rebuilds; interaction
// mutates coordinates through MoveCard and MoveRegion.
type Layout struct {
	// Roots holds the parent regions.
	Roots []*model.CategoryRegion
	// Regions is the flattened region list, parents before their children.
	Regions []*model.CategoryRegion
	// Cards holds every placed card, in placement order. Hit-testing scans
	// this slice back to front.
	Cards []*model.CardPosition

	byRegion map[string][]*model.CardPosition
	byName   map[string]*model.CategoryRegion
	byID     map[string]*model.CardPosition
	moved    map[string]bool // regions repositioned by the user (or restored as such)
}

// Stats summarizes the built layout for stats-changed consumers.
type Stats struct {
	Parents  int
	Children int
	Cards    int
}

// Region returns the region with the given name, or nil.
func (l *Layout) Region(name string) *model.CategoryRegion { return l.byName[name] }

// Card returns the card for the given record id, or nil.
func (l *Layout) Card(id string) *model.CardPosition { return l.byID[id] }

// CardsOf returns the cards belonging to the named region.
func (l *Layout) CardsOf(name string) []*model.CardPosition { return l.byRegion[name] }

// Stats returns layout counts.
func (l *Layout) Stats() Stats {
	s := Stats{Cards: len(l.Cards)}
	for _, r := range l.Regions {
		if r.IsParent() {
			s.Parents++
		} else {
			s.Children++
		}
	}
	return s
}

// MoveCard shifts a single card by (dx, dy) and pins it. Returns false if the
// record is no longer present (e.g. after a data reload mid-gesture).
func (l *Layout) MoveCard(id string, dx, dy float64) bool {
	card := l.byID[id]
	if card == nil {
		return false
	}
	card.MoveBy(dx, dy)
	card.Pinned = true
	return true
}

// Unpin releases a card's manual override. The card returns to its
// engine-computed placement on the next rebuild.
func (l *Layout) Unpin(id string) bool {
	card := l.byID[id]
	if card == nil {
		return false
	}
	card.Pinned = false
	return true
}

// MoveRegion shifts a region, all its cards, and (for parents) all child
// regions and their cards, as one rigid body, and marks the region as
// user-moved so the position store persists it.
func (l *Layout) MoveRegion(name string, dx, dy float64) bool {
	region := l.byName[name]
	if region == nil {
		return false
	}
	l.shiftRegion(region, dx, dy)
	l.moved[name] = true
	return true
}

// Snapshot produces the persisted position map: every pinned card plus every
// user-moved region. Unpinned cards and engine-placed regions are omitted so
// a later rebuild recomputes them.
func (l *Layout) Snapshot() map[string]model.PersistedEntry {
	out := make(map[string]model.PersistedEntry)
	for _, card := range l.Cards {
		if card.Pinned {
			out[card.Record.ID] = model.PersistedEntry{X: card.X, Y: card.Y, Pinned: true}
		}
	}
	for name := range l.moved {
		if r := l.byName[name]; r != nil {
			out[model.RegionKey(name)] = model.PersistedEntry{X: r.CX, Y: r.CY}
		}
	}
	return out
}

// Bounds returns the world-space bounding box of every region disc. An empty
// layout yields a unit box around the origin.
func (l *Layout) Bounds() (minX, minY, maxX, maxY float64) {
	if len(l.Regions) == 0 {
		return -1, -1, 1, 1
	}
	first := true
	for _, r := range l.Regions {
		if first {
			minX, minY = r.CX-r.Radius, r.CY-r.Radius
			maxX, maxY = r.CX+r.Radius, r.CY+r.Radius
			first = false
			continue
		}
		minX = math.Min(minX, r.CX-r.Radius)
		minY = math.Min(minY, r.CY-r.Radius)
		maxX = math.Max(maxX, r.CX+r.Radius)
		maxY = math.Max(maxY, r.CY+r.Radius)
	}
	return minX, minY, maxX, maxY
}

// index registers a root and its children in the flat views.
func (l *Layout) index(root *model.CategoryRegion) {
	l.Regions = append(l.Regions, root)
	l.byName[root.Name] = root
	for _, child := range root.Children {
		l.Regions = append(l.Regions, child)
		l.byName[child.Name] = child
	}
}

// shiftRegion moves a region by (dx, dy), cascading to its cards and, for
// parents, to child regions and their cards.
func (l *Layout) shiftRegion(region *model.CategoryRegion, dx, dy float64) {
	region.MoveBy(dx, dy)
	for _, card := range l.byRegion[region.Name] {
		card.MoveBy(dx, dy)
	}
	for _, child := range region.Children {
		l.shiftRegion(child, dx, dy)
	}
}
