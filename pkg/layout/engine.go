package layout

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/danilokhury/orbitmap/pkg/model"
)

// =============================================================================
// Engine - Two-Pass Orbital Placement
// =============================================================================

// Engine computes full layouts. It is stateless apart from its parameters and
// logger: every Build recomputes the region tree and all coordinates from
// scratch, then overlays persisted positions.
type Engine struct {
	params Params
	logger *log.Logger
}

// NewEngine creates an engine with the given parameters.
// If logger is nil, the default logger is used.
func NewEngine(p Params, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{params: p, logger: logger}
}

// Params returns the engine's layout parameters.
func (e *Engine) Params() Params { return e.params }

// Build runs the complete placement: tree construction, two placement passes,
// collision resolution, and the persisted-position overlay. It is the single
// entry point invoked on initial load, category toggles, and explicit reset.
//
// active restricts the visible categories (nil means all); saved holds the
// persisted position map and may be nil.
func (e *Engine) Build(dataset *model.Dataset, active map[string]bool, saved map[string]model.PersistedEntry) *Layout {
	start := time.Now()

	l := &Layout{
		byRegion: make(map[string][]*model.CardPosition),
		byName:   make(map[string]*model.CategoryRegion),
		byID:     make(map[string]*model.CardPosition),
		moved:    make(map[string]bool),
	}
	l.Roots = BuildRegionTree(dataset, active)
	for _, root := range l.Roots {
		l.index(root)
	}

	e.roughPlacement(l)
	e.placeAllCards(l)
	e.radiusAwarePlacement(l)
	e.resolveCollisions(l)
	e.overlaySaved(l, saved)

	e.logger.Debug("layout built",
		"parents", len(l.Roots),
		"regions", len(l.Regions),
		"cards", len(l.Cards),
		"duration", time.Since(start).Round(time.Millisecond))
	return l
}

// roughPlacement is pass 1: parents on a count-scaled ring around the origin,
// each parent's children on a count-scaled ring around the parent. Radii are
// unknown at this point; the pass only establishes rough structure.
func (e *Engine) roughPlacement(l *Layout) {
	p := e.params
	n := len(l.Roots)
	parentRing := p.BaseRingRadius + float64(n)*p.RingScale

	for i, parent := range l.Roots {
		if n > 1 {
			angle := 2 * math.Pi * float64(i) / float64(n)
			parent.CX = parentRing * math.Cos(angle)
			parent.CY = parentRing * math.Sin(angle)
		}
		m := len(parent.Children)
		if m == 0 {
			continue
		}
		childRing := p.BaseRingRadius + float64(m)*p.RingScale
		for j, child := range parent.Children {
			angle := 2 * math.Pi * float64(j) / float64(m)
			child.CX = parent.CX + childRing*math.Cos(angle)
			child.CY = parent.CY + childRing*math.Sin(angle)
		}
	}
}

// placeAllCards invokes the card placer for every region, establishing real
// radii and the initial card coordinates.
func (e *Engine) placeAllCards(l *Layout) {
	for _, region := range l.Regions {
		cards := PlaceCards(region, e.params)
		l.byRegion[region.Name] = cards
		l.Cards = append(l.Cards, cards...)
		for _, c := range cards {
			l.byID[c.Record.ID] = c
		}
	}
}

// radiusAwarePlacement is pass 2: children are re-placed on an orbit derived
// from the real parent and child radii, then parents are re-placed on a ring
// wide enough for the sum of their effective extents. All deltas cascade.
func (e *Engine) radiusAwarePlacement(l *Layout) {
	p := e.params

	effective := make(map[string]float64, len(l.Roots))
	for _, parent := range l.Roots {
		if len(parent.Children) == 0 {
			effective[parent.Name] = parent.Radius
			continue
		}
		maxChild := 0.0
		for _, child := range parent.Children {
			maxChild = math.Max(maxChild, child.Radius)
		}
		orbit := parent.Radius + maxChild + p.ChildOrbitGap
		m := len(parent.Children)
		for j, child := range parent.Children {
			angle := 2 * math.Pi * float64(j) / float64(m)
			nx := parent.CX + orbit*math.Cos(angle)
			ny := parent.CY + orbit*math.Sin(angle)
			l.shiftRegion(child, nx-child.CX, ny-child.CY)
		}
		// The farthest extent of any child orbit bounds the parent's
		// footprint for ring sizing and collisions.
		effective[parent.Name] = orbit + maxChild
	}

	n := len(l.Roots)
	if n <= 1 {
		return
	}
	sum := 0.0
	for _, parent := range l.Roots {
		sum += 2 * effective[parent.Name]
	}
	ring := (sum + float64(n)*p.RegionPadding) / (2 * math.Pi)
	ring = math.Max(ring, p.MinParentRing)

	for i, parent := range l.Roots {
		angle := 2 * math.Pi * float64(i) / float64(n)
		nx := ring * math.Cos(angle)
		ny := ring * math.Sin(angle)
		l.shiftRegion(parent, nx-parent.CX, ny-parent.CY)
	}
}

// resolveCollisions runs a fixed number of passes over all region pairs,
// pushing overlapping regions apart by half the penetration each. Pairs in a
// direct parent-child relationship are skipped: children intentionally orbit
// inside the parent's effective extent. Heuristic, no convergence guarantee.
func (e *Engine) resolveCollisions(l *Layout) {
	p := e.params
	for pass := 0; pass < p.CollisionPasses; pass++ {
		movedAny := false
		for i := 0; i < len(l.Regions); i++ {
			for j := i + 1; j < len(l.Regions); j++ {
				a, b := l.Regions[i], l.Regions[j]
				if a.Parent == b.Name || b.Parent == a.Name {
					continue
				}
				need := a.Radius + b.Radius + p.RegionPadding
				dx := b.CX - a.CX
				dy := b.CY - a.CY
				dist := math.Hypot(dx, dy)
				if dist >= need {
					continue
				}
				var ux, uy float64
				if dist > 1e-9 {
					ux, uy = dx/dist, dy/dist
				} else {
					// Coincident centers: separate along x, deterministically.
					ux, uy = 1, 0
				}
				push := (need - dist) / 2
				l.shiftRegion(a, -ux*push, -uy*push)
				l.shiftRegion(b, ux*push, uy*push)
				movedAny = true
			}
		}
		if !movedAny {
			break
		}
	}
}

// overlaySaved applies the persisted position map. Persisted positions win
// over computed ones unconditionally. Region deltas are applied parents
// first so a child's own saved position, and finally each card's, can still
// override the cascade.
func (e *Engine) overlaySaved(l *Layout, saved map[string]model.PersistedEntry) {
	if len(saved) == 0 {
		return
	}
	applyRegion := func(r *model.CategoryRegion) {
		entry, ok := saved[model.RegionKey(r.Name)]
		if !ok {
			return
		}
		l.shiftRegion(r, entry.X-r.CX, entry.Y-r.CY)
		l.moved[r.Name] = true
	}
	for _, parent := range l.Roots {
		applyRegion(parent)
	}
	for _, parent := range l.Roots {
		for _, child := range parent.Children {
			applyRegion(child)
		}
	}
	for _, card := range l.Cards {
		entry, ok := saved[card.Record.ID]
		if !ok {
			continue
		}
		card.X = entry.X
		card.Y = entry.Y
		card.Pinned = entry.Pinned
	}
}
