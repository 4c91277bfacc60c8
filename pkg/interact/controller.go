// Package interact turns raw pointer input into layout mutations and
// navigation events: hit-testing, pan-vs-drag disambiguation, drag sets, and
// selection bookkeeping.
package interact

import (
	"sort"

	"github.com/danilokhury/orbitmap/pkg/layout"
	"github.com/danilokhury/orbitmap/pkg/viewport"
)

// DefaultDragThresholdPx is the pointer travel, in screen pixels, below which
// a press-release counts as a click rather than a drag.
const DefaultDragThresholdPx = 5.0

// TargetKind identifies what a pointer position hit.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetCard
	TargetLabel
)

// Target is one hit-test result. ID holds the record id for cards and the
// region name for labels.
type Target struct {
	Kind TargetKind
	ID   string
}

// Events are the controller's outbound callbacks. Nil callbacks are skipped.
type Events struct {
	// SelectionChanged fires with the sorted selected record ids.
	SelectionChanged func(ids []string)
	// NavigationRequested asks the host to frame a region, or the whole
	// layout when region is empty.
	NavigationRequested func(region string)
	// ContextMenuRequested fires on a secondary click with the hit target
	// and the screen position.
	ContextMenuRequested func(target Target, sx, sy float64)
	// StatsChanged fires whenever the layout is replaced.
	StatsChanged func(stats layout.Stats)
	// PositionsChanged fires after a mutation worth persisting: a completed
	// drag or an unpin.
	PositionsChanged func()
}

// Config holds the hit-test geometry. Card dimensions must match the layout
// parameters.
type Config struct {
	CardWidth       float64
	CardHeight      float64
	DragThresholdPx float64
}

// DefaultConfig returns hit-test geometry matching the default layout
// parameters.
func DefaultConfig() Config {
	p := layout.DefaultParams()
	return Config{
		CardWidth:       p.CardWidth,
		CardHeight:      p.CardHeight,
		DragThresholdPx: DefaultDragThresholdPx,
	}
}

// Controller owns the pointer gesture state machine. It is not safe for
// concurrent use; the host calls it from its update loop.
type Controller struct {
	cfg    Config
	vp     *viewport.Viewport
	layout *layout.Layout
	events Events

	selection map[string]bool

	pressed     bool
	dragging    bool
	extend      bool
	pressTarget Target
	pressX      float64
	pressY      float64
	lastX       float64
	lastY       float64
}

// New returns a controller bound to a viewport.
func New(cfg Config, vp *viewport.Viewport, events Events) *Controller {
	if cfg.DragThresholdPx <= 0 {
		cfg.DragThresholdPx = DefaultDragThresholdPx
	}
	return &Controller{
		cfg:       cfg,
		vp:        vp,
		events:    events,
		selection: make(map[string]bool),
	}
}

// SetLayout swaps in a freshly built layout. Selection entries whose records
// vanished are dropped. Any in-flight gesture is abandoned.
func (c *Controller) SetLayout(l *layout.Layout) {
	c.layout = l
	c.pressed = false
	c.dragging = false

	changed := false
	for id := range c.selection {
		if l == nil || l.Card(id) == nil {
			delete(c.selection, id)
			changed = true
		}
	}
	if changed {
		c.fireSelection()
	}
	if c.events.StatsChanged != nil && l != nil {
		c.events.StatsChanged(l.Stats())
	}
}

// Selection returns the selected record ids, sorted.
func (c *Controller) Selection() []string {
	ids := make([]string, 0, len(c.selection))
	for id := range c.selection {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Selected reports whether the record is selected.
func (c *Controller) Selected(id string) bool { return c.selection[id] }

// =============================================================================
// Pointer Gestures
// =============================================================================

// PointerDown starts a gesture at a screen position. extend marks a
// modifier-click that adds to the selection instead of replacing it.
func (c *Controller) PointerDown(sx, sy float64, extend bool) {
	c.pressed = true
	c.dragging = false
	c.extend = extend
	c.pressX, c.pressY = sx, sy
	c.lastX, c.lastY = sx, sy

	wx, wy := c.vp.ScreenToWorld(sx, sy)
	c.pressTarget = c.HitTest(wx, wy)
}

// PointerMove advances the gesture. Below the drag threshold nothing moves;
// past it the press commits to a pan (empty space) or a drag (card, label).
func (c *Controller) PointerMove(sx, sy float64) {
	if !c.pressed {
		return
	}
	if !c.dragging {
		dx := sx - c.pressX
		dy := sy - c.pressY
		if dx*dx+dy*dy < c.cfg.DragThresholdPx*c.cfg.DragThresholdPx {
			return
		}
		c.dragging = true
		if c.pressTarget.Kind == TargetNone {
			c.vp.BeginPan()
		}
	}

	dx := sx - c.lastX
	dy := sy - c.lastY
	c.lastX, c.lastY = sx, sy

	switch c.pressTarget.Kind {
	case TargetNone:
		c.vp.PanBy(dx, dy)
	case TargetCard:
		c.dragCards(dx/c.vp.Scale(), dy/c.vp.Scale())
	case TargetLabel:
		if c.layout != nil {
			c.layout.MoveRegion(c.pressTarget.ID, dx/c.vp.Scale(), dy/c.vp.Scale())
		}
	}
}

// PointerUp finishes the gesture: a completed drag commits (pan coasts, moved
// positions persist), a short press resolves as a click.
func (c *Controller) PointerUp(sx, sy float64) {
	if !c.pressed {
		return
	}
	c.pressed = false

	if c.dragging {
		c.dragging = false
		switch c.pressTarget.Kind {
		case TargetNone:
			c.vp.EndPan()
		default:
			c.firePositions()
		}
		return
	}
	c.click(c.pressTarget)
}

// DoubleClick unpins a card, navigates to a label's region, or zooms to fit
// on empty space.
func (c *Controller) DoubleClick(sx, sy float64) {
	wx, wy := c.vp.ScreenToWorld(sx, sy)
	target := c.HitTest(wx, wy)

	switch target.Kind {
	case TargetCard:
		if c.layout != nil && c.layout.Unpin(target.ID) {
			c.firePositions()
		}
	case TargetLabel:
		if c.events.NavigationRequested != nil {
			c.events.NavigationRequested(target.ID)
		}
	default:
		if c.events.NavigationRequested != nil {
			c.events.NavigationRequested("")
		}
	}
}

// ContextClick reports a secondary click with its hit target.
func (c *Controller) ContextClick(sx, sy float64) {
	wx, wy := c.vp.ScreenToWorld(sx, sy)
	if c.events.ContextMenuRequested != nil {
		c.events.ContextMenuRequested(c.HitTest(wx, wy), sx, sy)
	}
}

// click resolves a sub-threshold press-release.
func (c *Controller) click(target Target) {
	switch target.Kind {
	case TargetCard:
		if c.extend {
			if c.selection[target.ID] {
				delete(c.selection, target.ID)
			} else {
				c.selection[target.ID] = true
			}
		} else {
			c.selection = map[string]bool{target.ID: true}
		}
		c.fireSelection()
	case TargetNone:
		if len(c.selection) > 0 && !c.extend {
			c.selection = make(map[string]bool)
			c.fireSelection()
		}
	}
}

// dragCards moves the drag set: the pressed card alone, or the whole
// selection as a rigid group when the pressed card is part of a
// multi-selection.
func (c *Controller) dragCards(dx, dy float64) {
	if c.layout == nil {
		return
	}
	id := c.pressTarget.ID
	if c.selection[id] && len(c.selection) > 1 {
		for sel := range c.selection {
			c.layout.MoveCard(sel, dx, dy)
		}
		return
	}
	if !c.layout.MoveCard(id, dx, dy) {
		// Record vanished mid-gesture (data reload). Abandon the drag.
		c.pressed = false
		c.dragging = false
	}
}

func (c *Controller) fireSelection() {
	if c.events.SelectionChanged != nil {
		c.events.SelectionChanged(c.Selection())
	}
}

func (c *Controller) firePositions() {
	if c.events.PositionsChanged != nil {
		c.events.PositionsChanged()
	}
}
