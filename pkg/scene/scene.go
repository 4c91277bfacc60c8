// Package scene wires the whole map together: dataset, layout engine,
// position store, viewport, render pipeline, and interaction. One Scene
// instance owns all mutable state; hosts (the interactive window, the
// snapshot exporter) drive it through Update/Draw and the pointer entry
// points.
package scene

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/danilokhury/orbitmap/pkg/interact"
	"github.com/danilokhury/orbitmap/pkg/layout"
	"github.com/danilokhury/orbitmap/pkg/model"
	"github.com/danilokhury/orbitmap/pkg/positions"
	"github.com/danilokhury/orbitmap/pkg/render"
	"github.com/danilokhury/orbitmap/pkg/viewport"
)

// Options configures a Scene. Dataset is required; everything else has
// defaults.
type Options struct {
	Dataset *model.Dataset
	// Store persists positions. Nil disables persistence.
	Store        positions.Store
	SaveDebounce time.Duration
	Logger       *log.Logger

	Layout   layout.Params
	Viewport viewport.Config
	Render   render.Config
	Interact interact.Config

	// LinkMode is one of model.LinkModeAll, LinkModeIntra, LinkModeOff.
	// Empty defaults to all.
	LinkMode string
}

// Events are forwarded from the interaction controller to the host.
type Events = interact.Events

// Scene is the orchestrator: the single owner of the layout, camera, and
// interaction state between rebuilds.
type Scene struct {
	logger  *log.Logger
	dataset *model.Dataset
	engine  *layout.Engine
	layout  *layout.Layout

	store positions.Store
	saver *positions.Saver

	vp       *viewport.Viewport
	pipeline *render.Pipeline
	ctrl     *interact.Controller

	active   map[string]bool
	matches  map[string]bool
	linkMode string

	firstFrame bool
}

// New builds a scene and runs the initial layout. events may be zero-valued.
func New(ctx context.Context, opts Options, events Events) (*Scene, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Layout == (layout.Params{}) {
		opts.Layout = layout.DefaultParams()
	}
	if opts.Viewport == (viewport.Config{}) {
		opts.Viewport = viewport.DefaultConfig()
	}
	if opts.Render == (render.Config{}) {
		opts.Render = render.DefaultConfig()
	}
	if opts.Interact == (interact.Config{}) {
		opts.Interact = interact.DefaultConfig()
	}
	linkMode := opts.LinkMode
	if linkMode == "" {
		linkMode = model.LinkModeAll
	}

	s := &Scene{
		logger:     logger,
		dataset:    opts.Dataset,
		engine:     layout.NewEngine(opts.Layout, logger),
		store:      opts.Store,
		vp:         viewport.New(opts.Viewport),
		pipeline:   render.New(opts.Render),
		linkMode:   linkMode,
		firstFrame: true,
	}
	if s.store != nil {
		s.saver = positions.NewSaver(s.store, opts.SaveDebounce, logger)
	}

	hostNav := events.NavigationRequested
	events.NavigationRequested = func(region string) {
		s.navigate(region)
		if hostNav != nil {
			hostNav(region)
		}
	}
	hostPos := events.PositionsChanged
	events.PositionsChanged = func() {
		s.schedulePositionSave()
		if hostPos != nil {
			hostPos()
		}
	}
	s.ctrl = interact.New(opts.Interact, s.vp, events)

	if err := s.Rebuild(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// =============================================================================
// Lifecycle
// =============================================================================

// Rebuild recomputes the layout from the dataset, the active category filter,
// and the saved positions. Any camera transition in flight is dropped.
func (s *Scene) Rebuild(ctx context.Context) error {
	var saved map[string]model.PersistedEntry
	if s.store != nil {
		var err error
		saved, err = s.store.Load(ctx)
		if err != nil {
			// Unreachable backend: lay out without saved positions.
			s.logger.Warn("position restore failed", "err", err)
			saved = nil
		}
	}

	s.layout = s.engine.Build(s.dataset, s.active, saved)
	s.ctrl.SetLayout(s.layout)
	s.pipeline.Reset()
	s.vp.CancelTransition()
	return nil
}

// Update advances camera animation by dtMillis. On the first updated frame
// with a sized surface the camera fits the whole layout.
func (s *Scene) Update(dtMillis float64) {
	if s.firstFrame {
		if w, h := s.vp.Size(); w > 0 && h > 0 {
			s.fitAll()
			s.firstFrame = false
		}
	}
	s.vp.Update(dtMillis)
}

// Draw renders the current frame.
func (s *Scene) Draw(canvas render.Canvas) {
	s.pipeline.Draw(canvas, s.vp, s.layout, render.Frame{
		Selection: s.selectionSet(),
		Matches:   s.matches,
		LinkMode:  s.linkMode,
		Links:     s.dataset.Links,
	})
}

// Close flushes any pending position save and releases the store.
func (s *Scene) Close(ctx context.Context) error {
	if s.saver != nil {
		if err := s.saver.Flush(ctx, s.layout.Snapshot()); err != nil {
			s.logger.Warn("final position save failed", "err", err)
		}
		s.saver.Stop()
	}
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// =============================================================================
// Input Entry Points
// =============================================================================

// SetSurface records the rendering surface size and device pixel ratio.
func (s *Scene) SetSurface(w, h int, dpr float64) { s.vp.SetSurface(w, h, dpr) }

// PointerDown forwards a primary-button press in device pixels.
func (s *Scene) PointerDown(sx, sy float64, extend bool) { s.ctrl.PointerDown(sx, sy, extend) }

// PointerMove forwards pointer motion.
func (s *Scene) PointerMove(sx, sy float64) { s.ctrl.PointerMove(sx, sy) }

// PointerUp forwards a primary-button release.
func (s *Scene) PointerUp(sx, sy float64) { s.ctrl.PointerUp(sx, sy) }

// DoubleClick forwards a double click.
func (s *Scene) DoubleClick(sx, sy float64) { s.ctrl.DoubleClick(sx, sy) }

// ContextClick forwards a secondary-button click.
func (s *Scene) ContextClick(sx, sy float64) { s.ctrl.ContextClick(sx, sy) }

// Wheel applies a zoom step anchored at the pointer.
func (s *Scene) Wheel(factor, sx, sy float64) { s.vp.ZoomBy(factor, sx, sy) }

// =============================================================================
// State Inputs
// =============================================================================

// SetActiveCategories replaces the category filter and rebuilds. Nil means
// all categories.
func (s *Scene) SetActiveCategories(ctx context.Context, names []string) error {
	if names == nil {
		s.active = nil
	} else {
		s.active = make(map[string]bool, len(names))
		for _, n := range names {
			s.active[n] = true
		}
	}
	return s.Rebuild(ctx)
}

// SetSearchMatches replaces the search-match set consulted each frame. Nil
// or empty clears the search.
func (s *Scene) SetSearchMatches(ids map[string]bool) { s.matches = ids }

// SetLinkMode switches link rendering between all, intra, and off.
func (s *Scene) SetLinkMode(mode string) {
	if model.ValidLinkModes[mode] {
		s.linkMode = mode
	}
}

// Layout exposes the current layout, for exports and stats.
func (s *Scene) Layout() *layout.Layout { return s.layout }

// Viewport exposes the camera, for hosts that drive transitions directly.
func (s *Scene) Viewport() *viewport.Viewport { return s.vp }

// Selection returns the selected record ids, sorted.
func (s *Scene) Selection() []string { return s.ctrl.Selection() }

// ZoomToRegion animates the camera to frame the named region.
func (s *Scene) ZoomToRegion(name string) bool {
	r := s.layout.Region(name)
	if r == nil {
		return false
	}
	s.vp.ZoomToRect(r.CX-r.Radius, r.CY-r.Radius, r.CX+r.Radius, r.CY+r.Radius)
	return true
}

// ZoomToFit animates the camera to frame the whole layout.
func (s *Scene) ZoomToFit() { s.fitAll() }

func (s *Scene) fitAll() {
	minX, minY, maxX, maxY := s.layout.Bounds()
	s.vp.ZoomToRect(minX, minY, maxX, maxY)
}

// navigate handles double-click navigation from the controller.
func (s *Scene) navigate(region string) {
	if region == "" {
		s.fitAll()
		return
	}
	s.ZoomToRegion(region)
}

// schedulePositionSave arms the debounced saver after a mutating interaction.
// The snapshot is taken here, on the tick goroutine, so the timer goroutine
// never reads live layout state: any later mutation fires this again with a
// fresh snapshot before the rearmed timer can expire.
func (s *Scene) schedulePositionSave() {
	if s.saver == nil {
		return
	}
	s.saver.Schedule(s.layout.Snapshot())
}

func (s *Scene) selectionSet() map[string]bool {
	ids := s.ctrl.Selection()
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
