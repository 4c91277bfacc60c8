package scene

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/danilokhury/orbitmap/pkg/model"
	"github.com/danilokhury/orbitmap/pkg/positions"
)

func sampleDataset() *model.Dataset {
	return &model.Dataset{
		Records: []model.Record{
			{ID: "bf-0", Category: "bug-fix", Importance: 9, Content: "nil map write"},
			{ID: "bf-1", Category: "bug-fix", Importance: 6, Content: "off by one"},
			{ID: "pt-0", Category: "pattern", Importance: 7, Content: "worker pool"},
			{ID: "tl-0", Category: "tools", Importance: 4, Content: "profiler"},
		},
		Links: []model.Link{
			{Source: "bf-0", Target: "pt-0", CrossCategory: true},
		},
		Categories: map[string]model.CategoryMetadata{
			"learning": {IsParent: true},
			"bug-fix":  {Parent: "learning"},
			"pattern":  {Parent: "learning"},
		},
	}
}

func newScene(t *testing.T, store positions.Store) *Scene {
	t.Helper()
	s, err := New(context.Background(), Options{
		Dataset:      sampleDataset(),
		Store:        store,
		SaveDebounce: 20 * time.Millisecond,
	}, Events{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.SetSurface(800, 600, 1)
	return s
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestSceneRestoresSavedPositions(t *testing.T) {
	store := positions.NewMemStore()
	err := store.Save(context.Background(), map[string]model.PersistedEntry{
		"bf-0": {X: 1234, Y: -567, Pinned: true},
	})
	if err != nil {
		t.Fatal(err)
	}

	s := newScene(t, store)
	card := s.Layout().Card("bf-0")
	if card.X != 1234 || card.Y != -567 || !card.Pinned {
		t.Errorf("saved position not restored: %+v", card)
	}
}

func TestDragPersistsAfterDebounce(t *testing.T) {
	store := positions.NewMemStore()
	s := newScene(t, store)
	defer s.Close(context.Background())

	card := s.Layout().Card("bf-0")
	s.PointerDown(card.X, card.Y, false)
	s.PointerMove(card.X+60, card.Y)
	s.PointerUp(card.X+60, card.Y)

	waitFor(t, func() bool {
		entries, _ := store.Load(context.Background())
		_, ok := entries["bf-0"]
		return ok
	})

	entries, _ := store.Load(context.Background())
	got := entries["bf-0"]
	if !got.Pinned || math.Abs(got.X-card.X) > 1e-9 {
		t.Errorf("persisted entry = %+v, want pinned at x %v", got, card.X)
	}
}

// Saves overlap ongoing drags here: the debounce is short enough that timers
// fire while later gestures are still mutating the layout, so the saver must
// only ever touch the snapshot it was handed, never live card state.
func TestRapidDragsWhileSavesFire(t *testing.T) {
	store := positions.NewMemStore()
	s, err := New(context.Background(), Options{
		Dataset:      sampleDataset(),
		Store:        store,
		SaveDebounce: time.Millisecond,
	}, Events{})
	if err != nil {
		t.Fatal(err)
	}
	s.SetSurface(800, 600, 1)
	defer s.Close(context.Background())

	card := s.Layout().Card("bf-0")
	for i := 0; i < 200; i++ {
		s.PointerDown(card.X, card.Y, false)
		s.PointerMove(card.X+10, card.Y)
		s.PointerUp(card.X+10, card.Y)
		if i%20 == 0 {
			time.Sleep(2 * time.Millisecond) // let pending saves fire mid-stream
		}
	}
	finalX, finalY := card.X, card.Y

	waitFor(t, func() bool {
		entries, _ := store.Load(context.Background())
		e, ok := entries["bf-0"]
		return ok && e.X == finalX && e.Y == finalY && e.Pinned
	})
}

func TestCloseFlushesPendingSave(t *testing.T) {
	store := positions.NewMemStore()
	s, err := New(context.Background(), Options{
		Dataset:      sampleDataset(),
		Store:        store,
		SaveDebounce: time.Hour, // never fires on its own
	}, Events{})
	if err != nil {
		t.Fatal(err)
	}
	s.SetSurface(800, 600, 1)

	card := s.Layout().Card("pt-0")
	s.PointerDown(card.X, card.Y, false)
	s.PointerMove(card.X+60, card.Y)
	s.PointerUp(card.X+60, card.Y)

	if err := s.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
	entries, _ := store.Load(context.Background())
	if _, ok := entries["pt-0"]; !ok {
		t.Error("pending positions not flushed on close")
	}
}

func TestSetActiveCategoriesFilters(t *testing.T) {
	s := newScene(t, nil)
	if err := s.SetActiveCategories(context.Background(), []string{"bug-fix"}); err != nil {
		t.Fatal(err)
	}

	l := s.Layout()
	if l.Card("pt-0") != nil || l.Card("tl-0") != nil {
		t.Error("inactive categories still laid out")
	}
	if l.Card("bf-0") == nil {
		t.Error("active category missing")
	}

	if err := s.SetActiveCategories(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if s.Layout().Card("tl-0") == nil {
		t.Error("nil filter did not restore all categories")
	}
}

func TestZoomToRegionFramesIt(t *testing.T) {
	s := newScene(t, nil)
	for i := 0; i < 120; i++ {
		s.Update(1000.0 / 60)
	}

	if !s.ZoomToRegion("pattern") {
		t.Fatal("known region rejected")
	}
	for i := 0; i < 120; i++ {
		s.Update(1000.0 / 60)
	}

	r := s.Layout().Region("pattern")
	minX, minY, maxX, maxY := s.Viewport().VisibleRect(0)
	if r.CX-r.Radius < minX || r.CX+r.Radius > maxX ||
		r.CY-r.Radius < minY || r.CY+r.Radius > maxY {
		t.Error("region not fully framed after transition")
	}

	if s.ZoomToRegion("nope") {
		t.Error("unknown region accepted")
	}
}

func TestFirstUpdateFitsLayout(t *testing.T) {
	s := newScene(t, nil)
	for i := 0; i < 120; i++ {
		s.Update(1000.0 / 60)
	}

	minX, minY, maxX, maxY := s.Layout().Bounds()
	vMinX, vMinY, vMaxX, vMaxY := s.Viewport().VisibleRect(0)
	if minX < vMinX || minY < vMinY || maxX > vMaxX || maxY > vMaxY {
		t.Error("initial camera does not frame the whole layout")
	}
}

func TestSetLinkModeValidates(t *testing.T) {
	s := newScene(t, nil)
	s.SetLinkMode(model.LinkModeIntra)
	if s.linkMode != model.LinkModeIntra {
		t.Error("valid mode rejected")
	}
	s.SetLinkMode("bogus")
	if s.linkMode != model.LinkModeIntra {
		t.Error("invalid mode accepted")
	}
}

func TestRebuildDropsUnpinnedOverrides(t *testing.T) {
	store := positions.NewMemStore()
	s, err := New(context.Background(), Options{
		Dataset:      sampleDataset(),
		Store:        store,
		SaveDebounce: time.Hour, // keep the store out of this test's rebuild
	}, Events{})
	if err != nil {
		t.Fatal(err)
	}
	s.SetSurface(800, 600, 1)

	card := s.Layout().Card("bf-0")
	s.PointerDown(card.X, card.Y, false)
	s.PointerMove(card.X+60, card.Y)
	s.PointerUp(card.X+60, card.Y)
	movedX := card.X

	s.DoubleClick(card.X, card.Y) // unpin
	if err := s.Rebuild(context.Background()); err != nil {
		t.Fatal(err)
	}

	rebuilt := s.Layout().Card("bf-0")
	if rebuilt.Pinned {
		t.Error("unpinned card still pinned after rebuild")
	}
	if rebuilt.X == movedX {
		t.Error("unpinned card kept its manual position after rebuild")
	}
}
