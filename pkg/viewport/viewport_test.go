package viewport

import (
	"math"
	"testing"
)

func newTestViewport() *Viewport {
	v := New(DefaultConfig())
	v.SetSurface(800, 600, 1)
	return v
}

func TestTransformRoundTrip(t *testing.T) {
	v := newTestViewport()
	v.PanBy(123, -45)
	v.ZoomBy(1.7, 400, 300)
	for i := 0; i < 60; i++ {
		v.Update(referenceFrameMS)
	}

	tests := []struct{ wx, wy float64 }{
		{0, 0},
		{100, 250},
		{-3333.5, 77.25},
	}
	for _, tt := range tests {
		sx, sy := v.WorldToScreen(tt.wx, tt.wy)
		wx, wy := v.ScreenToWorld(sx, sy)
		if math.Abs(wx-tt.wx) > 1e-9 || math.Abs(wy-tt.wy) > 1e-9 {
			t.Errorf("round trip (%v, %v) -> (%v, %v)", tt.wx, tt.wy, wx, wy)
		}
	}
}

func TestZoomAnchorStaysFixed(t *testing.T) {
	v := newTestViewport()
	const ax, ay = 200.0, 150.0

	beforeX, beforeY := v.ScreenToWorld(ax, ay)
	v.ZoomBy(2.0, ax, ay)
	for i := 0; i < 120; i++ {
		v.Update(referenceFrameMS)
	}

	if got := v.Scale(); math.Abs(got-2.0) > 1e-3 {
		t.Errorf("scale = %v, want to settle at 2.0", got)
	}
	afterX, afterY := v.ScreenToWorld(ax, ay)
	if math.Abs(afterX-beforeX) > 1e-6 || math.Abs(afterY-beforeY) > 1e-6 {
		t.Errorf("anchor drifted: (%v, %v) -> (%v, %v)", beforeX, beforeY, afterX, afterY)
	}
}

func TestZoomClamped(t *testing.T) {
	v := newTestViewport()
	v.ZoomBy(1000, 0, 0)
	if v.targetScale != v.cfg.MaxZoom {
		t.Errorf("targetScale = %v, want clamp at %v", v.targetScale, v.cfg.MaxZoom)
	}
	v.ZoomBy(1e-9, 0, 0)
	if v.targetScale != v.cfg.MinZoom {
		t.Errorf("targetScale = %v, want clamp at %v", v.targetScale, v.cfg.MinZoom)
	}
}

func TestPanInertiaDecays(t *testing.T) {
	v := newTestViewport()
	v.BeginPan()
	v.PanBy(10, 0)
	v.EndPan()

	x0 := v.offsetX
	v.Update(referenceFrameMS)
	step1 := v.offsetX - x0
	if step1 <= 0 {
		t.Fatal("coast did not continue the pan")
	}

	x1 := v.offsetX
	v.Update(referenceFrameMS)
	step2 := v.offsetX - x1
	if step2 >= step1 {
		t.Errorf("coast did not decay: step %v then %v", step1, step2)
	}

	for i := 0; i < 600; i++ {
		v.Update(referenceFrameMS)
	}
	x := v.offsetX
	v.Update(referenceFrameMS)
	if v.offsetX != x {
		t.Error("coast never stopped")
	}
}

func TestPanDuringGestureHasNoInertia(t *testing.T) {
	v := newTestViewport()
	v.BeginPan()
	v.PanBy(10, 5)
	x := v.offsetX

	v.Update(referenceFrameMS) // still panning: no coast
	if v.offsetX != x {
		t.Error("offset moved while the pointer is down without a new delta")
	}
}

func TestTransitionReachesTarget(t *testing.T) {
	v := newTestViewport()
	v.CenterAt(500, 400)
	if !v.Transitioning() {
		t.Fatal("CenterAt should start a transition")
	}

	for i := 0; i < 120; i++ {
		v.Update(referenceFrameMS)
	}
	if v.Transitioning() {
		t.Fatal("transition never finished")
	}

	sx, sy := v.WorldToScreen(500, 400)
	if math.Abs(sx-400) > 1e-6 || math.Abs(sy-300) > 1e-6 {
		t.Errorf("world point at (%v, %v), want surface center (400, 300)", sx, sy)
	}
}

func TestNewTransitionSupersedes(t *testing.T) {
	v := newTestViewport()
	v.CenterAt(1000, 0)
	v.Update(100)
	v.CenterAt(-1000, 0) // supersede mid-flight

	for i := 0; i < 120; i++ {
		v.Update(referenceFrameMS)
	}
	sx, _ := v.WorldToScreen(-1000, 0)
	if math.Abs(sx-400) > 1e-6 {
		t.Errorf("second transition target not honored: sx = %v", sx)
	}
}

func TestZoomToRectFits(t *testing.T) {
	v := newTestViewport()
	v.ZoomToRect(-100, -100, 100, 100)
	for i := 0; i < 120; i++ {
		v.Update(referenceFrameMS)
	}

	minX, minY, maxX, maxY := v.VisibleRect(0)
	if minX > -100 || minY > -100 || maxX < 100 || maxY < 100 {
		t.Errorf("rect not fully visible: (%v, %v, %v, %v)", minX, minY, maxX, maxY)
	}
}

func TestVisibleRectMargin(t *testing.T) {
	v := newTestViewport()
	minX0, minY0, maxX0, maxY0 := v.VisibleRect(0)
	minX1, minY1, maxX1, maxY1 := v.VisibleRect(50)

	if minX1 != minX0-50 || minY1 != minY0-50 || maxX1 != maxX0+50 || maxY1 != maxY0+50 {
		t.Error("margin not applied on all sides")
	}
}

func TestEaseInOutCubicEndpoints(t *testing.T) {
	if easeInOutCubic(0) != 0 || easeInOutCubic(1) != 1 {
		t.Error("easing endpoints must be exact")
	}
	if got := easeInOutCubic(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("easeInOutCubic(0.5) = %v, want 0.5", got)
	}
}
