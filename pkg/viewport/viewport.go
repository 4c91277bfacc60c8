// Package viewport maintains the affine transform between world coordinates
// and the rendering surface, and animates it: pan with inertia, smooth
// wheel zoom anchored at the pointer, and eased camera transitions.
//
// The viewport is driven by the host render loop through Update(dtMillis);
// nothing here blocks or suspends. Starting a new transition (or a layout
// rebuild calling CancelTransition) supersedes one in flight.
package viewport

import "math"

// referenceFrameMS normalizes per-tick decay rates: friction and lerp rates
// are specified per 60 Hz tick and scaled to the actual dt.
const referenceFrameMS = 1000.0 / 60.0

// inertiaCutoff stops the coast once velocity drops below this (device px
// per reference tick).
const inertiaCutoff = 0.05

// Config holds the viewport tunables.
type Config struct {
	MinZoom      float64
	MaxZoom      float64
	PanFriction  float64 // velocity multiplier per reference tick, in (0,1)
	ZoomLerp     float64 // fraction of remaining zoom delta applied per reference tick
	TransitionMS float64 // duration of animated camera transitions
}

// DefaultConfig returns the standard viewport tunables.
func DefaultConfig() Config {
	return Config{
		MinZoom:      0.05,
		MaxZoom:      4.0,
		PanFriction:  0.92,
		ZoomLerp:     0.18,
		TransitionMS: 600,
	}
}

// Viewport maps world coordinates onto a fixed-size rendering surface:
//
//	screen = world*scale + offset
//
// All screen units are device pixels; the device pixel ratio converts
// incoming logical pointer coordinates.
type Viewport struct {
	cfg Config

	width, height float64 // surface size, device px
	dpr           float64

	offsetX, offsetY float64
	scale            float64

	// Smooth zoom: the wheel sets targetScale; Update lerps scale toward it
	// anchored at (anchorX, anchorY) so the point under the cursor is fixed.
	targetScale      float64
	anchorX, anchorY float64

	// Pan inertia.
	velX, velY float64
	panning    bool
	lastDX     float64
	lastDY     float64

	trans *transition
}

type transition struct {
	fromOX, fromOY, fromS float64
	toOX, toOY, toS       float64
	elapsed, duration     float64
}

// New creates a viewport with the given config and a 1:1 transform.
func New(cfg Config) *Viewport {
	return &Viewport{cfg: cfg, scale: 1, targetScale: 1, dpr: 1}
}

// SetSurface records the rendering surface size in logical pixels and the
// device pixel ratio.
func (v *Viewport) SetSurface(w, h int, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	v.dpr = dpr
	v.width = float64(w) * dpr
	v.height = float64(h) * dpr
}

// Size returns the surface size in device pixels.
func (v *Viewport) Size() (w, h float64) { return v.width, v.height }

// DPR returns the device pixel ratio.
func (v *Viewport) DPR() float64 { return v.dpr }

// Scale returns the current world-to-screen scale.
func (v *Viewport) Scale() float64 { return v.scale }

// WorldToScreen converts world coordinates to device pixels.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx*v.scale + v.offsetX, wy*v.scale + v.offsetY
}

// ScreenToWorld converts device pixels to world coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return (sx - v.offsetX) / v.scale, (sy - v.offsetY) / v.scale
}

// VisibleRect returns the world-space rectangle covered by the surface,
// expanded by margin world units on every side.
func (v *Viewport) VisibleRect(margin float64) (minX, minY, maxX, maxY float64) {
	minX, minY = v.ScreenToWorld(0, 0)
	maxX, maxY = v.ScreenToWorld(v.width, v.height)
	return minX - margin, minY - margin, maxX + margin, maxY + margin
}

// =============================================================================
// Pan
// =============================================================================

// BeginPan starts a pan gesture, stopping any coast or transition.
func (v *Viewport) BeginPan() {
	v.panning = true
	v.velX, v.velY = 0, 0
	v.trans = nil
}

// PanBy shifts the view by a pointer delta in device pixels.
func (v *Viewport) PanBy(dx, dy float64) {
	v.offsetX += dx
	v.offsetY += dy
	v.lastDX, v.lastDY = dx, dy
}

// EndPan finishes the gesture; the last frame's delta seeds the inertia
// coast.
func (v *Viewport) EndPan() {
	if !v.panning {
		return
	}
	v.panning = false
	v.velX, v.velY = v.lastDX, v.lastDY
	v.lastDX, v.lastDY = 0, 0
}

// =============================================================================
// Zoom
// =============================================================================

// ZoomBy adjusts the target scale by a multiplicative factor, anchored at the
// given device-pixel position. The actual scale catches up in Update.
func (v *Viewport) ZoomBy(factor, sx, sy float64) {
	v.trans = nil
	v.targetScale = clamp(v.targetScale*factor, v.cfg.MinZoom, v.cfg.MaxZoom)
	v.anchorX, v.anchorY = sx, sy
}

// =============================================================================
// Transitions
// =============================================================================

// CenterAt animates the camera so the world point lands on the surface
// center, keeping the current scale.
func (v *Viewport) CenterAt(wx, wy float64) {
	v.startTransition(v.width/2-wx*v.scale, v.height/2-wy*v.scale, v.scale)
}

// ZoomToRect animates offset and scale so the world rectangle fits the
// surface with a small breathing margin.
func (v *Viewport) ZoomToRect(minX, minY, maxX, maxY float64) {
	w := maxX - minX
	h := maxY - minY
	if w <= 0 || h <= 0 || v.width <= 0 || v.height <= 0 {
		return
	}
	const breathe = 0.9
	s := clamp(math.Min(v.width/w, v.height/h)*breathe, v.cfg.MinZoom, v.cfg.MaxZoom)
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	v.startTransition(v.width/2-cx*s, v.height/2-cy*s, s)
}

// CancelTransition drops any in-flight transition; called on layout rebuild.
func (v *Viewport) CancelTransition() { v.trans = nil }

func (v *Viewport) startTransition(toOX, toOY, toS float64) {
	v.velX, v.velY = 0, 0
	v.trans = &transition{
		fromOX: v.offsetX, fromOY: v.offsetY, fromS: v.scale,
		toOX: toOX, toOY: toOY, toS: toS,
		duration: v.cfg.TransitionMS,
	}
}

// =============================================================================
// Tick
// =============================================================================

// Update advances all animation by dtMillis: an in-flight transition owns
// the camera outright; otherwise pan inertia decays and the scale lerps
// toward the wheel target, anchored so the world point under the cursor
// stays fixed.
func (v *Viewport) Update(dtMillis float64) {
	if dtMillis <= 0 {
		return
	}
	ticks := dtMillis / referenceFrameMS

	if v.trans != nil {
		t := v.trans
		t.elapsed += dtMillis
		u := easeInOutCubic(math.Min(t.elapsed/t.duration, 1))
		v.offsetX = lerp(t.fromOX, t.toOX, u)
		v.offsetY = lerp(t.fromOY, t.toOY, u)
		v.scale = lerp(t.fromS, t.toS, u)
		v.targetScale = v.scale
		if t.elapsed >= t.duration {
			v.trans = nil
		}
		return
	}

	// Pan inertia.
	if !v.panning && (v.velX != 0 || v.velY != 0) {
		v.offsetX += v.velX * ticks
		v.offsetY += v.velY * ticks
		decay := math.Pow(v.cfg.PanFriction, ticks)
		v.velX *= decay
		v.velY *= decay
		if math.Hypot(v.velX, v.velY) < inertiaCutoff {
			v.velX, v.velY = 0, 0
		}
	}

	// Smooth zoom toward the target, anchored at the pointer.
	if v.scale != v.targetScale {
		rate := 1 - math.Pow(1-v.cfg.ZoomLerp, ticks)
		next := v.scale + (v.targetScale-v.scale)*rate
		if math.Abs(next-v.targetScale) < 1e-4 {
			next = v.targetScale
		}
		wx, wy := v.ScreenToWorld(v.anchorX, v.anchorY)
		v.scale = next
		v.offsetX = v.anchorX - wx*v.scale
		v.offsetY = v.anchorY - wy*v.scale
	}
}

// Transitioning reports whether a camera transition is in flight.
func (v *Viewport) Transitioning() bool { return v.trans != nil }

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// easeInOutCubic accelerates through the first half and decelerates through
// the second.
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
