// Package app hosts the interactive map window. It translates ebiten input
// events into scene pointer calls and drives the per-frame update/draw loop.
package app

import (
	"context"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/danilokhury/orbitmap/pkg/model"
	"github.com/danilokhury/orbitmap/pkg/scene"
)

const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 800

	// Manual double-click detection: two presses within the window and slop.
	doubleClickWindowMS = 400
	doubleClickSlopPx   = 5.0

	// Each wheel notch scales the zoom by this factor.
	wheelZoomBase = 1.1
)

// linkModeCycle is the order the L key steps through.
var linkModeCycle = []string{model.LinkModeAll, model.LinkModeIntra, model.LinkModeOff}

// Game drives one scene inside an ebiten window.
type Game struct {
	ctx    context.Context
	scene  *scene.Scene
	canvas *canvas

	dpr  float64
	last time.Time

	lastClickAt time.Time
	lastClickX  float64
	lastClickY  float64

	linkIdx int
}

// NewGame wraps a scene for ebiten. linkMode seeds the L-key cycle position.
func NewGame(ctx context.Context, s *scene.Scene, linkMode string) (*Game, error) {
	c, err := newCanvas()
	if err != nil {
		return nil, err
	}
	g := &Game{ctx: ctx, scene: s, canvas: c, dpr: 1}
	for i, mode := range linkModeCycle {
		if mode == linkMode {
			g.linkIdx = i
		}
	}
	return g, nil
}

// Run opens the window and blocks until it closes or ctx is canceled.
func Run(ctx context.Context, s *scene.Scene, title, linkMode string) error {
	g, err := NewGame(ctx, s, linkMode)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(defaultWindowWidth, defaultWindowHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return nil
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	now := time.Now()
	var dt float64
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds() * 1000
	}
	g.last = now

	cx, cy := ebiten.CursorPosition()
	sx, sy := float64(cx)*g.dpr, float64(cy)*g.dpr

	g.handlePointer(now, sx, sy)
	g.handleWheel(sx, sy)
	g.handleKeys()

	g.scene.Update(dt)
	return nil
}

func (g *Game) handlePointer(now time.Time, sx, sy float64) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		slop := doubleClickSlopPx * g.dpr
		if now.Sub(g.lastClickAt) <= doubleClickWindowMS*time.Millisecond &&
			math.Abs(sx-g.lastClickX) <= slop && math.Abs(sy-g.lastClickY) <= slop {
			g.scene.DoubleClick(sx, sy)
			g.lastClickAt = time.Time{}
		} else {
			extend := ebiten.IsKeyPressed(ebiten.KeyShift)
			g.scene.PointerDown(sx, sy, extend)
			g.lastClickAt = now
			g.lastClickX, g.lastClickY = sx, sy
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.scene.PointerMove(sx, sy)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.scene.PointerUp(sx, sy)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.scene.ContextClick(sx, sy)
	}
}

func (g *Game) handleWheel(sx, sy float64) {
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.scene.Wheel(math.Pow(wheelZoomBase, wy), sx, sy)
	}
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.scene.ZoomToFit()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.linkIdx = (g.linkIdx + 1) % len(linkModeCycle)
		g.scene.SetLinkMode(linkModeCycle[g.linkIdx])
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.setTarget(screen)
	g.scene.Draw(g.canvas)
}

// Layout sizes the backing image in device pixels so rendering stays sharp on
// high-DPI displays. Pointer coordinates arrive in logical pixels and are
// scaled by the same factor in Update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.dpr = ebiten.Monitor().DeviceScaleFactor()
	g.scene.SetSurface(outsideWidth, outsideHeight, g.dpr)
	return int(math.Ceil(float64(outsideWidth) * g.dpr)),
		int(math.Ceil(float64(outsideHeight) * g.dpr))
}
