//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"life-torus/internal/render"
	"life-torus/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width in pixels of the panel right of the grid.
const HUDWidth = 220

// Game adapts a Life engine to the ebiten.Game interface.
type Game struct {
	ctrl    *Controller
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
}

// New constructs a Game for the provided simulation.
func New(sim Sim, scale int, seed int64) *Game {
	size := sim.Size()
	ctrl := NewController(sim, scale, seed)
	return &Game{
		ctrl:    ctrl,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(sim, HUDWidth),
		overlay: ui.NewOverlay(sim, ctrl.Scale()),
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.ctrl.Reset(seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.ctrl.Resume()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.ctrl.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.ctrl.Reset(g.ctrl.Seed())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.ctrl.Reset(time.Now().UnixNano())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if err := g.ctrl.Click(x, y, ebiten.IsKeyPressed(ebiten.KeyControl)); err != nil {
			slog.Warn("click ignored", "error", err)
		}
	}

	g.overlay.Update()
	g.ctrl.Advance()
	g.hud.Update(ui.Stats{
		Generation: g.ctrl.Generation(),
		Population: g.ctrl.Sim().Population(),
		Dirty:      len(g.ctrl.Sim().Dirty()),
		Paused:     g.ctrl.Paused(),
		Seed:       g.ctrl.Seed(),
	})
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	if pix, changed := g.ctrl.Pixels(); changed {
		g.painter.Upload(pix)
	}
	scale := g.ctrl.Scale()
	g.painter.Draw(screen, scale)

	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.ctrl.Sim().Size().W*scale, scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.ctrl.Sim().Size()
	scale := g.ctrl.Scale()
	return s.W*scale + HUDWidth, s.H * scale
}
