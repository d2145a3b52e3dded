//go:build ebiten

package ui

import (
	"image/color"

	"life-torus/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals on top of the grid: the cells
// changed by the last tick (D) and cell borders (G).
type Overlay struct {
	sim       core.Sim
	scale     int
	showDirty bool
	showGrid  bool
	pixel     *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the visuals from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.showDirty = !o.showDirty
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGrid = !o.showGrid
	}
}

// Draw renders the enabled visuals.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showDirty {
		o.drawDirty(screen)
	}
	if o.showGrid && o.scale >= 4 {
		o.drawGrid(screen)
	}
}

func (o *Overlay) drawDirty(screen *ebiten.Image) {
	dp, ok := o.sim.(core.DirtyProvider)
	if !ok || !dp.DirtyTracking() {
		return
	}
	s := float64(o.scale)
	for _, c := range dp.Dirty() {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(float64(c.Col)*s, float64(c.Row)*s)
		op.ColorM.Scale(1, 0.25, 0.125, 0.45)
		screen.DrawImage(o.pixel, op)
	}
}

func (o *Overlay) drawGrid(screen *ebiten.Image) {
	size := o.sim.Size()
	s := float64(o.scale)
	w, h := float64(size.W)*s, float64(size.H)*s
	line := func(x, y, lw, lh float64) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(lw, lh)
		op.GeoM.Translate(x, y)
		op.ColorM.Scale(0.25, 0.25, 0.3, 1)
		screen.DrawImage(o.pixel, op)
	}
	for col := 0; col <= size.W; col++ {
		line(float64(col)*s, 0, 1, h)
	}
	for row := 0; row <= size.H; row++ {
		line(0, float64(row)*s, w, 1)
	}
}
