package app

import (
	"image/color"

	"github.com/pkg/errors"

	"life-torus/internal/patterns"
	"life-torus/internal/render"
	"life-torus/pkg/core"
)

// Sim is the engine surface the viewer drives.
type Sim interface {
	core.Sim
	core.DirtyProvider
	ToggleCell(row, col int) error
	SetCells(state core.Cell, cells []core.Coord) error
	Population() int
}

// Controller holds the viewer state that does not depend on a window:
// pause and single-step handling, cell editing, and the RGBA frame kept
// in sync with the engine.
type Controller struct {
	sim     Sim
	scale   int
	seed    int64
	palette render.Palette
	stamp   patterns.Pattern

	pix     []byte
	stale   bool
	changed bool

	paused     bool
	tickOnce   bool
	generation int
}

// NewController wraps sim for a window drawn at scale pixels per cell.
func NewController(sim Sim, scale int, seed int64) *Controller {
	if scale <= 0 {
		scale = 1
	}
	glider, _ := patterns.Lookup("glider")
	return &Controller{
		sim:     sim,
		scale:   scale,
		seed:    seed,
		palette: render.NewPalette(color.White, color.Black),
		stamp:   glider,
		pix:     make([]byte, sim.Size().Cells()*4),
		stale:   true,
	}
}

// Sim returns the driven engine.
func (c *Controller) Sim() Sim { return c.sim }

// Scale returns the pixels per cell.
func (c *Controller) Scale() int { return c.scale }

// Generation counts ticks since the last reset.
func (c *Controller) Generation() int { return c.generation }

// Paused reports whether Advance is suspended.
func (c *Controller) Paused() bool { return c.paused }

// Seed returns the seed of the most recent reset.
func (c *Controller) Seed() int64 { return c.seed }

// TogglePause flips between running and paused.
func (c *Controller) TogglePause() { c.paused = !c.paused }

// Resume clears the paused state.
func (c *Controller) Resume() { c.paused = false }

// StepOnce requests a single tick on the next Advance, even when paused.
func (c *Controller) StepOnce() { c.tickOnce = true }

// Reset refills the grid with seed and restarts the generation count.
func (c *Controller) Reset(seed int64) {
	c.seed = seed
	c.sim.Reset(seed)
	c.generation = 0
	c.tickOnce = false
	c.stale = true
}

// Advance ticks the engine once unless paused. It reports whether a tick
// happened.
func (c *Controller) Advance() bool {
	if c.paused && !c.tickOnce {
		return false
	}
	c.tickOnce = false
	c.sim.Tick()
	c.generation++
	if !c.stale && c.sim.DirtyTracking() {
		render.PatchDirty(c.pix, c.sim.View(), c.sim.Size().W, c.sim.Dirty(), c.palette)
		c.changed = true
	} else {
		c.stale = true
	}
	return true
}

// Click edits the cell under the screen position (x, y). With stamp set a
// glider is placed with its corner at that cell; otherwise the cell is
// toggled. Positions outside the grid are ignored.
func (c *Controller) Click(x, y int, stamp bool) error {
	if x < 0 || y < 0 {
		return nil
	}
	row, col := y/c.scale, x/c.scale
	size := c.sim.Size()
	if !size.Contains(row, col) {
		return nil
	}
	var err error
	if stamp {
		err = c.sim.SetCells(core.Alive, patterns.Stamp(c.stamp, row, col, size))
	} else {
		err = c.sim.ToggleCell(row, col)
	}
	if err != nil {
		return errors.Wrapf(err, "[Controller.Click] at (%d, %d)", x, y)
	}
	c.stale = true
	return nil
}

// Pixels returns the RGBA frame for the current generation and whether it
// changed since the previous call. The buffer is reused.
func (c *Controller) Pixels() ([]byte, bool) {
	if c.stale {
		render.Fill(c.pix, c.sim.View(), c.palette)
		c.stale = false
		c.changed = true
	}
	changed := c.changed
	c.changed = false
	return c.pix, changed
}
