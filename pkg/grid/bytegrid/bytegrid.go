// Package bytegrid stores one byte per cell in row-major order.
package bytegrid

import (
	"github.com/pkg/errors"

	"life-torus/pkg/core"
)

// Name is the registry key for this strategy.
const Name = "bytes"

// Grid stores a 2D grid of byte-sized cell values in row-major order.
type Grid struct {
	w, h int
	data []uint8
}

// New allocates an all-dead grid with the given dimensions.
func New(w, h int) (*Grid, error) {
	if err := core.CheckSize(w, h); err != nil {
		return nil, errors.Wrap(err, "[bytegrid.New]")
	}
	return &Grid{w: w, h: h, data: make([]uint8, w*h)}, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return core.Size{W: g.w, H: g.h} }

// Get returns the cell at (row, col). Indices must be in range.
func (g *Grid) Get(row, col int) core.Cell { return core.Cell(g.data[row*g.w+col]) }

// Set stores c at (row, col). Indices must be in range.
func (g *Grid) Set(row, col int, c core.Cell) { g.data[row*g.w+col] = uint8(c) }

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// View exposes the backing slice.
func (g *Grid) View() core.View {
	return core.View{Layout: core.LayoutBytes, Cells: len(g.data), Bytes: g.data}
}

func init() {
	core.RegisterStore(Name, func(w, h int) (core.Store, error) {
		g, err := New(w, h)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}
