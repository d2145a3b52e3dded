// Package bitgrid packs cells one bit each into 64-bit words.
package bitgrid

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"life-torus/pkg/core"
)

// Name is the registry key for this strategy.
const Name = "bits"

// Grid is a bit-packed row-major cell store. Bit i of the underlying set is
// the cell at linear index i.
type Grid struct {
	w, h int
	bits *bitset.BitSet
}

// New allocates an all-dead grid with the given dimensions.
func New(w, h int) (*Grid, error) {
	if err := core.CheckSize(w, h); err != nil {
		return nil, errors.Wrap(err, "[bitgrid.New]")
	}
	return &Grid{w: w, h: h, bits: bitset.New(uint(w * h))}, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return core.Size{W: g.w, H: g.h} }

// Get returns the cell at (row, col). Indices must be in range.
func (g *Grid) Get(row, col int) core.Cell {
	if g.bits.Test(uint(row*g.w + col)) {
		return core.Alive
	}
	return core.Dead
}

// Set stores c at (row, col). Indices must be in range.
func (g *Grid) Set(row, col int, c core.Cell) {
	g.bits.SetTo(uint(row*g.w+col), c == core.Alive)
}

// Clear marks every cell dead.
func (g *Grid) Clear() { g.bits.ClearAll() }

// View exposes the packed words. bitset stores bit i in word i/64 at
// position i%64, which is the LayoutBits contract.
func (g *Grid) View() core.View {
	return core.View{Layout: core.LayoutBits, Cells: g.w * g.h, Words: g.bits.Bytes()}
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
