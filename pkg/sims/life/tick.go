package life

import (
	"life-torus/pkg/core"
	"life-torus/pkg/profile"
)

// Next applies Conway's rule to a cell with the given live-neighbor count.
func Next(c core.Cell, neighbors int) core.Cell {
	switch {
	case c == core.Alive && (neighbors == 2 || neighbors == 3):
		return core.Alive
	case c == core.Dead && neighbors == 3:
		return core.Alive
	default:
		return core.Dead
	}
}

// Neighbors counts the live cells among the eight toroidal neighbors of
// (row, col) in the current generation. row and col must be in range.
func (l *Life) Neighbors(row, col int) int {
	above, below := wrap(row, l.h)
	left, right := wrap(col, l.w)
	return l.count(above, row, below, left, col, right)
}

// wrap returns the predecessor and successor of i modulo n without a
// division.
func wrap(i, n int) (prev, next int) {
	prev, next = i-1, i+1
	if i == 0 {
		prev = n - 1
	}
	if next == n {
		next = 0
	}
	return prev, next
}

func (l *Life) count(above, row, below, left, col, right int) int {
	c := l.cur
	return int(c.Get(above, left)) +
		int(c.Get(above, col)) +
		int(c.Get(above, right)) +
		int(c.Get(row, left)) +
		int(c.Get(row, right)) +
		int(c.Get(below, left)) +
		int(c.Get(below, col)) +
		int(c.Get(below, right))
}

// Tick advances the grid by one generation. Every next state is computed
// from the current store into the secondary store, then the two swap, so no
// cell ever observes a partially updated generation.
func (l *Life) Tick() {
	defer profile.Start(l.prof, "life.tick").Stop()

	l.dirty = l.dirty[:0]
	l.step()

	t := profile.Start(l.prof, "life.swap")
	l.cur, l.nxt = l.nxt, l.cur
	t.Stop()
}

func (l *Life) step() {
	defer profile.Start(l.prof, "life.step").Stop()

	w, h := l.w, l.h
	for row := 0; row < h; row++ {
		above, below := wrap(row, h)
		for col := 0; col < w; col++ {
			left, right := wrap(col, w)
			cell := l.cur.Get(row, col)
			next := Next(cell, l.count(above, row, below, left, col, right))
			l.nxt.Set(row, col, next)
			if l.trackDirty && next != cell {
				l.dirty = append(l.dirty, core.Coord{Row: row, Col: col})
			}
		}
	}
}
