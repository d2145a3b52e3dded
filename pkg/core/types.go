package core

// Cell is the state of a single grid position.
type Cell uint8

const (
	// Dead is the zero value so freshly allocated buffers start empty.
	Dead Cell = 0
	// Alive marks a live cell.
	Alive Cell = 1
)

// Toggle flips the cell between Dead and Alive.
func (c *Cell) Toggle() {
	if *c == Alive {
		*c = Dead
		return
	}
	*c = Alive
}

func (c Cell) String() string {
	if c == Alive {
		return "alive"
	}
	return "dead"
}

// Coord addresses a cell by row and column.
type Coord struct {
	Row int
	Col int
}

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns the number of cells in a grid of this size.
func (s Size) Cells() int { return s.W * s.H }

// Index returns the row-major linear index of (row, col).
func (s Size) Index(row, col int) int { return row*s.W + col }

// Contains reports whether (row, col) lies inside the grid.
func (s Size) Contains(row, col int) bool {
	return row >= 0 && row < s.H && col >= 0 && col < s.W
}

// Sim is the contract a renderer drives: advance, read the view, reseed.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Tick()
	View() View
}

// DirtyProvider is implemented by sims that can report the cells changed by
// the most recent tick.
type DirtyProvider interface {
	// DirtyTracking reports whether the dirty list is maintained at all.
	DirtyTracking() bool
	Dirty() []Coord
}
