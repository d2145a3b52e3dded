package life

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"life-torus/pkg/core"
	_ "life-torus/pkg/grid/bitgrid"
	"life-torus/pkg/profile"
)

// Life implements Conway's Game of Life on a toroidal grid.
//
// Two equally sized stores are allocated at construction: cur holds the
// current generation and nxt receives the next one, after which they swap.
// A Life is not safe for concurrent use.
type Life struct {
	w, h  int
	store string
	cur   core.Store
	nxt   core.Store

	trackDirty bool
	dirty      []core.Coord

	init Init
	seed int64
	prof profile.Sink
}

// New returns a Life simulation with the provided dimensions. Without
// WithLiveCells or WithInit the grid is filled randomly.
func New(w, h int, opts ...Option) (*Life, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := core.CheckSize(w, h); err != nil {
		return nil, errors.Wrap(err, "[life.New]")
	}
	factory, err := core.LookupStore(o.store)
	if err != nil {
		return nil, errors.Wrap(err, "[life.New]")
	}
	cur, err := factory(w, h)
	if err != nil {
		return nil, errors.Wrapf(err, "[life.New] failed to allocate %s store", o.store)
	}
	nxt, err := factory(w, h)
	if err != nil {
		return nil, errors.Wrapf(err, "[life.New] failed to allocate %s store", o.store)
	}

	seed := o.seed
	if !o.seeded {
		seed = time.Now().UnixNano()
	}
	l := &Life{
		w:          w,
		h:          h,
		store:      o.store,
		cur:        cur,
		nxt:        nxt,
		trackDirty: o.trackDirty,
		init:       o.init,
		seed:       seed,
		prof:       o.profiler,
	}
	l.fill(seed)
	if len(o.live) > 0 {
		if err := l.SetCells(core.Alive, o.live); err != nil {
			return nil, errors.Wrap(err, "[life.New] bad live cell")
		}
	}
	return l, nil
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Width returns the number of columns.
func (l *Life) Width() int { return l.w }

// Height returns the number of rows.
func (l *Life) Height() int { return l.h }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.w, H: l.h} }

// StoreName returns the storage strategy backing the grid.
func (l *Life) StoreName() string { return l.store }

// View exposes the current generation's buffer. It is invalidated by the
// next Tick.
func (l *Life) View() core.View { return l.cur.View() }

// DirtyTracking reports whether Dirty is maintained.
func (l *Life) DirtyTracking() bool { return l.trackDirty }

// Dirty returns the cells whose state changed during the most recent Tick,
// in row-major order. The slice is reused by the next Tick.
func (l *Life) Dirty() []core.Coord { return l.dirty }

// DirtyCount returns len(Dirty()).
func (l *Life) DirtyCount() int { return len(l.dirty) }

// Reset refills the grid using the configured policy and seed. The dirty
// list is emptied.
func (l *Life) Reset(seed int64) {
	l.seed = seed
	l.dirty = l.dirty[:0]
	l.fill(seed)
}

func (l *Life) fill(seed int64) {
	switch l.init {
	case InitRandom:
		core.FillRandom(l.cur, core.NewRNG(seed))
	case InitStripes:
		core.FillStripes(l.cur)
	default:
		l.cur.Clear()
	}
}

// Clear kills every cell.
func (l *Life) Clear() {
	l.cur.Clear()
	l.dirty = l.dirty[:0]
}

// Get returns the state of (row, col).
func (l *Life) Get(row, col int) (core.Cell, error) {
	if err := l.check(row, col); err != nil {
		return core.Dead, err
	}
	return l.cur.Get(row, col), nil
}

// SetCell sets a single cell of the current generation.
func (l *Life) SetCell(row, col int, state core.Cell) error {
	if err := l.check(row, col); err != nil {
		return err
	}
	l.cur.Set(row, col, state)
	return nil
}

// SetCells sets every listed cell to state. Coordinates are validated
// before any cell is written, so a bad list leaves the grid untouched.
func (l *Life) SetCells(state core.Cell, cells []core.Coord) error {
	for _, c := range cells {
		if err := l.check(c.Row, c.Col); err != nil {
			return err
		}
	}
	for _, c := range cells {
		l.cur.Set(c.Row, c.Col, state)
	}
	return nil
}

// ToggleCell flips the state of (row, col).
func (l *Life) ToggleCell(row, col int) error {
	if err := l.check(row, col); err != nil {
		return err
	}
	c := l.cur.Get(row, col)
	c.Toggle()
	l.cur.Set(row, col, c)
	return nil
}

func (l *Life) check(row, col int) error {
	if !l.Size().Contains(row, col) {
		return errors.Wrapf(core.ErrOutOfRange, "(%d, %d) in %dx%d grid", row, col, l.w, l.h)
	}
	return nil
}

// Population returns the number of live cells.
func (l *Life) Population() int {
	n := 0
	for row := 0; row < l.h; row++ {
		for col := 0; col < l.w; col++ {
			n += int(l.cur.Get(row, col))
		}
	}
	return n
}

// String renders the grid with one rune per cell and a newline per row.
func (l *Life) String() string {
	var b strings.Builder
	b.Grow((l.w*len("◼") + 1) * l.h)
	for row := 0; row < l.h; row++ {
		for col := 0; col < l.w; col++ {
			if l.cur.Get(row, col) == core.Alive {
				b.WriteString("◼")
			} else {
				b.WriteString("◻")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Parameters describes the engine configuration for a HUD or CLI.
func (l *Life) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				{Key: "w", Label: "Width", Value: strconv.Itoa(l.w)},
				{Key: "h", Label: "Height", Value: strconv.Itoa(l.h)},
				{Key: "store", Label: "Store", Value: l.store},
			},
		},
		{
			Name: "Engine",
			Params: []core.Parameter{
				{Key: "dirty", Label: "Dirty tracking", Value: strconv.FormatBool(l.trackDirty)},
				{Key: "init", Label: "Init", Value: l.init.String()},
				{Key: "seed", Label: "Seed", Value: strconv.FormatInt(l.seed, 10)},
			},
		},
	}}
}
