package life

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-torus/pkg/core"
	"life-torus/pkg/grid/bitgrid"
	"life-torus/pkg/grid/bytegrid"
	"life-torus/pkg/profile"
)

var storeNames = []string{bytegrid.Name, bitgrid.Name}

func forEachStore(t *testing.T, fn func(t *testing.T, store string)) {
	t.Helper()
	for _, store := range storeNames {
		store := store
		t.Run(store, func(t *testing.T) { fn(t, store) })
	}
}

func seeded(t *testing.T, w, h int, store string, live []core.Coord, opts ...Option) *Life {
	t.Helper()
	opts = append([]Option{WithStore(store), WithLiveCells(live)}, opts...)
	l, err := New(w, h, opts...)
	require.NoError(t, err)
	return l
}

func liveCells(l *Life) []core.Coord {
	var out []core.Coord
	for row := 0; row < l.Height(); row++ {
		for col := 0; col < l.Width(); col++ {
			if c, _ := l.Get(row, col); c == core.Alive {
				out = append(out, core.Coord{Row: row, Col: col})
			}
		}
	}
	return out
}

func coords(pairs ...[2]int) []core.Coord {
	out := make([]core.Coord, len(pairs))
	for i, p := range pairs {
		out[i] = core.Coord{Row: p[0], Col: p[1]}
	}
	return out
}

func TestBlinkerOscillation(t *testing.T) {
	life, err := New(5, 5, WithInit(InitEmpty))
	if err != nil {
		t.Fatal(err)
	}

	w := life.Width()
	set := func(x, y int) {
		if err := life.SetCell(y, x, core.Alive); err != nil {
			t.Fatal(err)
		}
	}
	set(2, 1)
	set(2, 2)
	set(2, 3)

	life.Tick()
	cells := life.View().Bytes

	expects := map[[2]int]bool{
		{1, 2}: true,
		{2, 2}: true,
		{3, 2}: true,
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			idx := y*w + x
			alive := cells[idx] == 1
			_, shouldBeAlive := expects[[2]int{x, y}]
			if shouldBeAlive != alive {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", x, y, alive, shouldBeAlive)
			}
		}
	}

	life.Tick()
	cells = life.View().Bytes

	expects = map[[2]int]bool{
		{2, 1}: true,
		{2, 2}: true,
		{2, 3}: true,
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			idx := y*w + x
			alive := cells[idx] == 1
			_, shouldBeAlive := expects[[2]int{x, y}]
			if shouldBeAlive != alive {
				t.Fatalf("after second step cell (%d,%d) alive=%v, expected %v", x, y, alive, shouldBeAlive)
			}
		}
	}
}

func TestGliderSingleTick(t *testing.T) {
	forEachStore(t, func(t *testing.T, store string) {
		l := seeded(t, 6, 6, store, coords([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1}, [2]int{3, 2}, [2]int{3, 3}))

		l.Tick()

		want := coords([2]int{2, 1}, [2]int{2, 3}, [2]int{3, 2}, [2]int{3, 3}, [2]int{4, 2})
		assert.Equal(t, want, liveCells(l))
		assert.Equal(t, 5, l.Population())
	})
}

func TestGliderGolden(t *testing.T) {
	l := seeded(t, 6, 6, bitgrid.Name, coords([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 1}, [2]int{3, 2}, [2]int{3, 3}))

	var b strings.Builder
	for gen := 0; gen <= 4; gen++ {
		if gen > 0 {
			b.WriteString("\n")
			l.Tick()
		}
		fmt.Fprintf(&b, "generation %d\n", gen)
		b.WriteString(l.String())
	}

	g := goldie.New(t)
	g.Assert(t, "glider", []byte(b.String()))
}

func TestNextRuleTable(t *testing.T) {
	for n := 0; n <= 8; n++ {
		wantAlive := core.Dead
		if n == 2 || n == 3 {
			wantAlive = core.Alive
		}
		assert.Equal(t, wantAlive, Next(core.Alive, n), "alive with %d neighbors", n)

		wantDead := core.Dead
		if n == 3 {
			wantDead = core.Alive
		}
		assert.Equal(t, wantDead, Next(core.Dead, n), "dead with %d neighbors", n)
	}
}

func TestTransitionsInGrid(t *testing.T) {
	// Neighbors of the center (3,3) on a 7x7 grid, filled in this order.
	ring := coords([2]int{2, 2}, [2]int{2, 3}, [2]int{2, 4}, [2]int{3, 2}, [2]int{3, 4}, [2]int{4, 2}, [2]int{4, 3}, [2]int{4, 4})

	cases := []struct {
		name      string
		alive     bool
		neighbors int
		want      core.Cell
	}{
		{"alive underpopulated 0", true, 0, core.Dead},
		{"alive underpopulated 1", true, 1, core.Dead},
		{"alive survives 2", true, 2, core.Alive},
		{"alive survives 3", true, 3, core.Alive},
		{"alive overcrowded 4", true, 4, core.Dead},
		{"alive overcrowded 8", true, 8, core.Dead},
		{"dead born 3", false, 3, core.Alive},
		{"dead stays 2", false, 2, core.Dead},
		{"dead stays 4", false, 4, core.Dead},
	}
	for _, tc := range cases {
		tc := tc
		forEachStore(t, func(t *testing.T, store string) {
			t.Run(tc.name, func(t *testing.T) {
				live := append([]core.Coord(nil), ring[:tc.neighbors]...)
				if tc.alive {
					live = append(live, core.Coord{Row: 3, Col: 3})
				}
				l := seeded(t, 7, 7, store, live)
				require.Equal(t, tc.neighbors, l.Neighbors(3, 3))

				l.Tick()

				got, err := l.Get(3, 3)
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			})
		})
	}
}

func TestToroidalWraparound(t *testing.T) {
	forEachStore(t, func(t *testing.T, store string) {
		l := seeded(t, 5, 4, store, coords([2]int{0, 0}, [2]int{3, 4}))

		assert.Equal(t, 1, l.Neighbors(0, 0), "(0,0) must see (h-1,w-1)")
		assert.Equal(t, 1, l.Neighbors(3, 4), "(h-1,w-1) must see (0,0)")
		assert.Equal(t, 2, l.Neighbors(0, 4))
		assert.Equal(t, 2, l.Neighbors(3, 0))
	})
}

func TestWrapBirthAcrossCorner(t *testing.T) {
	forEachStore(t, func(t *testing.T, store string) {
		// Three live cells around the corner produce a birth at (0,0).
		l := seeded(t, 6, 6, store, coords([2]int{5, 5}, [2]int{0, 5}, [2]int{5, 0}))

		l.Tick()

		c, err := l.Get(0, 0)
		require.NoError(t, err)
		assert.Equal(t, core.Alive, c)
	})
}

func TestBlockStillLife(t *testing.T) {
	forEachStore(t, func(t *testing.T, store string) {
		block := coords([2]int{2, 2}, [2]int{2, 3}, [2]int{3, 2}, [2]int{3, 3})
		l := seeded(t, 8, 8, store, block, WithDirtyTracking(true))

		for i := 0; i < 25; i++ {
			l.Tick()
			require.Equal(t, block, liveCells(l), "tick %d", i+1)
			require.Empty(t, l.Dirty(), "tick %d", i+1)
		}
	})
}

func TestDeterminism(t *testing.T) {
	forEachStore(t, func(t *testing.T, store string) {
		a, err := New(23, 17, WithStore(store), WithSeed(7))
		require.NoError(t, err)
		b, err := New(23, 17, WithStore(store), WithSeed(7))
		require.NoError(t, err)

		for i := 0; i < 40; i++ {
			a.Tick()
			b.Tick()
		}
		assert.Equal(t, a.View(), b.View())
	})
}

func TestStoresAgree(t *testing.T) {
	bytes, err := New(31, 19, WithStore(bytegrid.Name), WithSeed(1234))
	require.NoError(t, err)
	bits, err := New(31, 19, WithStore(bitgrid.Name), WithSeed(1234))
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		require.Equal(t, liveCells(bytes), liveCells(bits), "generation %d", i)
		bytes.Tick()
		bits.Tick()
	}
}

func TestRandomFillIsRoughlyHalf(t *testing.T) {
	l, err := New(64, 64, WithSeed(99))
	require.NoError(t, err)

	pop := l.Population()
	assert.InDelta(t, 64*64/2, pop, 64*64/10)
}

func TestConstructionRejectsZeroDimensions(t *testing.T) {
	forEachStore(t, func(t *testing.T, store string) {
		for _, dims := range [][2]int{{0, 6}, {6, 0}, {0, 0}} {
			l, err := New(dims[0], dims[1], WithStore(store))
			require.Error(t, err)
			assert.Nil(t, l)
			assert.True(t, errors.Is(err, core.ErrZeroDimension), "%v", err)
		}
	})
}

func TestUnknownStore(t *testing.T) {
	_, err := New(4, 4, WithStore("quantum"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnknownStore), "%v", err)
}

func TestDirtyMatchesDiff(t *testing.T) {
	forEachStore(t, func(t *testing.T, store string) {
		l, err := New(16, 12, WithStore(store), WithSeed(3), WithDirtyTracking(true))
		require.NoError(t, err)

		for i := 0; i < 30; i++ {
			before := snapshot(l)
			l.Tick()
			after := snapshot(l)

			var want []core.Coord
			for idx := range before {
				if before[idx] != after[idx] {
					want = append(want, core.Coord{Row: idx / 16, Col: idx % 16})
				}
			}
			if len(want) == 0 {
				assert.Empty(t, l.Dirty(), "tick %d", i+1)
			} else {
				assert.Equal(t, want, l.Dirty(), "tick %d", i+1)
			}
			assert.Equal(t, len(want), l.DirtyCount())
		}
	})
}

func snapshot(l *Life) []core.Cell {
	out := make([]core.Cell, 0, l.Width()*l.Height())
	for row := 0; row < l.Height(); row++ {
		for col := 0; col < l.Width(); col++ {
			c, _ := l.Get(row, col)
			out = append(out, c)
		}
	}
	return out
}

func TestDirtyDisabled(t *testing.T) {
	l, err := New(10, 10, WithSeed(5))
	require.NoError(t, err)

	l.Tick()
	assert.False(t, l.DirtyTracking())
	assert.Empty(t, l.Dirty())
	assert.Zero(t, l.DirtyCount())
}

func TestOutOfRangeMutationsFail(t *testing.T) {
	l := seeded(t, 4, 3, bytegrid.Name, nil)

	for _, c := range coords([2]int{-1, 0}, [2]int{0, -1}, [2]int{3, 0}, [2]int{0, 4}) {
		err := l.SetCell(c.Row, c.Col, core.Alive)
		assert.True(t, errors.Is(err, core.ErrOutOfRange), "SetCell%v: %v", c, err)
		err = l.ToggleCell(c.Row, c.Col)
		assert.True(t, errors.Is(err, core.ErrOutOfRange), "ToggleCell%v: %v", c, err)
		_, err = l.Get(c.Row, c.Col)
		assert.True(t, errors.Is(err, core.ErrOutOfRange), "Get%v: %v", c, err)
	}

	err := l.SetCells(core.Alive, coords([2]int{0, 0}, [2]int{1, 1}, [2]int{3, 3}))
	assert.True(t, errors.Is(err, core.ErrOutOfRange))
	assert.Zero(t, l.Population(), "a rejected bulk set must not apply partially")

	_, err = New(4, 3, WithLiveCells(coords([2]int{0, 9})))
	assert.True(t, errors.Is(err, core.ErrOutOfRange))
}

func TestToggleCell(t *testing.T) {
	forEachStore(t, func(t *testing.T, store string) {
		l := seeded(t, 3, 3, store, nil)

		require.NoError(t, l.ToggleCell(1, 2))
		c, _ := l.Get(1, 2)
		assert.Equal(t, core.Alive, c)

		require.NoError(t, l.ToggleCell(1, 2))
		c, _ = l.Get(1, 2)
		assert.Equal(t, core.Dead, c)
	})
}

func TestViewMatchesCells(t *testing.T) {
	forEachStore(t, func(t *testing.T, store string) {
		l, err := New(13, 7, WithStore(store), WithSeed(11))
		require.NoError(t, err)
		l.Tick()

		view := l.View()
		require.Equal(t, 13*7, view.Cells)
		if view.Layout == core.LayoutBits {
			assert.Equal(t, core.WordsFor(13*7), view.Len())
		} else {
			assert.Equal(t, 13*7, view.Len())
		}
		for i, c := range snapshot(l) {
			assert.Equal(t, c == core.Alive, view.Alive(i), "index %d", i)
		}
	})
}

func TestResetIsDeterministic(t *testing.T) {
	l, err := New(20, 20, WithSeed(1), WithDirtyTracking(true))
	require.NoError(t, err)
	l.Tick()

	l.Reset(77)
	first := snapshot(l)
	assert.Empty(t, l.Dirty())
	l.Tick()
	l.Reset(77)

	assert.Equal(t, first, snapshot(l))
}

func TestStripesInit(t *testing.T) {
	forEachStore(t, func(t *testing.T, store string) {
		l, err := New(9, 5, WithStore(store), WithInit(InitStripes))
		require.NoError(t, err)

		for i, c := range snapshot(l) {
			want := i%2 == 0 || i%7 == 0
			assert.Equal(t, want, c == core.Alive, "index %d", i)
		}
	})
}

func TestProfilerIsObservational(t *testing.T) {
	rec := profile.NewRecorder()
	plain, err := New(24, 24, WithSeed(8))
	require.NoError(t, err)
	timed, err := New(24, 24, WithSeed(8), WithProfiler(rec))
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		plain.Tick()
		timed.Tick()
	}

	assert.Equal(t, plain.View(), timed.View())
	totals := rec.Totals()
	assert.Equal(t, 12, totals["life.tick"].Count)
	assert.Equal(t, 12, totals["life.step"].Count)
	assert.Equal(t, 12, totals["life.swap"].Count)
	assert.Zero(t, rec.Open())
}

func TestTickDoesNotAllocate(t *testing.T) {
	forEachStore(t, func(t *testing.T, store string) {
		blinker := coords([2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
		l := seeded(t, 6, 6, store, blinker, WithDirtyTracking(true))

		allocs := testing.AllocsPerRun(50, l.Tick)
		assert.Zero(t, allocs)
		assert.Equal(t, 4, l.DirtyCount())
	})
}

func TestParameters(t *testing.T) {
	l, err := New(12, 8, WithStore(bitgrid.Name), WithSeed(3), WithDirtyTracking(true))
	require.NoError(t, err)

	values := map[string]string{}
	for _, g := range l.Parameters().Groups {
		for _, p := range g.Params {
			values[p.Key] = p.Value
		}
	}
	assert.Equal(t, map[string]string{
		"w": "12", "h": "8", "store": "bits", "dirty": "true", "init": "random", "seed": "3",
	}, values)
}

func TestParseInit(t *testing.T) {
	got, err := ParseInit(" Stripes ")
	require.NoError(t, err)
	assert.Equal(t, InitStripes, got)

	_, err = ParseInit("soup")
	assert.True(t, errors.Is(err, ErrUnknownInit))
}

func BenchmarkUniverseTicks(b *testing.B) {
	for _, store := range storeNames {
		for _, dirty := range []bool{false, true} {
			b.Run(fmt.Sprintf("%s/dirty=%v", store, dirty), func(b *testing.B) {
				l, err := New(64, 64, WithStore(store), WithSeed(1), WithDirtyTracking(dirty))
				if err != nil {
					b.Fatal(err)
				}
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					for j := 0; j < 100; j++ {
						l.Tick()
					}
				}
			})
		}
	}
}
