package patterns

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-torus/pkg/core"
	"life-torus/pkg/sims/life"
)

func sorted(cells []core.Coord) []core.Coord {
	out := append([]core.Coord(nil), cells...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func live(l *life.Life) []core.Coord {
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

func TestGliderStampMatchesCanonicalSeed(t *testing.T) {
	p, err := Lookup("glider")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Rows)
	assert.Equal(t, 3, p.Cols)

	got := Stamp(p, 1, 1, core.Size{W: 6, H: 6})
	want := []core.Coord{{1, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}}
	assert.Equal(t, want, sorted(got))
}

func TestStampWraps(t *testing.T) {
	p, err := Lookup("glider")
	require.NoError(t, err)

	got := Stamp(p, 5, 5, core.Size{W: 6, H: 6})
	want := []core.Coord{{0, 1}, {1, 0}, {1, 1}, {1, 5}, {5, 0}}
	assert.Equal(t, want, sorted(got))

	got = Stamp(p, -1, -1, core.Size{W: 6, H: 6})
	for _, c := range got {
		assert.True(t, core.Size{W: 6, H: 6}.Contains(c.Row, c.Col), "%v", c)
	}
}

func TestParse(t *testing.T) {
	p, err := Parse("custom", "! comment\n.O\nO*\n")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Rows)
	assert.Equal(t, 2, p.Cols)
	assert.Equal(t, []core.Coord{{0, 1}, {1, 0}, {1, 1}}, p.Cells)

	_, err = Parse("bad", ".x.")
	assert.True(t, errors.Is(err, ErrBadPattern))

	_, err = Parse("empty", "...\n...")
	assert.True(t, errors.Is(err, ErrBadPattern))
}

func TestLookup(t *testing.T) {
	_, err := Lookup("Block")
	require.NoError(t, err)

	_, err = Lookup("gosper")
	assert.True(t, errors.Is(err, ErrUnknownPattern))

	assert.Equal(t, []string{"beacon", "blinker", "block", "glider", "lwss", "pulsar", "r-pentomino", "toad"}, Names())
}

func TestOscillatorPeriods(t *testing.T) {
	cases := []struct {
		name   string
		size   core.Size
		period int
	}{
		{"block", core.Size{W: 8, H: 8}, 1},
		{"blinker", core.Size{W: 8, H: 8}, 2},
		{"toad", core.Size{W: 8, H: 8}, 2},
		{"beacon", core.Size{W: 8, H: 8}, 2},
		{"pulsar", core.Size{W: 17, H: 17}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Lookup(tc.name)
			require.NoError(t, err)
			seed := Center(p, tc.size)

			l, err := life.New(tc.size.W, tc.size.H, life.WithLiveCells(seed))
			require.NoError(t, err)

			start := live(l)
			for i := 1; i < tc.period; i++ {
				l.Tick()
				require.NotEqual(t, start, live(l), "returned early at tick %d", i)
			}
			l.Tick()
			assert.Equal(t, start, live(l))
		})
	}
}

func TestLWSSTravels(t *testing.T) {
	p, err := Lookup("lwss")
	require.NoError(t, err)
	size := core.Size{W: 20, H: 14}

	l, err := life.New(size.W, size.H, life.WithLiveCells(Stamp(p, 5, 8, size)))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		l.Tick()
	}

	assert.Equal(t, sorted(Stamp(p, 5, 6, size)), live(l))
}
