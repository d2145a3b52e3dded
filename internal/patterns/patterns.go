// Package patterns provides named seed patterns and places them on a
// toroidal grid.
package patterns

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"life-torus/pkg/core"
)

var (
	// ErrUnknownPattern is returned by Lookup for unregistered names.
	ErrUnknownPattern = errors.New("unknown pattern")
	// ErrBadPattern is returned by Parse for malformed diagrams.
	ErrBadPattern = errors.New("malformed pattern")
)

// Pattern is a set of live cells relative to its top-left corner.
type Pattern struct {
	Name  string
	Rows  int
	Cols  int
	Cells []core.Coord
}

// Parse reads a plaintext diagram: '.' is dead, 'O' or '*' is alive, and
// lines starting with '!' are comments. Blank lines are dead rows.
func Parse(name, text string) (Pattern, error) {
	p := Pattern{Name: name}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "!") {
			continue
		}
		row := p.Rows
		for col, r := range []rune(line) {
			switch r {
			case '.':
			case 'O', '*':
				p.Cells = append(p.Cells, core.Coord{Row: row, Col: col})
			default:
				return Pattern{}, errors.Wrapf(ErrBadPattern, "%s: %q at row %d col %d", name, r, row, col)
			}
			if col+1 > p.Cols {
				p.Cols = col + 1
			}
		}
		p.Rows++
	}
	if len(p.Cells) == 0 {
		return Pattern{}, errors.Wrapf(ErrBadPattern, "%s: no live cells", name)
	}
	return p, nil
}

// Stamp translates p so its top-left corner sits at (row, col), wrapping
// around the edges of a grid of the given size. The result is always in
// range and can be handed to SetCells.
func Stamp(p Pattern, row, col int, size core.Size) []core.Coord {
	out := make([]core.Coord, len(p.Cells))
	for i, c := range p.Cells {
		out[i] = core.Coord{
			Row: mod(row+c.Row, size.H),
			Col: mod(col+c.Col, size.W),
		}
	}
	return out
}

// Center stamps p in the middle of the grid.
func Center(p Pattern, size core.Size) []core.Coord {
	return Stamp(p, (size.H-p.Rows)/2, (size.W-p.Cols)/2, size)
}

func mod(a, n int) int {
	return (a%n + n) % n
}

var builtin = map[string]string{
	"block": `
OO
OO`,
	"blinker": `
OOO`,
	"toad": `
.OOO
OOO.`,
	"beacon": `
OO..
OO..
..OO
..OO`,
	"glider": `
.O.
..O
OOO`,
	"lwss": `
.O..O
O....
O...O
OOOO.`,
	"r-pentomino": `
.OO
OO.
.O.`,
	"pulsar": `
..OOO...OOO..
.............
O....O.O....O
O....O.O....O
O....O.O....O
..OOO...OOO..
.............
..OOO...OOO..
O....O.O....O
O....O.O....O
O....O.O....O
.............
..OOO...OOO..`,
}

var registry = map[string]Pattern{}

func init() {
	for name, text := range builtin {
		p, err := Parse(name, strings.TrimPrefix(text, "\n"))
		if err != nil {
			panic(err)
		}
		registry[name] = p
	}
}

// Lookup returns the built-in pattern with the given name.
func Lookup(name string) (Pattern, error) {
	p, ok := registry[strings.ToLower(name)]
	if !ok {
		return Pattern{}, errors.Wrapf(ErrUnknownPattern, "%q (have %v)", name, Names())
	}
	return p, nil
}

// Names lists the built-in patterns in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
