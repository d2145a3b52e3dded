// Package render converts exported cell views into pixels or text.
package render

import (
	"image/color"
	"io"

	"life-torus/pkg/core"
)

// Palette holds the pre-multiplied RGBA bytes for live and dead cells.
type Palette struct {
	on, off [4]uint8
}

// NewPalette converts two colors into a Palette.
func NewPalette(on, off color.Color) Palette {
	return Palette{on: rgba(on), off: rgba(off)}
}

func rgba(c color.Color) [4]uint8 {
	r, g, b, a := c.RGBA()
	return [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func (p Palette) put(buf []byte, i int, alive bool) {
	px := p.off
	if alive {
		px = p.on
	}
	copy(buf[i*4:i*4+4], px[:])
}

// Fill converts every cell of view into RGBA pixels in buf, which must hold
// at least 4*view.Cells bytes.
func Fill(buf []byte, view core.View, p Palette) {
	switch view.Layout {
	case core.LayoutBits:
		fillBits(buf, view, p)
	default:
		fillBytes(buf, view.Bytes, p)
	}
}

func fillBytes(buf []byte, cells []uint8, p Palette) {
	for i, c := range cells {
		p.put(buf, i, c != 0)
	}
}

func fillBits(buf []byte, view core.View, p Palette) {
	for w, word := range view.Words {
		base := w * core.WordBits
		n := min(core.WordBits, view.Cells-base)
		for b := 0; b < n; b++ {
			p.put(buf, base+b, word&(1<<uint(b)) != 0)
		}
	}
}

// PatchDirty rewrites only the pixels of the listed cells. It is the
// incremental counterpart of Fill for renderers that keep the previous
// frame.
func PatchDirty(buf []byte, view core.View, width int, dirty []core.Coord, p Palette) {
	for _, c := range dirty {
		i := c.Row*width + c.Col
		p.put(buf, i, view.Alive(i))
	}
}

// Text writes the view as rows of ◼ (alive) and ◻ (dead).
func Text(w io.Writer, view core.View, width int) error {
	if width <= 0 {
		return nil
	}
	line := make([]byte, 0, width*len("◼")+1)
	for start := 0; start < view.Cells; start += width {
		line = line[:0]
		for i := start; i < start+width && i < view.Cells; i++ {
			if view.Alive(i) {
				line = append(line, "◼"...)
			} else {
				line = append(line, "◻"...)
			}
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}
