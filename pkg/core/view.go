package core

// Layout identifies the granularity of an exported cell buffer.
type Layout uint8

const (
	// LayoutBytes stores one byte per cell, 0 for dead and 1 for alive.
	LayoutBytes Layout = iota
	// LayoutBits packs cells into 64-bit words, LSB first: cell i lives in
	// bit i%64 of word i/64.
	LayoutBits
)

// WordBits is the number of cells packed into one LayoutBits word.
const WordBits = 64

func (l Layout) String() string {
	switch l {
	case LayoutBytes:
		return "bytes"
	case LayoutBits:
		return "bits"
	default:
		return "unknown"
	}
}

// View is a read-only window onto a store's backing buffer. Exactly one of
// Bytes or Words is set, depending on Layout.
//
// The slices alias the live buffer. A View is valid until the owning sim
// ticks or is mutated; callers must not write through it or keep it across
// generations.
type View struct {
	Layout Layout
	// Cells is the number of logical cells encoded, width*height.
	Cells int
	Bytes []uint8
	Words []uint64
}

// Len returns the buffer length in native granules: bytes for LayoutBytes,
// words for LayoutBits.
func (v View) Len() int {
	if v.Layout == LayoutBits {
		return len(v.Words)
	}
	return len(v.Bytes)
}

// Alive reports whether linear cell i is alive. i must be in [0, Cells).
func (v View) Alive(i int) bool {
	if v.Layout == LayoutBits {
		return v.Words[i/WordBits]&(1<<(uint(i)%WordBits)) != 0
	}
	return v.Bytes[i] != 0
}

// WordsFor returns the number of LayoutBits words needed for n cells.
func WordsFor(n int) int {
	return (n + WordBits - 1) / WordBits
}
