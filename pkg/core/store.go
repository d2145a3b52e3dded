package core

import (
	"sort"

	"github.com/pkg/errors"
)

// Store holds the two-state cell matrix of a grid.
//
// Get and Set do not bounds check: row must be in [0, H) and col in [0, W).
// Callers that accept external coordinates validate them first.
type Store interface {
	Size() Size
	Get(row, col int) Cell
	Set(row, col int, c Cell)
	// Clear marks every cell dead.
	Clear()
	// View exposes the backing buffer without copying.
	View() View
}

// StoreFactory allocates an all-dead store of the given dimensions.
type StoreFactory func(w, h int) (Store, error)

var stores = map[string]StoreFactory{}

// RegisterStore adds a storage strategy under the provided name.
func RegisterStore(name string, f StoreFactory) {
	if name == "" || f == nil {
		return
	}
	stores[name] = f
}

// StoreNames lists the registered storage strategies in sorted order.
func StoreNames() []string {
	names := make([]string, 0, len(stores))
	for name := range stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupStore returns the factory registered under name.
func LookupStore(name string) (StoreFactory, error) {
	f, ok := stores[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownStore, "[LookupStore] %q (have %v)", name, StoreNames())
	}
	return f, nil
}

// CheckSize rejects grids with a non-positive dimension or an area that does
// not fit in an int.
func CheckSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return errors.Wrapf(ErrZeroDimension, "%dx%d", w, h)
	}
	if w > maxInt/h {
		return errors.Wrapf(ErrTooLarge, "%dx%d", w, h)
	}
	return nil
}

const maxInt = int(^uint(0) >> 1)
