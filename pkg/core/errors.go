package core

import "github.com/pkg/errors"

var (
	// ErrZeroDimension is returned when a grid is constructed with a width or
	// height below one. Toroidal wraparound is undefined for such grids.
	ErrZeroDimension = errors.New("grid dimensions must be positive")

	// ErrTooLarge is returned when width*height overflows.
	ErrTooLarge = errors.New("grid area overflows")

	// ErrOutOfRange is returned by mutation helpers given coordinates outside
	// the grid. Coordinates are never wrapped or clamped.
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrUnknownStore is returned when a storage strategy name is not
	// registered.
	ErrUnknownStore = errors.New("unknown store")
)
