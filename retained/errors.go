package retained

import "errors"

var (
	// ErrAlreadyParented is returned by add operations under ReparentStrict
	// when the child is still attached to a different parent.
	ErrAlreadyParented = errors.New("view already has a parent")

	// ErrInvalidBounds is returned for negative widths or heights.
	ErrInvalidBounds = errors.New("invalid bounds")

	// ErrInvalidConfig is returned for negative spacing, insets or flex weights.
	ErrInvalidConfig = errors.New("invalid layout config")

	// ErrInvalidColor is returned when a colour string cannot be parsed.
	ErrInvalidColor = errors.New("invalid color")

	// ErrCycle is returned when an add would make a view its own ancestor.
	ErrCycle = errors.New("view cannot be its own ancestor")
)
