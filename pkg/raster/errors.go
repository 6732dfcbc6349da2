package raster

import "errors"

// Error kinds shared by every stage. Wrap them with fmt.Errorf("%w: ...") and
// test with errors.Is.
var (
	// ErrInvalidParameter reports a parameter outside its valid domain, such
	// as a non-positive sigma or a negative window radius.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDimensionMismatch reports inputs whose width, height or channel
	// count are incompatible.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
