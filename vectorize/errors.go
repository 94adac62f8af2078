package vectorize

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrMissingVector indicates a stored chunk with no embedding.
	ErrMissingVector = errors.New("chunk has no vector")

	// ErrDimensionMismatch indicates stored vectors of differing dimensions.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrIDMismatch indicates a stored chunk whose ID does not match its
	// document and position.
	ErrIDMismatch = errors.New("chunk id does not match document and position")
)
