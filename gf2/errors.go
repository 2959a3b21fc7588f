package gf2

import "errors"

var (
	// ErrShapeMismatch indicates matrix/vector dimensions disagree at an
	// operation boundary (stacking, XOR between rows of different widths, …).
	ErrShapeMismatch = errors.New("gf2: shape mismatch")

	// ErrOutOfBounds indicates a row or column index beyond the matrix size.
	ErrOutOfBounds = errors.New("gf2: index out of bounds")
)
