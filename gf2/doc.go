// Package gf2 provides dense linear algebra over the two-element field GF(2).
//
// The two central types are:
//
//   - Matrix — a rectangular bit matrix with word-packed rows. Rows are the
//     unit of mutation: XOR (addition in GF(2)), swap, replace. Sub-matrix
//     windows, row stacking and integer-encoded rows are supported so that
//     generating matrices of digital nets can be assembled cheaply.
//
//   - Reducer — a progressive row reducer. It maintains the reduced
//     row-echelon form of a growing matrix together with the row-operations
//     matrix relating it to the original rows, under three mutations:
//     AddRow, AddColumn and ReplaceRow. ReplaceRow is the hot path of the
//     t-value computation: it swaps a single logical row and restores
//     reduced form incrementally instead of re-running full elimination.
//
// All operations are deterministic. Out-of-range indices and shape
// disagreements are reported through the package sentinels ErrOutOfBounds
// and ErrShapeMismatch; they indicate programming errors at the call site,
// not data-dependent conditions.
package gf2
