// Package search drives the exploration of generator spaces for digital
// nets and rank-1 lattices.
//
// Four strategies share one skeleton: Exhaustive walks the full cartesian
// product of per-coordinate value spaces; Random samples a fixed number of
// candidates from the construction's sampler; CBC grows one coordinate at a
// time, keeping the best prefix; FastCBC is the CBC specialization for
// coordinate-uniform figures that scores all candidate values of a
// coordinate at once through a circular convolution over the cyclic unit
// group of the modulus.
//
// A MinimumObserver tracks the best candidate seen and doubles as the
// figures.ProgressHook wired into evaluators: with early abortion enabled,
// any partial merit at or above the best known merit aborts the candidate.
// Aborted candidates count as unsuccessful; a search only fails with
// ErrNoCandidate when no candidate ever produced a finite merit.
//
// Merit filters (low-pass thresholds, closed-form norm bounds) and level
// combiners for embedded point sets transform or reject merits before they
// reach the observer.
package search
