package search

import "math"

// MinimumObserver tracks the best candidate of a search and implements
// figures.ProgressHook for early abortion: once a best merit is known (or
// an artificial bound is set), any partial merit at or above it aborts the
// running evaluation.
type MinimumObserver[T any] struct {
	earlyAbort bool

	hasBest   bool
	best      T
	bestMerit float64

	bound float64

	evaluations int
	aborts      int
}

// NewMinimumObserver returns an observer; earlyAbort enables the pruning
// contract of OnProgress.
func NewMinimumObserver[T any](earlyAbort bool) *MinimumObserver[T] {
	return &MinimumObserver[T]{earlyAbort: earlyAbort, bound: math.Inf(1)}
}

// Observe records a candidate with its merit, keeping the minimum. Ties
// resolve to the first-seen candidate.
func (o *MinimumObserver[T]) Observe(candidate T, merit float64) {
	o.evaluations++
	if math.IsNaN(merit) || math.IsInf(merit, 1) {
		return
	}
	if !o.hasBest || merit < o.bestMerit {
		o.hasBest = true
		o.best = candidate
		o.bestMerit = merit
		if merit < o.bound {
			o.bound = merit
		}
	}
}

// Best returns the minimum observed so far.
func (o *MinimumObserver[T]) Best() (T, float64, bool) {
	return o.best, o.bestMerit, o.hasBest
}

// SetBound installs an artificial abort bound without a candidate, as if a
// merit this good had already been observed.
func (o *MinimumObserver[T]) SetBound(bound float64) { o.bound = bound }

// OnProgress implements figures.ProgressHook: under early abortion a
// partial merit at or above the current bound is hopeless.
func (o *MinimumObserver[T]) OnProgress(partial float64) bool {
	if !o.earlyAbort {
		return true
	}

	return partial < o.bound
}

// OnAbort implements figures.ProgressHook.
func (o *MinimumObserver[T]) OnAbort() { o.aborts++ }

// Evaluations returns the number of observed candidates.
func (o *MinimumObserver[T]) Evaluations() int { return o.evaluations }

// Aborts returns the number of aborted evaluations.
func (o *MinimumObserver[T]) Aborts() int { return o.aborts }

// resetPass clears the best candidate between CBC coordinate passes while
// keeping counters; the abort bound restarts as well, since merits of
// different dimensions are not comparable.
func (o *MinimumObserver[T]) resetPass() {
	var zero T
	o.hasBest = false
	o.best = zero
	o.bestMerit = 0
	o.bound = math.Inf(1)
}
