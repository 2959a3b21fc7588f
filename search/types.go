package search

import "errors"

var (
	// ErrNoCandidate is the terminal search failure: the space was
	// exhausted without any candidate producing a finite merit.
	ErrNoCandidate = errors.New("search: no suitable candidate found")

	// ErrConfiguration indicates an unsupported strategy/figure/construction
	// combination (fast-CBC without a coordinate-uniform figure, exhaustive
	// search over a non-enumerable space, …).
	ErrConfiguration = errors.New("search: unsupported configuration")

	// ErrDimension indicates a non-positive search dimension.
	ErrDimension = errors.New("search: dimension must be positive")
)

// Strategy selects the exploration method.
type Strategy int

const (
	// Exhaustive iterates the full cartesian product of value spaces.
	Exhaustive Strategy = iota

	// Random evaluates NbTries sampled candidates.
	Random

	// CBC grows the generator one coordinate at a time.
	CBC

	// FastCBC is CBC with convolution-based candidate scoring; it requires
	// a coordinate-uniform figure and a cyclic unit group.
	FastCBC
)

func (s Strategy) String() string {
	switch s {
	case Exhaustive:
		return "exhaustive"
	case Random:
		return "random"
	case CBC:
		return "CBC"
	case FastCBC:
		return "fast-CBC"
	}

	return "unknown"
}

// Options configures a search run.
type Options struct {
	// Strategy is the exploration method; Exhaustive by default.
	Strategy Strategy

	// NbTries is the sample count of the Random strategy.
	NbTries int

	// Seed drives the Random strategy; 0 selects a fixed default so that
	// runs stay reproducible.
	Seed int64

	// EarlyAbortion aborts candidate evaluations as soon as their partial
	// merit reaches the best known merit.
	EarlyAbortion bool

	// Filters transform or reject candidate merits before observation.
	Filters []MeritFilter
}

// DefaultOptions returns the baseline configuration: exhaustive, no early
// abortion, no filters.
func DefaultOptions() Options { return Options{Strategy: Exhaustive} }

// defaultSeed is the fixed seed substituted for Seed == 0.
const defaultSeed int64 = 1
