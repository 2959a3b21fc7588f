package search

import (
	"fmt"

	"github.com/lowdisc/lowdisc/figures"
)

// MeritFilter transforms a candidate merit before observation, or rejects
// the candidate altogether (accept = false).
type MeritFilter interface {
	Name() string
	Apply(merit float64) (out float64, accept bool)
}

// LowPass rejects candidates whose merit exceeds a fixed threshold.
type LowPass struct {
	Threshold float64
}

// Name implements MeritFilter.
func (f LowPass) Name() string { return fmt.Sprintf("low-pass(%g)", f.Threshold) }

// Apply implements MeritFilter.
func (f LowPass) Apply(merit float64) (float64, bool) {
	return merit, merit <= f.Threshold
}

// NormBound rejects candidates whose merit exceeds a precomputed
// closed-form bound (e.g. figures.PAlphaSL10); the existence proof
// guarantees some generator beats the bound, so anything above it cannot be
// the winner.
type NormBound struct {
	Bound float64
}

// Name implements MeritFilter.
func (f NormBound) Name() string { return fmt.Sprintf("norm-bound(%g)", f.Bound) }

// Apply implements MeritFilter.
func (f NormBound) Apply(merit float64) (float64, bool) {
	return merit, merit <= f.Bound
}

// Scaling multiplies merits by a constant, the per-level weighting used
// when embedded levels are folded into one number.
type Scaling struct {
	Factor float64
}

// Name implements MeritFilter.
func (f Scaling) Name() string { return fmt.Sprintf("scaling(%g)", f.Factor) }

// Apply implements MeritFilter.
func (f Scaling) Apply(merit float64) (float64, bool) {
	return merit * f.Factor, true
}

// applyFilters runs the filter chain in order; the first rejection wins.
func applyFilters(filters []MeritFilter, merit float64) (float64, bool) {
	for _, f := range filters {
		var ok bool
		if merit, ok = f.Apply(merit); !ok {
			return merit, false
		}
	}

	return merit, true
}

// EvenLevelWeights returns the per-level weight vector selecting levels
// minLevel … maxLevel (1-based, inclusive) with equal weight; other levels
// weigh zero. It backs the "select" combiner of embedded searches.
func EvenLevelWeights(nLevels, minLevel, maxLevel int) []float64 {
	out := make([]float64, nLevels)
	if minLevel < 1 {
		minLevel = 1
	}
	if maxLevel > nLevels {
		maxLevel = nLevels
	}
	if minLevel > maxLevel {
		return out
	}
	w := 1.0 / float64(maxLevel-minLevel+1)
	for l := minLevel; l <= maxLevel; l++ {
		out[l-1] = w
	}

	return out
}

// WeightedSumCombiner folds per-level merits with the given weights.
func WeightedSumCombiner(levelWeights []float64) figures.Combiner {
	ws := append([]float64(nil), levelWeights...)

	return func(levels []float64) float64 {
		out := 0.0
		for i, v := range levels {
			if i < len(ws) {
				out += ws[i] * v
			}
		}

		return out
	}
}
