package search_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowdisc/lowdisc/digitalnet"
	"github.com/lowdisc/lowdisc/figures"
	"github.com/lowdisc/lowdisc/kernel"
	"github.com/lowdisc/lowdisc/lattice"
	"github.com/lowdisc/lowdisc/poly2"
	"github.com/lowdisc/lowdisc/search"
	"github.com/lowdisc/lowdisc/weights"
)

func newPAlphaFigure(t *testing.T, gammas ...float64) *figures.CoordUniform {
	t.Helper()
	kern, err := kernel.NewPAlpha(2)
	require.NoError(t, err)
	fig, err := figures.NewCoordUniform(kern, weights.NewProduct(gammas), 2)
	require.NoError(t, err)

	return fig
}

// TestNetSearch_ExhaustiveOptimal: the exhaustive driver returns the true
// minimum over the declared value space (checked by direct enumeration).
func TestNetSearch_ExhaustiveOptimal(t *testing.T) {
	cons, err := digitalnet.NewPolynomial(poly2.FromInt(7))
	require.NoError(t, err)
	fig := newPAlphaFigure(t, 1, 1)

	task, err := search.NewNetSearch(cons, 2, fig, search.DefaultOptions())
	require.NoError(t, err)
	res, err := task.Execute()
	require.NoError(t, err)

	// Direct enumeration of the whole space: coordinate 0 is pinned to 1.
	best := math.Inf(1)
	seq, err := cons.ValueSpace(1)
	require.NoError(t, err)
	for v, ok := seq.Next(); ok; v, ok = seq.Next() {
		net, err := digitalnet.NewConstructedNet(cons, []digitalnet.GenValue{poly2.One, v})
		require.NoError(t, err)
		merit, err := fig.EvaluateNet(net, nil)
		require.NoError(t, err)
		if merit < best {
			best = merit
		}
	}
	assert.InDelta(t, best, res.Merit, 1e-12, "exhaustive search must return the space minimum")
	assert.Equal(t, 3, task.Observer().Evaluations())
}

// TestNetSearch_RandomDeterministic is the reproducibility scenario: an
// explicit 4×4 random search over 100 tries with a fixed seed must report
// the same winner on every run.
func TestNetSearch_RandomDeterministic(t *testing.T) {
	run := func() *search.NetResult {
		cons, err := digitalnet.NewExplicit(4, 4, digitalnet.Unilevel)
		require.NoError(t, err)
		fig, err := figures.NewTValueFigure(weights.NewOrderDependent([]float64{0, 1}), math.Inf(1))
		require.NoError(t, err)
		task, err := search.NewNetSearch(cons, 2, fig, search.Options{
			Strategy: search.Random,
			NbTries:  100,
			Seed:     42,
		})
		require.NoError(t, err)
		res, err := task.Execute()
		require.NoError(t, err)

		return res
	}

	a := run()
	b := run()
	assert.Equal(t, a.Merit, b.Merit)
	assert.Equal(t,
		a.Net.Format(digitalnet.FormatMachine, 1),
		b.Net.Format(digitalnet.FormatMachine, 1),
		"same seed must yield the same winner")
}

// TestNetSearch_EarlyAbortAll is the artificial-bound scenario: with early
// abortion and a bound of zero every candidate aborts at its first
// coordinate and the driver reports ErrNoCandidate.
func TestNetSearch_EarlyAbortAll(t *testing.T) {
	cons, err := digitalnet.NewExplicit(3, 3, digitalnet.Unilevel)
	require.NoError(t, err)
	fig, err := figures.NewTValueFigure(weights.NewProduct([]float64{1, 1}), 2)
	require.NoError(t, err)
	task, err := search.NewNetSearch(cons, 2, fig, search.Options{
		Strategy:      search.Random,
		NbTries:       20,
		Seed:          7,
		EarlyAbortion: true,
	})
	require.NoError(t, err)
	task.Observer().SetBound(0)

	_, err = task.Execute()
	assert.ErrorIs(t, err, search.ErrNoCandidate)
	assert.Equal(t, 20, task.Observer().Aborts(), "every candidate must abort")
	assert.Zero(t, task.Observer().Evaluations())
}

// TestNetSearch_CBCPolynomial: CBC over a polynomial lattice picks, per
// coordinate, the value-space minimizer given the fixed prefix.
func TestNetSearch_CBCPolynomial(t *testing.T) {
	cons, err := digitalnet.NewPolynomial(poly2.FromInt(11)) // x³+x+1, 8 points
	require.NoError(t, err)
	fig := newPAlphaFigure(t, 1, 1, 1)

	task, err := search.NewNetSearch(cons, 3, fig, search.Options{Strategy: search.CBC})
	require.NoError(t, err)
	res, err := task.Execute()
	require.NoError(t, err)
	require.Equal(t, 3, res.Net.Dimension())

	// Replay the greedy choice of coordinate 1 by hand.
	prefix, err := digitalnet.NewConstructedNet(cons, []digitalnet.GenValue{poly2.One})
	require.NoError(t, err)
	seq, err := cons.ValueSpace(1)
	require.NoError(t, err)
	bestMerit := math.Inf(1)
	var bestVal digitalnet.GenValue
	for v, ok := seq.Next(); ok; v, ok = seq.Next() {
		cand, err := prefix.ExtendDimension(v)
		require.NoError(t, err)
		merit, err := fig.EvaluateNet(cand, nil)
		require.NoError(t, err)
		if merit < bestMerit {
			bestMerit = merit
			bestVal = v
		}
	}
	got := res.Net.(*digitalnet.ConstructedNet).GenValues()
	assert.Equal(t, bestVal, got[1], "coordinate 1 must be the greedy minimizer")
}

// TestNetSearch_FastCBCMatchesCBC is the fast-CBC contract: for a
// coordinate-uniform figure the fast driver reaches the same merit as
// plain CBC (up to tie-breaking).
func TestNetSearch_FastCBCMatchesCBC(t *testing.T) {
	cons, err := digitalnet.NewPolynomial(poly2.FromInt(11))
	require.NoError(t, err)
	fig := newPAlphaFigure(t, 1, 0.7, 0.4)

	slow, err := search.NewNetSearch(cons, 3, fig, search.Options{Strategy: search.CBC})
	require.NoError(t, err)
	resSlow, err := slow.Execute()
	require.NoError(t, err)

	fast, err := search.NewNetSearch(cons, 3, fig, search.Options{Strategy: search.FastCBC})
	require.NoError(t, err)
	resFast, err := fast.Execute()
	require.NoError(t, err)

	assert.InDelta(t, resSlow.Merit, resFast.Merit, 1e-9)

	// The final merit matches a from-scratch evaluation of the winner.
	recheck, err := fig.EvaluateNet(resFast.Net, nil)
	require.NoError(t, err)
	assert.InDelta(t, recheck, resFast.Merit, 1e-9)
}

// TestNetSearch_FastCBCRequiresCU: t-value figures cannot ride fast-CBC.
func TestNetSearch_FastCBCRequiresCU(t *testing.T) {
	cons, err := digitalnet.NewPolynomial(poly2.FromInt(11))
	require.NoError(t, err)
	fig, err := figures.NewTValueFigure(weights.NewProduct([]float64{1, 1, 1}), 2)
	require.NoError(t, err)
	task, err := search.NewNetSearch(cons, 3, fig, search.Options{Strategy: search.FastCBC})
	require.NoError(t, err)
	_, err = task.Execute()
	assert.ErrorIs(t, err, search.ErrConfiguration)
}

// TestNetSearch_FilterRejectsAll: a zero low-pass keeps every candidate
// out of the observer.
func TestNetSearch_FilterRejectsAll(t *testing.T) {
	cons, err := digitalnet.NewPolynomial(poly2.FromInt(7))
	require.NoError(t, err)
	fig := newPAlphaFigure(t, 1, 1)
	task, err := search.NewNetSearch(cons, 2, fig, search.Options{
		Strategy: search.Exhaustive,
		Filters:  []search.MeritFilter{search.LowPass{Threshold: 0}},
	})
	require.NoError(t, err)
	_, err = task.Execute()
	assert.ErrorIs(t, err, search.ErrNoCandidate)
}

// TestLatticeSearch_ExhaustiveOptimal mirrors the optimality contract on
// ordinary lattices.
func TestLatticeSearch_ExhaustiveOptimal(t *testing.T) {
	rule, err := lattice.NewRule(8)
	require.NoError(t, err)
	fig := newPAlphaFigure(t, 1, 1)

	task, err := search.NewLatticeSearch(rule, 2, fig, search.DefaultOptions())
	require.NoError(t, err)
	res, err := task.Execute()
	require.NoError(t, err)

	best := math.Inf(1)
	var bestGen []uint64
	for _, a := range rule.ValueSpace(1) {
		lat, err := lattice.NewOrdinary(8, []uint64{1, a})
		require.NoError(t, err)
		merit, err := fig.EvaluateSource(lat, nil)
		require.NoError(t, err)
		if merit < best {
			best = merit
			bestGen = lat.Generator()
		}
	}
	assert.InDelta(t, best, res.Merit, 1e-12)
	assert.Equal(t, bestGen, res.Lattice.Generator())
}

// TestLatticeSearch_FastCBCMatchesCBC on a prime modulus.
func TestLatticeSearch_FastCBCMatchesCBC(t *testing.T) {
	rule, err := lattice.NewRule(17)
	require.NoError(t, err)
	fig := newPAlphaFigure(t, 1, 0.9, 0.5)

	slow, err := search.NewLatticeSearch(rule, 3, fig, search.Options{Strategy: search.CBC})
	require.NoError(t, err)
	resSlow, err := slow.Execute()
	require.NoError(t, err)

	fast, err := search.NewLatticeSearch(rule, 3, fig, search.Options{Strategy: search.FastCBC})
	require.NoError(t, err)
	resFast, err := fast.Execute()
	require.NoError(t, err)

	assert.InDelta(t, resSlow.Merit, resFast.Merit, 1e-9)

	recheck, err := fig.EvaluateSource(resFast.Lattice, nil)
	require.NoError(t, err)
	assert.InDelta(t, recheck, resFast.Merit, 1e-9)
}

// TestLatticeSearch_FastCBCNeedsPrime: composite moduli have no single
// unit cycle.
func TestLatticeSearch_FastCBCNeedsPrime(t *testing.T) {
	rule, err := lattice.NewRule(8)
	require.NoError(t, err)
	fig := newPAlphaFigure(t, 1, 1)
	task, err := search.NewLatticeSearch(rule, 2, fig, search.Options{Strategy: search.FastCBC})
	require.NoError(t, err)
	_, err = task.Execute()
	assert.ErrorIs(t, err, search.ErrConfiguration)
}

// TestObserver_TieBreaking: equal merits keep the first-seen candidate.
func TestObserver_TieBreaking(t *testing.T) {
	obs := search.NewMinimumObserver[string](false)
	obs.Observe("first", 1.0)
	obs.Observe("second", 1.0)
	best, merit, ok := obs.Best()
	require.True(t, ok)
	assert.Equal(t, "first", best)
	assert.Equal(t, 1.0, merit)

	obs.Observe("third", 0.5)
	best, _, _ = obs.Best()
	assert.Equal(t, "third", best)
}

// TestObserver_EarlyAbortContract: partial ≥ bound aborts, better partials
// continue.
func TestObserver_EarlyAbortContract(t *testing.T) {
	obs := search.NewMinimumObserver[string](true)
	assert.True(t, obs.OnProgress(123), "no bound yet ⇒ never abort")

	obs.Observe("net", 1.0)
	assert.True(t, obs.OnProgress(0.5))
	assert.False(t, obs.OnProgress(1.0), "partial at the best merit is hopeless")
	assert.False(t, obs.OnProgress(2.0))

	lazy := search.NewMinimumObserver[string](false)
	lazy.Observe("net", 1.0)
	assert.True(t, lazy.OnProgress(2.0), "without early abortion progress always continues")
}
