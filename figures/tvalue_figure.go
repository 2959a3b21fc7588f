package figures

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/lowdisc/lowdisc/digitalnet"
	"github.com/lowdisc/lowdisc/gf2"
	"github.com/lowdisc/lowdisc/tvalue"
	"github.com/lowdisc/lowdisc/weights"
)

// Combiner folds the per-level merits of an embedded point set into one
// scalar.
type Combiner func(levels []float64) float64

// MaxCombiner takes the worst level.
func MaxCombiner(levels []float64) float64 {
	out := 0.0
	for _, v := range levels {
		if v > out {
			out = v
		}
	}

	return out
}

// SumCombiner adds the levels.
func SumCombiner(levels []float64) float64 {
	out := 0.0
	for _, v := range levels {
		out += v
	}

	return out
}

// SelectCombiner picks a single embedding level (1-based).
func SelectCombiner(level int) Combiner {
	return func(levels []float64) float64 {
		if level < 1 || level > len(levels) {
			return 0
		}

		return levels[level-1]
	}
}

// TValueFigure is the weighted t-value figure of merit: an ℓ_q norm over
// coordinate projections of γ(P)·t(net|P). Projection enumeration is capped
// by the maximal order of non-zero weights.
type TValueFigure struct {
	w         weights.Weights
	q         float64
	maxCard   int
	embedding digitalnet.Embedding
	combiner  Combiner
}

// NewTValueFigure builds the unilevel figure; q may be +Inf for
// max-combining. Weight shapes with unbounded support are rejected.
func NewTValueFigure(w weights.Weights, q float64) (*TValueFigure, error) {
	return newTValueFigure(w, q, digitalnet.Unilevel, nil)
}

// NewMultilevelTValueFigure builds the embedded variant: per-level merits
// are computed from the t-sequence of every projection and folded by the
// combiner (MaxCombiner when nil).
func NewMultilevelTValueFigure(w weights.Weights, q float64, combiner Combiner) (*TValueFigure, error) {
	if combiner == nil {
		combiner = MaxCombiner
	}

	return newTValueFigure(w, q, digitalnet.Multilevel, combiner)
}

func newTValueFigure(w weights.Weights, q float64, emb digitalnet.Embedding, comb Combiner) (*TValueFigure, error) {
	if err := checkNorm(q); err != nil {
		return nil, err
	}
	maxCard, err := weights.MaxCard(w)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return &TValueFigure{w: w, q: q, maxCard: maxCard, embedding: emb, combiner: comb}, nil
}

// Name implements the figure naming convention.
func (f *TValueFigure) Name() string {
	if f.embedding == digitalnet.Multilevel {
		return "t-value (multilevel)"
	}

	return "t-value"
}

// NormType returns the norm exponent q.
func (f *TValueFigure) NormType() float64 { return f.q }

// Weights returns the weight shape.
func (f *TValueFigure) Weights() weights.Weights { return f.w }

// EvaluateNet computes the figure for a net. The hook, when non-nil, is
// polled with the running partial merit after every coordinate and between
// composition steps of the inner t-value engine; a false return aborts with
// ErrAborted.
func (f *TValueFigure) EvaluateNet(net digitalnet.Net, hook ProgressHook) (float64, error) {
	if f.embedding == digitalnet.Multilevel {
		return f.evaluateMultilevel(net, hook)
	}

	return f.evaluateUnilevel(net, hook)
}

func (f *TValueFigure) evaluateUnilevel(net digitalnet.Net, hook ProgressHook) (float64, error) {
	aborted := false
	acc := newAccumulator(f.q)
	subT := make(map[string]int)

	stop := func() bool {
		if hook == nil || aborted {
			return aborted
		}
		if !hook.OnProgress(acc.Value()) {
			aborted = true
		}

		return aborted
	}
	opts := &tvalue.Options{Stop: stop}

	for d := 0; d < net.Dimension(); d++ {
		for _, proj := range projectionsEndingAt(d, f.maxCard) {
			var t int
			if len(proj) == 1 {
				t = 0
			} else {
				mats, err := projectionMatrices(net, proj)
				if err != nil {
					return 0, err
				}
				bound := 0
				for i := range proj {
					sub := subT[projectionKey(dropIndex(proj, i))]
					if sub > bound {
						bound = sub
					}
				}
				t, err = tvalue.TValue(mats, bound, opts)
				if errors.Is(err, tvalue.ErrAborted) {
					hook.OnAbort()

					return 0, ErrAborted
				}
				if err != nil {
					return 0, err
				}
			}
			subT[projectionKey(proj)] = t
			if gamma := f.w.Weight(proj); gamma > 0 {
				acc.Add(gamma, float64(t))
			}
		}
		if hook != nil && !hook.OnProgress(acc.Value()) {
			hook.OnAbort()

			return 0, ErrAborted
		}
	}

	return acc.Value(), nil
}

func (f *TValueFigure) evaluateMultilevel(net digitalnet.Net, hook ProgressHook) (float64, error) {
	nLevels := net.NumCols()
	aborted := false
	accs := make([]accumulator, nLevels)
	for i := range accs {
		accs[i] = newAccumulator(f.q)
	}
	subSeq := make(map[string][]int)

	partial := func() float64 {
		levels := make([]float64, nLevels)
		for i := range accs {
			levels[i] = accs[i].Value()
		}

		return f.combiner(levels)
	}
	stop := func() bool {
		if hook == nil || aborted {
			return aborted
		}
		if !hook.OnProgress(partial()) {
			aborted = true
		}

		return aborted
	}
	opts := &tvalue.Options{Stop: stop}

	for d := 0; d < net.Dimension(); d++ {
		for _, proj := range projectionsEndingAt(d, f.maxCard) {
			mats, err := projectionMatrices(net, proj)
			if err != nil {
				return 0, err
			}
			bounds := make([]int, nLevels)
			for i := range proj {
				if sub, ok := subSeq[projectionKey(dropIndex(proj, i))]; ok {
					for l, v := range sub {
						if v > bounds[l] {
							bounds[l] = v
						}
					}
				}
			}
			seq, err := tvalue.TSequence(mats, 0, bounds, opts)
			if errors.Is(err, tvalue.ErrAborted) {
				hook.OnAbort()

				return 0, ErrAborted
			}
			if err != nil {
				return 0, err
			}
			subSeq[projectionKey(proj)] = seq
			if gamma := f.w.Weight(proj); gamma > 0 {
				for l, t := range seq {
					accs[l].Add(gamma, float64(t))
				}
			}
		}
		if hook != nil && !hook.OnProgress(partial()) {
			hook.OnAbort()

			return 0, ErrAborted
		}
	}

	return partial(), nil
}

// projectionsEndingAt lists the projections whose largest coordinate is d,
// with order at most maxCard, in deterministic lexicographic order.
func projectionsEndingAt(d, maxCard int) [][]int {
	out := [][]int{{d}}
	for k := 1; k <= maxCard-1 && k <= d; k++ {
		for _, s := range combin.Combinations(d, k) {
			proj := make([]int, 0, k+1)
			proj = append(proj, s...)
			proj = append(proj, d)
			out = append(out, proj)
		}
	}

	return out
}

// projectionMatrices gathers the generating matrices of a projection.
func projectionMatrices(net digitalnet.Net, proj []int) ([]*gf2.Matrix, error) {
	mats := make([]*gf2.Matrix, len(proj))
	for i, c := range proj {
		m, err := net.GeneratingMatrix(c)
		if err != nil {
			return nil, err
		}
		mats[i] = m
	}

	return mats, nil
}

// dropIndex returns proj without its i-th entry.
func dropIndex(proj []int, i int) []int {
	out := make([]int, 0, len(proj)-1)
	out = append(out, proj[:i]...)
	out = append(out, proj[i+1:]...)

	return out
}

// projectionKey canonically encodes an ascending projection.
func projectionKey(proj []int) string {
	parts := make([]string, len(proj))
	for i, v := range proj {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, ",")
}
