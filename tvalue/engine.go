package tvalue

import (
	"errors"

	"github.com/lowdisc/lowdisc/gf2"
)

var (
	// ErrAborted reports a cooperative abort raised by Options.Stop.
	ErrAborted = errors.New("tvalue: computation aborted")

	// ErrNoMatrices indicates an empty generating-matrix list.
	ErrNoMatrices = errors.New("tvalue: at least one generating matrix is required")

	// ErrMatrixShape indicates generating matrices of unequal shapes.
	ErrMatrixShape = errors.New("tvalue: generating matrices must share one shape")

	// ErrLevelCount indicates a bound vector whose length does not cover the
	// embedding levels mMin+1 … nCols.
	ErrLevelCount = errors.New("tvalue: bound vector must have one entry per level")
)

// Options tunes a t-value computation.
type Options struct {
	// Stop is polled once per composition step; returning true aborts the
	// computation with ErrAborted. A nil Stop never aborts.
	Stop func() bool
}

// TValue computes the t-value of the digital net with the given generating
// matrices. maxSubProj is a lower bound carried over from sub-projections
// (use 0 when none is known). A net with a single matrix has t = 0 by
// definition.
func TValue(mats []*gf2.Matrix, maxSubProj int, opts *Options) (int, error) {
	if err := checkMatrices(mats); err != nil {
		return 0, err
	}
	if len(mats) == 1 {
		return 0, nil
	}
	seq, err := TSequence(mats, mats[0].NumCols()-1, []int{maxSubProj}, opts)
	if err != nil {
		return 0, err
	}

	return seq[0], nil
}

// TSequence computes the per-level t-values of an embedded net for levels
// mMin+1 … nCols, starting from the bound vector maxSubProj (one entry per
// level). The returned vector refines maxSubProj and never drops below it.
//
// The engine iterates k (the number of selected rows) from high to low. At
// each k it enumerates row selections through one reducer, swapping a single
// row per composition; the largest full-rank column count observed tightens
// the bounds of the affected levels, and once full rank is reached within
// the first mMin columns no further level can improve.
func TSequence(mats []*gf2.Matrix, mMin int, maxSubProj []int, opts *Options) ([]int, error) {
	if err := checkMatrices(mats); err != nil {
		return nil, err
	}
	nRows := mats[0].NumRows()
	nCols := mats[0].NumCols()
	s := len(mats)
	if mMin < 0 || mMin > nCols || len(maxSubProj) != nCols-mMin {
		return nil, ErrLevelCount
	}

	var stop func() bool
	if opts != nil {
		stop = opts.Stop
	}

	if s == 1 {
		seq := oneDimensionalSequence(mats[0], mMin)
		for i, b := range maxSubProj {
			if seq[i] < b {
				seq[i] = b
			}
		}

		return seq, nil
	}

	result := append([]int(nil), maxSubProj...)
	nLevel := len(maxSubProj)

	// Levels below s−1 columns cannot host s nonempty row groups; their
	// bounds stay as supplied and the remaining levels shift by diff.
	diff := 0
	if mMin < s-1 {
		diff = s - 1 - mMin
		if nLevel <= diff {
			return result, nil
		}
		nLevel -= diff
		mMin = s - 1
	}
	for i := 0; i < nLevel; i++ {
		if v := nCols - (nLevel - 1 - i) - s + 1; v > result[i+diff] {
			result[i+diff] = v
		}
	}

	prevInd := nLevel
	for k := nRows - maxSubProj[len(maxSubProj)-1]; k >= s; k-- {
		idx, err := iterationOnK(mats, k, stop)
		if err != nil {
			return nil, err
		}
		if idx == nCols {
			// Some selection of k rows is rank-deficient even on all
			// columns; k is too ambitious, try one row less.
			continue
		}
		start := 0
		if idx > mMin {
			start = idx - mMin
		}
		for i := start; i < prevInd; i++ {
			v := nCols - (nLevel - 1 - i) - k
			if v < maxSubProj[i+diff] {
				v = maxSubProj[i+diff]
			}
			result[i+diff] = v
		}
		if idx <= mMin {
			break
		}
		prevInd = idx - mMin
	}

	return result, nil
}

// iterationOnK checks all selections of k rows (first aᵢ rows of matrix i,
// aᵢ ≥ 1) through a single progressive reducer. It returns the largest
// full-rank column count observed minus one, or nCols as soon as any
// selection fails to reach rank k on the full width.
func iterationOnK(mats []*gf2.Matrix, k int, stop func() bool) (int, error) {
	nCols := mats[0].NumCols()
	s := len(mats)

	if stop != nil && stop() {
		return 0, ErrAborted
	}

	red, err := gf2.NewReducer(nCols)
	if err != nil {
		return 0, err
	}
	originToRow := make(map[Move]int, k)
	rowIdx := 0
	for p := 0; p < s-1; p++ {
		row, err := mats[p].Row(0)
		if err != nil {
			return 0, err
		}
		if err = red.AddRow(row); err != nil {
			return 0, err
		}
		originToRow[Move{Part: p, Unit: 1}] = rowIdx
		rowIdx++
	}
	for u := 0; u < k-s+1; u++ {
		row, err := mats[s-1].Row(u)
		if err != nil {
			return 0, err
		}
		if err = red.AddRow(row); err != nil {
			return 0, err
		}
		originToRow[Move{Part: s - 1, Unit: u + 1}] = rowIdx
		rowIdx++
	}

	maxIdx := red.SmallestFullRank() - 1
	if maxIdx == nCols {
		return nCols, nil
	}

	cm, err := NewCompositionMaker(k, s)
	if err != nil {
		return 0, err
	}
	for cm.Advance() {
		if stop != nil && stop() {
			return 0, ErrAborted
		}
		d := cm.Delta()
		ri, ok := originToRow[d.From]
		if !ok {
			return 0, ErrInvalidComposition
		}
		delete(originToRow, d.From)
		originToRow[d.To] = ri

		newRow, err := mats[d.To.Part].Row(d.To.Unit - 1)
		if err != nil {
			return 0, err
		}
		if err = red.ReplaceRow(ri, newRow); err != nil {
			return 0, err
		}

		idx := red.SmallestFullRank() - 1
		if idx == nCols {
			return nCols, nil
		}
		if idx > maxIdx {
			maxIdx = idx
		}
	}

	return maxIdx, nil
}

// oneDimensionalSequence derives the levels of a one-matrix net straight
// from pivot positions: a pivot at (r, c) spends one column at level
// max(r, c)+1, and t(ℓ) = ℓ − (columns spent up to ℓ).
func oneDimensionalSequence(mat *gf2.Matrix, mMin int) []int {
	nRows := mat.NumRows()
	nCols := mat.NumCols()
	red, _ := gf2.NewReducer(nCols)
	for r := 0; r < nRows; r++ {
		row, _ := mat.Row(r)
		_ = red.AddRow(row)
	}
	countPivot := make([]int, nCols)
	for r, c := range red.Pivots() {
		pos := r
		if c > pos {
			pos = c
		}
		if pos < nCols {
			countPivot[pos]++
		}
	}
	count := 0
	for c := 0; c < mMin; c++ {
		count += countPivot[c]
	}
	res := make([]int, nCols-mMin)
	for c := mMin; c < nCols; c++ {
		count += countPivot[c]
		res[c-mMin] = c + 1 - count
	}

	return res
}

// checkMatrices validates a generating-matrix list for shape agreement.
func checkMatrices(mats []*gf2.Matrix) error {
	if len(mats) == 0 {
		return ErrNoMatrices
	}
	nRows := mats[0].NumRows()
	nCols := mats[0].NumCols()
	for _, m := range mats[1:] {
		if m.NumRows() != nRows || m.NumCols() != nCols {
			return ErrMatrixShape
		}
	}

	return nil
}
