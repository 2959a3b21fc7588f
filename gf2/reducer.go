package gf2

import "github.com/bits-and-blooms/bitset"

// Reducer maintains an online reduced row-echelon form over GF(2).
//
// Rows are stacked one by one with AddRow, columns appended with AddColumn,
// and — the hot path of t-value computation — a single logical row can be
// swapped with ReplaceRow, after which reduced form is restored
// incrementally.
//
// Internally the reducer owns three row sets of equal height:
//
//	orig — the current original rows, as supplied by the caller;
//	red  — the reduced row-echelon form of orig;
//	ops  — the row-operations matrix, with ops[r]·orig = red[r] over GF(2).
//
// Invariants after every public operation:
//   - red is in reduced row-echelon form: every pivot column contains a
//     single 1, and the first set bit of every nonzero row is its pivot;
//   - a row has a pivot exactly when its reduced form is nonzero;
//   - Rank() equals the number of recorded pivots;
//   - SmallestFullRank() is the least number of leading columns whose span
//     reaches min(NumRows, NumCols) rank, or NumCols+1 if never attained.
//
// Pivot selection is deterministic: the smallest column index with a 1.
type Reducer struct {
	nCols int

	orig []*bitset.BitSet
	red  []*bitset.BitSet
	ops  []*bitset.BitSet

	pivotByRow map[int]int
	pivotByCol map[int]int

	colsNoPivot *bitset.BitSet
	rowsNoPivot []int

	sfr int
}

// NewReducer returns an empty reducer over nCols columns.
func NewReducer(nCols int) (*Reducer, error) {
	if nCols < 0 {
		return nil, ErrShapeMismatch
	}
	cols := bitset.New(uint(nCols))
	for c := 0; c < nCols; c++ {
		cols.Set(uint(c))
	}

	return &Reducer{
		nCols:       nCols,
		pivotByRow:  make(map[int]int),
		pivotByCol:  make(map[int]int),
		colsNoPivot: cols,
	}, nil
}

// NumRows returns the number of rows added so far.
func (r *Reducer) NumRows() int { return len(r.red) }

// NumCols returns the current number of columns.
func (r *Reducer) NumCols() int { return r.nCols }

// Rank returns the rank of the current row set.
func (r *Reducer) Rank() int { return len(r.pivotByRow) }

// SmallestFullRank returns the minimal number of leading columns needed for
// the rows to reach rank min(NumRows, NumCols), or NumCols+1 when even the
// full matrix falls short.
func (r *Reducer) SmallestFullRank() int { return r.sfr }

// Pivots returns a copy of the pivot map, keyed by row index with the pivot
// column as value.
func (r *Reducer) Pivots() map[int]int {
	p := make(map[int]int, len(r.pivotByRow))
	for row, col := range r.pivotByRow {
		p[row] = col
	}

	return p
}

// Reduced returns a copy of the reduced row-echelon matrix.
func (r *Reducer) Reduced() *Matrix {
	m, _ := NewMatrix(len(r.red), r.nCols)
	for i, row := range r.red {
		m.rows[i] = row.Clone()
	}

	return m
}

// Ops returns a copy of the row-operations matrix; its shape is
// NumRows×NumRows and Ops·original = Reduced over GF(2).
func (r *Reducer) Ops() *Matrix {
	m, _ := NewMatrix(len(r.ops), len(r.ops))
	for i, row := range r.ops {
		for b, ok := row.NextSet(0); ok && b < uint(len(r.ops)); b, ok = row.NextSet(b + 1) {
			m.rows[i].Set(b)
		}
	}

	return m
}

// AddRow stacks one row below the current matrix and restores reduced form.
// Bits of row at positions ≥ NumCols are ignored.
func (r *Reducer) AddRow(row *bitset.BitSet) error {
	if row == nil {
		return ErrShapeMismatch
	}
	i := len(r.red)
	v := r.maskRow(row)
	r.orig = append(r.orig, v.Clone())
	r.red = append(r.red, v)
	opsRow := bitset.New(uint(i + 1))
	opsRow.Set(uint(i))
	r.ops = append(r.ops, opsRow)

	r.reduceRow(i)
	r.settleRow(i)
	r.updateSmallestFullRank()

	return nil
}

// AddColumn appends one column on the right; bit j of col is the entry for
// row j. The reduced form gains the image of the column under the recorded
// row operations, and a pivot-free row owning a 1 in the new column is
// promoted to a pivot row.
func (r *Reducer) AddColumn(col *bitset.BitSet) error {
	if col == nil {
		return ErrShapeMismatch
	}
	newC := uint(r.nCols)
	r.nCols++
	for j := range r.red {
		if col.Test(uint(j)) {
			r.orig[j].Set(newC)
		}
		if r.ops[j].IntersectionCardinality(col)%2 == 1 {
			r.red[j].Set(newC)
		}
	}
	r.colsNoPivot.Set(newC)

	// Promote the first pivot-free row holding a 1 in the new column.
	for k, j := range r.rowsNoPivot {
		if !r.red[j].Test(newC) {
			continue
		}
		r.pivotByRow[j] = int(newC)
		r.pivotByCol[int(newC)] = j
		r.colsNoPivot.Clear(newC)
		r.rowsNoPivot = append(r.rowsNoPivot[:k], r.rowsNoPivot[k+1:]...)
		r.eliminateColumn(j, int(newC))

		break
	}
	r.updateSmallestFullRank()

	return nil
}

// ReplaceRow swaps the original row at index i for newRow and restores
// reduced row-echelon form incrementally. Rows whose recorded combination
// involves the replaced original are offset by the row difference before
// re-reduction, so the ops identity keeps holding afterwards.
func (r *Reducer) ReplaceRow(i int, newRow *bitset.BitSet) error {
	if i < 0 || i >= len(r.red) {
		return ErrOutOfBounds
	}
	if newRow == nil {
		return ErrShapeMismatch
	}
	v := r.maskRow(newRow)
	delta := r.orig[i].Clone()
	delta.InPlaceSymmetricDifference(v)
	r.orig[i] = v.Clone()

	dirty := make([]int, 0, 4)
	if delta.Any() {
		for j := range r.red {
			if r.ops[j].Test(uint(i)) {
				r.red[j].InPlaceSymmetricDifference(delta)
				dirty = append(dirty, j)
			}
		}
	}

	for _, j := range dirty {
		r.releasePivot(j)
		r.dropRowNoPivot(j)
	}
	for _, j := range dirty {
		r.reduceRow(j)
		r.settleRow(j)
	}
	r.updateSmallestFullRank()

	return nil
}

// ComputeRanks returns, for c = firstCol … firstCol+n−1, the rank of the
// sub-matrix restricted to the first c+1 columns.
func (r *Reducer) ComputeRanks(firstCol, n int) ([]int, error) {
	if n < 0 {
		return nil, ErrShapeMismatch
	}
	if firstCol < 0 || firstCol+n > r.nCols {
		return nil, ErrOutOfBounds
	}
	perCol := make([]int, r.nCols)
	for c := range r.pivotByCol {
		perCol[c] = 1
	}
	ranks := make([]int, n)
	count := 0
	for c := 0; c < firstCol+n; c++ {
		count += perCol[c]
		if c >= firstCol {
			ranks[c-firstCol] = count
		}
	}

	return ranks, nil
}

// IsInvertible reports whether m is square and of full rank over GF(2).
func IsInvertible(m *Matrix) bool {
	if m.nRows != m.nCols {
		return false
	}
	r, _ := NewReducer(m.nCols)
	for i := 0; i < m.nRows; i++ {
		_ = r.AddRow(m.rows[i])
	}

	return r.Rank() == m.nRows
}

// maskRow clones row truncated to the reducer width.
func (r *Reducer) maskRow(row *bitset.BitSet) *bitset.BitSet {
	v := bitset.New(uint(r.nCols))
	for c, ok := row.NextSet(0); ok && c < uint(r.nCols); c, ok = row.NextSet(c + 1) {
		v.Set(c)
	}

	return v
}

// reduceRow eliminates every pivot column from row j, updating ops in step.
// A single left-to-right scan suffices: XOR with a pivot row only toggles
// bits at or after that row's pivot column.
func (r *Reducer) reduceRow(j int) {
	c, ok := r.red[j].NextSet(0)
	for ok {
		p, isPivot := r.pivotByCol[int(c)]
		if isPivot && p != j {
			r.red[j].InPlaceSymmetricDifference(r.red[p])
			r.ops[j].InPlaceSymmetricDifference(r.ops[p])
			c, ok = r.red[j].NextSet(c)
		} else {
			c, ok = r.red[j].NextSet(c + 1)
		}
	}
}

// settleRow looks for a pivot for the fully reduced row j by scanning the
// pivot-free columns in order; on success the new pivot column is
// eliminated from every other row, otherwise the row joins the pivot-free
// list. Since reduceRow cleared every pivot column from the row, the first
// pivot-free column with a 1 is also the row's first set bit.
func (r *Reducer) settleRow(j int) {
	for c, ok := r.colsNoPivot.NextSet(0); ok && c < uint(r.nCols); c, ok = r.colsNoPivot.NextSet(c + 1) {
		if !r.red[j].Test(c) {
			continue
		}
		r.pivotByRow[j] = int(c)
		r.pivotByCol[int(c)] = j
		r.colsNoPivot.Clear(c)
		r.eliminateColumn(j, int(c))

		return
	}
	r.rowsNoPivot = append(r.rowsNoPivot, j)
}

// eliminateColumn clears column c from every row but the pivot row j.
func (r *Reducer) eliminateColumn(j, c int) {
	for k := range r.red {
		if k == j || !r.red[k].Test(uint(c)) {
			continue
		}
		r.red[k].InPlaceSymmetricDifference(r.red[j])
		r.ops[k].InPlaceSymmetricDifference(r.ops[j])
	}
}

// releasePivot frees the pivot held by row j, if any.
func (r *Reducer) releasePivot(j int) {
	c, has := r.pivotByRow[j]
	if !has {
		return
	}
	delete(r.pivotByRow, j)
	delete(r.pivotByCol, c)
	r.colsNoPivot.Set(uint(c))
}

// dropRowNoPivot removes j from the pivot-free list, if present.
func (r *Reducer) dropRowNoPivot(j int) {
	for k, row := range r.rowsNoPivot {
		if row == j {
			r.rowsNoPivot = append(r.rowsNoPivot[:k], r.rowsNoPivot[k+1:]...)

			return
		}
	}
}

// updateSmallestFullRank rescans the pivot columns. The target rank is
// min(NumRows, NumCols); the smallest full-rank column count is the position
// of the target-th pivot column, counted from the left.
func (r *Reducer) updateSmallestFullRank() {
	target := len(r.red)
	if r.nCols < target {
		target = r.nCols
	}
	if target == 0 {
		r.sfr = 0

		return
	}
	if len(r.pivotByRow) < target {
		r.sfr = r.nCols + 1

		return
	}
	count := 0
	for c := 0; c < r.nCols; c++ {
		if _, has := r.pivotByCol[c]; has {
			count++
			if count == target {
				r.sfr = c + 1

				return
			}
		}
	}
	r.sfr = r.nCols + 1
}
