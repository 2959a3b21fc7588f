package gf2_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowdisc/lowdisc/gf2"
)

// rowSet converts an integer-encoded row into a bit vector.
func rowSet(w uint64, nCols int) *bitset.BitSet {
	b := bitset.New(uint(nCols))
	for c := 0; c < nCols; c++ {
		if w>>uint(c)&1 == 1 {
			b.Set(uint(c))
		}
	}

	return b
}

// naiveRREF performs textbook Gauss–Jordan elimination on integer-encoded
// rows and returns the nonzero rows of the reduced row-echelon form, sorted
// by pivot column. The RREF of a row space is unique, so this is the oracle
// every incremental path must agree with.
func naiveRREF(rows []uint64, nCols int) []uint64 {
	rs := append([]uint64(nil), rows...)
	rank := 0
	for c := 0; c < nCols && rank < len(rs); c++ {
		sel := -1
		for i := rank; i < len(rs); i++ {
			if rs[i]>>uint(c)&1 == 1 {
				sel = i

				break
			}
		}
		if sel < 0 {
			continue
		}
		rs[rank], rs[sel] = rs[sel], rs[rank]
		for i := range rs {
			if i != rank && rs[i]>>uint(c)&1 == 1 {
				rs[i] ^= rs[rank]
			}
		}
		rank++
	}

	return rs[:rank]
}

// reducedNonzeroRows extracts the reducer's pivot rows sorted by pivot column.
func reducedNonzeroRows(t *testing.T, r *gf2.Reducer) []uint64 {
	t.Helper()
	red := r.Reduced()
	type pr struct{ col, row int }
	var pivots []pr
	for row, col := range r.Pivots() {
		pivots = append(pivots, pr{col: col, row: row})
	}
	sort.Slice(pivots, func(i, j int) bool { return pivots[i].col < pivots[j].col })
	out := make([]uint64, 0, len(pivots))
	for _, p := range pivots {
		w, err := red.RowWord(p.row)
		require.NoError(t, err)
		out = append(out, w)
	}

	return out
}

// requireInvariants checks the public reducer invariants against the
// caller-tracked original rows: RREF shape, rank bookkeeping and the ops
// identity ops·original = reduced.
func requireInvariants(t *testing.T, r *gf2.Reducer, orig []uint64, nCols int) {
	t.Helper()
	red := r.Reduced()
	pivots := r.Pivots()

	require.Equal(t, len(orig), r.NumRows())
	require.Equal(t, len(pivots), r.Rank())

	// Pivot purity: a single 1 per pivot column, owned by the pivot row.
	for row, col := range pivots {
		for k := 0; k < r.NumRows(); k++ {
			b, err := red.Bit(k, col)
			require.NoError(t, err)
			assert.Equal(t, k == row, b, "pivot column %d must be pure", col)
		}
	}

	// Rows without a pivot reduce to zero.
	for k := 0; k < r.NumRows(); k++ {
		if _, has := pivots[k]; has {
			continue
		}
		w, err := red.RowWord(k)
		require.NoError(t, err)
		assert.Zero(t, w, "pivot-free row %d must be zero", k)
	}

	// Ops identity over GF(2).
	ops := r.Ops()
	for i := 0; i < r.NumRows(); i++ {
		var acc uint64
		for j := 0; j < r.NumRows(); j++ {
			b, err := ops.Bit(i, j)
			require.NoError(t, err)
			if b {
				acc ^= orig[j]
			}
		}
		w, err := red.RowWord(i)
		require.NoError(t, err)
		assert.Equal(t, w, acc, "ops·original must equal reduced row %d", i)
	}

	// Canonical form: the nonzero rows agree with textbook elimination.
	assert.Equal(t, naiveRREF(orig, nCols), reducedNonzeroRows(t, r))
}

// TestReducer_AddRowSmall walks a hand-checked example.
func TestReducer_AddRowSmall(t *testing.T) {
	r, err := gf2.NewReducer(3)
	require.NoError(t, err)

	require.NoError(t, r.AddRow(rowSet(0b011, 3)))
	assert.Equal(t, 1, r.Rank())

	require.NoError(t, r.AddRow(rowSet(0b110, 3)))
	assert.Equal(t, 2, r.Rank())

	// 0b101 = 0b011 ⊕ 0b110 is dependent.
	require.NoError(t, r.AddRow(rowSet(0b101, 3)))
	assert.Equal(t, 2, r.Rank())
	assert.Equal(t, 4, r.SmallestFullRank(), "rank 2 < min(3,3) ⇒ nCols+1")

	requireInvariants(t, r, []uint64{0b011, 0b110, 0b101}, 3)
}

// TestReducer_AddRowProperty stacks random rows and checks all invariants
// after every mutation (reducer idempotence + ops identity).
func TestReducer_AddRowProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		nCols := 1 + rng.Intn(12)
		r, err := gf2.NewReducer(nCols)
		require.NoError(t, err)
		var orig []uint64
		for i := 0; i < 2*nCols; i++ {
			w := rng.Uint64() & (1<<uint(nCols) - 1)
			orig = append(orig, w)
			require.NoError(t, r.AddRow(rowSet(w, nCols)))
			requireInvariants(t, r, orig, nCols)
		}
	}
}

// TestReducer_ReplaceRowEquivalence is the replace-row contract: after any
// mix of AddRow and ReplaceRow, the reducer state equals the reduction of
// the literally substituted matrix.
func TestReducer_ReplaceRowEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	for trial := 0; trial < 60; trial++ {
		nCols := 2 + rng.Intn(10)
		nRows := 1 + rng.Intn(10)
		r, err := gf2.NewReducer(nCols)
		require.NoError(t, err)
		orig := make([]uint64, 0, nRows)
		for i := 0; i < nRows; i++ {
			w := rng.Uint64() & (1<<uint(nCols) - 1)
			orig = append(orig, w)
			require.NoError(t, r.AddRow(rowSet(w, nCols)))
		}
		for step := 0; step < 3*nRows; step++ {
			i := rng.Intn(nRows)
			w := rng.Uint64() & (1<<uint(nCols) - 1)
			orig[i] = w
			require.NoError(t, r.ReplaceRow(i, rowSet(w, nCols)))
			requireInvariants(t, r, orig, nCols)
		}
	}
}

// TestReducer_ReplaceRowBounds rejects indices beyond the stacked rows.
func TestReducer_ReplaceRowBounds(t *testing.T) {
	r, err := gf2.NewReducer(2)
	require.NoError(t, err)
	require.NoError(t, r.AddRow(rowSet(0b01, 2)))
	assert.ErrorIs(t, r.ReplaceRow(1, rowSet(0b10, 2)), gf2.ErrOutOfBounds)
	assert.ErrorIs(t, r.ReplaceRow(-1, rowSet(0b10, 2)), gf2.ErrOutOfBounds)
}

// TestReducer_AddColumn grows the width and promotes a pivot-free row.
func TestReducer_AddColumn(t *testing.T) {
	r, err := gf2.NewReducer(2)
	require.NoError(t, err)
	require.NoError(t, r.AddRow(rowSet(0b11, 2)))
	require.NoError(t, r.AddRow(rowSet(0b11, 2)))
	require.Equal(t, 1, r.Rank(), "identical rows")

	// New column distinguishes the two rows: bit 1 set ⇒ entry for row 1.
	col := bitset.New(2)
	col.Set(1)
	require.NoError(t, r.AddColumn(col))

	assert.Equal(t, 3, r.NumCols())
	assert.Equal(t, 2, r.Rank(), "second row must be promoted")
	requireInvariants(t, r, []uint64{0b011, 0b111}, 3)
}

// TestReducer_SmallestFullRank pins the column-count semantics.
func TestReducer_SmallestFullRank(t *testing.T) {
	r, err := gf2.NewReducer(3)
	require.NoError(t, err)

	require.NoError(t, r.AddRow(rowSet(0b001, 3)))
	assert.Equal(t, 1, r.SmallestFullRank(), "e1 alone is full rank on 1 column")

	require.NoError(t, r.AddRow(rowSet(0b010, 3)))
	assert.Equal(t, 2, r.SmallestFullRank())

	require.NoError(t, r.AddRow(rowSet(0b100, 3)))
	assert.Equal(t, 3, r.SmallestFullRank())

	require.NoError(t, r.ReplaceRow(2, rowSet(0b011, 3)))
	assert.Equal(t, 4, r.SmallestFullRank(), "dependent third row ⇒ nCols+1")
}

// TestReducer_ComputeRanks checks the per-column-count rank profile.
func TestReducer_ComputeRanks(t *testing.T) {
	r, err := gf2.NewReducer(4)
	require.NoError(t, err)
	require.NoError(t, r.AddRow(rowSet(0b0010, 4)))
	require.NoError(t, r.AddRow(rowSet(0b1100, 4)))

	ranks, err := r.ComputeRanks(0, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 2}, ranks)

	_, err = r.ComputeRanks(2, 4)
	assert.ErrorIs(t, err, gf2.ErrOutOfBounds)
}

// TestIsInvertible distinguishes singular, non-square and regular matrices.
func TestIsInvertible(t *testing.T) {
	assert.True(t, gf2.IsInvertible(gf2.Identity(4)))

	m, err := gf2.FromRows(2, []uint64{0b11, 0b11})
	require.NoError(t, err)
	assert.False(t, gf2.IsInvertible(m), "repeated rows are singular")

	m, err = gf2.FromRows(3, []uint64{0b111, 0b001})
	require.NoError(t, err)
	assert.False(t, gf2.IsInvertible(m), "non-square is never invertible")

	m, err = gf2.FromRows(2, []uint64{0b10, 0b11})
	require.NoError(t, err)
	assert.True(t, gf2.IsInvertible(m))
}
