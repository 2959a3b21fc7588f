package digitalnet

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/lowdisc/lowdisc/gf2"
)

// ExplicitValue wraps a generating matrix used directly as the per-
// coordinate value of the explicit construction.
type ExplicitValue struct {
	M *gf2.Matrix
}

func (v ExplicitValue) String() string {
	if v.M == nil {
		return "<nil>"
	}
	parts := make([]string, v.M.NumRows())
	for r := range parts {
		w, _ := v.M.RowWord(r)
		parts[r] = fmt.Sprintf("%d", w)
	}

	return strings.Join(parts, ",")
}

// Explicit is the construction whose generating values are the matrices
// themselves. The value space is far too large to enumerate, so only random
// exploration applies; sampling keeps the stacked rows linearly independent
// (unilevel) or forces a leading one per row (multilevel), matching how
// embedded nets stay regular on every prefix of columns.
type Explicit struct {
	nRows     int
	nCols     int
	embedding Embedding
}

// NewExplicit returns the explicit construction for nRows×nCols matrices.
// The unilevel sampler requires nRows ≤ nCols to keep full row rank
// reachable.
func NewExplicit(nRows, nCols int, embedding Embedding) (*Explicit, error) {
	if nRows < 1 || nCols < 1 || nCols > 63 {
		return nil, ErrDimension
	}
	if embedding == Unilevel && nRows > nCols {
		return nil, fmt.Errorf("%w: unilevel sampling needs nRows ≤ nCols", ErrDimension)
	}

	return &Explicit{nRows: nRows, nCols: nCols, embedding: embedding}, nil
}

// Name implements Construction.
func (e *Explicit) Name() string { return "explicit" }

// NumRows implements Construction.
func (e *Explicit) NumRows() int { return e.nRows }

// NumCols implements Construction.
func (e *Explicit) NumCols() int { return e.nCols }

// SpecialFirstCoordinate implements Construction.
func (e *Explicit) SpecialFirstCoordinate() bool { return false }

// CheckValue implements Construction.
func (e *Explicit) CheckValue(coord int, v GenValue) error {
	ev, ok := v.(ExplicitValue)
	if !ok {
		return fmt.Errorf("%w: expected ExplicitValue, got %T", ErrBadGenValue, v)
	}
	if ev.M == nil || ev.M.NumRows() != e.nRows || ev.M.NumCols() != e.nCols {
		return fmt.Errorf("%w: matrix shape must be %d×%d", ErrBadGenValue, e.nRows, e.nCols)
	}

	return nil
}

// Matrix implements Construction.
func (e *Explicit) Matrix(coord int, v GenValue) (*gf2.Matrix, error) {
	if err := e.CheckValue(coord, v); err != nil {
		return nil, err
	}

	return v.(ExplicitValue).M.Clone(), nil
}

// ValueSpace implements Construction; the explicit space is not enumerable.
func (e *Explicit) ValueSpace(coord int) (ValueSeq, error) {
	return nil, ErrNoValueSpace
}

// Random implements Construction.
func (e *Explicit) Random(coord int, rng *rand.Rand) (GenValue, error) {
	if e.embedding == Multilevel {
		return e.randomMultilevel(rng)
	}

	return e.randomUnilevel(rng)
}

// randomUnilevel draws rows uniformly, rejecting any row that would make
// the stack linearly dependent.
func (e *Explicit) randomUnilevel(rng *rand.Rand) (GenValue, error) {
	rows := make([]uint64, 0, e.nRows)
	red, err := gf2.NewReducer(e.nCols)
	if err != nil {
		return nil, err
	}
	mask := uint64(1)<<uint(e.nCols) - 1
	for len(rows) < e.nRows {
		w := rng.Uint64() & mask
		probe, err := gf2.FromRows(e.nCols, []uint64{w})
		if err != nil {
			return nil, err
		}
		row, _ := probe.Row(0)
		if err := red.AddRow(row); err != nil {
			return nil, err
		}
		if red.Rank() == len(rows)+1 {
			rows = append(rows, w)

			continue
		}
		// Dependent draw: restart the reducer without it.
		red, _ = gf2.NewReducer(e.nCols)
		for _, kept := range rows {
			m, _ := gf2.FromRows(e.nCols, []uint64{kept})
			r0, _ := m.Row(0)
			_ = red.AddRow(r0)
		}
	}
	mat, err := gf2.FromRows(e.nCols, rows)
	if err != nil {
		return nil, err
	}

	return ExplicitValue{M: mat}, nil
}

// randomMultilevel forces row i to read 2^i + (random multiple of 2^(i+1)):
// a one at column i, zeros before, free bits after, so every leading
// sub-matrix stays regular.
func (e *Explicit) randomMultilevel(rng *rand.Rand) (GenValue, error) {
	mask := uint64(1)<<uint(e.nCols) - 1
	rows := make([]uint64, e.nRows)
	for i := range rows {
		nb := rng.Uint64() & mask
		rows[i] = (1<<uint(i) | (nb - nb%(1<<uint(i+1)))) & mask
	}
	mat, err := gf2.FromRows(e.nCols, rows)
	if err != nil {
		return nil, err
	}

	return ExplicitValue{M: mat}, nil
}

// FormatValue implements Construction: rows as integers, space-separated.
func (e *Explicit) FormatValue(v GenValue) string {
	ev, ok := v.(ExplicitValue)
	if !ok {
		return v.String()
	}
	parts := make([]string, ev.M.NumRows())
	for r := range parts {
		w, _ := ev.M.RowWord(r)
		parts[r] = fmt.Sprintf("%d", w)
	}

	return strings.Join(parts, " ")
}
