package lattice_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowdisc/lowdisc/lattice"
	"github.com/lowdisc/lowdisc/poly2"
)

// TestOrdinary_CoordValues pins x_i = (i·a mod n)/n.
func TestOrdinary_CoordValues(t *testing.T) {
	l, err := lattice.NewOrdinary(5, []uint64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, l.Dimension())
	assert.Equal(t, uint64(5), l.NumPoints())

	xs, err := l.CoordValues(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.2, 0.4, 0.6, 0.8}, xs)

	xs, err = l.CoordValues(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.4, 0.8, 0.2, 0.6}, xs)

	_, err = l.CoordValues(2)
	assert.ErrorIs(t, err, lattice.ErrCoordinate)
}

// TestOrdinary_Validation rejects non-units and tiny moduli.
func TestOrdinary_Validation(t *testing.T) {
	_, err := lattice.NewOrdinary(1, nil)
	assert.ErrorIs(t, err, lattice.ErrModulus)

	_, err = lattice.NewOrdinary(6, []uint64{3})
	assert.ErrorIs(t, err, lattice.ErrBadGenerator, "gcd(3,6) ≠ 1")

	_, err = lattice.NewOrdinary(6, []uint64{0})
	assert.ErrorIs(t, err, lattice.ErrBadGenerator)

	l, err := lattice.NewOrdinary(6, []uint64{1, 5})
	require.NoError(t, err)
	_, err = l.Extend(4)
	assert.ErrorIs(t, err, lattice.ErrBadGenerator)
	ext, err := l.Extend(5)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 5, 5}, ext.Generator())
	assert.Equal(t, 2, l.Dimension(), "parent unchanged")
}

// TestRule_ValueSpace: units in increasing order, coordinate 0 pinned.
func TestRule_ValueSpace(t *testing.T) {
	r, err := lattice.NewRule(8)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, r.ValueSpace(0))
	assert.Equal(t, []uint64{1, 3, 5, 7}, r.ValueSpace(1))

	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 30; i++ {
		a := r.Random(1, rng)
		assert.Contains(t, []uint64{1, 3, 5, 7}, a)
	}
}

// TestCyclicZ: the group of Z_7 is generated by 3: 1,3,2,6,4,5.
func TestCyclicZ(t *testing.T) {
	g, err := lattice.CyclicZ(7)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), g.Order())
	assert.Equal(t, []uint64{1, 3, 2, 6, 4, 5}, g.Elements())
	assert.Equal(t, uint64(6), g.Element(3))
	assert.Equal(t, uint64(1), g.Element(6), "wraps around")

	_, err = lattice.CyclicZ(8)
	assert.ErrorIs(t, err, lattice.ErrNotCyclic)
}

// TestCyclicGF2: GF(8)* under x³+x+1 is one 7-cycle; x generates it.
func TestCyclicGF2(t *testing.T) {
	g, err := lattice.CyclicGF2(poly2.FromInt(11))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), g.Order())

	elems := g.Elements()
	require.Len(t, elems, 7)
	assert.Equal(t, uint64(1), elems[0])
	seen := map[uint64]bool{}
	for _, e := range elems {
		assert.Positive(t, e)
		assert.Less(t, e, uint64(8))
		assert.False(t, seen[e], "elements must be distinct")
		seen[e] = true
	}

	_, err = lattice.CyclicGF2(poly2.FromInt(0b1001))
	assert.ErrorIs(t, err, lattice.ErrNotCyclic, "x³+1 is reducible")
}
