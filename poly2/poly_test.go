package poly2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowdisc/lowdisc/poly2"
)

// TestPoly_DegAndString covers the integer encoding.
func TestPoly_DegAndString(t *testing.T) {
	assert.Equal(t, -1, poly2.Zero.Deg())
	assert.Equal(t, 0, poly2.One.Deg())
	assert.Equal(t, 1, poly2.X.Deg())

	p := poly2.FromInt(13) // 13 = 0b1101 = x^3 + x^2 + 1
	assert.Equal(t, 3, p.Deg())
	assert.Equal(t, "x^3 + x^2 + 1", p.String())
	assert.Equal(t, "0", poly2.Zero.String())
	assert.Equal(t, "x + 1", poly2.FromInt(3).String())
}

// TestPoly_MulDivMod verifies ring arithmetic round-trips.
func TestPoly_MulDivMod(t *testing.T) {
	a := poly2.FromInt(0b110) // x^2 + x
	b := poly2.FromInt(0b101) // x^2 + 1
	prod := a.Mul(b)
	assert.Equal(t, poly2.FromInt(0b11110), prod, "(x^2+x)(x^2+1) = x^4+x^3+x^2+x")

	quo, rem, err := prod.DivMod(a)
	require.NoError(t, err)
	assert.Equal(t, b, quo)
	assert.True(t, rem.IsZero())

	_, _, err = prod.DivMod(poly2.Zero)
	assert.ErrorIs(t, err, poly2.ErrZeroModulus)

	m := poly2.FromInt(7) // x^2 + x + 1
	r, err := poly2.FromInt(0b1000).Mod(m)
	require.NoError(t, err)
	assert.Equal(t, poly2.One, r, "x^3 ≡ 1 mod x^2+x+1")
}

// TestPoly_GCD exercises coprime and shared-factor pairs.
func TestPoly_GCD(t *testing.T) {
	p := poly2.FromInt(7) // irreducible
	q := poly2.FromInt(2) // x
	assert.Equal(t, poly2.One, poly2.GCD(p, q))

	// Both divisible by x+1: x^2+1 = (x+1)^2.
	assert.Equal(t, poly2.FromInt(3), poly2.GCD(poly2.FromInt(0b101), poly2.FromInt(3)))
}

// TestPoly_PowMod checks Fermat behavior in GF(4).
func TestPoly_PowMod(t *testing.T) {
	m := poly2.FromInt(7) // GF(4)
	got, err := poly2.PowMod(poly2.X, 3, m)
	require.NoError(t, err)
	assert.Equal(t, poly2.One, got, "x has order 3 in GF(4)*")
}

// TestPoly_IsIrreducible walks small known cases.
func TestPoly_IsIrreducible(t *testing.T) {
	irreducible := []uint64{2, 3, 7, 11, 13, 19, 25, 31, 37}
	for _, v := range irreducible {
		assert.True(t, poly2.FromInt(v).IsIrreducible(), "%v must be irreducible", poly2.FromInt(v))
	}
	reducible := []uint64{0, 1, 4, 5, 6, 9, 15, 21, 27}
	for _, v := range reducible {
		assert.False(t, poly2.FromInt(v).IsIrreducible(), "%v must be reducible", poly2.FromInt(v))
	}
}

// TestPoly_IsPrimitive separates primitive from merely irreducible.
func TestPoly_IsPrimitive(t *testing.T) {
	// x^4+x^3+x^2+x+1 (31) is irreducible but x has order 5 < 15.
	assert.True(t, poly2.FromInt(31).IsIrreducible())
	assert.False(t, poly2.FromInt(31).IsPrimitive())

	primitive := []uint64{3, 7, 11, 13, 19, 25, 37}
	for _, v := range primitive {
		assert.True(t, poly2.FromInt(v).IsPrimitive(), "%v must be primitive", poly2.FromInt(v))
	}
}

// TestExpand pins the Laurent digits of 1/(x^2+x+1): the expansion of the
// inverse modulus has period 3: 0, 1, 1, 0, 1, 1, …
func TestExpand(t *testing.T) {
	digits, err := poly2.Expand(poly2.One, poly2.FromInt(7), 6)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 1, 1, 0, 1, 1}, digits)

	_, err = poly2.Expand(poly2.One, poly2.Zero, 3)
	assert.ErrorIs(t, err, poly2.ErrZeroModulus)
}
