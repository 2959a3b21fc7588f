package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowdisc/lowdisc/kernel"
)

// TestPAlpha_ClosedForm pins ω₂(x) = 2π²(x² − x + 1/6).
func TestPAlpha_ClosedForm(t *testing.T) {
	k, err := kernel.NewPAlpha(2)
	require.NoError(t, err)

	twoPi2 := 2 * math.Pi * math.Pi
	for _, x := range []float64{0, 0.25, 0.5, 0.75, 0.9} {
		want := twoPi2 * (x*x - x + 1.0/6.0)
		assert.InDelta(t, want, k.Eval(x), 1e-12, "x=%g", x)
	}
	assert.Equal(t, 2.0, k.CUPower())
	assert.Equal(t, "P2", k.Name())
}

// TestPAlpha_MeanZero: ∫₀¹ ω_α = 0 for every supported α, checked by a
// trapezoid sum fine enough for the polynomial degrees involved.
func TestPAlpha_MeanZero(t *testing.T) {
	for _, alpha := range []int{2, 4, 6, 8} {
		k, err := kernel.NewPAlpha(alpha)
		require.NoError(t, err)
		const n = 200000
		sum := 0.0
		for i := 0; i <= n; i++ {
			x := float64(i) / n
			w := 1.0
			if i == 0 || i == n {
				w = 0.5
			}
			sum += w * k.Eval(x)
		}
		assert.InDelta(t, 0, sum/n, 1e-6, "alpha=%d", alpha)
	}
}

// TestPAlpha_Domain rejects odd and oversized α.
func TestPAlpha_Domain(t *testing.T) {
	for _, alpha := range []int{0, 1, 3, 5, 10} {
		_, err := kernel.NewPAlpha(alpha)
		assert.ErrorIs(t, err, kernel.ErrDomain, "alpha=%d", alpha)
	}
}

// TestBAlpha_Shape: piecewise-constant on dyadic shells, maximal at 0.
func TestBAlpha_Shape(t *testing.T) {
	k, err := kernel.NewBAlpha(2)
	require.NoError(t, err)

	// Same shell ⇒ same value.
	assert.Equal(t, k.Eval(0.26), k.Eval(0.4), "both in [2^-2, 2^-1)")
	assert.NotEqual(t, k.Eval(0.2), k.Eval(0.3), "different shells differ")

	// ω(0) is the positive extreme; deep shells approach it.
	assert.Greater(t, k.Eval(0), k.Eval(0.5))
	assert.InDelta(t, k.Eval(0), k.Eval(math.Pow(2, -40)), 1e-10)

	_, err = kernel.NewBAlpha(1)
	assert.ErrorIs(t, err, kernel.ErrDomain)
}

// TestIAAlpha_MinRule: the effective exponent is min(α, d).
func TestIAAlpha_MinRule(t *testing.T) {
	big, err := kernel.NewIAAlpha(5, 2)
	require.NoError(t, err)
	small, err := kernel.NewIAAlpha(2, 2)
	require.NoError(t, err)

	// With the same min(α,d) = 2, only the 2^{(α+2)/2} denominator differs.
	ratio := small.Eval(0.3) / big.Eval(0.3)
	wantRatio := math.Sqrt(math.Pow(2, 7)) / math.Sqrt(math.Pow(2, 4))
	assert.InDelta(t, wantRatio, ratio, 1e-12)

	_, err = kernel.NewIAAlpha(1, 2)
	assert.ErrorIs(t, err, kernel.ErrDomain)
	_, err = kernel.NewIAAlpha(2, 1)
	assert.ErrorIs(t, err, kernel.ErrDomain)
}
