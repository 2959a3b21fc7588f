// Package kernel provides the one-dimensional merit kernels used by
// coordinate-uniform figures of merit.
//
// A kernel ω maps a point coordinate x ∈ [0,1) to a real contribution; the
// figure accumulates Π_{j∈P} ω(x_{i,j}) over points i and projections P.
// Three kernels are provided: Pα (the classic weighted spectral kernel with
// its Bernoulli-polynomial closed form, even α), and the dyadic kernels Bα
// and interlaced IAα whose value depends on ⌊log₂ x⌋ only.
//
// Parameter validation happens at construction: kernels with α outside their
// domain are never built, so Eval itself is total on [0,1).
package kernel

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain indicates a kernel parameter outside its mathematical domain.
var ErrDomain = errors.New("kernel: parameter out of domain")

// Kernel is a one-dimensional merit function on [0,1).
type Kernel interface {
	// Eval returns ω(x).
	Eval(x float64) float64

	// Name identifies the kernel with its parameters.
	Name() string

	// CUPower is the exponent relating the accumulated kernel sum to the
	// natural norm of the figure (2 for Pα, 1 for the dyadic kernels).
	CUPower() float64
}

// PAlpha is the Pα kernel ω(x) = −(−4π²)^{α/2}·B_α(x)/α! for even α, where
// B_α is the Bernoulli polynomial of degree α.
type PAlpha struct {
	alpha int
	coeff float64
}

// NewPAlpha builds the Pα kernel. α must be even and between 2 and 8.
func NewPAlpha(alpha int) (*PAlpha, error) {
	if alpha < 2 || alpha%2 != 0 {
		return nil, fmt.Errorf("%w: P-alpha requires an even alpha ≥ 2, got %d", ErrDomain, alpha)
	}
	if alpha > 8 {
		return nil, fmt.Errorf("%w: P-alpha closed form implemented for alpha ≤ 8, got %d", ErrDomain, alpha)
	}
	// −(−4π²)^{α/2}/α! — positive for α ≡ 2 (mod 4), negative sign folds in.
	half := alpha / 2
	coeff := -math.Pow(-4*math.Pi*math.Pi, float64(half))
	for f := 2; f <= alpha; f++ {
		coeff /= float64(f)
	}

	return &PAlpha{alpha: alpha, coeff: coeff}, nil
}

// Alpha returns the smoothness parameter.
func (k *PAlpha) Alpha() int { return k.alpha }

// Eval implements Kernel.
func (k *PAlpha) Eval(x float64) float64 { return k.coeff * bernoulli(k.alpha, x) }

// Name implements Kernel.
func (k *PAlpha) Name() string { return fmt.Sprintf("P%d", k.alpha) }

// CUPower implements Kernel.
func (k *PAlpha) CUPower() float64 { return 2 }

// bernoulli evaluates the Bernoulli polynomial B_n at x for the even
// degrees used by Pα.
func bernoulli(n int, x float64) float64 {
	x2 := x * x
	switch n {
	case 2:
		return x2 - x + 1.0/6.0
	case 4:
		return x2*x2 - 2*x2*x + x2 - 1.0/30.0
	case 6:
		x4 := x2 * x2
		return x4*x2 - 3*x4*x + 2.5*x4 - 0.5*x2 + 1.0/42.0
	case 8:
		x4 := x2 * x2
		return x4*x4 - 4*x4*x2*x + 14.0/3.0*x4*x2 - 7.0/3.0*x4 + 2.0/3.0*x2 - 1.0/30.0
	}

	return math.NaN()
}

// BAlpha is the dyadic kernel
//
//	ω(x) = (1 − (2^α − 1)·2^{(α−1)⌊log₂ x⌋}) / (2^{(α+2)/2}·(2^{α−1} − 1))
//
// with the convention 2^{⌊log₂ 0⌋} = 0, so ω(0) is the reciprocal of the
// denominator.
type BAlpha struct {
	alpha int
	denom float64
}

// NewBAlpha builds the Bα kernel; α must exceed 1.
func NewBAlpha(alpha int) (*BAlpha, error) {
	if alpha < 2 {
		return nil, fmt.Errorf("%w: B-alpha requires alpha > 1, got %d", ErrDomain, alpha)
	}
	denom := math.Sqrt(math.Pow(2, float64(alpha+2))) * (math.Pow(2, float64(alpha-1)) - 1)

	return &BAlpha{alpha: alpha, denom: denom}, nil
}

// Alpha returns the smoothness parameter.
func (k *BAlpha) Alpha() int { return k.alpha }

// Eval implements Kernel.
func (k *BAlpha) Eval(x float64) float64 {
	return dyadicKernel(x, k.alpha, k.denom)
}

// Name implements Kernel.
func (k *BAlpha) Name() string { return fmt.Sprintf("B%d", k.alpha) }

// CUPower implements Kernel.
func (k *BAlpha) CUPower() float64 { return 1 }

// IAAlpha is the interlaced Aα kernel with interlacing factor d:
//
//	ω(x) = (1 − (2^m − 1)·2^{(m−1)⌊log₂ x⌋}) / (2^{(α+2)/2}·(2^{m−1} − 1))
//
// with m = min(α, d), again reading 2^{⌊log₂ 0⌋} as 0.
type IAAlpha struct {
	alpha int
	d     int
	min   int
	denom float64
}

// NewIAAlpha builds the IAα kernel; both α and the interlacing factor d
// must exceed 1.
func NewIAAlpha(alpha, d int) (*IAAlpha, error) {
	if alpha < 2 {
		return nil, fmt.Errorf("%w: interlaced A-alpha requires alpha > 1, got %d", ErrDomain, alpha)
	}
	if d < 2 {
		return nil, fmt.Errorf("%w: interlaced A-alpha requires interlacing factor > 1, got %d", ErrDomain, d)
	}
	m := alpha
	if d < m {
		m = d
	}
	denom := math.Sqrt(math.Pow(2, float64(alpha+2))) * (math.Pow(2, float64(m-1)) - 1)

	return &IAAlpha{alpha: alpha, d: d, min: m, denom: denom}, nil
}

// Alpha returns the smoothness parameter.
func (k *IAAlpha) Alpha() int { return k.alpha }

// InterlacingFactor returns d.
func (k *IAAlpha) InterlacingFactor() int { return k.d }

// Eval implements Kernel.
func (k *IAAlpha) Eval(x float64) float64 {
	return dyadicKernel(x, k.min, k.denom)
}

// Name implements Kernel.
func (k *IAAlpha) Name() string {
	return fmt.Sprintf("IA%d (interlacing %d)", k.alpha, k.d)
}

// CUPower implements Kernel.
func (k *IAAlpha) CUPower() float64 { return 1 }

// dyadicKernel evaluates (1 − (2^m − 1)·2^{(m−1)⌊log₂ x⌋}) / denom, with the
// x = 0 limit reading the power term as zero.
func dyadicKernel(x float64, m int, denom float64) float64 {
	const eps = 0x1p-52
	if x < eps {
		return 1 / denom
	}
	logTerm := math.Floor(math.Log2(x))

	return (1 - (math.Pow(2, float64(m))-1)*math.Pow(2, float64(m-1)*logTerm)) / denom
}
