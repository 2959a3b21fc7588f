package search

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// circularCorrelation returns s with s[v] = Σ_u a[(u+v) mod N]·b[u], the
// cross-correlation that scores every CBC candidate at once when points and
// candidates are both laid out as generator powers. Computed through real
// FFTs in O(N log N).
func circularCorrelation(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: correlation operands of unequal length", ErrConfiguration)
	}
	n := len(a)
	if n == 0 {
		return nil, nil
	}
	fft := fourier.NewFFT(n)
	ca := fft.Coefficients(nil, a)
	cb := fft.Coefficients(nil, b)
	for k := range ca {
		ca[k] *= cmplx.Conj(cb[k])
	}
	out := fft.Sequence(nil, ca)
	for i := range out {
		out[i] /= float64(n)
	}

	return out, nil
}
