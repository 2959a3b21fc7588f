package figures

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/lowdisc/lowdisc/weights"
)

// PAlphaSL10 is the closed-form bound on the best achievable Pα merit of a
// rank-1 lattice (Sinescu & L'Ecuyer 2010): a weighted sum over projections
// with one specialization per weight shape, minimized over the tuning
// parameter λ ∈ (1/α, 1]. Search drivers use it to prune candidates.
type PAlphaSL10 struct {
	alpha    int
	w        weights.Weights
	normType float64
}

// NewPAlphaSL10 builds the bound; weights are assumed to already carry the
// normType power.
func NewPAlphaSL10(alpha int, w weights.Weights, normType float64) (*PAlphaSL10, error) {
	if alpha < 2 {
		return nil, fmt.Errorf("%w: P-alpha bound needs alpha > 1", ErrConfiguration)
	}
	if err := checkNorm(normType); err != nil {
		return nil, err
	}

	return &PAlphaSL10{alpha: alpha, w: w, normType: normType}, nil
}

// Value evaluates the bound at a fixed λ for a point count given by its
// totient (the number of admissible generator values) and a dimension.
func (b *PAlphaSL10) Value(lambda float64, totient uint64, dimension int) (float64, error) {
	if lambda*float64(b.alpha) <= 1 || lambda > 1 {
		return 0, fmt.Errorf("%w: lambda must lie in (1/alpha, 1]", ErrConfiguration)
	}
	norm := 1.0 / float64(totient)
	z := 2 * mathext.Zeta(float64(b.alpha)*lambda, 1)
	val, err := sumHelper(b.w, b.normType, z, lambda, dimension)
	if err != nil {
		return 0, err
	}

	return math.Pow(norm*val, 1/lambda), nil
}

// Bound minimizes Value over a λ grid.
func (b *PAlphaSL10) Bound(totient uint64, dimension int) (float64, error) {
	const steps = 100
	lo := 1.0/float64(b.alpha) + 1e-3
	best := math.Inf(1)
	for i := 0; i <= steps; i++ {
		lambda := lo + (1-lo)*float64(i)/steps
		v, err := b.Value(lambda, totient, dimension)
		if err != nil {
			return 0, err
		}
		if v < best {
			best = v
		}
	}

	return best, nil
}

// sumHelper dispatches the per-shape weighted sum. Weights are assumed to
// be raised to the power normType already; the exponent λ·2/normType maps
// them back to the power-2 convention of the closed form.
func sumHelper(w weights.Weights, normType, z, lambda float64, dimension int) (float64, error) {
	exponent := lambda * 2 / normType
	switch sw := w.(type) {
	case *weights.ProjectionDependent:
		val := 0.0
		for _, proj := range sw.Projections() {
			if weight := sw.Weight(proj); weight > 0 {
				val += math.Pow(z, float64(len(proj))) * math.Pow(weight, exponent)
			}
		}

		return val, nil

	case *weights.OrderDependent:
		val := 0.0
		cumul := 1.0
		for order := 1; order <= dimension; order++ {
			weight := sw.ForOrder(order)
			cumul *= float64(dimension-order+1) * z / float64(order)
			if weight > 0 {
				val += cumul * math.Pow(weight, exponent)
			}
		}

		return val, nil

	case *weights.Product:
		val := 1.0
		for coord := 0; coord < dimension; coord++ {
			if weight := sw.ForCoordinate(coord); weight > 0 {
				val *= 1 + z*math.Pow(weight, exponent)
			}
		}

		return val - 1, nil

	case *weights.POD:
		states := make([]float64, 1, dimension+1)
		states[0] = 1
		for s := 1; s <= dimension; s++ {
			pweight := math.Pow(sw.Prod.ForCoordinate(s-1), exponent)
			states = append(states, 0)
			for order := len(states) - 1; order > 0; order-- {
				states[order] += z * pweight * states[order-1]
			}
		}
		val := 0.0
		for order := 1; order <= dimension; order++ {
			val += math.Pow(sw.Order.ForOrder(order), exponent) * states[order]
		}

		return val, nil

	case *weights.Combined:
		val := 0.0
		for _, sub := range sw.List {
			v, err := sumHelper(sub, normType, z, lambda, dimension)
			if err != nil {
				return 0, err
			}
			val += v
		}

		return val, nil

	case *weights.Scaled:
		// Fall back to explicit enumeration over projections.
		return genericSum(sw, z, exponent, dimension), nil

	default:
		return 0, fmt.Errorf("%w: weight shape %T", ErrConfiguration, w)
	}
}

// genericSum enumerates every projection of the coordinate range — the
// default implementation used for shapes without a specialization.
func genericSum(w weights.Weights, z, exponent float64, dimension int) float64 {
	val := 0.0
	for order := 1; order <= dimension; order++ {
		for _, proj := range combin.Combinations(dimension, order) {
			if weight := w.Weight(proj); weight > 0 {
				val += math.Pow(z, float64(order)) * math.Pow(weight, exponent)
			}
		}
	}

	return val
}
