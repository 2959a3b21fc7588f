package weights

import "fmt"

// MaxCard returns the largest projection order carrying a non-zero weight.
// This bounds projection enumeration inside figures of merit. For product
// weights the result is the 1-based index of the last non-zero γ_j, which
// exceeds that order when an earlier γ_j is zero (γ = (0, 1) yields 2).
//
// Shapes with a positive default weight have unbounded support and yield
// ErrInfiniteSupport; shapes outside the recognized taxonomy yield
// ErrUnsupportedWeights. For POD weights, the product part contributes its
// own bound only when it is finitely supported, mirroring the original
// dispatch.
func MaxCard(w Weights) (int, error) {
	switch sw := w.(type) {
	case *OrderDependent:
		if sw.DefaultWeight > 0 {
			return 0, fmt.Errorf("%w: %v", ErrInfiniteSupport, sw)
		}
		maxCard := 0
		for k := 1; k <= len(sw.Gammas); k++ {
			if sw.ForOrder(k) != 0 {
				maxCard = k
			}
		}

		return maxCard, nil

	case *Product:
		if sw.DefaultWeight > 0 {
			return 0, fmt.Errorf("%w: %v", ErrInfiniteSupport, sw)
		}
		maxCard := 0
		for j, gamma := range sw.Gammas {
			if gamma != 0 {
				maxCard = j + 1
			}
		}

		return maxCard, nil

	case *POD:
		maxOrder, err := MaxCard(sw.Order)
		if err != nil {
			return 0, err
		}
		maxProd, err := MaxCard(sw.Prod)
		if err != nil {
			// An unbounded product part leaves the order part in charge.
			return maxOrder, nil
		}
		if maxProd < maxOrder {
			return maxProd, nil
		}

		return maxOrder, nil

	case *ProjectionDependent:
		maxCard := 0
		for _, p := range sw.projs {
			if len(p) > maxCard {
				maxCard = len(p)
			}
		}

		return maxCard, nil

	case *Combined:
		maxCard := 0
		for _, sub := range sw.List {
			c, err := MaxCard(sub)
			if err != nil {
				return 0, err
			}
			if c > maxCard {
				maxCard = c
			}
		}

		return maxCard, nil

	case *Scaled:
		return MaxCard(sw.W)

	default:
		return 0, fmt.Errorf("%w: %T", ErrUnsupportedWeights, w)
	}
}
