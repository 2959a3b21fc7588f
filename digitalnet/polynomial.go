package digitalnet

import (
	"fmt"
	"math/rand"

	"github.com/lowdisc/lowdisc/gf2"
	"github.com/lowdisc/lowdisc/poly2"
)

// Polynomial is the polynomial lattice construction over GF(2)[x]: the size
// parameter is a modulus P(x) of degree m, a coordinate is generated by a
// polynomial q with deg(q) < m and gcd(q, P) = 1, and the generating matrix
// holds the Laurent digits of q/P in Hankel arrangement.
type Polynomial struct {
	modulus poly2.Poly
}

// NewPolynomial returns the polynomial lattice construction with modulus P.
func NewPolynomial(modulus poly2.Poly) (*Polynomial, error) {
	if modulus.Deg() < 1 {
		return nil, fmt.Errorf("%w: modulus must have positive degree", ErrBadGenValue)
	}

	return &Polynomial{modulus: modulus}, nil
}

// Modulus returns the size parameter P(x).
func (p *Polynomial) Modulus() poly2.Poly { return p.modulus }

// Name implements Construction.
func (p *Polynomial) Name() string { return "polynomial" }

// NumRows implements Construction.
func (p *Polynomial) NumRows() int { return p.modulus.Deg() }

// NumCols implements Construction.
func (p *Polynomial) NumCols() int { return p.modulus.Deg() }

// SpecialFirstCoordinate implements Construction.
func (p *Polynomial) SpecialFirstCoordinate() bool { return true }

// CheckValue implements Construction.
func (p *Polynomial) CheckValue(coord int, v GenValue) error {
	q, ok := v.(poly2.Poly)
	if !ok {
		return fmt.Errorf("%w: expected a polynomial, got %T", ErrBadGenValue, v)
	}
	if coord == 0 {
		if q != poly2.One {
			return fmt.Errorf("%w: coordinate 0 admits the single value 1", ErrBadGenValue)
		}

		return nil
	}
	if q.IsZero() || q.Deg() >= p.modulus.Deg() {
		return fmt.Errorf("%w: generating polynomial %v out of range for modulus %v", ErrBadGenValue, q, p.modulus)
	}
	if poly2.GCD(q, p.modulus) != poly2.One {
		return fmt.Errorf("%w: %v shares a factor with the modulus %v", ErrBadGenValue, q, p.modulus)
	}

	return nil
}

// Matrix implements Construction: entry (r, c) is digit r+c+1 of the
// expansion q/P, the Hankel arrangement of the first 2m−1 Laurent digits.
func (p *Polynomial) Matrix(coord int, v GenValue) (*gf2.Matrix, error) {
	if err := p.CheckValue(coord, v); err != nil {
		return nil, err
	}
	q := v.(poly2.Poly)
	m := p.modulus.Deg()
	digits, err := poly2.Expand(q, p.modulus, 2*m-1)
	if err != nil {
		return nil, err
	}
	mat, err := gf2.NewMatrix(m, m)
	if err != nil {
		return nil, err
	}
	for r := 0; r < m; r++ {
		for c := 0; c < m; c++ {
			if digits[r+c] == 1 {
				_ = mat.SetBit(r, c, true)
			}
		}
	}

	return mat, nil
}

// ValueSpace implements Construction: coordinate 0 is pinned to 1; later
// coordinates run through the residues coprime to the modulus in increasing
// integer encoding.
func (p *Polynomial) ValueSpace(coord int) (ValueSeq, error) {
	if coord == 0 {
		return &sliceSeq{values: []GenValue{poly2.One}}, nil
	}
	var units []GenValue
	for enc := uint64(1); enc < 1<<uint(p.modulus.Deg()); enc++ {
		q := poly2.FromInt(enc)
		if poly2.GCD(q, p.modulus) == poly2.One {
			units = append(units, q)
		}
	}

	return &sliceSeq{values: units}, nil
}

// Random implements Construction: uniform over the units by rejection.
func (p *Polynomial) Random(coord int, rng *rand.Rand) (GenValue, error) {
	if coord == 0 {
		return poly2.One, nil
	}
	bound := int64(1) << uint(p.modulus.Deg())
	for {
		q := poly2.FromInt(uint64(rng.Int63n(bound-1)) + 1)
		if poly2.GCD(q, p.modulus) == poly2.One {
			return q, nil
		}
	}
}

// FormatValue implements Construction: the integer encoding of the
// generating polynomial.
func (p *Polynomial) FormatValue(v GenValue) string {
	q, ok := v.(poly2.Poly)
	if !ok {
		return v.String()
	}

	return fmt.Sprintf("%d", uint64(q))
}
