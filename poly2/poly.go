package poly2

import (
	"errors"
	"math/bits"
	"strconv"
	"strings"
)

// ErrZeroModulus indicates a division or reduction by the zero polynomial.
var ErrZeroModulus = errors.New("poly2: zero modulus")

// Poly is a polynomial over GF(2); bit i is the coefficient of x^i.
type Poly uint64

// Handy constants.
const (
	Zero Poly = 0
	One  Poly = 1
	X    Poly = 2
)

// FromInt reinterprets the binary digits of v as polynomial coefficients.
func FromInt(v uint64) Poly { return Poly(v) }

// Deg returns the degree of p, with Deg(0) = −1.
func (p Poly) Deg() int { return bits.Len64(uint64(p)) - 1 }

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool { return p == 0 }

// Add returns p + q (coefficient-wise XOR).
func (p Poly) Add(q Poly) Poly { return p ^ q }

// Mul returns the carry-less product p·q.
// The caller must keep Deg(p)+Deg(q) ≤ 63.
func (p Poly) Mul(q Poly) Poly {
	var acc Poly
	for q != 0 {
		if q&1 == 1 {
			acc ^= p
		}
		p <<= 1
		q >>= 1
	}

	return acc
}

// DivMod returns the quotient and remainder of p divided by m.
func (p Poly) DivMod(m Poly) (quo, rem Poly, err error) {
	if m == 0 {
		return 0, 0, ErrZeroModulus
	}
	dm := m.Deg()
	rem = p
	for rem.Deg() >= dm {
		shift := uint(rem.Deg() - dm)
		quo ^= 1 << shift
		rem ^= m << shift
	}

	return quo, rem, nil
}

// Mod returns p reduced modulo m.
func (p Poly) Mod(m Poly) (Poly, error) {
	_, rem, err := p.DivMod(m)

	return rem, err
}

// GCD returns the greatest common divisor of p and q.
func GCD(p, q Poly) Poly {
	for q != 0 {
		_, rem, _ := p.DivMod(q)
		p, q = q, rem
	}

	return p
}

// MulMod returns p·q mod m.
func MulMod(p, q, m Poly) (Poly, error) {
	if m == 0 {
		return 0, ErrZeroModulus
	}
	dm := m.Deg()
	var acc Poly
	pm, _ := p.Mod(m)
	for q != 0 {
		if q&1 == 1 {
			acc ^= pm
		}
		pm <<= 1
		if pm.Deg() == dm {
			pm ^= m
		}
		q >>= 1
	}

	return acc.Mod(m)
}

// PowMod returns p^e mod m by square-and-multiply.
func PowMod(p Poly, e uint64, m Poly) (Poly, error) {
	if m == 0 {
		return 0, ErrZeroModulus
	}
	acc := One
	base, _ := p.Mod(m)
	for e > 0 {
		if e&1 == 1 {
			var err error
			if acc, err = MulMod(acc, base, m); err != nil {
				return 0, err
			}
		}
		var err error
		if base, err = MulMod(base, base, m); err != nil {
			return 0, err
		}
		e >>= 1
	}

	return acc, nil
}

// IsIrreducible reports whether p is irreducible over GF(2), using the
// Rabin criterion: x^(2^d) ≡ x (mod p) and, for every prime divisor r of d,
// gcd(x^(2^(d/r)) − x, p) = 1.
func (p Poly) IsIrreducible() bool {
	d := p.Deg()
	if d < 1 {
		return false
	}
	if d == 1 {
		return true
	}
	if p&1 == 0 {
		// Divisible by x.
		return false
	}
	frob := func(steps int) Poly {
		// x^(2^steps) mod p via repeated squaring of x.
		acc := X
		for i := 0; i < steps; i++ {
			acc, _ = MulMod(acc, acc, p)
		}

		return acc
	}
	if frob(d) != X {
		return false
	}
	for _, r := range primeFactors(uint64(d)) {
		if GCD(frob(d/int(r)).Add(X), p).Deg() > 0 {
			return false
		}
	}

	return true
}

// IsPrimitive reports whether p is a primitive polynomial over GF(2):
// irreducible with x generating the full multiplicative group of order
// 2^d − 1 in GF(2)[x]/p.
func (p Poly) IsPrimitive() bool {
	if !p.IsIrreducible() {
		return false
	}
	d := p.Deg()
	if d == 1 {
		// x and x+1; only x+1 has a unit residue for x.
		return p == 3
	}
	order := uint64(1)<<uint(d) - 1
	for _, r := range primeFactors(order) {
		pow, _ := PowMod(X, order/r, p)
		if pow == One {
			return false
		}
	}

	return true
}

// Expand returns the first n digits u₁, u₂, … of the formal Laurent series
// q/p = Σ u_l x^(−l). Deg(q) must be below Deg(p).
func Expand(q, p Poly, n int) ([]uint8, error) {
	if p == 0 {
		return nil, ErrZeroModulus
	}
	d := p.Deg()
	digits := make([]uint8, n)
	rem, _ := q.Mod(p)
	for l := 0; l < n; l++ {
		rem <<= 1
		if rem.Deg() == d {
			digits[l] = 1
			rem ^= p
		}
	}

	return digits, nil
}

// String formats p in the conventional monomial notation, e.g. "x^3 + x + 1".
func (p Poly) String() string {
	if p == 0 {
		return "0"
	}
	var terms []string
	for d := p.Deg(); d >= 0; d-- {
		if p>>uint(d)&1 == 0 {
			continue
		}
		switch d {
		case 0:
			terms = append(terms, "1")
		case 1:
			terms = append(terms, "x")
		default:
			terms = append(terms, "x^"+strconv.Itoa(d))
		}
	}

	return strings.Join(terms, " + ")
}

// primeFactors returns the distinct prime factors of v by trial division.
func primeFactors(v uint64) []uint64 {
	var fs []uint64
	for f := uint64(2); f*f <= v; f++ {
		if v%f != 0 {
			continue
		}
		fs = append(fs, f)
		for v%f == 0 {
			v /= f
		}
	}
	if v > 1 {
		fs = append(fs, v)
	}

	return fs
}
