package lattice

import (
	"fmt"
	"math"

	"github.com/lowdisc/lowdisc/poly2"
)

// Group is a cyclic unit group laid out as generator powers: Element(k) is
// g^k, so Element(u)·Element(v) = Element((u+v) mod Order). Fast-CBC relies
// on this layout to turn candidate evaluation into a circular convolution.
type Group struct {
	order uint64
	elems []uint64
}

// Order returns the group order.
func (g *Group) Order() uint64 { return g.order }

// Element returns g^k as a residue encoding.
func (g *Group) Element(k uint64) uint64 { return g.elems[k%g.order] }

// Elements returns all generator powers g^0 … g^(order−1) (copy).
func (g *Group) Elements() []uint64 { return append([]uint64(nil), g.elems...) }

// CyclicZ returns the unit group of Z_n as powers of its smallest primitive
// root. n must be prime; composite moduli (whose unit group may split into
// several cycles) are rejected with ErrNotCyclic.
func CyclicZ(n uint64) (*Group, error) {
	if n < 2 || !isPrime(n) {
		return nil, fmt.Errorf("%w: modulus %d is not prime", ErrNotCyclic, n)
	}
	order := n - 1
	factors := distinctPrimeFactors(order)
	for g := uint64(2); g < n; g++ {
		if isPrimitiveRoot(g, n, order, factors) {
			elems := make([]uint64, order)
			acc := uint64(1)
			for k := range elems {
				elems[k] = acc
				acc = acc * g % n
			}

			return &Group{order: order, elems: elems}, nil
		}
	}

	return nil, fmt.Errorf("%w: modulus %d", ErrNotCyclic, n)
}

// CyclicGF2 returns the multiplicative group of GF(2)[x]/P for an
// irreducible P: a field, so the nonzero residues form one cycle of order
// 2^deg − 1.
func CyclicGF2(modulus poly2.Poly) (*Group, error) {
	d := modulus.Deg()
	if d < 1 || !modulus.IsIrreducible() {
		return nil, fmt.Errorf("%w: modulus %v is not irreducible", ErrNotCyclic, modulus)
	}
	order := uint64(1)<<uint(d) - 1
	factors := distinctPrimeFactors(order)
	for enc := uint64(2); enc <= order; enc++ {
		g := poly2.FromInt(enc)
		if isFieldGenerator(g, modulus, order, factors) {
			elems := make([]uint64, order)
			acc := poly2.One
			for k := range elems {
				elems[k] = uint64(acc)
				next, err := poly2.MulMod(acc, g, modulus)
				if err != nil {
					return nil, err
				}
				acc = next
			}

			return &Group{order: order, elems: elems}, nil
		}
	}

	return nil, fmt.Errorf("%w: modulus %v", ErrNotCyclic, modulus)
}

// isPrimitiveRoot checks that g generates the units of Z_n (n prime).
func isPrimitiveRoot(g, n, order uint64, factors []uint64) bool {
	for _, f := range factors {
		if powMod(g, order/f, n) == 1 {
			return false
		}
	}

	return true
}

// isFieldGenerator checks that g generates GF(2^d)*.
func isFieldGenerator(g, modulus poly2.Poly, order uint64, factors []uint64) bool {
	for _, f := range factors {
		pow, err := poly2.PowMod(g, order/f, modulus)
		if err != nil || pow == poly2.One {
			return false
		}
	}

	return true
}

func powMod(base, exp, mod uint64) uint64 {
	acc := uint64(1)
	base %= mod
	for exp > 0 {
		if exp&1 == 1 {
			acc = acc * base % mod
		}
		base = base * base % mod
		exp >>= 1
	}

	return acc
}

func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	limit := uint64(math.Sqrt(float64(n))) + 1
	for f := uint64(3); f <= limit; f += 2 {
		if n%f == 0 {
			return false
		}
	}

	return true
}

func distinctPrimeFactors(v uint64) []uint64 {
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
