package lattice

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

var (
	// ErrModulus indicates a lattice size below 2.
	ErrModulus = errors.New("lattice: modulus must be at least 2")

	// ErrBadGenerator indicates a generating component outside [1, n) or not
	// coprime with the modulus.
	ErrBadGenerator = errors.New("lattice: generator must be a unit of the modulus")

	// ErrCoordinate indicates a coordinate index outside the dimension.
	ErrCoordinate = errors.New("lattice: coordinate out of range")

	// ErrNotCyclic indicates a modulus whose unit group is not one cycle.
	ErrNotCyclic = errors.New("lattice: unit group is not cyclic")
)

// Ordinary is a rank-1 lattice rule: n points generated by one integer per
// coordinate.
type Ordinary struct {
	n   uint64
	gen []uint64
}

// NewOrdinary builds the lattice with the given generating vector. Every
// component must be a unit modulo n.
func NewOrdinary(n uint64, gen []uint64) (*Ordinary, error) {
	if n < 2 {
		return nil, ErrModulus
	}
	for _, a := range gen {
		if a == 0 || a >= n || gcd(a, n) != 1 {
			return nil, fmt.Errorf("%w: %d mod %d", ErrBadGenerator, a, n)
		}
	}

	return &Ordinary{n: n, gen: append([]uint64(nil), gen...)}, nil
}

// Extend returns a lattice with one more generating component.
func (l *Ordinary) Extend(a uint64) (*Ordinary, error) {
	if a == 0 || a >= l.n || gcd(a, l.n) != 1 {
		return nil, fmt.Errorf("%w: %d mod %d", ErrBadGenerator, a, l.n)
	}
	gen := make([]uint64, len(l.gen)+1)
	copy(gen, l.gen)
	gen[len(l.gen)] = a

	return &Ordinary{n: l.n, gen: gen}, nil
}

// Dimension returns the number of coordinates.
func (l *Ordinary) Dimension() int { return len(l.gen) }

// NumPoints returns n.
func (l *Ordinary) NumPoints() uint64 { return l.n }

// Generator returns the generating vector (copy).
func (l *Ordinary) Generator() []uint64 { return append([]uint64(nil), l.gen...) }

// CoordValues returns the coord-th coordinate of every point:
// x_i = (i·a mod n)/n, indexed by point number i.
func (l *Ordinary) CoordValues(coord int) ([]float64, error) {
	if coord < 0 || coord >= len(l.gen) {
		return nil, ErrCoordinate
	}
	a := l.gen[coord]
	out := make([]float64, l.n)
	var r uint64
	for i := range out {
		out[i] = float64(r) / float64(l.n)
		r += a
		if r >= l.n {
			r -= l.n
		}
	}

	return out, nil
}

// Format renders the lattice: annotated (human) or one generating component
// per line (machine).
func (l *Ordinary) Format(machine bool) string {
	var b strings.Builder
	if machine {
		for _, a := range l.gen {
			fmt.Fprintf(&b, "%d\n", a)
		}

		return b.String()
	}
	fmt.Fprintf(&b, "%d  // Number of points\n", l.n)
	fmt.Fprintf(&b, "%d  // Dimension\n", len(l.gen))
	fmt.Fprintf(&b, "[%s]  // Generating vector\n", joinUints(l.gen))

	return b.String()
}

// Rule is the per-size factory of ordinary lattices: it exposes the
// per-coordinate value space (the units of Z_n, with coordinate 0 pinned to
// 1) and a uniform sampler.
type Rule struct {
	n uint64
}

// NewRule returns the rule factory for n points.
func NewRule(n uint64) (*Rule, error) {
	if n < 2 {
		return nil, ErrModulus
	}

	return &Rule{n: n}, nil
}

// NumPoints returns n.
func (r *Rule) NumPoints() uint64 { return r.n }

// ValueSpace returns the candidate generating components of one coordinate
// in increasing order.
func (r *Rule) ValueSpace(coord int) []uint64 {
	if coord == 0 {
		return []uint64{1}
	}
	var units []uint64
	for a := uint64(1); a < r.n; a++ {
		if gcd(a, r.n) == 1 {
			units = append(units, a)
		}
	}

	return units
}

// Random draws a uniform unit for one coordinate.
func (r *Rule) Random(coord int, rng *rand.Rand) uint64 {
	if coord == 0 {
		return 1
	}
	for {
		a := uint64(rng.Int63n(int64(r.n-1))) + 1
		if gcd(a, r.n) == 1 {
			return a
		}
	}
}

// Lattice materializes a lattice from generating components.
func (r *Rule) Lattice(gen []uint64) (*Ordinary, error) { return NewOrdinary(r.n, gen) }

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func joinUints(vs []uint64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%d", v)
	}

	return strings.Join(parts, ", ")
}
