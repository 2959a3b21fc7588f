package digitalnet

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/lowdisc/lowdisc/gf2"
	"github.com/lowdisc/lowdisc/poly2"
)

// maxPrimitiveDegree bounds the primitive-polynomial table generated at
// package init; coordinates 1 … len(primitivePolys) are supported.
const maxPrimitiveDegree = 10

// primitivePolys lists the primitive polynomials over GF(2) in the
// canonical order: increasing degree, then increasing integer encoding.
// Entry k−1 belongs to Sobol coordinate k (coordinate 0 is the identity).
var primitivePolys = buildPrimitivePolys(maxPrimitiveDegree)

func buildPrimitivePolys(maxDeg int) []poly2.Poly {
	var polys []poly2.Poly
	for deg := 1; deg <= maxDeg; deg++ {
		// Candidates x^deg + (middle bits) + 1; the constant term is
		// mandatory for primitivity.
		for mid := uint64(0); mid < 1<<uint(deg-1); mid++ {
			p := poly2.FromInt(1<<uint(deg) | mid<<1 | 1)
			if p.IsPrimitive() {
				polys = append(polys, p)
			}
		}
	}

	return polys
}

// SobolMaxDimension is the largest net dimension the built-in
// primitive-polynomial table supports.
func SobolMaxDimension() int { return len(primitivePolys) + 1 }

// SobolValue parameterizes one Sobol coordinate: the direction numbers
// m_1 … m_deg, where deg is the degree of the coordinate's primitive
// polynomial. Every m_j must be odd and below 2^j. Coordinate 0 is the
// identity-matrix special case and carries the single value {0}.
type SobolValue struct {
	Coord      int
	Directions []uint64
}

func (v SobolValue) String() string {
	parts := make([]string, len(v.Directions))
	for i, m := range v.Directions {
		parts[i] = fmt.Sprintf("%d", m)
	}

	return strings.Join(parts, ",")
}

// Sobol is the Sobol construction for a net with m columns (2^m points).
type Sobol struct {
	m int
}

// NewSobol returns the Sobol construction with 2^m points.
func NewSobol(m int) (*Sobol, error) {
	if m < 1 {
		return nil, ErrDimension
	}

	return &Sobol{m: m}, nil
}

// Name implements Construction.
func (s *Sobol) Name() string { return "sobol" }

// NumRows implements Construction.
func (s *Sobol) NumRows() int { return s.m }

// NumCols implements Construction.
func (s *Sobol) NumCols() int { return s.m }

// SpecialFirstCoordinate implements Construction.
func (s *Sobol) SpecialFirstCoordinate() bool { return true }

// PrimitivePolynomial returns the primitive polynomial attached to a Sobol
// coordinate (coord ≥ 1).
func PrimitivePolynomial(coord int) (poly2.Poly, error) {
	if coord < 1 || coord > len(primitivePolys) {
		return 0, ErrCoordinate
	}

	return primitivePolys[coord-1], nil
}

// CheckValue implements Construction.
func (s *Sobol) CheckValue(coord int, v GenValue) error {
	sv, ok := v.(SobolValue)
	if !ok {
		return fmt.Errorf("%w: expected SobolValue, got %T", ErrBadGenValue, v)
	}
	if sv.Coord != coord {
		return fmt.Errorf("%w: value for coordinate %d used at %d", ErrBadGenValue, sv.Coord, coord)
	}
	if coord == 0 {
		if len(sv.Directions) != 1 || sv.Directions[0] != 0 {
			return fmt.Errorf("%w: coordinate 0 admits the single value {0}", ErrBadGenValue)
		}

		return nil
	}
	p, err := PrimitivePolynomial(coord)
	if err != nil {
		return err
	}
	deg := p.Deg()
	if deg > s.m {
		deg = s.m
	}
	if len(sv.Directions) != deg {
		return fmt.Errorf("%w: coordinate %d needs %d direction numbers", ErrBadGenValue, coord, deg)
	}
	for j, m := range sv.Directions {
		if m%2 == 0 || m >= 1<<uint(j+1) {
			return fmt.Errorf("%w: direction number m_%d = %d must be odd and < %d", ErrBadGenValue, j+1, m, uint64(1)<<uint(j+1))
		}
	}

	return nil
}

// Matrix implements Construction: the Sobol recurrence extends the seed
// direction numbers up to m values; column c holds the bits of m_{c+1}.
func (s *Sobol) Matrix(coord int, v GenValue) (*gf2.Matrix, error) {
	if err := s.CheckValue(coord, v); err != nil {
		return nil, err
	}
	if coord == 0 {
		return gf2.Identity(s.m), nil
	}
	p, _ := PrimitivePolynomial(coord)
	deg := p.Deg()
	sv := v.(SobolValue)

	// ms is 1-based: ms[j] = m_j.
	ms := make([]uint64, s.m+1)
	for j := 1; j <= deg && j <= s.m; j++ {
		ms[j] = sv.Directions[j-1]
	}
	for j := deg + 1; j <= s.m; j++ {
		acc := ms[j-deg] ^ ms[j-deg]<<uint(deg)
		for i := 1; i < deg; i++ {
			if uint64(p)>>uint(deg-i)&1 == 1 {
				acc ^= ms[j-i] << uint(i)
			}
		}
		ms[j] = acc
	}

	mat, err := gf2.NewMatrix(s.m, s.m)
	if err != nil {
		return nil, err
	}
	for c := 0; c < s.m; c++ {
		for r := 0; r <= c; r++ {
			if ms[c+1]>>uint(c-r)&1 == 1 {
				_ = mat.SetBit(r, c, true)
			}
		}
	}

	return mat, nil
}

// ValueSpace implements Construction: the cartesian product of the odd
// residues below 2^j, one factor per direction number.
func (s *Sobol) ValueSpace(coord int) (ValueSeq, error) {
	if coord == 0 {
		return &sliceSeq{values: []GenValue{SobolValue{Coord: 0, Directions: []uint64{0}}}}, nil
	}
	p, err := PrimitivePolynomial(coord)
	if err != nil {
		return nil, err
	}
	deg := p.Deg()
	if deg > s.m {
		deg = s.m
	}

	return &sobolSeq{coord: coord, deg: deg}, nil
}

// Random implements Construction: each direction number is drawn uniformly
// from the odd residues of its range.
func (s *Sobol) Random(coord int, rng *rand.Rand) (GenValue, error) {
	if coord == 0 {
		return SobolValue{Coord: 0, Directions: []uint64{0}}, nil
	}
	p, err := PrimitivePolynomial(coord)
	if err != nil {
		return nil, err
	}
	deg := p.Deg()
	if deg > s.m {
		deg = s.m
	}
	dirs := make([]uint64, deg)
	for j := range dirs {
		dirs[j] = 2*uint64(rng.Int63n(1<<uint(j))) + 1
	}

	return SobolValue{Coord: coord, Directions: dirs}, nil
}

// FormatValue implements Construction.
func (s *Sobol) FormatValue(v GenValue) string {
	sv, ok := v.(SobolValue)
	if !ok {
		return v.String()
	}
	parts := make([]string, 0, len(sv.Directions)+1)
	parts = append(parts, fmt.Sprintf("%d", sv.Coord))
	for _, m := range sv.Directions {
		parts = append(parts, fmt.Sprintf("%d", m))
	}

	return strings.Join(parts, " ")
}

// sobolSeq is the odometer over direction-number tuples for one coordinate:
// 1·2·4·…·2^(deg−1) combinations, least-significant index first.
type sobolSeq struct {
	coord int
	deg   int
	state []uint64
	done  bool
}

func (q *sobolSeq) Reset() { q.state = nil; q.done = false }

func (q *sobolSeq) Next() (GenValue, bool) {
	if q.done {
		return nil, false
	}
	if q.state == nil {
		q.state = make([]uint64, q.deg)
		for j := range q.state {
			q.state[j] = 1
		}

		return q.value(), true
	}
	for j := 0; j < q.deg; j++ {
		if q.state[j]+2 < 1<<uint(j+1) {
			q.state[j] += 2
			for i := 0; i < j; i++ {
				q.state[i] = 1
			}

			return q.value(), true
		}
	}
	q.done = true

	return nil, false
}

func (q *sobolSeq) value() GenValue {
	return SobolValue{Coord: q.coord, Directions: append([]uint64(nil), q.state...)}
}

func (q *sobolSeq) Len() uint64 {
	var total uint64 = 1
	for j := 1; j < q.deg; j++ {
		total *= 1 << uint(j)
	}

	return total
}
