package digitalnet

import (
	"fmt"
	"strings"

	"github.com/lowdisc/lowdisc/gf2"
)

// Net is a digital net in base 2, defined by one generating matrix per
// coordinate. Matrices are immutable once a net is built; nets extended
// from a common prefix share them.
type Net interface {
	// Dimension returns the number of coordinates.
	Dimension() int

	// NumRows returns the generating-matrix height.
	NumRows() int

	// NumCols returns the generating-matrix width.
	NumCols() int

	// NumPoints returns 2^NumCols.
	NumPoints() uint64

	// GeneratingMatrix returns the matrix of one coordinate. The returned
	// matrix is shared and must not be mutated.
	GeneratingMatrix(coord int) (*gf2.Matrix, error)

	// Format renders the net for output.
	Format(f OutputFormat, interlacing int) string
}

// ExplicitNet owns its generating matrices directly.
type ExplicitNet struct {
	nRows int
	nCols int
	mats  []*gf2.Matrix
}

// NewExplicitNet builds a net from generating matrices, which must be
// non-empty and share one shape.
func NewExplicitNet(mats []*gf2.Matrix) (*ExplicitNet, error) {
	if len(mats) == 0 {
		return nil, ErrDimension
	}
	nRows, nCols := mats[0].NumRows(), mats[0].NumCols()
	for _, m := range mats[1:] {
		if m.NumRows() != nRows || m.NumCols() != nCols {
			return nil, ErrShape
		}
	}

	return &ExplicitNet{nRows: nRows, nCols: nCols, mats: append([]*gf2.Matrix(nil), mats...)}, nil
}

// Dimension implements Net.
func (n *ExplicitNet) Dimension() int { return len(n.mats) }

// NumRows implements Net.
func (n *ExplicitNet) NumRows() int { return n.nRows }

// NumCols implements Net.
func (n *ExplicitNet) NumCols() int { return n.nCols }

// NumPoints implements Net.
func (n *ExplicitNet) NumPoints() uint64 { return 1 << uint(n.nCols) }

// GeneratingMatrix implements Net.
func (n *ExplicitNet) GeneratingMatrix(coord int) (*gf2.Matrix, error) {
	if coord < 0 || coord >= len(n.mats) {
		return nil, ErrCoordinate
	}

	return n.mats[coord], nil
}

// Format implements Net.
func (n *ExplicitNet) Format(f OutputFormat, interlacing int) string {
	if f == FormatMachine {
		var b strings.Builder
		for _, m := range n.mats {
			for r := 0; r < m.NumRows(); r++ {
				if r > 0 {
					b.WriteByte(' ')
				}
				w, _ := m.RowWord(r)
				fmt.Fprintf(&b, "%d", w)
			}
			b.WriteByte('\n')
		}

		return b.String()
	}

	return formatHuman(n, "explicit", interlacing, "")
}

// ConstructedNet couples a construction method with one generating value
// per coordinate. Extending the dimension shares all existing matrices and
// values with the parent net.
type ConstructedNet struct {
	cons Construction
	vals []GenValue
	mats []*gf2.Matrix
}

// NewConstructedNet materializes a net from per-coordinate generating
// values. Every value is validated against its coordinate.
func NewConstructedNet(cons Construction, vals []GenValue) (*ConstructedNet, error) {
	if len(vals) == 0 {
		return nil, ErrDimension
	}
	n := &ConstructedNet{
		cons: cons,
		vals: append([]GenValue(nil), vals...),
		mats: make([]*gf2.Matrix, len(vals)),
	}
	for coord, v := range n.vals {
		if err := cons.CheckValue(coord, v); err != nil {
			return nil, err
		}
		mat, err := cons.Matrix(coord, v)
		if err != nil {
			return nil, err
		}
		n.mats[coord] = mat
	}

	return n, nil
}

// ExtendDimension returns a net with one more coordinate generated by v.
// The existing per-coordinate matrices and values are shared, not copied.
func (n *ConstructedNet) ExtendDimension(v GenValue) (*ConstructedNet, error) {
	coord := len(n.vals)
	if err := n.cons.CheckValue(coord, v); err != nil {
		return nil, err
	}
	mat, err := n.cons.Matrix(coord, v)
	if err != nil {
		return nil, err
	}

	vals := make([]GenValue, coord+1)
	copy(vals, n.vals)
	vals[coord] = v
	mats := make([]*gf2.Matrix, coord+1)
	copy(mats, n.mats)
	mats[coord] = mat

	return &ConstructedNet{cons: n.cons, vals: vals, mats: mats}, nil
}

// Construction returns the construction method of the net.
func (n *ConstructedNet) Construction() Construction { return n.cons }

// GenValues returns the per-coordinate generating values (shared backing
// values; treat as read-only).
func (n *ConstructedNet) GenValues() []GenValue {
	return append([]GenValue(nil), n.vals...)
}

// Dimension implements Net.
func (n *ConstructedNet) Dimension() int { return len(n.vals) }

// NumRows implements Net.
func (n *ConstructedNet) NumRows() int { return n.cons.NumRows() }

// NumCols implements Net.
func (n *ConstructedNet) NumCols() int { return n.cons.NumCols() }

// NumPoints implements Net.
func (n *ConstructedNet) NumPoints() uint64 { return 1 << uint(n.cons.NumCols()) }

// GeneratingMatrix implements Net.
func (n *ConstructedNet) GeneratingMatrix(coord int) (*gf2.Matrix, error) {
	if coord < 0 || coord >= len(n.mats) {
		return nil, ErrCoordinate
	}

	return n.mats[coord], nil
}

// Format implements Net.
func (n *ConstructedNet) Format(f OutputFormat, interlacing int) string {
	if f == FormatMachine {
		var b strings.Builder
		for _, v := range n.vals {
			b.WriteString(n.cons.FormatValue(v))
			b.WriteByte('\n')
		}

		return b.String()
	}
	var vals strings.Builder
	for coord, v := range n.vals {
		fmt.Fprintf(&vals, "//coordinate %d: %s\n", coord, v)
	}

	return formatHuman(n, n.cons.Name(), interlacing, vals.String())
}

// formatHuman renders the annotated report shared by all net kinds.
func formatHuman(n Net, method string, interlacing int, extra string) string {
	if interlacing < 1 {
		interlacing = 1
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d  // Number of columns\n", n.NumCols())
	fmt.Fprintf(&b, "%d  // Number of rows\n", n.NumRows())
	fmt.Fprintf(&b, "%d  // Number of points\n", n.NumPoints())
	fmt.Fprintf(&b, "%d  // Dimension of points\n", n.Dimension())
	fmt.Fprintf(&b, "%d  // Interlacing factor\n", interlacing)
	fmt.Fprintf(&b, "%s  // Construction method\n", method)
	b.WriteString(extra)
	for coord := 0; coord < n.Dimension(); coord++ {
		fmt.Fprintf(&b, "//dim = %d\n", coord)
		mat, _ := n.GeneratingMatrix(coord)
		b.WriteString(mat.String())
	}

	return b.String()
}
