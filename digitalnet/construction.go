package digitalnet

import (
	"errors"
	"math/rand"

	"github.com/lowdisc/lowdisc/gf2"
)

var (
	// ErrBadGenValue indicates a generating value outside its construction's
	// constraints (wrong degree, even direction number, shape mismatch, …).
	ErrBadGenValue = errors.New("digitalnet: invalid generating value")

	// ErrCoordinate indicates a coordinate index outside the net dimension.
	ErrCoordinate = errors.New("digitalnet: coordinate out of range")

	// ErrDimension indicates an empty or inconsistent coordinate list.
	ErrDimension = errors.New("digitalnet: invalid dimension")

	// ErrShape indicates generating matrices of unequal shapes.
	ErrShape = errors.New("digitalnet: generating matrices must share one shape")

	// ErrNoValueSpace indicates a construction whose per-coordinate value
	// space cannot be enumerated (explicit matrices).
	ErrNoValueSpace = errors.New("digitalnet: construction has no enumerable value space")
)

// Embedding distinguishes a fixed-size point set from an embedded sequence
// of nested point sets, one per number of columns.
type Embedding int

const (
	// Unilevel point sets have a single size.
	Unilevel Embedding = iota

	// Multilevel point sets embed one level per column count.
	Multilevel
)

func (e Embedding) String() string {
	if e == Multilevel {
		return "multilevel"
	}

	return "unilevel"
}

// OutputFormat selects a report rendering.
type OutputFormat int

const (
	// FormatHuman is an annotated rendering with matrices printed.
	FormatHuman OutputFormat = iota

	// FormatMachine renders parameters only, one coordinate per line.
	FormatMachine
)

// GenValue is the per-coordinate parameter a construction method turns into
// a generating matrix: Sobol direction numbers, a generating polynomial, or
// an explicit matrix.
type GenValue interface {
	String() string
}

// ValueSeq enumerates the candidate generating values of one coordinate in
// a deterministic order.
type ValueSeq interface {
	// Reset rewinds the sequence to its first value.
	Reset()

	// Next returns the next value, or ok=false when exhausted.
	Next() (v GenValue, ok bool)

	// Len returns the total number of values.
	Len() uint64
}

// Construction is the capability set shared by the net construction
// methods. A Construction instance is bound to one size parameter, so row
// and column counts are fixed.
type Construction interface {
	// Name identifies the method ("sobol", "polynomial", "explicit").
	Name() string

	// NumRows returns the generating-matrix height.
	NumRows() int

	// NumCols returns the generating-matrix width; the net has 2^NumCols points.
	NumCols() int

	// SpecialFirstCoordinate reports whether coordinate 0 admits a single
	// canonical value (Sobol identity, polynomial 1).
	SpecialFirstCoordinate() bool

	// CheckValue validates a generating value for the given coordinate.
	CheckValue(coord int, v GenValue) error

	// Matrix materializes the generating matrix of a value.
	Matrix(coord int, v GenValue) (*gf2.Matrix, error)

	// ValueSpace enumerates all admissible values of one coordinate.
	ValueSpace(coord int) (ValueSeq, error)

	// Random draws a uniform admissible value for one coordinate.
	Random(coord int, rng *rand.Rand) (GenValue, error)

	// FormatValue renders a value for the machine report.
	FormatValue(v GenValue) string
}

// sliceSeq is a ValueSeq over a pre-built value list.
type sliceSeq struct {
	values []GenValue
	next   int
}

func (s *sliceSeq) Reset() { s.next = 0 }

func (s *sliceSeq) Next() (GenValue, bool) {
	if s.next >= len(s.values) {
		return nil, false
	}
	v := s.values[s.next]
	s.next++

	return v, true
}

func (s *sliceSeq) Len() uint64 { return uint64(len(s.values)) }
