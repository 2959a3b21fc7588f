package tvalue

import (
	"errors"

	"gonum.org/v1/gonum/stat/combin"
)

// ErrInvalidComposition indicates parameters with no composition to
// enumerate: k and s must satisfy k ≥ s ≥ 1.
var ErrInvalidComposition = errors.New("tvalue: composition requires k ≥ s ≥ 1")

// Move addresses one unit inside a composition: the Unit-th unit (1-based)
// of part Part (0-based).
type Move struct {
	Part int
	Unit int
}

// Delta describes the single-unit relocation between two consecutive
// compositions: the From unit is removed, the To unit appears. From.Unit is
// the donor part's size before the move; To.Unit is the receiver part's size
// after it.
type Delta struct {
	From Move
	To   Move
}

// CompositionMaker enumerates the compositions of k into s positive parts in
// a revolving-door order: each Advance moves exactly one unit between two
// parts. The enumeration starts at (1, 1, …, 1, k−s+1) and visits every
// composition exactly once — C(k−1, s−1) in total.
//
// The order is defined recursively: the head part sweeps 1…k−s+1 while the
// tail enumeration alternates direction between consecutive head values, so
// that crossing a block boundary also relocates only one unit.
type CompositionMaker struct {
	k, s  int
	parts []int
	asc   []bool
	delta Delta
}

// NewCompositionMaker returns an enumerator positioned at the first
// composition (1, 1, …, 1, k−s+1).
func NewCompositionMaker(k, s int) (*CompositionMaker, error) {
	if s < 1 || k < s {
		return nil, ErrInvalidComposition
	}
	parts := make([]int, s)
	for i := range parts {
		parts[i] = 1
	}
	parts[s-1] = k - s + 1
	asc := make([]bool, s)
	for i := range asc {
		asc[i] = true
	}

	return &CompositionMaker{k: k, s: s, parts: parts, asc: asc}, nil
}

// Composition returns a copy of the current composition.
func (c *CompositionMaker) Composition() []int {
	return append([]int(nil), c.parts...)
}

// Count returns the total number of compositions, C(k−1, s−1).
func (c *CompositionMaker) Count() int {
	return combin.Binomial(c.k-1, c.s-1)
}

// Delta returns the unit move performed by the latest successful Advance.
func (c *CompositionMaker) Delta() Delta { return c.delta }

// Advance steps to the next composition and reports whether one existed.
// After a successful Advance, Delta describes the transition.
func (c *CompositionMaker) Advance() bool {
	return c.advance(0)
}

// advance attempts to step the suffix enumeration rooted at level.
func (c *CompositionMaker) advance(level int) bool {
	if level >= c.s-1 {
		return false
	}
	if c.advance(level + 1) {
		return true
	}

	// The tail is exhausted; move one unit across the block boundary.
	rem := c.k
	for i := 0; i < level; i++ {
		rem -= c.parts[i]
	}
	maxHead := rem - (c.s - 1 - level)
	if c.asc[level] {
		if c.parts[level] >= maxHead {
			return false
		}
		from := c.shrink(level + 1)
		c.parts[level]++
		c.delta = Delta{
			From: Move{Part: from, Unit: c.parts[from] + 1},
			To:   Move{Part: level, Unit: c.parts[level]},
		}

		return true
	}
	if c.parts[level] <= 1 {
		return false
	}
	c.parts[level]--
	to := c.grow(level + 1)
	c.delta = Delta{
		From: Move{Part: level, Unit: c.parts[level] + 1},
		To:   Move{Part: to, Unit: c.parts[to]},
	}

	return true
}

// shrink removes one unit from the exhausted suffix rooted at level, leaving
// it at the matching endpoint of the enumeration over one unit less, with
// its direction flipped. Returns the donor part.
func (c *CompositionMaker) shrink(level int) int {
	if level == c.s-1 {
		c.parts[level]--

		return level
	}
	if c.asc[level] {
		c.asc[level] = false
		c.parts[level]--

		return level
	}
	c.asc[level] = true

	return c.shrink(level + 1)
}

// grow is the mirror of shrink: adds one unit to the exhausted suffix rooted
// at level and returns the receiving part.
func (c *CompositionMaker) grow(level int) int {
	if level == c.s-1 {
		c.parts[level]++

		return level
	}
	if c.asc[level] {
		c.asc[level] = false
		c.parts[level]++

		return level
	}
	c.asc[level] = true

	return c.grow(level + 1)
}
