package search

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lowdisc/lowdisc/figures"
	"github.com/lowdisc/lowdisc/lattice"
)

// LatticeResult is the outcome of a lattice search.
type LatticeResult struct {
	Lattice *lattice.Ordinary
	Merit   float64
}

// LatticeSearch explores generating vectors of ordinary rank-1 lattices
// under a coordinate-uniform figure of merit.
type LatticeSearch struct {
	rule   *lattice.Rule
	dim    int
	figure *figures.CoordUniform
	opts   Options
	obs    *MinimumObserver[*lattice.Ordinary]
}

// NewLatticeSearch builds a search task over n-point lattices.
func NewLatticeSearch(rule *lattice.Rule, dim int, figure *figures.CoordUniform, opts Options) (*LatticeSearch, error) {
	if dim < 1 {
		return nil, ErrDimension
	}
	if figure == nil {
		return nil, fmt.Errorf("%w: lattice search needs a coordinate-uniform figure", ErrConfiguration)
	}
	if opts.Strategy == Random && opts.NbTries < 1 {
		return nil, fmt.Errorf("%w: random exploration needs NbTries ≥ 1", ErrConfiguration)
	}

	return &LatticeSearch{
		rule:   rule,
		dim:    dim,
		figure: figure,
		opts:   opts,
		obs:    NewMinimumObserver[*lattice.Ordinary](opts.EarlyAbortion),
	}, nil
}

// Observer exposes the search observer.
func (s *LatticeSearch) Observer() *MinimumObserver[*lattice.Ordinary] { return s.obs }

// Format describes the task.
func (s *LatticeSearch) Format() string {
	return fmt.Sprintf("Task: search for an ordinary rank-1 lattice\nNumber of points: %d\nDimension: %d\nExploration method: %s\nFigure of merit: %s",
		s.rule.NumPoints(), s.dim, s.opts.Strategy, s.figure.Name())
}

// Execute runs the search and returns the minimizer.
func (s *LatticeSearch) Execute() (*LatticeResult, error) {
	var err error
	switch s.opts.Strategy {
	case Exhaustive:
		err = s.exhaustive()
	case Random:
		err = s.random()
	case CBC:
		err = s.cbc(false)
	case FastCBC:
		err = s.cbc(true)
	default:
		return nil, fmt.Errorf("%w: strategy %v", ErrConfiguration, s.opts.Strategy)
	}
	if err != nil {
		return nil, err
	}
	best, merit, ok := s.obs.Best()
	if !ok {
		return nil, ErrNoCandidate
	}

	return &LatticeResult{Lattice: best, Merit: merit}, nil
}

// evaluate scores one full lattice.
func (s *LatticeSearch) evaluate(lat *lattice.Ordinary) error {
	merit, err := s.figure.EvaluateSource(lat, s.obs)
	if errors.Is(err, figures.ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}
	merit, accept := applyFilters(s.opts.Filters, merit)
	if !accept {
		return nil
	}
	s.obs.Observe(lat, merit)

	return nil
}

func (s *LatticeSearch) exhaustive() error {
	spaces := make([][]uint64, s.dim)
	idx := make([]int, s.dim)
	gen := make([]uint64, s.dim)
	for d := range spaces {
		spaces[d] = s.rule.ValueSpace(d)
		if len(spaces[d]) == 0 {
			return ErrNoCandidate
		}
		gen[d] = spaces[d][0]
	}

	for {
		lat, err := s.rule.Lattice(gen)
		if err != nil {
			return err
		}
		if err := s.evaluate(lat); err != nil {
			return err
		}

		d := s.dim - 1
		for d >= 0 {
			idx[d]++
			if idx[d] < len(spaces[d]) {
				gen[d] = spaces[d][idx[d]]

				break
			}
			idx[d] = 0
			gen[d] = spaces[d][0]
			d--
		}
		if d < 0 {
			return nil
		}
	}
}

func (s *LatticeSearch) random() error {
	seed := s.opts.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))
	for try := 0; try < s.opts.NbTries; try++ {
		gen := make([]uint64, s.dim)
		for d := range gen {
			gen[d] = s.rule.Random(d, rng)
		}
		lat, err := s.rule.Lattice(gen)
		if err != nil {
			return err
		}
		if err := s.evaluate(lat); err != nil {
			return err
		}
	}

	return nil
}

// cbc grows the generating vector one component at a time against the
// incremental coordinate-uniform state. With fast=true the per-coordinate
// candidate scan is folded into one circular correlation over the unit
// group of Z_n, which requires a prime modulus.
func (s *LatticeSearch) cbc(fast bool) error {
	n := s.rule.NumPoints()
	kern := s.figure.Kernel()

	var group *lattice.Group
	if fast {
		var err error
		group, err = lattice.CyclicZ(n)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	}

	state, err := s.figure.NewState(int(n))
	if err != nil {
		return err
	}

	rowFor := func(a uint64) []float64 {
		row := make([]float64, n)
		var r uint64
		for i := range row {
			row[i] = kern.Eval(float64(r) / float64(n))
			r += a
			if r >= n {
				r -= n
			}
		}

		return row
	}

	var elems []uint64
	var omega []float64
	if fast {
		elems = group.Elements()
		omega = make([]float64, len(elems))
		for u, e := range elems {
			omega[u] = kern.Eval(float64(e) / float64(n))
		}
	}

	gen := make([]uint64, 0, s.dim)
	sum := 0.0
	for d := 0; d < s.dim; d++ {
		qvec := state.Weighted(d)
		var chosen uint64
		var bestInc float64

		switch {
		case d == 0:
			chosen = 1
			row := rowFor(1)
			dot := 0.0
			for i, w := range row {
				dot += w * qvec[i]
			}
			bestInc = dot / float64(n)

		case fast:
			b := make([]float64, len(elems))
			for u, e := range elems {
				b[u] = qvec[e]
			}
			corr, err := circularCorrelation(omega, b)
			if err != nil {
				return err
			}
			zeroTerm := kern.Eval(0) * qvec[0]
			bestV := 0
			bestInc = (zeroTerm + corr[0]) / float64(n)
			for v := 1; v < len(corr); v++ {
				if cand := (zeroTerm + corr[v]) / float64(n); cand < bestInc {
					bestInc = cand
					bestV = v
				}
			}
			chosen = elems[bestV]

		default:
			first := true
			for _, a := range s.rule.ValueSpace(d) {
				row := rowFor(a)
				dot := 0.0
				for i, w := range row {
					dot += w * qvec[i]
				}
				inc := dot / float64(n)
				if first || inc < bestInc {
					first = false
					bestInc = inc
					chosen = a
				}
			}
			if first {
				return ErrNoCandidate
			}
		}

		sum += bestInc
		state.Update(d, rowFor(chosen))
		gen = append(gen, chosen)
	}

	lat, err := s.rule.Lattice(gen)
	if err != nil {
		return err
	}
	merit := s.figure.Finalize(sum)
	merit, accept := applyFilters(s.opts.Filters, merit)
	if !accept {
		return ErrNoCandidate
	}
	s.obs.Observe(lat, merit)

	return nil
}
