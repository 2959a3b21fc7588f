package search

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/lowdisc/lowdisc/digitalnet"
	"github.com/lowdisc/lowdisc/figures"
	"github.com/lowdisc/lowdisc/lattice"
	"github.com/lowdisc/lowdisc/poly2"
)

// NetFigure is the contract a figure of merit must satisfy to steer a net
// search. Both figures.TValueFigure and figures.CoordUniform satisfy it.
type NetFigure interface {
	Name() string
	EvaluateNet(net digitalnet.Net, hook figures.ProgressHook) (float64, error)
}

// NetResult is the outcome of a net search.
type NetResult struct {
	Net   digitalnet.Net
	Merit float64
}

// NetSearch explores the generator space of a net construction under a
// figure of merit.
type NetSearch struct {
	cons   digitalnet.Construction
	dim    int
	figure NetFigure
	opts   Options
	obs    *MinimumObserver[digitalnet.Net]
}

// NewNetSearch builds a search task for nets of the given dimension.
func NewNetSearch(cons digitalnet.Construction, dim int, figure NetFigure, opts Options) (*NetSearch, error) {
	if dim < 1 {
		return nil, ErrDimension
	}
	if opts.Strategy == Random && opts.NbTries < 1 {
		return nil, fmt.Errorf("%w: random exploration needs NbTries ≥ 1", ErrConfiguration)
	}

	return &NetSearch{
		cons:   cons,
		dim:    dim,
		figure: figure,
		opts:   opts,
		obs:    NewMinimumObserver[digitalnet.Net](opts.EarlyAbortion),
	}, nil
}

// Observer exposes the search observer (for artificial bounds, counters).
func (s *NetSearch) Observer() *MinimumObserver[digitalnet.Net] { return s.obs }

// Format describes the task.
func (s *NetSearch) Format() string {
	return fmt.Sprintf("Task: search for a digital net in base 2\nConstruction: %s\nDimension: %d\nExploration method: %s\nFigure of merit: %s",
		s.cons.Name(), s.dim, s.opts.Strategy, s.figure.Name())
}

// Execute runs the search and returns the minimizer. ErrNoCandidate is the
// only terminal search failure.
func (s *NetSearch) Execute() (*NetResult, error) {
	var err error
	switch s.opts.Strategy {
	case Exhaustive:
		err = s.exhaustive()
	case Random:
		err = s.random()
	case CBC:
		err = s.cbc()
	case FastCBC:
		return s.fastCBC()
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

	return &NetResult{Net: best, Merit: merit}, nil
}

// evaluate scores one candidate net: aborted evaluations and filtered-out
// merits leave the observer untouched.
func (s *NetSearch) evaluate(net digitalnet.Net) error {
	merit, err := s.figure.EvaluateNet(net, s.obs)
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
	s.obs.Observe(net, merit)

	return nil
}

func (s *NetSearch) exhaustive() error {
	seqs := make([]digitalnet.ValueSeq, s.dim)
	cur := make([]digitalnet.GenValue, s.dim)
	for d := range seqs {
		seq, err := s.cons.ValueSpace(d)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		v, ok := seq.Next()
		if !ok {
			return ErrNoCandidate
		}
		seqs[d] = seq
		cur[d] = v
	}

	for {
		net, err := digitalnet.NewConstructedNet(s.cons, cur)
		if err != nil {
			return err
		}
		if err := s.evaluate(net); err != nil {
			return err
		}

		// Odometer step over the cartesian product, last coordinate fastest.
		d := s.dim - 1
		for d >= 0 {
			if v, ok := seqs[d].Next(); ok {
				cur[d] = v

				break
			}
			seqs[d].Reset()
			cur[d], _ = seqs[d].Next()
			d--
		}
		if d < 0 {
			return nil
		}
	}
}

func (s *NetSearch) random() error {
	seed := s.opts.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))
	for try := 0; try < s.opts.NbTries; try++ {
		vals := make([]digitalnet.GenValue, s.dim)
		for d := range vals {
			v, err := s.cons.Random(d, rng)
			if err != nil {
				return err
			}
			vals[d] = v
		}
		net, err := digitalnet.NewConstructedNet(s.cons, vals)
		if err != nil {
			return err
		}
		if err := s.evaluate(net); err != nil {
			return err
		}
	}

	return nil
}

func (s *NetSearch) cbc() error {
	var prefix *digitalnet.ConstructedNet
	for d := 0; d < s.dim; d++ {
		seq, err := s.cons.ValueSpace(d)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		s.obs.resetPass()
		for v, ok := seq.Next(); ok; v, ok = seq.Next() {
			var cand *digitalnet.ConstructedNet
			if prefix == nil {
				cand, err = digitalnet.NewConstructedNet(s.cons, []digitalnet.GenValue{v})
			} else {
				cand, err = prefix.ExtendDimension(v)
			}
			if err != nil {
				return err
			}
			if err := s.evaluate(cand); err != nil {
				return err
			}
		}
		best, _, ok := s.obs.Best()
		if !ok {
			return ErrNoCandidate
		}
		prefix = best.(*digitalnet.ConstructedNet)
	}

	return nil
}

// fastCBC scores every candidate value of a coordinate in one circular
// correlation over the unit cycle of the modulus. It requires a
// coordinate-uniform figure and a polynomial construction with an
// irreducible modulus.
func (s *NetSearch) fastCBC() (*NetResult, error) {
	fig, ok := s.figure.(*figures.CoordUniform)
	if !ok {
		return nil, fmt.Errorf("%w: fast-CBC is implemented only for coordinate-uniform figures of merit", ErrConfiguration)
	}
	cons, ok := s.cons.(*digitalnet.Polynomial)
	if !ok {
		return nil, fmt.Errorf("%w: fast-CBC over nets needs the polynomial construction", ErrConfiguration)
	}
	modulus := cons.Modulus()
	group, err := lattice.CyclicGF2(modulus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	m := modulus.Deg()
	n := 1 << uint(m)
	kern := fig.Kernel()
	point := func(r uint64) float64 { return polyPoint(r, modulus, m) }
	rowFor := func(q poly2.Poly) ([]float64, error) {
		row := make([]float64, n)
		for i := 1; i < n; i++ {
			prod, err := poly2.MulMod(poly2.FromInt(uint64(i)), q, modulus)
			if err != nil {
				return nil, err
			}
			row[i] = kern.Eval(point(uint64(prod)))
		}
		row[0] = kern.Eval(0)

		return row, nil
	}

	state, err := fig.NewState(n)
	if err != nil {
		return nil, err
	}
	elems := group.Elements()
	order := int(group.Order())
	omega := make([]float64, order)
	for u, e := range elems {
		omega[u] = kern.Eval(point(e))
	}
	omega0 := kern.Eval(0)

	vals := make([]digitalnet.GenValue, 0, s.dim)
	sum := 0.0
	for d := 0; d < s.dim; d++ {
		qvec := state.Weighted(d)
		var chosen poly2.Poly
		var inc float64
		if d == 0 {
			// Coordinate 0 is pinned to the value 1.
			chosen = poly2.One
			row, err := rowFor(chosen)
			if err != nil {
				return nil, err
			}
			dot := 0.0
			for i, w := range row {
				dot += w * qvec[i]
			}
			inc = dot / float64(n)
			sum += inc
			state.Update(d, row)
			vals = append(vals, chosen)

			continue
		}

		b := make([]float64, order)
		for u, e := range elems {
			b[u] = qvec[e]
		}
		corr, err := circularCorrelation(omega, b)
		if err != nil {
			return nil, err
		}
		zeroTerm := omega0 * qvec[0]
		bestV := 0
		bestInc := (zeroTerm + corr[0]) / float64(n)
		for v := 1; v < order; v++ {
			if cand := (zeroTerm + corr[v]) / float64(n); cand < bestInc {
				bestInc = cand
				bestV = v
			}
		}
		chosen = poly2.FromInt(elems[bestV])
		inc = bestInc
		sum += inc
		row, err := rowFor(chosen)
		if err != nil {
			return nil, err
		}
		state.Update(d, row)
		vals = append(vals, chosen)
	}

	net, err := digitalnet.NewConstructedNet(cons, vals)
	if err != nil {
		return nil, err
	}
	merit := fig.Finalize(sum)
	merit, accept := applyFilters(s.opts.Filters, merit)
	if !accept {
		return nil, ErrNoCandidate
	}
	s.obs.Observe(net, merit)

	return &NetResult{Net: net, Merit: merit}, nil
}

// polyPoint maps a residue to its lattice point: the first m Laurent digits
// of r(x)/P(x) read as a binary fraction.
func polyPoint(r uint64, modulus poly2.Poly, m int) float64 {
	digits, err := poly2.Expand(poly2.FromInt(r), modulus, m)
	if err != nil {
		return 0
	}
	out := 0.0
	scale := 0.5
	for _, d := range digits {
		if d == 1 {
			out += scale
		}
		scale /= 2
	}

	return out
}
