package figures

import (
	"fmt"
	"math"

	"github.com/lowdisc/lowdisc/digitalnet"
	"github.com/lowdisc/lowdisc/kernel"
	"github.com/lowdisc/lowdisc/weights"
)

// CoordUniform is a coordinate-uniform figure of merit: the weighted double
// sum
//
//	S = (1/n) Σ_i Σ_{∅≠P} γ(P) Π_{j∈P} ω(x_{i,j})
//
// evaluated incrementally, one coordinate at a time, through a per-shape
// state recurrence; the reported merit is S^(1/q).
type CoordUniform struct {
	kern kernel.Kernel
	w    weights.Weights
	q    float64
}

// NewCoordUniform builds the figure. q may be zero to default to the
// kernel's natural power. The weight shape must be reducible to one of the
// four state recurrences (Scaled(Combined) is not).
func NewCoordUniform(kern kernel.Kernel, w weights.Weights, q float64) (*CoordUniform, error) {
	if q == 0 {
		q = kern.CUPower()
	}
	if err := checkNorm(q); err != nil {
		return nil, err
	}
	if math.IsInf(q, 1) {
		return nil, fmt.Errorf("%w: coordinate-uniform figures need a finite norm", ErrConfiguration)
	}
	norm, err := normalizeShape(w)
	if err != nil {
		return nil, err
	}
	// Probe the state factory once so misconfigurations surface at build
	// time, not mid-search.
	if _, err := newCUState(norm, 1); err != nil {
		return nil, err
	}

	return &CoordUniform{kern: kern, w: norm, q: q}, nil
}

// Name implements the figure naming convention.
func (f *CoordUniform) Name() string {
	return fmt.Sprintf("CU:%s", f.kern.Name())
}

// NormType returns the norm exponent q.
func (f *CoordUniform) NormType() float64 { return f.q }

// Weights returns the (normalized) weight shape.
func (f *CoordUniform) Weights() weights.Weights { return f.w }

// Kernel returns the univariate kernel.
func (f *CoordUniform) Kernel() kernel.Kernel { return f.kern }

// KernelRow evaluates the kernel over one coordinate of the source.
func (f *CoordUniform) KernelRow(src PointSource, coord int) ([]float64, error) {
	xs, err := src.CoordValues(coord)
	if err != nil {
		return nil, err
	}
	row := make([]float64, len(xs))
	for i, x := range xs {
		row[i] = f.kern.Eval(x)
	}

	return row, nil
}

// NewState returns a fresh per-shape evaluation state over n points.
// Exposed for the CBC drivers, which interleave state updates with
// candidate scans.
func (f *CoordUniform) NewState(n int) (CUState, error) {
	return newCUState(f.w, n)
}

// Finalize maps the accumulated sum S to the reported merit S^(1/q),
// clamping the tiny negative excursions of mean-zero kernels.
func (f *CoordUniform) Finalize(sum float64) float64 {
	if sum < 0 {
		sum = 0
	}

	return math.Pow(sum, 1/f.q)
}

// EvaluateSource computes the figure over a full point source. The hook is
// polled after every coordinate with the partial merit.
func (f *CoordUniform) EvaluateSource(src PointSource, hook ProgressHook) (float64, error) {
	n := int(src.NumPoints())
	state, err := newCUState(f.w, n)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for coord := 0; coord < src.Dimension(); coord++ {
		row, err := f.KernelRow(src, coord)
		if err != nil {
			return 0, err
		}
		q := state.Weighted(coord)
		dot := 0.0
		for i, w := range row {
			dot += w * q[i]
		}
		sum += dot / float64(n)
		state.Update(coord, row)

		if hook != nil && !hook.OnProgress(f.Finalize(sum)) {
			hook.OnAbort()

			return 0, ErrAborted
		}
	}

	return f.Finalize(sum), nil
}

// EvaluateNet evaluates the figure over a digital net's point set, making
// CoordUniform usable wherever a net figure is expected.
func (f *CoordUniform) EvaluateNet(net digitalnet.Net, hook ProgressHook) (float64, error) {
	return f.EvaluateSource(NetSource(net), hook)
}

// CUState is the per-shape recurrence state of coordinate-uniform
// evaluation over n points.
//
// Weighted returns the vector q such that the merit increment of choosing a
// kernel row ω for coordinate `next` is (1/n)·⟨ω, q⟩; Update commits the
// chosen row. The split is what CBC exploits: many candidate rows are
// scored against one Weighted vector before a single Update.
type CUState interface {
	Weighted(next int) []float64
	Update(coord int, omega []float64)
}

// normalizeShape pushes a power scale into the concrete shapes (products,
// orders and explicit listings are closed under powers; a scaled sum is
// not) so that the state factory only sees the four base shapes.
func normalizeShape(w weights.Weights) (weights.Weights, error) {
	s, ok := w.(*weights.Scaled)
	if !ok {
		return w, nil
	}
	switch inner := s.W.(type) {
	case *weights.Product:
		out := weights.NewProduct(powAll(inner.Gammas, s.Power))
		out.DefaultWeight = math.Pow(inner.DefaultWeight, s.Power)

		return out, nil
	case *weights.OrderDependent:
		out := weights.NewOrderDependent(powAll(inner.Gammas, s.Power))
		out.DefaultWeight = math.Pow(inner.DefaultWeight, s.Power)

		return out, nil
	case *weights.POD:
		od, err := normalizeShape(weights.NewScaled(inner.Order, s.Power))
		if err != nil {
			return nil, err
		}
		pr, err := normalizeShape(weights.NewScaled(inner.Prod, s.Power))
		if err != nil {
			return nil, err
		}

		return weights.NewPOD(od.(*weights.OrderDependent), pr.(*weights.Product)), nil
	case *weights.ProjectionDependent:
		out := weights.NewProjectionDependent()
		for _, p := range inner.Projections() {
			out.Set(p, math.Pow(inner.Weight(p), s.Power))
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: power scale over %T", ErrConfiguration, s.W)
	}
}

func powAll(vs []float64, p float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = math.Pow(v, p)
	}

	return out
}

// newCUState picks the recurrence for a weight shape.
func newCUState(w weights.Weights, n int) (CUState, error) {
	switch sw := w.(type) {
	case *weights.Product:
		return newProductState(sw, n), nil
	case *weights.OrderDependent:
		return newOrderState(sw, nil, n), nil
	case *weights.POD:
		return newOrderState(sw.Order, sw.Prod, n), nil
	case *weights.ProjectionDependent:
		return newProjDepState(sw, n), nil
	case *weights.Combined:
		subs := make([]CUState, len(sw.List))
		for i, subW := range sw.List {
			norm, err := normalizeShape(subW)
			if err != nil {
				return nil, err
			}
			sub, err := newCUState(norm, n)
			if err != nil {
				return nil, err
			}
			subs[i] = sub
		}

		return &combinedState{subs: subs, n: n}, nil
	default:
		return nil, fmt.Errorf("%w: weight shape %T", ErrConfiguration, w)
	}
}

// productState: p_s = p_{s−1} ⊙ (1 + γ_s ω_s); q = γ_{next}·p.
type productState struct {
	w *weights.Product
	p []float64
}

func newProductState(w *weights.Product, n int) *productState {
	p := make([]float64, n)
	for i := range p {
		p[i] = 1
	}

	return &productState{w: w, p: p}
}

func (s *productState) Weighted(next int) []float64 {
	gamma := s.w.ForCoordinate(next)
	out := make([]float64, len(s.p))
	for i, v := range s.p {
		out[i] = gamma * v
	}

	return out
}

func (s *productState) Update(coord int, omega []float64) {
	gamma := s.w.ForCoordinate(coord)
	for i := range s.p {
		s.p[i] *= 1 + gamma*omega[i]
	}
}

// orderState handles order-dependent and POD weights:
// p_{s,ℓ} = p_{s−1,ℓ} + γ_s ω_s ⊙ p_{s−1,ℓ−1} (γ ≡ 1 without a product
// part); q = γ_{next} Σ_ℓ Γ_{ℓ+1} p_{s,ℓ}.
type orderState struct {
	order *weights.OrderDependent
	prod  *weights.Product
	p     [][]float64
}

func newOrderState(order *weights.OrderDependent, prod *weights.Product, n int) *orderState {
	p0 := make([]float64, n)
	for i := range p0 {
		p0[i] = 1
	}

	return &orderState{order: order, prod: prod, p: [][]float64{p0}}
}

func (s *orderState) coordWeight(coord int) float64 {
	if s.prod == nil {
		return 1
	}

	return s.prod.ForCoordinate(coord)
}

func (s *orderState) Weighted(next int) []float64 {
	n := len(s.p[0])
	out := make([]float64, n)
	gamma := s.coordWeight(next)
	for l := range s.p {
		g := s.order.ForOrder(l + 1)
		if g == 0 {
			continue
		}
		for i := range out {
			out[i] += g * s.p[l][i]
		}
	}
	for i := range out {
		out[i] *= gamma
	}

	return out
}

func (s *orderState) Update(coord int, omega []float64) {
	n := len(s.p[0])
	gamma := s.coordWeight(coord)
	s.p = append(s.p, make([]float64, n))
	for l := len(s.p) - 1; l >= 1; l-- {
		prev := s.p[l-1]
		cur := s.p[l]
		for i := range cur {
			cur[i] += gamma * omega[i] * prev[i]
		}
	}
}

// projDepState keeps one partial product per listed projection.
type projDepState struct {
	w     *weights.ProjectionDependent
	n     int
	projs [][]int
	parts [][]float64
}

func newProjDepState(w *weights.ProjectionDependent, n int) *projDepState {
	projs := w.Projections()
	parts := make([][]float64, len(projs))
	for k := range parts {
		parts[k] = make([]float64, n)
		for i := range parts[k] {
			parts[k][i] = 1
		}
	}

	return &projDepState{w: w, n: n, projs: projs, parts: parts}
}

func (s *projDepState) Weighted(next int) []float64 {
	out := make([]float64, s.n)
	for k, proj := range s.projs {
		if len(proj) == 0 || proj[len(proj)-1] != next {
			continue
		}
		gamma := s.w.Weight(proj)
		if gamma == 0 {
			continue
		}
		for i := range out {
			out[i] += gamma * s.parts[k][i]
		}
	}

	return out
}

func (s *projDepState) Update(coord int, omega []float64) {
	for k, proj := range s.projs {
		for _, j := range proj {
			if j == coord {
				part := s.parts[k]
				for i := range part {
					part[i] *= omega[i]
				}

				break
			}
		}
	}
}

// combinedState sums sub-states.
type combinedState struct {
	subs []CUState
	n    int
}

func (s *combinedState) Weighted(next int) []float64 {
	out := make([]float64, s.n)
	for _, sub := range s.subs {
		for i, v := range sub.Weighted(next) {
			out[i] += v
		}
	}

	return out
}

func (s *combinedState) Update(coord int, omega []float64) {
	for _, sub := range s.subs {
		sub.Update(coord, omega)
	}
}
