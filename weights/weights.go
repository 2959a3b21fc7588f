package weights

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	// ErrInfiniteSupport indicates a shape whose default weight is positive:
	// every projection then matters and no finite enumeration bound exists.
	ErrInfiniteSupport = errors.New("weights: default weight must be zero")

	// ErrUnsupportedWeights indicates a weight shape unknown to a dispatcher.
	ErrUnsupportedWeights = errors.New("weights: unsupported weight shape")
)

// Weights is a non-negative function on coordinate projections. Projections
// are slices of distinct zero-based coordinate indices in ascending order.
type Weights interface {
	// Weight returns γ(P) for the projection P.
	Weight(proj []int) float64

	// String names the shape with its parameters.
	String() string
}

// Product implements γ(P) = Π_{j∈P} γ_j. Coordinates beyond the explicit
// list fall back to DefaultWeight.
type Product struct {
	Gammas        []float64
	DefaultWeight float64
}

// NewProduct returns product weights over the given per-coordinate γ_j.
func NewProduct(gammas []float64) *Product {
	return &Product{Gammas: append([]float64(nil), gammas...)}
}

// ForCoordinate returns γ_j for coordinate j.
func (w *Product) ForCoordinate(j int) float64 {
	if j >= 0 && j < len(w.Gammas) {
		return w.Gammas[j]
	}

	return w.DefaultWeight
}

// Weight implements Weights.
func (w *Product) Weight(proj []int) float64 {
	out := 1.0
	for _, j := range proj {
		out *= w.ForCoordinate(j)
	}

	return out
}

func (w *Product) String() string {
	return fmt.Sprintf("ProductWeights(%v, default=%g)", w.Gammas, w.DefaultWeight)
}

// OrderDependent implements γ(P) = Γ_{|P|}; Gammas[k−1] holds Γ_k. Orders
// beyond the explicit list fall back to DefaultWeight.
type OrderDependent struct {
	Gammas        []float64
	DefaultWeight float64
}

// NewOrderDependent returns order-dependent weights with Γ_k = gammas[k−1].
func NewOrderDependent(gammas []float64) *OrderDependent {
	return &OrderDependent{Gammas: append([]float64(nil), gammas...)}
}

// ForOrder returns Γ_k for projection order k ≥ 1.
func (w *OrderDependent) ForOrder(k int) float64 {
	if k >= 1 && k <= len(w.Gammas) {
		return w.Gammas[k-1]
	}

	return w.DefaultWeight
}

// Weight implements Weights.
func (w *OrderDependent) Weight(proj []int) float64 { return w.ForOrder(len(proj)) }

func (w *OrderDependent) String() string {
	return fmt.Sprintf("OrderDependentWeights(%v, default=%g)", w.Gammas, w.DefaultWeight)
}

// POD combines the two: γ(P) = Γ_{|P|} · Π_{j∈P} γ_j.
type POD struct {
	Order *OrderDependent
	Prod  *Product
}

// NewPOD returns POD weights from per-order and per-coordinate parts.
func NewPOD(order *OrderDependent, prod *Product) *POD {
	return &POD{Order: order, Prod: prod}
}

// Weight implements Weights.
func (w *POD) Weight(proj []int) float64 {
	return w.Order.Weight(proj) * w.Prod.Weight(proj)
}

func (w *POD) String() string {
	return fmt.Sprintf("PODWeights(%v, %v)", w.Order, w.Prod)
}

// ProjectionDependent lists γ(P) explicitly per projection; everything not
// listed weighs zero.
type ProjectionDependent struct {
	weights map[string]float64
	projs   [][]int
}

// NewProjectionDependent returns an empty listing.
func NewProjectionDependent() *ProjectionDependent {
	return &ProjectionDependent{weights: make(map[string]float64)}
}

// Set assigns γ(P); the projection is defensively copied and sorted.
func (w *ProjectionDependent) Set(proj []int, gamma float64) {
	p := append([]int(nil), proj...)
	sort.Ints(p)
	key := projKey(p)
	if _, seen := w.weights[key]; !seen {
		w.projs = append(w.projs, p)
	}
	w.weights[key] = gamma
}

// Weight implements Weights.
func (w *ProjectionDependent) Weight(proj []int) float64 {
	p := append([]int(nil), proj...)
	sort.Ints(p)

	return w.weights[projKey(p)]
}

// Projections returns the listed projections in insertion order.
func (w *ProjectionDependent) Projections() [][]int {
	out := make([][]int, len(w.projs))
	for i, p := range w.projs {
		out[i] = append([]int(nil), p...)
	}

	return out
}

func (w *ProjectionDependent) String() string {
	var parts []string
	for _, p := range w.projs {
		parts = append(parts, fmt.Sprintf("%v:%g", p, w.weights[projKey(p)]))
	}

	return "ProjectionDependentWeights{" + strings.Join(parts, " ") + "}"
}

// Combined sums a list of shapes: γ(P) = Σ γ_i(P).
type Combined struct {
	List []Weights
}

// NewCombined returns the sum of the given shapes.
func NewCombined(list ...Weights) *Combined { return &Combined{List: list} }

// Weight implements Weights.
func (w *Combined) Weight(proj []int) float64 {
	out := 0.0
	for _, sub := range w.List {
		out += sub.Weight(proj)
	}

	return out
}

func (w *Combined) String() string {
	var parts []string
	for _, sub := range w.List {
		parts = append(parts, sub.String())
	}

	return "CombinedWeights(" + strings.Join(parts, ", ") + ")"
}

// Scaled raises every weight of the wrapped shape to Power.
type Scaled struct {
	W     Weights
	Power float64
}

// NewScaled wraps w with a power scale.
func NewScaled(w Weights, power float64) *Scaled { return &Scaled{W: w, Power: power} }

// Weight implements Weights.
func (w *Scaled) Weight(proj []int) float64 {
	return math.Pow(w.W.Weight(proj), w.Power)
}

func (w *Scaled) String() string {
	return fmt.Sprintf("%v^%g", w.W, w.Power)
}

// projKey canonically encodes a sorted projection.
func projKey(sorted []int) string {
	var b strings.Builder
	for i, v := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}

	return b.String()
}
