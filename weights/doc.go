// Package weights models the projection weights of weighted figures of
// merit. A weight function assigns a non-negative importance γ(P) to every
// finite set P of coordinate indices; figures of merit sum weighted
// contributions over projections.
//
// Five shapes are recognized:
//
//   - Product: γ(P) = Π_{j∈P} γ_j
//   - OrderDependent: γ(P) = Γ_{|P|}
//   - POD (product and order-dependent): γ(P) = Γ_{|P|} · Π_{j∈P} γ_j
//   - ProjectionDependent: γ(P) listed explicitly, 0 elsewhere
//   - Combined: a sum of any of the above
//
// Scaled wraps a shape and raises every weight to a fixed power, which is
// how a norm exponent is pushed into the weights.
//
// MaxCard derives the largest projection order carrying non-zero weight —
// the quantity that bounds projection enumeration in figures of merit.
// Shapes with a positive default weight have unbounded support and are
// rejected there.
package weights
