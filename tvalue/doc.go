// Package tvalue computes the quality parameter t of digital nets in base 2.
//
// The t-value of a net with m×m generating matrices measures equidistribution:
// it is the smallest t such that every dyadic box of volume 2^(t−m) holds its
// fair share of points; smaller is better. Checking a candidate t reduces to
// rank conditions over GF(2): for k = m − t, every way of taking the first
// a₁, …, aₛ rows (aᵢ ≥ 1, Σaᵢ = k) from the s generating matrices must give k
// linearly independent rows.
//
// Enumerating those row selections is the job of CompositionMaker, which
// visits the compositions of k into s positive parts in a revolving-door
// order: consecutive compositions differ by moving a single unit between two
// parts. The engine therefore performs exactly one row replacement in the
// gf2.Reducer per composition, which is what makes the search affordable.
//
// TValue handles the single-net case; TSequence returns the per-level
// t-values of an embedded (multilevel) net, tightening an upper-bound vector
// level by level while scanning k from high to low.
package tvalue
