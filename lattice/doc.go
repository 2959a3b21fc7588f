// Package lattice implements rank-1 integration lattices.
//
// An ordinary rank-1 lattice with n points and generating vector
// (a₁, …, a_d) is the point set x_i = (i·a₁ mod n, …, i·a_d mod n)/n.
// Polynomial lattice rules over GF(2)[x] are materialized through their
// generating matrices in package digitalnet; this package contributes what
// is specific to the lattice view: generating-vector value spaces, and the
// cyclic structure of the unit group that fast-CBC exploits.
//
// Cyclic groups are available for the two cases whose unit group is a
// single cycle: Z_n with n prime, and GF(2)[x]/P with P irreducible (a
// finite field, so every nonzero residue is a power of a generator). Other
// moduli yield ErrNotCyclic.
package lattice
