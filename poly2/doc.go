// Package poly2 implements arithmetic for polynomials over GF(2).
//
// A polynomial is encoded in a single machine word: bit i of a Poly is the
// coefficient of x^i, so integer 13 (0b1101) is x³ + x² + 1. This bounds
// degrees at 63, far beyond the modulus degrees used by polynomial lattice
// rules (the number of points is 2^deg).
//
// Beyond ring operations (Add, Mul, DivMod, GCD) the package provides the
// two predicates that matter for lattice constructions — irreducibility
// (Ben-Or/Rabin test) and primitivity (order check against the factorization
// of 2^d − 1) — and Expand, the formal Laurent-series expansion q/p used to
// fill the generating matrices of polynomial lattice point sets.
package poly2
