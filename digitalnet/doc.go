// Package digitalnet implements digital nets in base 2 and their
// construction methods.
//
// A digital net is defined by one generating matrix per coordinate: the
// i-th point's j-th coordinate is obtained by multiplying the binary digit
// vector of i by matrix j over GF(2) and reading the result as a binary
// fraction. With matrices of C columns the net has 2^C points.
//
// Three construction methods are provided, mirroring the classic taxonomy:
//
//   - Sobol: a coordinate is parameterized by direction numbers m_j tied to
//     the coordinate's primitive polynomial over GF(2); matrices follow the
//     Sobol' recurrence and coordinate 0 is the identity matrix.
//   - Polynomial: a polynomial lattice rule over GF(2)[x]; a coordinate is
//     parameterized by a generating polynomial and the matrix holds the
//     digits of its Laurent expansion against the modulus.
//   - Explicit: the generating value is the matrix itself; random sampling
//     draws uniform rows while keeping them linearly independent (unilevel)
//     or with forced leading ones (multilevel).
//
// Construction methods share one capability set (Construction), so search
// drivers can enumerate, sample and materialize candidate nets uniformly.
// Nets built from a construction share their per-coordinate matrices with
// every net extended from them, which keeps component-by-component search
// cheap: candidate extensions reuse the common prefix.
package digitalnet
