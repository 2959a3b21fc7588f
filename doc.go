// Package lowdisc is your toolbox for constructing and searching
// low-discrepancy point sets — digital nets in base 2 and rank-1
// integration lattices — for quasi-Monte Carlo integration.
//
// 🚀 What is lowdisc?
//
//	A pure-Go library that brings together:
//		• GF(2) linear algebra: packed bit matrices & an incremental row reducer
//		• Quality parameters: the t-value of a digital net, single- and multilevel
//		• Constructions: Sobol', polynomial lattices over GF(2)[x], explicit matrices
//		• Figures of merit: weighted t-value figures, coordinate-uniform kernels (Pα, Bα, IAα)
//		• Search: exhaustive, random, component-by-component (CBC) and fast-CBC drivers
//
// ✨ Why choose lowdisc?
//
//   - Deterministic – every search is reproducible from its seed
//   - Incremental – the row reducer restores reduced form after a single
//     row swap without re-running full elimination
//   - Extensible – pluggable weight shapes, kernels and observers
//
// Under the hood, everything is organized into sibling subpackages:
//
//	gf2/        — packed bit matrices and the progressive row reducer
//	poly2/      — polynomial arithmetic over GF(2)
//	tvalue/     — composition enumeration and the t-value engine
//	digitalnet/ — digital nets in base 2 and their construction methods
//	lattice/    — rank-1 ordinary and polynomial lattice rules
//	weights/    — projection weight shapes (product, order-dependent, POD, …)
//	kernel/     — one-dimensional merit kernels (Pα, Bα, IAα)
//	figures/    — figures of merit and their evaluators
//	search/     — exploration strategies, observers, filters and combiners
//
// The cmd/lowdisc binary exposes the search drivers on the command line.
//
//	go get github.com/lowdisc/lowdisc
package lowdisc
