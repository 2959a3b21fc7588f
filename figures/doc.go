// Package figures implements figures of merit for digital nets and rank-1
// lattices, together with their evaluators.
//
// Two families are provided:
//
//   - TValueFigure — a weighted norm over coordinate projections of the
//     t-values computed by package tvalue. Evaluation is organized
//     coordinate by coordinate: when coordinate d is added, every projection
//     whose largest coordinate is d contributes, and the t-values of
//     sub-projections feed the lower bounds of larger ones.
//
//   - CoordUniform — a coordinate-uniform figure built from a univariate
//     kernel (package kernel) and a weight shape (package weights). The
//     weighted double sum over points and projections is folded into one
//     state vector per weight shape, updated per coordinate; this is the
//     evaluation order CBC and fast-CBC search exploit.
//
// Both evaluators run a small state machine (idle → building → complete /
// aborted): after every coordinate the running partial merit — a lower
// bound of the final value, since contributions are non-negative — is
// published to a ProgressHook, which may abort the evaluation (early
// abortion during search). Aborted evaluations return ErrAborted.
//
// PAlphaSL10 is the closed-form norm bound on Pα merits used to prune
// candidates; it has one specialization per recognized weight shape.
package figures
