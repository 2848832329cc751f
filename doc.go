// Package casso is an incremental implementation of the Cassowary
// constraint-solving algorithm: given a set of linear equalities and
// inequalities over real-valued variables, some required and some merely
// preferred at a given strength, it finds an assignment that satisfies every
// required constraint exactly while minimizing the weighted sum of preference
// violations.
//
// 🚀 What is casso?
//
//	A small simplex tableau engine that supports adding and removing
//	constraints, suggesting new values for edit variables, and changing
//	constraint strengths, all without restarting the solve:
//		• strength  — the required/strong/medium/weak preference hierarchy
//		• symbol    — the tableau's internal variable handles
//		• expr      — linear expressions, generic over the key type
//		• variable  — user-visible, solver-assigned quantities
//		• constraint — equations/inequalities between expressions
//		• solver    — the tableau engine itself
//
// Peripheral packages build on top of the solver but the solver never
// depends on them: dsl (expression-building sugar), parser (a small textual
// constraint grammar), stays (keep-near-current-value bookkeeping), and
// point (a 2D point convenience pairing two variables).
//
// This package also holds the sentinel errors shared by every subpackage
// and the package-wide logger, so that failure modes can be tested with
// errors.Is regardless of which layer detected them.
//
//	go get github.com/katalvlaran/casso
package casso
