package casso

import "golang.org/x/exp/constraints"

// Epsilon is the single tolerance used everywhere a "close enough to zero"
// decision has to be made: pruning near-zero terms out of expressions,
// deciding row feasibility, and evaluating Constraint.IsSatisfied. Spec §5
// fixes one epsilon for the whole engine so behavior stays predictable.
const Epsilon = 1e-8

// NearZero reports whether v is within Epsilon of zero.
func NearZero[F constraints.Float](v F) bool {
	return v < F(Epsilon) && v > -F(Epsilon)
}

// Approx reports whether a and b are within Epsilon of each other.
func Approx[F constraints.Float](a, b F) bool {
	return NearZero(a - b)
}
