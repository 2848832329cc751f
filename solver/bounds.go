package solver

import (
	"github.com/katalvlaran/casso/constraint"
	"github.com/katalvlaran/casso/expr"
	"github.com/katalvlaran/casso/strength"
	"github.com/katalvlaran/casso/variable"
)

// AddLowerBound is sugar for AddConstraint(v >= lower) at strength.Required.
func (s *Solver) AddLowerBound(v *variable.Variable, lower float64) error {
	lhs := expr.NewTerm[*variable.Variable](v, 1, 0)
	rhs := expr.New[*variable.Variable](lower)
	return s.AddConstraint(constraint.Build(lhs, rhs, constraint.Geq, strength.Required()))
}

// AddUpperBound is sugar for AddConstraint(v <= upper) at strength.Required.
func (s *Solver) AddUpperBound(v *variable.Variable, upper float64) error {
	lhs := expr.NewTerm[*variable.Variable](v, 1, 0)
	rhs := expr.New[*variable.Variable](upper)
	return s.AddConstraint(constraint.Build(lhs, rhs, constraint.Leq, strength.Required()))
}

// AddBounds adds both AddLowerBound(v, lower) and AddUpperBound(v, upper).
func (s *Solver) AddBounds(v *variable.Variable, lower, upper float64) error {
	if err := s.AddLowerBound(v, lower); err != nil {
		return err
	}
	return s.AddUpperBound(v, upper)
}
