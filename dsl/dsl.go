// Package dsl offers a sugar layer for building linear expressions and
// constraints over *variable.Variable, in the spirit of rhea's
// operator-overloaded expression builder (linear_expression.hpp,
// constraint.hpp). Go has no operator overloading, so each operator
// becomes an explicit function: Plus/Minus/Scale for arithmetic, Eq/Leq/Geq
// for comparison, At for the strength "pipe".
//
// dsl is a convenience layer over constraint and expr, not part of the
// tableau engine itself; a Solver only ever requires a constraint.Constraint.
package dsl

import (
	"github.com/katalvlaran/casso/constraint"
	"github.com/katalvlaran/casso/expr"
	"github.com/katalvlaran/casso/strength"
	"github.com/katalvlaran/casso/variable"
)

// Expr is the expression type this package builds: a linear combination
// of variables and a constant.
type Expr = expr.Expr[*variable.Variable]

// Var returns the expression consisting of v alone (coefficient 1).
func Var(v *variable.Variable) *Expr {
	return expr.NewTerm[*variable.Variable](v, 1, 0)
}

// Const returns the constant expression c.
func Const(c float64) *Expr {
	return expr.New[*variable.Variable](c)
}

// Plus returns a+b, leaving both operands unmodified.
func Plus(a, b *Expr) *Expr {
	return a.Clone().Plus(b)
}

// Minus returns a-b, leaving both operands unmodified.
func Minus(a, b *Expr) *Expr {
	return a.Clone().Minus(b)
}

// Scale returns a*x, leaving a unmodified.
func Scale(a *Expr, x float64) *Expr {
	return a.Clone().Scale(x)
}

// Div returns a/x, leaving a unmodified. Panics if x is zero, matching
// the "divide by constant only" contract enforced at the expr level for
// expression-by-expression division.
func Div(a *Expr, x float64) *Expr {
	if x == 0 {
		panic("dsl: division by zero")
	}
	return a.Clone().DivScalar(x)
}

// Eq builds the required constraint lhs == rhs. Use At to change its
// strength.
func Eq(lhs, rhs *Expr) constraint.Constraint {
	return constraint.Build(lhs, rhs, constraint.Eq, strength.Required())
}

// Leq builds the required constraint lhs <= rhs.
func Leq(lhs, rhs *Expr) constraint.Constraint {
	return constraint.Build(lhs, rhs, constraint.Leq, strength.Required())
}

// Geq builds the required constraint lhs >= rhs.
func Geq(lhs, rhs *Expr) constraint.Constraint {
	return constraint.Build(lhs, rhs, constraint.Geq, strength.Required())
}

// At returns a copy of c with strength str, the functional equivalent of
// rhea's `constraint | strength::medium()` pipe combinator.
func At(c constraint.Constraint, str strength.Strength) constraint.Constraint {
	return constraint.WithStrength(c, str)
}
