package casso

import "errors"

// Sentinel errors returned by casso and its subpackages. Callers branch on
// these with errors.Is; messages are never matched by string comparison.
var (
	// ErrDuplicateConstraint is returned by Solver.AddConstraint when the
	// constraint is already installed.
	ErrDuplicateConstraint = errors.New("casso: constraint already added")

	// ErrConstraintNotFound is returned by Solver.RemoveConstraint,
	// Solver.SetConstant, and Solver.ChangeStrength when the constraint was
	// never added, or was already removed.
	ErrConstraintNotFound = errors.New("casso: constraint not found")

	// ErrDuplicateEditVariable is returned by Solver.AddEditVar when the
	// variable is already registered as an edit variable.
	ErrDuplicateEditVariable = errors.New("casso: edit variable already added")

	// ErrUnknownEditVariable is returned by Solver.SuggestValue and
	// Solver.RemoveEditVar when the variable was never registered with
	// Solver.AddEditVar.
	ErrUnknownEditVariable = errors.New("casso: unknown edit variable")

	// ErrBadRequiredStrength is returned by Solver.AddEditVar when asked to
	// register an edit variable at Required strength, and by
	// Solver.ChangeStrength when the target constraint is required (its
	// marker carries no error symbol to re-weight).
	ErrBadRequiredStrength = errors.New("casso: required strength not allowed here")

	// ErrBadWeight is returned by strength constructors when the weight
	// argument falls outside its legal range.
	ErrBadWeight = errors.New("casso: weight out of range")

	// ErrNonlinear is returned by expr.Expr arithmetic when multiplying two
	// non-constant expressions, or dividing by a non-constant expression.
	ErrNonlinear = errors.New("casso: expression would be nonlinear")

	// ErrRequiredFailure is returned by Solver.AddConstraint when no
	// assignment can satisfy the required subset of constraints. It is
	// user-recoverable: the solver is left as if the call never happened.
	ErrRequiredFailure = errors.New("casso: required constraint cannot be satisfied")

	// ErrRowNotFound signals an internal lookup of a basic symbol that
	// turned out not to be basic. It indicates a broken invariant.
	ErrRowNotFound = errors.New("casso: row not found")

	// ErrInternal signals a broken tableau invariant or an unbounded
	// objective row. It is not user-recoverable.
	ErrInternal = errors.New("casso: internal error")

	// ErrParse is returned by package parser when a constraint string does
	// not match the grammar, or references an unregistered variable name.
	ErrParse = errors.New("casso: parse error")
)
