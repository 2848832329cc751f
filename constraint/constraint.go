// Package constraint implements the user-level equations and inequalities
// Solver consumes: a canonical linear expression over external variables,
// a relational operator, and a strength.
//
// A Constraint is immutable once built except for its strength (changed
// in place via SetStrength, for Solver.ChangeStrength). Equality is by
// pointer identity of the underlying data, so two structurally identical
// constraints built separately are still distinct — exactly as spec §4.3
// requires, and as rhea's constraint::operator== (shared_ptr identity)
// implements it.
package constraint

import (
	"fmt"

	"github.com/katalvlaran/casso"
	"github.com/katalvlaran/casso/expr"
	"github.com/katalvlaran/casso/strength"
	"github.com/katalvlaran/casso/variable"
)

// Relation is the relational operator between a constraint's canonical
// expression and zero.
type Relation uint8

const (
	// Eq is the equality relation: expr == 0.
	Eq Relation = iota
	// Leq is the less-than-or-equal relation: expr <= 0.
	Leq
	// Geq is the greater-than-or-equal relation: expr >= 0.
	Geq
)

// String renders the relation as its mathematical symbol.
func (r Relation) String() string {
	switch r {
	case Eq:
		return "=="
	case Leq:
		return "<="
	case Geq:
		return ">="
	default:
		return "?"
	}
}

// Expr is the expression type a Constraint canonicalizes: a linear
// expression over external variable identities.
type Expr = expr.Expr[*variable.Variable]

// data is the shared, pointer-identity-carrying backing store for a
// Constraint. Constraint itself is a thin value wrapper around *data, the
// same shape rhea's constraint gives its shared_ptr<data>.
type data struct {
	expr *Expr
	op   Relation
	str  strength.Strength
}

// Constraint is a value type wrapping a pointer to its canonical data.
// Copying a Constraint copies the reference, not the identity: two
// Constraint values compare equal (with Is, or Go's == operator) iff they
// were built from, or copied from, the same construction call.
type Constraint struct {
	d *data
}

// Build canonicalizes lhs `op` rhs at strength str into E `op` 0, where
// E = lhs - rhs (rhea's constraint.hpp convention: the operator is kept,
// never flipped, and the left-hand side keeps its sign). lhs and rhs are
// cloned, never retained by reference, so later mutation of the
// expressions callers built does not affect the constraint.
func Build(lhs, rhs *Expr, op Relation, str strength.Strength) Constraint {
	e := lhs.Clone()
	e.Minus(rhs)
	return Constraint{d: &data{expr: e, op: op, str: str}}
}

// WithStrength returns a new Constraint with the same canonical expression
// and operator as c but strength str. c itself is unchanged. Mirrors
// rhea's constraint(const constraint&, strength) constructor, used by the
// `| strength::medium()` builder idiom.
func WithStrength(c Constraint, str strength.Strength) Constraint {
	return Constraint{d: &data{expr: c.d.expr.Clone(), op: c.d.op, str: str}}
}

// IsNil reports whether c was never built (the zero Constraint).
func (c Constraint) IsNil() bool { return c.d == nil }

// Is reports whether c and o are the same constraint identity.
func (c Constraint) Is(o Constraint) bool { return c.d == o.d }

// Expr returns c's canonical expression. Callers must not mutate it: a
// Constraint is immutable apart from SetStrength.
func (c Constraint) Expr() *Expr { return c.d.expr }

// Operator returns c's relational operator.
func (c Constraint) Operator() Relation { return c.d.op }

// Strength returns c's current strength.
func (c Constraint) Strength() strength.Strength { return c.d.str }

// SetStrength overwrites c's strength in place. Solver.ChangeStrength is
// the only intended caller; it first checks that c is eligible (non
// required) before calling this.
func (c Constraint) SetStrength(s strength.Strength) { c.d.str = s }

// IsInequality reports whether c's operator is <= or >=.
func (c Constraint) IsInequality() bool { return c.d.op != Eq }

// IsRequired reports whether c's strength is strength.Required.
func (c Constraint) IsRequired() bool { return c.d.str.IsRequired() }

// IsSatisfied evaluates c's canonical expression against the variables'
// current values and tests the result against zero per c's operator,
// within casso.Epsilon.
func (c Constraint) IsSatisfied() bool {
	v := c.d.expr.Evaluate(func(v *variable.Variable) float64 { return v.Value() })
	switch c.d.op {
	case Eq:
		return casso.NearZero(v)
	case Leq:
		return v <= casso.Epsilon
	case Geq:
		return v >= -casso.Epsilon
	default:
		return false
	}
}

// String renders the constraint for diagnostics, e.g. "3 + 1*x <= 0 @ strong(1)".
func (c Constraint) String() string {
	return fmt.Sprintf("%g%s %s 0 @ %s", c.d.expr.Constant(), termsString(c.d.expr), c.d.op, c.d.str)
}

func termsString(e *Expr) string {
	s := ""
	for v, coeff := range e.Terms() {
		s += fmt.Sprintf(" + %g*%s", coeff, v)
	}
	return s
}
