// Package expr implements the linear expression that underlies both the
// user-facing Constraint (keyed by variable identity) and the simplex
// tableau's rows (keyed by symbol.Symbol): a real constant plus a finite
// mapping from keys to nonzero coefficients.
//
// Expr is generic over its key type so the tableau and the constraint
// layer share one implementation of the algebra spec §4.2 describes:
// scalar and expression arithmetic, term insertion with epsilon pruning,
// substitution, and the two solve-for operations a pivot needs.
package expr

import "github.com/katalvlaran/casso"

// Expr is c0 + sum(ci * ki) for a comparable key type K. The zero value is
// the constant expression 0.
type Expr[K comparable] struct {
	constant float64
	terms    map[K]float64
}

// New returns the constant expression c.
func New[K comparable](c float64) *Expr[K] {
	return &Expr[K]{constant: c}
}

// NewTerm returns the expression coeff*key + constant.
func NewTerm[K comparable](key K, coeff, constant float64) *Expr[K] {
	e := &Expr[K]{constant: constant, terms: map[K]float64{}}
	if !casso.NearZero(coeff) {
		e.terms[key] = coeff
	}
	return e
}

// Clone returns a deep copy of e; mutating the result never affects e.
func (e *Expr[K]) Clone() *Expr[K] {
	out := &Expr[K]{constant: e.constant}
	if len(e.terms) > 0 {
		out.terms = make(map[K]float64, len(e.terms))
		for k, c := range e.terms {
			out.terms[k] = c
		}
	}
	return out
}

// Constant returns the expression's constant term.
func (e *Expr[K]) Constant() float64 { return e.constant }

// SetConstant replaces the expression's constant term.
func (e *Expr[K]) SetConstant(c float64) { e.constant = c }

// AddConstant adds c to the constant term and returns the new value.
func (e *Expr[K]) AddConstant(c float64) float64 {
	e.constant += c
	return e.constant
}

// Coefficient returns key's coefficient, or 0 if key does not occur.
func (e *Expr[K]) Coefficient(key K) float64 {
	if e.terms == nil {
		return 0
	}
	return e.terms[key]
}

// IsConstant reports whether e has no terms.
func (e *Expr[K]) IsConstant() bool { return len(e.terms) == 0 }

// Empty reports whether e is the constant expression 0.
func (e *Expr[K]) Empty() bool { return e.IsConstant() && e.constant == 0 }

// Terms returns the live terms map. Callers must not mutate it directly;
// use Add/Erase so the epsilon-pruning invariant keeps holding.
func (e *Expr[K]) Terms() map[K]float64 {
	if e.terms == nil {
		return nil
	}
	return e.terms
}

// Add increments key's coefficient by coeff (inserting it if absent), and
// erases the term if the result falls within casso.Epsilon of zero.
func (e *Expr[K]) Add(key K, coeff float64) {
	if e.terms == nil {
		e.terms = map[K]float64{}
	}
	next := e.terms[key] + coeff
	if casso.NearZero(next) {
		delete(e.terms, key)
		return
	}
	e.terms[key] = next
}

// Erase removes key from the expression outright, regardless of its
// current coefficient.
func (e *Expr[K]) Erase(key K) {
	delete(e.terms, key)
}

// Scale multiplies every term and the constant by x, in place.
func (e *Expr[K]) Scale(x float64) *Expr[K] {
	e.constant *= x
	for k := range e.terms {
		e.terms[k] *= x
	}
	return e
}

// DivScalar divides every term and the constant by x, in place.
func (e *Expr[K]) DivScalar(x float64) *Expr[K] {
	return e.Scale(1.0 / x)
}

// Plus adds o into e in place and returns e.
func (e *Expr[K]) Plus(o *Expr[K]) *Expr[K] {
	e.constant += o.constant
	for k, c := range o.terms {
		e.Add(k, c)
	}
	return e
}

// Minus subtracts o from e in place and returns e.
func (e *Expr[K]) Minus(o *Expr[K]) *Expr[K] {
	e.constant -= o.constant
	for k, c := range o.terms {
		e.Add(k, -c)
	}
	return e
}

// PlusKey adds one unit of key (coefficient 1) into e in place.
func (e *Expr[K]) PlusKey(key K) *Expr[K] {
	e.Add(key, 1)
	return e
}

// MinusKey subtracts one unit of key (coefficient 1) from e in place.
func (e *Expr[K]) MinusKey(key K) *Expr[K] {
	e.Add(key, -1)
	return e
}

// MulExpr multiplies e by o in place. Legal only when at least one side is
// constant; otherwise the product would be quadratic and it returns
// casso.ErrNonlinear, leaving e unchanged.
func (e *Expr[K]) MulExpr(o *Expr[K]) error {
	if e.IsConstant() {
		c := e.constant
		*e = *o.Clone()
		e.Scale(c)
		return nil
	}
	if !o.IsConstant() {
		return casso.ErrNonlinear
	}
	e.Scale(o.constant)
	return nil
}

// DivExpr divides e by o in place. o must be constant; otherwise it
// returns casso.ErrNonlinear, leaving e unchanged.
func (e *Expr[K]) DivExpr(o *Expr[K]) error {
	if !o.IsConstant() {
		return casso.ErrNonlinear
	}
	e.Scale(1.0 / o.constant)
	return nil
}

// SubstituteOut replaces every occurrence of key with multiplier*repl,
// where multiplier is key's current coefficient in e. It reports whether
// key occurred in e at all; if not, e is left unchanged.
func (e *Expr[K]) SubstituteOut(key K, repl *Expr[K]) bool {
	multiplier, ok := e.terms[key]
	if !ok {
		return false
	}
	delete(e.terms, key)

	e.constant += multiplier * repl.constant
	for k, c := range repl.terms {
		e.Add(k, multiplier*c)
	}
	return true
}

// SolveFor rewrites the equation 0 = e (where key has a nonzero
// coefficient in e) as key = -(e with key removed)/coefficient: it erases
// key and scales every remaining term and the constant by -1/coefficient.
// Returns casso.ErrRowNotFound if key does not occur in e.
func (e *Expr[K]) SolveFor(key K) error {
	coeff, ok := e.terms[key]
	if !ok {
		return casso.ErrRowNotFound
	}
	delete(e.terms, key)
	e.Scale(-1.0 / coeff)
	return nil
}

// SolveForPair pivots rhs into the basis in place of lhs: subtracts one
// unit of lhs from e, then solves the result for rhs. Used when rewriting
// a row so that rhs (previously nonbasic) becomes basic and lhs
// (previously basic) becomes parametric.
func (e *Expr[K]) SolveForPair(lhs, rhs K) error {
	e.MinusKey(lhs)
	return e.SolveFor(rhs)
}

// newSubject erases subj from e and rewrites e so that, read as the
// equation "subj = e", it instead reads "subj's reciprocal coefficient
// applied to the rest of e". Returns the reciprocal of subj's original
// coefficient, as rhea's linear_expression::new_subject does;
// ChangeSubject uses it as the old subject's new coefficient.
func (e *Expr[K]) newSubject(subj K) float64 {
	coeff := e.terms[subj]
	reciprocal := 1.0 / coeff
	delete(e.terms, subj)
	e.Scale(-reciprocal)
	return reciprocal
}

// ChangeSubject destructively re-expresses e. If e currently represents
// the equation oldSubj = e (i.e. e is oldSubj's defining row with oldSubj
// itself absent from its own terms), ChangeSubject rewrites e in place so
// it instead represents newSubj = e, and records oldSubj's new
// coefficient in the rewritten e. newSubj must have a nonzero coefficient
// in e.
func (e *Expr[K]) ChangeSubject(oldSubj, newSubj K) {
	if oldSubj == newSubj {
		return
	}
	coeff := e.newSubject(newSubj)
	if e.terms == nil {
		e.terms = map[K]float64{}
	}
	e.terms[oldSubj] = coeff
}

// Evaluate computes constant + sum(coefficient(k) * value(k)) for every
// term, using value to resolve each key to its current numeric value.
func (e *Expr[K]) Evaluate(value func(K) float64) float64 {
	result := e.constant
	for k, c := range e.terms {
		result += c * value(k)
	}
	return result
}
