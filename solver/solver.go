// Package solver implements the incremental simplex tableau engine: the
// heart of the system, maintaining the current basic solution as
// constraints, edit variables, and strength changes arrive and depart.
//
// A Solver owns its own symbol.Generator, so distinct Solver instances
// never share or contend over id allocation (see symbol.Generator's doc
// comment for why this module picked the per-engine alternative).
package solver

import (
	"fmt"

	"github.com/katalvlaran/casso"
	"github.com/katalvlaran/casso/constraint"
	"github.com/katalvlaran/casso/expr"
	"github.com/katalvlaran/casso/strength"
	"github.com/katalvlaran/casso/symbol"
	"github.com/katalvlaran/casso/variable"
	"github.com/rs/zerolog"
)

// row is a tableau row: a linear combination of internal symbols.
type row = expr.Expr[symbol.Symbol]

// constraintInfo bundles the two symbols a constraint introduced into the
// tableau (see constraint kinds in makeRow) and the constant it was last
// installed with, so removal and set-constant can find their way back.
type constraintInfo struct {
	marker, other symbol.Symbol
	prevConstant  float64
}

// editInfo bundles an edit variable's backing equality constraint and the
// error symbols introduced for it, mirroring constraintInfo for the
// suggest_value delta math.
type editInfo struct {
	c            constraint.Constraint
	plus, minus  symbol.Symbol
	prevConstant float64
}

// Solver is the simplex tableau engine. The zero value is not usable;
// construct with New.
type Solver struct {
	gen *symbol.Generator

	vars        map[*variable.Variable]symbol.Symbol
	rows        map[symbol.Symbol]*row
	constraints map[constraint.Constraint]constraintInfo
	edits       map[*variable.Variable]editInfo

	infeasibleRows []symbol.Symbol

	objective  *row
	artificial *row

	autoUpdate bool
	logger     zerolog.Logger
}

// Option configures a Solver at construction time.
type Option func(*Solver)

// WithAutoUpdate sets the initial auto-update flag (default true): when
// on, external variables are refreshed from the tableau after every
// mutating public call.
func WithAutoUpdate(flag bool) Option {
	return func(s *Solver) { s.autoUpdate = flag }
}

// WithLogger overrides the package-default logger (casso.Logger()) for
// this Solver's pivot tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Solver) { s.logger = l }
}

// New returns a fresh Solver with an empty tableau.
func New(opts ...Option) *Solver {
	s := &Solver{
		gen:         symbol.NewGenerator(),
		vars:        make(map[*variable.Variable]symbol.Symbol),
		rows:        make(map[symbol.Symbol]*row),
		constraints: make(map[constraint.Constraint]constraintInfo),
		edits:       make(map[*variable.Variable]editInfo),
		objective:   expr.New[symbol.Symbol](0),
		autoUpdate:  true,
		logger:      casso.Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HasConstraint reports whether c is currently installed.
func (s *Solver) HasConstraint(c constraint.Constraint) bool {
	_, ok := s.constraints[c]
	return ok
}

// HasEditVar reports whether v is currently registered as an edit
// variable.
func (s *Solver) HasEditVar(v *variable.Variable) bool {
	_, ok := s.edits[v]
	return ok
}

// AutoUpdate toggles the auto-refresh flag and, if turning it on,
// immediately refreshes.
func (s *Solver) AutoUpdate(flag bool) {
	s.autoUpdate = flag
	s.autoupdate()
}

// UpdateExternalVariables walks every known external variable and writes
// back the current tableau value: its basic row's constant if it is
// basic, else zero.
func (s *Solver) UpdateExternalVariables() {
	for v, sym := range s.vars {
		if r, ok := s.rows[sym]; ok {
			v.SetValue(r.Constant())
		} else {
			v.SetValue(0)
		}
	}
}

func (s *Solver) autoupdate() {
	if s.autoUpdate {
		s.UpdateExternalVariables()
	}
}

func (s *Solver) getVarSymbol(v *variable.Variable) symbol.Symbol {
	if sym, ok := s.vars[v]; ok {
		return sym
	}
	sym := s.gen.External()
	s.vars[v] = sym
	return sym
}

// AddConstraint installs c into the tableau. Returns casso.ErrDuplicateConstraint
// if c is already present, or casso.ErrRequiredFailure if c is required and no
// assignment can satisfy it alongside the constraints already installed.
func (s *Solver) AddConstraint(c constraint.Constraint) error {
	if err := s.addConstraint(c); err != nil {
		return err
	}
	s.autoupdate()
	return nil
}

// AddConstraints installs every constraint in cs, in order. It is not
// atomic across the batch: if a later constraint fails, earlier ones in
// cs remain installed.
func (s *Solver) AddConstraints(cs []constraint.Constraint) error {
	for _, c := range cs {
		if err := s.addConstraint(c); err != nil {
			return err
		}
	}
	s.autoupdate()
	return nil
}

func (s *Solver) addConstraint(c constraint.Constraint) error {
	if s.HasConstraint(c) {
		return casso.ErrDuplicateConstraint
	}

	r, marker, other := s.makeRow(c)
	subject := s.chooseSubject(r, marker, other)

	if subject.IsNil() && allDummies(r) {
		if !casso.NearZero(r.Constant()) {
			s.undoObjective(c, marker, other)
			return casso.ErrRequiredFailure
		}
		subject = marker
	}

	if subject.IsNil() {
		ok, err := s.addWithArtificialVariable(r)
		if err != nil {
			return err
		}
		if !ok {
			s.undoObjective(c, marker, other)
			return casso.ErrRequiredFailure
		}
	} else {
		if err := r.SolveFor(subject); err != nil {
			return fmt.Errorf("solver: add_constraint: %w", casso.ErrInternal)
		}
		s.substituteOut(subject, r)
		s.rows[subject] = r
	}

	s.constraints[c] = constraintInfo{marker: marker, other: other, prevConstant: -c.Expr().Constant()}

	s.logger.Debug().Str("constraint", c.String()).Msg("constraint added")

	return s.optimize(s.objective)
}

// undoObjective reverses the objective contributions makeRow added for a
// constraint whose installation failed before those symbols ever reached
// a row, so the engine is left exactly as it was before the call.
func (s *Solver) undoObjective(c constraint.Constraint, marker, other symbol.Symbol) {
	w := c.Strength().Weight()
	if marker.IsError() {
		s.objective.Add(marker, -w)
	}
	if !other.IsNil() && other.IsError() {
		s.objective.Add(other, -w)
	}
}

// RemoveConstraint uninstalls c. Returns casso.ErrConstraintNotFound if c is
// not currently installed.
func (s *Solver) RemoveConstraint(c constraint.Constraint) error {
	if err := s.removeConstraint(c); err != nil {
		return err
	}
	s.autoupdate()
	return nil
}

// RemoveConstraints uninstalls every constraint in cs, in order.
func (s *Solver) RemoveConstraints(cs []constraint.Constraint) error {
	for _, c := range cs {
		if err := s.removeConstraint(c); err != nil {
			return err
		}
	}
	s.autoupdate()
	return nil
}

func (s *Solver) removeConstraint(c constraint.Constraint) error {
	info, ok := s.constraints[c]
	if !ok {
		return casso.ErrConstraintNotFound
	}
	delete(s.constraints, c)

	w := c.Strength().Weight()
	if info.marker.IsError() {
		s.addInto(s.objective, info.marker, -w)
	}
	if info.other.IsError() {
		s.addInto(s.objective, info.other, -w)
	}

	if _, ok := s.rows[info.marker]; ok {
		delete(s.rows, info.marker)
	} else {
		leaving, found := s.getMarkerLeavingRow(info.marker)
		if !found {
			return fmt.Errorf("solver: remove_constraint: failed to find leaving row: %w", casso.ErrInternal)
		}
		r := s.rows[leaving]
		delete(s.rows, leaving)
		if err := r.SolveForPair(leaving, info.marker); err != nil {
			return fmt.Errorf("solver: remove_constraint: %w", casso.ErrInternal)
		}
		s.substituteOut(info.marker, r)
	}

	s.logger.Debug().Str("constraint", c.String()).Msg("constraint removed")

	return s.optimize(s.objective)
}

// SetConstant updates c's right-hand side to k and re-optimizes. c must
// already be installed.
func (s *Solver) SetConstant(c constraint.Constraint, k float64) error {
	info, ok := s.constraints[c]
	if !ok {
		return casso.ErrConstraintNotFound
	}

	delta := -(k - info.prevConstant)
	info.prevConstant = k
	s.constraints[c] = info

	if info.marker.IsSlack() || c.IsRequired() {
		if c.Operator() == constraint.Geq {
			delta = -delta
		}
		for sym, r := range s.rows {
			r.AddConstant(r.Coefficient(info.marker) * delta)
			if !sym.IsExternal() && r.Constant() < 0 {
				s.infeasibleRows = append(s.infeasibleRows, sym)
			}
		}
	} else if r, ok := s.rows[info.marker]; ok {
		if r.AddConstant(delta) < 0 {
			s.infeasibleRows = append(s.infeasibleRows, info.marker)
		}
	} else if r, ok := s.rows[info.other]; ok {
		if r.AddConstant(-delta) < 0 {
			s.infeasibleRows = append(s.infeasibleRows, info.other)
		}
	} else {
		for sym, r := range s.rows {
			r.AddConstant(r.Coefficient(info.other) * delta)
			if !sym.IsExternal() && r.Constant() < 0 {
				s.infeasibleRows = append(s.infeasibleRows, sym)
			}
		}
	}

	if err := s.dualOptimize(); err != nil {
		return err
	}
	s.autoupdate()
	return nil
}

// ChangeStrength re-weights c's contribution to the objective. Legal only
// when c's marker symbol is an error symbol, i.e. c is a non-required
// equality; otherwise returns casso.ErrBadRequiredStrength.
func (s *Solver) ChangeStrength(c constraint.Constraint, str strength.Strength) error {
	info, ok := s.constraints[c]
	if !ok {
		return casso.ErrConstraintNotFound
	}
	if !info.marker.IsError() {
		return casso.ErrBadRequiredStrength
	}

	oldWeight := c.Strength().Weight()
	c.SetStrength(str)
	diff := c.Strength().Weight() - oldWeight
	if casso.NearZero(diff) {
		return nil
	}

	s.addInto(s.objective, info.marker, diff)
	s.addInto(s.objective, info.other, diff)

	if err := s.optimize(s.objective); err != nil {
		return err
	}
	s.autoupdate()
	return nil
}

// AddEditVar registers v as an edit variable at strength str, backed by
// an internally-created constraint v == v.Value(). str must not be
// strength.Required; otherwise returns casso.ErrBadRequiredStrength.
func (s *Solver) AddEditVar(v *variable.Variable, str strength.Strength) error {
	if s.HasEditVar(v) {
		return casso.ErrDuplicateEditVariable
	}
	if str.IsRequired() {
		return casso.ErrBadRequiredStrength
	}

	initial := v.Value()
	lhs := expr.NewTerm[*variable.Variable](v, 1, 0)
	rhs := expr.New[*variable.Variable](initial)
	c := constraint.Build(lhs, rhs, constraint.Eq, str)

	if err := s.addConstraint(c); err != nil {
		return err
	}

	info := s.constraints[c]
	s.edits[v] = editInfo{c: c, plus: info.marker, minus: info.other, prevConstant: initial}
	s.autoupdate()
	return nil
}

// AddEditVars registers every variable in vs at strength str.
func (s *Solver) AddEditVars(vs []*variable.Variable, str strength.Strength) error {
	for _, v := range vs {
		if err := s.AddEditVar(v, str); err != nil {
			return err
		}
	}
	return nil
}

// RemoveEditVar unregisters v, removing its backing constraint.
func (s *Solver) RemoveEditVar(v *variable.Variable) error {
	info, ok := s.edits[v]
	if !ok {
		return casso.ErrUnknownEditVariable
	}
	if err := s.removeConstraint(info.c); err != nil {
		return err
	}
	delete(s.edits, v)
	s.autoupdate()
	return nil
}

// RemoveEditVars unregisters every variable in vs.
func (s *Solver) RemoveEditVars(vs []*variable.Variable) error {
	for _, v := range vs {
		if err := s.RemoveEditVar(v); err != nil {
			return err
		}
	}
	return nil
}

// SuggestValue queues a new target value for edit variable v and
// immediately dual-optimizes. v must already be registered via
// AddEditVar; otherwise returns casso.ErrUnknownEditVariable.
func (s *Solver) SuggestValue(v *variable.Variable, x float64) error {
	if err := s.suggestValue(v, x); err != nil {
		return err
	}
	if err := s.dualOptimize(); err != nil {
		return err
	}
	s.autoupdate()
	return nil
}

func (s *Solver) suggestValue(v *variable.Variable, x float64) error {
	info, ok := s.edits[v]
	if !ok {
		return casso.ErrUnknownEditVariable
	}
	delta := x - info.prevConstant
	info.prevConstant = x
	s.edits[v] = info

	if r, ok := s.rows[info.plus]; ok {
		if r.AddConstant(-delta) < 0 {
			s.infeasibleRows = append(s.infeasibleRows, info.plus)
		}
		return nil
	}
	if r, ok := s.rows[info.minus]; ok {
		if r.AddConstant(delta) < 0 {
			s.infeasibleRows = append(s.infeasibleRows, info.minus)
		}
		return nil
	}
	for sym, r := range s.rows {
		r.AddConstant(r.Coefficient(info.plus) * delta)
		if !sym.IsExternal() && r.Constant() < 0 {
			s.infeasibleRows = append(s.infeasibleRows, sym)
		}
	}
	return nil
}

// Suggest registers v as an edit variable at strength.Strong if it isn't
// one already, suggests x, and refreshes external variables.
func (s *Solver) Suggest(v *variable.Variable, x float64) error {
	if !s.HasEditVar(v) {
		if err := s.AddEditVar(v, strength.Strong()); err != nil {
			return err
		}
	}
	return s.SuggestValue(v, x)
}

// Suggestion pairs an edit variable with a target value, for SuggestMany.
type Suggestion struct {
	Var   *variable.Variable
	Value float64
}

// SuggestMany registers any not-yet-registered variables in list at
// strength.Strong, applies every suggested delta, then dual-optimizes and
// refreshes once for the whole batch.
func (s *Solver) SuggestMany(list []Suggestion) error {
	for _, sg := range list {
		if !s.HasEditVar(sg.Var) {
			if err := s.AddEditVar(sg.Var, strength.Strong()); err != nil {
				return err
			}
		}
		if err := s.suggestValue(sg.Var, sg.Value); err != nil {
			return err
		}
	}
	if err := s.dualOptimize(); err != nil {
		return err
	}
	s.autoupdate()
	return nil
}
