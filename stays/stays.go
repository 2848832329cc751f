// Package stays implements the "stay" convenience rhea's solver.hpp layers
// on top of simplex_solver: a constraint that pins a variable to whatever
// value it currently holds, at a (usually weak) strength, so the engine
// prefers to leave it alone unless a stronger constraint says otherwise.
//
// Unlike an edit variable, a stay is not meant to be suggested new values
// through; it exists purely so that otherwise-underdetermined variables
// have a default resting position. Stays should be added before other
// constraints (rhea's stay_constraint.hpp comment), since a variable's
// initial value is whatever it held at construction (usually zero).
package stays

import (
	"github.com/katalvlaran/casso"
	"github.com/katalvlaran/casso/constraint"
	"github.com/katalvlaran/casso/expr"
	"github.com/katalvlaran/casso/solver"
	"github.com/katalvlaran/casso/strength"
	"github.com/katalvlaran/casso/variable"
)

// Manager tracks the stay constraints it has installed into a Solver, so
// they can be individually removed later without the caller needing to
// keep the constraint.Constraint handle around.
type Manager struct {
	sv    *solver.Solver
	stays map[*variable.Variable]constraint.Constraint
}

// New returns a Manager that installs and removes stays through sv.
func New(sv *solver.Solver) *Manager {
	return &Manager{sv: sv, stays: make(map[*variable.Variable]constraint.Constraint)}
}

// Add installs a stay on v at strength str (strength.Weak() if the
// caller has no preference), pinning v to its value at the moment Add is
// called. Returns casso.ErrDuplicateConstraint if v already has a stay.
func (m *Manager) Add(v *variable.Variable, str strength.Strength) error {
	if _, ok := m.stays[v]; ok {
		return casso.ErrDuplicateConstraint
	}
	lhs := expr.NewTerm[*variable.Variable](v, 1, 0)
	rhs := expr.New[*variable.Variable](v.Value())
	c := constraint.Build(lhs, rhs, constraint.Eq, str)

	if err := m.sv.AddConstraint(c); err != nil {
		return err
	}
	m.stays[v] = c
	return nil
}

// AddAll installs a stay at strength str on every variable in vs.
func (m *Manager) AddAll(vs []*variable.Variable, str strength.Strength) error {
	for _, v := range vs {
		if err := m.Add(v, str); err != nil {
			return err
		}
	}
	return nil
}

// Remove uninstalls v's stay. Returns casso.ErrConstraintNotFound if v has
// no stay installed.
func (m *Manager) Remove(v *variable.Variable) error {
	c, ok := m.stays[v]
	if !ok {
		return casso.ErrConstraintNotFound
	}
	if err := m.sv.RemoveConstraint(c); err != nil {
		return err
	}
	delete(m.stays, v)
	return nil
}

// Has reports whether v currently has a stay installed.
func (m *Manager) Has(v *variable.Variable) bool {
	_, ok := m.stays[v]
	return ok
}
