package solver

import (
	"fmt"
	"math"

	"github.com/katalvlaran/casso"
	"github.com/katalvlaran/casso/constraint"
	"github.com/katalvlaran/casso/expr"
	"github.com/katalvlaran/casso/symbol"
)

// addInto adds coeff*sym into r, substituting sym's defining row if sym
// is currently basic rather than inserting the raw symbol. Used wherever
// a caller must add a symbol's current contribution, not just its name,
// into a row or the objective (makeRow, RemoveConstraint, ChangeStrength).
func (s *Solver) addInto(r *row, sym symbol.Symbol, coeff float64) {
	if basic, ok := s.rows[sym]; ok {
		r.Plus(basic.Clone().Scale(coeff))
		return
	}
	r.Add(sym, coeff)
}

// makeRow builds c's row over internal symbols and returns it along with
// the marker and other symbols the constraint's kind introduces (other is
// the nil symbol for required constraints).
func (s *Solver) makeRow(c constraint.Constraint) (*row, symbol.Symbol, symbol.Symbol) {
	r := expr.New[symbol.Symbol](c.Expr().Constant())
	for v, coeff := range c.Expr().Terms() {
		s.addInto(r, s.getVarSymbol(v), coeff)
	}

	var marker, other symbol.Symbol
	switch {
	case c.IsInequality():
		coeff := 1.0
		if c.Operator() == constraint.Geq {
			coeff = -1.0
		}
		slack := s.gen.Slack()
		marker = slack
		r.Add(slack, coeff)

		if !c.IsRequired() {
			eminus := s.gen.Error()
			other = eminus
			r.Add(eminus, -coeff)
			s.objective.Add(eminus, c.Strength().Weight())
		}

	case c.IsRequired():
		dummy := s.gen.Dummy()
		marker = dummy
		r.Add(dummy, 1)

	default:
		eplus := s.gen.Error()
		eminus := s.gen.Error()
		marker = eplus
		other = eminus
		r.Add(eplus, -1)
		r.Add(eminus, 1)
		s.objective.Add(eplus, c.Strength().Weight())
		s.objective.Add(eminus, c.Strength().Weight())
	}

	if r.Constant() < 0 {
		r.Scale(-1)
	}
	return r, marker, other
}

// chooseSubject picks the symbol that should become basic for a freshly
// built row: any external symbol present, else marker or other if
// pivotable with a negative coefficient. Returns the nil symbol if none
// qualify.
func (s *Solver) chooseSubject(r *row, marker, other symbol.Symbol) symbol.Symbol {
	for sym := range r.Terms() {
		if sym.IsExternal() {
			return sym
		}
	}
	if marker.Pivotable() && r.Coefficient(marker) < 0 {
		return marker
	}
	if other.Pivotable() && r.Coefficient(other) < 0 {
		return other
	}
	return symbol.Symbol{}
}

func allDummies(r *row) bool {
	for sym := range r.Terms() {
		if !sym.IsDummy() {
			return false
		}
	}
	return true
}

func pivotableSymbol(r *row) symbol.Symbol {
	for sym := range r.Terms() {
		if sym.Pivotable() {
			return sym
		}
	}
	return symbol.Symbol{}
}

// addWithArtificialVariable attempts to satisfy a row with no natural
// subject by introducing a temporary artificial slack, minimizing it to
// zero, and pivoting it back out. Returns false (not an error) if no
// assignment can drive the artificial row to zero — that is a
// required_failure, decided by the caller.
func (s *Solver) addWithArtificialVariable(r *row) (bool, error) {
	av := s.gen.Slack()
	s.rows[av] = r.Clone()
	s.artificial = r.Clone()

	if err := s.optimize(s.artificial); err != nil {
		s.artificial = nil
		return false, err
	}
	success := casso.NearZero(s.artificial.Constant())
	s.artificial = nil

	if tmp, ok := s.rows[av]; ok {
		delete(s.rows, av)
		if !tmp.IsConstant() {
			entering := pivotableSymbol(tmp)
			if entering.IsNil() {
				return false, fmt.Errorf("solver: add_with_artificial_variable: no pivotable symbol in artificial row: %w", casso.ErrInternal)
			}
			if err := tmp.SolveForPair(av, entering); err != nil {
				return false, fmt.Errorf("solver: add_with_artificial_variable: %w", casso.ErrInternal)
			}
			s.substituteOut(entering, tmp)
			s.rows[entering] = tmp
		}
	}

	for _, r := range s.rows {
		r.Erase(av)
	}
	s.objective.Erase(av)

	return success, nil
}

// substituteOut replaces every occurrence of sym with its defining row r
// across every basic row, the objective, and (during artificial-variable
// construction) the artificial row. Any restricted row whose constant
// goes negative as a result is queued for dual_optimize.
func (s *Solver) substituteOut(sym symbol.Symbol, r *row) {
	for basic, br := range s.rows {
		br.SubstituteOut(sym, r)
		if basic.Restricted() && br.Constant() < 0 {
			s.infeasibleRows = append(s.infeasibleRows, basic)
		}
	}
	s.objective.SubstituteOut(sym, r)
	if s.artificial != nil {
		s.artificial.SubstituteOut(sym, r)
	}
}

// optimize runs the primal simplex loop against objective until no
// pivotable, non-dummy symbol has a negative coefficient. objective may
// be s.objective or, during addWithArtificialVariable, s.artificial —
// either way the pivot touches the real tableau in s.rows.
func (s *Solver) optimize(objective *row) error {
	for {
		entry := s.chooseEntering(objective)
		if entry.IsNil() {
			return nil
		}

		exitSym, found := s.chooseLeavingForEntering(entry)
		if !found {
			return fmt.Errorf("solver: optimize: objective function is unbounded: %w", casso.ErrInternal)
		}

		r := s.rows[exitSym]
		delete(s.rows, exitSym)
		if err := r.SolveForPair(exitSym, entry); err != nil {
			return fmt.Errorf("solver: optimize: %w", casso.ErrInternal)
		}
		s.substituteOut(entry, r)
		s.rows[entry] = r

		s.logger.Debug().
			Uint64("entering", entry.ID()).
			Uint64("leaving", exitSym.ID()).
			Msg("pivot")
	}
}

// chooseEntering picks the smallest-id pivotable, non-dummy symbol in
// objective with a negative coefficient. Go's map iteration order is
// randomized, so picking "first found" (as rhea does over its
// unordered_map) would not be deterministic here; smallest-id is a
// documented, deterministic stand-in for a fixed allocation order.
func (s *Solver) chooseEntering(objective *row) symbol.Symbol {
	var entry symbol.Symbol
	found := false
	for sym, coeff := range objective.Terms() {
		if !sym.Pivotable() || coeff >= 0 {
			continue
		}
		if !found || sym.Less(entry) {
			entry = sym
			found = true
		}
	}
	return entry
}

// chooseLeavingForEntering picks the basic pivotable row with a negative
// coefficient on entry that minimizes -constant/coeff, breaking ties by
// smaller row symbol id.
func (s *Solver) chooseLeavingForEntering(entry symbol.Symbol) (symbol.Symbol, bool) {
	var exit symbol.Symbol
	found := false
	minRatio := math.MaxFloat64

	for sym, r := range s.rows {
		if !sym.Pivotable() {
			continue
		}
		coeff := r.Coefficient(entry)
		if coeff >= 0 {
			continue
		}
		ratio := -r.Constant() / coeff
		if !found || ratio < minRatio-casso.Epsilon {
			minRatio, exit, found = ratio, sym, true
		} else if casso.Approx(ratio, minRatio) && sym.Less(exit) {
			exit = sym
		}
	}
	return exit, found
}

// dualOptimize restores feasibility by pivoting rows off the
// infeasibleRows work-list until it is empty or exhausted.
func (s *Solver) dualOptimize() error {
	for len(s.infeasibleRows) > 0 {
		leaving := s.infeasibleRows[len(s.infeasibleRows)-1]
		s.infeasibleRows = s.infeasibleRows[:len(s.infeasibleRows)-1]

		r, ok := s.rows[leaving]
		if !ok || r.Constant() >= 0 {
			continue
		}

		entering, found := s.chooseDualEntering(r)
		if !found {
			return fmt.Errorf("solver: dual_optimize: no entering symbol: %w", casso.ErrInternal)
		}

		delete(s.rows, leaving)
		if err := r.SolveForPair(leaving, entering); err != nil {
			return fmt.Errorf("solver: dual_optimize: %w", casso.ErrInternal)
		}
		s.substituteOut(entering, r)
		s.rows[entering] = r

		s.logger.Debug().
			Uint64("entering", entering.ID()).
			Uint64("leaving", leaving.ID()).
			Msg("dual pivot")
	}
	return nil
}

// chooseDualEntering picks the symbol among r's positive-coefficient,
// non-dummy terms minimizing objective.coeff(term)/r.coeff(term), ties
// broken by smaller id for determinism.
func (s *Solver) chooseDualEntering(r *row) (symbol.Symbol, bool) {
	var entering symbol.Symbol
	found := false
	minRatio := math.MaxFloat64

	for sym, coeff := range r.Terms() {
		if coeff <= 0 || sym.IsDummy() {
			continue
		}
		ratio := s.objective.Coefficient(sym) / coeff
		if !found || ratio < minRatio-casso.Epsilon {
			minRatio, entering, found = ratio, sym, true
		} else if casso.Approx(ratio, minRatio) && sym.Less(entering) {
			entering = sym
		}
	}
	return entering, found
}

// getMarkerLeavingRow chooses a leaving row containing marker when marker
// itself is not currently basic: preferring a non-external row with
// negative coefficient minimizing -constant/coeff, then a non-external
// row with positive coefficient minimizing constant/coeff, then any
// external-basic row containing marker.
func (s *Solver) getMarkerLeavingRow(marker symbol.Symbol) (symbol.Symbol, bool) {
	const dmax = math.MaxFloat64
	r1, r2 := dmax, dmax
	var first, second, third symbol.Symbol
	haveFirst, haveSecond, haveThird := false, false, false

	for sym, r := range s.rows {
		c := r.Coefficient(marker)
		if c == 0 {
			continue
		}
		switch {
		case sym.IsExternal():
			third, haveThird = sym, true
		case c < 0:
			ratio := -r.Constant() / c
			if ratio < r1-casso.Epsilon || (casso.Approx(ratio, r1) && (!haveFirst || sym.Less(first))) {
				r1, first, haveFirst = ratio, sym, true
			}
		default:
			ratio := r.Constant() / c
			if ratio < r2-casso.Epsilon || (casso.Approx(ratio, r2) && (!haveSecond || sym.Less(second))) {
				r2, second, haveSecond = ratio, sym, true
			}
		}
	}

	if haveFirst {
		return first, true
	}
	if haveSecond {
		return second, true
	}
	if haveThird {
		return third, true
	}
	return symbol.Symbol{}, false
}
