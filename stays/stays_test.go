package stays_test

import (
	"testing"

	"github.com/katalvlaran/casso"
	"github.com/katalvlaran/casso/dsl"
	"github.com/katalvlaran/casso/solver"
	"github.com/katalvlaran/casso/stays"
	"github.com/katalvlaran/casso/strength"
	"github.com/katalvlaran/casso/variable"
	"github.com/stretchr/testify/require"
)

func TestStayHoldsUntilOverridden(t *testing.T) {
	sv := solver.New()
	x := variable.New("x")

	mgr := stays.New(sv)
	require.NoError(t, mgr.Add(x, strength.Weak()))
	require.InDelta(t, 0.0, x.Value(), casso.Epsilon)

	require.NoError(t, sv.AddConstraint(dsl.Eq(dsl.Var(x), dsl.Const(5))))
	require.InDelta(t, 5.0, x.Value(), casso.Epsilon)
}

func TestRemoveUnknownStay(t *testing.T) {
	sv := solver.New()
	x := variable.New("x")
	mgr := stays.New(sv)
	require.ErrorIs(t, mgr.Remove(x), casso.ErrConstraintNotFound)
}

func TestDuplicateStay(t *testing.T) {
	sv := solver.New()
	x := variable.New("x")
	mgr := stays.New(sv)
	require.NoError(t, mgr.Add(x, strength.Weak()))
	require.ErrorIs(t, mgr.Add(x, strength.Weak()), casso.ErrDuplicateConstraint)
}
