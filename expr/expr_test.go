package expr_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/casso"
	"github.com/katalvlaran/casso/expr"
	"github.com/stretchr/testify/require"
)

func TestAddPrunesNearZero(t *testing.T) {
	e := expr.New[string](0)
	e.Add("x", 3)
	e.Add("x", -3)
	require.Equal(t, 0.0, e.Coefficient("x"))
	require.True(t, e.IsConstant())
}

func TestPlusMinus(t *testing.T) {
	a := expr.NewTerm[string]("x", 2, 1)
	b := expr.NewTerm[string]("x", -1, 3)
	a.Plus(b)
	require.Equal(t, 4.0, a.Constant())
	require.Equal(t, 1.0, a.Coefficient("x"))
}

func TestMulExprConstantSide(t *testing.T) {
	a := expr.NewTerm[string]("x", 2, 1)
	c := expr.New[string](3)
	require.NoError(t, a.MulExpr(c))
	require.Equal(t, 6.0, a.Coefficient("x"))
	require.Equal(t, 3.0, a.Constant())
}

func TestMulExprNonlinear(t *testing.T) {
	a := expr.NewTerm[string]("x", 2, 1)
	b := expr.NewTerm[string]("y", 1, 0)
	err := a.MulExpr(b)
	require.Error(t, err)
	require.True(t, errors.Is(err, casso.ErrNonlinear))
}

func TestDivExprRequiresConstant(t *testing.T) {
	a := expr.NewTerm[string]("x", 2, 1)
	b := expr.NewTerm[string]("y", 1, 0)
	require.True(t, errors.Is(a.DivExpr(b), casso.ErrNonlinear))

	c := expr.New[string](2)
	require.NoError(t, a.DivExpr(c))
	require.Equal(t, 1.0, a.Coefficient("x"))
}

func TestSubstituteOut(t *testing.T) {
	row := expr.NewTerm[string]("s", 2, 1)
	repl := expr.NewTerm[string]("y", 3, 5)

	ok := row.SubstituteOut("s", repl)
	require.True(t, ok)
	require.Equal(t, 1.0+2*5, row.Constant())
	require.Equal(t, 2.0*3, row.Coefficient("y"))

	require.False(t, row.SubstituteOut("s", repl))
}

func TestSolveFor(t *testing.T) {
	row := expr.New[string](6)
	row.Add("x", 2)
	row.Add("y", -4)

	require.NoError(t, row.SolveFor("x"))
	require.Equal(t, -3.0, row.Constant())
	require.Equal(t, 2.0, row.Coefficient("y"))
	require.Equal(t, 0.0, row.Coefficient("x"))
}

func TestSolveForMissingKey(t *testing.T) {
	row := expr.New[string](1)
	err := row.SolveFor("z")
	require.True(t, errors.Is(err, casso.ErrRowNotFound))
}

func TestSolveForPair(t *testing.T) {
	// row is lhs's defining row, lhs = 10 + 2*rhs; a basic row never
	// contains its own subject.
	row := expr.New[string](10)
	row.Add("rhs", 2)

	require.NoError(t, row.SolveForPair("lhs", "rhs"))
	require.Equal(t, 0.0, row.Coefficient("rhs"))
	require.NotEqual(t, 0.0, row.Coefficient("lhs"))
}

func TestChangeSubject(t *testing.T) {
	row := expr.New[string](4)
	row.Add("new", 2)
	row.ChangeSubject("old", "new")
	require.Equal(t, 0.0, row.Coefficient("new"))
	require.NotEqual(t, 0.0, row.Coefficient("old"))
}

func TestEvaluate(t *testing.T) {
	row := expr.New[string](1)
	row.Add("x", 2)
	row.Add("y", -1)
	values := map[string]float64{"x": 3, "y": 4}
	got := row.Evaluate(func(k string) float64 { return values[k] })
	require.Equal(t, 1.0+2*3-4.0, got)
}

func TestCloneIsIndependent(t *testing.T) {
	a := expr.NewTerm[string]("x", 1, 0)
	b := a.Clone()
	b.Add("x", 5)
	require.NotEqual(t, a.Coefficient("x"), b.Coefficient("x"))
}
