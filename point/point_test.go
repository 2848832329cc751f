package point_test

import (
	"testing"

	"github.com/katalvlaran/casso"
	"github.com/katalvlaran/casso/dsl"
	"github.com/katalvlaran/casso/point"
	"github.com/katalvlaran/casso/solver"
	"github.com/stretchr/testify/require"
)

func TestNewNamesCoordinates(t *testing.T) {
	p := point.New("origin")
	require.Equal(t, "origin.x", p.X.Name())
	require.Equal(t, "origin.y", p.Y.Name())
}

func TestSetXYAndRead(t *testing.T) {
	p := point.New("a")
	p.SetXY(3, 4)
	require.InDelta(t, 3.0, p.XValue(), casso.Epsilon)
	require.InDelta(t, 4.0, p.YValue(), casso.Epsilon)
}

func TestPointParticipatesInConstraints(t *testing.T) {
	p := point.New("a")
	sv := solver.New()
	require.NoError(t, sv.AddConstraint(dsl.Eq(dsl.Var(p.X), dsl.Const(5))))
	require.NoError(t, sv.AddConstraint(dsl.Eq(dsl.Var(p.Y), dsl.Plus(dsl.Var(p.X), dsl.Const(1)))))
	require.InDelta(t, 5.0, p.XValue(), casso.Epsilon)
	require.InDelta(t, 6.0, p.YValue(), casso.Epsilon)
}
