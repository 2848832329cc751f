package symbol_test

import (
	"testing"

	"github.com/katalvlaran/casso/symbol"
	"github.com/stretchr/testify/require"
)

func TestGeneratorAllocatesDistinctIDs(t *testing.T) {
	g := symbol.NewGenerator()
	a := g.External()
	b := g.Slack()
	c := g.Error()
	d := g.Dummy()

	require.NotEqual(t, a.ID(), b.ID())
	require.NotEqual(t, b.ID(), c.ID())
	require.NotEqual(t, c.ID(), d.ID())
	require.True(t, a.ID() < b.ID())
	require.True(t, b.ID() < c.ID())
	require.True(t, c.ID() < d.ID())
}

func TestKindPredicates(t *testing.T) {
	g := symbol.NewGenerator()

	ext := g.External()
	require.True(t, ext.IsExternal())
	require.False(t, ext.Restricted())
	require.False(t, ext.Pivotable())

	slack := g.Slack()
	require.True(t, slack.IsSlack())
	require.True(t, slack.Restricted())
	require.True(t, slack.Pivotable())

	e := g.Error()
	require.True(t, e.IsError())
	require.True(t, e.Restricted())
	require.True(t, e.Pivotable())

	dummy := g.Dummy()
	require.True(t, dummy.IsDummy())
	require.True(t, dummy.Restricted())
	require.False(t, dummy.Pivotable())
}

func TestNilSymbol(t *testing.T) {
	var s symbol.Symbol
	require.True(t, s.IsNil())
	require.False(t, s.Pivotable())
	require.False(t, s.IsError())
}

func TestLessOrdersByID(t *testing.T) {
	g := symbol.NewGenerator()
	a := g.Slack()
	b := g.Slack()
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
}
