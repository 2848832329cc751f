package variable_test

import (
	"testing"

	"github.com/katalvlaran/casso/variable"
	"github.com/stretchr/testify/require"
)

func TestIdentityIsPointerBased(t *testing.T) {
	a := variable.New("x")
	b := variable.New("x")
	require.False(t, a.Is(b), "same name, different identity")
	require.True(t, a.Is(a))
}

func TestWithValue(t *testing.T) {
	v := variable.WithValue("x", 42)
	require.Equal(t, 42.0, v.Value())
}

func TestSetValue(t *testing.T) {
	v := variable.New("x")
	v.SetValue(7)
	require.Equal(t, 7.0, v.Value())
}

func TestStringFallsBackToID(t *testing.T) {
	v := variable.New("")
	require.Equal(t, v.ID().String(), v.String())
}
