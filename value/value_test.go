package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFalseyLaw(t *testing.T) {
	require.True(t, Nil.Falsey())
	require.True(t, Bool(false).Falsey())
	require.False(t, Bool(true).Falsey())
	require.False(t, Num(0).Falsey())
	require.False(t, Str("").Falsey())
}

func TestEqualityLaw(t *testing.T) {
	values := []Value{Nil, Bool(true), Bool(false), Num(0), Num(1), Str("a"), Str("b")}
	for _, a := range values {
		require.Truef(t, a.Equal(a), "%v should equal itself", a)
		for _, b := range values {
			require.Equal(t, a.Equal(b), b.Equal(a), "equality must be symmetric for %v, %v", a, b)
		}
	}
}

func TestEqualityCrossVariantNeverEqual(t *testing.T) {
	require.False(t, Nil.Equal(Bool(false)))
	require.False(t, Num(0).Equal(Bool(false)))
	require.False(t, Str("0").Equal(Num(0)))
}

func TestStringEqualityByText(t *testing.T) {
	require.True(t, Str("hi").Equal(Str("hi")))
	require.False(t, Str("hi").Equal(Str("bye")))
}

func TestValueString(t *testing.T) {
	require.Equal(t, "nil", Nil.String())
	require.Equal(t, "true", Bool(true).String())
	require.Equal(t, "false", Bool(false).String())
	require.Equal(t, "42", Num(42).String())
	require.Equal(t, "hi", Str("hi").String())
}
