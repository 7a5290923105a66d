package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	assert.False(t, Nil.Truthy())
	assert.False(t, Bool(false).Truthy())
	assert.True(t, Bool(true).Truthy())

	// Every non-nil, non-false value is truthy, zero and empty included.
	assert.True(t, Num(0).Truthy())
	assert.True(t, Num(-1).Truthy())
	assert.True(t, Str("").Truthy())
	assert.True(t, Str("false").Truthy())
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Nil.Equal(Nil))
	assert.True(t, Bool(true).Equal(Bool(true)))
	assert.True(t, Num(1).Equal(Num(1)))
	assert.True(t, Str("a").Equal(Str("a")))

	assert.False(t, Num(1).Equal(Num(2)))
	assert.False(t, Str("a").Equal(Str("b")))

	// Mixed kinds are unconditionally unequal, no coercion.
	assert.False(t, Num(1).Equal(Str("1")))
	assert.False(t, Nil.Equal(Bool(false)))
	assert.False(t, Bool(true).Equal(Num(1)))
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Nil, "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Str("hello"), "hello"},
		{Str(""), ""},
		// Integral floats shed the fractional part.
		{Num(2), "2"},
		{Num(100.00), "100"},
		{Num(-3), "-3"},
		{Num(0.5), "0.5"},
		{Num(45.67), "45.67"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatValue(tc.v))
	}
}
