package rangeio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenInvokeOnce(t *testing.T) {
	var got []Result[int]
	tok := NewToken(func(r Result[int]) { got = append(got, r) })

	require.True(t, tok.Pending())
	tok.Invoke(Value(7))
	assert.False(t, tok.Pending())
	require.Len(t, got, 1)
	v, ok := got[0].Get()
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	assert.PanicsWithValue(t, "rangeio: Token invoked more than once", func() {
		tok.Invoke(End[int]())
	})
	assert.Len(t, got, 1, "second invoke must not reach the callback")
}

func TestTokenCopiesShareState(t *testing.T) {
	calls := 0
	tok := NewToken(func(Result[string]) { calls++ })
	cp := tok

	cp.Invoke(End[string]())
	assert.False(t, tok.Pending())
	assert.Panics(t, func() { tok.Invoke(End[string]()) })
	assert.Equal(t, 1, calls)
}

func TestTokenMisuse(t *testing.T) {
	t.Run("NilFunc", func(t *testing.T) {
		assert.PanicsWithValue(t, "rangeio: NewToken requires a non-nil function", func() {
			NewToken[int](nil)
		})
	})

	t.Run("ZeroToken", func(t *testing.T) {
		var tok Token[int]
		assert.False(t, tok.Pending())
		assert.PanicsWithValue(t, "rangeio: Invoke on zero Token", func() {
			tok.Invoke(End[int]())
		})
	})

	t.Run("ZeroResult", func(t *testing.T) {
		tok := NewToken(func(Result[int]) {})
		assert.PanicsWithValue(t, "rangeio: Invoke with zero Result", func() {
			tok.Invoke(Result[int]{})
		})
		assert.True(t, tok.Pending(), "a rejected invoke leaves the token armed")
	})
}

func TestResultVariants(t *testing.T) {
	sentinel := errors.New("io")

	v := Value(3)
	assert.Equal(t, KindValue, v.Kind())
	assert.True(t, v.IsValue())
	assert.NoError(t, v.Err())
	assert.Equal(t, "Value(3)", v.String())

	e := End[int]()
	assert.True(t, e.IsEnd())
	_, ok := e.Get()
	assert.False(t, ok)
	assert.NoError(t, e.Err(), "End is not an error")
	assert.Equal(t, "End", e.String())

	f := Fail[int](sentinel)
	assert.True(t, f.IsError())
	assert.ErrorIs(t, f.Err(), sentinel)
	assert.Equal(t, "Error(io)", f.String())

	assert.Equal(t, "Invalid", Result[int]{}.String())
	assert.Equal(t, "end", KindEnd.String())

	assert.PanicsWithValue(t, "rangeio: Fail requires a non-nil error", func() {
		Fail[int](nil)
	})
}
