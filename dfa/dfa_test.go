package dfa

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KromDaniel/fauto/auto"
)

func simple() *Blueprint[int, string] {
	return Start[int, string](0).
		Connect(0, "0 -> 1", 1).
		Connect(0, "0 -> 0", 0).
		Connect(1, "1 -> 1", 1).
		Accept(1).
		MustFinalize()
}

func TestBuildWithDuplicatedTransition(t *testing.T) {
	b := Start[int, string](0).
		Connect(0, "0 -> 1", 1).
		Connect(0, "0 -> 1", 2)

	bp, err := b.Finalize()
	assert.Nil(t, bp)
	require.ErrorIs(t, err, ErrDuplicatedTransition)

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 0, te.From)
	assert.Equal(t, "0 -> 1", te.Label)
	assert.Equal(t, 1, te.Existing)
	assert.Equal(t, 2, te.Conflict)
}

func TestBuildWithDuplicatedFallback(t *testing.T) {
	b := Start[int, string](0).
		ConnectFallback(0, 1).
		ConnectFallback(0, 1).
		ConnectFallback(0, 2).
		Connect(1, "late", 2)

	require.ErrorIs(t, b.Err(), ErrDuplicatedFallback)
	_, err := b.Finalize()
	assert.ErrorIs(t, err, ErrDuplicatedFallback)
	assert.Panics(t, func() { b.MustFinalize() })
}

func TestBuildWithRedundantInfo(t *testing.T) {
	bp, err := Start[int, string](0).
		Connect(0, "0 -> 1", 1).
		Connect(0, "0 -> 1", 1).
		Accept(1).
		Accept(1).
		Finalize()
	require.NoError(t, err)
	assert.Equal(t, 1, bp.NumConnections())
}

func TestBlueprint(t *testing.T) {
	bp := simple()
	assert.Equal(t, 0, bp.StartState())
	assert.Equal(t, map[int]struct{}{1: {}}, bp.AcceptStates())
	assert.Equal(t, 3, bp.NumConnections())
	assert.Equal(t, 3, len(slices.Collect(bp.Connections())))
	assert.Equal(t, []int{0, 1}, bp.States())

	to, ok := bp.Transition(0, "0 -> 1")
	assert.True(t, ok)
	assert.Equal(t, 1, to)
	_, ok = bp.Transition(7, "0 -> 1")
	assert.False(t, ok)
	_, ok = bp.Fallback(0)
	assert.False(t, ok)
}

func TestTriggerAuto(t *testing.T) {
	w := simple().Create()
	assert.Equal(t, 0, w.CurrentState())
	assert.False(t, w.IsAccepted())
	assert.True(t, w.TestTrigger("0 -> 0"))
	assert.False(t, w.TestTrigger("0 -> 2"))

	w.Trigger("0 -> 1")
	assert.Equal(t, 1, w.CurrentState())
	assert.True(t, w.IsAccepted())
}

func fallbackReset() *Blueprint[int, string] {
	return Start[int, string](0).
		Connect(0, "0 -> 1", 1).
		Connect(1, "1 -> 2", 2).
		Connect(2, "2 -> 3", 3).
		Accept(3).
		ConnectFallback(0, 0).
		ConnectFallback(1, 0).
		ConnectFallback(2, 0).
		ConnectFallback(3, 3).
		MustFinalize()
}

func TestTriggerFallback(t *testing.T) {
	w := fallbackReset().Create()
	for _, label := range []string{
		"0 -> 1", "1 -> 2", "error", "error", "0 -> 1", "error", "0 -> 1", "1 -> 2", "2 -> 3",
	} {
		assert.False(t, w.IsAccepted())
		require.True(t, w.TestTrigger(label))
		w.Trigger(label)
	}
	assert.True(t, w.IsAccepted())
	assert.True(t, w.TestTrigger("error"))
	w.Trigger("error")
	assert.True(t, w.IsAccepted())
}

func TestFallbackPrecedence(t *testing.T) {
	bp := Start[int, rune](0).
		Connect(0, 'a', 1).
		ConnectFallback(0, 2).
		MustFinalize()

	w := bp.Create()
	w.Trigger('a')
	assert.Equal(t, 1, w.CurrentState())

	w = bp.Create()
	w.Trigger('z')
	assert.Equal(t, 2, w.CurrentState())

	conns := slices.Collect(bp.Connections())
	assert.Equal(t, []Connection[int, rune]{
		{From: 0, Kind: Plain, Label: 'a', To: 1},
		{From: 0, Kind: Fallback, To: 2},
	}, conns)
}

func TestIllegalStepPanics(t *testing.T) {
	w := simple().Create()
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrIllegalStep))
		var se *StepError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 0, se.State)
		assert.Equal(t, "nope", se.Label)
	}()
	w.Trigger("nope")
}

func TestWalkerTestAndSearch(t *testing.T) {
	bp := simple()
	assert.True(t, bp.Create().Test(auto.Symbols("0 -> 0", "0 -> 1", "1 -> 1")))
	assert.False(t, bp.Create().Test(auto.Symbols("0 -> 1", "bad")))
	assert.True(t, bp.Create().Search(auto.Symbols("0 -> 1", "bad")))
	assert.False(t, bp.Create().Search(auto.Symbols("0 -> 0", "bad", "0 -> 1")))
}

func TestFinalizeSeals(t *testing.T) {
	b := Start[int, rune](0)
	_, err := b.Finalize()
	require.NoError(t, err)

	b.Connect(0, 'a', 1)
	assert.ErrorIs(t, b.Err(), ErrSealed)
	_, err = b.Finalize()
	assert.ErrorIs(t, err, ErrSealed)
}

func TestStatesOrder(t *testing.T) {
	bp := Start[string, rune]("a").
		ConnectFallback("a", "z").
		Connect("a", 'x', "b").
		Connect("b", 'y', "c").
		Connect("unreachable", 'q', "a").
		MustFinalize()
	assert.Equal(t, []string{"a", "b", "z", "c"}, bp.States())
	assert.Equal(t, 4, bp.NumStates())
	assert.Equal(t, []rune{'x'}, slices.Collect(bp.Labels("a")))
}
