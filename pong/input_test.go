package pong_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/pong/pong"
)

func TestParseAction(t *testing.T) {
	for _, a := range pong.Actions() {
		got, err := pong.ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	got, err := pong.ParseAction(" Left_Up ")
	require.NoError(t, err)
	assert.Equal(t, pong.ActionLeftUp, got)

	_, err = pong.ParseAction("jump")
	assert.EqualError(t, err, `unknown action "jump"`)
}

func TestBindingsLookup(t *testing.T) {
	index := pong.DefaultBindings().Lookup()

	assert.Equal(t, pong.ActionStart, index["enter"])
	assert.Equal(t, pong.ActionLeftUp, index["w"])
	assert.Equal(t, pong.ActionRightDown, index["arrowdown"])
	assert.Equal(t, pong.ActionQuit, index["q"])
	assert.NotContains(t, index, "space")
}

func TestBindingsValidate(t *testing.T) {
	assert.NoError(t, pong.DefaultBindings().Validate())

	b := pong.DefaultBindings()
	b[pong.ActionRightUp] = []string{"w"}
	assert.EqualError(t, b.Validate(), `key "w" bound to both left_up and right_up`)

	b = pong.DefaultBindings()
	b[pong.ActionStart] = []string{"Hyper"}
	assert.EqualError(t, b.Validate(), `unknown key "Hyper" for start`)
}

func TestCanonicalKey(t *testing.T) {
	for in, want := range map[string]string{"enter": "Enter", " arrowup": "ArrowUp", "q": "Q", "DIGIT3": "Digit3"} {
		got, ok := pong.CanonicalKey(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := pong.CanonicalKey("F13")
	assert.False(t, ok)
	assert.Len(t, pong.KeyNames(), 9+26+10)
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, pong.DefaultRules().Validate())
	require.NoError(t, pong.DefaultPlayfield().Validate(pong.DefaultRules()))

	bad := pong.DefaultRules()
	bad.BallRadius = 0
	bad.RampFactor = 0.5
	bad.WinScore = -1
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ball radius must be positive")
	assert.Contains(t, err.Error(), "ramp factor must be at least 1")
	assert.Contains(t, err.Error(), "win score must not be negative")

	tiny := pong.Playfield{Width: 30, Height: 30}
	assert.Error(t, tiny.Validate(pong.DefaultRules()))
}

func TestSideOpponent(t *testing.T) {
	assert.Equal(t, pong.Right, pong.Left.Opponent())
	assert.Equal(t, pong.Left, pong.Right.Opponent())
	assert.Equal(t, "right", pong.Right.String())
}
