package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	for _, cmd := range []Command{Quit, Left, Right, Thrust, Fire} {
		got, ok := ParseCommand(cmd.String())
		require.True(t, ok, cmd.String())
		assert.Equal(t, cmd, got)
	}

	got, ok := ParseCommand("FIRE")
	assert.True(t, ok)
	assert.Equal(t, Fire, got)

	_, ok = ParseCommand("debug")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Command(42).String())
}

func TestControlsSetAndClear(t *testing.T) {
	var c Controls
	c.Set(Fire, true)
	assert.True(t, c.Active(Fire))

	c.Clear(Fire)
	assert.False(t, c.Active(Fire))

	c.Set(Command(-1), true)
	assert.False(t, c.Active(Command(-1)))
	assert.Equal(t, Controls{}, c)
}

func TestControlsSetByName(t *testing.T) {
	var c Controls
	assert.True(t, c.SetByName("thrust", true))
	assert.True(t, c.Active(Thrust))
	assert.False(t, c.SetByName("hyperspace", true))
}

func TestControlsTurn(t *testing.T) {
	tests := []struct {
		left, right bool
		want        int
	}{
		{false, false, 0},
		{true, false, -1},
		{false, true, 1},
		{true, true, 0},
	}
	for _, tt := range tests {
		var c Controls
		c.Set(Left, tt.left)
		c.Set(Right, tt.right)
		assert.Equal(t, tt.want, c.Turn(), "left=%v right=%v", tt.left, tt.right)
	}
}

func TestControllerFireIsEdgeTriggered(t *testing.T) {
	var ctl Controller

	ctrl := ctl.Apply(Input{Space: true})
	require.True(t, ctrl.Active(Fire))

	// Simulation consumes the shot.
	ctrl.Clear(Fire)

	// Holding the key does not re-arm fire.
	ctrl = ctl.Apply(Input{Space: true})
	assert.False(t, ctrl.Active(Fire))

	// Release and press again.
	ctl.Apply(Input{})
	ctrl = ctl.Apply(Input{Space: true})
	assert.True(t, ctrl.Active(Fire))
}

func TestControllerFireStaysLatched(t *testing.T) {
	var ctl Controller
	ctl.Apply(Input{Space: true})

	ctrl := ctl.Apply(Input{})
	assert.True(t, ctrl.Active(Fire), "fire stays set until cleared")
}

func TestControllerSteering(t *testing.T) {
	var ctl Controller
	ctrl := ctl.Apply(Input{UpLeft: true})
	assert.True(t, ctrl.Active(Left))
	assert.True(t, ctrl.Active(Thrust))
	assert.False(t, ctrl.Active(Right))

	ctrl = ctl.Apply(Input{Right: true, Quit: true})
	assert.True(t, ctrl.Active(Right))
	assert.False(t, ctrl.Active(Thrust))
	assert.True(t, ctrl.Active(Quit))

	ctl.Reset()
	assert.Equal(t, Controls{}, *ctl.Apply(Input{}))
}
