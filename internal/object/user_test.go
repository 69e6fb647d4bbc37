package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/asteroids-classic/internal/input"
)

func TestNewPlayer(t *testing.T) {
	p := NewPlayer(testArena, 90)

	assert.Equal(t, Vec2{X: 512, Y: 384}, p.Pos)
	assert.Equal(t, Vec2{}, p.Vel)
	assert.Equal(t, SpawnHeading, p.Rotation)
	assert.Equal(t, 90, p.Invincible)
	assert.True(t, p.IsInvincible())
	assert.False(t, p.Dead)
}

func TestPlayerSteering(t *testing.T) {
	p := NewPlayer(testArena, 0)
	var ctrl input.Controls

	ctrl.Set(input.Right, true)
	p.Update(&ctrl, testArena)
	assert.InDelta(t, -82, p.Rotation, 1e-9)

	ctrl = input.Controls{}
	ctrl.Set(input.Left, true)
	p.Update(&ctrl, testArena)
	p.Update(&ctrl, testArena)
	assert.InDelta(t, -98, p.Rotation, 1e-9)

	ctrl.Set(input.Right, true)
	p.Update(&ctrl, testArena)
	assert.InDelta(t, -98, p.Rotation, 1e-9)
}

func TestPlayerThrust(t *testing.T) {
	p := NewPlayer(testArena, 0)
	var ctrl input.Controls
	ctrl.Set(input.Thrust, true)

	p.Update(&ctrl, testArena)
	assert.InDelta(t, 0, p.Vel.X, 1e-9)
	assert.InDelta(t, -0.5, p.Vel.Y, 1e-9)
	assert.InDelta(t, 383.5, p.Pos.Y, 1e-9)

	p.Update(&ctrl, testArena)
	assert.InDelta(t, -1, p.Vel.Y, 1e-9)

	// No drag: velocity is kept once thrust stops.
	ctrl = input.Controls{}
	p.Update(&ctrl, testArena)
	assert.InDelta(t, -1, p.Vel.Y, 1e-9)
}

func TestPlayerInvincibilityCountsDown(t *testing.T) {
	p := NewPlayer(testArena, 3)
	var ctrl input.Controls

	for i := 2; i >= 0; i-- {
		p.Update(&ctrl, testArena)
		assert.Equal(t, i, p.Invincible)
	}
	assert.False(t, p.IsInvincible())

	p.Update(&ctrl, testArena)
	assert.Equal(t, 0, p.Invincible)
}

func TestPlayerVisibleFlicker(t *testing.T) {
	p := NewPlayer(testArena, 90)
	var ctrl input.Controls

	for elapsed := 0; elapsed < 90; elapsed++ {
		want := elapsed%FlickerWindow < FlickerOn
		assert.Equal(t, want, p.Visible(), "elapsed %d", elapsed)
		p.Update(&ctrl, testArena)
	}
	assert.True(t, p.Visible())

	p.Dead = true
	assert.False(t, p.Visible())
}

func TestPlayerReset(t *testing.T) {
	p := NewPlayer(testArena, 90)
	p.Pos = Vec2{X: 3, Y: 4}
	p.Vel = Vec2{X: 1, Y: 1}
	p.Rotation = 45
	p.Dead = true
	p.Invincible = 0

	p.Reset(testArena)
	assert.Equal(t, testArena.Center(), p.Pos)
	assert.Equal(t, Vec2{}, p.Vel)
	assert.Equal(t, SpawnHeading, p.Rotation)
	assert.False(t, p.Dead)
	assert.Equal(t, 90, p.Invincible)
}

func TestPlayerFire(t *testing.T) {
	p := NewPlayer(testArena, 0)
	p.Vel = Vec2{X: 3, Y: 0}

	s, err := p.Fire(15, 30)
	require.NoError(t, err)
	assert.Equal(t, p.Pos, s.Pos)
	assert.InDelta(t, 0, s.Vel.X, 1e-9)
	assert.InDelta(t, -15, s.Vel.Y, 1e-9)
	assert.Equal(t, 30, s.TTL)
}

func TestPlayerShape(t *testing.T) {
	p := NewPlayer(testArena, 0)
	s := p.Shape()

	assert.Equal(t, KindPlayer, s.Kind)
	require.Len(t, s.Points, 3)
	// Nose points up at spawn.
	assert.InDelta(t, 512, s.Points[0].X, 1e-9)
	assert.InDelta(t, 364, s.Points[0].Y, 1e-9)
}
