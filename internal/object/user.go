package object

import (
	"github.com/tomz197/asteroids-classic/internal/input"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Flicker cadence while invincible: within every window the ship is shown
// for the first FlickerOn ticks. This is a render hint only.
const (
	FlickerWindow = 16
	FlickerOn     = 8
)

// SpawnHeading is the ship's heading after a reset (pointing up).
const SpawnHeading = -90.0

// playerOutline is the ship triangle, nose along +X.
var playerOutline = []Vec2{
	{X: 20, Y: 0},
	{X: -10, Y: 10},
	{X: -10, Y: -10},
}

// Player is the player-controlled ship.
type Player struct {
	Body
	Invincible int // Ticks of asteroid immunity remaining

	RotateStep      float64 // Degrees per tick while turning
	ThrustStep      float64 // Velocity added per tick while thrusting
	InvincibleTicks int     // Immunity granted on every reset
}

// NewPlayer creates a ship at the arena center with the given immunity window.
func NewPlayer(arena Arena, invincibleTicks int) *Player {
	p := &Player{
		Body:            Body{Outline: playerOutline},
		RotateStep:      8,
		ThrustStep:      0.5,
		InvincibleTicks: invincibleTicks,
	}
	p.Reset(arena)
	return p
}

// Reset puts the ship back at the center, at rest, pointing up, and re-arms
// invincibility. Used on session start, after a lost life and on level-up.
func (p *Player) Reset(arena Arena) {
	p.Pos = arena.Center()
	p.Vel = Vec2{}
	p.Rotation = SpawnHeading
	p.Dead = false
	p.Invincible = p.InvincibleTicks
}

// Update steers, thrusts and moves the ship for one tick.
// Thrust accumulates without a speed cap and there is no drag.
func (p *Player) Update(ctrl *input.Controls, arena Arena) {
	p.Rotation = normalizeDegrees(p.Rotation + float64(ctrl.Turn())*p.RotateStep)

	if ctrl.Active(input.Thrust) {
		p.Vel = p.Vel.Add(physics.FromPolar(p.Rotation, p.ThrustStep))
	}

	p.Advance(arena)

	if p.Invincible > 0 {
		p.Invincible--
	}
}

// IsInvincible reports whether asteroid collisions are ignored this tick.
func (p *Player) IsInvincible() bool {
	return p.Invincible > 0
}

// Visible reports whether the ship should be drawn this tick.
// It blinks while invincible; collision immunity does not depend on it.
func (p *Player) Visible() bool {
	if p.Dead {
		return false
	}
	if p.Invincible <= 0 {
		return true
	}
	elapsed := p.InvincibleTicks - p.Invincible
	return elapsed%FlickerWindow < FlickerOn
}

// Fire creates a shot leaving the ship's position along its heading.
// The muzzle speed is absolute; the ship's own velocity is not added.
func (p *Player) Fire(speed float64, ttl int) (Shot, error) {
	return NewShot(p.Pos, p.Rotation, speed, ttl)
}

// Shape returns the render description of the ship.
func (p *Player) Shape() Shape {
	return p.Describe(KindPlayer)
}
