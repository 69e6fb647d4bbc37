package object

import (
	"fmt"

	"github.com/tomz197/asteroids-classic/internal/physics"
)

// shotOutline is a small square around the shot's position.
var shotOutline = []Vec2{
	{X: -2, Y: -2},
	{X: 2, Y: -2},
	{X: 2, Y: 2},
	{X: -2, Y: 2},
}

// Shot is a projectile fired by the player. It flies in a straight line,
// does not wrap around the arena, and dies after TTL updates.
type Shot struct {
	Body
	TTL int
}

// NewShot creates a shot at pos moving at speed along heading (degrees).
func NewShot(pos Vec2, heading, speed float64, ttl int) (Shot, error) {
	if ttl <= 0 {
		return Shot{}, fmt.Errorf("shot ttl %d: %w", ttl, ErrInvalidArgument)
	}
	if speed < 0 {
		return Shot{}, fmt.Errorf("shot speed %v: %w", speed, ErrInvalidArgument)
	}
	return Shot{
		Body: Body{
			Pos:      pos,
			Vel:      physics.FromPolar(heading, speed),
			Rotation: heading,
			Outline:  shotOutline,
		},
		TTL: ttl,
	}, nil
}

// Update moves the shot and counts down its lifetime.
func (s *Shot) Update() {
	s.Move()
	s.TTL--
	if s.TTL <= 0 {
		s.Dead = true
	}
}

// Shape returns the render description of the shot.
func (s *Shot) Shape() Shape {
	return s.Describe(KindShot)
}
