package object

import (
	"fmt"

	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Particle is one fragment of an explosion.
type Particle struct {
	Pos   Vec2
	Speed float64
}

// Explosion is a purely visual burst of particles flying away from an origin.
// It takes no part in collisions.
type Explosion struct {
	Origin    Vec2
	Particles []Particle
	Frames    int
	Dead      bool
}

// Burst describes an explosion variant.
type Burst struct {
	Particles int     `mapstructure:"particles"`
	Speed     float64 `mapstructure:"speed"`
	Frames    int     `mapstructure:"frames"`
}

// At creates an explosion of this variant centered on origin.
func (b Burst) At(origin Vec2) (Explosion, error) {
	return NewExplosion(origin, b.Particles, b.Speed, b.Frames)
}

// NewExplosion creates count particles evenly spaced around origin, each one
// unit out along its direction, moving outward at speed for frames ticks.
func NewExplosion(origin Vec2, count int, speed float64, frames int) (Explosion, error) {
	if count <= 0 {
		return Explosion{}, fmt.Errorf("explosion particle count %d: %w", count, ErrInvalidArgument)
	}
	if frames <= 0 {
		return Explosion{}, fmt.Errorf("explosion frames %d: %w", frames, ErrInvalidArgument)
	}
	if speed < 0 {
		return Explosion{}, fmt.Errorf("explosion speed %v: %w", speed, ErrInvalidArgument)
	}

	particles := make([]Particle, count)
	step := 360 / float64(count)
	for i := range particles {
		particles[i] = Particle{
			Pos:   origin.Add(physics.FromPolar(float64(i)*step, 1)),
			Speed: speed,
		}
	}

	return Explosion{
		Origin:    origin,
		Particles: particles,
		Frames:    frames,
	}, nil
}

// Update pushes every particle outward from the origin and counts down.
func (e *Explosion) Update() {
	for i := range e.Particles {
		p := &e.Particles[i]
		dir := p.Pos.Sub(e.Origin).Unit()
		p.Pos = p.Pos.Add(dir.Scale(p.Speed))
	}
	e.Frames--
	if e.Frames <= 0 {
		e.Dead = true
	}
}

// Points returns the current particle positions.
func (e *Explosion) Points() []Vec2 {
	pts := make([]Vec2, len(e.Particles))
	for i, p := range e.Particles {
		pts[i] = p.Pos
	}
	return pts
}
