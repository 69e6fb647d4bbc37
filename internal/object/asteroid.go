package object

import (
	"fmt"
	"math/rand"

	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Asteroid stages and geometry. A stage-3 asteroid splits into two stage-2,
// each of those into two stage-1, which are destroyed outright.
const (
	MinStage = 1
	MaxStage = 3

	StageRadius       = 20.0 // Outline radius per stage
	BasePoints        = 4    // Outline vertices before the per-stage bonus
	PointsPerStage    = 2
	RadiusJitter      = 0.2 // Max relative deviation of a vertex from the circle
	MinAsteroidSpeed  = 2.0
	MaxAsteroidSpeed  = 8.0
	DefaultSplitAngle = 55.0
)

// Asteroid is a drifting rock. It wraps around the arena forever until shot.
type Asteroid struct {
	Body
	Stage int
}

// NewAsteroid creates an asteroid of the given stage with an explicit velocity.
func NewAsteroid(stage int, pos, vel Vec2) (Asteroid, error) {
	if err := checkStage(stage); err != nil {
		return Asteroid{}, err
	}
	return newAsteroid(stage, pos, vel), nil
}

// NewAsteroidPolar creates an asteroid moving at speed along heading (degrees).
func NewAsteroidPolar(stage int, pos Vec2, heading, speed float64) (Asteroid, error) {
	if speed < 0 {
		return Asteroid{}, fmt.Errorf("asteroid speed %v: %w", speed, ErrInvalidArgument)
	}
	return NewAsteroid(stage, pos, physics.FromPolar(heading, speed))
}

// NewRandomAsteroid places an asteroid anywhere in the arena with a random
// heading and a speed in [MinAsteroidSpeed, MaxAsteroidSpeed). Its outline is
// roughened so rocks of the same stage do not look identical.
func NewRandomAsteroid(stage int, arena Arena, rng *rand.Rand) (Asteroid, error) {
	if err := checkStage(stage); err != nil {
		return Asteroid{}, err
	}
	if rng == nil {
		return Asteroid{}, fmt.Errorf("nil random source: %w", ErrInvalidArgument)
	}

	pos := Vec2{X: rng.Float64() * arena.Width, Y: rng.Float64() * arena.Height}
	heading := rng.Float64() * 360
	speed := MinAsteroidSpeed + rng.Float64()*(MaxAsteroidSpeed-MinAsteroidSpeed)

	a := newAsteroid(stage, pos, physics.FromPolar(heading, speed))
	a.Roughen(rng)
	return a, nil
}

func checkStage(stage int) error {
	if stage < MinStage || stage > MaxStage {
		return fmt.Errorf("asteroid stage %d outside [%d, %d]: %w", stage, MinStage, MaxStage, ErrInvalidArgument)
	}
	return nil
}

func newAsteroid(stage int, pos, vel Vec2) Asteroid {
	return Asteroid{
		Body: Body{
			Pos:     pos,
			Vel:     vel,
			Outline: asteroidOutline(stage),
		},
		Stage: stage,
	}
}

// asteroidOutline is a regular polygon whose size and vertex count grow with stage.
func asteroidOutline(stage int) []Vec2 {
	n := Points(stage)
	r := StageRadius * float64(stage)
	pts := make([]Vec2, n)
	for i := range pts {
		pts[i] = physics.FromPolar(float64(i)*360/float64(n), r)
	}
	return pts
}

// Radius returns the nominal outline radius for the asteroid's stage.
func (a *Asteroid) Radius() float64 {
	return StageRadius * float64(a.Stage)
}

// Roughen jitters each outline vertex radially by up to RadiusJitter.
func (a *Asteroid) Roughen(rng *rand.Rand) {
	pts := make([]Vec2, len(a.Outline))
	for i, p := range a.Outline {
		f := 1 + (rng.Float64()*2-1)*RadiusJitter
		pts[i] = p.Scale(f)
	}
	a.Outline = pts
}

// Update moves the asteroid one tick with wraparound.
func (a *Asteroid) Update(arena Arena) {
	a.Advance(arena)
}

// Split returns the two fragments of a destroyed asteroid: one stage smaller,
// at the parent's position and speed, diverging by ±angle degrees from the
// parent's heading. Stage-1 asteroids leave no fragments.
func (a *Asteroid) Split(angle float64) []Asteroid {
	if a.Stage <= MinStage {
		return nil
	}
	heading := a.Heading()
	speed := a.Speed()
	if speed == 0 {
		heading = a.Rotation
	}
	stage := a.Stage - 1
	return []Asteroid{
		newAsteroid(stage, a.Pos, physics.FromPolar(normalizeDegrees(heading+angle), speed)),
		newAsteroid(stage, a.Pos, physics.FromPolar(normalizeDegrees(heading-angle), speed)),
	}
}

// Shape returns the render description of the asteroid.
func (a *Asteroid) Shape() Shape {
	return a.Describe(KindAsteroid)
}

// Points returns how many outline vertices an asteroid of stage has.
func Points(stage int) int {
	return BasePoints + PointsPerStage*stage
}
