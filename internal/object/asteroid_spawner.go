package object

import (
	"fmt"
	"math/rand"
)

// AsteroidSpawner populates the arena at the start of each level.
// The number of full-size asteroids cycles 1, 2, ..., cycle, 1, 2, ...
type AsteroidSpawner struct {
	cycle int
}

// NewAsteroidSpawner creates a spawner whose wave size repeats every cycle levels.
func NewAsteroidSpawner(cycle int) *AsteroidSpawner {
	if cycle < 1 {
		cycle = 1
	}
	return &AsteroidSpawner{cycle: cycle}
}

// Count returns how many stage-3 asteroids open the given level.
func (s *AsteroidSpawner) Count(level int) int {
	n := level % s.cycle
	if n <= 0 {
		n += s.cycle
	}
	return n
}

// Spawn creates the opening wave for level at random positions.
func (s *AsteroidSpawner) Spawn(level int, arena Arena, rng *rand.Rand) ([]Asteroid, error) {
	n := s.Count(level)
	wave := make([]Asteroid, 0, n)
	for range n {
		a, err := NewRandomAsteroid(MaxStage, arena, rng)
		if err != nil {
			return nil, fmt.Errorf("spawn level %d: %w", level, err)
		}
		wave = append(wave, a)
	}
	return wave, nil
}
