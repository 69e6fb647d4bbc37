package object

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAsteroidRejectsStage(t *testing.T) {
	for _, stage := range []int{-1, 0, 4} {
		_, err := NewAsteroid(stage, Vec2{}, Vec2{})
		require.ErrorIs(t, err, ErrInvalidArgument, "stage %d", stage)

		_, err = NewAsteroidPolar(stage, Vec2{}, 0, 1)
		require.ErrorIs(t, err, ErrInvalidArgument, "stage %d", stage)

		_, err = NewRandomAsteroid(stage, testArena, rand.New(rand.NewSource(1)))
		require.ErrorIs(t, err, ErrInvalidArgument, "stage %d", stage)
	}
}

func TestNewAsteroidPolarRejectsNegativeSpeed(t *testing.T) {
	_, err := NewAsteroidPolar(2, Vec2{}, 0, -1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewRandomAsteroidRejectsNilSource(t *testing.T) {
	_, err := NewRandomAsteroid(3, testArena, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAsteroidGeometry(t *testing.T) {
	for stage := MinStage; stage <= MaxStage; stage++ {
		a, err := NewAsteroid(stage, Vec2{X: 100, Y: 100}, Vec2{})
		require.NoError(t, err)

		assert.Equal(t, stage, a.Stage)
		assert.Len(t, a.Outline, 4+2*stage)
		for _, p := range a.Outline {
			assert.InDelta(t, 20*float64(stage), p.Len(), 1e-9)
		}
		assert.InDelta(t, 20*float64(stage), a.Radius(), 1e-9)
	}
}

func TestNewRandomAsteroid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for range 100 {
		a, err := NewRandomAsteroid(3, testArena, rng)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, a.Pos.X, 0.0)
		assert.Less(t, a.Pos.X, testArena.Width)
		assert.GreaterOrEqual(t, a.Pos.Y, 0.0)
		assert.Less(t, a.Pos.Y, testArena.Height)

		assert.GreaterOrEqual(t, a.Speed(), MinAsteroidSpeed-1e-9)
		assert.Less(t, a.Speed(), MaxAsteroidSpeed)

		require.Len(t, a.Outline, 10)
		for _, p := range a.Outline {
			assert.GreaterOrEqual(t, p.Len(), 60*(1-RadiusJitter)-1e-9)
			assert.LessOrEqual(t, p.Len(), 60*(1+RadiusJitter)+1e-9)
		}
	}
}

func TestNewRandomAsteroidDeterministic(t *testing.T) {
	a, err := NewRandomAsteroid(2, testArena, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	b, err := NewRandomAsteroid(2, testArena, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAsteroidSplit(t *testing.T) {
	a, err := NewAsteroid(3, Vec2{X: 200, Y: 250}, Vec2{X: 0, Y: -5})
	require.NoError(t, err)

	children := a.Split(DefaultSplitAngle)
	require.Len(t, children, 2)

	headings := []float64{-35, -145}
	for i, c := range children {
		assert.Equal(t, 2, c.Stage)
		assert.Equal(t, a.Pos, c.Pos)
		assert.InDelta(t, 5, c.Speed(), 1e-9)
		assert.InDelta(t, headings[i], c.Heading(), 1e-9)
		assert.False(t, c.Dead)
	}
}

func TestAsteroidSplitSmallest(t *testing.T) {
	a, err := NewAsteroid(1, Vec2{}, Vec2{X: 1})
	require.NoError(t, err)
	assert.Empty(t, a.Split(DefaultSplitAngle))
}

func TestAsteroidFragmentCount(t *testing.T) {
	// A stage-3 asteroid ends up as exactly 4 stage-1 fragments, 7 hits total.
	root, err := NewAsteroidPolar(3, Vec2{X: 500, Y: 500}, 30, 4)
	require.NoError(t, err)

	pending := []Asteroid{root}
	hits, smallest := 0, 0
	for len(pending) > 0 {
		a := pending[0]
		pending = pending[1:]
		hits++
		if a.Stage == 1 {
			smallest++
		}
		pending = append(pending, a.Split(DefaultSplitAngle)...)
	}
	assert.Equal(t, 7, hits)
	assert.Equal(t, 4, smallest)
}

func TestAsteroidUpdateWraps(t *testing.T) {
	a, err := NewAsteroid(1, Vec2{X: 5, Y: 100}, Vec2{X: -30, Y: 0})
	require.NoError(t, err)

	a.Update(testArena)
	assert.InDelta(t, testArena.Width+20, a.Pos.X, 1e-9)
}

func TestAsteroidSpawnerCount(t *testing.T) {
	s := NewAsteroidSpawner(3)
	want := map[int]int{1: 1, 2: 2, 3: 3, 4: 1, 5: 2, 6: 3, 7: 1}
	for level, n := range want {
		assert.Equal(t, n, s.Count(level), "level %d", level)
	}

	assert.Equal(t, 1, NewAsteroidSpawner(0).Count(5))
}

func TestAsteroidSpawnerSpawn(t *testing.T) {
	s := NewAsteroidSpawner(3)
	wave, err := s.Spawn(2, testArena, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	require.Len(t, wave, 2)
	for _, a := range wave {
		assert.Equal(t, MaxStage, a.Stage)
	}

	_, err = s.Spawn(1, testArena, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
