package physics

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(g *SpatialGrid, p Vec2) []int {
	var got []int
	g.QueryAround(p, func(i int) bool {
		got = append(got, i)
		return false
	})
	sort.Ints(got)
	return got
}

func TestGridFindsNeighbors(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(Vec2{X: 5, Y: 5}, 0)
	g.Insert(Vec2{X: 15, Y: 15}, 1)
	g.Insert(Vec2{X: 55, Y: 55}, 2)

	assert.Equal(t, []int{0, 1}, collect(g, Vec2{X: 9, Y: 9}))
	assert.Equal(t, []int{2}, collect(g, Vec2{X: 60, Y: 50}))
}

func TestGridDoesNotWrap(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(Vec2{X: 95, Y: 5}, 0)

	assert.Empty(t, collect(g, Vec2{X: 1, Y: 5}))
}

func TestGridClampsOutsidePositions(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(Vec2{X: -30, Y: 50}, 0)
	g.Insert(Vec2{X: 130, Y: 50}, 1)

	assert.Equal(t, []int{0}, collect(g, Vec2{X: 4, Y: 50}))
	assert.Equal(t, []int{1}, collect(g, Vec2{X: 99, Y: 50}))
}

func TestGridStopsEarly(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	for i := 0; i < 5; i++ {
		g.Insert(Vec2{X: 5, Y: 5}, i)
	}
	calls := 0
	g.QueryAround(Vec2{X: 5, Y: 5}, func(int) bool {
		calls++
		return calls == 2
	})
	assert.Equal(t, 2, calls)
}

func TestGridReset(t *testing.T) {
	g := NewSpatialGrid(100, 50, 10)
	g.Insert(Vec2{X: 5, Y: 5}, 0)

	g.Reset(25)
	require.Equal(t, 25.0, g.CellSize())
	assert.Empty(t, collect(g, Vec2{X: 5, Y: 5}))

	g.Insert(Vec2{X: 30, Y: 30}, 7)
	assert.Equal(t, []int{7}, collect(g, Vec2{X: 10, Y: 10}))

	g.Reset(0)
	g.Insert(Vec2{X: 99, Y: 49}, 3)
	assert.Equal(t, []int{3}, collect(g, Vec2{}))
}
