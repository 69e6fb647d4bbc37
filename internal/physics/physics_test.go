package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPolar(t *testing.T) {
	v := FromPolar(-90, 5)
	assert.InDelta(t, 0, v.X, 1e-9)
	assert.InDelta(t, -5, v.Y, 1e-9)

	v = FromPolar(0, 2)
	assert.InDelta(t, 2, v.X, 1e-9)
	assert.InDelta(t, 0, v.Y, 1e-9)
}

func TestHeadingRoundTrip(t *testing.T) {
	for _, deg := range []float64{-135, -90, -35, 0, 45, 90, 170} {
		v := FromPolar(deg, 3)
		assert.InDelta(t, deg, v.Heading(), 1e-9, "heading %v", deg)
		assert.InDelta(t, 3, v.Len(), 1e-9)
	}
}

func TestRotate(t *testing.T) {
	v := Vec2{X: 1, Y: 0}.Rotate(90)
	assert.InDelta(t, 0, v.X, 1e-9)
	assert.InDelta(t, 1, v.Y, 1e-9)
}

func TestUnitOfZero(t *testing.T) {
	assert.Equal(t, Vec2{}, Vec2{}.Unit())
	assert.InDelta(t, 1, Vec2{X: 3, Y: 4}.Unit().Len(), 1e-9)
}

func TestBoxAround(t *testing.T) {
	pts := []Vec2{{X: 20, Y: 0}, {X: -10, Y: 10}, {X: -10, Y: -10}}
	b := BoxAround(Vec2{X: 100, Y: 50}, pts)

	assert.Equal(t, Box{MinX: 90, MinY: 40, MaxX: 120, MaxY: 60}, b)
	assert.Equal(t, 30.0, b.Width())
	assert.Equal(t, 20.0, b.Height())
	assert.Equal(t, Vec2{X: 105, Y: 50}, b.Center())
}

func TestBoxAroundEmpty(t *testing.T) {
	b := BoxAround(Vec2{X: 1, Y: 2}, nil)
	assert.Equal(t, 0.0, b.Width())
	assert.Equal(t, Vec2{X: 1, Y: 2}, b.Center())
}

func TestBoxOverlaps(t *testing.T) {
	a := Box{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}

	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"inside", Box{MinX: 2, MinY: 2, MaxX: 4, MaxY: 4}, true},
		{"partial", Box{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15}, true},
		{"touching edge", Box{MinX: 10, MinY: 0, MaxX: 20, MaxY: 10}, true},
		{"left of", Box{MinX: -20, MinY: 0, MaxX: -1, MaxY: 10}, false},
		{"below", Box{MinX: 0, MinY: 11, MaxX: 10, MaxY: 20}, false},
		{"diagonal apart", Box{MinX: 11, MinY: 11, MaxX: 12, MaxY: 12}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(a))
		})
	}
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5, Distance(Vec2{}, Vec2{X: 3, Y: 4}), 1e-9)
	assert.InDelta(t, math.Sqrt2, Distance(Vec2{X: 1, Y: 1}, Vec2{}), 1e-9)
}
