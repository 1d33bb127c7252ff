package plane

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnap(t *testing.T) {
	tests := []struct {
		name string
		in   Point
		step float64
		want Point
	}{
		{"unit step", Point{1.4, -2.6}, 1, Point{1, -3}},
		{"half step", Point{0.74, 0.76}, 0.5, Point{0.5, 1}},
		{"already on grid", Point{3, 4}, 1, Point{3, 4}},
		{"non-positive step is identity", Point{1.4, 2.2}, 0, Point{1.4, 2.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Snap(tt.in, tt.step)
			assert.InDelta(t, tt.want.X, got.X, 1e-12)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-12)
		})
	}
}

func TestSnap_Idempotent(t *testing.T) {
	steps := []float64{1, 0.1, 0.25, 3, 0.3}
	points := []Point{{0.123, 9.87}, {-4.55, 4.55}, {1e3 + 0.7, -1e3 - 0.2}, {0.15, -0.15}}

	for _, step := range steps {
		for _, p := range points {
			once := Snap(p, step)
			twice := Snap(once, step)
			assert.Equal(t, once, twice, "step=%v p=%v", step, p)
		}
	}
}

func TestPointer_MoveToClamps(t *testing.T) {
	v := NewViewport()
	p := NewPointer()

	attempts := []Point{{0, 0}, {50, -50}, {-11, 3}, {10, 10}, {9.99, -10.01}}
	for _, a := range attempts {
		p.MoveTo(v, a.X, a.Y)
		assert.GreaterOrEqual(t, p.X, v.XMin)
		assert.LessOrEqual(t, p.X, v.XMax)
		assert.GreaterOrEqual(t, p.Y, v.YMin)
		assert.LessOrEqual(t, p.Y, v.YMax)
	}

	p.MoveTo(v, 50, -50)
	assert.Equal(t, Point{10, -10}, p.Position())
}

func TestPointer_Hit(t *testing.T) {
	p := Pointer{Radius: 7}
	center := Point{100, 100}

	assert.True(t, p.Hit(center, Point{100, 100}))
	assert.True(t, p.Hit(center, Point{109, 100}), "radius plus forgiveness margin")
	assert.False(t, p.Hit(center, Point{109.5, 100}))
	assert.True(t, p.Hit(center, Point{106, 106}))
	assert.False(t, p.Hit(center, Point{107, 107}))
}
