package plane

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizedViewport(w, h float64) Viewport {
	v := NewViewport()
	v.Resize(w, h)
	return v
}

func TestNewViewport_Defaults(t *testing.T) {
	v := NewViewport()

	assert.Equal(t, -10.0, v.XMin)
	assert.Equal(t, 10.0, v.XMax)
	assert.Equal(t, -10.0, v.YMin)
	assert.Equal(t, 10.0, v.YMax)
	assert.Equal(t, 1.0, v.Step)
	assert.False(t, v.HasSurface())
}

func TestViewport_ToPixel(t *testing.T) {
	v := sizedViewport(400, 400)

	tests := []struct {
		name   string
		x, y   float64
		px, py float64
	}{
		{"origin is centre", 0, 0, 200, 200},
		{"top right corner", 10, 10, 400, 0},
		{"bottom left corner", -10, -10, 0, 400},
		{"y grows upward", 0, 5, 200, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, py, ok := v.ToPixel(tt.x, tt.y)
			require.True(t, ok)
			assert.InDelta(t, tt.px, px, 1e-9)
			assert.InDelta(t, tt.py, py, 1e-9)
		})
	}
}

func TestViewport_ZeroSurfaceIsNoOp(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
	}{
		{"no layout yet", 0, 0},
		{"zero width", 0, 300},
		{"zero height", 300, 0},
		{"negative clamps to zero", -5, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := sizedViewport(tt.w, tt.h)

			_, _, ok := v.ToPixel(1, 1)
			assert.False(t, ok)
			_, _, ok = v.ToLogical(1, 1)
			assert.False(t, ok)
		})
	}
}

func TestViewport_RoundTrip(t *testing.T) {
	v := sizedViewport(640, 480)
	v.ApplyRange(-3.5, 12.25, -100, 7, 0.5)

	points := []Point{
		{0, 0}, {-3.4, -99.9}, {12.2, 6.9}, {1.234567, -42.42}, {5, 5},
	}

	for _, p := range points {
		px, py, ok := v.ToPixel(p.X, p.Y)
		require.True(t, ok)

		x, y, ok := v.ToLogical(px, py)
		require.True(t, ok)
		assert.InDelta(t, p.X, x, 1e-9)
		assert.InDelta(t, p.Y, y, 1e-9)

		px2, py2, _ := v.ToPixel(x, y)
		assert.InDelta(t, px, px2, 1e-9)
		assert.InDelta(t, py, py2, 1e-9)
	}
}

func TestViewport_ApplyRange(t *testing.T) {
	t.Run("equal bounds auto-correct max", func(t *testing.T) {
		v := NewViewport()
		c := v.ApplyRange(5, 5, -10, 10, 1)

		assert.True(t, c.XMax)
		assert.False(t, c.YMax)
		assert.Equal(t, 5.0, v.XMin)
		assert.Equal(t, 6.0, v.XMax)
	})

	t.Run("inverted y bounds auto-correct", func(t *testing.T) {
		v := NewViewport()
		c := v.ApplyRange(-1, 1, 4, -4, 1)

		assert.True(t, c.YMax)
		assert.Equal(t, 5.0, v.YMax)
	})

	t.Run("non-positive step resets to one", func(t *testing.T) {
		for _, step := range []float64{0, -2} {
			v := NewViewport()
			c := v.ApplyRange(-1, 1, -1, 1, step)

			assert.True(t, c.Step)
			assert.Equal(t, 1.0, v.Step)
		}
	})

	t.Run("valid range untouched", func(t *testing.T) {
		v := NewViewport()
		c := v.ApplyRange(-2, 3, -4, 5, 0.25)

		assert.False(t, c.Any())
		assert.Equal(t, Viewport{XMin: -2, XMax: 3, YMin: -4, YMax: 5, Step: 0.25, MinSpan: DefaultMinSpan, MaxSpan: DefaultMaxSpan}, v)
	})
}

func TestViewport_Zoom(t *testing.T) {
	t.Run("zoom in twice around origin", func(t *testing.T) {
		v := NewViewport()

		require.True(t, v.Zoom(0.8, Point{0, 0}))
		assert.InDelta(t, -8, v.XMin, 1e-9)
		assert.InDelta(t, 8, v.XMax, 1e-9)
		assert.InDelta(t, -8, v.YMin, 1e-9)
		assert.InDelta(t, 8, v.YMax, 1e-9)

		require.True(t, v.Zoom(0.8, Point{0, 0}))
		assert.InDelta(t, -6.4, v.XMin, 1e-9)
		assert.InDelta(t, 6.4, v.XMax, 1e-9)
	})

	t.Run("centre keeps its pixel", func(t *testing.T) {
		centres := []Point{{0, 0}, {3, -7}, {-9.5, 9.5}, {2.5, 1}}
		for _, factor := range []float64{0.8, 1.25, 0.5, 3} {
			for _, c := range centres {
				v := sizedViewport(500, 300)
				before, beforeY, _ := v.ToPixel(c.X, c.Y)

				require.True(t, v.Zoom(factor, c))

				after, afterY, _ := v.ToPixel(c.X, c.Y)
				assert.InDelta(t, before, after, 1e-9)
				assert.InDelta(t, beforeY, afterY, 1e-9)
			}
		}
	})

	t.Run("refuses to collapse below min span", func(t *testing.T) {
		v := NewViewport()
		v.MinSpan = 1

		assert.False(t, v.Zoom(0.01, Point{0, 0}))
		assert.Equal(t, -10.0, v.XMin)
		assert.Equal(t, 10.0, v.XMax)
	})

	t.Run("refuses to grow past max span", func(t *testing.T) {
		v := NewViewport()
		v.MaxSpan = 30

		assert.False(t, v.Zoom(2, Point{0, 0}))
		assert.Equal(t, 10.0, v.XMax)
	})

	t.Run("refuses non-positive factor", func(t *testing.T) {
		v := NewViewport()
		assert.False(t, v.Zoom(0, Point{}))
		assert.False(t, v.Zoom(-1, Point{}))
	})
}

func TestViewport_AxisVisibility(t *testing.T) {
	v := NewViewport()
	assert.True(t, v.XAxisVisible())
	assert.True(t, v.YAxisVisible())

	v.ApplyRange(1, 5, -3, 3, 1)
	assert.False(t, v.YAxisVisible(), "x=0 is left of the range")
	assert.True(t, v.XAxisVisible())

	v.ApplyRange(-5, 5, 2, 9, 1)
	assert.False(t, v.XAxisVisible(), "y=0 is below the range")
}
