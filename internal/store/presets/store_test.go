package presets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/colonyops/planar/internal/rounding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "nested", "ranges.yaml"))
}

func evenX() rounding.RangeConfig {
	return rounding.RangeConfig{
		Axis:             "X",
		Mode:             rounding.Even{},
		Min:              "2",
		Max:              "8",
		Step:             2,
		Expression:       "X/2",
		ExpressionDigits: 1,
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "X")
	require.ErrorIs(t, err, ErrNotFound)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Save(ctx, evenX()))

	got, err := s.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, evenX(), got, "lookup ignores axis case")

	reopened := New(s.Path())
	got, err = reopened.Get(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, evenX(), got)
}

func TestStore_SaveReplacesAxis(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	y := rounding.DefaultConfig("Y", -1, 1, 0.5)
	y.Mode = rounding.Real{Digits: 2}

	require.NoError(t, s.Save(ctx, y))
	require.NoError(t, s.Save(ctx, evenX()))

	odd := evenX()
	odd.Mode = rounding.Odd{}
	odd.Min, odd.Max = "1", "9"
	require.NoError(t, s.Save(ctx, odd))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "X", list[0].Axis)
	assert.Equal(t, rounding.Odd{}, list[0].Mode)
	assert.Equal(t, y, list[1])
}

func TestStore_SaveRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	bad := evenX()
	bad.Min = "3"
	err := s.Save(ctx, bad)
	assert.ErrorContains(t, err, "even numbers")

	noAxis := evenX()
	noAxis.Axis = " "
	assert.Error(t, s.Save(ctx, noAxis))

	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err), "nothing written")
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Save(ctx, evenX()))
	require.NoError(t, s.Delete(ctx, "X"))
	require.NoError(t, s.Delete(ctx, "X"))

	_, err := s.Get(ctx, "X")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_CorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("ranges: [{axis: X, mode: prime}]"), 0o644))

	_, err := s.Get(context.Background(), "X")
	assert.ErrorContains(t, err, "parse presets")
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestStore(t)
	assert.ErrorIs(t, s.Save(ctx, evenX()), context.Canceled)
	_, err := s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
