package rounding

import (
	"context"
	"errors"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_OddCorrectsWhileTyping(t *testing.T) {
	d := NewDraft(DefaultConfig("X", -10, 10, 1))
	d.SetMode(Odd{})

	assert.Equal(t, "5", d.SetMin("4"))
	assert.Equal(t, "-5", d.SetMin("-4"))
	assert.Equal(t, "-", d.SetMax("-"))
	assert.Equal(t, "-5", d.Min())
}

func TestDraft_SetModeRevalidatesFields(t *testing.T) {
	d := NewDraft(RangeConfig{Axis: "X", Mode: Real{Digits: 2}, Min: "1.25", Max: "7.5", Step: 0.5})

	d.SetMode(Integer{})
	assert.Equal(t, "1", d.Min())
	assert.Equal(t, "7", d.Max())
	assert.Equal(t, "0.5", d.Step(), "integer keeps the step")

	d.SetMode(Even{})
	assert.Equal(t, "0", d.Min(), "1 is odd and positive, steps down")
	assert.Equal(t, "6", d.Max())
	assert.Equal(t, "2", d.Step())

	d.SetStep("4")
	d.SetMode(Odd{})
	assert.Equal(t, "-1", d.Min())
	assert.Equal(t, "7", d.Max())
	assert.Equal(t, "2", d.Step())
}

func TestDraft_SetDigitsSelectsReal(t *testing.T) {
	d := NewDraft(RangeConfig{Axis: "Y", Min: "0", Max: "1", Step: 1})

	d.SetDigits(1)

	assert.Equal(t, Real{Digits: 1}, d.Mode())
	assert.Equal(t, 1, d.Digits())
	assert.Equal(t, "0.2", d.SetMax("0.25"))
}

func TestDraft_Confirm(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		min, max  string
		step      string
		expr      string
		wantMsg   string
		wantField string
	}{
		{"equal bounds rejected", Integer{}, "3", "3", "1", "", MsgMinNotBelowMax, "range"},
		{"even bounds accepted", Even{}, "2", "8", "2", "", "", ""},
		{"non numeric", Real{Digits: 2}, "a", "1", "1", "", MsgInvalidBounds, "range"},
		{"empty max", Integer{}, "1", "", "1", "", MsgInvalidBounds, "range"},
		{"min above max", Real{Digits: 2}, "5", "-5", "1", "", MsgMinNotBelowMax, "range"},
		{"step zero", Integer{}, "0", "10", "0", "", MsgInvalidStep, "step"},
		{"step negative", Integer{}, "0", "10", "-1", "", MsgInvalidStep, "step"},
		{"step missing", Integer{}, "0", "10", "", "", MsgInvalidStep, "step"},
		{"expression without token", Integer{}, "0", "10", "1", "Y*2", "expression must use X as the original coordinate value", "expression"},
		{"expression with token", Integer{}, "0", "10", "1", "X*2+1", "", ""},
		{"expression syntax error", Integer{}, "0", "10", "1", "X*(", "invalid expression", "expression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft(RangeConfig{Axis: "X", Mode: tt.mode})
			d.min, d.max = tt.min, tt.max
			d.SetStep(tt.step)
			d.SetExpression(tt.expr)

			cfg, err := d.Confirm()

			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.min, cfg.Min)
				assert.Equal(t, tt.max, cfg.Max)
				assert.Equal(t, tt.mode, cfg.Mode)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
			assert.Contains(t, Message(err), tt.wantMsg)
			assert.Equal(t, tt.min, d.Min(), "rejected confirm leaves the draft alone")
		})
	}
}

func TestDraft_ConfirmReportsChecksInOrder(t *testing.T) {
	d := NewDraft(RangeConfig{Axis: "X", Mode: Odd{}})
	d.min, d.max = "4", "2"
	d.SetStep("-1")

	_, err := d.Confirm()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, MsgMinNotBelowMax, Message(err), "ordering is checked before the mode constraint")
	assert.Equal(t, "step", fieldErrs[1].Field)
}

func TestDraft_ConfirmModeMessages(t *testing.T) {
	tests := []struct {
		mode Mode
		min  string
		max  string
		want string
	}{
		{Integer{}, "1.5", "4", "Min and Max must be integers."},
		{Even{}, "1", "4", "Min and Max must be even numbers."},
		{Odd{}, "1", "4", "Min and Max must be odd numbers."},
	}

	for _, tt := range tests {
		t.Run(tt.mode.Name(), func(t *testing.T) {
			d := NewDraft(RangeConfig{Axis: "X", Mode: tt.mode, Step: 1})
			d.min, d.max = tt.min, tt.max

			_, err := d.Confirm()
			assert.Equal(t, tt.want, Message(err))
		})
	}
}

func TestPropose(t *testing.T) {
	t.Run("confirm after fixing a rejection", func(t *testing.T) {
		script := &Script{Actions: []Action{
			SelectMode{Mode: Even{}},
			EditMin{Text: "3"},
			EditMax{Text: "3"},
			Confirm{},
			EditMin{Text: "2"},
			EditMax{Text: "8"},
			Confirm{},
		}}

		cfg, err := Propose(context.Background(), DefaultConfig("X", -10, 10, 1), script)

		require.NoError(t, err)
		assert.Equal(t, "2", cfg.Min)
		assert.Equal(t, "8", cfg.Max)
		assert.Equal(t, Even{}, cfg.Mode)
		assert.Equal(t, 2.0, cfg.Step)
		assert.NoError(t, script.Rejected, "rejection cleared after the next edit")
	})

	t.Run("rejection is shown to the presenter", func(t *testing.T) {
		var seen []error
		p := PresenterFunc(func(_ context.Context, d *Draft, rejected error) (Action, error) {
			seen = append(seen, rejected)
			if rejected != nil {
				return Cancel{}, nil
			}
			if d.Min() != "3" {
				return EditMin{Text: "3"}, nil
			}
			if d.Max() != "3" {
				return EditMax{Text: "3"}, nil
			}
			return Confirm{}, nil
		})

		_, err := Propose(context.Background(), DefaultConfig("X", 0, 5, 1), p)

		require.ErrorIs(t, err, ErrCancelled)
		require.NotEmpty(t, seen)
		assert.Equal(t, MsgMinNotBelowMax, Message(seen[len(seen)-1]))
	})

	t.Run("cancel returns no config", func(t *testing.T) {
		cfg, err := Propose(context.Background(), DefaultConfig("Y", 0, 5, 1), &Script{Actions: []Action{EditMin{Text: "1"}, Cancel{}}})

		require.ErrorIs(t, err, ErrCancelled)
		assert.Equal(t, RangeConfig{}, cfg)
	})

	t.Run("presenter error aborts", func(t *testing.T) {
		boom := errors.New("boom")
		p := PresenterFunc(func(context.Context, *Draft, error) (Action, error) { return nil, boom })

		_, err := Propose(context.Background(), DefaultConfig("Y", 0, 5, 1), p)

		require.ErrorIs(t, err, boom)
	})

	t.Run("context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Propose(ctx, DefaultConfig("Y", 0, 5, 1), &Script{})

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSession(t *testing.T) {
	s := NewSession(DefaultConfig("X", -10, 10, 1))

	_, err := s.Result()
	require.Error(t, err, "result is not available while open")

	assert.False(t, s.Do(SelectMode{Mode: Odd{}}))
	assert.Equal(t, "2", s.Draft().Step())

	assert.False(t, s.Do(EditMin{Text: "4"}))
	assert.Equal(t, "5", s.Draft().Min(), "live correction applies through the session")

	assert.False(t, s.Do(EditMax{Text: "-3"}))
	assert.False(t, s.Do(Confirm{}))
	assert.Equal(t, MsgMinNotBelowMax, Message(s.Rejected()))

	assert.False(t, s.Do(EditMax{Text: "9"}))
	assert.NoError(t, s.Rejected(), "the next action clears the rejection")

	require.True(t, s.Do(Confirm{}))
	assert.True(t, s.Done())

	cfg, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, Odd{}, cfg.Mode)
	assert.Equal(t, "5", cfg.Min)
	assert.Equal(t, "9", cfg.Max)

	assert.True(t, s.Do(Cancel{}), "finished sessions ignore further actions")
	_, err = s.Result()
	assert.NoError(t, err)
}

func TestSession_NilActionCancels(t *testing.T) {
	s := NewSession(DefaultConfig("Y", 0, 1, 1))

	require.True(t, s.Do(nil))
	_, err := s.Result()
	assert.ErrorIs(t, err, ErrCancelled)
}
