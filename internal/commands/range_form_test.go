package commands

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/planar/internal/rounding"
	"github.com/colonyops/planar/internal/store/presets"
)

func TestRangeForm_Actions(t *testing.T) {
	tests := []struct {
		name string
		edit func(v *rangeForm)
		want []rounding.Action
	}{
		{
			name: "unchanged confirms",
			edit: func(*rangeForm) {},
			want: []rounding.Action{rounding.Confirm{}},
		},
		{
			name: "declined cancels",
			edit: func(v *rangeForm) { v.Apply = false },
			want: []rounding.Action{rounding.Cancel{}},
		},
		{
			name: "mode goes before bounds",
			edit: func(v *rangeForm) {
				v.Max = "7"
				v.Mode = rounding.NameOdd
			},
			want: []rounding.Action{
				rounding.SelectMode{Mode: rounding.Odd{}},
				rounding.EditMax{Text: "7"},
				rounding.Confirm{},
			},
		},
		{
			name: "real digits alone reselect the mode",
			edit: func(v *rangeForm) {
				v.Mode = rounding.NameReal
				v.Digits = "3"
			},
			want: []rounding.Action{
				rounding.SelectMode{Mode: rounding.Real{Digits: 3}},
				rounding.Confirm{},
			},
		},
		{
			name: "every text field",
			edit: func(v *rangeForm) {
				v.Min = "-4"
				v.Max = "4"
				v.Step = "0.5"
				v.Expression = "X*2"
				v.ExprDigits = "1"
			},
			want: []rounding.Action{
				rounding.EditMin{Text: "-4"},
				rounding.EditMax{Text: "4"},
				rounding.EditStep{Text: "0.5"},
				rounding.EditExpression{Text: "X*2"},
				rounding.EditDigits{Digits: 1},
				rounding.Confirm{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := rounding.NewDraft(rounding.DefaultConfig("X", -10, 10, 1))
			v := newRangeForm(d)
			tt.edit(&v)

			got, err := v.actions(d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRangeForm_BadDigits(t *testing.T) {
	d := rounding.NewDraft(rounding.DefaultConfig("X", -10, 10, 1))
	v := newRangeForm(d)
	v.ExprDigits = "-1"

	_, err := v.actions(d)
	require.Error(t, err)
	assert.Error(t, validateDigits("two"))
	assert.NoError(t, validateDigits(" 2 "))
}

func TestFormPresenter_Propose(t *testing.T) {
	t.Run("rejected confirm reopens the form with the reason", func(t *testing.T) {
		var shown []error
		p := &formPresenter{fill: func(_ context.Context, v *rangeForm, axis string, rejected error) error {
			assert.Equal(t, "Y", axis)
			shown = append(shown, rejected)
			if rejected == nil {
				v.Min, v.Max = "5", "5"
				return nil
			}
			v.Max = "8"
			return nil
		}}

		cfg, err := rounding.Propose(context.Background(), rounding.DefaultConfig("Y", -10, 10, 1), p)
		require.NoError(t, err)
		assert.Equal(t, "5", cfg.Min)
		assert.Equal(t, "8", cfg.Max)

		require.Len(t, shown, 2)
		assert.NoError(t, shown[0])
		assert.Equal(t, rounding.MsgMinNotBelowMax, rounding.Message(shown[1]))
	})

	t.Run("aborted form cancels", func(t *testing.T) {
		p := &formPresenter{fill: func(context.Context, *rangeForm, string, error) error {
			return huh.ErrUserAborted
		}}

		_, err := rounding.Propose(context.Background(), rounding.DefaultConfig("X", -10, 10, 1), p)
		assert.ErrorIs(t, err, rounding.ErrCancelled)
	})

	t.Run("form failure is returned", func(t *testing.T) {
		boom := errors.New("no tty")
		p := &formPresenter{fill: func(context.Context, *rangeForm, string, error) error { return boom }}

		_, err := rounding.Propose(context.Background(), rounding.DefaultConfig("X", -10, 10, 1), p)
		assert.ErrorIs(t, err, boom)
	})
}

func TestRangeEdit(t *testing.T) {
	app := newTestApp(t)
	app.fill = func(_ context.Context, v *rangeForm, _ string, _ error) error {
		v.Mode = rounding.NameEven
		v.Min = "3"
		return nil
	}

	out, err := app.run(t, "range", "edit", "--axis", "x", "--save", "--format", "json")
	require.NoError(t, err, out)

	var got rounding.RangeConfig
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, rounding.Even{}, got.Mode)
	assert.Equal(t, "2", got.Min, "typed min is corrected under the new mode")
	assert.Equal(t, 2.0, got.Step)

	stored, err := presets.New(app.flags.Config.PresetsFile()).Get(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, got, stored)

	app.fill = func(_ context.Context, v *rangeForm, _ string, _ error) error {
		v.Apply = false
		return nil
	}
	out, err = app.run(t, "range", "edit")
	require.NoError(t, err)
	assert.Contains(t, out, "range unchanged")
}

func TestBuildRangeForm(t *testing.T) {
	v := newRangeForm(rounding.NewDraft(rounding.DefaultConfig("X", -10, 10, 1)))

	assert.NotNil(t, buildRangeForm(&v, "X", nil))
	assert.NotNil(t, buildRangeForm(&v, "X", errors.New(rounding.MsgMinNotBelowMax)))
}
