package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/colonyops/planar/internal/core/styles"
	"github.com/colonyops/planar/internal/rounding"
)

// rangeForm holds the values one submission of the range form edits.
type rangeForm struct {
	Mode       string
	Digits     string
	Min        string
	Max        string
	Step       string
	Expression string
	ExprDigits string
	Apply      bool
}

func newRangeForm(d *rounding.Draft) rangeForm {
	return rangeForm{
		Mode:       d.Mode().Name(),
		Digits:     strconv.Itoa(d.Digits()),
		Min:        d.Min(),
		Max:        d.Max(),
		Step:       d.Step(),
		Expression: d.Expression(),
		ExprDigits: strconv.Itoa(d.ExpressionDigits()),
		Apply:      true,
	}
}

// actions turns a submitted form into dialog actions, touching only the
// fields that changed. The mode goes first since selecting it resets the
// step and corrects the bounds.
func (v rangeForm) actions(d *rounding.Draft) ([]rounding.Action, error) {
	if !v.Apply {
		return []rounding.Action{rounding.Cancel{}}, nil
	}

	digits, err := parseDigits(v.Digits)
	if err != nil {
		return nil, fmt.Errorf("digits: %w", err)
	}
	exprDigits, err := parseDigits(v.ExprDigits)
	if err != nil {
		return nil, fmt.Errorf("expression digits: %w", err)
	}

	var out []rounding.Action

	modeChanged := v.Mode != d.Mode().Name()
	if modeChanged || (v.Mode == rounding.NameReal && digits != d.Digits()) {
		mode, err := rounding.ParseMode(v.Mode, digits)
		if err != nil {
			return nil, err
		}
		out = append(out, rounding.SelectMode{Mode: mode})
	}
	if v.Min != d.Min() {
		out = append(out, rounding.EditMin{Text: v.Min})
	}
	if v.Max != d.Max() {
		out = append(out, rounding.EditMax{Text: v.Max})
	}
	if v.Step != d.Step() {
		out = append(out, rounding.EditStep{Text: v.Step})
	}
	if v.Expression != d.Expression() {
		out = append(out, rounding.EditExpression{Text: v.Expression})
	}
	if exprDigits != d.ExpressionDigits() {
		out = append(out, rounding.EditDigits{Digits: exprDigits})
	}

	return append(out, rounding.Confirm{}), nil
}

// formFiller shows v to the user and stores their answers back into it.
type formFiller func(ctx context.Context, v *rangeForm, axis string, rejected error) error

// formPresenter drives the range dialog with a huh form. Each submission is
// replayed as a batch of actions ending in Confirm or Cancel, and a rejected
// confirm reopens the form with the reason on top.
type formPresenter struct {
	fill    formFiller
	pending []rounding.Action
}

func newFormPresenter() *formPresenter {
	return &formPresenter{fill: runRangeForm}
}

func (p *formPresenter) Next(ctx context.Context, d *rounding.Draft, rejected error) (rounding.Action, error) {
	if len(p.pending) == 0 {
		v := newRangeForm(d)
		if err := p.fill(ctx, &v, d.Axis(), rejected); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return rounding.Cancel{}, nil
			}
			return nil, fmt.Errorf("form: %w", err)
		}

		actions, err := v.actions(d)
		if err != nil {
			return nil, err
		}
		p.pending = actions
	}

	a := p.pending[0]
	p.pending = p.pending[1:]
	return a, nil
}

func runRangeForm(ctx context.Context, v *rangeForm, axis string, rejected error) error {
	return buildRangeForm(v, axis, rejected).RunWithContext(ctx)
}

func buildRangeForm(v *rangeForm, axis string, rejected error) *huh.Form {
	var fields []huh.Field
	if rejected != nil {
		fields = append(fields, huh.NewNote().
			Title(styles.TextErrorStyle.Render("✘ "+rounding.Message(rejected))))
	}

	fields = append(fields,
		huh.NewSelect[string]().
			Title("Rounding").
			Options(huh.NewOptions(rounding.Names...)...).
			Value(&v.Mode),
		huh.NewInput().
			Title("Digits").
			Description("Decimal places kept in real mode").
			Validate(validateDigits).
			Value(&v.Digits),
		huh.NewInput().
			Title("Min").
			Value(&v.Min),
		huh.NewInput().
			Title("Max").
			Value(&v.Max),
		huh.NewInput().
			Title("Step").
			Description("Grid spacing").
			Value(&v.Step),
		huh.NewInput().
			Title("Expression").
			Description("Shown next to the coordinate, written over " + axis).
			Value(&v.Expression),
		huh.NewInput().
			Title("Expression digits").
			Validate(validateDigits).
			Value(&v.ExprDigits),
		huh.NewConfirm().
			Title("Apply the "+axis+" range?").
			Affirmative("Apply").
			Negative("Cancel").
			Value(&v.Apply),
	)

	return huh.NewForm(huh.NewGroup(fields...).Title(axis + " range"))
}

func validateDigits(s string) error {
	_, err := parseDigits(s)
	return err
}

func parseDigits(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, errors.New("must be a whole number of at least 0")
	}
	return n, nil
}
