package tui

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/planar/internal/core/styles"
	"github.com/colonyops/planar/internal/rounding"
	"github.com/colonyops/planar/internal/tui/components/form"
)

// Range dialog field keys.
const (
	keyMin        = "min"
	keyMax        = "max"
	keyStep       = "step"
	keyMode       = "mode"
	keyDigits     = "digits"
	keyExpression = "expression"
	keyExprDigits = "expression_digits"
)

// rangeDialog is the modal range editor for one axis. Every edit is fed to
// a rounding session, and the corrected draft is written back into the
// fields.
type rangeDialog struct {
	session *rounding.Session
	form    *form.Dialog
	last    map[string]string
}

func newRangeDialog(cfg rounding.RangeConfig) *rangeDialog {
	s := rounding.NewSession(cfg)
	d := s.Draft()

	fields := []form.Field{
		form.NewTextField("Min", "", d.Min()).WithFilter(rounding.AllowBoundInput),
		form.NewTextField("Max", "", d.Max()).WithFilter(rounding.AllowBoundInput),
		form.NewTextField("Step", "", d.Step()).WithFilter(rounding.AllowStepInput),
		form.NewSelectFormField("Rounding", rounding.Names, d.Mode().Name()),
		form.NewTextField("Decimals (real)", "", strconv.Itoa(d.Digits())).WithFilter(digitsOnly),
		form.NewTextField("Expression", d.Axis()+"*2", d.Expression()),
		form.NewTextField("Expression decimals", "", strconv.Itoa(d.ExpressionDigits())).WithFilter(digitsOnly),
	}
	keys := []string{keyMin, keyMax, keyStep, keyMode, keyDigits, keyExpression, keyExprDigits}

	rd := &rangeDialog{
		session: s,
		form:    form.NewDialog(d.Axis()+" axis range", fields, keys),
	}
	rd.last = rd.form.FormValues()
	return rd
}

// Axis returns the axis name being edited.
func (r *rangeDialog) Axis() string { return r.session.Draft().Axis() }

// Done reports whether the dialog was confirmed or cancelled.
func (r *rangeDialog) Done() bool { return r.session.Done() }

// Result returns the confirmed config or rounding.ErrCancelled.
func (r *rangeDialog) Result() (rounding.RangeConfig, error) { return r.session.Result() }

func (r *rangeDialog) Update(msg tea.Msg) tea.Cmd {
	if r.session.Done() {
		return nil
	}

	_, cmd := r.form.Update(msg)

	switch {
	case r.form.Cancelled():
		r.session.Do(rounding.Cancel{})
		return cmd
	case r.form.Submitted():
		if !r.session.Do(rounding.Confirm{}) {
			r.form.Message = rounding.Message(r.session.Rejected())
			r.form.Resume()
		}
		return cmd
	}

	r.sync()
	return cmd
}

// sync turns changed field values into session actions and writes the
// corrected draft back into the fields.
func (r *rangeDialog) sync() {
	values := r.form.FormValues()
	changed := func(k string) bool { return values[k] != r.last[k] }

	var actions []rounding.Action
	if changed(keyMin) {
		actions = append(actions, rounding.EditMin{Text: values[keyMin]})
	}
	if changed(keyMax) {
		actions = append(actions, rounding.EditMax{Text: values[keyMax]})
	}
	if changed(keyStep) {
		actions = append(actions, rounding.EditStep{Text: values[keyStep]})
	}
	if changed(keyMode) || (changed(keyDigits) && values[keyMode] == rounding.NameReal) {
		digits := atoiOr(values[keyDigits], rounding.DefaultDigits)
		if mode, err := rounding.ParseMode(values[keyMode], digits); err == nil {
			actions = append(actions, rounding.SelectMode{Mode: mode})
		}
	}
	if changed(keyExpression) {
		actions = append(actions, rounding.EditExpression{Text: values[keyExpression]})
	}
	if changed(keyExprDigits) {
		actions = append(actions, rounding.EditDigits{Digits: atoiOr(values[keyExprDigits], 0)})
	}

	if len(actions) == 0 {
		return
	}
	for _, a := range actions {
		r.session.Do(a)
	}
	r.form.Message = ""

	d := r.session.Draft()
	r.form.Field(keyMin).SetValue(d.Min())
	r.form.Field(keyMax).SetValue(d.Max())
	r.form.Field(keyStep).SetValue(d.Step())
	r.last = r.form.FormValues()
}

func (r *rangeDialog) View() string {
	title := styles.ModalTitleStyle.Render(r.form.Title)
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", r.form.View()))
}

func digitsOnly(text string) bool {
	if len(text) > 2 {
		return false
	}
	for _, c := range text {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func atoiOr(text string, fallback int) int {
	n, err := strconv.Atoi(text)
	if err != nil {
		return fallback
	}
	return n
}
