package rounding

import "strings"

// parityStep is the step a draft switches to when Even or Odd is selected.
const parityStep = "2"

// Draft is the editable state of an open range dialog. SetMin and SetMax
// apply live correction and return the text the field should now show.
type Draft struct {
	axis   string
	mode   Mode
	digits int

	min        string
	max        string
	step       string
	expression string
	exprDigits int
}

// NewDraft opens a draft prefilled from cfg.
func NewDraft(cfg RangeConfig) *Draft {
	d := &Draft{
		axis:       cfg.Axis,
		mode:       cfg.Mode,
		digits:     DefaultDigits,
		min:        cfg.Min,
		max:        cfg.Max,
		expression: cfg.Expression,
		exprDigits: cfg.ExpressionDigits,
	}
	if d.mode == nil {
		d.mode = Integer{}
	}
	if r, ok := d.mode.(Real); ok {
		d.digits = r.Digits
	}
	if cfg.Step > 0 {
		d.step = formatNumber(cfg.Step)
	}
	return d
}

func (d *Draft) Axis() string       { return d.axis }
func (d *Draft) Mode() Mode         { return d.mode }
func (d *Draft) Digits() int        { return d.digits }
func (d *Draft) Min() string        { return d.min }
func (d *Draft) Max() string        { return d.max }
func (d *Draft) Step() string       { return d.step }
func (d *Draft) Expression() string { return d.expression }

// ExpressionDigits is the number of decimals an evaluated expression keeps.
func (d *Draft) ExpressionDigits() int { return d.exprDigits }

// SetMin stores a min edit after live correction.
func (d *Draft) SetMin(text string) string {
	d.min = d.mode.Correct(text)
	return d.min
}

// SetMax stores a max edit after live correction.
func (d *Draft) SetMax(text string) string {
	d.max = d.mode.Correct(text)
	return d.max
}

// SetStep stores the step text. It is validated on Confirm only.
func (d *Draft) SetStep(text string) { d.step = text }

// SetExpression stores the derived expression.
func (d *Draft) SetExpression(text string) { d.expression = text }

// SetExpressionDigits sets how many decimals an evaluated expression keeps.
func (d *Draft) SetExpressionDigits(n int) { d.exprDigits = max(n, 0) }

// SetMode switches the rounding mode. Field contents are kept and
// re-corrected under the new mode; Even and Odd also reset the step to 2.
func (d *Draft) SetMode(m Mode) {
	if m == nil {
		return
	}
	if r, ok := m.(Real); ok {
		d.digits = r.Digits
	}
	d.mode = m
	d.min = m.Correct(d.min)
	d.max = m.Correct(d.max)

	switch m.(type) {
	case Even, Odd:
		d.step = parityStep
	}
}

// SetDigits changes the Real mode digit limit. It selects Real mode when
// another mode is active.
func (d *Draft) SetDigits(n int) {
	d.SetMode(Real{Digits: max(n, 0)})
}

// Config returns the draft as a RangeConfig without validating it. An
// unparseable step is reported as zero.
func (d *Draft) Config() RangeConfig {
	step, ok := parseFinite(d.step)
	if !ok {
		step = 0
	}
	return RangeConfig{
		Axis:             d.axis,
		Mode:             d.mode,
		Min:              strings.TrimSpace(d.min),
		Max:              strings.TrimSpace(d.max),
		Step:             step,
		Expression:       strings.TrimSpace(d.expression),
		ExpressionDigits: d.exprDigits,
	}
}

// Confirm validates the draft and returns the finalized config. On failure
// the draft is left as it is and the error carries the user-facing message.
func (d *Draft) Confirm() (RangeConfig, error) {
	cfg := d.Config()
	if err := cfg.Validate(); err != nil {
		return RangeConfig{}, err
	}
	return cfg, nil
}
