package rounding

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// Validation messages shown to the user when a range cannot be committed.
const (
	MsgInvalidBounds    = "Please enter valid numeric min/max values."
	MsgMinNotBelowMax   = "min must be smaller than max"
	MsgInvalidStep      = "step must be a positive number"
	msgMissingAxisToken = "expression must use %s as the original coordinate value"
)

// RangeConfig is the finalized output of the range dialog for one axis. Min
// and Max keep the text the user typed.
type RangeConfig struct {
	Axis             string
	Mode             Mode
	Min              string
	Max              string
	Step             float64
	Expression       string
	ExpressionDigits int
}

// DefaultConfig returns the dialog defaults for an axis: Integer mode over
// the given bounds.
func DefaultConfig(axis string, lo, hi, step float64) RangeConfig {
	return RangeConfig{
		Axis:             axis,
		Mode:             Integer{},
		Min:              formatNumber(lo),
		Max:              formatNumber(hi),
		Step:             step,
		ExpressionDigits: DefaultDigits,
	}
}

// Bounds parses Min and Max.
func (c RangeConfig) Bounds() (lo, hi float64, err error) {
	lo, okLo := parseFinite(c.Min)
	hi, okHi := parseFinite(c.Max)
	if !okLo || !okHi {
		return 0, 0, errors.New(MsgInvalidBounds)
	}
	return lo, hi, nil
}

// Validate runs the commit checks in order: bounds parse, min below max,
// the mode constraint, a positive step, and the axis token in the
// expression. Failures are returned as criterio field errors keyed by
// "range", "step" and "expression".
func (c RangeConfig) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if err := c.checkBounds(); err != nil {
		errs = errs.Append("range", err)
	}
	if !(c.Step > 0) || math.IsInf(c.Step, 0) {
		errs = errs.Append("step", errors.New(MsgInvalidStep))
	}
	if err := c.checkExpression(); err != nil {
		errs = errs.Append("expression", err)
	}

	return errs.ToError()
}

func (c RangeConfig) checkBounds() error {
	lo, hi, err := c.Bounds()
	if err != nil {
		return err
	}
	if !(lo < hi) {
		return errors.New(MsgMinNotBelowMax)
	}
	mode := c.Mode
	if mode == nil {
		mode = Integer{}
	}
	return mode.Check(lo, hi)
}

func (c RangeConfig) checkExpression() error {
	_, err := c.CompiledExpression()
	return err
}

// Message returns the first user-facing message carried by a validation
// error, or err.Error() for other errors.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldErrs[0].Err.Error()
	}
	return err.Error()
}

// rangeConfigDoc is the serialized form of RangeConfig.
type rangeConfigDoc struct {
	Axis             string  `yaml:"axis" json:"axis"`
	Mode             string  `yaml:"mode" json:"mode"`
	Digits           *int    `yaml:"digits,omitempty" json:"digits,omitempty"`
	Min              string  `yaml:"min" json:"min"`
	Max              string  `yaml:"max" json:"max"`
	Step             float64 `yaml:"step" json:"step"`
	Expression       string  `yaml:"expression,omitempty" json:"expression,omitempty"`
	ExpressionDigits int     `yaml:"expression_digits" json:"expression_digits"`
}

func (c RangeConfig) doc() rangeConfigDoc {
	d := rangeConfigDoc{
		Axis:             c.Axis,
		Mode:             NameInteger,
		Min:              c.Min,
		Max:              c.Max,
		Step:             c.Step,
		Expression:       c.Expression,
		ExpressionDigits: c.ExpressionDigits,
	}
	if c.Mode != nil {
		d.Mode = c.Mode.Name()
	}
	if r, ok := c.Mode.(Real); ok {
		digits := r.Digits
		d.Digits = &digits
	}
	return d
}

func (d rangeConfigDoc) config() (RangeConfig, error) {
	digits := -1
	if d.Digits != nil {
		digits = *d.Digits
	}
	mode, err := ParseMode(d.Mode, digits)
	if err != nil {
		return RangeConfig{}, err
	}
	return RangeConfig{
		Axis:             d.Axis,
		Mode:             mode,
		Min:              d.Min,
		Max:              d.Max,
		Step:             d.Step,
		Expression:       d.Expression,
		ExpressionDigits: d.ExpressionDigits,
	}, nil
}

func (c RangeConfig) MarshalYAML() (any, error) {
	return c.doc(), nil
}

func (c *RangeConfig) UnmarshalYAML(node *yaml.Node) error {
	var d rangeConfigDoc
	if err := node.Decode(&d); err != nil {
		return err
	}
	cfg, err := d.config()
	if err != nil {
		return err
	}
	*c = cfg
	return nil
}

func (c RangeConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.doc())
}

func (c *RangeConfig) UnmarshalJSON(data []byte) error {
	var d rangeConfigDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	cfg, err := d.config()
	if err != nil {
		return err
	}
	*c = cfg
	return nil
}

func parseFinite(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
