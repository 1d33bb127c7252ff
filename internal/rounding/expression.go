package rounding

import (
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expression is a compiled derived-value expression over one axis, e.g.
// "X*2 + 1" for the X axis.
type Expression struct {
	src    string
	token  string
	digits int

	program *vm.Program
}

// CompileExpression compiles src with token bound to the raw coordinate.
// The result of Eval is rounded to digits decimals.
func CompileExpression(src, token string, digits int) (*Expression, error) {
	src = strings.TrimSpace(src)
	if token == "" || !strings.Contains(src, token) {
		return nil, fmt.Errorf(msgMissingAxisToken, token)
	}

	program, err := expr.Compile(src,
		expr.Env(map[string]any{token: float64(0)}),
		expr.AsFloat64(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}

	return &Expression{
		src:     src,
		token:   token,
		digits:  max(digits, 0),
		program: program,
	}, nil
}

// String returns the expression source.
func (e *Expression) String() string { return e.src }

// Eval evaluates the expression for a raw coordinate.
func (e *Expression) Eval(raw float64) (float64, error) {
	out, err := expr.Run(e.program, map[string]any{e.token: raw})
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", e.src, err)
	}

	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("evaluate %q: got %T, want a number", e.src, out)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v, nil
	}
	return roundTo(v, e.digits), nil
}

// CompiledExpression compiles the config's derived expression. It returns nil and
// no error when none is set.
func (c RangeConfig) CompiledExpression() (*Expression, error) {
	if strings.TrimSpace(c.Expression) == "" {
		return nil, nil
	}
	return CompileExpression(c.Expression, c.Axis, c.ExpressionDigits)
}
