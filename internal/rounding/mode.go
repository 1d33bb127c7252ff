// Package rounding implements the range dialog policy: live correction of
// min/max text as it is typed, commit-time validation and per-axis
// quantization of coordinates.
package rounding

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultDigits is the number of decimals Real mode allows when none is set.
const DefaultDigits = 3

// Mode is a rounding mode. The set of modes is closed: Real, Integer, Even
// and Odd.
type Mode interface {
	// Name is the stable identifier used in config files and flags.
	Name() string
	// Correct rewrites text typed into a min/max field so it conforms to the
	// mode. Empty text and a lone "-" are returned unchanged.
	Correct(text string) string
	// Check validates committed bounds.
	Check(lo, hi float64) error
	// Quantize rounds a coordinate to the nearest value allowed by the mode.
	Quantize(v float64) float64

	sealed()
}

// Real allows decimals up to Digits places.
type Real struct {
	Digits int
}

// Integer allows whole numbers only.
type Integer struct{}

// Even allows even whole numbers only.
type Even struct{}

// Odd allows odd whole numbers only.
type Odd struct{}

var (
	errNotInteger = errors.New("Min and Max must be integers.")     //nolint:staticcheck // shown to the user verbatim
	errNotEven    = errors.New("Min and Max must be even numbers.") //nolint:staticcheck // shown to the user verbatim
	errNotOdd     = errors.New("Min and Max must be odd numbers.")  //nolint:staticcheck // shown to the user verbatim
)

// Mode names.
const (
	NameReal    = "real"
	NameInteger = "integer"
	NameEven    = "even"
	NameOdd     = "odd"
)

// Names lists every mode name in display order.
var Names = []string{NameReal, NameInteger, NameEven, NameOdd}

// ParseMode returns the mode with the given name. digits only applies to
// Real; a negative value selects DefaultDigits.
func ParseMode(name string, digits int) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameReal:
		if digits < 0 {
			digits = DefaultDigits
		}
		return Real{Digits: digits}, nil
	case NameInteger, "":
		return Integer{}, nil
	case NameEven:
		return Even{}, nil
	case NameOdd:
		return Odd{}, nil
	}
	return nil, fmt.Errorf("unknown rounding mode %q (want one of %s)", name, strings.Join(Names, ", "))
}

func (Real) Name() string    { return NameReal }
func (Integer) Name() string { return NameInteger }
func (Even) Name() string    { return NameEven }
func (Odd) Name() string     { return NameOdd }

func (Real) sealed()    {}
func (Integer) sealed() {}
func (Even) sealed()    {}
func (Odd) sealed()     {}

// Correct drops the most recently typed character when the fraction is
// longer than Digits.
func (m Real) Correct(text string) string {
	if passthrough(text) {
		return text
	}
	dot := strings.IndexByte(text, '.')
	if dot < 0 {
		return text
	}
	if len(text)-dot-1 > max(m.Digits, 0) {
		return text[:len(text)-1]
	}
	return text
}

func (Real) Check(_, _ float64) error { return nil }

func (m Real) Quantize(v float64) float64 {
	return roundTo(v, max(m.Digits, 0))
}

// Correct strips the decimal point and any fraction.
func (Integer) Correct(text string) string {
	if passthrough(text) {
		return text
	}
	return stripFraction(text)
}

func (Integer) Check(lo, hi float64) error {
	if !isWhole(lo) || !isWhole(hi) {
		return errNotInteger
	}
	return nil
}

func (Integer) Quantize(v float64) float64 { return math.Round(v) }

// Correct strips the fraction and moves an odd number to the adjacent even
// one: down for positive numbers, up otherwise.
func (Even) Correct(text string) string {
	return correctParity(text, false)
}

func (Even) Check(lo, hi float64) error {
	if !isWhole(lo) || !isWhole(hi) || isOdd(lo) || isOdd(hi) {
		return errNotEven
	}
	return nil
}

func (Even) Quantize(v float64) float64 { return quantizeParity(v, false) }

// Correct strips the fraction and moves an even number to the adjacent odd
// one: up for positive numbers, down otherwise.
func (Odd) Correct(text string) string {
	return correctParity(text, true)
}

func (Odd) Check(lo, hi float64) error {
	if !isWhole(lo) || !isWhole(hi) || !isOdd(lo) || !isOdd(hi) {
		return errNotOdd
	}
	return nil
}

func (Odd) Quantize(v float64) float64 { return quantizeParity(v, true) }

func passthrough(text string) bool {
	return strings.TrimSpace(text) == "" || text == "-"
}

func stripFraction(text string) string {
	if dot := strings.IndexByte(text, '.'); dot >= 0 {
		return text[:dot]
	}
	return text
}

func correctParity(text string, odd bool) string {
	if passthrough(text) {
		return text
	}
	text = stripFraction(text)

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return text
	}
	if (n%2 != 0) == odd {
		return text
	}
	return strconv.FormatInt(stepParity(n, odd), 10)
}

// stepParity moves n by one toward the wanted parity using the sign rule.
func stepParity(n int64, odd bool) int64 {
	switch {
	case odd && n > 0:
		return n + 1
	case odd:
		return n - 1
	case n > 0:
		return n - 1
	default:
		return n + 1
	}
}

func quantizeParity(v float64, odd bool) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	n := math.Round(v)
	if isOdd(n) == odd {
		return n
	}
	switch {
	case v > n:
		return n + 1
	case v < n:
		return n - 1
	}
	return float64(stepParity(int64(n), odd))
}

func isWhole(v float64) bool {
	return !math.IsInf(v, 0) && v == math.Trunc(v)
}

func isOdd(v float64) bool {
	return math.Mod(v, 2) != 0
}

func roundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	r := math.Round(v*p) / p
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return v
	}
	return r
}
