package rounding

import (
	"regexp"
	"strings"
)

var (
	boundChars = regexp.MustCompile(`^[0-9+\-.]*$`)
	stepChars  = regexp.MustCompile(`^[0-9]*(\.[0-9]*)?$`)
)

// AllowBoundInput reports whether text is an acceptable state of a min/max
// field while typing: digits with at most one decimal point and at most one
// leading sign.
func AllowBoundInput(text string) bool {
	if !boundChars.MatchString(text) {
		return false
	}
	if strings.Count(text, ".") > 1 {
		return false
	}
	body := strings.TrimLeft(text, "+-")
	if len(text)-len(body) > 1 {
		return false
	}
	return !strings.ContainsAny(body, "+-")
}

// AllowStepInput reports whether text is an acceptable state of the step
// field while typing: unsigned digits with at most one decimal point.
func AllowStepInput(text string) bool {
	return stepChars.MatchString(text)
}
