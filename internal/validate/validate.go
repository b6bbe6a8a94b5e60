// Package validate classifies single-field form edits: what value (if
// any) to propagate into the state, and an advisory warning for display.
package validate

import (
	"math"
	"strconv"
	"strings"
)

// Kind declares how a field's raw input is interpreted.
type Kind int

const (
	Text Kind = iota
	Numeric
)

// Field describes the field being edited.
type Field struct {
	Kind     Kind
	Required bool
}

// Result is the outcome of classifying one edit. When Reject is true
// nothing is propagated and the prior state stays untouched. Warning is
// advisory only; it never blocks propagation.
type Result struct {
	Value   any
	Reject  bool
	Warning string
}

const (
	WarnNegative = "value is negative"
	WarnRequired = "field is required"
)

// Classify decides what to do with one raw edit.
//
// Numeric fields: the empty string and a lone "-" pass through unchanged
// as strings so a negative number can be typed digit by digit; anything
// else that fails to parse as a finite number is rejected; a finite
// parse propagates the float, with a warning when it is negative.
//
// Text fields always propagate the raw string; required fields warn when
// the trimmed value is empty.
func Classify(field Field, raw string) Result {
	switch field.Kind {
	case Numeric:
		return classifyNumeric(raw)
	default:
		return classifyText(field, raw)
	}
}

func classifyNumeric(raw string) Result {
	if raw == "" || raw == "-" {
		return Result{Value: raw}
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return Result{Reject: true}
	}
	out := Result{Value: parsed}
	if parsed < 0 {
		out.Warning = WarnNegative
	}
	return out
}

func classifyText(field Field, raw string) Result {
	out := Result{Value: raw}
	if field.Required && strings.TrimSpace(raw) == "" {
		out.Warning = WarnRequired
	}
	return out
}
