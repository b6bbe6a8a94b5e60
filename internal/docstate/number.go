package docstate

import (
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

// Number is a form scalar that is usually a float but may carry the raw
// text of an edit in progress ("" while clearing, "-" while typing a
// negative). It marshals as a JSON number when numeric and as a string
// otherwise, and accepts either on the way back in.
type Number struct {
	raw     string
	value   float64
	numeric bool
}

// N builds a numeric value.
func N(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	if v == 0 {
		v = 0 // collapse -0
	}
	return Number{value: v, numeric: true}
}

// Raw builds a non-numeric value carrying the literal text.
func Raw(s string) Number {
	return Number{raw: s}
}

// Float returns the numeric value and whether one is present.
func (n Number) Float() (float64, bool) {
	if !n.numeric {
		return 0, false
	}
	return n.value, true
}

// Or returns the numeric value, or fallback when the scalar holds text.
func (n Number) Or(fallback float64) float64 {
	if n.numeric {
		return n.value
	}
	return fallback
}

// IsNumeric reports whether the scalar currently holds a number.
func (n Number) IsNumeric() bool { return n.numeric }

func (n Number) String() string {
	if n.numeric {
		return strconv.FormatFloat(n.value, 'f', -1, 64)
	}
	return n.raw
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.numeric {
		return json.Marshal(n.raw)
	}
	v := n.value
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		// NaN/Inf cannot appear in valid state and -0 must not survive
		// a round trip; both collapse to plain zero.
		return []byte("0"), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		// Numeric strings from older persisted data normalize to numbers;
		// in-progress fragments ("", "-") stay as text.
		if parsed, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
			*n = N(parsed)
			return nil
		}
		*n = Raw(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = N(v)
	return nil
}
