package validate

import (
	"strconv"
	"testing"
)

func TestNumericClassify(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantValue   any
		wantReject  bool
		wantWarning string
	}{
		{"empty clears as string", "", "", false, ""},
		{"lone minus passes through", "-", "-", false, ""},
		{"integer", "40", 40.0, false, ""},
		{"decimal", "12.75", 12.75, false, ""},
		{"negative warns but propagates", "-3.5", -3.5, false, WarnNegative},
		{"negative zero is non-negative", "-0", negZero(), false, ""},
		{"exponent form", "1e3", 1000.0, false, ""},
		{"letters rejected", "abc", nil, true, ""},
		{"trailing junk rejected", "12a", nil, true, ""},
		{"double minus rejected", "--5", nil, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(Field{Kind: Numeric}, tt.raw)
			if got.Reject != tt.wantReject {
				t.Fatalf("reject = %v, want %v", got.Reject, tt.wantReject)
			}
			if !tt.wantReject && got.Value != tt.wantValue {
				t.Errorf("value = %#v, want %#v", got.Value, tt.wantValue)
			}
			if got.Warning != tt.wantWarning {
				t.Errorf("warning = %q, want %q", got.Warning, tt.wantWarning)
			}
		})
	}
}

func negZero() float64 {
	z := 0.0
	return -z
}

func TestNumericRoundTripsFiniteNumbers(t *testing.T) {
	for _, n := range []float64{0, 1, -1, 0.1, -273.15, 1e10, 123456.789} {
		raw := strconv.FormatFloat(n, 'f', -1, 64)
		got := Classify(Field{Kind: Numeric}, raw)
		if got.Reject {
			t.Errorf("Classify(%q) rejected a finite number", raw)
			continue
		}
		if v, ok := got.Value.(float64); !ok || v != n {
			t.Errorf("Classify(%q) = %#v, want %v", raw, got.Value, n)
		}
	}
}

func TestTextClassify(t *testing.T) {
	tests := []struct {
		name        string
		field       Field
		raw         string
		wantWarning string
	}{
		{"plain text", Field{Kind: Text}, "hello", ""},
		{"optional blank", Field{Kind: Text}, "", ""},
		{"required filled", Field{Kind: Text, Required: true}, "Jordan", ""},
		{"required empty", Field{Kind: Text, Required: true}, "", WarnRequired},
		{"required whitespace only", Field{Kind: Text, Required: true}, " \t\n ", WarnRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.field, tt.raw)
			if got.Reject {
				t.Fatal("text edits must never be rejected")
			}
			if got.Value != tt.raw {
				t.Errorf("value = %#v, want raw string %q", got.Value, tt.raw)
			}
			if got.Warning != tt.wantWarning {
				t.Errorf("warning = %q, want %q", got.Warning, tt.wantWarning)
			}
		})
	}
}
