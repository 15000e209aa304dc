package contracts

import "strconv"

// RawKind discriminates the RawValue union.
type RawKind string

const (
	RawNumber   RawKind = "number"
	RawCategory RawKind = "category"
	RawAbsent   RawKind = "absent"
)

// RawValue is the resolved reading for one signal as delivered by the
// acquisition layer: a number, a category string, or absent. The
// acquisition layer never surfaces errors to the engine; a failed or
// stale source resolves to Absent.
type RawValue struct {
	Kind     RawKind `json:"kind"`
	Number   float64 `json:"number,omitempty"`
	Category string  `json:"category,omitempty"`
}

// Num builds a numeric raw value.
func Num(v float64) RawValue {
	return RawValue{Kind: RawNumber, Number: v}
}

// Cat builds a categorical raw value.
func Cat(s string) RawValue {
	return RawValue{Kind: RawCategory, Category: s}
}

// Absent builds an absent raw value.
func Absent() RawValue {
	return RawValue{Kind: RawAbsent}
}

// IsAbsent reports whether the value carries no reading.
func (v RawValue) IsAbsent() bool {
	return v.Kind == RawAbsent || v.Kind == ""
}

// Float returns the numeric reading, ok=false for non-numeric values.
func (v RawValue) Float() (float64, bool) {
	if v.Kind != RawNumber {
		return 0, false
	}
	return v.Number, true
}

// Label returns the category reading, ok=false for non-categorical values.
func (v RawValue) Label() (string, bool) {
	if v.Kind != RawCategory {
		return "", false
	}
	return v.Category, true
}

// String renders the raw value for display.
func (v RawValue) String() string {
	switch v.Kind {
	case RawNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case RawCategory:
		return v.Category
	default:
		return "n/a"
	}
}
