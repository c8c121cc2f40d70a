// Package calc defines the core types of the clinical calculator engine:
// calculator definitions, typed input bundles, results, and the registry
// that maps calculator ids to their implementations.
package calc

import (
	"math"
	"strconv"
	"strings"
)

// Field declares one input of a calculator. Fields without Required set are
// optional or conditionally used by the formula.
type Field struct {
	Key      string `json:"key"`
	Required bool   `json:"required,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// Definition is the unit of registration: one named clinical scoring formula.
type Definition struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Inputs  []Field `json:"inputs"`
	Formula string  `json:"formula,omitempty"`
	Run     RunFunc `json:"-"`
}

// RunFunc computes a score from validated inputs. A nil return means "not
// computable", distinct from a computed zero. RunFuncs are pure and must
// not panic for missing or malformed clinical data.
type RunFunc func(in Inputs) *Result

// Result is the output contract of a single calculator invocation.
type Result struct {
	ID        string         `json:"id"`
	Label     string         `json:"label"`
	Value     *float64       `json:"value"`
	Unit      string         `json:"unit,omitempty"`
	Precision int            `json:"precision"`
	Notes     []string       `json:"notes,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// Rounded returns Value rounded to the result's display precision, or NaN
// when the result is not computable. Internal arithmetic is never rounded;
// this is display-time only.
func (r *Result) Rounded() float64 {
	if r == nil || r.Value == nil {
		return math.NaN()
	}
	return RoundTo(*r.Value, r.Precision)
}

// RoundTo rounds v to the given number of decimal digits.
func RoundTo(v float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*p) / p
}

// Ptr wraps a float64 for use as a Result value.
func Ptr(v float64) *float64 { return &v }

// Inputs is a normalized input bundle: canonical field names to typed
// values. Constructed per invocation by the normalizer, never persisted.
type Inputs map[string]any

// Number returns the numeric value for key. ok is false when the key is
// absent, non-numeric, or not finite.
func (in Inputs) Number(key string) (float64, bool) {
	v, present := in[key]
	if !present {
		return 0, false
	}
	return numberValue(v)
}

// numberValue converts a raw value to a finite float64. Booleans read as
// 0/1 so threshold flags can participate in arithmetic.
func numberValue(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case bool:
		if n {
			f = 1
		}
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Bool returns the boolean value for key. Absent keys and unrecognized
// values read as false: criteria flags are opt-in.
func (in Inputs) Bool(key string) bool {
	v, present := in[key]
	if !present {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case int:
		return b != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "y", "1", "present", "positive":
			return true
		}
	}
	return false
}

// String returns the string-enum value for key, lowercased and trimmed.
func (in Inputs) String(key string) (string, bool) {
	v, present := in[key]
	if !present {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(s)), true
}

// Has reports whether key carries any value at all.
func (in Inputs) Has(key string) bool {
	v, present := in[key]
	return present && v != nil
}
