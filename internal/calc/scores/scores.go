// Package scores implements the clinical calculator library: deterministic,
// side-effect-free scoring formulas grouped by specialty. Each file
// contributes a slice of definitions; Register wires them all into a
// registry exactly once.
//
// Shared contract: calculators return nil when a required input is missing
// or a denominator is non-positive, never NaN and never a panic. Band
// labels are derived from the numeric total with the same threshold table
// used for scoring. Rounding happens only at display time via the declared
// precision.
package scores

import (
	"fmt"
	"math"

	"github.com/medcalc/medcalc/internal/calc"
)

// Register wires every calculator in this package into reg. It fails on
// the first duplicate id, which indicates a wiring bug.
func Register(reg *calc.Registry) error {
	for _, def := range All() {
		if err := reg.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// All returns the full calculator library.
func All() []calc.Definition {
	var defs []calc.Definition
	defs = append(defs, cardiologyDefs()...)
	defs = append(defs, pulmonaryDefs()...)
	defs = append(defs, hepatologyDefs()...)
	defs = append(defs, renalDefs()...)
	defs = append(defs, icuDefs()...)
	defs = append(defs, neuroDefs()...)
	defs = append(defs, hematologyDefs()...)
	defs = append(defs, decisionRuleDefs()...)
	defs = append(defs, gastroDefs()...)
	defs = append(defs, obstetricsDefs()...)
	defs = append(defs, dosingDefs()...)
	defs = append(defs, anthropometricDefs()...)
	defs = append(defs, behavioralDefs()...)
	return defs
}

// req declares a required input field.
func req(key string) calc.Field { return calc.Field{Key: key, Required: true} }

// opt declares an optional or conditionally-used input field.
func opt(key string) calc.Field { return calc.Field{Key: key} }

// nums fetches required numeric inputs in order. ok is false when any key
// is absent or non-finite, in which case the calculator returns nil.
func nums(in calc.Inputs, keys ...string) ([]float64, bool) {
	out := make([]float64, len(keys))
	for i, k := range keys {
		v, ok := in.Number(k)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// res builds a computed result.
func res(id, label string, value float64, unit string, precision int, notes ...string) *calc.Result {
	return &calc.Result{
		ID:        id,
		Label:     label,
		Value:     calc.Ptr(value),
		Unit:      unit,
		Precision: precision,
		Notes:     notes,
	}
}

// clamp bounds v to the clinically valid range [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// pts converts a threshold condition into its point contribution.
func pts(cond bool, points float64) float64 {
	if cond {
		return points
	}
	return 0
}

// bandOf maps a total onto a named band. labels[0] applies below cuts[0];
// labels[i+1] applies at total >= cuts[i]. Lower bounds are inclusive, so
// the band is a non-decreasing function of the total.
func bandOf(total float64, cuts []float64, labels ...string) string {
	if len(labels) != len(cuts)+1 {
		panic(fmt.Sprintf("bandOf: %d cuts need %d labels", len(cuts), len(cuts)+1))
	}
	band := labels[0]
	for i, cut := range cuts {
		if total >= cut {
			band = labels[i+1]
		}
	}
	return band
}

// criterion is one entry of a criteria-list rule.
type criterion struct {
	name string
	pts  float64
	hit  bool
}

// tally sums a criteria list and reports which criteria fired, for
// explainability in the result payload.
func tally(cs []criterion) (total float64, fired []string) {
	for _, c := range cs {
		if c.hit {
			total += c.pts
			fired = append(fired, c.name)
		}
	}
	return total, fired
}
