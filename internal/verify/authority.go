package verify

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrUnsupported signals that an authority has no independent
// recomputation path for the requested calculator. The runner treats it
// like a timeout: strict policies block, lenient ones fall back to the
// local tier.
var ErrUnsupported = errors.New("no authoritative recomputation available")

// Authority independently recomputes a calculator's value so the runner
// can reconcile it against the local result. The id lets table-driven
// implementations dispatch; the formula description lets generic ones
// rederive the quantity. Implementations must honor ctx.
type Authority interface {
	Recompute(ctx context.Context, calcID, formula string, inputs map[string]float64) (float64, error)
}

// refFormula recomputes one calculator from canonical numeric inputs.
type refFormula func(in map[string]float64) (float64, error)

// ReferenceAuthority reconciles against a second, hand-verified
// implementation of each formula. The entries here are written from the
// published equations directly and share no code with the calculator
// library, so a transcription error in either path shows up as a
// disagreement instead of passing silently.
type ReferenceAuthority struct {
	formulas map[string]refFormula
}

// NewReferenceAuthority builds the built-in recomputation table.
func NewReferenceAuthority() *ReferenceAuthority {
	return &ReferenceAuthority{formulas: referenceFormulas()}
}

// Recompute evaluates the reference formula for calcID, or returns
// ErrUnsupported when the table has no entry.
func (a *ReferenceAuthority) Recompute(ctx context.Context, calcID, _ string, inputs map[string]float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f, ok := a.formulas[calcID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupported, calcID)
	}
	return f(inputs)
}

// Supports reports whether calcID has a reference entry.
func (a *ReferenceAuthority) Supports(calcID string) bool {
	_, ok := a.formulas[calcID]
	return ok
}

func refInput(in map[string]float64, key string) (float64, error) {
	v, ok := in[key]
	if !ok {
		return 0, fmt.Errorf("reference recomputation missing input %q", key)
	}
	return v, nil
}

func refInputs(in map[string]float64, keys ...string) ([]float64, error) {
	out := make([]float64, len(keys))
	for i, k := range keys {
		v, err := refInput(in, k)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func referenceFormulas() map[string]refFormula {
	return map[string]refFormula{
		"aa_gradient": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "fio2_percent", "pao2_mm_hg", "paco2_mm_hg")
			if err != nil {
				return 0, err
			}
			pao2Alv := (760-47)*(v[0]/100) - v[2]/0.8
			return pao2Alv - v[1], nil
		},
		"pao2_fio2_ratio": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "pao2_mm_hg", "fio2_percent")
			if err != nil {
				return 0, err
			}
			if v[1] <= 0 {
				return 0, fmt.Errorf("non-positive FiO2")
			}
			return v[0] / (v[1] / 100), nil
		},
		"mean_arterial_pressure": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "sbp_mm_hg", "dbp_mm_hg")
			if err != nil {
				return 0, err
			}
			return (v[0] + 2*v[1]) / 3, nil
		},
		"shock_index": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "heart_rate_bpm", "sbp_mm_hg")
			if err != nil {
				return 0, err
			}
			if v[1] <= 0 {
				return 0, fmt.Errorf("non-positive systolic pressure")
			}
			return v[0] / v[1], nil
		},
		"qtc_bazett": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "qt_ms", "heart_rate_bpm")
			if err != nil {
				return 0, err
			}
			if v[1] <= 0 {
				return 0, fmt.Errorf("non-positive heart rate")
			}
			return v[0] / math.Sqrt(60/v[1]), nil
		},
		"qtc_fridericia": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "qt_ms", "heart_rate_bpm")
			if err != nil {
				return 0, err
			}
			if v[1] <= 0 {
				return 0, fmt.Errorf("non-positive heart rate")
			}
			return v[0] / math.Cbrt(60/v[1]), nil
		},
		"bmi": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "weight_kg", "height_cm")
			if err != nil {
				return 0, err
			}
			if v[1] <= 0 {
				return 0, fmt.Errorf("non-positive height")
			}
			return v[0] / math.Pow(v[1]/100, 2), nil
		},
		"bsa_mosteller": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "weight_kg", "height_cm")
			if err != nil {
				return 0, err
			}
			return math.Sqrt(v[0] * v[1] / 3600), nil
		},
		"bsa_dubois": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "weight_kg", "height_cm")
			if err != nil {
				return 0, err
			}
			return 0.007184 * math.Pow(v[0], 0.425) * math.Pow(v[1], 0.725), nil
		},
		"anion_gap": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "sodium_meq_l", "chloride_meq_l", "bicarbonate_meq_l")
			if err != nil {
				return 0, err
			}
			return v[0] - v[1] - v[2], nil
		},
		"serum_osmolality": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "sodium_meq_l", "glucose_mg_dl", "bun_mg_dl")
			if err != nil {
				return 0, err
			}
			osm := 2*v[0] + v[1]/18 + v[2]/2.8
			if etoh, ok := in["ethanol_mg_dl"]; ok {
				osm += etoh / 3.7
			}
			return osm, nil
		},
		"corrected_sodium": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "sodium_meq_l", "glucose_mg_dl")
			if err != nil {
				return 0, err
			}
			return v[0] + 1.6*(v[1]-100)/100, nil
		},
		"corrected_calcium": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "calcium_mg_dl", "albumin_g_dl")
			if err != nil {
				return 0, err
			}
			return v[0] + 0.8*(4-v[1]), nil
		},
		"winters_formula": func(in map[string]float64) (float64, error) {
			hco3, err := refInput(in, "bicarbonate_meq_l")
			if err != nil {
				return 0, err
			}
			return 1.5*hco3 + 8, nil
		},
		"fib4": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "age_years", "ast_u_l", "alt_u_l", "platelets_k_ul")
			if err != nil {
				return 0, err
			}
			if v[2] <= 0 || v[3] <= 0 {
				return 0, fmt.Errorf("non-positive denominator")
			}
			return v[0] * v[1] / (v[3] * math.Sqrt(v[2])), nil
		},
		"homa_ir": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "fasting_glucose_mg_dl", "fasting_insulin_uu_ml")
			if err != nil {
				return 0, err
			}
			return v[0] * v[1] / 405, nil
		},
		"ldl_friedewald": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "total_cholesterol_mg_dl", "hdl_mg_dl", "triglycerides_mg_dl")
			if err != nil {
				return 0, err
			}
			if v[2] >= 400 {
				return 0, fmt.Errorf("triglycerides out of Friedewald range")
			}
			return v[0] - v[1] - v[2]/5, nil
		},
		"a1c_to_avg_glucose": func(in map[string]float64) (float64, error) {
			a1c, err := refInput(in, "hba1c_percent")
			if err != nil {
				return 0, err
			}
			return 28.7*a1c - 46.7, nil
		},
		"parkland": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "weight_kg", "tbsa_burn_percent")
			if err != nil {
				return 0, err
			}
			tbsa := math.Min(math.Max(v[1], 0), 100)
			return 4 * v[0] * tbsa, nil
		},
		"holliday_segar": func(in map[string]float64) (float64, error) {
			w, err := refInput(in, "weight_kg")
			if err != nil {
				return 0, err
			}
			switch {
			case w <= 0:
				return 0, fmt.Errorf("non-positive weight")
			case w <= 10:
				return 100 * w, nil
			case w <= 20:
				return 1000 + 50*(w-10), nil
			default:
				return 1500 + 20*(w-20), nil
			}
		},
		"phenytoin_corrected": func(in map[string]float64) (float64, error) {
			v, err := refInputs(in, "phenytoin_mcg_ml", "albumin_g_dl")
			if err != nil {
				return 0, err
			}
			factor := 0.2
			if rf, ok := in["renal_failure"]; ok && rf != 0 {
				factor = 0.1
			}
			return v[0] / (factor*v[1] + 0.1), nil
		},
	}
}
