package scores

import (
	"fmt"

	"github.com/medcalc/medcalc/internal/calc"
)

// mmeFactors are CDC conversion factors to morphine milligram
// equivalents per mg/day of each opioid. Methadone is dose-tiered and
// fentanyl patches are per mcg/hr, both handled separately.
var mmeFactors = map[string]float64{
	"morphine":      1,
	"hydrocodone":   1,
	"oxycodone":     1.5,
	"oxymorphone":   3,
	"hydromorphone": 4,
	"codeine":       0.15,
	"tramadol":      0.1,
	"tapentadol":    0.4,
}

// steroidEquivalents are equipotent anti-inflammatory doses in mg,
// indexed by agent, relative to each other (hydrocortisone 20mg basis).
var steroidEquivalents = map[string]float64{
	"hydrocortisone":     20,
	"cortisone":          25,
	"prednisone":         5,
	"prednisolone":       5,
	"methylprednisolone": 4,
	"triamcinolone":      4,
	"dexamethasone":      0.75,
	"betamethasone":      0.6,
}

func dosingDefs() []calc.Definition {
	return []calc.Definition{
		{
			ID:    "mme",
			Label: "Morphine milligram equivalents per day",
			Inputs: []calc.Field{
				req("opioid"), req("daily_dose_mg"),
			},
			Formula: "daily dose x agent conversion factor; methadone tiered 1-20mg x4, 21-40mg x8, 41-60mg x10, >60mg x12; fentanyl patch mcg/hr x2.4",
			Run: func(in calc.Inputs) *calc.Result {
				opioid, ok := in.String("opioid")
				if !ok {
					return nil
				}
				dose, ok := in.Number("daily_dose_mg")
				if !ok || dose < 0 {
					return nil
				}
				var mme float64
				switch opioid {
				case "methadone":
					switch {
					case dose > 60:
						mme = dose * 12
					case dose > 40:
						mme = dose * 10
					case dose > 20:
						mme = dose * 8
					default:
						mme = dose * 4
					}
				case "fentanyl", "fentanyl_patch":
					// dose is the patch rate in mcg/hr for fentanyl.
					mme = dose * 2.4
				default:
					factor, known := mmeFactors[opioid]
					if !known {
						return nil
					}
					mme = dose * factor
				}
				r := res("mme", "Morphine milligram equivalents per day", mme, "mg/day", 1)
				if mme >= 90 {
					r.Notes = append(r.Notes, ">=90 MME/day; avoid or carefully justify per CDC guideline")
				} else if mme >= 50 {
					r.Notes = append(r.Notes, ">=50 MME/day; reassess benefits and risks")
				}
				return r
			},
		},
		{
			ID:    "steroid_equivalents",
			Label: "Corticosteroid dose conversion",
			Inputs: []calc.Field{
				req("from_steroid"), req("to_steroid"), req("dose_mg"),
			},
			Formula: "dose x (equipotent dose of target / equipotent dose of source), hydrocortisone 20mg basis",
			Run: func(in calc.Inputs) *calc.Result {
				from, ok := in.String("from_steroid")
				if !ok {
					return nil
				}
				to, ok := in.String("to_steroid")
				if !ok {
					return nil
				}
				dose, ok := in.Number("dose_mg")
				if !ok || dose < 0 {
					return nil
				}
				fromEq, known := steroidEquivalents[from]
				if !known {
					return nil
				}
				toEq, known := steroidEquivalents[to]
				if !known {
					return nil
				}
				converted := dose * toEq / fromEq
				r := res("steroid_equivalents", "Corticosteroid dose conversion", converted, "mg", 2)
				r.Notes = append(r.Notes, fmt.Sprintf("%.4g mg %s is equivalent to %.4g mg %s", dose, from, converted, to))
				return r
			},
		},
		{
			ID:    "phenytoin_corrected",
			Label: "Albumin-corrected phenytoin level",
			Inputs: []calc.Field{
				req("phenytoin_mcg_ml"), req("albumin_g_dl"), opt("renal_failure"),
			},
			Formula: "measured / (0.2 x albumin + 0.1); with severe renal failure measured / (0.1 x albumin + 0.1)",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "phenytoin_mcg_ml", "albumin_g_dl")
				if !ok {
					return nil
				}
				factor := 0.2
				if in.Bool("renal_failure") {
					factor = 0.1
				}
				corrected := v[0] / (factor*v[1] + 0.1)
				r := res("phenytoin_corrected", "Albumin-corrected phenytoin level", corrected, "mcg/mL", 1)
				if corrected > 20 {
					r.Notes = append(r.Notes, "above therapeutic range (10-20 mcg/mL)")
				} else if corrected < 10 {
					r.Notes = append(r.Notes, "below therapeutic range (10-20 mcg/mL)")
				}
				return r
			},
		},
	}
}
