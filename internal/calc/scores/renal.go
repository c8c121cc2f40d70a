package scores

import (
	"math"

	"github.com/medcalc/medcalc/internal/calc"
)

func renalDefs() []calc.Definition {
	return []calc.Definition{
		{
			ID:    "cockcroft_gault",
			Label: "Cockcroft-Gault creatinine clearance",
			Inputs: []calc.Field{
				req("age_years"), req("weight_kg"), req("creatinine_mg_dl"), req("sex"),
			},
			Formula: "CrCl = ((140-age) * weight) / (72 * creatinine), * 0.85 if female",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "weight_kg", "creatinine_mg_dl")
				if !ok {
					return nil
				}
				sex, ok := in.String("sex")
				if !ok {
					return nil
				}
				age, weight, creat := v[0], v[1], v[2]
				if creat <= 0 {
					return nil
				}
				crcl := ((140 - age) * weight) / (72 * creat)
				if sex == "female" || sex == "f" {
					crcl *= 0.85
				}
				r := res("cockcroft_gault", "Cockcroft-Gault creatinine clearance", crcl, "mL/min", 1)
				if crcl < 30 {
					r.Notes = append(r.Notes, "severe renal impairment range; review renally-cleared dosing")
				}
				return r
			},
		},
		{
			ID:    "ckd_epi_2021",
			Label: "CKD-EPI 2021 estimated GFR",
			Inputs: []calc.Field{
				req("age_years"), req("creatinine_mg_dl"), req("sex"),
			},
			Formula: "eGFR = 142 * min(Scr/k,1)^a * max(Scr/k,1)^-1.200 * 0.9938^age * 1.012 if female; k=0.7/0.9, a=-0.241/-0.302 (female/male)",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "creatinine_mg_dl")
				if !ok {
					return nil
				}
				sex, ok := in.String("sex")
				if !ok {
					return nil
				}
				age, creat := v[0], v[1]
				if creat <= 0 {
					return nil
				}
				kappa, alpha, sexFactor := 0.9, -0.302, 1.0
				if sex == "female" || sex == "f" {
					kappa, alpha, sexFactor = 0.7, -0.241, 1.012
				}
				ratio := creat / kappa
				egfr := 142 *
					math.Pow(math.Min(ratio, 1), alpha) *
					math.Pow(math.Max(ratio, 1), -1.200) *
					math.Pow(0.9938, age) * sexFactor
				r := res("ckd_epi_2021", "CKD-EPI 2021 estimated GFR", egfr, "mL/min/1.73m2", 0)
				r.Notes = append(r.Notes, "CKD stage: "+ckdStage(egfr))
				return r
			},
		},
		{
			ID:    "anion_gap",
			Label: "Serum anion gap",
			Inputs: []calc.Field{
				req("sodium_meq_l"), req("chloride_meq_l"), req("bicarbonate_meq_l"),
				opt("albumin_g_dl"),
			},
			Formula: "AG = Na - (Cl + HCO3); albumin-corrected AG = AG + 2.5*(4 - albumin) when albumin supplied",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "sodium_meq_l", "chloride_meq_l", "bicarbonate_meq_l")
				if !ok {
					return nil
				}
				gap := v[0] - (v[1] + v[2])
				r := res("anion_gap", "Serum anion gap", gap, "mEq/L", 1)
				if alb, ok := in.Number("albumin_g_dl"); ok {
					corrected := gap + 2.5*(4-alb)
					r.Extra = map[string]any{"albumin_corrected": corrected}
					if corrected > 12 {
						r.Notes = append(r.Notes, "elevated after albumin correction")
					}
				} else if gap > 12 {
					r.Notes = append(r.Notes, "elevated anion gap")
				}
				return r
			},
		},
		{
			ID:    "delta_ratio",
			Label: "Delta-delta ratio for mixed acid-base disorders",
			Inputs: []calc.Field{
				req("sodium_meq_l"), req("chloride_meq_l"), req("bicarbonate_meq_l"),
			},
			Formula: "delta ratio = (AG - 12) / (24 - HCO3)",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "sodium_meq_l", "chloride_meq_l", "bicarbonate_meq_l")
				if !ok {
					return nil
				}
				hco3 := v[2]
				if 24-hco3 == 0 {
					return nil
				}
				gap := v[0] - (v[1] + hco3)
				ratio := (gap - 12) / (24 - hco3)
				r := res("delta_ratio", "Delta-delta ratio for mixed acid-base disorders", ratio, "", 2)
				switch {
				case ratio < 0.4:
					r.Notes = append(r.Notes, "suggests pure hyperchloremic (non-gap) acidosis")
				case ratio < 1:
					r.Notes = append(r.Notes, "suggests mixed high-gap and non-gap acidosis")
				case ratio <= 2:
					r.Notes = append(r.Notes, "consistent with pure high-gap acidosis")
				default:
					r.Notes = append(r.Notes, "suggests concurrent metabolic alkalosis or chronic respiratory acidosis")
				}
				return r
			},
		},
		{
			ID:    "serum_osmolality",
			Label: "Calculated serum osmolality",
			Inputs: []calc.Field{
				req("sodium_meq_l"), req("glucose_mg_dl"), req("bun_mg_dl"), opt("ethanol_mg_dl"),
			},
			Formula: "osm = 2*Na + glucose/18 + BUN/2.8 (+ ethanol/3.7 when supplied)",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "sodium_meq_l", "glucose_mg_dl", "bun_mg_dl")
				if !ok {
					return nil
				}
				osm := 2*v[0] + v[1]/18 + v[2]/2.8
				if etoh, ok := in.Number("ethanol_mg_dl"); ok {
					osm += etoh / 3.7
				}
				return res("serum_osmolality", "Calculated serum osmolality", osm, "mOsm/kg", 1)
			},
		},
		{
			ID:    "osmolal_gap",
			Label: "Osmolal gap",
			Inputs: []calc.Field{
				req("measured_osm_mosm_kg"), req("sodium_meq_l"), req("glucose_mg_dl"),
				req("bun_mg_dl"), opt("ethanol_mg_dl"),
			},
			Formula: "gap = measured osm - (2*Na + glucose/18 + BUN/2.8 + ethanol/3.7)",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "measured_osm_mosm_kg", "sodium_meq_l", "glucose_mg_dl", "bun_mg_dl")
				if !ok {
					return nil
				}
				calculated := 2*v[1] + v[2]/18 + v[3]/2.8
				if etoh, ok := in.Number("ethanol_mg_dl"); ok {
					calculated += etoh / 3.7
				}
				gap := v[0] - calculated
				r := res("osmolal_gap", "Osmolal gap", gap, "mOsm/kg", 1)
				r.Extra = map[string]any{"calculated_osm": calculated}
				if gap > 10 {
					r.Notes = append(r.Notes, "elevated; consider toxic alcohol ingestion")
				}
				return r
			},
		},
		{
			ID:    "corrected_sodium",
			Label: "Glucose-corrected sodium",
			Inputs: []calc.Field{
				req("sodium_meq_l"), req("glucose_mg_dl"),
			},
			Formula: "corrected Na = Na + 1.6 * ((glucose - 100) / 100)",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "sodium_meq_l", "glucose_mg_dl")
				if !ok {
					return nil
				}
				corrected := v[0] + 1.6*((v[1]-100)/100)
				return res("corrected_sodium", "Glucose-corrected sodium", corrected, "mEq/L", 1)
			},
		},
		{
			ID:    "corrected_calcium",
			Label: "Albumin-corrected calcium",
			Inputs: []calc.Field{
				req("calcium_mg_dl"), req("albumin_g_dl"),
			},
			Formula: "corrected Ca = Ca + 0.8 * (4 - albumin)",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "calcium_mg_dl", "albumin_g_dl")
				if !ok {
					return nil
				}
				corrected := v[0] + 0.8*(4-v[1])
				return res("corrected_calcium", "Albumin-corrected calcium", corrected, "mg/dL", 1)
			},
		},
		{
			ID:    "fena",
			Label: "Fractional excretion of sodium",
			Inputs: []calc.Field{
				req("urine_sodium_meq_l"), req("serum_creatinine_mg_dl"),
				req("sodium_meq_l"), req("urine_creatinine_mg_dl"),
			},
			Formula: "FENa = (urine Na * serum creat) / (serum Na * urine creat) * 100",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "urine_sodium_meq_l", "serum_creatinine_mg_dl", "sodium_meq_l", "urine_creatinine_mg_dl")
				if !ok {
					return nil
				}
				if v[2] <= 0 || v[3] <= 0 {
					return nil
				}
				fena := (v[0] * v[1]) / (v[2] * v[3]) * 100
				r := res("fena", "Fractional excretion of sodium", fena, "%", 2)
				switch {
				case fena < 1:
					r.Notes = append(r.Notes, "suggests prerenal azotemia")
				case fena > 2:
					r.Notes = append(r.Notes, "suggests intrinsic renal injury")
				}
				return r
			},
		},
		{
			ID:    "feurea",
			Label: "Fractional excretion of urea",
			Inputs: []calc.Field{
				req("urine_urea_mg_dl"), req("serum_creatinine_mg_dl"),
				req("bun_mg_dl"), req("urine_creatinine_mg_dl"),
			},
			Formula: "FEUrea = (urine urea * serum creat) / (BUN * urine creat) * 100",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "urine_urea_mg_dl", "serum_creatinine_mg_dl", "bun_mg_dl", "urine_creatinine_mg_dl")
				if !ok {
					return nil
				}
				if v[2] <= 0 || v[3] <= 0 {
					return nil
				}
				fe := (v[0] * v[1]) / (v[2] * v[3]) * 100
				r := res("feurea", "Fractional excretion of urea", fe, "%", 1)
				if fe < 35 {
					r.Notes = append(r.Notes, "suggests prerenal azotemia (valid on diuretics)")
				}
				return r
			},
		},
		{
			ID:    "urine_anion_gap",
			Label: "Urine anion gap",
			Inputs: []calc.Field{
				req("urine_sodium_meq_l"), req("urine_potassium_meq_l"), req("urine_chloride_meq_l"),
			},
			Formula: "UAG = urine Na + urine K - urine Cl",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "urine_sodium_meq_l", "urine_potassium_meq_l", "urine_chloride_meq_l")
				if !ok {
					return nil
				}
				gap := v[0] + v[1] - v[2]
				r := res("urine_anion_gap", "Urine anion gap", gap, "mEq/L", 1)
				if gap > 0 {
					r.Notes = append(r.Notes, "positive; consider renal tubular acidosis")
				} else {
					r.Notes = append(r.Notes, "negative; consistent with GI bicarbonate loss")
				}
				return r
			},
		},
		{
			ID:    "winters_formula",
			Label: "Winters' formula expected PaCO2",
			Inputs: []calc.Field{
				req("bicarbonate_meq_l"),
			},
			Formula: "expected PaCO2 = 1.5 * HCO3 + 8 (range +/- 2)",
			Run: func(in calc.Inputs) *calc.Result {
				hco3, ok := in.Number("bicarbonate_meq_l")
				if !ok {
					return nil
				}
				expected := 1.5*hco3 + 8
				r := res("winters_formula", "Winters' formula expected PaCO2", expected, "mmHg", 1)
				r.Extra = map[string]any{"range_low": expected - 2, "range_high": expected + 2}
				return r
			},
		},
		{
			ID:    "free_water_deficit",
			Label: "Free water deficit in hypernatremia",
			Inputs: []calc.Field{
				req("weight_kg"), req("sodium_meq_l"), req("sex"), opt("tbw_fraction"),
			},
			Formula: "deficit = TBW fraction * weight * (Na/140 - 1); fraction defaults to 0.6 male, 0.5 female",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "weight_kg", "sodium_meq_l")
				if !ok {
					return nil
				}
				sex, ok := in.String("sex")
				if !ok {
					return nil
				}
				fraction := 0.6
				if sex == "female" || sex == "f" {
					fraction = 0.5
				}
				if f, ok := in.Number("tbw_fraction"); ok && f > 0 && f < 1 {
					fraction = f
				}
				deficit := fraction * v[0] * (v[1]/140 - 1)
				return res("free_water_deficit", "Free water deficit in hypernatremia", deficit, "L", 2)
			},
		},
		{
			ID:    "sodium_deficit",
			Label: "Sodium deficit in hyponatremia",
			Inputs: []calc.Field{
				req("weight_kg"), req("sodium_meq_l"), req("sex"),
				opt("target_sodium_meq_l"), opt("tbw_fraction"),
			},
			Formula: "deficit = TBW fraction * weight * (target Na - current Na); fraction defaults to 0.6 male, 0.5 female; target defaults to 140",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "weight_kg", "sodium_meq_l")
				if !ok {
					return nil
				}
				sex, ok := in.String("sex")
				if !ok {
					return nil
				}
				fraction := 0.6
				if sex == "female" || sex == "f" {
					fraction = 0.5
				}
				if f, ok := in.Number("tbw_fraction"); ok && f > 0 && f < 1 {
					fraction = f
				}
				target := 140.0
				if t, ok := in.Number("target_sodium_meq_l"); ok && t > 0 {
					target = t
				}
				deficit := fraction * v[0] * (target - v[1])
				r := res("sodium_deficit", "Sodium deficit in hyponatremia", deficit, "mEq", 0)
				r.Extra = map[string]any{"tbw_l": fraction * v[0], "target_sodium_meq_l": target}
				return r
			},
		},
		{
			ID:    "egfr_schwartz",
			Label: "Pediatric eGFR (bedside Schwartz)",
			Inputs: []calc.Field{
				req("height_cm"), req("creatinine_mg_dl"),
			},
			Formula: "eGFR = 0.413 * height / creatinine",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "height_cm", "creatinine_mg_dl")
				if !ok {
					return nil
				}
				if v[1] <= 0 {
					return nil
				}
				egfr := 0.413 * v[0] / v[1]
				r := res("egfr_schwartz", "Pediatric eGFR (bedside Schwartz)", egfr, "mL/min/1.73m2", 1)
				r.Notes = append(r.Notes, "ckd_stage: "+ckdStage(egfr))
				return r
			},
		},
	}
}

// ckdStage maps eGFR onto the KDIGO G-stage label.
func ckdStage(egfr float64) string {
	switch {
	case egfr >= 90:
		return "G1"
	case egfr >= 60:
		return "G2"
	case egfr >= 45:
		return "G3a"
	case egfr >= 30:
		return "G3b"
	case egfr >= 15:
		return "G4"
	default:
		return "G5"
	}
}
