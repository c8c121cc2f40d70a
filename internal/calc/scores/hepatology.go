package scores

import (
	"math"

	"github.com/medcalc/medcalc/internal/calc"
)

func hepatologyDefs() []calc.Definition {
	return []calc.Definition{
		{
			ID:    "meld_3_0",
			Label: "MELD 3.0 end-stage liver disease score",
			Inputs: []calc.Field{
				req("sex"), req("bilirubin_mg_dl"), req("sodium_meq_l"),
				req("inr_ratio"), req("creatinine_mg_dl"), req("albumin_g_dl"),
			},
			Formula: "1.33*(female) + 4.56*ln(bili) + 0.82*(137-Na) - 0.24*(137-Na)*ln(bili) + 9.09*ln(INR) + 11.14*ln(creat) + 1.85*(3.5-albumin) - 1.83*(3.5-albumin)*ln(creat) + 6; creat clamped [1.0,3.0], Na [125,137], albumin [1.5,3.5], bili and INR floored at 1.0",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "bilirubin_mg_dl", "sodium_meq_l", "inr_ratio", "creatinine_mg_dl", "albumin_g_dl")
				if !ok {
					return nil
				}
				sex, ok := in.String("sex")
				if !ok {
					return nil
				}
				bili := math.Max(v[0], 1.0)
				na := clamp(v[1], 125, 137)
				inr := math.Max(v[2], 1.0)
				creat := clamp(v[3], 1.0, 3.0)
				alb := clamp(v[4], 1.5, 3.5)
				female := 0.0
				if sex == "female" || sex == "f" {
					female = 1.33
				}
				score := female +
					4.56*math.Log(bili) +
					0.82*(137-na) - 0.24*(137-na)*math.Log(bili) +
					9.09*math.Log(inr) +
					11.14*math.Log(creat) +
					1.85*(3.5-alb) - 1.83*(3.5-alb)*math.Log(creat) + 6
				score = clamp(score, 6, 40)
				r := res("meld_3_0", "MELD 3.0 end-stage liver disease score", score, "points", 0)
				if score >= 30 {
					r.Notes = append(r.Notes, "very high 90-day mortality risk")
				}
				return r
			},
		},
		{
			ID:    "meld_na",
			Label: "MELD-Na score",
			Inputs: []calc.Field{
				req("bilirubin_mg_dl"), req("inr_ratio"), req("creatinine_mg_dl"), req("sodium_meq_l"),
			},
			Formula: "MELD = 3.78*ln(bili) + 11.2*ln(INR) + 9.57*ln(creat) + 6.43 (inputs floored at 1.0, creat capped at 4.0); if MELD>11, MELD-Na = MELD + 1.32*(137-Na) - 0.033*MELD*(137-Na) with Na clamped [125,137]",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "bilirubin_mg_dl", "inr_ratio", "creatinine_mg_dl", "sodium_meq_l")
				if !ok {
					return nil
				}
				bili := math.Max(v[0], 1.0)
				inr := math.Max(v[1], 1.0)
				creat := clamp(v[2], 1.0, 4.0)
				na := clamp(v[3], 125, 137)
				meld := 3.78*math.Log(bili) + 11.2*math.Log(inr) + 9.57*math.Log(creat) + 6.43
				score := meld
				if meld > 11 {
					score = meld + 1.32*(137-na) - 0.033*meld*(137-na)
				}
				score = clamp(score, 6, 40)
				r := res("meld_na", "MELD-Na score", score, "points", 0)
				r.Extra = map[string]any{"meld_base": meld}
				return r
			},
		},
		{
			ID:    "meld_original",
			Label: "MELD score (original)",
			Inputs: []calc.Field{
				req("bilirubin_mg_dl"), req("inr_ratio"), req("creatinine_mg_dl"),
			},
			Formula: "10 * (0.957*ln(creat) + 0.378*ln(bili) + 1.12*ln(INR) + 0.643); inputs floored at 1.0, creat capped at 4.0",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "bilirubin_mg_dl", "inr_ratio", "creatinine_mg_dl")
				if !ok {
					return nil
				}
				bili := math.Max(v[0], 1.0)
				inr := math.Max(v[1], 1.0)
				creat := clamp(v[2], 1.0, 4.0)
				score := 10 * (0.957*math.Log(creat) + 0.378*math.Log(bili) + 1.12*math.Log(inr) + 0.643)
				return res("meld_original", "MELD score (original)", clamp(score, 6, 40), "points", 0)
			},
		},
		{
			ID:    "child_pugh",
			Label: "Child-Pugh cirrhosis severity score",
			Inputs: []calc.Field{
				req("bilirubin_mg_dl"), req("albumin_g_dl"), req("inr_ratio"),
				req("ascites"), req("encephalopathy"),
			},
			Formula: "bilirubin <2:1, 2-3:2, >3:3; albumin >3.5:1, 2.8-3.5:2, <2.8:3; INR <1.7:1, 1.7-2.3:2, >2.3:3; ascites none:1, mild:2, moderate:3; encephalopathy none:1, grade 1-2:2, grade 3-4:3",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "bilirubin_mg_dl", "albumin_g_dl", "inr_ratio")
				if !ok {
					return nil
				}
				ascites, ok := in.String("ascites")
				if !ok {
					return nil
				}
				enceph, ok := in.String("encephalopathy")
				if !ok {
					return nil
				}
				bili, alb, inr := v[0], v[1], v[2]
				var total float64
				switch {
				case bili < 2:
					total++
				case bili <= 3:
					total += 2
				default:
					total += 3
				}
				switch {
				case alb > 3.5:
					total++
				case alb >= 2.8:
					total += 2
				default:
					total += 3
				}
				switch {
				case inr < 1.7:
					total++
				case inr <= 2.3:
					total += 2
				default:
					total += 3
				}
				switch ascites {
				case "none", "absent":
					total++
				case "mild", "slight":
					total += 2
				default:
					total += 3
				}
				switch enceph {
				case "none", "absent":
					total++
				case "grade 1", "grade 2", "grade 1-2", "mild":
					total += 2
				default:
					total += 3
				}
				r := res("child_pugh", "Child-Pugh cirrhosis severity score", total, "points", 0)
				r.Notes = append(r.Notes, "class: "+bandOf(total, []float64{7, 10}, "A", "B", "C"))
				return r
			},
		},
		{
			ID:    "fib4",
			Label: "FIB-4 fibrosis index",
			Inputs: []calc.Field{
				req("age_years"), req("ast_u_l"), req("alt_u_l"), req("platelets_k_ul"),
			},
			Formula: "FIB-4 = (age * AST) / (platelets * sqrt(ALT))",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "ast_u_l", "alt_u_l", "platelets_k_ul")
				if !ok {
					return nil
				}
				age, ast, alt, plt := v[0], v[1], v[2], v[3]
				if plt <= 0 || alt <= 0 {
					return nil
				}
				score := (age * ast) / (plt * math.Sqrt(alt))
				r := res("fib4", "FIB-4 fibrosis index", score, "", 2)
				switch {
				case score < 1.45:
					r.Notes = append(r.Notes, "advanced fibrosis unlikely")
				case score > 3.25:
					r.Notes = append(r.Notes, "advanced fibrosis likely")
				default:
					r.Notes = append(r.Notes, "indeterminate; further evaluation needed")
				}
				return r
			},
		},
		{
			ID:    "apri",
			Label: "AST to platelet ratio index",
			Inputs: []calc.Field{
				req("ast_u_l"), req("platelets_k_ul"), opt("ast_uln_u_l"),
			},
			Formula: "APRI = ((AST / upper limit of normal) / platelets) * 100; ULN defaults to 40 U/L",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "ast_u_l", "platelets_k_ul")
				if !ok {
					return nil
				}
				ast, plt := v[0], v[1]
				uln := 40.0
				if u, ok := in.Number("ast_uln_u_l"); ok && u > 0 {
					uln = u
				}
				if plt <= 0 {
					return nil
				}
				score := (ast / uln) / plt * 100
				r := res("apri", "AST to platelet ratio index", score, "", 2)
				if score > 1 {
					r.Notes = append(r.Notes, "suggests significant fibrosis or cirrhosis")
				}
				return r
			},
		},
		{
			ID:    "maddrey_df",
			Label: "Maddrey discriminant function for alcoholic hepatitis",
			Inputs: []calc.Field{
				req("pt_seconds"), req("pt_control_seconds"), req("bilirubin_mg_dl"),
			},
			Formula: "DF = 4.6 * (PT - control PT) + bilirubin",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "pt_seconds", "pt_control_seconds", "bilirubin_mg_dl")
				if !ok {
					return nil
				}
				score := 4.6*(v[0]-v[1]) + v[2]
				r := res("maddrey_df", "Maddrey discriminant function for alcoholic hepatitis", score, "points", 1)
				if score >= 32 {
					r.Notes = append(r.Notes, "severe disease; steroid therapy threshold")
				}
				return r
			},
		},
		{
			ID:    "ranson_admission",
			Label: "Ranson criteria at admission",
			Inputs: []calc.Field{
				req("age_years"), req("wbc_k_ul"), req("glucose_mg_dl"),
				req("ast_u_l"), req("ldh_u_l"),
			},
			Formula: "one point each: age>55, WBC>16, glucose>200, AST>250, LDH>350",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "wbc_k_ul", "glucose_mg_dl", "ast_u_l", "ldh_u_l")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"age_gt_55", 1, v[0] > 55},
					{"wbc_gt_16", 1, v[1] > 16},
					{"glucose_gt_200", 1, v[2] > 200},
					{"ast_gt_250", 1, v[3] > 250},
					{"ldh_gt_350", 1, v[4] > 350},
				})
				r := res("ranson_admission", "Ranson criteria at admission", total, "points", 0)
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "ranson_48h",
			Label: "Ranson criteria at 48 hours",
			Inputs: []calc.Field{
				req("hct_fall_percent"), req("bun_rise_mg_dl"), req("calcium_mg_dl"),
				req("pao2_mm_hg"), req("base_deficit_meq_l"), req("fluid_sequestration_l"),
			},
			Formula: "one point each: hematocrit fall >10%, BUN rise >5 mg/dL, calcium <8 mg/dL, PaO2 <60 mmHg, base deficit >4 mEq/L, fluid sequestration >6 L",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "hct_fall_percent", "bun_rise_mg_dl", "calcium_mg_dl", "pao2_mm_hg", "base_deficit_meq_l", "fluid_sequestration_l")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"hct_fall_gt_10", 1, v[0] > 10},
					{"bun_rise_gt_5", 1, v[1] > 5},
					{"calcium_lt_8", 1, v[2] < 8},
					{"pao2_lt_60", 1, v[3] < 60},
					{"base_deficit_gt_4", 1, v[4] > 4},
					{"fluid_sequestration_gt_6", 1, v[5] > 6},
				})
				r := res("ranson_48h", "Ranson criteria at 48 hours", total, "points", 0)
				r.Notes = append(r.Notes, "mortality band: "+bandOf(total, []float64{3, 5}, "low", "moderate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "nafld_fibrosis_score",
			Label: "NAFLD fibrosis score",
			Inputs: []calc.Field{
				req("age_years"), req("bmi"), req("ast_u_l"), req("alt_u_l"),
				req("platelets_k_ul"), req("albumin_g_dl"), opt("ifg_or_diabetes"),
			},
			Formula: "-1.675 + 0.037*age + 0.094*BMI + 1.13*(IFG or diabetes) + 0.99*(AST/ALT) - 0.013*platelets - 0.66*albumin",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "bmi", "ast_u_l", "alt_u_l", "platelets_k_ul", "albumin_g_dl")
				if !ok {
					return nil
				}
				age, bmi, ast, alt, plt, alb := v[0], v[1], v[2], v[3], v[4], v[5]
				if alt <= 0 {
					return nil
				}
				diab := pts(in.Bool("ifg_or_diabetes"), 1)
				score := -1.675 + 0.037*age + 0.094*bmi + 1.13*diab + 0.99*(ast/alt) - 0.013*plt - 0.66*alb
				r := res("nafld_fibrosis_score", "NAFLD fibrosis score", score, "", 2)
				switch {
				case score < -1.455:
					r.Notes = append(r.Notes, "F0-F2 likely")
				case score > 0.676:
					r.Notes = append(r.Notes, "F3-F4 likely")
				default:
					r.Notes = append(r.Notes, "indeterminate")
				}
				return r
			},
		},
	}
}
