package scores

import (
	"math"

	"github.com/medcalc/medcalc/internal/calc"
)

func cardiologyDefs() []calc.Definition {
	return []calc.Definition{
		{
			ID:    "cha2ds2_vasc",
			Label: "CHA2DS2-VASc stroke risk in atrial fibrillation",
			Inputs: []calc.Field{
				req("age_years"), req("sex"), opt("heart_failure"), opt("hypertension"),
				opt("diabetes"), opt("stroke_tia_history"), opt("vascular_disease"),
			},
			Formula: "CHF +1; hypertension +1; age>=75 +2; diabetes +1; stroke/TIA +2; vascular disease +1; age 65-74 +1; female +1",
			Run: func(in calc.Inputs) *calc.Result {
				age, ok := in.Number("age_years")
				if !ok {
					return nil
				}
				sex, ok := in.String("sex")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"heart_failure", 1, in.Bool("heart_failure")},
					{"hypertension", 1, in.Bool("hypertension")},
					{"age_ge_75", 2, age >= 75},
					{"diabetes", 1, in.Bool("diabetes")},
					{"stroke_tia_history", 2, in.Bool("stroke_tia_history")},
					{"vascular_disease", 1, in.Bool("vascular_disease")},
					{"age_65_74", 1, age >= 65 && age < 75},
					{"female", 1, sex == "female" || sex == "f"},
				})
				r := res("cha2ds2_vasc", "CHA2DS2-VASc stroke risk in atrial fibrillation", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{1, 2}, "low", "intermediate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "has_bled",
			Label: "HAS-BLED bleeding risk on anticoagulation",
			Inputs: []calc.Field{
				req("age_years"), opt("hypertension_uncontrolled"), opt("renal_disease"),
				opt("liver_disease"), opt("stroke_history"), opt("bleeding_history"),
				opt("labile_inr"), opt("antiplatelet_or_nsaid"), opt("alcohol_excess"),
			},
			Formula: "one point each: uncontrolled hypertension, renal disease, liver disease, stroke, bleeding history, labile INR, age>65, antiplatelet/NSAID use, alcohol excess",
			Run: func(in calc.Inputs) *calc.Result {
				age, ok := in.Number("age_years")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"hypertension_uncontrolled", 1, in.Bool("hypertension_uncontrolled")},
					{"renal_disease", 1, in.Bool("renal_disease")},
					{"liver_disease", 1, in.Bool("liver_disease")},
					{"stroke_history", 1, in.Bool("stroke_history")},
					{"bleeding_history", 1, in.Bool("bleeding_history")},
					{"labile_inr", 1, in.Bool("labile_inr")},
					{"age_gt_65", 1, age > 65},
					{"antiplatelet_or_nsaid", 1, in.Bool("antiplatelet_or_nsaid")},
					{"alcohol_excess", 1, in.Bool("alcohol_excess")},
				})
				r := res("has_bled", "HAS-BLED bleeding risk on anticoagulation", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{3}, "low", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "timi_ua_nstemi",
			Label: "TIMI risk score for UA/NSTEMI",
			Inputs: []calc.Field{
				req("age_years"), opt("cad_risk_factors_ge_3"), opt("known_cad_stenosis"),
				opt("aspirin_past_7d"), opt("severe_angina"), opt("st_deviation"),
				opt("elevated_markers"),
			},
			Formula: "one point each: age>=65, >=3 CAD risk factors, known stenosis >=50%, aspirin in past 7 days, >=2 angina episodes in 24h, ST deviation >=0.5mm, elevated cardiac markers",
			Run: func(in calc.Inputs) *calc.Result {
				age, ok := in.Number("age_years")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"age_ge_65", 1, age >= 65},
					{"cad_risk_factors_ge_3", 1, in.Bool("cad_risk_factors_ge_3")},
					{"known_cad_stenosis", 1, in.Bool("known_cad_stenosis")},
					{"aspirin_past_7d", 1, in.Bool("aspirin_past_7d")},
					{"severe_angina", 1, in.Bool("severe_angina")},
					{"st_deviation", 1, in.Bool("st_deviation")},
					{"elevated_markers", 1, in.Bool("elevated_markers")},
				})
				r := res("timi_ua_nstemi", "TIMI risk score for UA/NSTEMI", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{3, 5}, "low", "intermediate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "timi_stemi",
			Label: "TIMI risk score for STEMI",
			Inputs: []calc.Field{
				req("age_years"), req("sbp_mm_hg"), req("heart_rate_bpm"), req("weight_kg"),
				opt("diabetes_htn_or_angina"), opt("killip_2_to_4"),
				opt("anterior_ste_or_lbbb"), opt("time_to_treatment_gt_4h"),
			},
			Formula: "age 65-74 +2, >=75 +3; diabetes/HTN/angina +1; SBP<100 +3; HR>100 +2; Killip II-IV +2; weight<67kg +1; anterior STE or LBBB +1; time to treatment >4h +1",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "sbp_mm_hg", "heart_rate_bpm", "weight_kg")
				if !ok {
					return nil
				}
				age, sbp, hr, weight := v[0], v[1], v[2], v[3]
				total, fired := tally([]criterion{
					{"age_65_74", 2, age >= 65 && age < 75},
					{"age_ge_75", 3, age >= 75},
					{"diabetes_htn_or_angina", 1, in.Bool("diabetes_htn_or_angina")},
					{"sbp_lt_100", 3, sbp < 100},
					{"heart_rate_gt_100", 2, hr > 100},
					{"killip_2_to_4", 2, in.Bool("killip_2_to_4")},
					{"weight_lt_67", 1, weight < 67},
					{"anterior_ste_or_lbbb", 1, in.Bool("anterior_ste_or_lbbb")},
					{"time_to_treatment_gt_4h", 1, in.Bool("time_to_treatment_gt_4h")},
				})
				r := res("timi_stemi", "TIMI risk score for STEMI", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{3, 6, 9}, "low", "intermediate", "high", "very high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "dapt",
			Label: "DAPT score for prolonged dual antiplatelet therapy",
			Inputs: []calc.Field{
				req("age_years"), opt("current_smoker"), opt("diabetes"),
				opt("mi_at_presentation"), opt("prior_pci_or_mi"), opt("paclitaxel_stent"),
				opt("stent_diameter_lt_3mm"), opt("chf_or_low_ef"), opt("vein_graft_stent"),
			},
			Formula: "age>=75 -2, 65-74 -1; smoker +1; diabetes +1; MI at presentation +1; prior PCI/MI +1; paclitaxel stent +1; stent <3mm +1; CHF or LVEF<30% +2; vein graft stent +2",
			Run: func(in calc.Inputs) *calc.Result {
				age, ok := in.Number("age_years")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"age_ge_75", -2, age >= 75},
					{"age_65_74", -1, age >= 65 && age < 75},
					{"current_smoker", 1, in.Bool("current_smoker")},
					{"diabetes", 1, in.Bool("diabetes")},
					{"mi_at_presentation", 1, in.Bool("mi_at_presentation")},
					{"prior_pci_or_mi", 1, in.Bool("prior_pci_or_mi")},
					{"paclitaxel_stent", 1, in.Bool("paclitaxel_stent")},
					{"stent_diameter_lt_3mm", 1, in.Bool("stent_diameter_lt_3mm")},
					{"chf_or_low_ef", 2, in.Bool("chf_or_low_ef")},
					{"vein_graft_stent", 2, in.Bool("vein_graft_stent")},
				})
				r := res("dapt", "DAPT score for prolonged dual antiplatelet therapy", total, "points", 0)
				if total >= 2 {
					r.Notes = append(r.Notes, "favors prolonged DAPT")
				} else {
					r.Notes = append(r.Notes, "does not favor prolonged DAPT")
				}
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "crusade",
			Label: "CRUSADE bleeding risk in NSTEMI",
			Inputs: []calc.Field{
				req("hematocrit_percent"), req("creatinine_clearance_ml_min"),
				req("heart_rate_bpm"), req("sbp_mm_hg"), req("sex"),
				opt("chf_signs"), opt("prior_vascular_disease"), opt("diabetes"),
			},
			Formula: "banded points for hematocrit, creatinine clearance, heart rate and SBP, plus female sex +8, CHF signs +7, vascular disease +6, diabetes +6",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "hematocrit_percent", "creatinine_clearance_ml_min", "heart_rate_bpm", "sbp_mm_hg")
				if !ok {
					return nil
				}
				sex, ok := in.String("sex")
				if !ok {
					return nil
				}
				hct, crcl, hr, sbp := v[0], v[1], v[2], v[3]
				var total float64
				switch {
				case hct < 31:
					total += 9
				case hct < 34:
					total += 7
				case hct < 37:
					total += 3
				case hct < 40:
					total += 2
				}
				switch {
				case crcl <= 15:
					total += 39
				case crcl <= 30:
					total += 35
				case crcl <= 60:
					total += 28
				case crcl <= 90:
					total += 17
				case crcl <= 120:
					total += 7
				}
				switch {
				case hr <= 70:
				case hr <= 80:
					total++
				case hr <= 90:
					total += 3
				case hr <= 100:
					total += 6
				case hr <= 110:
					total += 8
				case hr <= 120:
					total += 10
				default:
					total += 11
				}
				switch {
				case sbp <= 90:
					total += 10
				case sbp <= 100:
					total += 8
				case sbp <= 120:
					total += 5
				case sbp <= 180:
					total++
				case sbp <= 200:
					total += 3
				default:
					total += 5
				}
				total += pts(sex == "female" || sex == "f", 8)
				total += pts(in.Bool("chf_signs"), 7)
				total += pts(in.Bool("prior_vascular_disease"), 6)
				total += pts(in.Bool("diabetes"), 6)
				r := res("crusade", "CRUSADE bleeding risk in NSTEMI", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{21, 31, 41, 51}, "very low", "low", "moderate", "high", "very high"))
				return r
			},
		},
		{
			ID:    "heart_score",
			Label: "HEART score for major cardiac events",
			Inputs: []calc.Field{
				req("age_years"), req("history_score"), req("ecg_score"),
				req("risk_factor_count"), req("troponin_ratio"),
			},
			Formula: "history 0-2 + ECG 0-2 + age (<45:0, 45-64:1, >=65:2) + risk factors (0:0, 1-2:1, >=3:2) + troponin (<1x:0, 1-3x:1, >3x:2)",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "history_score", "ecg_score", "risk_factor_count", "troponin_ratio")
				if !ok {
					return nil
				}
				age, history, ecg, rf, trop := v[0], v[1], v[2], v[3], v[4]
				total := clamp(history, 0, 2) + clamp(ecg, 0, 2)
				switch {
				case age >= 65:
					total += 2
				case age >= 45:
					total++
				}
				switch {
				case rf >= 3:
					total += 2
				case rf >= 1:
					total++
				}
				switch {
				case trop > 3:
					total += 2
				case trop >= 1:
					total++
				}
				r := res("heart_score", "HEART score for major cardiac events", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{4, 7}, "low", "moderate", "high"))
				return r
			},
		},
		{
			ID:    "rcri",
			Label: "Revised Cardiac Risk Index",
			Inputs: []calc.Field{
				opt("high_risk_surgery"), opt("ischemic_heart_disease"), opt("heart_failure"),
				opt("cerebrovascular_disease"), opt("insulin_therapy"), opt("creatinine_mg_dl"),
			},
			Formula: "one point each: high-risk surgery, ischemic heart disease, heart failure, cerebrovascular disease, insulin therapy, creatinine >2 mg/dL",
			Run: func(in calc.Inputs) *calc.Result {
				cr, _ := in.Number("creatinine_mg_dl")
				total, fired := tally([]criterion{
					{"high_risk_surgery", 1, in.Bool("high_risk_surgery")},
					{"ischemic_heart_disease", 1, in.Bool("ischemic_heart_disease")},
					{"heart_failure", 1, in.Bool("heart_failure")},
					{"cerebrovascular_disease", 1, in.Bool("cerebrovascular_disease")},
					{"insulin_therapy", 1, in.Bool("insulin_therapy")},
					{"creatinine_gt_2", 1, cr > 2},
				})
				r := res("rcri", "Revised Cardiac Risk Index", total, "points", 0)
				r.Notes = append(r.Notes, "risk class: "+bandOf(total, []float64{1, 2, 3}, "I", "II", "III", "IV"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "qtc_bazett",
			Label: "Corrected QT interval (Bazett)",
			Inputs: []calc.Field{
				req("qt_ms"), req("heart_rate_bpm"),
			},
			Formula: "QTc = QT / sqrt(RR) with RR = 60/HR seconds",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "qt_ms", "heart_rate_bpm")
				if !ok {
					return nil
				}
				qt, hr := v[0], v[1]
				if hr <= 0 {
					return nil
				}
				rr := 60 / hr
				qtc := qt / math.Sqrt(rr)
				r := res("qtc_bazett", "Corrected QT interval (Bazett)", qtc, "ms", 0)
				if qtc >= 500 {
					r.Notes = append(r.Notes, "markedly prolonged QTc")
				} else if qtc > 470 {
					r.Notes = append(r.Notes, "prolonged QTc")
				}
				return r
			},
		},
		{
			ID:    "qtc_fridericia",
			Label: "Corrected QT interval (Fridericia)",
			Inputs: []calc.Field{
				req("qt_ms"), req("heart_rate_bpm"),
			},
			Formula: "QTc = QT / cbrt(RR) with RR = 60/HR seconds",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "qt_ms", "heart_rate_bpm")
				if !ok {
					return nil
				}
				qt, hr := v[0], v[1]
				if hr <= 0 {
					return nil
				}
				rr := 60 / hr
				qtc := qt / math.Cbrt(rr)
				return res("qtc_fridericia", "Corrected QT interval (Fridericia)", qtc, "ms", 0)
			},
		},
		{
			ID:    "qtc_framingham",
			Label: "Corrected QT interval (Framingham)",
			Inputs: []calc.Field{
				req("qt_ms"), req("heart_rate_bpm"),
			},
			Formula: "QTc = QT + 154 * (1 - RR) with RR = 60/HR seconds",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "qt_ms", "heart_rate_bpm")
				if !ok {
					return nil
				}
				qt, hr := v[0], v[1]
				if hr <= 0 {
					return nil
				}
				rr := 60 / hr
				qtc := qt + 154*(1-rr)
				return res("qtc_framingham", "Corrected QT interval (Framingham)", qtc, "ms", 0)
			},
		},
		{
			ID:    "mean_arterial_pressure",
			Label: "Mean arterial pressure",
			Inputs: []calc.Field{
				req("sbp_mm_hg"), req("dbp_mm_hg"),
			},
			Formula: "MAP = (SBP + 2*DBP) / 3",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "sbp_mm_hg", "dbp_mm_hg")
				if !ok {
					return nil
				}
				mapv := (v[0] + 2*v[1]) / 3
				r := res("mean_arterial_pressure", "Mean arterial pressure", mapv, "mmHg", 1)
				if mapv < 65 {
					r.Notes = append(r.Notes, "below common perfusion target of 65 mmHg")
				}
				return r
			},
		},
		{
			ID:    "shock_index",
			Label: "Shock index",
			Inputs: []calc.Field{
				req("heart_rate_bpm"), req("sbp_mm_hg"),
			},
			Formula: "shock index = HR / SBP",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "heart_rate_bpm", "sbp_mm_hg")
				if !ok {
					return nil
				}
				if v[1] <= 0 {
					return nil
				}
				si := v[0] / v[1]
				r := res("shock_index", "Shock index", si, "", 2)
				if si > 0.9 {
					r.Notes = append(r.Notes, "elevated; associated with hemodynamic compromise")
				}
				return r
			},
		},
	}
}
