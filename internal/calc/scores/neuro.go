package scores

import "github.com/medcalc/medcalc/internal/calc"

func neuroDefs() []calc.Definition {
	return []calc.Definition{
		{
			ID:    "abcd2",
			Label: "ABCD2 stroke risk after TIA",
			Inputs: []calc.Field{
				req("age_years"), req("sbp_mm_hg"), req("dbp_mm_hg"),
				req("duration_minutes"), opt("unilateral_weakness"),
				opt("speech_impairment"), opt("diabetes"),
			},
			Formula: "age>=60 +1; BP>=140/90 +1; unilateral weakness +2 or speech impairment without weakness +1; duration >=60min +2, 10-59min +1; diabetes +1",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "sbp_mm_hg", "dbp_mm_hg", "duration_minutes")
				if !ok {
					return nil
				}
				age, sbp, dbp, dur := v[0], v[1], v[2], v[3]
				weakness := in.Bool("unilateral_weakness")
				total, fired := tally([]criterion{
					{"age_ge_60", 1, age >= 60},
					{"bp_ge_140_90", 1, sbp >= 140 || dbp >= 90},
					{"unilateral_weakness", 2, weakness},
					{"speech_impairment_no_weakness", 1, in.Bool("speech_impairment") && !weakness},
					{"duration_ge_60min", 2, dur >= 60},
					{"duration_10_59min", 1, dur >= 10 && dur < 60},
					{"diabetes", 1, in.Bool("diabetes")},
				})
				r := res("abcd2", "ABCD2 stroke risk after TIA", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{4, 6}, "low", "moderate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "san_francisco_syncope",
			Label: "San Francisco syncope rule",
			Inputs: []calc.Field{
				req("hematocrit_percent"), req("sbp_mm_hg"), opt("chf_history"),
				opt("abnormal_ecg"), opt("shortness_of_breath"),
			},
			Formula: "high risk if any of: CHF history, hematocrit <30%, abnormal ECG, shortness of breath, SBP <90 mmHg",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "hematocrit_percent", "sbp_mm_hg")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"chf_history", 1, in.Bool("chf_history")},
					{"hematocrit_lt_30", 1, v[0] < 30},
					{"abnormal_ecg", 1, in.Bool("abnormal_ecg")},
					{"shortness_of_breath", 1, in.Bool("shortness_of_breath")},
					{"sbp_lt_90", 1, v[1] < 90},
				})
				r := res("san_francisco_syncope", "San Francisco syncope rule", total, "criteria", 0)
				if total > 0 {
					r.Notes = append(r.Notes, "high risk for serious outcome")
				} else {
					r.Notes = append(r.Notes, "low risk")
				}
				r.Extra = map[string]any{"failed_criteria": fired}
				return r
			},
		},
		{
			ID:    "ich_score",
			Label: "ICH score for intracerebral hemorrhage",
			Inputs: []calc.Field{
				req("gcs_total"), req("age_years"), req("ich_volume_ml"),
				opt("intraventricular_hemorrhage"), opt("infratentorial_origin"),
			},
			Formula: "GCS 3-4 +2, 5-12 +1; ICH volume >=30mL +1; intraventricular hemorrhage +1; infratentorial origin +1; age >=80 +1",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "gcs_total", "age_years", "ich_volume_ml")
				if !ok {
					return nil
				}
				gcs, age, volume := v[0], v[1], v[2]
				total, fired := tally([]criterion{
					{"gcs_3_4", 2, gcs <= 4},
					{"gcs_5_12", 1, gcs >= 5 && gcs <= 12},
					{"volume_ge_30", 1, volume >= 30},
					{"intraventricular_hemorrhage", 1, in.Bool("intraventricular_hemorrhage")},
					{"infratentorial_origin", 1, in.Bool("infratentorial_origin")},
					{"age_ge_80", 1, age >= 80},
				})
				r := res("ich_score", "ICH score for intracerebral hemorrhage", total, "points", 0)
				r.Notes = append(r.Notes, "mortality band: "+bandOf(total, []float64{2, 4}, "low", "intermediate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "canadian_ct_head",
			Label: "Canadian CT head rule",
			Inputs: []calc.Field{
				req("age_years"), opt("gcs_lt_15_at_2h"), opt("suspected_skull_fracture"),
				opt("basilar_fracture_signs"), opt("vomiting_ge_2"),
				opt("amnesia_gt_30min"), opt("dangerous_mechanism"),
			},
			Formula: "high-risk: GCS<15 at 2h, suspected open/depressed skull fracture, basilar fracture signs, >=2 vomiting episodes, age>=65; medium-risk: retrograde amnesia >30min, dangerous mechanism",
			Run: func(in calc.Inputs) *calc.Result {
				age, ok := in.Number("age_years")
				if !ok {
					return nil
				}
				highTotal, high := tally([]criterion{
					{"gcs_lt_15_at_2h", 1, in.Bool("gcs_lt_15_at_2h")},
					{"suspected_skull_fracture", 1, in.Bool("suspected_skull_fracture")},
					{"basilar_fracture_signs", 1, in.Bool("basilar_fracture_signs")},
					{"vomiting_ge_2", 1, in.Bool("vomiting_ge_2")},
					{"age_ge_65", 1, age >= 65},
				})
				medTotal, medium := tally([]criterion{
					{"amnesia_gt_30min", 1, in.Bool("amnesia_gt_30min")},
					{"dangerous_mechanism", 1, in.Bool("dangerous_mechanism")},
				})
				total := highTotal + medTotal
				r := res("canadian_ct_head", "Canadian CT head rule", total, "criteria", 0)
				switch {
				case highTotal > 0:
					r.Notes = append(r.Notes, "CT indicated (high-risk criterion present)")
				case medTotal > 0:
					r.Notes = append(r.Notes, "CT recommended (medium-risk criterion present)")
				default:
					r.Notes = append(r.Notes, "CT not indicated by rule")
				}
				r.Extra = map[string]any{"high_risk_criteria": high, "medium_risk_criteria": medium}
				return r
			},
		},
	}
}
