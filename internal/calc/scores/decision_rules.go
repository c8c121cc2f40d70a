package scores

import "github.com/medcalc/medcalc/internal/calc"

func decisionRuleDefs() []calc.Definition {
	return []calc.Definition{
		{
			ID:    "perc",
			Label: "PERC rule for pulmonary embolism",
			Inputs: []calc.Field{
				req("age_years"), req("heart_rate_bpm"), req("sao2_percent"),
				opt("hemoptysis"), opt("estrogen_use"), opt("prior_dvt_pe"),
				opt("unilateral_leg_swelling"), opt("recent_surgery_trauma"),
			},
			Formula: "rule negative only if all of: age<50, HR<100, SaO2>=95%, no hemoptysis, no estrogen use, no prior DVT/PE, no unilateral leg swelling, no recent surgery or trauma",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "heart_rate_bpm", "sao2_percent")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"age_ge_50", 1, v[0] >= 50},
					{"hr_ge_100", 1, v[1] >= 100},
					{"sao2_lt_95", 1, v[2] < 95},
					{"hemoptysis", 1, in.Bool("hemoptysis")},
					{"estrogen_use", 1, in.Bool("estrogen_use")},
					{"prior_dvt_pe", 1, in.Bool("prior_dvt_pe")},
					{"unilateral_leg_swelling", 1, in.Bool("unilateral_leg_swelling")},
					{"recent_surgery_trauma", 1, in.Bool("recent_surgery_trauma")},
				})
				r := res("perc", "PERC rule for pulmonary embolism", total, "criteria", 0)
				if total == 0 {
					r.Notes = append(r.Notes, "PERC negative; PE ruled out in low pretest probability")
				} else {
					r.Notes = append(r.Notes, "PERC positive; further workup indicated")
				}
				r.Extra = map[string]any{"failed_criteria": fired}
				return r
			},
		},
		{
			ID:    "nexus",
			Label: "NEXUS criteria for c-spine imaging",
			Inputs: []calc.Field{
				opt("midline_tenderness"), opt("focal_neuro_deficit"),
				opt("altered_alertness"), opt("intoxication"), opt("distracting_injury"),
			},
			Formula: "imaging not required only if all absent: midline cervical tenderness, focal neurologic deficit, altered alertness, intoxication, painful distracting injury",
			Run: func(in calc.Inputs) *calc.Result {
				total, fired := tally([]criterion{
					{"midline_tenderness", 1, in.Bool("midline_tenderness")},
					{"focal_neuro_deficit", 1, in.Bool("focal_neuro_deficit")},
					{"altered_alertness", 1, in.Bool("altered_alertness")},
					{"intoxication", 1, in.Bool("intoxication")},
					{"distracting_injury", 1, in.Bool("distracting_injury")},
				})
				r := res("nexus", "NEXUS criteria for c-spine imaging", total, "criteria", 0)
				if total == 0 {
					r.Notes = append(r.Notes, "low risk; imaging not required")
				} else {
					r.Notes = append(r.Notes, "criteria present; imaging indicated")
				}
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "ottawa_ankle",
			Label: "Ottawa ankle rule",
			Inputs: []calc.Field{
				opt("malleolar_pain"), opt("lateral_malleolus_tenderness"),
				opt("medial_malleolus_tenderness"), opt("unable_to_bear_weight"),
			},
			Formula: "ankle x-ray indicated if malleolar pain plus any of: posterior lateral malleolus tenderness, posterior medial malleolus tenderness, inability to bear weight 4 steps",
			Run: func(in calc.Inputs) *calc.Result {
				total, fired := tally([]criterion{
					{"lateral_malleolus_tenderness", 1, in.Bool("lateral_malleolus_tenderness")},
					{"medial_malleolus_tenderness", 1, in.Bool("medial_malleolus_tenderness")},
					{"unable_to_bear_weight", 1, in.Bool("unable_to_bear_weight")},
				})
				indicated := in.Bool("malleolar_pain") && total > 0
				r := res("ottawa_ankle", "Ottawa ankle rule", total, "criteria", 0)
				if indicated {
					r.Notes = append(r.Notes, "x-ray indicated")
				} else {
					r.Notes = append(r.Notes, "x-ray not indicated by rule")
				}
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "ottawa_knee",
			Label: "Ottawa knee rule",
			Inputs: []calc.Field{
				req("age_years"), opt("isolated_patella_tenderness"),
				opt("fibular_head_tenderness"), opt("cannot_flex_90"),
				opt("unable_to_bear_weight"),
			},
			Formula: "knee x-ray indicated if any of: age>=55, isolated patella tenderness, fibular head tenderness, cannot flex to 90 degrees, inability to bear weight 4 steps",
			Run: func(in calc.Inputs) *calc.Result {
				age, ok := in.Number("age_years")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"age_ge_55", 1, age >= 55},
					{"isolated_patella_tenderness", 1, in.Bool("isolated_patella_tenderness")},
					{"fibular_head_tenderness", 1, in.Bool("fibular_head_tenderness")},
					{"cannot_flex_90", 1, in.Bool("cannot_flex_90")},
					{"unable_to_bear_weight", 1, in.Bool("unable_to_bear_weight")},
				})
				r := res("ottawa_knee", "Ottawa knee rule", total, "criteria", 0)
				if total > 0 {
					r.Notes = append(r.Notes, "x-ray indicated")
				} else {
					r.Notes = append(r.Notes, "x-ray not indicated by rule")
				}
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "ottawa_foot",
			Label: "Ottawa foot rule",
			Inputs: []calc.Field{
				opt("midfoot_pain"), opt("fifth_metatarsal_tenderness"),
				opt("navicular_tenderness"), opt("unable_to_bear_weight"),
			},
			Formula: "foot x-ray indicated if midfoot pain plus any of: base of fifth metatarsal tenderness, navicular tenderness, inability to bear weight 4 steps",
			Run: func(in calc.Inputs) *calc.Result {
				total, fired := tally([]criterion{
					{"fifth_metatarsal_tenderness", 1, in.Bool("fifth_metatarsal_tenderness")},
					{"navicular_tenderness", 1, in.Bool("navicular_tenderness")},
					{"unable_to_bear_weight", 1, in.Bool("unable_to_bear_weight")},
				})
				indicated := in.Bool("midfoot_pain") && total > 0
				r := res("ottawa_foot", "Ottawa foot rule", total, "criteria", 0)
				if indicated {
					r.Notes = append(r.Notes, "x-ray indicated")
				} else {
					r.Notes = append(r.Notes, "x-ray not indicated by rule")
				}
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "alvarado",
			Label: "Alvarado score for appendicitis",
			Inputs: []calc.Field{
				req("wbc_k_ul"), opt("migration_rlq"), opt("anorexia"), opt("nausea_vomiting"),
				opt("rlq_tenderness"), opt("rebound_pain"), opt("fever"), opt("left_shift"),
			},
			Formula: "migration to RLQ +1; anorexia +1; nausea/vomiting +1; RLQ tenderness +2; rebound pain +1; fever +1; leukocytosis WBC>10 +2; neutrophil left shift +1",
			Run: func(in calc.Inputs) *calc.Result {
				wbc, ok := in.Number("wbc_k_ul")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"migration_rlq", 1, in.Bool("migration_rlq")},
					{"anorexia", 1, in.Bool("anorexia")},
					{"nausea_vomiting", 1, in.Bool("nausea_vomiting")},
					{"rlq_tenderness", 2, in.Bool("rlq_tenderness")},
					{"rebound_pain", 1, in.Bool("rebound_pain")},
					{"fever", 1, in.Bool("fever")},
					{"leukocytosis", 2, wbc > 10},
					{"left_shift", 1, in.Bool("left_shift")},
				})
				r := res("alvarado", "Alvarado score for appendicitis", total, "points", 0)
				r.Notes = append(r.Notes, "probability: "+bandOf(total, []float64{5, 7}, "low", "intermediate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "centor",
			Label: "Centor score for strep pharyngitis (McIsaac modified)",
			Inputs: []calc.Field{
				req("age_years"), opt("tonsillar_exudate"), opt("tender_anterior_nodes"),
				opt("fever_history"), opt("absent_cough"),
			},
			Formula: "tonsillar exudate +1; tender anterior cervical nodes +1; fever history +1; absence of cough +1; age 3-14 +1; age >=45 -1",
			Run: func(in calc.Inputs) *calc.Result {
				age, ok := in.Number("age_years")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"tonsillar_exudate", 1, in.Bool("tonsillar_exudate")},
					{"tender_anterior_nodes", 1, in.Bool("tender_anterior_nodes")},
					{"fever_history", 1, in.Bool("fever_history")},
					{"absent_cough", 1, in.Bool("absent_cough")},
					{"age_3_14", 1, age >= 3 && age < 15},
					{"age_ge_45", -1, age >= 45},
				})
				r := res("centor", "Centor score for strep pharyngitis (McIsaac modified)", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{2, 4}, "low", "intermediate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
	}
}
