package scores

import "github.com/medcalc/medcalc/internal/calc"

func hematologyDefs() []calc.Definition {
	return []calc.Definition{
		{
			ID:    "wells_dvt",
			Label: "Wells score for deep vein thrombosis",
			Inputs: []calc.Field{
				opt("active_cancer"), opt("paralysis_or_immobilization"),
				opt("bedridden_or_major_surgery"), opt("localized_tenderness"),
				opt("entire_leg_swollen"), opt("calf_swelling_gt_3cm"),
				opt("pitting_edema"), opt("collateral_veins"), opt("previous_dvt"),
				opt("alternative_diagnosis_likely"),
			},
			Formula: "one point per clinical criterion; alternative diagnosis at least as likely -2",
			Run: func(in calc.Inputs) *calc.Result {
				total, fired := tally([]criterion{
					{"active_cancer", 1, in.Bool("active_cancer")},
					{"paralysis_or_immobilization", 1, in.Bool("paralysis_or_immobilization")},
					{"bedridden_or_major_surgery", 1, in.Bool("bedridden_or_major_surgery")},
					{"localized_tenderness", 1, in.Bool("localized_tenderness")},
					{"entire_leg_swollen", 1, in.Bool("entire_leg_swollen")},
					{"calf_swelling_gt_3cm", 1, in.Bool("calf_swelling_gt_3cm")},
					{"pitting_edema", 1, in.Bool("pitting_edema")},
					{"collateral_veins", 1, in.Bool("collateral_veins")},
					{"previous_dvt", 1, in.Bool("previous_dvt")},
					{"alternative_diagnosis_likely", -2, in.Bool("alternative_diagnosis_likely")},
				})
				r := res("wells_dvt", "Wells score for deep vein thrombosis", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{1, 3}, "low", "moderate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "padua",
			Label: "Padua prediction score for VTE risk",
			Inputs: []calc.Field{
				req("age_years"), opt("active_cancer"), opt("previous_vte"),
				opt("reduced_mobility"), opt("thrombophilia"), opt("recent_trauma_surgery"),
				opt("heart_or_resp_failure"), opt("mi_or_stroke"),
				opt("infection_or_rheum"), opt("bmi_ge_30"), opt("hormonal_treatment"),
			},
			Formula: "active cancer +3; previous VTE +3; reduced mobility +3; thrombophilia +3; recent trauma/surgery +2; age>=70 +1; heart/respiratory failure +1; acute MI or stroke +1; acute infection or rheumatologic disorder +1; BMI>=30 +1; hormonal treatment +1",
			Run: func(in calc.Inputs) *calc.Result {
				age, ok := in.Number("age_years")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"active_cancer", 3, in.Bool("active_cancer")},
					{"previous_vte", 3, in.Bool("previous_vte")},
					{"reduced_mobility", 3, in.Bool("reduced_mobility")},
					{"thrombophilia", 3, in.Bool("thrombophilia")},
					{"recent_trauma_surgery", 2, in.Bool("recent_trauma_surgery")},
					{"age_ge_70", 1, age >= 70},
					{"heart_or_resp_failure", 1, in.Bool("heart_or_resp_failure")},
					{"mi_or_stroke", 1, in.Bool("mi_or_stroke")},
					{"infection_or_rheum", 1, in.Bool("infection_or_rheum")},
					{"bmi_ge_30", 1, in.Bool("bmi_ge_30")},
					{"hormonal_treatment", 1, in.Bool("hormonal_treatment")},
				})
				r := res("padua", "Padua prediction score for VTE risk", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{4}, "low", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "four_ts",
			Label: "4Ts score for heparin-induced thrombocytopenia",
			Inputs: []calc.Field{
				req("platelet_fall_percent"), req("platelet_nadir_k_ul"),
				req("onset_day"), opt("recent_heparin_30d"),
				opt("thrombosis"), opt("other_causes"),
			},
			Formula: "thrombocytopenia: >50% fall and nadir>=20 +2, 30-50% fall or nadir 10-19 +1; timing: onset day 5-10 or <=1 day with recent heparin +2, day >10 +1; thrombosis: new +2, progressive/suspected +1; other causes: none +2, possible +1",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "platelet_fall_percent", "platelet_nadir_k_ul", "onset_day")
				if !ok {
					return nil
				}
				fall, nadir, onset := v[0], v[1], v[2]
				var total float64
				switch {
				case fall > 50 && nadir >= 20:
					total += 2
				case fall >= 30 || (nadir >= 10 && nadir < 20):
					total++
				}
				switch {
				case onset >= 5 && onset <= 10, onset <= 1 && in.Bool("recent_heparin_30d"):
					total += 2
				case onset > 10:
					total++
				}
				if thromb, ok := in.String("thrombosis"); ok {
					switch thromb {
					case "new", "confirmed":
						total += 2
					case "progressive", "suspected", "recurrent":
						total++
					}
				}
				otherCauses, _ := in.String("other_causes")
				switch otherCauses {
				case "", "none":
					total += 2
				case "possible":
					total++
				}
				r := res("four_ts", "4Ts score for heparin-induced thrombocytopenia", total, "points", 0)
				r.Notes = append(r.Notes, "probability: "+bandOf(total, []float64{4, 6}, "low", "intermediate", "high"))
				return r
			},
		},
		{
			ID:    "plasmic",
			Label: "PLASMIC score for TTP",
			Inputs: []calc.Field{
				req("platelets_k_ul"), req("mcv_fl"), req("inr_ratio"), req("creatinine_mg_dl"),
				opt("hemolysis"), opt("active_cancer"), opt("transplant_history"),
			},
			Formula: "one point each: platelets<30, hemolysis evidence, no active cancer, no transplant history, MCV<90, INR<1.5, creatinine<2",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "platelets_k_ul", "mcv_fl", "inr_ratio", "creatinine_mg_dl")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"platelets_lt_30", 1, v[0] < 30},
					{"hemolysis", 1, in.Bool("hemolysis")},
					{"no_active_cancer", 1, !in.Bool("active_cancer")},
					{"no_transplant_history", 1, !in.Bool("transplant_history")},
					{"mcv_lt_90", 1, v[1] < 90},
					{"inr_lt_1_5", 1, v[2] < 1.5},
					{"creatinine_lt_2", 1, v[3] < 2},
				})
				r := res("plasmic", "PLASMIC score for TTP", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{5, 6}, "low", "intermediate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "isth_dic",
			Label: "ISTH overt DIC score",
			Inputs: []calc.Field{
				req("platelets_k_ul"), req("d_dimer_level"), req("pt_prolongation_s"),
				req("fibrinogen_g_l"),
			},
			Formula: "platelets <50 +2, 50-100 +1; D-dimer strong increase +3, moderate +2; PT prolongation >=6s +2, 3-6s +1; fibrinogen <1 g/L +1",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "platelets_k_ul", "d_dimer_level", "pt_prolongation_s", "fibrinogen_g_l")
				if !ok {
					return nil
				}
				plt, ddimer, pt, fib := v[0], v[1], v[2], v[3]
				var total float64
				switch {
				case plt < 50:
					total += 2
				case plt < 100:
					total++
				}
				// D-dimer banding: 0 no increase, 2 moderate, 3 strong, per
				// the ISTH semiquantitative convention (level 0/1/2 input).
				switch {
				case ddimer >= 2:
					total += 3
				case ddimer >= 1:
					total += 2
				}
				switch {
				case pt >= 6:
					total += 2
				case pt >= 3:
					total++
				}
				total += pts(fib < 1, 1)
				r := res("isth_dic", "ISTH overt DIC score", total, "points", 0)
				if total >= 5 {
					r.Notes = append(r.Notes, "compatible with overt DIC")
				} else {
					r.Notes = append(r.Notes, "not compatible with overt DIC; repeat in 1-2 days")
				}
				return r
			},
		},
	}
}
