package scores

import "github.com/medcalc/medcalc/internal/calc"

func icuDefs() []calc.Definition {
	return []calc.Definition{
		{
			ID:    "qsofa",
			Label: "Quick SOFA",
			Inputs: []calc.Field{
				req("resp_rate"), req("sbp_mm_hg"), req("gcs_total"),
			},
			Formula: "one point each: RR>=22, SBP<=100, GCS<15",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "resp_rate", "sbp_mm_hg", "gcs_total")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"resp_rate_ge_22", 1, v[0] >= 22},
					{"sbp_le_100", 1, v[1] <= 100},
					{"gcs_lt_15", 1, v[2] < 15},
				})
				r := res("qsofa", "Quick SOFA", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{2}, "low", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "sofa",
			Label: "Sequential Organ Failure Assessment",
			Inputs: []calc.Field{
				opt("pao2_mm_hg"), opt("fio2_percent"), opt("platelets_k_ul"),
				opt("bilirubin_mg_dl"), opt("map_mm_hg"), opt("vasopressor_level"),
				opt("gcs_total"), opt("creatinine_mg_dl"),
			},
			Formula: "sum of six organ sub-scores (0-4 each): respiration (P/F), coagulation (platelets), liver (bilirubin), cardiovascular (MAP/vasopressors), CNS (GCS), renal (creatinine); absent systems contribute 0",
			Run: func(in calc.Inputs) *calc.Result {
				var total, n float64
				components := map[string]any{}
				if pao2, ok := in.Number("pao2_mm_hg"); ok {
					if fio2, ok := in.Number("fio2_percent"); ok && fio2 > 0 {
						pf := pao2 / (fio2 / 100)
						var p float64
						switch {
						case pf < 100:
							p = 4
						case pf < 200:
							p = 3
						case pf < 300:
							p = 2
						case pf < 400:
							p = 1
						}
						total += p
						components["respiration"] = p
						n++
					}
				}
				if plt, ok := in.Number("platelets_k_ul"); ok {
					var p float64
					switch {
					case plt < 20:
						p = 4
					case plt < 50:
						p = 3
					case plt < 100:
						p = 2
					case plt < 150:
						p = 1
					}
					total += p
					components["coagulation"] = p
					n++
				}
				if bili, ok := in.Number("bilirubin_mg_dl"); ok {
					var p float64
					switch {
					case bili >= 12:
						p = 4
					case bili >= 6:
						p = 3
					case bili >= 2:
						p = 2
					case bili >= 1.2:
						p = 1
					}
					total += p
					components["liver"] = p
					n++
				}
				if level, ok := in.String("vasopressor_level"); ok && level != "none" {
					var p float64
					switch level {
					case "low":
						p = 2
					case "moderate":
						p = 3
					case "high":
						p = 4
					}
					total += p
					components["cardiovascular"] = p
					n++
				} else if mapv, ok := in.Number("map_mm_hg"); ok {
					p := pts(mapv < 70, 1)
					total += p
					components["cardiovascular"] = p
					n++
				}
				if gcs, ok := in.Number("gcs_total"); ok {
					var p float64
					switch {
					case gcs < 6:
						p = 4
					case gcs <= 9:
						p = 3
					case gcs <= 12:
						p = 2
					case gcs <= 14:
						p = 1
					}
					total += p
					components["cns"] = p
					n++
				}
				if creat, ok := in.Number("creatinine_mg_dl"); ok {
					var p float64
					switch {
					case creat >= 5:
						p = 4
					case creat >= 3.5:
						p = 3
					case creat >= 2:
						p = 2
					case creat >= 1.2:
						p = 1
					}
					total += p
					components["renal"] = p
					n++
				}
				if n == 0 {
					return nil
				}
				r := res("sofa", "Sequential Organ Failure Assessment", total, "points", 0)
				r.Extra = map[string]any{"components": components}
				if total >= 2 {
					r.Notes = append(r.Notes, "organ dysfunction consistent with sepsis criteria")
				}
				return r
			},
		},
		{
			ID:    "sirs",
			Label: "SIRS criteria",
			Inputs: []calc.Field{
				req("temp_celsius"), req("heart_rate_bpm"), req("resp_rate"), req("wbc_k_ul"),
				opt("paco2_mm_hg"), opt("band_percent"),
			},
			Formula: "one point each: temp >38 or <36; HR >90; RR >20 or PaCO2 <32; WBC >12 or <4 or bands >10%",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "temp_celsius", "heart_rate_bpm", "resp_rate", "wbc_k_ul")
				if !ok {
					return nil
				}
				temp, hr, rr, wbc := v[0], v[1], v[2], v[3]
				paco2, hasPaCO2 := in.Number("paco2_mm_hg")
				bands, hasBands := in.Number("band_percent")
				total, fired := tally([]criterion{
					{"temperature", 1, temp > 38 || temp < 36},
					{"heart_rate_gt_90", 1, hr > 90},
					{"respiratory", 1, rr > 20 || (hasPaCO2 && paco2 < 32)},
					{"wbc", 1, wbc > 12 || wbc < 4 || (hasBands && bands > 10)},
				})
				r := res("sirs", "SIRS criteria", total, "points", 0)
				if total >= 2 {
					r.Notes = append(r.Notes, "meets SIRS (>=2 criteria)")
				}
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "qpitt",
			Label: "Quick Pitt bacteremia score",
			Inputs: []calc.Field{
				opt("hypothermia"), opt("hypotension_or_pressors"),
				opt("resp_failure"), opt("cardiac_arrest"), opt("altered_mental_status"),
			},
			Formula: "one point each: temperature <36C, SBP<90 or vasopressors, respiratory rate >=25 or mechanical ventilation, cardiac arrest, altered mental status",
			Run: func(in calc.Inputs) *calc.Result {
				total, fired := tally([]criterion{
					{"hypothermia", 1, in.Bool("hypothermia")},
					{"hypotension_or_pressors", 1, in.Bool("hypotension_or_pressors")},
					{"resp_failure", 1, in.Bool("resp_failure")},
					{"cardiac_arrest", 1, in.Bool("cardiac_arrest")},
					{"altered_mental_status", 1, in.Bool("altered_mental_status")},
				})
				r := res("qpitt", "Quick Pitt bacteremia score", total, "points", 0)
				r.Notes = append(r.Notes, "risk_band: "+bandOf(total, []float64{2}, "low", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "saps2",
			Label: "Simplified Acute Physiology Score II",
			Inputs: []calc.Field{
				req("age_years"), req("heart_rate_bpm"), req("sbp_mm_hg"),
				req("temp_celsius"), req("gcs_total"), opt("pao2_mm_hg"), opt("fio2_percent"),
				opt("bun_mg_dl"), opt("urine_output_l_day"), opt("sodium_meq_l"),
				opt("potassium_meq_l"), opt("bicarbonate_meq_l"), opt("bilirubin_mg_dl"),
				opt("wbc_k_ul"), opt("chronic_disease"), opt("admission_type"),
			},
			Formula: "banded points per physiologic variable (age, HR, SBP, temp, GCS, P/F when ventilated, urea, urine output, Na, K, HCO3, bilirubin, WBC) plus chronic disease and admission type",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "heart_rate_bpm", "sbp_mm_hg", "temp_celsius", "gcs_total")
				if !ok {
					return nil
				}
				age, hr, sbp, temp, gcs := v[0], v[1], v[2], v[3], v[4]
				var total float64
				switch {
				case age < 40:
				case age < 60:
					total += 7
				case age < 70:
					total += 12
				case age < 75:
					total += 15
				case age < 80:
					total += 16
				default:
					total += 18
				}
				switch {
				case hr < 40:
					total += 11
				case hr < 70:
					total += 2
				case hr < 120:
				case hr < 160:
					total += 4
				default:
					total += 7
				}
				switch {
				case sbp < 70:
					total += 13
				case sbp < 100:
					total += 5
				case sbp < 200:
				default:
					total += 2
				}
				total += pts(temp >= 39, 3)
				switch {
				case gcs < 6:
					total += 26
				case gcs < 9:
					total += 13
				case gcs < 11:
					total += 7
				case gcs < 14:
					total += 5
				}
				if pao2, ok := in.Number("pao2_mm_hg"); ok {
					if fio2, ok := in.Number("fio2_percent"); ok && fio2 > 0 {
						pf := pao2 / (fio2 / 100)
						switch {
						case pf < 100:
							total += 11
						case pf < 200:
							total += 9
						default:
							total += 6
						}
					}
				}
				if bun, ok := in.Number("bun_mg_dl"); ok {
					switch {
					case bun < 28:
					case bun < 84:
						total += 6
					default:
						total += 10
					}
				}
				if uo, ok := in.Number("urine_output_l_day"); ok {
					switch {
					case uo < 0.5:
						total += 11
					case uo < 1:
						total += 4
					}
				}
				if na, ok := in.Number("sodium_meq_l"); ok {
					switch {
					case na < 125:
						total += 5
					case na >= 145:
						total++
					}
				}
				if k, ok := in.Number("potassium_meq_l"); ok {
					if k < 3 || k >= 5 {
						total += 3
					}
				}
				if hco3, ok := in.Number("bicarbonate_meq_l"); ok {
					switch {
					case hco3 < 15:
						total += 6
					case hco3 < 20:
						total += 3
					}
				}
				if bili, ok := in.Number("bilirubin_mg_dl"); ok {
					switch {
					case bili < 4:
					case bili < 6:
						total += 4
					default:
						total += 9
					}
				}
				if wbc, ok := in.Number("wbc_k_ul"); ok {
					switch {
					case wbc < 1:
						total += 12
					case wbc >= 20:
						total += 3
					}
				}
				if cd, ok := in.String("chronic_disease"); ok {
					switch cd {
					case "metastatic_cancer":
						total += 9
					case "hematologic_malignancy":
						total += 10
					case "aids":
						total += 17
					}
				}
				if at, ok := in.String("admission_type"); ok {
					switch at {
					case "medical":
						total += 6
					case "unscheduled_surgical":
						total += 8
					}
				}
				r := res("saps2", "Simplified Acute Physiology Score II", total, "points", 0)
				r.Notes = append(r.Notes, "severity: "+bandOf(total, []float64{30, 50, 70}, "low", "moderate", "high", "very high"))
				return r
			},
		},
		{
			ID:    "oasis",
			Label: "Oxford Acute Severity of Illness Score",
			Inputs: []calc.Field{
				req("age_years"), req("gcs_total"), req("heart_rate_bpm"),
				req("map_mm_hg"), req("resp_rate"), req("temp_celsius"),
				opt("preicu_los_hours"), opt("urine_output_ml_day"),
				opt("mechanical_ventilation"), opt("elective_surgery"),
			},
			Formula: "banded points per variable: age, GCS, HR, MAP, RR, temperature, pre-ICU length of stay, urine output, mechanical ventilation +9, non-elective admission +6",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "gcs_total", "heart_rate_bpm", "map_mm_hg", "resp_rate", "temp_celsius")
				if !ok {
					return nil
				}
				age, gcs, hr, mapv, rr, temp := v[0], v[1], v[2], v[3], v[4], v[5]
				var total float64
				switch {
				case age < 24:
				case age < 54:
					total += 3
				case age < 78:
					total += 6
				case age < 90:
					total += 9
				default:
					total += 7
				}
				switch {
				case gcs <= 7:
					total += 10
				case gcs <= 13:
					total += 4
				case gcs == 14:
					total++
				}
				switch {
				case hr < 33:
					total += 4
				case hr < 89:
				case hr < 107:
					total++
				case hr <= 125:
					total += 3
				default:
					total += 6
				}
				switch {
				case mapv < 20.65:
					total += 4
				case mapv < 51:
					total += 3
				case mapv < 61.33:
					total += 2
				case mapv <= 143.44:
				default:
					total += 3
				}
				switch {
				case rr < 6:
					total += 10
				case rr < 13:
					total++
				case rr < 23:
				case rr < 31:
					total++
				case rr < 45:
					total += 6
				default:
					total += 9
				}
				switch {
				case temp < 33.22:
					total += 3
				case temp < 35.94:
					total += 4
				case temp < 36.40:
					total += 2
				case temp < 36.89:
				case temp <= 39.88:
					total += 2
				default:
					total += 6
				}
				if los, ok := in.Number("preicu_los_hours"); ok {
					switch {
					case los < 0.17:
						total += 5
					case los < 4.95:
						total += 3
					case los <= 24:
					case los <= 311.8:
						total++
					default:
						total += 2
					}
				}
				if uo, ok := in.Number("urine_output_ml_day"); ok {
					switch {
					case uo < 671:
						total += 10
					case uo < 1427:
						total += 5
					case uo < 2544:
						total++
					case uo <= 6896:
					default:
						total += 8
					}
				}
				total += pts(in.Bool("mechanical_ventilation"), 9)
				total += pts(!in.Bool("elective_surgery"), 6)
				r := res("oasis", "Oxford Acute Severity of Illness Score", total, "points", 0)
				r.Notes = append(r.Notes, "severity: "+bandOf(total, []float64{23, 33, 42}, "low", "moderate", "high", "very high"))
				return r
			},
		},
		{
			ID:    "nee",
			Label: "Norepinephrine-equivalent vasopressor dose",
			Inputs: []calc.Field{
				opt("norepinephrine_ug_kg_min"), opt("epinephrine_ug_kg_min"),
				opt("dopamine_ug_kg_min"), opt("phenylephrine_ug_kg_min"),
				opt("vasopressin_u_min"), opt("angiotensin_ii_ng_kg_min"),
			},
			Formula: "NEE = norepinephrine + epinephrine + dopamine/100 + phenylephrine/10 + vasopressin*2.5 + angiotensin II/100*10",
			Run: func(in calc.Inputs) *calc.Result {
				var total float64
				var n int
				if d, ok := in.Number("norepinephrine_ug_kg_min"); ok {
					total += d
					n++
				}
				if d, ok := in.Number("epinephrine_ug_kg_min"); ok {
					total += d
					n++
				}
				if d, ok := in.Number("dopamine_ug_kg_min"); ok {
					total += d / 100
					n++
				}
				if d, ok := in.Number("phenylephrine_ug_kg_min"); ok {
					total += d / 10
					n++
				}
				if d, ok := in.Number("vasopressin_u_min"); ok {
					total += d * 2.5
					n++
				}
				if d, ok := in.Number("angiotensin_ii_ng_kg_min"); ok {
					total += d / 10
					n++
				}
				if n == 0 {
					return nil
				}
				r := res("nee", "Norepinephrine-equivalent vasopressor dose", total, "ug/kg/min", 3)
				if total >= 0.5 {
					r.Notes = append(r.Notes, "high-dose vasopressor support")
				}
				return r
			},
		},
		{
			ID:    "braden",
			Label: "Braden pressure ulcer risk scale",
			Inputs: []calc.Field{
				req("sensory_perception"), req("moisture"), req("activity"),
				req("mobility"), req("nutrition"), req("friction_shear"),
			},
			Formula: "sum of six subscales: sensory, moisture, activity, mobility, nutrition (1-4 each) and friction/shear (1-3)",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "sensory_perception", "moisture", "activity", "mobility", "nutrition", "friction_shear")
				if !ok {
					return nil
				}
				total := clamp(v[0], 1, 4) + clamp(v[1], 1, 4) + clamp(v[2], 1, 4) +
					clamp(v[3], 1, 4) + clamp(v[4], 1, 4) + clamp(v[5], 1, 3)
				r := res("braden", "Braden pressure ulcer risk scale", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{10, 13, 15, 19}, "very high", "high", "moderate", "mild", "minimal"))
				return r
			},
		},
		{
			ID:    "gcs",
			Label: "Glasgow Coma Scale",
			Inputs: []calc.Field{
				req("eye_response"), req("verbal_response"), req("motor_response"),
			},
			Formula: "GCS = eye (1-4) + verbal (1-5) + motor (1-6)",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "eye_response", "verbal_response", "motor_response")
				if !ok {
					return nil
				}
				total := clamp(v[0], 1, 4) + clamp(v[1], 1, 5) + clamp(v[2], 1, 6)
				r := res("gcs", "Glasgow Coma Scale", total, "points", 0)
				r.Notes = append(r.Notes, "severity: "+bandOf(total, []float64{9, 13}, "severe", "moderate", "mild"))
				return r
			},
		},
		{
			ID:    "news2",
			Label: "National Early Warning Score 2",
			Inputs: []calc.Field{
				req("resp_rate"), req("sao2_percent"), req("temp_celsius"),
				req("sbp_mm_hg"), req("heart_rate_bpm"), opt("supplemental_o2"),
				opt("altered_consciousness"),
			},
			Formula: "banded points per vital sign (RR, SpO2, temp, SBP, HR) plus supplemental O2 +2 and new confusion/unresponsiveness +3",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "resp_rate", "sao2_percent", "temp_celsius", "sbp_mm_hg", "heart_rate_bpm")
				if !ok {
					return nil
				}
				rr, spo2, temp, sbp, hr := v[0], v[1], v[2], v[3], v[4]
				var total float64
				switch {
				case rr <= 8:
					total += 3
				case rr <= 11:
					total++
				case rr <= 20:
				case rr <= 24:
					total += 2
				default:
					total += 3
				}
				switch {
				case spo2 <= 91:
					total += 3
				case spo2 <= 93:
					total += 2
				case spo2 <= 95:
					total++
				}
				switch {
				case temp <= 35:
					total += 3
				case temp <= 36:
					total++
				case temp <= 38:
				case temp <= 39:
					total++
				default:
					total += 2
				}
				switch {
				case sbp <= 90:
					total += 3
				case sbp <= 100:
					total += 2
				case sbp <= 110:
					total++
				case sbp <= 219:
				default:
					total += 3
				}
				switch {
				case hr <= 40:
					total += 3
				case hr <= 50:
					total++
				case hr <= 90:
				case hr <= 110:
					total++
				case hr <= 130:
					total += 2
				default:
					total += 3
				}
				total += pts(in.Bool("supplemental_o2"), 2)
				total += pts(in.Bool("altered_consciousness"), 3)
				r := res("news2", "National Early Warning Score 2", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{5, 7}, "low", "medium", "high"))
				return r
			},
		},
	}
}
