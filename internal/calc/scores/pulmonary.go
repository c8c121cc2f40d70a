package scores

import "github.com/medcalc/medcalc/internal/calc"

func pulmonaryDefs() []calc.Definition {
	return []calc.Definition{
		{
			ID:    "aa_gradient",
			Label: "Alveolar-arterial oxygen gradient",
			Inputs: []calc.Field{
				req("age_years"), req("fio2_percent"), req("pao2_mm_hg"), req("paco2_mm_hg"),
			},
			Formula: "PAO2 = (760-47)*FiO2 - PaCO2/0.8; gradient = PAO2 - PaO2; expected normal = (age+10)/4",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "fio2_percent", "pao2_mm_hg", "paco2_mm_hg")
				if !ok {
					return nil
				}
				age, fio2, pao2, paco2 := v[0], v[1]/100, v[2], v[3]
				if fio2 <= 0 {
					return nil
				}
				alveolar := (760-47)*fio2 - paco2/0.8
				gradient := alveolar - pao2
				expected := (age + 10) / 4
				r := res("aa_gradient", "Alveolar-arterial oxygen gradient", gradient, "mmHg", 2)
				r.Extra = map[string]any{
					"alveolar_po2":    alveolar,
					"expected_normal": expected,
				}
				if gradient > expected {
					r.Notes = append(r.Notes, "gradient above expected for age")
				}
				return r
			},
		},
		{
			ID:    "pao2_fio2_ratio",
			Label: "PaO2/FiO2 ratio",
			Inputs: []calc.Field{
				req("pao2_mm_hg"), req("fio2_percent"),
			},
			Formula: "ratio = PaO2 / (FiO2/100)",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "pao2_mm_hg", "fio2_percent")
				if !ok {
					return nil
				}
				fio2 := v[1] / 100
				if fio2 <= 0 {
					return nil
				}
				ratio := v[0] / fio2
				r := res("pao2_fio2_ratio", "PaO2/FiO2 ratio", ratio, "", 0)
				switch {
				case ratio <= 100:
					r.Notes = append(r.Notes, "severe ARDS range (Berlin)")
				case ratio <= 200:
					r.Notes = append(r.Notes, "moderate ARDS range (Berlin)")
				case ratio <= 300:
					r.Notes = append(r.Notes, "mild ARDS range (Berlin)")
				}
				return r
			},
		},
		{
			ID:    "wells_pe",
			Label: "Wells score for pulmonary embolism",
			Inputs: []calc.Field{
				req("heart_rate_bpm"), opt("clinical_signs_dvt"), opt("pe_most_likely"),
				opt("immobilization_or_surgery_4wk"), opt("previous_dvt_pe"),
				opt("hemoptysis"), opt("malignancy"),
			},
			Formula: "signs of DVT +3; PE most likely +3; HR>100 +1.5; immobilization/surgery +1.5; prior DVT/PE +1.5; hemoptysis +1; malignancy +1",
			Run: func(in calc.Inputs) *calc.Result {
				hr, ok := in.Number("heart_rate_bpm")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"clinical_signs_dvt", 3, in.Bool("clinical_signs_dvt")},
					{"pe_most_likely", 3, in.Bool("pe_most_likely")},
					{"heart_rate_gt_100", 1.5, hr > 100},
					{"immobilization_or_surgery_4wk", 1.5, in.Bool("immobilization_or_surgery_4wk")},
					{"previous_dvt_pe", 1.5, in.Bool("previous_dvt_pe")},
					{"hemoptysis", 1, in.Bool("hemoptysis")},
					{"malignancy", 1, in.Bool("malignancy")},
				})
				r := res("wells_pe", "Wells score for pulmonary embolism", total, "points", 1)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{2, 6.5}, "low", "moderate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "geneva_revised",
			Label: "Revised Geneva score for pulmonary embolism",
			Inputs: []calc.Field{
				req("age_years"), req("heart_rate_bpm"), opt("previous_dvt_pe"),
				opt("surgery_fracture_1mo"), opt("active_malignancy"),
				opt("unilateral_limb_pain"), opt("hemoptysis"), opt("pain_palpation_edema"),
			},
			Formula: "age>=65 +1; prior DVT/PE +3; surgery/fracture within 1mo +2; active malignancy +2; unilateral limb pain +3; hemoptysis +2; HR 75-94 +3, HR>=95 +5; pain on deep palpation with unilateral edema +4",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "heart_rate_bpm")
				if !ok {
					return nil
				}
				age, hr := v[0], v[1]
				total, fired := tally([]criterion{
					{"age_ge_65", 1, age >= 65},
					{"previous_dvt_pe", 3, in.Bool("previous_dvt_pe")},
					{"surgery_fracture_1mo", 2, in.Bool("surgery_fracture_1mo")},
					{"active_malignancy", 2, in.Bool("active_malignancy")},
					{"unilateral_limb_pain", 3, in.Bool("unilateral_limb_pain")},
					{"hemoptysis", 2, in.Bool("hemoptysis")},
					{"heart_rate_75_94", 3, hr >= 75 && hr < 95},
					{"heart_rate_ge_95", 5, hr >= 95},
					{"pain_palpation_edema", 4, in.Bool("pain_palpation_edema")},
				})
				r := res("geneva_revised", "Revised Geneva score for pulmonary embolism", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{4, 11}, "low", "intermediate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "geneva_simplified",
			Label: "Simplified Geneva score for pulmonary embolism",
			Inputs: []calc.Field{
				req("age_years"), req("heart_rate_bpm"), opt("previous_dvt_pe"),
				opt("surgery_fracture_1mo"), opt("active_malignancy"),
				opt("unilateral_limb_pain"), opt("hemoptysis"), opt("pain_palpation_edema"),
			},
			Formula: "one point per positive criterion; HR 75-94 +1, HR>=95 +2",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "heart_rate_bpm")
				if !ok {
					return nil
				}
				age, hr := v[0], v[1]
				total, fired := tally([]criterion{
					{"age_gt_65", 1, age > 65},
					{"previous_dvt_pe", 1, in.Bool("previous_dvt_pe")},
					{"surgery_fracture_1mo", 1, in.Bool("surgery_fracture_1mo")},
					{"active_malignancy", 1, in.Bool("active_malignancy")},
					{"unilateral_limb_pain", 1, in.Bool("unilateral_limb_pain")},
					{"hemoptysis", 1, in.Bool("hemoptysis")},
					{"heart_rate_75_94", 1, hr >= 75 && hr < 95},
					{"heart_rate_ge_95", 2, hr >= 95},
					{"pain_palpation_edema", 1, in.Bool("pain_palpation_edema")},
				})
				r := res("geneva_simplified", "Simplified Geneva score for pulmonary embolism", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{2, 5}, "low", "intermediate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "pesi",
			Label: "Pulmonary Embolism Severity Index",
			Inputs: []calc.Field{
				req("age_years"), req("sex"), req("heart_rate_bpm"), req("sbp_mm_hg"),
				req("resp_rate"), req("temp_celsius"), req("sao2_percent"),
				opt("cancer"), opt("heart_failure"), opt("chronic_lung_disease"),
				opt("altered_mental_status"),
			},
			Formula: "age in years + male +10 + cancer +30 + heart failure +10 + chronic lung disease +10 + HR>=110 +20 + SBP<100 +30 + RR>=30 +20 + temp<36 +20 + altered mental status +60 + SaO2<90 +20",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "heart_rate_bpm", "sbp_mm_hg", "resp_rate", "temp_celsius", "sao2_percent")
				if !ok {
					return nil
				}
				sex, ok := in.String("sex")
				if !ok {
					return nil
				}
				age, hr, sbp, rr, temp, sao2 := v[0], v[1], v[2], v[3], v[4], v[5]
				total := age
				total += pts(sex == "male" || sex == "m", 10)
				total += pts(in.Bool("cancer"), 30)
				total += pts(in.Bool("heart_failure"), 10)
				total += pts(in.Bool("chronic_lung_disease"), 10)
				total += pts(hr >= 110, 20)
				total += pts(sbp < 100, 30)
				total += pts(rr >= 30, 20)
				total += pts(temp < 36, 20)
				total += pts(in.Bool("altered_mental_status"), 60)
				total += pts(sao2 < 90, 20)
				r := res("pesi", "Pulmonary Embolism Severity Index", total, "points", 0)
				r.Notes = append(r.Notes, "class: "+bandOf(total, []float64{66, 86, 106, 126}, "I", "II", "III", "IV", "V"))
				return r
			},
		},
		{
			ID:    "spesi",
			Label: "Simplified PESI",
			Inputs: []calc.Field{
				req("age_years"), req("heart_rate_bpm"), req("sbp_mm_hg"), req("sao2_percent"),
				opt("cancer"), opt("chronic_cardiopulm"),
			},
			Formula: "age>80 +1; cancer +1; chronic cardiopulmonary disease +1; HR>=110 +1; SBP<100 +1; SaO2<90 +1",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "heart_rate_bpm", "sbp_mm_hg", "sao2_percent")
				if !ok {
					return nil
				}
				age, hr, sbp, sao2 := v[0], v[1], v[2], v[3]
				total, fired := tally([]criterion{
					{"age_gt_80", 1, age > 80},
					{"cancer", 1, in.Bool("cancer")},
					{"chronic_cardiopulm", 1, in.Bool("chronic_cardiopulm")},
					{"heart_rate_ge_110", 1, hr >= 110},
					{"sbp_lt_100", 1, sbp < 100},
					{"sao2_lt_90", 1, sao2 < 90},
				})
				r := res("spesi", "Simplified PESI", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{1}, "low", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "curb65",
			Label: "CURB-65 pneumonia severity score",
			Inputs: []calc.Field{
				req("age_years"), req("bun_mg_dl"), req("resp_rate"), req("sbp_mm_hg"),
				opt("dbp_mm_hg"), opt("confusion"),
			},
			Formula: "confusion +1; BUN>19 mg/dL +1; RR>=30 +1; SBP<90 or DBP<=60 +1; age>=65 +1",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "bun_mg_dl", "resp_rate", "sbp_mm_hg")
				if !ok {
					return nil
				}
				age, bun, rr, sbp := v[0], v[1], v[2], v[3]
				dbp, hasDBP := in.Number("dbp_mm_hg")
				total, fired := tally([]criterion{
					{"confusion", 1, in.Bool("confusion")},
					{"bun_gt_19", 1, bun > 19},
					{"resp_rate_ge_30", 1, rr >= 30},
					{"hypotension", 1, sbp < 90 || (hasDBP && dbp <= 60)},
					{"age_ge_65", 1, age >= 65},
				})
				r := res("curb65", "CURB-65 pneumonia severity score", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{2, 3}, "low", "moderate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "crb65",
			Label: "CRB-65 pneumonia severity score",
			Inputs: []calc.Field{
				req("age_years"), req("resp_rate"), req("sbp_mm_hg"),
				opt("dbp_mm_hg"), opt("confusion"),
			},
			Formula: "confusion +1; RR>=30 +1; SBP<90 or DBP<=60 +1; age>=65 +1",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "resp_rate", "sbp_mm_hg")
				if !ok {
					return nil
				}
				age, rr, sbp := v[0], v[1], v[2]
				dbp, hasDBP := in.Number("dbp_mm_hg")
				total, fired := tally([]criterion{
					{"confusion", 1, in.Bool("confusion")},
					{"resp_rate_ge_30", 1, rr >= 30},
					{"hypotension", 1, sbp < 90 || (hasDBP && dbp <= 60)},
					{"age_ge_65", 1, age >= 65},
				})
				r := res("crb65", "CRB-65 pneumonia severity score", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{1, 3}, "low", "intermediate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "psi_port",
			Label: "Pneumonia Severity Index (PORT)",
			Inputs: []calc.Field{
				req("age_years"), req("sex"), opt("nursing_home_resident"),
				opt("neoplastic_disease"), opt("liver_disease"), opt("heart_failure"),
				opt("cerebrovascular_disease"), opt("renal_disease"),
				opt("altered_mental_status"), opt("resp_rate"), opt("sbp_mm_hg"),
				opt("temp_celsius"), opt("heart_rate_bpm"), opt("ph_arterial"),
				opt("bun_mg_dl"), opt("sodium_meq_l"), opt("glucose_mg_dl"),
				opt("hematocrit_percent"), opt("pao2_mm_hg"), opt("pleural_effusion"),
			},
			Formula: "age (women -10) + nursing home +10 + comorbidity and exam points + lab/imaging points; class II-V by 70/90/130 cuts",
			Run: func(in calc.Inputs) *calc.Result {
				age, ok := in.Number("age_years")
				if !ok {
					return nil
				}
				sex, ok := in.String("sex")
				if !ok {
					return nil
				}
				total := age
				if sex == "female" || sex == "f" {
					total -= 10
				}
				total += pts(in.Bool("nursing_home_resident"), 10)
				total += pts(in.Bool("neoplastic_disease"), 30)
				total += pts(in.Bool("liver_disease"), 20)
				total += pts(in.Bool("heart_failure"), 10)
				total += pts(in.Bool("cerebrovascular_disease"), 10)
				total += pts(in.Bool("renal_disease"), 10)
				total += pts(in.Bool("altered_mental_status"), 20)
				total += pts(in.Bool("pleural_effusion"), 10)
				if rr, ok := in.Number("resp_rate"); ok {
					total += pts(rr >= 30, 20)
				}
				if sbp, ok := in.Number("sbp_mm_hg"); ok {
					total += pts(sbp < 90, 20)
				}
				if temp, ok := in.Number("temp_celsius"); ok {
					total += pts(temp < 35 || temp >= 40, 15)
				}
				if hr, ok := in.Number("heart_rate_bpm"); ok {
					total += pts(hr >= 125, 10)
				}
				if ph, ok := in.Number("ph_arterial"); ok {
					total += pts(ph < 7.35, 30)
				}
				if bun, ok := in.Number("bun_mg_dl"); ok {
					total += pts(bun >= 30, 20)
				}
				if na, ok := in.Number("sodium_meq_l"); ok {
					total += pts(na < 130, 20)
				}
				if glu, ok := in.Number("glucose_mg_dl"); ok {
					total += pts(glu >= 250, 10)
				}
				if hct, ok := in.Number("hematocrit_percent"); ok {
					total += pts(hct < 30, 10)
				}
				if pao2, ok := in.Number("pao2_mm_hg"); ok {
					total += pts(pao2 < 60, 10)
				}
				r := res("psi_port", "Pneumonia Severity Index (PORT)", total, "points", 0)
				r.Notes = append(r.Notes, "class: "+bandOf(total, []float64{51, 71, 91, 131}, "I", "II", "III", "IV", "V"))
				return r
			},
		},
		{
			ID:    "murray_lis",
			Label: "Murray lung injury score",
			Inputs: []calc.Field{
				opt("cxr_quadrants"), opt("pao2_mm_hg"), opt("fio2_percent"),
				opt("peep_cm_h2o"), opt("compliance_ml_cm_h2o"),
			},
			Formula: "average of available component scores (chest x-ray, hypoxemia, PEEP, compliance), each banded 0-4",
			Run: func(in calc.Inputs) *calc.Result {
				var sum, n float64
				if q, ok := in.Number("cxr_quadrants"); ok {
					sum += clamp(q, 0, 4)
					n++
				}
				if pao2, ok := in.Number("pao2_mm_hg"); ok {
					if fio2, ok := in.Number("fio2_percent"); ok && fio2 > 0 {
						pf := pao2 / (fio2 / 100)
						switch {
						case pf >= 300:
							// 0 points
						case pf >= 225:
							sum++
						case pf >= 175:
							sum += 2
						case pf >= 100:
							sum += 3
						default:
							sum += 4
						}
						n++
					}
				}
				if peep, ok := in.Number("peep_cm_h2o"); ok {
					switch {
					case peep <= 5:
					case peep <= 8:
						sum++
					case peep <= 11:
						sum += 2
					case peep <= 14:
						sum += 3
					default:
						sum += 4
					}
					n++
				}
				if comp, ok := in.Number("compliance_ml_cm_h2o"); ok {
					switch {
					case comp >= 80:
					case comp >= 60:
						sum++
					case comp >= 40:
						sum += 2
					case comp >= 20:
						sum += 3
					default:
						sum += 4
					}
					n++
				}
				if n == 0 {
					return nil
				}
				score := sum / n
				r := res("murray_lis", "Murray lung injury score", score, "points", 2)
				switch {
				case score == 0:
					r.Notes = append(r.Notes, "no lung injury")
				case score > 2.5:
					r.Notes = append(r.Notes, "severe lung injury (ARDS)")
				default:
					r.Notes = append(r.Notes, "mild to moderate lung injury")
				}
				r.Extra = map[string]any{"components_used": n}
				return r
			},
		},
		{
			ID:    "hestia",
			Label: "Hestia criteria for outpatient PE treatment",
			Inputs: []calc.Field{
				opt("hemodynamic_instability"), opt("thrombolysis_needed"),
				opt("active_bleeding"), opt("oxygen_needed_24h"),
				opt("pe_on_anticoagulation"), opt("severe_pain_iv_needed"),
				opt("medical_social_reason"), opt("creatinine_clearance_lt_30"),
				opt("severe_liver_impairment"), opt("pregnancy"),
				opt("heparin_induced_thrombocytopenia"),
			},
			Formula: "any positive criterion excludes outpatient management; score is the count of failed criteria",
			Run: func(in calc.Inputs) *calc.Result {
				total, fired := tally([]criterion{
					{"hemodynamic_instability", 1, in.Bool("hemodynamic_instability")},
					{"thrombolysis_needed", 1, in.Bool("thrombolysis_needed")},
					{"active_bleeding", 1, in.Bool("active_bleeding")},
					{"oxygen_needed_24h", 1, in.Bool("oxygen_needed_24h")},
					{"pe_on_anticoagulation", 1, in.Bool("pe_on_anticoagulation")},
					{"severe_pain_iv_needed", 1, in.Bool("severe_pain_iv_needed")},
					{"medical_social_reason", 1, in.Bool("medical_social_reason")},
					{"creatinine_clearance_lt_30", 1, in.Bool("creatinine_clearance_lt_30")},
					{"severe_liver_impairment", 1, in.Bool("severe_liver_impairment")},
					{"pregnancy", 1, in.Bool("pregnancy")},
					{"heparin_induced_thrombocytopenia", 1, in.Bool("heparin_induced_thrombocytopenia")},
				})
				r := res("hestia", "Hestia criteria for outpatient PE treatment", total, "criteria", 0)
				if total == 0 {
					r.Notes = append(r.Notes, "eligible for outpatient management")
				} else {
					r.Notes = append(r.Notes, "not eligible for outpatient management")
				}
				r.Extra = map[string]any{"failed_criteria": fired}
				return r
			},
		},
		{
			ID:    "bode",
			Label: "BODE index for COPD survival",
			Inputs: []calc.Field{
				req("bmi"), req("fev1_percent"), req("mmrc_dyspnea"), req("walk_distance_m"),
			},
			Formula: "BMI<=21 +1; FEV1% 50-64 +1, 36-49 +2, <=35 +3; mMRC 2 +1, 3 +2, 4 +3; 6MWD 250-349 +1, 150-249 +2, <=149 +3",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "bmi", "fev1_percent", "mmrc_dyspnea", "walk_distance_m")
				if !ok {
					return nil
				}
				bmi, fev1, mmrc, walk := v[0], v[1], v[2], v[3]
				var total float64
				total += pts(bmi <= 21, 1)
				switch {
				case fev1 >= 65:
				case fev1 >= 50:
					total++
				case fev1 >= 36:
					total += 2
				default:
					total += 3
				}
				switch {
				case mmrc <= 1:
				case mmrc == 2:
					total++
				case mmrc == 3:
					total += 2
				default:
					total += 3
				}
				switch {
				case walk >= 350:
				case walk >= 250:
					total++
				case walk >= 150:
					total += 2
				default:
					total += 3
				}
				r := res("bode", "BODE index for COPD survival", total, "points", 0)
				r.Notes = append(r.Notes, "quartile: "+bandOf(total, []float64{3, 5, 7}, "1", "2", "3", "4"))
				return r
			},
		},
		{
			ID:    "lights_criteria",
			Label: "Light's criteria for pleural effusion",
			Inputs: []calc.Field{
				req("pleural_protein_g_dl"), req("serum_protein_g_dl"),
				req("pleural_ldh_u_l"), req("serum_ldh_u_l"),
				opt("serum_ldh_upper_normal_u_l"),
			},
			Formula: "exudate if any of: pleural/serum protein ratio > 0.5, pleural/serum LDH ratio > 0.6, pleural LDH > 2/3 of upper normal serum LDH",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "pleural_protein_g_dl", "serum_protein_g_dl", "pleural_ldh_u_l", "serum_ldh_u_l")
				if !ok {
					return nil
				}
				if v[1] <= 0 || v[3] <= 0 {
					return nil
				}
				proteinRatio := v[0] / v[1]
				ldhRatio := v[2] / v[3]
				upperNormal := 222.0
				if u, ok := in.Number("serum_ldh_upper_normal_u_l"); ok && u > 0 {
					upperNormal = u
				}
				total, fired := tally([]criterion{
					{"protein_ratio_gt_0_5", 1, proteinRatio > 0.5},
					{"ldh_ratio_gt_0_6", 1, ldhRatio > 0.6},
					{"pleural_ldh_gt_two_thirds_upper_normal", 1, v[2] > upperNormal*2/3},
				})
				r := res("lights_criteria", "Light's criteria for pleural effusion", total, "criteria", 0)
				if total > 0 {
					r.Notes = append(r.Notes, "exudate")
				} else {
					r.Notes = append(r.Notes, "transudate")
				}
				r.Extra = map[string]any{
					"criteria":      fired,
					"protein_ratio": proteinRatio,
					"ldh_ratio":     ldhRatio,
				}
				return r
			},
		},
	}
}
