package scores

import "github.com/medcalc/medcalc/internal/calc"

func gastroDefs() []calc.Definition {
	return []calc.Definition{
		{
			ID:    "glasgow_blatchford",
			Label: "Glasgow-Blatchford bleeding score",
			Inputs: []calc.Field{
				req("bun_mg_dl"), req("hemoglobin_g_dl"), req("sbp_mm_hg"), req("sex"),
				opt("heart_rate_bpm"), opt("melena"), opt("syncope"),
				opt("hepatic_disease"), opt("cardiac_failure"),
			},
			Formula: "BUN 18.2-22.3 +2, 22.4-28 +3, 28.1-70 +4, >70 +6; Hb male 12-13 +1, 10-11.9 +3, <10 +6 / female 10-12 +1, <10 +6; SBP 100-109 +1, 90-99 +2, <90 +3; HR>=100 +1; melena +1; syncope +2; hepatic disease +2; cardiac failure +2",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "bun_mg_dl", "hemoglobin_g_dl", "sbp_mm_hg")
				if !ok {
					return nil
				}
				sex, ok := in.String("sex")
				if !ok {
					return nil
				}
				bun, hb, sbp := v[0], v[1], v[2]
				var total float64
				switch {
				case bun > 70:
					total += 6
				case bun > 28:
					total += 4
				case bun > 22.3:
					total += 3
				case bun >= 18.2:
					total += 2
				}
				if sex == "male" || sex == "m" {
					switch {
					case hb < 10:
						total += 6
					case hb < 12:
						total += 3
					case hb < 13:
						total++
					}
				} else {
					switch {
					case hb < 10:
						total += 6
					case hb < 12:
						total++
					}
				}
				switch {
				case sbp < 90:
					total += 3
				case sbp < 100:
					total += 2
				case sbp < 110:
					total++
				}
				if hr, ok := in.Number("heart_rate_bpm"); ok && hr >= 100 {
					total++
				}
				total += pts(in.Bool("melena"), 1)
				total += pts(in.Bool("syncope"), 2)
				total += pts(in.Bool("hepatic_disease"), 2)
				total += pts(in.Bool("cardiac_failure"), 2)
				r := res("glasgow_blatchford", "Glasgow-Blatchford bleeding score", total, "points", 0)
				if total == 0 {
					r.Notes = append(r.Notes, "low risk; outpatient management may be considered")
				} else {
					r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{1, 6}, "very low", "low", "high"))
				}
				return r
			},
		},
		{
			ID:    "rockall",
			Label: "Rockall score for upper GI bleeding (pre-endoscopy)",
			Inputs: []calc.Field{
				req("age_years"), req("sbp_mm_hg"), req("heart_rate_bpm"),
				opt("comorbidity"),
			},
			Formula: "age 60-79 +1, >=80 +2; shock: HR>=100 with SBP>=100 +1, SBP<100 +2; comorbidity: cardiac/major +2, renal/liver failure or metastatic cancer +3",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "sbp_mm_hg", "heart_rate_bpm")
				if !ok {
					return nil
				}
				age, sbp, hr := v[0], v[1], v[2]
				var total float64
				switch {
				case age >= 80:
					total += 2
				case age >= 60:
					total++
				}
				switch {
				case sbp < 100:
					total += 2
				case hr >= 100:
					total++
				}
				if comorbidity, ok := in.String("comorbidity"); ok {
					switch comorbidity {
					case "cardiac", "major":
						total += 2
					case "renal_failure", "liver_failure", "metastatic_cancer":
						total += 3
					}
				}
				r := res("rockall", "Rockall score for upper GI bleeding (pre-endoscopy)", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{1, 4}, "low", "intermediate", "high"))
				return r
			},
		},
		{
			ID:    "aims65",
			Label: "AIMS65 score for upper GI bleeding",
			Inputs: []calc.Field{
				req("albumin_g_dl"), req("inr_ratio"), req("age_years"), req("sbp_mm_hg"),
				opt("altered_mental_status"),
			},
			Formula: "one point each: albumin <3.0 g/dL, INR >1.5, altered mental status, SBP <=90 mmHg, age >=65",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "albumin_g_dl", "inr_ratio", "age_years", "sbp_mm_hg")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"albumin_lt_3", 1, v[0] < 3},
					{"inr_gt_1_5", 1, v[1] > 1.5},
					{"altered_mental_status", 1, in.Bool("altered_mental_status")},
					{"sbp_le_90", 1, v[3] <= 90},
					{"age_ge_65", 1, v[2] >= 65},
				})
				r := res("aims65", "AIMS65 score for upper GI bleeding", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{2}, "low", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
	}
}
