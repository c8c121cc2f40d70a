package scores

import "github.com/medcalc/medcalc/internal/calc"

func behavioralDefs() []calc.Definition {
	return []calc.Definition{
		{
			ID:    "cage",
			Label: "CAGE questionnaire for alcohol use",
			Inputs: []calc.Field{
				opt("cut_down"), opt("annoyed"), opt("guilty"), opt("eye_opener"),
			},
			Formula: "one point per affirmative answer: felt need to cut down, annoyed by criticism, guilty about drinking, morning eye-opener",
			Run: func(in calc.Inputs) *calc.Result {
				total, fired := tally([]criterion{
					{"cut_down", 1, in.Bool("cut_down")},
					{"annoyed", 1, in.Bool("annoyed")},
					{"guilty", 1, in.Bool("guilty")},
					{"eye_opener", 1, in.Bool("eye_opener")},
				})
				r := res("cage", "CAGE questionnaire for alcohol use", total, "points", 0)
				if total >= 2 {
					r.Notes = append(r.Notes, "clinically significant; further evaluation warranted")
				}
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "phq9",
			Label: "PHQ-9 depression severity",
			Inputs: []calc.Field{
				req("q1"), req("q2"), req("q3"), req("q4"), req("q5"),
				req("q6"), req("q7"), req("q8"), req("q9"),
			},
			Formula: "sum of nine items each scored 0-3",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9")
				if !ok {
					return nil
				}
				var total float64
				for _, item := range v {
					total += clamp(item, 0, 3)
				}
				r := res("phq9", "PHQ-9 depression severity", total, "points", 0)
				r.Notes = append(r.Notes, "severity: "+bandOf(total, []float64{5, 10, 15, 20}, "minimal", "mild", "moderate", "moderately severe", "severe"))
				if v[8] > 0 {
					r.Notes = append(r.Notes, "positive item 9; assess suicide risk")
				}
				return r
			},
		},
		{
			ID:    "gad7",
			Label: "GAD-7 anxiety severity",
			Inputs: []calc.Field{
				req("q1"), req("q2"), req("q3"), req("q4"), req("q5"), req("q6"), req("q7"),
			},
			Formula: "sum of seven items each scored 0-3",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "q1", "q2", "q3", "q4", "q5", "q6", "q7")
				if !ok {
					return nil
				}
				var total float64
				for _, item := range v {
					total += clamp(item, 0, 3)
				}
				r := res("gad7", "GAD-7 anxiety severity", total, "points", 0)
				r.Notes = append(r.Notes, "severity: "+bandOf(total, []float64{5, 10, 15}, "minimal", "mild", "moderate", "severe"))
				return r
			},
		},
		{
			ID:    "stop_bang",
			Label: "STOP-BANG obstructive sleep apnea risk",
			Inputs: []calc.Field{
				req("age_years"), req("bmi_kg_m2"), req("neck_circumference_cm"), req("sex"),
				opt("snoring"), opt("tiredness"), opt("observed_apnea"), opt("hypertension"),
			},
			Formula: "one point each: snoring, tiredness, observed apnea, hypertension, BMI>35, age>50, neck circumference>40cm, male sex",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "age_years", "bmi_kg_m2", "neck_circumference_cm")
				if !ok {
					return nil
				}
				sex, ok := in.String("sex")
				if !ok {
					return nil
				}
				total, fired := tally([]criterion{
					{"snoring", 1, in.Bool("snoring")},
					{"tiredness", 1, in.Bool("tiredness")},
					{"observed_apnea", 1, in.Bool("observed_apnea")},
					{"hypertension", 1, in.Bool("hypertension")},
					{"bmi_gt_35", 1, v[1] > 35},
					{"age_gt_50", 1, v[0] > 50},
					{"neck_gt_40cm", 1, v[2] > 40},
					{"male_sex", 1, sex == "male" || sex == "m"},
				})
				r := res("stop_bang", "STOP-BANG obstructive sleep apnea risk", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{3, 5}, "low", "intermediate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
		{
			ID:    "morse_fall",
			Label: "Morse fall scale",
			Inputs: []calc.Field{
				opt("fall_history"), opt("secondary_diagnosis"), opt("ambulatory_aid"),
				opt("iv_access"), opt("gait"), opt("overestimates_ability"),
			},
			Formula: "fall history +25; secondary diagnosis +15; ambulatory aid none 0 / crutches or cane 15 / furniture 30; IV access +20; gait normal 0 / weak 10 / impaired 20; forgets limitations +15",
			Run: func(in calc.Inputs) *calc.Result {
				total, fired := tally([]criterion{
					{"fall_history", 25, in.Bool("fall_history")},
					{"secondary_diagnosis", 15, in.Bool("secondary_diagnosis")},
					{"iv_access", 20, in.Bool("iv_access")},
					{"overestimates_ability", 15, in.Bool("overestimates_ability")},
				})
				if aid, ok := in.String("ambulatory_aid"); ok {
					switch aid {
					case "crutches", "cane", "walker":
						total += 15
						fired = append(fired, "ambulatory_aid")
					case "furniture":
						total += 30
						fired = append(fired, "ambulatory_aid")
					}
				}
				if gait, ok := in.String("gait"); ok {
					switch gait {
					case "weak":
						total += 10
						fired = append(fired, "gait")
					case "impaired":
						total += 20
						fired = append(fired, "gait")
					}
				}
				r := res("morse_fall", "Morse fall scale", total, "points", 0)
				r.Notes = append(r.Notes, "risk: "+bandOf(total, []float64{25, 45}, "low", "moderate", "high"))
				r.Extra = map[string]any{"criteria": fired}
				return r
			},
		},
	}
}
