package scores

import "github.com/medcalc/medcalc/internal/calc"

func obstetricsDefs() []calc.Definition {
	return []calc.Definition{
		{
			ID:    "bishop",
			Label: "Bishop score for cervical favorability",
			Inputs: []calc.Field{
				req("dilation_cm"), req("effacement_percent"), req("station"),
				req("consistency"), req("position"),
			},
			Formula: "dilation: closed 0, 1-2cm +1, 3-4cm +2, >=5cm +3; effacement: 0-30% 0, 40-50% +1, 60-70% +2, >=80% +3; station: -3 0, -2 +1, -1/0 +2, +1/+2 +3; consistency: firm 0, medium +1, soft +2; position: posterior 0, mid +1, anterior +2",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "dilation_cm", "effacement_percent", "station")
				if !ok {
					return nil
				}
				consistency, ok := in.String("consistency")
				if !ok {
					return nil
				}
				position, ok := in.String("position")
				if !ok {
					return nil
				}
				dilation, effacement, station := v[0], v[1], v[2]
				var total float64
				switch {
				case dilation >= 5:
					total += 3
				case dilation >= 3:
					total += 2
				case dilation >= 1:
					total++
				}
				switch {
				case effacement >= 80:
					total += 3
				case effacement >= 60:
					total += 2
				case effacement >= 40:
					total++
				}
				switch {
				case station >= 1:
					total += 3
				case station >= -1:
					total += 2
				case station >= -2:
					total++
				}
				switch consistency {
				case "soft":
					total += 2
				case "medium":
					total++
				}
				switch position {
				case "anterior":
					total += 2
				case "mid", "middle":
					total++
				}
				r := res("bishop", "Bishop score for cervical favorability", total, "points", 0)
				if total >= 8 {
					r.Notes = append(r.Notes, "favorable cervix; induction likely to succeed")
				} else if total <= 5 {
					r.Notes = append(r.Notes, "unfavorable cervix; cervical ripening may be needed")
				}
				return r
			},
		},
		{
			ID:    "apgar",
			Label: "Apgar newborn assessment",
			Inputs: []calc.Field{
				req("appearance"), req("pulse"), req("grimace"), req("activity"),
				req("respiration"),
			},
			Formula: "sum of five components each scored 0-2: appearance, pulse, grimace, activity, respiration",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "appearance", "pulse", "grimace", "activity", "respiration")
				if !ok {
					return nil
				}
				var total float64
				for _, c := range v {
					total += clamp(c, 0, 2)
				}
				r := res("apgar", "Apgar newborn assessment", total, "points", 0)
				r.Notes = append(r.Notes, "condition: "+bandOf(total, []float64{4, 7}, "critically low", "moderately abnormal", "reassuring"))
				return r
			},
		},
	}
}
