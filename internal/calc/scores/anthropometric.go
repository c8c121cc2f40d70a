package scores

import (
	"math"

	"github.com/medcalc/medcalc/internal/calc"
)

func anthropometricDefs() []calc.Definition {
	return []calc.Definition{
		{
			ID:    "bmi",
			Label: "Body mass index",
			Inputs: []calc.Field{
				req("weight_kg"), req("height_cm"),
			},
			Formula: "weight (kg) / height (m)^2",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "weight_kg", "height_cm")
				if !ok || v[1] <= 0 {
					return nil
				}
				m := v[1] / 100
				bmi := v[0] / (m * m)
				r := res("bmi", "Body mass index", bmi, "kg/m2", 1)
				r.Notes = append(r.Notes, "category: "+bandOf(bmi, []float64{18.5, 25, 30}, "underweight", "normal", "overweight", "obese"))
				return r
			},
		},
		{
			ID:    "bsa_dubois",
			Label: "Body surface area (Du Bois)",
			Inputs: []calc.Field{
				req("weight_kg"), req("height_cm"),
			},
			Formula: "0.007184 x weight^0.425 x height^0.725",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "weight_kg", "height_cm")
				if !ok || v[0] <= 0 || v[1] <= 0 {
					return nil
				}
				bsa := 0.007184 * math.Pow(v[0], 0.425) * math.Pow(v[1], 0.725)
				return res("bsa_dubois", "Body surface area (Du Bois)", bsa, "m2", 2)
			},
		},
		{
			ID:    "bsa_mosteller",
			Label: "Body surface area (Mosteller)",
			Inputs: []calc.Field{
				req("weight_kg"), req("height_cm"),
			},
			Formula: "sqrt(height x weight / 3600)",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "weight_kg", "height_cm")
				if !ok || v[0] <= 0 || v[1] <= 0 {
					return nil
				}
				bsa := math.Sqrt(v[1] * v[0] / 3600)
				return res("bsa_mosteller", "Body surface area (Mosteller)", bsa, "m2", 2)
			},
		},
		{
			ID:    "ibw_devine",
			Label: "Ideal body weight (Devine)",
			Inputs: []calc.Field{
				req("height_cm"), req("sex"),
			},
			Formula: "male 50 + 2.3 x inches over 60; female 45.5 + 2.3 x inches over 60",
			Run: func(in calc.Inputs) *calc.Result {
				height, ok := in.Number("height_cm")
				if !ok || height <= 0 {
					return nil
				}
				sex, ok := in.String("sex")
				if !ok {
					return nil
				}
				return res("ibw_devine", "Ideal body weight (Devine)", ibwDevine(height, sex), "kg", 1)
			},
		},
		{
			ID:    "adjusted_body_weight",
			Label: "Adjusted body weight for dosing",
			Inputs: []calc.Field{
				req("weight_kg"), req("height_cm"), req("sex"),
			},
			Formula: "IBW + 0.4 x (actual - IBW) when actual exceeds IBW, otherwise actual weight",
			Run: func(in calc.Inputs) *calc.Result {
				weight, ok := in.Number("weight_kg")
				if !ok || weight <= 0 {
					return nil
				}
				height, ok := in.Number("height_cm")
				if !ok || height <= 0 {
					return nil
				}
				sex, ok := in.String("sex")
				if !ok {
					return nil
				}
				ibw := ibwDevine(height, sex)
				adjusted := weight
				if weight > ibw {
					adjusted = ibw + 0.4*(weight-ibw)
				}
				r := res("adjusted_body_weight", "Adjusted body weight for dosing", adjusted, "kg", 1)
				r.Extra = map[string]any{"ideal_body_weight_kg": calc.RoundTo(ibw, 1)}
				return r
			},
		},
		{
			ID:    "homa_ir",
			Label: "HOMA-IR insulin resistance index",
			Inputs: []calc.Field{
				req("fasting_glucose_mg_dl"), req("fasting_insulin_uu_ml"),
			},
			Formula: "glucose (mg/dL) x insulin (uU/mL) / 405",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "fasting_glucose_mg_dl", "fasting_insulin_uu_ml")
				if !ok {
					return nil
				}
				homa := v[0] * v[1] / 405
				r := res("homa_ir", "HOMA-IR insulin resistance index", homa, "", 2)
				if homa > 2.9 {
					r.Notes = append(r.Notes, "suggests significant insulin resistance")
				}
				return r
			},
		},
		{
			ID:    "ldl_friedewald",
			Label: "LDL cholesterol (Friedewald)",
			Inputs: []calc.Field{
				req("total_cholesterol_mg_dl"), req("hdl_mg_dl"), req("triglycerides_mg_dl"),
			},
			Formula: "total - HDL - triglycerides/5; invalid when triglycerides >=400 mg/dL",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "total_cholesterol_mg_dl", "hdl_mg_dl", "triglycerides_mg_dl")
				if !ok {
					return nil
				}
				if v[2] >= 400 {
					return &calc.Result{
						ID:    "ldl_friedewald",
						Label: "LDL cholesterol (Friedewald)",
						Unit:  "mg/dL",
						Notes: []string{"triglycerides >=400 mg/dL; Friedewald estimate invalid, direct LDL measurement required"},
					}
				}
				ldl := v[0] - v[1] - v[2]/5
				return res("ldl_friedewald", "LDL cholesterol (Friedewald)", ldl, "mg/dL", 0)
			},
		},
		{
			ID:    "a1c_to_avg_glucose",
			Label: "Estimated average glucose from HbA1c",
			Inputs: []calc.Field{
				req("hba1c_percent"),
			},
			Formula: "28.7 x A1c - 46.7 (ADAG equation)",
			Run: func(in calc.Inputs) *calc.Result {
				a1c, ok := in.Number("hba1c_percent")
				if !ok || a1c <= 0 {
					return nil
				}
				eag := 28.7*a1c - 46.7
				return res("a1c_to_avg_glucose", "Estimated average glucose from HbA1c", eag, "mg/dL", 0)
			},
		},
		{
			ID:    "parkland",
			Label: "Parkland burn resuscitation formula",
			Inputs: []calc.Field{
				req("weight_kg"), req("tbsa_burn_percent"),
			},
			Formula: "4 mL x weight (kg) x %TBSA over 24h; half in first 8h",
			Run: func(in calc.Inputs) *calc.Result {
				v, ok := nums(in, "weight_kg", "tbsa_burn_percent")
				if !ok || v[0] <= 0 {
					return nil
				}
				tbsa := clamp(v[1], 0, 100)
				total := 4 * v[0] * tbsa
				r := res("parkland", "Parkland burn resuscitation formula", total, "mL/24h", 0)
				r.Extra = map[string]any{
					"first_8h_ml": calc.RoundTo(total/2, 0),
					"next_16h_ml": calc.RoundTo(total/2, 0),
				}
				return r
			},
		},
		{
			ID:    "holliday_segar",
			Label: "Holliday-Segar maintenance fluids",
			Inputs: []calc.Field{
				req("weight_kg"),
			},
			Formula: "100 mL/kg first 10kg + 50 mL/kg next 10kg + 20 mL/kg thereafter, per 24h",
			Run: func(in calc.Inputs) *calc.Result {
				weight, ok := in.Number("weight_kg")
				if !ok || weight <= 0 {
					return nil
				}
				var total float64
				switch {
				case weight <= 10:
					total = 100 * weight
				case weight <= 20:
					total = 1000 + 50*(weight-10)
				default:
					total = 1500 + 20*(weight-20)
				}
				r := res("holliday_segar", "Holliday-Segar maintenance fluids", total, "mL/24h", 0)
				r.Extra = map[string]any{"rate_ml_hr": calc.RoundTo(total/24, 1)}
				return r
			},
		},
	}
}

// ibwDevine is the Devine ideal body weight in kg; heights below 60
// inches are floored at the base weight rather than extrapolated.
func ibwDevine(heightCm float64, sex string) float64 {
	base := 45.5
	if sex == "male" || sex == "m" {
		base = 50
	}
	inchesOver := heightCm/2.54 - 60
	if inchesOver < 0 {
		inchesOver = 0
	}
	return base + 2.3*inchesOver
}
