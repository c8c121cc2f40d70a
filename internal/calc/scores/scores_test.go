package scores

import (
	"math"
	"strings"
	"testing"

	"github.com/medcalc/medcalc/internal/calc"
)

func library(t *testing.T) *calc.Registry {
	t.Helper()
	reg := calc.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register library: %v", err)
	}
	return reg
}

// runCalc normalizes raw input against the definition and runs it, the same
// path the verification runner takes.
func runCalc(t *testing.T, reg *calc.Registry, id string, raw map[string]any) *calc.Result {
	t.Helper()
	def, err := reg.Lookup(id)
	if err != nil {
		t.Fatalf("lookup %s: %v", id, err)
	}
	return def.Run(calc.Normalize(def, raw))
}

func wantValue(t *testing.T, r *calc.Result, want float64) {
	t.Helper()
	if r == nil || r.Value == nil {
		t.Fatal("expected a computed result")
	}
	if math.Abs(*r.Value-want) > 1e-9 {
		t.Errorf("value = %v, want %v", *r.Value, want)
	}
}

func hasNote(r *calc.Result, substr string) bool {
	for _, n := range r.Notes {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}

func TestLibrary_RegistersWithoutDuplicates(t *testing.T) {
	reg := library(t)
	if reg.Len() < 100 {
		t.Errorf("expected at least 100 calculators, got %d", reg.Len())
	}
	for _, def := range All() {
		if def.ID == "" || def.Label == "" || def.Run == nil {
			t.Errorf("incomplete definition: %+v", def.ID)
		}
		if len(def.Inputs) == 0 {
			t.Errorf("%s declares no inputs", def.ID)
		}
	}
}

func TestLibrary_NilOnMissingRequiredInput(t *testing.T) {
	for _, def := range All() {
		required := false
		for _, f := range def.Inputs {
			if f.Required {
				required = true
				break
			}
		}
		if !required {
			continue
		}
		if r := def.Run(calc.Inputs{}); r != nil && r.Value != nil {
			t.Errorf("%s computed a value from empty input", def.ID)
		}
	}
}

func TestLibrary_Deterministic(t *testing.T) {
	reg := library(t)
	raw := map[string]any{
		"age_years": 72.0, "heart_rate_bpm": 110.0,
		"previous_dvt_pe": true, "hemoptysis": true,
	}
	first := runCalc(t, reg, "geneva_revised", raw)
	second := runCalc(t, reg, "geneva_revised", raw)
	if first == nil || second == nil {
		t.Fatal("expected computed results")
	}
	if *first.Value != *second.Value {
		t.Errorf("non-deterministic result: %v vs %v", *first.Value, *second.Value)
	}
}

func TestAaGradient(t *testing.T) {
	reg := library(t)
	r := runCalc(t, reg, "aa_gradient", map[string]any{
		"age_years": 40.0, "fio2_percent": 21.0, "pao2_mm_hg": 95.0, "paco2_mm_hg": 40.0,
	})
	wantValue(t, r, 4.73)

	alveolar, _ := r.Extra["alveolar_po2"].(float64)
	if math.Abs(alveolar-99.73) > 1e-9 {
		t.Errorf("alveolar_po2 = %v, want 99.73", alveolar)
	}
	expected, _ := r.Extra["expected_normal"].(float64)
	if expected != 12.5 {
		t.Errorf("expected_normal = %v, want 12.5", expected)
	}
}

func TestGenevaRevised_FullHit(t *testing.T) {
	reg := library(t)
	r := runCalc(t, reg, "geneva_revised", map[string]any{
		"age_years":            72.0,
		"heart_rate_bpm":       110.0,
		"previous_dvt_pe":      true,
		"active_malignancy":    true,
		"unilateral_limb_pain": true,
		"hemoptysis":           true,
		"pain_palpation_edema": true,
	})
	// 1 + 3 + 2 + 3 + 2 + 4 + 5
	wantValue(t, r, 20)
	if !hasNote(r, "high") {
		t.Errorf("expected high-risk band, notes = %v", r.Notes)
	}
}

func TestGenevaRevised_HeartRateBoundaries(t *testing.T) {
	reg := library(t)
	base := map[string]any{"age_years": 30.0}

	tests := []struct {
		hr   float64
		want float64
	}{
		{74, 0},
		{75, 3},
		{94, 3},
		{95, 5},
	}
	for _, tt := range tests {
		raw := map[string]any{"age_years": base["age_years"], "heart_rate_bpm": tt.hr}
		r := runCalc(t, reg, "geneva_revised", raw)
		wantValue(t, r, tt.want)
	}
}

func TestGenevaRevised_AgeBoundary(t *testing.T) {
	reg := library(t)
	tests := []struct {
		age  float64
		want float64
	}{
		{64, 0},
		{65, 1},
		{66, 1},
	}
	for _, tt := range tests {
		r := runCalc(t, reg, "geneva_revised", map[string]any{
			"age_years": tt.age, "heart_rate_bpm": 60.0,
		})
		wantValue(t, r, tt.want)
	}
}

func TestRanson48h_AllCriteria(t *testing.T) {
	reg := library(t)
	r := runCalc(t, reg, "ranson_48h", map[string]any{
		"hct_fall_percent":      12.0,
		"bun_rise_mg_dl":        6.0,
		"calcium_mg_dl":         7.5,
		"pao2_mm_hg":            55.0,
		"base_deficit_meq_l":    5.0,
		"fluid_sequestration_l": 7.0,
	})
	wantValue(t, r, 6)
	if !hasNote(r, "high") {
		t.Errorf("expected high mortality band, notes = %v", r.Notes)
	}
}

func TestBishop(t *testing.T) {
	reg := library(t)
	r := runCalc(t, reg, "bishop", map[string]any{
		"dilation_cm":        4.0,
		"effacement_percent": 80.0,
		"station":            0.0,
		"consistency":        "soft",
		"position":           "anterior",
	})
	// 2 + 3 + 2 + 2 + 2
	wantValue(t, r, 11)
}

func TestQPitt(t *testing.T) {
	reg := library(t)
	r := runCalc(t, reg, "qpitt", map[string]any{
		"hypothermia":             true,
		"hypotension_or_pressors": true,
		"resp_failure":            true,
		"cardiac_arrest":          true,
		"altered_mental_status":   false,
	})
	wantValue(t, r, 4)
	if !hasNote(r, "high") {
		t.Errorf("expected high risk band, notes = %v", r.Notes)
	}
}

func TestSPESI_AllNegative(t *testing.T) {
	reg := library(t)
	r := runCalc(t, reg, "spesi", map[string]any{
		"age_years":          50.0,
		"cancer":             false,
		"chronic_cardiopulm": false,
		"heart_rate_bpm":     80.0,
		"sbp_mm_hg":          120.0,
		"sao2_percent":       98.0,
	})
	wantValue(t, r, 0)
	if !hasNote(r, "low") {
		t.Errorf("expected low risk band, notes = %v", r.Notes)
	}
}

func TestWellsPE_BandMonotonicity(t *testing.T) {
	reg := library(t)
	flags := []string{
		"clinical_signs_dvt", "pe_most_likely", "immobilization_or_surgery_4wk",
		"previous_dvt_pe", "hemoptysis", "malignancy",
	}

	raw := map[string]any{"heart_rate_bpm": 90.0}
	prev := -1.0
	for _, f := range flags {
		raw[f] = true
		r := runCalc(t, reg, "wells_pe", raw)
		if r == nil || r.Value == nil {
			t.Fatalf("expected result with %s set", f)
		}
		if *r.Value < prev {
			t.Errorf("score decreased after adding %s: %v < %v", f, *r.Value, prev)
		}
		prev = *r.Value
	}
}

func TestLDLFriedewald_HighTriglycerides(t *testing.T) {
	reg := library(t)
	r := runCalc(t, reg, "ldl_friedewald", map[string]any{
		"total_cholesterol_mg_dl": 220.0,
		"hdl_mg_dl":               45.0,
		"triglycerides_mg_dl":     450.0,
	})
	if r == nil {
		t.Fatal("expected a result carrying the invalid-range note")
	}
	if r.Value != nil {
		t.Errorf("expected nil value for TG >= 400, got %v", *r.Value)
	}
	if len(r.Notes) == 0 {
		t.Error("expected a note explaining why the formula does not apply")
	}
}

func TestOASIS_Banding(t *testing.T) {
	reg := library(t)

	// Unremarkable vitals in an elective surgical admission score near zero.
	r := runCalc(t, reg, "oasis", map[string]any{
		"age_years": 22.0, "gcs_total": 15.0, "heart_rate_bpm": 70.0,
		"map_mm_hg": 85.0, "resp_rate": 16.0, "temp_celsius": 36.5,
		"elective_surgery": true,
	})
	wantValue(t, r, 0)
	if !hasNote(r, "low") {
		t.Errorf("expected low severity band, notes = %v", r.Notes)
	}

	// Deranged physiology on the ventilator lands in the top band.
	r = runCalc(t, reg, "oasis", map[string]any{
		"age_years": 80.0, "gcs_total": 6.0, "heart_rate_bpm": 130.0,
		"map_mm_hg": 45.0, "resp_rate": 38.0, "temp_celsius": 32.0,
		"urine_output_ml_day":    400.0,
		"mechanical_ventilation": true,
	})
	// 9 + 10 + 6 + 3 + 6 + 3 + 10 + 9 + 6
	wantValue(t, r, 62)
	if !hasNote(r, "very high") {
		t.Errorf("expected very high severity band, notes = %v", r.Notes)
	}
}

func TestOttawaFoot_Rule(t *testing.T) {
	reg := library(t)

	r := runCalc(t, reg, "ottawa_foot", map[string]any{
		"midfoot_pain":         true,
		"navicular_tenderness": true,
	})
	wantValue(t, r, 1)
	if !hasNote(r, "x-ray indicated") {
		t.Errorf("expected imaging note, notes = %v", r.Notes)
	}

	// Tenderness without midfoot pain does not trigger the rule.
	r = runCalc(t, reg, "ottawa_foot", map[string]any{
		"navicular_tenderness": true,
	})
	if !hasNote(r, "not indicated") {
		t.Errorf("expected no-imaging note, notes = %v", r.Notes)
	}
}

func TestSodiumDeficit(t *testing.T) {
	reg := library(t)
	r := runCalc(t, reg, "sodium_deficit", map[string]any{
		"weight_kg": 70.0, "sodium_meq_l": 120.0, "sex": "male",
	})
	// 0.6 * 70 * (140 - 120)
	wantValue(t, r, 840)
}

func TestEGFRSchwartz(t *testing.T) {
	reg := library(t)
	r := runCalc(t, reg, "egfr_schwartz", map[string]any{
		"height_cm": 120.0, "creatinine_mg_dl": 0.5,
	})
	// 0.413 * 120 / 0.5
	wantValue(t, r, 99.12)
}

func TestMorseFall_Bands(t *testing.T) {
	reg := library(t)

	r := runCalc(t, reg, "morse_fall", map[string]any{
		"fall_history":   true,
		"iv_access":      true,
		"ambulatory_aid": "furniture",
		"gait":           "impaired",
	})
	// 25 + 20 + 30 + 20
	wantValue(t, r, 95)
	if !hasNote(r, "high") {
		t.Errorf("expected high risk band, notes = %v", r.Notes)
	}

	r = runCalc(t, reg, "morse_fall", map[string]any{
		"secondary_diagnosis": true,
		"gait":                "weak",
	})
	wantValue(t, r, 25)
	if !hasNote(r, "moderate") {
		t.Errorf("expected moderate risk band, notes = %v", r.Notes)
	}
}

func TestQTcFramingham(t *testing.T) {
	reg := library(t)
	r := runCalc(t, reg, "qtc_framingham", map[string]any{
		"qt_ms": 400.0, "heart_rate_bpm": 75.0,
	})
	// 400 + 154 * (1 - 0.8)
	wantValue(t, r, 430.8)
}

func TestLightsCriteria(t *testing.T) {
	reg := library(t)

	r := runCalc(t, reg, "lights_criteria", map[string]any{
		"pleural_protein_g_dl": 4.0, "serum_protein_g_dl": 6.0,
		"pleural_ldh_u_l": 250.0, "serum_ldh_u_l": 200.0,
	})
	if !hasNote(r, "exudate") {
		t.Errorf("expected exudate, notes = %v", r.Notes)
	}

	r = runCalc(t, reg, "lights_criteria", map[string]any{
		"pleural_protein_g_dl": 1.0, "serum_protein_g_dl": 7.0,
		"pleural_ldh_u_l": 80.0, "serum_ldh_u_l": 200.0,
		"serum_ldh_upper_normal_u_l": 222.0,
	})
	wantValue(t, r, 0)
	if !hasNote(r, "transudate") {
		t.Errorf("expected transudate, notes = %v", r.Notes)
	}
}

func TestNormalizeAliasesFeedCalculators(t *testing.T) {
	reg := library(t)
	// bmi declared on weight_kg/height_cm; feed pounds and inches.
	r := runCalc(t, reg, "bmi", map[string]any{
		"weight_lb": 154.324,
		"height_in": 68.898,
	})
	if r == nil || r.Value == nil {
		t.Fatal("expected a computed bmi")
	}
	// 70 kg / 1.75m^2
	if math.Abs(*r.Value-22.86) > 0.05 {
		t.Errorf("bmi = %v, want ~22.86", *r.Value)
	}
}
