package calc

import (
	"strconv"
	"strings"
	"unicode"
)

// aliasEntry maps a caller-side field name onto the canonical key, with an
// optional linear unit conversion applied to numeric values.
type aliasEntry struct {
	canonical string
	factor    float64 // 0 means no conversion
	offset    float64
}

// aliases reconciles the field vocabulary different callers use. Canonical
// keys normalize to themselves, which keeps Normalize idempotent.
var aliases = map[string]aliasEntry{
	"age":            {canonical: "age_years"},
	"age_y":          {canonical: "age_years"},
	"hr":             {canonical: "heart_rate_bpm"},
	"heart_rate":     {canonical: "heart_rate_bpm"},
	"pulse":          {canonical: "heart_rate_bpm"},
	"sbp":            {canonical: "sbp_mm_hg"},
	"systolic_bp":    {canonical: "sbp_mm_hg"},
	"systolic":       {canonical: "sbp_mm_hg"},
	"dbp":            {canonical: "dbp_mm_hg"},
	"diastolic_bp":   {canonical: "dbp_mm_hg"},
	"rr":             {canonical: "resp_rate"},
	"respiratory_rate": {canonical: "resp_rate"},
	"temp_c":         {canonical: "temp_celsius"},
	"temperature_c":  {canonical: "temp_celsius"},
	"temp_f":         {canonical: "temp_celsius", factor: 5.0 / 9.0, offset: -32 * 5.0 / 9.0},
	"temperature_f":  {canonical: "temp_celsius", factor: 5.0 / 9.0, offset: -32 * 5.0 / 9.0},
	"spo2":           {canonical: "sao2_percent"},
	"spo2_percent":   {canonical: "sao2_percent"},
	"o2_sat":         {canonical: "sao2_percent"},
	"sao2":           {canonical: "sao2_percent"},
	"fio2":           {canonical: "fio2_percent"},
	"pao2":           {canonical: "pao2_mm_hg"},
	"paco2":          {canonical: "paco2_mm_hg"},
	"weight":         {canonical: "weight_kg"},
	"weight_lb":      {canonical: "weight_kg", factor: 0.45359237},
	"height":         {canonical: "height_cm"},
	"height_in":      {canonical: "height_cm", factor: 2.54},
	"height_m":       {canonical: "height_cm", factor: 100},
	"creatinine":     {canonical: "creatinine_mg_dl"},
	"cr":             {canonical: "creatinine_mg_dl"},
	"creatinine_umol_l": {canonical: "creatinine_mg_dl", factor: 1.0 / 88.4},
	"bilirubin":      {canonical: "bilirubin_mg_dl"},
	"total_bilirubin": {canonical: "bilirubin_mg_dl"},
	"bilirubin_umol_l": {canonical: "bilirubin_mg_dl", factor: 1.0 / 17.1},
	"glucose":        {canonical: "glucose_mg_dl"},
	"glucose_mmol_l": {canonical: "glucose_mg_dl", factor: 18.016},
	"bun":            {canonical: "bun_mg_dl"},
	"bun_mmol_l":     {canonical: "bun_mg_dl", factor: 2.801},
	"urea_mmol_l":    {canonical: "bun_mg_dl", factor: 2.801},
	"sodium":         {canonical: "sodium_meq_l"},
	"na":             {canonical: "sodium_meq_l"},
	"sodium_mmol_l":  {canonical: "sodium_meq_l"},
	"potassium":      {canonical: "potassium_meq_l"},
	"k":              {canonical: "potassium_meq_l"},
	"chloride":       {canonical: "chloride_meq_l"},
	"cl":             {canonical: "chloride_meq_l"},
	"bicarb":         {canonical: "bicarbonate_meq_l"},
	"hco3":           {canonical: "bicarbonate_meq_l"},
	"co2":            {canonical: "bicarbonate_meq_l"},
	"albumin":        {canonical: "albumin_g_dl"},
	"albumin_g_l":    {canonical: "albumin_g_dl", factor: 0.1},
	"calcium":        {canonical: "calcium_mg_dl"},
	"calcium_mmol_l": {canonical: "calcium_mg_dl", factor: 4.008},
	"platelets":      {canonical: "platelets_k_ul"},
	"platelet_count": {canonical: "platelets_k_ul"},
	"hct":            {canonical: "hematocrit_percent"},
	"hematocrit":     {canonical: "hematocrit_percent"},
	"hgb":            {canonical: "hemoglobin_g_dl"},
	"hemoglobin":     {canonical: "hemoglobin_g_dl"},
	"wbc":            {canonical: "wbc_k_ul"},
	"wbc_count":      {canonical: "wbc_k_ul"},
	"inr":            {canonical: "inr_ratio"},
	"ast":            {canonical: "ast_u_l"},
	"alt":            {canonical: "alt_u_l"},
	"ethanol":        {canonical: "ethanol_mg_dl"},
	"gcs":            {canonical: "gcs_total"},
	"sex":            {canonical: "sex"},
	"gender":         {canonical: "sex"},
}

// unitSuffixes are stripped from numeric-looking strings. When a suffix has
// a conversion entry for the canonical key, the factor is applied.
var unitSuffixFactors = map[string]map[string]float64{
	"glucose_mg_dl":    {"mmol/l": 18.016, "mg/dl": 1},
	"bun_mg_dl":        {"mmol/l": 2.801, "mg/dl": 1},
	"creatinine_mg_dl": {"umol/l": 1.0 / 88.4, "µmol/l": 1.0 / 88.4, "mg/dl": 1},
	"bilirubin_mg_dl":  {"umol/l": 1.0 / 17.1, "µmol/l": 1.0 / 17.1, "mg/dl": 1},
	"calcium_mg_dl":    {"mmol/l": 4.008, "mg/dl": 1},
	"weight_kg":        {"lb": 0.45359237, "lbs": 0.45359237, "kg": 1},
	"height_cm":        {"in": 2.54, "m": 100, "cm": 1},
}

// Normalize maps loosely-shaped caller input onto the canonical input shape
// the definition declares. It is pure and total: fields it cannot
// confidently normalize are omitted, deferring to validation to catch the
// gap. Normalizing an already-canonical bundle is a no-op.
func Normalize(def Definition, raw map[string]any) Inputs {
	declared := make(map[string]bool, len(def.Inputs))
	for _, f := range def.Inputs {
		declared[f.Key] = true
	}

	out := make(Inputs, len(raw))
	for key, val := range raw {
		canon := canonicalKey(key)
		factor, offset := 0.0, 0.0
		if a, ok := aliases[canon]; ok && !declared[canon] {
			canon = a.canonical
			factor, offset = a.factor, a.offset
		}
		if !declared[canon] {
			continue
		}
		v, converted := coerceValue(canon, val)
		if v == nil {
			continue
		}
		// The alias factor applies only when the value itself did not carry
		// a recognized unit suffix; a suffix match has already converted.
		if factor != 0 && !converted {
			if n, ok := numberValue(v); ok {
				v = n*factor + offset
			}
		}
		// First writer wins so a canonical key is never clobbered by an
		// alias of the same concept.
		if _, exists := out[canon]; !exists {
			out[canon] = v
		}
	}
	return out
}

// canonicalKey lowercases and snake-cases a caller-supplied field name.
func canonicalKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevUnderscore := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			prevUnderscore = false
		default:
			if !prevUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				prevUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// coerceValue turns raw values into the typed forms calculators consume:
// numbers stay numbers, numeric-looking strings are parsed with any unit
// suffix stripped (and converted when recognized), booleans and enum
// strings pass through. converted reports whether a recognized unit suffix
// already put the number in the canonical unit. Unparseable values return
// nil.
func coerceValue(canon string, val any) (v any, converted bool) {
	switch s := val.(type) {
	case nil:
		return nil, false
	case bool, float64, int, int64, float32:
		return val, false
	case string:
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, false
		}
		if f, converted, ok := parseNumberWithUnit(canon, s); ok {
			return f, converted
		}
		switch strings.ToLower(s) {
		case "true", "yes", "y", "present", "positive":
			return true, false
		case "false", "no", "n", "absent", "negative":
			return false, false
		}
		return strings.ToLower(s), false
	default:
		return nil, false
	}
}

// parseNumberWithUnit parses strings like "120", "5.4 mmol/L" or "82kg".
// converted is true when the suffix matched a conversion entry for the
// canonical key.
func parseNumberWithUnit(canon, s string) (f float64, converted, ok bool) {
	i := 0
	for i < len(s) && (s[i] == '-' || s[i] == '+' || s[i] == '.' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i == 0 {
		return 0, false, false
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, false, false
	}
	suffix := strings.ToLower(strings.TrimSpace(s[i:]))
	if suffix == "" {
		return f, false, true
	}
	if factors, ok := unitSuffixFactors[canon]; ok {
		if factor, ok := factors[suffix]; ok {
			return f * factor, true, true
		}
	}
	// Unrecognized suffixes are assumed to already be in the declared unit
	// (e.g. "40 mmHg" on a *_mm_hg field).
	return f, false, true
}
