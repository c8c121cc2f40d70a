package calc

// Validation is the outcome of the required-field check. It is consumed
// immediately by the verification runner.
type Validation struct {
	OK      bool     `json:"ok"`
	Missing []string `json:"missing,omitempty"`
}

// Validate checks a normalized bundle against the definition's required
// fields. A required field must be present and, when it carries a numeric
// value, that value must be finite. This is the single gate that turns
// incomplete input into an explicit blocked verdict instead of letting a
// calculator compute a misleading number from partial data.
func Validate(def Definition, in Inputs) Validation {
	var missing []string
	for _, f := range def.Inputs {
		if !f.Required {
			continue
		}
		if !in.Has(f.Key) {
			missing = append(missing, f.Key)
			continue
		}
		// Non-finite numerics count as missing; Inputs.Number already
		// rejects NaN and Inf.
		switch in[f.Key].(type) {
		case float64, float32, int, int64:
			if _, ok := in.Number(f.Key); !ok {
				missing = append(missing, f.Key)
			}
		}
	}
	return Validation{OK: len(missing) == 0, Missing: missing}
}
