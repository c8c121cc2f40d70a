package verify

import "time"

// Policy controls how a single calculator's verification behaves.
type Policy struct {
	// Precision is the number of decimal places surfaced in the final value.
	Precision int
	// TolerancePct is the maximum relative deviation, in percent, between
	// the local and authoritative values that still counts as agreement.
	TolerancePct float64
	// Strict calculators never surface an unverified or disagreeing number.
	Strict bool
	// Timeout bounds the authoritative recomputation step.
	Timeout time.Duration
}

// Table resolves the policy for a calculator id, falling back to a
// default entry so PolicyFor never fails.
type Table struct {
	fallback  Policy
	overrides map[string]Policy
}

// NewTable builds a policy table with the given fallback policy.
func NewTable(fallback Policy) *Table {
	return &Table{fallback: fallback, overrides: make(map[string]Policy)}
}

// Set installs a per-calculator override.
func (t *Table) Set(id string, p Policy) {
	t.overrides[id] = p
}

// PolicyFor returns the policy for id, or the fallback when no override
// exists.
func (t *Table) PolicyFor(id string) Policy {
	if p, ok := t.overrides[id]; ok {
		return p
	}
	return t.fallback
}

// DefaultTable is the shipped policy set: a lenient 1% default with strict
// overrides for calculators whose output feeds dosing decisions directly,
// where an unverified number is worse than no number.
func DefaultTable() *Table {
	t := NewTable(Policy{
		Precision:    2,
		TolerancePct: 1.0,
		Strict:       false,
		Timeout:      1500 * time.Millisecond,
	})

	strictDosing := Policy{
		Precision:    1,
		TolerancePct: 0.5,
		Strict:       true,
		Timeout:      2 * time.Second,
	}
	for _, id := range []string{
		"mme",
		"steroid_equivalents",
		"phenytoin_corrected",
		"parkland",
		"holliday_segar",
	} {
		t.Set(id, strictDosing)
	}

	// Integer point scores tolerate no rounding ambiguity but are cheap to
	// recompute, so they keep the lenient fallback on timeout.
	for _, id := range []string{
		"curb65", "crb65", "qsofa", "sirs", "gcs", "apgar", "bishop",
	} {
		t.Set(id, Policy{
			Precision:    0,
			TolerancePct: 0.1,
			Strict:       false,
			Timeout:      1500 * time.Millisecond,
		})
	}

	return t
}
