package calcrun

import (
	"time"

	"github.com/google/uuid"

	"github.com/medcalc/medcalc/internal/calc"
)

// RunRecord maps to the calc_run table: one audit row per verification
// run. Deltas are nullable because a blocked or unverified run has none.
type RunRecord struct {
	ID             uuid.UUID `db:"id" json:"id"`
	CalculatorID   string    `db:"calculator_id" json:"calculator_id"`
	Status         string    `db:"status" json:"status"`
	Final          float64   `db:"final" json:"final"`
	Tier           string    `db:"tier" json:"tier"`
	Attempts       int       `db:"attempts" json:"attempts"`
	AgreeWithLocal bool      `db:"agree_with_local" json:"agree_with_local"`
	DeltaAbs       *float64  `db:"delta_abs" json:"delta_abs,omitempty"`
	DeltaPct       *float64  `db:"delta_pct" json:"delta_pct,omitempty"`
	Reason         *string   `db:"reason" json:"reason,omitempty"`
	RequestID      *string   `db:"request_id" json:"request_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// CalculatorSummary is the read model for the calculator catalog.
type CalculatorSummary struct {
	ID      string       `json:"id"`
	Label   string       `json:"label"`
	Formula string       `json:"formula"`
	Inputs  []calc.Field `json:"inputs"`
}

// RunRequest is the body of a run call: a loosely-typed input bag keyed
// by field name or a recognized alias.
type RunRequest struct {
	Inputs map[string]any `json:"inputs"`
}
