package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/medcalc/medcalc/internal/calc"
)

// Status is the terminal outcome of a verification run.
type Status string

const (
	// StatusOK means the local and authoritative values agreed within
	// tolerance, or the lenient policy accepted the local value alone.
	StatusOK Status = "ok"
	// StatusBlocked means no number is surfaced: missing inputs, an
	// uncomputable calculator, or a strict policy that could not verify.
	StatusBlocked Status = "blocked"
	// StatusDisagreement means the two computations diverged beyond
	// tolerance and the lenient policy surfaced the local value flagged.
	StatusDisagreement Status = "disagreement"
)

// Tier values for Verdict.Tier.
const (
	TierLocal    = "local"
	TierVerified = "verified"
)

// Verdict is the result of an authoritative verification run. Blocked is
// the only status that discards the computed number; a disagreement always
// carries the deltas so the divergence is never hidden.
type Verdict struct {
	CalculatorID   string       `json:"calculatorId"`
	Status         Status       `json:"status"`
	Final          float64      `json:"final"`
	Tier           string       `json:"tier"`
	Attempts       int          `json:"attempts"`
	AgreeWithLocal bool         `json:"agreeWithLocal"`
	DeltaAbs       float64      `json:"deltaAbs"`
	DeltaPct       float64      `json:"deltaPct"`
	Reason         string       `json:"reason,omitempty"`
	Local          *calc.Result `json:"local,omitempty"`
}

// MarshalJSON omits the deltas when they are NaN (no authoritative value
// was obtained); encoding/json cannot represent NaN.
func (v Verdict) MarshalJSON() ([]byte, error) {
	type alias Verdict
	out := struct {
		alias
		DeltaAbs *float64 `json:"deltaAbs,omitempty"`
		DeltaPct *float64 `json:"deltaPct,omitempty"`
	}{alias: alias(v)}
	if !math.IsNaN(v.DeltaAbs) {
		out.DeltaAbs = &v.DeltaAbs
	}
	if !math.IsNaN(v.DeltaPct) {
		out.DeltaPct = &v.DeltaPct
	}
	return json.Marshal(out)
}

// relativeDenominatorFloor keeps the relative-deviation test defined when
// the authoritative value is at or near zero.
const relativeDenominatorFloor = 1e-6

// Runner drives the verification state machine: normalize, validate,
// compute locally, then reconcile against the authority under the
// calculator's policy. Runs are independent and share only the read-only
// registry, policy table, and authority, so a single Runner is safe for
// concurrent use.
type Runner struct {
	registry  *calc.Registry
	policies  *Table
	authority Authority
}

// NewRunner wires a runner. authority may be nil, in which case every
// reconciliation behaves as unsupported and policies decide the outcome.
func NewRunner(registry *calc.Registry, policies *Table, authority Authority) *Runner {
	if policies == nil {
		policies = DefaultTable()
	}
	return &Runner{registry: registry, policies: policies, authority: authority}
}

// RunCalcAuthoritative verifies one calculation end to end. An unknown id
// is a caller/registry mismatch and returns an error; every data-quality
// problem is expressed as a verdict instead.
func (r *Runner) RunCalcAuthoritative(ctx context.Context, id string, raw map[string]any) (Verdict, error) {
	def, err := r.registry.Lookup(id)
	if err != nil {
		return Verdict{}, err
	}
	pol := r.policies.PolicyFor(id)

	in := calc.Normalize(def, raw)
	if v := calc.Validate(def, in); !v.OK {
		return blockedVerdict(id, nil, "missing required inputs: "+strings.Join(v.Missing, ", ")), nil
	}

	local := def.Run(in)
	if local == nil || local.Value == nil {
		reason := "calculator could not compute a value from the provided inputs"
		if local != nil && len(local.Notes) > 0 {
			reason = strings.Join(local.Notes, "; ")
		}
		return blockedVerdict(id, local, reason), nil
	}
	localVal := *local.Value

	verdict := Verdict{
		CalculatorID: id,
		Local:        local,
		DeltaAbs:     math.NaN(),
		DeltaPct:     math.NaN(),
	}

	rctx, cancel := context.WithTimeout(ctx, pol.Timeout)
	defer cancel()

	verdict.Attempts++
	authVal, err := r.recompute(rctx, def, in)
	if err != nil {
		if pol.Strict {
			verdict.Status = StatusBlocked
			verdict.Tier = TierLocal
			verdict.Reason = fmt.Sprintf("strict policy: verification unavailable (%v)", err)
			return verdict, nil
		}
		verdict.Status = StatusOK
		verdict.Tier = TierLocal
		verdict.Final = calc.RoundTo(localVal, pol.Precision)
		verdict.Reason = fmt.Sprintf("unverified: %v", err)
		return verdict, nil
	}

	verdict.DeltaAbs = math.Abs(localVal - authVal)
	verdict.DeltaPct = verdict.DeltaAbs / math.Max(math.Abs(authVal), relativeDenominatorFloor) * 100

	if verdict.DeltaPct <= pol.TolerancePct {
		verdict.Status = StatusOK
		verdict.Tier = TierVerified
		verdict.AgreeWithLocal = true
		verdict.Final = calc.RoundTo(localVal, pol.Precision)
		return verdict, nil
	}

	if pol.Strict {
		verdict.Status = StatusBlocked
		verdict.Tier = TierVerified
		verdict.Reason = fmt.Sprintf("strict policy: local %g and authoritative %g differ by %.3g%% (tolerance %.3g%%)",
			localVal, authVal, verdict.DeltaPct, pol.TolerancePct)
		return verdict, nil
	}

	verdict.Status = StatusDisagreement
	verdict.Tier = TierVerified
	verdict.Final = calc.RoundTo(localVal, pol.Precision)
	verdict.Reason = fmt.Sprintf("local %g and authoritative %g differ by %.3g%% (tolerance %.3g%%)",
		localVal, authVal, verdict.DeltaPct, pol.TolerancePct)
	return verdict, nil
}

func (r *Runner) recompute(ctx context.Context, def calc.Definition, in calc.Inputs) (float64, error) {
	if r.authority == nil {
		return 0, fmt.Errorf("%w: no authority configured", ErrUnsupported)
	}
	v, err := r.authority.Recompute(ctx, def.ID, def.Formula, numericInputs(in))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, fmt.Errorf("authoritative recomputation timed out: %w", err)
		}
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("authoritative recomputation returned non-finite value")
	}
	return v, nil
}

// numericInputs projects normalized inputs onto the numeric map the
// authority consumes. Set flags travel as 1, unset flags are dropped so
// the authority sees only asserted criteria; other strings (enumerations
// like sex) have no numeric encoding and are dropped too.
func numericInputs(in calc.Inputs) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, raw := range in {
		if b, isBool := raw.(bool); isBool {
			if b {
				out[k] = 1
			}
			continue
		}
		if v, ok := in.Number(k); ok {
			out[k] = v
		}
	}
	return out
}

func blockedVerdict(id string, local *calc.Result, reason string) Verdict {
	return Verdict{
		CalculatorID: id,
		Status:       StatusBlocked,
		Tier:         TierLocal,
		Final:        0,
		DeltaAbs:     math.NaN(),
		DeltaPct:     math.NaN(),
		Reason:       reason,
		Local:        local,
	}
}
