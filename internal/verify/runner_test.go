package verify

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/medcalc/medcalc/internal/calc"
)

// stubAuthority returns a fixed value or error, optionally after a delay.
type stubAuthority struct {
	val   float64
	err   error
	delay time.Duration
}

func (s stubAuthority) Recompute(ctx context.Context, _, _ string, _ map[string]float64) (float64, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return s.val, s.err
}

func doubleDef() calc.Definition {
	return calc.Definition{
		ID:      "double",
		Label:   "Doubler",
		Inputs:  []calc.Field{{Key: "x", Required: true}},
		Formula: "2 * x",
		Run: func(in calc.Inputs) *calc.Result {
			x, ok := in.Number("x")
			if !ok {
				return nil
			}
			return &calc.Result{ID: "double", Value: calc.Ptr(2 * x), Precision: 2}
		},
	}
}

func testRunner(t *testing.T, pol Policy, authority Authority) *Runner {
	t.Helper()
	reg := calc.NewRegistry()
	if err := reg.Register(doubleDef()); err != nil {
		t.Fatalf("register: %v", err)
	}
	return NewRunner(reg, NewTable(pol), authority)
}

func lenientPolicy() Policy {
	return Policy{Precision: 2, TolerancePct: 1.0, Strict: false, Timeout: time.Second}
}

func strictPolicy() Policy {
	return Policy{Precision: 2, TolerancePct: 1.0, Strict: true, Timeout: time.Second}
}

func TestRunner_UnknownCalculator(t *testing.T) {
	r := testRunner(t, lenientPolicy(), stubAuthority{})
	_, err := r.RunCalcAuthoritative(context.Background(), "nope", nil)
	if err == nil {
		t.Fatal("expected error for unknown calculator")
	}
	if !errors.Is(err, calc.ErrUnknownCalculator) {
		t.Errorf("expected ErrUnknownCalculator, got %v", err)
	}
}

func TestRunner_BlockedOnMissingInput(t *testing.T) {
	r := testRunner(t, lenientPolicy(), stubAuthority{val: 10})

	v, err := r.RunCalcAuthoritative(context.Background(), "double", map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Status != StatusBlocked {
		t.Errorf("status = %s, want blocked", v.Status)
	}
	if v.Final != 0 {
		t.Errorf("final = %v, want 0", v.Final)
	}
	if v.Reason == "" || !strings.Contains(v.Reason, "x") {
		t.Errorf("reason %q does not name the missing field", v.Reason)
	}
}

func TestRunner_VerifiedAgreement(t *testing.T) {
	r := testRunner(t, lenientPolicy(), stubAuthority{val: 10})

	v, err := r.RunCalcAuthoritative(context.Background(), "double", map[string]any{"x": 5.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Status != StatusOK {
		t.Errorf("status = %s, want ok", v.Status)
	}
	if v.Tier != TierVerified {
		t.Errorf("tier = %s, want verified", v.Tier)
	}
	if !v.AgreeWithLocal {
		t.Error("expected agreement")
	}
	if v.Final != 10 {
		t.Errorf("final = %v, want 10", v.Final)
	}
	if v.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", v.Attempts)
	}
	if v.DeltaAbs != 0 || v.DeltaPct != 0 {
		t.Errorf("deltas = %v / %v, want 0 / 0", v.DeltaAbs, v.DeltaPct)
	}
}

func TestRunner_AgreementWithinTolerance(t *testing.T) {
	// local 10 vs authoritative 10.05 → 0.497% < 1% tolerance.
	r := testRunner(t, lenientPolicy(), stubAuthority{val: 10.05})

	v, err := r.RunCalcAuthoritative(context.Background(), "double", map[string]any{"x": 5.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Status != StatusOK || !v.AgreeWithLocal {
		t.Errorf("status = %s, agree = %v", v.Status, v.AgreeWithLocal)
	}
}

func TestRunner_DisagreementLenient(t *testing.T) {
	r := testRunner(t, lenientPolicy(), stubAuthority{val: 12})

	v, err := r.RunCalcAuthoritative(context.Background(), "double", map[string]any{"x": 5.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Status != StatusDisagreement {
		t.Errorf("status = %s, want disagreement", v.Status)
	}
	if v.Tier != TierVerified {
		t.Errorf("tier = %s, want verified", v.Tier)
	}
	// The local value is surfaced, flagged.
	if v.Final != 10 {
		t.Errorf("final = %v, want local 10", v.Final)
	}
	if v.DeltaAbs != 2 {
		t.Errorf("deltaAbs = %v, want 2", v.DeltaAbs)
	}
	if v.Reason == "" {
		t.Error("expected a reason describing the divergence")
	}
}

func TestRunner_DisagreementStrict(t *testing.T) {
	r := testRunner(t, strictPolicy(), stubAuthority{val: 12})

	v, err := r.RunCalcAuthoritative(context.Background(), "double", map[string]any{"x": 5.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Status != StatusBlocked {
		t.Errorf("status = %s, want blocked", v.Status)
	}
	if v.Final != 0 {
		t.Errorf("final = %v, want 0", v.Final)
	}
	if v.Tier != TierVerified {
		t.Errorf("tier = %s, want verified", v.Tier)
	}
}

func TestRunner_TimeoutLenient(t *testing.T) {
	pol := lenientPolicy()
	pol.Timeout = 20 * time.Millisecond
	r := testRunner(t, pol, stubAuthority{val: 10, delay: time.Second})

	v, err := r.RunCalcAuthoritative(context.Background(), "double", map[string]any{"x": 5.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Status != StatusOK {
		t.Errorf("status = %s, want ok", v.Status)
	}
	if v.Tier != TierLocal {
		t.Errorf("tier = %s, want local", v.Tier)
	}
	if v.Final != 10 {
		t.Errorf("final = %v, want 10", v.Final)
	}
	if !strings.Contains(v.Reason, "timed out") {
		t.Errorf("reason = %q, expected timeout mention", v.Reason)
	}
}

func TestRunner_TimeoutStrict(t *testing.T) {
	pol := strictPolicy()
	pol.Timeout = 20 * time.Millisecond
	r := testRunner(t, pol, stubAuthority{val: 10, delay: time.Second})

	v, err := r.RunCalcAuthoritative(context.Background(), "double", map[string]any{"x": 5.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Status != StatusBlocked {
		t.Errorf("status = %s, want blocked", v.Status)
	}
	if v.Final != 0 {
		t.Errorf("final = %v, want 0", v.Final)
	}
}

func TestRunner_NilAuthorityLenient(t *testing.T) {
	r := testRunner(t, lenientPolicy(), nil)

	v, err := r.RunCalcAuthoritative(context.Background(), "double", map[string]any{"x": 5.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Status != StatusOK || v.Tier != TierLocal {
		t.Errorf("status = %s, tier = %s; want ok/local", v.Status, v.Tier)
	}
	if !strings.Contains(v.Reason, "unverified") {
		t.Errorf("reason = %q", v.Reason)
	}
}

func TestRunner_UnsupportedStrict(t *testing.T) {
	r := testRunner(t, strictPolicy(), stubAuthority{err: ErrUnsupported})

	v, err := r.RunCalcAuthoritative(context.Background(), "double", map[string]any{"x": 5.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Status != StatusBlocked {
		t.Errorf("status = %s, want blocked", v.Status)
	}
}

func TestRunner_NonFiniteAuthorityValue(t *testing.T) {
	r := testRunner(t, lenientPolicy(), stubAuthority{val: math.Inf(1)})

	v, err := r.RunCalcAuthoritative(context.Background(), "double", map[string]any{"x": 5.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Non-finite recomputation is an authority failure, not a disagreement.
	if v.Status != StatusOK || v.Tier != TierLocal {
		t.Errorf("status = %s, tier = %s; want ok/local", v.Status, v.Tier)
	}
}

func TestVerdict_MarshalOmitsNaNDeltas(t *testing.T) {
	v := blockedVerdict("double", nil, "missing required inputs: x")
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if strings.Contains(s, "deltaAbs") || strings.Contains(s, "deltaPct") {
		t.Errorf("blocked verdict must omit NaN deltas: %s", s)
	}
	if !strings.Contains(s, `"status":"blocked"`) {
		t.Errorf("unexpected payload: %s", s)
	}
}

func TestVerdict_MarshalIncludesFiniteDeltas(t *testing.T) {
	v := Verdict{CalculatorID: "double", Status: StatusDisagreement, DeltaAbs: 2, DeltaPct: 16.7}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"deltaAbs":2`) || !strings.Contains(s, `"deltaPct":16.7`) {
		t.Errorf("expected deltas in payload: %s", s)
	}
}

func TestNumericInputs(t *testing.T) {
	in := calc.Inputs{
		"weight_kg": 70.0,
		"confusion": true,
		"negative":  false,
		"sex":       "male",
	}
	out := numericInputs(in)

	if out["weight_kg"] != 70 {
		t.Errorf("weight_kg = %v", out["weight_kg"])
	}
	if out["confusion"] != 1 {
		t.Errorf("confusion = %v, want 1", out["confusion"])
	}
	if _, ok := out["negative"]; ok {
		t.Error("false flags have no numeric encoding")
	}
	if _, ok := out["sex"]; ok {
		t.Error("string enumerations are dropped")
	}
}
