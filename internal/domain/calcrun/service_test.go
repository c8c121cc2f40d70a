package calcrun

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medcalc/medcalc/internal/calc"
	"github.com/medcalc/medcalc/internal/verify"
)

// memRunRepo is an in-memory RunRecordRepository for tests.
type memRunRepo struct {
	mu         sync.Mutex
	rows       []*RunRecord
	failCreate bool
}

func (m *memRunRepo) Create(_ context.Context, rec *RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate {
		return fmt.Errorf("simulated insert failure")
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	m.rows = append(m.rows, rec)
	return nil
}

func (m *memRunRepo) GetByID(_ context.Context, id uuid.UUID) (*RunRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("run record not found")
}

func (m *memRunRepo) List(_ context.Context, limit, offset int) ([]*RunRecord, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return page(m.rows, limit, offset), len(m.rows), nil
}

func (m *memRunRepo) ListByCalculator(_ context.Context, calculatorID string, limit, offset int) ([]*RunRecord, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var filtered []*RunRecord
	for _, r := range m.rows {
		if r.CalculatorID == calculatorID {
			filtered = append(filtered, r)
		}
	}
	return page(filtered, limit, offset), len(filtered), nil
}

func page(rows []*RunRecord, limit, offset int) []*RunRecord {
	if offset >= len(rows) {
		return nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func testRegistry(t *testing.T) *calc.Registry {
	t.Helper()
	reg := calc.NewRegistry()
	defs := []calc.Definition{
		{
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
		},
		{
			ID:     "triple",
			Label:  "Tripler",
			Inputs: []calc.Field{{Key: "x", Required: true}},
			Run: func(in calc.Inputs) *calc.Result {
				x, ok := in.Number("x")
				if !ok {
					return nil
				}
				return &calc.Result{ID: "triple", Value: calc.Ptr(3 * x), Precision: 2}
			},
		},
	}
	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	return reg
}

func testService(t *testing.T, repo RunRecordRepository) *Service {
	t.Helper()
	reg := testRegistry(t)
	runner := verify.NewRunner(reg, nil, nil)
	return NewService(reg, runner, repo, zerolog.Nop())
}

func TestService_ListCalculators(t *testing.T) {
	svc := testService(t, nil)

	items, total := svc.ListCalculators(10, 0)
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].ID != "double" || items[1].ID != "triple" {
		t.Errorf("unexpected order: %s, %s", items[0].ID, items[1].ID)
	}

	items, total = svc.ListCalculators(1, 1)
	if total != 2 || len(items) != 1 || items[0].ID != "triple" {
		t.Errorf("paged result = %v (total %d)", items, total)
	}

	items, _ = svc.ListCalculators(10, 5)
	if len(items) != 0 {
		t.Errorf("expected empty page past the end, got %d items", len(items))
	}
}

func TestService_GetCalculator(t *testing.T) {
	svc := testService(t, nil)

	summary, err := svc.GetCalculator("double")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Label != "Doubler" || summary.Formula != "2 * x" {
		t.Errorf("summary = %+v", summary)
	}

	if _, err := svc.GetCalculator("nope"); err == nil {
		t.Error("expected error for unknown calculator")
	}
}

func TestService_RunPersistsRecord(t *testing.T) {
	repo := &memRunRepo{}
	svc := testService(t, repo)

	verdict, err := svc.Run(context.Background(), "double", map[string]any{"x": 5.0}, "req-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Status != verify.StatusOK {
		t.Errorf("status = %s", verdict.Status)
	}

	rows, total, err := repo.List(context.Background(), 10, 0)
	if err != nil || total != 1 {
		t.Fatalf("expected 1 audit row, got %d (%v)", total, err)
	}
	rec := rows[0]
	if rec.CalculatorID != "double" || rec.Status != "ok" || rec.Final != 10 {
		t.Errorf("record = %+v", rec)
	}
	if rec.RequestID == nil || *rec.RequestID != "req-123" {
		t.Errorf("request id not recorded: %v", rec.RequestID)
	}
	// No authority configured, so the run was unverified and has no deltas.
	if rec.DeltaAbs != nil || rec.DeltaPct != nil {
		t.Errorf("expected nil deltas, got %v / %v", rec.DeltaAbs, rec.DeltaPct)
	}
	if rec.Reason == nil {
		t.Error("expected the unverified reason to be recorded")
	}
}

func TestService_RunWithoutRepository(t *testing.T) {
	svc := testService(t, nil)

	verdict, err := svc.Run(context.Background(), "double", map[string]any{"x": 2.0}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict.Final != 4 {
		t.Errorf("final = %v, want 4", verdict.Final)
	}
	if svc.HasAudit() {
		t.Error("HasAudit() = true without a repository")
	}
}

func TestService_RunSurvivesPersistFailure(t *testing.T) {
	repo := &memRunRepo{failCreate: true}
	svc := testService(t, repo)

	verdict, err := svc.Run(context.Background(), "double", map[string]any{"x": 5.0}, "")
	if err != nil {
		t.Fatalf("persist failure must not fail the run: %v", err)
	}
	if verdict.Status != verify.StatusOK {
		t.Errorf("status = %s", verdict.Status)
	}
}

func TestService_ListRunsFilter(t *testing.T) {
	repo := &memRunRepo{}
	svc := testService(t, repo)

	ctx := context.Background()
	if _, err := svc.Run(ctx, "double", map[string]any{"x": 1.0}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Run(ctx, "triple", map[string]any{"x": 1.0}, ""); err != nil {
		t.Fatal(err)
	}

	_, total, err := svc.ListRuns(ctx, "", 10, 0)
	if err != nil || total != 2 {
		t.Errorf("unfiltered total = %d (%v)", total, err)
	}

	rows, total, err := svc.ListRuns(ctx, "triple", 10, 0)
	if err != nil || total != 1 {
		t.Fatalf("filtered total = %d (%v)", total, err)
	}
	if rows[0].CalculatorID != "triple" {
		t.Errorf("filtered row = %+v", rows[0])
	}
}
