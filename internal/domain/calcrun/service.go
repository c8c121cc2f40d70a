package calcrun

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medcalc/medcalc/internal/calc"
	"github.com/medcalc/medcalc/internal/verify"
)

// Service exposes the calculator catalog and verification runs, and keeps
// a best-effort audit trail. The run repository is optional: the engine is
// stateless and a persistence failure never fails a run.
type Service struct {
	registry *calc.Registry
	runner   *verify.Runner
	runs     RunRecordRepository
	log      zerolog.Logger
}

func NewService(registry *calc.Registry, runner *verify.Runner, runs RunRecordRepository, logger zerolog.Logger) *Service {
	return &Service{registry: registry, runner: runner, runs: runs, log: logger}
}

// ListCalculators pages through the catalog in id order.
func (s *Service) ListCalculators(limit, offset int) ([]CalculatorSummary, int) {
	ids := s.registry.IDs()
	total := len(ids)
	if offset >= total {
		return nil, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	items := make([]CalculatorSummary, 0, end-offset)
	for _, id := range ids[offset:end] {
		def, err := s.registry.Lookup(id)
		if err != nil {
			continue
		}
		items = append(items, summarize(def))
	}
	return items, total
}

// GetCalculator returns the catalog entry for id.
func (s *Service) GetCalculator(id string) (CalculatorSummary, error) {
	def, err := s.registry.Lookup(id)
	if err != nil {
		return CalculatorSummary{}, err
	}
	return summarize(def), nil
}

// Run verifies one calculation and records the outcome. requestID ties the
// audit row back to the HTTP request; it may be empty for CLI runs.
func (s *Service) Run(ctx context.Context, id string, inputs map[string]any, requestID string) (verify.Verdict, error) {
	verdict, err := s.runner.RunCalcAuthoritative(ctx, id, inputs)
	if err != nil {
		return verify.Verdict{}, err
	}
	s.record(ctx, verdict, requestID)
	return verdict, nil
}

// GetRun fetches one audit row.
func (s *Service) GetRun(ctx context.Context, id uuid.UUID) (*RunRecord, error) {
	return s.runs.GetByID(ctx, id)
}

// ListRuns pages through audit rows, optionally filtered by calculator.
func (s *Service) ListRuns(ctx context.Context, calculatorID string, limit, offset int) ([]*RunRecord, int, error) {
	if calculatorID != "" {
		return s.runs.ListByCalculator(ctx, calculatorID, limit, offset)
	}
	return s.runs.List(ctx, limit, offset)
}

// HasAudit reports whether an audit repository is configured.
func (s *Service) HasAudit() bool { return s.runs != nil }

func (s *Service) record(ctx context.Context, v verify.Verdict, requestID string) {
	if s.runs == nil {
		return
	}
	rec := &RunRecord{
		CalculatorID:   v.CalculatorID,
		Status:         string(v.Status),
		Final:          v.Final,
		Tier:           v.Tier,
		Attempts:       v.Attempts,
		AgreeWithLocal: v.AgreeWithLocal,
		DeltaAbs:       finitePtr(v.DeltaAbs),
		DeltaPct:       finitePtr(v.DeltaPct),
	}
	if v.Reason != "" {
		rec.Reason = &v.Reason
	}
	if requestID != "" {
		rec.RequestID = &requestID
	}
	if err := s.runs.Create(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("calculator_id", v.CalculatorID).Msg("failed to persist run record")
	}
}

func summarize(def calc.Definition) CalculatorSummary {
	return CalculatorSummary{
		ID:      def.ID,
		Label:   def.Label,
		Formula: def.Formula,
		Inputs:  def.Inputs,
	}
}

func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
