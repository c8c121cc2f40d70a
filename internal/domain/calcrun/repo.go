package calcrun

import (
	"context"

	"github.com/google/uuid"
)

// RunRecordRepository persists verification run audit rows.
type RunRecordRepository interface {
	Create(ctx context.Context, rec *RunRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*RunRecord, error)
	List(ctx context.Context, limit, offset int) ([]*RunRecord, int, error)
	ListByCalculator(ctx context.Context, calculatorID string, limit, offset int) ([]*RunRecord, int, error)
}
