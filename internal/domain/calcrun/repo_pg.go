package calcrun

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medcalc/medcalc/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type runRecordRepoPG struct{ pool *pgxpool.Pool }

func NewRunRecordRepoPG(pool *pgxpool.Pool) RunRecordRepository { return &runRecordRepoPG{pool: pool} }

func (r *runRecordRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const runCols = `id, calculator_id, status, final, tier, attempts,
	agree_with_local, delta_abs, delta_pct, reason, request_id, created_at`

func (r *runRecordRepoPG) scanRun(row pgx.Row) (*RunRecord, error) {
	var rec RunRecord
	err := row.Scan(&rec.ID, &rec.CalculatorID, &rec.Status, &rec.Final, &rec.Tier, &rec.Attempts,
		&rec.AgreeWithLocal, &rec.DeltaAbs, &rec.DeltaPct, &rec.Reason, &rec.RequestID, &rec.CreatedAt)
	return &rec, err
}

func (r *runRecordRepoPG) Create(ctx context.Context, rec *RunRecord) error {
	rec.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO calc_run (id, calculator_id, status, final, tier, attempts,
			agree_with_local, delta_abs, delta_pct, reason, request_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		rec.ID, rec.CalculatorID, rec.Status, rec.Final, rec.Tier, rec.Attempts,
		rec.AgreeWithLocal, rec.DeltaAbs, rec.DeltaPct, rec.Reason, rec.RequestID)
	return err
}

func (r *runRecordRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*RunRecord, error) {
	return r.scanRun(r.conn(ctx).QueryRow(ctx, `SELECT `+runCols+` FROM calc_run WHERE id = $1`, id))
}

func (r *runRecordRepoPG) List(ctx context.Context, limit, offset int) ([]*RunRecord, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM calc_run`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+runCols+` FROM calc_run ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*RunRecord
	for rows.Next() {
		rec, err := r.scanRun(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, nil
}

func (r *runRecordRepoPG) ListByCalculator(ctx context.Context, calculatorID string, limit, offset int) ([]*RunRecord, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM calc_run WHERE calculator_id = $1`, calculatorID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+runCols+` FROM calc_run WHERE calculator_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		calculatorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*RunRecord
	for rows.Next() {
		rec, err := r.scanRun(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, nil
}
