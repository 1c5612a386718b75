package appraisal

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"appraisal/internal/platform/querier"
)

type Store struct {
	DB   querier.Querier
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool, pool: pool}
}

// InTx runs fn against a transaction-scoped store. Nested calls reuse the
// surrounding transaction.
func (s *Store) InTx(ctx context.Context, fn func(StoreAPI) error) error {
	if s.pool == nil {
		return fn(s)
	}
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	if err := fn(&Store{DB: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// LockAppraisal takes a transaction-scoped advisory lock on the aggregate so
// concurrent attach and transition calls against the same appraisal
// serialize instead of racing the weightage check.
func (s *Store) LockAppraisal(ctx context.Context, appraisalID int64) error {
	_, err := s.DB.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", appraisalID)
	return err
}
