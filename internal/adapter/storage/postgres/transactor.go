package postgres

import (
	"context"
	"errors"
	"fmt"

	"laundry-hub/pkg/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// Transactor implements ports.DBTransactor on top of the connection pool.
type Transactor struct {
	pool       Pool
	maxRetries int
	metrics    *metrics.EngineMetrics
	log        zerolog.Logger
}

// NewTransactor creates a Transactor. maxRetries bounds how often a
// transaction aborted by a serialization failure or deadlock is re-run.
func NewTransactor(pool Pool, maxRetries int, m *metrics.EngineMetrics, log zerolog.Logger) *Transactor {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Transactor{pool: pool, maxRetries: maxRetries, metrics: m, log: log}
}

// WithinTx runs fn in a transaction. fn may run more than once, so it must
// not have side effects outside tx.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	var err error
	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		if attempt > 0 {
			t.metrics.IncTxRetry()
			t.log.Warn().Err(err).Int("attempt", attempt).Msg("retrying transaction")
		}
		err = t.runOnce(ctx, fn)
		if err == nil || !retryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}

func (t *Transactor) runOnce(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			t.log.Error().Err(rbErr).Msg("rollback failed")
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected
}
