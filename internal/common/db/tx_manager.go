package db

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/migfernandes01/places-share-API/internal/common/constants"
	"github.com/migfernandes01/places-share-API/internal/observability/metrics"
)

// TxManager wraps multi-statement writes in a single transaction. The
// Place/User dual writes go through here so that neither side can be
// persisted without the other.
type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

func (m *TxManager) WithTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			metrics.DBTxRollbacksTotal.WithLabelValues("panic").Inc()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
			metrics.DBTxRollbacksTotal.WithLabelValues("error").Inc()
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(ctx, tx)
	return err
}
