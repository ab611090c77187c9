package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager opens and finishes the transactions that make report and entry
// writes atomic. Rollback after a successful Commit is a no-op.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// TxFunc is the unit of work run inside one transaction.
type TxFunc func(tx pgx.Tx) error
