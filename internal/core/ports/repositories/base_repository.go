package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is the lifecycle a repository exposes when its writes
// must land atomically with others, as a posting group's entries and balance
// updates do.
type TransactionManager interface {
	// Begin opens a new transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit makes the transaction's writes visible.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback abandons the transaction. Rolling back an already finished
	// transaction is not an error.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
