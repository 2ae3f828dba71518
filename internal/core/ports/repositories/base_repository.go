package repositories

import (
	"context"
	"database/sql"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction. On the SQLite store this takes
	// the write lock immediately.
	Begin(ctx context.Context) (*sql.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx *sql.Tx) error

	// Rollback rolls back a transaction. Rolling back a finished transaction is a no-op.
	Rollback(ctx context.Context, tx *sql.Tx) error
}

// RepositoryWithTx is a marker interface for repositories that support transactions
type RepositoryWithTx interface {
	TransactionManager
}
