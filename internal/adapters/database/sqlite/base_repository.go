package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB *sql.DB
}

// Begin starts a new database transaction. The pool DSN makes it BEGIN IMMEDIATE.
func (r *BaseRepository) Begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return apperrors.NewStorageError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx *sql.Tx) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewStorageError("failed to rollback transaction", err)
	}
	return nil
}

// mapError translates driver errors into application errors. what names the
// operation for the message.
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return fmt.Errorf("%w: %s: %v", apperrors.ErrDuplicate, what, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %s: referenced row does not exist", apperrors.ErrNotFound, what)
		}
	}
	return apperrors.NewStorageError("failed to "+what, err)
}

// requireAffected turns an UPDATE or DELETE that touched nothing into ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError("failed to "+what, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return nil
}
