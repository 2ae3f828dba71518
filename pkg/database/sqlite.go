package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const driverName = "sqlite"

var migrationFileRe = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.up\.sql$`)

// Migration describes one schema step, from version From to version To.
type Migration struct {
	From uint
	To   uint
	Name string
}

// Migrations returns the embedded schema steps in application order.
// It fails when the versions are not contiguous starting at 1.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		match := migrationFileRe.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		version, err := strconv.ParseUint(match[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version in %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{From: uint(version) - 1, To: uint(version), Name: match[2]})
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].To < migrations[j].To })

	for i, m := range migrations {
		if m.To != uint(i+1) {
			return nil, fmt.Errorf("%w: migration %d (%s) breaks the version sequence", apperrors.ErrMigration, m.To, m.Name)
		}
	}
	return migrations, nil
}

// LatestVersion is the schema version this binary migrates to.
func LatestVersion() (uint, error) {
	migrations, err := Migrations()
	if err != nil {
		return 0, err
	}
	if len(migrations) == 0 {
		return 0, nil
	}
	return migrations[len(migrations)-1].To, nil
}

// DSN builds the connection string for the application pool. Every pooled
// connection enforces foreign keys, and write transactions take the lock at BEGIN.
func DSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
}

func migrationDSN(path string) string {
	return path + "?_pragma=foreign_keys(0)&_pragma=busy_timeout(5000)"
}

// Open creates (if needed) and migrates the ledger store at path, verifies its
// integrity and returns the application connection pool.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if strings.Contains(path, ":memory:") {
		return nil, fmt.Errorf("in-memory databases are not supported, use a file path")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	latest, err := LatestVersion()
	if err != nil {
		return nil, err
	}
	if err := migrateTo(path, latest, logger); err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := verify(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Ledger store opened", slog.String("path", path), slog.Uint64("schemaVersion", uint64(latest)))
	return db, nil
}

// Close closes the application connection pool.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("Error closing ledger store", slog.String("error", err.Error()))
		return
	}
	logger.Info("Ledger store closed.")
}

// migrateTo applies the embedded migrations up to target on a dedicated
// connection with foreign keys disabled. The migrate driver owns that
// connection and closes it.
func migrateTo(path string, target uint, logger *slog.Logger) error {
	migrationDB, err := sql.Open(driverName, migrationDSN(path))
	if err != nil {
		return fmt.Errorf("%w: failed to open migration connection: %v", apperrors.ErrMigration, err)
	}

	driver, err := sqlite.WithInstance(migrationDB, &sqlite.Config{})
	if err != nil {
		migrationDB.Close()
		return fmt.Errorf("%w: could not create sqlite driver instance: %v", apperrors.ErrMigration, err)
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		driver.Close()
		return fmt.Errorf("%w: could not read embedded migrations: %v", apperrors.ErrMigration, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		source.Close()
		driver.Close()
		return fmt.Errorf("%w: could not create migrate instance: %v", apperrors.ErrMigration, err)
	}
	defer func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil {
			logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		}
		if dbErr != nil {
			logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		}
	}()

	current, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		current = 0
	case err != nil:
		return fmt.Errorf("%w: failed to read schema version: %v", apperrors.ErrMigration, err)
	case dirty:
		return fmt.Errorf("%w: schema version %d is dirty", apperrors.ErrMigration, current)
	}

	latest, err := LatestVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("%w: schema version %d is newer than supported version %d", apperrors.ErrMigration, current, latest)
	}
	if current > target {
		return fmt.Errorf("%w: schema version %d is ahead of target %d and migrations are irreversible", apperrors.ErrMigration, current, target)
	}

	err = m.Migrate(target)
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Debug("No new migrations to apply", slog.Uint64("version", uint64(current)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: failed to apply migrations: %v", apperrors.ErrMigration, err)
	}

	logger.Info("Database migrations applied",
		slog.Uint64("from", uint64(current)),
		slog.Uint64("to", uint64(target)))
	return nil
}

// verify rejects a store whose rows violate foreign keys or whose pages are corrupt.
func verify(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx, "PRAGMA foreign_key_check")
	if err != nil {
		return fmt.Errorf("%w: foreign key check failed: %v", apperrors.ErrMigration, err)
	}
	violations := 0
	for rows.Next() {
		violations++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: foreign key check failed: %v", apperrors.ErrMigration, err)
	}
	if violations > 0 {
		return fmt.Errorf("%w: %d foreign key violations after migration", apperrors.ErrMigration, violations)
	}

	var result string
	if err := db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("%w: integrity check failed: %v", apperrors.ErrMigration, err)
	}
	if result != "ok" {
		return fmt.Errorf("%w: integrity check reported %q", apperrors.ErrMigration, result)
	}
	return nil
}
