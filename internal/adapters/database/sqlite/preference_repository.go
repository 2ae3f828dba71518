package sqlite

import (
	"context"
	"database/sql"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/models"
	"github.com/SscSPs/shop_ledger/internal/utils/mapping"
)

type SQLitePreferenceRepository struct {
	BaseRepository
}

func newSQLitePreferenceRepository(db *sql.DB) portsrepo.PreferenceRepositoryFacade {
	return &SQLitePreferenceRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.PreferenceRepositoryFacade = (*SQLitePreferenceRepository)(nil)

func (r *SQLitePreferenceRepository) FindPreference(ctx context.Context, key string) (*domain.Preference, error) {
	var m models.Preference
	err := r.DB.QueryRowContext(ctx, `SELECT key, value, updatedAt FROM preference WHERE key = ?`, key).
		Scan(&m.Key, &m.Value, &m.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "find preference "+key)
	}
	pref := mapping.ToDomainPreference(m)
	return &pref, nil
}

func (r *SQLitePreferenceRepository) SavePreference(ctx context.Context, pref domain.Preference) error {
	m := mapping.ToModelPreference(pref)
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO preference (key, value, updatedAt) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updatedAt = excluded.updatedAt`,
		m.Key, m.Value, m.UpdatedAt)
	return mapError(err, "save preference "+pref.Key)
}
