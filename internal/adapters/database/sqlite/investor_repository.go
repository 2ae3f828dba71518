package sqlite

import (
	"context"
	"database/sql"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/models"
	"github.com/SscSPs/shop_ledger/internal/utils/mapping"
)

type SQLiteInvestorRepository struct {
	BaseRepository
}

func newSQLiteInvestorRepository(db *sql.DB) portsrepo.InvestorRepositoryFacade {
	return &SQLiteInvestorRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.InvestorRepositoryFacade = (*SQLiteInvestorRepository)(nil)

const selectInvestorFields = `id, name, createdAt, updatedAt`

func scanInvestor(row interface{ Scan(...any) error }) (models.Investor, error) {
	var m models.Investor
	err := row.Scan(&m.InvestorID, &m.Name, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func (r *SQLiteInvestorRepository) SaveInvestor(ctx context.Context, investor domain.Investor) error {
	m := mapping.ToModelInvestor(investor)
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO investor (`+selectInvestorFields+`) VALUES (?, ?, ?, ?)`,
		m.InvestorID, m.Name, m.CreatedAt, m.LastUpdatedAt)
	return mapError(err, "save investor "+investor.InvestorID)
}

func (r *SQLiteInvestorRepository) FindInvestorByID(ctx context.Context, investorID string) (*domain.Investor, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+selectInvestorFields+` FROM investor WHERE id = ?`, investorID)
	m, err := scanInvestor(row)
	if err != nil {
		return nil, mapError(err, "find investor "+investorID)
	}
	investor := mapping.ToDomainInvestor(m)
	return &investor, nil
}

func (r *SQLiteInvestorRepository) ListInvestors(ctx context.Context, limit int, offset int) ([]domain.Investor, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+selectInvestorFields+` FROM investor ORDER BY name COLLATE NOCASE, id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, mapError(err, "list investors")
	}
	defer rows.Close()

	investors := []domain.Investor{}
	for rows.Next() {
		m, err := scanInvestor(rows)
		if err != nil {
			return nil, mapError(err, "scan investor")
		}
		investors = append(investors, mapping.ToDomainInvestor(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "list investors")
	}
	return investors, nil
}

func (r *SQLiteInvestorRepository) UpdateInvestor(ctx context.Context, investor domain.Investor) error {
	m := mapping.ToModelInvestor(investor)
	res, err := r.DB.ExecContext(ctx,
		`UPDATE investor SET name = ?, updatedAt = ? WHERE id = ?`,
		m.Name, m.LastUpdatedAt, m.InvestorID)
	if err != nil {
		return mapError(err, "update investor "+investor.InvestorID)
	}
	return requireAffected(res, "update investor "+investor.InvestorID)
}

func (r *SQLiteInvestorRepository) DeleteInvestor(ctx context.Context, investorID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM investor WHERE id = ?`, investorID)
	if err != nil {
		return mapError(err, "delete investor "+investorID)
	}
	return requireAffected(res, "delete investor "+investorID)
}
