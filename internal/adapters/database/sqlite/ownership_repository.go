package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/models"
	"github.com/SscSPs/shop_ledger/internal/utils/mapping"
)

type SQLiteOwnershipRepository struct {
	BaseRepository
}

func newSQLiteOwnershipRepository(db *sql.DB) portsrepo.OwnershipRepositoryWithTx {
	return &SQLiteOwnershipRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.OwnershipRepositoryWithTx = (*SQLiteOwnershipRepository)(nil)

const (
	selectLinkFields = `id, shopId, investorId, sharePercentage, status, joinedDate, endedDate, createdAt, updatedAt`

	findLinkByIDQuery = `SELECT ` + selectLinkFields + ` FROM shop_investor WHERE id = ?`
)

func scanLink(row interface{ Scan(...any) error }) (models.ShopInvestor, error) {
	var m models.ShopInvestor
	err := row.Scan(&m.ID, &m.ShopID, &m.InvestorID, &m.SharePercentage, &m.Status,
		&m.JoinedDate, &m.EndedDate, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func findLink(ctx context.Context, q querier, linkID string) (*domain.OwnershipLink, error) {
	m, err := scanLink(q.QueryRowContext(ctx, findLinkByIDQuery, linkID))
	if err != nil {
		return nil, mapError(err, "find ownership link "+linkID)
	}
	link := mapping.ToDomainOwnershipLink(m)
	return &link, nil
}

func collectLinks(rows *sql.Rows) ([]domain.OwnershipLink, error) {
	defer rows.Close()
	links := []domain.OwnershipLink{}
	for rows.Next() {
		m, err := scanLink(rows)
		if err != nil {
			return nil, mapError(err, "scan ownership link")
		}
		links = append(links, mapping.ToDomainOwnershipLink(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "list ownership links")
	}
	return links, nil
}

func (r *SQLiteOwnershipRepository) FindLinkByID(ctx context.Context, linkID string) (*domain.OwnershipLink, error) {
	return findLink(ctx, r.DB, linkID)
}

func (r *SQLiteOwnershipRepository) FindLinkByIDInTx(ctx context.Context, tx *sql.Tx, linkID string) (*domain.OwnershipLink, error) {
	return findLink(ctx, tx, linkID)
}

func listLinksByShop(ctx context.Context, q querier, shopID string, includeInactive bool) ([]domain.OwnershipLink, error) {
	query := `SELECT ` + selectLinkFields + ` FROM shop_investor WHERE shopId = ?`
	if !includeInactive {
		query += ` AND status = 'ACTIVE'`
	}
	query += ` ORDER BY joinedDate, id`

	rows, err := q.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, mapError(err, "list ownership links of shop "+shopID)
	}
	return collectLinks(rows)
}

func (r *SQLiteOwnershipRepository) ListLinksByShop(ctx context.Context, shopID string, includeInactive bool) ([]domain.OwnershipLink, error) {
	return listLinksByShop(ctx, r.DB, shopID, includeInactive)
}

func (r *SQLiteOwnershipRepository) ListLinksByShopInTx(ctx context.Context, tx *sql.Tx, shopID string, includeInactive bool) ([]domain.OwnershipLink, error) {
	return listLinksByShop(ctx, tx, shopID, includeInactive)
}

func (r *SQLiteOwnershipRepository) FindActiveLink(ctx context.Context, shopID, investorID string, asOf time.Time) (*domain.OwnershipLink, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+selectLinkFields+`
		FROM shop_investor
		WHERE shopId = ? AND investorId = ? AND status = 'ACTIVE' AND joinedDate <= ?
		ORDER BY joinedDate DESC, id DESC
		LIMIT 1`,
		shopID, investorID, mapping.ToMillis(asOf))
	m, err := scanLink(row)
	if err != nil {
		return nil, mapError(err, "find active link of investor "+investorID+" in shop "+shopID)
	}
	link := mapping.ToDomainOwnershipLink(m)
	return &link, nil
}

func (r *SQLiteOwnershipRepository) SaveLinkInTx(ctx context.Context, tx *sql.Tx, link domain.OwnershipLink) error {
	m := mapping.ToModelShopInvestor(link)
	_, err := tx.ExecContext(ctx,
		`INSERT INTO shop_investor (`+selectLinkFields+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ShopID, m.InvestorID, m.SharePercentage.String(), m.Status,
		m.JoinedDate, m.EndedDate, m.CreatedAt, m.LastUpdatedAt)
	return mapError(err, "save ownership link "+link.LinkID)
}

func (r *SQLiteOwnershipRepository) UpdateLinkStatusInTx(ctx context.Context, tx *sql.Tx, linkID string, status domain.LinkStatus, updatedAt time.Time) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE shop_investor SET status = ?, updatedAt = ? WHERE id = ?`,
		string(status), mapping.ToMillis(updatedAt), linkID)
	if err != nil {
		return mapError(err, "update status of ownership link "+linkID)
	}
	return requireAffected(res, "update status of ownership link "+linkID)
}

// EndLinkInTx marks a link inactive as of endedDate, keeping it the investor's
// holding for periods that end on or before that date.
func (r *SQLiteOwnershipRepository) EndLinkInTx(ctx context.Context, tx *sql.Tx, linkID string, endedDate, updatedAt time.Time) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE shop_investor SET status = ?, endedDate = ?, updatedAt = ? WHERE id = ?`,
		string(domain.LinkInactive), mapping.ToMillis(endedDate), mapping.ToMillis(updatedAt), linkID)
	if err != nil {
		return mapError(err, "end ownership link "+linkID)
	}
	return requireAffected(res, "end ownership link "+linkID)
}
