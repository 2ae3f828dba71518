package sqlite

import (
	"context"
	"database/sql"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/models"
	"github.com/SscSPs/shop_ledger/internal/utils/mapping"
)

type SQLiteShopRepository struct {
	BaseRepository
}

func newSQLiteShopRepository(db *sql.DB) portsrepo.ShopRepositoryFacade {
	return &SQLiteShopRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.ShopRepositoryFacade = (*SQLiteShopRepository)(nil)

const selectShopFields = `id, name, address, createdAt, updatedAt`

func scanShop(row interface{ Scan(...any) error }) (models.Shop, error) {
	var m models.Shop
	err := row.Scan(&m.ShopID, &m.Name, &m.Address, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func (r *SQLiteShopRepository) SaveShop(ctx context.Context, shop domain.Shop) error {
	m := mapping.ToModelShop(shop)
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO shop (`+selectShopFields+`) VALUES (?, ?, ?, ?, ?)`,
		m.ShopID, m.Name, m.Address, m.CreatedAt, m.LastUpdatedAt)
	return mapError(err, "save shop "+shop.ShopID)
}

func (r *SQLiteShopRepository) FindShopByID(ctx context.Context, shopID string) (*domain.Shop, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+selectShopFields+` FROM shop WHERE id = ?`, shopID)
	m, err := scanShop(row)
	if err != nil {
		return nil, mapError(err, "find shop "+shopID)
	}
	shop := mapping.ToDomainShop(m)
	return &shop, nil
}

// ListShops returns shops ordered by name.
func (r *SQLiteShopRepository) ListShops(ctx context.Context, limit int, offset int) ([]domain.Shop, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+selectShopFields+` FROM shop ORDER BY name COLLATE NOCASE, id LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, mapError(err, "list shops")
	}
	defer rows.Close()

	shops := []domain.Shop{}
	for rows.Next() {
		m, err := scanShop(rows)
		if err != nil {
			return nil, mapError(err, "scan shop")
		}
		shops = append(shops, mapping.ToDomainShop(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "list shops")
	}
	return shops, nil
}

func (r *SQLiteShopRepository) UpdateShop(ctx context.Context, shop domain.Shop) error {
	m := mapping.ToModelShop(shop)
	res, err := r.DB.ExecContext(ctx,
		`UPDATE shop SET name = ?, address = ?, updatedAt = ? WHERE id = ?`,
		m.Name, m.Address, m.LastUpdatedAt, m.ShopID)
	if err != nil {
		return mapError(err, "update shop "+shop.ShopID)
	}
	return requireAffected(res, "update shop "+shop.ShopID)
}

// DeleteShop relies on ON DELETE CASCADE for links, transactions, settlements and entries.
func (r *SQLiteShopRepository) DeleteShop(ctx context.Context, shopID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM shop WHERE id = ?`, shopID)
	if err != nil {
		return mapError(err, "delete shop "+shopID)
	}
	return requireAffected(res, "delete shop "+shopID)
}
