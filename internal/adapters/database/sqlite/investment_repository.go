package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/models"
	"github.com/SscSPs/shop_ledger/internal/utils/mapping"
	"github.com/SscSPs/shop_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type SQLiteInvestmentRepository struct {
	BaseRepository
}

func newSQLiteInvestmentRepository(db *sql.DB) portsrepo.InvestmentRepositoryFacade {
	return &SQLiteInvestmentRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.InvestmentRepositoryFacade = (*SQLiteInvestmentRepository)(nil)

const (
	selectTransactionFields = `id, shopInvestorId, amount, transactionDate, phase, note, createdAt`

	listAmountsInPeriodQuery = `
		SELECT amount FROM investment_transaction
		WHERE shopInvestorId = ? AND transactionDate >= ? AND transactionDate < ?`
)

func (r *SQLiteInvestmentRepository) SaveInvestmentTransaction(ctx context.Context, txn domain.InvestmentTransaction) error {
	m := mapping.ToModelInvestmentTransaction(txn)
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO investment_transaction (`+selectTransactionFields+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ShopInvestorID, m.Amount.StringFixed(domain.MoneyScale), m.TransactionDate, m.Phase, m.Note, m.CreatedAt)
	return mapError(err, "save investment transaction "+txn.TransactionID)
}

// ListTransactionsByLink pages newest first on (transactionDate, id).
func (r *SQLiteInvestmentRepository) ListTransactionsByLink(ctx context.Context, linkID string, limit int, nextToken *string) ([]domain.InvestmentTransaction, *string, error) {
	query := `SELECT ` + selectTransactionFields + ` FROM investment_transaction WHERE shopInvestorId = ?`
	args := []any{linkID}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (transactionDate < ? OR (transactionDate = ? AND id < ?))`
		args = append(args, cursor.At, cursor.At, cursor.ID)
	}
	query += ` ORDER BY transactionDate DESC, id DESC LIMIT ?`
	// One extra row tells whether another page exists.
	args = append(args, limit+1)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "list transactions of link "+linkID)
	}
	defer rows.Close()

	var page []models.InvestmentTransaction
	for rows.Next() {
		var m models.InvestmentTransaction
		if err := rows.Scan(&m.ID, &m.ShopInvestorID, &m.Amount, &m.TransactionDate, &m.Phase, &m.Note, &m.CreatedAt); err != nil {
			return nil, nil, mapError(err, "scan investment transaction")
		}
		page = append(page, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapError(err, "list transactions of link "+linkID)
	}

	var token *string
	if len(page) > limit {
		page = page[:limit]
		last := page[len(page)-1]
		t := pagination.EncodeCursor(pagination.Cursor{At: last.TransactionDate, ID: last.ID})
		token = &t
	}

	txns := make([]domain.InvestmentTransaction, 0, len(page))
	for _, m := range page {
		txns = append(txns, mapping.ToDomainInvestmentTransaction(m))
	}
	return txns, token, nil
}

func listAmounts(ctx context.Context, q querier, linkID string, start, end time.Time) ([]decimal.Decimal, error) {
	rows, err := q.QueryContext(ctx, listAmountsInPeriodQuery, linkID, mapping.ToMillis(start), mapping.ToMillis(end))
	if err != nil {
		return nil, mapError(err, "list amounts of link "+linkID)
	}
	defer rows.Close()

	amounts := []decimal.Decimal{}
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return nil, mapError(err, "scan amount")
		}
		amounts = append(amounts, amount)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "list amounts of link "+linkID)
	}
	return amounts, nil
}

func (r *SQLiteInvestmentRepository) ListAmountsByLinkInPeriod(ctx context.Context, linkID string, start, end time.Time) ([]decimal.Decimal, error) {
	return listAmounts(ctx, r.DB, linkID, start, end)
}

func (r *SQLiteInvestmentRepository) ListAmountsByLinkInPeriodInTx(ctx context.Context, tx *sql.Tx, linkID string, start, end time.Time) ([]decimal.Decimal, error) {
	return listAmounts(ctx, tx, linkID, start, end)
}
