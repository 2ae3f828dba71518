package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger/internal/models"
	"github.com/SscSPs/shop_ledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type SQLiteSettlementRepository struct {
	BaseRepository
}

func newSQLiteSettlementRepository(db *sql.DB) portsrepo.SettlementRepositoryWithTx {
	return &SQLiteSettlementRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.SettlementRepositoryWithTx = (*SQLiteSettlementRepository)(nil)

const (
	selectSettlementFields = `id, shopId, settlementDate, periodStartDate, totalInvested, note, isCarriedForward, createdAt`

	selectEntryFields = `id, settlementId, investorId, fairShareAmount, actualPaidAmount, balanceAmount, settlementPaidAmount, settlementPaidDate`

	findLatestSettlementQuery = `
		SELECT ` + selectSettlementFields + `
		FROM year_end_settlement
		WHERE shopId = ?
		ORDER BY settlementDate DESC
		LIMIT 1`
)

func scanSettlement(row interface{ Scan(...any) error }) (models.YearEndSettlement, error) {
	var m models.YearEndSettlement
	err := row.Scan(&m.ID, &m.ShopID, &m.SettlementDate, &m.PeriodStartDate, &m.TotalInvested,
		&m.Note, &m.IsCarriedForward, &m.CreatedAt)
	return m, err
}

func scanEntry(row interface{ Scan(...any) error }) (models.SettlementEntry, error) {
	var m models.SettlementEntry
	err := row.Scan(&m.ID, &m.SettlementID, &m.InvestorID, &m.FairShareAmount, &m.ActualPaidAmount,
		&m.BalanceAmount, &m.SettlementPaidAmount, &m.SettlementPaidDate)
	return m, err
}

func collectEntries(rows *sql.Rows) ([]domain.SettlementEntry, error) {
	defer rows.Close()
	entries := []domain.SettlementEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, mapError(err, "scan settlement entry")
		}
		entries = append(entries, mapping.ToDomainSettlementEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "list settlement entries")
	}
	return entries, nil
}

func (r *SQLiteSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.YearEndSettlement, error) {
	m, err := scanSettlement(r.DB.QueryRowContext(ctx,
		`SELECT `+selectSettlementFields+` FROM year_end_settlement WHERE id = ?`, settlementID))
	if err != nil {
		return nil, mapError(err, "find settlement "+settlementID)
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+selectEntryFields+` FROM settlement_entry WHERE settlementId = ? ORDER BY rowid`, settlementID)
	if err != nil {
		return nil, mapError(err, "list entries of settlement "+settlementID)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, err
	}

	settlement := mapping.ToDomainSettlement(m)
	settlement.Entries = entries
	return &settlement, nil
}

func (r *SQLiteSettlementRepository) ListSettlementsByShop(ctx context.Context, shopID string) ([]domain.YearEndSettlement, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+selectSettlementFields+` FROM year_end_settlement WHERE shopId = ? ORDER BY settlementDate DESC`, shopID)
	if err != nil {
		return nil, mapError(err, "list settlements of shop "+shopID)
	}
	defer rows.Close()

	settlements := []domain.YearEndSettlement{}
	for rows.Next() {
		m, err := scanSettlement(rows)
		if err != nil {
			return nil, mapError(err, "scan settlement")
		}
		settlements = append(settlements, mapping.ToDomainSettlement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "list settlements of shop "+shopID)
	}
	return settlements, nil
}

func findLatestSettlement(ctx context.Context, q querier, shopID string) (*domain.YearEndSettlement, error) {
	m, err := scanSettlement(q.QueryRowContext(ctx, findLatestSettlementQuery, shopID))
	if err != nil {
		return nil, mapError(err, "find latest settlement of shop "+shopID)
	}
	settlement := mapping.ToDomainSettlement(m)
	return &settlement, nil
}

func (r *SQLiteSettlementRepository) FindLatestSettlement(ctx context.Context, shopID string) (*domain.YearEndSettlement, error) {
	return findLatestSettlement(ctx, r.DB, shopID)
}

func (r *SQLiteSettlementRepository) FindLatestSettlementInTx(ctx context.Context, tx *sql.Tx, shopID string) (*domain.YearEndSettlement, error) {
	return findLatestSettlement(ctx, tx, shopID)
}

func (r *SQLiteSettlementRepository) ListCarriedForwardEntries(ctx context.Context, shopID string) ([]domain.SettlementEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT e.id, e.settlementId, e.investorId, e.fairShareAmount, e.actualPaidAmount,
			e.balanceAmount, e.settlementPaidAmount, e.settlementPaidDate
		FROM settlement_entry e
		JOIN year_end_settlement s ON s.id = e.settlementId
		WHERE s.shopId = ? AND s.isCarriedForward = 1
		ORDER BY s.settlementDate, e.rowid`, shopID)
	if err != nil {
		return nil, mapError(err, "list carried forward entries of shop "+shopID)
	}
	return collectEntries(rows)
}

func (r *SQLiteSettlementRepository) SaveSettlementInTx(ctx context.Context, tx *sql.Tx, settlement domain.YearEndSettlement) error {
	m := mapping.ToModelSettlement(settlement)
	_, err := tx.ExecContext(ctx,
		`INSERT INTO year_end_settlement (`+selectSettlementFields+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ShopID, m.SettlementDate, m.PeriodStartDate, m.TotalInvested.StringFixed(domain.MoneyScale),
		m.Note, m.IsCarriedForward, m.CreatedAt)
	if err != nil {
		return mapError(err, "save settlement "+settlement.SettlementID)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO settlement_entry (`+selectEntryFields+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return mapError(err, "prepare settlement entry insert")
	}
	defer stmt.Close()

	for _, entry := range settlement.Entries {
		e := mapping.ToModelSettlementEntry(entry)
		_, err := stmt.ExecContext(ctx,
			e.ID, e.SettlementID, e.InvestorID,
			e.FairShareAmount.StringFixed(domain.MoneyScale),
			e.ActualPaidAmount.StringFixed(domain.MoneyScale),
			e.BalanceAmount.StringFixed(domain.MoneyScale),
			e.SettlementPaidAmount.StringFixed(domain.MoneyScale),
			e.SettlementPaidDate)
		if err != nil {
			return mapError(err, "save settlement entry "+entry.EntryID)
		}
	}
	return nil
}

func (r *SQLiteSettlementRepository) FindEntryByIDInTx(ctx context.Context, tx *sql.Tx, entryID string) (*domain.SettlementEntry, error) {
	m, err := scanEntry(tx.QueryRowContext(ctx,
		`SELECT `+selectEntryFields+` FROM settlement_entry WHERE id = ?`, entryID))
	if err != nil {
		return nil, mapError(err, "find settlement entry "+entryID)
	}
	entry := mapping.ToDomainSettlementEntry(m)
	return &entry, nil
}

func (r *SQLiteSettlementRepository) UpdateEntryPaymentInTx(ctx context.Context, tx *sql.Tx, entryID string, paidAmount decimal.Decimal, paidDate time.Time) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE settlement_entry SET settlementPaidAmount = ?, settlementPaidDate = ? WHERE id = ?`,
		paidAmount.StringFixed(domain.MoneyScale), mapping.ToMillis(paidDate), entryID)
	if err != nil {
		return mapError(err, "update payment of settlement entry "+entryID)
	}
	return requireAffected(res, "update payment of settlement entry "+entryID)
}
