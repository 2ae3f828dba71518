package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/metrics"
	"github.com/SscSPs/shop_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// investmentService is the transaction ledger. Transactions are append-only.
type investmentService struct {
	BaseService
	investmentRepo portsrepo.InvestmentRepositoryFacade
	ownershipRepo  portsrepo.OwnershipReader
	settlementRepo portsrepo.SettlementReader
	metrics        *metrics.LedgerMetrics
}

func NewInvestmentService(
	investmentRepo portsrepo.InvestmentRepositoryFacade,
	ownershipRepo portsrepo.OwnershipReader,
	settlementRepo portsrepo.SettlementReader,
	m *metrics.LedgerMetrics,
) portssvc.InvestmentSvcFacade {
	return &investmentService{
		investmentRepo: investmentRepo,
		ownershipRepo:  ownershipRepo,
		settlementRepo: settlementRepo,
		metrics:        m,
	}
}

var _ portssvc.InvestmentSvcFacade = (*investmentService)(nil)

// Record rejects dates before the link joined and dates inside a period the
// shop has already settled, since no later settlement would count them.
func (s *investmentService) Record(ctx context.Context, linkID string, amount decimal.Decimal, date time.Time, phase, note string) (*domain.InvestmentTransaction, error) {
	link, err := s.ownershipRepo.FindLinkByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if !link.IsActive() {
		return nil, fmt.Errorf("%w: link %s is inactive", apperrors.ErrValidation, linkID)
	}
	if date.IsZero() {
		date = nowUTC()
	}
	date = toStoredPrecision(date)
	if date.Before(link.JoinedDate) {
		return nil, fmt.Errorf("%w: transaction date %s precedes the link's join date %s", apperrors.ErrValidation,
			date.Format(time.RFC3339), link.JoinedDate.Format(time.RFC3339))
	}
	latest, err := s.settlementRepo.FindLatestSettlement(ctx, link.ShopID)
	switch {
	case err == nil:
		if date.Before(latest.SettlementDate) {
			return nil, fmt.Errorf("%w: transaction date %s falls in a period settled up to %s", apperrors.ErrValidation,
				date.Format(time.RFC3339), latest.SettlementDate.Format(time.RFC3339))
		}
	case !isNotFound(err):
		return nil, err
	}

	txn := domain.InvestmentTransaction{
		TransactionID:   uuid.NewString(),
		LinkID:          linkID,
		Amount:          amount,
		TransactionDate: date,
		Phase:           strings.TrimSpace(phase),
		Note:            strings.TrimSpace(note),
		CreatedAt:       nowUTC(),
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.investmentRepo.SaveInvestmentTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save investment transaction", slog.String("link_id", linkID))
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}
	s.metrics.IncTransactionRecorded(txn.Phase)

	s.LogInfo(ctx, "Investment transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("link_id", linkID),
		slog.String("amount", txn.Amount.String()),
		slog.String("phase", txn.Phase))
	return &txn, nil
}

func (s *investmentService) SumByLinkInPeriod(ctx context.Context, linkID string, start, end time.Time) (decimal.Decimal, error) {
	if start.After(end) {
		return decimal.Zero, fmt.Errorf("%w: period start %s is after end %s", apperrors.ErrValidation,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	if _, err := s.ownershipRepo.FindLinkByID(ctx, linkID); err != nil {
		return decimal.Zero, err
	}

	amounts, err := s.investmentRepo.ListAmountsByLinkInPeriod(ctx, linkID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to list amounts", slog.String("link_id", linkID))
		return decimal.Zero, fmt.Errorf("failed to sum transactions of link %s: %w", linkID, err)
	}
	return accounting.SumAmounts(amounts), nil
}

func (s *investmentService) ListTransactions(ctx context.Context, linkID string, limit int, nextToken *string) ([]domain.InvestmentTransaction, *string, error) {
	limit, _, err := normalizeListLimit(limit, 0)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.ownershipRepo.FindLinkByID(ctx, linkID); err != nil {
		return nil, nil, err
	}
	return s.investmentRepo.ListTransactionsByLink(ctx, linkID, limit, nextToken)
}
