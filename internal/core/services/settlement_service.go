package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
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

// settlementService is the settlement engine. Closes of the same shop are
// serialized in process; the store's immediate write transaction covers the rest.
type settlementService struct {
	BaseService
	settlementRepo portsrepo.SettlementRepositoryWithTx
	ownershipRepo  portsrepo.OwnershipRepositoryFacade
	investmentRepo portsrepo.InvestmentRepositoryFacade
	shopRepo       portsrepo.ShopReader
	syncer         portssvc.ShopDocumentSyncer
	metrics        *metrics.LedgerMetrics
	shopLocks      *keyedMutex
}

func NewSettlementService(
	settlementRepo portsrepo.SettlementRepositoryWithTx,
	ownershipRepo portsrepo.OwnershipRepositoryFacade,
	investmentRepo portsrepo.InvestmentRepositoryFacade,
	shopRepo portsrepo.ShopReader,
	syncer portssvc.ShopDocumentSyncer,
	m *metrics.LedgerMetrics,
) portssvc.SettlementSvcFacade {
	return &settlementService{
		settlementRepo: settlementRepo,
		ownershipRepo:  ownershipRepo,
		investmentRepo: investmentRepo,
		shopRepo:       shopRepo,
		syncer:         syncer,
		metrics:        m,
		shopLocks:      newKeyedMutex(),
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

func (s *settlementService) GetSettlement(ctx context.Context, settlementID string) (*domain.YearEndSettlement, error) {
	return s.settlementRepo.FindSettlementByID(ctx, settlementID)
}

func (s *settlementService) ListSettlements(ctx context.Context, shopID string) ([]domain.YearEndSettlement, error) {
	if _, err := s.shopRepo.FindShopByID(ctx, shopID); err != nil {
		return nil, err
	}
	settlements, err := s.settlementRepo.ListSettlementsByShop(ctx, shopID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list settlements", slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to list settlements of shop %s: %w", shopID, err)
	}
	return settlements, nil
}

func (s *settlementService) NextPeriodStart(ctx context.Context, shopID string) (time.Time, error) {
	if _, err := s.shopRepo.FindShopByID(ctx, shopID); err != nil {
		return time.Time{}, err
	}
	latest, err := s.settlementRepo.FindLatestSettlement(ctx, shopID)
	if isNotFound(err) {
		return domain.Inception, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return latest.SettlementDate, nil
}

// OutstandingBalances reports, per investor, what is still owed (positive) or
// owed back (negative) across the shop's carried-forward settlements.
func (s *settlementService) OutstandingBalances(ctx context.Context, shopID string) ([]domain.OutstandingBalance, error) {
	if _, err := s.shopRepo.FindShopByID(ctx, shopID); err != nil {
		return nil, err
	}
	entries, err := s.settlementRepo.ListCarriedForwardEntries(ctx, shopID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list carried forward entries", slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to compute outstanding balances: %w", err)
	}

	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		totals[e.InvestorID] = totals[e.InvestorID].Add(e.Outstanding())
	}

	balances := make([]domain.OutstandingBalance, 0, len(totals))
	for investorID, amount := range totals {
		if amount.IsZero() {
			continue
		}
		balances = append(balances, domain.OutstandingBalance{InvestorID: investorID, Amount: amount})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].InvestorID < balances[j].InvestorID })
	return balances, nil
}

// CloseSettlement reconciles [periodStart, periodEnd) for the shop.
//
// Every investor holding a link as of periodEnd gets one entry: an active link
// that joined before periodEnd, or a link replaced by a share change effective
// on or after periodEnd. Their actual payment is the sum of the period's
// transactions on all of the investor's links in the shop. The persisted settlement and all entries commit together.
func (s *settlementService) CloseSettlement(ctx context.Context, shopID string, periodStart, periodEnd time.Time, carryForward bool, note string) (settlement *domain.YearEndSettlement, err error) {
	started := time.Now()
	defer func() { s.metrics.ObserveSettlementClose(started, err) }()

	logger := s.GetLogger(ctx).With(slog.String("shop_id", shopID))
	periodStart, periodEnd = toStoredPrecision(periodStart), toStoredPrecision(periodEnd)

	if !periodEnd.After(periodStart) {
		return nil, fmt.Errorf("%w: period end %s must be after period start %s", apperrors.ErrInvalidPeriod,
			periodEnd.Format(time.RFC3339), periodStart.Format(time.RFC3339))
	}
	if _, err := s.shopRepo.FindShopByID(ctx, shopID); err != nil {
		return nil, err
	}

	unlock := s.shopLocks.Lock(shopID)
	defer unlock()

	tx, err := s.settlementRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rbErr := s.settlementRepo.Rollback(ctx, tx); rbErr != nil {
			logger.Error("Failed to rollback settlement", slog.String("error", rbErr.Error()))
		}
	}()

	expectedStart := domain.Inception
	latest, err := s.settlementRepo.FindLatestSettlementInTx(ctx, tx, shopID)
	switch {
	case err == nil:
		expectedStart = latest.SettlementDate
	case !isNotFound(err):
		return nil, err
	}
	if !periodStart.Equal(expectedStart) {
		logger.Warn("Settlement period is not contiguous",
			slog.Time("period_start", periodStart),
			slog.Time("expected_start", expectedStart))
		return nil, fmt.Errorf("%w: period must start at %s, the previous settlement date", apperrors.ErrInvalidPeriod,
			expectedStart.Format(time.RFC3339))
	}

	links, err := s.ownershipRepo.ListLinksByShopInTx(ctx, tx, shopID, true)
	if err != nil {
		return nil, err
	}
	holdings, err := s.buildHoldings(ctx, tx, links, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return nil, fmt.Errorf("%w: shop %s has no active investors in the period", apperrors.ErrValidation, shopID)
	}

	allocations, total, err := accounting.AllocateFairShares(holdings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	closed := domain.YearEndSettlement{
		SettlementID:     uuid.NewString(),
		ShopID:           shopID,
		PeriodStartDate:  periodStart,
		SettlementDate:   periodEnd,
		TotalInvested:    total,
		Note:             strings.TrimSpace(note),
		IsCarriedForward: carryForward,
		CreatedAt:        nowUTC(),
	}
	closed.Entries = make([]domain.SettlementEntry, 0, len(allocations))
	for _, a := range allocations {
		closed.Entries = append(closed.Entries, domain.SettlementEntry{
			EntryID:              uuid.NewString(),
			SettlementID:         closed.SettlementID,
			InvestorID:           a.InvestorID,
			FairShareAmount:      a.FairShare,
			ActualPaidAmount:     a.ActualPaid,
			BalanceAmount:        a.Balance,
			SettlementPaidAmount: decimal.Zero,
		})
	}

	if err := s.settlementRepo.SaveSettlementInTx(ctx, tx, closed); err != nil {
		logger.Error("Failed to save settlement", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save settlement: %w", err)
	}
	if err := s.settlementRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Settlement closed",
		slog.String("settlement_id", closed.SettlementID),
		slog.String("total_invested", closed.TotalInvested.String()),
		slog.Int("entries", len(closed.Entries)),
		slog.Bool("carry_forward", carryForward))

	syncShopDocument(ctx, &s.BaseService, s.syncer, shopID, map[string]any{
		"lastSettlementId":   closed.SettlementID,
		"lastSettlementDate": closed.SettlementDate.UnixMilli(),
		"totalInvested":      closed.TotalInvested.StringFixed(domain.MoneyScale),
	})
	return &closed, nil
}

// buildHoldings turns the shop's links into one holding per investor whose
// link is held as of periodEnd.
func (s *settlementService) buildHoldings(ctx context.Context, tx *sql.Tx, links []domain.OwnershipLink, periodStart, periodEnd time.Time) ([]accounting.Holding, error) {
	linksByInvestor := make(map[string][]string)
	for _, l := range links {
		linksByInvestor[l.InvestorID] = append(linksByInvestor[l.InvestorID], l.LinkID)
	}

	var holdings []accounting.Holding
	for _, l := range links {
		if !l.HeldAsOf(periodEnd) {
			continue
		}
		actual := decimal.Zero
		for _, linkID := range linksByInvestor[l.InvestorID] {
			amounts, err := s.investmentRepo.ListAmountsByLinkInPeriodInTx(ctx, tx, linkID, periodStart, periodEnd)
			if err != nil {
				return nil, err
			}
			actual = actual.Add(accounting.SumAmounts(amounts))
		}
		holdings = append(holdings, accounting.Holding{
			LinkID:          l.LinkID,
			InvestorID:      l.InvestorID,
			SharePercentage: l.SharePercentage,
			JoinedDate:      l.JoinedDate,
			ActualPaid:      actual,
		})
	}
	return holdings, nil
}

// RecordSettlementPayment adds amount to the entry's settled total. The settled
// total may never exceed the absolute balance.
func (s *settlementService) RecordSettlementPayment(ctx context.Context, entryID string, amount decimal.Decimal, paidDate time.Time) (*domain.SettlementEntry, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if !amount.Equal(amount.Truncate(domain.MoneyScale)) {
		return nil, fmt.Errorf("%w: payment amount %s has more than %d decimal places", apperrors.ErrValidation, amount.String(), domain.MoneyScale)
	}
	if paidDate.IsZero() {
		paidDate = nowUTC()
	}
	paidDate = toStoredPrecision(paidDate)

	tx, err := s.settlementRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rbErr := s.settlementRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to rollback settlement payment", slog.String("entry_id", entryID))
		}
	}()

	entry, err := s.settlementRepo.FindEntryByIDInTx(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	paid := entry.SettlementPaidAmount.Add(amount)
	if paid.GreaterThan(entry.BalanceAmount.Abs()) {
		return nil, fmt.Errorf("%w: payment of %s would settle %s against a balance of %s", apperrors.ErrValidation,
			amount.StringFixed(domain.MoneyScale), paid.StringFixed(domain.MoneyScale), entry.BalanceAmount.Abs().StringFixed(domain.MoneyScale))
	}

	if err := s.settlementRepo.UpdateEntryPaymentInTx(ctx, tx, entryID, paid, paidDate); err != nil {
		return nil, fmt.Errorf("failed to record settlement payment: %w", err)
	}
	if err := s.settlementRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}
	s.metrics.IncSettlementPayment()

	entry.SettlementPaidAmount = paid
	entry.SettlementPaidDate = &paidDate
	s.LogInfo(ctx, "Settlement payment recorded", slog.String("entry_id", entryID), slog.String("amount", amount.String()))
	return entry, nil
}
