package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ownershipService is the ownership registry: it owns the shop_investor links
// and guards the 100% cap on active shares.
type ownershipService struct {
	BaseService
	ownershipRepo portsrepo.OwnershipRepositoryWithTx
	shopRepo      portsrepo.ShopReader
	investorRepo  portsrepo.InvestorReader
}

func NewOwnershipService(
	ownershipRepo portsrepo.OwnershipRepositoryWithTx,
	shopRepo portsrepo.ShopReader,
	investorRepo portsrepo.InvestorReader,
) portssvc.OwnershipSvcFacade {
	return &ownershipService{
		ownershipRepo: ownershipRepo,
		shopRepo:      shopRepo,
		investorRepo:  investorRepo,
	}
}

var _ portssvc.OwnershipSvcFacade = (*ownershipService)(nil)

func (s *ownershipService) GetLink(ctx context.Context, linkID string) (*domain.OwnershipLink, error) {
	return s.ownershipRepo.FindLinkByID(ctx, linkID)
}

func (s *ownershipService) ListLinks(ctx context.Context, shopID string, includeInactive bool) ([]domain.OwnershipLink, error) {
	if _, err := s.shopRepo.FindShopByID(ctx, shopID); err != nil {
		return nil, err
	}
	links, err := s.ownershipRepo.ListLinksByShop(ctx, shopID, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ownership links", slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to list links of shop %s: %w", shopID, err)
	}
	return links, nil
}

func (s *ownershipService) ActiveShareOf(ctx context.Context, shopID, investorID string, asOf time.Time) (decimal.Decimal, error) {
	if asOf.IsZero() {
		asOf = nowUTC()
	}
	link, err := s.ownershipRepo.FindActiveLink(ctx, shopID, investorID, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return link.SharePercentage, nil
}

func (s *ownershipService) AddInvestor(ctx context.Context, shopID, investorID string, sharePercentage decimal.Decimal, joinedDate time.Time) (*domain.OwnershipLink, error) {
	logger := s.GetLogger(ctx).With(slog.String("shop_id", shopID), slog.String("investor_id", investorID))

	if err := accounting.ValidateShareCap(nil, sharePercentage); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if _, err := s.shopRepo.FindShopByID(ctx, shopID); err != nil {
		return nil, err
	}
	if _, err := s.investorRepo.FindInvestorByID(ctx, investorID); err != nil {
		return nil, err
	}
	if joinedDate.IsZero() {
		joinedDate = nowUTC()
	}
	joinedDate = toStoredPrecision(joinedDate)

	tx, err := s.ownershipRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rbErr := s.ownershipRepo.Rollback(ctx, tx); rbErr != nil {
			logger.Error("Failed to rollback add investor", slog.String("error", rbErr.Error()))
		}
	}()

	active, err := s.ownershipRepo.ListLinksByShopInTx(ctx, tx, shopID, false)
	if err != nil {
		return nil, err
	}
	shares := make([]decimal.Decimal, 0, len(active))
	for _, l := range active {
		if l.InvestorID == investorID {
			return nil, fmt.Errorf("%w: investor %s already holds active link %s in shop %s; change its share instead",
				apperrors.ErrDuplicate, investorID, l.LinkID, shopID)
		}
		shares = append(shares, l.SharePercentage)
	}
	if err := accounting.ValidateShareCap(shares, sharePercentage); err != nil {
		logger.Warn("Share cap exceeded", slog.String("requested_share", sharePercentage.String()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := nowUTC()
	newLink := domain.OwnershipLink{
		LinkID:          uuid.NewString(),
		ShopID:          shopID,
		InvestorID:      investorID,
		SharePercentage: sharePercentage,
		Status:          domain.LinkActive,
		JoinedDate:      joinedDate,
		AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.ownershipRepo.SaveLinkInTx(ctx, tx, newLink); err != nil {
		logger.Error("Failed to save ownership link", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to add investor to shop: %w", err)
	}
	if err := s.ownershipRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Investor added to shop", slog.String("link_id", newLink.LinkID), slog.String("share", newLink.SharePercentage.String()))
	return &newLink, nil
}

// DeactivateInvestor is idempotent: an inactive link is returned unchanged.
func (s *ownershipService) DeactivateInvestor(ctx context.Context, linkID string) (*domain.OwnershipLink, error) {
	tx, err := s.ownershipRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rbErr := s.ownershipRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to rollback deactivation", slog.String("link_id", linkID))
		}
	}()

	link, err := s.ownershipRepo.FindLinkByIDInTx(ctx, tx, linkID)
	if err != nil {
		return nil, err
	}
	if !link.IsActive() {
		s.LogDebug(ctx, "Link already inactive", slog.String("link_id", linkID))
		return link, nil
	}

	now := nowUTC()
	if err := s.ownershipRepo.UpdateLinkStatusInTx(ctx, tx, linkID, domain.LinkInactive, now); err != nil {
		return nil, fmt.Errorf("failed to deactivate link %s: %w", linkID, err)
	}
	if err := s.ownershipRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	link.Status = domain.LinkInactive
	link.LastUpdatedAt = now
	s.LogInfo(ctx, "Investor deactivated", slog.String("link_id", linkID), slog.String("shop_id", link.ShopID))
	return link, nil
}

// ChangeShare closes the link and opens a replacement for the same investor, so
// that transactions already recorded stay attached to the share they were made under.
// The old link ends at effectiveDate and still carries the investor's share for
// periods ending on or before it.
func (s *ownershipService) ChangeShare(ctx context.Context, linkID string, sharePercentage decimal.Decimal, effectiveDate time.Time) (*domain.OwnershipLink, error) {
	if err := accounting.ValidateShareCap(nil, sharePercentage); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if effectiveDate.IsZero() {
		effectiveDate = nowUTC()
	}
	effectiveDate = toStoredPrecision(effectiveDate)

	tx, err := s.ownershipRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rbErr := s.ownershipRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to rollback share change", slog.String("link_id", linkID))
		}
	}()

	old, err := s.ownershipRepo.FindLinkByIDInTx(ctx, tx, linkID)
	if err != nil {
		return nil, err
	}
	if !old.IsActive() {
		return nil, fmt.Errorf("%w: link %s is inactive", apperrors.ErrValidation, linkID)
	}
	if effectiveDate.Before(old.JoinedDate) {
		return nil, fmt.Errorf("%w: effective date precedes the link's join date", apperrors.ErrValidation)
	}

	active, err := s.ownershipRepo.ListLinksByShopInTx(ctx, tx, old.ShopID, false)
	if err != nil {
		return nil, err
	}
	others := make([]decimal.Decimal, 0, len(active))
	for _, l := range active {
		if l.LinkID != old.LinkID {
			others = append(others, l.SharePercentage)
		}
	}
	if err := accounting.ValidateShareCap(others, sharePercentage); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := nowUTC()
	if err := s.ownershipRepo.EndLinkInTx(ctx, tx, old.LinkID, effectiveDate, now); err != nil {
		return nil, fmt.Errorf("failed to close link %s: %w", old.LinkID, err)
	}
	replacement := domain.OwnershipLink{
		LinkID:          uuid.NewString(),
		ShopID:          old.ShopID,
		InvestorID:      old.InvestorID,
		SharePercentage: sharePercentage,
		Status:          domain.LinkActive,
		JoinedDate:      effectiveDate,
		AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.ownershipRepo.SaveLinkInTx(ctx, tx, replacement); err != nil {
		return nil, fmt.Errorf("failed to open replacement link: %w", err)
	}
	if err := s.ownershipRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Share changed",
		slog.String("old_link_id", old.LinkID),
		slog.String("new_link_id", replacement.LinkID),
		slog.String("share", sharePercentage.String()))
	return &replacement, nil
}

// isNotFound keeps call sites short where a missing row is an expected branch.
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
