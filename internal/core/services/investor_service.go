package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/google/uuid"
)

type investorService struct {
	BaseService
	investorRepo portsrepo.InvestorRepositoryFacade
}

func NewInvestorService(investorRepo portsrepo.InvestorRepositoryFacade) portssvc.InvestorSvcFacade {
	return &investorService{investorRepo: investorRepo}
}

var _ portssvc.InvestorSvcFacade = (*investorService)(nil)

func (s *investorService) CreateInvestor(ctx context.Context, name string) (*domain.Investor, error) {
	name, err := requireName("investor name", name)
	if err != nil {
		return nil, err
	}

	now := nowUTC()
	investor := domain.Investor{
		InvestorID:  uuid.NewString(),
		Name:        name,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.investorRepo.SaveInvestor(ctx, investor); err != nil {
		s.LogError(ctx, err, "Failed to save investor")
		return nil, fmt.Errorf("failed to create investor: %w", err)
	}
	s.LogInfo(ctx, "Investor created", slog.String("investor_id", investor.InvestorID))
	return &investor, nil
}

func (s *investorService) GetInvestorByID(ctx context.Context, investorID string) (*domain.Investor, error) {
	investor, err := s.investorRepo.FindInvestorByID(ctx, investorID)
	if err != nil {
		s.LogUnexpected(ctx, err, "Failed to find investor", slog.String("investor_id", investorID))
		return nil, err
	}
	return investor, nil
}

func (s *investorService) ListInvestors(ctx context.Context, limit int, offset int) ([]domain.Investor, error) {
	limit, offset, err := normalizeListLimit(limit, offset)
	if err != nil {
		return nil, err
	}
	investors, err := s.investorRepo.ListInvestors(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list investors")
		return nil, fmt.Errorf("failed to list investors: %w", err)
	}
	return investors, nil
}

func (s *investorService) UpdateInvestor(ctx context.Context, investorID string, name string) (*domain.Investor, error) {
	name, err := requireName("investor name", name)
	if err != nil {
		return nil, err
	}
	investor, err := s.investorRepo.FindInvestorByID(ctx, investorID)
	if err != nil {
		return nil, err
	}

	investor.Name = name
	investor.LastUpdatedAt = nowUTC()
	if err := s.investorRepo.UpdateInvestor(ctx, *investor); err != nil {
		s.LogUnexpected(ctx, err, "Failed to update investor", slog.String("investor_id", investorID))
		return nil, fmt.Errorf("failed to update investor %s: %w", investorID, err)
	}
	return investor, nil
}

// DeleteInvestor removes the investor with all of its links and settlement entries.
func (s *investorService) DeleteInvestor(ctx context.Context, investorID string) error {
	if err := s.investorRepo.DeleteInvestor(ctx, investorID); err != nil {
		s.LogUnexpected(ctx, err, "Failed to delete investor", slog.String("investor_id", investorID))
		return err
	}
	s.LogInfo(ctx, "Investor deleted", slog.String("investor_id", investorID))
	return nil
}
