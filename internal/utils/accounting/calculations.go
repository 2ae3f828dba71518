package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Holding is one active investor's position going into a settlement.
type Holding struct {
	LinkID          string
	InvestorID      string
	SharePercentage decimal.Decimal
	JoinedDate      time.Time
	ActualPaid      decimal.Decimal
}

// Allocation is the settled position of one Holding.
type Allocation struct {
	Holding
	FairShare decimal.Decimal
	Balance   decimal.Decimal
}

// SumAmounts adds up amounts exactly.
func SumAmounts(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// ValidateShareCap checks that adding share to the already active shares keeps
// the shop at or below full ownership.
func ValidateShareCap(activeShares []decimal.Decimal, share decimal.Decimal) error {
	if !share.IsPositive() {
		return fmt.Errorf("share percentage must be greater than 0, got %s", share.String())
	}
	if share.GreaterThan(domain.FullOwnership) {
		return fmt.Errorf("share percentage must not exceed 100, got %s", share.String())
	}
	total := SumAmounts(activeShares).Add(share)
	if total.GreaterThan(domain.FullOwnership) {
		return fmt.Errorf("active shares would total %s%%, exceeding 100%%", total.String())
	}
	return nil
}

// AllocateFairShares splits the pool of actual contributions across holdings
// pro rata to their share percentages.
//
// The pool is totalInvested = sum(ActualPaid). Each fair share is
// totalInvested * share / sum(shares), rounded to domain.MoneyScale. The rounding
// residual goes to the holding with the largest share (ties: earliest join,
// then lowest link ID), so the fair shares always add up to totalInvested.
func AllocateFairShares(holdings []Holding) ([]Allocation, decimal.Decimal, error) {
	if len(holdings) == 0 {
		return nil, decimal.Zero, fmt.Errorf("at least one active holding is required")
	}

	total := decimal.Zero
	shareSum := decimal.Zero
	for _, h := range holdings {
		if !h.SharePercentage.IsPositive() {
			return nil, decimal.Zero, fmt.Errorf("holding %s has non-positive share %s", h.LinkID, h.SharePercentage.String())
		}
		total = total.Add(h.ActualPaid)
		shareSum = shareSum.Add(h.SharePercentage)
	}

	allocations := make([]Allocation, len(holdings))
	allocated := decimal.Zero
	for i, h := range holdings {
		fair := total.Mul(h.SharePercentage).Div(shareSum).Round(domain.MoneyScale)
		allocations[i] = Allocation{Holding: h, FairShare: fair}
		allocated = allocated.Add(fair)
	}

	if residual := total.Sub(allocated); !residual.IsZero() {
		idx := largestHolding(holdings)
		allocations[idx].FairShare = allocations[idx].FairShare.Add(residual)
	}

	for i := range allocations {
		allocations[i].Balance = allocations[i].FairShare.Sub(allocations[i].ActualPaid)
	}

	sort.SliceStable(allocations, func(i, j int) bool {
		return allocations[i].JoinedDate.Before(allocations[j].JoinedDate)
	})
	return allocations, total, nil
}

func largestHolding(holdings []Holding) int {
	best := 0
	for i := 1; i < len(holdings); i++ {
		h, b := holdings[i], holdings[best]
		switch cmp := h.SharePercentage.Cmp(b.SharePercentage); {
		case cmp > 0:
			best = i
		case cmp == 0 && h.JoinedDate.Before(b.JoinedDate):
			best = i
		case cmp == 0 && h.JoinedDate.Equal(b.JoinedDate) && h.LinkID < b.LinkID:
			best = i
		}
	}
	return best
}
