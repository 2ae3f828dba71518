package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LinkStatus is the lifecycle state of an ownership link.
type LinkStatus string

const (
	LinkActive   LinkStatus = "ACTIVE"
	LinkInactive LinkStatus = "INACTIVE"
)

// FullOwnership is the cap on the sum of active share percentages in one shop.
var FullOwnership = decimal.NewFromInt(100)

// OwnershipLink associates an investor with a shop at a fixed share percentage.
// Links are never edited in place: a share change deactivates the link and
// opens a new one, so transaction history stays attached to the share it was
// made under.
type OwnershipLink struct {
	LinkID          string          `json:"linkID"`
	ShopID          string          `json:"shopID"`
	InvestorID      string          `json:"investorID"`
	SharePercentage decimal.Decimal `json:"sharePercentage"`
	Status          LinkStatus      `json:"status"`
	JoinedDate      time.Time       `json:"joinedDate"`
	EndedDate       *time.Time      `json:"endedDate,omitempty"`
	AuditFields
}

// IsActive reports whether the link takes part in new transactions and settlements.
func (l OwnershipLink) IsActive() bool {
	return l.Status == LinkActive
}

// ActiveAsOf reports whether the link is active and had joined strictly before t.
func (l OwnershipLink) ActiveAsOf(t time.Time) bool {
	return l.IsActive() && l.JoinedDate.Before(t)
}

// HeldAsOf reports whether the link carries the investor's share for a period
// ending at t: it joined before t and is either active, or was replaced by a
// share change taking effect at or after t. Deactivated links are never held.
func (l OwnershipLink) HeldAsOf(t time.Time) bool {
	if !l.JoinedDate.Before(t) {
		return false
	}
	if l.IsActive() {
		return true
	}
	return l.EndedDate != nil && !t.After(*l.EndedDate)
}
