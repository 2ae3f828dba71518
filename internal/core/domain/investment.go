package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// PhaseInitial labels capital carried over from the legacy single-amount schema.
	PhaseInitial = "initial"
	// PhaseWithdrawal is the only phase that accepts a negative amount.
	PhaseWithdrawal = "withdrawal"
)

// InvestmentTransaction is an immutable capital movement on one ownership link.
// Positive amounts are contributions, negative amounts withdrawals.
type InvestmentTransaction struct {
	TransactionID   string          `json:"transactionID"`
	LinkID          string          `json:"linkID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	Phase           string          `json:"phase"`
	Note            string          `json:"note"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// IsContributionPhase reports whether amounts recorded under phase must be positive.
func IsContributionPhase(phase string) bool {
	return !strings.EqualFold(strings.TrimSpace(phase), PhaseWithdrawal)
}

// Validate checks the amount, precision and phase of the transaction.
func (t InvestmentTransaction) Validate() error {
	if strings.TrimSpace(t.Phase) == "" {
		return fmt.Errorf("phase is required")
	}
	if t.Amount.IsZero() {
		return fmt.Errorf("amount must not be zero")
	}
	if IsContributionPhase(t.Phase) && !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive for contribution phase %q", t.Phase)
	}
	if !t.Amount.Equal(t.Amount.Truncate(MoneyScale)) {
		return fmt.Errorf("amount %s has more than %d decimal places", t.Amount.String(), MoneyScale)
	}
	if t.TransactionDate.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	return nil
}
