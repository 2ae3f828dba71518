package domain_test

import (
	"testing"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSettlementEntry_Outstanding(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		paid    string
		want    string
		settled bool
	}{
		{name: "investor owes, nothing paid", balance: "60", paid: "0", want: "60"},
		{name: "investor owes, partly paid", balance: "60", paid: "25.50", want: "34.5"},
		{name: "investor overpaid, nothing returned", balance: "-60", paid: "0", want: "-60"},
		{name: "investor overpaid, partly returned", balance: "-60", paid: "10", want: "-50"},
		{name: "fully settled", balance: "60", paid: "60", want: "0", settled: true},
		{name: "zero balance", balance: "0", paid: "0", want: "0", settled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := domain.SettlementEntry{
				BalanceAmount:        decimal.RequireFromString(tt.balance),
				SettlementPaidAmount: decimal.RequireFromString(tt.paid),
			}
			assert.True(t, decimal.RequireFromString(tt.want).Equal(entry.Outstanding()),
				"got %s want %s", entry.Outstanding(), tt.want)
			assert.Equal(t, tt.settled, entry.IsSettled())
		})
	}
}
