package dto

import (
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest records a capital movement on a link.
// Amount is signed; only the withdrawal phase accepts negative values.
type RecordTransactionRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TransactionDate *time.Time      `json:"transactionDate"` // Optional, defaults to now
	Phase           string          `json:"phase" binding:"required,max=100"`
	Note            string          `json:"note" binding:"max=1000"`
}

type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=50" binding:"min=0,max=500"`
	NextToken *string `form:"nextToken"`
}

type SumTransactionsParams struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type TransactionResponse struct {
	TransactionID   string    `json:"transactionID"`
	LinkID          string    `json:"linkID"`
	Amount          string    `json:"amount"`
	TransactionDate time.Time `json:"transactionDate"`
	Phase           string    `json:"phase"`
	Note            string    `json:"note"`
	CreatedAt       time.Time `json:"createdAt"`
}

type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

type SumTransactionsResponse struct {
	LinkID string    `json:"linkID"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Total  string    `json:"total"`
}

func ToTransactionResponse(txn *domain.InvestmentTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		LinkID:          txn.LinkID,
		Amount:          utils.FormatMoney(txn.Amount),
		TransactionDate: txn.TransactionDate,
		Phase:           txn.Phase,
		Note:            txn.Note,
		CreatedAt:       txn.CreatedAt,
	}
}

func ToListTransactionsResponse(txns []domain.InvestmentTransaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
