package services

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// ReportingSvc defines operations for generating shop reports
type ReportingSvc interface {
	// CapitalReport lists each investor's contributions, active share and
	// outstanding settlement balance as of a date. A zero asOf means now.
	CapitalReport(ctx context.Context, shopID string, asOf time.Time) (*domain.CapitalReport, error)
}
