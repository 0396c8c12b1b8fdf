package repositories

import (
	"context"
	"time"

	"github.com/lifeline-hq/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountActivityRow is one account's raw base-currency debit/credit totals
// over a reporting window.
type AccountActivityRow struct {
	Account   domain.Account
	SumDebit  decimal.Decimal
	SumCredit decimal.Decimal
}

// ReportingRepository provides the aggregated reads behind trial balance and
// the financial statements. All sums are converted to base currency per entry
// before aggregation; no mixed-currency summation happens in SQL or Go.
type ReportingRepository interface {
	// GetTrialBalanceData returns per-account debit/credit totals through asOf.
	GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetAccountActivity returns per-account totals for active accounts of the
	// given types. from may be nil for cumulative (point-in-time) totals.
	GetAccountActivity(ctx context.Context, companyID string, types []domain.AccountType, from, to *time.Time) ([]AccountActivityRow, error)
}
