package services

import (
	"context"
	"time"

	"github.com/lifeline-hq/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSvcFacade is the pure, read-only aggregation layer over the ledger.
// Balances honor the normal-balance sign convention and convert every entry
// to base currency before summation.
type BalanceSvcFacade interface {
	// AccountBalance returns the cumulative point-in-time balance of an
	// account through asOf. An account with no entries has balance zero.
	AccountBalance(ctx context.Context, companyID, accountID string, asOf time.Time) (decimal.Decimal, error)

	// AccountActivity returns the net movement of an account within [from, to].
	// Fails with apperrors.ErrInvalidRange when from is after to.
	AccountActivity(ctx context.Context, companyID, accountID string, from, to time.Time) (decimal.Decimal, error)

	// TrialBalance returns per-account debit/credit totals through asOf. It is
	// the reportable surface for ledgers that do not net to zero.
	TrialBalance(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
