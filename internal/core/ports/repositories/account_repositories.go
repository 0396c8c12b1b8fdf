package repositories

import (
	"context"
	"time"

	"github.com/lifeline-hq/ledger/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
// Every read is company-scoped; an account from another company is reported
// as a cross-tenant violation by the caller, never silently filtered.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its company-unique code.
	FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts for a company, optionally restricted to
	// the given account types. Inactive accounts are included.
	ListAccounts(ctx context.Context, companyID string, types []domain.AccountType) ([]domain.Account, error)

	// ListCashLikeAccounts retrieves the active accounts flagged cash-like.
	ListCashLikeAccounts(ctx context.Context, companyID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive. Existing ledger entries
	// are unaffected.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// SetCashLike flags or unflags an account for cash flow reporting.
	SetCashLike(ctx context.Context, accountID string, cashLike bool, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
