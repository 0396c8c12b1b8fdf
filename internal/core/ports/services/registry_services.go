package services

import (
	"context"

	"github.com/lifeline-hq/ledger/internal/core/domain"
	"github.com/lifeline-hq/ledger/internal/dto"
)

// RegistrySvcFacade owns account identity, type, and lifecycle for a
// company's chart of accounts.
type RegistrySvcFacade interface {
	// CreateAccount registers a new account. Fails with apperrors.ErrDuplicate
	// when (company, code) exists and apperrors.ErrValidation on an unknown type.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)

	// DeactivateAccount soft-deactivates an account; existing ledger entries
	// remain attributable. Fails with apperrors.ErrNotFound if unknown.
	DeactivateAccount(ctx context.Context, companyID, accountID string, actorID string) error

	// GetAccount looks an account up by ID or code within the company scope.
	GetAccount(ctx context.Context, companyID, idOrCode string) (*domain.Account, error)

	// ListAccounts returns the company's accounts, optionally filtered by type.
	ListAccounts(ctx context.Context, companyID string, types []domain.AccountType) ([]domain.Account, error)

	// SetCashLike flags an account for cash flow statement purposes.
	SetCashLike(ctx context.Context, companyID, accountID string, cashLike bool, actorID string) (*domain.Account, error)
}
