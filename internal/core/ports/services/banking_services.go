package services

import (
	"context"

	"github.com/lifeline-hq/ledger/internal/core/domain"
	"github.com/lifeline-hq/ledger/internal/dto"
)

// BankingSvcFacade manages bank account metadata attached to ledger accounts.
type BankingSvcFacade interface {
	// CreateBankAccount attaches bank metadata to an existing ledger account.
	CreateBankAccount(ctx context.Context, companyID string, req dto.CreateBankAccountRequest, actorID string) (*domain.BankAccount, error)

	// GetBankAccount retrieves a bank account within the company scope.
	GetBankAccount(ctx context.Context, companyID, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves all bank accounts of a company.
	ListBankAccounts(ctx context.Context, companyID string) ([]domain.BankAccount, error)

	// RefreshBalanceCache recomputes the denormalized balance of a bank
	// account from the ledger. The cache is convenience only.
	RefreshBalanceCache(ctx context.Context, companyID, bankAccountID string) (*domain.BankAccount, error)
}
