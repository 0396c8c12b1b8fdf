package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lifeline-hq/ledger/internal/apperrors"
	"github.com/lifeline-hq/ledger/internal/core/domain"
	portsrepo "github.com/lifeline-hq/ledger/internal/core/ports/repositories"
	portssvc "github.com/lifeline-hq/ledger/internal/core/ports/services"
	"github.com/lifeline-hq/ledger/internal/dto"
)

// registryService owns account identity, type, and lifecycle.
type registryService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewRegistryService creates a new chart-of-accounts registry service.
func NewRegistryService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.RegistrySvcFacade {
	return &registryService{accountRepo: accountRepo}
}

var _ portssvc.RegistrySvcFacade = (*registryService)(nil)

// CreateAccount registers a new account in the company's chart of accounts.
func (s *registryService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if req.Code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}

	// (company, code) must be unique; the store's unique index is the backstop
	// for concurrent creates.
	existing, err := s.accountRepo.FindAccountByCode(ctx, companyID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness", slog.String("company_id", companyID), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s already exists in company %s", apperrors.ErrDuplicate, req.Code, companyID)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   companyID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		IsCashLike:  req.IsCashLike,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("company_id", companyID), slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("company_id", companyID),
		slog.String("code", account.Code),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// DeactivateAccount soft-deactivates an account. Historical ledger entries
// remain attributable; nothing is ever hard-deleted.
func (s *registryService) DeactivateAccount(ctx context.Context, companyID, accountID string, actorID string) error {
	if err := requireCompanyScope(companyID); err != nil {
		return err
	}
	if _, err := findCompanyAccount(ctx, s.accountRepo, companyID, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, actorID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID), slog.String("company_id", companyID))
	return nil
}

// GetAccount looks an account up by its ID first, then by its company-unique
// code.
func (s *registryService) GetAccount(ctx context.Context, companyID, idOrCode string) (*domain.Account, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}

	account, err := findCompanyAccount(ctx, s.accountRepo, companyID, idOrCode)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	account, err = s.accountRepo.FindAccountByCode(ctx, companyID, idOrCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, idOrCode)
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", idOrCode, err)
	}
	return account, nil
}

// ListAccounts returns the company's chart of accounts.
func (s *registryService) ListAccounts(ctx context.Context, companyID string, types []domain.AccountType) ([]domain.Account, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, types)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// SetCashLike toggles the account's participation in the cash flow statement.
func (s *registryService) SetCashLike(ctx context.Context, companyID, accountID string, cashLike bool, actorID string) (*domain.Account, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}
	account, err := findCompanyAccount(ctx, s.accountRepo, companyID, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.SetCashLike(ctx, accountID, cashLike, actorID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to update cash-like flag", slog.String("account_id", accountID))
		return nil, err
	}

	account.IsCashLike = cashLike
	s.LogInfo(ctx, "Cash-like flag updated", slog.String("account_id", accountID), slog.Bool("cash_like", cashLike))
	return account, nil
}
