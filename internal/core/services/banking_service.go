package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lifeline-hq/ledger/internal/apperrors"
	"github.com/lifeline-hq/ledger/internal/core/domain"
	portsrepo "github.com/lifeline-hq/ledger/internal/core/ports/repositories"
	portssvc "github.com/lifeline-hq/ledger/internal/core/ports/services"
	"github.com/lifeline-hq/ledger/internal/dto"
	"github.com/lifeline-hq/ledger/internal/utils/accounting"
)

// bankingService manages bank account metadata attached to ledger accounts.
type bankingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	bankingRepo portsrepo.BankingRepositoryFacade
	ledgerRepo  portsrepo.EntryReader
}

// NewBankingService creates a new banking service.
func NewBankingService(bankingRepo portsrepo.BankingRepositoryFacade, accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.EntryReader) portssvc.BankingSvcFacade {
	return &bankingService{
		accountRepo: accountRepo,
		bankingRepo: bankingRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.BankingSvcFacade = (*bankingService)(nil)

// CreateBankAccount attaches bank metadata to an existing ledger account. The
// linked account must be an active asset account so that reconciliation can
// interpret its entries as cash movements.
func (s *bankingService) CreateBankAccount(ctx context.Context, companyID string, req dto.CreateBankAccountRequest, actorID string) (*domain.BankAccount, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}
	account, err := findCompanyAccount(ctx, s.accountRepo, companyID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrInactiveAccount, account.AccountID)
	}
	if account.AccountType != domain.Asset {
		return nil, fmt.Errorf("%w: bank accounts must link an ASSET account, got %s", apperrors.ErrValidation, account.AccountType)
	}

	now := time.Now().UTC()
	bankAccount := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		CompanyID:     companyID,
		AccountID:     account.AccountID,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.bankingRepo.SaveBankAccount(ctx, bankAccount); err != nil {
		s.LogError(ctx, err, "Failed to save bank account", slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}

	s.LogInfo(ctx, "Bank account created",
		slog.String("bank_account_id", bankAccount.BankAccountID),
		slog.String("company_id", companyID),
		slog.String("account_id", account.AccountID))
	return &bankAccount, nil
}

// GetBankAccount retrieves a bank account within the company scope.
func (s *bankingService) GetBankAccount(ctx context.Context, companyID, bankAccountID string) (*domain.BankAccount, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}
	bankAccount, err := s.bankingRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}
	if bankAccount.CompanyID != companyID {
		return nil, fmt.Errorf("%w: bank account %s belongs to company %s", apperrors.ErrCrossTenant, bankAccountID, bankAccount.CompanyID)
	}
	return bankAccount, nil
}

// ListBankAccounts retrieves all bank accounts of a company.
func (s *bankingService) ListBankAccounts(ctx context.Context, companyID string) ([]domain.BankAccount, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}
	return s.bankingRepo.ListBankAccounts(ctx, companyID)
}

// RefreshBalanceCache recomputes the denormalized balance of a bank account
// from its ledger entries and stores it on the bank account row.
func (s *bankingService) RefreshBalanceCache(ctx context.Context, companyID, bankAccountID string) (*domain.BankAccount, error) {
	bankAccount, err := s.GetBankAccount(ctx, companyID, bankAccountID)
	if err != nil {
		return nil, err
	}
	account, err := findCompanyAccount(ctx, s.accountRepo, companyID, bankAccount.AccountID)
	if err != nil {
		return nil, err
	}

	sums, err := s.ledgerRepo.SumAccountActivity(ctx, companyID, account.AccountID, nil, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account activity", slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to sum account activity: %w", err)
	}
	balance := accounting.SignedBalance(account.AccountType, sums.SumDebit, sums.SumCredit)

	now := time.Now().UTC()
	if err := s.bankingRepo.UpdateBalanceCache(ctx, bankAccountID, balance, now); err != nil {
		s.LogError(ctx, err, "Failed to update balance cache", slog.String("bank_account_id", bankAccountID))
		return nil, fmt.Errorf("failed to update balance cache: %w", err)
	}

	bankAccount.BalanceCache = balance
	bankAccount.LastUpdatedAt = now
	s.LogDebug(ctx, "Balance cache refreshed",
		slog.String("bank_account_id", bankAccountID),
		slog.String("balance", balance.String()))
	return bankAccount, nil
}
