package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lifeline-hq/ledger/internal/apperrors"
	"github.com/lifeline-hq/ledger/internal/core/domain"
	portsrepo "github.com/lifeline-hq/ledger/internal/core/ports/repositories"
	portssvc "github.com/lifeline-hq/ledger/internal/core/ports/services"
	"github.com/lifeline-hq/ledger/internal/utils/accounting"
)

// balanceService is the pure aggregation layer over the ledger store. It is
// read-only, side-effect-free, and safe to run concurrently with posting.
type balanceService struct {
	BaseService
	accountRepo   portsrepo.AccountReader
	ledgerRepo    portsrepo.EntryReader
	reportingRepo portsrepo.ReportingRepository
}

// NewBalanceService creates a new balance calculator service.
func NewBalanceService(ledgerRepo portsrepo.EntryReader, accountRepo portsrepo.AccountReader, reportingRepo portsrepo.ReportingRepository) portssvc.BalanceSvcFacade {
	return &balanceService{
		accountRepo:   accountRepo,
		ledgerRepo:    ledgerRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// AccountBalance returns the cumulative balance of an account through asOf.
// Debit-normal accounts carry debits minus credits; credit-normal the
// reverse. An account with no entries has balance zero, not an error.
func (s *balanceService) AccountBalance(ctx context.Context, companyID, accountID string, asOf time.Time) (decimal.Decimal, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return decimal.Zero, err
	}
	account, err := findCompanyAccount(ctx, s.accountRepo, companyID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	sums, err := s.ledgerRepo.SumAccountActivity(ctx, companyID, accountID, nil, &asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account activity", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to compute balance: %w", err)
	}

	return accounting.SignedBalance(account.AccountType, sums.SumDebit, sums.SumCredit), nil
}

// AccountActivity returns the net movement of an account within [from, to].
func (s *balanceService) AccountActivity(ctx context.Context, companyID, accountID string, from, to time.Time) (decimal.Decimal, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return decimal.Zero, err
	}
	if from.After(to) {
		return decimal.Zero, fmt.Errorf("%w: %s is after %s", apperrors.ErrInvalidRange, from.Format(time.DateOnly), to.Format(time.DateOnly))
	}
	account, err := findCompanyAccount(ctx, s.accountRepo, companyID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	sums, err := s.ledgerRepo.SumAccountActivity(ctx, companyID, accountID, &from, &to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account activity", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to compute period activity: %w", err)
	}

	return accounting.SignedBalance(account.AccountType, sums.SumDebit, sums.SumCredit), nil
}

// TrialBalance returns per-account debit/credit totals through asOf. A ledger
// built from unbalanced single-sided posts shows up here rather than being
// silently assumed to net to zero.
func (s *balanceService) TrialBalance(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("company_id", companyID),
			slog.String("as_of", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	s.LogInfo(ctx, "Trial balance generated",
		slog.String("company_id", companyID),
		slog.Int("row_count", len(rows)))
	return rows, nil
}
