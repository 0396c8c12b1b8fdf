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

// statementService composes balance calculator results into the three
// standard financial statements. Statements are pure functions of stored
// state: identical arguments with no intervening posts yield identical
// reports.
type statementService struct {
	BaseService
	accountRepo   portsrepo.AccountReader
	ledgerRepo    portsrepo.EntryReader
	reportingRepo portsrepo.ReportingRepository
}

// NewStatementService creates a new financial statement generator.
func NewStatementService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.EntryReader) portssvc.StatementSvcFacade {
	return &statementService{
		accountRepo:   accountRepo,
		ledgerRepo:    ledgerRepo,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// toAccountBalance applies the normal-balance sign convention to one
// aggregated activity row.
func toAccountBalance(row portsrepo.AccountActivityRow) domain.AccountBalance {
	return domain.AccountBalance{
		AccountID:   row.Account.AccountID,
		AccountCode: row.Account.Code,
		Name:        row.Account.Name,
		Balance:     accounting.SignedBalance(row.Account.AccountType, row.SumDebit, row.SumCredit),
	}
}

// BalanceSheet partitions active balance sheet accounts by their cumulative
// point-in-time balance at asOf. It does not assert that assets equal
// liabilities plus equity: unbalanced postings are reportable, not hidden.
func (s *statementService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.GetAccountActivity(ctx, companyID,
		[]domain.AccountType{domain.Asset, domain.Liability, domain.Equity}, nil, &asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           []domain.AccountBalance{},
		Liabilities:      []domain.AccountBalance{},
		Equity:           []domain.AccountBalance{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, row := range rows {
		balance := toAccountBalance(row)
		switch row.Account.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, balance)
			report.TotalAssets = report.TotalAssets.Add(balance.Balance)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, balance)
			report.TotalLiabilities = report.TotalLiabilities.Add(balance.Balance)
		case domain.Equity:
			report.Equity = append(report.Equity, balance)
			report.TotalEquity = report.TotalEquity.Add(balance.Balance)
		}
	}

	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("company_id", companyID),
		slog.String("as_of", asOf.Format(time.DateOnly)),
		slog.Int("asset_accounts", len(report.Assets)),
		slog.Int("liability_accounts", len(report.Liabilities)),
		slog.Int("equity_accounts", len(report.Equity)))
	return report, nil
}

// IncomeStatement computes Revenue/Expense period activity over [from, to].
// Income statement accounts use period balances only, never cumulative ones.
func (s *statementService) IncomeStatement(ctx context.Context, companyID string, from, to time.Time) (*domain.IncomeStatementReport, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s is after %s", apperrors.ErrInvalidRange, from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	rows, err := s.reportingRepo.GetAccountActivity(ctx, companyID,
		[]domain.AccountType{domain.Revenue, domain.Expense}, &from, &to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve income statement data", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve income statement data: %w", err)
	}

	report := &domain.IncomeStatementReport{
		From:         from,
		To:           to,
		Revenue:      []domain.AccountBalance{},
		Expenses:     []domain.AccountBalance{},
		TotalRevenue: decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, row := range rows {
		balance := toAccountBalance(row)
		switch row.Account.AccountType {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, balance)
			report.TotalRevenue = report.TotalRevenue.Add(balance.Balance)
		case domain.Expense:
			report.Expenses = append(report.Expenses, balance)
			report.TotalExpense = report.TotalExpense.Add(balance.Balance)
		}
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpense)

	s.LogInfo(ctx, "Income statement generated",
		slog.String("company_id", companyID),
		slog.String("from", from.Format(time.DateOnly)),
		slog.String("to", to.Format(time.DateOnly)),
		slog.Int("revenue_accounts", len(report.Revenue)),
		slog.Int("expense_accounts", len(report.Expenses)))
	return report, nil
}

// CashFlow reports the net change of the cash-like accounts over [from, to].
// The beginning balance is taken at the day before from; operating
// activities carry the period net income as a simplified indirect-method
// proxy, with investing/financing breakdowns out of scope.
func (s *statementService) CashFlow(ctx context.Context, companyID string, from, to time.Time) (*domain.CashFlowReport, error) {
	if err := requireCompanyScope(companyID); err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s is after %s", apperrors.ErrInvalidRange, from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	cashAccounts, err := s.accountRepo.ListCashLikeAccounts(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash-like accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list cash-like accounts: %w", err)
	}
	if len(cashAccounts) == 0 {
		return nil, fmt.Errorf("%w: company %s", apperrors.ErrNoCashAccounts, companyID)
	}

	beforeStart := from.AddDate(0, 0, -1)
	report := &domain.CashFlowReport{
		From:             from,
		To:               to,
		CashAccounts:     make([]domain.AccountBalance, 0, len(cashAccounts)),
		BeginningBalance: decimal.Zero,
		EndingBalance:    decimal.Zero,
	}
	for _, account := range cashAccounts {
		beginSums, err := s.ledgerRepo.SumAccountActivity(ctx, companyID, account.AccountID, nil, &beforeStart)
		if err != nil {
			return nil, fmt.Errorf("failed to compute beginning balance for account %s: %w", account.AccountID, err)
		}
		endSums, err := s.ledgerRepo.SumAccountActivity(ctx, companyID, account.AccountID, nil, &to)
		if err != nil {
			return nil, fmt.Errorf("failed to compute ending balance for account %s: %w", account.AccountID, err)
		}

		beginning := accounting.SignedBalance(account.AccountType, beginSums.SumDebit, beginSums.SumCredit)
		ending := accounting.SignedBalance(account.AccountType, endSums.SumDebit, endSums.SumCredit)
		report.BeginningBalance = report.BeginningBalance.Add(beginning)
		report.EndingBalance = report.EndingBalance.Add(ending)
		report.CashAccounts = append(report.CashAccounts, domain.AccountBalance{
			AccountID:   account.AccountID,
			AccountCode: account.Code,
			Name:        account.Name,
			Balance:     ending,
		})
	}
	report.NetChange = report.EndingBalance.Sub(report.BeginningBalance)

	income, err := s.IncomeStatement(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	report.OperatingActivities = income.NetIncome

	s.LogInfo(ctx, "Cash flow statement generated",
		slog.String("company_id", companyID),
		slog.Int("cash_accounts", len(report.CashAccounts)))
	return report, nil
}
