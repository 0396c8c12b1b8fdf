package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/lifeline-hq/ledger/internal/apperrors"
	"github.com/lifeline-hq/ledger/internal/core/domain"
	portsrepo "github.com/lifeline-hq/ledger/internal/core/ports/repositories"
	portssvc "github.com/lifeline-hq/ledger/internal/core/ports/services"
	"github.com/lifeline-hq/ledger/internal/core/services"
)

type StatementServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	mockLedgerRepo    *MockLedgerRepository
	service           portssvc.StatementSvcFacade
	companyID         string
	cashAccount       domain.Account
	loanAccount       domain.Account
	equityAccount     domain.Account
	salesAccount      domain.Account
	rentAccount       domain.Account
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewStatementService(suite.mockReportingRepo, suite.mockAccountRepo, suite.mockLedgerRepo)

	suite.companyID = uuid.NewString()
	suite.cashAccount = domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Code: "1000", Name: "Cash", AccountType: domain.Asset, IsCashLike: true, IsActive: true}
	suite.loanAccount = domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Code: "2000", Name: "Bank Loan", AccountType: domain.Liability, IsActive: true}
	suite.equityAccount = domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Code: "3000", Name: "Owner Equity", AccountType: domain.Equity, IsActive: true}
	suite.salesAccount = domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Code: "4000", Name: "Sales", AccountType: domain.Revenue, IsActive: true}
	suite.rentAccount = domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Code: "5000", Name: "Rent", AccountType: domain.Expense, IsActive: true}
}

func (suite *StatementServiceTestSuite) TestBalanceSheet_Partitioning() {
	ctx := context.Background()
	asOf := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	rows := []portsrepo.AccountActivityRow{
		{Account: suite.cashAccount, SumDebit: decimal.NewFromInt(1500), SumCredit: decimal.NewFromInt(500)},
		{Account: suite.loanAccount, SumDebit: decimal.Zero, SumCredit: decimal.NewFromInt(600)},
		{Account: suite.equityAccount, SumDebit: decimal.Zero, SumCredit: decimal.NewFromInt(400)},
	}

	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.companyID,
		[]domain.AccountType{domain.Asset, domain.Liability, domain.Equity}, (*time.Time)(nil), &asOf).Return(rows, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.companyID, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Assets, 1)
	suite.Require().Len(report.Liabilities, 1)
	suite.Require().Len(report.Equity, 1)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(1000)), "got %s", report.TotalAssets)
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(600)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(400)))
}

func (suite *StatementServiceTestSuite) TestBalanceSheet_DoesNotAssertBalance() {
	ctx := context.Background()
	asOf := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	// A single unbalanced debit: assets do not equal liabilities plus equity.
	rows := []portsrepo.AccountActivityRow{
		{Account: suite.cashAccount, SumDebit: decimal.NewFromInt(1000), SumCredit: decimal.Zero},
	}

	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.companyID,
		[]domain.AccountType{domain.Asset, domain.Liability, domain.Equity}, (*time.Time)(nil), &asOf).Return(rows, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.companyID, asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalLiabilities.IsZero())
	suite.True(report.TotalEquity.IsZero())
}

func (suite *StatementServiceTestSuite) TestIncomeStatement_NetIncome() {
	ctx := context.Background()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	// Revenue 500 credited on day 5, expense 50 debited on day 10.
	rows := []portsrepo.AccountActivityRow{
		{Account: suite.salesAccount, SumDebit: decimal.Zero, SumCredit: decimal.NewFromInt(500)},
		{Account: suite.rentAccount, SumDebit: decimal.NewFromInt(50), SumCredit: decimal.Zero},
	}

	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.companyID,
		[]domain.AccountType{domain.Revenue, domain.Expense}, &from, &to).Return(rows, nil).Once()

	report, err := suite.service.IncomeStatement(ctx, suite.companyID, from, to)

	suite.Require().NoError(err)
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalExpense.Equal(decimal.NewFromInt(50)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(450)), "got %s", report.NetIncome)
}

func (suite *StatementServiceTestSuite) TestIncomeStatement_InvalidRange() {
	ctx := context.Background()
	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.IncomeStatement(ctx, suite.companyID, from, to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidRange)
}

func (suite *StatementServiceTestSuite) TestCashFlow_NoCashAccounts() {
	ctx := context.Background()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("ListCashLikeAccounts", ctx, suite.companyID).Return([]domain.Account{}, nil).Once()

	report, err := suite.service.CashFlow(ctx, suite.companyID, from, to)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoCashAccounts)
	suite.Nil(report)
}

func (suite *StatementServiceTestSuite) TestCashFlow_NetChange() {
	ctx := context.Background()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	beforeStart := from.AddDate(0, 0, -1)

	suite.mockAccountRepo.On("ListCashLikeAccounts", ctx, suite.companyID).Return([]domain.Account{suite.cashAccount}, nil).Once()
	suite.mockLedgerRepo.On("SumAccountActivity", ctx, suite.companyID, suite.cashAccount.AccountID, (*time.Time)(nil), &beforeStart).
		Return(portsrepo.ActivitySums{SumDebit: decimal.NewFromInt(200), SumCredit: decimal.Zero}, nil).Once()
	suite.mockLedgerRepo.On("SumAccountActivity", ctx, suite.companyID, suite.cashAccount.AccountID, (*time.Time)(nil), &to).
		Return(portsrepo.ActivitySums{SumDebit: decimal.NewFromInt(1200), SumCredit: decimal.NewFromInt(50)}, nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.companyID,
		[]domain.AccountType{domain.Revenue, domain.Expense}, &from, &to).
		Return([]portsrepo.AccountActivityRow{
			{Account: suite.salesAccount, SumDebit: decimal.Zero, SumCredit: decimal.NewFromInt(1000)},
			{Account: suite.rentAccount, SumDebit: decimal.NewFromInt(50), SumCredit: decimal.Zero},
		}, nil).Once()

	report, err := suite.service.CashFlow(ctx, suite.companyID, from, to)

	suite.Require().NoError(err)
	suite.True(report.BeginningBalance.Equal(decimal.NewFromInt(200)), "got %s", report.BeginningBalance)
	suite.True(report.EndingBalance.Equal(decimal.NewFromInt(1150)), "got %s", report.EndingBalance)
	suite.True(report.NetChange.Equal(decimal.NewFromInt(950)), "got %s", report.NetChange)
	suite.True(report.OperatingActivities.Equal(decimal.NewFromInt(950)))
	suite.Require().Len(report.CashAccounts, 1)
}

// A company posts an asset debit of 1000 on day 1, a revenue credit of 500 on
// day 5, and an expense debit of 50 on day 10. The asset balance as of day 10
// includes only its own entries; net income over the period is 450.
func (suite *StatementServiceTestSuite) TestPointInTimeAndPeriodSemantics() {
	ctx := context.Background()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	rows := []portsrepo.AccountActivityRow{
		{Account: suite.salesAccount, SumDebit: decimal.Zero, SumCredit: decimal.NewFromInt(500)},
		{Account: suite.rentAccount, SumDebit: decimal.NewFromInt(50), SumCredit: decimal.Zero},
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.companyID,
		[]domain.AccountType{domain.Revenue, domain.Expense}, &from, &to).Return(rows, nil).Once()

	income, err := suite.service.IncomeStatement(ctx, suite.companyID, from, to)
	suite.Require().NoError(err)
	suite.True(income.NetIncome.Equal(decimal.NewFromInt(450)))

	asOfRows := []portsrepo.AccountActivityRow{
		{Account: suite.cashAccount, SumDebit: decimal.NewFromInt(1000), SumCredit: decimal.Zero},
	}
	suite.mockReportingRepo.On("GetAccountActivity", ctx, suite.companyID,
		[]domain.AccountType{domain.Asset, domain.Liability, domain.Equity}, (*time.Time)(nil), &to).Return(asOfRows, nil).Once()

	sheet, err := suite.service.BalanceSheet(ctx, suite.companyID, to)
	suite.Require().NoError(err)
	suite.True(sheet.TotalAssets.Equal(decimal.NewFromInt(1000)))
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
