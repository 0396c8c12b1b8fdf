package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lifeline-hq/ledger/internal/apperrors"
	"github.com/lifeline-hq/ledger/internal/core/domain"
	portsrepo "github.com/lifeline-hq/ledger/internal/core/ports/repositories"
	portssvc "github.com/lifeline-hq/ledger/internal/core/ports/services"
	"github.com/lifeline-hq/ledger/internal/core/services"
	"github.com/lifeline-hq/ledger/internal/dto"
)

type BankingServiceTestSuite struct {
	suite.Suite
	mockBankingRepo *MockBankingRepository
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.BankingSvcFacade
	companyID       string
	actorID         string
	cashAccount     domain.Account
}

func (suite *BankingServiceTestSuite) SetupTest() {
	suite.mockBankingRepo = new(MockBankingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewBankingService(suite.mockBankingRepo, suite.mockAccountRepo, suite.mockLedgerRepo)

	suite.companyID = uuid.NewString()
	suite.actorID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1000",
		AccountType: domain.Asset,
		IsCashLike:  true,
		IsActive:    true,
	}
}

func (suite *BankingServiceTestSuite) TestCreateBankAccount_Success() {
	ctx := context.Background()
	req := dto.CreateBankAccountRequest{
		AccountID:     suite.cashAccount.AccountID,
		AccountNumber: "DE1234",
		BankName:      "Test Bank",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockBankingRepo.On("SaveBankAccount", ctx, mock.AnythingOfType("domain.BankAccount")).Return(nil).Once()

	bankAccount, err := suite.service.CreateBankAccount(ctx, suite.companyID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(bankAccount)
	suite.NotEmpty(bankAccount.BankAccountID)
	suite.Equal(suite.cashAccount.AccountID, bankAccount.AccountID)
	suite.Equal(suite.actorID, bankAccount.CreatedBy)
	suite.mockBankingRepo.AssertExpectations(suite.T())
}

func (suite *BankingServiceTestSuite) TestCreateBankAccount_NonAssetAccount() {
	ctx := context.Background()
	revenue := suite.cashAccount
	revenue.AccountType = domain.Revenue
	req := dto.CreateBankAccountRequest{AccountID: revenue.AccountID, AccountNumber: "DE1234", BankName: "Test Bank"}

	suite.mockAccountRepo.On("FindAccountByID", ctx, revenue.AccountID).Return(&revenue, nil).Once()

	_, err := suite.service.CreateBankAccount(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBankingRepo.AssertNotCalled(suite.T(), "SaveBankAccount", mock.Anything, mock.Anything)
}

func (suite *BankingServiceTestSuite) TestCreateBankAccount_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.cashAccount
	inactive.IsActive = false
	req := dto.CreateBankAccountRequest{AccountID: inactive.AccountID, AccountNumber: "DE1234", BankName: "Test Bank"}

	suite.mockAccountRepo.On("FindAccountByID", ctx, inactive.AccountID).Return(&inactive, nil).Once()

	_, err := suite.service.CreateBankAccount(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInactiveAccount)
}

func (suite *BankingServiceTestSuite) TestGetBankAccount_CrossTenant() {
	ctx := context.Background()
	foreign := domain.BankAccount{BankAccountID: uuid.NewString(), CompanyID: uuid.NewString()}

	suite.mockBankingRepo.On("FindBankAccountByID", ctx, foreign.BankAccountID).Return(&foreign, nil).Once()

	_, err := suite.service.GetBankAccount(ctx, suite.companyID, foreign.BankAccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCrossTenant)
}

func (suite *BankingServiceTestSuite) TestRefreshBalanceCache() {
	ctx := context.Background()
	bankAccount := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		CompanyID:     suite.companyID,
		AccountID:     suite.cashAccount.AccountID,
	}
	sums := portsrepo.ActivitySums{SumDebit: decimal.NewFromInt(900), SumCredit: decimal.NewFromInt(150)}

	suite.mockBankingRepo.On("FindBankAccountByID", ctx, bankAccount.BankAccountID).Return(&bankAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockLedgerRepo.On("SumAccountActivity", ctx, suite.companyID, suite.cashAccount.AccountID, (*time.Time)(nil), (*time.Time)(nil)).Return(sums, nil).Once()
	suite.mockBankingRepo.On("UpdateBalanceCache", ctx, bankAccount.BankAccountID, decimal.NewFromInt(750), mock.AnythingOfType("time.Time")).Return(nil).Once()

	refreshed, err := suite.service.RefreshBalanceCache(ctx, suite.companyID, bankAccount.BankAccountID)

	suite.Require().NoError(err)
	suite.True(refreshed.BalanceCache.Equal(decimal.NewFromInt(750)), "got %s", refreshed.BalanceCache)
	suite.mockBankingRepo.AssertExpectations(suite.T())
}

func TestBankingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BankingServiceTestSuite))
}
