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
	portssvc "github.com/lifeline-hq/ledger/internal/core/ports/services"
	"github.com/lifeline-hq/ledger/internal/core/services"
	"github.com/lifeline-hq/ledger/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockAccountRepo *MockAccountRepository
	publisher       *recordingPublisher
	service         portssvc.LedgerSvcFacade
	companyID       string
	actorID         string
	cashAccount     domain.Account
	revenueAccount  domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.publisher = &recordingPublisher{}
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockAccountRepo, suite.publisher)

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
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "4000",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
}

func (suite *LedgerServiceTestSuite) debitRequest(accountID string, amount int64) dto.PostEntryRequest {
	return dto.PostEntryRequest{
		AccountID:    accountID,
		PostedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		DebitAmount:  decimal.NewFromInt(amount),
		CurrencyCode: "USD",
	}
}

func (suite *LedgerServiceTestSuite) creditRequest(accountID string, amount int64) dto.PostEntryRequest {
	return dto.PostEntryRequest{
		AccountID:    accountID,
		PostedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		CreditAmount: decimal.NewFromInt(amount),
		CurrencyCode: "USD",
	}
}

func (suite *LedgerServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	req := suite.debitRequest(suite.cashAccount.AccountID, 1000)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(suite.companyID, entry.CompanyID)
	suite.True(entry.DebitAmount.Equal(decimal.NewFromInt(1000)))
	suite.True(entry.CreditAmount.IsZero())
	// Exchange rate defaults to 1 when omitted.
	suite.True(entry.ExchangeRate.Equal(decimal.NewFromInt(1)))
	suite.Equal(suite.actorID, entry.PostedBy)

	suite.Require().Len(suite.publisher.events, 1)
	posted, ok := suite.publisher.events[0].(domain.LedgerEntryPosted)
	suite.Require().True(ok)
	suite.Equal(entry.EntryID, posted.EntryID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEntry_ZeroBothSides() {
	ctx := context.Background()
	req := dto.PostEntryRequest{
		AccountID:    suite.cashAccount.AccountID,
		PostedAt:     time.Now(),
		CurrencyCode: "USD",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.Nil(entry)
	suite.Empty(suite.publisher.events)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_BothSidesPositive() {
	ctx := context.Background()
	req := suite.debitRequest(suite.cashAccount.AccountID, 100)
	req.CreditAmount = decimal.NewFromInt(100)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_NegativeAmount() {
	ctx := context.Background()
	req := suite.debitRequest(suite.cashAccount.AccountID, -100)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_InactiveAccount() {
	ctx := context.Background()
	inactive := suite.cashAccount
	inactive.IsActive = false
	req := suite.debitRequest(inactive.AccountID, 100)

	suite.mockAccountRepo.On("FindAccountByID", ctx, inactive.AccountID).Return(&inactive, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInactiveAccount)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_CrossTenantAccount() {
	ctx := context.Background()
	foreign := suite.cashAccount
	foreign.CompanyID = uuid.NewString()
	req := suite.debitRequest(foreign.AccountID, 100)

	suite.mockAccountRepo.On("FindAccountByID", ctx, foreign.AccountID).Return(&foreign, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCrossTenant)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_AccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := suite.debitRequest(accountID, 100)

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_Success() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Date:        time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		Description: "Invoice paid",
		Entries: []dto.PostEntryRequest{
			suite.debitRequest(suite.cashAccount.AccountID, 500),
			suite.creditRequest(suite.revenueAccount.AccountID, 500),
		},
	}

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{suite.cashAccount.AccountID, suite.revenueAccount.AccountID}).Return(accountsMap, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()

	txn, entries, err := suite.service.PostTransaction(ctx, suite.companyID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Require().Len(entries, 2)
	suite.Equal(txn.TransactionID, entries[0].TransactionID)
	suite.Equal(txn.TransactionID, entries[1].TransactionID)
	suite.Len(suite.publisher.events, 2)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_Unbalanced() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Date:        time.Now(),
		Description: "Does not net to zero",
		Entries: []dto.PostEntryRequest{
			suite.debitRequest(suite.cashAccount.AccountID, 500),
			suite.creditRequest(suite.revenueAccount.AccountID, 400),
		},
	}

	txn, _, err := suite.service.PostTransaction(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txn)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_SingleAccount() {
	ctx := context.Background()
	req := dto.PostTransactionRequest{
		Date:        time.Now(),
		Description: "Self transfer",
		Entries: []dto.PostEntryRequest{
			suite.debitRequest(suite.cashAccount.AccountID, 500),
			suite.creditRequest(suite.cashAccount.AccountID, 500),
		},
	}

	_, _, err := suite.service.PostTransaction(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPostTransaction_MultiCurrencyBalanced() {
	ctx := context.Background()
	// 100 EUR at 1.1 balances 110 USD in base currency.
	eurEntry := dto.PostEntryRequest{
		AccountID:    suite.revenueAccount.AccountID,
		PostedAt:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		CreditAmount: decimal.NewFromInt(100),
		CurrencyCode: "EUR",
		ExchangeRate: decimal.NewFromFloat(1.1),
	}
	req := dto.PostTransactionRequest{
		Date:        time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Description: "EUR invoice",
		Entries: []dto.PostEntryRequest{
			suite.debitRequest(suite.cashAccount.AccountID, 110),
			eurEntry,
		},
	}

	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	_, entries, err := suite.service.PostTransaction(ctx, suite.companyID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Len(entries, 2)
}

func (suite *LedgerServiceTestSuite) TestGetEntry_CrossTenant() {
	ctx := context.Background()
	entry := &domain.LedgerEntry{EntryID: uuid.NewString(), CompanyID: uuid.NewString()}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()

	found, err := suite.service.GetEntry(ctx, suite.companyID, entry.EntryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCrossTenant)
	suite.Nil(found)
}

func (suite *LedgerServiceTestSuite) TestListEntriesByAccount_DefaultLimit() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockLedgerRepo.On("ListEntriesByAccount", ctx, suite.companyID, suite.cashAccount.AccountID, 50, (*string)(nil)).Return([]domain.LedgerEntry{}, nil, nil).Once()

	entries, nextToken, err := suite.service.ListEntriesByAccount(ctx, suite.companyID, suite.cashAccount.AccountID, 0, nil)

	suite.Require().NoError(err)
	suite.Empty(entries)
	suite.Nil(nextToken)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
