package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lifeline-hq/ledger/internal/apperrors"
	"github.com/lifeline-hq/ledger/internal/core/domain"
	portssvc "github.com/lifeline-hq/ledger/internal/core/ports/services"
	"github.com/lifeline-hq/ledger/internal/core/services"
	"github.com/lifeline-hq/ledger/internal/dto"
)

type RegistryServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.RegistrySvcFacade
	companyID       string
	actorID         string
}

func (suite *RegistryServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewRegistryService(suite.mockAccountRepo)
	suite.companyID = uuid.NewString()
	suite.actorID = uuid.NewString()
}

func (suite *RegistryServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsCashLike:  true,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, "1000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.companyID, account.CompanyID)
	suite.Equal("1000", account.Code)
	suite.Equal(domain.Asset, account.AccountType)
	suite.True(account.IsCashLike)
	suite.True(account.IsActive)
	suite.Equal(suite.actorID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *RegistryServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}

	existing := &domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Code: "1000"}
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, "1000").Return(existing, nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(account)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *RegistryServiceTestSuite) TestCreateAccount_SameCodeDifferentCompany() {
	ctx := context.Background()
	otherCompanyID := uuid.NewString()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}

	// The uniqueness check is scoped per company, so the other company's
	// account is never seen.
	suite.mockAccountRepo.On("FindAccountByCode", ctx, otherCompanyID, "1000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, otherCompanyID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(otherCompanyID, account.CompanyID)
}

func (suite *RegistryServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "9999", Name: "Bogus", AccountType: domain.AccountType("CONTRA")}

	account, err := suite.service.CreateAccount(ctx, suite.companyID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(account)
}

func (suite *RegistryServiceTestSuite) TestCreateAccount_MissingCompanyScope() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}

	_, err := suite.service.CreateAccount(ctx, "", req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RegistryServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, CompanyID: suite.companyID, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, accountID, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.companyID, accountID, suite.actorID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *RegistryServiceTestSuite) TestDeactivateAccount_CrossTenant() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, CompanyID: uuid.NewString(), IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.companyID, accountID, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCrossTenant)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RegistryServiceTestSuite) TestGetAccount_ByCodeFallback() {
	ctx := context.Background()
	account := &domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Code: "4000"}

	suite.mockAccountRepo.On("FindAccountByID", ctx, "4000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, "4000").Return(account, nil).Once()

	found, err := suite.service.GetAccount(ctx, suite.companyID, "4000")

	suite.Require().NoError(err)
	suite.Equal(account.AccountID, found.AccountID)
}

func (suite *RegistryServiceTestSuite) TestGetAccount_NotFound() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, "NOPE").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, "NOPE").Return(nil, apperrors.ErrNotFound).Once()

	found, err := suite.service.GetAccount(ctx, suite.companyID, "NOPE")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(found)
}

func (suite *RegistryServiceTestSuite) TestSetCashLike_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, CompanyID: suite.companyID, IsCashLike: false}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("SetCashLike", ctx, accountID, true, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.SetCashLike(ctx, suite.companyID, accountID, true, suite.actorID)

	suite.Require().NoError(err)
	suite.True(updated.IsCashLike)
}

func TestRegistryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceTestSuite))
}
