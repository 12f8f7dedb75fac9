package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wargaku/rtrw_portal_app/internal/apperrors"
	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
	"github.com/wargaku/rtrw_portal_app/internal/core/services"
	"github.com/wargaku/rtrw_portal_app/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
}

func (suite *AccountServiceTestSuite) TestRegisterAccount_StartsUnverified() {
	ctx := context.Background()
	req := dto.RegisterAccountRequest{
		FullName:     "Budi Santoso",
		NationalID:   "3173051505900001",
		FamilyCardID: "3173052208100005",
		Phone:        "081234567890",
	}

	var saved domain.Account
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Account) }).
		Return(nil).Once()

	account, err := suite.service.RegisterAccount(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.False(account.DataComplete)
	suite.False(account.Verified)
	suite.Nil(account.SubmittedAt)
	suite.Equal(account.AccountID, saved.AccountID)
}

func (suite *AccountServiceTestSuite) TestSubmitProfile_QueuesForVerification() {
	ctx := context.Background()
	accountID := uuid.NewString()
	rejection := "Foto KTP buram"
	existing := &domain.Account{
		AccountID:       accountID,
		NationalID:      "3173051505900001",
		FullName:        "Budi Santoso",
		DataComplete:    false,
		Verified:        false,
		RejectionReason: &rejection,
	}
	req := dto.SubmitProfileRequest{
		Occupation:    "Guru",
		Religion:      "Islam",
		MaritalStatus: "Kawin",
		Education:     "S1",
		Phone:         "081234567890",
		Address:       "Blok C2 No. 14",
		Documents:     []dto.DocumentRef{{Kind: "KTP", FileURL: "https://files.example/ktp.jpg"}},
	}

	var updated domain.Account
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountProfile", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.Account) }).
		Return(nil).Once()

	account, err := suite.service.SubmitProfile(ctx, accountID, req)

	suite.Require().NoError(err)
	suite.True(account.DataComplete)
	suite.False(account.Verified)
	suite.Require().NotNil(account.SubmittedAt)
	suite.WithinDuration(time.Now(), *account.SubmittedAt, time.Minute)
	// Resubmission clears the previous rejection reason.
	suite.Nil(account.RejectionReason)
	suite.Require().Len(updated.Documents, 1)
	suite.Equal(domain.DocumentNationalID, updated.Documents[0].Kind)
}

func (suite *AccountServiceTestSuite) TestSubmitProfile_VerifiedAccountRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:    accountID,
		NationalID:   "3173051505900001",
		FullName:     "Budi Santoso",
		Occupation:   "Guru",
		DataComplete: true,
		Verified:     true,
	}
	req := dto.SubmitProfileRequest{Occupation: "Dosen"}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	_, err := suite.service.SubmitProfile(ctx, accountID, req)

	// Verified data changes only through the change-request workflow.
	suite.Require().ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountProfile", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestRegisterAccount_DuplicateNationalID() {
	ctx := context.Background()
	req := dto.RegisterAccountRequest{
		FullName:     "Budi Santoso",
		NationalID:   "3173051505900001",
		FamilyCardID: "3173052208100005",
		Phone:        "081234567890",
	}

	dupErr := fmt.Errorf("%w: national ID %s is already registered", apperrors.ErrDuplicate, req.NationalID)
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(dupErr).Once()

	_, err := suite.service.RegisterAccount(ctx, req)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestSubmitProfile_AccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SubmitProfile(ctx, accountID, dto.SubmitProfileRequest{})

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountProfile", mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
