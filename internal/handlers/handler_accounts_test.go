package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wargaku/rtrw_portal_app/internal/apperrors"
	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
	"github.com/wargaku/rtrw_portal_app/internal/dto"
	"github.com/wargaku/rtrw_portal_app/internal/handlers"
	"github.com/wargaku/rtrw_portal_app/internal/platform/config"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) RegisterAccount(ctx context.Context, req dto.RegisterAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) SubmitProfile(ctx context.Context, accountID string, req dto.SubmitProfileRequest) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockAccountSvc *MockAccountService
	jwtSecret      string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockAccountSvc = new(MockAccountService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // no swagger in tests
	}
	services := &portssvc.ServiceContainer{
		Account: suite.mockAccountSvc,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *AccountHandlerTestSuite) generateTestToken(userID, role string) string {
	claims := jwt.MapClaims{
		"iss":  "rtrw-test",
		"sub":  userID,
		"role": role,
		"exp":  jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		"iat":  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) doRequest(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

const registerBody = `{
	"fullName": "Budi Santoso",
	"nationalID": "3173051505900001",
	"familyCardID": "3173052208100005",
	"phone": "081234567890"
}`

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestRegisterAccount_Success() {
	account := &domain.Account{
		AccountID:  uuid.NewString(),
		NationalID: "3173051505900001",
		FullName:   "Budi Santoso",
	}
	suite.mockAccountSvc.On("RegisterAccount", mock.Anything, mock.AnythingOfType("dto.RegisterAccountRequest")).
		Return(account, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", registerBody, "")

	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), account.AccountID)
}

func (suite *AccountHandlerTestSuite) TestRegisterAccount_DuplicateNationalIDConflict() {
	dupErr := fmt.Errorf("%w: national ID 3173051505900001 is already registered", apperrors.ErrDuplicate)
	suite.mockAccountSvc.On("RegisterAccount", mock.Anything, mock.AnythingOfType("dto.RegisterAccountRequest")).
		Return(nil, dupErr).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", registerBody, "")

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "already registered")
}

func (suite *AccountHandlerTestSuite) TestSubmitProfile_AlreadyVerifiedConflict() {
	accountID := uuid.NewString()
	token := suite.generateTestToken(accountID, "RESIDENT")
	body := `{
		"occupation": "Dosen",
		"religion": "Islam",
		"maritalStatus": "Kawin",
		"education": "S2",
		"phone": "081234567890",
		"address": "Blok C2 No. 14",
		"documents": [{"kind": "KTP", "fileURL": "https://files.example/ktp.jpg"}]
	}`

	stateErr := fmt.Errorf("%w: account %s is already verified", apperrors.ErrInvalidState, accountID)
	suite.mockAccountSvc.On("SubmitProfile", mock.Anything, accountID, mock.AnythingOfType("dto.SubmitProfileRequest")).
		Return(nil, stateErr).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/accounts/"+accountID+"/profile", body, token)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "already verified")
}

func (suite *AccountHandlerTestSuite) TestGetAccount_OtherResidentForbidden() {
	token := suite.generateTestToken(uuid.NewString(), "RESIDENT")

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+uuid.NewString(), "", token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountByID", mock.Anything, mock.Anything)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
