package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wargaku/rtrw_portal_app/internal/apperrors"
	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
	"github.com/wargaku/rtrw_portal_app/internal/core/services"
)

// --- Mock TransitionService ---
type MockTransitionService struct {
	mock.Mock
}

var _ portssvc.TransitionSvcFacade = (*MockTransitionService)(nil)

func (m *MockTransitionService) Apply(ctx context.Context, kind domain.TaskKind, sourceID string, decision domain.Decision, note *string, actorUserID string) (*domain.TransitionOutcome, error) {
	args := m.Called(ctx, kind, sourceID, decision, note, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransitionOutcome), args.Error(1)
}

// --- Test Suite Setup ---
type TaskServiceTestSuite struct {
	suite.Suite
	mockAccountRepo   *MockAccountRepository
	mockChangeRepo    *MockChangeRequestRepository
	mockPaymentRepo   *MockPaymentRepository
	mockFeedbackRepo  *MockFeedbackRepository
	mockTransitionSvc *MockTransitionService
	service           portssvc.TaskSvcFacade
	adminID           string
}

func (suite *TaskServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockChangeRepo = new(MockChangeRequestRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockFeedbackRepo = new(MockFeedbackRepository)
	suite.mockTransitionSvc = new(MockTransitionService)
	suite.service = services.NewTaskService(
		suite.mockAccountRepo,
		suite.mockChangeRepo,
		suite.mockPaymentRepo,
		suite.mockFeedbackRepo,
		suite.mockTransitionSvc,
		services.DefaultAutoApprovalPolicy(),
	)
	suite.adminID = uuid.NewString()
}

func (suite *TaskServiceTestSuite) expectEmptySources() {
	suite.mockAccountRepo.On("FindAccountsAwaitingVerification", mock.Anything).Return([]domain.Account{}, nil)
	suite.mockChangeRepo.On("FindSubmittedChangeRequests", mock.Anything).Return([]domain.ChangeRequest{}, nil)
	suite.mockPaymentRepo.On("FindPaymentsAwaitingVerification", mock.Anything).Return([]domain.PaymentRecord{}, nil)
	suite.mockFeedbackRepo.On("FindNewFeedback", mock.Anything).Return([]domain.FeedbackItem{}, nil)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func pendingAccountAt(submitted time.Time) domain.Account {
	return domain.Account{
		AccountID:    uuid.NewString(),
		NationalID:   "3173051505900001",
		FullName:     "Siti Aminah",
		DataComplete: true,
		Verified:     false,
		SubmittedAt:  &submitted,
		Documents:    []domain.IdentityDocument{{DocumentID: uuid.NewString(), Kind: domain.DocumentNationalID}},
	}
}

// --- Test Cases ---

func (suite *TaskServiceTestSuite) TestListTasks_OrderedNewestFirst() {
	ctx := context.Background()

	account := pendingAccountAt(day("2025-05-18"))
	payment := domain.PaymentRecord{
		PaymentID: uuid.NewString(),
		AccountID: uuid.NewString(),
		Amount:    decimal.NewFromInt(25000),
		Category:  "Iuran Kebersihan",
		Method:    domain.PaymentMethodCash,
		Status:    domain.PaymentAwaitingVerification,
		PaidAt:    day("2025-05-19"),
	}
	item := domain.FeedbackItem{
		FeedbackID:  uuid.NewString(),
		AccountID:   uuid.NewString(),
		Body:        "Portal masuk rusak",
		Status:      domain.FeedbackNew,
		SubmittedAt: day("2025-05-10"),
	}

	suite.mockAccountRepo.On("FindAccountsAwaitingVerification", ctx).Return([]domain.Account{account}, nil).Once()
	suite.mockChangeRepo.On("FindSubmittedChangeRequests", ctx).Return([]domain.ChangeRequest{}, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsAwaitingVerification", ctx).Return([]domain.PaymentRecord{payment}, nil).Once()
	suite.mockFeedbackRepo.On("FindNewFeedback", ctx).Return([]domain.FeedbackItem{item}, nil).Once()

	tasks, err := suite.service.ListTasks(ctx, nil)

	suite.Require().NoError(err)
	suite.Require().Len(tasks, 3)
	suite.Equal(payment.PaymentID, tasks[0].SourceID)
	suite.Equal(account.AccountID, tasks[1].SourceID)
	suite.Equal(item.FeedbackID, tasks[2].SourceID)
}

func (suite *TaskServiceTestSuite) TestListTasks_StableOnEqualTimestamps() {
	ctx := context.Background()
	ts := day("2025-05-18")

	account := pendingAccountAt(ts)
	req := domain.ChangeRequest{
		ChangeRequestID: uuid.NewString(),
		AccountID:       uuid.NewString(),
		Field:           "Alamat",
		OldValue:        "Blok A1",
		NewValue:        "Blok B2",
		Status:          domain.ChangeRequestSubmitted,
		SubmittedAt:     ts,
	}

	suite.mockAccountRepo.On("FindAccountsAwaitingVerification", ctx).Return([]domain.Account{account}, nil).Once()
	suite.mockChangeRepo.On("FindSubmittedChangeRequests", ctx).Return([]domain.ChangeRequest{req}, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsAwaitingVerification", ctx).Return([]domain.PaymentRecord{}, nil).Once()
	suite.mockFeedbackRepo.On("FindNewFeedback", ctx).Return([]domain.FeedbackItem{}, nil).Once()

	tasks, err := suite.service.ListTasks(ctx, nil)

	suite.Require().NoError(err)
	suite.Require().Len(tasks, 2)
	// Equal timestamps keep the fixed source order: accounts first.
	suite.Equal(domain.TaskAccountVerification, tasks[0].Kind)
	suite.Equal(domain.TaskChangeRequest, tasks[1].Kind)
}

func (suite *TaskServiceTestSuite) TestListTasks_KindFilter() {
	ctx := context.Background()

	account := pendingAccountAt(day("2025-05-18"))
	item := domain.FeedbackItem{
		FeedbackID:  uuid.NewString(),
		AccountID:   uuid.NewString(),
		Body:        "Sampah menumpuk di TPS",
		Status:      domain.FeedbackNew,
		SubmittedAt: day("2025-05-19"),
	}

	suite.mockAccountRepo.On("FindAccountsAwaitingVerification", ctx).Return([]domain.Account{account}, nil).Once()
	suite.mockChangeRepo.On("FindSubmittedChangeRequests", ctx).Return([]domain.ChangeRequest{}, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsAwaitingVerification", ctx).Return([]domain.PaymentRecord{}, nil).Once()
	suite.mockFeedbackRepo.On("FindNewFeedback", ctx).Return([]domain.FeedbackItem{item}, nil).Once()

	kind := domain.TaskFeedback
	tasks, err := suite.service.ListTasks(ctx, &kind)

	suite.Require().NoError(err)
	suite.Require().Len(tasks, 1)
	suite.Equal(item.FeedbackID, tasks[0].SourceID)
}

func (suite *TaskServiceTestSuite) TestCountTasksByKind_ZeroInitialized() {
	ctx := context.Background()

	account := pendingAccountAt(day("2025-05-18"))
	suite.mockAccountRepo.On("FindAccountsAwaitingVerification", ctx).Return([]domain.Account{account}, nil).Once()
	suite.mockChangeRepo.On("FindSubmittedChangeRequests", ctx).Return([]domain.ChangeRequest{}, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsAwaitingVerification", ctx).Return([]domain.PaymentRecord{}, nil).Once()
	suite.mockFeedbackRepo.On("FindNewFeedback", ctx).Return([]domain.FeedbackItem{}, nil).Once()

	counts, err := suite.service.CountTasksByKind(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, counts[domain.TaskAccountVerification])
	suite.Equal(0, counts[domain.TaskChangeRequest])
	suite.Equal(0, counts[domain.TaskPayment])
	suite.Equal(0, counts[domain.TaskFeedback])
	suite.Len(counts, len(domain.TaskKinds))
}

func (suite *TaskServiceTestSuite) TestListTasks_SourceErrorPropagates() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountsAwaitingVerification", ctx).Return(nil, apperrors.ErrInternal).Once()

	_, err := suite.service.ListTasks(ctx, nil)

	suite.Require().ErrorIs(err, apperrors.ErrInternal)
}

func (suite *TaskServiceTestSuite) TestAutoApproveEligible_FiltersAndApproves() {
	ctx := context.Background()

	eligible := pendingAccountAt(day("2025-05-18"))
	shortNIK := pendingAccountAt(day("2025-05-17"))
	shortNIK.NationalID = "317305150590000" // 15 digits
	noDocs := pendingAccountAt(day("2025-05-16"))
	noDocs.Documents = nil

	suite.mockAccountRepo.On("FindAccountsAwaitingVerification", ctx).Return([]domain.Account{eligible, shortNIK, noDocs}, nil).Once()
	suite.mockChangeRepo.On("FindSubmittedChangeRequests", ctx).Return([]domain.ChangeRequest{}, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsAwaitingVerification", ctx).Return([]domain.PaymentRecord{}, nil).Once()
	suite.mockFeedbackRepo.On("FindNewFeedback", ctx).Return([]domain.FeedbackItem{}, nil).Once()

	suite.mockTransitionSvc.On("Apply", ctx, domain.TaskAccountVerification, eligible.AccountID, domain.DecisionApprove, (*string)(nil), suite.adminID).
		Return(&domain.TransitionOutcome{Kind: domain.TaskAccountVerification, SourceID: eligible.AccountID, NewStatus: "VERIFIED"}, nil).Once()

	results, err := suite.service.AutoApproveEligible(ctx, suite.adminID)

	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	suite.Equal(eligible.AccountID, results[0].AccountID)
	suite.True(results[0].Approved)
	suite.mockTransitionSvc.AssertNumberOfCalls(suite.T(), "Apply", 1)
}

func (suite *TaskServiceTestSuite) TestAutoApproveEligible_OneFailureDoesNotAbortBatch() {
	ctx := context.Background()

	first := pendingAccountAt(day("2025-05-18"))
	second := pendingAccountAt(day("2025-05-17"))

	suite.mockAccountRepo.On("FindAccountsAwaitingVerification", ctx).Return([]domain.Account{first, second}, nil).Once()
	suite.mockChangeRepo.On("FindSubmittedChangeRequests", ctx).Return([]domain.ChangeRequest{}, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsAwaitingVerification", ctx).Return([]domain.PaymentRecord{}, nil).Once()
	suite.mockFeedbackRepo.On("FindNewFeedback", ctx).Return([]domain.FeedbackItem{}, nil).Once()

	// The first account lost a race against a manual decision.
	suite.mockTransitionSvc.On("Apply", ctx, domain.TaskAccountVerification, first.AccountID, domain.DecisionApprove, (*string)(nil), suite.adminID).
		Return(nil, apperrors.ErrInvalidState).Once()
	suite.mockTransitionSvc.On("Apply", ctx, domain.TaskAccountVerification, second.AccountID, domain.DecisionApprove, (*string)(nil), suite.adminID).
		Return(&domain.TransitionOutcome{NewStatus: "VERIFIED"}, nil).Once()

	results, err := suite.service.AutoApproveEligible(ctx, suite.adminID)

	suite.Require().NoError(err)
	suite.Require().Len(results, 2)
	suite.False(results[0].Approved)
	suite.NotEmpty(results[0].Error)
	suite.True(results[1].Approved)
}

func (suite *TaskServiceTestSuite) TestAutoApproveEligible_NoneEligible() {
	ctx := context.Background()
	suite.expectEmptySources()

	results, err := suite.service.AutoApproveEligible(ctx, suite.adminID)

	suite.Require().NoError(err)
	suite.Empty(results)
	suite.mockTransitionSvc.AssertNotCalled(suite.T(), "Apply", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
