package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wargaku/rtrw_portal_app/internal/apperrors"
	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	portsrepo "github.com/wargaku/rtrw_portal_app/internal/core/ports/repositories"
	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
	"github.com/wargaku/rtrw_portal_app/internal/core/services"
)

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
}

var _ portsrepo.NotificationRepositoryFacade = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindNotificationsByRecipient(ctx context.Context, accountID string, limit int, offset int) ([]domain.Notification, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, recipientAccountID string) error {
	args := m.Called(ctx, notificationID, recipientAccountID)
	return args.Error(0)
}

// --- Mock NotificationSender ---
type MockNotificationSender struct {
	mock.Mock
}

var _ portssvc.NotificationSender = (*MockNotificationSender)(nil)

func (m *MockNotificationSender) Send(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// --- Test Suite Setup ---
type NotificationServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockNotificationRepository
	mockSender *MockNotificationSender
	service    portssvc.NotificationSvcFacade
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockNotificationRepository)
	suite.mockSender = new(MockNotificationSender)
	suite.service = services.NewNotificationService(suite.mockRepo, suite.mockSender, nil)
}

// --- Test Cases ---

func (suite *NotificationServiceTestSuite) TestDispatchTransition_ExactlyOnePerEvent() {
	ctx := context.Background()
	recipient := uuid.NewString()
	event := domain.TransitionEvent{
		TaskKind:           domain.TaskPayment,
		SourceID:           uuid.NewString(),
		Decision:           domain.DecisionApprove,
		RecipientAccountID: recipient,
	}

	suite.mockRepo.On("SaveNotification", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.RecipientAccountID == recipient && n.Category == domain.NotifPayment && !n.Read
	})).Return(nil).Once()
	suite.mockSender.On("Send", ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()

	notification, err := suite.service.DispatchTransition(ctx, event)

	suite.Require().NoError(err)
	suite.Require().NotNil(notification)
	suite.Equal(recipient, notification.RecipientAccountID)
	suite.NotEmpty(notification.Message)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveNotification", 1)
	suite.mockSender.AssertNumberOfCalls(suite.T(), "Send", 1)
}

func (suite *NotificationServiceTestSuite) TestDispatchTransition_CategoriesPerKind() {
	ctx := context.Background()
	cases := []struct {
		kind     domain.TaskKind
		decision domain.Decision
		category domain.NotificationCategory
	}{
		{domain.TaskAccountVerification, domain.DecisionApprove, domain.NotifVerification},
		{domain.TaskAccountVerification, domain.DecisionReject, domain.NotifVerification},
		{domain.TaskChangeRequest, domain.DecisionApprove, domain.NotifDataChange},
		{domain.TaskPayment, domain.DecisionReject, domain.NotifPayment},
		{domain.TaskFeedback, domain.DecisionStartProgress, domain.NotifFeedbackReply},
		{domain.TaskFeedback, domain.DecisionApprove, domain.NotifFeedbackReply},
	}

	for _, tc := range cases {
		suite.mockRepo.On("SaveNotification", ctx, mock.MatchedBy(func(n domain.Notification) bool {
			return n.Category == tc.category
		})).Return(nil).Once()
		suite.mockSender.On("Send", ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()

		event := domain.TransitionEvent{
			TaskKind:           tc.kind,
			SourceID:           uuid.NewString(),
			Decision:           tc.decision,
			RecipientAccountID: uuid.NewString(),
		}
		notification, err := suite.service.DispatchTransition(ctx, event)

		suite.Require().NoError(err, "kind %s decision %s", tc.kind, tc.decision)
		suite.Equal(tc.category, notification.Category)
	}
}

func (suite *NotificationServiceTestSuite) TestDispatchTransition_NoTemplateForIllegalPair() {
	ctx := context.Background()
	event := domain.TransitionEvent{
		TaskKind:           domain.TaskFeedback,
		SourceID:           uuid.NewString(),
		Decision:           domain.DecisionReject,
		RecipientAccountID: uuid.NewString(),
	}

	_, err := suite.service.DispatchTransition(ctx, event)

	suite.Require().ErrorIs(err, apperrors.ErrInternal)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveNotification", mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestDispatchTransition_SenderFailureIsNotFatal() {
	ctx := context.Background()
	event := domain.TransitionEvent{
		TaskKind:           domain.TaskChangeRequest,
		SourceID:           uuid.NewString(),
		Decision:           domain.DecisionReject,
		RecipientAccountID: uuid.NewString(),
	}

	suite.mockRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()
	suite.mockSender.On("Send", ctx, mock.AnythingOfType("domain.Notification")).Return(errors.New("gateway timeout")).Once()

	notification, err := suite.service.DispatchTransition(ctx, event)

	// The persisted notification is the record of truth; delivery is
	// best effort.
	suite.Require().NoError(err)
	suite.NotNil(notification)
}

func (suite *NotificationServiceTestSuite) TestDispatchTransition_SaveFailurePropagates() {
	ctx := context.Background()
	event := domain.TransitionEvent{
		TaskKind:           domain.TaskPayment,
		SourceID:           uuid.NewString(),
		Decision:           domain.DecisionApprove,
		RecipientAccountID: uuid.NewString(),
	}

	suite.mockRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).Return(errors.New("connection reset")).Once()

	_, err := suite.service.DispatchTransition(ctx, event)

	suite.Require().Error(err)
	suite.mockSender.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestListNotifications_DefaultLimit() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindNotificationsByRecipient", ctx, accountID, 20, 0).Return([]domain.Notification{}, nil).Once()

	_, err := suite.service.ListNotifications(ctx, accountID, 0, 0)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestMarkRead_ScopedToRecipient() {
	ctx := context.Background()
	notificationID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockRepo.On("MarkNotificationRead", ctx, notificationID, accountID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.MarkRead(ctx, notificationID, accountID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
