package services

import (
	"context"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	"github.com/wargaku/rtrw_portal_app/internal/dto"
)

// ChangeRequestSvcFacade covers resident creation and lookup of data-change
// requests. Decisions go through the transition service.
type ChangeRequestSvcFacade interface {
	// CreateChangeRequest validates the field name against the catalog and
	// snapshots the current value; unmapped fields fail here with
	// apperrors.ErrFieldMapping.
	CreateChangeRequest(ctx context.Context, accountID string, req dto.CreateChangeRequestRequest) (*domain.ChangeRequest, error)

	// GetChangeRequestByID retrieves a specific change request.
	GetChangeRequestByID(ctx context.Context, changeRequestID string) (*domain.ChangeRequest, error)
}

// PaymentSvcFacade covers resident submission and lookup of dues payments.
type PaymentSvcFacade interface {
	// SubmitPayment records a payment awaiting verification.
	SubmitPayment(ctx context.Context, accountID string, req dto.CreatePaymentRequest) (*domain.PaymentRecord, error)

	// GetPaymentByID retrieves a specific payment record.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error)
}

// FeedbackSvcFacade covers citizen submission and lookup of feedback items.
type FeedbackSvcFacade interface {
	// SubmitFeedback posts a new feedback item in status NEW.
	SubmitFeedback(ctx context.Context, accountID string, req dto.CreateFeedbackRequest) (*domain.FeedbackItem, error)

	// GetFeedbackByID retrieves a specific feedback item.
	GetFeedbackByID(ctx context.Context, feedbackID string) (*domain.FeedbackItem, error)
}
