package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	portsrepo "github.com/wargaku/rtrw_portal_app/internal/core/ports/repositories"
	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
	"github.com/wargaku/rtrw_portal_app/internal/dto"
	"github.com/wargaku/rtrw_portal_app/internal/middleware"
)

// feedbackService handles citizen submission of feedback items.
type feedbackService struct {
	feedbackRepo portsrepo.FeedbackRepositoryFacade
	accountRepo  portsrepo.AccountReader
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(feedbackRepo portsrepo.FeedbackRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.FeedbackSvcFacade {
	return &feedbackService{feedbackRepo: feedbackRepo, accountRepo: accountRepo}
}

var _ portssvc.FeedbackSvcFacade = (*feedbackService)(nil)

// SubmitFeedback implements portssvc.FeedbackSvcFacade.
func (s *feedbackService) SubmitFeedback(ctx context.Context, accountID string, req dto.CreateFeedbackRequest) (*domain.FeedbackItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	now := time.Now().UTC()
	item := domain.FeedbackItem{
		FeedbackID:  uuid.NewString(),
		AccountID:   accountID,
		Body:        req.Body,
		Status:      domain.FeedbackNew,
		SubmittedAt: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     accountID,
			LastUpdatedAt: now,
			LastUpdatedBy: accountID,
		},
	}

	if err := s.feedbackRepo.SaveFeedback(ctx, item); err != nil {
		logger.Error("Failed to save feedback", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	logger.Info("Feedback submitted", slog.String("feedback_id", item.FeedbackID))
	return &item, nil
}

// GetFeedbackByID implements portssvc.FeedbackSvcFacade.
func (s *feedbackService) GetFeedbackByID(ctx context.Context, feedbackID string) (*domain.FeedbackItem, error) {
	item, err := s.feedbackRepo.FindFeedbackByID(ctx, feedbackID)
	if err != nil {
		return nil, fmt.Errorf("failed to find feedback %s: %w", feedbackID, err)
	}
	return item, nil
}
