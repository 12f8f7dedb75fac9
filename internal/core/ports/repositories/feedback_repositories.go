package repositories

import (
	"context"
	"time"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

// FeedbackReader defines read operations for citizen feedback items.
type FeedbackReader interface {
	// FindFeedbackByID retrieves a specific feedback item by its ID.
	FindFeedbackByID(ctx context.Context, feedbackID string) (*domain.FeedbackItem, error)

	// FindNewFeedback retrieves all feedback items still in NEW.
	FindNewFeedback(ctx context.Context) ([]domain.FeedbackItem, error)
}

// FeedbackWriter defines write operations for citizen feedback items.
type FeedbackWriter interface {
	// SaveFeedback persists a new feedback item.
	SaveFeedback(ctx context.Context, item domain.FeedbackItem) error

	// UpdateFeedbackStatus flips the feedback status as a compare-and-swap on
	// the expected current status, with the same error semantics as the other
	// status writers.
	UpdateFeedbackStatus(ctx context.Context, feedbackID string, from, to domain.FeedbackStatus, updatedBy string, at time.Time) error
}

// FeedbackRepositoryFacade combines all feedback repository interfaces.
type FeedbackRepositoryFacade interface {
	FeedbackReader
	FeedbackWriter
}
