package dto

import (
	"time"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

// CreateFeedbackRequest posts a complaint or suggestion to the civic board.
type CreateFeedbackRequest struct {
	Body string `json:"body" binding:"required,min=10,max=2000"`
}

// FeedbackResponse is the API representation of a feedback item.
type FeedbackResponse struct {
	FeedbackID  string    `json:"feedbackID"`
	AccountID   string    `json:"accountID"`
	Body        string    `json:"body"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ToFeedbackResponse converts a domain.FeedbackItem.
func ToFeedbackResponse(f *domain.FeedbackItem) FeedbackResponse {
	return FeedbackResponse{
		FeedbackID:  f.FeedbackID,
		AccountID:   f.AccountID,
		Body:        f.Body,
		Status:      string(f.Status),
		SubmittedAt: f.SubmittedAt,
	}
}
