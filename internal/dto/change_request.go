package dto

import (
	"time"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

// CreateChangeRequestRequest is a resident's request to change one field of
// their own account. The field name is validated against the catalog at
// creation time; unmapped names are rejected here, never at approval time.
type CreateChangeRequestRequest struct {
	Field    string `json:"field" binding:"required,max=50"`
	NewValue string `json:"newValue" binding:"required,max=300"`
	Reason   string `json:"reason" binding:"omitempty,max=500"`
}

// ChangeRequestResponse is the API representation of a change request.
type ChangeRequestResponse struct {
	ChangeRequestID string     `json:"changeRequestID"`
	AccountID       string     `json:"accountID"`
	Field           string     `json:"field"`
	OldValue        string     `json:"oldValue"`
	NewValue        string     `json:"newValue"`
	Reason          string     `json:"reason,omitempty"`
	Status          string     `json:"status"`
	AdminNote       *string    `json:"adminNote,omitempty"`
	SubmittedAt     time.Time  `json:"submittedAt"`
	DecidedAt       *time.Time `json:"decidedAt,omitempty"`
}

// ToChangeRequestResponse converts a domain.ChangeRequest.
func ToChangeRequestResponse(r *domain.ChangeRequest) ChangeRequestResponse {
	return ChangeRequestResponse{
		ChangeRequestID: r.ChangeRequestID,
		AccountID:       r.AccountID,
		Field:           r.Field,
		OldValue:        r.OldValue,
		NewValue:        r.NewValue,
		Reason:          r.Reason,
		Status:          string(r.Status),
		AdminNote:       r.AdminNote,
		SubmittedAt:     r.SubmittedAt,
		DecidedAt:       r.DecidedAt,
	}
}
