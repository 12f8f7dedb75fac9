package dto

import (
	"time"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

// RegisterAccountRequest creates a bare resident record. The account starts
// with dataComplete=false and verified=false; it does not reach the
// administrator queue until the profile is submitted.
type RegisterAccountRequest struct {
	FullName     string `json:"fullName" binding:"required,min=3,max=150"`
	NationalID   string `json:"nationalID" binding:"required,numeric"`
	FamilyCardID string `json:"familyCardID" binding:"required,numeric"`
	Phone        string `json:"phone" binding:"omitempty,max=20"`
}

// DocumentRef is an uploaded attachment reference; file handling itself is
// external to this service.
type DocumentRef struct {
	Kind    string `json:"kind" binding:"required,oneof=KTP KK LAINNYA"`
	FileURL string `json:"fileURL" binding:"required,url"`
}

// SubmitProfileRequest completes a resident profile, setting dataComplete=true
// and placing the account on the verification queue.
type SubmitProfileRequest struct {
	Occupation    string        `json:"occupation" binding:"required,max=100"`
	Religion      string        `json:"religion" binding:"required,max=50"`
	MaritalStatus string        `json:"maritalStatus" binding:"required,max=50"`
	Education     string        `json:"education" binding:"required,max=100"`
	Phone         string        `json:"phone" binding:"required,max=20"`
	Address       string        `json:"address" binding:"required,max=300"`
	Documents     []DocumentRef `json:"documents" binding:"required,min=1,dive"`
}

// AccountResponse is the API representation of a resident account.
type AccountResponse struct {
	AccountID       string                    `json:"accountID"`
	NationalID      string                    `json:"nationalID"`
	FamilyCardID    string                    `json:"familyCardID"`
	FullName        string                    `json:"fullName"`
	Occupation      string                    `json:"occupation,omitempty"`
	Religion        string                    `json:"religion,omitempty"`
	MaritalStatus   string                    `json:"maritalStatus,omitempty"`
	Education       string                    `json:"education,omitempty"`
	Phone           string                    `json:"phone,omitempty"`
	Address         string                    `json:"address,omitempty"`
	Documents       []domain.IdentityDocument `json:"documents,omitempty"`
	DataComplete    bool                      `json:"dataComplete"`
	Verified        bool                      `json:"verified"`
	RejectionReason *string                   `json:"rejectionReason,omitempty"`
	SubmittedAt     *time.Time                `json:"submittedAt,omitempty"`
	CreatedAt       time.Time                 `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		NationalID:      a.NationalID,
		FamilyCardID:    a.FamilyCardID,
		FullName:        a.FullName,
		Occupation:      a.Occupation,
		Religion:        a.Religion,
		MaritalStatus:   a.MaritalStatus,
		Education:       a.Education,
		Phone:           a.Phone,
		Address:         a.Address,
		Documents:       a.Documents,
		DataComplete:    a.DataComplete,
		Verified:        a.Verified,
		RejectionReason: a.RejectionReason,
		SubmittedAt:     a.SubmittedAt,
		CreatedAt:       a.CreatedAt,
	}
}
