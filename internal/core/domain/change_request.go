package domain

import "time"

// ChangeRequestStatus indicates the state of a data-change request.
type ChangeRequestStatus string

const (
	ChangeRequestSubmitted ChangeRequestStatus = "SUBMITTED"
	ChangeRequestApproved  ChangeRequestStatus = "APPROVED"
	ChangeRequestRejected  ChangeRequestStatus = "REJECTED"
)

// Terminal reports whether no further transition is legal from this status.
func (s ChangeRequestStatus) Terminal() bool {
	return s == ChangeRequestApproved || s == ChangeRequestRejected
}

// ChangeRequest is a resident-initiated request to change a single field of
// their own account record. It is immutable once the status leaves SUBMITTED;
// approval writes NewValue into the mapped account attribute in the same
// transaction that records the decision.
type ChangeRequest struct {
	ChangeRequestID string              `json:"changeRequestID"`
	AccountID       string              `json:"accountID"`
	Field           string              `json:"field"` // catalog name, e.g. "Pekerjaan"
	OldValue        string              `json:"oldValue"`
	NewValue        string              `json:"newValue"`
	Reason          string              `json:"reason"`
	Status          ChangeRequestStatus `json:"status"`
	AdminNote       *string             `json:"adminNote,omitempty"`
	SubmittedAt     time.Time           `json:"submittedAt"`
	DecidedAt       *time.Time          `json:"decidedAt,omitempty"`
	DecidedBy       *string             `json:"decidedBy,omitempty"`
	AuditFields
}
