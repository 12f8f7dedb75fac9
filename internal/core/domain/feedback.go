package domain

import "time"

// FeedbackStatus indicates the triage state of a citizen feedback item.
// Unlike the other task kinds this is a three-state progression:
// NEW -> IN_PROGRESS -> RESOLVED, or NEW -> RESOLVED directly. There is no
// rejection path for feedback.
type FeedbackStatus string

const (
	FeedbackNew        FeedbackStatus = "NEW"
	FeedbackInProgress FeedbackStatus = "IN_PROGRESS"
	FeedbackResolved   FeedbackStatus = "RESOLVED"
)

// Terminal reports whether no further transition is legal from this status.
func (s FeedbackStatus) Terminal() bool {
	return s == FeedbackResolved
}

// FeedbackItem is a citizen complaint or suggestion on the civic board.
type FeedbackItem struct {
	FeedbackID  string         `json:"feedbackID"`
	AccountID   string         `json:"accountID"`
	Body        string         `json:"body"`
	Status      FeedbackStatus `json:"status"`
	SubmittedAt time.Time      `json:"submittedAt"`
	AuditFields
}
