package domain

import (
	"fmt"
	"time"
)

// TaskKind is the closed set of pending-work categories on the administrator
// queue. Adding a kind means adding one projection, one transition table entry
// and one notification template, nothing else.
type TaskKind string

const (
	TaskAccountVerification TaskKind = "ACCOUNT_VERIFICATION"
	TaskChangeRequest       TaskKind = "CHANGE_REQUEST"
	TaskPayment             TaskKind = "PAYMENT"
	TaskFeedback            TaskKind = "FEEDBACK"
)

// TaskKinds lists every kind in aggregation order.
var TaskKinds = []TaskKind{TaskAccountVerification, TaskChangeRequest, TaskPayment, TaskFeedback}

// ParseTaskKind validates a kind coming off the wire. The empty string and
// "ALL" both mean no filter and return ok=false with no error.
func ParseTaskKind(s string) (TaskKind, bool, error) {
	if s == "" || s == "ALL" {
		return "", false, nil
	}
	for _, k := range TaskKinds {
		if string(k) == s {
			return k, true, nil
		}
	}
	return "", false, fmt.Errorf("unknown task kind %q", s)
}

// Decision is an administrator verdict on a pending task.
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
	// DecisionStartProgress is the explicit NEW -> IN_PROGRESS edge, legal for
	// feedback items only.
	DecisionStartProgress Decision = "START_PROGRESS"
)

// PendingTask is the normalized projection of a domain record that is
// currently awaiting administrator action. It is derived on every read and
// never persisted, so it cannot go stale.
type PendingTask struct {
	Kind        TaskKind           `json:"kind"`
	SourceID    string             `json:"sourceID"` // ID of the owning record
	AccountID   string             `json:"accountID"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	OccurredAt  time.Time          `json:"occurredAt"`
	// NationalID and Documents are populated for ACCOUNT_VERIFICATION only;
	// the auto-approval policy evaluates both.
	NationalID string             `json:"nationalID,omitempty"`
	Documents  []IdentityDocument `json:"documents,omitempty"`
}

// TransitionEvent is emitted exactly once per successful transition and
// consumed by the notification dispatcher.
type TransitionEvent struct {
	TaskKind           TaskKind
	SourceID           string
	Decision           Decision
	RecipientAccountID string
}

// TransitionOutcome is the server-authoritative result of a decision; clients
// reflect it rather than predicting it.
type TransitionOutcome struct {
	Kind      TaskKind  `json:"kind"`
	SourceID  string    `json:"sourceID"`
	Decision  Decision  `json:"decision"`
	NewStatus string    `json:"newStatus"`
	DecidedAt time.Time `json:"decidedAt"`
}
