package dto

import (
	"time"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

// ListTasksParams defines query parameters for listing pending tasks.
type ListTasksParams struct {
	Kind string `form:"kind,default=ALL"`
}

// PendingTaskResponse is the API representation of a pending task.
type PendingTaskResponse struct {
	Kind        string                    `json:"kind"`
	SourceID    string                    `json:"sourceID"`
	AccountID   string                    `json:"accountID"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	OccurredAt  time.Time                 `json:"occurredAt"`
	NationalID  string                    `json:"nationalID,omitempty"`
	Documents   []domain.IdentityDocument `json:"documents,omitempty"`
}

// ListTasksResponse wraps the ordered task queue plus per-kind badge counts so
// presentation code never re-derives them.
type ListTasksResponse struct {
	Tasks  []PendingTaskResponse `json:"tasks"`
	Counts map[string]int        `json:"counts"`
}

// ToPendingTaskResponse converts a domain.PendingTask to its API representation.
func ToPendingTaskResponse(t domain.PendingTask) PendingTaskResponse {
	return PendingTaskResponse{
		Kind:        string(t.Kind),
		SourceID:    t.SourceID,
		AccountID:   t.AccountID,
		Title:       t.Title,
		Description: t.Description,
		OccurredAt:  t.OccurredAt,
		NationalID:  t.NationalID,
		Documents:   t.Documents,
	}
}

// ToListTasksResponse converts the aggregated queue and counts.
func ToListTasksResponse(tasks []domain.PendingTask, counts map[domain.TaskKind]int) ListTasksResponse {
	taskResponses := make([]PendingTaskResponse, len(tasks))
	for i, t := range tasks {
		taskResponses[i] = ToPendingTaskResponse(t)
	}
	countsByName := make(map[string]int, len(counts))
	for kind, n := range counts {
		countsByName[string(kind)] = n
	}
	return ListTasksResponse{Tasks: taskResponses, Counts: countsByName}
}

// TransitionRequest carries the optional administrator note on approve/reject.
// Whether the note is mandatory depends on the task kind (account rejections
// require one); that rule lives in the transition service, not here.
type TransitionRequest struct {
	Note *string `json:"note" binding:"omitempty,max=500"`
}

// TransitionOutcomeResponse is the API representation of a decided transition.
type TransitionOutcomeResponse struct {
	Kind      string    `json:"kind"`
	SourceID  string    `json:"sourceID"`
	Decision  string    `json:"decision"`
	NewStatus string    `json:"newStatus"`
	DecidedAt time.Time `json:"decidedAt"`
}

// ToTransitionOutcomeResponse converts a domain.TransitionOutcome.
func ToTransitionOutcomeResponse(o *domain.TransitionOutcome) TransitionOutcomeResponse {
	return TransitionOutcomeResponse{
		Kind:      string(o.Kind),
		SourceID:  o.SourceID,
		Decision:  string(o.Decision),
		NewStatus: o.NewStatus,
		DecidedAt: o.DecidedAt,
	}
}

// AutoApprovalResult is the per-account outcome of a batch auto-approval.
// One task's failure never aborts the rest, so the response is always a full
// list, never an all-or-nothing error.
type AutoApprovalResult struct {
	AccountID string `json:"accountID"`
	Approved  bool   `json:"approved"`
	Error     string `json:"error,omitempty"`
}

// AutoApproveResponse wraps the batch results.
type AutoApproveResponse struct {
	Results []AutoApprovalResult `json:"results"`
}
