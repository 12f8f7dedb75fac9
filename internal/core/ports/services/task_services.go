package services

import (
	"context"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	"github.com/wargaku/rtrw_portal_app/internal/dto"
)

// TaskSvcFacade exposes the unified administrator task queue. The queue is
// re-derived from the source stores on every call; nothing here is cached.
type TaskSvcFacade interface {
	// ListTasks returns the queue ordered by OccurredAt descending, stable
	// across records with equal timestamps. A nil kind means no filter.
	ListTasks(ctx context.Context, kind *domain.TaskKind) ([]domain.PendingTask, error)

	// CountTasksByKind returns the badge count per kind for the dashboard.
	CountTasksByKind(ctx context.Context) (map[domain.TaskKind]int, error)

	// AutoApproveEligible applies the auto-approval policy over the current
	// account-verification tasks and approves each eligible one as an
	// independent transaction, reporting per-account outcomes.
	AutoApproveEligible(ctx context.Context, actorUserID string) ([]dto.AutoApprovalResult, error)
}
