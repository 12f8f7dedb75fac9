package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	portsrepo "github.com/wargaku/rtrw_portal_app/internal/core/ports/repositories"
	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
	"github.com/wargaku/rtrw_portal_app/internal/dto"
	"github.com/wargaku/rtrw_portal_app/internal/middleware"
)

// taskService merges the four task sources into one administrator queue.
// It holds no state of its own: every call re-derives the queue from the
// current store contents, so the queue can never diverge from the records.
// Queue sizes are tens of items, which makes the recomputation cheap.
type taskService struct {
	accountRepo  portsrepo.AccountReader
	changeRepo   portsrepo.ChangeRequestReader
	paymentRepo  portsrepo.PaymentReader
	feedbackRepo portsrepo.FeedbackReader

	transitionSvc portssvc.TransitionSvcFacade
	policy        AutoApprovalPolicy
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	accountRepo portsrepo.AccountReader,
	changeRepo portsrepo.ChangeRequestReader,
	paymentRepo portsrepo.PaymentReader,
	feedbackRepo portsrepo.FeedbackReader,
	transitionSvc portssvc.TransitionSvcFacade,
	policy AutoApprovalPolicy,
) portssvc.TaskSvcFacade {
	return &taskService{
		accountRepo:   accountRepo,
		changeRepo:    changeRepo,
		paymentRepo:   paymentRepo,
		feedbackRepo:  feedbackRepo,
		transitionSvc: transitionSvc,
		policy:        policy,
	}
}

var _ portssvc.TaskSvcFacade = (*taskService)(nil)

// collect projects every awaiting record, in fixed source order:
// accounts, change requests, payments, feedback. The order matters because
// the display sort is stable and breaks OccurredAt ties by source order.
func (s *taskService) collect(ctx context.Context) ([]domain.PendingTask, error) {
	var tasks []domain.PendingTask

	accounts, err := s.accountRepo.FindAccountsAwaitingVerification(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts awaiting verification: %w", err)
	}
	for _, a := range accounts {
		if t := ProjectAccountTask(a); t != nil {
			tasks = append(tasks, *t)
		}
	}

	requests, err := s.changeRepo.FindSubmittedChangeRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list submitted change requests: %w", err)
	}
	for _, r := range requests {
		if t := ProjectChangeRequestTask(r); t != nil {
			tasks = append(tasks, *t)
		}
	}

	payments, err := s.paymentRepo.FindPaymentsAwaitingVerification(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments awaiting verification: %w", err)
	}
	for _, p := range payments {
		if t := ProjectPaymentTask(p); t != nil {
			tasks = append(tasks, *t)
		}
	}

	items, err := s.feedbackRepo.FindNewFeedback(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list new feedback: %w", err)
	}
	for _, f := range items {
		if t := ProjectFeedbackTask(f); t != nil {
			tasks = append(tasks, *t)
		}
	}

	return tasks, nil
}

// ListTasks implements portssvc.TaskSvcFacade.
func (s *taskService) ListTasks(ctx context.Context, kind *domain.TaskKind) ([]domain.PendingTask, error) {
	tasks, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}

	if kind != nil {
		filtered := make([]domain.PendingTask, 0, len(tasks))
		for _, t := range tasks {
			if t.Kind == *kind {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	// Newest first; the stable sort keeps source order for equal timestamps.
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].OccurredAt.After(tasks[j].OccurredAt)
	})
	return tasks, nil
}

// CountTasksByKind implements portssvc.TaskSvcFacade.
func (s *taskService) CountTasksByKind(ctx context.Context) (map[domain.TaskKind]int, error) {
	tasks, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.TaskKind]int, len(domain.TaskKinds))
	for _, kind := range domain.TaskKinds {
		counts[kind] = 0
	}
	for _, t := range tasks {
		counts[t.Kind]++
	}
	return counts, nil
}

// AutoApproveEligible implements portssvc.TaskSvcFacade. Each eligible task is
// approved as an independent transaction: one account losing a race against a
// concurrent manual decision must not abort the rest, so per-task failures are
// collected into the result instead of propagated.
func (s *taskService) AutoApproveEligible(ctx context.Context, actorUserID string) ([]dto.AutoApprovalResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	kind := domain.TaskAccountVerification
	tasks, err := s.ListTasks(ctx, &kind)
	if err != nil {
		return nil, err
	}

	eligible := EligibleForAutoApproval(tasks, s.policy)
	results := make([]dto.AutoApprovalResult, 0, len(eligible))
	for _, task := range eligible {
		_, err := s.transitionSvc.Apply(ctx, domain.TaskAccountVerification, task.SourceID, domain.DecisionApprove, nil, actorUserID)
		if err != nil {
			logger.Warn("Auto-approval failed for account",
				slog.String("account_id", task.AccountID),
				slog.String("error", err.Error()))
			results = append(results, dto.AutoApprovalResult{AccountID: task.AccountID, Approved: false, Error: err.Error()})
			continue
		}
		results = append(results, dto.AutoApprovalResult{AccountID: task.AccountID, Approved: true})
	}

	logger.Info("Batch auto-approval completed",
		slog.Int("eligible", len(eligible)),
		slog.Int("processed", len(results)))
	return results, nil
}
