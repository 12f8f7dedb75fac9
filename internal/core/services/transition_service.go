package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wargaku/rtrw_portal_app/internal/apperrors"
	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	portsrepo "github.com/wargaku/rtrw_portal_app/internal/core/ports/repositories"
	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
	"github.com/wargaku/rtrw_portal_app/internal/middleware"
	"github.com/wargaku/rtrw_portal_app/internal/platform/metrics"
)

// transitionHandler applies one decision to one record of a single kind and
// returns the outcome plus the account to notify.
type transitionHandler func(ctx context.Context, sourceID string, decision domain.Decision, note *string, actorUserID string, at time.Time) (*domain.TransitionOutcome, string, error)

// transitionService is the authoritative state machine for all task kinds.
// It owns every flip of status/verified/dataComplete; status writes are
// compare-and-swap updates in the repositories, so a concurrent decision on
// the same task resolves to first-wins and the loser gets ErrInvalidState.
type transitionService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	changeRepo   portsrepo.ChangeRequestRepositoryFacade
	paymentRepo  portsrepo.PaymentRepositoryFacade
	feedbackRepo portsrepo.FeedbackRepositoryFacade
	notifier     portssvc.NotificationSvcFacade
	metrics      *metrics.Metrics

	handlers map[domain.TaskKind]transitionHandler
}

// NewTransitionService creates a new TransitionService. metrics may be nil.
func NewTransitionService(
	accountRepo portsrepo.AccountRepositoryFacade,
	changeRepo portsrepo.ChangeRequestRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	feedbackRepo portsrepo.FeedbackRepositoryFacade,
	notifier portssvc.NotificationSvcFacade,
	m *metrics.Metrics,
) portssvc.TransitionSvcFacade {
	s := &transitionService{
		accountRepo:  accountRepo,
		changeRepo:   changeRepo,
		paymentRepo:  paymentRepo,
		feedbackRepo: feedbackRepo,
		notifier:     notifier,
		metrics:      m,
	}
	s.handlers = map[domain.TaskKind]transitionHandler{
		domain.TaskAccountVerification: s.applyAccount,
		domain.TaskChangeRequest:       s.applyChangeRequest,
		domain.TaskPayment:             s.applyPayment,
		domain.TaskFeedback:            s.applyFeedback,
	}
	return s
}

var _ portssvc.TransitionSvcFacade = (*transitionService)(nil)

// Apply implements portssvc.TransitionSvcFacade.
func (s *transitionService) Apply(ctx context.Context, kind domain.TaskKind, sourceID string, decision domain.Decision, note *string, actorUserID string) (*domain.TransitionOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	handler, ok := s.handlers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown task kind %q", apperrors.ErrValidation, kind)
	}

	now := time.Now().UTC()
	outcome, recipientAccountID, err := handler(ctx, sourceID, decision, note, actorUserID, now)
	if s.metrics != nil {
		s.metrics.RecordTransition(string(kind), string(decision), err)
	}
	if err != nil {
		return nil, err
	}

	event := domain.TransitionEvent{
		TaskKind:           kind,
		SourceID:           sourceID,
		Decision:           decision,
		RecipientAccountID: recipientAccountID,
	}
	if _, err := s.notifier.DispatchTransition(ctx, event); err != nil {
		// The state change is already committed; surfacing the error would
		// make the client believe the decision failed and retry into
		// ErrInvalidState. Log loudly instead.
		logger.Error("Failed to dispatch transition notification",
			slog.String("kind", string(kind)),
			slog.String("source_id", sourceID),
			slog.String("error", err.Error()))
	}

	logger.Info("Task transition applied",
		slog.String("kind", string(kind)),
		slog.String("source_id", sourceID),
		slog.String("decision", string(decision)),
		slog.String("new_status", outcome.NewStatus))
	return outcome, nil
}

// applyAccount handles ACCOUNT_VERIFICATION. The (dataComplete, verified)
// pair acts as the state: (true,false) is the sole decidable state; approval
// moves to (true,true) which is terminal, rejection back to (false,false)
// with a stored reason so the resident can resubmit.
func (s *transitionService) applyAccount(ctx context.Context, sourceID string, decision domain.Decision, note *string, actorUserID string, at time.Time) (*domain.TransitionOutcome, string, error) {
	// Input validation happens before any read or mutation.
	if decision == domain.DecisionReject && noteEmpty(note) {
		return nil, "", fmt.Errorf("%w: account rejection requires a reason", apperrors.ErrMissingReason)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, sourceID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find account %s: %w", sourceID, err)
	}
	if !account.AwaitingVerification() {
		return nil, "", fmt.Errorf("%w: account %s is not awaiting verification", apperrors.ErrInvalidState, sourceID)
	}

	var newStatus string
	switch decision {
	case domain.DecisionApprove:
		if err := s.accountRepo.MarkAccountVerified(ctx, sourceID, actorUserID, at); err != nil {
			return nil, "", err
		}
		newStatus = "VERIFIED"
	case domain.DecisionReject:
		if err := s.accountRepo.ResetAccountSubmission(ctx, sourceID, strings.TrimSpace(*note), actorUserID, at); err != nil {
			return nil, "", err
		}
		newStatus = "RETURNED"
	default:
		return nil, "", fmt.Errorf("%w: decision %s is not legal for account verification", apperrors.ErrInvalidState, decision)
	}

	return &domain.TransitionOutcome{
		Kind:      domain.TaskAccountVerification,
		SourceID:  sourceID,
		Decision:  decision,
		NewStatus: newStatus,
		DecidedAt: at,
	}, account.AccountID, nil
}

// applyChangeRequest handles CHANGE_REQUEST. Approval writes the new value
// into the mapped account attribute and records APPROVED atomically: when the
// repository transaction fails, the request stays SUBMITTED and the account
// is untouched.
func (s *transitionService) applyChangeRequest(ctx context.Context, sourceID string, decision domain.Decision, note *string, actorUserID string, at time.Time) (*domain.TransitionOutcome, string, error) {
	req, err := s.changeRepo.FindChangeRequestByID(ctx, sourceID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find change request %s: %w", sourceID, err)
	}
	if req.Status != domain.ChangeRequestSubmitted {
		return nil, "", fmt.Errorf("%w: change request %s was already decided (%s)", apperrors.ErrInvalidState, sourceID, req.Status)
	}

	var newStatus domain.ChangeRequestStatus
	switch decision {
	case domain.DecisionApprove:
		mapping, ok := domain.LookupField(req.Field)
		if !ok {
			// Creation validates against the catalog, so reaching this means
			// the catalog changed underneath a stored request.
			return nil, "", fmt.Errorf("%w: field %q (catalog v%d)", apperrors.ErrFieldMapping, req.Field, domain.FieldCatalogVersion)
		}
		if err := s.changeRepo.ApproveChangeRequest(ctx, *req, mapping, note, actorUserID, at); err != nil {
			return nil, "", err
		}
		newStatus = domain.ChangeRequestApproved
	case domain.DecisionReject:
		if err := s.changeRepo.RejectChangeRequest(ctx, sourceID, note, actorUserID, at); err != nil {
			return nil, "", err
		}
		newStatus = domain.ChangeRequestRejected
	default:
		return nil, "", fmt.Errorf("%w: decision %s is not legal for change requests", apperrors.ErrInvalidState, decision)
	}

	return &domain.TransitionOutcome{
		Kind:      domain.TaskChangeRequest,
		SourceID:  sourceID,
		Decision:  decision,
		NewStatus: string(newStatus),
		DecidedAt: at,
	}, req.AccountID, nil
}

// applyPayment handles PAYMENT. No dependent record is mutated; ledger totals
// are the external finance ledger's responsibility.
func (s *transitionService) applyPayment(ctx context.Context, sourceID string, decision domain.Decision, note *string, actorUserID string, at time.Time) (*domain.TransitionOutcome, string, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, sourceID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find payment %s: %w", sourceID, err)
	}
	if payment.Status != domain.PaymentAwaitingVerification {
		return nil, "", fmt.Errorf("%w: payment %s was already decided (%s)", apperrors.ErrInvalidState, sourceID, payment.Status)
	}

	var to domain.PaymentStatus
	switch decision {
	case domain.DecisionApprove:
		to = domain.PaymentConfirmed
	case domain.DecisionReject:
		to = domain.PaymentRejected
	default:
		return nil, "", fmt.Errorf("%w: decision %s is not legal for payments", apperrors.ErrInvalidState, decision)
	}
	if err := s.paymentRepo.UpdatePaymentStatus(ctx, sourceID, domain.PaymentAwaitingVerification, to, note, actorUserID, at); err != nil {
		return nil, "", err
	}

	return &domain.TransitionOutcome{
		Kind:      domain.TaskPayment,
		SourceID:  sourceID,
		Decision:  decision,
		NewStatus: string(to),
		DecidedAt: at,
	}, payment.AccountID, nil
}

// applyFeedback handles FEEDBACK's three-state progression. Approve resolves
// the item from either NEW or IN_PROGRESS; START_PROGRESS is the explicit
// NEW -> IN_PROGRESS edge. There is no rejection path.
func (s *transitionService) applyFeedback(ctx context.Context, sourceID string, decision domain.Decision, note *string, actorUserID string, at time.Time) (*domain.TransitionOutcome, string, error) {
	item, err := s.feedbackRepo.FindFeedbackByID(ctx, sourceID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find feedback %s: %w", sourceID, err)
	}
	if item.Status.Terminal() {
		return nil, "", fmt.Errorf("%w: feedback %s is already resolved", apperrors.ErrInvalidState, sourceID)
	}

	var to domain.FeedbackStatus
	switch decision {
	case domain.DecisionApprove:
		to = domain.FeedbackResolved
	case domain.DecisionStartProgress:
		if item.Status != domain.FeedbackNew {
			return nil, "", fmt.Errorf("%w: feedback %s is already in progress", apperrors.ErrInvalidState, sourceID)
		}
		to = domain.FeedbackInProgress
	default:
		return nil, "", fmt.Errorf("%w: feedback cannot be rejected", apperrors.ErrInvalidState)
	}
	if err := s.feedbackRepo.UpdateFeedbackStatus(ctx, sourceID, item.Status, to, actorUserID, at); err != nil {
		return nil, "", err
	}

	return &domain.TransitionOutcome{
		Kind:      domain.TaskFeedback,
		SourceID:  sourceID,
		Decision:  decision,
		NewStatus: string(to),
		DecidedAt: at,
	}, item.AccountID, nil
}

func noteEmpty(note *string) bool {
	return note == nil || strings.TrimSpace(*note) == ""
}
