package services

import (
	"context"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

// TransitionSvcFacade is the authoritative state machine over all task kinds.
// It is the only component allowed to flip status/verified/dataComplete on
// the owning records.
type TransitionSvcFacade interface {
	// Apply validates the requested edge against the record's current state,
	// performs the mutation (compare-and-swap on the current status) and
	// emits exactly one transition event on success.
	//
	// Error taxonomy: apperrors.ErrNotFound (record absent),
	// apperrors.ErrInvalidState (terminal task or illegal edge, including a
	// concurrent decision that won the race), apperrors.ErrFieldMapping
	// (change-request approval against an unmapped field) and
	// apperrors.ErrMissingReason (account rejection without a note).
	Apply(ctx context.Context, kind domain.TaskKind, sourceID string, decision domain.Decision, note *string, actorUserID string) (*domain.TransitionOutcome, error)
}
