package repositories

import (
	"context"
	"time"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

// ChangeRequestReader defines read operations for data-change requests.
type ChangeRequestReader interface {
	// FindChangeRequestByID retrieves a specific change request by its ID.
	FindChangeRequestByID(ctx context.Context, changeRequestID string) (*domain.ChangeRequest, error)

	// FindSubmittedChangeRequests retrieves all requests still in SUBMITTED.
	FindSubmittedChangeRequests(ctx context.Context) ([]domain.ChangeRequest, error)
}

// ChangeRequestWriter defines write operations for data-change requests.
type ChangeRequestWriter interface {
	// SaveChangeRequest persists a new change request.
	SaveChangeRequest(ctx context.Context, req domain.ChangeRequest) error

	// ApproveChangeRequest writes req.NewValue into the mapped account column
	// and flips the request SUBMITTED -> APPROVED in a single transaction.
	// The status flip is a compare-and-swap on SUBMITTED: if the request was
	// decided concurrently the whole transaction rolls back with
	// apperrors.ErrInvalidState and the account is untouched.
	ApproveChangeRequest(ctx context.Context, req domain.ChangeRequest, mapping domain.FieldMapping, note *string, decidedBy string, at time.Time) error

	// RejectChangeRequest flips the request SUBMITTED -> REJECTED with the
	// same compare-and-swap semantics.
	RejectChangeRequest(ctx context.Context, changeRequestID string, note *string, decidedBy string, at time.Time) error
}

// ChangeRequestRepositoryFacade combines all change-request repository interfaces.
type ChangeRequestRepositoryFacade interface {
	ChangeRequestReader
	ChangeRequestWriter
}
