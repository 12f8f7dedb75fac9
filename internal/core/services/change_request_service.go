package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wargaku/rtrw_portal_app/internal/apperrors"
	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	portsrepo "github.com/wargaku/rtrw_portal_app/internal/core/ports/repositories"
	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
	"github.com/wargaku/rtrw_portal_app/internal/dto"
	"github.com/wargaku/rtrw_portal_app/internal/middleware"
)

// changeRequestService handles resident creation of data-change requests.
type changeRequestService struct {
	changeRepo  portsrepo.ChangeRequestRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewChangeRequestService creates a new ChangeRequestService.
func NewChangeRequestService(changeRepo portsrepo.ChangeRequestRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.ChangeRequestSvcFacade {
	return &changeRequestService{changeRepo: changeRepo, accountRepo: accountRepo}
}

var _ portssvc.ChangeRequestSvcFacade = (*changeRequestService)(nil)

// CreateChangeRequest implements portssvc.ChangeRequestSvcFacade. Unmapped
// field names are rejected here, at creation time, so approval never meets an
// unknown field under a stable catalog.
func (s *changeRequestService) CreateChangeRequest(ctx context.Context, accountID string, req dto.CreateChangeRequestRequest) (*domain.ChangeRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	mapping, ok := domain.LookupField(req.Field)
	if !ok {
		return nil, fmt.Errorf("%w: field %q is not changeable (known fields: %v)", apperrors.ErrFieldMapping, req.Field, domain.MappedFields())
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	now := time.Now().UTC()
	request := domain.ChangeRequest{
		ChangeRequestID: uuid.NewString(),
		AccountID:       accountID,
		Field:           req.Field,
		OldValue:        mapping.Get(*account),
		NewValue:        req.NewValue,
		Reason:          req.Reason,
		Status:          domain.ChangeRequestSubmitted,
		SubmittedAt:     now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     accountID,
			LastUpdatedAt: now,
			LastUpdatedBy: accountID,
		},
	}

	if err := s.changeRepo.SaveChangeRequest(ctx, request); err != nil {
		logger.Error("Failed to save change request", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save change request: %w", err)
	}

	logger.Info("Change request submitted",
		slog.String("change_request_id", request.ChangeRequestID),
		slog.String("field", request.Field))
	return &request, nil
}

// GetChangeRequestByID implements portssvc.ChangeRequestSvcFacade.
func (s *changeRequestService) GetChangeRequestByID(ctx context.Context, changeRequestID string) (*domain.ChangeRequest, error) {
	request, err := s.changeRepo.FindChangeRequestByID(ctx, changeRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find change request %s: %w", changeRequestID, err)
	}
	return request, nil
}
