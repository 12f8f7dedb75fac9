package services

import (
	"context"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	"github.com/wargaku/rtrw_portal_app/internal/dto"
)

// AccountSvcFacade covers the resident-facing account lifecycle. Flipping the
// verified flag is deliberately absent here; that belongs to the transition
// service alone.
type AccountSvcFacade interface {
	// RegisterAccount creates a bare account (dataComplete=false, verified=false).
	RegisterAccount(ctx context.Context, req dto.RegisterAccountRequest) (*domain.Account, error)

	// SubmitProfile completes the resident profile, sets dataComplete=true and
	// places the account on the verification queue. Resubmission after a
	// rejection clears the stored reason.
	SubmitProfile(ctx context.Context, accountID string, req dto.SubmitProfileRequest) (*domain.Account, error)

	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}
