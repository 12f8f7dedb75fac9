package repositories

import (
	"context"
	"time"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

// AccountReader defines read operations for resident account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsAwaitingVerification retrieves accounts with
	// dataComplete=true and verified=false, oldest submission first.
	FindAccountsAwaitingVerification(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for resident account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountProfile updates profile fields, documents and the
	// dataComplete flag from a resident submission.
	UpdateAccountProfile(ctx context.Context, account domain.Account) error
}

// AccountVerifier defines the verification flag flips. Both methods are
// compare-and-swap updates conditioned on dataComplete && !verified: they
// return apperrors.ErrInvalidState when the account is no longer awaiting
// verification and apperrors.ErrNotFound when it does not exist.
type AccountVerifier interface {
	// MarkAccountVerified sets verified=true.
	MarkAccountVerified(ctx context.Context, accountID string, verifiedBy string, at time.Time) error

	// ResetAccountSubmission sets dataComplete=false and stores the rejection
	// reason, returning the record to the resident for correction.
	ResetAccountSubmission(ctx context.Context, accountID string, reason string, rejectedBy string, at time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountVerifier
}
