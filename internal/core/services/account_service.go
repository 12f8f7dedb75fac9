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

// accountService handles the resident-facing account lifecycle. An unverified
// resident keeps read access to their own record while the verification is
// pending; the verified flag stays false until an administrator decides.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// selfRegistration marks audit fields on self-service registration, where the
// actor is the account being created.
const selfRegistration = "SELF_REGISTRATION"

// RegisterAccount implements portssvc.AccountSvcFacade.
func (s *accountService) RegisterAccount(ctx context.Context, req dto.RegisterAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		NationalID:   req.NationalID,
		FamilyCardID: req.FamilyCardID,
		FullName:     req.FullName,
		Phone:        req.Phone,
		DataComplete: false,
		Verified:     false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     selfRegistration,
			LastUpdatedAt: now,
			LastUpdatedBy: selfRegistration,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account registered", slog.String("account_id", account.AccountID))
	return &account, nil
}

// SubmitProfile implements portssvc.AccountSvcFacade.
func (s *accountService) SubmitProfile(ctx context.Context, accountID string, req dto.SubmitProfileRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	// Verified accounts edit governed fields through change requests only.
	if account.Verified {
		return nil, fmt.Errorf("%w: account %s is already verified", apperrors.ErrInvalidState, accountID)
	}

	now := time.Now().UTC()
	account.Occupation = req.Occupation
	account.Religion = req.Religion
	account.MaritalStatus = req.MaritalStatus
	account.Education = req.Education
	account.Phone = req.Phone
	account.Address = req.Address
	account.Documents = make([]domain.IdentityDocument, len(req.Documents))
	for i, doc := range req.Documents {
		account.Documents[i] = domain.IdentityDocument{
			DocumentID: uuid.NewString(),
			Kind:       domain.DocumentKind(doc.Kind),
			FileURL:    doc.FileURL,
			UploadedAt: now,
		}
	}
	account.DataComplete = true
	account.RejectionReason = nil // resubmission clears the previous rejection
	account.SubmittedAt = &now
	account.LastUpdatedAt = now
	account.LastUpdatedBy = accountID

	if err := s.accountRepo.UpdateAccountProfile(ctx, *account); err != nil {
		logger.Error("Failed to update account profile", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update account profile: %w", err)
	}

	logger.Info("Profile submitted, account queued for verification", slog.String("account_id", accountID))
	return account, nil
}

// GetAccountByID implements portssvc.AccountSvcFacade.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}
