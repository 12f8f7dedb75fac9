package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wargaku/rtrw_portal_app/internal/apperrors"
	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	portsrepo "github.com/wargaku/rtrw_portal_app/internal/core/ports/repositories"
	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
	"github.com/wargaku/rtrw_portal_app/internal/dto"
	"github.com/wargaku/rtrw_portal_app/internal/middleware"
)

// paymentService handles resident submission of dues payments.
type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.PaymentSvcFacade {
	return &paymentService{paymentRepo: paymentRepo, accountRepo: accountRepo}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// SubmitPayment implements portssvc.PaymentSvcFacade.
func (s *paymentService) SubmitPayment(ctx context.Context, accountID string, req dto.CreatePaymentRequest) (*domain.PaymentRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	now := time.Now().UTC()
	payment := domain.PaymentRecord{
		PaymentID: uuid.NewString(),
		AccountID: accountID,
		Amount:    req.Amount,
		Category:  req.Category,
		Method:    domain.PaymentMethod(req.Method),
		Status:    domain.PaymentAwaitingVerification,
		PaidAt:    req.PaidAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     accountID,
			LastUpdatedAt: now,
			LastUpdatedBy: accountID,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		logger.Error("Failed to save payment", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	logger.Info("Payment submitted for verification",
		slog.String("payment_id", payment.PaymentID),
		slog.String("category", payment.Category))
	return &payment, nil
}

// GetPaymentByID implements portssvc.PaymentSvcFacade.
func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	return payment, nil
}
