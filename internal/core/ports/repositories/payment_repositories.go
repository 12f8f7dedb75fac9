package repositories

import (
	"context"
	"time"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

// PaymentReader defines read operations for dues payment records.
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment by its ID.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error)

	// FindPaymentsAwaitingVerification retrieves all payments still in
	// AWAITING_VERIFICATION.
	FindPaymentsAwaitingVerification(ctx context.Context) ([]domain.PaymentRecord, error)
}

// PaymentWriter defines write operations for dues payment records.
type PaymentWriter interface {
	// SavePayment persists a new payment record.
	SavePayment(ctx context.Context, payment domain.PaymentRecord) error

	// UpdatePaymentStatus flips the payment status as a compare-and-swap on
	// the expected current status. Returns apperrors.ErrInvalidState when the
	// payment is no longer in `from` and apperrors.ErrNotFound when it does
	// not exist.
	UpdatePaymentStatus(ctx context.Context, paymentID string, from, to domain.PaymentStatus, note *string, decidedBy string, at time.Time) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
