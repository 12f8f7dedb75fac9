package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

// CreatePaymentRequest reports a dues payment for administrator confirmation.
type CreatePaymentRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Category string          `json:"category" binding:"required,max=100"`
	Method   string          `json:"method" binding:"required,oneof=TRANSFER CASH EWALLET"`
	PaidAt   time.Time       `json:"paidAt" binding:"required"`
}

// PaymentResponse is the API representation of a payment record.
type PaymentResponse struct {
	PaymentID string          `json:"paymentID"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	PaidAt    time.Time       `json:"paidAt"`
	AdminNote *string         `json:"adminNote,omitempty"`
}

// ToPaymentResponse converts a domain.PaymentRecord.
func ToPaymentResponse(p *domain.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		PaymentID: p.PaymentID,
		AccountID: p.AccountID,
		Amount:    p.Amount,
		Category:  p.Category,
		Method:    string(p.Method),
		Status:    string(p.Status),
		PaidAt:    p.PaidAt,
		AdminNote: p.AdminNote,
	}
}
