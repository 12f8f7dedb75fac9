package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus indicates the verification state of a dues payment.
type PaymentStatus string

const (
	PaymentAwaitingVerification PaymentStatus = "AWAITING_VERIFICATION"
	PaymentConfirmed            PaymentStatus = "CONFIRMED"
	PaymentRejected             PaymentStatus = "REJECTED"
)

// Terminal reports whether no further transition is legal from this status.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentConfirmed || s == PaymentRejected
}

// PaymentMethod is how a resident paid their dues.
type PaymentMethod string

const (
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodEwallet  PaymentMethod = "EWALLET"
)

// PaymentRecord is a resident's dues payment awaiting administrator
// confirmation. Confirming or rejecting it does not touch any other record;
// ledger balances are derived by the external finance ledger.
type PaymentRecord struct {
	PaymentID string          `json:"paymentID"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"` // e.g. "Iuran Bulanan", "Iuran Keamanan"
	Method    PaymentMethod   `json:"method"`
	Status    PaymentStatus   `json:"status"`
	PaidAt    time.Time       `json:"paidAt"`
	AdminNote *string         `json:"adminNote,omitempty"`
	AuditFields
}
