package domain

import "time"

// NotificationCategory groups notifications for the recipient's inbox.
type NotificationCategory string

const (
	NotifVerification  NotificationCategory = "VERIFIKASI"
	NotifDataChange    NotificationCategory = "PERUBAHAN_DATA"
	NotifPayment       NotificationCategory = "PEMBAYARAN"
	NotifFeedbackReply NotificationCategory = "PENGADUAN"
)

// Notification is a user-facing record created as a side effect of a task
// transition; exactly one per transition. Only the Read flag is ever mutated
// afterwards, and only by the recipient.
type Notification struct {
	NotificationID     string               `json:"notificationID"`
	RecipientAccountID string               `json:"recipientAccountID"`
	Message            string               `json:"message"`
	Category           NotificationCategory `json:"category"`
	Read               bool                 `json:"read"`
	CreatedAt          time.Time            `json:"createdAt"`
}
