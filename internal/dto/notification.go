package dto

import (
	"time"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

// ListNotificationsParams defines query parameters for a recipient's inbox.
type ListNotificationsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// NotificationResponse is the API representation of a notification.
type NotificationResponse struct {
	NotificationID string    `json:"notificationID"`
	Message        string    `json:"message"`
	Category       string    `json:"category"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ListNotificationsResponse wraps a recipient's inbox page.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// ToNotificationResponse converts a domain.Notification.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Message:        n.Message,
		Category:       string(n.Category),
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
	}
}

// ToListNotificationsResponse converts a slice of domain.Notification.
func ToListNotificationsResponse(ns []domain.Notification) ListNotificationsResponse {
	out := make([]NotificationResponse, len(ns))
	for i := range ns {
		out[i] = ToNotificationResponse(&ns[i])
	}
	return ListNotificationsResponse{Notifications: out}
}
