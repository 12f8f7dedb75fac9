package repositories

import (
	"context"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

// NotificationReader defines read operations for notification records.
type NotificationReader interface {
	// FindNotificationsByRecipient retrieves a recipient's notifications,
	// newest first.
	FindNotificationsByRecipient(ctx context.Context, accountID string, limit int, offset int) ([]domain.Notification, error)
}

// NotificationWriter defines write operations for notification records.
type NotificationWriter interface {
	// SaveNotification persists a new notification.
	SaveNotification(ctx context.Context, n domain.Notification) error

	// MarkNotificationRead flips the read flag. The recipient ID is part of
	// the predicate so a recipient can only touch their own inbox.
	MarkNotificationRead(ctx context.Context, notificationID string, recipientAccountID string) error
}

// NotificationRepositoryFacade combines all notification repository interfaces.
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
