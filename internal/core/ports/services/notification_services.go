package services

import (
	"context"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

// NotificationSvcFacade turns transition events into recipient notifications
// and serves the recipient inbox.
type NotificationSvcFacade interface {
	// DispatchTransition maps (taskKind, decision) to a templated message,
	// persists the notification for the owning account and hands it to the
	// delivery channel. Exactly one notification per event.
	DispatchTransition(ctx context.Context, event domain.TransitionEvent) (*domain.Notification, error)

	// ListNotifications returns a recipient's inbox, newest first.
	ListNotifications(ctx context.Context, accountID string, limit int, offset int) ([]domain.Notification, error)

	// MarkRead flips the read flag on the recipient's own notification.
	MarkRead(ctx context.Context, notificationID string, accountID string) error
}

// NotificationSender is the outbound delivery channel (push, WhatsApp gateway,
// email). Delivery is fire-and-forget from the portal's point of view;
// failures are the channel's concern.
type NotificationSender interface {
	Send(ctx context.Context, n domain.Notification) error
}
