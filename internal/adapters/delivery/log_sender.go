package delivery

import (
	"context"
	"log/slog"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
)

// LogSender is a delivery channel that writes notifications to the log.
// It stands in for the WhatsApp gateway in development and tests; the real
// gateway implements the same NotificationSender port.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a new LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

var _ portssvc.NotificationSender = (*LogSender)(nil)

// Send implements portssvc.NotificationSender.
func (s *LogSender) Send(_ context.Context, n domain.Notification) error {
	s.logger.Info("Notification delivered",
		slog.String("notification_id", n.NotificationID),
		slog.String("recipient", n.RecipientAccountID),
		slog.String("category", string(n.Category)),
		slog.String("message", n.Message),
	)
	return nil
}
