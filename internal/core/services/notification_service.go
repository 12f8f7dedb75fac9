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
	"github.com/wargaku/rtrw_portal_app/internal/middleware"
	"github.com/wargaku/rtrw_portal_app/internal/platform/metrics"
)

type notificationTemplate struct {
	category domain.NotificationCategory
	message  string
}

// transitionTemplates is the fixed (taskKind, decision) -> notification
// mapping. The recipient is always the task's owning account, never the
// administrator who acted.
var transitionTemplates = map[domain.TaskKind]map[domain.Decision]notificationTemplate{
	domain.TaskAccountVerification: {
		domain.DecisionApprove: {domain.NotifVerification, "Selamat! Akun Anda telah diverifikasi oleh pengurus."},
		domain.DecisionReject:  {domain.NotifVerification, "Verifikasi akun Anda ditolak. Silakan periksa dan lengkapi kembali data Anda."},
	},
	domain.TaskChangeRequest: {
		domain.DecisionApprove: {domain.NotifDataChange, "Permintaan perubahan data Anda telah disetujui."},
		domain.DecisionReject:  {domain.NotifDataChange, "Permintaan perubahan data Anda ditolak."},
	},
	domain.TaskPayment: {
		domain.DecisionApprove: {domain.NotifPayment, "Pembayaran iuran Anda telah dikonfirmasi."},
		domain.DecisionReject:  {domain.NotifPayment, "Pembayaran iuran Anda ditolak. Silakan periksa kembali bukti pembayaran."},
	},
	domain.TaskFeedback: {
		domain.DecisionApprove:       {domain.NotifFeedbackReply, "Pengaduan Anda telah diselesaikan. Terima kasih atas laporannya."},
		domain.DecisionStartProgress: {domain.NotifFeedbackReply, "Pengaduan Anda sedang ditindaklanjuti oleh pengurus."},
	},
}

// notificationService persists transition notifications and serves the inbox.
type notificationService struct {
	notifRepo portsrepo.NotificationRepositoryFacade
	sender    portssvc.NotificationSender
	metrics   *metrics.Metrics
}

// NewNotificationService creates a new NotificationService. metrics may be nil.
func NewNotificationService(notifRepo portsrepo.NotificationRepositoryFacade, sender portssvc.NotificationSender, m *metrics.Metrics) portssvc.NotificationSvcFacade {
	return &notificationService{notifRepo: notifRepo, sender: sender, metrics: m}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// DispatchTransition implements portssvc.NotificationSvcFacade. Exactly one
// notification per event; a batch of N approvals therefore yields N
// notifications, one per owning account.
func (s *notificationService) DispatchTransition(ctx context.Context, event domain.TransitionEvent) (*domain.Notification, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tpl, ok := transitionTemplates[event.TaskKind][event.Decision]
	if !ok {
		return nil, fmt.Errorf("%w: no notification template for %s/%s", apperrors.ErrInternal, event.TaskKind, event.Decision)
	}

	notification := domain.Notification{
		NotificationID:     uuid.NewString(),
		RecipientAccountID: event.RecipientAccountID,
		Message:            tpl.message,
		Category:           tpl.category,
		Read:               false,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.notifRepo.SaveNotification(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}

	// Delivery is fire-and-forget: the channel owns retries and failures.
	if err := s.sender.Send(ctx, notification); err != nil {
		logger.Warn("Notification delivery failed",
			slog.String("notification_id", notification.NotificationID),
			slog.String("error", err.Error()))
	}
	if s.metrics != nil {
		s.metrics.RecordNotification()
	}

	return &notification, nil
}

// ListNotifications implements portssvc.NotificationSvcFacade.
func (s *notificationService) ListNotifications(ctx context.Context, accountID string, limit int, offset int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	notifications, err := s.notifRepo.FindNotificationsByRecipient(ctx, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead implements portssvc.NotificationSvcFacade.
func (s *notificationService) MarkRead(ctx context.Context, notificationID string, accountID string) error {
	if err := s.notifRepo.MarkNotificationRead(ctx, notificationID, accountID); err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	return nil
}
