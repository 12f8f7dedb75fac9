package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wargaku/rtrw_portal_app/internal/apperrors"
	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	portsrepo "github.com/wargaku/rtrw_portal_app/internal/core/ports/repositories"
)

type PgxNotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a pgx-backed notification repository.
func NewNotificationRepository(db *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{db: db}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, recipient_account_id, message, category, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db.Exec(ctx, query, n.NotificationID, n.RecipientAccountID, n.Message, n.Category, n.Read, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func (r *PgxNotificationRepository) FindNotificationsByRecipient(ctx context.Context, accountID string, limit int, offset int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT notification_id, recipient_account_id, message, category, read, created_at
		FROM notifications
		WHERE recipient_account_id = $1
		ORDER BY created_at DESC, notification_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.NotificationID, &n.RecipientAccountID, &n.Message, &n.Category, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating notification rows: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead includes the recipient in the predicate so residents
// can only flip their own inbox entries.
func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, recipientAccountID string) error {
	query := `
		UPDATE notifications SET read = TRUE
		WHERE notification_id = $1 AND recipient_account_id = $2;
	`
	tag, err := r.db.Exec(ctx, query, notificationID, recipientAccountID)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", notificationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
