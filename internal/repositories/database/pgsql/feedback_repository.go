package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wargaku/rtrw_portal_app/internal/apperrors"
	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	portsrepo "github.com/wargaku/rtrw_portal_app/internal/core/ports/repositories"
)

type PgxFeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository creates a pgx-backed feedback repository.
func NewFeedbackRepository(db *pgxpool.Pool) portsrepo.FeedbackRepositoryFacade {
	return &PgxFeedbackRepository{db: db}
}

var _ portsrepo.FeedbackRepositoryFacade = (*PgxFeedbackRepository)(nil)

const feedbackColumns = `feedback_id, account_id, body, status, submitted_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanFeedback(row pgx.Row) (*domain.FeedbackItem, error) {
	var f domain.FeedbackItem
	err := row.Scan(
		&f.FeedbackID, &f.AccountID, &f.Body, &f.Status, &f.SubmittedAt,
		&f.CreatedAt, &f.CreatedBy, &f.LastUpdatedAt, &f.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PgxFeedbackRepository) SaveFeedback(ctx context.Context, item domain.FeedbackItem) error {
	query := `
		INSERT INTO feedback (` + feedbackColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		item.FeedbackID, item.AccountID, item.Body, item.Status, item.SubmittedAt,
		item.CreatedAt, item.CreatedBy, item.LastUpdatedAt, item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

func (r *PgxFeedbackRepository) FindFeedbackByID(ctx context.Context, feedbackID string) (*domain.FeedbackItem, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE feedback_id = $1;`
	item, err := scanFeedback(r.db.QueryRow(ctx, query, feedbackID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find feedback by ID %s: %w", feedbackID, err)
	}
	return item, nil
}

func (r *PgxFeedbackRepository) FindNewFeedback(ctx context.Context) ([]domain.FeedbackItem, error) {
	query := `
		SELECT ` + feedbackColumns + `
		FROM feedback
		WHERE status = $1
		ORDER BY submitted_at ASC, feedback_id;
	`
	rows, err := r.db.Query(ctx, query, domain.FeedbackNew)
	if err != nil {
		return nil, fmt.Errorf("failed to query new feedback: %w", err)
	}
	defer rows.Close()

	var items []domain.FeedbackItem
	for rows.Next() {
		item, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating feedback rows: %w", err)
	}
	return items, nil
}

// UpdateFeedbackStatus is a compare-and-swap on the expected current status.
func (r *PgxFeedbackRepository) UpdateFeedbackStatus(ctx context.Context, feedbackID string, from, to domain.FeedbackStatus, updatedBy string, at time.Time) error {
	query := `
		UPDATE feedback SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE feedback_id = $1 AND status = $5;
	`
	tag, err := r.db.Exec(ctx, query, feedbackID, to, at, updatedBy, from)
	if err != nil {
		return fmt.Errorf("failed to update feedback %s status: %w", feedbackID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM feedback WHERE feedback_id = $1);`, feedbackID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check feedback %s existence: %w", feedbackID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: feedback %s is not in status %s", apperrors.ErrInvalidState, feedbackID, from)
	}
	return nil
}
