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

type PgxChangeRequestRepository struct {
	db *pgxpool.Pool
}

// NewChangeRequestRepository creates a pgx-backed change-request repository.
func NewChangeRequestRepository(db *pgxpool.Pool) portsrepo.ChangeRequestRepositoryFacade {
	return &PgxChangeRequestRepository{db: db}
}

var _ portsrepo.ChangeRequestRepositoryFacade = (*PgxChangeRequestRepository)(nil)

const changeRequestColumns = `change_request_id, account_id, field, old_value, new_value, reason,
	status, admin_note, submitted_at, decided_at, decided_by,
	created_at, created_by, last_updated_at, last_updated_by`

func scanChangeRequest(row pgx.Row) (*domain.ChangeRequest, error) {
	var r domain.ChangeRequest
	err := row.Scan(
		&r.ChangeRequestID, &r.AccountID, &r.Field, &r.OldValue, &r.NewValue, &r.Reason,
		&r.Status, &r.AdminNote, &r.SubmittedAt, &r.DecidedAt, &r.DecidedBy,
		&r.CreatedAt, &r.CreatedBy, &r.LastUpdatedAt, &r.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *PgxChangeRequestRepository) SaveChangeRequest(ctx context.Context, req domain.ChangeRequest) error {
	query := `
		INSERT INTO change_requests (` + changeRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.db.Exec(ctx, query,
		req.ChangeRequestID, req.AccountID, req.Field, req.OldValue, req.NewValue, req.Reason,
		req.Status, req.AdminNote, req.SubmittedAt, req.DecidedAt, req.DecidedBy,
		req.CreatedAt, req.CreatedBy, req.LastUpdatedAt, req.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save change request: %w", err)
	}
	return nil
}

func (r *PgxChangeRequestRepository) FindChangeRequestByID(ctx context.Context, changeRequestID string) (*domain.ChangeRequest, error) {
	query := `SELECT ` + changeRequestColumns + ` FROM change_requests WHERE change_request_id = $1;`
	req, err := scanChangeRequest(r.db.QueryRow(ctx, query, changeRequestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find change request by ID %s: %w", changeRequestID, err)
	}
	return req, nil
}

func (r *PgxChangeRequestRepository) FindSubmittedChangeRequests(ctx context.Context) ([]domain.ChangeRequest, error) {
	query := `
		SELECT ` + changeRequestColumns + `
		FROM change_requests
		WHERE status = $1
		ORDER BY submitted_at ASC, change_request_id;
	`
	rows, err := r.db.Query(ctx, query, domain.ChangeRequestSubmitted)
	if err != nil {
		return nil, fmt.Errorf("failed to query submitted change requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.ChangeRequest
	for rows.Next() {
		req, err := scanChangeRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change request row: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating change request rows: %w", err)
	}
	return requests, nil
}

// ApproveChangeRequest writes the new value into the mapped account column and
// flips the request to APPROVED inside one transaction. The column name comes
// from the fixed field catalog, never from user input.
func (r *PgxChangeRequestRepository) ApproveChangeRequest(ctx context.Context, req domain.ChangeRequest, mapping domain.FieldMapping, note *string, decidedBy string, at time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin approval transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// CAS on the request status first: if another decision won, the account
	// write never happens.
	if err := r.decide(ctx, tx, req.ChangeRequestID, domain.ChangeRequestApproved, note, decidedBy, at); err != nil {
		return err
	}

	accountQuery := fmt.Sprintf(`
		UPDATE accounts SET %s = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`, mapping.Column)
	tag, err := tx.Exec(ctx, accountQuery, req.AccountID, req.NewValue, at, decidedBy)
	if err != nil {
		return fmt.Errorf("failed to apply field change to account %s: %w", req.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s for change request %s", apperrors.ErrNotFound, req.AccountID, req.ChangeRequestID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit approval transaction: %w", err)
	}
	return nil
}

func (r *PgxChangeRequestRepository) RejectChangeRequest(ctx context.Context, changeRequestID string, note *string, decidedBy string, at time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rejection transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.decide(ctx, tx, changeRequestID, domain.ChangeRequestRejected, note, decidedBy, at); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rejection transaction: %w", err)
	}
	return nil
}

// decide flips SUBMITTED -> to as a compare-and-swap within tx.
func (r *PgxChangeRequestRepository) decide(ctx context.Context, tx pgx.Tx, changeRequestID string, to domain.ChangeRequestStatus, note *string, decidedBy string, at time.Time) error {
	query := `
		UPDATE change_requests SET status = $2, admin_note = $3, decided_at = $4, decided_by = $5,
			last_updated_at = $4, last_updated_by = $5
		WHERE change_request_id = $1 AND status = $6;
	`
	tag, err := tx.Exec(ctx, query, changeRequestID, to, note, at, decidedBy, domain.ChangeRequestSubmitted)
	if err != nil {
		return fmt.Errorf("failed to update change request %s status: %w", changeRequestID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM change_requests WHERE change_request_id = $1);`, changeRequestID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check change request %s existence: %w", changeRequestID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: change request %s was already decided", apperrors.ErrInvalidState, changeRequestID)
	}
	return nil
}
