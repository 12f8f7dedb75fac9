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

type PgxPaymentRepository struct {
	db *pgxpool.Pool
}

// NewPaymentRepository creates a pgx-backed payment repository.
func NewPaymentRepository(db *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{db: db}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, account_id, amount, category, method, status, paid_at, admin_note,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (*domain.PaymentRecord, error) {
	var p domain.PaymentRecord
	err := row.Scan(
		&p.PaymentID, &p.AccountID, &p.Amount, &p.Category, &p.Method, &p.Status, &p.PaidAt, &p.AdminNote,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.PaymentRecord) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		payment.PaymentID, payment.AccountID, payment.Amount, payment.Category, payment.Method,
		payment.Status, payment.PaidAt, payment.AdminNote,
		payment.CreatedAt, payment.CreatedBy, payment.LastUpdatedAt, payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	payment, err := scanPayment(r.db.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}
	return payment, nil
}

func (r *PgxPaymentRepository) FindPaymentsAwaitingVerification(ctx context.Context) ([]domain.PaymentRecord, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE status = $1
		ORDER BY paid_at ASC, payment_id;
	`
	rows, err := r.db.Query(ctx, query, domain.PaymentAwaitingVerification)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments awaiting verification: %w", err)
	}
	defer rows.Close()

	var payments []domain.PaymentRecord
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating payment rows: %w", err)
	}
	return payments, nil
}

// UpdatePaymentStatus is a compare-and-swap on the expected current status.
func (r *PgxPaymentRepository) UpdatePaymentStatus(ctx context.Context, paymentID string, from, to domain.PaymentStatus, note *string, decidedBy string, at time.Time) error {
	query := `
		UPDATE payments SET status = $2, admin_note = $3, last_updated_at = $4, last_updated_by = $5
		WHERE payment_id = $1 AND status = $6;
	`
	tag, err := r.db.Exec(ctx, query, paymentID, to, note, at, decidedBy, from)
	if err != nil {
		return fmt.Errorf("failed to update payment %s status: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payments WHERE payment_id = $1);`, paymentID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check payment %s existence: %w", paymentID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: payment %s is not in status %s", apperrors.ErrInvalidState, paymentID, from)
	}
	return nil
}
