package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wargaku/rtrw_portal_app/internal/apperrors"
	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	portsrepo "github.com/wargaku/rtrw_portal_app/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a pgx-backed account repository.
func NewAccountRepository(db *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{db: db}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, national_id, family_card_id, full_name, occupation, religion,
	marital_status, education, phone, address, documents, data_complete, verified,
	rejection_reason, submitted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	var documents []byte
	err := row.Scan(
		&a.AccountID, &a.NationalID, &a.FamilyCardID, &a.FullName, &a.Occupation, &a.Religion,
		&a.MaritalStatus, &a.Education, &a.Phone, &a.Address, &documents, &a.DataComplete, &a.Verified,
		&a.RejectionReason, &a.SubmittedAt, &a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if len(documents) > 0 {
		if err := json.Unmarshal(documents, &a.Documents); err != nil {
			return nil, fmt.Errorf("failed to decode account documents: %w", err)
		}
	}
	return &a, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	documents, err := json.Marshal(account.Documents)
	if err != nil {
		return fmt.Errorf("failed to encode account documents: %w", err)
	}
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = r.db.Exec(ctx, query,
		account.AccountID, account.NationalID, account.FamilyCardID, account.FullName,
		account.Occupation, account.Religion, account.MaritalStatus, account.Education,
		account.Phone, account.Address, documents, account.DataComplete, account.Verified,
		account.RejectionReason, account.SubmittedAt,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: national ID %s is already registered", apperrors.ErrDuplicate, account.NationalID)
		}
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	account, err := scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return account, nil
}

func (r *PgxAccountRepository) FindAccountsAwaitingVerification(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE data_complete AND NOT verified
		ORDER BY submitted_at ASC NULLS LAST, account_id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts awaiting verification: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating account rows: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) UpdateAccountProfile(ctx context.Context, account domain.Account) error {
	documents, err := json.Marshal(account.Documents)
	if err != nil {
		return fmt.Errorf("failed to encode account documents: %w", err)
	}
	query := `
		UPDATE accounts SET
			occupation = $2, religion = $3, marital_status = $4, education = $5,
			phone = $6, address = $7, documents = $8, data_complete = $9,
			rejection_reason = $10, submitted_at = $11,
			last_updated_at = $12, last_updated_by = $13
		WHERE account_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		account.AccountID, account.Occupation, account.Religion, account.MaritalStatus,
		account.Education, account.Phone, account.Address, documents, account.DataComplete,
		account.RejectionReason, account.SubmittedAt, account.LastUpdatedAt, account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkAccountVerified flips verified=true iff the account is still awaiting
// verification; losing the compare-and-swap yields ErrInvalidState so a
// concurrent second decision never double-applies.
func (r *PgxAccountRepository) MarkAccountVerified(ctx context.Context, accountID string, verifiedBy string, at time.Time) error {
	query := `
		UPDATE accounts SET verified = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND data_complete AND NOT verified;
	`
	tag, err := r.db.Exec(ctx, query, accountID, at, verifiedBy)
	if err != nil {
		return fmt.Errorf("failed to mark account %s verified: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.casFailure(ctx, accountID)
	}
	return nil
}

// ResetAccountSubmission returns the account to the resident with a stored
// rejection reason, under the same compare-and-swap condition.
func (r *PgxAccountRepository) ResetAccountSubmission(ctx context.Context, accountID string, reason string, rejectedBy string, at time.Time) error {
	query := `
		UPDATE accounts SET data_complete = FALSE, rejection_reason = $2,
			last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND data_complete AND NOT verified;
	`
	tag, err := r.db.Exec(ctx, query, accountID, reason, at, rejectedBy)
	if err != nil {
		return fmt.Errorf("failed to reset account %s submission: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.casFailure(ctx, accountID)
	}
	return nil
}

// casFailure distinguishes a missing account from one whose state changed
// since the caller last read it.
func (r *PgxAccountRepository) casFailure(ctx context.Context, accountID string) error {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1);`, accountID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check account %s existence: %w", accountID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%w: account %s is not awaiting verification", apperrors.ErrInvalidState, accountID)
}
