package services

import (
	"fmt"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

// Task source adapters: each projects one raw domain record into a normalized
// PendingTask iff the record is currently awaiting administrator action.
// Pure, stateless and deterministic; absence of a task is not an error.

// ProjectAccountTask emits a task iff the account is dataComplete && !verified.
func ProjectAccountTask(a domain.Account) *domain.PendingTask {
	if !a.AwaitingVerification() {
		return nil
	}
	occurredAt := a.CreatedAt
	if a.SubmittedAt != nil {
		occurredAt = *a.SubmittedAt
	}
	return &domain.PendingTask{
		Kind:        domain.TaskAccountVerification,
		SourceID:    a.AccountID,
		AccountID:   a.AccountID,
		Title:       fmt.Sprintf("Verifikasi warga: %s", a.FullName),
		Description: fmt.Sprintf("NIK %s menunggu verifikasi identitas", a.NationalID),
		OccurredAt:  occurredAt,
		NationalID:  a.NationalID,
		Documents:   a.Documents,
	}
}

// ProjectChangeRequestTask emits a task iff the request is still SUBMITTED.
func ProjectChangeRequestTask(r domain.ChangeRequest) *domain.PendingTask {
	if r.Status != domain.ChangeRequestSubmitted {
		return nil
	}
	return &domain.PendingTask{
		Kind:        domain.TaskChangeRequest,
		SourceID:    r.ChangeRequestID,
		AccountID:   r.AccountID,
		Title:       fmt.Sprintf("Perubahan data: %s", r.Field),
		Description: fmt.Sprintf("%q menjadi %q", r.OldValue, r.NewValue),
		OccurredAt:  r.SubmittedAt,
	}
}

// ProjectPaymentTask emits a task iff the payment awaits verification.
func ProjectPaymentTask(p domain.PaymentRecord) *domain.PendingTask {
	if p.Status != domain.PaymentAwaitingVerification {
		return nil
	}
	return &domain.PendingTask{
		Kind:        domain.TaskPayment,
		SourceID:    p.PaymentID,
		AccountID:   p.AccountID,
		Title:       fmt.Sprintf("Konfirmasi pembayaran: %s", p.Category),
		Description: fmt.Sprintf("Rp %s via %s", p.Amount.StringFixed(0), p.Method),
		OccurredAt:  p.PaidAt,
	}
}

// ProjectFeedbackTask emits a task iff the feedback item is still NEW.
// Items already IN_PROGRESS have been picked up and leave the triage queue.
func ProjectFeedbackTask(f domain.FeedbackItem) *domain.PendingTask {
	if f.Status != domain.FeedbackNew {
		return nil
	}
	return &domain.PendingTask{
		Kind:        domain.TaskFeedback,
		SourceID:    f.FeedbackID,
		AccountID:   f.AccountID,
		Title:       "Pengaduan warga baru",
		Description: truncate(f.Body, 140),
		OccurredAt:  f.SubmittedAt,
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
