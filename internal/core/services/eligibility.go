package services

import "github.com/wargaku/rtrw_portal_app/internal/core/domain"

// AutoApprovalPolicy is the fixed rule set for unattended account
// verification. Only the national-id length is configurable today; richer
// policies (dukcapil lookup, document OCR score) would slot in here.
type AutoApprovalPolicy struct {
	NationalIDLength int
}

// DefaultAutoApprovalPolicy matches the 16-digit NIK format.
func DefaultAutoApprovalPolicy() AutoApprovalPolicy {
	return AutoApprovalPolicy{NationalIDLength: 16}
}

// EligibleForAutoApproval returns the subset of tasks that satisfy the
// auto-approval policy: account-verification tasks whose national ID has
// exactly the required length and which carry at least one identity document.
// An empty result is a normal outcome, not an error; the caller decides
// whether to prompt, batch-approve or do nothing.
func EligibleForAutoApproval(tasks []domain.PendingTask, policy AutoApprovalPolicy) []domain.PendingTask {
	eligible := make([]domain.PendingTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Kind != domain.TaskAccountVerification {
			continue
		}
		if len(t.NationalID) != policy.NationalIDLength {
			continue
		}
		if !hasIdentityDocument(t.Documents) {
			continue
		}
		eligible = append(eligible, t)
	}
	return eligible
}

func hasIdentityDocument(docs []domain.IdentityDocument) bool {
	for _, doc := range docs {
		if doc.Kind == domain.DocumentNationalID {
			return true
		}
	}
	return false
}
