package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
)

func TestParseTaskKind(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantKind     domain.TaskKind
		wantFiltered bool
		wantErr      bool
	}{
		{name: "empty means no filter", input: "", wantFiltered: false},
		{name: "ALL means no filter", input: "ALL", wantFiltered: false},
		{name: "account verification", input: "ACCOUNT_VERIFICATION", wantKind: domain.TaskAccountVerification, wantFiltered: true},
		{name: "change request", input: "CHANGE_REQUEST", wantKind: domain.TaskChangeRequest, wantFiltered: true},
		{name: "payment", input: "PAYMENT", wantKind: domain.TaskPayment, wantFiltered: true},
		{name: "feedback", input: "FEEDBACK", wantKind: domain.TaskFeedback, wantFiltered: true},
		{name: "unknown kind", input: "BULLETIN", wantErr: true},
		{name: "lower case rejected", input: "payment", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, filtered, err := domain.ParseTaskKind(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantFiltered, filtered)
			if tt.wantFiltered {
				assert.Equal(t, tt.wantKind, kind)
			}
		})
	}
}

func TestAccount_AwaitingVerification(t *testing.T) {
	tests := []struct {
		name    string
		account domain.Account
		want    bool
	}{
		{name: "fresh registration", account: domain.Account{}, want: false},
		{name: "profile submitted", account: domain.Account{DataComplete: true}, want: true},
		{name: "already verified", account: domain.Account{DataComplete: true, Verified: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.account.AwaitingVerification())
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, domain.ChangeRequestSubmitted.Terminal())
	assert.True(t, domain.ChangeRequestApproved.Terminal())
	assert.True(t, domain.ChangeRequestRejected.Terminal())

	assert.False(t, domain.PaymentAwaitingVerification.Terminal())
	assert.True(t, domain.PaymentConfirmed.Terminal())
	assert.True(t, domain.PaymentRejected.Terminal())

	assert.False(t, domain.FeedbackNew.Terminal())
	assert.False(t, domain.FeedbackInProgress.Terminal())
	assert.True(t, domain.FeedbackResolved.Terminal())
}
