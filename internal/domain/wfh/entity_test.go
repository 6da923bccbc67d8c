package wfh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entriesWith(statuses ...Status) []WFHEntry {
	out := make([]WFHEntry, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, WFHEntry{Status: s})
	}
	return out
}

func TestOverallStatusOf(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"all pending", []Status{StatusPending, StatusPending}, StatusPending},
		{"any pending wins", []Status{StatusPending, StatusApproved}, StatusPending},
		{"pending beats withdrawal", []Status{StatusPending, StatusPendingWithdrawal}, StatusPending},
		{"pending withdrawal next", []Status{StatusPendingWithdrawal, StatusApproved}, StatusPendingWithdrawal},
		{"uniform approved", []Status{StatusApproved, StatusApproved}, StatusApproved},
		{"uniform rejected", []Status{StatusRejected, StatusRejected}, StatusRejected},
		{"uniform cancelled", []Status{StatusCancelled}, StatusCancelled},
		{"mixed settled is reviewed", []Status{StatusApproved, StatusRejected}, StatusReviewed},
		{"mixed with auto reject is reviewed", []Status{StatusApproved, StatusAutoRejected, StatusCancelled}, StatusReviewed},
		{"no entries", nil, StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverallStatusOf(entriesWith(tt.statuses...)))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusRejected, StatusCancelled, StatusWithdrawn, StatusAutoRejected} {
		assert.True(t, s.Terminal(), "%s", s)
	}
	for _, s := range []Status{StatusPending, StatusApproved, StatusPendingWithdrawal} {
		assert.False(t, s.Terminal(), "%s", s)
	}
}

func TestDurationValid(t *testing.T) {
	assert.True(t, DurationAM.Valid())
	assert.True(t, DurationPM.Valid())
	assert.True(t, DurationFullDay.Valid())
	assert.False(t, Duration("full day").Valid())
	assert.False(t, Duration("").Valid())
}
