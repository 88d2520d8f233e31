package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRentalStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		name    string
		from    RentalStatus
		to      RentalStatus
		allowed bool
	}{
		{"PendingToApproved", RentalStatusPending, RentalStatusApproved, true},
		{"PendingToRejected", RentalStatusPending, RentalStatusRejected, true},
		{"PendingToCompleted", RentalStatusPending, RentalStatusCompleted, false},
		{"PendingToPending", RentalStatusPending, RentalStatusPending, false},
		{"ApprovedToRejected", RentalStatusApproved, RentalStatusRejected, true},
		{"ApprovedToCompleted", RentalStatusApproved, RentalStatusCompleted, true},
		{"ApprovedToPending", RentalStatusApproved, RentalStatusPending, false},
		{"RejectedIsTerminal", RentalStatusRejected, RentalStatusApproved, false},
		{"RejectedToCompleted", RentalStatusRejected, RentalStatusCompleted, false},
		{"CompletedIsTerminal", RentalStatusCompleted, RentalStatusApproved, false},
		{"CompletedToRejected", RentalStatusCompleted, RentalStatusRejected, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestInclusiveDays(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("SameDayIsOneDay", func(t *testing.T) {
		assert.Equal(t, int32(1), InclusiveDays(day(10), day(10)))
	})

	t.Run("BothEndsCount", func(t *testing.T) {
		assert.Equal(t, int32(3), InclusiveDays(day(10), day(12)))
	})

	t.Run("FullWeek", func(t *testing.T) {
		assert.Equal(t, int32(8), InclusiveDays(day(10), day(17)))
	})
}

func TestRentalRequest_IsActive(t *testing.T) {
	now := time.Now()

	t.Run("ApprovedNotReturned", func(t *testing.T) {
		r := &RentalRequest{Status: RentalStatusApproved}
		assert.True(t, r.IsActive())
	})

	t.Run("ApprovedReturned", func(t *testing.T) {
		r := &RentalRequest{Status: RentalStatusApproved, ReturnedAt: &now}
		assert.False(t, r.IsActive())
	})

	t.Run("Pending", func(t *testing.T) {
		r := &RentalRequest{Status: RentalStatusPending}
		assert.False(t, r.IsActive())
	})
}
