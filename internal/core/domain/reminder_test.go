package domain_test

import (
	"testing"
	"time"

	"github.com/caseledger/caseledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveReminderCandidates_FutureDueDate(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	dueDate := now.AddDate(0, 0, 10)

	candidates := domain.DeriveReminderCandidates(dueDate, now)
	require.Len(t, candidates, 5)

	assert.Equal(t, domain.ReminderUpcoming, candidates[0].Type)
	assert.Equal(t, dueDate.AddDate(0, 0, -7), candidates[0].Date)
	assert.Equal(t, domain.ReminderUpcoming, candidates[1].Type)
	assert.Equal(t, dueDate.AddDate(0, 0, -3), candidates[1].Date)
	assert.Equal(t, domain.ReminderDue, candidates[2].Type)
	assert.Equal(t, dueDate, candidates[2].Date)
	assert.Equal(t, domain.ReminderOverdue, candidates[3].Type)
	assert.Equal(t, dueDate.AddDate(0, 0, 3), candidates[3].Date)
	assert.Equal(t, domain.ReminderOverdue, candidates[4].Type)
	assert.Equal(t, dueDate.AddDate(0, 0, 7), candidates[4].Date)
}

func TestDeriveReminderCandidates_PastDueDate(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	dueDate := now.AddDate(0, 0, -5)

	// Everything at or before the due date is already in the past; only the two
	// overdue reminders survive, regardless of their own dates.
	candidates := domain.DeriveReminderCandidates(dueDate, now)
	require.Len(t, candidates, 2)
	assert.Equal(t, domain.ReminderOverdue, candidates[0].Type)
	assert.Equal(t, dueDate.AddDate(0, 0, 3), candidates[0].Date)
	assert.Equal(t, domain.ReminderOverdue, candidates[1].Type)
	assert.Equal(t, dueDate.AddDate(0, 0, 7), candidates[1].Date)
}

func TestDeriveReminderCandidates_DueDateInFiveDays(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	dueDate := now.AddDate(0, 0, 5)

	// -7d is already behind us, -3d and the due day are still ahead.
	candidates := domain.DeriveReminderCandidates(dueDate, now)
	require.Len(t, candidates, 4)
	assert.Equal(t, domain.ReminderUpcoming, candidates[0].Type)
	assert.Equal(t, dueDate.AddDate(0, 0, -3), candidates[0].Date)
	assert.Equal(t, domain.ReminderDue, candidates[1].Type)
}
