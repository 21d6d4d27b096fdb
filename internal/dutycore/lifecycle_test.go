package dutycore

import (
	"testing"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanComplete(t *testing.T) {
	closed := domain.AttendanceRecord{InTime: "18:00", OutTime: "22:00"}
	open := domain.AttendanceRecord{InTime: "18:00"}

	assert.True(t, CanComplete(nil))
	assert.True(t, CanComplete([]domain.AttendanceRecord{closed}))
	assert.False(t, CanComplete([]domain.AttendanceRecord{closed, open}))
}

func TestComplete(t *testing.T) {
	session := domain.DutySession{ID: 1}
	records := []domain.AttendanceRecord{
		{InTime: "18:00", OutTime: "22:00"},
		{InTime: "19:00"},
		{InTime: "20:00"},
	}

	err := Complete(&session, records)
	require.ErrorIs(t, err, ErrOpenRecordsRemain)

	var openErr *OpenRecordsError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, 2, openErr.Count)
	assert.False(t, session.Completed)

	records[1].OutTime = "23:00"
	records[2].OutTime = "23:30"
	require.NoError(t, Complete(&session, records))
	assert.True(t, session.Completed)

	// one-way and idempotent
	require.NoError(t, Complete(&session, records))
	assert.True(t, session.Completed)
}

func TestCanMutate(t *testing.T) {
	assert.True(t, CanMutate(domain.DutySession{}))
	assert.False(t, CanMutate(domain.DutySession{Completed: true}))
}
