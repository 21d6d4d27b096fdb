package dutycore

import (
	"testing"
	"time"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s := NewStore()
	s.PutSession(domain.DutySession{
		ID:        1,
		Date:      "2026-08-28",
		Group:     domain.GroupFriday,
		Start:     time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC),
		End:       time.Date(2026, 8, 29, 7, 0, 0, 0, time.UTC),
		Locations: []string{"Kirpal Bagh"},
	})
	return s
}

func TestStoreAddAssignsIDs(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.Add(domain.AttendanceRecord{SessionID: 1, SewadarID: 10, InTime: "18:00"})
	require.NoError(t, err)
	id2, err := s.Add(domain.AttendanceRecord{SessionID: 1, SewadarID: 11, InTime: "18:05"})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	// explicit ids are kept and never reissued
	_, err = s.Add(domain.AttendanceRecord{ID: 100, SessionID: 1, SewadarID: 12, InTime: "18:10"})
	require.NoError(t, err)
	id4, err := s.Add(domain.AttendanceRecord{SessionID: 1, SewadarID: 13, InTime: "18:15"})
	require.NoError(t, err)
	assert.Greater(t, id4, int64(100))
}

func TestStoreAddUnknownSession(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(domain.AttendanceRecord{SessionID: 99, SewadarID: 10, InTime: "18:00"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreListInsertionOrder(t *testing.T) {
	s := newTestStore(t)

	for _, sewadarID := range []int64{30, 10, 20} {
		_, err := s.Add(domain.AttendanceRecord{SessionID: 1, SewadarID: sewadarID, InTime: "18:00"})
		require.NoError(t, err)
	}

	records, err := s.ListBySession(1)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, int64(30), records[0].SewadarID)
	assert.Equal(t, int64(10), records[1].SewadarID)
	assert.Equal(t, int64(20), records[2].SewadarID)
}

func TestStoreUpdate(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Add(domain.AttendanceRecord{SessionID: 1, SewadarID: 10, InTime: "18:00"})
	require.NoError(t, err)

	out := "23:30"
	point := "Main Gate"
	require.NoError(t, s.Update(1, id, RecordPatch{OutTime: &out, Point: &point}))

	records, err := s.ListBySession(1)
	require.NoError(t, err)
	assert.Equal(t, "23:30", records[0].OutTime)
	assert.Equal(t, "Main Gate", records[0].Point)

	err = s.Update(1, 999, RecordPatch{OutTime: &out})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreRemove(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Add(domain.AttendanceRecord{SessionID: 1, SewadarID: 10, InTime: "18:00"})
	require.NoError(t, err)

	require.NoError(t, s.Remove(1, id))
	assert.ErrorIs(t, s.Remove(1, id), ErrNotFound)

	records, err := s.ListBySession(1)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStoreOpenRecords(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(domain.AttendanceRecord{SessionID: 1, SewadarID: 10, InTime: "18:00", OutTime: "22:00"})
	require.NoError(t, err)
	openID, err := s.Add(domain.AttendanceRecord{SessionID: 1, SewadarID: 11, InTime: "18:00"})
	require.NoError(t, err)

	open, err := s.OpenRecords(1)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, openID, open[0].ID)

	ok, err := s.CanComplete(1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreCompleteBlockedByOpenRecords(t *testing.T) {
	s := newTestStore(t)

	for i := int64(0); i < 3; i++ {
		_, err := s.Add(domain.AttendanceRecord{SessionID: 1, SewadarID: 10 + i, InTime: "18:00"})
		require.NoError(t, err)
	}

	_, err := s.Complete(1)
	require.ErrorIs(t, err, ErrOpenRecordsRemain)

	var openErr *OpenRecordsError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, 3, openErr.Count)
}

func TestStoreCompleteIdempotent(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(domain.AttendanceRecord{SessionID: 1, SewadarID: 10, InTime: "18:00", OutTime: "22:00"})
	require.NoError(t, err)

	session, err := s.Complete(1)
	require.NoError(t, err)
	assert.True(t, session.Completed)

	// completing again is a no-op success
	session, err = s.Complete(1)
	require.NoError(t, err)
	assert.True(t, session.Completed)
}

func TestStoreCompletedSessionRejectsMutation(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Add(domain.AttendanceRecord{SessionID: 1, SewadarID: 10, InTime: "18:00", OutTime: "22:00"})
	require.NoError(t, err)
	_, err = s.Complete(1)
	require.NoError(t, err)

	_, err = s.Add(domain.AttendanceRecord{SessionID: 1, SewadarID: 11, InTime: "19:00"})
	assert.ErrorIs(t, err, ErrSessionClosed)

	out := "23:00"
	assert.ErrorIs(t, s.Update(1, id, RecordPatch{OutTime: &out}), ErrSessionClosed)
	assert.ErrorIs(t, s.Remove(1, id), ErrSessionClosed)
	assert.ErrorIs(t, s.Wipe(1), ErrSessionClosed)

	// reads and aggregation stay permitted
	records, err := s.ListBySession(1)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	ok, err := s.CanMutate(1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreApplyExternalChange(t *testing.T) {
	s := newTestStore(t)

	record := domain.AttendanceRecord{ID: 7, SessionID: 1, SewadarID: 10, InTime: "18:00"}
	require.NoError(t, s.ApplyExternalChange(domain.ChangeEvent{
		Type:   domain.ChangeEventCreate,
		Record: &record,
	}))

	updated := record
	updated.OutTime = "22:00"
	require.NoError(t, s.ApplyExternalChange(domain.ChangeEvent{
		Type:   domain.ChangeEventUpdate,
		Record: &updated,
	}))

	records, err := s.ListBySession(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "22:00", records[0].OutTime)

	require.NoError(t, s.ApplyExternalChange(domain.ChangeEvent{
		Type:     domain.ChangeEventDelete,
		RecordID: 7,
	}))
	records, err = s.ListBySession(1)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStoreApplyExternalChangeClosedSession(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Complete(1)
	require.NoError(t, err)

	record := domain.AttendanceRecord{ID: 7, SessionID: 1, SewadarID: 10, InTime: "18:00"}
	err = s.ApplyExternalChange(domain.ChangeEvent{
		Type:   domain.ChangeEventCreate,
		Record: &record,
	})
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestStoreWipe(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(domain.AttendanceRecord{SessionID: 1, SewadarID: 10, InTime: "18:00"})
	require.NoError(t, err)

	require.NoError(t, s.Wipe(1))
	records, err := s.ListBySession(1)
	require.NoError(t, err)
	assert.Empty(t, records)
}
