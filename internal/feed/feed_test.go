package feed

import (
	"encoding/json"
	"testing"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
	"github.com/skrm-sewa/duty-tracker/backend/internal/dutycore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload(t *testing.T, ev domain.ChangeEvent) string {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return string(b)
}

func TestApplyMutatesStore(t *testing.T) {
	store := dutycore.NewStore()
	store.PutSession(domain.DutySession{ID: 1, Group: domain.GroupSunday})

	f := New(nil, "attendance:changes", "instance-a", store)

	record := domain.AttendanceRecord{ID: 5, SessionID: 1, SewadarID: 9, InTime: "08:00"}
	f.apply(payload(t, domain.ChangeEvent{
		Type:   domain.ChangeEventCreate,
		Origin: "instance-b",
		Record: &record,
	}))

	records, err := store.ListBySession(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(5), records[0].ID)
}

func TestApplySkipsOwnEvents(t *testing.T) {
	store := dutycore.NewStore()
	store.PutSession(domain.DutySession{ID: 1, Group: domain.GroupSunday})

	f := New(nil, "attendance:changes", "instance-a", store)

	record := domain.AttendanceRecord{ID: 5, SessionID: 1, SewadarID: 9, InTime: "08:00"}
	f.apply(payload(t, domain.ChangeEvent{
		Type:   domain.ChangeEventCreate,
		Origin: "instance-a",
		Record: &record,
	}))

	records, err := store.ListBySession(1)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestApplyIgnoresUnknownSession(t *testing.T) {
	store := dutycore.NewStore()
	f := New(nil, "attendance:changes", "instance-a", store)

	record := domain.AttendanceRecord{ID: 5, SessionID: 42, SewadarID: 9, InTime: "08:00"}

	// must not panic or create state for a session this instance never loaded
	f.apply(payload(t, domain.ChangeEvent{
		Type:   domain.ChangeEventCreate,
		Origin: "instance-b",
		Record: &record,
	}))

	_, err := store.ListBySession(42)
	assert.ErrorIs(t, err, dutycore.ErrNotFound)
}
