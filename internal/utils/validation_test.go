package utils

import (
	"testing"
	"time"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateSessionWindow(t *testing.T) {
	base := time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)

	session := &domain.DutySession{
		Group:     domain.GroupSunday,
		Start:     base,
		End:       base.Add(18 * time.Hour),
		Locations: []string{"Main Ashram"},
	}
	assert.NoError(t, ValidateSessionWindow(session))

	backwards := *session
	backwards.Start, backwards.End = backwards.End, backwards.Start
	assert.Error(t, ValidateSessionWindow(&backwards))

	noLocations := *session
	noLocations.Locations = nil
	assert.Error(t, ValidateSessionWindow(&noLocations))

	blankLocation := *session
	blankLocation.Locations = []string{"Main Ashram", "  "}
	assert.Error(t, ValidateSessionWindow(&blankLocation))

	badGroup := *session
	badGroup.Group = domain.Group("Weekend")
	assert.Error(t, ValidateSessionWindow(&badGroup))

	global := *session
	global.Group = domain.GroupGlobal
	assert.NoError(t, ValidateSessionWindow(&global))
}

func TestValidateRecordTimes(t *testing.T) {
	assert.NoError(t, ValidateRecordTimes("07:05", "13:30"))
	// still on duty
	assert.NoError(t, ValidateRecordTimes("23:30", ""))
	// crosses midnight
	assert.NoError(t, ValidateRecordTimes("23:30", "00:30"))

	assert.Error(t, ValidateRecordTimes("25:00", "13:30"))
	assert.Error(t, ValidateRecordTimes("07:05", "13:70"))
	assert.Error(t, ValidateRecordTimes("", "13:30"))
}
