package utils

import (
	"fmt"
	"strings"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
	"github.com/skrm-sewa/duty-tracker/backend/internal/dutycore"
)

func ValidateSessionWindow(session *domain.DutySession) error {
	if !session.Start.Before(session.End) {
		return fmt.Errorf("session start must be before its end")
	}

	if len(session.Locations) == 0 {
		return fmt.Errorf("session must cover at least one location")
	}
	for i, location := range session.Locations {
		if strings.TrimSpace(location) == "" {
			return fmt.Errorf("location %d is blank", i+1)
		}
	}

	if session.Group != domain.GroupGlobal && !domain.IsRosterGroup(session.Group) {
		return fmt.Errorf("unknown group %q", session.Group)
	}

	return nil
}

// ValidateRecordTimes checks the wall-clock fields of an attendance record.
// An empty out-time is valid: the sewadar is still on duty.
func ValidateRecordTimes(inTime, outTime string) error {
	if _, err := dutycore.ParseClock(inTime); err != nil {
		return fmt.Errorf("in-time: %w", err)
	}

	if strings.TrimSpace(outTime) != "" {
		if _, err := dutycore.ParseClock(outTime); err != nil {
			return fmt.Errorf("out-time: %w", err)
		}
	}

	return nil
}
