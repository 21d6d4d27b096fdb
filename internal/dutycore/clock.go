// Package dutycore implements the duty-session attendance and shift-coverage
// engine: wall-clock arithmetic on the 24-hour circle, the shift calendar,
// the in-memory duty record store, the coverage aggregator and the session
// lifecycle. The package is pure in-process; persistence and the live-update
// feed are collaborators wired in by the caller.
package dutycore

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseClock converts an "HH:MM" 24-hour string into a minute-of-day in
// [0, 1439].
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	return hour*60 + minute, nil
}

// FormatClock is the inverse of ParseClock. minutes is normalized modulo
// 1440 first, so negative or overflowing values still format.
func FormatClock(minutes int) string {
	m := ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// DurationMinutes computes (out - in) mod 1440, so a duty spanning midnight
// still yields its true length. An empty outTime returns ErrRecordOpen:
// callers must distinguish "0 minutes" from "not yet closed".
func DurationMinutes(inTime, outTime string) (int, error) {
	if strings.TrimSpace(outTime) == "" {
		return 0, ErrRecordOpen
	}

	in, err := ParseClock(inTime)
	if err != nil {
		return 0, err
	}
	out, err := ParseClock(outTime)
	if err != nil {
		return 0, err
	}

	return ((out - in) % minutesPerDay + minutesPerDay) % minutesPerDay, nil
}
