package dutycore

import "github.com/skrm-sewa/duty-tracker/backend/internal/domain"

// A session moves Scheduled -> Active -> Completed. Only the Completed flag
// is persisted; Scheduled vs Active is a function of the clock and carries no
// behavioral difference in this core, so the gates below only inspect
// Completed.

// CanMutate reports whether records of the session may still be added,
// updated or removed. False once the session is completed.
func CanMutate(session domain.DutySession) bool {
	return !session.Completed
}

// CanComplete reports whether the session may be finalized: true iff no
// record in records is missing its out-time.
func CanComplete(records []domain.AttendanceRecord) bool {
	return countOpen(records) == 0
}

// Complete flips Completed to true. Completing an already-completed session
// is a no-op success; completion with open records fails with an
// OpenRecordsError carrying the count.
func Complete(session *domain.DutySession, records []domain.AttendanceRecord) error {
	if session.Completed {
		return nil
	}
	if n := countOpen(records); n > 0 {
		return &OpenRecordsError{Count: n}
	}
	session.Completed = true
	return nil
}

func countOpen(records []domain.AttendanceRecord) int {
	n := 0
	for i := range records {
		if records[i].Open() {
			n++
		}
	}
	return n
}
