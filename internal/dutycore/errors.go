package dutycore

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTime reports a malformed HH:MM clock string.
	ErrInvalidTime = errors.New("invalid clock time")

	// ErrSessionClosed reports a mutation attempted on a completed session.
	ErrSessionClosed = errors.New("session already completed")

	// ErrNotFound reports an operation referencing a nonexistent record or
	// session.
	ErrNotFound = errors.New("not found")

	// ErrRecordOpen reports a duration query against a record whose
	// out-time has not been set. Duration is undefined, not zero.
	ErrRecordOpen = errors.New("record has no out-time")

	// ErrOpenRecordsRemain is the errors.Is target for OpenRecordsError.
	ErrOpenRecordsRemain = errors.New("open records remain")
)

// OpenRecordsError blocks session completion and carries the number of
// records still missing an out-time.
type OpenRecordsError struct {
	Count int
}

func (e *OpenRecordsError) Error() string {
	return fmt.Sprintf("%d open record(s) remain", e.Count)
}

func (e *OpenRecordsError) Is(target error) bool {
	return target == ErrOpenRecordsRemain
}
