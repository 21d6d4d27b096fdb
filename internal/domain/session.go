package domain

import "time"

// DutySession is one scheduled window of security coverage for a group.
// Start must precede End; the window may span midnight or several days.
// Completed is one-way: the system never reopens a finalized session.
type DutySession struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // calendar day, YYYY-MM-DD
	Group     Group     `json:"group"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Locations []string  `json:"locations"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
