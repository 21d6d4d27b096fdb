package domain

import "time"

// AttendanceRecord is one duty-point assignment for one sewadar within one
// session. A sewadar may hold several records in the same session, one per
// duty point. OutTime empty means the sewadar is still on duty ("open").
type AttendanceRecord struct {
	ID            int64     `json:"id"`
	SessionID     int64     `json:"sessionID"`
	SewadarID     int64     `json:"sewadarID"`
	SewadarName   string    `json:"sewadarName"`
	Group         Group     `json:"group"`
	Location      string    `json:"location"`
	Point         string    `json:"point"` // free text; empty = general duty
	InTime        string    `json:"inTime"`
	OutTime       string    `json:"outTime"`
	ProperUniform bool      `json:"properUniform"`
	MarkedBy      int64     `json:"markedBy"` // incharge id
	CreatedAt     time.Time `json:"createdAt"`
	Version       int32     `json:"-"`
}

func (a *AttendanceRecord) Open() bool {
	return a.OutTime == ""
}

type ChangeEventType string

const (
	ChangeEventCreate ChangeEventType = "create"
	ChangeEventUpdate ChangeEventType = "update"
	ChangeEventDelete ChangeEventType = "delete"
)

// ChangeEvent is one record mutation delivered over the live-update feed.
// Origin identifies the publishing API instance so subscribers can skip
// events they produced themselves.
type ChangeEvent struct {
	Type     ChangeEventType   `json:"type"`
	Origin   string            `json:"origin"`
	RecordID int64             `json:"recordID"`
	Record   *AttendanceRecord `json:"record,omitempty"` // nil for deletes
}
