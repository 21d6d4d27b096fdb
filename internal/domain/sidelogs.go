package domain

import "time"

type VehicleType string

const (
	VehicleTwoWheeler  VehicleType = "2-wheeler"
	VehicleFourWheeler VehicleType = "4-wheeler"
)

// VehicleRecord is a vehicle log entry tied to a session. Reports include
// these only as pass-through counts.
type VehicleRecord struct {
	ID          int64       `json:"id"`
	SessionID   int64       `json:"sessionID"`
	Type        VehicleType `json:"type"`
	PlateNumber string      `json:"plateNumber"`
	Model       string      `json:"model"`
	Remarks     string      `json:"remarks"`
	ReportedBy  int64       `json:"reportedBy"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Issue is a free-text incident log entry tied to a session.
type Issue struct {
	ID          int64     `json:"id"`
	SessionID   int64     `json:"sessionID"`
	Description string    `json:"description"`
	ReportedBy  int64     `json:"reportedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}
