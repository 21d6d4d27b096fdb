package dutycore

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
)

// Names substituted when a record carries no location or duty point.
const (
	GeneralLocation = "General Ashram"
	GeneralPoint    = "General Duty"
)

// PointKey identifies one deployment group. A typed composite key, not a
// joined string, so free-text locations and points never need delimiter
// escaping.
type PointKey struct {
	Location string
	Point    string
}

// DeploymentRow is one line of the per-point manpower table: how many
// sewadars covered each shift band at this (location, point).
type DeploymentRow struct {
	Location string         `json:"location"`
	Point    string         `json:"point"`
	Counts   map[BandID]int `json:"counts"`
	Total    int            `json:"total"`
}

// All aggregation below is pure: identical input yields identical output
// regardless of call order, as required for deterministic report
// regeneration. Records whose in-time fails to parse are skipped; reports
// are never blocked by a single corrupt row.

// ShiftTotals counts, per shift band, the records that overlap it. A record
// spanning a band boundary increments every band it touches, matching the
// manpower-distribution semantics of the duty reports.
func ShiftTotals(records []domain.AttendanceRecord, bands []Band) map[BandID]int {
	totals := make(map[BandID]int, len(bands))
	for _, band := range bands {
		totals[band.ID] = 0
	}

	for i := range records {
		covered, err := CoveredBands(records[i].InTime, records[i].OutTime, bands)
		if err != nil {
			continue
		}
		for id := range covered {
			totals[id]++
		}
	}

	return totals
}

// DeploymentTable groups records by (location, point), normalizing empty
// fields to the general placeholders, and computes per-band counts for each
// group. Rows are sorted by location then point.
func DeploymentTable(records []domain.AttendanceRecord, bands []Band) []DeploymentRow {
	groups := make(map[PointKey][]domain.AttendanceRecord)
	for i := range records {
		key := PointKey{
			Location: normalize(records[i].Location, GeneralLocation),
			Point:    normalize(records[i].Point, GeneralPoint),
		}
		groups[key] = append(groups[key], records[i])
	}

	keys := make([]PointKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Location != keys[j].Location {
			return keys[i].Location < keys[j].Location
		}
		return keys[i].Point < keys[j].Point
	})

	rows := make([]DeploymentRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, DeploymentRow{
			Location: key.Location,
			Point:    key.Point,
			Counts:   ShiftTotals(groups[key], bands),
			Total:    len(groups[key]),
		})
	}

	return rows
}

// RecordDuration formats the record's duty length as "Xh Ym". An open or
// unparsable record renders as "-"; that is the reporting convention, not a
// failure.
func RecordDuration(record domain.AttendanceRecord) string {
	minutes, err := DurationMinutes(record.InTime, record.OutTime)
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func normalize(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}
