package dutycore

import (
	"math/rand"
	"testing"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(in, out, location, point string) domain.AttendanceRecord {
	return domain.AttendanceRecord{
		InTime:   in,
		OutTime:  out,
		Location: location,
		Point:    point,
	}
}

func TestShiftTotalsHandDerived(t *testing.T) {
	// A: 06:50-07:10 straddles the 07:00 cutover -> Night and Day.
	// B: 20:00-01:30 crosses midnight but ends before 02:00 -> Evening only.
	records := []domain.AttendanceRecord{
		rec("06:50", "07:10", "Gate 1", ""),
		rec("20:00", "01:30", "Gate 1", ""),
	}

	totals := ShiftTotals(records, DefaultBands())
	assert.Equal(t, map[BandID]int{"Night": 1, "Day": 1, "Evening": 1}, totals)
}

func TestShiftTotalsCountsRecordPerBandOnce(t *testing.T) {
	// one record spanning all three bands increments each exactly once
	records := []domain.AttendanceRecord{rec("06:00", "20:00", "", "")}

	totals := ShiftTotals(records, DefaultBands())
	assert.Equal(t, map[BandID]int{"Night": 1, "Day": 1, "Evening": 1}, totals)
}

func TestShiftTotalsConservation(t *testing.T) {
	// every record below covers exactly one band, so the totals must sum to
	// the record count
	records := []domain.AttendanceRecord{
		rec("08:00", "12:00", "", ""),
		rec("13:00", "18:00", "", ""),
		rec("20:00", "23:00", "", ""),
		rec("03:00", "04:00", "", ""),
	}

	totals := ShiftTotals(records, DefaultBands())
	sum := 0
	for _, n := range totals {
		sum += n
	}
	assert.Equal(t, len(records), sum)
}

func TestShiftTotalsSkipsUnparsableRecords(t *testing.T) {
	records := []domain.AttendanceRecord{
		rec("08:00", "12:00", "", ""),
		rec("garbage", "12:00", "", ""),
	}

	totals := ShiftTotals(records, DefaultBands())
	assert.Equal(t, 1, totals["Day"])
}

func TestAggregationDeterminism(t *testing.T) {
	records := []domain.AttendanceRecord{
		rec("06:50", "07:10", "Gate 1", "Main Entry"),
		rec("20:00", "01:30", "Gate 1", ""),
		rec("09:00", "", "Gate 2", "Parking"),
		rec("18:30", "21:00", "", "Parking"),
	}

	wantTotals := ShiftTotals(records, DefaultBands())
	wantTable := DeploymentTable(records, DefaultBands())

	for i := 0; i < 10; i++ {
		shuffled := make([]domain.AttendanceRecord, len(records))
		copy(shuffled, records)
		rand.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		assert.Equal(t, wantTotals, ShiftTotals(shuffled, DefaultBands()))
		assert.Equal(t, wantTable, DeploymentTable(shuffled, DefaultBands()))
	}
}

func TestDeploymentTable(t *testing.T) {
	records := []domain.AttendanceRecord{
		rec("09:00", "12:00", "Kirpal Bagh", "Main Gate"),
		rec("10:00", "14:00", "Kirpal Bagh", "Main Gate"),
		rec("20:00", "23:00", "Kirpal Bagh", ""),
		rec("09:00", "11:00", "", ""),
	}

	rows := DeploymentTable(records, DefaultBands())
	require.Len(t, rows, 3)

	// lexicographic by (location, point); empty fields normalized
	assert.Equal(t, GeneralLocation, rows[0].Location)
	assert.Equal(t, GeneralPoint, rows[0].Point)
	assert.Equal(t, 1, rows[0].Total)

	assert.Equal(t, "Kirpal Bagh", rows[1].Location)
	assert.Equal(t, GeneralPoint, rows[1].Point)
	assert.Equal(t, 1, rows[1].Counts["Evening"])

	assert.Equal(t, "Kirpal Bagh", rows[2].Location)
	assert.Equal(t, "Main Gate", rows[2].Point)
	assert.Equal(t, 2, rows[2].Total)
	assert.Equal(t, 2, rows[2].Counts["Day"])
}

func TestRecordDuration(t *testing.T) {
	assert.Equal(t, "8h 30m", RecordDuration(rec("09:00", "17:30", "", "")))
	assert.Equal(t, "1h 0m", RecordDuration(rec("23:30", "00:30", "", "")))

	// open record renders as "-", a reporting convention rather than an error
	assert.Equal(t, "-", RecordDuration(rec("09:00", "", "", "")))
	assert.Equal(t, "-", RecordDuration(rec("bad", "10:00", "", "")))
}
