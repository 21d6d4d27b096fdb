package dutycore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bandIDs(covered map[BandID]bool) []BandID {
	ids := make([]BandID, 0, len(covered))
	for id := range covered {
		ids = append(ids, id)
	}
	return ids
}

func TestCoveredBandsWithinOneBand(t *testing.T) {
	covered, err := CoveredBands("09:00", "12:00", DefaultBands())
	require.NoError(t, err)
	assert.ElementsMatch(t, []BandID{"Day"}, bandIDs(covered))
}

func TestCoveredBandsWraparound(t *testing.T) {
	// 23:30-00:30 crosses midnight entirely inside Evening (19:00-02:00)
	covered, err := CoveredBands("23:30", "00:30", DefaultBands())
	require.NoError(t, err)
	assert.ElementsMatch(t, []BandID{"Evening"}, bandIDs(covered))
}

func TestCoveredBandsBoundaryExactness(t *testing.T) {
	// bands are half-open: a duty starting exactly at the 19:00 cutover
	// belongs to Evening only
	covered, err := CoveredBands("19:00", "19:01", DefaultBands())
	require.NoError(t, err)
	assert.ElementsMatch(t, []BandID{"Evening"}, bandIDs(covered))

	// and one ending exactly at 19:00 never touches Evening
	covered, err = CoveredBands("18:00", "19:00", DefaultBands())
	require.NoError(t, err)
	assert.ElementsMatch(t, []BandID{"Day"}, bandIDs(covered))
}

func TestCoveredBandsAcrossBoundary(t *testing.T) {
	covered, err := CoveredBands("06:50", "07:10", DefaultBands())
	require.NoError(t, err)
	assert.ElementsMatch(t, []BandID{"Night", "Day"}, bandIDs(covered))
}

func TestCoveredBandsOpenRecordProbe(t *testing.T) {
	// an open record covers whichever band contains the check-in minute
	covered, err := CoveredBands("20:15", "", DefaultBands())
	require.NoError(t, err)
	assert.ElementsMatch(t, []BandID{"Evening"}, bandIDs(covered))

	covered, err = CoveredBands("03:00", "", DefaultBands())
	require.NoError(t, err)
	assert.ElementsMatch(t, []BandID{"Night"}, bandIDs(covered))
}

func TestCoveredBandsFullDay(t *testing.T) {
	covered, err := CoveredBands("08:00", "08:00", DefaultBands())
	require.NoError(t, err)
	assert.ElementsMatch(t, []BandID{"Night", "Day", "Evening"}, bandIDs(covered))
}

func TestCoveredBandsInvalidTime(t *testing.T) {
	_, err := CoveredBands("26:00", "08:00", DefaultBands())
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestParseBands(t *testing.T) {
	bands, err := ParseBands(map[string]string{
		"Day":     "07:00-19:00",
		"Evening": "19:00-02:00",
		"Night":   "02:00-07:00",
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultBands(), bands)

	_, err = ParseBands(map[string]string{"Broken": "07:00"})
	assert.Error(t, err)

	_, err = ParseBands(map[string]string{"Broken": "07:00-25:00"})
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestBandSlot(t *testing.T) {
	assert.Equal(t, "19:00 - 02:00", Band{ID: "Evening", Start: 1140, End: 120}.Slot())
}
