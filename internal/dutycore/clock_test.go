package dutycore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:05", 425, false},
		{"23:59", 1439, false},
		{"25:00", 0, true},
		{"12:60", 0, true},
		{"1230", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, c := range cases {
		minutes, err := ParseClock(c.in)
		if c.wantErr {
			assert.ErrorIs(t, err, ErrInvalidTime, "input %q", c.in)
			continue
		}
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.minutes, minutes, "input %q", c.in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "07:05", FormatClock(425))
	assert.Equal(t, "00:00", FormatClock(0))

	// values outside [0, 1440) are normalized, not rejected
	assert.Equal(t, "01:00", FormatClock(1500))
	assert.Equal(t, "23:30", FormatClock(-30))
}

func TestDurationMinutes(t *testing.T) {
	minutes, err := DurationMinutes("09:00", "17:30")
	require.NoError(t, err)
	assert.Equal(t, 510, minutes)

	// wraps past midnight
	minutes, err = DurationMinutes("23:30", "00:30")
	require.NoError(t, err)
	assert.Equal(t, 60, minutes)

	// a genuinely zero-length duty is 0, not an error
	minutes, err = DurationMinutes("10:00", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)
}

func TestDurationMinutesOpenRecord(t *testing.T) {
	_, err := DurationMinutes("09:00", "")
	assert.ErrorIs(t, err, ErrRecordOpen)

	_, err = DurationMinutes("09:00", "  ")
	assert.ErrorIs(t, err, ErrRecordOpen)

	_, err = DurationMinutes("bad", "10:00")
	assert.ErrorIs(t, err, ErrInvalidTime)
}
