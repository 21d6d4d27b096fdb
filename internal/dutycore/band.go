package dutycore

import (
	"fmt"
	"sort"
	"strings"
)

type BandID string

// Band is a named half-open circular interval [Start, End) in minute-of-day
// space. End <= Start means the band wraps past midnight.
type Band struct {
	ID    BandID `json:"id"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Slot renders the band's time range for report headers, e.g. "19:00 - 02:00".
func (b Band) Slot() string {
	return FormatClock(b.Start) + " - " + FormatClock(b.End)
}

// DefaultBands is the current reporting convention: Day 07:00-19:00,
// Evening 19:00-02:00 (wraps), Night 02:00-07:00.
func DefaultBands() []Band {
	return []Band{
		{ID: "Night", Start: 2 * 60, End: 7 * 60},
		{ID: "Day", Start: 7 * 60, End: 19 * 60},
		{ID: "Evening", Start: 19 * 60, End: 2 * 60},
	}
}

// ParseBands builds a band table from name -> "HH:MM-HH:MM" entries, as
// delivered by configuration. Bands are ordered by start minute so reports
// are deterministic regardless of map iteration order.
func ParseBands(entries map[string]string) ([]Band, error) {
	bands := make([]Band, 0, len(entries))

	for name, window := range entries {
		from, to, ok := strings.Cut(window, "-")
		if !ok {
			return nil, fmt.Errorf("band %q: window %q is not HH:MM-HH:MM", name, window)
		}
		start, err := ParseClock(strings.TrimSpace(from))
		if err != nil {
			return nil, fmt.Errorf("band %q: %w", name, err)
		}
		end, err := ParseClock(strings.TrimSpace(to))
		if err != nil {
			return nil, fmt.Errorf("band %q: %w", name, err)
		}
		bands = append(bands, Band{ID: BandID(name), Start: start, End: end})
	}

	sort.Slice(bands, func(i, j int) bool { return bands[i].Start < bands[j].Start })

	return bands, nil
}

// segments materializes a circular interval [start, end) as one or two linear
// sub-intervals of the day. end <= start wraps: [start, 1440) plus [0, end).
func segments(start, end int) [][2]int {
	if end > start {
		return [][2]int{{start, end}}
	}
	return [][2]int{{start, minutesPerDay}, {0, end}}
}

func segmentsOverlap(a, b [2]int) bool {
	lo := max(a[0], b[0])
	hi := min(a[1], b[1])
	return lo < hi
}

// CoveredBands returns every band sharing at least one minute with the duty
// interval [inTime, outTime) on the 24-hour circle. outTime <= inTime means
// the duty crosses midnight. An empty outTime treats the duty as a
// single-minute probe at inTime, i.e. "currently covering whichever band
// contains the check-in minute". Band boundaries are half-open, so a duty
// ending exactly at a boundary does not cover the next band.
func CoveredBands(inTime, outTime string, bands []Band) (map[BandID]bool, error) {
	in, err := ParseClock(inTime)
	if err != nil {
		return nil, err
	}

	var duty [][2]int
	if strings.TrimSpace(outTime) == "" {
		duty = [][2]int{{in, in + 1}}
	} else {
		out, err := ParseClock(outTime)
		if err != nil {
			return nil, err
		}
		duty = segments(in, out)
	}

	covered := make(map[BandID]bool)
	for _, band := range bands {
		for _, bs := range segments(band.Start, band.End) {
			for _, ds := range duty {
				if segmentsOverlap(bs, ds) {
					covered[band.ID] = true
				}
			}
		}
	}

	return covered, nil
}
