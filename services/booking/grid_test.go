package booking

import (
	"testing"
	"time"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nyLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func testHours(t *testing.T) models.BusinessHours {
	return models.BusinessHours{StartHour: 9, EndHour: 17, Location: nyLocation(t)}
}

func day(t *testing.T, y int, m time.Month, d int) (time.Time, time.Time) {
	loc := nyLocation(t)
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

func TestComputeSlotsFullFreeDay(t *testing.T) {
	start, end := day(t, 2025, time.March, 17)

	slots := ComputeSlots(start, end, 30*time.Minute, nil, testHours(t))

	require.Len(t, slots, 16)
	assert.Equal(t, 9, slots[0].Start.Hour())
	assert.Equal(t, 0, slots[0].Start.Minute())
	last := slots[len(slots)-1]
	assert.Equal(t, 16, last.Start.Hour())
	assert.Equal(t, 30, last.Start.Minute())
}

func TestComputeSlotsSkipsBusySlot(t *testing.T) {
	start, end := day(t, 2025, time.March, 17)
	loc := nyLocation(t)
	busy := []models.TimeInterval{{
		Start: time.Date(2025, time.March, 17, 10, 0, 0, 0, loc),
		End:   time.Date(2025, time.March, 17, 10, 30, 0, 0, loc),
	}}

	slots := ComputeSlots(start, end, 30*time.Minute, busy, testHours(t))

	require.Len(t, slots, 15)
	for _, s := range slots {
		assert.False(t, s.Start.Hour() == 10 && s.Start.Minute() == 0, "10:00 slot should be absent")
	}
	// Adjacent slots are unaffected: touching a busy boundary is not overlap.
	var sawTenThirty bool
	for _, s := range slots {
		if s.Start.Hour() == 10 && s.Start.Minute() == 30 {
			sawTenThirty = true
		}
	}
	assert.True(t, sawTenThirty)
}

func TestComputeSlotsEmptyRange(t *testing.T) {
	start, _ := day(t, 2025, time.March, 17)

	assert.Empty(t, ComputeSlots(start, start, 30*time.Minute, nil, testHours(t)))
	assert.Empty(t, ComputeSlots(start, start.Add(-time.Hour), 30*time.Minute, nil, testHours(t)))
}

func TestComputeSlotsIdempotent(t *testing.T) {
	start, end := day(t, 2025, time.March, 17)
	loc := nyLocation(t)
	busy := []models.TimeInterval{{
		Start: time.Date(2025, time.March, 17, 13, 0, 0, 0, loc),
		End:   time.Date(2025, time.March, 17, 14, 15, 0, 0, loc),
	}}

	first := ComputeSlots(start, end, 30*time.Minute, busy, testHours(t))
	second := ComputeSlots(start, end, 30*time.Minute, busy, testHours(t))

	assert.Equal(t, first, second)
}

func TestComputeSlotsStayInsideBusinessHours(t *testing.T) {
	start, _ := day(t, 2025, time.March, 17)
	end := start.AddDate(0, 0, 3)

	slots := ComputeSlots(start, end, 30*time.Minute, nil, testHours(t))

	require.Len(t, slots, 48) // 16 per day across 3 days
	for _, s := range slots {
		startHour := s.Start.Hour()
		lastMinuteHour := s.End.Add(-time.Minute).Hour()
		assert.GreaterOrEqual(t, startHour, 9)
		assert.Less(t, startHour, 17)
		assert.GreaterOrEqual(t, lastMinuteHour, 9)
		assert.Less(t, lastMinuteHour, 17)
	}
}

func TestComputeSlotsRejectsSpillPastClosing(t *testing.T) {
	start, end := day(t, 2025, time.March, 17)

	// 90-minute slots: a 16:30 start would run until 18:00.
	slots := ComputeSlots(start, end, 90*time.Minute, nil, testHours(t))

	for _, s := range slots {
		assert.LessOrEqual(t, s.End.Hour(), 17)
	}
	last := slots[len(slots)-1]
	assert.Equal(t, 15, last.Start.Hour())
	assert.Equal(t, 0, last.Start.Minute())
}

func TestComputeSlotsGridAlignedToRangeStart(t *testing.T) {
	loc := nyLocation(t)
	start := time.Date(2025, time.March, 17, 9, 15, 0, 0, loc)
	end := time.Date(2025, time.March, 18, 0, 0, 0, 0, loc)

	slots := ComputeSlots(start, end, 30*time.Minute, nil, testHours(t))

	require.NotEmpty(t, slots)
	assert.Equal(t, 15, slots[0].Start.Minute(), "grid anchors to range start, not wall-clock midnight")
}

func TestComputeSlotsNormalizesMixedZones(t *testing.T) {
	startNY, endNY := day(t, 2025, time.March, 17)

	// Same instant expressed in UTC must produce the same grid.
	utcSlots := ComputeSlots(startNY.UTC(), endNY.UTC(), 30*time.Minute, nil, testHours(t))
	nySlots := ComputeSlots(startNY, endNY, 30*time.Minute, nil, testHours(t))

	require.Len(t, utcSlots, len(nySlots))
	for i := range utcSlots {
		assert.True(t, utcSlots[i].Start.Equal(nySlots[i].Start))
	}
}

func TestComputeSlotsNoOverlapWithAnyBusyInterval(t *testing.T) {
	start, end := day(t, 2025, time.March, 17)
	loc := nyLocation(t)
	busy := []models.TimeInterval{
		// Fully contains the 11:00 slot.
		{Start: time.Date(2025, time.March, 17, 10, 45, 0, 0, loc), End: time.Date(2025, time.March, 17, 11, 45, 0, 0, loc)},
		// Contained inside the 14:00 slot.
		{Start: time.Date(2025, time.March, 17, 14, 10, 0, 0, loc), End: time.Date(2025, time.March, 17, 14, 20, 0, 0, loc)},
		// Overlaps the tail of the 15:30 slot.
		{Start: time.Date(2025, time.March, 17, 15, 45, 0, 0, loc), End: time.Date(2025, time.March, 17, 16, 10, 0, 0, loc)},
	}

	slots := ComputeSlots(start, end, 30*time.Minute, busy, testHours(t))

	for _, s := range slots {
		for _, b := range busy {
			assert.False(t, s.Interval().Overlaps(b),
				"slot %v overlaps busy interval %v", s, b)
		}
	}
}

func TestOverlapRule(t *testing.T) {
	loc := nyLocation(t)
	at := func(h, m int) time.Time {
		return time.Date(2025, time.March, 17, h, m, 0, 0, loc)
	}
	slot := models.TimeInterval{Start: at(10, 0), End: at(10, 30)}

	cases := []struct {
		name    string
		busy    models.TimeInterval
		overlap bool
	}{
		{"identical", models.TimeInterval{Start: at(10, 0), End: at(10, 30)}, true},
		{"starts inside busy", models.TimeInterval{Start: at(9, 45), End: at(10, 15)}, true},
		{"ends inside busy", models.TimeInterval{Start: at(10, 15), End: at(10, 45)}, true},
		{"contains busy", models.TimeInterval{Start: at(10, 10), End: at(10, 20)}, true},
		{"contained by busy", models.TimeInterval{Start: at(9, 0), End: at(12, 0)}, true},
		{"ends exactly at busy start", models.TimeInterval{Start: at(10, 30), End: at(11, 0)}, false},
		{"starts exactly at busy end", models.TimeInterval{Start: at(9, 30), End: at(10, 0)}, false},
		{"disjoint", models.TimeInterval{Start: at(13, 0), End: at(13, 30)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlap, slot.Overlaps(tc.busy))
		})
	}
}
