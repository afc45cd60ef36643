package availability

import (
	"testing"
	"time"

	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDayIntervals(t *testing.T) {
	schedule := models.WeeklySchedule{
		"monday": {
			Enabled: true,
			Intervals: []models.TimeInterval{
				{Start: "09:00", End: "12:00"},
				{Start: "14:00", End: "18:00"},
			},
		},
		"tuesday": {
			Enabled:   false,
			Intervals: []models.TimeInterval{{Start: "09:00", End: "12:00"}},
		},
		"wednesday": {Enabled: true},
	}

	t.Run("enabled day returns its intervals", func(t *testing.T) {
		got := ResolveDayIntervals(schedule, "monday")
		require.Len(t, got, 2)
		assert.Equal(t, "09:00", got[0].Start)
		assert.Equal(t, "14:00", got[1].Start)
	})

	t.Run("disabled day is empty regardless of intervals", func(t *testing.T) {
		assert.Empty(t, ResolveDayIntervals(schedule, "tuesday"))
	})

	t.Run("enabled day without intervals is empty", func(t *testing.T) {
		assert.Empty(t, ResolveDayIntervals(schedule, "wednesday"))
	})

	t.Run("missing day is empty", func(t *testing.T) {
		assert.Empty(t, ResolveDayIntervals(schedule, "sunday"))
	})

	t.Run("unknown weekday name is empty, not an error", func(t *testing.T) {
		assert.Empty(t, ResolveDayIntervals(schedule, "someday"))
	})

	t.Run("weekday lookup is case-insensitive", func(t *testing.T) {
		assert.Len(t, ResolveDayIntervals(schedule, "Monday"), 2)
	})
}

func TestResolveDayIntervalsSkipsMalformed(t *testing.T) {
	schedule := models.WeeklySchedule{
		"friday": {
			Enabled: true,
			Intervals: []models.TimeInterval{
				{Start: "not-a-time", End: "12:00"},
				{Start: "09:00", End: "xx"},
				{Start: "12:00", End: "12:00"}, // zero length
				{Start: "15:00", End: "10:00"}, // inverted
				{Start: "10:00", End: "11:30"},
			},
		},
	}

	got := ResolveDayIntervals(schedule, "friday")
	require.Len(t, got, 1)
	assert.Equal(t, models.TimeInterval{Start: "10:00", End: "11:30"}, got[0])
}

func TestWeekdayName(t *testing.T) {
	// 2026-01-12 is a Monday.
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "monday", WeekdayName(day))
	assert.Equal(t, "sunday", WeekdayName(day.AddDate(0, 0, 6)))
}

func TestIntervalBounds(t *testing.T) {
	day := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	start, end, ok := IntervalBounds(day, models.TimeInterval{Start: "09:00", End: "12:30"})
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 12, 12, 30, 0, 0, time.UTC), end)

	_, _, ok = IntervalBounds(day, models.TimeInterval{Start: "12:00", End: "09:00"})
	assert.False(t, ok)

	_, _, ok = IntervalBounds(day, models.TimeInterval{Start: "bogus", End: "09:00"})
	assert.False(t, ok)
}
