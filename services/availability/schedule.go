package availability

import (
	"strings"
	"time"

	"slotwise/models"
)

// ResolveDayIntervals maps a weekday onto the open intervals of the weekly
// schedule. Unknown weekday names, disabled days and empty interval lists
// all resolve to nil: "no availability" is the fail-safe default, never an
// error. Malformed intervals are skipped rather than propagated.
func ResolveDayIntervals(schedule models.WeeklySchedule, weekday string) []models.TimeInterval {
	day, ok := schedule[strings.ToLower(weekday)]
	if !ok || !day.Enabled || len(day.Intervals) == 0 {
		return nil
	}

	var out []models.TimeInterval
	for _, iv := range day.Intervals {
		start, okStart := parseWallClock(iv.Start)
		end, okEnd := parseWallClock(iv.End)
		if !okStart || !okEnd {
			continue
		}
		if !end.After(start) {
			continue
		}
		out = append(out, iv)
	}
	return out
}

// WeekdayName returns the canonical lowercase key for a date.
func WeekdayName(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// IntervalBounds anchors a wall-clock interval to a concrete date in the
// date's location. It reports false for intervals that do not parse or do
// not span forward.
func IntervalBounds(date time.Time, iv models.TimeInterval) (time.Time, time.Time, bool) {
	start, okStart := parseWallClock(iv.Start)
	end, okEnd := parseWallClock(iv.End)
	if !okStart || !okEnd || !end.After(start) {
		return time.Time{}, time.Time{}, false
	}

	loc := date.Location()
	at := func(t time.Time) time.Time {
		return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	}
	return at(start), at(end), true
}

func parseWallClock(hm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
