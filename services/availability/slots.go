package availability

import (
	"sort"
	"time"

	"slotwise/models"
)

// GenerateSlots produces the ordered candidate booking starts for one date.
// For each open interval it steps from the interval start in duration-sized
// increments while the slot still ends inside the interval, and emits the
// slot only if no busy range overlaps it. Overlap is half-open:
// busy.Start < slotEnd && busy.End > slotStart.
//
// The function is pure: identical inputs always yield identical, identically
// ordered output. A non-positive duration yields no slots.
func GenerateSlots(date time.Time, intervals []models.TimeInterval, busy []models.BusyRange, duration time.Duration) []models.Slot {
	if duration <= 0 {
		return nil
	}

	var slots []models.Slot
	for _, iv := range intervals {
		start, end, ok := IntervalBounds(date, iv)
		if !ok {
			continue
		}

		for cur := start; !cur.Add(duration).After(end); cur = cur.Add(duration) {
			if overlapsAny(cur, cur.Add(duration), busy) {
				continue
			}
			slots = append(slots, models.Slot{Start: cur, Duration: duration})
		}
	}

	// Schedule intervals may overlap in input; union semantics means a start
	// covered by two intervals is still one candidate slot.
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	deduped := slots[:0]
	for i, s := range slots {
		if i > 0 && s.Start.Equal(slots[i-1].Start) {
			continue
		}
		deduped = append(deduped, s)
	}
	return deduped
}

func overlapsAny(slotStart, slotEnd time.Time, busy []models.BusyRange) bool {
	for _, b := range busy {
		if b.Start.Before(slotEnd) && b.End.After(slotStart) {
			return true
		}
	}
	return false
}
