package models

import "time"

// Slot is a single candidate booking start, implicitly spanning
// [Start, Start+Duration). Slots are recomputed per query, never stored.
type Slot struct {
	Start    time.Time     `json:"-"`
	Duration time.Duration `json:"-"`
}

// End returns the exclusive end instant of the slot.
func (s Slot) End() time.Time {
	return s.Start.Add(s.Duration)
}

// SlotDTO is the wire form of a slot.
type SlotDTO struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	DurationMin int    `json:"durationMin"`
}

// DTO converts a slot to its wire form using the caller's location.
func (s Slot) DTO() SlotDTO {
	return SlotDTO{
		Start:       s.Start.Format("15:04"),
		End:         s.End().Format("15:04"),
		DurationMin: int(s.Duration.Minutes()),
	}
}
