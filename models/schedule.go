package models

// TimeInterval is a wall-clock open interval within a single day,
// stored as "15:04" strings the way the admin schedule editor saves them.
type TimeInterval struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// DaySchedule is the recurring configuration for one weekday.
type DaySchedule struct {
	Enabled   bool           `bson:"enabled" json:"enabled"`
	Intervals []TimeInterval `bson:"intervals" json:"intervals"`
}

// WeeklySchedule maps canonical lowercase weekday names ("monday".."sunday")
// to their day configuration. Days may be missing; a missing day is closed.
type WeeklySchedule map[string]DaySchedule

// Weekdays lists the seven canonical weekday keys in calendar order.
var Weekdays = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// EngineSettings carries the per-deployment availability knobs. It is read
// from the settings store on every query so admin changes apply immediately.
type EngineSettings struct {
	SlotDurationMin  int `bson:"slotDurationMin" json:"slotDurationMin"`
	FutureWindowDays int `bson:"futureWindowDays" json:"futureWindowDays"`
}
