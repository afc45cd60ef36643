package models

// Assignment is one staff member's availability window for one service in
// one zone on a concrete date. Owned by the assignment store; the engine
// consumes it read-only.
type Assignment struct {
	ID         string `bson:"id" json:"id"`
	StaffID    string `bson:"staffId" json:"staffId"`
	ServiceKey string `bson:"serviceKey" json:"serviceKey"`
	ZoneID     string `bson:"zoneId" json:"zoneId"`
	Date       string `bson:"date" json:"date"`           // "2006-01-02"
	StartTime  string `bson:"startTime" json:"startTime"` // "15:04"
	EndTime    string `bson:"endTime" json:"endTime"`     // "15:04"
	Capacity   int    `bson:"capacity" json:"capacity"`
}

// Window returns the assignment's own open interval, which replaces the
// weekly schedule for assignment-based services.
func (a Assignment) Window() TimeInterval {
	return TimeInterval{Start: a.StartTime, End: a.EndTime}
}
