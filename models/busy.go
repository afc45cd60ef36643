package models

import "time"

// BusySource identifies which collaborator produced a busy range.
type BusySource string

const (
	BusyLocal      BusySource = "local"
	BusyExternal   BusySource = "external"
	BusyAssignment BusySource = "assignment"
)

// BusyRange is a half-open interval [Start, End) during which no slot may be
// offered. Ranges are transient: built per query, never persisted here.
type BusyRange struct {
	Start  time.Time  `json:"start"`
	End    time.Time  `json:"end"`
	Source BusySource `json:"source"`
	Label  string     `json:"label,omitempty"`
}

// RawBusyRange is an unvalidated time range as delivered by a collaborator
// (reservation store rows, external feed payloads, assignment bookings).
// Timestamps are RFC3339 strings; entries that fail to parse are dropped.
type RawBusyRange struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
	Label string `bson:"label,omitempty" json:"label,omitempty"`
}

// BusyPayload is the body of a successful external feed response.
type BusyPayload struct {
	Busy []RawBusyRange `json:"busy"`
}
