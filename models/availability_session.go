package models

import "time"

// FetchState is the lifecycle position of one external availability session.
type FetchState string

const (
	FetchIdle    FetchState = "idle"
	FetchPolling FetchState = "polling"
	FetchSuccess FetchState = "success"
	FetchFailed  FetchState = "failed"
)

// AvailabilitySession holds context for one caller's availability lookup
// while the external busy feed is being polled. Stored in Redis under the
// session ID, mirroring how booking sessions are kept.
type AvailabilitySession struct {
	SessionID  string     `json:"sessionId"`
	ServiceKey string     `json:"serviceKey"`
	Identity   string     `json:"identity"`
	State      FetchState `json:"state"`
	Attempts   int        `json:"attempts"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// FetchNotification is the domain notification emitted exactly once per
// polling session when it reaches a terminal state.
type FetchNotification struct {
	SessionID  string `json:"sessionId"`
	ServiceKey string `json:"serviceKey"`
	Outcome    string `json:"outcome"` // "success" or "exhausted"
	Attempts   int    `json:"attempts"`
	RangeCount int    `json:"rangeCount"`
}
