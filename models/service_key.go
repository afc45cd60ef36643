package models

import "strings"

// ServiceKind distinguishes the two resolution paths for a service.
type ServiceKind int

const (
	// ServiceInvalid is the zero value: an empty or unusable key.
	ServiceInvalid ServiceKind = iota
	// ServiceFixed resolves availability from the weekly schedule.
	ServiceFixed
	// ServiceAssignment resolves availability from staff assignments.
	ServiceAssignment
)

// AssignmentKeyPrefix marks service identifiers that book against staff
// assignments instead of the fixed weekly schedule.
const AssignmentKeyPrefix = "staff:"

// ServiceKey is the decoded form of a service identifier. The raw string is
// inspected exactly once, at ParseServiceKey; everything downstream switches
// on Kind.
type ServiceKey struct {
	Raw  string
	Kind ServiceKind
}

// ParseServiceKey decodes a raw service identifier into its tagged form.
// An empty or whitespace-only identifier yields ServiceInvalid rather than
// an error: availability queries on bad keys degrade to "nothing available".
func ParseServiceKey(raw string) ServiceKey {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ServiceKey{}
	}
	if strings.HasPrefix(raw, AssignmentKeyPrefix) {
		return ServiceKey{Raw: raw, Kind: ServiceAssignment}
	}
	return ServiceKey{Raw: raw, Kind: ServiceFixed}
}

// Valid reports whether the key decoded to a usable service identifier.
func (k ServiceKey) Valid() bool {
	return k.Kind != ServiceInvalid
}

func (k ServiceKey) String() string {
	return k.Raw
}
