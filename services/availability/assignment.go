package availability

import (
	"context"

	assignmentRepo "slotwise/database/repository/assignment"
	"slotwise/models"

	"go.uber.org/zap"
)

// AssignmentResolver answers availability questions for assignment-based
// services. Every operation is total: an empty or non-assignment service key
// and any store failure degrade to an empty result so a caller's day-by-day
// loop never partial-fails.
type AssignmentResolver interface {
	// DatesWithAssignments returns the dates in [from, to] ("2006-01-02",
	// inclusive) that have at least one active assignment for the service.
	DatesWithAssignments(ctx context.Context, key models.ServiceKey, from, to string) map[string]bool

	// AssignmentsFor returns all assignments for the service on the date,
	// in no specified order.
	AssignmentsFor(ctx context.Context, key models.ServiceKey, date string) []models.Assignment

	// BusyRangesFor returns the bookings already consuming capacity on the
	// given assignments for the date, normalized.
	BusyRangesFor(ctx context.Context, assignmentIDs []string, date string) []models.BusyRange
}

// DefaultAssignmentResolver is the store-backed implementation.
type DefaultAssignmentResolver struct {
	Repo   assignmentRepo.AssignmentRepository
	Logger *zap.Logger
}

func (r *DefaultAssignmentResolver) DatesWithAssignments(ctx context.Context, key models.ServiceKey, from, to string) map[string]bool {
	if key.Kind != models.ServiceAssignment {
		return map[string]bool{}
	}

	dates, err := r.Repo.ListDatesWithAssignments(ctx, key.Raw, from, to)
	if err != nil {
		r.Logger.Error("failed to resolve assignment dates",
			zap.String("serviceKey", key.Raw), zap.Error(err))
		return map[string]bool{}
	}

	out := make(map[string]bool, len(dates))
	for _, d := range dates {
		out[d] = true
	}
	return out
}

func (r *DefaultAssignmentResolver) AssignmentsFor(ctx context.Context, key models.ServiceKey, date string) []models.Assignment {
	if key.Kind != models.ServiceAssignment || date == "" {
		return nil
	}

	assignments, err := r.Repo.ListAssignments(ctx, key.Raw, date)
	if err != nil {
		r.Logger.Error("failed to list assignments",
			zap.String("serviceKey", key.Raw), zap.String("date", date), zap.Error(err))
		return nil
	}
	return assignments
}

func (r *DefaultAssignmentResolver) BusyRangesFor(ctx context.Context, assignmentIDs []string, date string) []models.BusyRange {
	if len(assignmentIDs) == 0 || date == "" {
		return nil
	}

	raw, err := r.Repo.ListBookings(ctx, assignmentIDs, date)
	if err != nil {
		r.Logger.Error("failed to list assignment bookings",
			zap.String("date", date), zap.Error(err))
		return nil
	}
	return NormalizeBusyRanges(raw, models.BusyAssignment)
}
