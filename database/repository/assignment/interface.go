// File: database/repository/assignment/interface.go
package assignmentRepo

import (
	"context"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AssignmentRepository exposes the staff/zone assignment store. The engine
// consumes assignments and their bookings read-only.
type AssignmentRepository interface {
	// ListDatesWithAssignments returns the distinct dates in [from, to]
	// (inclusive, "2006-01-02") that have at least one assignment for the
	// given service key.
	ListDatesWithAssignments(ctx context.Context, serviceKey, from, to string) ([]string, error)

	// ListAssignments returns all assignments for the service on the date,
	// in no particular order.
	ListAssignments(ctx context.Context, serviceKey, date string) ([]models.Assignment, error)

	// ListBookings returns the raw time ranges already booked against the
	// given assignments on the date.
	ListBookings(ctx context.Context, assignmentIDs []string, date string) ([]models.RawBusyRange, error)
}

type mongoAssignmentRepo struct {
	assignments *mongo.Collection
	bookings    *mongo.Collection
}

// NewMongoAssignmentRepo constructs a new MongoDB AssignmentRepository.
func NewMongoAssignmentRepo() AssignmentRepository {
	db := database.DB()
	return &mongoAssignmentRepo{
		assignments: db.Collection("assignments"),
		bookings:    db.Collection("assignment_bookings"),
	}
}
