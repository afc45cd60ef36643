// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReservationRepository exposes the local reservation store to the engine.
// The engine only reads busy time from it; writes belong to the booking path.
type ReservationRepository interface {
	// ListBusyRanges returns the raw time ranges of confirmed reservations
	// on the given date ("2006-01-02").
	ListBusyRanges(ctx context.Context, date string) ([]models.RawBusyRange, error)
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	return &mongoReservationRepo{
		coll: database.DB().Collection("reservations"),
	}
}
