package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type reservationDoc struct {
	Date    string `bson:"date"`
	Start   string `bson:"start"`
	End     string `bson:"end"`
	Status  string `bson:"status"`
	Service string `bson:"serviceKey"`
}

func (r *mongoReservationRepo) ListBusyRanges(ctx context.Context, date string) ([]models.RawBusyRange, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":   date,
		"status": bson.M{"$in": []string{"pending", "confirmed"}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations for %s: %w", date, err)
	}
	defer cur.Close(ctx)

	var docs []reservationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reservations for %s: %w", date, err)
	}

	ranges := make([]models.RawBusyRange, 0, len(docs))
	for _, d := range docs {
		ranges = append(ranges, models.RawBusyRange{
			Start: d.Start,
			End:   d.End,
			Label: d.Service,
		})
	}
	return ranges, nil
}
