package assignmentRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAssignmentRepo) ListDatesWithAssignments(ctx context.Context, serviceKey, from, to string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"serviceKey": serviceKey,
		"date":       bson.M{"$gte": from, "$lte": to},
	}
	raw, err := r.assignments.Distinct(ctx, "date", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment dates for %s: %w", serviceKey, err)
	}

	dates := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			dates = append(dates, s)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (r *mongoAssignmentRepo) ListAssignments(ctx context.Context, serviceKey, date string) ([]models.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"serviceKey": serviceKey, "date": date}
	cur, err := r.assignments.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for %s on %s: %w", serviceKey, date, err)
	}
	defer cur.Close(ctx)

	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode assignments for %s on %s: %w", serviceKey, date, err)
	}
	return out, nil
}

type assignmentBookingDoc struct {
	AssignmentID string `bson:"assignmentId"`
	Date         string `bson:"date"`
	Start        string `bson:"start"`
	End          string `bson:"end"`
	StaffID      string `bson:"staffId"`
}

func (r *mongoAssignmentRepo) ListBookings(ctx context.Context, assignmentIDs []string, date string) ([]models.RawBusyRange, error) {
	if len(assignmentIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"assignmentId": bson.M{"$in": assignmentIDs},
		"date":         date,
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})

	cur, err := r.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment bookings on %s: %w", date, err)
	}
	defer cur.Close(ctx)

	var docs []assignmentBookingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode assignment bookings on %s: %w", date, err)
	}

	ranges := make([]models.RawBusyRange, 0, len(docs))
	for _, d := range docs {
		ranges = append(ranges, models.RawBusyRange{
			Start: d.Start,
			End:   d.End,
			Label: d.StaffID,
		})
	}
	return ranges, nil
}
