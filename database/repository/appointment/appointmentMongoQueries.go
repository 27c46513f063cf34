package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"slotserve/models"

	"go.mongodb.org/mongo-driver/bson"
)

// DeleteExpiredProvisional removes provisional records whose lock expiry has
// passed. Records without a lock expiry are never matched.
func (repo *MongoAppointmentRepo) DeleteExpiredProvisional(ctx context.Context, before time.Time) (int64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":          models.StatusTempLocked,
		"lock_expires_at": bson.M{"$lt": before},
	}
	res, err := repo.coll.DeleteMany(ctxWithTimeout, filter)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired provisional appointments: %w", err)
	}
	return res.DeletedCount, nil
}

// FindDueForNoShow returns confirmed appointments that may be overdue: status
// in the given set and date on or before latestDate.
func (repo *MongoAppointmentRepo) FindDueForNoShow(ctx context.Context, statuses []string, latestDate string) ([]models.Appointment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status": bson.M{"$in": statuses},
		"date":   bson.M{"$lte": latestDate},
	}
	cursor, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying overdue appointments: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var appts []models.Appointment
	if err := cursor.All(ctxWithTimeout, &appts); err != nil {
		return nil, fmt.Errorf("error decoding overdue appointments: %w", err)
	}
	return appts, nil
}
