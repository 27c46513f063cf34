package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new appointment document.
func (repo *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctxWithTimeout, appt)
	if err != nil {
		return fmt.Errorf("error creating appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its ID, returning (nil, nil) when absent.
func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

// Patch applies a partial update and returns the updated document, or
// (nil, nil) when no document matches.
func (repo *MongoAppointmentRepo) Patch(ctx context.Context, id string, patch AppointmentPatch) (*models.Appointment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Payment != nil {
		set["payment"] = *patch.Payment
	}
	if patch.ConfirmedAt != nil {
		set["confirmed_at"] = *patch.ConfirmedAt
	}
	if patch.CancellationReason != nil {
		set["cancellation_reason"] = *patch.CancellationReason
	}
	if patch.CancelledAt != nil {
		set["cancelled_at"] = *patch.CancelledAt
	}

	update := bson.M{"$set": set}
	if patch.ClearLock {
		update["$unset"] = bson.M{"lock_token": "", "lock_expires_at": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Appointment
	err := repo.coll.FindOneAndUpdate(ctxWithTimeout, bson.M{"id": id}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error updating appointment %s: %w", id, err)
	}
	return &updated, nil
}

// Delete removes an appointment document.
func (repo *MongoAppointmentRepo) Delete(ctx context.Context, id string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.DeleteOne(ctxWithTimeout, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting appointment %s: %w", id, err)
	}
	return nil
}
