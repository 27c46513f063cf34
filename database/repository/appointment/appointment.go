package appointmentRepo

import (
	"context"
	"time"

	"slotserve/database"
	"slotserve/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentPatch is a partial update applied to one appointment document.
// Nil fields are left untouched; ClearLock removes the lock token and expiry
// (and only those two fields) from the document.
type AppointmentPatch struct {
	Status             *string
	Payment            *models.PaymentDetails
	ConfirmedAt        *time.Time
	CancellationReason *string
	CancelledAt        *time.Time
	ClearLock          bool
}

// AppointmentRepository defines the persistence contract for appointment records.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	// GetByID returns (nil, nil) when no document matches.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// Patch applies the partial update and returns the updated document,
	// or (nil, nil) when no document matches.
	Patch(ctx context.Context, id string, patch AppointmentPatch) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpiredProvisional removes every record still in
	// models.StatusTempLocked whose lock expiry is before the given instant.
	DeleteExpiredProvisional(ctx context.Context, before time.Time) (int64, error)
	// FindDueForNoShow returns appointments whose status is in the given set
	// and whose date is on or before latestDate ("2006-01-02"). This is a
	// coarse pre-filter; the caller applies the end-time + grace check.
	FindDueForNoShow(ctx context.Context, statuses []string, latestDate string) ([]models.Appointment, error)
}

// MongoAppointmentRepo is the MongoDB-backed implementation.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo builds a repository over the appointments collection.
func NewMongoAppointmentRepo() *MongoAppointmentRepo {
	return &MongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
}
