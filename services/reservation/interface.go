package reservation

import (
	"context"
	"time"

	appointmentRepo "slotserve/database/repository/appointment"
	vendorRepo "slotserve/database/repository/vendor"
	"slotserve/models"
)

// ReservationService manages the lifecycle of a provisional appointment tied
// to a slot lock token: created while checkout is in progress, then either
// confirmed into a scheduled appointment or cancelled/expired away.
type ReservationService interface {
	// CreateProvisional persists a temporarily-locked appointment carrying the
	// given lock token, substituting sentinel defaults for identities the
	// caller has not resolved yet.
	CreateProvisional(ctx context.Context, appt models.Appointment, token string) (*models.Appointment, error)
	// Confirm promotes the provisional record to a scheduled appointment.
	// Fails with ErrOwnershipMismatch, ErrHoldExpired or ErrNotFound.
	Confirm(ctx context.Context, id, token string, payment models.PaymentDetails) (*models.Appointment, error)
	// Cancel deletes the provisional record if the token matches. A missing
	// record or a mismatched token returns false without error, so cleanup
	// after a prior failure is an idempotent no-op. The corresponding lock
	// table entry is NOT released here; that is a separate caller step.
	Cancel(ctx context.Context, id, token string) (bool, error)
}

// DefaultReservationService is the production implementation.
type DefaultReservationService struct {
	Repo       appointmentRepo.AppointmentRepository
	VendorRepo vendorRepo.VendorRepository
	// HoldTTL mirrors the slot lock TTL onto the provisional record's expiry.
	HoldTTL time.Duration
}
