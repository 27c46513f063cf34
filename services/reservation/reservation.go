package reservation

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "slotserve/database/repository/appointment"
	"slotserve/models"
	"slotserve/services/slotlock"
	"slotserve/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProvisional persists a temporarily-locked appointment record. Partial
// input is tolerated: the caller may not have resolved the client (or the
// staff member, for flexible bookings) at reservation time, so sentinel
// defaults are substituted instead of failing.
func (s *DefaultReservationService) CreateProvisional(ctx context.Context, appt models.Appointment, token string) (*models.Appointment, error) {
	logger := utils.GetLogger()

	now := time.Now()
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	if appt.ClientID == "" {
		appt.ClientID = models.ClientGuest
	}
	if appt.StaffID == "" {
		appt.StaffID = models.StaffAny
	}
	if appt.TotalPrice == 0 {
		appt.TotalPrice = appt.ServiceCharge + appt.TravelCharge
	}

	ttl := s.HoldTTL
	if ttl <= 0 {
		ttl = slotlock.DefaultTTL
	}
	expiresAt := now.Add(ttl)

	appt.Status = models.StatusTempLocked
	appt.LockToken = token
	appt.LockExpiresAt = &expiresAt
	appt.CreatedAt = now
	appt.UpdatedAt = now

	// Denormalize the vendor's operating region so downstream reporting does
	// not need a join. A missing vendor is tolerated; a failed lookup is not.
	vendor, err := s.VendorRepo.GetByID(ctx, appt.VendorID)
	if err != nil {
		return nil, fmt.Errorf("vendor lookup failed for %s: %w", appt.VendorID, err)
	}
	if vendor != nil {
		appt.RegionID = vendor.RegionID
	} else {
		logger.Warn("provisional appointment for unknown vendor",
			zap.String("vendorId", appt.VendorID),
			zap.String("appointmentId", appt.ID))
	}

	if err := s.Repo.Create(ctx, &appt); err != nil {
		return nil, fmt.Errorf("failed to persist provisional appointment: %w", err)
	}

	logger.Debug("provisional appointment created",
		zap.String("appointmentId", appt.ID),
		zap.String("vendorId", appt.VendorID),
		zap.Time("holdExpiresAt", expiresAt))
	return &appt, nil
}

// Confirm promotes a provisional record to a scheduled appointment, attaching
// the payment details and clearing the lock fields. Home-service location and
// travel time set at reservation time are left untouched by the clearing step.
func (s *DefaultReservationService) Confirm(ctx context.Context, id, token string, payment models.PaymentDetails) (*models.Appointment, error) {
	logger := utils.GetLogger()

	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment %s: %w", id, err)
	}
	if appt == nil {
		return nil, ErrNotFound
	}

	if appt.LockToken != token {
		logger.Warn("confirm rejected: token mismatch", zap.String("appointmentId", id))
		return nil, ErrOwnershipMismatch
	}
	if appt.LockExpiresAt == nil || !time.Now().Before(*appt.LockExpiresAt) {
		return nil, ErrHoldExpired
	}

	status := models.StatusScheduled
	confirmedAt := time.Now()
	updated, err := s.Repo.Patch(ctx, id, appointmentRepo.AppointmentPatch{
		Status:      &status,
		Payment:     &payment,
		ConfirmedAt: &confirmedAt,
		ClearLock:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to confirm appointment %s: %w", id, err)
	}
	if updated == nil {
		// Swept between the read and the update; same outcome as an expired hold.
		return nil, ErrHoldExpired
	}

	logger.Info("appointment confirmed",
		zap.String("appointmentId", id),
		zap.String("vendorId", updated.VendorID))
	return updated, nil
}

// Cancel deletes the provisional record when the token matches. Both a missing
// record and a mismatched token return (false, nil): the former is idempotent
// cleanup, the latter must not delete a record the caller does not own.
func (s *DefaultReservationService) Cancel(ctx context.Context, id, token string) (bool, error) {
	logger := utils.GetLogger()

	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to load appointment %s: %w", id, err)
	}
	if appt == nil {
		return false, nil
	}
	if appt.LockToken != token {
		logger.Warn("cancel rejected: token mismatch", zap.String("appointmentId", id))
		return false, nil
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	logger.Debug("provisional appointment cancelled", zap.String("appointmentId", id))
	return true, nil
}
