package autocancel

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "slotserve/database/repository/appointment"
	vendorRepo "slotserve/database/repository/vendor"
	"slotserve/models"
	"slotserve/services/notification"
	"slotserve/utils"

	"go.uber.org/zap"
)

// DefaultGracePeriod is how long past its scheduled end an appointment may run
// before it is eligible for no-show cancellation.
const DefaultGracePeriod = 15 * time.Minute

// SweepOptions controls one auto-cancellation pass.
type SweepOptions struct {
	GracePeriod   time.Duration `json:"gracePeriod"`
	NotifyClients bool          `json:"notifyClients"`
	NotifyVendors bool          `json:"notifyVendors"`
	// DryRun returns the matching set without mutating anything.
	DryRun bool `json:"dryRun"`
}

// SweepFailure records one candidate that could not be transitioned.
type SweepFailure struct {
	AppointmentID string `json:"appointmentId"`
	Reason        string `json:"reason"`
}

// SweepResult reports one auto-cancellation pass.
type SweepResult struct {
	Cancelled []string       `json:"cancelled"`
	Failed    []SweepFailure `json:"failed"`
	Notified  []string       `json:"notified"`
	DryRun    bool           `json:"dryRun"`
}

// Sweeper transitions confirmed appointments that ran past their scheduled end
// without completion into the terminal no-show state.
type Sweeper struct {
	Repo       appointmentRepo.AppointmentRepository
	VendorRepo vendorRepo.VendorRepository
	Dispatcher notification.Dispatcher

	now func() time.Time
}

// NewSweeper builds a sweeper over the given collaborators.
func NewSweeper(repo appointmentRepo.AppointmentRepository, vendors vendorRepo.VendorRepository, dispatcher notification.Dispatcher) *Sweeper {
	return &Sweeper{Repo: repo, VendorRepo: vendors, Dispatcher: dispatcher, now: time.Now}
}

// Sweep scans appointments still scheduled/confirmed with a date of today or
// earlier and cancels each one whose end instant plus grace period has passed.
// Every candidate is handled independently: one store failure is recorded and
// does not abort the rest, and notification failures never revert a
// cancellation.
func (s *Sweeper) Sweep(ctx context.Context, opts SweepOptions) (SweepResult, error) {
	logger := utils.GetLogger()
	result := SweepResult{DryRun: opts.DryRun}

	grace := opts.GracePeriod
	if grace <= 0 {
		grace = DefaultGracePeriod
	}

	nowFn := s.now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()

	candidates, err := s.Repo.FindDueForNoShow(ctx,
		[]string{models.StatusScheduled, models.StatusConfirmed},
		now.Format("2006-01-02"))
	if err != nil {
		return result, fmt.Errorf("no-show candidate query failed: %w", err)
	}

	for _, appt := range candidates {
		end, err := endInstant(appt.Date, appt.EndTime)
		if err != nil {
			logger.Debug("skipping appointment with unparseable end time",
				zap.String("appointmentId", appt.ID),
				zap.String("endTime", appt.EndTime))
			continue
		}
		if !end.Add(grace).Before(now) {
			continue // still inside the grace window
		}

		if opts.DryRun {
			result.Cancelled = append(result.Cancelled, appt.ID)
			continue
		}

		status := models.StatusNoShow
		reason := fmt.Sprintf("Automatically cancelled: appointment ended at %s on %s and was not completed within the %d minute grace period",
			appt.EndTime, appt.Date, int(grace.Minutes()))
		cancelledAt := nowFn()

		updated, err := s.Repo.Patch(ctx, appt.ID, appointmentRepo.AppointmentPatch{
			Status:             &status,
			CancellationReason: &reason,
			CancelledAt:        &cancelledAt,
		})
		if err != nil {
			result.Failed = append(result.Failed, SweepFailure{AppointmentID: appt.ID, Reason: err.Error()})
			logger.Error("failed to mark appointment as no-show",
				zap.String("appointmentId", appt.ID), zap.Error(err))
			continue
		}
		if updated == nil {
			result.Failed = append(result.Failed, SweepFailure{AppointmentID: appt.ID, Reason: "record disappeared during sweep"})
			continue
		}
		result.Cancelled = append(result.Cancelled, appt.ID)

		s.notify(ctx, *updated, opts, &result)
	}

	if len(result.Cancelled) > 0 || len(result.Failed) > 0 {
		logger.Info("auto-cancellation sweep complete",
			zap.Int("cancelled", len(result.Cancelled)),
			zap.Int("failed", len(result.Failed)),
			zap.Int("notified", len(result.Notified)),
			zap.Bool("dryRun", opts.DryRun))
	}
	return result, nil
}

// notify dispatches best-effort notices for one cancelled appointment.
func (s *Sweeper) notify(ctx context.Context, appt models.Appointment, opts SweepOptions, result *SweepResult) {
	if s.Dispatcher == nil {
		return
	}
	logger := utils.GetLogger()

	if opts.NotifyClients {
		if err := s.Dispatcher.SendClientNoShowNotice(ctx, appt); err != nil {
			logger.Warn("failed to send client no-show notice",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		} else {
			result.Notified = append(result.Notified, "client:"+appt.ID)
		}
	}

	if opts.NotifyVendors {
		vendor, err := s.VendorRepo.GetByID(ctx, appt.VendorID)
		if err != nil {
			logger.Warn("vendor lookup failed for no-show notice",
				zap.String("vendorId", appt.VendorID), zap.Error(err))
			return
		}
		if err := s.Dispatcher.SendVendorNoShowNotice(ctx, appt, vendor); err != nil {
			logger.Warn("failed to send vendor no-show notice",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		} else {
			result.Notified = append(result.Notified, "vendor:"+appt.ID)
		}
	}
}
