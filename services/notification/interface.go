package notification

import (
	"context"

	"slotserve/models"
)

// Dispatcher sends no-show notices to the affected parties. Dispatch is
// fire-and-forget from the caller's perspective: a failure is logged and
// recorded but never reverts or fails the cancellation it accompanies.
type Dispatcher interface {
	SendClientNoShowNotice(ctx context.Context, appt models.Appointment) error
	SendVendorNoShowNotice(ctx context.Context, appt models.Appointment, vendor *models.Vendor) error
}
