package notification

import (
	"context"
	"fmt"

	"slotserve/models"
	"slotserve/services/tasks"

	"github.com/hibiken/asynq"
)

// QueueDispatcher enqueues no-show notices onto the Redis-backed task queue.
// The worker in cron/ consumes them; delivery is decoupled from the sweep
// that produced the notice.
type QueueDispatcher struct {
	Client *asynq.Client
}

// NewQueueDispatcher builds a dispatcher over the given asynq client.
func NewQueueDispatcher(client *asynq.Client) *QueueDispatcher {
	return &QueueDispatcher{Client: client}
}

// SendClientNoShowNotice queues a notice addressed to the appointment's client.
func (d *QueueDispatcher) SendClientNoShowNotice(ctx context.Context, appt models.Appointment) error {
	payload := models.NoShowNoticePayload{
		Target:        "client",
		AppointmentID: appt.ID,
		ClientID:      appt.ClientID,
		VendorID:      appt.VendorID,
		Service:       appt.Service,
		Date:          appt.Date,
		StartTime:     appt.StartTime,
		Reason:        appt.CancellationReason,
	}
	return d.enqueue(ctx, payload)
}

// SendVendorNoShowNotice queues a notice addressed to the vendor.
func (d *QueueDispatcher) SendVendorNoShowNotice(ctx context.Context, appt models.Appointment, vendor *models.Vendor) error {
	payload := models.NoShowNoticePayload{
		Target:        "vendor",
		AppointmentID: appt.ID,
		ClientID:      appt.ClientID,
		VendorID:      appt.VendorID,
		Service:       appt.Service,
		Date:          appt.Date,
		StartTime:     appt.StartTime,
		Reason:        appt.CancellationReason,
	}
	if vendor != nil {
		payload.VendorName = vendor.Name
	}
	return d.enqueue(ctx, payload)
}

func (d *QueueDispatcher) enqueue(ctx context.Context, payload models.NoShowNoticePayload) error {
	task, opts, err := tasks.NewNoShowNoticeTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build no-show notice task: %w", err)
	}
	if _, err := d.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue no-show notice: %w", err)
	}
	return nil
}
