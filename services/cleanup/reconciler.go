package cleanup

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "slotserve/database/repository/appointment"
	"slotserve/utils"

	"go.uber.org/zap"
)

// ReconcileResult reports one reconciliation pass.
type ReconcileResult struct {
	Reconciled int64 `json:"reconciled"`
}

// Reconciler removes provisional records whose hold has lapsed. It repeats the
// garbage collector's record sweep on its own schedule to catch anything the
// GC missed through timing skew or a skipped run; running both redundantly is
// safe because deleting an already-deleted record is a no-op.
type Reconciler struct {
	Repo appointmentRepo.AppointmentRepository
}

// Reconcile deletes all expired provisional records in a single batch.
func (r *Reconciler) Reconcile(ctx context.Context) (ReconcileResult, error) {
	logger := utils.GetLogger()

	deleted, err := r.Repo.DeleteExpiredProvisional(ctx, time.Now())
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("reconciliation sweep failed: %w", err)
	}

	if deleted > 0 {
		logger.Info("reconciled orphaned provisional appointments",
			zap.Int64("reconciled", deleted))
	}
	return ReconcileResult{Reconciled: deleted}, nil
}
