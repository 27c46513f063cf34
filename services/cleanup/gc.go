package cleanup

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "slotserve/database/repository/appointment"
	"slotserve/services/slotlock"
	"slotserve/utils"

	"go.uber.org/zap"
)

// GCResult reports one garbage collection pass.
type GCResult struct {
	ExpiredLocks   int64 `json:"expiredLocks"`
	ExpiredRecords int64 `json:"expiredRecords"`
}

// GarbageCollector sweeps expired lock table entries and orphaned provisional
// appointment records. The two sweeps are independent: a lock can expire
// before its record is swept and vice versa, so neither implies the other.
type GarbageCollector struct {
	Locks slotlock.LockTable
	Repo  appointmentRepo.AppointmentRepository
}

// SweepExpired runs both sweeps in one pass. A lock sweep failure does not
// prevent the record sweep from running; errors are joined into the return.
func (gc *GarbageCollector) SweepExpired(ctx context.Context) (GCResult, error) {
	logger := utils.GetLogger()
	var result GCResult

	expiredLocks, lockErr := gc.Locks.SweepExpired(ctx)
	result.ExpiredLocks = expiredLocks

	expiredRecords, recErr := gc.Repo.DeleteExpiredProvisional(ctx, time.Now())
	result.ExpiredRecords = expiredRecords

	if lockErr != nil {
		return result, fmt.Errorf("lock sweep failed: %w", lockErr)
	}
	if recErr != nil {
		return result, fmt.Errorf("provisional record sweep failed: %w", recErr)
	}

	if result.ExpiredLocks > 0 || result.ExpiredRecords > 0 {
		logger.Info("garbage collection pass complete",
			zap.Int64("expiredLocks", result.ExpiredLocks),
			zap.Int64("expiredRecords", result.ExpiredRecords))
	}
	return result, nil
}
