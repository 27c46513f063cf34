package scheduler

import (
	"context"
	"fmt"

	"slotserve/config"
	"slotserve/services/autocancel"
	"slotserve/services/cleanup"
)

// Job names in the static table.
const (
	JobGarbageCollect = "garbage-collect"
	JobReconcile      = "reconcile"
	JobAutoCancel     = "auto-cancel"
)

// BuildJobs assembles the static job table from the configured intervals.
func BuildJobs(gc *cleanup.GarbageCollector, rec *cleanup.Reconciler, sweeper *autocancel.Sweeper, cfg config.Config) []*Job {
	return []*Job{
		{
			Name:     JobGarbageCollect,
			Schedule: fmt.Sprintf("@every %dm", cfg.GCIntervalMinutes),
			Enabled:  true,
			Run: func(ctx context.Context) (interface{}, error) {
				return gc.SweepExpired(ctx)
			},
		},
		{
			Name:     JobReconcile,
			Schedule: fmt.Sprintf("@every %dm", cfg.ReconcileIntervalMinutes),
			Enabled:  true,
			Run: func(ctx context.Context) (interface{}, error) {
				return rec.Reconcile(ctx)
			},
		},
		{
			Name:     JobAutoCancel,
			Schedule: fmt.Sprintf("@every %dm", cfg.AutoCancelIntervalMinutes),
			Enabled:  true,
			Params: JobParams{
				GracePeriodMinutes: cfg.AutoCancelGraceMinutes,
				NotifyClients:      cfg.NotifyClientsOnNoShow,
				NotifyVendors:      cfg.NotifyVendorsOnNoShow,
			},
			Run: func(ctx context.Context) (interface{}, error) {
				return sweeper.Sweep(ctx, autocancel.SweepOptions{
					GracePeriod:   cfg.AutoCancelGrace(),
					NotifyClients: cfg.NotifyClientsOnNoShow,
					NotifyVendors: cfg.NotifyVendorsOnNoShow,
				})
			},
		},
	}
}
