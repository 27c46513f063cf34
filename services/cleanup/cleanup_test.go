package cleanup

import (
	"context"
	"sync"
	"testing"
	"time"

	appointmentRepo "slotserve/database/repository/appointment"
	"slotserve/models"
	"slotserve/services/slotlock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppointmentRepo struct {
	mu    sync.Mutex
	appts map[string]models.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: make(map[string]models.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appts[appt.ID] = *appt
	return nil
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	if !ok {
		return nil, nil
	}
	cp := appt
	return &cp, nil
}

func (f *fakeAppointmentRepo) Patch(_ context.Context, id string, _ appointmentRepo.AppointmentPatch) (*models.Appointment, error) {
	return f.GetByID(context.Background(), id)
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.appts, id)
	return nil
}

func (f *fakeAppointmentRepo) DeleteExpiredProvisional(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for id, appt := range f.appts {
		if appt.Status == models.StatusTempLocked && appt.LockExpiresAt != nil && appt.LockExpiresAt.Before(before) {
			delete(f.appts, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeAppointmentRepo) FindDueForNoShow(_ context.Context, _ []string, _ string) ([]models.Appointment, error) {
	return nil, nil
}

func seedRecord(repo *fakeAppointmentRepo, id, status string, lockExpiresAt time.Time) {
	expiry := lockExpiresAt
	repo.appts[id] = models.Appointment{
		ID:            id,
		VendorID:      "vendor-1",
		Status:        status,
		LockExpiresAt: &expiry,
	}
}

func TestGCSweepsExpiredLocksAndRecords(t *testing.T) {
	repo := newFakeAppointmentRepo()
	locks := slotlock.NewMemoryLockTable()
	gc := &GarbageCollector{Locks: locks, Repo: repo}
	ctx := context.Background()

	// One lock that dies immediately, one that outlives the sweep.
	_, ok, err := locks.Acquire(ctx, models.SlotKey{VendorID: "v1", Date: "2025-03-10", TimeSlot: "10:00 AM"}, time.Nanosecond)
	require.NoError(t, err)
	require.True(t, ok)
	liveKey := models.SlotKey{VendorID: "v1", Date: "2025-03-10", TimeSlot: "11:00 AM"}
	_, ok, err = locks.Acquire(ctx, liveKey, time.Hour)
	require.NoError(t, err)
	require.True(t, ok)

	seedRecord(repo, "expired-prov", models.StatusTempLocked, time.Now().Add(-time.Minute))
	seedRecord(repo, "live-prov", models.StatusTempLocked, time.Now().Add(time.Hour))
	seedRecord(repo, "confirmed", models.StatusScheduled, time.Now().Add(-time.Hour))

	time.Sleep(time.Millisecond) // let the nanosecond lock expire

	result, err := gc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ExpiredLocks)
	assert.Equal(t, int64(1), result.ExpiredRecords)

	// Entries with a future expiry are never touched.
	valid, err := locks.IsValid(ctx, liveKey)
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Contains(t, repo.appts, "live-prov")

	// Non-provisional records are not the GC's business.
	assert.Contains(t, repo.appts, "confirmed")
	assert.NotContains(t, repo.appts, "expired-prov")
}

func TestReconcilerRemovesOrphansAndIsIdempotent(t *testing.T) {
	repo := newFakeAppointmentRepo()
	rec := &Reconciler{Repo: repo}
	ctx := context.Background()

	seedRecord(repo, "orphan-1", models.StatusTempLocked, time.Now().Add(-time.Hour))
	seedRecord(repo, "orphan-2", models.StatusTempLocked, time.Now().Add(-time.Minute))
	seedRecord(repo, "live", models.StatusTempLocked, time.Now().Add(time.Hour))

	result, err := rec.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Reconciled)
	assert.Contains(t, repo.appts, "live")

	// A redundant run (e.g. overlapping with the GC) finds nothing to do.
	result, err = rec.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Reconciled)
}

func TestGCAndReconcilerOverlapSafely(t *testing.T) {
	repo := newFakeAppointmentRepo()
	locks := slotlock.NewMemoryLockTable()
	gc := &GarbageCollector{Locks: locks, Repo: repo}
	rec := &Reconciler{Repo: repo}
	ctx := context.Background()

	seedRecord(repo, "orphan", models.StatusTempLocked, time.Now().Add(-time.Minute))

	gcResult, err := gc.SweepExpired(ctx)
	require.NoError(t, err)
	recResult, err := rec.Reconcile(ctx)
	require.NoError(t, err)

	// Whichever ran first deleted the orphan; the other saw nothing.
	assert.Equal(t, int64(1), gcResult.ExpiredRecords+recResult.Reconciled)
}
