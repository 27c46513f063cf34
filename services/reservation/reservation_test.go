package reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appointmentRepo "slotserve/database/repository/appointment"
	"slotserve/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory stand-in for the appointment repository.
type fakeAppointmentRepo struct {
	mu        sync.Mutex
	appts     map[string]models.Appointment
	createErr error
	getErr    error
	patchErr  error
	deleteErr error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: make(map[string]models.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *models.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appts[appt.ID] = *appt
	return nil
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	if !ok {
		return nil, nil
	}
	cp := appt
	return &cp, nil
}

func (f *fakeAppointmentRepo) Patch(_ context.Context, id string, patch appointmentRepo.AppointmentPatch) (*models.Appointment, error) {
	if f.patchErr != nil {
		return nil, f.patchErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	if !ok {
		return nil, nil
	}
	if patch.Status != nil {
		appt.Status = *patch.Status
	}
	if patch.Payment != nil {
		p := *patch.Payment
		appt.Payment = &p
	}
	if patch.ConfirmedAt != nil {
		ts := *patch.ConfirmedAt
		appt.ConfirmedAt = &ts
	}
	if patch.CancellationReason != nil {
		appt.CancellationReason = *patch.CancellationReason
	}
	if patch.CancelledAt != nil {
		ts := *patch.CancelledAt
		appt.CancelledAt = &ts
	}
	if patch.ClearLock {
		appt.LockToken = ""
		appt.LockExpiresAt = nil
	}
	appt.UpdatedAt = time.Now()
	f.appts[id] = appt
	cp := appt
	return &cp, nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
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

func (f *fakeAppointmentRepo) FindDueForNoShow(_ context.Context, statuses []string, latestDate string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, appt := range f.appts {
		for _, status := range statuses {
			if appt.Status == status && appt.Date <= latestDate {
				out = append(out, appt)
				break
			}
		}
	}
	return out, nil
}

type fakeVendorRepo struct {
	vendors map[string]models.Vendor
	err     error
}

func (f *fakeVendorRepo) GetByID(_ context.Context, id string) (*models.Vendor, error) {
	if f.err != nil {
		return nil, f.err
	}
	vendor, ok := f.vendors[id]
	if !ok {
		return nil, nil
	}
	cp := vendor
	return &cp, nil
}

func newService(repo *fakeAppointmentRepo, vendors *fakeVendorRepo) *DefaultReservationService {
	return &DefaultReservationService{
		Repo:       repo,
		VendorRepo: vendors,
		HoldTTL:    30 * time.Minute,
	}
}

func TestCreateProvisionalFillsDefaultsAndRegion(t *testing.T) {
	repo := newFakeAppointmentRepo()
	vendors := &fakeVendorRepo{vendors: map[string]models.Vendor{
		"vendor-1": {ID: "vendor-1", Name: "Shear Genius", RegionID: "region-9"},
	}}
	svc := newService(repo, vendors)

	appt, err := svc.CreateProvisional(context.Background(), models.Appointment{
		VendorID:      "vendor-1",
		Date:          "2025-03-10",
		StartTime:     "10:00",
		EndTime:       "10:45",
		ServiceCharge: 40,
		TravelCharge:  5,
	}, "tok-1")
	require.NoError(t, err)

	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, models.ClientGuest, appt.ClientID)
	assert.Equal(t, models.StaffAny, appt.StaffID)
	assert.Equal(t, models.StatusTempLocked, appt.Status)
	assert.Equal(t, "tok-1", appt.LockToken)
	assert.Equal(t, "region-9", appt.RegionID)
	assert.InDelta(t, 45, appt.TotalPrice, 0.001)
	require.NotNil(t, appt.LockExpiresAt)
	assert.True(t, appt.LockExpiresAt.After(time.Now()))

	stored, err := repo.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCreateProvisionalToleratesUnknownVendor(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := newService(repo, &fakeVendorRepo{vendors: map[string]models.Vendor{}})

	appt, err := svc.CreateProvisional(context.Background(), models.Appointment{
		VendorID: "ghost-vendor",
		Date:     "2025-03-10",
	}, "tok-1")
	require.NoError(t, err)
	assert.Empty(t, appt.RegionID)
}

func TestCreateProvisionalPropagatesVendorLookupFailure(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := newService(repo, &fakeVendorRepo{err: errors.New("connection reset")})

	_, err := svc.CreateProvisional(context.Background(), models.Appointment{
		VendorID: "vendor-1",
	}, "tok-1")
	require.Error(t, err)
	assert.Empty(t, repo.appts)
}

func seedProvisional(t *testing.T, repo *fakeAppointmentRepo, token string, expiresAt time.Time) models.Appointment {
	t.Helper()
	appt := models.Appointment{
		ID:                "appt-1",
		VendorID:          "vendor-1",
		StaffID:           "staff-1",
		ClientID:          "client-1",
		Date:              "2025-03-10",
		StartTime:         "10:00",
		EndTime:           "10:45",
		Status:            models.StatusTempLocked,
		LockToken:         token,
		LockExpiresAt:     &expiresAt,
		HomeService:       &models.HomeServiceLocation{Address: "12 Rose St", City: "Pune"},
		TravelTimeMinutes: 20,
	}
	require.NoError(t, repo.Create(context.Background(), &appt))
	return appt
}

func TestConfirmSuccessPreservesHomeServiceFields(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := newService(repo, &fakeVendorRepo{})
	seedProvisional(t, repo, "tok-1", time.Now().Add(10*time.Minute))

	payment := models.PaymentDetails{Method: "card", TransactionID: "txn-77", Amount: 45}
	confirmed, err := svc.Confirm(context.Background(), "appt-1", "tok-1", payment)
	require.NoError(t, err)

	assert.Equal(t, models.StatusScheduled, confirmed.Status)
	assert.Empty(t, confirmed.LockToken)
	assert.Nil(t, confirmed.LockExpiresAt)
	require.NotNil(t, confirmed.Payment)
	assert.Equal(t, "txn-77", confirmed.Payment.TransactionID)
	require.NotNil(t, confirmed.ConfirmedAt)

	// The field-clearing step must not drop home-service data set at
	// reservation time.
	require.NotNil(t, confirmed.HomeService)
	assert.Equal(t, "12 Rose St", confirmed.HomeService.Address)
	assert.Equal(t, 20, confirmed.TravelTimeMinutes)
}

func TestConfirmTokenMismatch(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := newService(repo, &fakeVendorRepo{})
	seedProvisional(t, repo, "tok-1", time.Now().Add(10*time.Minute))

	_, err := svc.Confirm(context.Background(), "appt-1", "wrong-token", models.PaymentDetails{})
	require.ErrorIs(t, err, ErrOwnershipMismatch)

	// The record must be untouched.
	stored, getErr := repo.GetByID(context.Background(), "appt-1")
	require.NoError(t, getErr)
	require.NotNil(t, stored)
	assert.Equal(t, models.StatusTempLocked, stored.Status)
	assert.Equal(t, "tok-1", stored.LockToken)
}

func TestConfirmExpiredHold(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := newService(repo, &fakeVendorRepo{})
	seedProvisional(t, repo, "tok-1", time.Now().Add(-time.Minute))

	_, err := svc.Confirm(context.Background(), "appt-1", "tok-1", models.PaymentDetails{})
	require.ErrorIs(t, err, ErrHoldExpired)
	assert.NotErrorIs(t, err, ErrOwnershipMismatch)

	// Still present and still provisional: the GC remains free to sweep it.
	stored, getErr := repo.GetByID(context.Background(), "appt-1")
	require.NoError(t, getErr)
	require.NotNil(t, stored)
	assert.Equal(t, models.StatusTempLocked, stored.Status)
}

func TestConfirmMissingRecord(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := newService(repo, &fakeVendorRepo{})

	_, err := svc.Confirm(context.Background(), "nope", "tok-1", models.PaymentDetails{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCancel(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := newService(repo, &fakeVendorRepo{})
	seedProvisional(t, repo, "tok-1", time.Now().Add(10*time.Minute))

	// Wrong token: no deletion, no error.
	ok, err := svc.Cancel(context.Background(), "appt-1", "wrong-token")
	require.NoError(t, err)
	assert.False(t, ok)
	stored, _ := repo.GetByID(context.Background(), "appt-1")
	require.NotNil(t, stored)

	// Correct token deletes.
	ok, err = svc.Cancel(context.Background(), "appt-1", "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)

	// Cancelling again is an idempotent no-op.
	ok, err = svc.Cancel(context.Background(), "appt-1", "tok-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
