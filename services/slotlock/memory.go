package slotlock

import (
	"context"
	"sync"
	"time"

	"slotserve/models"

	"github.com/google/uuid"
)

// MemoryLockTable keeps lock entries in process memory behind a mutex. It is
// correct for a single running instance; deployments with multiple replicas
// must use the Redis backend instead.
type MemoryLockTable struct {
	mu      sync.Mutex
	entries map[string]*models.SlotLock
	now     func() time.Time
}

// NewMemoryLockTable builds an empty in-memory lock table.
func NewMemoryLockTable() *MemoryLockTable {
	return &MemoryLockTable{
		entries: make(map[string]*models.SlotLock),
		now:     time.Now,
	}
}

// Acquire takes the slot if no live entry exists for its key. An expired entry
// is overwritten. The check-then-set runs under the table mutex so exactly one
// of any set of concurrent callers succeeds.
func (t *MemoryLockTable) Acquire(_ context.Context, key models.SlotKey, ttl time.Duration) (string, bool, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if existing, ok := t.entries[key.String()]; ok && !existing.Expired(now) {
		return "", false, nil
	}

	entry := &models.SlotLock{
		Token:     uuid.New().String(),
		VendorID:  key.VendorID,
		StaffID:   key.StaffID,
		Date:      key.Date,
		TimeSlot:  key.TimeSlot,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	t.entries[key.String()] = entry
	return entry.Token, true, nil
}

// Release deletes the entry only when it is still live and the token matches,
// so a caller whose lock already expired and was reissued cannot release the
// new owner's lock.
func (t *MemoryLockTable) Release(_ context.Context, key models.SlotKey, token string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[key.String()]
	if !ok || entry.Expired(t.now()) || entry.Token != token {
		return false, nil
	}
	delete(t.entries, key.String())
	return true, nil
}

// IsValid reports whether a live entry exists for the key.
func (t *MemoryLockTable) IsValid(_ context.Context, key models.SlotKey) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[key.String()]
	return ok && !entry.Expired(t.now()), nil
}

// SweepExpired drops every entry past its expiration.
func (t *MemoryLockTable) SweepExpired(_ context.Context) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	var removed int64
	for k, entry := range t.entries {
		if entry.Expired(now) {
			delete(t.entries, k)
			removed++
		}
	}
	return removed, nil
}
