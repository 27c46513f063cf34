package slotlock

import (
	"context"
	"time"

	"slotserve/models"
)

// DefaultTTL matches the expected maximum duration of an in-progress checkout.
const DefaultTTL = 30 * time.Minute

// LockTable is a keyed set of time-bounded mutual-exclusion entries over
// bookable slots. Acquisition is fail-fast: a held slot returns ok=false
// immediately and retry policy is the caller's concern. Contention is not an
// error; the error return is reserved for backend failures.
type LockTable interface {
	// Acquire attempts to take the slot for ttl (DefaultTTL when ttl <= 0).
	// On success it returns a fresh opaque token proving ownership.
	Acquire(ctx context.Context, key models.SlotKey, ttl time.Duration) (string, bool, error)
	// Release deletes the entry only if it is live and the token matches.
	Release(ctx context.Context, key models.SlotKey, token string) (bool, error)
	// IsValid reports whether a live entry exists for the key, regardless of owner.
	IsValid(ctx context.Context, key models.SlotKey) (bool, error)
	// SweepExpired removes expired entries and returns how many were dropped.
	// Expired entries are also detected lazily on access, so this is
	// bookkeeping rather than a correctness requirement.
	SweepExpired(ctx context.Context) (int64, error)
}
