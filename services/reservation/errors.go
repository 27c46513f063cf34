package reservation

import "errors"

// Confirm must let callers tell a stale/tampered token apart from a normal
// expiry race: the first is a client bug, the second should just prompt the
// user to pick a slot again.
var (
	// ErrOwnershipMismatch means the supplied token does not match the token
	// stored on the provisional record.
	ErrOwnershipMismatch = errors.New("reservation token mismatch")
	// ErrHoldExpired means the provisional record's hold lapsed before confirmation.
	ErrHoldExpired = errors.New("reservation hold expired")
	// ErrNotFound means no appointment record exists for the given ID.
	ErrNotFound = errors.New("appointment not found")
)
