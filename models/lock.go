package models

import (
	"fmt"
	"time"
)

// SlotKey identifies a bookable unit of time: a vendor, a staff member (or
// StaffAny), a date and a slot start time. When StaffID is StaffAny the key is
// scoped to vendor+date+time only, so flexible-staff bookings for the same
// wall-clock slot still serialize against each other.
type SlotKey struct {
	VendorID string `json:"vendorId"`
	StaffID  string `json:"staffId"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
}

// String renders the composite lock key.
func (k SlotKey) String() string {
	if k.StaffID == "" || k.StaffID == StaffAny {
		return fmt.Sprintf("slotlock:%s:%s:%s", k.VendorID, k.Date, k.TimeSlot)
	}
	return fmt.Sprintf("slotlock:%s:%s:%s:%s", k.VendorID, k.StaffID, k.Date, k.TimeSlot)
}

// SlotLock is a live lock table entry. The token is the ownership credential;
// the slot fields are denormalized for diagnostics only.
type SlotLock struct {
	Token     string    `json:"token"`
	VendorID  string    `json:"vendorId"`
	StaffID   string    `json:"staffId"`
	Date      string    `json:"date"`
	TimeSlot  string    `json:"timeSlot"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the entry is past its expiration at the given instant.
func (l *SlotLock) Expired(now time.Time) bool {
	return !now.Before(l.ExpiresAt)
}
