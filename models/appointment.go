package models

import "time"

// Appointment statuses managed by this service. An appointment is created as
// StatusTempLocked while checkout is in progress, promoted to StatusScheduled on
// confirmation, and may end up StatusNoShow if it is never attended.
const (
	StatusTempLocked = "temporarily-locked"
	StatusScheduled  = "scheduled"
	StatusConfirmed  = "confirmed"
	StatusNoShow     = "no-show"
)

// Sentinel identities substituted when the caller has not resolved them yet.
const (
	StaffAny    = "any"   // booking is not pinned to a specific staff member
	ClientGuest = "guest" // client identity not linked at reservation time
)

// HomeServiceLocation is where a home-service appointment takes place.
type HomeServiceLocation struct {
	Address string  `bson:"address" json:"address"`
	City    string  `bson:"city,omitempty" json:"city,omitempty"`
	Pincode string  `bson:"pincode,omitempty" json:"pincode,omitempty"`
	Lat     float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng     float64 `bson:"lng,omitempty" json:"lng,omitempty"`
}

// PaymentDetails carries the confirmation data of an out-of-band payment.
// This service never processes payments; it only persists what the payment
// flow reports back at confirmation time.
type PaymentDetails struct {
	Method        string    `bson:"method" json:"method"` // e.g. "card", "upi", "cash"
	TransactionID string    `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	Amount        float64   `bson:"amount" json:"amount"`
	Currency      string    `bson:"currency,omitempty" json:"currency,omitempty"`
	PaidAt        time.Time `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
}

// Appointment is the persisted record for the whole booking lifecycle. While
// provisional (StatusTempLocked) it carries the lock token and expiry of its
// originating slot lock; both are cleared when the booking is confirmed.
type Appointment struct {
	ID        string `bson:"id" json:"id"`
	VendorID  string `bson:"vendor_id" json:"vendorId"`
	StaffID   string `bson:"staff_id" json:"staffId"`   // StaffAny when flexible
	ClientID  string `bson:"client_id" json:"clientId"` // ClientGuest when unlinked
	ServiceID string `bson:"service_id,omitempty" json:"serviceId,omitempty"`
	Service   string `bson:"service,omitempty" json:"service,omitempty"`

	Date      string `bson:"date" json:"date"`             // "2006-01-02"
	StartTime string `bson:"start_time" json:"startTime"`  // "15:04" or "3:04 PM"
	EndTime   string `bson:"end_time" json:"endTime"`

	ServiceCharge float64 `bson:"service_charge" json:"serviceCharge"`
	TravelCharge  float64 `bson:"travel_charge,omitempty" json:"travelCharge,omitempty"`
	TotalPrice    float64 `bson:"total_price" json:"totalPrice"`

	HomeService         *HomeServiceLocation `bson:"home_service,omitempty" json:"homeService,omitempty"`
	TravelTimeMinutes   int                  `bson:"travel_time_minutes,omitempty" json:"travelTimeMinutes,omitempty"`
	PackageID           string               `bson:"package_id,omitempty" json:"packageId,omitempty"`

	// Denormalized from the vendor record at reservation time so reporting
	// does not need a join.
	RegionID string `bson:"region_id,omitempty" json:"regionId,omitempty"`

	Status        string     `bson:"status" json:"status"`
	LockToken     string     `bson:"lock_token,omitempty" json:"lockToken,omitempty"`
	LockExpiresAt *time.Time `bson:"lock_expires_at,omitempty" json:"lockExpiresAt,omitempty"`

	Payment     *PaymentDetails `bson:"payment,omitempty" json:"payment,omitempty"`
	ConfirmedAt *time.Time      `bson:"confirmed_at,omitempty" json:"confirmedAt,omitempty"`

	CancellationReason string     `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
