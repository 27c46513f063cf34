package models

// NoShowNoticePayload is the queued payload for a no-show notification task.
type NoShowNoticePayload struct {
	Target        string `json:"target"` // "client" or "vendor"
	AppointmentID string `json:"appointmentId"`
	ClientID      string `json:"clientId,omitempty"`
	VendorID      string `json:"vendorId"`
	VendorName    string `json:"vendorName,omitempty"`
	Service       string `json:"service,omitempty"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	Reason        string `json:"reason"`
}
