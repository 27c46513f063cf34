package autocancel

import (
	"fmt"
	"time"
)

// endTimeLayouts are the wall-clock formats appointment end times arrive in.
var endTimeLayouts = []string{"15:04", "3:04 PM", "15:04:05"}

// endInstant combines an appointment's date and end-time-of-day into an
// absolute instant in the server's local zone.
func endInstant(date, endTime string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid appointment date %q: %w", date, err)
	}

	for _, layout := range endTimeLayouts {
		tod, err := time.Parse(layout, endTime)
		if err != nil {
			continue
		}
		return time.Date(day.Year(), day.Month(), day.Day(),
			tod.Hour(), tod.Minute(), tod.Second(), 0, time.Local), nil
	}
	return time.Time{}, fmt.Errorf("invalid appointment end time %q", endTime)
}
