package wizard

import (
	"venuelink/internal/clock"
	"venuelink/internal/models"
)

const (
	// MinNoticeDays is the minimum advance booking notice.
	MinNoticeDays = 7
	// MaxAdvanceDays is the furthest-out date a booking may target.
	MaxAdvanceDays = 90
)

// MinBookingDate is the earliest allowed event date: today plus the
// notice window.
func MinBookingDate(clk clock.Clock) models.Date {
	return models.DateOf(clk.Now()).AddDays(MinNoticeDays)
}

// MaxBookingDate is the latest allowed event date.
func MaxBookingDate(clk clock.Clock) models.Date {
	return models.DateOf(clk.Now()).AddDays(MaxAdvanceDays)
}
