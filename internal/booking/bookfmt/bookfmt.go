package bookfmt

import (
	"fmt"
	"strconv"
	"strings"

	"venuelink/internal/models"
)

// FormatBookingDate renders a calendar date as a human string, e.g.
// "March 15, 2026". Dates are UTC calendar dates; the output never
// shifts with the local timezone.
func FormatBookingDate(d models.Date) string {
	return d.Time().Format("January 2, 2006")
}

// FormatBookingTime renders an "HH:MM" time as 12-hour, e.g.
// "20:00" -> "8:00 PM". Unparseable input is returned unchanged.
func FormatBookingTime(t string) string {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return t
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return t
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return t
	}

	period := "AM"
	display := hours

	switch {
	case hours == 0:
		display = 12
	case hours == 12:
		period = "PM"
	case hours > 12:
		display = hours - 12
		period = "PM"
	}

	return fmt.Sprintf("%d:%02d %s", display, minutes, period)
}

// FormatCents renders a cent amount as dollars, e.g. 70000 -> "$700.00".
func FormatCents(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
