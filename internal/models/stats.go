package models

// VenueStats is the admin dashboard snapshot, recomputed server-side.
// The client never mutates it.
type VenueStats struct {
	BookingsThisMonth int      `json:"bookings_this_month"`
	RevenueCents      int      `json:"revenue_cents"`
	AverageRating     *float64 `json:"average_rating,omitempty"`
	OccupancyPercent  float64  `json:"occupancy_percent"`
}
