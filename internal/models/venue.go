package models

import "time"

type VenueType string

const (
	VenueTypeBar        VenueType = "bar"
	VenueTypeRestaurant VenueType = "restaurant"
	VenueTypeEventSpace VenueType = "event_space"
	VenueTypeCafe       VenueType = "cafe"
)

// ValidVenueType reports whether s is a known venue type value.
func ValidVenueType(s string) bool {
	switch VenueType(s) {
	case VenueTypeBar, VenueTypeRestaurant, VenueTypeEventSpace, VenueTypeCafe:
		return true
	}

	return false
}

type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// Venue is the client-side venue snapshot. DeletedAt is the soft-delete
// marker; deleted venues never appear in browse results.
type Venue struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Type           VenueType  `json:"type"`
	Capacity       int        `json:"capacity"`
	BasePriceCents int        `json:"base_price_cents"`
	Address        Address    `json:"address"`
	OwnerID        string     `json:"owner_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

type VenuePage struct {
	Items      []Venue `json:"items"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
}
