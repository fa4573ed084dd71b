package cache

import (
	"fmt"
	"net/url"
	"strconv"
)

// Key factories. Parameters are serialized canonically (url.Values
// sorts by name) so equal queries always produce identical keys.

const (
	PrefixVenues      Key = "venues/"
	PrefixVenueLists  Key = "venues/list"
	PrefixBookings    Key = "bookings/"
	PrefixAdmin       Key = "admin/"
	MyOrganizationKey Key = "organizations/me"
)

// VenueListKey identifies one page of a filtered venue browse.
func VenueListKey(venueType, search string, page, pageSize int) Key {
	q := url.Values{}
	if venueType != "" {
		q.Set("type", venueType)
	}
	if search != "" {
		q.Set("search", search)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	return Key("venues/list?" + q.Encode())
}

func VenueKey(id string) Key {
	return Key("venues/detail/" + id)
}

// MyBookingsKey identifies one page of the organization's own bookings.
func MyBookingsKey(status string, page, pageSize int) Key {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	return Key("bookings/me?" + q.Encode())
}

func VenueBookingsKey(venueID string) Key {
	return Key(fmt.Sprintf("admin/bookings/%s", venueID))
}

func VenueStatsKey(venueID string) Key {
	return Key(fmt.Sprintf("admin/stats/%s", venueID))
}

func OrganizationKey(id string) Key {
	return Key("organizations/detail/" + id)
}
