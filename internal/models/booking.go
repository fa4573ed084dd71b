package models

import "time"

type BookingStatus string

// Booking lifecycle:
// pending -> confirmed (venue accepts), pending -> rejected (venue declines),
// pending -> cancelled (org cancels), confirmed -> completed | cancelled.
const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is an organization's booking request as listed by the API.
// EventDate is a UTC calendar date; the time of day lives in EventTime
// as "HH:MM".
type Booking struct {
	ID              string        `json:"id"`
	VenueID         string        `json:"venue_id"`
	OrganizationID  string        `json:"organization_id"`
	EventName       string        `json:"event_name"`
	EventDate       Date          `json:"event_date"`
	EventTime       string        `json:"event_time"`
	GuestCount      int           `json:"guest_count"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	BudgetCents     *int          `json:"budget_cents,omitempty"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// BookingConfirmation is returned once at creation time and never
// re-fetched. Venue fields are denormalized for display.
type BookingConfirmation struct {
	ID                 string        `json:"id"`
	ReferenceNumber    string        `json:"reference_number"`
	VenueName          string        `json:"venue_name"`
	EventName          string        `json:"event_name"`
	EventDate          Date          `json:"event_date"`
	EventTime          string        `json:"event_time"`
	GuestCount         int           `json:"guest_count"`
	EstimatedCostCents int           `json:"estimated_cost_cents"`
	Status             BookingStatus `json:"status"`
}

// AdminBooking is the venue-admin view of a booking request.
type AdminBooking struct {
	ID               string        `json:"id"`
	OrganizationName string        `json:"organization_name"`
	EventName        string        `json:"event_name"`
	EventDate        Date          `json:"event_date"`
	EventTime        string        `json:"event_time"`
	GuestCount       int           `json:"guest_count"`
	Status           BookingStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
}

type BookingPage struct {
	Items      []Booking `json:"items"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}
