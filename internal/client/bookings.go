package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"venuelink/internal/models"
)

type bookingWire struct {
	ID              string      `json:"id"`
	VenueID         string      `json:"venue_id"`
	OrganizationID  string      `json:"organization_id"`
	EventName       string      `json:"event_name"`
	EventDate       models.Date `json:"event_date"`
	EventTime       string      `json:"event_time"`
	GuestCount      int         `json:"guest_count"`
	SpecialRequests string      `json:"special_requests"`
	BudgetCents     *int        `json:"budget_cents"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type bookingPageWire struct {
	Items      []bookingWire `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

type confirmationWire struct {
	ID                 string      `json:"id"`
	ReferenceNumber    string      `json:"reference_number"`
	VenueName          string      `json:"venue_name"`
	EventName          string      `json:"event_name"`
	EventDate          models.Date `json:"event_date"`
	EventTime          string      `json:"event_time"`
	GuestCount         int         `json:"guest_count"`
	EstimatedCostCents int         `json:"estimated_cost_cents"`
	Status             string      `json:"status"`
}

type adminBookingWire struct {
	ID               string      `json:"id"`
	OrganizationName string      `json:"organization_name"`
	EventName        string      `json:"event_name"`
	EventDate        models.Date `json:"event_date"`
	EventTime        string      `json:"event_time"`
	GuestCount       int         `json:"guest_count"`
	Status           string      `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
}

type venueStatsWire struct {
	BookingsThisMonth int      `json:"bookings_this_month"`
	RevenueCents      int      `json:"revenue_cents"`
	AverageRating     *float64 `json:"average_rating"`
	OccupancyPercent  float64  `json:"occupancy_percent"`
}

func toBooking(w bookingWire) models.Booking {
	return models.Booking{
		ID:              w.ID,
		VenueID:         w.VenueID,
		OrganizationID:  w.OrganizationID,
		EventName:       w.EventName,
		EventDate:       w.EventDate,
		EventTime:       w.EventTime,
		GuestCount:      w.GuestCount,
		SpecialRequests: w.SpecialRequests,
		BudgetCents:     w.BudgetCents,
		Status:          models.BookingStatus(w.Status),
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

func toConfirmation(w confirmationWire) models.BookingConfirmation {
	return models.BookingConfirmation{
		ID:                 w.ID,
		ReferenceNumber:    w.ReferenceNumber,
		VenueName:          w.VenueName,
		EventName:          w.EventName,
		EventDate:          w.EventDate,
		EventTime:          w.EventTime,
		GuestCount:         w.GuestCount,
		EstimatedCostCents: w.EstimatedCostCents,
		Status:             models.BookingStatus(w.Status),
	}
}

func toAdminBooking(w adminBookingWire) models.AdminBooking {
	return models.AdminBooking{
		ID:               w.ID,
		OrganizationName: w.OrganizationName,
		EventName:        w.EventName,
		EventDate:        w.EventDate,
		EventTime:        w.EventTime,
		GuestCount:       w.GuestCount,
		Status:           models.BookingStatus(w.Status),
		CreatedAt:        w.CreatedAt,
	}
}

// CreateBookingParams is the assembled wizard output sent to the API.
type CreateBookingParams struct {
	VenueID         string
	EventName       string
	EventDate       models.Date
	EventTime       string
	GuestCount      int
	SpecialRequests string
	BudgetCents     *int
}

type createBookingWire struct {
	VenueID         string      `json:"venue_id"`
	EventName       string      `json:"event_name"`
	EventDate       models.Date `json:"event_date"`
	EventTime       string      `json:"event_time"`
	GuestCount      int         `json:"guest_count"`
	SpecialRequests string      `json:"special_requests,omitempty"`
	BudgetCents     *int        `json:"budget_cents,omitempty"`
}

// CreateBooking submits a booking request and returns the one-time
// confirmation.
func (c *Client) CreateBooking(ctx context.Context, params CreateBookingParams) (models.BookingConfirmation, error) {
	body := createBookingWire{
		VenueID:         params.VenueID,
		EventName:       params.EventName,
		EventDate:       params.EventDate,
		EventTime:       params.EventTime,
		GuestCount:      params.GuestCount,
		SpecialRequests: params.SpecialRequests,
		BudgetCents:     params.BudgetCents,
	}

	var wire confirmationWire
	if err := c.do(ctx, http.MethodPost, "/bookings", nil, body, &wire); err != nil {
		return models.BookingConfirmation{}, err
	}

	return toConfirmation(wire), nil
}

// MyBookingsParams filter the own-organization booking list.
type MyBookingsParams struct {
	Status   models.BookingStatus
	Page     int
	PageSize int
}

// ListMyBookings fetches the calling organization's bookings.
func (c *Client) ListMyBookings(ctx context.Context, params MyBookingsParams) (models.BookingPage, error) {
	q := url.Values{}
	if params.Status != "" {
		q.Set("status", string(params.Status))
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(params.PageSize))
	}

	var wire bookingPageWire
	if err := c.do(ctx, http.MethodGet, "/bookings/me", q, nil, &wire); err != nil {
		return models.BookingPage{}, err
	}

	page := models.BookingPage{
		Items:      make([]models.Booking, 0, len(wire.Items)),
		Total:      wire.Total,
		Page:       wire.Page,
		PageSize:   wire.PageSize,
		TotalPages: wire.TotalPages,
	}
	for _, w := range wire.Items {
		page.Items = append(page.Items, toBooking(w))
	}

	return page, nil
}

// CancelBooking cancels the organization's own pending or confirmed
// booking.
func (c *Client) CancelBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/bookings/"+url.PathEscape(id)+"/cancel", nil, nil, nil)
}

// AcceptBooking accepts a pending booking request (venue admin).
func (c *Client) AcceptBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/bookings/"+url.PathEscape(id)+"/accept", nil, nil, nil)
}

// DeclineBooking declines a pending booking request (venue admin).
func (c *Client) DeclineBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/bookings/"+url.PathEscape(id)+"/decline", nil, nil, nil)
}

// ListVenueBookings fetches all booking requests for a venue the caller
// administers.
func (c *Client) ListVenueBookings(ctx context.Context, venueID string) ([]models.AdminBooking, error) {
	var wire []adminBookingWire
	if err := c.do(ctx, http.MethodGet, "/venues/"+url.PathEscape(venueID)+"/bookings", nil, nil, &wire); err != nil {
		return nil, err
	}

	bookings := make([]models.AdminBooking, 0, len(wire))
	for _, w := range wire {
		bookings = append(bookings, toAdminBooking(w))
	}

	return bookings, nil
}

// GetVenueStats fetches the admin dashboard stats for a venue.
func (c *Client) GetVenueStats(ctx context.Context, venueID string) (models.VenueStats, error) {
	var wire venueStatsWire
	if err := c.do(ctx, http.MethodGet, "/venues/"+url.PathEscape(venueID)+"/stats", nil, nil, &wire); err != nil {
		return models.VenueStats{}, err
	}

	return models.VenueStats{
		BookingsThisMonth: wire.BookingsThisMonth,
		RevenueCents:      wire.RevenueCents,
		AverageRating:     wire.AverageRating,
		OccupancyPercent:  wire.OccupancyPercent,
	}, nil
}
