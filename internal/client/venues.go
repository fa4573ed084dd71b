package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"venuelink/internal/models"
)

// venueWire is the backend snake_case venue shape.
type venueWire struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	Capacity       int        `json:"capacity"`
	BasePriceCents int        `json:"base_price_cents"`
	AddressStreet  string     `json:"address_street"`
	AddressCity    string     `json:"address_city"`
	AddressState   string     `json:"address_state"`
	AddressZip     string     `json:"address_zip"`
	OwnerID        string     `json:"owner_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at"`
}

type venuePageWire struct {
	Items      []venueWire `json:"items"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

func toVenue(w venueWire) models.Venue {
	return models.Venue{
		ID:             w.ID,
		Name:           w.Name,
		Type:           models.VenueType(w.Type),
		Capacity:       w.Capacity,
		BasePriceCents: w.BasePriceCents,
		Address: models.Address{
			Street: w.AddressStreet,
			City:   w.AddressCity,
			State:  w.AddressState,
			Zip:    w.AddressZip,
		},
		OwnerID:   w.OwnerID,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
		DeletedAt: w.DeletedAt,
	}
}

// VenueListParams filter the venue browse endpoint. Zero values are
// omitted from the query string.
type VenueListParams struct {
	Type          models.VenueType
	Search        string
	Page          int
	PageSize      int
	MinCapacity   int
	MaxCapacity   int
	MaxPriceCents int
}

func (p VenueListParams) query() url.Values {
	q := url.Values{}

	if p.Type != "" {
		q.Set("type", string(p.Type))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.MinCapacity > 0 {
		q.Set("min_capacity", strconv.Itoa(p.MinCapacity))
	}
	if p.MaxCapacity > 0 {
		q.Set("max_capacity", strconv.Itoa(p.MaxCapacity))
	}
	if p.MaxPriceCents > 0 {
		q.Set("max_price_cents", strconv.Itoa(p.MaxPriceCents))
	}

	return q
}

// ListVenues fetches a paginated, filtered venue list.
func (c *Client) ListVenues(ctx context.Context, params VenueListParams) (models.VenuePage, error) {
	var wire venuePageWire
	if err := c.do(ctx, http.MethodGet, "/venues", params.query(), nil, &wire); err != nil {
		return models.VenuePage{}, err
	}

	page := models.VenuePage{
		Items:      make([]models.Venue, 0, len(wire.Items)),
		Total:      wire.Total,
		Page:       wire.Page,
		PageSize:   wire.PageSize,
		TotalPages: wire.TotalPages,
	}
	for _, w := range wire.Items {
		page.Items = append(page.Items, toVenue(w))
	}

	return page, nil
}

// GetVenue fetches a single venue by ID.
func (c *Client) GetVenue(ctx context.Context, id string) (models.Venue, error) {
	var wire venueWire
	if err := c.do(ctx, http.MethodGet, "/venues/"+url.PathEscape(id), nil, nil, &wire); err != nil {
		return models.Venue{}, err
	}

	return toVenue(wire), nil
}

// CreateVenueParams is the owner-side venue creation payload.
type CreateVenueParams struct {
	Name           string
	Type           models.VenueType
	Capacity       int
	BasePriceCents int
	Address        models.Address
}

type createVenueWire struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Capacity       int    `json:"capacity"`
	BasePriceCents int    `json:"base_price_cents"`
	AddressStreet  string `json:"address_street"`
	AddressCity    string `json:"address_city"`
	AddressState   string `json:"address_state"`
	AddressZip     string `json:"address_zip"`
}

// CreateVenue registers a new venue (owner/admin only).
func (c *Client) CreateVenue(ctx context.Context, params CreateVenueParams) (models.Venue, error) {
	body := createVenueWire{
		Name:           params.Name,
		Type:           string(params.Type),
		Capacity:       params.Capacity,
		BasePriceCents: params.BasePriceCents,
		AddressStreet:  params.Address.Street,
		AddressCity:    params.Address.City,
		AddressState:   params.Address.State,
		AddressZip:     params.Address.Zip,
	}

	var wire venueWire
	if err := c.do(ctx, http.MethodPost, "/venues", nil, body, &wire); err != nil {
		return models.Venue{}, err
	}

	return toVenue(wire), nil
}

// UpdateVenueParams carries partial venue updates; nil fields are left
// untouched by the backend.
type UpdateVenueParams struct {
	Name           *string           `json:"name,omitempty"`
	Type           *models.VenueType `json:"type,omitempty"`
	Capacity       *int              `json:"capacity,omitempty"`
	BasePriceCents *int              `json:"base_price_cents,omitempty"`
	AddressStreet  *string           `json:"address_street,omitempty"`
	AddressCity    *string           `json:"address_city,omitempty"`
	AddressState   *string           `json:"address_state,omitempty"`
	AddressZip     *string           `json:"address_zip,omitempty"`
}

// UpdateVenue partially updates a venue and returns the fresh snapshot.
func (c *Client) UpdateVenue(ctx context.Context, id string, params UpdateVenueParams) (models.Venue, error) {
	var wire venueWire
	if err := c.do(ctx, http.MethodPatch, "/venues/"+url.PathEscape(id), nil, params, &wire); err != nil {
		return models.Venue{}, err
	}

	return toVenue(wire), nil
}

// DeleteVenue soft-deletes a venue; it disappears from browse results
// but existing bookings keep referencing it.
func (c *Client) DeleteVenue(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/venues/"+url.PathEscape(id), nil, nil, nil)
}
