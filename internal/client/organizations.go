package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"venuelink/internal/models"
)

type organizationWire struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	University   string    `json:"university"`
	OwnerID      string    `json:"owner_id"`
	Description  *string   `json:"description"`
	ContactEmail *string   `json:"contact_email"`
	ContactPhone *string   `json:"contact_phone"`
	MemberCount  *int      `json:"member_count"`
	WebsiteURL   *string   `json:"website_url"`
	LogoURL      *string   `json:"logo_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toOrganization(w organizationWire) models.Organization {
	return models.Organization{
		ID:           w.ID,
		Name:         w.Name,
		Type:         models.OrganizationType(w.Type),
		University:   w.University,
		OwnerID:      w.OwnerID,
		Description:  w.Description,
		ContactEmail: w.ContactEmail,
		ContactPhone: w.ContactPhone,
		MemberCount:  w.MemberCount,
		WebsiteURL:   w.WebsiteURL,
		LogoURL:      w.LogoURL,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

// GetMyOrganization fetches the calling user's organization profile.
func (c *Client) GetMyOrganization(ctx context.Context) (models.Organization, error) {
	var wire organizationWire
	if err := c.do(ctx, http.MethodGet, "/organizations/me", nil, nil, &wire); err != nil {
		return models.Organization{}, err
	}

	return toOrganization(wire), nil
}

// GetOrganization fetches an organization profile by ID.
func (c *Client) GetOrganization(ctx context.Context, id string) (models.Organization, error) {
	var wire organizationWire
	if err := c.do(ctx, http.MethodGet, "/organizations/"+url.PathEscape(id), nil, nil, &wire); err != nil {
		return models.Organization{}, err
	}

	return toOrganization(wire), nil
}

// UpdateOrganizationParams carries partial profile updates; nil fields
// are left untouched.
type UpdateOrganizationParams struct {
	Name         *string                  `json:"name,omitempty"`
	Type         *models.OrganizationType `json:"type,omitempty"`
	University   *string                  `json:"university,omitempty"`
	Description  *string                  `json:"description,omitempty"`
	ContactEmail *string                  `json:"contact_email,omitempty"`
	ContactPhone *string                  `json:"contact_phone,omitempty"`
	MemberCount  *int                     `json:"member_count,omitempty"`
	WebsiteURL   *string                  `json:"website_url,omitempty"`
}

// UpdateOrganization partially updates an organization profile and
// returns the fresh snapshot.
func (c *Client) UpdateOrganization(ctx context.Context, id string, params UpdateOrganizationParams) (models.Organization, error) {
	var wire organizationWire
	if err := c.do(ctx, http.MethodPatch, "/organizations/"+url.PathEscape(id), nil, params, &wire); err != nil {
		return models.Organization{}, err
	}

	return toOrganization(wire), nil
}
