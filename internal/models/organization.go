package models

import "time"

type OrganizationType string

const (
	OrgTypeFraternity OrganizationType = "fraternity"
	OrgTypeSorority   OrganizationType = "sorority"
	OrgTypeClub       OrganizationType = "club"
	OrgTypeOther      OrganizationType = "other"
)

// Organization is a student organization profile. Optional profile
// fields are pointers; nil means the backend returned null.
type Organization struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Type         OrganizationType `json:"type"`
	University   string           `json:"university"`
	OwnerID      string           `json:"owner_id"`
	Description  *string          `json:"description,omitempty"`
	ContactEmail *string          `json:"contact_email,omitempty"`
	ContactPhone *string          `json:"contact_phone,omitempty"`
	MemberCount  *int             `json:"member_count,omitempty"`
	WebsiteURL   *string          `json:"website_url,omitempty"`
	LogoURL      *string          `json:"logo_url,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
