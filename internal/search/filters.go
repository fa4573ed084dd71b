package search

import (
	"net/url"
	"strconv"

	"venuelink/internal/models"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

const (
	paramType   = "type"
	paramSearch = "search"
	paramPage   = "page"
)

// Filters is the structured venue browse filter set. A zero Type means
// "all venue types".
type Filters struct {
	Type     models.VenueType
	Search   string
	Page     int
	PageSize int
}

// ParseFilters restores filters from shareable query parameters. An
// unknown or invalid type value falls back to "no type filter"; the
// page clamps to at least DefaultPage.
func ParseFilters(q url.Values, pageSize int) Filters {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	f := Filters{
		Search:   q.Get(paramSearch),
		Page:     DefaultPage,
		PageSize: pageSize,
	}

	if t := q.Get(paramType); models.ValidVenueType(t) {
		f.Type = models.VenueType(t)
	}

	if p, err := strconv.Atoi(q.Get(paramPage)); err == nil && p > DefaultPage {
		f.Page = p
	}

	return f
}

// Query serializes the filters back into shareable query parameters.
// Defaults are omitted so clean URLs stay clean.
func (f Filters) Query() url.Values {
	q := url.Values{}

	if f.Type != "" {
		q.Set(paramType, string(f.Type))
	}
	if f.Search != "" {
		q.Set(paramSearch, f.Search)
	}
	if f.Page > DefaultPage {
		q.Set(paramPage, strconv.Itoa(f.Page))
	}

	return q
}
