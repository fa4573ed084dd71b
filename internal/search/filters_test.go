package search_test

import (
	"net/url"
	"testing"

	"venuelink/internal/models"
	"venuelink/internal/search"

	"github.com/stretchr/testify/assert"
)

func TestParseFilters(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		query string
		want  search.Filters
	}{
		{
			name:  "empty query",
			query: "",
			want:  search.Filters{Page: 1, PageSize: 20},
		},
		{
			name:  "full query",
			query: "type=bar&search=rooftop&page=3",
			want:  search.Filters{Type: models.VenueTypeBar, Search: "rooftop", Page: 3, PageSize: 20},
		},
		{
			name:  "unknown type falls back to all types",
			query: "type=nightclub&search=rooftop",
			want:  search.Filters{Search: "rooftop", Page: 1, PageSize: 20},
		},
		{
			name:  "non-numeric page clamps",
			query: "page=abc",
			want:  search.Filters{Page: 1, PageSize: 20},
		},
		{
			name:  "negative page clamps",
			query: "page=-2",
			want:  search.Filters{Page: 1, PageSize: 20},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			q, err := url.ParseQuery(tc.query)
			assert.NoError(t, err)

			assert.Equal(t, tc.want, search.ParseFilters(q, 20))
		})
	}
}

func TestQueryOmitsDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", search.Filters{Page: 1, PageSize: 20}.Query().Encode())

	q := search.Filters{
		Type:     models.VenueTypeCafe,
		Search:   "espresso",
		Page:     2,
		PageSize: 20,
	}.Query()

	assert.Equal(t, "page=2&search=espresso&type=cafe", q.Encode())
}

func TestFiltersRoundTrip(t *testing.T) {
	t.Parallel()

	original := search.Filters{
		Type:     models.VenueTypeEventSpace,
		Search:   "ballroom",
		Page:     4,
		PageSize: 20,
	}

	restored := search.ParseFilters(original.Query(), 20)

	assert.Equal(t, original, restored)
}
