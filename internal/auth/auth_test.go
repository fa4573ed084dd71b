package auth_test

import (
	"context"
	"testing"

	"venuelink/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticToken(t *testing.T) {
	t.Parallel()

	token, err := auth.Static("abc123").Token(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestHasRole(t *testing.T) {
	t.Parallel()

	student := auth.User{ID: "u-1", Role: auth.RoleStudentOrg}
	venueAdmin := auth.User{ID: "u-2", Role: auth.RoleVenueAdmin}

	cases := []struct {
		name     string
		user     auth.User
		required []auth.Role
		want     bool
	}{
		{"anonymous never passes", auth.User{}, nil, false},
		{"anonymous with requirement", auth.User{}, []auth.Role{auth.RoleStudentOrg}, false},
		{"signed-in with no requirement", student, nil, true},
		{"matching role", venueAdmin, []auth.Role{auth.RoleVenueAdmin}, true},
		{"mismatched role", student, []auth.Role{auth.RoleVenueAdmin}, false},
		{"any of several roles", student, []auth.Role{auth.RoleVenueAdmin, auth.RoleStudentOrg}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, auth.HasRole(tc.user, tc.required...))
		})
	}
}
