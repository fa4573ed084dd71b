package auth

import "context"

// TokenSource supplies the bearer token for outgoing requests. An empty
// token with a nil error means "no session" and the request goes out
// unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// Static returns a TokenSource that always yields the same token.
func Static(token string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) {
		return token, nil
	})
}

type Role string

const (
	RoleStudentOrg Role = "student_org"
	RoleVenueAdmin Role = "venue_admin"
)

type User struct {
	ID   string
	Role Role
}

// HasRole is the declarative capability check used for nav items and
// command guards. An empty required list means "any signed-in user".
func HasRole(user User, required ...Role) bool {
	if user.ID == "" {
		return false
	}

	if len(required) == 0 {
		return true
	}

	for _, r := range required {
		if user.Role == r {
			return true
		}
	}

	return false
}
