package auth

import "github.com/kamyarmaaf/plan1/internal"

// Provider resolves a bearer token to a user identity.
type Provider interface {
	ValidateToken(token string) (*internal.User, error)
}
