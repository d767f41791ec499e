package domain

import (
	"errors"
	"time"
)

// ErrInvalidToken is the single outward classification for every token
// verification failure: bad signature, expiry, malformed payload, wrong
// algorithm. Callers must not be able to tell these apart.
var ErrInvalidToken = errors.New("invalid token")

// ErrAuthenticationRequired is returned by the route policy when a protected
// route is reached without a resolved identity.
var ErrAuthenticationRequired = errors.New("authentication required")

// ErrForbidden is returned when an identity is present but lacks the role or
// the ownership required by the operation.
var ErrForbidden = errors.New("access forbidden")

// TokenClaims is the decoded content of a verified identity token. Tokens are
// stateless: no server-side record exists, and a token stays cryptographically
// valid until ExpiresAt regardless of later account changes.
type TokenClaims struct {
	Subject   string
	UserID    string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
