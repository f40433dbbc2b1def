package domain

import (
	"errors"
	"time"
)

var ErrTokenInvalid = errors.New("token signature invalid")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenRevoked = errors.New("token revoked")

// TokenClaims is the claim set carried by a unified token. It is a snapshot
// of the user's platform links at issuance time, never persisted — links
// changed after issuance are not reflected until the next login.
type TokenClaims struct {
	UserID    string
	Email     string
	Platforms map[Platform]string

	// Set by the codec on issue/verify.
	TokenID   string
	ExpiresAt time.Time
}

// VerifiedIdentity is the typed value the auth middleware places in the
// request context after verifying a bearer token. It is scoped to one
// request and discarded at response time.
type VerifiedIdentity struct {
	UserID    string
	Email     string
	Platforms map[Platform]string
	TokenID   string
	ExpiresAt time.Time
}
