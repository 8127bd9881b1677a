package auth

import (
	"context"
	"errors"
	"strings"
)

// User is an authenticated caller.
type User struct {
	UID           string
	Name          string // display name of the principal
	Email         string
	EmailVerified bool
}

// Error types for authentication failures.
var (
	// ErrNoToken indicates a missing Authorization header.
	ErrNoToken = errors.New("missing authorization header")

	// ErrInvalidToken indicates an invalid token format or signature.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates the token has expired.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked indicates the token has been revoked.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrUserDisabled indicates the user account is disabled.
	ErrUserDisabled = errors.New("user disabled")

	// ErrCertificateFetch indicates the verification keys could not be fetched.
	ErrCertificateFetch = errors.New("failed to fetch certificates")
)

// Verifier validates tokens and returns user information.
type Verifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

// ExtractBearerToken extracts the token from an Authorization header value.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

// JWT claims consulted for the display name, in the order a MicroProfile
// JsonWebToken resolves its principal name.
var jwtNameClaims = []string{"upn", "preferred_username"}

// Firebase ID tokens carry the profile display name in "name".
var firebaseNameClaims = []string{"name"}

// displayName returns the first of keys present in claims as a string, or
// fallback when none is. A claim that is present but empty still wins.
func displayName(claims map[string]any, fallback string, keys ...string) string {
	for _, key := range keys {
		if v, ok := claims[key].(string); ok {
			return v
		}
	}
	return fallback
}
