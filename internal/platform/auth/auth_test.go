package auth

import (
	"context"
	"errors"
	"testing"
)

func TestExtractBearerTokenValid(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"lowercase bearer", "bearer token123", "token123"},
		{"uppercase Bearer", "Bearer token123", "token123"},
		{"mixed case BEARER", "BEARER token123", "token123"},
		{"jwt-like token", "Bearer aaa.bbb.ccc", "aaa.bbb.ccc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractBearerTokenEmpty(t *testing.T) {
	if _, err := ExtractBearerToken(""); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestExtractBearerTokenInvalid(t *testing.T) {
	for _, header := range []string{"token123", "Basic dXNlcjpwYXNz", "Bearer", "   ", "Bearer a b"} {
		t.Run(header, func(t *testing.T) {
			if _, err := ExtractBearerToken(header); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]any
		want   string
	}{
		{"upn wins", map[string]any{"upn": "alice@corp", "preferred_username": "alice"}, "alice@corp"},
		{"preferred username", map[string]any{"preferred_username": "alice"}, "alice"},
		{"subject fallback", map[string]any{}, "sub-1"},
		{"non-string claim ignored", map[string]any{"upn": 42}, "sub-1"},
		{"empty claim kept", map[string]any{"upn": ""}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayName(tt.claims, "sub-1", jwtNameClaims...); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextIdentity(t *testing.T) {
	var id ContextIdentity

	if _, ok := id.CallerName(context.Background()); ok {
		t.Fatal("expected no caller for empty context")
	}

	name, ok := id.CallerName(WithUser(context.Background(), &User{UID: "u1", Name: "alice"}))
	if !ok || name != "alice" {
		t.Fatalf("expected alice, got %q (%v)", name, ok)
	}

	name, ok = id.CallerName(WithUser(context.Background(), &User{UID: "u2", Name: ""}))
	if !ok || name != "" {
		t.Fatalf("expected present empty name, got %q (%v)", name, ok)
	}
}

func TestMockVerifier(t *testing.T) {
	user, err := (&MockVerifier{User: TestUser()}).Verify(context.Background(), "any")
	if err != nil || user.Name != "alice" {
		t.Fatalf("expected test user, got %+v, %v", user, err)
	}

	_, err = (&MockVerifier{User: TestUser(), Error: ErrInvalidToken}).Verify(context.Background(), "any")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected error to take precedence, got %v", err)
	}
}

func TestCategorizeAuthError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrTokenExpired, "token_expired"},
		{ErrTokenRevoked, "token_revoked"},
		{ErrUserDisabled, "user_disabled"},
		{ErrCertificateFetch, "certificate_fetch_failed"},
		{ErrInvalidToken, "invalid_token"},
		{errors.New("other"), "unknown"},
	}

	for _, tt := range tests {
		if got := categorizeAuthError(tt.err); got != tt.want {
			t.Errorf("categorizeAuthError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
