package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/ecs-example/internal/platform/logging"
)

type userContextKey struct{}

// NewAuthMiddleware creates Huma middleware that resolves the caller.
//
// Operations that declare Security require a valid bearer token and are rejected
// with 401 (or 503 when signing keys are unavailable) otherwise. Open operations
// never fail on authentication: a valid token attaches the caller, anything else
// leaves the request anonymous. A nil verifier treats every request as anonymous.
func NewAuthMiddleware(api huma.API, verifier Verifier) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		secured := len(ctx.Operation().Security) > 0
		header := ctx.Header("Authorization")

		if !secured && (header == "" || verifier == nil) {
			next(ctx)
			return
		}

		if verifier == nil {
			applog.LogWarn(ctx.Context(), "auth failed: no verifier configured",
				zap.String("reason", "no_verifier"))
			_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable,
				"authentication service unavailable")
			return
		}

		token, err := ExtractBearerToken(header)
		if err != nil {
			applog.LogWarn(ctx.Context(), "auth failed: missing or invalid header",
				zap.String("reason", "no_token"), zap.Bool("secured", secured))
			if !secured {
				next(ctx)
				return
			}
			ctx.SetHeader("WWW-Authenticate", "Bearer")
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}

		user, err := verifier.Verify(ctx.Context(), token)
		if err != nil {
			applog.LogWarn(ctx.Context(), "auth failed: token verification failed",
				zap.String("reason", categorizeAuthError(err)), zap.Bool("secured", secured))
			if !secured {
				next(ctx)
				return
			}
			if errors.Is(err, ErrCertificateFetch) {
				ctx.SetHeader("Retry-After", "30")
				_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable,
					"authentication service temporarily unavailable")
				return
			}
			ctx.SetHeader("WWW-Authenticate", "Bearer")
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next(huma.WithContext(ctx, WithUser(ctx.Context(), user)))
	}
}

// categorizeAuthError returns a safe category string for logging.
func categorizeAuthError(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenRevoked):
		return "token_revoked"
	case errors.Is(err, ErrUserDisabled):
		return "user_disabled"
	case errors.Is(err, ErrCertificateFetch):
		return "certificate_fetch_failed"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	default:
		return "unknown"
	}
}

// UserFromContext returns the authenticated user, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey{}).(*User)
	return user
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// ContextIdentity reads the caller placed in the request context by the auth middleware.
type ContextIdentity struct{}

// CallerName returns the caller's display name, or false when the request is anonymous.
func (ContextIdentity) CallerName(ctx context.Context) (string, bool) {
	user := UserFromContext(ctx)
	if user == nil {
		return "", false
	}
	return user.Name, true
}
