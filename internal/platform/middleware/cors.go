package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns middleware for browser clients of the read-only API. Authorization is
// allowed so a single-page app can forward its bearer token to the greeting endpoint.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
			"traceparent",
		},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}
