package middleware

import "net/http"

// Vary adds Accept and Authorization to the Vary header. The greeting body depends
// on the negotiated format and on the caller identity carried by Authorization.
// CORS adds Origin separately.
func Vary() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept")
			w.Header().Add("Vary", "Authorization")
			next.ServeHTTP(w, r)
		})
	}
}
