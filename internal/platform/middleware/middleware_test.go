package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func containsHeader(headerValue, target string) bool {
	for part := range strings.SplitSeq(headerValue, ",") {
		if strings.EqualFold(strings.TrimSpace(part), target) {
			return true
		}
	}
	return false
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = chimiddleware.GetReqID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "client-id-1")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if seen != "client-id-1" {
		t.Fatalf("expected client-id-1 in context, got %q", seen)
	}
	if got := resp.Header().Get(chimiddleware.RequestIDHeader); got != "client-id-1" {
		t.Fatalf("expected response header client-id-1, got %q", got)
	}
}

func TestRequestIDReplacesInvalidHeader(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"newline", "abc\ndef"},
		{"too long", strings.Repeat("a", maxRequestIDLength+1)},
		{"non ascii", "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RequestID()(okHandler())
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.id != "" {
				req.Header.Set(chimiddleware.RequestIDHeader, tt.id)
			}
			resp := httptest.NewRecorder()
			h.ServeHTTP(resp, req)

			got := resp.Header().Get(chimiddleware.RequestIDHeader)
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("expected generated UUID, got %q", got)
			}
		})
	}
}

func TestSecurityMiddlewareSetsHeaders(t *testing.T) {
	resp := httptest.NewRecorder()
	Security("/api-docs")(okHandler()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/example/hello", nil))

	tests := []struct {
		header string
		want   string
	}{
		{"Cache-Control", "no-store"},
		{"Content-Security-Policy", "frame-ancestors 'none'"},
		{"Cross-Origin-Opener-Policy", "same-origin"},
		{"Cross-Origin-Resource-Policy", "same-origin"},
		{"Permissions-Policy", permissionsPolicy},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
	}
	for _, tt := range tests {
		if got := resp.Header().Get(tt.header); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.header, tt.want, got)
		}
	}
}

func TestSecurityMiddlewareSkipsDocs(t *testing.T) {
	tests := []struct {
		path    string
		skipped bool
	}{
		{"/api-docs", true},
		{"/api-docs/assets/app.js", true},
		{"/api-docsx", false},
		{"/example/hello", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := httptest.NewRecorder()
			Security("/api-docs")(okHandler()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if got := resp.Header().Get("X-Frame-Options"); (got == "") != tt.skipped {
				t.Fatalf("skipped = %v, X-Frame-Options %q", tt.skipped, got)
			}
		})
	}
}

func TestVaryMiddlewareSetsHeader(t *testing.T) {
	resp := httptest.NewRecorder()
	Vary()(okHandler()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	vary := strings.Join(resp.Header().Values("Vary"), ",")
	for _, want := range []string{"Accept", "Authorization"} {
		if !containsHeader(vary, want) {
			t.Fatalf("expected Vary to contain %s, got %q", want, vary)
		}
	}
}

func TestCORSAllowsGETOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://localhost/example/hello", nil)
	req.Header.Set("Origin", "http://example.com")
	resp := httptest.NewRecorder()
	CORS()(okHandler()).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected Access-Control-Allow-Origin '*', got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Expose-Headers"); !containsHeader(got, "X-Request-Id") {
		t.Fatalf("expected X-Request-Id to be exposed, got %q", got)
	}
}

func TestCORSPreflightAllowsAuthorization(t *testing.T) {
	called := false
	h := CORS()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodOptions, "http://localhost/example/hello", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if called {
		t.Fatal("expected preflight to be answered by CORS middleware")
	}
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Headers"); !containsHeader(got, "Authorization") {
		t.Fatalf("expected Authorization to be allowed, got %q", got)
	}
}
