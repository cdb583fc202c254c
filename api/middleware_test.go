package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aakanni/portfolio-backend/services"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingToken(t *testing.T) {
	mw := newAuthMiddleware(services.NewTokenService("secret", time.Hour))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	mw.authenticate(okHandler()).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	mw := newAuthMiddleware(services.NewTokenService("secret", time.Hour))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Token abc")
	mw.authenticate(okHandler()).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	mw := newAuthMiddleware(services.NewTokenService("secret", time.Hour))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	mw.authenticate(okHandler()).ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	expired := services.NewTokenService("secret", -time.Minute)
	token, err := expired.Issue("user-1", "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	mw := newAuthMiddleware(services.NewTokenService("secret", time.Hour))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	mw.authenticate(okHandler()).ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAuthenticateAttachesIdentity(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Hour)
	token, err := tokens.Issue("user-1", "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	mw := newAuthMiddleware(tokens)

	var gotID, gotRole string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = ctxUserID(r.Context())
		gotRole = ctxUserRole(r.Context())
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	mw.authenticate(inner).ServeHTTP(w, r)

	if gotID != "user-1" || gotRole != "admin" {
		t.Errorf("identity = (%q, %q), want (user-1, admin)", gotID, gotRole)
	}
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	mw := newAuthMiddleware(services.NewTokenService("secret", time.Hour))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(ctxWithIdentity(r.Context(), "user-1", "editor"))
	mw.requireAdmin(okHandler()).ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	mw := newAuthMiddleware(services.NewTokenService("secret", time.Hour))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(ctxWithIdentity(r.Context(), "user-1", "admin"))
	mw.requireAdmin(okHandler()).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	limiter := newIPRateLimiter(time.Minute, 3)
	handler := limiter.middleware(okHandler())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
}

func TestRateLimiterTracksClientsIndependently(t *testing.T) {
	limiter := newIPRateLimiter(time.Minute, 1)
	handler := limiter.middleware(okHandler())

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = fmt.Sprintf("10.0.0.%d:1234", i+1)
		handler.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Errorf("client %d: status = %d, want 200", i+1, w.Code)
		}
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "127.0.0.1:9999"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if ip := clientIP(r); ip != "203.0.113.7" {
		t.Errorf("clientIP = %q, want 203.0.113.7", ip)
	}
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.4:5678"

	if ip := clientIP(r); ip != "192.0.2.4" {
		t.Errorf("clientIP = %q, want 192.0.2.4", ip)
	}
}
