package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestRateLimiter_PerIP verifies the burst is enforced separately per IP.
func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("burst requests rejected")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("request beyond burst allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("second IP shares the first IP's bucket")
	}
}

// TestRateLimit_Returns429 verifies the middleware response.
func TestRateLimit_Returns429(t *testing.T) {
	handler := RateLimit(NewRateLimiter(0.001, 1))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/home", nil)
	req.RemoteAddr = "192.0.2.1:5000"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	req2 := httptest.NewRequest("GET", "/home", nil)
	req2.RemoteAddr = "192.0.2.1:5001"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req2)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rr.Code)
	}
}

// TestSecurityHeaders verifies the OWASP headers are set.
func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
	if !strings.Contains(rr.Header().Get("Content-Security-Policy"), "default-src 'self'") {
		t.Error("missing CSP")
	}
}

// TestCSRF_RejectsFormWithoutToken verifies form posts need a token and JSON is exempt.
func TestCSRF_RejectsFormWithoutToken(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	handler := CSRF(key, false, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	form := httptest.NewRequest("POST", "/clientes/add", strings.NewReader("nombre=Ana"))
	form.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, form)
	if rr.Code != http.StatusForbidden {
		t.Errorf("form status = %d, want 403", rr.Code)
	}

	js := httptest.NewRequest("POST", "/clientes/add", strings.NewReader(`{}`))
	js.Header.Set("Content-Type", "application/json")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, js)
	if rr.Code != http.StatusNoContent {
		t.Errorf("json status = %d, want 204", rr.Code)
	}
}
