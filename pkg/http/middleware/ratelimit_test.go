package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLimiterBurstThenDeny(t *testing.T) {
	l := NewLimiter()

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1", 3, 0) {
			t.Fatalf("request %d within burst was denied", i)
		}
	}
	if l.Allow("10.0.0.1", 3, 0) {
		t.Fatal("request beyond burst was allowed")
	}
}

func TestLimiterKeysIndependent(t *testing.T) {
	l := NewLimiter()

	if !l.Allow("10.0.0.1", 1, 0) {
		t.Fatal("first key denied")
	}
	if l.Allow("10.0.0.1", 1, 0) {
		t.Fatal("first key not exhausted")
	}
	if !l.Allow("10.0.0.2", 1, 0) {
		t.Fatal("second key should have its own bucket")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(1, 0))
	e.GET("/api/chart", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	do := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do("/api/chart"); code != http.StatusOK {
		t.Fatalf("first request got %d", code)
	}
	if code := do("/api/chart"); code != http.StatusTooManyRequests {
		t.Fatalf("second request got %d, want 429", code)
	}
	// Health checks bypass the limiter.
	if code := do("/healthz"); code != http.StatusOK {
		t.Fatalf("healthz got %d", code)
	}
}
