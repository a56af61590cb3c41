package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimit_PerClient(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimit(2, time.Hour, next)

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/datasets", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := call("203.0.113.7"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: unexpected status %d", i, rec.Code)
		}
	}
	rec := call("203.0.113.7")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "3600" {
		t.Fatalf("unexpected Retry-After: got=%s want=3600", got)
	}

	if rec := call("198.51.100.2"); rec.Code != http.StatusOK {
		t.Fatalf("other client should not be limited, got %d", rec.Code)
	}
}

func TestClientLimiter_PrunesIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := newClientLimiter(1, time.Minute)
	limiter.now = func() time.Time { return now }

	limiter.allow("a")
	now = now.Add(5 * time.Minute)
	limiter.allow("b")

	if _, ok := limiter.limiters["a"]; ok {
		t.Fatalf("expected idle client to be pruned")
	}
	if len(limiter.limiters) != 1 {
		t.Fatalf("unexpected limiter count: %d", len(limiter.limiters))
	}
}

func TestResolveClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	if got := resolveClientIP(req); got != "192.0.2.10" {
		t.Fatalf("unexpected ip from remote addr: %s", got)
	}

	req.Header.Set("X-Real-IP", "not-an-ip")
	if got := resolveClientIP(req); got != "192.0.2.10" {
		t.Fatalf("invalid header should be skipped, got %s", got)
	}
}
