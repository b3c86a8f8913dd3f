package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequireAdmin(t *testing.T) {
	h := RequireAdmin(Keys{Admin: []string{"adm_key"}})(okHandler)

	cases := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"api key header", "X-API-Key", "adm_key", http.StatusOK},
		{"bearer", "Authorization", "Bearer adm_key", http.StatusOK},
		{"wrong key", "X-API-Key", "pub_key", http.StatusForbidden},
		{"missing", "", "", http.StatusUnauthorized},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodPost, "/admin", nil)
		if c.header != "" {
			req.Header.Set(c.header, c.value)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != c.want {
			t.Fatalf("%s: want %d got %d", c.name, c.want, rec.Code)
		}
	}
}

func TestRequireAdmin_NoKeysConfiguredRefuses(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("X-API-Key", "anything")
	rec := httptest.NewRecorder()
	RequireAdmin(Keys{})(okHandler).ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("want 403 got %d", rec.Code)
	}
}

func TestRateLimit_AllowsThenBlocks(t *testing.T) {
	h := RateLimit(60, 2)(okHandler)
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "1.2.3.4:1234"

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != 200 {
			t.Fatalf("want 200 got %d", rr.Code)
		}
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != 429 {
		t.Fatalf("want 429 got %d", rr.Code)
	}

	// another client has its own bucket
	other := httptest.NewRequest("GET", "/", nil)
	other.RemoteAddr = "5.6.7.8:1234"
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, other)
	if rr.Code != 200 {
		t.Fatalf("want 200 for other client got %d", rr.Code)
	}
}

func TestLimiter_RefillsAndForgets(t *testing.T) {
	l := newLimiter(rate.Limit(1), 1, time.Minute)
	now := time.Now()
	if !l.allow("a", now) || l.allow("a", now) {
		t.Fatalf("want one token then empty")
	}
	if !l.allow("a", now.Add(1100*time.Millisecond)) {
		t.Fatalf("want refill after a second")
	}
	l.allow("b", now.Add(2*time.Minute))
	if _, ok := l.m["a"]; ok {
		t.Fatalf("idle visitor should be pruned")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:999"
	if ip := clientIP(req); ip != "10.0.0.1" {
		t.Fatalf("got %q", ip)
	}
	req.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.1")
	if ip := clientIP(req); ip != "9.9.9.9" {
		t.Fatalf("got %q", ip)
	}
}
