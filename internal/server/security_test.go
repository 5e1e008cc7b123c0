package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func (g *ClientGuard) snapshot(ip string) clientWindow {
	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.clients[ip]; ok {
		return *c
	}
	return clientWindow{}
}

func TestDebugAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"

	tests := []struct {
		name           string
		configuredKey  string
		providedKey    string
		expectedStatus int
	}{
		{"Valid API Key", apiKey, apiKey, http.StatusOK},
		{"Invalid API Key", apiKey, "wrong-key", http.StatusUnauthorized},
		{"Missing API Key", apiKey, "", http.StatusUnauthorized},
		{"Disabled without key", "", "", http.StatusNotFound},
		{"Disabled ignores provided key", "", "anything", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := DebugAuthMiddleware(tt.configuredKey, clientIP(nil), NewClientGuard(RateLimit))(okHandler())

			req := httptest.NewRequest(http.MethodPost, "/debug/goto", nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestDebugAuthMiddleware_RecordsFailedAttempts(t *testing.T) {
	guard := NewClientGuard(RateLimit)
	h := DebugAuthMiddleware("secret", clientIP(nil), guard)(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/debug/grant", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		req.Header.Set(HeaderAPIKey, "nope")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 3, guard.snapshot("10.0.0.7").failedAuth)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeadersMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	expected := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "SAMEORIGIN",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"Cache-Control":          "no-store",
	}
	for header, want := range expected {
		assert.Equal(t, want, rec.Header().Get(header), header)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	const limit = 50
	guard := NewClientGuard(limit)
	h := RateLimitMiddleware(clientIP(nil), guard)(okHandler())

	ip := "192.168.1.100"
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < limit; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if !assert.Equal(t, http.StatusOK, rec.Code, "request %d", i) {
			return
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Another client is unaffected
	other := httptest.NewRequest(http.MethodGet, "/test", nil)
	other.RemoteAddr = "192.168.1.101:1234"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, limit+1, guard.snapshot(ip).requests)
}

func TestClientGuard_WindowRollover(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	guard := NewClientGuard(1)
	guard.started = now
	guard.now = func() time.Time { return now }

	assert.True(t, guard.Allow("a"))
	assert.False(t, guard.Allow("a"))
	guard.FailedAuth("a")

	now = now.Add(RateWindow + time.Second)
	assert.True(t, guard.Allow("a"), "new window")
	assert.Equal(t, clientWindow{requests: 1}, guard.snapshot("a"))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		trusted   []string
		want      string
	}{
		{"direct", "203.0.113.5:4000", "", nil, "203.0.113.5"},
		{"untrusted proxy header ignored", "203.0.113.5:4000", "1.2.3.4", nil, "203.0.113.5"},
		{"trusted proxy uses rightmost", "10.0.0.1:4000", "9.9.9.9, 1.2.3.4", []string{"10.0.0.1"}, "1.2.3.4"},
		{"trusted proxy without header", "10.0.0.1:4000", "", []string{"10.0.0.1"}, "10.0.0.1"},
		{"trusted list is trimmed", "10.0.0.1:4000", "5.6.7.8", []string{" 10.0.0.1"}, "5.6.7.8"},
		{"no port", "203.0.113.9", "", nil, "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, clientIP(tt.trusted)(req))
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	h := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		_, err := r.Body.Read(buf)
		for err == nil {
			_, err = r.Body.Read(buf)
		}
		var maxErr *http.MaxBytesError
		if assert.ErrorAs(t, err, &maxErr) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789abcdef"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
