package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/MelodyQuest_Go/internal/logger"
)

// clientIPFunc identifies the client behind a request
type clientIPFunc func(*http.Request) string

// clientIP returns the remote address of r, or the rightmost X-Forwarded-For
// hop when the remote address is one of trustedProxies.
func clientIP(trustedProxies []string) clientIPFunc {
	trusted := make(map[string]struct{}, len(trustedProxies))
	for _, p := range trustedProxies {
		trusted[strings.TrimSpace(p)] = struct{}{}
	}

	return func(r *http.Request) string {
		remote, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			remote = r.RemoteAddr
		}
		if _, ok := trusted[remote]; !ok {
			return remote
		}

		forwarded := r.Header.Get(HeaderForwardedFor)
		if forwarded == "" {
			return remote
		}
		hops := strings.Split(forwarded, ",")
		return strings.TrimSpace(hops[len(hops)-1])
	}
}

// clientWindow holds one client's counters for the current window
type clientWindow struct {
	requests   int
	failedAuth int
}

// ClientGuard counts requests and failed debug logins per client over a
// fixed RateWindow. All counters reset together when the window rolls over.
type ClientGuard struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	started time.Time
	clients map[string]*clientWindow
	now     func() time.Time
}

// NewClientGuard allows limit requests per client per RateWindow
func NewClientGuard(limit int) *ClientGuard {
	return &ClientGuard{
		limit:   limit,
		window:  RateWindow,
		started: time.Now(),
		clients: make(map[string]*clientWindow),
		now:     time.Now,
	}
}

// client returns the counters for ip, rolling the window first.
// Caller must hold the mutex.
func (g *ClientGuard) client(ip string) *clientWindow {
	if now := g.now(); now.Sub(g.started) > g.window {
		g.clients = make(map[string]*clientWindow)
		g.started = now
	}
	c, ok := g.clients[ip]
	if !ok {
		c = &clientWindow{}
		g.clients[ip] = c
	}
	return c
}

// Allow records one request from ip and reports whether it is within the limit
func (g *ClientGuard) Allow(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.client(ip)
	c.requests++
	if c.requests <= g.limit {
		return true
	}
	if (c.requests-g.limit)%rateAlertEvery == 1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", c.requests)
	}
	return false
}

// FailedAuth records a rejected debug key from ip
func (g *ClientGuard) FailedAuth(ip string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := g.client(ip)
	c.failedAuth++
	if c.failedAuth >= FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", c.failedAuth)
	}
}

// RateLimitMiddleware rejects clients over the guard's limit with 429
func RateLimitMiddleware(ipOf clientIPFunc, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !guard.Allow(ipOf(r)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// DebugAuthMiddleware guards the debug routes with an API key. An empty key
// hides the routes entirely.
func DebugAuthMiddleware(apiKey string, ipOf clientIPFunc, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				http.Error(w, ErrMsgDebugDisabled, http.StatusNotFound)
				return
			}

			provided := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				ip := ipOf(r)
				guard.FailedAuth(ip)
				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", provided != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets the fixed response hardening headers
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, kv := range securityHeaders {
			h.Set(kv[0], kv[1])
		}
		next.ServeHTTP(w, r)
	})
}
