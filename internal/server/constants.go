package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
	ErrMsgDebugDisabled   = "Not Found"
)

// Security alert messages
const (
	SecurityAlertFailedAuth = "Repeated debug authentication failures"
	SecurityAlertHighRate   = "Client over request rate limit"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Debug authentication failed"
)

const (
	HeaderAPIKey        = "X-API-Key"
	HeaderAuthorization = "Authorization"
	HeaderForwardedFor  = "X-Forwarded-For"
)

// securityHeaders are set on every response
var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "SAMEORIGIN"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Cache-Control", "no-store"},
}

// Request limits
const (
	// MaxRequestBytes covers the largest camera frame upload
	MaxRequestBytes = 10 << 20

	// RateWindow is the window over which per-IP requests are counted
	RateWindow = 5 * time.Minute

	// RateLimit is the number of requests one IP may make per window. A
	// scanning client uploads a few frames per second.
	RateLimit = 6000

	// FailedAuthAlertThreshold triggers a security alert per IP
	FailedAuthAlertThreshold = 5

	// rateAlertEvery throttles the over-limit warning for one client
	rateAlertEvery = 100

	ReadHeaderTimeout = 5 * time.Second
)

// Paths excluded from request logging
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
