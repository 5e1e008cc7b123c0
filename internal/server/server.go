package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/MelodyQuest_Go/internal/handler"
	"github.com/osse101/MelodyQuest_Go/internal/logger"
	"github.com/osse101/MelodyQuest_Go/internal/metrics"
	"github.com/osse101/MelodyQuest_Go/internal/player"
	"github.com/osse101/MelodyQuest_Go/internal/sse"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	ServiceName    string
	Version        string
	DebugAPIKey    string
	TrustedProxies []string
	RateLimit      int
}

// Dependencies are the services the routes call into
type Dependencies struct {
	Players *player.Registry
	Hub     *sse.Hub
	Store   handler.Pinger
	Tones   handler.ToneSource
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
			// No WriteTimeout: event streams stay open for the whole session
		},
	}
}

// NewRouter builds the full route table
func NewRouter(opts Options, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	limit := opts.RateLimit
	if limit <= 0 {
		limit = RateLimit
	}
	guard := NewClientGuard(limit)
	ipOf := clientIP(opts.TrustedProxies)

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware)
	r.Use(RateLimitMiddleware(ipOf, guard))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion(opts.ServiceName, opts.Version))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	players := handler.NewPlayerHandler(deps.Players, deps.Hub)
	debugAuth := DebugAuthMiddleware(opts.DebugAPIKey, ipOf, guard)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/players", players.HandleCreate)

		r.Route("/players/{"+handler.URLParamPlayerID+"}", func(r chi.Router) {
			r.Use(players.PlayerCtx)

			r.Get("/state", players.HandleState)
			r.Get("/events", players.HandleEvents)
			r.Post("/navigate", players.HandleNavigate)
			r.Post("/step", players.HandleStep)
			r.Post("/spin", players.HandleSpin)
			r.Post("/reset", players.HandleReset)
			r.Post("/quiz/answer", players.HandleQuizAnswer)

			r.Route("/capture/{scene}", func(r chi.Router) {
				r.Post("/start", players.HandleCaptureStart)
				r.Post("/stop", players.HandleCaptureStop)
				r.Post("/detection", players.HandleCaptureDetection)
				r.Post("/frame", players.HandleCaptureFrame)
			})

			r.Route("/debug", func(r chi.Router) {
				r.Use(debugAuth)
				r.Post("/goto", players.HandleDebugGoto)
				r.Post("/grant", players.HandleDebugGrant)
			})
		})

		r.Get("/tones/{token}.wav", handler.HandleTone(deps.Tones))
	})

	return r
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush passes through so event streams reach the client
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
