package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/MikeSquared-Agency/resonance/internal/engine"
)

// BusStatus reports message bus connectivity.
type BusStatus interface {
	Connected() bool
}

type Server struct {
	router  *chi.Mux
	port    int
	engine  *engine.Engine
	bus     BusStatus
	limiter *rate.Limiter
	started time.Time
	http    *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimit caps /api/v1 traffic at rps requests per second with the
// given burst. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithBus reports the bus connection on the status route.
func WithBus(b BusStatus) Option {
	return func(s *Server) {
		s.bus = b
	}
}

// NewServer wires the HTTP API. An empty apiToken leaves the interaction
// routes open.
func NewServer(port int, apiToken string, eng *engine.Engine, opts ...Option) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:  router,
		port:    port,
		engine:  eng,
		started: time.Now(),
	}
	for _, o := range opts {
		o(s)
	}

	router.Get("/health", s.health)

	router.Route("/api/v1", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(RateLimitMiddleware(s.limiter))
		}
		r.Get("/resonance/status", s.status)
		r.Post("/score", s.score)
		r.Get("/classify", s.classify)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(apiToken))
			r.Post("/interactions", s.createInteraction)
			r.Get("/relationships", s.listRelationships)
			r.Get("/relationships/{userID}", s.getRelationship)
			r.Get("/relationships/{userID}/experiences", s.listExperiences)
		})
	})

	return s
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("API server starting", "addr", addr)
	return s.http.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"agent":          "resonance",
		"status":         "ok",
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
		"nats_connected": s.bus != nil && s.bus.Connected(),
		"stats":          s.engine.Stats(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
