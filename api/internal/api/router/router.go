package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"ecourts/api/internal/api/handlers"
	"ecourts/api/internal/api/middleware"
)

// RouterConfig defines the strict dependencies required to build the API routing tree.
type RouterConfig struct {
	AllowedOrigins []string
	AuthHandler    *handlers.AuthHandler
	CaseHandler    *handlers.CaseHandler
	CourtHandler   *handlers.CourtHandler
	HealthHandler  *handlers.HealthHandler
	UpstreamAuth   *middleware.UpstreamAuth
	Logger         *slog.Logger
}

// NewRouter constructs the Chi multiplexer, attaches global middleware, and wires all endpoints.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// =========================================================================
	// 1. Global Gateway Middleware Pipeline
	// =========================================================================

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Incoming JSON payloads are tiny lookup parameters; 1 MiB is generous.
	r.Use(middleware.MaxBytes(1_048_576))

	rl := middleware.NewRateLimiter()
	r.Use(rl.Limit)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// =========================================================================
	// 2. API v1 Routing Tree
	// =========================================================================

	r.Route("/api/v1", func(r chi.Router) {

		// Token issuance needs no upstream token of its own.
		r.Post("/auth/token", cfg.AuthHandler.IssueToken)

		// Every lookup requires an upstream bearer token: the caller's, or a
		// freshly issued one.
		r.Group(func(r chi.Router) {
			r.Use(cfg.UpstreamAuth.RequireToken)

			r.Get("/cases/{cnr}", cfg.CaseHandler.GetByCNR)

			r.Route("/court", func(r chi.Router) {
				r.Get("/states", cfg.CourtHandler.States)
				r.Post("/districts", cfg.CourtHandler.Districts)
				r.Post("/complex", cfg.CourtHandler.Complex)
				r.Post("/names", cfg.CourtHandler.Names)
				r.Post("/cause-list", cfg.CourtHandler.CauseList)
			})
		})
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/health", cfg.HealthHandler.Check)

	return r
}
