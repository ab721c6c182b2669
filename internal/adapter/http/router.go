package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/payrails/internal/adapter/http/handler"
	"github.com/iho/payrails/internal/adapter/http/middleware"
	"github.com/iho/payrails/internal/infrastructure/metrics"
	"github.com/iho/payrails/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransferHandler  *handler.TransferHandler
	ScheduleHandler  *handler.ScheduleHandler
	CallbackHandler  *handler.CallbackHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Metrics          *metrics.Metrics
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Rail callbacks stay outside the customer idempotency layer: they carry
	// the rail's own dedupe semantics on the transfer reference.
	r.Post("/callbacks/{rail}/settlement", cfg.CallbackHandler.Settlement)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Submit)
			r.Get("/{reference}", cfg.TransferHandler.Get)
			r.Post("/{reference}/cancel", cfg.TransferHandler.Cancel)
		})

		// Accounts
		r.Get("/accounts/{id}/transfers", cfg.TransferHandler.ListByAccount)

		// Standing instructions
		r.Route("/schedules", func(r chi.Router) {
			r.Post("/", cfg.ScheduleHandler.Create)
			r.Get("/", cfg.ScheduleHandler.ListByUser)
			r.Get("/{id}", cfg.ScheduleHandler.Get)
			r.Patch("/{id}", cfg.ScheduleHandler.Update)
			r.Delete("/{id}", cfg.ScheduleHandler.Cancel)
		})
	})

	return r
}
