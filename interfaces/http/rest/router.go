package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"kgraph/interfaces/http/rest/handlers"
	"kgraph/interfaces/http/rest/middleware"
	"kgraph/pkg/common"
	"kgraph/pkg/observability"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options toggle optional router surfaces.
type Options struct {
	EnableCORS    bool
	EnableMetrics bool
}

// Router creates and configures the HTTP router
type Router struct {
	reader     handlers.GraphReader
	mutator    handlers.GraphMutator
	supervisor handlers.Supervisor
	store      Pinger
	metrics    *observability.Metrics
	gatherer   prometheus.Gatherer
	opts       Options
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	reader handlers.GraphReader,
	mutator handlers.GraphMutator,
	supervisor handlers.Supervisor,
	store Pinger,
	metrics *observability.Metrics,
	gatherer prometheus.Gatherer,
	opts Options,
	logger *zap.Logger,
) *Router {
	return &Router{
		reader:     reader,
		mutator:    mutator,
		supervisor: supervisor,
		store:      store,
		metrics:    metrics,
		gatherer:   gatherer,
		opts:       opts,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))

	if rt.opts.EnableCORS {
		// The visualization frontend is served from an arbitrary origin.
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.opts.EnableMetrics {
		router.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api", func(r chi.Router) {
		graphHandler := handlers.NewGraphHandler(rt.reader, rt.logger)
		r.Get("/graph", graphHandler.GetGraph)
		r.Get("/concepts/search", graphHandler.SearchConcepts)
		r.Get("/statistics", graphHandler.GetStatistics)

		relationshipHandler := handlers.NewRelationshipHandler(rt.mutator, rt.logger)
		r.Post("/relationships", relationshipHandler.CreateRelationship)
		r.Post("/cleanup", relationshipHandler.Cleanup)

		workerHandler := handlers.NewWorkerHandler(rt.supervisor, rt.logger)
		r.Route("/builder", func(r chi.Router) {
			r.Post("/start", workerHandler.StartBuilder)
			r.Post("/stop", workerHandler.StopBuilder)
		})
		r.Route("/enricher", func(r chi.Router) {
			r.Post("/start", workerHandler.StartEnricher)
			r.Post("/stop", workerHandler.StopEnricher)
		})
		r.Get("/workers/status", workerHandler.Status)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.RespondError(w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		common.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports ready only when the store answers a ping.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 5*time.Second)
	defer cancel()

	if err := rt.store.Ping(ctx); err != nil {
		rt.logger.Warn("Readiness check failed", zap.Error(err))
		common.RespondError(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
