package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/CityProduction_Go/internal/city"
	"github.com/osse101/CityProduction_Go/internal/database"
	"github.com/osse101/CityProduction_Go/internal/handler"
	"github.com/osse101/CityProduction_Go/internal/metrics"
)

// Options configures the HTTP server
type Options struct {
	Port            int
	APIKey          string
	TrustedProxies  []string
	MaxRequestBytes int64
	Detector        DetectorConfig

	// DBPool is nil when report persistence is disabled
	DBPool  database.Pool
	Rules   handler.RuleCatalog
	Service city.Service
}

// Server is the production HTTP API
type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer creates a new Server instance
func NewServer(opts Options) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector(opts.Detector)

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(opts.MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(opts.DBPool))
	r.Get("/version", handler.HandleVersion(opts.Rules.Digest()))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	production := handler.NewProductionHandler(opts.Service, opts.Rules)
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/production", func(r chi.Router) {
			r.Post("/city", production.HandleRecomputeCity())
			r.Post("/turn", production.HandleRecomputeTurn())
			r.Get("/city/{cityID}", production.HandleGetLatestReport())
		})
		r.Get("/resource-types", production.HandleListResourceTypes())
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
		router: r,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server; it returns http.ErrServerClosed after Stop
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
