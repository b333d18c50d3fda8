// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"

	"pulse/internal/config"
	"pulse/internal/server/handlers"
	"pulse/internal/service/realtime"
	"pulse/internal/service/social"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	natsConn *nats.Conn,
	aggregator *social.Aggregator,
	analyzer handlers.ContentAnalyzer,
	registry *realtime.Registry,
	broadcaster *realtime.Broadcaster,
	snapshots handlers.SnapshotReader,
	defaults handlers.AccountDefaults,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	analyticsHandler := handlers.NewAnalyticsHandler(aggregator, snapshots)
	socialMediaHandler := handlers.NewSocialMediaHandler(aggregator, defaults)
	contentHandler := handlers.NewContentHandler(analyzer)
	insightsHandler := handlers.NewInsightsHandler(analyzer)

	// Health check
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Dashboard API
	router.Route("/analytics", func(r chi.Router) {
		r.Get("/", analyticsHandler.GetAnalytics)
		r.Post("/", analyticsHandler.IngestAnalytics)
	})

	router.Route("/social-media", func(r chi.Router) {
		r.Get("/", socialMediaHandler.GetAggregate)
		r.Post("/", socialMediaHandler.GetRealTimeUpdates)
	})

	router.Route("/content", func(r chi.Router) {
		r.Get("/analyze", contentHandler.GetAnalysis)
		r.Post("/analyze", contentHandler.AnalyzeContent)
	})

	router.Route("/ai-insights", func(r chi.Router) {
		r.Get("/", insightsHandler.GetInsights)
		r.Post("/", insightsHandler.ProcessContent)
	})

	// WebSocket endpoint for real-time communications
	router.Get("/ws", handlers.LiveHandler(natsConn, registry, broadcaster, analyzer))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
