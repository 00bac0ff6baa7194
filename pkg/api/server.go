package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/talentgraph/pkg/api/middleware"
	"github.com/dd0wney/talentgraph/pkg/logging"
)

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.PanicRecovery(s.logger))
	r.Use(middleware.Logging(s.logger))
	r.Use(middleware.Metrics(s.metricsRegistry))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader, middleware.SessionIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.BodySizeLimit(s.cfg.Server.MaxBodyBytes))
	r.Use(middleware.Session())

	r.Get("/health", s.health.Handler())
	r.Get("/health/ready", s.health.ReadinessHandler())
	r.Get("/health/live", s.health.LivenessHandler())
	r.Handle("/metrics", promhttp.HandlerFor(s.metricsRegistry.GetPrometheusRegistry(), promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIHeaders())

		r.Route("/torre", func(r chi.Router) {
			r.With(s.searchLimiter.Middleware()).Post("/search", s.handleTorreSearch)
			r.Get("/genome/{username}", s.handleTorreGenome)
		})

		r.Route("/network", func(r chi.Router) {
			r.Get("/", s.handleGetNetwork)
			r.With(s.searchLimiter.Middleware()).Post("/search", s.handleNetworkSearch)
			r.Post("/demo", s.handleNetworkDemo)
			r.Put("/filter", s.handleSetFilter)
			r.Delete("/filter", s.handleResetFilter)
			r.Get("/layout", s.handleLayout)
			r.Get("/nodes/{id}", s.handleNode)
		})
	})

	r.Handle("/graphql", s.graphqlHandler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

// HTTPServer builds an http.Server for the configured address.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}

// StartMaintenance starts the background loop that refreshes system metrics
// and sweeps idle sessions. StopMaintenance ends it.
func (s *Server) StartMaintenance() {
	s.metricsWg.Add(1)
	go s.maintain()
}

// StopMaintenance stops the background loop and waits for it. It is safe to
// call more than once.
func (s *Server) StopMaintenance() {
	s.stopOnce.Do(func() {
		close(s.metricsStopCh)
	})
	s.metricsWg.Wait()
}

func (s *Server) maintain() {
	defer s.metricsWg.Done()

	ticker := time.NewTicker(s.maintenanceInterval)
	defer ticker.Stop()

	s.metricsRegistry.UpdateSystemMetrics(s.startTime)
	for {
		select {
		case <-s.metricsStopCh:
			return
		case now := <-ticker.C:
			s.metricsRegistry.UpdateSystemMetrics(s.startTime)
			if n := s.sessions.Sweep(now); n > 0 {
				s.logger.Info("swept idle sessions", logging.Count(n))
			}
			s.searchLimiter.Cleanup()
		}
	}
}
