// Package middleware provides the HTTP middleware used by the API server.
//
// Files are organised by concern:
//
//   - recovery.go: panic recovery
//   - request_id.go: request id propagation
//   - logging.go: structured request logging
//   - metrics.go: Prometheus request metrics
//   - body_limit.go: request body size limit
//   - headers.go: response hardening headers
//   - ratelimit.go: per-client rate limiting
//   - session.go: session id extraction
//
// All middleware has the shape func(http.Handler) http.Handler so it can be
// passed to chi's Router.Use:
//
//	r := chi.NewRouter()
//	r.Use(middleware.PanicRecovery(logger))
//	r.Use(middleware.RequestID())
//	r.Use(middleware.Logging(logger))
package middleware
