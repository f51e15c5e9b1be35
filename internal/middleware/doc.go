// Package middleware provides HTTP middleware for the task registry API.
//
// Components compose with Chain, outermost first:
//
//	handler := middleware.Chain(mux,
//		middleware.RequestID,
//		middleware.Logger,
//		middleware.Recovery,
//		middleware.CORS(cfg.AllowedOrigins),
//	)
//
//   - RequestID: assigns or propagates an X-Request-ID header
//   - Logger: structured per-request log line via slog
//   - Recovery: converts panics into a 500 problem response
//   - CORS: origin allowlist plus preflight handling
//   - Compress: gzip response bodies when the client accepts them
//
// Handlers can read the request ID back with GetRequestID(r.Context()).
package middleware
