// Package middleware provides HTTP middleware for the Overlay API.
//
// The middleware package contains reusable middleware components for
// authentication, rate limiting, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: session token validation and principal extraction
//   - RateLimit: per-client rate limiting, keyed by principal, bearer token, or address
//   - RequestID: unique request identifier propagation
//   - Logger: structured request logging
//   - Recovery: panic recovery with a problem details response
//   - Compress: gzip response compression
//
// # Authentication
//
// The auth middleware validates session tokens and rechecks the guild
// allow-list on every request:
//
//	handler = middleware.Chain(mux,
//	    middleware.Recovery,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Auth(authService),
//	)
//
// After authentication, handlers can access the principal:
//
//	principal := middleware.GetPrincipal(r.Context())
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetPrincipal(ctx): Returns the authenticated principal
//   - GetUserID(ctx): Returns the authenticated user ID
//   - GetRequestID(ctx): Returns the unique request identifier
package middleware
