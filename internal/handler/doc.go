// Package handler provides HTTP request handlers for the Overlay API.
//
// The handler package contains all HTTP endpoint implementations organized by
// domain. Each handler struct encapsulates the dependencies needed to serve
// requests for a specific feature area (auth, events, crafting, overlay).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts service dependencies
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details responses
//
// # Response Format
//
// Handlers use standardized response functions:
//
//   - WriteData: Single resource with optional HATEOAS links
//   - WriteCollection: List of resources
//   - WriteJSON: Raw JSON response
//   - WriteError: RFC 9457 Problem Details error response
//
// # Authentication
//
// Most handlers require a session token. The auth middleware resolves it into
// a principal available via middleware.GetPrincipal(r.Context()).
//
// # Example Usage
//
//	eventHandler := NewEventHandler(eventService)
//	mux.HandleFunc("GET /v1/events", eventHandler.List)
//	mux.HandleFunc("POST /v1/events", eventHandler.Create)
package handler
