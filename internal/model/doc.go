// Package model defines domain entities and data structures for the Overlay API.
//
// The model package contains all struct definitions for domain objects, request/response
// types, and error definitions. Models are used across all layers of the application.
//
// # Domain Entities
//
// Core domain entities include:
//
//   - Principal: Authenticated Discord user with authorized guilds and roles
//   - Event: Scheduled guild activity with role-gated attendance
//   - EventAttendee: A user's attendance on an event
//   - CraftRequest: Request for a crafted item, claimed by at most one crafter
//   - CraftAssignment: A crafter's claim on a request
//   - RosterMember: Managed guild roster entry
//   - AttendanceRecord: Historical attendance for past activities
//
// # JSON Serialization
//
// All models use json struct tags for API serialization:
//
//	type Event struct {
//	    ID      string    `json:"id"`
//	    Title   string    `json:"title"`
//	    StartAt time.Time `json:"start_at"`
//	}
//
// # Validation
//
// Request types expose Validate methods returning field errors:
//
//	if errs := req.Validate(); len(errs) > 0 {
//	    return model.NewValidationError(errs)
//	}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
