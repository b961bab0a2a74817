// Package service implements the business logic layer for the Overlay API.
//
// The service package contains all domain logic, validation rules, and
// orchestration of repository operations. Services are the primary
// abstraction between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts repository dependencies,
//     via a config struct when there are several
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Error Handling
//
// Services return domain-specific errors defined as package-level variables:
//
//	var (
//	    ErrEventNotFound = errors.New("event not found")
//	    ErrRoleRequired  = errors.New("missing a required role for this event")
//	)
//
// # Example Usage
//
//	service := NewEventService(EventServiceConfig{
//	    EventRepo:      eventRepository,
//	    DefaultRoleIDs: cfg.Discord.EventRoleIDs,
//	    AlertLead:      cfg.Alerts.Lead(),
//	})
//	event, err := service.Create(ctx, principal, &model.CreateEventRequest{
//	    Title:   "Friday Raid",
//	    StartAt: startAt,
//	})
package service
