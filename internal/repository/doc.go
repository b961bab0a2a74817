// Package repository implements the data access layer for the Overlay API.
//
// The repository package contains all database operations using SurrealDB.
// Each repository struct handles the data operations for one domain area:
// events and attendees, craft requests and assignments, and the managed
// roster with its attendance history.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database connection
//   - Methods implement specific data operations (Create, Get, List, etc.)
//   - SurrealQL queries are used for all database interactions
//   - Results are parsed and mapped to model structs
//
// Lookups for a single record return (nil, nil) when the record does not
// exist; callers decide whether that is an error.
//
// # Query Patterns
//
// Common query patterns used:
//
//   - Parameterized queries with $variable syntax for security
//   - type::record() for safe ID handling
//   - time::now() for automatic timestamps
//   - AtomicBatch for multi-statement writes that must commit together
//
// Guarded state transitions (claiming a craft request) run as a single
// transaction that re-checks the current state and THROWs to abort when
// the guard fails. The thrown message is mapped back to a database
// sentinel error.
//
// # Example Usage
//
//	repo := NewEventRepository(db)
//	event, err := repo.Get(ctx, "event:abc123")
//	if err != nil {
//	    return err
//	}
//	if event == nil {
//	    // Handle not found
//	}
package repository
