package database

import (
	"context"
	"fmt"
)

// schemaStatements define the indexes the query layer relies on. The
// unique index on event_attendee backs idempotent joins: a concurrent
// duplicate insert fails the constraint instead of creating a second
// row. The craft_assignment index enforces at most one claim per
// request. IF NOT EXISTS keeps reconnects idempotent.
var schemaStatements = []string{
	`DEFINE INDEX IF NOT EXISTS idx_event_attendee_unique ON TABLE event_attendee FIELDS event_id, user_id UNIQUE`,
	`DEFINE INDEX IF NOT EXISTS idx_craft_assignment_unique ON TABLE craft_assignment FIELDS request_id UNIQUE`,
}

// EnsureSchema applies the index definitions. Called once at startup,
// after Connect.
func EnsureSchema(ctx context.Context, db Database) error {
	for _, stmt := range schemaStatements {
		if err := db.Execute(ctx, stmt, nil); err != nil {
			return fmt.Errorf("failed to apply schema statement %q: %w", stmt, err)
		}
	}
	return nil
}
