package repository

import (
	"context"
	"errors"
	"time"

	"github.com/obsidianempire/overlay/api/internal/database"
	"github.com/obsidianempire/overlay/api/internal/model"
)

// EventRepository handles event and attendee data access
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		CREATE event CONTENT {
			guild_id: $guild_id,
			title: $title,
			description: $description,
			start_at: $start_at,
			timezone: $timezone,
			required_role_ids: $required_role_ids,
			created_by: $created_by,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"guild_id":          event.GuildID,
		"title":             event.Title,
		"description":       event.Description,
		"start_at":          event.StartAt,
		"timezone":          event.Timezone,
		"required_role_ids": event.RequiredRoleIDs,
		"created_by":        event.CreatedBy,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	event.ID = created.ID
	event.CreatedOn = created.CreatedOn
	event.UpdatedOn = created.UpdatedOn
	return nil
}

// Get retrieves an event by ID. Returns nil when the event does not exist.
func (r *EventRepository) Get(ctx context.Context, eventID string) (*model.Event, error) {
	query := `SELECT * FROM type::record($event_id)`
	vars := map[string]interface{}{"event_id": eventID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.parseEventResult(result)
}

// List retrieves all events ordered by start time ascending
func (r *EventRepository) List(ctx context.Context) ([]*model.Event, error) {
	query := `SELECT * FROM event ORDER BY start_at ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return r.parseEventsResult(result)
}

// ListBetween retrieves events with start times in [from, until] inclusive,
// ordered by start time ascending
func (r *EventRepository) ListBetween(ctx context.Context, from, until time.Time) ([]*model.Event, error) {
	query := `
		SELECT * FROM event
		WHERE start_at >= $from
		AND start_at <= $until
		ORDER BY start_at ASC
	`
	vars := map[string]interface{}{
		"from":  from,
		"until": until,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return r.parseEventsResult(result)
}

// Delete deletes an event and its attendees atomically
func (r *EventRepository) Delete(ctx context.Context, eventID string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`DELETE type::record($event_id)`, map[string]interface{}{"event_id": eventID})
	batch.Add(`DELETE event_attendee WHERE event_id = $event_id`, map[string]interface{}{"event_id": eventID})
	return batch.Execute(ctx, r.db)
}

// AddAttendee records a user joining an event. A repeat join for the same
// event and user is a no-op.
func (r *EventRepository) AddAttendee(ctx context.Context, attendee *model.EventAttendee) error {
	query := `
		CREATE event_attendee CONTENT {
			event_id: $event_id,
			user_id: $user_id,
			username: $username,
			discriminator: $discriminator,
			joined_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"event_id":      attendee.EventID,
		"user_id":       attendee.UserID,
		"username":      attendee.Username,
		"discriminator": attendee.Discriminator,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil
		}
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	attendee.ID = created.ID
	attendee.JoinedOn = created.CreatedOn
	return nil
}

// GetAttendee retrieves an attendee record by event and user.
// Returns nil when the user has not joined the event.
func (r *EventRepository) GetAttendee(ctx context.Context, eventID, userID string) (*model.EventAttendee, error) {
	query := `
		SELECT * FROM event_attendee
		WHERE event_id = $event_id
		AND user_id = $user_id
		LIMIT 1
	`
	vars := map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.parseAttendeeResult(result)
}

// RemoveAttendee removes a user from an event. Removing a user who has not
// joined is a no-op.
func (r *EventRepository) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	query := `
		DELETE event_attendee
		WHERE event_id = $event_id
		AND user_id = $user_id
	`
	vars := map[string]interface{}{
		"event_id": eventID,
		"user_id":  userID,
	}

	return r.db.Execute(ctx, query, vars)
}

// ListAttendees retrieves all attendees for an event ordered by join time ascending
func (r *EventRepository) ListAttendees(ctx context.Context, eventID string) ([]model.EventAttendee, error) {
	query := `
		SELECT * FROM event_attendee
		WHERE event_id = $event_id
		ORDER BY joined_on ASC
	`
	vars := map[string]interface{}{"event_id": eventID}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return r.parseAttendeesResult(result)
}

// ListAttendeesForEvents retrieves attendees for a set of events ordered by
// join time ascending
func (r *EventRepository) ListAttendeesForEvents(ctx context.Context, eventIDs []string) ([]model.EventAttendee, error) {
	if len(eventIDs) == 0 {
		return []model.EventAttendee{}, nil
	}

	query := `
		SELECT * FROM event_attendee
		WHERE event_id INSIDE $event_ids
		ORDER BY joined_on ASC
	`
	vars := map[string]interface{}{"event_ids": eventIDs}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return r.parseAttendeesResult(result)
}

// Helper functions

func (r *EventRepository) parseEventResult(result interface{}) (*model.Event, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	event := &model.Event{
		ID:              convertSurrealID(data["id"]),
		GuildID:         getString(data, "guild_id"),
		Title:           getString(data, "title"),
		Description:     getStringPtr(data, "description"),
		Timezone:        getString(data, "timezone"),
		RequiredRoleIDs: getStringSlice(data, "required_role_ids"),
		CreatedBy:       getString(data, "created_by"),
	}

	if t := getTime(data, "start_at"); t != nil {
		event.StartAt = *t
	}
	if t := getTime(data, "created_on"); t != nil {
		event.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		event.UpdatedOn = *t
	}

	return event, nil
}

func (r *EventRepository) parseEventsResult(result []interface{}) ([]*model.Event, error) {
	events := make([]*model.Event, 0)

	for _, res := range result {
		if resp, ok := res.(map[string]interface{}); ok {
			if resultData, ok := resp["result"].([]interface{}); ok {
				for _, item := range resultData {
					event, err := r.parseEventResult(item)
					if err != nil {
						continue
					}
					events = append(events, event)
				}
				continue
			}
		}

		event, err := r.parseEventResult(res)
		if err != nil {
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

func (r *EventRepository) parseAttendeeResult(result interface{}) (*model.EventAttendee, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	attendee := &model.EventAttendee{
		ID:            convertSurrealID(data["id"]),
		EventID:       getString(data, "event_id"),
		UserID:        getString(data, "user_id"),
		Username:      getString(data, "username"),
		Discriminator: getString(data, "discriminator"),
	}

	if t := getTime(data, "joined_on"); t != nil {
		attendee.JoinedOn = *t
	}

	return attendee, nil
}

func (r *EventRepository) parseAttendeesResult(result []interface{}) ([]model.EventAttendee, error) {
	attendees := make([]model.EventAttendee, 0)

	for _, res := range result {
		if resp, ok := res.(map[string]interface{}); ok {
			if resultData, ok := resp["result"].([]interface{}); ok {
				for _, item := range resultData {
					attendee, err := r.parseAttendeeResult(item)
					if err != nil {
						continue
					}
					attendees = append(attendees, *attendee)
				}
				continue
			}
		}

		attendee, err := r.parseAttendeeResult(res)
		if err != nil {
			continue
		}
		attendees = append(attendees, *attendee)
	}

	return attendees, nil
}
