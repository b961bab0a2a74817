package model

import "time"

// Event represents a scheduled guild activity
type Event struct {
	ID              string    `json:"id"`
	GuildID         string    `json:"guild_id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	StartAt         time.Time `json:"start_at"`
	Timezone        string    `json:"timezone"`
	RequiredRoleIDs []string  `json:"required_role_ids"`
	CreatedBy       string    `json:"created_by"`
	CreatedOn       time.Time `json:"created_on"`
	UpdatedOn       time.Time `json:"updated_on"`
}

// EffectiveRequiredRoles returns the role IDs gating attendance: the event's
// own set when present, otherwise the configured default.
func (e *Event) EffectiveRequiredRoles(defaultRoleIDs []string) []string {
	if len(e.RequiredRoleIDs) > 0 {
		return e.RequiredRoleIDs
	}
	return defaultRoleIDs
}

// EventAttendee represents a user's attendance on an event
type EventAttendee struct {
	ID            string    `json:"id"`
	EventID       string    `json:"event_id"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator"`
	JoinedOn      time.Time `json:"joined_on"`
}

// EventWithAttendees includes the attendee list, join order ascending
type EventWithAttendees struct {
	Event     Event           `json:"event"`
	Attendees []EventAttendee `json:"attendees"`
}

// Constraints
const (
	MaxEventTitleLength       = 100
	MaxEventDescriptionLength = 2000
	DefaultEventTimezone      = "UTC"
)

// CreateEventRequest represents a request to create an event
type CreateEventRequest struct {
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	StartAt         time.Time `json:"start_at"`
	Timezone        string    `json:"timezone,omitempty"`
	RequiredRoleIDs []string  `json:"required_role_ids,omitempty"`
}

// Validate validates a CreateEventRequest
func (r *CreateEventRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Title == "" {
		errors = append(errors, FieldError{Field: "title", Message: "title is required"})
	} else if len(r.Title) > MaxEventTitleLength {
		errors = append(errors, FieldError{Field: "title", Message: "title too long"})
	}

	if r.Description != nil && len(*r.Description) > MaxEventDescriptionLength {
		errors = append(errors, FieldError{Field: "description", Message: "description too long"})
	}

	if r.StartAt.IsZero() {
		errors = append(errors, FieldError{Field: "start_at", Message: "start_at is required"})
	}

	return errors
}
