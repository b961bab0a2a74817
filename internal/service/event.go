package service

import (
	"context"
	"time"

	"github.com/obsidianempire/overlay/api/internal/model"
)

// EventRepository defines the repository interface for events and attendees
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Get(ctx context.Context, eventID string) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	ListBetween(ctx context.Context, from, until time.Time) ([]*model.Event, error)
	AddAttendee(ctx context.Context, attendee *model.EventAttendee) error
	GetAttendee(ctx context.Context, eventID, userID string) (*model.EventAttendee, error)
	RemoveAttendee(ctx context.Context, eventID, userID string) error
	ListAttendees(ctx context.Context, eventID string) ([]model.EventAttendee, error)
	ListAttendeesForEvents(ctx context.Context, eventIDs []string) ([]model.EventAttendee, error)
}

// EventService handles event scheduling and attendance
type EventService struct {
	eventRepo      EventRepository
	defaultRoleIDs []string
	alertLead      time.Duration
}

// EventServiceConfig holds configuration for the event service
type EventServiceConfig struct {
	EventRepo      EventRepository
	DefaultRoleIDs []string
	AlertLead      time.Duration
}

// NewEventService creates a new event service
func NewEventService(cfg EventServiceConfig) *EventService {
	return &EventService{
		eventRepo:      cfg.EventRepo,
		defaultRoleIDs: cfg.DefaultRoleIDs,
		alertLead:      cfg.AlertLead,
	}
}

// AlertLead returns the configured alert lead window
func (s *EventService) AlertLead() time.Duration {
	return s.alertLead
}

// Create creates a new event. Only principals with the create-events
// capability may create them.
func (s *EventService) Create(ctx context.Context, principal *model.Principal, req *model.CreateEventRequest) (*model.Event, error) {
	if !principal.CanCreateEvents {
		return nil, ErrCannotCreateEvents
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = model.DefaultEventTimezone
	}

	requiredRoles := req.RequiredRoleIDs
	if len(requiredRoles) == 0 {
		requiredRoles = s.defaultRoleIDs
	}

	event := &model.Event{
		GuildID:         principal.HomeGuildID(),
		Title:           req.Title,
		Description:     req.Description,
		StartAt:         req.StartAt,
		Timezone:        timezone,
		RequiredRoleIDs: requiredRoles,
		CreatedBy:       principal.UserID,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// Join adds the principal to an event's attendee list. Joining an event
// already joined is a no-op. Attendance is gated on the event's effective
// required roles.
func (s *EventService) Join(ctx context.Context, principal *model.Principal, eventID string) (*model.EventWithAttendees, error) {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if err := s.checkEventRole(principal, event); err != nil {
		return nil, err
	}

	existing, err := s.eventRepo.GetAttendee(ctx, eventID, principal.UserID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		attendee := &model.EventAttendee{
			EventID:       eventID,
			UserID:        principal.UserID,
			Username:      principal.Username,
			Discriminator: principal.Discriminator,
		}
		if err := s.eventRepo.AddAttendee(ctx, attendee); err != nil {
			return nil, err
		}
	}

	return s.withAttendees(ctx, event)
}

// Leave removes the principal from an event's attendee list. Leaving an
// event not joined is a no-op.
func (s *EventService) Leave(ctx context.Context, principal *model.Principal, eventID string) (*model.EventWithAttendees, error) {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	if err := s.eventRepo.RemoveAttendee(ctx, eventID, principal.UserID); err != nil {
		return nil, err
	}

	return s.withAttendees(ctx, event)
}

// ListAttendees returns an event's attendees ordered by join time
func (s *EventService) ListAttendees(ctx context.Context, eventID string) ([]model.EventAttendee, error) {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}

	return s.eventRepo.ListAttendees(ctx, eventID)
}

// List returns all events with their attendees, start time ascending
func (s *EventService) List(ctx context.Context) ([]model.EventWithAttendees, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	eventIDs := make([]string, 0, len(events))
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
	}

	attendees, err := s.eventRepo.ListAttendeesForEvents(ctx, eventIDs)
	if err != nil {
		return nil, err
	}

	byEvent := make(map[string][]model.EventAttendee, len(events))
	for _, a := range attendees {
		byEvent[a.EventID] = append(byEvent[a.EventID], a)
	}

	result := make([]model.EventWithAttendees, 0, len(events))
	for _, e := range events {
		list := byEvent[e.ID]
		if list == nil {
			list = []model.EventAttendee{}
		}
		result = append(result, model.EventWithAttendees{Event: *e, Attendees: list})
	}

	return result, nil
}

// UpcomingAlerts returns events starting within the alert lead window
// from now, inclusive on both ends
func (s *EventService) UpcomingAlerts(ctx context.Context, now time.Time) ([]*model.Event, error) {
	return s.eventRepo.ListBetween(ctx, now, now.Add(s.alertLead))
}

// checkEventRole enforces the event's effective required roles against the
// principal's roles in the event's guild
func (s *EventService) checkEventRole(principal *model.Principal, event *model.Event) error {
	required := event.EffectiveRequiredRoles(s.defaultRoleIDs)
	if len(required) == 0 {
		return nil
	}

	guildID := event.GuildID
	if guildID == "" {
		guildID = principal.HomeGuildID()
	}

	if !model.HasAnyRole(principal.RolesIn(guildID), required) {
		return ErrRoleRequired
	}
	return nil
}

func (s *EventService) withAttendees(ctx context.Context, event *model.Event) (*model.EventWithAttendees, error) {
	attendees, err := s.eventRepo.ListAttendees(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	return &model.EventWithAttendees{Event: *event, Attendees: attendees}, nil
}
