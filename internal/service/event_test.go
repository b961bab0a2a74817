package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/obsidianempire/overlay/api/internal/model"
)

// ============================================================================
// Mock Event Repository
// ============================================================================

type mockEventRepo struct {
	events    map[string]*model.Event
	attendees map[string][]model.EventAttendee
	nextID    int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{
		events:    make(map[string]*model.Event),
		attendees: make(map[string][]model.EventAttendee),
	}
}

func (m *mockEventRepo) Create(ctx context.Context, event *model.Event) error {
	m.nextID++
	event.ID = fmt.Sprintf("event:%d", m.nextID)
	event.CreatedOn = time.Now()
	event.UpdatedOn = event.CreatedOn
	copied := *event
	m.events[event.ID] = &copied
	return nil
}

func (m *mockEventRepo) Get(ctx context.Context, eventID string) (*model.Event, error) {
	event, ok := m.events[eventID]
	if !ok {
		return nil, nil
	}
	copied := *event
	return &copied, nil
}

func (m *mockEventRepo) List(ctx context.Context) ([]*model.Event, error) {
	events := make([]*model.Event, 0, len(m.events))
	for _, e := range m.events {
		copied := *e
		events = append(events, &copied)
	}
	return events, nil
}

func (m *mockEventRepo) ListBetween(ctx context.Context, from, until time.Time) ([]*model.Event, error) {
	events := make([]*model.Event, 0)
	for _, e := range m.events {
		if e.StartAt.Before(from) || e.StartAt.After(until) {
			continue
		}
		copied := *e
		events = append(events, &copied)
	}
	return events, nil
}

func (m *mockEventRepo) AddAttendee(ctx context.Context, attendee *model.EventAttendee) error {
	for _, a := range m.attendees[attendee.EventID] {
		if a.UserID == attendee.UserID {
			return nil
		}
	}
	m.nextID++
	attendee.ID = fmt.Sprintf("event_attendee:%d", m.nextID)
	attendee.JoinedOn = time.Now()
	m.attendees[attendee.EventID] = append(m.attendees[attendee.EventID], *attendee)
	return nil
}

func (m *mockEventRepo) GetAttendee(ctx context.Context, eventID, userID string) (*model.EventAttendee, error) {
	for _, a := range m.attendees[eventID] {
		if a.UserID == userID {
			copied := a
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockEventRepo) RemoveAttendee(ctx context.Context, eventID, userID string) error {
	kept := make([]model.EventAttendee, 0, len(m.attendees[eventID]))
	for _, a := range m.attendees[eventID] {
		if a.UserID != userID {
			kept = append(kept, a)
		}
	}
	m.attendees[eventID] = kept
	return nil
}

func (m *mockEventRepo) ListAttendees(ctx context.Context, eventID string) ([]model.EventAttendee, error) {
	return append([]model.EventAttendee{}, m.attendees[eventID]...), nil
}

func (m *mockEventRepo) ListAttendeesForEvents(ctx context.Context, eventIDs []string) ([]model.EventAttendee, error) {
	all := make([]model.EventAttendee, 0)
	for _, id := range eventIDs {
		all = append(all, m.attendees[id]...)
	}
	return all, nil
}

func testPrincipal(userID string, roles ...string) *model.Principal {
	return &model.Principal{
		UserID:          userID,
		Username:        "user-" + userID,
		Discriminator:   "0001",
		GuildIDs:        []string{"guild-1"},
		GuildRoles:      map[string][]string{"guild-1": roles},
		CanCreateEvents: true,
	}
}

func newTestEventService(repo *mockEventRepo, defaultRoles []string) *EventService {
	return NewEventService(EventServiceConfig{
		EventRepo:      repo,
		DefaultRoleIDs: defaultRoles,
		AlertLead:      30 * time.Minute,
	})
}

// ============================================================================
// Create Tests
// ============================================================================

func TestEventCreate_RequiresCapability(t *testing.T) {
	svc := newTestEventService(newMockEventRepo(), nil)
	principal := testPrincipal("u1")
	principal.CanCreateEvents = false

	_, err := svc.Create(context.Background(), principal, &model.CreateEventRequest{
		Title:   "Friday Raid",
		StartAt: time.Now().Add(time.Hour),
	})
	if !errors.Is(err, ErrCannotCreateEvents) {
		t.Errorf("expected ErrCannotCreateEvents, got %v", err)
	}
}

func TestEventCreate_Defaults(t *testing.T) {
	svc := newTestEventService(newMockEventRepo(), []string{"role-raider"})

	event, err := svc.Create(context.Background(), testPrincipal("u1"), &model.CreateEventRequest{
		Title:   "Friday Raid",
		StartAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if event.Timezone != model.DefaultEventTimezone {
		t.Errorf("Timezone = %q, want %q", event.Timezone, model.DefaultEventTimezone)
	}
	if len(event.RequiredRoleIDs) != 1 || event.RequiredRoleIDs[0] != "role-raider" {
		t.Errorf("RequiredRoleIDs = %v, want configured default", event.RequiredRoleIDs)
	}
	if event.GuildID != "guild-1" {
		t.Errorf("GuildID = %q, want guild-1", event.GuildID)
	}
	if event.CreatedBy != "u1" {
		t.Errorf("CreatedBy = %q, want u1", event.CreatedBy)
	}
	if event.ID == "" {
		t.Error("expected event ID to be set")
	}
}

func TestEventCreate_ExplicitRolesOverrideDefault(t *testing.T) {
	svc := newTestEventService(newMockEventRepo(), []string{"role-default"})

	event, err := svc.Create(context.Background(), testPrincipal("u1"), &model.CreateEventRequest{
		Title:           "Officers Only",
		StartAt:         time.Now().Add(time.Hour),
		RequiredRoleIDs: []string{"role-officer"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(event.RequiredRoleIDs) != 1 || event.RequiredRoleIDs[0] != "role-officer" {
		t.Errorf("RequiredRoleIDs = %v, want [role-officer]", event.RequiredRoleIDs)
	}
}

// ============================================================================
// Join and Leave Tests
// ============================================================================

func TestEventJoin_NotFound(t *testing.T) {
	svc := newTestEventService(newMockEventRepo(), nil)

	_, err := svc.Join(context.Background(), testPrincipal("u1"), "event:missing")
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventJoin_RoleGate(t *testing.T) {
	repo := newMockEventRepo()
	svc := newTestEventService(repo, nil)

	event, err := svc.Create(context.Background(), testPrincipal("creator"), &model.CreateEventRequest{
		Title:           "Gated Raid",
		StartAt:         time.Now().Add(time.Hour),
		RequiredRoleIDs: []string{"role-r1"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Holder of a different role is rejected
	if _, err := svc.Join(context.Background(), testPrincipal("u2", "role-r2"), event.ID); !errors.Is(err, ErrRoleRequired) {
		t.Errorf("expected ErrRoleRequired for role-r2 holder, got %v", err)
	}

	// Holder of the required role gets in
	result, err := svc.Join(context.Background(), testPrincipal("u1", "role-r1"), event.ID)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if len(result.Attendees) != 1 || result.Attendees[0].UserID != "u1" {
		t.Errorf("Attendees = %v, want [u1]", result.Attendees)
	}
}

func TestEventJoin_Idempotent(t *testing.T) {
	repo := newMockEventRepo()
	svc := newTestEventService(repo, nil)

	event, err := svc.Create(context.Background(), testPrincipal("creator"), &model.CreateEventRequest{
		Title:   "Open Raid",
		StartAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	principal := testPrincipal("u1")
	if _, err := svc.Join(context.Background(), principal, event.ID); err != nil {
		t.Fatalf("first Join() error = %v", err)
	}
	result, err := svc.Join(context.Background(), principal, event.ID)
	if err != nil {
		t.Fatalf("second Join() error = %v", err)
	}
	if len(result.Attendees) != 1 {
		t.Errorf("joined twice, attendee count = %d, want 1", len(result.Attendees))
	}
}

func TestEventLeave_Idempotent(t *testing.T) {
	repo := newMockEventRepo()
	svc := newTestEventService(repo, nil)

	event, err := svc.Create(context.Background(), testPrincipal("creator"), &model.CreateEventRequest{
		Title:   "Open Raid",
		StartAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.Join(context.Background(), testPrincipal("u1"), event.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	// Leaving without having joined changes nothing
	result, err := svc.Leave(context.Background(), testPrincipal("u2"), event.ID)
	if err != nil {
		t.Fatalf("Leave() error = %v", err)
	}
	if len(result.Attendees) != 1 {
		t.Errorf("attendee count after no-op leave = %d, want 1", len(result.Attendees))
	}

	result, err = svc.Leave(context.Background(), testPrincipal("u1"), event.ID)
	if err != nil {
		t.Fatalf("Leave() error = %v", err)
	}
	if len(result.Attendees) != 0 {
		t.Errorf("attendee count after leave = %d, want 0", len(result.Attendees))
	}
}

// ============================================================================
// List and Alert Tests
// ============================================================================

func TestEventList_IncludesAttendees(t *testing.T) {
	repo := newMockEventRepo()
	svc := newTestEventService(repo, nil)

	event, err := svc.Create(context.Background(), testPrincipal("creator"), &model.CreateEventRequest{
		Title:   "Raid Night",
		StartAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Join(context.Background(), testPrincipal("u1"), event.ID); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("event count = %d, want 1", len(list))
	}
	if len(list[0].Attendees) != 1 {
		t.Errorf("attendee count = %d, want 1", len(list[0].Attendees))
	}
}

func TestUpcomingAlerts_WindowInclusive(t *testing.T) {
	repo := newMockEventRepo()
	svc := newTestEventService(repo, nil)

	now := time.Now().Truncate(time.Second)
	starts := map[string]time.Time{
		"at now":       now,
		"at lead edge": now.Add(30 * time.Minute),
		"past lead":    now.Add(31 * time.Minute),
	}
	for title, startAt := range starts {
		if _, err := svc.Create(context.Background(), testPrincipal("creator"), &model.CreateEventRequest{
			Title:   title,
			StartAt: startAt,
		}); err != nil {
			t.Fatalf("Create(%s) error = %v", title, err)
		}
	}

	alerts, err := svc.UpcomingAlerts(context.Background(), now)
	if err != nil {
		t.Fatalf("UpcomingAlerts() error = %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("alert count = %d, want 2", len(alerts))
	}
	for _, a := range alerts {
		if a.Title == "past lead" {
			t.Error("event past the lead window should not alert")
		}
	}
}
