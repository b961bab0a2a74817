package service

import (
	"context"

	"github.com/obsidianempire/overlay/api/internal/model"
)

// RosterRepository defines the repository interface for roster reference data
type RosterRepository interface {
	ListMembers(ctx context.Context) ([]*model.RosterMember, error)
	ListAttendance(ctx context.Context) ([]*model.AttendanceRecord, error)
}

// OverlayService serves the read-only reference data backing the overlay UI
type OverlayService struct {
	eventService *EventService
	rosterRepo   RosterRepository
}

// NewOverlayService creates a new overlay service
func NewOverlayService(eventService *EventService, rosterRepo RosterRepository) *OverlayService {
	return &OverlayService{
		eventService: eventService,
		rosterRepo:   rosterRepo,
	}
}

// Events returns all events with attendees, start time ascending
func (s *OverlayService) Events(ctx context.Context) ([]model.EventWithAttendees, error) {
	return s.eventService.List(ctx)
}

// Roster returns all roster members ordered by name
func (s *OverlayService) Roster(ctx context.Context) ([]*model.RosterMember, error) {
	return s.rosterRepo.ListMembers(ctx)
}

// Attendance returns historical attendance records, most recent event first
func (s *OverlayService) Attendance(ctx context.Context) ([]*model.AttendanceRecord, error) {
	return s.rosterRepo.ListAttendance(ctx)
}
