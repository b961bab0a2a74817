package service

import (
	"context"
	"errors"
	"time"

	"github.com/obsidianempire/overlay/api/internal/database"
	"github.com/obsidianempire/overlay/api/internal/model"
)

// CraftingRepository defines the repository interface for craft requests
// and assignments
type CraftingRepository interface {
	CreateRequest(ctx context.Context, request *model.CraftRequest) error
	GetRequest(ctx context.Context, requestID string) (*model.CraftRequest, error)
	GetAssignment(ctx context.Context, requestID string) (*model.CraftAssignment, error)
	ListRequests(ctx context.Context) ([]*model.CraftRequest, error)
	ListRequestsForUser(ctx context.Context, userID string) ([]*model.CraftRequest, error)
	AcceptRequest(ctx context.Context, requestID string, assignment *model.CraftAssignment) error
	CompleteRequest(ctx context.Context, requestID string, completedAt time.Time) error
	CancelRequest(ctx context.Context, requestID string) error
}

// CraftingService handles the craft request lifecycle:
// open -> accepted -> completed, with open or accepted requests
// cancellable. Completed and cancelled are terminal.
type CraftingService struct {
	craftRepo CraftingRepository
	now       func() time.Time
}

// NewCraftingService creates a new crafting service
func NewCraftingService(craftRepo CraftingRepository) *CraftingService {
	return &CraftingService{
		craftRepo: craftRepo,
		now:       time.Now,
	}
}

// Create opens a new craft request
func (s *CraftingService) Create(ctx context.Context, principal *model.Principal, req *model.CreateCraftRequestRequest) (*model.CraftRequest, error) {
	if req.ItemName == "" {
		return nil, ErrItemNameRequired
	}
	if req.Quantity < 1 {
		return nil, ErrQuantityInvalid
	}

	request := &model.CraftRequest{
		RequesterID: principal.UserID,
		Requester:   principal.Username,
		ItemName:    req.ItemName,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
		Status:      model.CraftRequestStatusOpen,
	}

	if err := s.craftRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

// List returns all craft requests with their assignments, status ascending
// then newest first
func (s *CraftingService) List(ctx context.Context) ([]model.CraftRequestWithAssignment, error) {
	requests, err := s.craftRepo.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	return s.withAssignments(ctx, requests)
}

// ListMine returns requests the principal opened or claimed, most recently
// updated first
func (s *CraftingService) ListMine(ctx context.Context, principal *model.Principal) ([]model.CraftRequestWithAssignment, error) {
	requests, err := s.craftRepo.ListRequestsForUser(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return s.withAssignments(ctx, requests)
}

// Accept claims an open request for the principal. The claim is atomic:
// under concurrent acceptors exactly one succeeds and the rest get
// ErrRequestAlreadyClaimed.
func (s *CraftingService) Accept(ctx context.Context, principal *model.Principal, requestID string, req *model.AcceptCraftRequestRequest) (*model.CraftRequestWithAssignment, error) {
	if req.Location == "" {
		return nil, ErrLocationRequired
	}

	assignment := &model.CraftAssignment{
		RequestID:           requestID,
		CrafterID:           principal.UserID,
		Crafter:             principal.Username,
		MeetAt:              req.MeetAt,
		Location:            req.Location,
		EstimatedCompletion: req.EstimatedCompletion,
	}

	if err := s.craftRepo.AcceptRequest(ctx, requestID, assignment); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrCraftRequestNotFound
		}
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrRequestAlreadyClaimed
		}
		return nil, err
	}

	return s.getWithAssignment(ctx, requestID)
}

// Complete marks an accepted request as fulfilled. Only the requester or
// the assigned crafter may complete it. An assignment without an estimated
// completion gets the completion time backfilled.
func (s *CraftingService) Complete(ctx context.Context, principal *model.Principal, requestID string) (*model.CraftRequestWithAssignment, error) {
	request, assignment, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.IsTerminal() {
		return nil, ErrRequestClosed
	}
	if request.Status != model.CraftRequestStatusAccepted || assignment == nil {
		return nil, ErrRequestNotAccepted
	}
	if !isParticipant(principal, request, assignment) {
		return nil, ErrNotRequestParticipant
	}

	if err := s.craftRepo.CompleteRequest(ctx, requestID, s.now().UTC()); err != nil {
		return nil, err
	}

	return s.getWithAssignment(ctx, requestID)
}

// Cancel cancels an open or accepted request, together with its
// assignment when one exists. Only the requester or the assigned crafter
// may cancel it.
func (s *CraftingService) Cancel(ctx context.Context, principal *model.Principal, requestID string) (*model.CraftRequestWithAssignment, error) {
	request, assignment, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.IsTerminal() {
		return nil, ErrRequestClosed
	}
	if !isParticipant(principal, request, assignment) {
		return nil, ErrNotRequestParticipant
	}

	if err := s.craftRepo.CancelRequest(ctx, requestID); err != nil {
		return nil, err
	}

	return s.getWithAssignment(ctx, requestID)
}

// loadRequest fetches a request and its assignment, when claimed
func (s *CraftingService) loadRequest(ctx context.Context, requestID string) (*model.CraftRequest, *model.CraftAssignment, error) {
	request, err := s.craftRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	if request == nil {
		return nil, nil, ErrCraftRequestNotFound
	}

	assignment, err := s.craftRepo.GetAssignment(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}

	return request, assignment, nil
}

func (s *CraftingService) getWithAssignment(ctx context.Context, requestID string) (*model.CraftRequestWithAssignment, error) {
	request, assignment, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return &model.CraftRequestWithAssignment{Request: *request, Assignment: assignment}, nil
}

func (s *CraftingService) withAssignments(ctx context.Context, requests []*model.CraftRequest) ([]model.CraftRequestWithAssignment, error) {
	result := make([]model.CraftRequestWithAssignment, 0, len(requests))
	for _, request := range requests {
		assignment, err := s.craftRepo.GetAssignment(ctx, request.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, model.CraftRequestWithAssignment{Request: *request, Assignment: assignment})
	}
	return result, nil
}

// isParticipant reports whether the principal opened the request or holds
// its assignment
func isParticipant(principal *model.Principal, request *model.CraftRequest, assignment *model.CraftAssignment) bool {
	if principal.UserID == request.RequesterID {
		return true
	}
	return assignment != nil && principal.UserID == assignment.CrafterID
}
