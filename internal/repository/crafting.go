package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/obsidianempire/overlay/api/internal/database"
	"github.com/obsidianempire/overlay/api/internal/model"
)

// Thrown inside the claim transaction to abort it. The message surfaces
// through the query error string.
const (
	throwRequestNotFound       = "request_not_found"
	throwRequestAlreadyClaimed = "request_already_claimed"
)

// CraftingRepository handles craft request and assignment data access
type CraftingRepository struct {
	db database.Database
}

// NewCraftingRepository creates a new crafting repository
func NewCraftingRepository(db database.Database) *CraftingRepository {
	return &CraftingRepository{db: db}
}

// CreateRequest creates a new craft request with status open
func (r *CraftingRepository) CreateRequest(ctx context.Context, request *model.CraftRequest) error {
	query := `
		CREATE craft_request CONTENT {
			requester_id: $requester_id,
			requester: $requester,
			item_name: $item_name,
			quantity: $quantity,
			notes: $notes,
			status: $status,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	status := request.Status
	if status == "" {
		status = model.CraftRequestStatusOpen
	}

	vars := map[string]interface{}{
		"requester_id": request.RequesterID,
		"requester":    request.Requester,
		"item_name":    request.ItemName,
		"quantity":     request.Quantity,
		"notes":        request.Notes,
		"status":       status,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	request.ID = created.ID
	request.Status = status
	request.CreatedOn = created.CreatedOn
	request.UpdatedOn = created.UpdatedOn
	return nil
}

// GetRequest retrieves a craft request by ID. Returns nil when it does not exist.
func (r *CraftingRepository) GetRequest(ctx context.Context, requestID string) (*model.CraftRequest, error) {
	query := `SELECT * FROM type::record($request_id)`
	vars := map[string]interface{}{"request_id": requestID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.parseRequestResult(result)
}

// GetAssignment retrieves the assignment for a request.
// Returns nil when the request has never been claimed.
func (r *CraftingRepository) GetAssignment(ctx context.Context, requestID string) (*model.CraftAssignment, error) {
	query := `
		SELECT * FROM craft_assignment
		WHERE request_id = $request_id
		LIMIT 1
	`
	vars := map[string]interface{}{"request_id": requestID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.parseAssignmentResult(result)
}

// ListRequests retrieves all craft requests ordered by status ascending,
// then creation time descending
func (r *CraftingRepository) ListRequests(ctx context.Context) ([]*model.CraftRequest, error) {
	query := `SELECT * FROM craft_request ORDER BY status ASC, created_on DESC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return r.parseRequestsResult(result)
}

// ListRequestsForUser retrieves requests the user opened or claimed,
// ordered by update time descending
func (r *CraftingRepository) ListRequestsForUser(ctx context.Context, userID string) ([]*model.CraftRequest, error) {
	assignedQuery := `SELECT * FROM craft_assignment WHERE crafter_id = $crafter_id`
	assignedResult, err := r.db.Query(ctx, assignedQuery, map[string]interface{}{"crafter_id": userID})
	if err != nil {
		return nil, err
	}

	assignments, err := r.parseAssignmentsResult(assignedResult)
	if err != nil {
		return nil, err
	}

	assignedIDs := make([]string, 0, len(assignments))
	for _, a := range assignments {
		assignedIDs = append(assignedIDs, a.RequestID)
	}

	query := `
		SELECT * FROM craft_request
		WHERE requester_id = $user_id
		OR <string>id INSIDE $assigned_ids
		ORDER BY updated_on DESC
	`
	vars := map[string]interface{}{
		"user_id":      userID,
		"assigned_ids": assignedIDs,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return r.parseRequestsResult(result)
}

// AcceptRequest claims an open request for a crafter. The status re-check and
// the assignment write run in one transaction, so under concurrent acceptors
// at most one claim commits.
//
// Returns database.ErrNotFound when the request does not exist and
// database.ErrConflict when it is no longer open.
func (r *CraftingRepository) AcceptRequest(ctx context.Context, requestID string, assignment *model.CraftAssignment) error {
	query := `
		BEGIN TRANSACTION;
		LET $req = (SELECT * FROM type::record($request_id));
		IF array::len($req) == 0 { THROW "` + throwRequestNotFound + `" };
		IF $req[0].status != 'open' { THROW "` + throwRequestAlreadyClaimed + `" };
		UPDATE type::record($request_id) SET status = 'accepted', updated_on = time::now();
		CREATE craft_assignment CONTENT {
			request_id: $request_id,
			crafter_id: $crafter_id,
			crafter: $crafter,
			meet_at: $meet_at,
			location: $location,
			estimated_completion: $estimated_completion,
			status: 'accepted',
			created_on: time::now(),
			updated_on: time::now()
		};
		COMMIT TRANSACTION;
	`

	vars := map[string]interface{}{
		"request_id":           requestID,
		"crafter_id":           assignment.CrafterID,
		"crafter":              assignment.Crafter,
		"meet_at":              assignment.MeetAt,
		"location":             assignment.Location,
		"estimated_completion": assignment.EstimatedCompletion,
	}

	_, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if strings.Contains(err.Error(), throwRequestNotFound) {
			return database.ErrNotFound
		}
		if strings.Contains(err.Error(), throwRequestAlreadyClaimed) {
			return database.ErrConflict
		}
		return err
	}

	return nil
}

// CompleteRequest marks a request completed and its open assignment
// fulfilled in one atomic batch. An assignment without an estimated
// completion gets completedAt backfilled.
func (r *CraftingRepository) CompleteRequest(ctx context.Context, requestID string, completedAt time.Time) error {
	batch := database.NewAtomicBatch()
	batch.Add(`
		UPDATE type::record($request_id)
		SET status = 'completed', updated_on = time::now()
	`, map[string]interface{}{"request_id": requestID})
	batch.Add(`
		UPDATE craft_assignment
		SET status = 'fulfilled',
			estimated_completion = estimated_completion ?? $completed_at,
			updated_on = time::now()
		WHERE request_id = $request_id
		AND status = 'accepted'
	`, map[string]interface{}{
		"request_id":   requestID,
		"completed_at": completedAt,
	})

	return batch.Execute(ctx, r.db)
}

// CancelRequest cancels a request and its assignment, when one
// exists, in one atomic batch
func (r *CraftingRepository) CancelRequest(ctx context.Context, requestID string) error {
	batch := database.NewAtomicBatch()
	batch.Add(`
		UPDATE type::record($request_id)
		SET status = 'cancelled', updated_on = time::now()
	`, map[string]interface{}{"request_id": requestID})
	batch.Add(`
		UPDATE craft_assignment
		SET status = 'cancelled', updated_on = time::now()
		WHERE request_id = $request_id
		AND status = 'accepted'
	`, map[string]interface{}{"request_id": requestID})

	return batch.Execute(ctx, r.db)
}

// Helper functions

func (r *CraftingRepository) parseRequestResult(result interface{}) (*model.CraftRequest, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	request := &model.CraftRequest{
		ID:          convertSurrealID(data["id"]),
		RequesterID: getString(data, "requester_id"),
		Requester:   getString(data, "requester"),
		ItemName:    getString(data, "item_name"),
		Quantity:    getInt(data, "quantity"),
		Notes:       getStringPtr(data, "notes"),
		Status:      getString(data, "status"),
	}

	if t := getTime(data, "created_on"); t != nil {
		request.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		request.UpdatedOn = *t
	}

	return request, nil
}

func (r *CraftingRepository) parseRequestsResult(result []interface{}) ([]*model.CraftRequest, error) {
	requests := make([]*model.CraftRequest, 0)

	for _, res := range result {
		if resp, ok := res.(map[string]interface{}); ok {
			if resultData, ok := resp["result"].([]interface{}); ok {
				for _, item := range resultData {
					request, err := r.parseRequestResult(item)
					if err != nil {
						continue
					}
					requests = append(requests, request)
				}
				continue
			}
		}

		request, err := r.parseRequestResult(res)
		if err != nil {
			continue
		}
		requests = append(requests, request)
	}

	return requests, nil
}

func (r *CraftingRepository) parseAssignmentResult(result interface{}) (*model.CraftAssignment, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	assignment := &model.CraftAssignment{
		ID:        convertSurrealID(data["id"]),
		RequestID: getString(data, "request_id"),
		CrafterID: getString(data, "crafter_id"),
		Crafter:   getString(data, "crafter"),
		Location:  getString(data, "location"),
		Status:    getString(data, "status"),
	}

	assignment.MeetAt = getTime(data, "meet_at")
	assignment.EstimatedCompletion = getTime(data, "estimated_completion")

	if t := getTime(data, "created_on"); t != nil {
		assignment.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		assignment.UpdatedOn = *t
	}

	return assignment, nil
}

func (r *CraftingRepository) parseAssignmentsResult(result []interface{}) ([]*model.CraftAssignment, error) {
	assignments := make([]*model.CraftAssignment, 0)

	for _, res := range result {
		if resp, ok := res.(map[string]interface{}); ok {
			if resultData, ok := resp["result"].([]interface{}); ok {
				for _, item := range resultData {
					assignment, err := r.parseAssignmentResult(item)
					if err != nil {
						continue
					}
					assignments = append(assignments, assignment)
				}
				continue
			}
		}

		assignment, err := r.parseAssignmentResult(res)
		if err != nil {
			continue
		}
		assignments = append(assignments, assignment)
	}

	return assignments, nil
}
