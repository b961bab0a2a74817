package model

import "time"

// CraftRequest represents a request for a crafted item
type CraftRequest struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	Requester   string    `json:"requester"`
	ItemName    string    `json:"item_name"`
	Quantity    int       `json:"quantity"`
	Notes       *string   `json:"notes,omitempty"`
	Status      string    `json:"status"` // open, accepted, completed, cancelled
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// CraftRequestStatus constants
const (
	CraftRequestStatusOpen      = "open"
	CraftRequestStatusAccepted  = "accepted"
	CraftRequestStatusCompleted = "completed"
	CraftRequestStatusCancelled = "cancelled"
)

// IsTerminal reports whether the request can no longer change state.
func (c *CraftRequest) IsTerminal() bool {
	return c.Status == CraftRequestStatusCompleted || c.Status == CraftRequestStatusCancelled
}

// CraftAssignment represents a crafter's claim on a request
type CraftAssignment struct {
	ID                  string     `json:"id"`
	RequestID           string     `json:"request_id"`
	CrafterID           string     `json:"crafter_id"`
	Crafter             string     `json:"crafter"`
	MeetAt              *time.Time `json:"meet_at,omitempty"`
	Location            string     `json:"location"`
	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
	Status              string     `json:"status"` // accepted, fulfilled, cancelled
	CreatedOn           time.Time  `json:"created_on"`
	UpdatedOn           time.Time  `json:"updated_on"`
}

// CraftAssignmentStatus constants
const (
	CraftAssignmentStatusAccepted  = "accepted"
	CraftAssignmentStatusFulfilled = "fulfilled"
	CraftAssignmentStatusCancelled = "cancelled"
)

// CraftRequestWithAssignment pairs a request with its assignment, when claimed
type CraftRequestWithAssignment struct {
	Request    CraftRequest     `json:"request"`
	Assignment *CraftAssignment `json:"assignment,omitempty"`
}

// Constraints
const (
	MaxItemNameLength = 100
	MaxCraftNotes     = 1000
	MaxLocationLength = 200
)

// CreateCraftRequestRequest represents a request to open a craft request
type CreateCraftRequestRequest struct {
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Notes    *string `json:"notes,omitempty"`
}

// Validate validates a CreateCraftRequestRequest
func (r *CreateCraftRequestRequest) Validate() []FieldError {
	var errors []FieldError

	if r.ItemName == "" {
		errors = append(errors, FieldError{Field: "item_name", Message: "item_name is required"})
	} else if len(r.ItemName) > MaxItemNameLength {
		errors = append(errors, FieldError{Field: "item_name", Message: "item_name too long"})
	}

	if r.Quantity < 1 {
		errors = append(errors, FieldError{Field: "quantity", Message: "quantity must be at least 1"})
	}

	if r.Notes != nil && len(*r.Notes) > MaxCraftNotes {
		errors = append(errors, FieldError{Field: "notes", Message: "notes too long"})
	}

	return errors
}

// AcceptCraftRequestRequest represents a crafter claiming a request
type AcceptCraftRequestRequest struct {
	MeetAt              *time.Time `json:"meet_at,omitempty"`
	Location            string     `json:"location"`
	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
}

// Validate validates an AcceptCraftRequestRequest
func (r *AcceptCraftRequestRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Location == "" {
		errors = append(errors, FieldError{Field: "location", Message: "location is required"})
	} else if len(r.Location) > MaxLocationLength {
		errors = append(errors, FieldError{Field: "location", Message: "location too long"})
	}

	return errors
}
