package handler

import (
	"net/http"

	"github.com/obsidianempire/overlay/api/internal/middleware"
	"github.com/obsidianempire/overlay/api/internal/model"
	"github.com/obsidianempire/overlay/api/internal/service"
)

// EventHandler handles event endpoints
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// List handles GET /v1/events - list events with attendees
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list events"))
		return
	}

	WriteCollection(w, http.StatusOK, events, nil)
}

// Create handles POST /v1/events - create a new event
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	event, err := h.eventService.Create(r.Context(), principal, &req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create event"))
		return
	}

	WriteData(w, http.StatusCreated, event, map[string]string{
		"self": "/v1/events/" + event.ID,
	})
}

// Join handles POST /v1/events/{eventId}/join - join an event
func (h *EventHandler) Join(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	event, err := h.eventService.Join(r.Context(), principal, eventID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "join event"))
		return
	}

	WriteData(w, http.StatusOK, event, map[string]string{
		"self": "/v1/events/" + eventID + "/attendees",
	})
}

// Leave handles POST /v1/events/{eventId}/leave - leave an event
func (h *EventHandler) Leave(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	event, err := h.eventService.Leave(r.Context(), principal, eventID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "leave event"))
		return
	}

	WriteData(w, http.StatusOK, event, map[string]string{
		"self": "/v1/events/" + eventID + "/attendees",
	})
}

// Attendees handles GET /v1/events/{eventId}/attendees - list attendees in
// join order
func (h *EventHandler) Attendees(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	attendees, err := h.eventService.ListAttendees(r.Context(), eventID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list attendees"))
		return
	}

	WriteCollection(w, http.StatusOK, attendees, nil)
}
