package handler

import (
	"net/http"
	"time"

	"github.com/obsidianempire/overlay/api/internal/model"
	"github.com/obsidianempire/overlay/api/internal/service"
)

// AlertHandler handles upcoming event alert endpoints
type AlertHandler struct {
	eventService *service.EventService
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(eventService *service.EventService) *AlertHandler {
	return &AlertHandler{
		eventService: eventService,
	}
}

// AlertsResponse lists events entering the alert window
type AlertsResponse struct {
	LeadMinutes int            `json:"lead_minutes"`
	Events      []*model.Event `json:"events"`
}

// List handles GET /v1/alerts - events starting within the alert window
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.UpcomingAlerts(r.Context(), time.Now().UTC())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list alerts"))
		return
	}

	WriteData(w, http.StatusOK, AlertsResponse{
		LeadMinutes: int(h.eventService.AlertLead().Minutes()),
		Events:      events,
	}, nil)
}
