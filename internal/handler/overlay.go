package handler

import (
	"net/http"

	"github.com/obsidianempire/overlay/api/internal/service"
)

// OverlayHandler handles read-only overlay data endpoints
type OverlayHandler struct {
	overlayService *service.OverlayService
}

// NewOverlayHandler creates a new overlay handler
func NewOverlayHandler(overlayService *service.OverlayService) *OverlayHandler {
	return &OverlayHandler{
		overlayService: overlayService,
	}
}

// Events handles GET /v1/overlay/events - events with attendees for display
func (h *OverlayHandler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.overlayService.Events(r.Context())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "overlay events"))
		return
	}

	WriteCollection(w, http.StatusOK, events, nil)
}

// Roster handles GET /v1/overlay/roster - the managed guild roster
func (h *OverlayHandler) Roster(w http.ResponseWriter, r *http.Request) {
	members, err := h.overlayService.Roster(r.Context())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "overlay roster"))
		return
	}

	WriteCollection(w, http.StatusOK, members, nil)
}

// Attendance handles GET /v1/overlay/attendance - historical attendance
func (h *OverlayHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	records, err := h.overlayService.Attendance(r.Context())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "overlay attendance"))
		return
	}

	WriteCollection(w, http.StatusOK, records, nil)
}
