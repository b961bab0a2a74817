package handler

import (
	"net/http"

	"github.com/obsidianempire/overlay/api/internal/middleware"
	"github.com/obsidianempire/overlay/api/internal/model"
	"github.com/obsidianempire/overlay/api/internal/service"
)

// CraftingHandler handles crafting request endpoints
type CraftingHandler struct {
	craftingService *service.CraftingService
}

// NewCraftingHandler creates a new crafting handler
func NewCraftingHandler(craftingService *service.CraftingService) *CraftingHandler {
	return &CraftingHandler{
		craftingService: craftingService,
	}
}

// Create handles POST /v1/crafting/requests - open a craft request
func (h *CraftingHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateCraftRequestRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	request, err := h.craftingService.Create(r.Context(), principal, &req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create craft request"))
		return
	}

	WriteData(w, http.StatusCreated, request, map[string]string{
		"self": "/v1/crafting/requests/" + request.ID,
	})
}

// List handles GET /v1/crafting/requests - list all craft requests
func (h *CraftingHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.craftingService.List(r.Context())
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list craft requests"))
		return
	}

	WriteCollection(w, http.StatusOK, requests, nil)
}

// ListMine handles GET /v1/crafting/requests/mine - list requests the caller
// opened or claimed
func (h *CraftingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	requests, err := h.craftingService.ListMine(r.Context(), principal)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list own craft requests"))
		return
	}

	WriteCollection(w, http.StatusOK, requests, nil)
}

// Accept handles POST /v1/crafting/requests/{requestId}/accept - claim an
// open request
func (h *CraftingHandler) Accept(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	requestID := r.PathValue("requestId")
	if requestID == "" {
		WriteError(w, model.NewBadRequestError("request ID required"))
		return
	}

	var req model.AcceptCraftRequestRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	result, err := h.craftingService.Accept(r.Context(), principal, requestID, &req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "accept craft request"))
		return
	}

	WriteData(w, http.StatusOK, result, map[string]string{
		"self": "/v1/crafting/requests/" + requestID,
	})
}

// Complete handles POST /v1/crafting/requests/{requestId}/complete - mark an
// accepted request fulfilled
func (h *CraftingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	requestID := r.PathValue("requestId")
	if requestID == "" {
		WriteError(w, model.NewBadRequestError("request ID required"))
		return
	}

	result, err := h.craftingService.Complete(r.Context(), principal, requestID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "complete craft request"))
		return
	}

	WriteData(w, http.StatusOK, result, map[string]string{
		"self": "/v1/crafting/requests/" + requestID,
	})
}

// Cancel handles POST /v1/crafting/requests/{requestId}/cancel - cancel a
// request that has not finished
func (h *CraftingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	requestID := r.PathValue("requestId")
	if requestID == "" {
		WriteError(w, model.NewBadRequestError("request ID required"))
		return
	}

	result, err := h.craftingService.Cancel(r.Context(), principal, requestID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "cancel craft request"))
		return
	}

	WriteData(w, http.StatusOK, result, map[string]string{
		"self": "/v1/crafting/requests/" + requestID,
	})
}
