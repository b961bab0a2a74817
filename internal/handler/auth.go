package handler

import (
	"net/http"
	"time"

	"github.com/obsidianempire/overlay/api/internal/middleware"
	"github.com/obsidianempire/overlay/api/internal/model"
	"github.com/obsidianempire/overlay/api/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *service.AuthService
	alertLead   time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, alertLead time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		alertLead:   alertLead,
	}
}

// Login handles GET /v1/auth/login - redirect to the identity provider
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.authService.LoginURL(), http.StatusTemporaryRedirect)
}

// Callback handles GET|POST /v1/auth/callback - exchange the authorization
// code for a session token
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")

	result, err := h.authService.HandleCallback(r.Context(), code)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "auth callback"))
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// MeResponse describes the authenticated principal
type MeResponse struct {
	UserID           string              `json:"user_id"`
	Username         string              `json:"username"`
	Discriminator    string              `json:"discriminator"`
	GuildIDs         []string            `json:"guild_ids"`
	GuildRoles       map[string][]string `json:"guild_roles"`
	CanCreateEvents  bool                `json:"can_create_events"`
	AlertLeadMinutes int                 `json:"alert_lead_minutes"`
}

// Me handles GET /v1/auth/me - describe the current session
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	WriteData(w, http.StatusOK, MeResponse{
		UserID:           principal.UserID,
		Username:         principal.Username,
		Discriminator:    principal.Discriminator,
		GuildIDs:         principal.GuildIDs,
		GuildRoles:       principal.GuildRoles,
		CanCreateEvents:  principal.CanCreateEvents,
		AlertLeadMinutes: int(h.alertLead.Minutes()),
	}, nil)
}
