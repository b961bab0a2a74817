package service

import (
	"context"
	"time"

	"github.com/obsidianempire/overlay/api/internal/model"
	"github.com/obsidianempire/overlay/api/pkg/jwt"
)

// TokenIssuer defines the interface for session token signing
type TokenIssuer interface {
	Sign(claims jwt.Claims) (string, error)
	Validate(tokenString string) (*jwt.Claims, error)
	GetExpiration() time.Duration
}

// AuthService handles the Discord login flow and request authentication
type AuthService struct {
	provider        IdentityProvider
	tokens          TokenIssuer
	allowedGuildIDs []string
	eventRoleIDs    []string
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	Provider        IdentityProvider
	Tokens          TokenIssuer
	AllowedGuildIDs []string
	EventRoleIDs    []string
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		provider:        cfg.Provider,
		tokens:          cfg.Tokens,
		allowedGuildIDs: cfg.AllowedGuildIDs,
		eventRoleIDs:    cfg.EventRoleIDs,
	}
}

// TokenResult represents an issued session token
type TokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// LoginURL returns the Discord authorize URL to redirect the user to
func (s *AuthService) LoginURL() string {
	return s.provider.AuthorizeURL()
}

// HandleCallback completes the OAuth flow: exchanges the code, resolves the
// user's guilds and roles, and issues a session token. Users with no guild
// on the allow-list are rejected before any token is signed.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (*TokenResult, error) {
	if code == "" {
		return nil, ErrMissingAuthCode
	}

	accessToken, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.provider.FetchIdentity(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	guildIDs, err := s.provider.FetchGuildIDs(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	authorized := model.IntersectGuilds(guildIDs, s.allowedGuildIDs)
	if len(authorized) == 0 {
		return nil, ErrGuildNotAllowed
	}

	// Role lookups only matter for guilds we authorize
	guildRoles, err := s.provider.FetchMemberRoles(ctx, accessToken, authorized)
	if err != nil {
		return nil, err
	}

	claims := jwt.Claims{
		Subject:         user.ID,
		Username:        user.Username,
		Discriminator:   user.Discriminator,
		GuildIDs:        authorized,
		GuildRoles:      guildRoles,
		CanCreateEvents: model.CanCreateEvents(guildRoles, s.eventRoleIDs),
	}

	signed, err := s.tokens.Sign(claims)
	if err != nil {
		return nil, err
	}

	return &TokenResult{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokens.GetExpiration().Seconds()),
	}, nil
}

// Authenticate validates a session token and re-checks its guilds against
// the current allow-list. Shrinking the allow-list therefore revokes
// already-issued tokens on their next use.
func (s *AuthService) Authenticate(tokenString string) (*model.Principal, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, ErrInvalidSession
	}

	authorized := model.IntersectGuilds(claims.GuildIDs, s.allowedGuildIDs)
	if len(authorized) == 0 {
		return nil, ErrGuildNotAllowed
	}

	return &model.Principal{
		UserID:          claims.Subject,
		Username:        claims.Username,
		Discriminator:   claims.Discriminator,
		GuildIDs:        authorized,
		GuildRoles:      claims.GuildRoles,
		CanCreateEvents: claims.CanCreateEvents,
	}, nil
}
