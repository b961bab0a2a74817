package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DiscordScopes are requested on every login. guilds.members.read is needed
// to resolve per-guild role IDs.
const DiscordScopes = "identify guilds guilds.members.read"

// IdentityProvider abstracts the Discord OAuth2/REST surface used for login
type IdentityProvider interface {
	AuthorizeURL() string
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchIdentity(ctx context.Context, accessToken string) (*DiscordUser, error)
	FetchGuildIDs(ctx context.Context, accessToken string) ([]string, error)
	FetchMemberRoles(ctx context.Context, accessToken string, guildIDs []string) (map[string][]string, error)
}

// DiscordUser is the identity subset carried into session claims
type DiscordUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
}

// DiscordConfig holds Discord OAuth settings
type DiscordConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	APIBaseURL   string
}

// DiscordClient calls the Discord API
type DiscordClient struct {
	config     DiscordConfig
	httpClient *http.Client
}

// NewDiscordClient creates a new Discord API client
func NewDiscordClient(cfg DiscordConfig) *DiscordClient {
	return &DiscordClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AuthorizeURL returns the Discord authorize redirect target
func (c *DiscordClient) AuthorizeURL() string {
	q := url.Values{}
	q.Set("client_id", c.config.ClientID)
	q.Set("redirect_uri", c.config.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", DiscordScopes)
	q.Set("prompt", "consent")

	return c.config.APIBaseURL + "/oauth2/authorize?" + q.Encode()
}

// discordTokenResponse represents Discord's token endpoint response
type discordTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

// ExchangeCode exchanges an authorization code for an access token
func (c *DiscordClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("client_id", c.config.ClientID)
	data.Set("client_secret", c.config.ClientSecret)
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("redirect_uri", c.config.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIBaseURL+"/oauth2/token", strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned %d", ErrUpstreamAuth, resp.StatusCode)
	}

	var tokenResp discordTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("%w: token response missing access_token", ErrUpstreamAuth)
	}

	return tokenResp.AccessToken, nil
}

// FetchIdentity retrieves the authenticated user's identity
func (c *DiscordClient) FetchIdentity(ctx context.Context, accessToken string) (*DiscordUser, error) {
	var user DiscordUser
	if err := c.getJSON(ctx, accessToken, "/users/@me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchGuildIDs retrieves the IDs of guilds the user belongs to
func (c *DiscordClient) FetchGuildIDs(ctx context.Context, accessToken string) ([]string, error) {
	var guilds []struct {
		ID string `json:"id"`
	}
	if err := c.getJSON(ctx, accessToken, "/users/@me/guilds", &guilds); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(guilds))
	for _, g := range guilds {
		ids = append(ids, g.ID)
	}
	return ids, nil
}

// FetchMemberRoles retrieves the user's role IDs per guild. A guild whose
// member lookup fails is skipped rather than failing the whole login.
func (c *DiscordClient) FetchMemberRoles(ctx context.Context, accessToken string, guildIDs []string) (map[string][]string, error) {
	roles := make(map[string][]string, len(guildIDs))

	for _, guildID := range guildIDs {
		var member struct {
			Roles []string `json:"roles"`
		}
		if err := c.getJSON(ctx, accessToken, "/users/@me/guilds/"+guildID+"/member", &member); err != nil {
			continue
		}
		roles[guildID] = member.Roles
	}

	return roles, nil
}

// getJSON performs an authenticated GET and decodes the JSON response
func (c *DiscordClient) getJSON(ctx context.Context, accessToken, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.APIBaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrUpstreamAuth, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}
	return nil
}
