package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newTestDiscordClient(baseURL string) *DiscordClient {
	return NewDiscordClient(DiscordConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://overlay.test/v1/auth/callback",
		APIBaseURL:   baseURL,
	})
}

// ============================================================================
// Authorize URL Tests
// ============================================================================

func TestAuthorizeURL(t *testing.T) {
	client := newTestDiscordClient("https://discord.test/api")

	raw := client.AuthorizeURL()
	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("AuthorizeURL() is not a valid URL: %v", err)
	}

	if !strings.HasPrefix(raw, "https://discord.test/api/oauth2/authorize?") {
		t.Errorf("unexpected authorize endpoint: %s", raw)
	}

	q := parsed.Query()
	if q.Get("client_id") != "client-id" {
		t.Errorf("client_id = %q", q.Get("client_id"))
	}
	if q.Get("response_type") != "code" {
		t.Errorf("response_type = %q", q.Get("response_type"))
	}
	if q.Get("scope") != DiscordScopes {
		t.Errorf("scope = %q, want %q", q.Get("scope"), DiscordScopes)
	}
	if q.Get("prompt") != "consent" {
		t.Errorf("prompt = %q, want consent", q.Get("prompt"))
	}
	if q.Get("redirect_uri") != "https://overlay.test/v1/auth/callback" {
		t.Errorf("redirect_uri = %q", q.Get("redirect_uri"))
	}
}

// ============================================================================
// Token Exchange Tests
// ============================================================================

func TestExchangeCode(t *testing.T) {
	var gotForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth2/token" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm() error = %v", err)
		}
		gotForm = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"discord-token","token_type":"Bearer","expires_in":604800}`))
	}))
	defer server.Close()

	client := newTestDiscordClient(server.URL)
	token, err := client.ExchangeCode(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("ExchangeCode() error = %v", err)
	}
	if token != "discord-token" {
		t.Errorf("token = %q, want discord-token", token)
	}

	if gotForm.Get("grant_type") != "authorization_code" {
		t.Errorf("grant_type = %q", gotForm.Get("grant_type"))
	}
	if gotForm.Get("code") != "auth-code" {
		t.Errorf("code = %q", gotForm.Get("code"))
	}
	if gotForm.Get("client_secret") != "client-secret" {
		t.Errorf("client_secret = %q", gotForm.Get("client_secret"))
	}
}

func TestExchangeCode_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestDiscordClient(server.URL)
	if _, err := client.ExchangeCode(context.Background(), "expired-code"); !errors.Is(err, ErrUpstreamAuth) {
		t.Errorf("expected ErrUpstreamAuth, got %v", err)
	}
}

func TestExchangeCode_MissingAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token_type":"Bearer"}`))
	}))
	defer server.Close()

	client := newTestDiscordClient(server.URL)
	if _, err := client.ExchangeCode(context.Background(), "auth-code"); !errors.Is(err, ErrUpstreamAuth) {
		t.Errorf("expected ErrUpstreamAuth, got %v", err)
	}
}

// ============================================================================
// Identity and Guild Tests
// ============================================================================

func TestFetchIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/@me" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer discord-token" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1001","username":"tester","discriminator":"0042"}`))
	}))
	defer server.Close()

	client := newTestDiscordClient(server.URL)
	user, err := client.FetchIdentity(context.Background(), "discord-token")
	if err != nil {
		t.Fatalf("FetchIdentity() error = %v", err)
	}
	if user.ID != "1001" || user.Username != "tester" || user.Discriminator != "0042" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestFetchGuildIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/@me/guilds" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"guild-1","name":"Obsidian Empire"},{"id":"guild-2","name":"Side Guild"}]`))
	}))
	defer server.Close()

	client := newTestDiscordClient(server.URL)
	ids, err := client.FetchGuildIDs(context.Background(), "discord-token")
	if err != nil {
		t.Fatalf("FetchGuildIDs() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "guild-1" || ids[1] != "guild-2" {
		t.Errorf("ids = %v, want [guild-1 guild-2]", ids)
	}
}

func TestFetchMemberRoles_SkipsFailedGuilds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/@me/guilds/guild-1/member":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"roles":["role-raider","role-member"]}`))
		case "/users/@me/guilds/guild-2/member":
			http.Error(w, "missing access", http.StatusForbidden)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestDiscordClient(server.URL)
	roles, err := client.FetchMemberRoles(context.Background(), "discord-token", []string{"guild-1", "guild-2"})
	if err != nil {
		t.Fatalf("FetchMemberRoles() error = %v", err)
	}

	if len(roles) != 1 {
		t.Fatalf("role map size = %d, want 1 (failed guild skipped)", len(roles))
	}
	if got := roles["guild-1"]; len(got) != 2 || got[0] != "role-raider" {
		t.Errorf("guild-1 roles = %v", got)
	}
	if _, ok := roles["guild-2"]; ok {
		t.Error("guild-2 lookup failed and should be absent")
	}
}
