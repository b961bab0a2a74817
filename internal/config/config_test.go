package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate_ValidConfig(t *testing.T) {
	if err := validBaseConfig().Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for invalid SERVER_ENV")
	}
	if !strings.Contains(err.Error(), "SERVER_ENV") {
		t.Errorf("expected error to mention SERVER_ENV, got: %v", err)
	}
}

func TestConfig_Validate_MissingPort(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing SERVER_PORT")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("expected error to mention SERVER_PORT, got: %v", err)
	}
}

func TestConfig_Validate_EmptyAllowedOrigins(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.AllowedOrigins = []string{}

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for empty CORS_ALLOWED_ORIGINS")
	}
	if !strings.Contains(err.Error(), "CORS_ALLOWED_ORIGINS") {
		t.Errorf("expected error to mention CORS_ALLOWED_ORIGINS, got: %v", err)
	}
}

func TestConfig_Validate_MissingDatabaseHost(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Database.Host = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing DB_HOST")
	}
	if !strings.Contains(err.Error(), "DB_HOST") {
		t.Errorf("expected error to mention DB_HOST, got: %v", err)
	}
}

func TestConfig_Validate_MissingJWTSecret(t *testing.T) {
	cfg := validBaseConfig()
	cfg.JWT.SecretKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing JWT_SECRET_KEY")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET_KEY") {
		t.Errorf("expected error to mention JWT_SECRET_KEY, got: %v", err)
	}
}

func TestConfig_Validate_InvalidJWTExpiration(t *testing.T) {
	cfg := validBaseConfig()
	cfg.JWT.ExpirationMins = 0

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for zero JWT_EXPIRATION_MINS")
	}
	if !strings.Contains(err.Error(), "JWT_EXPIRATION_MINS") {
		t.Errorf("expected error to mention JWT_EXPIRATION_MINS, got: %v", err)
	}
}

func TestConfig_Validate_MissingDiscordCredentials(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Discord.ClientID = ""
	cfg.Discord.ClientSecret = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing Discord credentials")
	}
	if !strings.Contains(err.Error(), "DISCORD_CLIENT_ID") {
		t.Errorf("expected error to mention DISCORD_CLIENT_ID, got: %v", err)
	}
	if !strings.Contains(err.Error(), "DISCORD_CLIENT_SECRET") {
		t.Errorf("expected error to mention DISCORD_CLIENT_SECRET, got: %v", err)
	}
}

func TestConfig_Validate_MissingRedirectURI(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Discord.RedirectURI = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing DISCORD_REDIRECT_URI")
	}
	if !strings.Contains(err.Error(), "DISCORD_REDIRECT_URI") {
		t.Errorf("expected error to mention DISCORD_REDIRECT_URI, got: %v", err)
	}
}

func TestConfig_Validate_EmptyGuildAllowList(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Discord.AllowedGuildIDs = nil

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for empty DISCORD_ALLOWED_GUILD_IDS")
	}
	if !strings.Contains(err.Error(), "DISCORD_ALLOWED_GUILD_IDS") {
		t.Errorf("expected error to mention DISCORD_ALLOWED_GUILD_IDS, got: %v", err)
	}
}

func TestConfig_Validate_EmptyEventRoleIDs_Allowed(t *testing.T) {
	// No configured event roles means everyone may create events
	cfg := validBaseConfig()
	cfg.Discord.EventRoleIDs = nil

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected no error with empty DISCORD_EVENT_ROLE_IDS, got: %v", err)
	}
}

func TestConfig_Validate_InvalidAlertLead(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Alerts.LeadMinutes = 0

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for zero ALERT_LEAD_MINUTES")
	}
	if !strings.Contains(err.Error(), "ALERT_LEAD_MINUTES") {
		t.Errorf("expected error to mention ALERT_LEAD_MINUTES, got: %v", err)
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           "",
			Env:            "invalid",
			AllowedOrigins: []string{},
		},
		Database: DatabaseConfig{},
		JWT:      JWTConfig{},
		Discord:  DiscordConfig{},
		Alerts:   AlertConfig{},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected multiple validation errors")
	}

	errStr := err.Error()
	expectedFields := []string{"SERVER_PORT", "SERVER_ENV", "CORS_ALLOWED_ORIGINS", "DB_HOST", "JWT_SECRET_KEY", "DISCORD_ALLOWED_GUILD_IDS", "ALERT_LEAD_MINUTES"}
	for _, field := range expectedFields {
		if !strings.Contains(errStr, field) {
			t.Errorf("expected error to mention %s, got: %v", field, err)
		}
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Env: "development"}}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return true")
	}

	cfg.Server.Env = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return false in production")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Env: "production"}}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to return true")
	}

	cfg.Server.Env = "development"
	if cfg.IsProduction() {
		t.Error("expected IsProduction() to return false in development")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DISCORD_ALLOWED_GUILD_IDS", "g1,g2")
	t.Setenv("ALERT_CHECK_INTERVAL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Server.Port)
	}
	if len(cfg.Discord.AllowedGuildIDs) != 2 || cfg.Discord.AllowedGuildIDs[0] != "g1" {
		t.Errorf("expected guild list [g1 g2], got %v", cfg.Discord.AllowedGuildIDs)
	}
	if cfg.Alerts.CheckInterval != 30*time.Second {
		t.Errorf("expected 30s check interval, got %v", cfg.Alerts.CheckInterval)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Discord.APIBaseURL != "https://discord.com/api" {
		t.Errorf("expected Discord API default, got %q", cfg.Discord.APIBaseURL)
	}
	if cfg.Alerts.LeadMinutes != 30 {
		t.Errorf("expected default lead of 30 minutes, got %d", cfg.Alerts.LeadMinutes)
	}
}

// validBaseConfig returns a minimal valid configuration for testing
func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "overlay",
			Database:  "main",
			User:      "root",
			Password:  "root",
		},
		JWT: JWTConfig{
			SecretKey:      "test-secret",
			ExpirationMins: 720,
			Issuer:         "overlay-api.obsidianempire.gg",
		},
		Discord: DiscordConfig{
			ClientID:        "client-id",
			ClientSecret:    "client-secret",
			RedirectURI:     "http://localhost:8080/v1/auth/callback",
			APIBaseURL:      "https://discord.com/api",
			AllowedGuildIDs: []string{"guild-1"},
			EventRoleIDs:    []string{"role-organizer"},
		},
		Alerts: AlertConfig{
			LeadMinutes:   30,
			CheckInterval: time.Minute,
		},
	}
}
