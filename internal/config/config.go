package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Discord  DiscordConfig
	Alerts   AlertConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string        `env:"SERVER_PORT" envDefault:"8080"`
	Env            string        `env:"SERVER_ENV" envDefault:"development"`
	ReadTimeout    time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout   time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string `env:"DB_HOST" envDefault:"localhost"`
	Port      string `env:"DB_PORT" envDefault:"8000"`
	Namespace string `env:"DB_NAMESPACE" envDefault:"overlay"`
	Database  string `env:"DB_DATABASE" envDefault:"main"`
	User      string `env:"DB_USER" envDefault:"root"`
	Password  string `env:"DB_PASSWORD" envDefault:"root"`
}

// JWTConfig holds session token signing settings
type JWTConfig struct {
	SecretKey      string `env:"JWT_SECRET_KEY"`
	ExpirationMins int    `env:"JWT_EXPIRATION_MINS" envDefault:"720"`
	Issuer         string `env:"JWT_ISSUER" envDefault:"overlay-api.obsidianempire.gg"`
}

// DiscordConfig holds Discord OAuth and authorization settings
type DiscordConfig struct {
	ClientID        string   `env:"DISCORD_CLIENT_ID"`
	ClientSecret    string   `env:"DISCORD_CLIENT_SECRET"`
	RedirectURI     string   `env:"DISCORD_REDIRECT_URI"`
	APIBaseURL      string   `env:"DISCORD_API_BASE_URL" envDefault:"https://discord.com/api"`
	AllowedGuildIDs []string `env:"DISCORD_ALLOWED_GUILD_IDS" envSeparator:","`
	EventRoleIDs    []string `env:"DISCORD_EVENT_ROLE_IDS" envSeparator:","`
}

// AlertConfig holds upcoming-event alert settings
type AlertConfig struct {
	LeadMinutes   int           `env:"ALERT_LEAD_MINUTES" envDefault:"30"`
	CheckInterval time.Duration `env:"ALERT_CHECK_INTERVAL" envDefault:"1m"`
}

// Lead returns the alert lead window as a duration
func (a AlertConfig) Lead() time.Duration {
	return time.Duration(a.LeadMinutes) * time.Minute
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Database validation
	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	// JWT validation
	if c.JWT.SecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}
	if c.JWT.ExpirationMins <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MINS must be positive"))
	}

	// Discord validation. An empty guild allow-list would let the service
	// issue tokens nobody can use, so it is a startup failure.
	if c.Discord.ClientID == "" {
		errs = append(errs, errors.New("DISCORD_CLIENT_ID is required"))
	}
	if c.Discord.ClientSecret == "" {
		errs = append(errs, errors.New("DISCORD_CLIENT_SECRET is required"))
	}
	if c.Discord.RedirectURI == "" {
		errs = append(errs, errors.New("DISCORD_REDIRECT_URI is required"))
	}
	if len(c.Discord.AllowedGuildIDs) == 0 {
		errs = append(errs, errors.New("DISCORD_ALLOWED_GUILD_IDS must have at least one guild"))
	}

	// Alert validation
	if c.Alerts.LeadMinutes <= 0 {
		errs = append(errs, errors.New("ALERT_LEAD_MINUTES must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
