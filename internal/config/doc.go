// Package config manages application configuration for the Overlay API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is parsed from environment variables via struct tags:
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil {
//	    // startup failure
//	}
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: session token signing settings
//   - DiscordConfig: OAuth credentials, guild allow-list, event role IDs
//   - AlertConfig: upcoming-event alert window settings
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT               - HTTP server port (default: 8080)
//	DB_HOST / DB_PORT         - SurrealDB endpoint
//	DB_NAMESPACE / DB_DATABASE - SurrealDB namespace and database
//	JWT_SECRET_KEY            - session token signing secret (required)
//	DISCORD_CLIENT_ID         - Discord OAuth client id (required)
//	DISCORD_CLIENT_SECRET     - Discord OAuth client secret (required)
//	DISCORD_REDIRECT_URI      - OAuth callback URL (required)
//	DISCORD_ALLOWED_GUILD_IDS - comma-separated guild allow-list (required)
//	DISCORD_EVENT_ROLE_IDS    - roles that may create and join gated events
//	ALERT_LEAD_MINUTES        - how far ahead the alert window looks (default: 30)
package config
