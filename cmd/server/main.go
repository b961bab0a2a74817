package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"

	"github.com/obsidianempire/overlay/api/internal/config"
	"github.com/obsidianempire/overlay/api/internal/database"
	"github.com/obsidianempire/overlay/api/internal/handler"
	"github.com/obsidianempire/overlay/api/internal/jobs"
	"github.com/obsidianempire/overlay/api/internal/middleware"
	"github.com/obsidianempire/overlay/api/internal/repository"
	"github.com/obsidianempire/overlay/api/internal/service"
	"github.com/obsidianempire/overlay/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	if err := database.EnsureSchema(ctx, db); err != nil {
		slog.Error("failed to apply database schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey:      cfg.JWT.SecretKey,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	craftingRepo := repository.NewCraftingRepository(db)
	rosterRepo := repository.NewRosterRepository(db)

	// Initialize services
	discordClient := service.NewDiscordClient(service.DiscordConfig{
		ClientID:     cfg.Discord.ClientID,
		ClientSecret: cfg.Discord.ClientSecret,
		RedirectURI:  cfg.Discord.RedirectURI,
		APIBaseURL:   cfg.Discord.APIBaseURL,
	})

	authService := service.NewAuthService(service.AuthServiceConfig{
		Provider:        discordClient,
		Tokens:          jwtService,
		AllowedGuildIDs: cfg.Discord.AllowedGuildIDs,
		EventRoleIDs:    cfg.Discord.EventRoleIDs,
	})

	eventService := service.NewEventService(service.EventServiceConfig{
		EventRepo:      eventRepo,
		DefaultRoleIDs: cfg.Discord.EventRoleIDs,
		AlertLead:      cfg.Alerts.Lead(),
	})

	craftingService := service.NewCraftingService(craftingRepo)

	overlayService := service.NewOverlayService(eventService, rosterRepo)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: 5,
		Burst:             20,
	})
	defer rateLimiter.Stop()

	// Initialize idempotency store
	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL:     24 * time.Hour,
		Cleanup: time.Hour,
	})
	defer idempotencyStore.Stop()

	// Start the alert watcher
	alertWatcher := jobs.NewAlertWatcher(eventService, cfg.Alerts.CheckInterval)
	alertWatcher.Start()
	defer alertWatcher.Stop()

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db)
	authHandler := handler.NewAuthHandler(authService, cfg.Alerts.Lead())
	eventHandler := handler.NewEventHandler(eventService)
	alertHandler := handler.NewAlertHandler(eventService)
	craftingHandler := handler.NewCraftingHandler(craftingService)
	overlayHandler := handler.NewOverlayHandler(overlayService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /healthz", healthHandler.Check)

	// Auth endpoints (public)
	mux.HandleFunc("GET /v1/auth/login", authHandler.Login)
	mux.HandleFunc("GET /v1/auth/callback", authHandler.Callback)
	mux.HandleFunc("POST /v1/auth/callback", authHandler.Callback)

	// Protected endpoints
	authMiddleware := middleware.Auth(authService)
	mux.Handle("GET /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))

	// Event endpoints
	mux.Handle("GET /v1/events", authMiddleware(http.HandlerFunc(eventHandler.List)))
	mux.Handle("POST /v1/events", authMiddleware(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("POST /v1/events/{eventId}/join", authMiddleware(http.HandlerFunc(eventHandler.Join)))
	mux.Handle("POST /v1/events/{eventId}/leave", authMiddleware(http.HandlerFunc(eventHandler.Leave)))
	mux.Handle("GET /v1/events/{eventId}/attendees", authMiddleware(http.HandlerFunc(eventHandler.Attendees)))

	// Alert endpoints
	mux.Handle("GET /v1/alerts", authMiddleware(http.HandlerFunc(alertHandler.List)))

	// Crafting endpoints
	mux.Handle("POST /v1/crafting/requests", authMiddleware(http.HandlerFunc(craftingHandler.Create)))
	mux.Handle("GET /v1/crafting/requests", authMiddleware(http.HandlerFunc(craftingHandler.List)))
	mux.Handle("GET /v1/crafting/requests/mine", authMiddleware(http.HandlerFunc(craftingHandler.ListMine)))
	mux.Handle("POST /v1/crafting/requests/{requestId}/accept", authMiddleware(http.HandlerFunc(craftingHandler.Accept)))
	mux.Handle("POST /v1/crafting/requests/{requestId}/complete", authMiddleware(http.HandlerFunc(craftingHandler.Complete)))
	mux.Handle("POST /v1/crafting/requests/{requestId}/cancel", authMiddleware(http.HandlerFunc(craftingHandler.Cancel)))

	// Overlay endpoints (read-only)
	mux.Handle("GET /v1/overlay/events", authMiddleware(http.HandlerFunc(overlayHandler.Events)))
	mux.Handle("GET /v1/overlay/roster", authMiddleware(http.HandlerFunc(overlayHandler.Roster)))
	mux.Handle("GET /v1/overlay/attendance", authMiddleware(http.HandlerFunc(overlayHandler.Attendance)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.RateLimit(rateLimiter),
		middleware.Idempotency(idempotencyStore),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
