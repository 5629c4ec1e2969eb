package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatherhub/api/internal/config"
	"github.com/gatherhub/api/internal/database"
	"github.com/gatherhub/api/internal/handler"
	"github.com/gatherhub/api/internal/middleware"
	"github.com/gatherhub/api/internal/repository"
	"github.com/gatherhub/api/internal/service"
	"github.com/gatherhub/api/pkg/jwt"
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

	// Initialize session token service
	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		ExpirationDays: cfg.JWT.ExpirationDays,
	})
	if err != nil {
		slog.Error("failed to initialize token service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	eventService := service.NewEventService(eventRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	eventHandler := handler.NewEventHandler(eventService)
	healthHandler := handler.NewHealthHandler(db)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{})
	defer rateLimiter.Stop()

	authMiddleware := middleware.Auth(authService)

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Check)

	// Public auth endpoints
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)

	// Event directory; literal segments take precedence over {id}
	mux.Handle("POST /v1/events", authMiddleware(http.HandlerFunc(eventHandler.Create)))
	mux.Handle("GET /v1/events", authMiddleware(http.HandlerFunc(eventHandler.List)))
	mux.Handle("GET /v1/events/my", authMiddleware(http.HandlerFunc(eventHandler.ListJoined)))
	mux.Handle("GET /v1/events/my-created", authMiddleware(http.HandlerFunc(eventHandler.ListCreated)))
	mux.Handle("GET /v1/events/{id}", authMiddleware(http.HandlerFunc(eventHandler.Get)))
	mux.Handle("GET /v1/events/{id}/status", authMiddleware(http.HandlerFunc(eventHandler.RSVPStatus)))
	mux.Handle("POST /v1/events/{id}/rsvp", authMiddleware(http.HandlerFunc(eventHandler.RSVP)))
	mux.Handle("PUT /v1/events/{id}", authMiddleware(http.HandlerFunc(eventHandler.Update)))
	mux.Handle("DELETE /v1/events/{id}", authMiddleware(http.HandlerFunc(eventHandler.Delete)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

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
