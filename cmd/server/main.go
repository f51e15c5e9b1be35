package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskreg/api/internal/config"
	"github.com/taskreg/api/internal/handler"
	"github.com/taskreg/api/internal/middleware"
	"github.com/taskreg/api/internal/service"
	"github.com/taskreg/api/internal/store"
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

	// Select and connect the persistence backend
	st := newStore(cfg)

	ctx := context.Background()
	if err := st.Connect(ctx); err != nil {
		slog.Error("failed to connect storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = st.Close() }()

	slog.Info("storage connected", slog.String("backend", cfg.Storage.Backend))

	// Load all entity collections into memory
	registry := service.NewRegistry(st)
	if err := registry.Initialize(ctx); err != nil {
		slog.Error("failed to initialize registry", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(registry, st)
	userHandler := handler.NewUserHandler(registry)
	tagHandler := handler.NewTagHandler(registry)
	teamHandler := handler.NewTeamHandler(registry)
	taskHandler := handler.NewTaskHandler(registry)
	exportHandler := handler.NewExportHandler(registry)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Health)

	// User endpoints
	mux.HandleFunc("POST /v1/users", userHandler.CreateUser)
	mux.HandleFunc("GET /v1/users", userHandler.ListUsers)
	mux.HandleFunc("GET /v1/users/{userId}", userHandler.GetUser)
	mux.HandleFunc("PATCH /v1/users/{userId}", userHandler.UpdateUser)
	mux.HandleFunc("DELETE /v1/users/{userId}", userHandler.DeleteUser)

	// Tag endpoints
	mux.HandleFunc("POST /v1/tags", tagHandler.CreateTag)
	mux.HandleFunc("GET /v1/tags", tagHandler.ListTags)
	mux.HandleFunc("GET /v1/tags/{tagId}", tagHandler.GetTag)
	mux.HandleFunc("PATCH /v1/tags/{tagId}", tagHandler.UpdateTag)
	mux.HandleFunc("DELETE /v1/tags/{tagId}", tagHandler.DeleteTag)

	// Team endpoints
	mux.HandleFunc("POST /v1/teams", teamHandler.CreateTeam)
	mux.HandleFunc("GET /v1/teams", teamHandler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamId}", teamHandler.GetTeam)
	mux.HandleFunc("PATCH /v1/teams/{teamId}", teamHandler.UpdateTeam)
	mux.HandleFunc("DELETE /v1/teams/{teamId}", teamHandler.DeleteTeam)
	mux.HandleFunc("POST /v1/teams/{teamId}/members", teamHandler.AddMember)
	mux.HandleFunc("DELETE /v1/teams/{teamId}/members/{userId}", teamHandler.RemoveMember)
	mux.HandleFunc("GET /v1/teams/{teamId}/tasks", teamHandler.ListTeamTasks)

	// Task endpoints
	mux.HandleFunc("POST /v1/tasks", taskHandler.CreateTask)
	mux.HandleFunc("GET /v1/tasks", taskHandler.ListTasks)
	mux.HandleFunc("GET /v1/tasks/{taskId}", taskHandler.GetTask)
	mux.HandleFunc("PATCH /v1/tasks/{taskId}", taskHandler.UpdateTask)
	mux.HandleFunc("DELETE /v1/tasks/{taskId}", taskHandler.DeleteTask)
	mux.HandleFunc("PATCH /v1/tasks/{taskId}/status", taskHandler.SetStatus)
	mux.HandleFunc("POST /v1/tasks/{taskId}/tags", taskHandler.AttachTag)
	mux.HandleFunc("DELETE /v1/tasks/{taskId}/tags/{tagId}", taskHandler.DetachTag)

	// Export endpoints
	mux.HandleFunc("GET /v1/export/tasks.csv", exportHandler.ExportTasksCSV)

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	// Persist all collections exactly once
	if err := registry.Finalize(shutdownCtx); err != nil {
		slog.Error("failed to persist registry", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("server exited")
}

func newStore(cfg *config.Config) store.Store {
	if cfg.Storage.Backend == "surreal" {
		return store.NewSurrealStore(store.SurrealConfig{
			Host:      cfg.Database.Host,
			Port:      cfg.Database.Port,
			User:      cfg.Database.User,
			Password:  cfg.Database.Password,
			Namespace: cfg.Database.Namespace,
			Database:  cfg.Database.Database,
		})
	}
	return store.NewFileStore(cfg.Storage.DataDir)
}
