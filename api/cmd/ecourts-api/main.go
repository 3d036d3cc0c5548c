package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ecourts/api/internal/api/handlers"
	"ecourts/api/internal/api/middleware"
	"ecourts/api/internal/api/router"
	"ecourts/api/internal/config"
	"ecourts/api/internal/core/services"
	"ecourts/api/internal/infrastructure/ecourts"
	"ecourts/api/internal/infrastructure/envelope"
)

func main() {
	// --- 1. Core Telemetry & Configuration ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using system environment")
	}
	cfg := config.Load()

	// --- 2. Outbound Infrastructure ---
	codec := envelope.New()
	client := ecourts.NewClient(cfg.BaseURL, cfg.DeviceID, codec, logger)

	// --- 3. Services & Handlers ---
	authService := services.NewAuthService(client, logger)
	caseService := services.NewCaseService(client, logger)
	causeListService := services.NewCauseListService(client, logger)

	authHandler := handlers.NewAuthHandler(authService, logger)
	caseHandler := handlers.NewCaseHandler(caseService, logger)
	courtHandler := handlers.NewCourtHandler(causeListService, logger)
	healthHandler := handlers.NewHealthHandler(authService)
	upstreamAuth := middleware.NewUpstreamAuth(authService, logger)

	// --- 4. HTTP Gateway ---
	mux := router.NewRouter(router.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		AuthHandler:    authHandler,
		CaseHandler:    caseHandler,
		CourtHandler:   courtHandler,
		HealthHandler:  healthHandler,
		UpstreamAuth:   upstreamAuth,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
	}

	// --- 5. Graceful Exit ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("e-courts API active", "port", cfg.Port, "upstream", cfg.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server crashed", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("shutdown complete")
}
