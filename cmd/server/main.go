package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "kottage-backend/internal/api/http"
	"kottage-backend/internal/config"
	"kottage-backend/internal/logger"
	"kottage-backend/internal/repository/realtime"
	"kottage-backend/internal/security"
	"kottage-backend/internal/service"
	"kottage-backend/internal/store"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Kottage Booking Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Store configuration", "type", cfg.Store.Type, "database_url", cfg.Store.DatabaseURL)

	// Initialize Store
	backend, err := newStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err)
		log.Fatalf("Failed to initialize store: %v", err)
	}
	logger.Info("Store initialized", "type", cfg.Store.Type)

	// Initialize Repositories
	registry := realtime.NewRegistry(backend)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Services
	emailService := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)
	analytics := service.NewLogAnalytics()

	reservationService := service.NewReservationService(
		registry.PropertyRepository,
		registry.BlockedDateRepository,
		registry.ReservationRepository,
		emailService,
		analytics,
		cfg.Booking.CleaningFeeCents,
		cfg.Booking.ServiceFeePercent,
	)
	availabilityService := service.NewAvailabilityService(
		registry.PropertyRepository,
		registry.BlockedDateRepository,
		analytics,
	)

	// Initialize Router
	router := httpapi.NewRouter(reservationService, availabilityService, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("HTTP server failed", "error", err)
		log.Fatalf("HTTP server failed: %v", err)
	}
}

// newStore selects the store backend from configuration
func newStore(cfg *config.Config) (store.Store, error) {
	if cfg.Store.Type == "firebase" {
		return store.NewFirebaseStore(context.Background(), cfg.Store.DatabaseURL, cfg.Store.CredentialsFile)
	}
	logger.Warn("Using in-memory store; data will not survive a restart")
	return store.NewMemoryStore(), nil
}
