package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "carrental-backoffice/internal/api/http"
	"carrental-backoffice/internal/config"
	"carrental-backoffice/internal/logger"
	"carrental-backoffice/internal/repository/postgres"
	"carrental-backoffice/internal/security"
	"carrental-backoffice/internal/service"
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
	logger.Info("Starting car rental back office...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := postgres.Open(cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		cfg.JWT.Issuer,
	)

	// Initialize Services
	settingsSvc := service.NewSettingsService(store.Settings(), nil)
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName, settingsSvc)
	activitySvc := service.NewActivityService(store.ActivityLogs(), emailSvc, nil)
	settingsSvc = service.NewSettingsService(store.Settings(), activitySvc)
	rentalSvc := service.NewRentalService(store, settingsSvc, activitySvc, emailSvc, nil)
	fleetSvc := service.NewFleetService(store, activitySvc, nil)
	customerSvc := service.NewCustomerService(store, activitySvc, nil)
	authSvc := service.NewAuthService(store, tokenManager, customerSvc, activitySvc)

	// Seed reference data
	ctx := context.Background()
	if err := fleetSvc.SeedStatuses(ctx); err != nil {
		logger.Error("Failed to seed car statuses", "error", err)
		log.Fatalf("Failed to seed car statuses: %v", err)
	}
	if err := settingsSvc.InitializeDefaults(ctx); err != nil {
		logger.Error("Failed to initialize settings", "error", err)
		log.Fatalf("Failed to initialize settings: %v", err)
	}

	// Initialize HTTP routes
	handler := &httpapi.Handler{
		Auth:      authSvc,
		Rentals:   rentalSvc,
		Fleet:     fleetSvc,
		Customers: customerSvc,
		Settings:  settingsSvc,
		Activity:  activitySvc,
		Users:     store.Users(),
	}
	router := httpapi.NewRouter(handler, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
