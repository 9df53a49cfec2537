package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	_ "github.com/lib/pq"

	"rentaldesk-backend/internal/api/rest"
	"rentaldesk-backend/internal/backup"
	"rentaldesk-backend/internal/config"
	"rentaldesk-backend/internal/jobs"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/metrics"
	"rentaldesk-backend/internal/repository/postgres"
	"rentaldesk-backend/internal/scheduler"
	"rentaldesk-backend/internal/security"
	"rentaldesk-backend/internal/service"
)

// managerGroups are the group names counted by the rents-created gauge.
var managerGroups = []string{"Менеджер", "manager"}

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
	logger.Info("Starting RentalDesk Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.SMTP.APIKey, cfg.SMTP.From)

	// Initialize Services
	penaltyRate, err := decimal.NewFromString(cfg.Rental.PenaltyRate)
	if err != nil {
		log.Fatalf("Invalid penalty rate %q: %v", cfg.Rental.PenaltyRate, err)
	}
	rentalSvc := service.NewRentalService(db, store.RentRepository, store.EquipmentRepository, store.ClientRepository, store.AuditLogRepository, emailSvc, penaltyRate)
	equipmentSvc := service.NewEquipmentService(db, store.EquipmentRepository, store.AuditLogRepository)
	clientSvc := service.NewClientService(store.ClientRepository, store.AuditLogRepository)
	maintenanceSvc := service.NewMaintenanceService(store.MaintenanceRepository, store.EquipmentRepository, store.AuditLogRepository)
	authSvc := service.NewAuthService(store.StaffRepository, tokenManager, store.AuditLogRepository)
	auditSvc := service.NewAuditService(store.AuditLogRepository)

	// Initialize Metrics, Backups and Scheduler
	collector := metrics.NewCollector(store.StatsRepository, cfg.Rental.Currency, managerGroups, nil)
	backups := backup.NewManager(cfg.Backup, cfg.Database)
	jobRunner := jobs.NewJobRunner(store, collector, backups, emailSvc, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// Warm the gauges so /metrics is populated before the first tick.
	go jobRunner.RefreshMetrics()

	// Initialize HTTP API
	server := rest.NewServer(cfg, tokenManager, rest.Services{
		Auth:        authSvc,
		Rental:      rentalSvc,
		Equipment:   equipmentSvc,
		Clients:     clientSvc,
		Maintenance: maintenanceSvc,
		AuditLogs:   auditSvc,
	}, store, backups, collector)

	httpServer := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Shutdown complete")
}
