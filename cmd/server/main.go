package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rexlog-service/internal/infrastructure/config"
	"rexlog-service/internal/infrastructure/oauth"
	"rexlog-service/internal/infrastructure/persistence"
	"rexlog-service/internal/interface/api"
	infraRepo "rexlog-service/internal/interface/repository"
	"rexlog-service/internal/usecase"
	"rexlog-service/pkg/logger"
	"rexlog-service/pkg/metrics"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting REX Log Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection for the REX record store
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Maintenance window reference data lives in the planning database
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	windowRepo := infraRepo.NewGormMaintenanceWindowRepository(gormDB)
	rexRepo := infraRepo.NewMongoRexRepository(db)

	serviceAuth := oauth.NewServiceAuth(
		cfg.NotifierClientID,
		cfg.NotifierClientSecret,
		cfg.NotifierTokenURL,
		log,
	)
	notifierRepo := infraRepo.NewHTTPNotifierRepository(cfg.NotifierEndpoint, serviceAuth.HTTPClient(ctx), log)

	// Set up metrics and services
	m := metrics.NewMetrics("rexlog")
	rexService := usecase.NewRexService(windowRepo, rexRepo, m, log, cfg.EditorBaseURL)
	scanner := usecase.NewOpportunityScanner(windowRepo, rexRepo, notifierRepo, m, log, cfg.EditorBaseURL, cfg.ScanBatchSize)

	// Start the opportunity scanner in a goroutine
	if cfg.NotifierEndpoint != "" {
		go scanner.Run(ctx, cfg.ScanInterval)
	} else {
		log.Warn("No notifier endpoint configured, opportunity scanner disabled")
	}

	// Set up HTTP server
	rexHandler := api.NewRexHandler(rexService, log)
	router := api.NewRouter(rexHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("REX Log Service stopped")
}
