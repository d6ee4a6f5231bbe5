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

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/diewo77/docugen/internal/config"
	"github.com/diewo77/docugen/internal/db"
	"github.com/diewo77/docugen/internal/export"
	"github.com/diewo77/docugen/internal/service"
	"github.com/diewo77/docugen/internal/storage"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	// Load configuration from environment
	cfg := config.Load()

	logger, err := newLogger(cfg.App.Dev)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database using config struct
	dbConn, err := connectDB(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Handle migrate-only flag
	if *migrateOnlyFlag {
		if err := db.Migrate(dbConn); err != nil {
			logger.Fatal("Migration failed", zap.Error(err))
		}
		logger.Info("Migrations completed successfully")
		return
	}

	// Handle seed-only flag
	if *seedOnlyFlag {
		if err := db.Seed(dbConn); err != nil {
			logger.Fatal("Seeding failed", zap.Error(err))
		}
		logger.Info("Seeding completed successfully")
		return
	}

	// Run migrations on startup if enabled
	if cfg.App.Migrations {
		if err := db.Migrate(dbConn); err != nil {
			logger.Fatal("Migration failed", zap.Error(err))
		}
		logger.Info("Migrations completed")
	}

	// Seed default data (global templates)
	if err := db.Seed(dbConn); err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}

	// Object storage for PDF artifacts and logos
	store, err := storage.NewMinioStore(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.UseSSL,
	)
	if err != nil {
		logger.Fatal("Failed to connect to object storage", zap.Error(err))
	}

	// Headless Chrome PDF exporter
	exportOpts := export.DefaultOptions()
	exportOpts.ChromePath = cfg.Export.ChromePath
	exportOpts.Timeout = time.Duration(cfg.Export.Timeout) * time.Second
	exporter := export.New(exportOpts, logger)

	docs := service.NewDocuments(dbConn, store, exporter, cfg.Documents.TaxRate, logger)

	// Create application handler
	appHandler := NewApp(dbConn, docs, store, logger)

	// Create server with config timeouts
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      appHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting",
			zap.String("port", cfg.Server.Port),
			zap.Bool("dev", cfg.App.Dev))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	logger.Info("Server stopped gracefully")
}

// newLogger builds a development or production zap logger.
func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// connectDB establishes a connection to the PostgreSQL database using config.
func connectDB(dbCfg config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	logger.Info("Connecting to database",
		zap.String("host", dbCfg.Host),
		zap.Int("port", dbCfg.Port),
		zap.String("dbname", dbCfg.DBName),
		zap.String("user", dbCfg.User))
	return gorm.Open(postgres.Open(dbCfg.DSN()), &gorm.Config{})
}
