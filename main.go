package main

import (
	"context"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os/signal"
	"syscall"

	"riskdesk/config"
	"riskdesk/internal/adapters/logger"
	"riskdesk/internal/adapters/sqlite"
	"riskdesk/internal/adapters/trend"
	"riskdesk/internal/alert"
	"riskdesk/internal/app"
	"riskdesk/internal/ledger"
	"riskdesk/internal/marketdata"
	"riskdesk/internal/ports"
	"riskdesk/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.New(logger.Options{
		Level:    cfg.LogLevel,
		FilePath: cfg.LogFile,
	})
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Initialize Journal Store (Database Adapter)
	store, err := sqlite.NewStore(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize journal store")
		log.Fatalf("FATAL: Failed to initialize journal store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing journal store")
		}
	}()
	appLogger.Info(ctx, "Journal store initialized", map[string]interface{}{"path": cfg.DBPath})

	// 4. Initialize Trade Ledger
	journal, err := ledger.New(ctx, ledger.Config{
		Store:  store,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize trade ledger")
		log.Fatalf("FATAL: Failed to initialize trade ledger: %v", err)
	}

	// 5. Initialize Trend Provider (optional)
	var trendProvider ports.TrendProvider
	if cfg.TrendEndpoint != "" {
		client, err := trend.New(trend.Config{
			Endpoint: cfg.TrendEndpoint,
			Timeout:  cfg.TrendTimeout,
			Logger:   appLogger,
		})
		if err != nil {
			appLogger.Error(ctx, err, "FATAL: Failed to initialize trend client")
			log.Fatalf("FATAL: Failed to initialize trend client: %v", err)
		}
		trendProvider = client
		appLogger.Info(ctx, "Trend client initialized", map[string]interface{}{"endpoint": cfg.TrendEndpoint})
	} else {
		appLogger.Warn(ctx, "No trend endpoint configured, /trend reports degraded state")
	}

	// 6. Initialize Application Service
	deskService, err := app.NewDeskService(
		cfg,
		appLogger,
		journal,
		alert.NewChannel(cfg.AlertTTL, appLogger),
		trendProvider,
		marketdata.DefaultCatalog(),
		marketdata.SeededEventLog(),
	)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize desk service")
		log.Fatalf("FATAL: Failed to initialize desk service: %v", err)
	}
	appLogger.Info(ctx, "Desk service initialized")

	// 7. Start the HTTP Server
	srv, err := server.New(server.Config{
		ListenAddr: cfg.ListenAddr,
		Logger:     appLogger,
		Service:    deskService,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize HTTP server")
		log.Fatalf("FATAL: Failed to initialize HTTP server: %v", err)
	}

	if err := srv.Run(ctx); err != nil {
		appLogger.Error(ctx, err, "HTTP server exited with error")
		log.Fatalf("FATAL: HTTP server exited with error: %v", err)
	}

	appLogger.Info(context.Background(), "Application finished gracefully.")
}
