package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"riskdesk/internal/adapters/logger" // for LogLevel parsing
)

// Config holds all application configuration.
type Config struct {
	// HTTP
	ListenAddr string

	// Desk defaults
	InitialCapital float64 // account capital the dashboard reports against
	DefaultRiesgo  float64 // default risk percent
	DefaultFluct   float64 // default fluctuation percent
	FeeCompra      float64 // buy-side fee percent
	FeeVenta       float64 // sell-side fee percent

	// Chart
	ChartSymbol string

	// Trend signal endpoint
	TrendEndpoint string
	TrendTimeout  time.Duration

	// Alerts
	AlertTTL time.Duration

	// Store
	DBPath string

	// Logging
	LogLevel logger.LogLevel
	LogFile  string
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string

	cfg.ListenAddr = getEnv("LISTEN_ADDR", ":8080")

	cfg.InitialCapital, err = getEnvAsFloatRequired("INITIAL_CAPITAL", 10000)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid INITIAL_CAPITAL: %v", err))
	} else if cfg.InitialCapital <= 0 {
		errs = append(errs, "INITIAL_CAPITAL must be positive")
	}

	cfg.DefaultRiesgo, err = getEnvAsFloatRequired("DEFAULT_RIESGO", 2.0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid DEFAULT_RIESGO: %v", err))
	} else if cfg.DefaultRiesgo <= 0 {
		errs = append(errs, "DEFAULT_RIESGO must be positive")
	}

	cfg.DefaultFluct, err = getEnvAsFloatRequired("DEFAULT_FLUCTUACION", 4.0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid DEFAULT_FLUCTUACION: %v", err))
	} else if cfg.DefaultFluct <= 0 {
		errs = append(errs, "DEFAULT_FLUCTUACION must be positive")
	}

	cfg.FeeCompra, err = getEnvAsFloatRequired("FEE_COMPRA", 0.1)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid FEE_COMPRA: %v", err))
	} else if cfg.FeeCompra < 0 {
		errs = append(errs, "FEE_COMPRA cannot be negative")
	}

	cfg.FeeVenta, err = getEnvAsFloatRequired("FEE_VENTA", 0.1)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid FEE_VENTA: %v", err))
	} else if cfg.FeeVenta < 0 {
		errs = append(errs, "FEE_VENTA cannot be negative")
	}

	cfg.ChartSymbol = getEnv("CHART_SYMBOL", "BINANCE:BTCUSDT")

	cfg.TrendEndpoint = getEnv("TREND_ENDPOINT", "")

	trendTimeoutSeconds := getEnvAsInt("TREND_TIMEOUT_SECONDS", 5)
	if trendTimeoutSeconds <= 0 {
		errs = append(errs, "TREND_TIMEOUT_SECONDS must be positive")
	}
	cfg.TrendTimeout = time.Duration(trendTimeoutSeconds) * time.Second

	alertTTLSeconds := getEnvAsInt("ALERT_TTL_SECONDS", 3)
	if alertTTLSeconds <= 0 {
		errs = append(errs, "ALERT_TTL_SECONDS must be positive")
	}
	cfg.AlertTTL = time.Duration(alertTTLSeconds) * time.Second

	cfg.DBPath = getEnv("DB_PATH", "./data/riskdesk.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))
	cfg.LogFile = getEnv("LOG_FILE", "")

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}
