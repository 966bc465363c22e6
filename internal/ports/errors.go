package ports

import "errors"

// Standard application-level errors.
// Adapters and services wrap underlying failures with these sentinels so
// callers can branch on errors.Is without knowing the infrastructure.
var (
	// General errors
	ErrUnknown            = errors.New("unknown error occurred")
	ErrInvalidInput       = errors.New("invalid input parameters")
	ErrNotFound           = errors.New("resource not found")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Ledger errors
	ErrTradeClosed = errors.New("trade is already closed")

	// Store errors
	ErrStoreUnavailable = errors.New("local store is unavailable")
	ErrCorruptPayload   = errors.New("stored payload could not be decoded")

	// Trend-signal errors
	ErrTrendUnavailable = errors.New("trend signal endpoint is unavailable")
)
