package ports

import (
	"context"

	"riskdesk/internal/domain"
)

// LedgerStore defines the interface for the durable local key-value store
// that holds the trade ledger. The ledger is written wholesale on every
// mutation under a fixed namespace key; there is no per-record access.
type LedgerStore interface {
	// Load reads the full ledger. A missing entry is not an error and
	// yields an empty slice. Stored records missing newer fields decode
	// to their zero values.
	Load(ctx context.Context) ([]domain.Trade, error)
	// Save overwrites the full ledger.
	Save(ctx context.Context, trades []domain.Trade) error
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
	// Close releases the underlying resources.
	Close() error
}
