package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"riskdesk/internal/domain"
	"riskdesk/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// DefaultNamespace is the fixed key the ledger is stored under.
const DefaultNamespace = "riskdesk.trades"

// Store implements ports.LedgerStore as a durable local key-value store on
// SQLite. The whole ledger lives in one row as a JSON payload, overwritten
// wholesale on every mutation; there is no per-record schema and no
// versioning. Records missing newer fields decode to zero values.
type Store struct {
	db        *sql.DB
	logger    ports.Logger
	namespace string
}

// Config holds configuration for the SQLite store.
type Config struct {
	DBPath    string
	Namespace string
	Logger    ports.Logger
}

// NewStore opens (or creates) the store database and ensures the schema.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite store")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/riskdesk.db"
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite store initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite store initialization failed")
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite store initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from a
	// single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, logger: cfg.Logger, namespace: namespace}
	if err := s.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize store schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite store initialization failed")
		return nil, err
	}

	cfg.Logger.Info(context.Background(), "SQLite store ready", map[string]interface{}{"path": dbPath, "namespace": namespace})
	return s, nil
}

func (s *Store) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS journal_store (
		namespace  TEXT PRIMARY KEY,
		payload    BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Load reads and decodes the full ledger. A missing entry yields an empty
// ledger; a corrupt payload is reported so the caller can fall back.
func (s *Store) Load(ctx context.Context) ([]domain.Trade, error) {
	const query = `SELECT payload FROM journal_store WHERE namespace = ?`

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, s.namespace).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Debug(ctx, "No stored ledger found", map[string]interface{}{"namespace": s.namespace})
		return []domain.Trade{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger payload: %w", err)
	}

	var trades []domain.Trade
	if err := json.Unmarshal(payload, &trades); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCorruptPayload, err)
	}
	return trades, nil
}

// Save serializes and overwrites the full ledger under the fixed namespace.
func (s *Store) Save(ctx context.Context, trades []domain.Trade) error {
	payload, err := json.Marshal(trades)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	const query = `
	INSERT INTO journal_store (namespace, payload, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(namespace) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, s.namespace, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write ledger payload: %w", err)
	}
	s.logger.Debug(ctx, "Ledger persisted", map[string]interface{}{"namespace": s.namespace, "trades": len(trades)})
	return nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ports.ErrStoreUnavailable, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		s.logger.Info(context.Background(), "Closing SQLite store")
		return s.db.Close()
	}
	return nil
}
