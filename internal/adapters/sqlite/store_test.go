package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"riskdesk/internal/domain"
	"riskdesk/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestStore creates a temporary store for testing
func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewStore(Config{DBPath: dbPath, Logger: &mockLogger{}})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dbPath
}

func sampleTrades() []domain.Trade {
	return []domain.Trade{
		{
			Timestamp: "2024-03-01T12:00:01Z",
			Status:    domain.StatusOpen,
			TradeInputs: domain.TradeInputs{
				Pair:           "BTC/USDT",
				CapitalInicial: 10000,
				Riesgo:         2,
				Fluctuacion:    4,
				OrdenLimit:     65000,
				FeeCompra:      0.1,
				FeeVenta:       0.1,
			},
			DerivedMetrics: domain.DerivedMetrics{
				SizingMetrics: domain.SizingMetrics{
					Inversion: 5000,
					UDR:       200,
					ProfitOB2: 5400,
					Relacion:  "4:2",
				},
				PriceLevels: domain.PriceLevels{
					StopLoss: 62400,
					Profit1:  67600,
				},
			},
		},
		{
			Timestamp:    "2024-03-01T12:00:00Z",
			Status:       domain.StatusClosed,
			ClosingLevel: domain.LevelOB2,
			Ganancia:     77.92,
			Comision:     2.08,
			UDRGanados:   2,
			ClosedAt:     time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	store, _ := setupTestStore(t)

	trades, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store, _ := setupTestStore(t)
	want := sampleTrades()

	require.NoError(t, store.Save(context.Background(), want))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_SaveOverwritesWholesale(t *testing.T) {
	store, _ := setupTestStore(t)

	require.NoError(t, store.Save(context.Background(), sampleTrades()))
	require.NoError(t, store.Save(context.Background(), sampleTrades()[:1]))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	want := sampleTrades()

	store, err := NewStore(Config{DBPath: dbPath, Logger: &mockLogger{}})
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), want))
	require.NoError(t, store.Close())

	reopened, err := NewStore(Config{DBPath: dbPath, Logger: &mockLogger{}})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_CorruptPayload(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.db.Exec(
		`INSERT INTO journal_store (namespace, payload, updated_at) VALUES (?, ?, ?)`,
		store.namespace, []byte("not json"), time.Now().UTC())
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, ports.ErrCorruptPayload)
}

func TestStore_LegacyRecordsDecodeWithZeroValues(t *testing.T) {
	store, _ := setupTestStore(t)

	// A record persisted before ClosedAt and fee fields existed.
	legacy := []byte(`[{"timestamp":"2024-01-01T00:00:00Z","status":"closed","pair":"BTC/USDT","ganancia":10}]`)
	_, err := store.db.Exec(
		`INSERT INTO journal_store (namespace, payload, updated_at) VALUES (?, ?, ?)`,
		store.namespace, legacy, time.Now().UTC())
	require.NoError(t, err)

	trades, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "BTC/USDT", trades[0].Pair)
	assert.True(t, trades[0].ClosedAt.IsZero())
	assert.Zero(t, trades[0].FeeCompra)
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	a, err := NewStore(Config{DBPath: dbPath, Namespace: "a", Logger: &mockLogger{}})
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.Save(context.Background(), sampleTrades()))

	b, err := NewStore(Config{DBPath: dbPath, Namespace: "b", Logger: &mockLogger{}})
	require.NoError(t, err)
	defer b.Close()

	got, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Ping(t *testing.T) {
	store, _ := setupTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestNewStoreRequiresLogger(t *testing.T) {
	_, err := NewStore(Config{DBPath: filepath.Join(os.TempDir(), "x.db")})
	assert.Error(t, err)
}
