package ledger

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"riskdesk/internal/domain"
	"riskdesk/internal/ports"
)

// Ledger owns the ordered trade collection and its lifecycle transitions.
// Display order is newest-first by timestamp. Every mutation serializes the
// full ledger to the store; a write failure is logged and does not roll back
// the in-memory state.
type Ledger struct {
	logger ports.Logger
	store  ports.LedgerStore

	mu     sync.Mutex
	trades []domain.Trade // newest first
	now    func() time.Time
}

// Config holds the ledger dependencies.
type Config struct {
	Store  ports.LedgerStore
	Logger ports.Logger
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// New builds a ledger and loads prior state from the store. A read or parse
// failure is non-fatal: it is logged and the ledger starts empty.
func New(ctx context.Context, cfg Config) (*Ledger, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required for ledger")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for ledger")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	l := &Ledger{logger: cfg.Logger, store: cfg.Store, now: now}

	trades, err := cfg.Store.Load(ctx)
	if err != nil {
		cfg.Logger.Warn(ctx, "Failed to load ledger from store, starting empty", map[string]interface{}{"error": err.Error()})
		trades = nil
	}
	l.trades = trades
	cfg.Logger.Info(ctx, "Ledger initialized", map[string]interface{}{"trades": len(trades)})
	return l, nil
}

// Add registers a new open trade from an input snapshot and its derived
// metrics, assigns a fresh unique timestamp and prepends it to the ledger.
func (l *Ledger) Add(ctx context.Context, inputs domain.TradeInputs, metrics domain.DerivedMetrics) (domain.Trade, error) {
	if strings.TrimSpace(inputs.Pair) == "" {
		return domain.Trade{}, fmt.Errorf("pair must not be empty: %w", ports.ErrInvalidInput)
	}
	if inputs.OrdenLimit <= 0 {
		return domain.Trade{}, fmt.Errorf("ordenLimit must be positive, got %g: %w", inputs.OrdenLimit, ports.ErrInvalidInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	trade := domain.Trade{
		Timestamp:      l.nextTimestamp(),
		Status:         domain.StatusOpen,
		TradeInputs:    inputs,
		DerivedMetrics: metrics,
	}
	l.trades = append([]domain.Trade{trade}, l.trades...)
	l.persist(ctx)

	l.logger.Info(ctx, "Trade registered", map[string]interface{}{
		"timestamp": trade.Timestamp,
		"pair":      trade.Pair,
		"inversion": trade.Inversion,
	})
	return trade, nil
}

// Close transitions an open trade to closed at the given profit level and
// computes realized P&L, commission and risk units won. Closing fields are
// write-once: a second close for the same trade reports ErrTradeClosed and
// leaves the record untouched.
func (l *Ledger) Close(ctx context.Context, timestamp string, level domain.ProfitLevel) (domain.Trade, error) {
	if !level.Valid() {
		return domain.Trade{}, fmt.Errorf("unknown profit level %q: %w", level, ports.ErrInvalidInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.trades {
		if l.trades[i].Timestamp == timestamp {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Trade{}, fmt.Errorf("trade %s: %w", timestamp, ports.ErrNotFound)
	}
	if !l.trades[idx].IsOpen() {
		return domain.Trade{}, fmt.Errorf("trade %s: %w", timestamp, ports.ErrTradeClosed)
	}

	trade := l.trades[idx]
	raw := rawGanancia(&trade, level)
	openFee := trade.Inversion * feeRate
	closeFee := (trade.Inversion + raw) * feeRate
	comision := openFee + closeFee

	trade.Status = domain.StatusClosed
	trade.ClosingLevel = level
	trade.Comision = comision
	trade.Ganancia = raw - comision
	trade.UDRGanados = level.UDRDelta()
	trade.ClosedAt = l.now().UTC()

	l.trades[idx] = trade
	l.persist(ctx)

	l.logger.Info(ctx, "Trade closed", map[string]interface{}{
		"timestamp": trade.Timestamp,
		"level":     string(level),
		"ganancia":  trade.Ganancia,
		"comision":  trade.Comision,
	})
	return trade, nil
}

// Ping reports whether the backing store is reachable.
func (l *Ledger) Ping(ctx context.Context) error {
	return l.store.Ping(ctx)
}

// Trades returns a copy of the ledger in display order (newest first).
func (l *Ledger) Trades(ctx context.Context) []domain.Trade {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// Find returns the trade with the given timestamp.
func (l *Ledger) Find(ctx context.Context, timestamp string) (domain.Trade, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.trades {
		if l.trades[i].Timestamp == timestamp {
			return l.trades[i], nil
		}
	}
	return domain.Trade{}, fmt.Errorf("trade %s: %w", timestamp, ports.ErrNotFound)
}

// feeRate is the per-side commission: 0.10% of the moved value.
const feeRate = 0.001

// rawGanancia is the realized P&L before commission: the stored container
// value minus the invested amount for a profit target, or minus one risk
// unit when stopped out.
func rawGanancia(t *domain.Trade, level domain.ProfitLevel) float64 {
	switch level {
	case domain.LevelOB1:
		return t.ProfitOB1 - t.Inversion
	case domain.LevelOB2:
		return t.ProfitOB2 - t.Inversion
	case domain.LevelOB3:
		return t.ProfitOB3 - t.Inversion
	case domain.LevelSL:
		return -t.UDR
	}
	return 0
}

// nextTimestamp produces a fresh RFC3339Nano timestamp, bumping by a
// nanosecond while it collides with an existing trade. Callers must hold mu.
func (l *Ledger) nextTimestamp() string {
	t := l.now().UTC()
	for {
		ts := t.Format(time.RFC3339Nano)
		if !l.hasTimestamp(ts) {
			return ts
		}
		t = t.Add(time.Nanosecond)
	}
}

func (l *Ledger) hasTimestamp(ts string) bool {
	for i := range l.trades {
		if l.trades[i].Timestamp == ts {
			return true
		}
	}
	return false
}

// persist serializes the full ledger to the store. Callers must hold mu.
func (l *Ledger) persist(ctx context.Context) {
	if err := l.store.Save(ctx, l.trades); err != nil {
		l.logger.Error(ctx, err, "Failed to persist ledger; in-memory state kept", map[string]interface{}{"trades": len(l.trades)})
	}
}
