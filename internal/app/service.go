package app

import (
	"context"
	"fmt"
	"time"

	"riskdesk/config"
	"riskdesk/internal/alert"
	"riskdesk/internal/domain"
	"riskdesk/internal/ledger"
	"riskdesk/internal/marketdata"
	"riskdesk/internal/portfolio"
	"riskdesk/internal/ports"
	"riskdesk/internal/risk"
)

// DeskService orchestrates the journal desk: planning, trade lifecycle,
// portfolio aggregation, alerts and the auxiliary display data. It owns no
// business math itself; it wires the calculator, the ledger and the
// aggregator and attaches the user-feedback side effects.
type DeskService struct {
	cfg     *config.Config
	logger  ports.Logger
	ledger  *ledger.Ledger
	alerts  *alert.Channel
	trend   ports.TrendProvider
	catalog *marketdata.Catalog
	events  *marketdata.EventLog
}

// Dashboard is the quick-summary block of the landing view.
type Dashboard struct {
	CapitalInicial   float64 `json:"capitalInicial"`
	Liquidez         float64 `json:"liquidez"`
	TotalOperaciones int     `json:"totalOperaciones"`
	UDR              float64 `json:"udr"`
}

// NewDeskService creates the application service instance.
func NewDeskService(
	cfg *config.Config,
	logger ports.Logger,
	journal *ledger.Ledger,
	alerts *alert.Channel,
	trend ports.TrendProvider,
	catalog *marketdata.Catalog,
	events *marketdata.EventLog,
) (*DeskService, error) {
	if cfg == nil || logger == nil || journal == nil || alerts == nil || catalog == nil || events == nil {
		return nil, fmt.Errorf("missing required dependencies for DeskService")
	}
	if cfg.InitialCapital <= 0 {
		return nil, fmt.Errorf("configuration InitialCapital must be positive")
	}
	// trend may be nil: the endpoint is optional and /trend then reports
	// the unavailable state.
	return &DeskService{
		cfg:     cfg,
		logger:  logger,
		ledger:  journal,
		alerts:  alerts,
		trend:   trend,
		catalog: catalog,
		events:  events,
	}, nil
}

// Health reports whether the journal's backing store is reachable.
func (s *DeskService) Health(ctx context.Context) error {
	return s.ledger.Ping(ctx)
}

// Plan derives the metrics for a parameter set without touching the ledger.
// ok is false for the degenerate input state; callers suppress dependent
// display rather than treating it as a failure.
func (s *DeskService) Plan(ctx context.Context, in domain.TradeInputs) (domain.DerivedMetrics, bool) {
	in = s.withFeeDefaults(in)
	metrics, ok := risk.Compute(in)
	if !ok {
		s.logger.Debug(ctx, "Plan inputs incomplete, metrics suppressed", map[string]interface{}{
			"capital": in.CapitalInicial, "riesgo": in.Riesgo, "fluctuacion": in.Fluctuacion,
		})
	}
	return metrics, ok
}

// RegisterTrade captures the inputs and their derived metrics as a new open
// trade. Validation failures raise an error alert and mutate nothing.
func (s *DeskService) RegisterTrade(ctx context.Context, in domain.TradeInputs) (domain.Trade, error) {
	op := "registerTrade"
	in = s.withFeeDefaults(in)

	metrics, ok := risk.Compute(in)
	if !ok {
		err := fmt.Errorf("cannot register trade with incomplete parameters: %w", ports.ErrInvalidInput)
		s.alerts.Show(ctx, "Parámetros incompletos: revisa capital, riesgo y fluctuación.", alert.KindError)
		return domain.Trade{}, err
	}

	trade, err := s.ledger.Add(ctx, in, metrics)
	if err != nil {
		s.logger.Error(ctx, err, op+": failed to register trade", map[string]interface{}{"pair": in.Pair})
		s.alerts.Show(ctx, "No se pudo registrar la operación.", alert.KindError)
		return domain.Trade{}, err
	}

	s.alerts.Show(ctx, "Operación registrada correctamente.", alert.KindSuccess)
	s.events.Append(domain.EventTrade, fmt.Sprintf("BUY %s @ %.2f", trade.Pair, trade.OrdenLimit))
	return trade, nil
}

// CloseTrade closes an open trade at one of the predefined levels.
func (s *DeskService) CloseTrade(ctx context.Context, timestamp string, level domain.ProfitLevel) (domain.Trade, error) {
	op := "closeTrade"

	trade, err := s.ledger.Close(ctx, timestamp, level)
	if err != nil {
		s.logger.Error(ctx, err, op+": failed to close trade", map[string]interface{}{"timestamp": timestamp, "level": string(level)})
		s.alerts.Show(ctx, "No se pudo cerrar la operación.", alert.KindError)
		return domain.Trade{}, err
	}

	s.alerts.Show(ctx, "Operación cerrada correctamente.", alert.KindSuccess)
	s.events.Append(domain.EventTrade, fmt.Sprintf("CLOSE %s %s, P&L %.2f", trade.Pair, level, trade.Ganancia))
	return trade, nil
}

// Trades returns the ledger in display order.
func (s *DeskService) Trades(ctx context.Context) []domain.Trade {
	return s.ledger.Trades(ctx)
}

// Summary recomputes the portfolio aggregate from the current ledger.
func (s *DeskService) Summary(ctx context.Context) portfolio.Summary {
	return portfolio.Summarize(s.ledger.Trades(ctx), s.cfg.InitialCapital)
}

// Series builds the cumulative P&L percentage curve for a window.
func (s *DeskService) Series(ctx context.Context, window portfolio.Window) ([]portfolio.SeriesPoint, error) {
	if !window.Valid() {
		return nil, fmt.Errorf("unknown window %q: %w", window, ports.ErrInvalidInput)
	}
	return portfolio.PnLSeries(s.ledger.Trades(ctx), s.cfg.InitialCapital, window, time.Now().UTC()), nil
}

// DashboardSummary derives the landing-view cards from the live ledger
// instead of fixed display values.
func (s *DeskService) DashboardSummary(ctx context.Context) Dashboard {
	trades := s.ledger.Trades(ctx)
	sum := portfolio.Summarize(trades, s.cfg.InitialCapital)

	udr := s.cfg.InitialCapital * s.cfg.DefaultRiesgo / 100
	if len(trades) > 0 {
		udr = trades[0].UDR // most recent plan wins
	}
	return Dashboard{
		CapitalInicial:   sum.InitialCapital,
		Liquidez:         sum.AccumulatedBalance,
		TotalOperaciones: sum.TotalTrades,
		UDR:              udr,
	}
}

// TrendSignal fetches the best-effort market trend. Without a configured
// provider it reports the degraded state directly.
func (s *DeskService) TrendSignal(ctx context.Context) ports.TrendSignal {
	if s.trend == nil {
		return ports.TrendSignal{Confidence: "low", Degraded: true}
	}
	signal, err := s.trend.Fetch(ctx)
	if err != nil {
		// Providers degrade internally; an error here still must not block.
		s.logger.Warn(ctx, "Trend provider returned error", map[string]interface{}{"error": err.Error()})
		return ports.TrendSignal{Confidence: "low", Degraded: true}
	}
	return signal
}

// Alert returns the currently visible alert state.
func (s *DeskService) Alert() alert.State {
	return s.alerts.Current()
}

// Markets proxies the static markets table with filter and sort applied.
func (s *DeskService) Markets(quote marketdata.Quote, search string, sortKey marketdata.MarketSortKey, order marketdata.SortOrder) []domain.MarketRow {
	return s.catalog.Markets(quote, search, sortKey, order)
}

// Signals returns the static signal board.
func (s *DeskService) Signals() marketdata.SignalBoard {
	return s.catalog.Signals()
}

// Events returns the filtered journal event log.
func (s *DeskService) Events(kind domain.EventKind, search string, order marketdata.SortOrder) []domain.JournalEvent {
	return s.events.Events(kind, search, order)
}

// ChartSymbol is the configured chart pair.
func (s *DeskService) ChartSymbol() string {
	return s.cfg.ChartSymbol
}

// withFeeDefaults fills unset fee percentages from configuration so plans
// match the desk's standard cost assumptions. A negative fee marks the field
// as not provided; zero is an explicit zero-fee entry and is kept.
func (s *DeskService) withFeeDefaults(in domain.TradeInputs) domain.TradeInputs {
	if in.FeeCompra < 0 {
		in.FeeCompra = s.cfg.FeeCompra
	}
	if in.FeeVenta < 0 {
		in.FeeVenta = s.cfg.FeeVenta
	}
	return in
}
