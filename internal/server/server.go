package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"riskdesk/internal/app"
	"riskdesk/internal/chart"
	"riskdesk/internal/domain"
	"riskdesk/internal/marketdata"
	"riskdesk/internal/portfolio"
	"riskdesk/internal/ports"
)

// Server exposes the desk over HTTP.
type Server struct {
	addr     string
	logger   ports.Logger
	service  *app.DeskService
	validate *validator.Validate
	http     *http.Server
}

// Config holds the server dependencies.
type Config struct {
	ListenAddr string
	Logger     ports.Logger
	Service    *app.DeskService
}

// New creates an HTTP server around the desk service.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.Service == nil {
		return nil, fmt.Errorf("service is required")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	s := &Server{
		addr:     cfg.ListenAddr,
		logger:   cfg.Logger,
		service:  cfg.Service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	s.http = &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Routes builds the request multiplexer. Exported so tests can drive the
// handlers without a listening socket.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /plan", s.handlePlan)
	mux.HandleFunc("POST /trades", s.handleRegisterTrade)
	mux.HandleFunc("GET /trades", s.handleListTrades)
	mux.HandleFunc("POST /trades/{timestamp}/close", s.handleCloseTrade)
	mux.HandleFunc("GET /portfolio/summary", s.handleSummary)
	mux.HandleFunc("GET /portfolio/series", s.handleSeries)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("GET /markets", s.handleMarkets)
	mux.HandleFunc("GET /signals", s.handleSignals)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /trend", s.handleTrend)
	mux.HandleFunc("GET /chart", s.handleChart)
	mux.HandleFunc("GET /alert", s.handleAlert)

	return mux
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server listening", map[string]interface{}{"addr": s.addr})
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}

// planRequest is deliberately lax: a half-filled plan is not an error, the
// response just reports the metrics as suppressed. Fees are pointers so an
// explicit zero stays distinguishable from an omitted field.
type planRequest struct {
	CapitalInicial float64  `json:"capitalInicial" validate:"gte=0"`
	Riesgo         float64  `json:"riesgo" validate:"gte=0"`
	Fluctuacion    float64  `json:"fluctuacion" validate:"gte=0"`
	OrdenLimit     float64  `json:"ordenLimit" validate:"gte=0"`
	FeeCompra      *float64 `json:"feeCompra" validate:"omitempty,gte=0"`
	FeeVenta       *float64 `json:"feeVenta" validate:"omitempty,gte=0"`
}

type registerRequest struct {
	Pair           string   `json:"pair" validate:"required"`
	CapitalInicial float64  `json:"capitalInicial" validate:"gt=0"`
	Riesgo         float64  `json:"riesgo" validate:"gt=0"`
	Fluctuacion    float64  `json:"fluctuacion" validate:"gt=0"`
	OrdenLimit     float64  `json:"ordenLimit" validate:"gt=0"`
	FeeCompra      *float64 `json:"feeCompra" validate:"omitempty,gte=0"`
	FeeVenta       *float64 `json:"feeVenta" validate:"omitempty,gte=0"`
}

type closeRequest struct {
	Level string `json:"level" validate:"required,oneof=OB1 OB2 OB3 SL"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Health(r.Context()); err != nil {
		s.writeError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := planRequest{
		CapitalInicial: queryFloat(q.Get("capitalInicial")),
		Riesgo:         queryFloat(q.Get("riesgo")),
		Fluctuacion:    queryFloat(q.Get("fluctuacion")),
		OrdenLimit:     queryFloat(q.Get("ordenLimit")),
		FeeCompra:      queryFloatOptional(q.Get("feeCompra")),
		FeeVenta:       queryFloatOptional(q.Get("feeVenta")),
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid plan parameters: %w", err))
		return
	}

	metrics, ok := s.service.Plan(r.Context(), domain.TradeInputs{
		CapitalInicial: req.CapitalInicial,
		Riesgo:         req.Riesgo,
		Fluctuacion:    req.Fluctuacion,
		OrdenLimit:     req.OrdenLimit,
		FeeCompra:      feeOrUnset(req.FeeCompra),
		FeeVenta:       feeOrUnset(req.FeeVenta),
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      ok,
		"metrics": metrics,
	})
}

func (s *Server) handleRegisterTrade(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid trade request: %w", err))
		return
	}

	trade, err := s.service.RegisterTrade(r.Context(), domain.TradeInputs{
		Pair:           req.Pair,
		CapitalInicial: req.CapitalInicial,
		Riesgo:         req.Riesgo,
		Fluctuacion:    req.Fluctuacion,
		OrdenLimit:     req.OrdenLimit,
		FeeCompra:      feeOrUnset(req.FeeCompra),
		FeeVenta:       feeOrUnset(req.FeeVenta),
	})
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, trade)
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Trades(r.Context()))
}

func (s *Server) handleCloseTrade(w http.ResponseWriter, r *http.Request) {
	timestamp := r.PathValue("timestamp")

	var req closeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid close request: %w", err))
		return
	}

	trade, err := s.service.CloseTrade(r.Context(), timestamp, domain.ProfitLevel(req.Level))
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, trade)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Summary(r.Context()))
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	window := portfolio.Window(r.URL.Query().Get("window"))
	if window == "" {
		window = portfolio.WindowWeek
	}
	points, err := s.service.Series(r.Context(), window)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.DashboardSummary(r.Context()))
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	quote := marketdata.Quote(q.Get("quote"))
	if quote == "" {
		quote = marketdata.QuoteUSDT
	}
	rows := s.service.Markets(quote, q.Get("search"), marketdata.MarketSortKey(q.Get("sort")), marketdata.SortOrder(q.Get("order")))
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleSignals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Signals())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	events := s.service.Events(domain.EventKind(q.Get("type")), q.Get("search"), marketdata.SortOrder(q.Get("order")))
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.TrendSignal(r.Context()))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	interval, err := chart.ParseInterval(r.URL.Query().Get("interval"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, chart.NewWidgetConfig(s.service.ChartSymbol(), interval))
}

func (s *Server) handleAlert(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Alert())
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), err, "request failed", map[string]interface{}{
			"method": r.Method, "path": r.URL.Path,
		})
	} else {
		s.logger.Warn(r.Context(), "request rejected", map[string]interface{}{
			"method": r.Method, "path": r.URL.Path, "error": err.Error(),
		})
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrTradeClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func queryFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func queryFloatOptional(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// feeOrUnset maps an omitted fee onto the negative sentinel the service
// reads as "apply the configured default".
func feeOrUnset(p *float64) float64 {
	if p == nil {
		return -1
	}
	return *p
}
