package trend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"riskdesk/internal/ports"
)

const (
	defaultTimeout = 5 * time.Second
	maxBodySize    = 1 << 16
)

// Client implements ports.TrendProvider against the external trend-signal
// endpoint. The call is one-shot with no retry: any failure or empty
// response degrades to a random classification flagged as Degraded, so the
// caller never has to surface a blocking error.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     ports.Logger
	coin       func() bool
}

// Config holds configuration specific to the trend client adapter.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	Logger   ports.Logger
	// Coin overrides the fallback coin flip, for tests.
	Coin func() bool
}

// New creates a new trend-signal client adapter.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for trend client")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required for trend client: %w", ports.ErrConfigurationError)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	coin := cfg.Coin
	if coin == nil {
		coin = func() bool { return rand.Intn(2) == 0 }
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.Endpoint,
		logger:     cfg.Logger,
		coin:       coin,
	}, nil
}

// Fetch performs the one-shot classification request.
func (c *Client) Fetch(ctx context.Context) (ports.TrendSignal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return c.fallback(ctx, fmt.Errorf("build trend request: %w", err)), nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fallback(ctx, fmt.Errorf("%w: %v", ports.ErrTrendUnavailable, err)), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.fallback(ctx, fmt.Errorf("%w: unexpected status %d", ports.ErrTrendUnavailable, resp.StatusCode)), nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil || len(body) == 0 {
		return c.fallback(ctx, fmt.Errorf("%w: empty or unreadable response", ports.ErrTrendUnavailable)), nil
	}

	var signal ports.TrendSignal
	if err := json.Unmarshal(body, &signal); err != nil {
		return c.fallback(ctx, fmt.Errorf("%w: %v", ports.ErrCorruptPayload, err)), nil
	}
	if signal.Confidence == "" {
		signal.Confidence = "medium"
	}
	signal.Degraded = false
	return signal, nil
}

// fallback logs the failure and returns a best-effort random signal.
func (c *Client) fallback(ctx context.Context, err error) ports.TrendSignal {
	c.logger.Warn(ctx, "Trend signal fetch failed, using fallback", map[string]interface{}{"error": err.Error()})
	return ports.TrendSignal{Bullish: c.coin(), Confidence: "low", Degraded: true}
}
