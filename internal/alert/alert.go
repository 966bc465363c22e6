package alert

import (
	"context"
	"sync"
	"time"

	"riskdesk/internal/ports"
)

// Kind classifies an alert as user feedback.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// State is the currently visible alert, if any.
type State struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind,omitempty"`
	Visible bool   `json:"visible"`
}

// DefaultTTL is how long an alert stays visible before auto-hiding.
const DefaultTTL = 3 * time.Second

// Channel holds transient user-facing notification state, decoupled from
// business data. At most one alert is visible; a new Show preempts the
// current one and restarts the hide timer, so timers never accumulate.
type Channel struct {
	logger ports.Logger
	ttl    time.Duration

	mu    sync.Mutex
	state State
	timer *time.Timer
	seq   uint64
}

// NewChannel builds an alert channel. A non-positive ttl selects DefaultTTL.
func NewChannel(ttl time.Duration, logger ports.Logger) *Channel {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Channel{logger: logger, ttl: ttl}
}

// Show makes the alert visible and schedules the auto-hide. The pending hide
// of any previous alert is cancelled first.
func (c *Channel) Show(ctx context.Context, message string, kind Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.seq++
	seq := c.seq
	c.state = State{Message: message, Kind: kind, Visible: true}
	c.timer = time.AfterFunc(c.ttl, func() { c.hide(seq) })

	if c.logger != nil {
		c.logger.Debug(ctx, "Alert shown", map[string]interface{}{"kind": string(kind), "message": message})
	}
}

// Current returns the visible alert state.
func (c *Channel) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// hide clears the alert unless a newer Show has replaced it. The sequence
// check covers the race where a stopped timer had already fired.
func (c *Channel) hide(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return
	}
	c.state = State{}
	c.timer = nil
}
