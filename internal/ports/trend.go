package ports

import "context"

// TrendSignal is the short-term market trend classification returned by the
// external signal endpoint.
type TrendSignal struct {
	Bullish    bool   `json:"is_bullish"`
	Confidence string `json:"confidence"` // high, medium or low
	// Degraded is set when the endpoint failed and the value is a
	// best-effort fallback rather than a real classification.
	Degraded bool `json:"degraded,omitempty"`
}

// TrendProvider fetches a one-shot trend classification. Implementations
// must degrade gracefully: a failed or empty response yields a fallback
// signal with Degraded set, never a user-facing error.
type TrendProvider interface {
	Fetch(ctx context.Context) (TrendSignal, error)
}
