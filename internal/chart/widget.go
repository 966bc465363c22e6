package chart

import (
	"fmt"

	"riskdesk/internal/ports"
)

// The embedded chart widget is an opaque third-party surface: this package
// only produces the configuration blob it consumes and never reads anything
// back from it.

// Interval is a selectable chart timeframe.
type Interval string

const (
	Interval1h Interval = "1h"
	Interval1D Interval = "1D"
	Interval1W Interval = "1W"
	Interval1M Interval = "1M"
)

// DefaultSymbol is the pair shown when no symbol is configured.
const DefaultSymbol = "BINANCE:BTCUSDT"

// ParseInterval maps a request value onto a known interval. 24h labels are
// accepted as aliases for the daily chart.
func ParseInterval(s string) (Interval, error) {
	switch s {
	case "", "1D", "24h", "D":
		return Interval1D, nil
	case "1h", "60":
		return Interval1h, nil
	case "1W", "7d", "W":
		return Interval1W, nil
	case "1M", "30d", "M":
		return Interval1M, nil
	}
	return "", fmt.Errorf("unknown chart interval %q: %w", s, ports.ErrInvalidInput)
}

// WidgetCode is the interval code the embed widget expects.
func (i Interval) WidgetCode() string {
	switch i {
	case Interval1h:
		return "60"
	case Interval1W:
		return "W"
	case Interval1M:
		return "M"
	default:
		return "D"
	}
}

// WidgetConfig is the JSON configuration for the embeddable advanced chart.
// Field names and fixed values match what the widget script expects.
type WidgetConfig struct {
	Autosize          bool   `json:"autosize"`
	Symbol            string `json:"symbol"`
	Interval          string `json:"interval"`
	Timezone          string `json:"timezone"`
	Theme             string `json:"theme"`
	Style             string `json:"style"`
	Locale            string `json:"locale"`
	EnablePublishing  bool   `json:"enable_publishing"`
	HideSideToolbar   bool   `json:"hide_side_toolbar"`
	AllowSymbolChange bool   `json:"allow_symbol_change"`
}

// NewWidgetConfig builds the embed configuration for a symbol and interval.
// An empty symbol falls back to DefaultSymbol.
func NewWidgetConfig(symbol string, interval Interval) WidgetConfig {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return WidgetConfig{
		Autosize:          true,
		Symbol:            symbol,
		Interval:          interval.WidgetCode(),
		Timezone:          "Etc/UTC",
		Theme:             "dark",
		Style:             "1",
		Locale:            "es",
		EnablePublishing:  false,
		HideSideToolbar:   false,
		AllowSymbolChange: true,
	}
}
