package domain

import "time"

// MarketRow is one line of the markets table. Values are display data only;
// there is no live market feed behind them.
type MarketRow struct {
	Pair      string  `json:"pair"`
	Volume    float64 `json:"volume"`
	Change24h float64 `json:"change24h"`
	Liquidity float64 `json:"liquidity"`
	Change1h  float64 `json:"change1h"`
	Change1d  float64 `json:"change1d"`
	Change1w  float64 `json:"change1w"`
}

// Signal is a detected chart pattern shown on the signals board.
type Signal struct {
	Pair      string  `json:"pair"`
	Pattern   string  `json:"pattern"`
	Time      string  `json:"time"`
	Variation float64 `json:"variation"`
	Liquidity float64 `json:"liquidity"`
	IsHot     bool    `json:"isHot,omitempty"`
}

// EventKind classifies a journal event-log entry.
type EventKind string

const (
	EventTrade  EventKind = "Trade"
	EventAPI    EventKind = "API"
	EventSystem EventKind = "System"
	EventAlert  EventKind = "Alert"
)

// JournalEvent is one entry of the system history log.
type JournalEvent struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Kind        EventKind `json:"type"`
	Description string    `json:"description"`
}
