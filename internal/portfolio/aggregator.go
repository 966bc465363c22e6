package portfolio

import (
	"sort"
	"time"

	"riskdesk/internal/domain"
)

// Summary holds the aggregate view of the ledger for UI consumption.
type Summary struct {
	InitialCapital     float64 `json:"initialCapital"`
	AccumulatedBalance float64 `json:"accumulatedBalance"`
	TotalTrades        int     `json:"totalTrades"`
	OpenTrades         int     `json:"openTrades"`
	ClosedTrades       int     `json:"closedTrades"`
	WinningTrades      int     `json:"winningTrades"`
	LosingTrades       int     `json:"losingTrades"`
	WinRate            float64 `json:"winRate"`
	TotalGanancia      float64 `json:"totalGanancia"`
	TotalComision      float64 `json:"totalComision"`
	NetUDR             int     `json:"netUdr"`
}

// Window selects the span of the cumulative P&L series.
type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
)

// Valid reports whether the window is one of the selectable spans.
func (w Window) Valid() bool {
	switch w {
	case WindowDay, WindowWeek, WindowMonth, WindowYear:
		return true
	}
	return false
}

// Span returns the window length.
func (w Window) Span() time.Duration {
	switch w {
	case WindowDay:
		return 24 * time.Hour
	case WindowWeek:
		return 7 * 24 * time.Hour
	case WindowMonth:
		return 30 * 24 * time.Hour
	case WindowYear:
		return 365 * 24 * time.Hour
	}
	return 0
}

// SeriesPoint is one point of the cumulative P&L percentage curve.
type SeriesPoint struct {
	Time       time.Time `json:"time"`
	PnLPercent float64   `json:"pnlPercent"`
}

// AccumulatedBalance is the running balance: initial capital plus the net
// P&L of every closed trade. Open trades contribute nothing, and a trade can
// only ever be counted once because closing fields are write-once.
func AccumulatedBalance(trades []domain.Trade, initialCapital float64) float64 {
	balance := initialCapital
	for i := range trades {
		if trades[i].Status == domain.StatusClosed {
			balance += trades[i].Ganancia
		}
	}
	return balance
}

// Summarize recomputes the aggregate view from the ledger. It is cheap
// enough to run on every ledger change rather than maintaining incremental
// state.
func Summarize(trades []domain.Trade, initialCapital float64) Summary {
	s := Summary{
		InitialCapital:     initialCapital,
		AccumulatedBalance: initialCapital,
		TotalTrades:        len(trades),
	}
	for i := range trades {
		t := &trades[i]
		if t.Status != domain.StatusClosed {
			s.OpenTrades++
			continue
		}
		s.ClosedTrades++
		s.AccumulatedBalance += t.Ganancia
		s.TotalGanancia += t.Ganancia
		s.TotalComision += t.Comision
		s.NetUDR += t.UDRGanados
		if t.Ganancia > 0 {
			s.WinningTrades++
		} else {
			s.LosingTrades++
		}
	}
	if s.ClosedTrades > 0 {
		s.WinRate = float64(s.WinningTrades) / float64(s.ClosedTrades)
	}
	return s
}

// PnLSeries builds the cumulative P&L percentage curve over the selected
// window ending at now. Each point is the running sum of net P&L over the
// closed trades in the window, as a percentage of initial capital. The
// series is seeded with a synthetic origin point at 0% at the window start.
func PnLSeries(trades []domain.Trade, initialCapital float64, window Window, now time.Time) []SeriesPoint {
	start := now.Add(-window.Span())
	series := []SeriesPoint{{Time: start, PnLPercent: 0}}
	if initialCapital <= 0 {
		return series
	}

	closed := make([]domain.Trade, 0, len(trades))
	for i := range trades {
		t := trades[i]
		if t.Status != domain.StatusClosed {
			continue
		}
		at := closeTime(&t)
		if at.Before(start) || at.After(now) {
			continue
		}
		closed = append(closed, t)
	}
	sort.Slice(closed, func(i, j int) bool {
		return closeTime(&closed[i]).Before(closeTime(&closed[j]))
	})

	var cum float64
	for i := range closed {
		cum += closed[i].Ganancia
		series = append(series, SeriesPoint{
			Time:       closeTime(&closed[i]),
			PnLPercent: cum / initialCapital * 100,
		})
	}
	return series
}

// closeTime prefers the explicit close instant; records persisted before
// that field existed fall back to the registration timestamp.
func closeTime(t *domain.Trade) time.Time {
	if !t.ClosedAt.IsZero() {
		return t.ClosedAt
	}
	if at, err := time.Parse(time.RFC3339Nano, t.Timestamp); err == nil {
		return at
	}
	return time.Time{}
}
