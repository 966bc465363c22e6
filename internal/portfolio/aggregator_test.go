package portfolio

import (
	"testing"
	"time"

	"riskdesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedTrade(ts string, ganancia, comision float64, udr int, closedAt time.Time) domain.Trade {
	return domain.Trade{
		Timestamp:  ts,
		Status:     domain.StatusClosed,
		Ganancia:   ganancia,
		Comision:   comision,
		UDRGanados: udr,
		ClosedAt:   closedAt,
	}
}

func TestAccumulatedBalance(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// No closed trades: balance equals initial capital exactly.
	assert.Equal(t, 10000.0, AccumulatedBalance(nil, 10000))
	open := []domain.Trade{{Timestamp: "a", Status: domain.StatusOpen}}
	assert.Equal(t, 10000.0, AccumulatedBalance(open, 10000))

	trades := []domain.Trade{
		closedTrade("a", 77.92, 2.08, 2, now),
		{Timestamp: "b", Status: domain.StatusOpen},
		closedTrade("c", -209.8, 9.8, -1, now),
	}
	assert.InDelta(t, 10000+77.92-209.8, AccumulatedBalance(trades, 10000), 1e-9)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	trades := []domain.Trade{
		closedTrade("a", 100, 2, 1, now),
		closedTrade("b", -50, 3, -1, now),
		closedTrade("c", 0, 1, -1, now), // zero P&L counts as losing
		{Timestamp: "d", Status: domain.StatusOpen},
	}

	s := Summarize(trades, 10000)
	assert.Equal(t, 4, s.TotalTrades)
	assert.Equal(t, 1, s.OpenTrades)
	assert.Equal(t, 3, s.ClosedTrades)
	assert.Equal(t, 1, s.WinningTrades)
	assert.Equal(t, 2, s.LosingTrades)
	assert.InDelta(t, 1.0/3.0, s.WinRate, 1e-9)
	assert.InDelta(t, 50, s.TotalGanancia, 1e-9)
	assert.InDelta(t, 6, s.TotalComision, 1e-9)
	assert.Equal(t, -1, s.NetUDR)
	assert.InDelta(t, 10050, s.AccumulatedBalance, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 2500)
	assert.Equal(t, 2500.0, s.AccumulatedBalance)
	assert.Zero(t, s.TotalTrades)
	assert.Zero(t, s.WinRate)
}

func TestPnLSeries(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	trades := []domain.Trade{
		closedTrade("a", 100, 2, 1, now.Add(-2*time.Hour)),
		closedTrade("b", -50, 3, -1, now.Add(-1*time.Hour)),
		// Outside the day window, must be excluded.
		closedTrade("old", 500, 5, 3, now.Add(-48*time.Hour)),
		{Timestamp: "open", Status: domain.StatusOpen},
	}

	series := PnLSeries(trades, 10000, WindowDay, now)
	require.Len(t, series, 3)

	// Synthetic origin at the window start.
	assert.Equal(t, now.Add(-24*time.Hour), series[0].Time)
	assert.Zero(t, series[0].PnLPercent)

	// Points ordered by close time, cumulative percentage of capital.
	assert.InDelta(t, 1.0, series[1].PnLPercent, 1e-9)  // 100/10000*100
	assert.InDelta(t, 0.5, series[2].PnLPercent, 1e-9)  // (100-50)/10000*100
	assert.True(t, series[1].Time.Before(series[2].Time))
}

func TestPnLSeriesWiderWindowIncludesOlderTrades(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	trades := []domain.Trade{
		closedTrade("old", 500, 5, 3, now.Add(-48*time.Hour)),
	}

	assert.Len(t, PnLSeries(trades, 10000, WindowDay, now), 1)
	week := PnLSeries(trades, 10000, WindowWeek, now)
	require.Len(t, week, 2)
	assert.InDelta(t, 5.0, week[1].PnLPercent, 1e-9)
}

func TestPnLSeriesLegacyRecordFallsBackToTimestamp(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	legacy := domain.Trade{
		Timestamp: now.Add(-3 * time.Hour).Format(time.RFC3339Nano),
		Status:    domain.StatusClosed,
		Ganancia:  100,
	}

	series := PnLSeries([]domain.Trade{legacy}, 10000, WindowDay, now)
	require.Len(t, series, 2)
	assert.InDelta(t, 1.0, series[1].PnLPercent, 1e-9)
}

func TestWindow(t *testing.T) {
	assert.True(t, WindowDay.Valid())
	assert.True(t, WindowYear.Valid())
	assert.False(t, Window("fortnight").Valid())
	assert.Equal(t, 7*24*time.Hour, WindowWeek.Span())
}
