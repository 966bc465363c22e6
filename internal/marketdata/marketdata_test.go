package marketdata

import (
	"testing"
	"time"

	"riskdesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_MarketsDefaultSort(t *testing.T) {
	c := DefaultCatalog()

	rows := c.Markets(QuoteUSDT, "", SortByVolume, Desc)
	require.Len(t, rows, 6)
	assert.Equal(t, "BTC/USDT", rows[0].Pair)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Volume, rows[i].Volume)
	}
}

func TestCatalog_MarketsFilterAndSort(t *testing.T) {
	c := DefaultCatalog()

	rows := c.Markets(QuoteUSDT, "btc", SortByVolume, Desc)
	require.Len(t, rows, 1)
	assert.Equal(t, "BTC/USDT", rows[0].Pair)

	rows = c.Markets(QuoteUSDC, "", SortByPair, Asc)
	require.Len(t, rows, 4)
	assert.Equal(t, "AVAX/USDC", rows[0].Pair)
	assert.Equal(t, "LINK/USDC", rows[3].Pair)

	rows = c.Markets(QuoteUSDT, "", SortByChange24h, Asc)
	require.NotEmpty(t, rows)
	assert.Equal(t, "ADA/USDT", rows[0].Pair)
}

func TestCatalog_MarketsUnknownQuote(t *testing.T) {
	c := DefaultCatalog()
	assert.Empty(t, c.Markets(Quote("EUR"), "", SortByVolume, Desc))
}

func TestCatalog_Signals(t *testing.T) {
	board := DefaultCatalog().Signals()
	assert.Len(t, board.Reversion, 4)
	assert.Len(t, board.ShortTerm, 3)
	assert.True(t, board.Reversion[0].IsHot)
}

func TestEventLog_AppendAndFilter(t *testing.T) {
	l := NewEventLog()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	step := 0
	l.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	first := l.Append(domain.EventTrade, "BUY BTC/USDT @ 65,000.00")
	l.Append(domain.EventSystem, "maintenance window")
	l.Append(domain.EventTrade, "SELL BTC/USDT @ 66,000.00")

	assert.NotEmpty(t, first.ID)

	trades := l.Events(domain.EventTrade, "", Desc)
	require.Len(t, trades, 2)
	// Newest first by default.
	assert.Equal(t, "SELL BTC/USDT @ 66,000.00", trades[0].Description)

	asc := l.Events("", "btc", Asc)
	require.Len(t, asc, 2)
	assert.Equal(t, first.ID, asc[0].ID)

	assert.Empty(t, l.Events(domain.EventAPI, "", Desc))
}

func TestEventLog_IDsAreOrdered(t *testing.T) {
	l := NewEventLog()
	a := l.Append(domain.EventTrade, "a")
	b := l.Append(domain.EventTrade, "b")
	assert.Less(t, a.ID, b.ID)
}

func TestSeededEventLog(t *testing.T) {
	l := SeededEventLog()
	assert.Len(t, l.Events("", "", Desc), 6)
	assert.Len(t, l.Events(domain.EventAlert, "", Desc), 2)
}
