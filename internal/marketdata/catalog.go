package marketdata

import (
	"sort"
	"strings"

	"riskdesk/internal/domain"
)

// The catalog serves the static market and signal tables. It is display
// data with filter and sort operations; there is no live feed behind it.

// Quote selects which stablecoin-quoted table is shown.
type Quote string

const (
	QuoteUSDT Quote = "USDT"
	QuoteUSDC Quote = "USDC"
)

// MarketSortKey names a sortable column of the markets table.
type MarketSortKey string

const (
	SortByPair      MarketSortKey = "pair"
	SortByVolume    MarketSortKey = "volume"
	SortByChange24h MarketSortKey = "change24h"
	SortByLiquidity MarketSortKey = "liquidity"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// SignalBoard groups the two signal lists shown on the signals view.
type SignalBoard struct {
	Reversion []domain.Signal `json:"reversion"` // 1h reversal patterns
	ShortTerm []domain.Signal `json:"shortTerm"` // 5-15m candle patterns
}

// Catalog holds the seeded tables.
type Catalog struct {
	markets map[Quote][]domain.MarketRow
	signals SignalBoard
}

// DefaultCatalog returns the catalog seeded with the standard display rows.
func DefaultCatalog() *Catalog {
	return &Catalog{
		markets: map[Quote][]domain.MarketRow{
			QuoteUSDT: {
				{Pair: "BTC/USDT", Volume: 1500000000, Change24h: 2.5, Liquidity: 500.5, Change1h: 0.5, Change1d: 2.5, Change1w: 5.8},
				{Pair: "ETH/USDT", Volume: 800000000, Change24h: -1.2, Liquidity: 300.2, Change1h: -0.2, Change1d: -1.2, Change1w: 3.1},
				{Pair: "SOL/USDT", Volume: 450000000, Change24h: 5.8, Liquidity: 150.0, Change1h: 1.1, Change1d: 5.8, Change1w: 12.3},
				{Pair: "XRP/USDT", Volume: 300000000, Change24h: 0.1, Liquidity: 100.7, Change1h: 0.0, Change1d: 0.1, Change1w: -2.4},
				{Pair: "ADA/USDT", Volume: 150000000, Change24h: -3.4, Liquidity: 80.1, Change1h: -0.8, Change1d: -3.4, Change1w: -5.0},
				{Pair: "DOGE/USDT", Volume: 250000000, Change24h: 10.2, Liquidity: 95.3, Change1h: 2.5, Change1d: 10.2, Change1w: 25.6},
			},
			QuoteUSDC: {
				{Pair: "BTC/USDC", Volume: 1200000000, Change24h: 2.6, Liquidity: 450.5, Change1h: 0.6, Change1d: 2.6, Change1w: 6.0},
				{Pair: "ETH/USDC", Volume: 750000000, Change24h: -1.1, Liquidity: 280.9, Change1h: -0.1, Change1d: -1.1, Change1w: 3.3},
				{Pair: "LINK/USDC", Volume: 90000000, Change24h: 4.5, Liquidity: 50.1, Change1h: 0.9, Change1d: 4.5, Change1w: 9.8},
				{Pair: "AVAX/USDC", Volume: 120000000, Change24h: -2.0, Liquidity: 65.4, Change1h: -0.5, Change1d: -2.0, Change1w: 1.2},
			},
		},
		signals: SignalBoard{
			Reversion: []domain.Signal{
				{Pair: "ETH/USDT", Pattern: "Doble Suelo", Time: "14:30", Variation: 2.1, Liquidity: 300.2, IsHot: true},
				{Pair: "ADA/USDT", Pattern: "Hombro Cabeza Hombro", Time: "12:15", Variation: -3.5, Liquidity: 80.1},
				{Pair: "LINK/USDT", Pattern: "Cuña Ascendente", Time: "11:05", Variation: -1.8, Liquidity: 50.1},
				{Pair: "MATIC/USDT", Pattern: "Triángulo Simétrico", Time: "10:45", Variation: 1.5, Liquidity: 45.3},
			},
			ShortTerm: []domain.Signal{
				{Pair: "SOL/USDT", Pattern: "Bandera Alcista", Time: "15:05", Variation: 1.2, Liquidity: 150.0, IsHot: true},
				{Pair: "DOGE/USDT", Pattern: "Engulfing Bajista", Time: "15:02", Variation: -0.8, Liquidity: 95.3},
				{Pair: "XRP/USDT", Pattern: "Martillo", Time: "14:55", Variation: 0.5, Liquidity: 100.7},
			},
		},
	}
}

// Markets returns the rows for a quote currency, filtered by a
// case-insensitive pair substring and sorted by the requested column.
// Unknown sort keys fall back to volume; empty order falls back to
// descending, the table's default.
func (c *Catalog) Markets(quote Quote, search string, sortKey MarketSortKey, order SortOrder) []domain.MarketRow {
	rows := c.markets[quote]
	out := make([]domain.MarketRow, 0, len(rows))
	needle := strings.ToLower(search)
	for _, row := range rows {
		if needle == "" || strings.Contains(strings.ToLower(row.Pair), needle) {
			out = append(out, row)
		}
	}

	if order != Asc {
		order = Desc
	}
	less := marketLess(sortKey)
	sort.SliceStable(out, func(i, j int) bool {
		if order == Asc {
			return less(&out[i], &out[j])
		}
		return less(&out[j], &out[i])
	})
	return out
}

// Signals returns both signal lists.
func (c *Catalog) Signals() SignalBoard {
	return c.signals
}

func marketLess(key MarketSortKey) func(a, b *domain.MarketRow) bool {
	switch key {
	case SortByPair:
		return func(a, b *domain.MarketRow) bool { return a.Pair < b.Pair }
	case SortByChange24h:
		return func(a, b *domain.MarketRow) bool { return a.Change24h < b.Change24h }
	case SortByLiquidity:
		return func(a, b *domain.MarketRow) bool { return a.Liquidity < b.Liquidity }
	default:
		return func(a, b *domain.MarketRow) bool { return a.Volume < b.Volume }
	}
}
