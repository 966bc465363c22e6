package domain

import "time"

// TradeInputs is the immutable parameter snapshot captured when a trade is
// registered. Capital, risk and fluctuation are expressed the way the desk
// enters them: capital in account currency, riesgo/fluctuacion/fees in
// percent (e.g. 2 means 2%).
type TradeInputs struct {
	Pair           string  `json:"pair"`
	CapitalInicial float64 `json:"capitalInicial"`
	Riesgo         float64 `json:"riesgo"`
	Fluctuacion    float64 `json:"fluctuacion"`
	OrdenLimit     float64 `json:"ordenLimit"` // planned entry price
	FeeCompra      float64 `json:"feeCompra"`  // buy-side fee percent
	FeeVenta       float64 `json:"feeVenta"`   // sell-side fee percent
}

// SizingMetrics are the capital-based derived values. They depend only on
// capital, riesgo and fluctuacion, never on the entry price.
type SizingMetrics struct {
	Inversion        float64 `json:"inversion"` // position size in currency
	UDR              float64 `json:"udr"`       // one risk unit in currency
	UDRAFavor        float64 `json:"udrAFavor"`
	TotalOperaciones float64 `json:"totalOperaciones"`
	CapitalFinal     float64 `json:"capitalFinal"`
	Liquidez         float64 `json:"liquidez"`
	Delta            float64 `json:"delta"`        // percent, fluctuacion/2
	TrailingStop     float64 `json:"trailingStop"` // percent
	ProfitOB1        float64 `json:"profitOB1"`    // container value at 1x target
	ProfitOB2        float64 `json:"profitOB2"`
	ProfitOB3        float64 `json:"profitOB3"`
	SLTProfit        float64 `json:"sltProfit"`
	Relacion         string  `json:"relacion"` // "fluctuacion:riesgo"
}

// PriceLevels are the entry-price-based derived values. They depend only on
// ordenLimit and fluctuacion.
type PriceLevels struct {
	StopLoss         float64 `json:"stopLoss"`
	StopLossTrailing float64 `json:"stopLossTrailing"`
	Profit1          float64 `json:"profit1"`
	Profit2          float64 `json:"profit2"`
	Profit3          float64 `json:"profit3"`
}

// DerivedMetrics is the full set of values derived from TradeInputs. Once
// attached to a stored trade it is frozen; replanning never rewrites it.
type DerivedMetrics struct {
	SizingMetrics
	PriceLevels
}

// Trade is a journaled operation: the input snapshot, the metrics derived at
// registration time, and the lifecycle fields. Timestamp doubles as the
// unique identifier and descending sort key.
type Trade struct {
	Timestamp string      `json:"timestamp"`
	Status    TradeStatus `json:"status"`

	TradeInputs
	DerivedMetrics

	// Closing fields, populated exactly once when the trade is closed.
	// The numerics carry no omitempty: a closed trade with ganancia exactly
	// zero must still serialize the field.
	ClosingLevel ProfitLevel `json:"closingProfitLevel,omitempty"`
	Ganancia     float64     `json:"ganancia"` // net P&L
	Comision     float64     `json:"comision"` // total fees charged
	UDRGanados   int         `json:"udrGanados"`
	ClosedAt     time.Time   `json:"closedAt"`
}

// IsOpen reports whether the trade has not been closed yet.
func (t *Trade) IsOpen() bool {
	return t.Status == StatusOpen
}
