package risk

import (
	"fmt"
	"math"

	"riskdesk/internal/domain"
)

// The calculator is pure and side-effect free. Sizing metrics and price
// levels form two independent groups: sizing depends on capital, riesgo and
// fluctuacion; price levels depend on ordenLimit and fluctuacion. A change
// to the entry price alone never forces a sizing recompute, and vice versa.

// positive reports whether x is a positive finite number. NaN and +Inf are
// rejected; a zero or negative value marks the degenerate input state.
func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1) && !math.IsNaN(x)
}

// Sizing computes the capital-based metrics. ok is false when capital,
// riesgo or fluctuacion is zero or not a positive finite number; callers
// treat that as "inputs incomplete", not as an error.
func Sizing(capital, riesgo, fluctuacion, feeCompra, feeVenta float64) (domain.SizingMetrics, bool) {
	if !positive(capital) || !positive(riesgo) || !positive(fluctuacion) {
		return domain.SizingMetrics{}, false
	}
	if feeCompra < 0 || feeVenta < 0 {
		return domain.SizingMetrics{}, false
	}

	inversion := capital / (fluctuacion / riesgo)
	profitAmount := inversion * (fluctuacion / 100)
	feeAmount := inversion * ((feeCompra + feeVenta) / 100)
	capitalFinal := capital + profitAmount - feeAmount

	return domain.SizingMetrics{
		Inversion:        inversion,
		UDR:              capital * (riesgo / 100),
		UDRAFavor:        100 / riesgo,
		TotalOperaciones: capital / inversion,
		CapitalFinal:     capitalFinal,
		Liquidez:         capitalFinal,
		Delta:            fluctuacion / 2,
		TrailingStop:     fluctuacion,
		ProfitOB1:        inversion + profitAmount,
		ProfitOB2:        inversion + 2*profitAmount,
		ProfitOB3:        inversion + 3*profitAmount,
		SLTProfit:        inversion - profitAmount,
		Relacion:         fmt.Sprintf("%g:%g", fluctuacion, riesgo),
	}, true
}

// Levels computes the entry-price-based stop and target prices. ok is false
// when ordenLimit or fluctuacion is not a positive finite number.
func Levels(ordenLimit, fluctuacion float64) (domain.PriceLevels, bool) {
	if !positive(ordenLimit) || !positive(fluctuacion) {
		return domain.PriceLevels{}, false
	}

	move := ordenLimit * (fluctuacion / 100)
	return domain.PriceLevels{
		StopLoss:         ordenLimit - move,
		StopLossTrailing: ordenLimit - move,
		Profit1:          ordenLimit + move,
		Profit2:          ordenLimit + 2*move,
		Profit3:          ordenLimit + 3*move,
	}, true
}

// Compute derives the full metric set from a parameter snapshot. ok is false
// when the sizing group is degenerate; the price-level group is filled only
// when ordenLimit is usable, so a plan without an entry price still yields
// sizing values.
func Compute(in domain.TradeInputs) (domain.DerivedMetrics, bool) {
	sizing, ok := Sizing(in.CapitalInicial, in.Riesgo, in.Fluctuacion, in.FeeCompra, in.FeeVenta)
	if !ok {
		return domain.DerivedMetrics{}, false
	}
	levels, _ := Levels(in.OrdenLimit, in.Fluctuacion)
	return domain.DerivedMetrics{SizingMetrics: sizing, PriceLevels: levels}, true
}
