package backtest

import (
	"time"

	"backsim/journal"
	"backsim/risk"
	"backsim/sim"
	"backsim/strategies"
)

// Result is the outcome of one completed run.
type Result struct {
	Ticker string
	Start  time.Time
	End    time.Time

	FinalCash  float64
	FinalValue float64

	Transactions []sim.Transaction
	EquityCurve  []journal.EquitySnapshot
	Strategy     strategies.Strategy
}

// Returns converts the per-step equity curve into simple period returns.
func (r *Result) Returns() []float64 {
	if len(r.EquityCurve) < 2 {
		return nil
	}
	out := make([]float64, 0, len(r.EquityCurve)-1)
	for i := 1; i < len(r.EquityCurve); i++ {
		prev := r.EquityCurve[i-1].TotalValue
		if prev == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, (r.EquityCurve[i].TotalValue-prev)/prev)
	}
	return out
}

// Equity returns the raw equity curve values, one per simulation step.
func (r *Result) Equity() []float64 {
	out := make([]float64, len(r.EquityCurve))
	for i, e := range r.EquityCurve {
		out[i] = e.TotalValue
	}
	return out
}

// Stats summarizes the run's return series.
func (r *Result) Stats() risk.ReturnStats {
	return risk.ComputeReturnStats(r.Returns())
}

// ExecutedTrades filters the ledger down to trades that actually moved cash,
// dropping cancellations, expiries and failed fills.
func (r *Result) ExecutedTrades() []sim.Transaction {
	var out []sim.Transaction
	for _, tx := range r.Transactions {
		if tx.Executed && tx.Kind != sim.Cancel {
			out = append(out, tx)
		}
	}
	return out
}

// RealizedPL sums the realized profit and loss over the whole ledger.
func (r *Result) RealizedPL() float64 {
	var total float64
	for _, tx := range r.Transactions {
		total += tx.RealizedPL
	}
	return total
}
