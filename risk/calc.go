// Package risk holds the statistical helpers reported alongside a backtest:
// value at risk, Sharpe ratio, volatility, drawdown and position sizing.
// All functions are pure math over return or price series.
package risk

import (
	"math"
	"sort"
)

// TradingDaysPerYear is used to annualize daily statistics.
const TradingDaysPerYear = 252

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the sample standard deviation.
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

// VaR returns the historical value at risk of a return series at the given
// confidence level (0.95 means the 5th-percentile return). The result is
// usually negative: the loss not exceeded with that confidence.
func VaR(returns []float64, confidence float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sorted := append([]float64(nil), returns...)
	sort.Float64s(sorted)

	rank := (1 - confidence) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SharpeRatio annualizes the mean excess daily return over its volatility.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - riskFreeRate/TradingDaysPerYear
	}
	sd := stddev(excess)
	if sd == 0 {
		return 0
	}
	return math.Sqrt(TradingDaysPerYear) * mean(excess) / sd
}

// Volatility is the standard deviation of returns, annualized by default.
func Volatility(returns []float64, annualized bool) float64 {
	v := stddev(returns)
	if annualized {
		return v * math.Sqrt(TradingDaysPerYear)
	}
	return v
}

// MaxDrawdown walks an equity (or price) curve and returns the deepest
// peak-to-trough decline and the drawdown at the final point, both as
// non-positive fractions.
func MaxDrawdown(equity []float64) (maxDD, currentDD float64) {
	peak := math.Inf(-1)
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := v/peak - 1
			currentDD = dd
			if dd < maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD, currentDD
}

// Beta regresses a return series against market returns.
func Beta(returns, marketReturns []float64) float64 {
	n := len(returns)
	if n != len(marketReturns) || n < 2 {
		return 0
	}
	mr, mm := mean(returns), mean(marketReturns)
	var cov, varM float64
	for i := 0; i < n; i++ {
		cov += (returns[i] - mr) * (marketReturns[i] - mm)
		varM += (marketReturns[i] - mm) * (marketReturns[i] - mm)
	}
	if varM == 0 {
		return 0
	}
	return cov / varM
}

// ReturnStats aggregates the headline statistics of a daily return series.
type ReturnStats struct {
	TotalReturn      float64
	AnnualizedReturn float64
	Volatility       float64
	SharpeRatio      float64
	MaxDrawdown      float64
}

// ComputeReturnStats summarizes a daily return series.
func ComputeReturnStats(returns []float64) ReturnStats {
	if len(returns) == 0 {
		return ReturnStats{}
	}

	growth := 1.0
	equity := make([]float64, len(returns))
	for i, r := range returns {
		growth *= 1 + r
		equity[i] = growth
	}
	maxDD, _ := MaxDrawdown(equity)

	return ReturnStats{
		TotalReturn:      growth - 1,
		AnnualizedReturn: math.Pow(growth, TradingDaysPerYear/float64(len(returns))) - 1,
		Volatility:       Volatility(returns, true),
		SharpeRatio:      SharpeRatio(returns, 0.01),
		MaxDrawdown:      maxDD,
	}
}

// PositionSize converts a cash risk budget and a per-share stop distance into
// a share count: risk cash*riskPerTrade dollars, lose stopLoss dollars per
// share if the stop is hit.
func PositionSize(cash, riskPerTrade, stopLoss float64) int {
	if stopLoss <= 0 {
		return 0
	}
	return int(cash * riskPerTrade / stopLoss)
}
