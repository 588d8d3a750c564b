// Package indicators exposes the vectorized technical indicators strategies
// draw on. The math is delegated to go-talib; every function takes a full
// series and returns a slice aligned to it, with zeroes inside the lookback
// window.
package indicators

import (
	talib "github.com/markcheno/go-talib"
)

// SMA is the simple moving average over the given period.
func SMA(values []float64, period int) []float64 {
	return talib.Sma(values, period)
}

// EMA is the exponential moving average over the given period.
func EMA(values []float64, period int) []float64 {
	return talib.Ema(values, period)
}

// RSI is the relative strength index over the given period.
func RSI(values []float64, period int) []float64 {
	return talib.Rsi(values, period)
}

// MACD returns the MACD line, its signal line and the histogram.
func MACD(values []float64, fast, slow, signal int) (macd, sig, hist []float64) {
	return talib.Macd(values, fast, slow, signal)
}

// Bollinger returns the upper, middle and lower bands at stdDev standard
// deviations around an SMA of the given period.
func Bollinger(values []float64, period int, stdDev float64) (upper, middle, lower []float64) {
	return talib.BBands(values, period, stdDev, stdDev, talib.SMA)
}

// Crossover reports whether series a crossed above series b at index i.
func Crossover(a, b []float64, i int) bool {
	if i < 1 || i >= len(a) || i >= len(b) {
		return false
	}
	return a[i-1] <= b[i-1] && a[i] > b[i]
}
