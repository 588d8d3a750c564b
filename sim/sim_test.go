package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"backsim/market"
)

// Shared fixtures for the sim package tests.

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

// flatSeries builds a series of daily bars where bar i (1-based day) opens
// and closes at the given price.
func flatSeries(t *testing.T, prices ...float64) *market.Series {
	t.Helper()
	bars := make([]market.Bar, 0, len(prices))
	for i, p := range prices {
		bars = append(bars, market.Bar{
			Date:  day(i + 1),
			Open:  p,
			High:  p,
			Low:   p,
			Close: p,
		})
	}
	s, err := market.NewSeries("TEST", bars)
	require.NoError(t, err)
	return s
}

// gappedSeries has bars whose open (95+day) differs from their close (100),
// so tests can tell which price, and which bar, an execution used.
func gappedSeries(t *testing.T) *market.Series {
	t.Helper()
	bars := make([]market.Bar, 0, 5)
	for d := 1; d <= 5; d++ {
		bars = append(bars, market.Bar{
			Date:  day(d),
			Open:  95 + float64(d),
			High:  101,
			Low:   94,
			Close: 100,
		})
	}
	s, err := market.NewSeries("TEST", bars)
	require.NoError(t, err)
	return s
}

func newTestAccount(t *testing.T, cash float64, opts ...Option) *Account {
	t.Helper()
	return NewAccount("TEST", cash, flatSeries(t, 100, 100, 100, 100, 100), opts...)
}

func mustTrade(t *testing.T, a *Account, req TradeRequest) *Transaction {
	t.Helper()
	tx, err := a.Trade(req)
	require.NoError(t, err)
	return tx
}
