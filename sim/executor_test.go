package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuyDebitsCashAndOpensLot(t *testing.T) {
	a := newTestAccount(t, 10000, WithCommission(CommissionFlat, 1))

	tx := mustTrade(t, a, TradeRequest{Kind: Buy, Shares: 10, Price: 50})

	assert.InDelta(t, 10000-10*50-1, a.Cash(), 1e-9)
	require.Len(t, a.Lots(), 1)
	lot := a.Lots()[0]
	assert.Equal(t, Long, lot.Side)
	assert.Equal(t, 10, lot.SharesOpen)
	assert.InDelta(t, 500, lot.CostBasis, 1e-9)

	assert.Equal(t, Buy, tx.Kind)
	assert.True(t, tx.Executed)
	assert.NotEmpty(t, tx.ID)
	assert.Zero(t, tx.RealizedPL)
}

func TestBuyInsufficientFundsIsAtomic(t *testing.T) {
	a := newTestAccount(t, 100, WithCommission(CommissionFlat, 1))

	_, err := a.Trade(TradeRequest{Kind: Buy, Shares: 10, Price: 50})

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.InDelta(t, 100, a.Cash(), 1e-9)
	assert.Empty(t, a.Lots())
	assert.Empty(t, a.Transactions())
}

func TestSellConsumesLotsFIFO(t *testing.T) {
	a := newTestAccount(t, 10000)

	mustTrade(t, a, TradeRequest{Kind: Buy, Shares: 10, Price: 10})
	mustTrade(t, a, TradeRequest{Kind: Buy, Shares: 10, Price: 20})

	tx := mustTrade(t, a, TradeRequest{Kind: Sell, Shares: 15, Price: 30})

	// 10 shares from the $10 lot, 5 from the $20 lot.
	assert.InDelta(t, 10*(30-10)+5*(30-20), tx.RealizedPL, 1e-9)

	require.Len(t, a.Lots(), 1)
	rest := a.Lots()[0]
	assert.Equal(t, 5, rest.SharesOpen)
	assert.InDelta(t, 20, rest.BasisPerShare(), 1e-9)
}

func TestRoundTripCostsTwoCommissions(t *testing.T) {
	const fee = 2.5
	a := newTestAccount(t, 10000, WithCommission(CommissionFlat, fee))

	mustTrade(t, a, TradeRequest{Kind: Buy, Shares: 20, Price: 100})
	tx := mustTrade(t, a, TradeRequest{Kind: Sell, Shares: 20, Price: 100})

	assert.InDelta(t, 10000-2*fee, a.Cash(), 1e-9)
	assert.InDelta(t, 0, tx.RealizedPL, 1e-9)
	assert.Empty(t, a.Lots())
}

func TestSellInsufficientSharesIsAtomic(t *testing.T) {
	a := newTestAccount(t, 10000)
	mustTrade(t, a, TradeRequest{Kind: Buy, Shares: 5, Price: 10})

	_, err := a.Trade(TradeRequest{Kind: Sell, Shares: 6, Price: 10})

	assert.ErrorIs(t, err, ErrInsufficientShares)
	require.Len(t, a.Lots(), 1)
	assert.Equal(t, 5, a.Lots()[0].SharesOpen, "no partial fill on failure")
	assert.Len(t, a.Transactions(), 1, "only the buy is in the ledger")
}

func TestShortSellCreditsProceeds(t *testing.T) {
	a := newTestAccount(t, 0, WithCommission(CommissionFlat, 1))

	tx := mustTrade(t, a, TradeRequest{Kind: ShortSell, Shares: 10, Price: 50})

	// Shorting requires no existing funds and credits the sale.
	assert.InDelta(t, 500-1, a.Cash(), 1e-9)
	require.Len(t, a.Lots(), 1)
	assert.Equal(t, Short, a.Lots()[0].Side)
	assert.InDelta(t, 500, tx.Gross, 1e-9)
}

func TestShortCoverRealizesProfit(t *testing.T) {
	a := newTestAccount(t, 0, WithCommission(CommissionFlat, 1))

	mustTrade(t, a, TradeRequest{Kind: ShortSell, Shares: 10, Price: 50})
	tx := mustTrade(t, a, TradeRequest{Kind: ShortCover, Shares: 10, Price: 40})

	// Opened at 50, covered at 40: +100 before fees, one fee each way.
	assert.InDelta(t, 100, tx.RealizedPL, 1e-9)
	assert.InDelta(t, 499-(400+1), a.Cash(), 1e-9)
	assert.Empty(t, a.Lots())
	assert.Equal(t, 0, a.Position())
}

func TestShortCoverWithoutShortPosition(t *testing.T) {
	a := newTestAccount(t, 10000)

	_, err := a.Trade(TradeRequest{Kind: ShortCover, Shares: 10, Price: 40})

	assert.ErrorIs(t, err, ErrShortPosition)
}

func TestShortCoverInsufficientFundsIsAtomic(t *testing.T) {
	a := newTestAccount(t, 0)
	mustTrade(t, a, TradeRequest{Kind: ShortSell, Shares: 10, Price: 50}) // cash now 500

	_, err := a.Trade(TradeRequest{Kind: ShortCover, Shares: 10, Price: 60}) // needs 600

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	require.Len(t, a.Lots(), 1)
	assert.Equal(t, 10, a.Lots()[0].SharesOpen)
	assert.InDelta(t, 500, a.Cash(), 1e-9)
}

func TestMarketOrdersUseNextBarOpen(t *testing.T) {
	a := NewAccount("TEST", 10000, gappedSeries(t)) // opens 96..100, closes 100

	tx := mustTrade(t, a, TradeRequest{Kind: MarketBuy, Shares: 10})
	assert.InDelta(t, 97, tx.Price, 1e-9, "market buy fills at the next bar's open")
	assert.True(t, tx.Date.Equal(day(2)))
	assert.Equal(t, "Market order", tx.Note)

	tx = mustTrade(t, a, TradeRequest{Kind: MarketSell, Shares: 10})
	assert.InDelta(t, 97, tx.Price, 1e-9)
}

func TestMarketOrderAtSeriesEnd(t *testing.T) {
	a := NewAccount("TEST", 10000, gappedSeries(t))
	a.SetDate(day(5))

	// No later bar exists; the fill degrades to the last bar's open.
	tx := mustTrade(t, a, TradeRequest{Kind: MarketBuy, Shares: 10})
	assert.InDelta(t, 100, tx.Price, 1e-9)
	assert.True(t, tx.Date.Equal(day(5)))
}

func TestTradeRejectsBadParameters(t *testing.T) {
	a := newTestAccount(t, 10000)

	_, err := a.Trade(TradeRequest{Kind: Buy, Shares: 0, Price: 10})
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = a.Trade(TradeRequest{Kind: Buy, Shares: 10, Price: -5})
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = a.Trade(TradeRequest{Kind: Cancel, Shares: 1, Price: 1})
	assert.ErrorIs(t, err, ErrInvalidOrder)

	_, err = a.Trade(TradeRequest{Kind: TradeKind(99), Shares: 1, Price: 1})
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestTradeDefaultsToCurrentClose(t *testing.T) {
	a := newTestAccount(t, 10000) // closes at 100

	tx := mustTrade(t, a, TradeRequest{Kind: Buy, Shares: 10})
	assert.InDelta(t, 100, tx.Price, 1e-9)
}

func TestTradeLimitKindEnqueues(t *testing.T) {
	a := newTestAccount(t, 10000)

	tx, err := a.Trade(TradeRequest{Kind: LimitBuy, Shares: 10, Price: 90})
	require.NoError(t, err)
	assert.Nil(t, tx, "limit orders enqueue instead of executing")

	require.Len(t, a.PendingOrders(), 1)
	o := a.PendingOrders()[0]
	assert.Equal(t, LimitBuy, o.Kind)
	assert.Equal(t, Day, o.Duration)
	assert.True(t, o.Active)
	assert.Empty(t, a.Transactions())

	_, err = a.Trade(TradeRequest{Kind: LimitSell, Shares: 10})
	assert.ErrorIs(t, err, ErrInvalidOrder, "limit orders need an explicit price")
}

func TestTradeCost(t *testing.T) {
	a := newTestAccount(t, 10000, WithCommission(CommissionFlat, 2))

	cost, err := a.TradeCost(Buy, 10, 50)
	require.NoError(t, err)
	assert.InDelta(t, 502, cost, 1e-9)

	proceeds, err := a.TradeCost(Sell, 10, 50)
	require.NoError(t, err)
	assert.InDelta(t, 498, proceeds, 1e-9)

	// Price 0 falls back to the current close (100).
	cost, err = a.TradeCost(MarketBuy, 1, 0)
	require.NoError(t, err)
	assert.InDelta(t, 102, cost, 1e-9)

	_, err = a.TradeCost(Cancel, 10, 50)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}
