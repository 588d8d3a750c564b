package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lastTransaction(t *testing.T, a *Account) Transaction {
	t.Helper()
	txs := a.Transactions()
	require.NotEmpty(t, txs)
	return txs[len(txs)-1]
}

func TestLimitBuyFillsAtTargetPrice(t *testing.T) {
	a := newTestAccount(t, 10000)
	_, err := a.SubmitGTCOrder(LimitBuy, 10, 90)
	require.NoError(t, err)

	// The bar trades below the target; the execution price is still the
	// order's own limit, not the bar's price.
	a.SweepOrders(85)

	assert.Empty(t, a.PendingOrders())
	tx := lastTransaction(t, a)
	assert.Equal(t, LimitBuy, tx.Kind)
	assert.InDelta(t, 90, tx.Price, 1e-9)
	assert.InDelta(t, 10000-900, a.Cash(), 1e-9)
}

func TestLimitBuyDoesNotFillAboveTarget(t *testing.T) {
	a := newTestAccount(t, 10000)
	_, err := a.SubmitGTCOrder(LimitBuy, 10, 90)
	require.NoError(t, err)

	a.SweepOrders(95)

	assert.Len(t, a.PendingOrders(), 1)
	assert.Empty(t, a.Transactions())
}

func TestLimitSellFillPredicate(t *testing.T) {
	a := newTestAccount(t, 10000)
	mustTrade(t, a, TradeRequest{Kind: Buy, Shares: 10, Price: 100})

	_, err := a.SubmitGTCOrder(LimitSell, 10, 110)
	require.NoError(t, err)

	a.SweepOrders(105) // below target: no fill
	assert.Len(t, a.PendingOrders(), 1)

	a.SweepOrders(112) // at/above target: fills at 110
	assert.Empty(t, a.PendingOrders())
	tx := lastTransaction(t, a)
	assert.Equal(t, LimitSell, tx.Kind)
	assert.InDelta(t, 110, tx.Price, 1e-9)
	assert.InDelta(t, 10*(110-100), tx.RealizedPL, 1e-9)
}

func TestRestingShortOrders(t *testing.T) {
	a := newTestAccount(t, 10000)

	// Short-to-open rests until the price rises to the target.
	_, err := a.SubmitGTCOrder(ShortSell, 10, 120)
	require.NoError(t, err)
	a.SweepOrders(110)
	assert.Len(t, a.PendingOrders(), 1)
	a.SweepOrders(125)
	assert.Empty(t, a.PendingOrders())
	assert.Equal(t, -10, a.Position())

	// Cover rests until the price drops to the target.
	_, err = a.SubmitGTCOrder(ShortCover, 10, 100)
	require.NoError(t, err)
	a.SweepOrders(115)
	assert.Len(t, a.PendingOrders(), 1)
	a.SweepOrders(95)
	assert.Empty(t, a.PendingOrders())
	assert.Equal(t, 0, a.Position())

	tx := lastTransaction(t, a)
	assert.Equal(t, ShortCover, tx.Kind)
	assert.InDelta(t, 10*(120-100), tx.RealizedPL, 1e-9)
}

func TestDayOrderExpires(t *testing.T) {
	a := newTestAccount(t, 10000)
	_, err := a.Trade(TradeRequest{Kind: LimitBuy, Shares: 10, Price: 90, Duration: Day})
	require.NoError(t, err)

	// Next step: the clock has moved past the submission date. The order
	// expires even though the price now qualifies.
	a.SetDate(day(2))
	a.SweepOrders(85)

	assert.Empty(t, a.PendingOrders())
	tx := lastTransaction(t, a)
	assert.Equal(t, Cancel, tx.Kind)
	assert.Equal(t, "Day order expired", tx.Note)
	assert.InDelta(t, 10000, a.Cash(), 1e-9, "no trade on expiry")
}

func TestGTCOrderSurvivesManySteps(t *testing.T) {
	a := newTestAccount(t, 10000)
	_, err := a.SubmitGTCOrder(LimitBuy, 10, 50)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		a.SetDate(day(2 + i))
		a.SweepOrders(100) // never qualifies
	}

	require.Len(t, a.PendingOrders(), 1)
	assert.True(t, a.PendingOrders()[0].Active)
}

func TestCancelOrder(t *testing.T) {
	a := newTestAccount(t, 10000)
	_, err := a.SubmitGTCOrder(LimitBuy, 10, 90)
	require.NoError(t, err)

	assert.False(t, a.CancelOrder(5), "out of range is a status, not an error")
	assert.False(t, a.CancelOrder(-1))
	assert.True(t, a.CancelOrder(0))

	tx := lastTransaction(t, a)
	assert.Equal(t, Cancel, tx.Kind)
	assert.Zero(t, tx.Gross)

	// The canceled order is pruned on the next sweep and never fills.
	a.SweepOrders(80)
	assert.Empty(t, a.PendingOrders())
	assert.Len(t, a.Transactions(), 1)
}

func TestAutoFillFailureDeactivatesOrder(t *testing.T) {
	a := newTestAccount(t, 100) // not enough cash for the fill below
	_, err := a.SubmitGTCOrder(LimitBuy, 10, 90)
	require.NoError(t, err)

	a.SweepOrders(85)

	// The offending order is gone, the failure is on the ledger, and the
	// sweep did not panic the run.
	assert.Empty(t, a.PendingOrders())
	tx := lastTransaction(t, a)
	assert.False(t, tx.Executed)
	assert.Contains(t, tx.Note, "Order execution failed")
	assert.Contains(t, tx.Note, "insufficient funds")
	assert.InDelta(t, 100, a.Cash(), 1e-9)
}

func TestSubmitRejectsNonRestableKinds(t *testing.T) {
	a := newTestAccount(t, 10000)

	for _, kind := range []TradeKind{Buy, Sell, MarketBuy, MarketSell, Cancel} {
		_, err := a.SubmitGTCOrder(kind, 10, 90)
		assert.ErrorIs(t, err, ErrInvalidOrder, "kind %s", kind)
	}

	_, err := a.SubmitGTCOrder(LimitBuy, 0, 90)
	assert.ErrorIs(t, err, ErrInvalidOrder)
	_, err = a.SubmitGTCOrder(LimitBuy, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

type recordingListener struct {
	filled []Order
}

func (r *recordingListener) OnOrderFilled(o Order) {
	r.filled = append(r.filled, o)
}

func TestFillListenerNotified(t *testing.T) {
	listener := &recordingListener{}
	a := newTestAccount(t, 10000, WithFillListener(listener))

	_, err := a.SubmitGTCOrder(LimitBuy, 10, 90)
	require.NoError(t, err)
	a.SweepOrders(85)

	require.Len(t, listener.filled, 1)
	assert.Equal(t, LimitBuy, listener.filled[0].Kind)
	assert.False(t, listener.filled[0].Active)
}

type resubmitListener struct {
	acct *Account
	done bool
}

func (r *resubmitListener) OnOrderFilled(Order) {
	if r.done {
		return
	}
	r.done = true
	_, _ = r.acct.SubmitGTCOrder(LimitBuy, 5, 80)
}

func TestOrdersSubmittedDuringSweepWaitForNextStep(t *testing.T) {
	listener := &resubmitListener{}
	a := newTestAccount(t, 10000, WithFillListener(listener))
	listener.acct = a

	_, err := a.SubmitGTCOrder(LimitBuy, 10, 90)
	require.NoError(t, err)

	// The fill hook submits a new order whose predicate the same price
	// would satisfy. It must not fill during this pass.
	a.SweepOrders(70)

	require.Len(t, a.PendingOrders(), 1)
	assert.Equal(t, 5, a.PendingOrders()[0].Shares)
	assert.True(t, a.PendingOrders()[0].Active)

	a.SweepOrders(70)
	assert.Empty(t, a.PendingOrders())
}
