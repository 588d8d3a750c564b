package sim

import (
	"time"

	"go.uber.org/zap"

	"backsim/market"
	"backsim/risk"
)

// Account is the full state of one simulated run: cash, open lots (oldest
// first), resting orders and the transaction ledger. It is exclusively owned
// by the loop driving it; independent backtests must each create their own
// Account.
type Account struct {
	ticker string
	cash   float64
	scheme CommissionScheme
	rate   float64
	series *market.Series
	date   time.Time

	lots    []*Lot
	pending []*Order
	ledger  []Transaction

	listener FillListener
	logger   *zap.Logger
}

// Option configures an Account at creation time.
type Option func(*Account)

// WithCommission fixes the commission scheme and rate for the run.
func WithCommission(scheme CommissionScheme, rate float64) Option {
	return func(a *Account) {
		a.scheme = scheme
		a.rate = rate
	}
}

// WithLogger attaches a logger; the default is a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Account) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithFillListener registers a hook notified when a resting order fills.
func WithFillListener(fl FillListener) Option {
	return func(a *Account) { a.listener = fl }
}

// NewAccount creates an account holding cash, trading a single ticker
// against the given historical series. The simulated date starts at the first
// bar of the series.
func NewAccount(ticker string, cash float64, series *market.Series, opts ...Option) *Account {
	a := &Account{
		ticker: ticker,
		cash:   cash,
		scheme: CommissionFlat,
		rate:   0,
		series: series,
		logger: zap.NewNop(),
	}
	if series != nil {
		a.date = series.First().Date
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Account) Ticker() string        { return a.ticker }
func (a *Account) Cash() float64         { return a.cash }
func (a *Account) Date() time.Time       { return a.date }
func (a *Account) Series() *market.Series { return a.series }

// SetDate moves the simulated clock. The loop calls this once per step before
// sweeping resting orders.
func (a *Account) SetDate(t time.Time) { a.date = t }

// SetFillListener replaces the order-fill hook.
func (a *Account) SetFillListener(fl FillListener) { a.listener = fl }

// Lots returns a copy of the open lots, oldest first.
func (a *Account) Lots() []Lot {
	out := make([]Lot, len(a.lots))
	for i, l := range a.lots {
		out[i] = *l
	}
	return out
}

// PendingOrders returns a copy of the resting orders.
func (a *Account) PendingOrders() []Order {
	out := make([]Order, len(a.pending))
	for i, o := range a.pending {
		out[i] = *o
	}
	return out
}

func (a *Account) commission(price float64, shares int) (float64, error) {
	return Commission(a.scheme, a.rate, price, shares)
}

// currentBar resolves the simulated date to the nearest available bar.
func (a *Account) currentBar() market.Bar {
	return a.series.Nearest(a.date)
}

// nextBar is the bar after the current one. Market orders fill at its open.
// At the end of the series it degrades to the current bar, the only price
// still on record.
func (a *Account) nextBar() market.Bar {
	cur := a.currentBar()
	idx := a.series.IndexOf(cur.Date)
	if idx >= 0 && idx+1 < a.series.Len() {
		return a.series.BarAt(idx + 1)
	}
	return cur
}

// Position returns the net position: long shares minus short shares.
func (a *Account) Position() int {
	return a.openShares(Long) - a.openShares(Short)
}

// TotalValueAt marks every open lot at the given price and adds cash. Short
// lots are a liability and subtract.
func (a *Account) TotalValueAt(mark float64) float64 {
	total := a.cash
	for _, l := range a.lots {
		switch l.Side {
		case Long:
			total += mark * float64(l.SharesOpen)
		case Short:
			total -= mark * float64(l.SharesOpen)
		}
	}
	return total
}

// TotalValue marks the portfolio at the close of the current bar.
func (a *Account) TotalValue() float64 {
	return a.TotalValueAt(a.currentBar().Close)
}

// PortfolioSnapshot is a point-in-time view of the account for strategies.
type PortfolioSnapshot struct {
	Date       time.Time
	Cash       float64
	Position   int
	TotalValue float64
}

// Snapshot returns the current cash, net position and marked portfolio value.
func (a *Account) Snapshot() PortfolioSnapshot {
	return PortfolioSnapshot{
		Date:       a.date,
		Cash:       a.cash,
		Position:   a.Position(),
		TotalValue: a.TotalValue(),
	}
}

// PositionSize converts a cash risk fraction and a stop distance into a share
// count.
func (a *Account) PositionSize(riskPerTrade, stopLoss float64) int {
	return risk.PositionSize(a.cash, riskPerTrade, stopLoss)
}
