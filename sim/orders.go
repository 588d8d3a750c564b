package sim

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"backsim/internal/id"
)

// FillListener is notified after a resting order fills. Strategies that care
// about fills implement it; everything else ignores it.
type FillListener interface {
	OnOrderFilled(Order)
}

func (a *Account) submitOrder(kind TradeKind, shares int, target float64, dur Duration) (*Order, error) {
	if !kind.Restable() {
		return nil, fmt.Errorf("%w: kind %s cannot rest as a pending order", ErrInvalidOrder, kind)
	}
	if shares <= 0 || target <= 0 {
		return nil, fmt.Errorf("%w: shares and target price must be positive", ErrInvalidOrder)
	}

	o := &Order{
		ID:          id.New(),
		Kind:        kind,
		Ticker:      a.ticker,
		Shares:      shares,
		TargetPrice: target,
		Duration:    dur,
		Submitted:   a.date,
		Active:      true,
	}
	a.pending = append(a.pending, o)
	return o, nil
}

// SubmitGTCOrder enqueues a good-till-canceled order that rests until its
// target price trades or it is explicitly canceled.
func (a *Account) SubmitGTCOrder(kind TradeKind, shares int, target float64) (*Order, error) {
	return a.submitOrder(kind, shares, target, GTC)
}

// CancelOrder deactivates the pending order at the given index and records
// the cancellation in the ledger. An out-of-range index returns false rather
// than an error: cancellation racing a natural fill is expected caller
// behavior, not a fault.
func (a *Account) CancelOrder(index int) bool {
	if index < 0 || index >= len(a.pending) {
		return false
	}
	o := a.pending[index]
	o.Active = false
	a.appendTransaction(Transaction{
		Kind:     Cancel,
		Shares:   o.Shares,
		Price:    o.TargetPrice,
		Date:     a.date,
		Executed: true,
		Note:     "Order canceled",
	})
	return true
}

// SweepOrders runs one pending-order pass against the given bar price. For
// each order, in submission sequence: prune orders already inactive, expire
// stale Day orders, then fill any order whose predicate the price satisfies.
// Fills execute at the order's own target price, not the bar's.
//
// The pass walks a snapshot and rebuilds the pending slice afterwards, so
// orders submitted by fill hooks during the sweep are queued for the next
// step rather than evaluated mid-pass.
func (a *Account) SweepOrders(price float64) {
	snapshot := a.pending
	a.pending = nil

	execDate := a.currentBar().Date
	var kept []*Order
	for _, o := range snapshot {
		if !o.Active {
			continue
		}

		if o.Duration == Day && o.Submitted.Before(a.date) {
			a.expireOrder(o)
			continue
		}

		if !o.shouldFill(price) {
			kept = append(kept, o)
			continue
		}

		if err := a.fillOrder(o, execDate); err != nil {
			// A bad resting order must not halt the run: deactivate it,
			// leave a ledger trace, and keep going.
			o.Active = false
			a.appendTransaction(Transaction{
				Kind:     o.Kind,
				Shares:   o.Shares,
				Price:    o.TargetPrice,
				Date:     a.date,
				Executed: false,
				Note:     fmt.Sprintf("Order execution failed: %v", err),
			})
			a.logger.Warn("pending order failed to fill",
				zap.String("order_id", o.ID),
				zap.Stringer("kind", o.Kind),
				zap.Int("shares", o.Shares),
				zap.Float64("target", o.TargetPrice),
				zap.Error(err))
		}
	}

	// Orders submitted by hooks during the sweep queue behind the survivors.
	a.pending = append(kept, a.pending...)
}

func (a *Account) expireOrder(o *Order) {
	o.Active = false
	a.appendTransaction(Transaction{
		Kind:     Cancel,
		Shares:   o.Shares,
		Price:    o.TargetPrice,
		Date:     a.date,
		Executed: true,
		Note:     "Day order expired",
	})
}

func (a *Account) fillOrder(o *Order, execDate time.Time) error {
	var err error
	switch o.Kind {
	case LimitBuy:
		_, err = a.executeBuy(o.TargetPrice, o.Shares, execDate, LimitBuy, "")
	case LimitSell:
		_, err = a.executeSell(o.TargetPrice, o.Shares, execDate, LimitSell, "")
	case ShortSell:
		_, err = a.executeShortSell(o.TargetPrice, o.Shares, execDate)
	case ShortCover:
		_, err = a.executeShortCover(o.TargetPrice, o.Shares, execDate)
	default:
		err = fmt.Errorf("%w: kind %s cannot fill from the book", ErrInvalidOrder, o.Kind)
	}
	if err != nil {
		return err
	}

	o.Active = false
	if a.listener != nil {
		a.listener.OnOrderFilled(*o)
	}
	return nil
}
