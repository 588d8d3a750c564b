package sim

import (
	"fmt"
	"time"
)

// TradeRequest is a concrete, already-decided trade. Price 0 means "use the
// close of the current bar"; limit kinds require an explicit price, which
// becomes the order's target. Duration only applies to limit kinds and
// defaults to Day.
type TradeRequest struct {
	Kind     TradeKind
	Shares   int
	Price    float64
	Duration Duration
}

// Trade validates and executes a trade, or enqueues it when the kind is a
// limit order. Exactly one ledger record is appended on success; on failure
// nothing changes. Errors from Trade propagate to the caller.
//
// The returned transaction is nil when a limit order was enqueued instead of
// executed.
func (a *Account) Trade(req TradeRequest) (*Transaction, error) {
	bar := a.currentBar()
	price := req.Price
	if price == 0 {
		price = bar.Close
	}

	switch req.Kind {
	case Buy:
		return a.executeBuy(price, req.Shares, bar.Date, Buy, "")
	case Sell:
		return a.executeSell(price, req.Shares, bar.Date, Sell, "")
	case MarketBuy:
		nb := a.nextBar()
		return a.executeBuy(nb.Open, req.Shares, nb.Date, MarketBuy, "Market order")
	case MarketSell:
		nb := a.nextBar()
		return a.executeSell(nb.Open, req.Shares, nb.Date, MarketSell, "Market order")
	case ShortSell:
		return a.executeShortSell(price, req.Shares, bar.Date)
	case ShortCover:
		return a.executeShortCover(price, req.Shares, bar.Date)
	case LimitBuy, LimitSell:
		if req.Price <= 0 {
			return nil, fmt.Errorf("%w: limit orders require a target price", ErrInvalidOrder)
		}
		dur := req.Duration
		if dur == "" {
			dur = Day
		}
		if _, err := a.submitOrder(req.Kind, req.Shares, req.Price, dur); err != nil {
			return nil, err
		}
		return nil, nil
	case Cancel:
		return nil, fmt.Errorf("%w: cancel is not a trade, use CancelOrder", ErrInvalidOrder)
	}
	return nil, fmt.Errorf("%w: unsupported trade kind %d", ErrInvalidOrder, req.Kind)
}

func validate(price float64, shares int) error {
	if shares <= 0 {
		return fmt.Errorf("%w: shares must be positive, got %d", ErrInvalidOrder, shares)
	}
	if price <= 0 {
		return fmt.Errorf("%w: price must be positive, got %g", ErrInvalidOrder, price)
	}
	return nil
}

// executeBuy opens a new long lot. Market buys land here with the bar's
// opening price already resolved.
func (a *Account) executeBuy(price float64, shares int, date time.Time, kind TradeKind, note string) (*Transaction, error) {
	if err := validate(price, shares); err != nil {
		return nil, err
	}
	commission, err := a.commission(price, shares)
	if err != nil {
		return nil, err
	}

	gross := float64(shares) * price
	totalCost := gross + commission
	if a.cash < totalCost {
		return nil, fmt.Errorf("%w: need $%.2f, have $%.2f", ErrInsufficientFunds, totalCost, a.cash)
	}

	a.cash -= totalCost
	a.lots = append(a.lots, &Lot{
		Side:           Long,
		Ticker:         a.ticker,
		SharesOpen:     shares,
		CostBasis:      gross,
		OpenCommission: commission,
	})

	tx := a.appendTransaction(Transaction{
		Kind:       kind,
		Shares:     shares,
		Price:      price,
		Commission: commission,
		Gross:      gross,
		Date:       date,
		RealizedPL: 0,
		Executed:   true,
		Note:       note,
	})
	return &tx, nil
}

// executeSell consumes long lots FIFO. All-or-nothing: the availability check
// happens before any lot is touched, so a failed sell leaves the account
// unchanged.
func (a *Account) executeSell(price float64, shares int, date time.Time, kind TradeKind, note string) (*Transaction, error) {
	if err := validate(price, shares); err != nil {
		return nil, err
	}
	commission, err := a.commission(price, shares)
	if err != nil {
		return nil, err
	}

	if open := a.openShares(Long); open < shares {
		return nil, fmt.Errorf("%w: want %d, have %d long", ErrInsufficientShares, shares, open)
	}

	pnl, gross := a.consumeLots(Long, shares, price)
	a.cash += gross - commission

	tx := a.appendTransaction(Transaction{
		Kind:       kind,
		Shares:     shares,
		Price:      price,
		Commission: commission,
		Gross:      gross,
		Date:       date,
		RealizedPL: pnl,
		Executed:   true,
		Note:       note,
	})
	return &tx, nil
}

// executeShortSell opens a short lot and credits the sale proceeds. Shorting
// never requires existing funds.
func (a *Account) executeShortSell(price float64, shares int, date time.Time) (*Transaction, error) {
	if err := validate(price, shares); err != nil {
		return nil, err
	}
	commission, err := a.commission(price, shares)
	if err != nil {
		return nil, err
	}

	gross := float64(shares) * price
	a.cash += gross - commission
	a.lots = append(a.lots, &Lot{
		Side:           Short,
		Ticker:         a.ticker,
		SharesOpen:     shares,
		CostBasis:      gross,
		OpenCommission: commission,
	})

	tx := a.appendTransaction(Transaction{
		Kind:       ShortSell,
		Shares:     shares,
		Price:      price,
		Commission: commission,
		Gross:      gross,
		Date:       date,
		RealizedPL: 0,
		Executed:   true,
	})
	return &tx, nil
}

// executeShortCover buys back borrowed shares, consuming short lots FIFO.
// Both the share and funds checks run before anything mutates.
func (a *Account) executeShortCover(price float64, shares int, date time.Time) (*Transaction, error) {
	if err := validate(price, shares); err != nil {
		return nil, err
	}
	commission, err := a.commission(price, shares)
	if err != nil {
		return nil, err
	}

	if open := a.openShares(Short); open < shares {
		return nil, fmt.Errorf("%w: want %d, have %d short", ErrShortPosition, shares, open)
	}

	coverCost := float64(shares) * price
	if a.cash < coverCost+commission {
		return nil, fmt.Errorf("%w: need $%.2f to cover, have $%.2f",
			ErrInsufficientFunds, coverCost+commission, a.cash)
	}

	pnl, gross := a.consumeLots(Short, shares, price)
	a.cash -= gross + commission

	tx := a.appendTransaction(Transaction{
		Kind:       ShortCover,
		Shares:     shares,
		Price:      price,
		Commission: commission,
		Gross:      gross,
		Date:       date,
		RealizedPL: pnl,
		Executed:   true,
	})
	return &tx, nil
}

// TradeCost previews the cash impact of a trade without executing it: cost
// including commission for buy-side kinds, net proceeds for sell-side kinds.
// Price 0 uses the close of the current bar.
func (a *Account) TradeCost(kind TradeKind, shares int, price float64) (float64, error) {
	if price == 0 {
		price = a.currentBar().Close
	}
	if err := validate(price, shares); err != nil {
		return 0, err
	}
	commission, err := a.commission(price, shares)
	if err != nil {
		return 0, err
	}

	gross := float64(shares) * price
	switch kind {
	case Buy, MarketBuy, LimitBuy:
		return gross + commission, nil
	case Sell, MarketSell, LimitSell, ShortSell, ShortCover:
		return gross - commission, nil
	}
	return 0, fmt.Errorf("%w: unsupported trade kind %d", ErrInvalidOrder, kind)
}
