package sim

import "time"

// Duration controls how long a resting order survives.
type Duration string

const (
	// Day orders expire at the first step after their submission date.
	Day Duration = "DAY"
	// GTC orders persist until filled or explicitly canceled.
	GTC Duration = "GTC"
)

// Order is a resting intent to trade once the market reaches TargetPrice.
// An order is Active until it fills, expires or is canceled; once inactive it
// is never resurrected.
type Order struct {
	ID          string
	Kind        TradeKind
	Ticker      string
	Shares      int
	TargetPrice float64
	Duration    Duration
	Submitted   time.Time
	Active      bool
}

// shouldFill is the fill predicate: buy-side orders fill when the price
// trades at or below target, sell-side when it trades at or above.
func (o *Order) shouldFill(price float64) bool {
	switch o.Kind {
	case LimitBuy, ShortCover:
		return price <= o.TargetPrice
	case LimitSell, ShortSell:
		return price >= o.TargetPrice
	}
	return false
}
