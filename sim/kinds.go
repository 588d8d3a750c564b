package sim

// TradeKind identifies how a trade executes. It is a closed set; the
// executor dispatches over it and rejects anything it does not know.
type TradeKind int

const (
	Buy TradeKind = iota + 1
	Sell
	MarketBuy
	MarketSell
	LimitBuy
	LimitSell
	ShortSell
	ShortCover
	Cancel
)

func (k TradeKind) String() string {
	switch k {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	case MarketBuy:
		return "MARKET_BUY"
	case MarketSell:
		return "MARKET_SELL"
	case LimitBuy:
		return "LIMIT_BUY"
	case LimitSell:
		return "LIMIT_SELL"
	case ShortSell:
		return "SHORT_SELL"
	case ShortCover:
		return "SHORT_COVER"
	case Cancel:
		return "CANCEL"
	}
	return "UNKNOWN"
}

// Restable reports whether the kind may rest as a pending order and be
// filled later against a target price.
func (k TradeKind) Restable() bool {
	switch k {
	case LimitBuy, LimitSell, ShortSell, ShortCover:
		return true
	}
	return false
}
