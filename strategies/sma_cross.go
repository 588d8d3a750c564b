package strategies

import (
	"errors"

	"backsim/indicators"
	"backsim/market"
	"backsim/sim"
)

func init() {
	Register("sma-cross", func(cfg Config) Strategy { return NewSMACross(cfg.Shares, cfg.Period) })
}

// SMACross holds a long position while the close is above its simple moving
// average and is flat otherwise. Entries and exits are market orders at the
// next resolved bar's open.
type SMACross struct {
	BaseStrategy

	Shares int
	Period int

	sma []float64
}

func NewSMACross(shares, period int) *SMACross {
	if shares <= 0 {
		shares = 100
	}
	if period <= 0 {
		period = 20
	}
	return &SMACross{Shares: shares, Period: period}
}

// Setup precomputes the SMA over the whole series once.
func (s *SMACross) Setup() {
	s.sma = indicators.SMA(s.acct.Series().Closes(), s.Period)
}

func (s *SMACross) Step(bar market.Bar) error {
	if s.acct == nil {
		return errors.New("sma-cross: not initialized")
	}

	idx := s.acct.Series().IndexOf(bar.Date)
	if idx < s.Period-1 || idx >= len(s.sma) {
		return nil
	}
	sma := s.sma[idx]
	position := s.acct.Position()

	switch {
	case position == 0 && bar.Close > sma:
		_, err := s.acct.Trade(sim.TradeRequest{Kind: sim.MarketBuy, Shares: s.Shares})
		return err
	case position > 0 && bar.Close < sma:
		shares := position
		if shares > s.Shares {
			shares = s.Shares
		}
		_, err := s.acct.Trade(sim.TradeRequest{Kind: sim.MarketSell, Shares: shares})
		return err
	}
	return nil
}
