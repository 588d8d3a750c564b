package strategies

import (
	"backsim/market"
	"backsim/sim"
)

func init() {
	Register("noop", func(Config) Strategy { return Noop{} })
}

// Noop never trades. Useful for wiring tests and as a baseline.
type Noop struct{}

func (Noop) Initialize(*sim.Account) {}

func (Noop) Step(market.Bar) error { return nil }
