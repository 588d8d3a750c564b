package strategies

import "backsim/sim"

// BaseStrategy holds the account and provides no-op implementations of the
// optional hooks. Embed it and implement Step to get a complete strategy.
type BaseStrategy struct {
	acct *sim.Account
}

func (b *BaseStrategy) Initialize(acct *sim.Account) { b.acct = acct }

// Account returns the account the strategy trades through.
func (b *BaseStrategy) Account() *sim.Account { return b.acct }

func (b *BaseStrategy) Setup() {}

func (b *BaseStrategy) OnOrderFilled(sim.Order) {}
