package strategies

import (
	"fmt"
	"sort"
	"strings"

	"backsim/market"
	"backsim/sim"
)

// Strategy is the contract the simulation loop drives. Initialize is called
// once with the account before the first step; the strategy keeps that
// account and trades through it. Step is called once per bar.
//
// Optional hooks are separate interfaces checked by the runner:
// SetupStrategy for one-time setup after Initialize, and sim.FillListener to
// hear about resting-order fills. Embed BaseStrategy to get the account
// bookkeeping and no-op hooks for free.
type Strategy interface {
	Initialize(acct *sim.Account)
	Step(bar market.Bar) error
}

// SetupStrategy is implemented by strategies that want a one-time hook after
// the account is attached (typically to precompute indicators).
type SetupStrategy interface {
	Setup()
}

var registry = make(map[string]func(Config) Strategy)

// Config carries the tunable parameters shared by the built-in strategies.
type Config struct {
	Shares int
	Period int
}

// Register makes a strategy constructor available to ByName.
func Register(name string, build func(Config) Strategy) {
	registry[strings.ToLower(name)] = build
}

// ByName builds a registered strategy.
func ByName(name string, cfg Config) (Strategy, error) {
	build, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (registered: %s)", name, strings.Join(Names(), ", "))
	}
	return build(cfg), nil
}

// Names lists the registered strategy names.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
