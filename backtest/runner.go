// Package backtest drives a strategy over a historical series one bar at a
// time and collects the result.
package backtest

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"backsim/journal"
	"backsim/market"
	"backsim/sim"
	"backsim/strategies"
)

// Runner steps a single strategy over a single account. Build one with New,
// then call Run, or Step repeatedly for finer control.
type Runner struct {
	account  *sim.Account
	strategy strategies.Strategy

	start    time.Time
	end      time.Time
	interval market.Interval

	journal journal.Journal
	logger  *zap.Logger

	date   time.Time
	equity []journal.EquitySnapshot
}

// RunnerOption configures a Runner at creation time.
type RunnerOption func(*Runner)

// WithJournal records every transaction and per-step equity snapshot to the
// given journal during the run.
func WithJournal(j journal.Journal) RunnerOption {
	return func(r *Runner) { r.journal = j }
}

// WithRunLogger attaches a logger; the default is a nop logger.
func WithRunLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// New wires a strategy to an account and prepares a run over [start, end).
// The account clock is moved to start, the strategy is initialized with the
// account, and strategies implementing the optional setup or fill-listener
// hooks get them attached.
func New(acct *sim.Account, strat strategies.Strategy, start, end time.Time, interval market.Interval, opts ...RunnerOption) (*Runner, error) {
	if acct == nil || strat == nil {
		return nil, fmt.Errorf("backtest: account and strategy are required")
	}
	if !end.After(start) {
		return nil, fmt.Errorf("backtest: end %s is not after start %s",
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	if interval.N <= 0 {
		return nil, fmt.Errorf("backtest: interval must be positive")
	}

	r := &Runner{
		account:  acct,
		strategy: strat,
		start:    start,
		end:      end,
		interval: interval,
		date:     start,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	acct.SetDate(start)
	strat.Initialize(acct)
	if s, ok := strat.(strategies.SetupStrategy); ok {
		s.Setup()
	}
	if fl, ok := strat.(sim.FillListener); ok {
		acct.SetFillListener(fl)
	}
	return r, nil
}

// Account returns the account being driven.
func (r *Runner) Account() *sim.Account { return r.account }

// Date returns the current simulated date.
func (r *Runner) Date() time.Time { return r.date }

// Step advances the clock by one interval, sweeps resting orders against the
// bar resolved for the new date, and hands that bar to the strategy.
func (r *Runner) Step() (market.Bar, error) {
	r.date = r.interval.Next(r.date)
	r.account.SetDate(r.date)

	bar := r.account.Series().Nearest(r.date)
	r.account.SweepOrders(bar.Close)

	if err := r.strategy.Step(bar); err != nil {
		return bar, fmt.Errorf("strategy step at %s: %w", r.date.Format(time.DateOnly), err)
	}

	r.record(bar)
	return bar, nil
}

func (r *Runner) record(bar market.Bar) {
	snap := journal.EquitySnapshot{
		Time:       bar.Date,
		Cash:       r.account.Cash(),
		TotalValue: r.account.TotalValueAt(bar.Close),
		Position:   r.account.Position(),
	}
	r.equity = append(r.equity, snap)

	if r.journal == nil {
		return
	}
	if err := r.journal.RecordEquity(snap); err != nil {
		r.logger.Warn("journal equity write failed", zap.Error(err))
	}
}

// Run steps until the clock reaches the end date, then assembles the result.
// The clock is checked before each step, so the final step may land on or
// past the end date.
func (r *Runner) Run() (*Result, error) {
	for r.date.Before(r.end) {
		if _, err := r.Step(); err != nil {
			return nil, err
		}
	}
	return r.finish()
}

func (r *Runner) finish() (*Result, error) {
	txs := r.account.Transactions()
	if r.journal != nil {
		for _, tx := range txs {
			if err := r.journal.RecordTransaction(toRecord(tx)); err != nil {
				r.logger.Warn("journal transaction write failed",
					zap.String("id", tx.ID), zap.Error(err))
			}
		}
	}

	res := &Result{
		Ticker:       r.account.Ticker(),
		Start:        r.start,
		End:          r.end,
		FinalCash:    r.account.Cash(),
		FinalValue:   r.account.TotalValue(),
		Transactions: txs,
		EquityCurve:  append([]journal.EquitySnapshot(nil), r.equity...),
		Strategy:     r.strategy,
	}

	r.logger.Info("backtest finished",
		zap.String("ticker", res.Ticker),
		zap.Float64("final_value", res.FinalValue),
		zap.Int("transactions", len(res.Transactions)))
	return res, nil
}

func toRecord(tx sim.Transaction) journal.TransactionRecord {
	return journal.TransactionRecord{
		ID:         tx.ID,
		Kind:       tx.Kind.String(),
		Ticker:     tx.Ticker,
		Shares:     tx.Shares,
		Price:      tx.Price,
		Commission: tx.Commission,
		Gross:      tx.Gross,
		RealizedPL: tx.RealizedPL,
		Date:       tx.Date,
		Executed:   tx.Executed,
		Note:       tx.Note,
	}
}
