// Package journal persists the audit trail of a backtest run: the
// transaction ledger and the per-bar equity curve. Backends exist for SQLite
// and CSV.
package journal

import "time"

// TransactionRecord mirrors one ledger entry of a run.
type TransactionRecord struct {
	ID         string
	Kind       string
	Ticker     string
	Shares     int
	Price      float64
	Commission float64
	Gross      float64
	RealizedPL float64
	Date       time.Time
	Executed   bool
	Note       string
}

// EquitySnapshot is the account state observed after one simulation step.
type EquitySnapshot struct {
	Time       time.Time
	Cash       float64
	TotalValue float64
	Position   int
}

type Journal interface {
	RecordTransaction(TransactionRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}
