package sim

import (
	"time"

	"backsim/internal/id"
)

// Transaction is one immutable record in the account's ledger. The ledger is
// append-only and is the authoritative audit trail of a run: every executed
// trade, cancellation, expiry and failed automatic fill leaves a record.
type Transaction struct {
	ID         string
	Kind       TradeKind
	Ticker     string
	Shares     int
	Price      float64 // per share
	Commission float64
	Gross      float64 // total traded value before commission
	Date       time.Time
	RealizedPL float64
	Executed   bool
	Note       string
}

func (a *Account) appendTransaction(tx Transaction) Transaction {
	tx.ID = id.New()
	tx.Ticker = a.ticker
	a.ledger = append(a.ledger, tx)
	return tx
}

// Transactions returns a copy of the ledger, oldest first.
func (a *Account) Transactions() []Transaction {
	return append([]Transaction(nil), a.ledger...)
}
