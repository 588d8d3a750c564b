package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetTransaction returns a single ledger record by ID.
func (j *SQLiteJournal) GetTransaction(id string) (TransactionRecord, error) {
	row := j.db.QueryRow(`
		SELECT id, kind, ticker, shares, price, commission, gross, realized_pl, date, executed, note
		FROM transactions
		WHERE id = ?`, id)

	rec, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return TransactionRecord{}, fmt.Errorf("transaction %q not found", id)
	}
	return rec, err
}

// ListTransactionsBetween returns ledger records dated within [start, end),
// oldest first.
func (j *SQLiteJournal) ListTransactionsBetween(start, end time.Time) ([]TransactionRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, kind, ticker, shares, price, commission, gross, realized_pl, date, executed, note
		FROM transactions
		WHERE date >= ? AND date < ?
		ORDER BY date ASC, id ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TransactionRecord
	for rows.Next() {
		rec, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListEquityBetween returns the equity curve within [start, end).
func (j *SQLiteJournal) ListEquityBetween(start, end time.Time) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT time, cash, total_value, position
		FROM equity
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var e EquitySnapshot
		if err := rows.Scan(&e.Time, &e.Cash, &e.TotalValue, &e.Position); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (TransactionRecord, error) {
	var rec TransactionRecord
	err := row.Scan(
		&rec.ID,
		&rec.Kind,
		&rec.Ticker,
		&rec.Shares,
		&rec.Price,
		&rec.Commission,
		&rec.Gross,
		&rec.RealizedPL,
		&rec.Date,
		&rec.Executed,
		&rec.Note,
	)
	return rec, err
}
