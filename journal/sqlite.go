package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTransaction(rec TransactionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(id, kind, ticker, shares, price, commission, gross, realized_pl, date, executed, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Kind, rec.Ticker, rec.Shares, rec.Price,
		rec.Commission, rec.Gross, rec.RealizedPL, rec.Date, rec.Executed, rec.Note,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (time, cash, total_value, position)
		VALUES (?, ?, ?, ?)`,
		e.Time, e.Cash, e.TotalValue, e.Position,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
