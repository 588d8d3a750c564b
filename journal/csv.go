package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	transactions *csv.Writer
	equity       *csv.Writer
	tf, ef       *os.File
}

func NewCSV(transactionsPath, equityPath string) (*CSVJournal, error) {
	tf, err := os.Create(transactionsPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := tw.Write([]string{"id", "kind", "ticker", "shares", "price", "commission", "gross", "realized_pl", "date", "executed", "note"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"time", "cash", "total_value", "position"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{tw, ew, tf, ef}, nil
}

func (j *CSVJournal) RecordTransaction(rec TransactionRecord) error {
	err := j.transactions.Write([]string{
		rec.ID,
		rec.Kind,
		rec.Ticker,
		strconv.Itoa(rec.Shares),
		f(rec.Price),
		f(rec.Commission),
		f(rec.Gross),
		f(rec.RealizedPL),
		rec.Date.Format(time.RFC3339),
		strconv.FormatBool(rec.Executed),
		rec.Note,
	})
	if err != nil {
		return err
	}
	j.transactions.Flush()
	return j.transactions.Error()
}

func (j *CSVJournal) RecordEquity(e EquitySnapshot) error {
	err := j.equity.Write([]string{
		e.Time.Format(time.RFC3339),
		f(e.Cash),
		f(e.TotalValue),
		strconv.Itoa(e.Position),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	j.transactions.Flush()
	if err := j.transactions.Error(); err != nil {
		return err
	}
	j.equity.Flush()
	if err := j.equity.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.ef.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
