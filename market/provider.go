package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider fetches a historical price series for a ticker. Implementations
// must return bars ordered ascending by date, filtered to [start, end).
type Provider interface {
	Fetch(ticker string, start, end time.Time, interval Interval) (*Series, error)
}

// CSVProvider reads bars from a local CSV file with columns
// date,open,high,low,close,volume. A header row is optional. Dates may be
// RFC3339 or plain YYYY-MM-DD.
type CSVProvider struct {
	Path string
}

func (p CSVProvider) Fetch(ticker string, start, end time.Time, _ Interval) (*Series, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("open bars csv: %w", err)
	}
	defer f.Close()

	bars, err := readBars(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.Path, err)
	}

	s, err := NewSeries(ticker, bars)
	if err != nil {
		return nil, err
	}
	return s.Window(start, end)
}

func readBars(r io.Reader) ([]Bar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var bars []Bar
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return bars, nil
		}
		if err != nil {
			return nil, err
		}
		line++

		if line == 1 && isHeader(row) {
			continue
		}
		b, err := parseBar(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bars = append(bars, b)
	}
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "date")
}

func parseBar(row []string) (Bar, error) {
	if len(row) < 5 {
		return Bar{}, fmt.Errorf("need at least 5 cols date,open,high,low,close[,volume]: %v", row)
	}

	ts, err := parseDate(strings.TrimSpace(row[0]))
	if err != nil {
		return Bar{}, err
	}

	vals := make([]float64, 0, 5)
	for _, cell := range row[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return Bar{}, fmt.Errorf("bad number %q: %w", cell, err)
		}
		vals = append(vals, v)
	}

	b := Bar{Date: ts, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3]}
	if len(vals) > 4 {
		b.Volume = vals[4]
	}
	return b, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad date %q", s)
}
