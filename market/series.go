package market

import (
	"fmt"
	"sort"
	"time"
)

// Series holds the historical bars for a single ticker, ordered ascending by
// date. A backtest resolves every simulated date against a Series; dates that
// fall in a gap (weekend, holiday) resolve to the nearest available bar.
type Series struct {
	Ticker string
	bars   []Bar
}

// NewSeries builds a Series from bars. Bars are sorted by date; duplicate
// dates are rejected.
func NewSeries(ticker string, bars []Bar) (*Series, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("series %s: no bars", ticker)
	}

	sorted := append([]Bar(nil), bars...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Date.Equal(sorted[i-1].Date) {
			return nil, fmt.Errorf("series %s: duplicate bar date %s", ticker, sorted[i].Date)
		}
	}

	return &Series{Ticker: ticker, bars: sorted}, nil
}

func (s *Series) Len() int { return len(s.bars) }

// BarAt returns the i-th bar (ascending by date).
func (s *Series) BarAt(i int) Bar { return s.bars[i] }

// First and Last return the boundary bars of the series.
func (s *Series) First() Bar { return s.bars[0] }
func (s *Series) Last() Bar  { return s.bars[len(s.bars)-1] }

// At returns the bar dated exactly t, if present.
func (s *Series) At(t time.Time) (Bar, bool) {
	i := sort.Search(len(s.bars), func(i int) bool { return !s.bars[i].Date.Before(t) })
	if i < len(s.bars) && s.bars[i].Date.Equal(t) {
		return s.bars[i], true
	}
	return Bar{}, false
}

// Nearest resolves t to the closest available bar: an exact match if one
// exists, otherwise the neighbor with the smallest absolute distance. Ties
// resolve to the earlier bar. This tolerates gaps such as weekends and
// holidays in the data.
func (s *Series) Nearest(t time.Time) Bar {
	i := sort.Search(len(s.bars), func(i int) bool { return !s.bars[i].Date.Before(t) })
	switch {
	case i == 0:
		return s.bars[0]
	case i == len(s.bars):
		return s.bars[len(s.bars)-1]
	}

	prev, next := s.bars[i-1], s.bars[i]
	if next.Date.Equal(t) {
		return next
	}
	if t.Sub(prev.Date) <= next.Date.Sub(t) {
		return prev
	}
	return next
}

// IndexOf returns the position of the bar dated exactly t, or -1.
func (s *Series) IndexOf(t time.Time) int {
	i := sort.Search(len(s.bars), func(i int) bool { return !s.bars[i].Date.Before(t) })
	if i < len(s.bars) && s.bars[i].Date.Equal(t) {
		return i
	}
	return -1
}

// Window returns the sub-series with dates in [start, end).
func (s *Series) Window(start, end time.Time) (*Series, error) {
	lo := sort.Search(len(s.bars), func(i int) bool { return !s.bars[i].Date.Before(start) })
	hi := sort.Search(len(s.bars), func(i int) bool { return !s.bars[i].Date.Before(end) })
	if lo >= hi {
		return nil, fmt.Errorf("series %s: no bars in [%s, %s)", s.Ticker, start, end)
	}
	return &Series{Ticker: s.Ticker, bars: s.bars[lo:hi]}, nil
}

// Closes returns the close of every bar, oldest first. Useful as indicator
// input.
func (s *Series) Closes() []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = b.Close
	}
	return out
}

// Bars returns a copy of the underlying bars.
func (s *Series) Bars() []Bar {
	return append([]Bar(nil), s.bars...)
}
