package market

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IntervalUnit is the time unit of a bar interval.
type IntervalUnit int

const (
	Minute IntervalUnit = iota
	Hour
	Day
	Week
	Month
)

// Interval is the spacing between simulated bars, e.g. 1d or 15m.
type Interval struct {
	N    int
	Unit IntervalUnit
}

// ParseInterval parses strings like "15m", "1h", "1d", "1w", "1mo".
func ParseInterval(s string) (Interval, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Interval{}, fmt.Errorf("empty interval")
	}

	unit := Day
	num := s
	switch {
	case strings.HasSuffix(s, "mo"):
		unit = Month
		num = s[:len(s)-2]
	case strings.HasSuffix(s, "m"):
		unit = Minute
		num = s[:len(s)-1]
	case strings.HasSuffix(s, "h"):
		unit = Hour
		num = s[:len(s)-1]
	case strings.HasSuffix(s, "d"):
		unit = Day
		num = s[:len(s)-1]
	case strings.HasSuffix(s, "w"):
		unit = Week
		num = s[:len(s)-1]
	default:
		return Interval{}, fmt.Errorf("bad interval %q (want e.g. 15m, 1h, 1d, 1w, 1mo)", s)
	}

	n, err := strconv.Atoi(num)
	if err != nil || n <= 0 {
		return Interval{}, fmt.Errorf("bad interval %q: count must be a positive integer", s)
	}
	return Interval{N: n, Unit: unit}, nil
}

// Next returns t advanced by one interval. Months use calendar arithmetic,
// everything else is a fixed duration.
func (iv Interval) Next(t time.Time) time.Time {
	switch iv.Unit {
	case Minute:
		return t.Add(time.Duration(iv.N) * time.Minute)
	case Hour:
		return t.Add(time.Duration(iv.N) * time.Hour)
	case Day:
		return t.AddDate(0, 0, iv.N)
	case Week:
		return t.AddDate(0, 0, 7*iv.N)
	case Month:
		return t.AddDate(0, iv.N, 0)
	}
	return t
}

func (iv Interval) String() string {
	switch iv.Unit {
	case Minute:
		return fmt.Sprintf("%dm", iv.N)
	case Hour:
		return fmt.Sprintf("%dh", iv.N)
	case Day:
		return fmt.Sprintf("%dd", iv.N)
	case Week:
		return fmt.Sprintf("%dw", iv.N)
	case Month:
		return fmt.Sprintf("%dmo", iv.N)
	}
	return "?"
}
