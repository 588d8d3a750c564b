package market

import "time"

// Bar represents OHLCV (Open, High, Low, Close, Volume) data for one
// interval of historical data.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// IsZero reports whether the bar is the zero value.
func (b Bar) IsZero() bool {
	return b.Date.IsZero()
}
