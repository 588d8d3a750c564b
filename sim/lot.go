package sim

// Side of an open lot: +1 long, -1 short.
type Side int8

const (
	Long  Side = +1
	Short Side = -1
)

func (s Side) String() string {
	if s == Short {
		return "SHORT"
	}
	return "LONG"
}

// Lot is a discrete open position tracked for FIFO cost-basis matching.
// CostBasis is the total open value (shares * entry price); it shrinks
// proportionally as the lot is consumed, so CostBasis/SharesOpen stays the
// entry price per share.
type Lot struct {
	Side           Side
	Ticker         string
	SharesOpen     int
	CostBasis      float64
	OpenCommission float64
}

// BasisPerShare returns the entry price per open share.
func (l *Lot) BasisPerShare() float64 {
	if l.SharesOpen == 0 {
		return 0
	}
	return l.CostBasis / float64(l.SharesOpen)
}

// openShares sums the open shares on the given side.
func (a *Account) openShares(side Side) int {
	total := 0
	for _, l := range a.lots {
		if l.Side == side {
			total += l.SharesOpen
		}
	}
	return total
}

// consumeLots consumes up to shares from the oldest lots of the given side at
// the given execution price and returns the realized P&L and gross value of
// the consumed shares. Fully consumed lots are removed; the caller must have
// verified that enough shares are open.
//
// The pending-removal pass and the rebuild are separate so the lot slice is
// never mutated while it is being walked.
func (a *Account) consumeLots(side Side, shares int, price float64) (pnl, gross float64) {
	remaining := shares
	for _, l := range a.lots {
		if remaining <= 0 {
			break
		}
		if l.Side != side {
			continue
		}

		n := l.SharesOpen
		if n > remaining {
			n = remaining
		}

		basis := l.BasisPerShare()
		switch side {
		case Long:
			pnl += float64(n) * (price - basis)
		case Short:
			pnl += float64(n) * (basis - price)
		}
		gross += float64(n) * price

		l.SharesOpen -= n
		l.CostBasis -= float64(n) * basis
		remaining -= n
	}

	kept := a.lots[:0]
	for _, l := range a.lots {
		if l.SharesOpen > 0 {
			kept = append(kept, l)
		}
	}
	a.lots = kept

	return pnl, gross
}
