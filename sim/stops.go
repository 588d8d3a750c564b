package sim

// ApplyStopLoss closes any open lot whose mark has moved against its entry by
// more than the given fraction (0.05 = 5%). Long lots sell, short lots cover,
// both at the close of the current bar. The lots to close are collected
// before any executor runs, since closing rebuilds the lot slice.
func (a *Account) ApplyStopLoss(stopLoss float64) error {
	bar := a.currentBar()

	type exit struct {
		side   Side
		shares int
	}
	var exits []exit
	for _, l := range a.lots {
		entry := l.BasisPerShare()
		switch l.Side {
		case Long:
			if entry*(1-stopLoss) >= bar.Close {
				exits = append(exits, exit{Long, l.SharesOpen})
			}
		case Short:
			if entry*(1+stopLoss) <= bar.Close {
				exits = append(exits, exit{Short, l.SharesOpen})
			}
		}
	}

	for _, e := range exits {
		var err error
		if e.side == Long {
			_, err = a.executeSell(bar.Close, e.shares, bar.Date, Sell, "Stop loss")
		} else {
			_, err = a.executeShortCover(bar.Close, e.shares, bar.Date)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ApplyTakeProfit closes any open lot whose mark has moved in its favor by
// more than the given fraction.
func (a *Account) ApplyTakeProfit(takeProfit float64) error {
	bar := a.currentBar()

	type exit struct {
		side   Side
		shares int
	}
	var exits []exit
	for _, l := range a.lots {
		entry := l.BasisPerShare()
		switch l.Side {
		case Long:
			if entry*(1+takeProfit) <= bar.Close {
				exits = append(exits, exit{Long, l.SharesOpen})
			}
		case Short:
			if entry*(1-takeProfit) >= bar.Close {
				exits = append(exits, exit{Short, l.SharesOpen})
			}
		}
	}

	for _, e := range exits {
		var err error
		if e.side == Long {
			_, err = a.executeSell(bar.Close, e.shares, bar.Date, Sell, "Take profit")
		} else {
			_, err = a.executeShortCover(bar.Close, e.shares, bar.Date)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
