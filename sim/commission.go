package sim

import "fmt"

// CommissionScheme selects how the per-trade fee is computed. The scheme and
// its rate are fixed when the account is created.
type CommissionScheme string

const (
	CommissionFlat               CommissionScheme = "FLAT"
	CommissionPercentage         CommissionScheme = "PERCENTAGE"
	CommissionPercentagePerShare CommissionScheme = "PERCENTAGE_PER_SHARE"
	CommissionPerShare           CommissionScheme = "PER_SHARE"
)

// Commission computes the fee for a single execution. Pure; called once per
// executed trade.
func Commission(scheme CommissionScheme, rate, price float64, shares int) (float64, error) {
	switch scheme {
	case CommissionFlat:
		return rate, nil
	case CommissionPercentage:
		return rate * price * float64(shares), nil
	case CommissionPercentagePerShare, CommissionPerShare:
		return rate * float64(shares), nil
	default:
		return 0, fmt.Errorf("%w: %q (accepted: FLAT, PERCENTAGE, PERCENTAGE_PER_SHARE, PER_SHARE)",
			ErrInvalidCommissionType, scheme)
	}
}
