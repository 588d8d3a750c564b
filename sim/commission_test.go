package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommission(t *testing.T) {
	tests := []struct {
		name   string
		scheme CommissionScheme
		rate   float64
		price  float64
		shares int
		want   float64
	}{
		{"flat_ignores_size", CommissionFlat, 5, 250, 1000, 5},
		{"percentage", CommissionPercentage, 0.01, 100, 10, 10},
		{"per_share", CommissionPerShare, 0.5, 100, 10, 5},
		{"percentage_per_share", CommissionPercentagePerShare, 0.5, 9999, 10, 5},
		{"zero_rate", CommissionFlat, 0, 100, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Commission(tt.scheme, tt.rate, tt.price, tt.shares)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCommissionUnknownScheme(t *testing.T) {
	_, err := Commission("TIERED", 1, 100, 10)
	assert.ErrorIs(t, err, ErrInvalidCommissionType)
}
