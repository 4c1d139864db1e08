package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestErtragsanteilPercent(t *testing.T) {
	tests := []struct {
		age  int
		want int64
	}{
		{18, 36},
		{46, 36},
		{47, 36},
		{48, 35},
		{55, 28},
		{60, 23},
		{62, 21},
		{65, 18},
		{66, 17},
		{67, 17},
		{68, 17}, // clamps, does not keep decreasing
		{85, 17},
	}

	for _, tt := range tests {
		got := ErtragsanteilPercent(tt.age)
		assert.True(t, got.Equal(decimal.NewFromInt(tt.want)),
			"ErtragsanteilPercent(%d) = %s, want %d", tt.age, got, tt.want)
	}
}

func TestErtragsanteilMonotonicity(t *testing.T) {
	previous := ErtragsanteilPercent(40)
	for age := 41; age <= 90; age++ {
		current := ErtragsanteilPercent(age)
		assert.True(t, current.LessThanOrEqual(previous),
			"Ertragsanteil must be non-increasing, rose at age %d", age)
		previous = current
	}
}

func TestPensionTax(t *testing.T) {
	// 1000 EUR monthly starting at 67: 12000 annual * 17% = 2040 taxable,
	// taxed at the personal rate of 30% = 612.
	result := PensionTax(decimal.NewFromInt(1000), 67, decimal.NewFromInt(30))

	assert.True(t, result.ErtragsanteilPercent.Equal(decimal.NewFromInt(17)))
	assert.True(t, result.TaxableAmount.Equal(decimal.NewFromInt(2040)), "taxable %s", result.TaxableAmount)
	assert.True(t, result.Tax.Equal(decimal.NewFromInt(612)), "tax %s", result.Tax)
}

func TestPensionTaxEarlyStart(t *testing.T) {
	// Early payout start carries the full 36% Ertragsanteil.
	result := PensionTax(decimal.NewFromInt(1000), 46, decimal.NewFromInt(25))

	assert.True(t, result.TaxableAmount.Equal(decimal.NewFromInt(4320)))
	assert.True(t, result.Tax.Equal(decimal.NewFromInt(1080)))
}

func TestPensionTaxZeroPension(t *testing.T) {
	result := PensionTax(decimal.Zero, 67, decimal.NewFromInt(30))
	assert.True(t, result.TaxableAmount.IsZero())
	assert.True(t, result.Tax.IsZero())
}
