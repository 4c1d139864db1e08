package calculation

import (
	"github.com/shopspring/decimal"
)

// Rate math primitives shared by every projector. Public surfaces carry
// percentages as plain numbers in [0,100]; Fraction is the single conversion
// point to the fractional form the formulas need.

var (
	hundred       = decimal.NewFromInt(100)
	twelve        = decimal.NewFromInt(12)
	one           = decimal.NewFromInt(1)
	monthsPerYear = 12
)

// Fraction converts a percentage in [0,100] to its fractional form.
func Fraction(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// FutureValueOfAnnuity returns the future value of a monthly contribution
// paid at the start of each month (annuity due), compounded at the given
// annual net rate for the given number of years:
//
//	c * ((1+r)^n - 1) / r * (1+r)  with r = rate/12, n = years*12
//
// A zero monthly rate degenerates to the plain sum c*n. That branch is
// reachable whenever the gross return equals the cost rate exactly, so it is
// a normal path, not an error.
func FutureValueOfAnnuity(monthlyContribution, annualNetRatePercent decimal.Decimal, years int) decimal.Decimal {
	months := years * monthsPerYear
	monthlyRate := Fraction(annualNetRatePercent).Div(twelve)

	if monthlyRate.IsZero() {
		return monthlyContribution.Mul(decimal.NewFromInt(int64(months)))
	}

	growth := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(months)))
	factor := growth.Sub(one).Div(monthlyRate).Mul(one.Add(monthlyRate))
	return monthlyContribution.Mul(factor)
}
