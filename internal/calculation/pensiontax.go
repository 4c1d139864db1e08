package calculation

import (
	"github.com/shopspring/decimal"
)

// Age-indexed Ertragsanteil taxation for private pension payouts. Pension
// income is taxed at the personal marginal rate on the Ertragsanteil share,
// a distinct regime from the flat capital gains tax.

// ertragsanteilTable maps payment start ages 47 through 67 to the taxable
// share per the statutory Anlage-9 schedule. Ages below 47 use 36%, ages 67
// and above clamp at 17%. The values are an exact lookup, not a formula: the
// schedule is not linear outside the 47-67 band.
var ertragsanteilTable = [...]int64{
	36, // 47
	35, // 48
	34, // 49
	33, // 50
	32, // 51
	31, // 52
	30, // 53
	29, // 54
	28, // 55
	27, // 56
	26, // 57
	25, // 58
	24, // 59
	23, // 60
	22, // 61
	21, // 62
	20, // 63
	19, // 64
	18, // 65
	17, // 66
	17, // 67
}

const (
	ertragsanteilTableFirstAge = 47
	ertragsanteilTableLastAge  = 67
)

// ErtragsanteilPercent returns the taxable percentage of a pension payment
// for the given age at payment start.
func ErtragsanteilPercent(ageAtPaymentStart int) decimal.Decimal {
	switch {
	case ageAtPaymentStart < ertragsanteilTableFirstAge:
		return decimal.NewFromInt(ertragsanteilTable[0])
	case ageAtPaymentStart >= ertragsanteilTableLastAge:
		return decimal.NewFromInt(ertragsanteilTable[len(ertragsanteilTable)-1])
	default:
		return decimal.NewFromInt(ertragsanteilTable[ageAtPaymentStart-ertragsanteilTableFirstAge])
	}
}

// PensionTaxResult reports the annual taxation of a pension
type PensionTaxResult struct {
	ErtragsanteilPercent decimal.Decimal
	TaxableAmount        decimal.Decimal
	Tax                  decimal.Decimal
}

// PensionTax computes the annual tax on a monthly pension: twelve payments,
// reduced to the age-indexed Ertragsanteil, taxed at the personal rate.
func PensionTax(monthlyPension decimal.Decimal, ageAtPaymentStart int, personalTaxRatePercent decimal.Decimal) PensionTaxResult {
	ertragsanteil := ErtragsanteilPercent(ageAtPaymentStart)
	taxable := monthlyPension.Mul(twelve).Mul(Fraction(ertragsanteil))
	tax := taxable.Mul(Fraction(personalTaxRatePercent))

	return PensionTaxResult{
		ErtragsanteilPercent: ertragsanteil,
		TaxableAmount:        taxable,
		Tax:                  tax,
	}
}
