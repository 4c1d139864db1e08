package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/vrechner/vorsorge-calculator/internal/domain"
	moneypkg "github.com/vrechner/vorsorge-calculator/pkg/decimal"
)

// German capital gains taxation for fund-type investments: Vorabpauschale,
// Teilfreistellung, Halbeinkuenfteverfahren and the final sale tax.
//
// Ordering contract: a sale is taxed by applying (1) Teilfreistellung,
// (2) Halbeinkuenfteverfahren, (3) the allowance, (4) the tax rate, in that
// exact sequence. Reordering changes the taxable base. FinalSaleTax applies
// the whole chain so callers cannot get the order wrong.

// vorabpauschaleDiscount is the statutory 70% factor applied to the
// Basisertrag (§18 InvStG).
var vorabpauschaleDiscount = decimal.NewFromFloat(0.7)

// Half-income taxation requires a minimum contract age and holding period.
// The age threshold is a hard cutoff with no phase-in.
const (
	HalfIncomeMinimumAge     = 62
	HalfIncomeMinimumHolding = 12
)

// CapitalGainsTaxCalculator applies one tax-year rule set to fund gains
type CapitalGainsTaxCalculator struct {
	Settings domain.TaxSettings
}

// NewCapitalGainsTaxCalculator creates a calculator for the given rule set
func NewCapitalGainsTaxCalculator(settings domain.TaxSettings) *CapitalGainsTaxCalculator {
	return &CapitalGainsTaxCalculator{Settings: settings}
}

// Vorabpauschale computes the advance lump-sum tax base for one year:
// 70% of the investment value times the Basiszins net of the fund's fee,
// clamped between zero and the actual gain of the period. It is never
// negative and never exceeds the real gain.
func (c *CapitalGainsTaxCalculator) Vorabpauschale(investmentValue, managementFeePercent, actualGain decimal.Decimal) decimal.Decimal {
	netBaseRate := decimal.Max(decimal.Zero, c.Settings.VorabpauschaleBaseRatePercent.Sub(managementFeePercent))
	theoretical := investmentValue.Mul(Fraction(netBaseRate)).Mul(vorabpauschaleDiscount)

	if actualGain.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.Min(theoretical, actualGain)
}

// PartialExemptionResult splits gains into the exempted and taxable portions
type PartialExemptionResult struct {
	Exempted decimal.Decimal
	Taxable  decimal.Decimal
}

// PartialExemption applies the Teilfreistellung, excluding a flat statutory
// share of fund gains from taxation (15% for equity funds).
func (c *CapitalGainsTaxCalculator) PartialExemption(gains decimal.Decimal) PartialExemptionResult {
	exempted := gains.Mul(Fraction(c.Settings.PartialExemptionRatePercent))
	return PartialExemptionResult{
		Exempted: exempted,
		Taxable:  gains.Sub(exempted),
	}
}

// HalfIncomeTaxation halves the taxable amount under the
// Halbeinkuenfteverfahren when the rule set enables it and the saver has
// reached age 62. Below the cutoff the amount passes through unchanged.
func (c *CapitalGainsTaxCalculator) HalfIncomeTaxation(taxableAmount decimal.Decimal, age int) decimal.Decimal {
	if c.Settings.HalfIncomeTaxationEnabled && age >= HalfIncomeMinimumAge {
		return taxableAmount.Div(decimal.NewFromInt(2))
	}
	return taxableAmount
}

// EffectiveRatePercent returns the applicable flat tax rate, increased by the
// church tax surcharge on the capital gains tax when enabled.
func (c *CapitalGainsTaxCalculator) EffectiveRatePercent() decimal.Decimal {
	rate := c.Settings.CapitalGainsRatePercent
	if c.Settings.ChurchTaxEnabled {
		rate = rate.Mul(one.Add(Fraction(c.Settings.ChurchTaxRatePercent)))
	}
	return rate
}

// FinalSaleTaxResult reports the final sale taxation of a fund position
type FinalSaleTaxResult struct {
	RemainingTaxableGains decimal.Decimal
	ExemptedGains         decimal.Decimal
	TaxableAfterAllowance decimal.Decimal
	AllowanceUsed         decimal.Decimal
	FinalTax              decimal.Decimal
}

// FinalSaleTax taxes the gains realized at sale. Gains already taxed through
// annual Vorabpauschale events are credited first; the remainder runs through
// the full chain (Teilfreistellung, half-income rule, allowance, rate). The
// ledger is the same one the Vorabpauschale events consumed from, so the
// allowance depletes across both event kinds in chronological order.
func (c *CapitalGainsTaxCalculator) FinalSaleTax(totalGains, vorabpauschaleAlreadyPaid decimal.Decimal, age, holdingYears int, ledger *AllowanceLedger) FinalSaleTaxResult {
	remaining := decimal.Max(decimal.Zero, totalGains.Sub(vorabpauschaleAlreadyPaid))

	exemption := c.PartialExemption(remaining)
	taxable := exemption.Taxable
	if holdingYears >= HalfIncomeMinimumHolding {
		taxable = c.HalfIncomeTaxation(taxable, age)
	}

	consumption := ledger.Consume(moneypkg.NewMoneyFromDecimal(taxable))
	finalTax := consumption.TaxableAfterAllowance.Decimal.Mul(Fraction(c.EffectiveRatePercent()))

	return FinalSaleTaxResult{
		RemainingTaxableGains: remaining,
		ExemptedGains:         exemption.Exempted,
		TaxableAfterAllowance: consumption.TaxableAfterAllowance.Decimal,
		AllowanceUsed:         consumption.AllowanceUsed.Decimal,
		FinalTax:              finalTax,
	}
}
