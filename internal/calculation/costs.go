package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/vrechner/vorsorge-calculator/internal/domain"
)

// DefaultAveragePortfolioFactor approximates the average invested balance as
// a share of total contributions over the accumulation phase. A true average
// would integrate the year-by-year balance curve; the flat 0.6 is replaceable
// policy, not a derived constant.
var DefaultAveragePortfolioFactor = decimal.NewFromFloat(0.6)

// CostCalculator decomposes insurance product costs and derives net returns
type CostCalculator struct {
	AveragePortfolioFactor decimal.Decimal
}

// NewCostCalculator creates a cost calculator with the standard
// average-portfolio heuristic
func NewCostCalculator() *CostCalculator {
	return &CostCalculator{AveragePortfolioFactor: DefaultAveragePortfolioFactor}
}

// DecomposeCosts breaks a product's cost schedule down over the full term.
// The one-time acquisition cost applies to total contributions; each
// recurring item applies its annual rate to the estimated average portfolio
// for every year of the term.
func (cc *CostCalculator) DecomposeCosts(schedule domain.CostSchedule, totalContributions decimal.Decimal, years int) domain.CostBreakdown {
	avgPortfolio := totalContributions.Mul(cc.AveragePortfolioFactor)
	yearCount := decimal.NewFromInt(int64(years))

	recurring := func(ratePercent decimal.Decimal) decimal.Decimal {
		return avgPortfolio.Mul(Fraction(ratePercent)).Mul(yearCount)
	}

	breakdown := domain.CostBreakdown{
		AcquisitionCost: totalContributions.Mul(Fraction(schedule.AcquisitionRatePercent)),
		AdminCost:       recurring(schedule.AnnualAdminRatePercent),
		FundCost:        recurring(schedule.AnnualFundRatePercent),
		GuaranteeCost:   recurring(schedule.AnnualGuaranteeRatePercent),
		RiskCost:        recurring(schedule.AnnualRiskRatePercent),
	}

	recurringTotal := breakdown.AdminCost.Add(breakdown.FundCost).Add(breakdown.GuaranteeCost).Add(breakdown.RiskCost)
	breakdown.RecurringPerYear = decimal.Zero
	if years > 0 {
		breakdown.RecurringPerYear = recurringTotal.Div(yearCount)
	}
	breakdown.TotalCosts = breakdown.AcquisitionCost.Add(recurringTotal)
	breakdown.AnnualDragPercent = schedule.EffectiveAnnualCostRatePercent()

	if totalContributions.IsPositive() {
		breakdown.AsPercentOfContributions = breakdown.TotalCosts.Div(totalContributions).Mul(hundred)
	}

	return breakdown
}

// NetAnnualReturn reduces a gross return by the product's effective annual
// cost rate. The result can be zero or negative; projectors handle both.
func (cc *CostCalculator) NetAnnualReturn(grossRatePercent decimal.Decimal, schedule domain.CostSchedule) decimal.Decimal {
	return grossRatePercent.Sub(schedule.EffectiveAnnualCostRatePercent())
}
