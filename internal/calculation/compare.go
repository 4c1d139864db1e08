package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vrechner/vorsorge-calculator/internal/domain"
	moneypkg "github.com/vrechner/vorsorge-calculator/pkg/decimal"
)

// VehicleComparator runs an ETF-equivalent projection and an insurance
// projection under the same contribution plan and horizon, then scores both
// vehicles on a fixed weighted policy.
type VehicleComparator struct {
	Projector *ScenarioProjector
	Weights   domain.ScoringWeights
	Logger    Logger
}

// NewVehicleComparator creates a comparator with the standard scoring policy
func NewVehicleComparator() *VehicleComparator {
	return &VehicleComparator{
		Projector: NewScenarioProjector(),
		Weights:   domain.DefaultScoringWeights(),
		Logger:    NopLogger{},
	}
}

// ComparisonInput bundles the immutable inputs of one comparison run
type ComparisonInput struct {
	Saver   domain.Saver
	Plan    domain.ContributionPlan
	Fund    domain.FundAssumptions
	Product domain.InsuranceProduct
	Tax     domain.TaxSettings
}

// Validate checks all boundary contracts before any computation starts
func (ci ComparisonInput) Validate() error {
	if err := ci.Fund.Validate(); err != nil {
		return err
	}
	return ScenarioInput{Saver: ci.Saver, Plan: ci.Plan, Product: ci.Product, Tax: ci.Tax}.Validate()
}

// Compare projects both vehicles, derives net payouts and produces a scored
// recommendation. The comparison is pure; calling it twice with identical
// inputs yields identical results.
func (vc *VehicleComparator) Compare(input ComparisonInput) (*domain.ComparisonResult, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("vehicle comparison: %w", err)
	}

	fund := vc.projectFund(input, input.Fund.ExpectedAnnualReturnPercent)
	fund.OptimisticNetValue = vc.projectFund(input, input.Fund.OptimisticAnnualReturnPercent).NetValue

	scenario, err := vc.Projector.Project(ScenarioInput{
		Saver:   input.Saver,
		Plan:    input.Plan,
		Product: input.Product,
		Tax:     input.Tax,
	})
	if err != nil {
		return nil, err
	}

	insurance := domain.VehicleSummary{
		Name:               scenario.ProductName,
		GrossValue:         scenario.Expected.GrossValue,
		NetValue:           scenario.Expected.NetValue,
		OptimisticNetValue: scenario.Optimistic.NetValue,
		TaxPaid:            scenario.Expected.TaxPaid,
		TotalCosts:         scenario.Costs.TotalCosts,
		ReturnPercent:      scenario.Expected.ReturnPercent,
		Series:             scenario.Expected.Series,
	}

	difference := domain.DifferenceReport{
		CostDifference:   insurance.TotalCosts.Sub(fund.TotalCosts),
		TaxSavings:       fund.TaxPaid.Sub(insurance.TaxPaid),
		GuaranteeBenefit: scenario.Guaranteed.NetValue,
		NetDifference:    fund.NetValue.Sub(insurance.NetValue),
	}

	recommendation := vc.recommend(input, fund, insurance, scenario)

	vc.Logger.Infof("compared %s vs %s: fund %s, insurance %s, recommendation %s",
		fund.Name, insurance.Name,
		recommendation.FundScore.StringFixed(1), recommendation.InsuranceScore.StringFixed(1),
		recommendation.Vehicle)

	return &domain.ComparisonResult{
		Plan:           input.Plan,
		Fund:           fund,
		Insurance:      insurance,
		Difference:     difference,
		Recommendation: recommendation,
	}, nil
}

// projectFund simulates a plain ETF savings plan at one gross return
// assumption: flat annual fee, an annual Vorabpauschale event per year, and a
// final sale tax at the horizon. One ledger spans all events of the run,
// Vorabpauschale first, final sale last.
func (vc *VehicleComparator) projectFund(input ComparisonInput, grossReturnPercent decimal.Decimal) domain.VehicleSummary {
	plan := input.Plan
	annualContribution := plan.MonthlyAmount.Mul(twelve)
	netRate := grossReturnPercent.Sub(input.Fund.AnnualFeePercent)

	// An ETF savings plan never qualifies for the insurance half-income
	// privilege, whatever the rule set says.
	etfSettings := input.Tax
	etfSettings.HalfIncomeTaxationEnabled = false
	cg := NewCapitalGainsTaxCalculator(etfSettings)
	ledger := NewAllowanceLedger(moneypkg.NewMoneyFromDecimal(input.Tax.AllowanceAmount))
	effectiveRate := Fraction(cg.EffectiveRatePercent())

	series := make([]domain.YearlyProjectionPoint, 0, plan.HorizonYears+1)
	series = append(series, domain.YearlyProjectionPoint{Year: 0})

	value := decimal.Zero
	taxPaid := decimal.Zero
	vorabpauschaleBase := decimal.Zero

	for year := 1; year <= plan.HorizonYears; year++ {
		startValue := value
		value = FutureValueOfAnnuity(plan.MonthlyAmount, netRate, year)
		gain := value.Sub(startValue).Sub(annualContribution)

		pauschale := cg.Vorabpauschale(startValue, input.Fund.AnnualFeePercent, gain)
		exemption := cg.PartialExemption(pauschale)
		consumption := ledger.Consume(moneypkg.NewMoneyFromDecimal(exemption.Taxable))
		taxPaid = taxPaid.Add(consumption.TaxableAfterAllowance.Decimal.Mul(effectiveRate))
		vorabpauschaleBase = vorabpauschaleBase.Add(pauschale)

		series = append(series, domain.YearlyProjectionPoint{
			Year:                year,
			ContributionsToDate: annualContribution.Mul(decimal.NewFromInt(int64(year))),
			GrossValue:          value,
			TaxPaidToDate:       taxPaid,
			NetValue:            value.Sub(taxPaid),
		})
	}

	totalContributions := plan.TotalContributions()
	totalGains := value.Sub(totalContributions)
	sale := cg.FinalSaleTax(totalGains, vorabpauschaleBase, input.Saver.CurrentAge+plan.HorizonYears, plan.HorizonYears, ledger)
	taxPaid = taxPaid.Add(sale.FinalTax)

	terminal := &series[len(series)-1]
	terminal.TaxPaidToDate = taxPaid
	terminal.NetValue = value.Sub(taxPaid)

	feeSchedule := domain.CostSchedule{AnnualFundRatePercent: input.Fund.AnnualFeePercent}
	fundCosts := vc.Projector.Costs.DecomposeCosts(feeSchedule, totalContributions, plan.HorizonYears)

	return domain.VehicleSummary{
		Name:          "ETF savings plan",
		GrossValue:    value,
		NetValue:      value.Sub(taxPaid),
		TaxPaid:       taxPaid,
		TotalCosts:    fundCosts.TotalCosts,
		ReturnPercent: netRate,
		Series:        series,
	}
}

// recommend scores both vehicles 0-100 and applies the blend rule: a score
// gap below the threshold recommends the blended allocation, otherwise the
// higher-scoring vehicle wins.
func (vc *VehicleComparator) recommend(input ComparisonInput, fund, insurance domain.VehicleSummary, scenario *domain.ScenarioResult) domain.Recommendation {
	weights := vc.Weights
	maxNet := decimal.Max(fund.NetValue, insurance.NetValue)

	fundScore := weights.FlexibilityBonus
	insuranceScore := weights.GuaranteeBonusMax.Mul(Fraction(input.Product.Guarantee.GuaranteeLevelPercent))
	if maxNet.IsPositive() {
		fundScore = fundScore.Add(weights.ReturnWeight.Mul(decimal.Max(decimal.Zero, fund.NetValue).Div(maxNet)))
		insuranceScore = insuranceScore.Add(weights.ReturnWeight.Mul(decimal.Max(decimal.Zero, insurance.NetValue).Div(maxNet)))
	}
	if vc.hasTaxAdvantage(input) {
		insuranceScore = insuranceScore.Add(weights.TaxAdvantageBonus)
	}
	if input.Product.Guarantee.DeathBenefitMultiplier.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		insuranceScore = insuranceScore.Add(weights.DeathBenefitBonus)
	}

	fundScore = clampScore(fundScore)
	insuranceScore = clampScore(insuranceScore)

	recommendation := domain.Recommendation{
		FundScore:      fundScore,
		InsuranceScore: insuranceScore,
	}

	gap := fundScore.Sub(insuranceScore).Abs()
	switch {
	case gap.LessThan(weights.BlendThresholdPoints):
		recommendation.Vehicle = domain.VehicleBlend
		recommendation.BlendRatio = &domain.BlendRatio{
			FundPercent:      weights.BlendFundPercent,
			InsurancePercent: weights.BlendInsurancePercent,
		}
	case fundScore.GreaterThan(insuranceScore):
		recommendation.Vehicle = domain.VehicleFund
	default:
		recommendation.Vehicle = domain.VehicleInsurance
	}

	return recommendation
}

// hasTaxAdvantage reports whether the insurance wrapper actually reaches a
// preferential tax regime under this input: the half-income rule for fund
// policies (12 contract years and payout at 62+), Ertragsanteil taxation for
// basis pensions always.
func (vc *VehicleComparator) hasTaxAdvantage(input ComparisonInput) bool {
	if input.Product.Family == domain.FamilyBasisPension {
		return true
	}
	return input.Tax.HalfIncomeTaxationEnabled &&
		input.Plan.HorizonYears >= HalfIncomeMinimumHolding &&
		input.Saver.CurrentAge+input.Plan.HorizonYears >= HalfIncomeMinimumAge
}

func clampScore(score decimal.Decimal) decimal.Decimal {
	return decimal.Min(decimal.Max(score, decimal.Zero), hundred).Round(1)
}
