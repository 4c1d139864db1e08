package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vrechner/vorsorge-calculator/internal/domain"
	moneypkg "github.com/vrechner/vorsorge-calculator/pkg/decimal"
)

// Gross return assumptions behind the expected and optimistic trajectories.
// The guaranteed trajectory uses the contract minimum instead.
var (
	DefaultExpectedGrossReturnPercent   = decimal.NewFromInt(6)
	DefaultOptimisticGrossReturnPercent = decimal.NewFromInt(8)
)

// deathBenefitContributionFloor guarantees at least 110% of paid
// contributions on death.
var deathBenefitContributionFloor = decimal.NewFromFloat(1.1)

// Basis pension payout policy: terminal capital is annuitized over 25 years
// and the Ertragsanteil tax is capitalized over a 20-year payout phase for
// the net value figure.
const (
	basisPensionAnnuityYears = 25
	basisPensionPayoutYears  = 20
)

// ScenarioProjector drives the rate math, cost model and tax modules to
// produce guaranteed, expected and optimistic trajectories for one insurance
// product. A projector holds no per-run state; Project is pure and
// deterministic over its input.
type ScenarioProjector struct {
	Costs                        *CostCalculator
	Logger                       Logger
	ExpectedGrossReturnPercent   decimal.Decimal
	OptimisticGrossReturnPercent decimal.Decimal
}

// NewScenarioProjector creates a projector with the standard return
// assumptions
func NewScenarioProjector() *ScenarioProjector {
	return &ScenarioProjector{
		Costs:                        NewCostCalculator(),
		Logger:                       NopLogger{},
		ExpectedGrossReturnPercent:   DefaultExpectedGrossReturnPercent,
		OptimisticGrossReturnPercent: DefaultOptimisticGrossReturnPercent,
	}
}

// ScenarioInput bundles the immutable inputs of one projection run
type ScenarioInput struct {
	Saver   domain.Saver
	Plan    domain.ContributionPlan
	Product domain.InsuranceProduct
	Tax     domain.TaxSettings
}

// Validate checks all boundary contracts before any computation starts.
// A violation is reported exactly once, never discovered mid-projection.
func (si ScenarioInput) Validate() error {
	if err := si.Saver.Validate(); err != nil {
		return err
	}
	if err := si.Plan.Validate(); err != nil {
		return err
	}
	if err := si.Product.Validate(); err != nil {
		return err
	}
	if err := si.Tax.Validate(); err != nil {
		return err
	}
	return nil
}

// Project runs the full accumulation and payout simulation for one product.
// Zero or negative net rates, zero gains and an exhausted allowance are all
// normal paths; only contract violations return an error.
func (sp *ScenarioProjector) Project(input ScenarioInput) (*domain.ScenarioResult, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("scenario projection: %w", err)
	}

	plan := input.Plan
	product := input.Product
	totalContributions := plan.TotalContributions()
	ageAtPayout := input.Saver.CurrentAge + plan.HorizonYears

	netExpected := sp.Costs.NetAnnualReturn(sp.ExpectedGrossReturnPercent, product.Costs)
	netOptimistic := sp.Costs.NetAnnualReturn(sp.OptimisticGrossReturnPercent, product.Costs)
	netGuaranteed := sp.Costs.NetAnnualReturn(product.GuaranteedAnnualReturnPercent, product.Costs)

	sp.Logger.Debugf("projecting %s: net expected %s%%, net optimistic %s%%, payout age %d",
		product.Name, netExpected.StringFixed(2), netOptimistic.StringFixed(2), ageAtPayout)

	result := &domain.ScenarioResult{
		ProductName: product.Name,
		Family:      product.Family,
		Guaranteed:  sp.buildTrajectory(input, netGuaranteed, true, ageAtPayout),
		Expected:    sp.buildTrajectory(input, netExpected, false, ageAtPayout),
		Optimistic:  sp.buildTrajectory(input, netOptimistic, false, ageAtPayout),
		Costs:       sp.Costs.DecomposeCosts(product.Costs, totalContributions, plan.HorizonYears),
	}

	result.DeathBenefit = sp.deathBenefit(result.Expected.Series, product.Guarantee.DeathBenefitMultiplier, plan.HorizonYears)

	if product.Family == domain.FamilyBasisPension {
		pension := sp.annuitize(result.Expected.GrossValue, ageAtPayout, input.Tax.PersonalTaxRatePercent)
		result.Pension = &pension
	}

	return result, nil
}

// buildTrajectory simulates one return assumption year by year. The series
// starts at year 0 with zero value and gets one immutable point per year; the
// terminal year carries the acquisition haircut and the payout taxation. The
// guaranteed trajectory compounds at the contract-minimum return net of costs
// and is floored by the guarantee level on contributions.
func (sp *ScenarioProjector) buildTrajectory(input ScenarioInput, netRatePercent decimal.Decimal, guaranteed bool, ageAtPayout int) domain.TrajectoryResult {
	plan := input.Plan
	product := input.Product
	totalContributions := plan.TotalContributions()
	annualContribution := plan.MonthlyAmount.Mul(twelve)
	guaranteeFraction := Fraction(product.Guarantee.GuaranteeLevelPercent)

	series := make([]domain.YearlyProjectionPoint, 0, plan.HorizonYears+1)
	series = append(series, domain.YearlyProjectionPoint{
		Year:                0,
		ContributionsToDate: decimal.Zero,
		GrossValue:          decimal.Zero,
		TaxPaidToDate:       decimal.Zero,
		NetValue:            decimal.Zero,
	})

	var gross decimal.Decimal
	for year := 1; year <= plan.HorizonYears; year++ {
		contributionsToDate := annualContribution.Mul(decimal.NewFromInt(int64(year)))
		gross = FutureValueOfAnnuity(plan.MonthlyAmount, netRatePercent, year)
		if guaranteed {
			// The contract promises both a minimum return and a level floor;
			// the saver gets whichever pays more.
			gross = decimal.Max(gross, contributionsToDate.Mul(guaranteeFraction))
		}
		series = append(series, domain.YearlyProjectionPoint{
			Year:                year,
			ContributionsToDate: contributionsToDate,
			GrossValue:          gross,
			TaxPaidToDate:       decimal.Zero,
			NetValue:            gross,
		})
	}

	// Acquisition haircut applies once, on the terminal gross value. The
	// guaranteed trajectory is exempt: contract figures are promised net of
	// all charges.
	grossAtPayout := gross
	if !guaranteed {
		haircut := totalContributions.Mul(Fraction(product.Costs.AcquisitionRatePercent))
		grossAtPayout = decimal.Max(decimal.Zero, gross.Sub(haircut))
	}

	tax := sp.payoutTax(input, grossAtPayout, totalContributions, ageAtPayout)
	net := grossAtPayout.Sub(tax)

	terminal := &series[len(series)-1]
	terminal.GrossValue = grossAtPayout
	terminal.TaxPaidToDate = tax
	terminal.NetValue = net

	return domain.TrajectoryResult{
		GrossValue:    grossAtPayout,
		NetValue:      net,
		TaxPaid:       tax,
		ReturnPercent: netRatePercent,
		Series:        series,
	}
}

// payoutTax routes the terminal gain through the tax regime of the product
// family: capital gains (with the half-income privilege) for fund policies,
// Ertragsanteil taxation for basis pensions.
func (sp *ScenarioProjector) payoutTax(input ScenarioInput, grossAtPayout, totalContributions decimal.Decimal, ageAtPayout int) decimal.Decimal {
	switch input.Product.Family {
	case domain.FamilyBasisPension:
		pension := sp.annuitize(grossAtPayout, ageAtPayout, input.Tax.PersonalTaxRatePercent)
		return pension.AnnualTax.Mul(decimal.NewFromInt(basisPensionPayoutYears))
	default:
		gain := grossAtPayout.Sub(totalContributions)
		ledger := NewAllowanceLedger(moneypkg.NewMoneyFromDecimal(input.Tax.AllowanceAmount))
		cg := NewCapitalGainsTaxCalculator(input.Tax)
		// Insurance wrappers pay no annual Vorabpauschale; the whole gain is
		// taxed at the single sale event.
		sale := cg.FinalSaleTax(gain, decimal.Zero, ageAtPayout, input.Plan.HorizonYears, ledger)
		return sale.FinalTax
	}
}

// annuitize converts terminal capital into a monthly basis pension and its
// annual Ertragsanteil tax
func (sp *ScenarioProjector) annuitize(capital decimal.Decimal, ageAtPayout int, personalTaxRatePercent decimal.Decimal) domain.PensionPayout {
	monthlyPension := capital.Div(decimal.NewFromInt(basisPensionAnnuityYears)).Div(twelve)
	taxed := PensionTax(monthlyPension, ageAtPayout, personalTaxRatePercent)

	return domain.PensionPayout{
		MonthlyPension:       monthlyPension,
		ErtragsanteilPercent: taxed.ErtragsanteilPercent,
		AnnualTax:            taxed.Tax,
	}
}

// deathBenefit evaluates the guaranteed death payout at the projection
// midpoint and at the horizon: the insured value times the multiplier,
// floored at 110% of the contributions paid so far.
func (sp *ScenarioProjector) deathBenefit(series []domain.YearlyProjectionPoint, multiplier decimal.Decimal, horizonYears int) domain.DeathBenefit {
	at := func(year int) decimal.Decimal {
		point := series[year]
		insured := moneypkg.NewMoneyFromDecimal(point.GrossValue.Mul(multiplier))
		floor := moneypkg.NewMoneyFromDecimal(point.ContributionsToDate.Mul(deathBenefitContributionFloor))
		return moneypkg.Max(insured, floor).Decimal
	}

	return domain.DeathBenefit{
		AtHalfway: at(horizonYears / 2),
		AtEnd:     at(horizonYears),
	}
}
