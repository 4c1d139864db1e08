package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrechner/vorsorge-calculator/internal/domain"
)

func standardScenarioInput() ScenarioInput {
	return ScenarioInput{
		Saver: domain.Saver{Name: "Alex", CurrentAge: 32},
		Plan: domain.ContributionPlan{
			MonthlyAmount: decimal.NewFromInt(300),
			HorizonYears:  30,
		},
		Product: domain.InsuranceProduct{
			Name:                          "Fondsrente Klassik",
			Family:                        domain.FamilyFundPolicy,
			GuaranteedAnnualReturnPercent: decimal.NewFromFloat(0.25),
			Costs:                         standardCostSchedule(), // 4% acquisition, 2.55% annual drag
			Guarantee: domain.GuaranteeTerms{
				GuaranteeLevelPercent:  decimal.NewFromInt(80),
				DeathBenefitMultiplier: decimal.NewFromFloat(1.0),
			},
		},
		Tax: domain.NewGermanTaxSettings2024(),
	}
}

func TestProjectGuaranteedTrajectory(t *testing.T) {
	// 300 monthly over 30 years at an 80% guarantee level: the contractual
	// floor is exactly 300*12*30*0.80 = 86400, untouched by the acquisition
	// haircut and untaxed since it sits below the contributions. The 0.25%
	// contract minimum nets out negative against the 2.55% drag, so the
	// floor is the larger leg here.
	projector := NewScenarioProjector()

	result, err := projector.Project(standardScenarioInput())
	require.NoError(t, err)

	assert.True(t, result.Guaranteed.GrossValue.Equal(decimal.NewFromInt(86400)),
		"guaranteed gross %s", result.Guaranteed.GrossValue)
	assert.True(t, result.Guaranteed.TaxPaid.IsZero())
	assert.True(t, result.Guaranteed.NetValue.Equal(decimal.NewFromInt(86400)))
}

func TestProjectExpectedTrajectory(t *testing.T) {
	// Expected runs at 6% gross minus the 2.55% cost drag = 3.45% net. The
	// annuity value is about 189500 before the 4320 acquisition haircut.
	projector := NewScenarioProjector()

	result, err := projector.Project(standardScenarioInput())
	require.NoError(t, err)

	expectedGross := decimal.NewFromInt(185190) // 189510 - 4320
	diff := result.Expected.GrossValue.Sub(expectedGross).Abs()
	assert.True(t, diff.LessThan(expectedGross.Mul(decimal.NewFromFloat(0.01))),
		"expected gross within 1%% of %s, got %s", expectedGross, result.Expected.GrossValue)

	assert.True(t, result.Expected.ReturnPercent.Equal(decimal.NewFromFloat(3.45)))

	// Payout at 62 after 30 contract years qualifies for half-income
	// taxation; tax stays positive but well below the unreduced rate.
	assert.True(t, result.Expected.TaxPaid.IsPositive())
	assert.True(t, result.Expected.NetValue.LessThan(result.Expected.GrossValue))

	// Optimistic (8% gross, 5.45% net) must dominate expected.
	assert.True(t, result.Optimistic.GrossValue.GreaterThan(result.Expected.GrossValue))
}

func TestProjectGuaranteedContractMinimum(t *testing.T) {
	// Without a guarantee-level floor the guaranteed trajectory still
	// compounds at the contract minimum net of costs; it must not collapse
	// to zero.
	projector := NewScenarioProjector()
	input := standardScenarioInput()
	input.Plan = domain.ContributionPlan{MonthlyAmount: decimal.NewFromInt(100), HorizonYears: 10}
	input.Product.GuaranteedAnnualReturnPercent = decimal.NewFromInt(2)
	input.Product.Costs = domain.CostSchedule{}
	input.Product.Guarantee.GuaranteeLevelPercent = decimal.Zero

	result, err := projector.Project(input)
	require.NoError(t, err)

	want := FutureValueOfAnnuity(decimal.NewFromInt(100), decimal.NewFromInt(2), 10)
	assert.True(t, result.Guaranteed.GrossValue.Equal(want),
		"guaranteed gross %s, want %s", result.Guaranteed.GrossValue, want)
	assert.True(t, result.Guaranteed.GrossValue.GreaterThan(decimal.NewFromInt(12000)),
		"contract minimum must beat the plain contribution sum")
	assert.True(t, result.Guaranteed.ReturnPercent.Equal(decimal.NewFromInt(2)))
}

func TestProjectSeriesLifecycle(t *testing.T) {
	projector := NewScenarioProjector()
	input := standardScenarioInput()

	result, err := projector.Project(input)
	require.NoError(t, err)

	for _, trajectory := range []domain.TrajectoryResult{result.Guaranteed, result.Expected, result.Optimistic} {
		require.Len(t, trajectory.Series, input.Plan.HorizonYears+1)

		first := trajectory.Series[0]
		assert.Equal(t, 0, first.Year)
		assert.True(t, first.GrossValue.IsZero())
		assert.True(t, first.ContributionsToDate.IsZero())

		// Contributions accrue linearly; only the terminal point carries tax.
		annual := input.Plan.MonthlyAmount.Mul(decimal.NewFromInt(12))
		for i, point := range trajectory.Series {
			assert.Equal(t, i, point.Year)
			assert.True(t, point.ContributionsToDate.Equal(annual.Mul(decimal.NewFromInt(int64(i)))))
			if i < len(trajectory.Series)-1 {
				assert.True(t, point.TaxPaidToDate.IsZero(), "pre-terminal year %d must be untaxed", i)
			}
		}

		terminal := trajectory.Series[len(trajectory.Series)-1]
		assert.True(t, terminal.NetValue.Equal(trajectory.NetValue))
		assert.True(t, terminal.TaxPaidToDate.Equal(trajectory.TaxPaid))
	}
}

func TestProjectIdempotence(t *testing.T) {
	// Two runs over identical inputs must agree exactly.
	projector := NewScenarioProjector()
	input := standardScenarioInput()

	first, err := projector.Project(input)
	require.NoError(t, err)
	second, err := projector.Project(input)
	require.NoError(t, err)

	assert.True(t, first.Expected.GrossValue.Equal(second.Expected.GrossValue))
	assert.True(t, first.Expected.NetValue.Equal(second.Expected.NetValue))
	assert.True(t, first.Guaranteed.NetValue.Equal(second.Guaranteed.NetValue))
	assert.True(t, first.Optimistic.NetValue.Equal(second.Optimistic.NetValue))
	assert.True(t, first.DeathBenefit.AtEnd.Equal(second.DeathBenefit.AtEnd))
	assert.Equal(t, len(first.Expected.Series), len(second.Expected.Series))
}

func TestProjectDeathBenefit(t *testing.T) {
	projector := NewScenarioProjector()
	input := standardScenarioInput()

	result, err := projector.Project(input)
	require.NoError(t, err)

	// With a 1.0 multiplier the benefit is the insured value, floored at
	// 110% of contributions paid to date.
	halfwayContributions := input.Plan.MonthlyAmount.Mul(decimal.NewFromInt(12 * 15))
	floor := halfwayContributions.Mul(decimal.NewFromFloat(1.1))
	assert.True(t, result.DeathBenefit.AtHalfway.GreaterThanOrEqual(floor))
	assert.True(t, result.DeathBenefit.AtEnd.GreaterThanOrEqual(result.DeathBenefit.AtHalfway))
}

func TestProjectBasisPension(t *testing.T) {
	projector := NewScenarioProjector()
	input := standardScenarioInput()
	input.Product.Name = "Basisrente Invest"
	input.Product.Family = domain.FamilyBasisPension
	input.Saver.CurrentAge = 37 // payout at 67, Ertragsanteil 17%

	result, err := projector.Project(input)
	require.NoError(t, err)

	require.NotNil(t, result.Pension)
	assert.True(t, result.Pension.MonthlyPension.IsPositive())
	assert.True(t, result.Pension.ErtragsanteilPercent.Equal(decimal.NewFromInt(17)))
	assert.True(t, result.Pension.AnnualTax.IsPositive())
	assert.True(t, result.Expected.NetValue.LessThan(result.Expected.GrossValue))
}

func TestProjectInvalidInputs(t *testing.T) {
	// Contract violations surface once, at the boundary, before any
	// projection work.
	projector := NewScenarioProjector()

	tests := []struct {
		name   string
		mutate func(*ScenarioInput)
	}{
		{"zero contribution", func(in *ScenarioInput) { in.Plan.MonthlyAmount = decimal.Zero }},
		{"negative contribution", func(in *ScenarioInput) { in.Plan.MonthlyAmount = decimal.NewFromInt(-50) }},
		{"zero horizon", func(in *ScenarioInput) { in.Plan.HorizonYears = 0 }},
		{"guarantee level outside the set", func(in *ScenarioInput) {
			in.Product.Guarantee.GuaranteeLevelPercent = decimal.NewFromInt(70)
		}},
		{"death benefit multiplier below one", func(in *ScenarioInput) {
			in.Product.Guarantee.DeathBenefitMultiplier = decimal.NewFromFloat(0.5)
		}},
		{"age too low", func(in *ScenarioInput) { in.Saver.CurrentAge = 17 }},
		{"age too high", func(in *ScenarioInput) { in.Saver.CurrentAge = 101 }},
		{"tax rate above 100", func(in *ScenarioInput) {
			in.Tax.CapitalGainsRatePercent = decimal.NewFromInt(150)
		}},
		{"negative allowance", func(in *ScenarioInput) {
			in.Tax.AllowanceAmount = decimal.NewFromInt(-1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := standardScenarioInput()
			tt.mutate(&input)

			result, err := projector.Project(input)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, domain.IsInvalidInput(err), "expected InvalidInputError, got %v", err)
		})
	}
}

func TestProjectZeroNetRate(t *testing.T) {
	// Gross return equal to the cost drag is a normal degenerate path: the
	// expected trajectory grows linearly like a piggy bank.
	projector := NewScenarioProjector()
	projector.ExpectedGrossReturnPercent = decimal.NewFromFloat(2.55)

	input := standardScenarioInput()
	input.Product.Guarantee.GuaranteeLevelPercent = decimal.NewFromInt(100)

	result, err := projector.Project(input)
	require.NoError(t, err)

	// 108000 contributions minus the 4320 haircut; no gain, no tax.
	assert.True(t, result.Expected.GrossValue.Equal(decimal.NewFromInt(103680)),
		"gross %s", result.Expected.GrossValue)
	assert.True(t, result.Expected.TaxPaid.IsZero())
}
