package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// All percentage fields in this package carry plain numbers in [0,100], never
// fractions. Conversion to fractions happens inside the calculation package
// only where formulas require it.

// ContributionPlan describes a recurring savings commitment
type ContributionPlan struct {
	MonthlyAmount decimal.Decimal `json:"monthly_amount" yaml:"monthly_amount"`
	HorizonYears  int             `json:"horizon_years" yaml:"horizon_years"`
}

// TotalContributions returns the sum of all contributions over the horizon
func (cp ContributionPlan) TotalContributions() decimal.Decimal {
	return cp.MonthlyAmount.Mul(decimal.NewFromInt(12)).Mul(decimal.NewFromInt(int64(cp.HorizonYears)))
}

// Validate checks the plan's invariants
func (cp ContributionPlan) Validate() error {
	if cp.MonthlyAmount.LessThanOrEqual(decimal.Zero) {
		return NewInvalidInput("monthly_amount", "must be positive")
	}
	if cp.HorizonYears < 1 {
		return NewInvalidInput("horizon_years", "must be at least 1")
	}
	return nil
}

// CostSchedule describes the cost structure of an insurance product.
// Acquisition costs are one-time; the four annual rates recur every year.
type CostSchedule struct {
	AcquisitionRatePercent     decimal.Decimal `json:"acquisition_rate_percent" yaml:"acquisition_rate_percent"`
	AnnualAdminRatePercent     decimal.Decimal `json:"annual_admin_rate_percent" yaml:"annual_admin_rate_percent"`
	AnnualFundRatePercent      decimal.Decimal `json:"annual_fund_rate_percent" yaml:"annual_fund_rate_percent"`
	AnnualGuaranteeRatePercent decimal.Decimal `json:"annual_guarantee_rate_percent" yaml:"annual_guarantee_rate_percent"`
	AnnualRiskRatePercent      decimal.Decimal `json:"annual_risk_rate_percent" yaml:"annual_risk_rate_percent"`
}

// EffectiveAnnualCostRatePercent returns the sum of the four recurring rates
func (cs CostSchedule) EffectiveAnnualCostRatePercent() decimal.Decimal {
	return cs.AnnualAdminRatePercent.
		Add(cs.AnnualFundRatePercent).
		Add(cs.AnnualGuaranteeRatePercent).
		Add(cs.AnnualRiskRatePercent)
}

// Validate checks that all cost rates are non-negative percentages
func (cs CostSchedule) Validate() error {
	rates := map[string]decimal.Decimal{
		"acquisition_rate_percent":      cs.AcquisitionRatePercent,
		"annual_admin_rate_percent":     cs.AnnualAdminRatePercent,
		"annual_fund_rate_percent":      cs.AnnualFundRatePercent,
		"annual_guarantee_rate_percent": cs.AnnualGuaranteeRatePercent,
		"annual_risk_rate_percent":      cs.AnnualRiskRatePercent,
	}
	for field, rate := range rates {
		if rate.IsNegative() {
			return NewInvalidInput(field, "cannot be negative")
		}
		if rate.GreaterThan(decimal.NewFromInt(100)) {
			return NewInvalidInput(field, "cannot exceed 100")
		}
	}
	return nil
}

// validGuaranteeLevels is the closed set of contract guarantee levels
var validGuaranteeLevels = []int64{0, 50, 80, 90, 100}

// GuaranteeTerms describes the contractual guarantee of an insurance product
type GuaranteeTerms struct {
	GuaranteeLevelPercent  decimal.Decimal `json:"guarantee_level_percent" yaml:"guarantee_level_percent"`
	DeathBenefitMultiplier decimal.Decimal `json:"death_benefit_multiplier" yaml:"death_benefit_multiplier"`
}

// Validate checks the guarantee level against the closed set of contract
// levels and the death benefit multiplier floor
func (gt GuaranteeTerms) Validate() error {
	valid := false
	for _, level := range validGuaranteeLevels {
		if gt.GuaranteeLevelPercent.Equal(decimal.NewFromInt(level)) {
			valid = true
			break
		}
	}
	if !valid {
		return NewInvalidInput("guarantee_level_percent", "must be one of 0, 50, 80, 90, 100")
	}
	if gt.DeathBenefitMultiplier.LessThan(decimal.NewFromInt(1)) {
		return NewInvalidInput("death_benefit_multiplier", "must be at least 1.0")
	}
	return nil
}

// ProductFamily selects the tax regime applied at payout
type ProductFamily string

const (
	// FamilyFundPolicy is an insurance-wrapped fund pension paid out as a
	// lump sum and taxed as capital gains (with the half-income privilege)
	FamilyFundPolicy ProductFamily = "fund_policy"
	// FamilyBasisPension is a Ruerup-style basis pension annuitized at payout
	// and taxed at the personal rate on the Ertragsanteil
	FamilyBasisPension ProductFamily = "basis_pension"
)

// InsuranceProduct aggregates the parameters of one insurance offering
type InsuranceProduct struct {
	Name                          string          `json:"name" yaml:"name"`
	Family                        ProductFamily   `json:"family" yaml:"family"`
	GuaranteedAnnualReturnPercent decimal.Decimal `json:"guaranteed_annual_return_percent" yaml:"guaranteed_annual_return_percent"`
	Costs                         CostSchedule    `json:"costs" yaml:"costs"`
	Guarantee                     GuaranteeTerms  `json:"guarantee" yaml:"guarantee"`
}

// Validate checks the product's invariants
func (ip InsuranceProduct) Validate() error {
	if ip.Name == "" {
		return NewInvalidInput("name", "is required")
	}
	if ip.Family != FamilyFundPolicy && ip.Family != FamilyBasisPension {
		return NewInvalidInput("family", fmt.Sprintf("must be %q or %q", FamilyFundPolicy, FamilyBasisPension))
	}
	if err := ip.Costs.Validate(); err != nil {
		return fmt.Errorf("product %s: %w", ip.Name, err)
	}
	if err := ip.Guarantee.Validate(); err != nil {
		return fmt.Errorf("product %s: %w", ip.Name, err)
	}
	return nil
}

// FundAssumptions describes the ETF-equivalent savings plan used as the
// comparison baseline
type FundAssumptions struct {
	ExpectedAnnualReturnPercent   decimal.Decimal `json:"expected_annual_return_percent" yaml:"expected_annual_return_percent"`
	OptimisticAnnualReturnPercent decimal.Decimal `json:"optimistic_annual_return_percent" yaml:"optimistic_annual_return_percent"`
	AnnualFeePercent              decimal.Decimal `json:"annual_fee_percent" yaml:"annual_fee_percent"`
}

// Validate checks the fund assumptions
func (fa FundAssumptions) Validate() error {
	if fa.AnnualFeePercent.IsNegative() || fa.AnnualFeePercent.GreaterThan(decimal.NewFromInt(100)) {
		return NewInvalidInput("annual_fee_percent", "must be between 0 and 100")
	}
	if fa.ExpectedAnnualReturnPercent.IsNegative() {
		return NewInvalidInput("expected_annual_return_percent", "cannot be negative")
	}
	if fa.OptimisticAnnualReturnPercent.IsNegative() {
		return NewInvalidInput("optimistic_annual_return_percent", "cannot be negative")
	}
	return nil
}

// Saver identifies the person the projection runs for. The age bounds are the
// sane human range the engine accepts.
type Saver struct {
	Name       string `json:"name" yaml:"name"`
	CurrentAge int    `json:"current_age" yaml:"current_age"`
}

// MinimumSaverAge and MaximumSaverAge bound the accepted age range
const (
	MinimumSaverAge = 18
	MaximumSaverAge = 100
)

// Validate checks the saver's age against the accepted range
func (s Saver) Validate() error {
	if s.CurrentAge < MinimumSaverAge || s.CurrentAge > MaximumSaverAge {
		return NewInvalidInput("current_age", fmt.Sprintf("must be between %d and %d", MinimumSaverAge, MaximumSaverAge))
	}
	return nil
}
