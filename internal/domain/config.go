package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Configuration is the root input of one engine run, parsed from YAML
type Configuration struct {
	Saver    Saver              `json:"saver" yaml:"saver"`
	Plan     ContributionPlan   `json:"plan" yaml:"plan"`
	Fund     FundAssumptions    `json:"fund" yaml:"fund"`
	Products []InsuranceProduct `json:"products" yaml:"products"`
	Tax      TaxSettings        `json:"tax" yaml:"tax"`
	Weights  *ScoringWeights    `json:"weights,omitempty" yaml:"weights,omitempty"`
}

// GenerateAssumptions lists the run's key assumptions for report output
func (c *Configuration) GenerateAssumptions() []string {
	assumptions := []string{
		fmt.Sprintf("Tax rule set: %d (capital gains %s%%, allowance %s EUR)",
			c.Tax.Year,
			c.Tax.CapitalGainsRatePercent.StringFixed(3),
			c.Tax.AllowanceAmount.StringFixed(0)),
		fmt.Sprintf("Vorabpauschale Basiszins: %s%%", c.Tax.VorabpauschaleBaseRatePercent.StringFixed(2)),
		fmt.Sprintf("Teilfreistellung: %s%% for equity funds", c.Tax.PartialExemptionRatePercent.StringFixed(0)),
		fmt.Sprintf("Contribution: %s EUR monthly over %d years", c.Plan.MonthlyAmount.StringFixed(2), c.Plan.HorizonYears),
		fmt.Sprintf("Fund baseline: %s%% expected return, %s%% annual fee",
			c.Fund.ExpectedAnnualReturnPercent.StringFixed(2),
			c.Fund.AnnualFeePercent.StringFixed(2)),
	}
	if c.Tax.ChurchTaxEnabled {
		assumptions = append(assumptions, fmt.Sprintf("Church tax: %s%% on the capital gains tax", c.Tax.ChurchTaxRatePercent.StringFixed(1)))
	}
	if c.Tax.HalfIncomeTaxationEnabled {
		assumptions = append(assumptions, "Half-income taxation from age 62 after 12 contract years")
	}
	return assumptions
}

// ScoringWeightsOrDefault returns the configured weights, falling back to the
// standard policy
func (c *Configuration) ScoringWeightsOrDefault() ScoringWeights {
	if c.Weights != nil {
		return *c.Weights
	}
	return DefaultScoringWeights()
}

// DefaultFundAssumptions is the ETF baseline used when the input omits one:
// 7% expected, 9% optimistic, 0.3% TER.
func DefaultFundAssumptions() FundAssumptions {
	return FundAssumptions{
		ExpectedAnnualReturnPercent:   decimal.NewFromInt(7),
		OptimisticAnnualReturnPercent: decimal.NewFromInt(9),
		AnnualFeePercent:              decimal.NewFromFloat(0.3),
	}
}
