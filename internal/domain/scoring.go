package domain

import (
	"github.com/shopspring/decimal"
)

// ScoringWeights holds the policy constants of the vehicle comparison. The
// weights are fixed product policy, not derived optima; they are named and
// overridable so a caller can tune them without touching the engine.
type ScoringWeights struct {
	ReturnWeight      decimal.Decimal `json:"return_weight" yaml:"return_weight"`
	FlexibilityBonus  decimal.Decimal `json:"flexibility_bonus" yaml:"flexibility_bonus"`
	GuaranteeBonusMax decimal.Decimal `json:"guarantee_bonus_max" yaml:"guarantee_bonus_max"`
	TaxAdvantageBonus decimal.Decimal `json:"tax_advantage_bonus" yaml:"tax_advantage_bonus"`
	DeathBenefitBonus decimal.Decimal `json:"death_benefit_bonus" yaml:"death_benefit_bonus"`

	// BlendThresholdPoints is the score gap below which neither vehicle wins
	// outright and a blended allocation is recommended instead.
	BlendThresholdPoints  decimal.Decimal `json:"blend_threshold_points" yaml:"blend_threshold_points"`
	BlendFundPercent      decimal.Decimal `json:"blend_fund_percent" yaml:"blend_fund_percent"`
	BlendInsurancePercent decimal.Decimal `json:"blend_insurance_percent" yaml:"blend_insurance_percent"`
}

// DefaultScoringWeights returns the standard comparison policy: 60 points for
// net return, a 15-point flexibility bonus for the fund, up to 20 points for
// the contractual guarantee, 10 for the half-income tax privilege, 5 for the
// death benefit, with a 15-point blend threshold and a 60/40 blend split.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		ReturnWeight:          decimal.NewFromInt(60),
		FlexibilityBonus:      decimal.NewFromInt(15),
		GuaranteeBonusMax:     decimal.NewFromInt(20),
		TaxAdvantageBonus:     decimal.NewFromInt(10),
		DeathBenefitBonus:     decimal.NewFromInt(5),
		BlendThresholdPoints:  decimal.NewFromInt(15),
		BlendFundPercent:      decimal.NewFromInt(60),
		BlendInsurancePercent: decimal.NewFromInt(40),
	}
}
