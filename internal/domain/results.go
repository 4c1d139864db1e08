package domain

import (
	"github.com/shopspring/decimal"
)

// YearlyProjectionPoint is one immutable entry of a projection series. Year 0
// carries zero value; one point is appended per simulated year through the
// horizon. The series is the only output intended for charting.
type YearlyProjectionPoint struct {
	Year                int             `json:"year"`
	ContributionsToDate decimal.Decimal `json:"contributions_to_date"`
	GrossValue          decimal.Decimal `json:"gross_value"`
	TaxPaidToDate       decimal.Decimal `json:"tax_paid_to_date"`
	NetValue            decimal.Decimal `json:"net_value"`
}

// TrajectoryResult is the terminal outcome of one return assumption plus its
// year-by-year series
type TrajectoryResult struct {
	GrossValue    decimal.Decimal         `json:"gross_value"`
	NetValue      decimal.Decimal         `json:"net_value"`
	TaxPaid       decimal.Decimal         `json:"tax_paid"`
	ReturnPercent decimal.Decimal         `json:"return_percent"`
	Series        []YearlyProjectionPoint `json:"series"`
}

// DeathBenefit reports the guaranteed payout on death at the projection
// midpoint and at the horizon
type DeathBenefit struct {
	AtHalfway decimal.Decimal `json:"at_halfway"`
	AtEnd     decimal.Decimal `json:"at_end"`
}

// CostBreakdown decomposes an insurance product's costs over the full term
type CostBreakdown struct {
	AcquisitionCost          decimal.Decimal `json:"acquisition_cost"`
	AdminCost                decimal.Decimal `json:"admin_cost"`
	FundCost                 decimal.Decimal `json:"fund_cost"`
	GuaranteeCost            decimal.Decimal `json:"guarantee_cost"`
	RiskCost                 decimal.Decimal `json:"risk_cost"`
	RecurringPerYear         decimal.Decimal `json:"recurring_per_year"`
	TotalCosts               decimal.Decimal `json:"total_costs"`
	AsPercentOfContributions decimal.Decimal `json:"as_percent_of_contributions"`
	AnnualDragPercent        decimal.Decimal `json:"annual_drag_percent"`
}

// PensionPayout describes the annuitized payout of a basis pension
type PensionPayout struct {
	MonthlyPension       decimal.Decimal `json:"monthly_pension"`
	ErtragsanteilPercent decimal.Decimal `json:"ertragsanteil_percent"`
	AnnualTax            decimal.Decimal `json:"annual_tax"`
}

// ScenarioResult is the complete outcome of one insurance product projection
type ScenarioResult struct {
	ProductName  string           `json:"product_name"`
	Family       ProductFamily    `json:"family"`
	Guaranteed   TrajectoryResult `json:"guaranteed"`
	Expected     TrajectoryResult `json:"expected"`
	Optimistic   TrajectoryResult `json:"optimistic"`
	DeathBenefit DeathBenefit     `json:"death_benefit"`
	Costs        CostBreakdown    `json:"costs"`
	Pension      *PensionPayout   `json:"pension,omitempty"`
}

// VehicleSummary condenses one savings vehicle's expected outcome for
// side-by-side comparison. OptimisticNetValue carries the net payout under
// the vehicle's optimistic return assumption; everything else is expected.
type VehicleSummary struct {
	Name               string                  `json:"name"`
	GrossValue         decimal.Decimal         `json:"gross_value"`
	NetValue           decimal.Decimal         `json:"net_value"`
	OptimisticNetValue decimal.Decimal         `json:"optimistic_net_value"`
	TaxPaid            decimal.Decimal         `json:"tax_paid"`
	TotalCosts         decimal.Decimal         `json:"total_costs"`
	ReturnPercent      decimal.Decimal         `json:"return_percent"`
	Series             []YearlyProjectionPoint `json:"series"`
}

// DifferenceReport quantifies the gaps between the fund and insurance paths
type DifferenceReport struct {
	CostDifference   decimal.Decimal `json:"cost_difference"`
	TaxSavings       decimal.Decimal `json:"tax_savings"`
	GuaranteeBenefit decimal.Decimal `json:"guarantee_benefit"`
	NetDifference    decimal.Decimal `json:"net_difference"`
}

// Vehicle identifies a recommended savings vehicle
type Vehicle string

const (
	VehicleFund      Vehicle = "fund"
	VehicleInsurance Vehicle = "insurance"
	VehicleBlend     Vehicle = "blend"
)

// BlendRatio is the recommended allocation split when neither vehicle wins
// decisively
type BlendRatio struct {
	FundPercent      decimal.Decimal `json:"fund_percent"`
	InsurancePercent decimal.Decimal `json:"insurance_percent"`
}

// Recommendation carries the scored verdict of a comparison
type Recommendation struct {
	Vehicle        Vehicle         `json:"vehicle"`
	FundScore      decimal.Decimal `json:"fund_score"`
	InsuranceScore decimal.Decimal `json:"insurance_score"`
	BlendRatio     *BlendRatio     `json:"blend_ratio,omitempty"`
}

// ComparisonResult pairs a fund and an insurance projection under the same
// contribution plan and horizon
type ComparisonResult struct {
	Plan           ContributionPlan `json:"plan"`
	Fund           VehicleSummary   `json:"fund"`
	Insurance      VehicleSummary   `json:"insurance"`
	Difference     DifferenceReport `json:"difference"`
	Recommendation Recommendation   `json:"recommendation"`
}

// ComparisonSet is the result of comparing every configured product against
// the fund baseline
type ComparisonSet struct {
	Results     []ComparisonResult `json:"results"`
	BestProduct string             `json:"best_product"`
	Assumptions []string           `json:"assumptions"`
}
