package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrechner/vorsorge-calculator/internal/domain"
	"github.com/vrechner/vorsorge-calculator/pkg/dateutil"
)

const validYAML = `
saver:
  name: Alex
  current_age: 32
plan:
  monthly_amount: 300
  horizon_years: 30
products:
  - name: Fondsrente Klassik
    family: fund_policy
    costs:
      acquisition_rate_percent: 4
      annual_admin_rate_percent: 0.9
      annual_fund_rate_percent: 1.2
      annual_guarantee_rate_percent: 0.3
      annual_risk_rate_percent: 0.15
    guarantee:
      guarantee_level_percent: 80
      death_benefit_multiplier: 1.0
`

func TestParseValidConfiguration(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, "Alex", config.Saver.Name)
	assert.Equal(t, 32, config.Saver.CurrentAge)
	assert.True(t, config.Plan.MonthlyAmount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 30, config.Plan.HorizonYears)

	require.Len(t, config.Products, 1)
	product := config.Products[0]
	assert.Equal(t, domain.FamilyFundPolicy, product.Family)
	assert.True(t, product.Costs.EffectiveAnnualCostRatePercent().Equal(decimal.NewFromFloat(2.55)))
	assert.True(t, product.Guarantee.GuaranteeLevelPercent.Equal(decimal.NewFromInt(80)))
}

func TestParseAppliesDefaults(t *testing.T) {
	// Absent fund and tax sections fall back to the baseline assumptions and
	// the current built-in rule set.
	parser := NewInputParser()

	config, err := parser.Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.True(t, config.Fund.ExpectedAnnualReturnPercent.Equal(decimal.NewFromInt(7)))
	assert.True(t, config.Fund.AnnualFeePercent.Equal(decimal.NewFromFloat(0.3)))

	assert.Equal(t, 2024, config.Tax.Year)
	assert.True(t, config.Tax.CapitalGainsRatePercent.Equal(decimal.NewFromFloat(26.375)))
	assert.True(t, config.Tax.AllowanceAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, config.Tax.HalfIncomeTaxationEnabled)
}

func TestParseTaxOverrides(t *testing.T) {
	// A tax section names a year and overrides single fields; everything else
	// comes from the built-in rule set.
	parser := NewInputParser()

	config, err := parser.Parse([]byte(validYAML + `
tax:
  year: 2023
  allowance_amount: 801
  church_tax_enabled: true
`))
	require.NoError(t, err)

	assert.Equal(t, 2023, config.Tax.Year)
	assert.True(t, config.Tax.VorabpauschaleBaseRatePercent.Equal(decimal.NewFromFloat(2.55)))
	assert.True(t, config.Tax.AllowanceAmount.Equal(decimal.NewFromInt(801)))
	assert.True(t, config.Tax.ChurchTaxEnabled)
	// Untouched fields keep the rule set values.
	assert.True(t, config.Tax.CapitalGainsRatePercent.Equal(decimal.NewFromFloat(26.375)))
}

func TestParseBirthDateDerivesAgeAndHorizon(t *testing.T) {
	// A birth date replaces both the explicit age and, when absent, the
	// horizon: the plan runs to the statutory retirement age.
	parser := NewInputParser()

	config, err := parser.Parse([]byte(`
saver:
  name: Alex
  birth_date: 1990-06-15
plan:
  monthly_amount: 300
products:
  - name: P
    family: fund_policy
    guarantee: {guarantee_level_percent: 0, death_benefit_multiplier: 1.0}
`))
	require.NoError(t, err)

	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	assert.Equal(t, dateutil.Age(birth, now), config.Saver.CurrentAge)

	retirement := birth.AddDate(dateutil.StatutoryRetirementAge(birth), 0, 0)
	assert.Equal(t, dateutil.YearsUntil(now, retirement), config.Plan.HorizonYears)

	// An explicit age wins over the derived one.
	config, err = parser.Parse([]byte(`
saver:
  name: Alex
  birth_date: 1990-06-15
  current_age: 40
plan:
  monthly_amount: 300
  horizon_years: 20
products:
  - name: P
    family: fund_policy
    guarantee: {guarantee_level_percent: 0, death_benefit_multiplier: 1.0}
`))
	require.NoError(t, err)
	assert.Equal(t, 40, config.Saver.CurrentAge)
	assert.Equal(t, 20, config.Plan.HorizonYears)
}

func TestParseUnknownTaxYear(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.Parse([]byte(validYAML + `
tax:
  year: 1999
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1999")
}

func TestParseRejectsInvalidConfigurations(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name string
		yaml string
	}{
		{
			"no products",
			`
saver: {name: Alex, current_age: 32}
plan: {monthly_amount: 300, horizon_years: 30}
`,
		},
		{
			"negative contribution",
			`
saver: {name: Alex, current_age: 32}
plan: {monthly_amount: -300, horizon_years: 30}
products:
  - name: P
    family: fund_policy
    guarantee: {guarantee_level_percent: 0, death_benefit_multiplier: 1.0}
`,
		},
		{
			"unknown product family",
			`
saver: {name: Alex, current_age: 32}
plan: {monthly_amount: 300, horizon_years: 30}
products:
  - name: P
    family: riester
    guarantee: {guarantee_level_percent: 0, death_benefit_multiplier: 1.0}
`,
		},
		{
			"duplicate product names",
			`
saver: {name: Alex, current_age: 32}
plan: {monthly_amount: 300, horizon_years: 30}
products:
  - name: P
    family: fund_policy
    guarantee: {guarantee_level_percent: 0, death_benefit_multiplier: 1.0}
  - name: P
    family: basis_pension
    guarantee: {guarantee_level_percent: 0, death_benefit_multiplier: 1.0}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.Parse([]byte("saver: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o644))

	parser := NewInputParser()
	config, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Alex", config.Saver.Name)

	_, err = parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCreateExampleConfiguration(t *testing.T) {
	// The example must survive its own validation round trip.
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	require.NoError(t, parser.ValidateConfiguration(config))
	require.Len(t, config.Products, 2)
	assert.Equal(t, domain.FamilyFundPolicy, config.Products[0].Family)
	assert.Equal(t, domain.FamilyBasisPension, config.Products[1].Family)
}
