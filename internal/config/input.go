package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vrechner/vorsorge-calculator/internal/domain"
	"github.com/vrechner/vorsorge-calculator/pkg/dateutil"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// rawConfiguration mirrors domain.Configuration but keeps the tax section
// optional: an input may name only a tax year and rely on the built-in rule
// set, overriding individual fields.
type rawConfiguration struct {
	Saver    rawSaver                  `yaml:"saver"`
	Plan     domain.ContributionPlan   `yaml:"plan"`
	Fund     *domain.FundAssumptions   `yaml:"fund"`
	Products []domain.InsuranceProduct `yaml:"products"`
	Tax      *taxOverrides             `yaml:"tax"`
	Weights  *domain.ScoringWeights    `yaml:"weights"`
}

// rawSaver extends the domain saver with an optional birth date. When present
// it derives the current age and, if the plan omits a horizon, a horizon
// running to the statutory retirement age.
type rawSaver struct {
	Name       string     `yaml:"name"`
	CurrentAge int        `yaml:"current_age"`
	BirthDate  *time.Time `yaml:"birth_date"`
}

// taxOverrides lets an input file override single fields of a built-in rule
// set. Pointer fields distinguish "absent" from explicit zeros.
type taxOverrides struct {
	Year                          int              `yaml:"year"`
	CapitalGainsRatePercent       *decimal.Decimal `yaml:"capital_gains_rate_percent"`
	ChurchTaxEnabled              *bool            `yaml:"church_tax_enabled"`
	ChurchTaxRatePercent          *decimal.Decimal `yaml:"church_tax_rate_percent"`
	AllowanceAmount               *decimal.Decimal `yaml:"allowance_amount"`
	VorabpauschaleBaseRatePercent *decimal.Decimal `yaml:"vorabpauschale_base_rate_percent"`
	PartialExemptionRatePercent   *decimal.Decimal `yaml:"partial_exemption_rate_percent"`
	HalfIncomeTaxationEnabled     *bool            `yaml:"half_income_taxation_enabled"`
	PersonalTaxRatePercent        *decimal.Decimal `yaml:"personal_tax_rate_percent"`
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse parses and validates a YAML configuration document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var raw rawConfiguration
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config, err := ip.resolve(&raw)
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// resolve fills defaults: the fund baseline and the tax rule set for the
// requested year, with per-field overrides applied on top.
func (ip *InputParser) resolve(raw *rawConfiguration) (*domain.Configuration, error) {
	config := &domain.Configuration{
		Saver:    domain.Saver{Name: raw.Saver.Name, CurrentAge: raw.Saver.CurrentAge},
		Plan:     raw.Plan,
		Products: raw.Products,
		Weights:  raw.Weights,
	}

	if raw.Saver.BirthDate != nil {
		now := time.Now()
		birthDate := *raw.Saver.BirthDate
		if config.Saver.CurrentAge == 0 {
			config.Saver.CurrentAge = dateutil.Age(birthDate, now)
		}
		if config.Plan.HorizonYears == 0 {
			retirement := birthDate.AddDate(dateutil.StatutoryRetirementAge(birthDate), 0, 0)
			config.Plan.HorizonYears = dateutil.YearsUntil(now, retirement)
		}
	}

	if raw.Fund != nil {
		config.Fund = *raw.Fund
	} else {
		config.Fund = domain.DefaultFundAssumptions()
	}

	year := 0
	if raw.Tax != nil {
		year = raw.Tax.Year
	}
	settings, err := domain.TaxSettingsForYear(year)
	if err != nil {
		return nil, err
	}
	if raw.Tax != nil {
		applyTaxOverrides(&settings, raw.Tax)
	}
	config.Tax = settings

	return config, nil
}

func applyTaxOverrides(settings *domain.TaxSettings, overrides *taxOverrides) {
	if overrides.CapitalGainsRatePercent != nil {
		settings.CapitalGainsRatePercent = *overrides.CapitalGainsRatePercent
	}
	if overrides.ChurchTaxEnabled != nil {
		settings.ChurchTaxEnabled = *overrides.ChurchTaxEnabled
	}
	if overrides.ChurchTaxRatePercent != nil {
		settings.ChurchTaxRatePercent = *overrides.ChurchTaxRatePercent
	}
	if overrides.AllowanceAmount != nil {
		settings.AllowanceAmount = *overrides.AllowanceAmount
	}
	if overrides.VorabpauschaleBaseRatePercent != nil {
		settings.VorabpauschaleBaseRatePercent = *overrides.VorabpauschaleBaseRatePercent
	}
	if overrides.PartialExemptionRatePercent != nil {
		settings.PartialExemptionRatePercent = *overrides.PartialExemptionRatePercent
	}
	if overrides.HalfIncomeTaxationEnabled != nil {
		settings.HalfIncomeTaxationEnabled = *overrides.HalfIncomeTaxationEnabled
	}
	if overrides.PersonalTaxRatePercent != nil {
		settings.PersonalTaxRatePercent = *overrides.PersonalTaxRatePercent
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Saver.Validate(); err != nil {
		return fmt.Errorf("saver validation failed: %w", err)
	}
	if err := config.Plan.Validate(); err != nil {
		return fmt.Errorf("plan validation failed: %w", err)
	}
	if err := config.Fund.Validate(); err != nil {
		return fmt.Errorf("fund assumptions validation failed: %w", err)
	}
	if err := config.Tax.Validate(); err != nil {
		return fmt.Errorf("tax settings validation failed: %w", err)
	}

	if len(config.Products) == 0 {
		return fmt.Errorf("no products provided")
	}
	seen := make(map[string]bool, len(config.Products))
	for i, product := range config.Products {
		if err := product.Validate(); err != nil {
			return fmt.Errorf("product %d validation failed: %w", i, err)
		}
		if seen[product.Name] {
			return fmt.Errorf("duplicate product name %q", product.Name)
		}
		seen[product.Name] = true
	}

	return nil
}

// CreateExampleConfiguration creates an example configuration
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Saver: domain.Saver{
			Name:       "Alex",
			CurrentAge: 32,
		},
		Plan: domain.ContributionPlan{
			MonthlyAmount: decimal.NewFromInt(300),
			HorizonYears:  30,
		},
		Fund: domain.DefaultFundAssumptions(),
		Products: []domain.InsuranceProduct{
			{
				Name:                          "Fondsrente Klassik",
				Family:                        domain.FamilyFundPolicy,
				GuaranteedAnnualReturnPercent: decimal.NewFromFloat(0.25),
				Costs: domain.CostSchedule{
					AcquisitionRatePercent:     decimal.NewFromInt(4),
					AnnualAdminRatePercent:     decimal.NewFromFloat(0.9),
					AnnualFundRatePercent:      decimal.NewFromFloat(1.2),
					AnnualGuaranteeRatePercent: decimal.NewFromFloat(0.3),
					AnnualRiskRatePercent:      decimal.NewFromFloat(0.15),
				},
				Guarantee: domain.GuaranteeTerms{
					GuaranteeLevelPercent:  decimal.NewFromInt(80),
					DeathBenefitMultiplier: decimal.NewFromFloat(1.0),
				},
			},
			{
				Name:                          "Basisrente Invest",
				Family:                        domain.FamilyBasisPension,
				GuaranteedAnnualReturnPercent: decimal.Zero,
				Costs: domain.CostSchedule{
					AcquisitionRatePercent: decimal.NewFromFloat(2.5),
					AnnualAdminRatePercent: decimal.NewFromFloat(0.7),
					AnnualFundRatePercent:  decimal.NewFromFloat(0.8),
				},
				Guarantee: domain.GuaranteeTerms{
					GuaranteeLevelPercent:  decimal.Zero,
					DeathBenefitMultiplier: decimal.NewFromFloat(1.0),
				},
			},
		},
		Tax: domain.NewGermanTaxSettings2024(),
	}
}
