package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxSettings is a versioned German tax rule set. Rule sets are explicit
// values injected into every calculation, never hidden package state, so that
// multiple tax years can coexist in one process. The Basiszins and the
// allowance change annually; everything else moves rarely.
type TaxSettings struct {
	Year                          int             `json:"year" yaml:"year"`
	CapitalGainsRatePercent       decimal.Decimal `json:"capital_gains_rate_percent" yaml:"capital_gains_rate_percent"`
	ChurchTaxEnabled              bool            `json:"church_tax_enabled" yaml:"church_tax_enabled"`
	ChurchTaxRatePercent          decimal.Decimal `json:"church_tax_rate_percent" yaml:"church_tax_rate_percent"`
	AllowanceAmount               decimal.Decimal `json:"allowance_amount" yaml:"allowance_amount"`
	VorabpauschaleBaseRatePercent decimal.Decimal `json:"vorabpauschale_base_rate_percent" yaml:"vorabpauschale_base_rate_percent"`
	PartialExemptionRatePercent   decimal.Decimal `json:"partial_exemption_rate_percent" yaml:"partial_exemption_rate_percent"`
	HalfIncomeTaxationEnabled     bool            `json:"half_income_taxation_enabled" yaml:"half_income_taxation_enabled"`
	PersonalTaxRatePercent        decimal.Decimal `json:"personal_tax_rate_percent" yaml:"personal_tax_rate_percent"`
}

// NewGermanTaxSettings2024 creates the 2024 rule set: 25% Abgeltungssteuer
// plus 5.5% solidarity surcharge (26.375% combined), 1,000 EUR
// Sparer-Pauschbetrag, 2.29% Basiszins, 15% Teilfreistellung for equity funds.
func NewGermanTaxSettings2024() TaxSettings {
	return TaxSettings{
		Year:                          2024,
		CapitalGainsRatePercent:       decimal.NewFromFloat(26.375),
		ChurchTaxEnabled:              false,
		ChurchTaxRatePercent:          decimal.NewFromInt(9),
		AllowanceAmount:               decimal.NewFromInt(1000),
		VorabpauschaleBaseRatePercent: decimal.NewFromFloat(2.29),
		PartialExemptionRatePercent:   decimal.NewFromInt(15),
		HalfIncomeTaxationEnabled:     true,
		PersonalTaxRatePercent:        decimal.NewFromInt(30),
	}
}

// NewGermanTaxSettings2023 creates the 2023 rule set. The Basiszins was 2.55%
// and the allowance had just been raised from 801 to 1,000 EUR.
func NewGermanTaxSettings2023() TaxSettings {
	settings := NewGermanTaxSettings2024()
	settings.Year = 2023
	settings.VorabpauschaleBaseRatePercent = decimal.NewFromFloat(2.55)
	return settings
}

// Validate checks all rates against the percent convention and the allowance
// floor
func (ts TaxSettings) Validate() error {
	rates := map[string]decimal.Decimal{
		"capital_gains_rate_percent":       ts.CapitalGainsRatePercent,
		"church_tax_rate_percent":          ts.ChurchTaxRatePercent,
		"vorabpauschale_base_rate_percent": ts.VorabpauschaleBaseRatePercent,
		"partial_exemption_rate_percent":   ts.PartialExemptionRatePercent,
		"personal_tax_rate_percent":        ts.PersonalTaxRatePercent,
	}
	for field, rate := range rates {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			return NewInvalidInput(field, "must be between 0 and 100")
		}
	}
	if ts.AllowanceAmount.IsNegative() {
		return NewInvalidInput("allowance_amount", "cannot be negative")
	}
	return nil
}

// TaxSettingsForYear returns the built-in rule set for a year
func TaxSettingsForYear(year int) (TaxSettings, error) {
	switch year {
	case 2023:
		return NewGermanTaxSettings2023(), nil
	case 0, 2024:
		return NewGermanTaxSettings2024(), nil
	default:
		return TaxSettings{}, fmt.Errorf("no built-in tax rule set for year %d", year)
	}
}
