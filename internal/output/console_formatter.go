package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vrechner/vorsorge-calculator/internal/domain"
	moneypkg "github.com/vrechner/vorsorge-calculator/pkg/decimal"
)

// ConsoleFormatter renders the comparison set as plain text for terminals.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.ComparisonSet) ([]byte, error) {
	var b strings.Builder

	b.WriteString("RETIREMENT VEHICLE COMPARISON\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, result := range results.Results {
		c.writeComparison(&b, &result)
	}

	if results.BestProduct != "" {
		fmt.Fprintf(&b, "Strongest insurance case: %s\n\n", results.BestProduct)
	}

	b.WriteString("ASSUMPTIONS\n")
	for _, assumption := range results.Assumptions {
		fmt.Fprintf(&b, "  - %s\n", assumption)
	}

	return []byte(b.String()), nil
}

func (c ConsoleFormatter) writeComparison(b *strings.Builder, result *domain.ComparisonResult) {
	fmt.Fprintf(b, "%s vs %s\n", result.Fund.Name, result.Insurance.Name)
	fmt.Fprintf(b, "%s\n", strings.Repeat("-", 60))
	fmt.Fprintf(b, "  Contribution: %s monthly over %d years (%s total)\n",
		eur(result.Plan.MonthlyAmount), result.Plan.HorizonYears, eur(result.Plan.TotalContributions()))

	fmt.Fprintf(b, "  %-22s %16s %16s\n", "", "Fund", "Insurance")
	writeRow(b, "Gross value", result.Fund.GrossValue, result.Insurance.GrossValue)
	writeRow(b, "Tax paid", result.Fund.TaxPaid, result.Insurance.TaxPaid)
	writeRow(b, "Total costs", result.Fund.TotalCosts, result.Insurance.TotalCosts)
	writeRow(b, "Net payout", result.Fund.NetValue, result.Insurance.NetValue)
	writeRow(b, "Optimistic net payout", result.Fund.OptimisticNetValue, result.Insurance.OptimisticNetValue)

	fmt.Fprintf(b, "  Cost difference:   %s\n", eur(result.Difference.CostDifference))
	fmt.Fprintf(b, "  Tax savings:       %s\n", eur(result.Difference.TaxSavings))
	fmt.Fprintf(b, "  Guarantee benefit: %s\n", eur(result.Difference.GuaranteeBenefit))
	fmt.Fprintf(b, "  Net difference:    %s\n", eur(result.Difference.NetDifference))

	rec := result.Recommendation
	fmt.Fprintf(b, "  Scores: fund %s / insurance %s\n", rec.FundScore.StringFixed(1), rec.InsuranceScore.StringFixed(1))
	switch rec.Vehicle {
	case domain.VehicleBlend:
		fmt.Fprintf(b, "  Recommendation: blend (%s%% fund / %s%% insurance)\n\n",
			rec.BlendRatio.FundPercent.StringFixed(0), rec.BlendRatio.InsurancePercent.StringFixed(0))
	default:
		fmt.Fprintf(b, "  Recommendation: %s\n\n", rec.Vehicle)
	}
}

func writeRow(b *strings.Builder, label string, fund, insurance decimal.Decimal) {
	fmt.Fprintf(b, "  %-22s %16s %16s\n", label, eur(fund), eur(insurance))
}

func eur(amount decimal.Decimal) string {
	return moneypkg.NewMoneyFromDecimal(amount).Format()
}
