package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vrechner/vorsorge-calculator/internal/domain"
)

// CalculationEngine orchestrates projections and comparisons for a parsed
// configuration. The engine holds no per-run state; every call builds its own
// ledgers and series, so concurrent callers only need separate inputs.
type CalculationEngine struct {
	Projector  *ScenarioProjector
	Comparator *VehicleComparator
	Logger     Logger
}

// NewCalculationEngine creates an engine with default policy
func NewCalculationEngine() *CalculationEngine {
	projector := NewScenarioProjector()
	comparator := NewVehicleComparator()
	comparator.Projector = projector
	return &CalculationEngine{
		Projector:  projector,
		Comparator: comparator,
		Logger:     NopLogger{},
	}
}

// SetLogger sets the logger for the engine and its collaborators. If nil is
// provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.Projector.Logger = l
	ce.Comparator.Logger = l
}

// RunProjection projects a single named product from the configuration
func (ce *CalculationEngine) RunProjection(config *domain.Configuration, productName string) (*domain.ScenarioResult, error) {
	product, err := findProduct(config, productName)
	if err != nil {
		return nil, err
	}

	return ce.Projector.Project(ScenarioInput{
		Saver:   config.Saver,
		Plan:    config.Plan,
		Product: *product,
		Tax:     config.Tax,
	})
}

// RunComparisons compares every configured product against the fund baseline
// and names the product with the strongest insurance case
func (ce *CalculationEngine) RunComparisons(config *domain.Configuration) (*domain.ComparisonSet, error) {
	if len(config.Products) == 0 {
		return nil, domain.NewInvalidInput("products", "at least one product is required")
	}

	ce.Comparator.Weights = config.ScoringWeightsOrDefault()

	set := &domain.ComparisonSet{
		Results:     make([]domain.ComparisonResult, 0, len(config.Products)),
		Assumptions: config.GenerateAssumptions(),
	}

	bestScore := decimal.NewFromInt(-1)
	for _, product := range config.Products {
		result, err := ce.Comparator.Compare(ComparisonInput{
			Saver:   config.Saver,
			Plan:    config.Plan,
			Fund:    config.Fund,
			Product: product,
			Tax:     config.Tax,
		})
		if err != nil {
			return nil, fmt.Errorf("comparing product %s: %w", product.Name, err)
		}
		set.Results = append(set.Results, *result)

		if result.Recommendation.InsuranceScore.GreaterThan(bestScore) {
			bestScore = result.Recommendation.InsuranceScore
			set.BestProduct = product.Name
		}
	}

	return set, nil
}

func findProduct(config *domain.Configuration, name string) (*domain.InsuranceProduct, error) {
	if name == "" && len(config.Products) > 0 {
		return &config.Products[0], nil
	}
	for i := range config.Products {
		if config.Products[i].Name == name {
			return &config.Products[i], nil
		}
	}
	return nil, fmt.Errorf("product %q not found in configuration", name)
}
