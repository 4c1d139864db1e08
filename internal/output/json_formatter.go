package output

import (
	"github.com/goccy/go-json"

	"github.com/vrechner/vorsorge-calculator/internal/domain"
)

// JSONFormatter serializes the comparison set as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.ComparisonSet) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
