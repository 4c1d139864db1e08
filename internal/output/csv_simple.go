package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/vrechner/vorsorge-calculator/internal/domain"
)

// CSVSeriesExporter writes the year-by-year projection series of every
// comparison, one row per vehicle and year, for charting.
type CSVSeriesExporter struct{}

func (c CSVSeriesExporter) Name() string { return "csv" }

func (c CSVSeriesExporter) Format(results *domain.ComparisonSet) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Product", "Vehicle", "Year", "ContributionsToDate", "GrossValue", "TaxPaidToDate", "NetValue"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, result := range results.Results {
		if err := writeSeries(w, result.Insurance.Name, "fund", result.Fund.Series); err != nil {
			return nil, err
		}
		if err := writeSeries(w, result.Insurance.Name, "insurance", result.Insurance.Series); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSeries(w *csv.Writer, product, vehicle string, series []domain.YearlyProjectionPoint) error {
	for _, point := range series {
		row := []string{
			product,
			vehicle,
			strconv.Itoa(point.Year),
			point.ContributionsToDate.StringFixed(2),
			point.GrossValue.StringFixed(2),
			point.TaxPaidToDate.StringFixed(2),
			point.NetValue.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
