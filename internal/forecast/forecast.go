// Package forecast runs the projection for every active property in a
// portfolio configuration.
package forecast

import (
	"fmt"

	"github.com/iwvelando/property-forecast/internal/calculator"
	"github.com/iwvelando/property-forecast/internal/config"
	"github.com/iwvelando/property-forecast/pkg/format"
	"github.com/iwvelando/property-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// Forecast holds all information related to a specific property projection.
// Notes are keyed by holding year; year 0 holds notes about the purchase.
type Forecast struct {
	Name     string             `json:"name"`
	Mode     calculator.Mode    `json:"mode"`
	Location string             `json:"location,omitempty"`
	Result   *calculator.Result `json:"result"`
	Notes    map[int][]string   `json:"notes,omitempty"`
}

// GetForecast processes the projections for all active properties.
func GetForecast(logger *zap.Logger, conf config.Configuration) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Forecast
	for _, property := range conf.Properties {
		if !property.Active {
			logger.Debug(fmt.Sprintf("skipping property %s because it is inactive", property.Name),
				zap.String("op", "forecast.GetForecast"),
			)
			continue
		}

		mode, err := property.CalculationMode()
		if err != nil {
			return results, fmt.Errorf("property %s: %w", property.Name, err)
		}

		result, err := calculator.Compute(property.Inputs, mode)
		if err != nil {
			return results, fmt.Errorf("property %s: %w", property.Name, err)
		}

		logger.Debug("projected property",
			zap.String("op", "forecast.GetForecast"),
			zap.String("property", property.Name),
			zap.String("mode", string(mode)),
			zap.Int("years", len(result.Years)),
			zap.Float64("monthlyCashFlow", result.MonthlyCashFlow),
		)

		results = append(results, Forecast{
			Name:     property.Name,
			Mode:     mode,
			Location: property.Location,
			Result:   result,
			Notes:    notesFor(result),
		})
	}

	return results, nil
}

func notesFor(result *calculator.Result) map[int][]string {
	notes := make(map[int][]string)
	if result.MonthlyCashFlow < 0 {
		notes[0] = append(notes[0], fmt.Sprintf("negative monthly cash flow of %s", format.Currency(result.MonthlyCashFlow)))
	}
	if !result.TotalROI.Defined() {
		notes[0] = append(notes[0], "ROI undefined with no initial investment")
	}
	if result.LoanAmount > 0 {
		for _, year := range result.Years {
			if mathutil.IsZero(year.LoanBalance) {
				notes[year.Year] = append(notes[year.Year], "loan paid off")
				break
			}
		}
	}
	return notes
}
