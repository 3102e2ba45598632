package calculator

import (
	"github.com/iwvelando/property-forecast/internal/projection"
)

// Result is the full outcome of a projection. The embedded profiles are the
// normalized inputs; Years is chronological with one entry per holding year.
type Result struct {
	Mode Mode `json:"mode"`
	projection.FundingProfile
	projection.OperatingProfile
	projection.Parameters
	projection.SteadyState
	Years       []projection.YearSnapshot `json:"years"`
	TotalROI    projection.Return         `json:"totalROI"`
	FinalProfit float64                   `json:"finalProfit"`
}

// Compute validates and normalizes inputs for the given mode and runs the
// projection. A *ValidationError is returned when required inputs are
// missing or out of range.
func Compute(inputs RawInputs, mode Mode) (*Result, error) {
	normalize, err := normalizerFor(mode)
	if err != nil {
		return nil, err
	}

	p, err := normalize(inputs)
	if err != nil {
		return nil, err
	}

	years, err := projection.Project(p.funding, p.operating, p.params)
	if err != nil {
		return nil, err
	}

	final := years[len(years)-1]
	return &Result{
		Mode:             mode,
		FundingProfile:   p.funding,
		OperatingProfile: p.operating,
		Parameters:       p.params,
		SteadyState:      projection.Steady(p.funding, p.operating),
		Years:            years,
		TotalROI:         final.ROIIfSold,
		FinalProfit:      final.ProfitIfSold,
	}, nil
}
