// Package market holds regional real estate market data and the composite
// investment score used to rank markets.
package market

import (
	"math"

	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/mathutil"
)

// Score sub-score weights and caps.
const (
	capRateWeight      = 10.0
	capRateCap         = 50.0
	appreciationWeight = 3.0
	appreciationCap    = 15.0
	rentGrowthWeight   = 3.0
	rentGrowthCap      = 15.0
	vacancyBase        = 20.0
	vacancyWeight      = 2.0

	// MaxScore is the sum of every sub-score cap.
	MaxScore = 100
)

// Metrics are the aggregate figures of a market. All rates are percentages.
type Metrics struct {
	MedianPrice  float64 `yaml:"medianPrice" json:"medianPrice"`
	MedianRent   float64 `yaml:"medianRent" json:"medianRent"`
	PropertyTax  float64 `yaml:"propertyTax" json:"propertyTax"`
	Insurance    float64 `yaml:"insurance" json:"insurance"`
	Appreciation float64 `yaml:"appreciation" json:"appreciation"`
	RentGrowth   float64 `yaml:"rentGrowth" json:"rentGrowth"`
	Vacancy      float64 `yaml:"vacancy" json:"vacancy"`
	CapRate      float64 `yaml:"capRate" json:"capRate"`
}

// ScoreBreakdown is the capped contribution of each metric to a score.
type ScoreBreakdown struct {
	CapRate      float64 `json:"capRate"`
	Appreciation float64 `json:"appreciation"`
	RentGrowth   float64 `json:"rentGrowth"`
	Vacancy      float64 `json:"vacancy"`
}

// Total is the unrounded sum of the sub-scores.
func (b ScoreBreakdown) Total() float64 {
	return b.CapRate + b.Appreciation + b.RentGrowth + b.Vacancy
}

// Breakdown computes the individually capped sub-scores of m.
func Breakdown(m Metrics) ScoreBreakdown {
	return ScoreBreakdown{
		CapRate:      math.Min(m.CapRate*capRateWeight, capRateCap),
		Appreciation: math.Min(m.Appreciation*appreciationWeight, appreciationCap),
		RentGrowth:   math.Min(m.RentGrowth*rentGrowthWeight, rentGrowthCap),
		Vacancy:      math.Max(vacancyBase-m.Vacancy*vacancyWeight, 0),
	}
}

// Score rates a market from 0 to 100, rounding halves up. Inputs are
// expected to be non-negative; the total itself is not clamped.
func Score(m Metrics) int {
	return int(mathutil.RoundHalfUp(Breakdown(m).Total()))
}

// PriceToRentRatio is the median price over a year of median rent.
func (m Metrics) PriceToRentRatio() float64 {
	annualRent := m.MedianRent * constants.MonthsPerYear
	if annualRent == 0 {
		return 0
	}
	return m.MedianPrice / annualRent
}

// GrossRentalYield is a year of median rent as a percentage of median price.
func (m Metrics) GrossRentalYield() float64 {
	if m.MedianPrice == 0 {
		return 0
	}
	return m.MedianRent * constants.MonthsPerYear / m.MedianPrice * constants.PercentageMultiplier
}
