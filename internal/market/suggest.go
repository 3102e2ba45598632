package market

import (
	"fmt"
	"strings"

	"github.com/iwvelando/property-forecast/pkg/mathutil"
)

// Loan types accepted by MortgageRate.
const (
	LoanThirtyYear  = "30year"
	LoanFifteenYear = "15year"
	LoanFHA         = "fha"
	LoanVA          = "va"
	LoanJumbo       = "jumbo"
)

// DefaultPropertyType and DefaultBuyerType apply when none is given.
const (
	DefaultPropertyType = "Single Family"
	DefaultBuyerType    = "First-Time Buyer"
)

// fallbackRentGrowth is used for locations outside the table.
const fallbackRentGrowth = 3.0

// Spread bounds around a suggested value.
const (
	priceLowFactor  = 0.85
	priceHighFactor = 1.15
	rentLowFactor   = 0.9
	rentHighFactor  = 1.1
)

// MortgageRate returns the current national rate for a loan type. Unknown
// or empty types get the 30-year fixed rate.
func (t *Table) MortgageRate(loanType string) float64 {
	rates := t.fixture.National.Mortgage
	switch strings.ToLower(strings.TrimSpace(loanType)) {
	case LoanFifteenYear:
		return rates.Current15Year
	case LoanFHA:
		return rates.FHA
	case LoanVA:
		return rates.VA
	case LoanJumbo:
		return rates.Jumbo
	}
	return rates.Current30Year
}

// LocationMetrics are the return and risk figures used to seed inputs.
type LocationMetrics struct {
	CapRate      float64 `json:"capRate"`
	Appreciation float64 `json:"appreciation"`
	RentGrowth   float64 `json:"rentGrowth"`
	Vacancy      float64 `json:"vacancy"`
	National     bool    `json:"national"`
}

// MetricsFor returns a location's metrics, or national norms when the
// location is not in the table.
func (t *Table) MetricsFor(location string) LocationMetrics {
	r, err := t.Region(location)
	if err != nil {
		national := t.fixture.National
		return LocationMetrics{
			CapRate:      national.Returns.AvgCapRate,
			Appreciation: national.Returns.AvgAppreciation,
			RentGrowth:   fallbackRentGrowth,
			Vacancy:      national.Expenses.Vacancy,
			National:     true,
		}
	}
	return LocationMetrics{
		CapRate:      r.CapRate,
		Appreciation: r.Appreciation,
		RentGrowth:   r.RentGrowth,
		Vacancy:      r.Vacancy,
	}
}

// Range is a suggested value with a low and high bound. Median is the
// unscaled regional or neighborhood median it was derived from.
type Range struct {
	Suggested float64 `json:"suggested"`
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	Median    float64 `json:"median"`
	Source    string  `json:"source"`
}

func newRange(median, multiplier, lowFactor, highFactor float64, source string) Range {
	base := median * multiplier
	return Range{
		Suggested: mathutil.RoundHalfUp(base),
		Low:       mathutil.RoundHalfUp(base * lowFactor),
		High:      mathutil.RoundHalfUp(base * highFactor),
		Median:    median,
		Source:    source,
	}
}

// medians resolves the base price and rent for a location, preferring the
// neighborhood when it exists.
func (t *Table) medians(location, neighborhood string) (price, rent float64, source string, err error) {
	r, err := t.Region(location)
	if err != nil {
		return 0, 0, "", err
	}
	price, rent, source = r.MedianPrice, r.MedianRent, r.Name
	if strings.TrimSpace(neighborhood) != "" {
		if n, ok := t.Neighborhood(location, neighborhood); ok {
			price, rent = n.MedianPrice, n.MedianRent
		}
		source = fmt.Sprintf("%s, %s", strings.TrimSpace(neighborhood), r.Name)
	}
	return price, rent, source, nil
}

func (t *Table) multipliers(propertyType string) PropertyType {
	if strings.TrimSpace(propertyType) == "" {
		propertyType = DefaultPropertyType
	}
	p, ok := t.PropertyType(propertyType)
	if !ok {
		return PropertyType{Name: propertyType, PriceMultiplier: 1, RentMultiplier: 1, ExpenseMultiplier: 1}
	}
	if p.PriceMultiplier == 0 {
		p.PriceMultiplier = 1
	}
	if p.RentMultiplier == 0 {
		p.RentMultiplier = 1
	}
	return p
}

// SuggestedPurchasePrice scales the location's median price by the property
// type multiplier with a ±15% range.
func (t *Table) SuggestedPurchasePrice(location, propertyType, neighborhood string) (Range, error) {
	price, _, source, err := t.medians(location, neighborhood)
	if err != nil {
		return Range{}, err
	}
	return newRange(price, t.multipliers(propertyType).PriceMultiplier, priceLowFactor, priceHighFactor, source), nil
}

// SuggestedRent scales the location's median rent by the property type
// multiplier with a ±10% range.
func (t *Table) SuggestedRent(location, propertyType, neighborhood string) (Range, error) {
	_, rent, source, err := t.medians(location, neighborhood)
	if err != nil {
		return Range{}, err
	}
	return newRange(rent, t.multipliers(propertyType).RentMultiplier, rentLowFactor, rentHighFactor, source), nil
}

// ExpenseEstimate holds annual expense amounts for a purchase price and the
// rates they were derived from.
type ExpenseEstimate struct {
	PropertyTax     float64 `json:"propertyTax"`
	Insurance       float64 `json:"insurance"`
	Maintenance     float64 `json:"maintenance"`
	PropertyTaxRate float64 `json:"propertyTaxRate"`
	InsuranceRate   float64 `json:"insuranceRate"`
	MaintenanceRate float64 `json:"maintenanceRate"`
}

// ExpenseEstimates uses the location's tax and insurance rates, falling back
// to national norms. Maintenance always uses the national rate.
func (t *Table) ExpenseEstimates(purchasePrice float64, location string) ExpenseEstimate {
	national := t.fixture.National.Expenses
	taxRate, insuranceRate := national.PropertyTax, national.Insurance
	if r, err := t.Region(location); err == nil {
		taxRate, insuranceRate = r.PropertyTax, r.Insurance
	}
	return ExpenseEstimate{
		PropertyTax:     mathutil.RoundHalfUp(mathutil.ApplyPercentage(purchasePrice, taxRate)),
		Insurance:       mathutil.RoundHalfUp(mathutil.ApplyPercentage(purchasePrice, insuranceRate)),
		Maintenance:     mathutil.RoundHalfUp(mathutil.ApplyPercentage(purchasePrice, national.Maintenance)),
		PropertyTaxRate: taxRate,
		InsuranceRate:   insuranceRate,
		MaintenanceRate: national.Maintenance,
	}
}

// FinancingSuggestions returns the guidance for a buyer type, falling back
// to the first-time buyer profile.
func (t *Table) FinancingSuggestions(buyerType string) BuyerProfile {
	var fallback BuyerProfile
	for _, p := range t.fixture.BuyerProfiles {
		if strings.EqualFold(p.Name, strings.TrimSpace(buyerType)) {
			return p
		}
		if p.Name == DefaultBuyerType {
			fallback = p
		}
	}
	return fallback
}

// SuggestionRequest describes what a caller knows about a prospective purchase.
type SuggestionRequest struct {
	Location      string
	PropertyType  string
	Neighborhood  string
	PurchasePrice float64
	BuyerType     string
	LoanType      string
}

// Suggestions bundles every input suggestion for a request. Price and rent
// ranges are nil when the location is not in the table.
type Suggestions struct {
	Location      string          `json:"location"`
	PurchasePrice *Range          `json:"purchasePrice"`
	Rent          *Range          `json:"rent"`
	MortgageRate  float64         `json:"mortgageRate"`
	RateTrend     string          `json:"rateTrend"`
	Metrics       LocationMetrics `json:"metrics"`
	Expenses      ExpenseEstimate `json:"expenses"`
	Financing     BuyerProfile    `json:"financing"`
}

// Suggest assembles suggestions for a request. Expense estimates are based
// on the request's purchase price, or the suggested price when none is given.
func (t *Table) Suggest(req SuggestionRequest) Suggestions {
	s := Suggestions{
		Location:     req.Location,
		MortgageRate: t.MortgageRate(req.LoanType),
		RateTrend:    t.fixture.National.Mortgage.Trend,
		Metrics:      t.MetricsFor(req.Location),
		Financing:    t.FinancingSuggestions(req.BuyerType),
	}
	if s.Location == "" || s.Metrics.National {
		s.Location = NationalAverageName
	}

	price := req.PurchasePrice
	if r, err := t.SuggestedPurchasePrice(req.Location, req.PropertyType, req.Neighborhood); err == nil {
		s.PurchasePrice = &r
		if price <= 0 {
			price = r.Suggested
		}
	}
	if r, err := t.SuggestedRent(req.Location, req.PropertyType, req.Neighborhood); err == nil {
		s.Rent = &r
	}
	s.Expenses = t.ExpenseEstimates(price, req.Location)
	return s
}
