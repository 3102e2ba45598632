// Package projection models a rental property's financing and operations and
// simulates its year-by-year value, equity, cash flow and sale returns.
package projection

import (
	"github.com/iwvelando/property-forecast/pkg/constants"
)

// FundingProfile describes how a purchase is paid for.
type FundingProfile struct {
	PurchasePrice     float64 `json:"purchasePrice"`
	DownPayment       float64 `json:"downPayment"`
	LoanAmount        float64 `json:"loanAmount"`
	ClosingCosts      float64 `json:"closingCosts"`
	InitialRepairs    float64 `json:"initialRepairs"`
	InitialInvestment float64 `json:"initialInvestment"`
	InterestRate      float64 `json:"interestRate"`
	LoanTermYears     float64 `json:"loanTermYears"`
}

// NewFundingProfile derives the loan amount and initial investment from the
// purchase inputs.
func NewFundingProfile(purchasePrice, downPayment, closingCosts, initialRepairs, interestRate, loanTermYears float64) FundingProfile {
	return FundingProfile{
		PurchasePrice:     purchasePrice,
		DownPayment:       downPayment,
		LoanAmount:        purchasePrice - downPayment,
		ClosingCosts:      closingCosts,
		InitialRepairs:    initialRepairs,
		InitialInvestment: downPayment + closingCosts + initialRepairs,
		InterestRate:      interestRate,
		LoanTermYears:     loanTermYears,
	}
}

// OperatingProfile describes rental income and running costs. Tax and
// insurance are annual amounts; the remaining expenses are monthly.
//
// An itemized profile sums its individual expense lines against the
// vacancy-adjusted rent. A blended profile carries a single monthly
// operating expense figure against the gross rent; its tax and insurance
// informs NOI only.
type OperatingProfile struct {
	MonthlyRent          float64 `json:"monthlyRent"`
	VacancyRate          float64 `json:"vacancyRate"`
	EffectiveMonthlyRent float64 `json:"effectiveMonthlyRent"`
	PropertyTax          float64 `json:"propertyTax"`
	Insurance            float64 `json:"insurance"`
	ManagementFee        float64 `json:"managementFee"`
	Maintenance          float64 `json:"maintenance"`
	HOAFees              float64 `json:"hoaFees"`
	BlendedExpenses      float64 `json:"blendedExpenses,omitempty"`
	Itemized             bool    `json:"itemized"`
}

// MonthlyIncome is the rent the cash-flow calculation is based on.
func (o OperatingProfile) MonthlyIncome() float64 {
	if o.Itemized {
		return o.EffectiveMonthlyRent
	}
	return o.MonthlyRent
}

// MonthlyOperatingExpenses excludes debt service.
func (o OperatingProfile) MonthlyOperatingExpenses() float64 {
	if !o.Itemized {
		return o.BlendedExpenses
	}
	return o.PropertyTax/constants.MonthsPerYear + o.Insurance/constants.MonthsPerYear +
		o.ManagementFee + o.Maintenance + o.HOAFees
}

// AnnualNOI is annual rent less tax, insurance and maintenance, and for
// itemized profiles also management and HOA fees. A blended profile's
// expense ratio is not part of NOI.
func (o OperatingProfile) AnnualNOI() float64 {
	annualRent := o.MonthlyIncome() * constants.MonthsPerYear
	expenses := o.PropertyTax + o.Insurance + o.Maintenance*constants.MonthsPerYear
	if o.Itemized {
		expenses += o.ManagementFee*constants.MonthsPerYear + o.HOAFees*constants.MonthsPerYear
	}
	return annualRent - expenses
}

// Parameters controls the length and sale assumptions of a projection.
type Parameters struct {
	HoldingPeriodYears int     `json:"holdingPeriodYears"`
	AppreciationRate   float64 `json:"appreciationRate"`
	SellingCostPercent float64 `json:"sellingCostPercent"`
}
