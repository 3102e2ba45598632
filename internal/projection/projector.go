package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/loans"
	"github.com/iwvelando/property-forecast/pkg/mathutil"
)

// ErrInvalidHoldingPeriod is returned for projections shorter than one year.
var ErrInvalidHoldingPeriod = errors.New("holding period must be at least one year")

// ErrHoldingPeriodTooLong is returned for projections beyond MaxHoldingPeriodYears.
var ErrHoldingPeriodTooLong = fmt.Errorf("holding period must be at most %d years", constants.MaxHoldingPeriodYears)

// SteadyState holds the monthly and annual figures of a stabilized property.
type SteadyState struct {
	MonthlyMortgage      float64 `json:"monthlyMortgage"`
	TotalMonthlyExpenses float64 `json:"totalMonthlyExpenses"`
	MonthlyCashFlow      float64 `json:"monthlyCashFlow"`
	AnnualCashFlow       float64 `json:"annualCashFlow"`
	CashOnCashReturn     Return  `json:"cashOnCashReturn"`
	CapRate              float64 `json:"capRate"`
}

// YearSnapshot is the state of the investment at the end of a holding year,
// including the outcome of a hypothetical sale at that point.
type YearSnapshot struct {
	Year               int     `json:"year"`
	PropertyValue      float64 `json:"propertyValue"`
	LoanBalance        float64 `json:"loanBalance"`
	Equity             float64 `json:"equity"`
	CashFlow           float64 `json:"cashFlow"`
	CumulativeCashFlow float64 `json:"cumulativeCashFlow"`
	ProfitIfSold       float64 `json:"profitIfSold"`
	ROIIfSold          Return  `json:"roiIfSold"`
}

// Steady computes the debt service, cash flow and yield ratios for the
// given funding and operations.
func Steady(funding FundingProfile, operating OperatingProfile) SteadyState {
	var s SteadyState
	s.MonthlyMortgage = loans.MonthlyPayment(funding.LoanAmount, funding.InterestRate, funding.LoanTermYears)
	s.TotalMonthlyExpenses = s.MonthlyMortgage + operating.MonthlyOperatingExpenses()
	s.MonthlyCashFlow = operating.MonthlyIncome() - s.TotalMonthlyExpenses
	s.AnnualCashFlow = s.MonthlyCashFlow * constants.MonthsPerYear
	s.CashOnCashReturn = ReturnOn(s.AnnualCashFlow, funding.InitialInvestment)
	if funding.PurchasePrice != 0 {
		s.CapRate = operating.AnnualNOI() / funding.PurchasePrice * constants.PercentageMultiplier
	}
	return s
}

// Project simulates each year of the holding period. The annual cash flow
// does not escalate; every snapshot carries the steady-state figure.
func Project(funding FundingProfile, operating OperatingProfile, params Parameters) ([]YearSnapshot, error) {
	if params.HoldingPeriodYears < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidHoldingPeriod, params.HoldingPeriodYears)
	}
	if params.HoldingPeriodYears > constants.MaxHoldingPeriodYears {
		return nil, fmt.Errorf("%w, got %d", ErrHoldingPeriodTooLong, params.HoldingPeriodYears)
	}

	steady := Steady(funding, operating)
	monthlyRate := loans.MonthlyRate(funding.InterestRate)
	growth := 1 + params.AppreciationRate/constants.PercentageMultiplier

	snapshots := make([]YearSnapshot, 0, params.HoldingPeriodYears)
	remainingBalance := funding.LoanAmount
	for year := 1; year <= params.HoldingPeriodYears; year++ {
		snap := YearSnapshot{Year: year}
		snap.PropertyValue = funding.PurchasePrice * math.Pow(growth, float64(year))

		amortized := loans.AmortizeYear(remainingBalance, steady.MonthlyMortgage, monthlyRate)
		remainingBalance = math.Max(0, amortized.ClosingBalance)
		snap.LoanBalance = remainingBalance

		snap.Equity = snap.PropertyValue - snap.LoanBalance
		snap.CashFlow = steady.AnnualCashFlow
		snap.CumulativeCashFlow = steady.AnnualCashFlow * float64(year)

		sellingCosts := mathutil.ApplyPercentage(snap.PropertyValue, params.SellingCostPercent)
		netSaleProceeds := snap.PropertyValue - snap.LoanBalance - sellingCosts
		snap.ProfitIfSold = netSaleProceeds + snap.CumulativeCashFlow - funding.InitialInvestment
		snap.ROIIfSold = ReturnOn(snap.ProfitIfSold, funding.InitialInvestment)

		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}
