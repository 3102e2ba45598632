package calculator

import (
	"fmt"
	"math"

	"github.com/iwvelando/property-forecast/pkg/constants"
)

// Series holds per-year values aligned with Labels, ready for charting.
// Undefined ROI values are nil.
type Series struct {
	Labels             []string   `json:"labels"`
	ProfitIfSold       []float64  `json:"profitIfSold"`
	CumulativeCashFlow []float64  `json:"cumulativeCashFlow"`
	Equity             []float64  `json:"equity"`
	LoanBalance        []float64  `json:"loanBalance"`
	ROIIfSold          []*float64 `json:"roiIfSold"`
}

// LineItem is one slice of the monthly cash breakdown.
type LineItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Series extracts the yearly chart series.
func (r *Result) Series() Series {
	n := len(r.Years)
	s := Series{
		Labels:             make([]string, n),
		ProfitIfSold:       make([]float64, n),
		CumulativeCashFlow: make([]float64, n),
		Equity:             make([]float64, n),
		LoanBalance:        make([]float64, n),
		ROIIfSold:          make([]*float64, n),
	}
	for i, year := range r.Years {
		s.Labels[i] = fmt.Sprintf("Year %d", year.Year)
		s.ProfitIfSold[i] = year.ProfitIfSold
		s.CumulativeCashFlow[i] = year.CumulativeCashFlow
		s.Equity[i] = year.Equity
		s.LoanBalance[i] = year.LoanBalance
		if roi, err := year.ROIIfSold.Value(); err == nil {
			s.ROIIfSold[i] = &roi
		}
	}
	return s
}

// ExpenseBreakdown splits the monthly rent into net cash flow (floored at
// zero) and the expense lines that consume it. Itemized results list
// management, maintenance and HOA when non-zero; blended results report the
// part of the blended expenses not covered by tax and insurance.
func (r *Result) ExpenseBreakdown() []LineItem {
	monthlyTax := r.PropertyTax / constants.MonthsPerYear
	monthlyInsurance := r.Insurance / constants.MonthsPerYear

	items := []LineItem{
		{Label: "Net Cash Flow", Amount: math.Max(0, r.MonthlyCashFlow)},
		{Label: "Mortgage", Amount: r.MonthlyMortgage},
		{Label: "Property Tax", Amount: monthlyTax},
		{Label: "Insurance", Amount: monthlyInsurance},
	}

	if !r.Itemized {
		return append(items, LineItem{Label: "Other Expenses", Amount: r.BlendedExpenses - monthlyTax - monthlyInsurance})
	}
	if r.ManagementFee > 0 {
		items = append(items, LineItem{Label: "Management", Amount: r.ManagementFee})
	}
	if r.Maintenance > 0 {
		items = append(items, LineItem{Label: "Maintenance", Amount: r.Maintenance})
	}
	if r.HOAFees > 0 {
		items = append(items, LineItem{Label: "HOA", Amount: r.HOAFees})
	}
	return items
}
