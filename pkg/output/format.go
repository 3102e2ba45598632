// Package output provides utilities for formatting and displaying projection
// results and market data.
package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/property-forecast/internal/forecast"
	"github.com/iwvelando/property-forecast/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []forecast.Forecast) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		r := result.Result
		fmt.Fprintf(w, "--- Results for property %s (%s) ---\n", result.Name, result.Mode)
		if result.Location != "" {
			fmt.Fprintf(w, "Location: %s\n", result.Location)
		}
		fmt.Fprintf(w, "Purchase price: %s | Loan: %s | Initial investment: %s\n",
			format.Currency(r.PurchasePrice), format.Currency(r.LoanAmount), format.Currency(r.InitialInvestment))
		fmt.Fprintf(w, "Monthly mortgage: %s | Monthly expenses: %s | Monthly cash flow: %s\n",
			format.Currency(r.MonthlyMortgage), format.Currency(r.TotalMonthlyExpenses), format.Currency(r.MonthlyCashFlow))
		fmt.Fprintf(w, "Cap rate: %s | Cash-on-cash return: %s\n", format.Percent(r.CapRate), r.CashOnCashReturn)
		for _, note := range result.Notes[0] {
			fmt.Fprintf(w, "Note: %s\n", note)
		}
		fmt.Fprintf(w, "Year | Property Value | Loan Balance | Equity | Cumulative Cash Flow | Profit If Sold | ROI If Sold | Notes\n")
		fmt.Fprintf(w, "____ | ______________ | ____________ | ______ | ____________________ | ______________ | ___________ | _____\n")
		for _, year := range r.Years {
			_, _ = p.Fprintf(w, "%d | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f | %s | %s\n",
				year.Year, year.PropertyValue, year.LoanBalance, year.Equity, year.CumulativeCashFlow,
				year.ProfitIfSold, year.ROIIfSold, strings.Join(result.Notes[year.Year], ","))
		}
		fmt.Fprintf(w, "Total ROI: %s | Final profit: %s\n", r.TotalROI, format.Currency(r.FinalProfit))
		if i < len(results)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format with one row per
// property year.
func CsvFormat(w io.Writer, results []forecast.Forecast) {
	fmt.Fprintf(w, `"property","mode","year","propertyValue","loanBalance","equity","cashFlow","cumulativeCashFlow","profitIfSold","roiIfSold","notes"`)
	fmt.Fprintf(w, "\n")
	for _, result := range results {
		for _, year := range result.Result.Years {
			roi := ""
			if v, err := year.ROIIfSold.Value(); err == nil {
				roi = fmt.Sprintf("%.2f", v)
			}
			fmt.Fprintf(w, `"%s","%s","%d","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%s","%s"`,
				csvEscape(result.Name), result.Mode, year.Year, year.PropertyValue, year.LoanBalance, year.Equity,
				year.CashFlow, year.CumulativeCashFlow, year.ProfitIfSold, roi,
				csvEscape(strings.Join(yearNotes(result, year.Year), ",")))
			fmt.Fprintf(w, "\n")
		}
	}
}

// CsvString renders CsvFormat into a string.
func CsvString(results []forecast.Forecast) string {
	var buf bytes.Buffer
	CsvFormat(&buf, results)
	return buf.String()
}

// yearNotes folds purchase notes into the first year so no note is lost in
// the per-year CSV layout.
func yearNotes(result forecast.Forecast, year int) []string {
	if year != 1 {
		return result.Notes[year]
	}
	return append(append([]string(nil), result.Notes[0]...), result.Notes[1]...)
}

func csvEscape(value string) string {
	return strings.ReplaceAll(value, `"`, `""`)
}
