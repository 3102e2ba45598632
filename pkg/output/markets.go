package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/iwvelando/property-forecast/internal/market"
	"github.com/iwvelando/property-forecast/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReportDateLayout is the date format printed in a market report header.
const ReportDateLayout = "January 2, 2006"

// MarketTable outputs ranked markets as a human-readable table.
func MarketTable(w io.Writer, rows []market.Ranked) {
	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "Rank | Market | Median Price | Median Rent | Cap Rate | Appreciation | Rent Growth | Vacancy | Score\n")
	fmt.Fprintf(w, "____ | ______ | ____________ | ___________ | ________ | ____________ | ___________ | _______ | _____\n")
	for _, row := range rows {
		_, _ = p.Fprintf(w, "%d | %s | $%.0f | $%.0f | %.1f%% | %.1f%% | %.1f%% | %.1f%% | %d\n",
			row.Rank, row.Name, row.MedianPrice, row.MedianRent, row.CapRate,
			row.Appreciation, row.RentGrowth, row.Vacancy, row.Score)
	}
}

// MarketCsv outputs ranked markets in comma-separated value format.
func MarketCsv(w io.Writer, rows []market.Ranked) {
	fmt.Fprintf(w, `"rank","market","medianPrice","medianRent","capRate","appreciation","rentGrowth","vacancy","score"`)
	fmt.Fprintf(w, "\n")
	for _, row := range rows {
		fmt.Fprintf(w, `"%d","%s","%.2f","%.2f","%g","%g","%g","%g","%d"`,
			row.Rank, csvEscape(row.Name), row.MedianPrice, row.MedianRent, row.CapRate,
			row.Appreciation, row.RentGrowth, row.Vacancy, row.Score)
		fmt.Fprintf(w, "\n")
	}
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"currency": format.WholeCurrency,
	"rate":     func(v float64) string { return fmt.Sprintf("%g%%", v) },
	"fixed":    func(digits int, v float64) string { return fmt.Sprintf("%.*f", digits, v) },
	"join":     strings.Join,
}).Parse(`REAL ESTATE MARKET REPORT
Generated: {{.Generated}}
Market: {{.Market}}

KEY METRICS
-----------
Median Home Price: {{currency .Metrics.MedianPrice}}
Median Monthly Rent: {{currency .Metrics.MedianRent}}
Cap Rate: {{rate .Metrics.CapRate}}
Annual Appreciation: {{rate .Metrics.Appreciation}}
Rent Growth: {{rate .Metrics.RentGrowth}}
Vacancy Rate: {{rate .Metrics.Vacancy}}
Property Tax Rate: {{rate .Metrics.PropertyTax}}
Insurance Rate: {{rate .Metrics.Insurance}}

CURRENT RATES
-------------
30-Year Fixed Mortgage: {{rate .Rates.Current30Year}}
15-Year Fixed Mortgage: {{rate .Rates.Current15Year}}
FHA Rate: {{rate .Rates.FHA}}
VA Rate: {{rate .Rates.VA}}

INVESTMENT ANALYSIS
-------------------
Price-to-Rent Ratio: {{fixed 1 .PriceToRentRatio}}
Gross Rental Yield: {{fixed 2 .GrossRentalYield}}%
Investment Score: {{.Score}}/100

MARKET OUTLOOK
--------------
{{join .Outlook "\n\n"}}

RECOMMENDATIONS
---------------
For Buyers: {{.Buyers}}
For Investors: {{.Investors}}
For Renters: {{.Renters}}
`))

type reportData struct {
	market.Analysis
	Generated string
}

// Report renders a plain-text market report.
func Report(w io.Writer, a market.Analysis, generated time.Time) error {
	return reportTemplate.Execute(w, reportData{Analysis: a, Generated: generated.Format(ReportDateLayout)})
}
