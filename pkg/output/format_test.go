package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/property-forecast/internal/calculator"
	"github.com/iwvelando/property-forecast/internal/forecast"
	"github.com/iwvelando/property-forecast/internal/market"
	"github.com/iwvelando/property-forecast/internal/projection"
)

func starterForecast(t *testing.T) forecast.Forecast {
	t.Helper()
	result, err := calculator.Compute(calculator.RawInputs{
		PurchasePrice:         calculator.Float(300000),
		DownPaymentPercent:    calculator.Float(20),
		InterestRate:          calculator.Float(6),
		LoanTerm:              calculator.Float(30),
		MonthlyRent:           calculator.Float(2000),
		AnnualExpensesPercent: calculator.Float(35),
	}, calculator.ModeSimple)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	return forecast.Forecast{
		Name:     "starter rental",
		Mode:     calculator.ModeSimple,
		Location: "Chicago, IL",
		Result:   result,
		Notes: map[int][]string{
			0: {"negative monthly cash flow of -$138.92"},
			3: {"refinance considered"},
		},
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, []forecast.Forecast{starterForecast(t)})
	output := buf.String()

	expected := []string{
		"--- Results for property starter rental (simple) ---",
		"Location: Chicago, IL",
		"Purchase price: $300,000.00 | Loan: $240,000.00",
		"Monthly mortgage: $1,438.92",
		"Monthly cash flow: -$138.92",
		"Cap rate: 6.35%",
		"Note: negative monthly cash flow of -$138.92",
		"Year | Property Value | Loan Balance | Equity | Cumulative Cash Flow | Profit If Sold | ROI If Sold | Notes",
		"____ | ______________ | ____________ | ______ | ____________________ | ______________ | ___________ | _____",
		"refinance considered",
		"Total ROI: ",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat output missing %q\n%s", want, output)
		}
	}

	rows := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, " | $") && !strings.HasPrefix(line, "Purchase") && !strings.HasPrefix(line, "Monthly") {
			rows++
		}
	}
	if rows != 10 {
		t.Errorf("Expected 10 year rows, got %d", rows)
	}
}

func TestPrettyFormatMultipleProperties(t *testing.T) {
	first := starterForecast(t)
	second := starterForecast(t)
	second.Name = "second rental"
	second.Location = ""

	var buf bytes.Buffer
	PrettyFormat(&buf, []forecast.Forecast{first, second})
	output := buf.String()

	if strings.Count(output, "--- Results for property") != 2 {
		t.Errorf("Expected two property headers\n%s", output)
	}
	if strings.Count(output, "Location:") != 1 {
		t.Errorf("Location line should only print when set\n%s", output)
	}
	if !strings.Contains(output, "\n\n--- Results for property second rental") {
		t.Errorf("Expected a blank line between properties\n%s", output)
	}
}

func TestCsvFormat(t *testing.T) {
	result := starterForecast(t)
	result.Result.Years[1].ROIIfSold = projection.UndefinedReturn()

	output := CsvString([]forecast.Forecast{result})
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("Expected header plus 10 rows, got %d lines", len(lines))
	}

	header := `"property","mode","year","propertyValue","loanBalance","equity","cashFlow","cumulativeCashFlow","profitIfSold","roiIfSold","notes"`
	if lines[0] != header {
		t.Errorf("unexpected header %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], `"starter rental","simple","1",`) {
		t.Errorf("unexpected first row %s", lines[1])
	}
	if !strings.HasSuffix(lines[1], `"negative monthly cash flow of -$138.92"`) {
		t.Errorf("purchase notes should fold into year 1: %s", lines[1])
	}
	if !strings.Contains(lines[2], `"",""`) {
		t.Errorf("undefined ROI should be an empty field: %s", lines[2])
	}
	if !strings.HasSuffix(lines[3], `"refinance considered"`) {
		t.Errorf("year 3 notes missing: %s", lines[3])
	}
	if !strings.HasPrefix(lines[10], `"starter rental","simple","10",`) {
		t.Errorf("unexpected last row %s", lines[10])
	}

	var buf bytes.Buffer
	CsvFormat(&buf, []forecast.Forecast{result})
	if buf.String() != output {
		t.Error("CsvString() should match CsvFormat()")
	}
}

func TestCsvFormatEscapesQuotes(t *testing.T) {
	result := starterForecast(t)
	result.Name = `the "blue" house`

	output := CsvString([]forecast.Forecast{result})
	if !strings.Contains(output, `"the ""blue"" house","simple","1",`) {
		t.Errorf("quotes were not escaped\n%s", output)
	}
}

func TestCsvFormatEmpty(t *testing.T) {
	output := CsvString(nil)
	if strings.Count(output, "\n") != 1 || !strings.HasPrefix(output, `"property"`) {
		t.Errorf("expected header only, got %q", output)
	}
}

func TestYearNotes(t *testing.T) {
	result := forecast.Forecast{Notes: map[int][]string{0: {"a"}, 1: {"b"}, 2: {"c"}}}

	if got := strings.Join(yearNotes(result, 1), ","); got != "a,b" {
		t.Errorf("yearNotes(1) = %q, expected a,b", got)
	}
	if got := strings.Join(yearNotes(result, 2), ","); got != "c" {
		t.Errorf("yearNotes(2) = %q, expected c", got)
	}
	if len(result.Notes[0]) != 1 {
		t.Error("yearNotes should not modify the purchase notes")
	}
}

func chicagoRow() market.Ranked {
	return market.Ranked{
		Rank: 1,
		Region: market.Region{
			Name: "Chicago, IL",
			Metrics: market.Metrics{
				MedianPrice:  350000,
				MedianRent:   2200,
				PropertyTax:  2.1,
				Insurance:    0.48,
				Appreciation: 2.8,
				RentGrowth:   2.5,
				Vacancy:      5.8,
				CapRate:      7.8,
			},
		},
		Score: 74,
	}
}

func TestMarketTable(t *testing.T) {
	var buf bytes.Buffer
	MarketTable(&buf, []market.Ranked{chicagoRow()})
	output := buf.String()

	if !strings.HasPrefix(output, "Rank | Market | Median Price | Median Rent | Cap Rate | Appreciation | Rent Growth | Vacancy | Score\n") {
		t.Errorf("MarketTable missing header\n%s", output)
	}
	want := "1 | Chicago, IL | $350,000 | $2,200 | 7.8% | 2.8% | 2.5% | 5.8% | 74\n"
	if !strings.HasSuffix(output, want) {
		t.Errorf("MarketTable row = %q, expected suffix %q", output, want)
	}
}

func TestMarketCsv(t *testing.T) {
	var buf bytes.Buffer
	MarketCsv(&buf, []market.Ranked{chicagoRow()})
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")

	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	want := `"1","Chicago, IL","350000.00","2200.00","7.8","2.8","2.5","5.8","74"`
	if lines[1] != want {
		t.Errorf("MarketCsv row = %s, expected %s", lines[1], want)
	}
}

func TestReport(t *testing.T) {
	table, err := market.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	analysis, err := table.Analyze("Chicago, IL")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	var buf bytes.Buffer
	generated := time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC)
	if err := Report(&buf, analysis, generated); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	output := buf.String()

	if !strings.HasPrefix(output, "REAL ESTATE MARKET REPORT\nGenerated: October 14, 2026\nMarket: Chicago, IL\n") {
		t.Errorf("unexpected report header\n%s", output)
	}
	expected := []string{
		"KEY METRICS\n-----------\n",
		"Median Home Price: $350,000\n",
		"Median Monthly Rent: $2,200\n",
		"Cap Rate: 7.8%\n",
		"Property Tax Rate: 2.1%\n",
		"Insurance Rate: 0.48%\n",
		"30-Year Fixed Mortgage: 6.35%\n",
		"FHA Rate: 6.15%\n",
		"VA Rate: 5.85%\n",
		"Price-to-Rent Ratio: 13.3\n",
		"Gross Rental Yield: 7.54%\n",
		"Investment Score: 74/100\n",
		"Mature market with steady returns.\n\nExcellent cash flow potential for investors.\n\nAverage vacancy rates provide stable rental income.\n",
		"For Buyers: Favorable time to lock in mortgage rates.\n",
		"For Investors: Strong cash-on-cash returns expected.\n",
		"For Renters: Stable rental market with predictable costs.\n",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("Report output missing %q\n%s", want, output)
		}
	}
}
