package market

// Report outlook thresholds.
const (
	highGrowthAppreciation   = 5.0
	stableGrowthAppreciation = 3.0
	strongCapRate            = 7.0
	balancedCapRate          = 5.0
	lowVacancy               = 5.0
	averageVacancy           = 7.0
	stableRentGrowth         = 3.0
)

// Analysis is the derived content of a market report.
type Analysis struct {
	Market           string        `json:"market"`
	Metrics          Metrics       `json:"metrics"`
	Rates            MortgageRates `json:"rates"`
	PriceToRentRatio float64       `json:"priceToRentRatio"`
	GrossRentalYield float64       `json:"grossRentalYield"`
	Score            int           `json:"score"`
	Outlook          []string      `json:"outlook"`
	Buyers           string        `json:"buyers"`
	Investors        string        `json:"investors"`
	Renters          string        `json:"renters"`
}

// Analyze builds a report for a named market. An empty name analyzes the
// national averages.
func (t *Table) Analyze(name string) (Analysis, error) {
	metrics := t.NationalAverages()
	label := NationalAverageName
	if name != "" && name != NationalAverageName {
		r, err := t.Region(name)
		if err != nil {
			return Analysis{}, err
		}
		metrics, label = r.Metrics, r.Name
	}
	return t.analyze(label, metrics), nil
}

func (t *Table) analyze(label string, m Metrics) Analysis {
	rates := t.fixture.National.Mortgage
	a := Analysis{
		Market:           label,
		Metrics:          m,
		Rates:            rates,
		PriceToRentRatio: m.PriceToRentRatio(),
		GrossRentalYield: m.GrossRentalYield(),
		Score:            Score(m),
	}

	switch {
	case m.Appreciation > highGrowthAppreciation:
		a.Outlook = append(a.Outlook, "High growth market with strong appreciation potential.")
	case m.Appreciation > stableGrowthAppreciation:
		a.Outlook = append(a.Outlook, "Stable market with moderate appreciation.")
	default:
		a.Outlook = append(a.Outlook, "Mature market with steady returns.")
	}

	switch {
	case m.CapRate > strongCapRate:
		a.Outlook = append(a.Outlook, "Excellent cash flow potential for investors.")
	case m.CapRate > balancedCapRate:
		a.Outlook = append(a.Outlook, "Good balance of cash flow and appreciation.")
	default:
		a.Outlook = append(a.Outlook, "Market favors appreciation over immediate cash flow.")
	}

	switch {
	case m.Vacancy < lowVacancy:
		a.Outlook = append(a.Outlook, "Low vacancy indicates strong rental demand.")
	case m.Vacancy < averageVacancy:
		a.Outlook = append(a.Outlook, "Average vacancy rates provide stable rental income.")
	default:
		a.Outlook = append(a.Outlook, "Higher vacancy requires careful tenant screening.")
	}

	if rates.Trend == "decreasing" {
		a.Buyers = "Favorable time to lock in mortgage rates."
	} else {
		a.Buyers = "Shop multiple lenders for best rates."
	}
	if m.CapRate > strongCapRate {
		a.Investors = "Strong cash-on-cash returns expected."
	} else {
		a.Investors = "Focus on long-term appreciation potential."
	}
	if m.RentGrowth < stableRentGrowth {
		a.Renters = "Stable rental market with predictable costs."
	} else {
		a.Renters = "Consider locking in longer lease terms."
	}
	return a
}
