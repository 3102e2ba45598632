package market

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed markets.yaml
var defaultFixture []byte

// ErrUnknownMarket is returned when a market name is not in the table.
var ErrUnknownMarket = errors.New("unknown market")

// RatePoint is one month of mortgage rate history.
type RatePoint struct {
	Date string  `yaml:"date" json:"date"`
	Rate float64 `yaml:"rate" json:"rate"`
}

// MortgageRates are current national mortgage rates by loan type.
type MortgageRates struct {
	Current30Year float64     `yaml:"current30Year" json:"current30Year"`
	Current15Year float64     `yaml:"current15Year" json:"current15Year"`
	FHA           float64     `yaml:"fha" json:"fha"`
	VA            float64     `yaml:"va" json:"va"`
	Jumbo         float64     `yaml:"jumbo" json:"jumbo"`
	Trend         string      `yaml:"trend" json:"trend"`
	LastUpdated   string      `yaml:"lastUpdated" json:"lastUpdated"`
	History       []RatePoint `yaml:"history" json:"history"`
}

// DownPaymentNorms are typical down payment percentages.
type DownPaymentNorms struct {
	Conventional       float64 `yaml:"conventional" json:"conventional"`
	FHA                float64 `yaml:"fha" json:"fha"`
	VA                 float64 `yaml:"va" json:"va"`
	InvestmentProperty float64 `yaml:"investmentProperty" json:"investmentProperty"`
	AverageFirstTime   float64 `yaml:"averageFirstTime" json:"averageFirstTime"`
	AverageRepeat      float64 `yaml:"averageRepeat" json:"averageRepeat"`
}

// ExpenseNorms are national expense rates. Tax, insurance and maintenance
// are annual percentages of value; management and capex are percentages of
// monthly rent.
type ExpenseNorms struct {
	PropertyTax        float64 `yaml:"propertyTax" json:"propertyTax"`
	Insurance          float64 `yaml:"insurance" json:"insurance"`
	Maintenance        float64 `yaml:"maintenance" json:"maintenance"`
	PropertyManagement float64 `yaml:"propertyManagement" json:"propertyManagement"`
	Vacancy            float64 `yaml:"vacancy" json:"vacancy"`
	CapEx              float64 `yaml:"capEx" json:"capEx"`
	Utilities          float64 `yaml:"utilities" json:"utilities"`
}

// ReturnNorms are national average investment returns.
type ReturnNorms struct {
	AvgCapRate      float64 `yaml:"avgCapRate" json:"avgCapRate"`
	AvgCashOnCash   float64 `yaml:"avgCashOnCash" json:"avgCashOnCash"`
	AvgAppreciation float64 `yaml:"avgAppreciation" json:"avgAppreciation"`
}

// NationalRates groups the national figures of the fixture.
type NationalRates struct {
	Mortgage    MortgageRates    `yaml:"mortgage" json:"mortgage"`
	DownPayment DownPaymentNorms `yaml:"downPayment" json:"downPayment"`
	Expenses    ExpenseNorms     `yaml:"expenses" json:"expenses"`
	Returns     ReturnNorms      `yaml:"returns" json:"returns"`
}

// Neighborhood is a sub-market of a region.
type Neighborhood struct {
	Name        string  `yaml:"name" json:"name"`
	MedianPrice float64 `yaml:"medianPrice" json:"medianPrice"`
	MedianRent  float64 `yaml:"medianRent" json:"medianRent"`
}

// Region is a named market with its metrics.
type Region struct {
	Name          string `yaml:"name" json:"name"`
	Metrics       `yaml:",inline"`
	Neighborhoods []Neighborhood `yaml:"neighborhoods,omitempty" json:"neighborhoods,omitempty"`
}

// PropertyType scales regional medians for a kind of property.
type PropertyType struct {
	Name              string  `yaml:"name" json:"name"`
	PriceMultiplier   float64 `yaml:"priceMultiplier" json:"priceMultiplier"`
	RentMultiplier    float64 `yaml:"rentMultiplier" json:"rentMultiplier"`
	ExpenseMultiplier float64 `yaml:"expenseMultiplier" json:"expenseMultiplier"`
}

// BuyerProfile holds financing guidance for a kind of buyer.
type BuyerProfile struct {
	Name                 string   `yaml:"name" json:"name"`
	SuggestedDownPayment float64  `yaml:"suggestedDownPayment" json:"suggestedDownPayment"`
	LoanTypes            []string `yaml:"loanTypes" json:"loanTypes"`
	Tips                 []string `yaml:"tips" json:"tips"`
}

// Condition describes the indicators of a buyer's, balanced or seller's market.
type Condition struct {
	Name             string   `yaml:"name" json:"name"`
	InventoryMonths  string   `yaml:"inventoryMonths" json:"inventoryMonths"`
	PriceNegotiation string   `yaml:"priceNegotiation" json:"priceNegotiation"`
	DaysOnMarket     string   `yaml:"daysOnMarket" json:"daysOnMarket"`
	Tips             []string `yaml:"tips" json:"tips"`
}

// Fixture is the on-disk layout of a market data file.
type Fixture struct {
	National      NationalRates  `yaml:"national"`
	Regions       []Region       `yaml:"regions"`
	PropertyTypes []PropertyType `yaml:"propertyTypes"`
	BuyerProfiles []BuyerProfile `yaml:"buyerProfiles"`
	Conditions    []Condition    `yaml:"marketConditions"`
}

// Table is a read-only, validated market fixture. Region order follows the
// file; lookups by name are case-insensitive.
type Table struct {
	fixture Fixture
	regions map[string]int
}

// NewTable validates a fixture and indexes its regions.
func NewTable(f Fixture) (*Table, error) {
	if len(f.Regions) == 0 {
		return nil, errors.New("market fixture has no regions")
	}

	t := &Table{fixture: f, regions: make(map[string]int, len(f.Regions))}
	for i, r := range f.Regions {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("region %d has no name", i)
		}
		if err := checkMetrics(r.Metrics); err != nil {
			return nil, fmt.Errorf("region %q: %w", name, err)
		}
		key := normalizeName(name)
		if _, dup := t.regions[key]; dup {
			return nil, fmt.Errorf("duplicate region %q", name)
		}
		t.regions[key] = i
	}
	return t, nil
}

func checkMetrics(m Metrics) error {
	values := []struct {
		name  string
		value float64
	}{
		{"medianPrice", m.MedianPrice},
		{"medianRent", m.MedianRent},
		{"propertyTax", m.PropertyTax},
		{"insurance", m.Insurance},
		{"appreciation", m.Appreciation},
		{"rentGrowth", m.RentGrowth},
		{"vacancy", m.Vacancy},
		{"capRate", m.CapRate},
	}
	for _, v := range values {
		if v.value < 0 {
			return fmt.Errorf("%s must not be negative, got %v", v.name, v.value)
		}
	}
	if m.MedianPrice == 0 || m.MedianRent == 0 {
		return errors.New("median price and rent are required")
	}
	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Load decodes and validates a YAML market fixture.
func Load(r io.Reader) (*Table, error) {
	var f Fixture
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding market fixture: %w", err)
	}
	return NewTable(f)
}

// LoadFile reads a YAML market fixture from disk.
func LoadFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening market fixture %s: %w", path, err)
	}
	defer file.Close()

	t, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Default returns the bundled market table.
func Default() (*Table, error) {
	return Load(bytes.NewReader(defaultFixture))
}

// National returns the national rates.
func (t *Table) National() NationalRates {
	return t.fixture.National
}

// Regions returns every region in fixture order.
func (t *Table) Regions() []Region {
	regions := make([]Region, len(t.fixture.Regions))
	copy(regions, t.fixture.Regions)
	return regions
}

// Names returns the region names in fixture order.
func (t *Table) Names() []string {
	names := make([]string, len(t.fixture.Regions))
	for i, r := range t.fixture.Regions {
		names[i] = r.Name
	}
	return names
}

// Region looks up a region by name.
func (t *Table) Region(name string) (Region, error) {
	i, ok := t.regions[normalizeName(name)]
	if !ok {
		return Region{}, fmt.Errorf("%w: %q", ErrUnknownMarket, name)
	}
	return t.fixture.Regions[i], nil
}

// Neighborhood looks up a neighborhood within a region.
func (t *Table) Neighborhood(region, name string) (Neighborhood, bool) {
	r, err := t.Region(region)
	if err != nil {
		return Neighborhood{}, false
	}
	for _, n := range r.Neighborhoods {
		if strings.EqualFold(n.Name, strings.TrimSpace(name)) {
			return n, true
		}
	}
	return Neighborhood{}, false
}

// PropertyTypes returns the property type multipliers.
func (t *Table) PropertyTypes() []PropertyType {
	return append([]PropertyType(nil), t.fixture.PropertyTypes...)
}

// PropertyType looks up a property type by name.
func (t *Table) PropertyType(name string) (PropertyType, bool) {
	for _, p := range t.fixture.PropertyTypes {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return PropertyType{}, false
}

// BuyerProfiles returns the financing guidance for every buyer type.
func (t *Table) BuyerProfiles() []BuyerProfile {
	return append([]BuyerProfile(nil), t.fixture.BuyerProfiles...)
}

// Conditions returns the market condition indicators.
func (t *Table) Conditions() []Condition {
	return append([]Condition(nil), t.fixture.Conditions...)
}
