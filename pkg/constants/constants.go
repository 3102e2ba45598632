// Package constants provides shared constants for the property-forecast application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Simple mode defaults. The holding period, appreciation, selling costs and
// vacancy are fixed in simple mode; the rest apply only when a field is absent.
const (
	SimpleDownPaymentPercent    = 20.0
	SimpleInterestRate          = 6.5
	SimpleLoanTermYears         = 30.0
	SimpleAnnualExpensesPercent = 35.0
	SimpleHoldingPeriodYears    = 10
	SimpleAppreciationRate      = 3.0
	SimpleSellingCostPercent    = 7.0
	SimpleVacancyRate           = 5.0
	SimpleClosingCostPercent    = 3.0

	// SimplePropertyTaxPercent and SimpleInsurancePercent are annual
	// percentages of the purchase price.
	SimplePropertyTaxPercent = 1.2
	SimpleInsurancePercent   = 0.45
)

// Advanced mode defaults, applied only when a field is absent.
const (
	AdvancedClosingCostPercent = 3.0
	AdvancedInterestRate       = 6.5
	AdvancedLoanTermYears      = 30.0
	AdvancedVacancyRate        = 5.0
	AdvancedMaintenancePercent = 1.0
	AdvancedHoldingPeriodYears = 10.0
	AdvancedAppreciationRate   = 3.0
	AdvancedSellingCostPercent = 7.0
)

// Input limits shared by both modes.
const (
	MaxLoanTermYears      = 100.0
	MaxHoldingPeriodYears = 100
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default portfolio file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML portfolios (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
