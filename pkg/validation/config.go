// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"strings"
)

// ValidateHoldingPeriod checks whether a property is held past its loan term.
func ValidateHoldingPeriod(propertyName string, holdingPeriodYears, loanTermYears float64) string {
	if holdingPeriodYears <= 0 || loanTermYears <= 0 {
		return ""
	}
	if holdingPeriodYears > loanTermYears {
		return fmt.Sprintf("Property '%s' is held longer than its loan term (%g > %g years) - the loan will be paid off before sale",
			propertyName, holdingPeriodYears, loanTermYears)
	}
	return ""
}

// ValidateIgnoredFields warns about inputs the property's mode does not read.
func ValidateIgnoredFields(propertyName, mode string, ignored []string) string {
	if len(ignored) == 0 {
		return ""
	}
	return fmt.Sprintf("Property '%s' sets %s which %s mode ignores",
		propertyName, strings.Join(ignored, ", "), mode)
}

// ValidateFunding checks a property's derived loan amount, interest rate and
// initial investment for degenerate values.
func ValidateFunding(propertyName string, loanAmount, interestRate, initialInvestment float64) []string {
	var warnings []string
	if loanAmount < 0 {
		warnings = append(warnings, fmt.Sprintf("Property '%s' has a down payment above its purchase price (loan amount %.2f)",
			propertyName, loanAmount))
	}
	if loanAmount > 0 && interestRate == 0 {
		warnings = append(warnings, fmt.Sprintf("Property '%s' has a 0%% interest rate - payments are principal only", propertyName))
	}
	if initialInvestment == 0 {
		warnings = append(warnings, fmt.Sprintf("Property '%s' has no initial investment - ROI is undefined", propertyName))
	}
	return warnings
}

// ConfigValidator performs comprehensive configuration validation
type ConfigValidator struct {
	Properties  []PropertyConfig
	MarketNames []string
}

// PropertyConfig is the part of a configured property that validation needs.
type PropertyConfig struct {
	Name          string
	Active        bool
	Mode          string
	Location      string
	Ignored       []string
	HoldingPeriod float64
	LoanTerm      float64

	// Funded is set when the funding figures below were derived.
	Funded            bool
	LoanAmount        float64
	InterestRate      float64
	InitialInvestment float64
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	seen := make(map[string]bool)
	active := 0
	for _, property := range cv.Properties {
		key := strings.ToLower(strings.TrimSpace(property.Name))
		if key == "" {
			warnings = append(warnings, "Property with no name - results cannot be told apart")
		} else if seen[key] {
			warnings = append(warnings, fmt.Sprintf("Duplicate property name '%s'", property.Name))
		}
		seen[key] = true

		if !property.Active {
			continue
		}
		active++

		if w := ValidateIgnoredFields(property.Name, property.Mode, property.Ignored); w != "" {
			warnings = append(warnings, w)
		}
		if w := ValidateHoldingPeriod(property.Name, property.HoldingPeriod, property.LoanTerm); w != "" {
			warnings = append(warnings, w)
		}
		if property.Funded {
			warnings = append(warnings, ValidateFunding(property.Name, property.LoanAmount,
				property.InterestRate, property.InitialInvestment)...)
		}
		if property.Location != "" && len(cv.MarketNames) > 0 && !containsFold(cv.MarketNames, property.Location) {
			warnings = append(warnings, fmt.Sprintf("Property '%s' location '%s' is not a known market",
				property.Name, property.Location))
		}
	}

	if len(cv.Properties) > 0 && active == 0 {
		warnings = append(warnings, "No active properties - nothing will be projected")
	}

	return warnings
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(target)) {
			return true
		}
	}
	return false
}
