// Package validation checks portfolio and command settings. Settings that
// cannot be used are errors; settings that are usable but suspicious are
// returned as human-readable warnings.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/property-forecast/pkg/constants"
)

// ErrUnsupported is wrapped by every error for a value outside its allowed set.
var ErrUnsupported = errors.New("unsupported")

// OutputFormats lists the formats every printer can render.
func OutputFormats() []string {
	return []string{constants.OutputFormatPretty, constants.OutputFormatCSV}
}

// Choice matches value against allowed, ignoring case and surrounding space,
// and returns the allowed spelling. kind names the setting in the error.
func Choice(kind, value string, allowed []string) (string, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range allowed {
		if strings.EqualFold(trimmed, candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w %s %q (expected one of %s)", ErrUnsupported, kind, value, strings.Join(allowed, ", "))
}

// OutputFormat resolves an output format name such as "CSV" to "csv".
func OutputFormat(format string) (string, error) {
	return Choice("output format", format, OutputFormats())
}

// MarketSort resolves a market ranking key against keys, so "caprate"
// selects "capRate".
func MarketSort(key string, keys []string) (string, error) {
	return Choice("sort key", key, keys)
}

// ValidateOutputSettings warns about portfolio output and market settings
// the commands would reject.
func ValidateOutputSettings(outputFormat, marketSort string, sortKeys []string) []string {
	var warnings []string
	if outputFormat != "" {
		if _, err := OutputFormat(outputFormat); err != nil {
			warnings = append(warnings, fmt.Sprintf("Output setting: %v", err))
		}
	}
	if marketSort != "" && len(sortKeys) > 0 {
		if _, err := MarketSort(marketSort, sortKeys); err != nil {
			warnings = append(warnings, fmt.Sprintf("Markets setting: %v", err))
		}
	}
	return warnings
}
