package validation

import (
	"errors"
	"strings"
	"testing"
)

var sortKeys = []string{"capRate", "appreciation", "rentGrowth", "affordability", "score"}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "pretty", expected: "pretty"},
		{input: "csv", expected: "csv"},
		{input: "CSV", expected: "csv"},
		{input: " Pretty ", expected: "pretty"},
		{input: "json", wantErr: true},
		{input: "", wantErr: true},
		{input: "csv,pretty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := OutputFormat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupported) {
					t.Fatalf("OutputFormat(%q) error = %v, expected ErrUnsupported", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("OutputFormat(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("OutputFormat(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestOutputFormatErrorMessage(t *testing.T) {
	_, err := OutputFormat("xml")
	expected := `unsupported output format "xml" (expected one of pretty, csv)`
	if err == nil || err.Error() != expected {
		t.Errorf("error = %v, expected %s", err, expected)
	}
}

func TestMarketSort(t *testing.T) {
	tests := map[string]string{
		"capRate":        "capRate",
		"caprate":        "capRate",
		"RENTGROWTH":     "rentGrowth",
		" affordability": "affordability",
	}
	for input, expected := range tests {
		got, err := MarketSort(input, sortKeys)
		if err != nil {
			t.Errorf("MarketSort(%q) error = %v", input, err)
			continue
		}
		if got != expected {
			t.Errorf("MarketSort(%q) = %q, expected %q", input, got, expected)
		}
	}

	_, err := MarketSort("population", sortKeys)
	if !errors.Is(err, ErrUnsupported) || !strings.Contains(err.Error(), `sort key "population"`) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestChoiceWithNothingAllowed(t *testing.T) {
	if _, err := Choice("loan type", "fha", nil); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestValidateOutputSettings(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		sort     string
		keys     []string
		expected []string
	}{
		{name: "Defaults", format: "pretty", sort: "score", keys: sortKeys},
		{name: "Unset", keys: sortKeys},
		{name: "Mixed case accepted", format: "CSV", sort: "capRATE", keys: sortKeys},
		{
			name:     "Unknown format",
			format:   "xml",
			keys:     sortKeys,
			expected: []string{"Output setting: unsupported output format"},
		},
		{
			name:     "Unknown sort and format",
			format:   "html",
			sort:     "population",
			keys:     sortKeys,
			expected: []string{"Output setting", `Markets setting: unsupported sort key "population"`},
		},
		{name: "Sort unchecked without keys", sort: "population"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ValidateOutputSettings(tt.format, tt.sort, tt.keys)
			if len(warnings) != len(tt.expected) {
				t.Fatalf("expected %d warnings, got %v", len(tt.expected), warnings)
			}
			for i, want := range tt.expected {
				if !strings.Contains(warnings[i], want) {
					t.Errorf("warning %d = %q, expected it to contain %q", i, warnings[i], want)
				}
			}
		})
	}
}
