package config

import (
	"strings"
	"testing"

	"github.com/iwvelando/property-forecast/internal/calculator"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test config",
			configPath: "../../test/test_config.yaml",
			wantError:  false,
		},
		{
			name:       "Example config",
			configPath: "../../config.yaml.example",
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Logging.Level != "warn" || config.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", config.Logging)
	}
	if config.Output.Format != "pretty" {
		t.Errorf("Expected output format pretty, got %s", config.Output.Format)
	}
	if config.Markets.Sort != "capRate" {
		t.Errorf("Expected markets sort capRate, got %s", config.Markets.Sort)
	}

	expectedProperties := []struct {
		name   string
		active bool
		mode   string
	}{
		{"starter rental", true, "simple"},
		{"itemized duplex", true, "advanced"},
		{"shelved condo", false, "advanced"},
	}
	if len(config.Properties) != len(expectedProperties) {
		t.Fatalf("Expected %d properties, got %d", len(expectedProperties), len(config.Properties))
	}
	for i, expected := range expectedProperties {
		p := config.Properties[i]
		if p.Name != expected.name || p.Active != expected.active || p.Mode != expected.mode {
			t.Errorf("property %d = %s/%t/%s, expected %s/%t/%s",
				i, p.Name, p.Active, p.Mode, expected.name, expected.active, expected.mode)
		}
	}

	starter := config.Properties[0]
	if starter.Location != "Chicago, IL" {
		t.Errorf("Expected location Chicago, IL, got %q", starter.Location)
	}
	if starter.Inputs.PurchasePrice == nil || *starter.Inputs.PurchasePrice != 300000 {
		t.Errorf("unexpected purchase price %v", starter.Inputs.PurchasePrice)
	}
	if starter.Inputs.DownPaymentAmount != nil {
		t.Errorf("absent field should be nil, got %v", *starter.Inputs.DownPaymentAmount)
	}

	duplex := config.Properties[1]
	if duplex.Inputs.VacancyRate == nil {
		t.Fatal("explicit zero vacancy should be present")
	}
	if *duplex.Inputs.VacancyRate != 0 {
		t.Errorf("Expected vacancy 0, got %v", *duplex.Inputs.VacancyRate)
	}
	if duplex.Inputs.HOAFees == nil || *duplex.Inputs.HOAFees != 75 {
		t.Errorf("unexpected HOA fees %v", duplex.Inputs.HOAFees)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	yaml := `
properties:
  - name: reader property
    active: true
    inputs:
      purchasePrice: 180000
      monthlyRent: 1500
`
	config, err := LoadConfigurationFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if len(config.Properties) != 1 {
		t.Fatalf("Expected 1 property, got %d", len(config.Properties))
	}
	if config.Output.Format != "pretty" {
		t.Errorf("Expected default output format pretty, got %q", config.Output.Format)
	}
	if config.Markets.Sort != "score" {
		t.Errorf("Expected default markets sort score, got %q", config.Markets.Sort)
	}

	mode, err := config.Properties[0].CalculationMode()
	if err != nil || mode != calculator.ModeSimple {
		t.Errorf("CalculationMode() = %q, %v; expected simple", mode, err)
	}
}

func TestLoadConfigurationFromReaderInvalid(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("properties: [\n")); err == nil {
		t.Error("expected error for malformed YAML")
	}
	if _, err := LoadConfigurationFromReader(strings.NewReader("properties: just a string\n")); err == nil {
		t.Error("expected error for mistyped properties")
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name            string
		config          Configuration
		markets         []string
		expectWarnCount int
		expectContains  string
	}{
		{
			name: "Clean portfolio",
			config: Configuration{Properties: []Property{
				{Name: "A", Active: true, Mode: "simple", Inputs: calculator.RawInputs{PurchasePrice: calculator.Float(1), MonthlyRent: calculator.Float(1)}},
			}},
			expectWarnCount: 0,
		},
		{
			name: "Unknown mode on an active property",
			config: Configuration{Properties: []Property{
				{Name: "A", Active: true, Mode: "expert"},
			}},
			expectWarnCount: 1,
			expectContains:  "unknown calculation mode",
		},
		{
			name: "Unknown mode on an inactive property",
			config: Configuration{Properties: []Property{
				{Name: "A", Active: true},
				{Name: "B", Mode: "expert"},
			}},
			expectWarnCount: 0,
		},
		{
			name: "Advanced fields in simple mode",
			config: Configuration{Properties: []Property{
				{Name: "A", Active: true, Mode: "simple", Inputs: calculator.RawInputs{HOAFees: calculator.Float(50)}},
			}},
			expectWarnCount: 1,
			expectContains:  "hoaFees",
		},
		{
			name: "Held past a short loan",
			config: Configuration{Properties: []Property{
				{Name: "A", Active: true, Mode: "advanced", Inputs: calculator.RawInputs{LoanTerm: calculator.Float(15), HoldingPeriod: calculator.Float(20)}},
			}},
			expectWarnCount: 1,
			expectContains:  "held longer than its loan term",
		},
		{
			name: "Simple mode fixed holding period",
			config: Configuration{Properties: []Property{
				{Name: "A", Active: true, Mode: "simple", Inputs: calculator.RawInputs{LoanTerm: calculator.Float(5)}},
			}},
			expectWarnCount: 1,
			expectContains:  "(10 > 5 years)",
		},
		{
			name: "Interest free loan",
			config: Configuration{Properties: []Property{
				{Name: "A", Active: true, Mode: "simple", Inputs: calculator.RawInputs{
					PurchasePrice: calculator.Float(200000), MonthlyRent: calculator.Float(1500), InterestRate: calculator.Float(0),
				}},
			}},
			expectWarnCount: 1,
			expectContains:  "0% interest rate",
		},
		{
			name: "Unknown market",
			config: Configuration{Properties: []Property{
				{Name: "A", Active: true, Location: "Gotham"},
			}},
			markets:         []string{"Chicago, IL"},
			expectWarnCount: 1,
			expectContains:  "not a known market",
		},		{
			name: "Unsupported output and sort settings",
			config: Configuration{
				Output:     OutputConfig{Format: "xml"},
				Markets:    MarketsConfig{Sort: "population"},
				Properties: []Property{{Name: "A", Active: true}},
			},
			expectWarnCount: 2,
			expectContains:  `Markets setting: unsupported sort key "population"`,
		},
		{
			name: "Mixed case settings",
			config: Configuration{
				Output:     OutputConfig{Format: "CSV"},
				Markets:    MarketsConfig{Sort: "caprate"},
				Properties: []Property{{Name: "A", Active: true}},
			},
			expectWarnCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.config.ValidateConfiguration(tt.markets...)
			if len(warnings) != tt.expectWarnCount {
				t.Errorf("ValidateConfiguration() returned %d warnings, expected %d: %v", len(warnings), tt.expectWarnCount, warnings)
			}
			if tt.expectContains != "" && !strings.Contains(strings.Join(warnings, "\n"), tt.expectContains) {
				t.Errorf("expected a warning containing %q, got %v", tt.expectContains, warnings)
			}
		})
	}
}

func TestValidateConfigurationTestFile(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := config.ValidateConfiguration("Chicago, IL", "Austin, TX"); len(warnings) != 0 {
		t.Errorf("expected no warnings for the test config, got %v", warnings)
	}
}
