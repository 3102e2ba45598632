// Package config defines the data structures related to configuration and
// includes functions for loading and validating the portfolio config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/property-forecast/internal/calculator"
	"github.com/iwvelando/property-forecast/internal/market"
	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for property-forecast.
type Configuration struct {
	Properties []Property
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
	Markets    MarketsConfig `yaml:"markets,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// MarketsConfig selects the market data and how it is ranked.
type MarketsConfig struct {
	File string `yaml:"file,omitempty"` // empty uses the bundled table
	Sort string `yaml:"sort,omitempty"` // capRate, appreciation, rentGrowth, affordability, score
}

// Property is one purchase to project.
type Property struct {
	Name     string
	Active   bool
	Mode     string
	Location string
	Inputs   calculator.RawInputs
}

// CalculationMode parses the property's mode; an empty mode is simple.
func (p Property) CalculationMode() (calculator.Mode, error) {
	return calculator.ParseMode(p.Mode)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.AutomaticEnv()
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("markets.sort", "score")
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}
	return decode(v)
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. marketNames, when given, are used to check property
// locations.
func (c *Configuration) ValidateConfiguration(marketNames ...string) []string {
	properties := make([]validation.PropertyConfig, 0, len(c.Properties))
	var warnings []string

	for _, property := range c.Properties {
		pc := validation.PropertyConfig{
			Name:     property.Name,
			Active:   property.Active,
			Mode:     property.Mode,
			Location: property.Location,
		}

		mode, err := property.CalculationMode()
		if err != nil {
			if property.Active {
				warnings = append(warnings, fmt.Sprintf("Property '%s': %v", property.Name, err))
			}
		} else {
			pc.Mode = string(mode)
			pc.Ignored = property.Inputs.Ignored(mode)
			pc.LoanTerm = valueOr(property.Inputs.LoanTerm, constants.SimpleLoanTermYears)
			pc.HoldingPeriod = constants.SimpleHoldingPeriodYears
			if mode == calculator.ModeAdvanced {
				pc.HoldingPeriod = valueOr(property.Inputs.HoldingPeriod, constants.AdvancedHoldingPeriodYears)
			}
			// Inputs that fail here are reported by the forecast itself.
			if result, err := calculator.Compute(property.Inputs, mode); err == nil {
				pc.Funded = true
				pc.LoanAmount = result.LoanAmount
				pc.InterestRate = result.InterestRate
				pc.InitialInvestment = result.InitialInvestment
			}
		}
		properties = append(properties, pc)
	}

	validator := validation.ConfigValidator{Properties: properties, MarketNames: marketNames}
	warnings = append(warnings, validation.ValidateOutputSettings(c.Output.Format, c.Markets.Sort, market.SortKeys())...)
	return append(warnings, validator.ValidateAll()...)
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
