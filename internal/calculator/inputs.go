// Package calculator is the entry point for property projections. It turns a
// mode-tagged set of raw inputs into normalized profiles and runs the
// projection over them.
package calculator

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects which input fields are read and how expenses are composed.
type Mode string

const (
	// ModeSimple uses a single blended expense ratio and fixed projection assumptions.
	ModeSimple Mode = "simple"
	// ModeAdvanced uses itemized expenses and caller-supplied projection assumptions.
	ModeAdvanced Mode = "advanced"
)

// ErrUnknownMode is returned for a mode other than simple or advanced.
var ErrUnknownMode = errors.New("unknown calculation mode")

// ParseMode converts a mode name; an empty name selects simple mode.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case "", ModeSimple:
		return ModeSimple, nil
	case ModeAdvanced:
		return ModeAdvanced, nil
	}
	return "", fmt.Errorf("%w: %q (expected %s or %s)", ErrUnknownMode, name, ModeSimple, ModeAdvanced)
}

// RawInputs holds already-parsed form values. A nil field is absent; a
// non-nil zero is an explicit zero and is not replaced by a default.
// Currency fields are plain amounts and rate fields are percentages (6.5
// means 6.5%).
type RawInputs struct {
	// Shared
	PurchasePrice *float64 `json:"purchasePrice,omitempty" yaml:"purchasePrice,omitempty" mapstructure:"purchasePrice"`
	InterestRate  *float64 `json:"interestRate,omitempty" yaml:"interestRate,omitempty" mapstructure:"interestRate"`
	LoanTerm      *float64 `json:"loanTerm,omitempty" yaml:"loanTerm,omitempty" mapstructure:"loanTerm"`
	MonthlyRent   *float64 `json:"monthlyRent,omitempty" yaml:"monthlyRent,omitempty" mapstructure:"monthlyRent"`

	// Simple mode
	DownPaymentPercent    *float64 `json:"downPaymentPercent,omitempty" yaml:"downPaymentPercent,omitempty" mapstructure:"downPaymentPercent"`
	AnnualExpensesPercent *float64 `json:"annualExpensesPercent,omitempty" yaml:"annualExpensesPercent,omitempty" mapstructure:"annualExpensesPercent"`

	// Advanced mode
	DownPaymentAmount    *float64 `json:"downPaymentAmount,omitempty" yaml:"downPaymentAmount,omitempty" mapstructure:"downPaymentAmount"`
	ClosingCostPercent   *float64 `json:"closingCostPercent,omitempty" yaml:"closingCostPercent,omitempty" mapstructure:"closingCostPercent"`
	InitialRepairs       *float64 `json:"initialRepairs,omitempty" yaml:"initialRepairs,omitempty" mapstructure:"initialRepairs"`
	VacancyRate          *float64 `json:"vacancyRate,omitempty" yaml:"vacancyRate,omitempty" mapstructure:"vacancyRate"`
	PropertyTax          *float64 `json:"propertyTax,omitempty" yaml:"propertyTax,omitempty" mapstructure:"propertyTax"`
	Insurance            *float64 `json:"insurance,omitempty" yaml:"insurance,omitempty" mapstructure:"insurance"`
	ManagementFeePercent *float64 `json:"managementFeePercent,omitempty" yaml:"managementFeePercent,omitempty" mapstructure:"managementFeePercent"`
	MaintenancePercent   *float64 `json:"maintenancePercent,omitempty" yaml:"maintenancePercent,omitempty" mapstructure:"maintenancePercent"`
	HOAFees              *float64 `json:"hoaFees,omitempty" yaml:"hoaFees,omitempty" mapstructure:"hoaFees"`
	HoldingPeriod        *float64 `json:"holdingPeriod,omitempty" yaml:"holdingPeriod,omitempty" mapstructure:"holdingPeriod"`
	AppreciationRate     *float64 `json:"appreciationRate,omitempty" yaml:"appreciationRate,omitempty" mapstructure:"appreciationRate"`
	SellingCostPercent   *float64 `json:"sellingCostPercent,omitempty" yaml:"sellingCostPercent,omitempty" mapstructure:"sellingCostPercent"`
}

// Float returns a pointer to v, for building RawInputs literals.
func Float(v float64) *float64 {
	return &v
}

func valueOr(field *float64, fallback float64) float64 {
	if field == nil {
		return fallback
	}
	return *field
}

func present(field *float64) bool {
	return field != nil && *field > 0
}

type inputField struct {
	key   string
	value *float64
}

func (in RawInputs) fields() []inputField {
	return []inputField{
		{"purchasePrice", in.PurchasePrice},
		{"interestRate", in.InterestRate},
		{"loanTerm", in.LoanTerm},
		{"monthlyRent", in.MonthlyRent},
		{"downPaymentPercent", in.DownPaymentPercent},
		{"annualExpensesPercent", in.AnnualExpensesPercent},
		{"downPaymentAmount", in.DownPaymentAmount},
		{"closingCostPercent", in.ClosingCostPercent},
		{"initialRepairs", in.InitialRepairs},
		{"vacancyRate", in.VacancyRate},
		{"propertyTax", in.PropertyTax},
		{"insurance", in.Insurance},
		{"managementFeePercent", in.ManagementFeePercent},
		{"maintenancePercent", in.MaintenancePercent},
		{"hoaFees", in.HOAFees},
		{"holdingPeriod", in.HoldingPeriod},
		{"appreciationRate", in.AppreciationRate},
		{"sellingCostPercent", in.SellingCostPercent},
	}
}

var (
	sharedFields     = map[string]bool{"purchasePrice": true, "interestRate": true, "loanTerm": true, "monthlyRent": true}
	simpleOnlyFields = map[string]bool{"downPaymentPercent": true, "annualExpensesPercent": true}
)

// Provided lists the keys of every non-nil field.
func (in RawInputs) Provided() []string {
	var keys []string
	for _, f := range in.fields() {
		if f.value != nil {
			keys = append(keys, f.key)
		}
	}
	return keys
}

// Ignored lists the keys of provided fields that the mode does not read.
func (in RawInputs) Ignored(mode Mode) []string {
	var keys []string
	for _, key := range in.Provided() {
		if sharedFields[key] {
			continue
		}
		if simpleOnlyFields[key] != (mode == ModeSimple) {
			keys = append(keys, key)
		}
	}
	return keys
}
