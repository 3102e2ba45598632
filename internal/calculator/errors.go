package calculator

import (
	"fmt"
	"strings"
)

// Field identifies a raw input for error reporting.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var (
	fieldPurchasePrice = Field{Key: "purchasePrice", Label: "Purchase Price"}
	fieldDownPayment   = Field{Key: "downPaymentAmount", Label: "Down Payment"}
	fieldMonthlyRent   = Field{Key: "monthlyRent", Label: "Monthly Rent"}
	fieldLoanTerm      = Field{Key: "loanTerm", Label: "Loan Term"}
	fieldHoldingPeriod = Field{Key: "holdingPeriod", Label: "Holding Period"}
)

// ValidationError reports required inputs that are missing or zero, or inputs
// outside their allowed range. No computation is performed when it is returned.
type ValidationError struct {
	Missing []Field `json:"missing,omitempty"`
	Invalid []Field `json:"invalid,omitempty"`
	Message string  `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Fields lists the keys of every offending input.
func (e *ValidationError) Fields() []string {
	keys := make([]string, 0, len(e.Missing)+len(e.Invalid))
	for _, f := range e.Missing {
		keys = append(keys, f.Key)
	}
	for _, f := range e.Invalid {
		keys = append(keys, f.Key)
	}
	return keys
}

func missingFieldsError(missing []Field) *ValidationError {
	labels := make([]string, len(missing))
	for i, f := range missing {
		labels[i] = f.Label
	}
	return &ValidationError{
		Missing: missing,
		Message: "please fill in the " + joinLabels(labels),
	}
}

func invalidFieldError(field Field, reason string) *ValidationError {
	return &ValidationError{
		Invalid: []Field{field},
		Message: fmt.Sprintf("%s %s", field.Label, reason),
	}
}

// joinLabels renders "A", "A and B" or "A, B, and C".
func joinLabels(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	case 2:
		return labels[0] + " and " + labels[1]
	}
	return strings.Join(labels[:len(labels)-1], ", ") + ", and " + labels[len(labels)-1]
}
