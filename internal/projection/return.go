package projection

import (
	"encoding/json"
	"errors"

	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/format"
)

// ErrUndefinedReturn is reported when a return is requested for a purchase
// with no cash invested.
var ErrUndefinedReturn = errors.New("return is undefined for a zero initial investment")

// Return is a percentage return on the initial investment. The zero value is
// undefined.
type Return struct {
	percent float64
	defined bool
}

// UndefinedReturn is the outcome for a zero initial investment.
func UndefinedReturn() Return {
	return Return{}
}

// DefinedReturn wraps a computed percentage.
func DefinedReturn(percent float64) Return {
	return Return{percent: percent, defined: true}
}

// ReturnOn computes amount / investment as a percentage.
func ReturnOn(amount, investment float64) Return {
	if investment == 0 {
		return UndefinedReturn()
	}
	return DefinedReturn(amount / investment * constants.PercentageMultiplier)
}

// Defined reports whether the return has a value.
func (r Return) Defined() bool {
	return r.defined
}

// Value returns the percentage, or ErrUndefinedReturn.
func (r Return) Value() (float64, error) {
	if !r.defined {
		return 0, ErrUndefinedReturn
	}
	return r.percent, nil
}

// String renders the return as a signed percentage or "n/a".
func (r Return) String() string {
	if !r.defined {
		return "n/a"
	}
	return format.SignedPercent(r.percent)
}

// MarshalJSON encodes an undefined return as null.
func (r Return) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.percent)
}

// UnmarshalJSON accepts a number or null.
func (r *Return) UnmarshalJSON(data []byte) error {
	var value *float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	if value == nil {
		*r = UndefinedReturn()
		return nil
	}
	*r = DefinedReturn(*value)
	return nil
}
