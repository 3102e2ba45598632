// Package loans provides fixed-rate loan amortization utilities.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/property-forecast/pkg/constants"
	"github.com/iwvelando/property-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given monthly payment.
type Payment struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// YearAmortization is the result of twelve monthly payments against a balance.
type YearAmortization struct {
	ClosingBalance  float64
	YearlyPrincipal float64
	YearlyInterest  float64
}

// MonthlyRate converts an annual percentage rate into a monthly fraction,
// e.g. 6 -> 0.005.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
}

// MonthlyPayment calculates the fixed monthly payment for a loan using the
// standard annuity formula. A 0% rate is repaid in equal principal-only
// installments. A non-positive term yields 0.
func MonthlyPayment(principal, annualRatePercent, termYears float64) float64 {
	numPayments := termYears * constants.MonthsPerYear
	if numPayments <= 0 {
		return 0
	}
	if annualRatePercent == 0 {
		return principal / numPayments
	}

	monthlyRate := MonthlyRate(annualRatePercent)
	power := math.Pow(1+monthlyRate, numPayments)
	return principal * (monthlyRate * power) / (power - 1)
}

// InterestPayment calculates the interest portion of a payment.
func InterestPayment(remainingPrincipal, monthlyRate float64) float64 {
	return remainingPrincipal * monthlyRate
}

// AmortizeYear applies twelve monthly payments to openingBalance. The closing
// balance is not floored; callers that need a non-negative balance after
// payoff clamp it themselves.
func AmortizeYear(openingBalance, monthlyPayment, monthlyRate float64) YearAmortization {
	result := YearAmortization{ClosingBalance: openingBalance}
	for month := 1; month <= constants.MonthsPerYear; month++ {
		interest := InterestPayment(result.ClosingBalance, monthlyRate)
		principal := monthlyPayment - interest
		result.YearlyPrincipal += principal
		result.YearlyInterest += interest
		result.ClosingBalance -= principal
	}
	return result
}

// ScheduleGenerator produces month-by-month amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// GenerateSchedule creates the complete monthly amortization schedule for a
// loan. The final payment absorbs any rounding residue so the schedule ends
// at a zero balance.
func (g *ScheduleGenerator) GenerateSchedule(principal, annualRatePercent, termYears float64) ([]Payment, error) {
	if principal < 0 {
		return nil, fmt.Errorf("principal must not be negative, got %.2f", principal)
	}
	if !(termYears > 0) || termYears > constants.MaxLoanTermYears {
		return nil, fmt.Errorf("loan term must be between 0 and %g years, got %v", constants.MaxLoanTermYears, termYears)
	}

	numPayments := int(math.Round(termYears * constants.MonthsPerYear))
	monthlyPayment := MonthlyPayment(principal, annualRatePercent, termYears)
	monthlyRate := MonthlyRate(annualRatePercent)

	schedule := make([]Payment, 0, numPayments)
	balance := principal
	for month := 1; month <= numPayments; month++ {
		current := Payment{Month: month, Payment: monthlyPayment}
		current.Interest = InterestPayment(balance, monthlyRate)
		current.Principal = monthlyPayment - current.Interest

		if month == numPayments || mathutil.Round(balance-current.Principal) <= 0 {
			// Machine error otherwise leaves a few cents outstanding.
			current.Principal = balance
			current.Payment = balance + current.Interest
			current.RemainingPrincipal = 0
			schedule = append(schedule, current)
			if month < numPayments {
				g.logger.Debug(fmt.Sprintf("loan paid off early at month %d of %d", month, numPayments),
					zap.String("op", "loans.GenerateSchedule"),
				)
			}
			break
		}

		balance -= current.Principal
		current.RemainingPrincipal = balance
		schedule = append(schedule, current)
	}

	g.logger.Debug("generated amortization schedule",
		zap.String("op", "loans.GenerateSchedule"),
		zap.Float64("principal", principal),
		zap.Float64("monthlyPayment", monthlyPayment),
		zap.Int("payments", len(schedule)),
	)
	return schedule, nil
}

// TotalInterest sums the interest paid across a schedule.
func TotalInterest(schedule []Payment) float64 {
	total := 0.0
	for _, p := range schedule {
		total += p.Interest
	}
	return total
}
